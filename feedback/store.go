// Package feedback collects customer feedback submissions per branch.
package feedback

import (
	"fmt"
	"sync"
	"time"

	"mug-life-api/models"
)

// Store is an in-memory append-only feedback log.
type Store struct {
	mu      sync.Mutex
	entries []models.Feedback
}

func NewStore() *Store {
	return &Store{}
}

// Submit validates and records one feedback entry. Ratings are 1-5.
func (s *Store) Submit(fb models.Feedback) (models.Feedback, error) {
	if fb.Name == "" {
		return models.Feedback{}, fmt.Errorf("name is required")
	}
	if fb.CoffeeRating < 1 || fb.CoffeeRating > 5 {
		return models.Feedback{}, fmt.Errorf("coffee rating must be 1-5, got %d", fb.CoffeeRating)
	}
	if fb.ServiceRating < 1 || fb.ServiceRating > 5 {
		return models.Feedback{}, fmt.Errorf("service rating must be 1-5, got %d", fb.ServiceRating)
	}
	fb.SubmittedAt = time.Now()
	s.mu.Lock()
	s.entries = append(s.entries, fb)
	s.mu.Unlock()
	return fb, nil
}

// ForBranch returns the feedback submitted for one branch, oldest first.
func (s *Store) ForBranch(branch models.Branch) []models.Feedback {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Feedback
	for _, fb := range s.entries {
		if fb.Branch == branch {
			out = append(out, fb)
		}
	}
	return out
}
