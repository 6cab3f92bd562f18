package feedback

import (
	"testing"

	"mug-life-api/models"
)

func TestSubmit(t *testing.T) {
	s := NewStore()

	fb, err := s.Submit(models.Feedback{
		Name:          "Alia",
		Item:          "Latte",
		CoffeeRating:  5,
		ServiceRating: 4,
		Comments:      "Great foam",
		Branch:        models.BranchKLCC,
	})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if fb.SubmittedAt.IsZero() {
		t.Error("submission time not stamped")
	}

	tests := []struct {
		name string
		fb   models.Feedback
	}{
		{"missing name", models.Feedback{CoffeeRating: 3, ServiceRating: 3}},
		{"coffee rating too low", models.Feedback{Name: "Ben", CoffeeRating: 0, ServiceRating: 3}},
		{"coffee rating too high", models.Feedback{Name: "Ben", CoffeeRating: 6, ServiceRating: 3}},
		{"service rating out of range", models.Feedback{Name: "Ben", CoffeeRating: 3, ServiceRating: 9}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := s.Submit(tt.fb); err == nil {
				t.Error("Submit accepted invalid feedback")
			}
		})
	}
}

func TestForBranch(t *testing.T) {
	s := NewStore()
	for _, branch := range []models.Branch{models.BranchKLCC, models.BranchTRX, models.BranchKLCC} {
		if _, err := s.Submit(models.Feedback{
			Name: "Alia", CoffeeRating: 4, ServiceRating: 4, Branch: branch,
		}); err != nil {
			t.Fatalf("Submit: %v", err)
		}
	}
	if got := len(s.ForBranch(models.BranchKLCC)); got != 2 {
		t.Errorf("KLCC feedback count = %d, want 2", got)
	}
	if got := len(s.ForBranch(models.BranchSeriIskandar)); got != 0 {
		t.Errorf("Seri Iskandar feedback count = %d, want 0", got)
	}
}
