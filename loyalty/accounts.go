// Package loyalty keeps per-customer point balances with earn and
// redemption histories. One point is worth a fixed RM0.50 discount at
// checkout; redemption never exceeds the current balance.
package loyalty

import (
	"sync"
	"time"
)

// Event is one earn or redemption entry in an account's history.
type Event struct {
	Points      int       `json:"points"`
	OrderNumber int       `json:"order_number"`
	Time        time.Time `json:"time"`
}

type account struct {
	balance  int
	earned   []Event
	redeemed []Event
}

// Store holds all loyalty accounts, keyed by username.
type Store struct {
	mu       sync.Mutex
	accounts map[string]*account
}

func NewStore() *Store {
	return &Store{accounts: make(map[string]*account)}
}

func (s *Store) get(username string) *account {
	a, ok := s.accounts[username]
	if !ok {
		a = &account{}
		s.accounts[username] = a
	}
	return a
}

// Balance returns the current point balance for a customer.
func (s *Store) Balance(username string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.get(username).balance
}

// Earn credits points for a confirmed order.
func (s *Store) Earn(username string, points, orderNumber int) {
	if points <= 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	a := s.get(username)
	a.balance += points
	a.earned = append(a.earned, Event{Points: points, OrderNumber: orderNumber, Time: time.Now()})
}

// Redeem debits up to points from the balance and returns the amount
// actually redeemed, clamped to [0, balance].
func (s *Store) Redeem(username string, points, orderNumber int) int {
	if points <= 0 {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	a := s.get(username)
	if points > a.balance {
		points = a.balance
	}
	if points == 0 {
		return 0
	}
	a.balance -= points
	a.redeemed = append(a.redeemed, Event{Points: points, OrderNumber: orderNumber, Time: time.Now()})
	return points
}

// EarnHistory returns the earn log for a customer, oldest first.
func (s *Store) EarnHistory(username string) []Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	a := s.get(username)
	out := make([]Event, len(a.earned))
	copy(out, a.earned)
	return out
}

// RedemptionHistory returns the redemption log for a customer, oldest first.
func (s *Store) RedemptionHistory(username string) []Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	a := s.get(username)
	out := make([]Event, len(a.redeemed))
	copy(out, a.redeemed)
	return out
}
