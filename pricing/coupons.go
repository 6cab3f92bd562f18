package pricing

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"mug-life-api/models"
)

// ErrInvalidCoupon covers both unknown codes and expired ones. The two
// cases are deliberately not distinguished to the caller.
var ErrInvalidCoupon = errors.New("invalid or expired coupon")

// CouponStore keeps the admin-created coupon codes and their usage
// history in memory.
type CouponStore struct {
	mu      sync.Mutex
	coupons map[string]models.Coupon
	usage   []models.CouponUsage
}

func NewCouponStore() *CouponStore {
	return &CouponStore{coupons: make(map[string]models.Coupon)}
}

// Create registers a new coupon code. Codes are unique; re-creating an
// existing code is rejected.
func (s *CouponStore) Create(code string, discount float64, expiresAt time.Time) (models.Coupon, error) {
	if code == "" {
		return models.Coupon{}, fmt.Errorf("coupon code must not be empty")
	}
	if discount <= 0 {
		return models.Coupon{}, fmt.Errorf("coupon discount must be positive, got %.2f", discount)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.coupons[code]; exists {
		return models.Coupon{}, fmt.Errorf("coupon %q already exists", code)
	}
	c := models.Coupon{Code: code, Discount: discount, ExpiresAt: expiresAt}
	s.coupons[code] = c
	return c, nil
}

// Resolve returns the coupon for a code if it exists and is unexpired.
// Validity is current date on or before the expiration date.
func (s *CouponStore) Resolve(code string, now time.Time) (models.Coupon, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.coupons[code]
	if !ok {
		return models.Coupon{}, ErrInvalidCoupon
	}
	if now.After(endOfDay(c.ExpiresAt)) {
		return models.Coupon{}, ErrInvalidCoupon
	}
	return c, nil
}

// endOfDay extends validity through the whole expiration date.
func endOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, 0, t.Location())
}

// RecordUsage appends one redemption to the usage history. A coupon is
// applied at most once per order; the workflow calls this exactly once
// per confirmed order that carried a valid code.
func (s *CouponStore) RecordUsage(code string, orderNumber int, discount float64, at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.usage = append(s.usage, models.CouponUsage{
		Code:        code,
		OrderNumber: orderNumber,
		Discount:    discount,
		UsedAt:      at,
	})
}

// List returns all coupons sorted by code.
func (s *CouponStore) List() []models.Coupon {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Coupon, 0, len(s.coupons))
	for _, c := range s.coupons {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}

// UsageHistory returns the redemption log, oldest first.
func (s *CouponStore) UsageHistory() []models.CouponUsage {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.CouponUsage, len(s.usage))
	copy(out, s.usage)
	return out
}
