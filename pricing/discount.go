// Package pricing computes the stacked discount for a cart: the weekday
// special, an optional flat coupon and a loyalty-point redemption.
// Discounts are additive and the payable total is clamped at zero.
package pricing

import (
	"time"

	"mug-life-api/catalog"
	"mug-life-api/models"
)

// PointValue is the discount per redeemed loyalty point, in RM.
const PointValue = 0.50

// Quote is the priced breakdown for a cart at a point in time.
type Quote struct {
	Subtotal        float64 `json:"subtotal"`
	DailyOffer      string  `json:"daily_offer,omitempty"`
	DailyDiscount   float64 `json:"daily_discount"`
	CouponCode      string  `json:"coupon_code,omitempty"`
	CouponDiscount  float64 `json:"coupon_discount"`
	PointsRedeemed  int     `json:"points_redeemed"`
	LoyaltyDiscount float64 `json:"loyalty_discount"`
	Total           float64 `json:"total"`
}

// Resolver stacks the three discount sources over a cart subtotal.
type Resolver struct {
	Coupons *CouponStore
}

func NewResolver(coupons *CouponStore) *Resolver {
	return &Resolver{Coupons: coupons}
}

// Quote prices a set of cart lines. The daily special applies to the
// subtotal of matching items (every item Fri-Sun). Loyalty redemption is
// clamped to [0, balance]. An unknown or expired coupon code returns the
// quote priced without the coupon together with ErrInvalidCoupon so the
// caller can inform the user; the quote itself remains usable.
func (r *Resolver) Quote(lines []models.CartLine, couponCode string, pointsRequested, balance int, now time.Time) (Quote, error) {
	var q Quote

	var matching float64
	special := catalog.SpecialFor(now.Weekday())
	for _, line := range lines {
		q.Subtotal += line.LineTotal
		if special.Item == "" || special.Item == line.Item {
			matching += line.LineTotal
		}
	}
	q.DailyOffer = special.Offer
	q.DailyDiscount = special.Rate * matching

	var couponErr error
	if couponCode != "" {
		coupon, err := r.Coupons.Resolve(couponCode, now)
		if err != nil {
			couponErr = err
		} else {
			q.CouponCode = coupon.Code
			q.CouponDiscount = coupon.Discount
		}
	}

	points := pointsRequested
	if points < 0 {
		points = 0
	}
	if points > balance {
		points = balance
	}
	q.PointsRedeemed = points
	q.LoyaltyDiscount = float64(points) * PointValue

	q.Total = q.Subtotal - q.DailyDiscount - q.CouponDiscount - q.LoyaltyDiscount
	if q.Total < 0 {
		q.Total = 0
	}
	return q, couponErr
}
