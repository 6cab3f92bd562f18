package pricing

import (
	"errors"
	"testing"
	"time"

	"mug-life-api/models"
)

// 2024-06-03 is a Monday, 2024-06-07 a Friday.
var (
	monday = time.Date(2024, 6, 3, 12, 0, 0, 0, time.UTC)
	friday = time.Date(2024, 6, 7, 12, 0, 0, 0, time.UTC)
)

func priced(item string, lineTotal float64) models.CartLine {
	return models.CartLine{Item: item, Quantity: 1, LineTotal: lineTotal}
}

func TestQuoteDailySpecial(t *testing.T) {
	r := NewResolver(NewCouponStore())

	tests := []struct {
		name      string
		lines     []models.CartLine
		now       time.Time
		wantDaily float64
		wantTotal float64
	}{
		{
			name:      "monday americano gets 20 percent",
			lines:     []models.CartLine{priced("Americano", 10.00)},
			now:       monday,
			wantDaily: 2.00,
			wantTotal: 8.00,
		},
		{
			name:      "monday special skips other drinks",
			lines:     []models.CartLine{priced("Americano", 5.00), priced("Latte", 6.75)},
			now:       monday,
			wantDaily: 1.00,
			wantTotal: 10.75,
		},
		{
			name:      "weekend special covers everything",
			lines:     []models.CartLine{priced("Cappuccino", 6.50), priced("Latte", 6.75), priced("Caramel Macchiato", 9.50)},
			now:       friday,
			wantDaily: 0.15 * 22.75,
			wantTotal: 22.75 - 0.15*22.75,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := r.Quote(tt.lines, "", 0, 0, tt.now)
			if err != nil {
				t.Fatalf("Quote: %v", err)
			}
			if !approx(q.DailyDiscount, tt.wantDaily) {
				t.Errorf("daily discount = %.4f, want %.4f", q.DailyDiscount, tt.wantDaily)
			}
			if !approx(q.Total, tt.wantTotal) {
				t.Errorf("total = %.4f, want %.4f", q.Total, tt.wantTotal)
			}
		})
	}
}

func TestQuoteLoyaltyClamp(t *testing.T) {
	r := NewResolver(NewCouponStore())
	lines := []models.CartLine{priced("Latte", 20.00)}

	// Requesting 5 points against a balance of 3 redeems 3.
	q, err := r.Quote(lines, "", 5, 3, friday)
	if err != nil {
		t.Fatalf("Quote: %v", err)
	}
	if q.PointsRedeemed != 3 {
		t.Errorf("points redeemed = %d, want 3", q.PointsRedeemed)
	}
	if !approx(q.LoyaltyDiscount, 1.50) {
		t.Errorf("loyalty discount = %.2f, want 1.50", q.LoyaltyDiscount)
	}

	q, _ = r.Quote(lines, "", -4, 3, friday)
	if q.PointsRedeemed != 0 {
		t.Errorf("negative request redeemed %d points", q.PointsRedeemed)
	}
}

func TestQuoteClampsTotalAtZero(t *testing.T) {
	store := NewCouponStore()
	if _, err := store.Create("BIGSPENDER", 100.00, friday.AddDate(0, 1, 0)); err != nil {
		t.Fatalf("Create: %v", err)
	}
	r := NewResolver(store)

	q, err := r.Quote([]models.CartLine{priced("Americano", 3.75)}, "BIGSPENDER", 0, 0, friday)
	if err != nil {
		t.Fatalf("Quote: %v", err)
	}
	if q.Total != 0 {
		t.Errorf("total = %.2f, want 0 when discounts exceed the subtotal", q.Total)
	}
	if q.CouponDiscount != 100.00 {
		t.Errorf("coupon discount = %.2f, want 100.00", q.CouponDiscount)
	}
}

func TestQuoteInvalidCouponStillPrices(t *testing.T) {
	r := NewResolver(NewCouponStore())

	q, err := r.Quote([]models.CartLine{priced("Latte", 6.75)}, "NOPE", 0, 0, friday)
	if !errors.Is(err, ErrInvalidCoupon) {
		t.Fatalf("err = %v, want ErrInvalidCoupon", err)
	}
	if q.CouponDiscount != 0 {
		t.Errorf("invalid coupon discounted %.2f", q.CouponDiscount)
	}
	// The quote stays usable; the order proceeds without the coupon.
	if !approx(q.Total, 6.75-0.15*6.75) {
		t.Errorf("total = %.4f, want the coupon-free price", q.Total)
	}
}

func TestCouponValidThroughExpiryDay(t *testing.T) {
	store := NewCouponStore()
	expiry := time.Date(2024, 6, 7, 0, 0, 0, 0, time.UTC)
	if _, err := store.Create("JUNE", 2.00, expiry); err != nil {
		t.Fatalf("Create: %v", err)
	}

	// Late on the expiry date the coupon still resolves.
	if _, err := store.Resolve("JUNE", time.Date(2024, 6, 7, 23, 0, 0, 0, time.UTC)); err != nil {
		t.Errorf("Resolve on expiry day: %v", err)
	}
	// The morning after it does not.
	if _, err := store.Resolve("JUNE", time.Date(2024, 6, 8, 0, 1, 0, 0, time.UTC)); !errors.Is(err, ErrInvalidCoupon) {
		t.Errorf("Resolve after expiry = %v, want ErrInvalidCoupon", err)
	}
}

func TestCouponStoreCreate(t *testing.T) {
	store := NewCouponStore()
	if _, err := store.Create("DUP", 1.00, friday); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := store.Create("DUP", 2.00, friday); err == nil {
		t.Error("Create accepted a duplicate code")
	}
	if _, err := store.Create("", 1.00, friday); err == nil {
		t.Error("Create accepted an empty code")
	}
	if _, err := store.Create("FREE", 0, friday); err == nil {
		t.Error("Create accepted a zero discount")
	}
}

func TestCouponUsageHistory(t *testing.T) {
	store := NewCouponStore()
	store.RecordUsage("JUNE", 1234, 2.00, friday)
	store.RecordUsage("JUNE", 5678, 2.00, friday.Add(time.Hour))

	usage := store.UsageHistory()
	if len(usage) != 2 {
		t.Fatalf("usage has %d entries, want 2", len(usage))
	}
	if usage[0].OrderNumber != 1234 || usage[1].OrderNumber != 5678 {
		t.Errorf("usage order numbers = %d, %d", usage[0].OrderNumber, usage[1].OrderNumber)
	}
}

func approx(a, b float64) bool {
	d := a - b
	return d < 1e-9 && d > -1e-9
}
