package orders

import (
	"errors"
	"strings"
	"testing"
	"time"

	"mug-life-api/inventory"
	"mug-life-api/loyalty"
	"mug-life-api/models"
	"mug-life-api/pricing"
)

// 2024-06-03 is a Monday; the Americano special is in force.
var monday = time.Date(2024, 6, 3, 12, 0, 0, 0, time.UTC)

func newTestWorkflow() *Workflow {
	w := NewWorkflow(
		inventory.NewLedger(),
		NewCartStore(),
		pricing.NewResolver(pricing.NewCouponStore()),
		loyalty.NewStore(),
	)
	w.Now = func() time.Time { return monday }
	return w
}

func cartWith(t *testing.T, w *Workflow, customer, item string, size models.Size, qty int, addOns ...string) string {
	t.Helper()
	cart := w.Carts.Create(customer)
	if _, err := w.Carts.AddLine(cart.ID, item, size, qty, addOns); err != nil {
		t.Fatalf("AddLine: %v", err)
	}
	return cart.ID
}

func TestNumberGenerator(t *testing.T) {
	g := NewNumberGenerator()
	seen := make(map[int]bool)
	for i := 0; i < 500; i++ {
		n, err := g.Next()
		if err != nil {
			t.Fatalf("Next: %v", err)
		}
		if n < 1000 || n > 9999 {
			t.Fatalf("number %d out of [1000, 9999]", n)
		}
		if seen[n] {
			t.Fatalf("number %d issued twice", n)
		}
		seen[n] = true
	}
}

func TestCartAddLine(t *testing.T) {
	s := NewCartStore()
	cart := s.Create("alia")

	line, err := s.AddLine(cart.ID, "Cappuccino", models.SizeMedium, 2, []string{"Extra milk"})
	if err != nil {
		t.Fatalf("AddLine: %v", err)
	}
	if line.UnitPrice != 7.40 {
		t.Errorf("unit price = %.2f, want 6.50 + 0.90", line.UnitPrice)
	}
	if line.LineTotal != 14.80 {
		t.Errorf("line total = %.2f, want 14.80", line.LineTotal)
	}

	tests := []struct {
		name   string
		item   string
		size   models.Size
		qty    int
		addOns []string
	}{
		{"zero quantity", "Latte", models.SizeSmall, 0, nil},
		{"unknown item", "Espresso", models.SizeSmall, 1, nil},
		{"unknown size", "Latte", models.Size("venti"), 1, nil},
		{"unknown add-on", "Latte", models.SizeSmall, 1, []string{"Oat milk"}},
		{"duplicate add-on", "Latte", models.SizeSmall, 1, []string{"Extra milk", "Extra milk"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := s.AddLine(cart.ID, tt.item, tt.size, tt.qty, tt.addOns); err == nil {
				t.Error("AddLine accepted an invalid line")
			}
		})
	}

	if _, err := s.AddLine("missing", "Latte", models.SizeSmall, 1, nil); err == nil {
		t.Error("AddLine accepted a missing cart")
	}
}

func TestValidatePayment(t *testing.T) {
	card := func(number string, month, year int, cvv string) *models.CardDetails {
		return &models.CardDetails{Number: number, Holder: "A. Customer", ExpMonth: month, ExpYear: year, CVV: cvv}
	}
	tests := []struct {
		name    string
		payment models.Payment
		ok      bool
	}{
		{"cash needs nothing", models.Payment{Method: models.PaymentCash}, true},
		{"valid credit card", models.Payment{Method: models.PaymentCreditCard, Card: card("4556737586899855", 12, 2026, "123")}, true},
		{"two digit year accepted", models.Payment{Method: models.PaymentDebitCard, Card: card("4556737586899855", 12, 26, "123")}, true},
		{"expires this month is valid", models.Payment{Method: models.PaymentCreditCard, Card: card("4556737586899855", 6, 2024, "123")}, true},
		{"card details missing", models.Payment{Method: models.PaymentCreditCard}, false},
		{"short card number", models.Payment{Method: models.PaymentCreditCard, Card: card("1234", 12, 2026, "123")}, false},
		{"letters in card number", models.Payment{Method: models.PaymentCreditCard, Card: card("4556x37586899855", 12, 2026, "123")}, false},
		{"month out of range", models.Payment{Method: models.PaymentCreditCard, Card: card("4556737586899855", 13, 2026, "123")}, false},
		{"expired last month", models.Payment{Method: models.PaymentCreditCard, Card: card("4556737586899855", 5, 2024, "123")}, false},
		{"expired last year", models.Payment{Method: models.PaymentCreditCard, Card: card("4556737586899855", 12, 23, "123")}, false},
		{"bad cvv", models.Payment{Method: models.PaymentCreditCard, Card: card("4556737586899855", 12, 2026, "12")}, false},
		{"unknown method", models.Payment{Method: models.PaymentMethod("Barter")}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validatePayment(tt.payment, monday)
			if tt.ok && err != nil {
				t.Errorf("validatePayment = %v, want ok", err)
			}
			if !tt.ok {
				var invalid *InvalidPaymentError
				if !errors.As(err, &invalid) {
					t.Errorf("validatePayment = %v, want InvalidPaymentError", err)
				}
			}
		})
	}
}

func TestConfirm(t *testing.T) {
	w := newTestWorkflow()
	cartID := cartWith(t, w, "alia", "Americano", models.SizeMedium, 2)

	result, err := w.Confirm(ConfirmRequest{
		CartID:  cartID,
		Branch:  models.BranchKLCC,
		Payment: models.Payment{Method: models.PaymentCash},
	})
	if err != nil {
		t.Fatalf("Confirm: %v", err)
	}

	order := result.Order
	if order.Number < 1000 || order.Number > 9999 {
		t.Errorf("order number %d out of range", order.Number)
	}
	if order.Status != models.StatusBeingProcessed {
		t.Errorf("status = %q, want Being Processed", order.Status)
	}
	if order.Subtotal != 10.00 {
		t.Errorf("subtotal = %.2f, want 10.00", order.Subtotal)
	}
	// Monday special: 20% off the Americano subtotal.
	if order.DailyDiscount != 2.00 || order.FinalPrice != 8.00 {
		t.Errorf("daily discount %.2f, final %.2f; want 2.00 and 8.00", order.DailyDiscount, order.FinalPrice)
	}

	// Stock was deducted at the order's branch.
	stock, _ := w.Ledger.Snapshot(models.BranchKLCC)
	if stock.CoffeeBeans != 976 || stock.Cups != 498 {
		t.Errorf("stock after confirm = %+v", stock)
	}

	// One point per cup was earned.
	if result.PointsEarned != 2 {
		t.Errorf("points earned = %d, want 2", result.PointsEarned)
	}
	if got := w.Loyalty.Balance("alia"); got != 2 {
		t.Errorf("loyalty balance = %d, want 2", got)
	}

	// The cart is gone.
	if _, ok := w.Carts.Get(cartID); ok {
		t.Error("cart survived its confirmation")
	}

	if !strings.Contains(result.Receipt, "Thank you for your purchase!") {
		t.Errorf("receipt missing closing line:\n%s", result.Receipt)
	}
	if result.EstimatedWait != 180*time.Second {
		t.Errorf("estimated wait = %v, want 180s for one medium line", result.EstimatedWait)
	}
}

func TestConfirmEmptyCart(t *testing.T) {
	w := newTestWorkflow()
	cart := w.Carts.Create("alia")
	_, err := w.Confirm(ConfirmRequest{
		CartID:  cart.ID,
		Branch:  models.BranchKLCC,
		Payment: models.Payment{Method: models.PaymentCash},
	})
	if !errors.Is(err, ErrEmptyCart) {
		t.Errorf("err = %v, want ErrEmptyCart", err)
	}
}

func TestConfirmInsufficientStockLeavesEverythingUntouched(t *testing.T) {
	w := newTestWorkflow()
	w.Loyalty.Earn("alia", 4, 1)
	cartID := cartWith(t, w, "alia", "Latte", models.SizeLarge, 90)

	_, err := w.Confirm(ConfirmRequest{
		CartID:  cartID,
		Branch:  models.BranchTRX,
		Payment: models.Payment{Method: models.PaymentCash},
		Points:  2,
	})
	var insufficient *inventory.InsufficientStockError
	if !errors.As(err, &insufficient) {
		t.Fatalf("err = %v, want InsufficientStockError", err)
	}

	stock, _ := w.Ledger.Snapshot(models.BranchTRX)
	if stock.CoffeeBeans != 1000 {
		t.Errorf("failed confirm deducted stock: %+v", stock)
	}
	if got := w.Loyalty.Balance("alia"); got != 4 {
		t.Errorf("failed confirm touched loyalty: balance = %d, want 4", got)
	}
	if _, ok := w.Carts.Get(cartID); !ok {
		t.Error("failed confirm dropped the cart")
	}
}

func TestConfirmInvalidCouponWarns(t *testing.T) {
	w := newTestWorkflow()
	cartID := cartWith(t, w, "alia", "Latte", models.SizeSmall, 1)

	result, err := w.Confirm(ConfirmRequest{
		CartID:     cartID,
		Branch:     models.BranchKLCC,
		Payment:    models.Payment{Method: models.PaymentCash},
		CouponCode: "NOPE",
	})
	if err != nil {
		t.Fatalf("Confirm: %v", err)
	}
	if result.CouponWarning == "" {
		t.Error("invalid coupon produced no warning")
	}
	if result.Order.CouponDiscount != 0 {
		t.Errorf("invalid coupon discounted %.2f", result.Order.CouponDiscount)
	}
}

func TestConfirmRedeemsPoints(t *testing.T) {
	w := newTestWorkflow()
	w.Loyalty.Earn("alia", 10, 1)
	cartID := cartWith(t, w, "alia", "Latte", models.SizeSmall, 1)

	result, err := w.Confirm(ConfirmRequest{
		CartID:  cartID,
		Branch:  models.BranchKLCC,
		Payment: models.Payment{Method: models.PaymentCash},
		Points:  4,
	})
	if err != nil {
		t.Fatalf("Confirm: %v", err)
	}
	if result.Order.PointsRedeemed != 4 || result.Order.LoyaltyDiscount != 2.00 {
		t.Errorf("redeemed %d for RM%.2f, want 4 for RM2.00",
			result.Order.PointsRedeemed, result.Order.LoyaltyDiscount)
	}
	// 10 earned, 4 redeemed, 1 earned back for the cup.
	if got := w.Loyalty.Balance("alia"); got != 7 {
		t.Errorf("balance = %d, want 7", got)
	}
}

func TestStatusTransitions(t *testing.T) {
	w := newTestWorkflow()
	cartID := cartWith(t, w, "alia", "Americano", models.SizeSmall, 1)
	result, err := w.Confirm(ConfirmRequest{
		CartID:  cartID,
		Branch:  models.BranchKLCC,
		Payment: models.Payment{Method: models.PaymentCash},
	})
	if err != nil {
		t.Fatalf("Confirm: %v", err)
	}
	number := result.Order.Number

	// A customer cannot mark the order ready.
	if _, err := w.MarkReady(number, "customer"); err == nil {
		t.Error("customer marked an order ready")
	}
	// Pickup before Ready is rejected.
	if _, err := w.MarkPickedUp(number, "customer"); err == nil {
		t.Error("picked up an order still being processed")
	}

	order, err := w.MarkReady(number, "admin")
	if err != nil {
		t.Fatalf("MarkReady: %v", err)
	}
	if order.Status != models.StatusReady {
		t.Errorf("status = %q, want Ready", order.Status)
	}

	order, err = w.MarkPickedUp(number, "customer")
	if err != nil {
		t.Fatalf("MarkPickedUp: %v", err)
	}
	if order.Status != models.StatusPickedUp {
		t.Errorf("status = %q, want Picked Up", order.Status)
	}

	// Picked up orders leave the board but stay retrievable.
	if active := w.Active(models.BranchKLCC, ""); len(active) != 0 {
		t.Errorf("picked up order still on the board: %+v", active)
	}
	got, err := w.Get(number)
	if err != nil {
		t.Fatalf("Get after pickup: %v", err)
	}
	if got.Status != models.StatusPickedUp {
		t.Errorf("archived status = %q", got.Status)
	}
	if history := w.History(models.BranchKLCC); len(history) != 1 {
		t.Errorf("history has %d orders, want 1", len(history))
	}

	// A second pickup of the same order is unknown.
	if _, err := w.MarkPickedUp(number, "customer"); !errors.Is(err, ErrUnknownOrder) {
		t.Errorf("second pickup err = %v, want ErrUnknownOrder", err)
	}
}

func TestGetUnknownOrder(t *testing.T) {
	w := newTestWorkflow()
	if _, err := w.Get(1234); !errors.Is(err, ErrUnknownOrder) {
		t.Errorf("err = %v, want ErrUnknownOrder", err)
	}
	if _, err := w.Receipt(1234); !errors.Is(err, ErrUnknownOrder) {
		t.Errorf("Receipt err = %v, want ErrUnknownOrder", err)
	}
}

func TestEstimateWait(t *testing.T) {
	w := newTestWorkflow()

	// Queue one order: a medium with one add-on, 180 + 30 seconds.
	cartID := cartWith(t, w, "alia", "Cappuccino", models.SizeMedium, 1, "Extra milk")
	if _, err := w.Confirm(ConfirmRequest{
		CartID:  cartID,
		Branch:  models.BranchKLCC,
		Payment: models.Payment{Method: models.PaymentCash},
	}); err != nil {
		t.Fatalf("Confirm: %v", err)
	}

	extra := []models.CartLine{{Item: "Americano", Size: models.SizeSmall, Quantity: 1}}
	if got, want := w.EstimateWait(models.BranchKLCC, extra), 330*time.Second; got != want {
		t.Errorf("EstimateWait = %v, want %v", got, want)
	}

	// Another branch's queue is empty.
	if got := w.EstimateWait(models.BranchTRX, nil); got != 0 {
		t.Errorf("EstimateWait at idle branch = %v, want 0", got)
	}
}
