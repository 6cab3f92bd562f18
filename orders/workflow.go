// Package orders owns the order lifecycle: carts, confirmation with
// payment validation and atomic inventory deduction, the kitchen status
// transitions and the waiting-time estimate.
package orders

import (
	"fmt"
	"regexp"
	"sort"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"mug-life-api/catalog"
	"mug-life-api/inventory"
	"mug-life-api/loyalty"
	"mug-life-api/metrics"
	"mug-life-api/models"
	"mug-life-api/pricing"
	"mug-life-api/statemachine"
)

// Workflow coordinates the stores an order confirmation touches.
// Metrics may be nil (tests run without a registry).
type Workflow struct {
	Ledger   *inventory.Ledger
	Carts    *CartStore
	Resolver *pricing.Resolver
	Loyalty  *loyalty.Store
	Numbers  *NumberGenerator
	Metrics  *metrics.OrderMetrics
	Now      func() time.Time

	mu      sync.RWMutex
	active  map[int]*models.Order
	archive []models.Order
}

func NewWorkflow(ledger *inventory.Ledger, carts *CartStore, resolver *pricing.Resolver, loy *loyalty.Store) *Workflow {
	return &Workflow{
		Ledger:   ledger,
		Carts:    carts,
		Resolver: resolver,
		Loyalty:  loy,
		Numbers:  NewNumberGenerator(),
		Now:      time.Now,
		active:   make(map[int]*models.Order),
	}
}

// ConfirmRequest is everything needed to commit a cart to an order.
type ConfirmRequest struct {
	CartID     string
	Branch     models.Branch
	Payment    models.Payment
	CouponCode string
	Points     int
}

// ConfirmResult is the committed order plus the priced breakdown, the
// receipt text and the queue estimate shown to the customer.
type ConfirmResult struct {
	Order         models.Order  `json:"order"`
	Quote         pricing.Quote `json:"quote"`
	CouponWarning string        `json:"coupon_warning,omitempty"`
	PointsEarned  int           `json:"points_earned"`
	EstimatedWait time.Duration `json:"-"`
	Receipt       string        `json:"-"`
}

var cardNumberPattern = regexp.MustCompile(`^\d{16}$`)
var cvvPattern = regexp.MustCompile(`^\d{3}$`)

// validatePayment checks card details structurally. Cash needs nothing.
// Nothing is charged either way.
func validatePayment(p models.Payment, now time.Time) error {
	switch p.Method {
	case models.PaymentCash:
		return nil
	case models.PaymentCreditCard, models.PaymentDebitCard:
		if p.Card == nil {
			return &InvalidPaymentError{Reason: "card details required"}
		}
		if !cardNumberPattern.MatchString(p.Card.Number) {
			return &InvalidPaymentError{Reason: "card number must be 16 digits"}
		}
		if p.Card.ExpMonth < 1 || p.Card.ExpMonth > 12 {
			return &InvalidPaymentError{Reason: "expiry month must be 1-12"}
		}
		year := p.Card.ExpYear
		if year < 100 {
			year += 2000
		}
		if year < now.Year() || (year == now.Year() && time.Month(p.Card.ExpMonth) < now.Month()) {
			return &InvalidPaymentError{Reason: "card is expired"}
		}
		if !cvvPattern.MatchString(p.Card.CVV) {
			return &InvalidPaymentError{Reason: "CVV must be 3 digits"}
		}
		return nil
	default:
		return &InvalidPaymentError{Reason: fmt.Sprintf("unknown payment method %q", p.Method)}
	}
}

// Confirm commits a cart: payment validation, availability, a fresh
// unique order number, the stacked discount, the atomic inventory
// deduction and the receipt. Any failure leaves every store untouched;
// there is no partial fulfillment.
func (w *Workflow) Confirm(req ConfirmRequest) (*ConfirmResult, error) {
	cart, ok := w.Carts.Get(req.CartID)
	if !ok {
		return nil, fmt.Errorf("no such cart %q", req.CartID)
	}
	if len(cart.Lines) == 0 {
		return nil, ErrEmptyCart
	}
	now := w.Now()

	if err := validatePayment(req.Payment, now); err != nil {
		return nil, err
	}

	balance := w.Loyalty.Balance(cart.Customer)
	quote, couponErr := w.Resolver.Quote(cart.Lines, req.CouponCode, req.Points, balance, now)

	number, err := w.Numbers.Next()
	if err != nil {
		return nil, err
	}

	if err := w.Ledger.ReserveAndDeduct(req.Branch, cart.Lines); err != nil {
		w.Metrics.OrderRejected(req.Branch)
		return nil, err
	}

	// Past this point the order exists: stock is deducted and the
	// number is committed.
	w.Loyalty.Redeem(cart.Customer, quote.PointsRedeemed, number)

	totalCups := 0
	for _, line := range cart.Lines {
		totalCups += line.Quantity
	}
	w.Loyalty.Earn(cart.Customer, totalCups, number)

	order := models.Order{
		Number:          number,
		Customer:        cart.Customer,
		Branch:          req.Branch,
		Lines:           cart.Lines,
		Subtotal:        quote.Subtotal,
		DailyDiscount:   quote.DailyDiscount,
		CouponCode:      quote.CouponCode,
		CouponDiscount:  quote.CouponDiscount,
		PointsRedeemed:  quote.PointsRedeemed,
		LoyaltyDiscount: quote.LoyaltyDiscount,
		FinalPrice:      quote.Total,
		Status:          models.StatusBeingProcessed,
		CreatedAt:       now,
	}

	if quote.CouponCode != "" {
		w.Resolver.Coupons.RecordUsage(quote.CouponCode, number, quote.CouponDiscount, now)
	}

	wait := w.EstimateWait(req.Branch, cart.Lines)

	w.mu.Lock()
	w.active[number] = &order
	w.mu.Unlock()

	w.Carts.remove(req.CartID)
	w.Metrics.OrderPlaced(req.Branch, quote.Total)

	logrus.WithFields(logrus.Fields{
		"order":    number,
		"branch":   req.Branch,
		"customer": cart.Customer,
		"total":    quote.Total,
	}).Info("order confirmed")

	result := &ConfirmResult{
		Order:         order,
		Quote:         quote,
		PointsEarned:  totalCups,
		EstimatedWait: wait,
		Receipt:       BuildReceipt(order),
	}
	if couponErr != nil {
		result.CouponWarning = couponErr.Error()
	}
	return result, nil
}

// MarkReady moves an active order from Being Processed to Ready.
func (w *Workflow) MarkReady(number int, actor string) (models.Order, error) {
	return w.transition(number, models.StatusReady, actor)
}

// MarkPickedUp moves a Ready order to Picked Up and drops it from the
// active working set. The order stays in the archive for reporting.
func (w *Workflow) MarkPickedUp(number int, actor string) (models.Order, error) {
	return w.transition(number, models.StatusPickedUp, actor)
}

func (w *Workflow) transition(number int, to models.OrderStatus, actor string) (models.Order, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	order, ok := w.active[number]
	if !ok {
		return models.Order{}, ErrUnknownOrder
	}
	if err := statemachine.CanTransition(order.Status, to, actor); err != nil {
		return models.Order{}, err
	}
	order.Status = to
	if to == models.StatusPickedUp {
		delete(w.active, number)
		w.archive = append(w.archive, *order)
	}
	return *order, nil
}

// Get returns an order by number, active or archived.
func (w *Workflow) Get(number int) (models.Order, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if order, ok := w.active[number]; ok {
		return *order, nil
	}
	for _, order := range w.archive {
		if order.Number == number {
			return order, nil
		}
	}
	return models.Order{}, ErrUnknownOrder
}

// Receipt renders the plain-text receipt for an order.
func (w *Workflow) Receipt(number int) (string, error) {
	order, err := w.Get(number)
	if err != nil {
		return "", err
	}
	return BuildReceipt(order), nil
}

// Active returns the active orders for a branch, optionally filtered to
// one status, oldest first.
func (w *Workflow) Active(branch models.Branch, status models.OrderStatus) []models.Order {
	w.mu.RLock()
	defer w.mu.RUnlock()
	var out []models.Order
	for _, order := range w.active {
		if order.Branch != branch {
			continue
		}
		if status != "" && order.Status != status {
			continue
		}
		out = append(out, *order)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}

// History returns every order ever placed at a branch, including picked
// up ones, oldest first.
func (w *Workflow) History(branch models.Branch) []models.Order {
	w.mu.RLock()
	defer w.mu.RUnlock()
	var out []models.Order
	for _, order := range w.active {
		if order.Branch == branch {
			out = append(out, *order)
		}
	}
	for _, order := range w.archive {
		if order.Branch == branch {
			out = append(out, order)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}

// EstimateWait approximates the queue delay at a branch: the summed prep
// time of every order currently Being Processed there plus the given cart
// lines. First come, first served; no parallelism assumed.
func (w *Workflow) EstimateWait(branch models.Branch, extra []models.CartLine) time.Duration {
	var total time.Duration
	w.mu.RLock()
	for _, order := range w.active {
		if order.Branch != branch || order.Status != models.StatusBeingProcessed {
			continue
		}
		for _, line := range order.Lines {
			total += catalog.PrepTime(line.Size, len(line.AddOns))
		}
	}
	w.mu.RUnlock()
	for _, line := range extra {
		total += catalog.PrepTime(line.Size, len(line.AddOns))
	}
	return total
}
