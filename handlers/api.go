package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"mug-life-api/feedback"
	"mug-life-api/inventory"
	"mug-life-api/loyalty"
	"mug-life-api/metrics"
	"mug-life-api/models"
	"mug-life-api/orders"
	"mug-life-api/pricing"
)

// API bundles the in-memory stores behind the HTTP handlers. One API is
// built at startup and shared by every request; there is no per-session
// global state.
type API struct {
	Ledger   *inventory.Ledger
	Carts    *orders.CartStore
	Workflow *orders.Workflow
	Coupons  *pricing.CouponStore
	Loyalty  *loyalty.Store
	Feedback *feedback.Store
	Metrics  *metrics.OrderMetrics
}

// NewAPI wires up the full store graph.
func NewAPI(m *metrics.OrderMetrics) *API {
	ledger := inventory.NewLedger()
	carts := orders.NewCartStore()
	coupons := pricing.NewCouponStore()
	loyaltyStore := loyalty.NewStore()
	workflow := orders.NewWorkflow(ledger, carts, pricing.NewResolver(coupons), loyaltyStore)
	workflow.Metrics = m

	return &API{
		Ledger:   ledger,
		Carts:    carts,
		Workflow: workflow,
		Coupons:  coupons,
		Loyalty:  loyaltyStore,
		Feedback: feedback.NewStore(),
		Metrics:  m,
	}
}

// statusFor maps domain errors onto HTTP statuses.
func statusFor(err error) int {
	var insufficient *inventory.InsufficientStockError
	var invalidPayment *orders.InvalidPaymentError
	switch {
	case errors.As(err, &insufficient):
		return http.StatusConflict
	case errors.As(err, &invalidPayment):
		return http.StatusUnprocessableEntity
	case errors.Is(err, pricing.ErrInvalidCoupon):
		return http.StatusUnprocessableEntity
	case errors.Is(err, orders.ErrUnknownOrder):
		return http.StatusNotFound
	default:
		return http.StatusBadRequest
	}
}

// branchFromQuery parses the required ?branch= parameter.
func branchFromQuery(c *gin.Context) (models.Branch, bool) {
	branch, ok := models.ParseBranch(c.Query("branch"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":    "Unknown or missing branch",
			"branches": models.AllBranches(),
		})
		return "", false
	}
	return branch, true
}
