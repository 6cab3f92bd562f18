package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"mug-life-api/middleware"
	"mug-life-api/models"
	"mug-life-api/orders"
	"mug-life-api/pricing"

	"github.com/gin-gonic/gin"
)

// CreateCart opens an empty cart for the logged-in customer
func (a *API) CreateCart(c *gin.Context) {
	cart := a.Carts.Create(middleware.GetUsername(c))
	c.JSON(http.StatusCreated, gin.H{"cart": cart})
}

// ownCart loads a cart and verifies the caller owns it. Writes the
// error response itself when the check fails.
func (a *API) ownCart(c *gin.Context, cartID string) (models.Cart, bool) {
	cart, ok := a.Carts.Get(cartID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Cart not found"})
		return models.Cart{}, false
	}
	if cart.Customer != middleware.GetUsername(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "This cart does not belong to you"})
		return models.Cart{}, false
	}
	return cart, true
}

// ownOrder loads an order and verifies the caller owns it.
func (a *API) ownOrder(c *gin.Context, number int) (models.Order, bool) {
	order, err := a.Workflow.Get(number)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return models.Order{}, false
	}
	if order.Customer != middleware.GetUsername(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "This order does not belong to you"})
		return models.Order{}, false
	}
	return order, true
}

type AddLineRequest struct {
	Item     string      `json:"item" binding:"required"`
	Size     models.Size `json:"size" binding:"required"`
	Quantity int         `json:"quantity" binding:"required,min=1"`
	AddOns   []string    `json:"add_ons"`
}

// AddCartLine appends a priced line to the caller's own cart
func (a *API) AddCartLine(c *gin.Context) {
	var req AddLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if _, ok := a.ownCart(c, c.Param("id")); !ok {
		return
	}

	line, err := a.Carts.AddLine(c.Param("id"), req.Item, req.Size, req.Quantity, req.AddOns)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cart, _ := a.Carts.Get(c.Param("id"))
	var subtotal float64
	for _, l := range cart.Lines {
		subtotal += l.LineTotal
	}
	c.JSON(http.StatusOK, gin.H{
		"message":  fmt.Sprintf("Added %d x %s %s to your order", req.Quantity, req.Size, req.Item),
		"line":     line,
		"cart":     cart,
		"subtotal": subtotal,
	})
}

// GetCart returns the caller's cart with its running subtotal
func (a *API) GetCart(c *gin.Context) {
	cart, ok := a.ownCart(c, c.Param("id"))
	if !ok {
		return
	}
	var subtotal float64
	for _, l := range cart.Lines {
		subtotal += l.LineTotal
	}
	c.JSON(http.StatusOK, gin.H{"cart": cart, "subtotal": subtotal})
}

type QuoteRequest struct {
	CouponCode string `json:"coupon_code"`
	Points     int    `json:"points"`
}

// QuoteCart previews the discount stack for the caller's cart without
// committing it
func (a *API) QuoteCart(c *gin.Context) {
	cart, ok := a.ownCart(c, c.Param("id"))
	if !ok {
		return
	}
	var req QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	balance := a.Loyalty.Balance(cart.Customer)
	quote, couponErr := a.Workflow.Resolver.Quote(cart.Lines, req.CouponCode, req.Points, balance, time.Now())

	resp := gin.H{"quote": quote, "loyalty_balance": balance}
	if couponErr != nil {
		resp["coupon_warning"] = couponErr.Error()
	}
	c.JSON(http.StatusOK, resp)
}

type ConfirmOrderRequest struct {
	CartID     string         `json:"cart_id" binding:"required"`
	Branch     string         `json:"branch" binding:"required"`
	Payment    models.Payment `json:"payment" binding:"required"`
	CouponCode string         `json:"coupon_code"`
	Points     int            `json:"points"`
}

// ConfirmOrder commits a cart to an order: validates payment, checks
// stock for every line, deducts inventory and issues the receipt.
// Rejection at any step leaves no state change.
func (a *API) ConfirmOrder(c *gin.Context) {
	var req ConfirmOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	branch, ok := models.ParseBranch(req.Branch)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown branch", "branches": models.AllBranches()})
		return
	}
	if _, ok := a.ownCart(c, req.CartID); !ok {
		return
	}

	result, err := a.Workflow.Confirm(orders.ConfirmRequest{
		CartID:     req.CartID,
		Branch:     branch,
		Payment:    req.Payment,
		CouponCode: req.CouponCode,
		Points:     req.Points,
	})
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	wait := result.EstimatedWait
	resp := gin.H{
		"message":                "Order placed successfully",
		"order":                  result.Order,
		"quote":                  result.Quote,
		"points_earned":          result.PointsEarned,
		"estimated_wait_seconds": int(wait.Seconds()),
		"estimated_wait":         fmt.Sprintf("%d minutes and %d seconds", int(wait.Minutes()), int(wait.Seconds())%60),
		"receipt_url":            fmt.Sprintf("/api/customer/orders/%d/receipt", result.Order.Number),
	}
	if result.CouponWarning != "" {
		resp["coupon_warning"] = result.CouponWarning
	}
	c.JSON(http.StatusCreated, resp)
}

// OrderBoard shows orders being processed and ready for pickup
func (a *API) OrderBoard(c *gin.Context) {
	branches := models.AllBranches()
	if b, ok := models.ParseBranch(c.Query("branch")); ok {
		branches = []models.Branch{b}
	}

	var processing, ready []models.Order
	for _, b := range branches {
		processing = append(processing, a.Workflow.Active(b, models.StatusBeingProcessed)...)
		ready = append(ready, a.Workflow.Active(b, models.StatusReady)...)
	}
	c.JSON(http.StatusOK, gin.H{
		"being_processed": processing,
		"ready":           ready,
	})
}

// PickupOrder marks the caller's ready order as picked up and removes
// it from the active working set
func (a *API) PickupOrder(c *gin.Context) {
	number, err := strconv.Atoi(c.Param("number"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Order number must be numeric"})
		return
	}
	if _, ok := a.ownOrder(c, number); !ok {
		return
	}
	order, err := a.Workflow.MarkPickedUp(number, "customer")
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("Order #%d has been picked up!", order.Number),
		"order":   order,
	})
}

// GetReceipt serves the plain-text receipt for the caller's own order
func (a *API) GetReceipt(c *gin.Context) {
	number, err := strconv.Atoi(c.Param("number"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Order number must be numeric"})
		return
	}
	if _, ok := a.ownOrder(c, number); !ok {
		return
	}
	receipt, err := a.Workflow.Receipt(number)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=invoice_%d.txt", number))
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(receipt))
}

// GetLoyalty returns the customer's balance with earn and redemption history
func (a *API) GetLoyalty(c *gin.Context) {
	username := middleware.GetUsername(c)
	c.JSON(http.StatusOK, gin.H{
		"balance":        a.Loyalty.Balance(username),
		"earned":         a.Loyalty.EarnHistory(username),
		"redemptions":    a.Loyalty.RedemptionHistory(username),
		"point_value_rm": pricing.PointValue,
	})
}

type FeedbackRequest struct {
	Name          string `json:"name" binding:"required"`
	Item          string `json:"item" binding:"required"`
	CoffeeRating  int    `json:"coffee_rating" binding:"required,min=1,max=5"`
	ServiceRating int    `json:"service_rating" binding:"required,min=1,max=5"`
	Comments      string `json:"comments"`
	Branch        string `json:"branch" binding:"required"`
}

// SubmitFeedback records a customer feedback entry for a branch
func (a *API) SubmitFeedback(c *gin.Context) {
	var req FeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	branch, ok := models.ParseBranch(req.Branch)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown branch", "branches": models.AllBranches()})
		return
	}
	fb, err := a.Feedback.Submit(models.Feedback{
		Name:          req.Name,
		Item:          req.Item,
		CoffeeRating:  req.CoffeeRating,
		ServiceRating: req.ServiceRating,
		Comments:      req.Comments,
		Branch:        branch,
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Thank you for your feedback!", "feedback": fb})
}
