package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"mug-life-api/analytics"
	"mug-life-api/catalog"
	"mug-life-api/models"

	"github.com/gin-gonic/gin"
)

// GetInventory returns a branch's stock snapshot with low-stock alerts
// and the estimated remaining cup capacity
func (a *API) GetInventory(c *gin.Context) {
	branch, ok := branchFromQuery(c)
	if !ok {
		return
	}
	stock, _ := a.Ledger.Snapshot(branch)
	c.JSON(http.StatusOK, gin.H{
		"branch":         branch,
		"stock":          stock,
		"low_stock":      a.Ledger.LowStock(branch),
		"estimated_cups": a.Ledger.EstimateCups(branch),
		"restock_prices": restockPriceTable(),
	})
}

func restockPriceTable() []gin.H {
	var table []gin.H
	for _, r := range models.AllResources() {
		price, _ := catalog.RestockUnitPrice(r)
		unit := "per 100"
		if r == models.ResourceCups {
			unit = "per cup"
		}
		table = append(table, gin.H{"resource": r, "price": price, "unit": unit})
	}
	return table
}

type RestockRequest struct {
	Branch   string `json:"branch" binding:"required"`
	Resource string `json:"resource" binding:"required"`
	Amount   int    `json:"amount" binding:"required,min=1"`
}

// Restock increases a branch's stock and records the audit entry
func (a *API) Restock(c *gin.Context) {
	var req RestockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	branch, ok := models.ParseBranch(req.Branch)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown branch", "branches": models.AllBranches()})
		return
	}

	entry, err := a.Ledger.Restock(branch, models.Resource(req.Resource), req.Amount)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	a.Metrics.Restocked(branch, entry.Resource)

	stock, _ := a.Ledger.Snapshot(branch)
	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("Restocked %s by %d at %s", entry.Resource, entry.Amount, branch),
		"entry":   entry,
		"cost":    entry.Cost,
		"stock":   stock,
	})
}

// GetRestockHistory returns the full restock audit log
func (a *API) GetRestockHistory(c *gin.Context) {
	history := a.Ledger.History()
	var total float64
	for _, e := range history {
		total += e.Cost
	}
	c.JSON(http.StatusOK, gin.H{
		"count":      len(history),
		"total_cost": total,
		"entries":    history,
	})
}

// GetRestockInvoice serves the restock history as a plain-text invoice
func (a *API) GetRestockInvoice(c *gin.Context) {
	invoice := a.Ledger.InvoiceText(time.Now())
	filename := fmt.Sprintf("restock_invoice_%s.txt", time.Now().Format("20060102_150405"))
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(invoice))
}

// GetKitchenOrders returns the orders in progress for a branch
func (a *API) GetKitchenOrders(c *gin.Context) {
	branch, ok := branchFromQuery(c)
	if !ok {
		return
	}
	inProgress := a.Workflow.Active(branch, models.StatusBeingProcessed)
	c.JSON(http.StatusOK, gin.H{
		"branch": branch,
		"count":  len(inProgress),
		"orders": inProgress,
	})
}

// MarkOrderReady moves an order from Being Processed to Ready
func (a *API) MarkOrderReady(c *gin.Context) {
	number, err := strconv.Atoi(c.Param("number"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Order number must be numeric"})
		return
	}
	order, err := a.Workflow.MarkReady(number, "admin")
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("Order #%d marked as ready", order.Number),
		"order":   order,
	})
}

// HandOverOrder lets staff mark a ready order picked up at the counter
func (a *API) HandOverOrder(c *gin.Context) {
	number, err := strconv.Atoi(c.Param("number"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Order number must be numeric"})
		return
	}
	order, err := a.Workflow.MarkPickedUp(number, "admin")
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("Order #%d has been picked up!", order.Number),
		"order":   order,
	})
}

type CreateCouponRequest struct {
	Code      string  `json:"code" binding:"required"`
	Discount  float64 `json:"discount" binding:"required,gt=0"`
	ExpiresAt string  `json:"expires_at" binding:"required"` // YYYY-MM-DD
}

// CreateCoupon registers a new coupon code
func (a *API) CreateCoupon(c *gin.Context) {
	var req CreateCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	expires, err := time.Parse("2006-01-02", req.ExpiresAt)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "expires_at must be YYYY-MM-DD"})
		return
	}
	coupon, err := a.Coupons.Create(req.Code, req.Discount, expires)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": fmt.Sprintf("Coupon '%s' created successfully!", coupon.Code),
		"coupon":  coupon,
	})
}

// ListCoupons returns all coupons with their usage history
func (a *API) ListCoupons(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"coupons": a.Coupons.List(),
		"usage":   a.Coupons.UsageHistory(),
	})
}

// GetSalesReport computes the sales report for a branch over a window
func (a *API) GetSalesReport(c *gin.Context) {
	branch, ok := branchFromQuery(c)
	if !ok {
		return
	}
	window := analytics.ParseWindow(c.Query("window"))
	report := analytics.Build(a.Workflow.History(branch), branch, window, time.Now())
	c.JSON(http.StatusOK, gin.H{"report": report})
}

// GetAnalytics returns the live dashboard numbers for a branch
func (a *API) GetAnalytics(c *gin.Context) {
	branch, ok := branchFromQuery(c)
	if !ok {
		return
	}
	history := a.Workflow.History(branch)
	var revenue float64
	for _, order := range history {
		revenue += order.FinalPrice
	}
	stock, _ := a.Ledger.Snapshot(branch)
	c.JSON(http.StatusOK, gin.H{
		"branch":         branch,
		"total_orders":   len(history),
		"total_revenue":  revenue,
		"stock":          stock,
		"estimated_cups": a.Ledger.EstimateCups(branch),
		"low_stock":      a.Ledger.LowStock(branch),
	})
}

// GetOrderHistory returns every order placed at a branch
func (a *API) GetOrderHistory(c *gin.Context) {
	branch, ok := branchFromQuery(c)
	if !ok {
		return
	}
	history := a.Workflow.History(branch)
	c.JSON(http.StatusOK, gin.H{
		"branch": branch,
		"count":  len(history),
		"orders": history,
	})
}

// ListFeedback returns the feedback submitted for a branch
func (a *API) ListFeedback(c *gin.Context) {
	branch, ok := branchFromQuery(c)
	if !ok {
		return
	}
	entries := a.Feedback.ForBranch(branch)
	c.JSON(http.StatusOK, gin.H{
		"branch":   branch,
		"count":    len(entries),
		"feedback": entries,
	})
}
