package routes

import (
	"mug-life-api/handlers"
	"mug-life-api/middleware"
	"mug-life-api/models"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine, api *handlers.API) {
	// ── Public routes ──────────────────────────────────────────────
	public := r.Group("/api")
	{
		// Auth
		public.POST("/auth/register", handlers.Register)
		public.POST("/auth/login", handlers.Login)

		// Menu & daily special (no auth needed)
		public.GET("/menu", handlers.GetMenu)
		public.GET("/menu/special", handlers.GetDailySpecial)

		// State machine info (great for docs/Postman)
		public.GET("/state-machine", handlers.GetStateMachineInfo)
	}

	// ── Authenticated routes ───────────────────────────────────────
	auth := r.Group("/api")
	auth.Use(middleware.AuthRequired())
	{
		auth.GET("/profile", api.GetProfile)
	}

	// ── Customer routes ────────────────────────────────────────────
	customer := r.Group("/api/customer")
	customer.Use(middleware.AuthRequired(), middleware.RoleRequired(models.RoleCustomer))
	{
		// Cart
		customer.POST("/cart", api.CreateCart)
		customer.GET("/cart/:id", api.GetCart)
		customer.POST("/cart/:id/lines", api.AddCartLine)
		customer.POST("/cart/:id/quote", api.QuoteCart)

		// Orders
		customer.POST("/orders", api.ConfirmOrder)
		customer.GET("/orders/board", api.OrderBoard)
		customer.PUT("/orders/:number/pickup", api.PickupOrder)
		customer.GET("/orders/:number/receipt", api.GetReceipt)

		// Loyalty & feedback
		customer.GET("/loyalty", api.GetLoyalty)
		customer.POST("/feedback", api.SubmitFeedback)
	}

	// ── Admin routes ───────────────────────────────────────────────
	admin := r.Group("/api/admin")
	admin.Use(middleware.AuthRequired(), middleware.RoleRequired(models.RoleAdmin))
	{
		// Inventory
		admin.GET("/inventory", api.GetInventory)
		admin.POST("/inventory/restock", api.Restock)
		admin.GET("/inventory/restocks", api.GetRestockHistory)
		admin.GET("/inventory/restocks/invoice", api.GetRestockInvoice)

		// Kitchen workflow
		admin.GET("/kitchen", api.GetKitchenOrders)
		admin.PUT("/kitchen/:number/ready", api.MarkOrderReady)
		admin.PUT("/kitchen/:number/pickup", api.HandOverOrder)

		// Coupons
		admin.POST("/coupons", api.CreateCoupon)
		admin.GET("/coupons", api.ListCoupons)

		// Reporting
		admin.GET("/reports/sales", api.GetSalesReport)
		admin.GET("/analytics", api.GetAnalytics)
		admin.GET("/orders", api.GetOrderHistory)
		admin.GET("/feedback", api.ListFeedback)
	}
}
