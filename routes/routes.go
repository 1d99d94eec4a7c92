package routes

import (
	"restaurant-management-api/handlers"
	"restaurant-management-api/middleware"
	"restaurant-management-api/models"
	"restaurant-management-api/notify"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine, hooks *notify.Handler) {
	// ── Public routes ──────────────────────────────────────────────
	public := r.Group("/api")
	{
		// Auth
		public.POST("/auth/register", handlers.Register)
		public.POST("/auth/login", handlers.Login)
		public.POST("/auth/reset-request", handlers.RequestPasswordReset)
		public.POST("/auth/reset-confirm", handlers.ConfirmPasswordReset)

		// Restaurants & menus (no auth needed)
		public.GET("/restaurants", handlers.ListRestaurants)
		public.GET("/restaurants/:id", handlers.GetRestaurant)
		public.GET("/restaurants/:id/menu", handlers.GetMenu)

		// State machine info (great for docs/Postman)
		public.GET("/state-machine", handlers.GetStateMachineInfo)
	}

	// ── Email webhooks (signature is the auth) ─────────────────────
	webhooks := r.Group("/webhooks")
	{
		webhooks.POST("/auth/verification-email", hooks.VerificationEmail)
		webhooks.POST("/auth/reset-email", hooks.ResetEmail)
	}

	// ── Authenticated routes ───────────────────────────────────────
	auth := r.Group("/api")
	auth.Use(middleware.AuthRequired())
	{
		auth.GET("/profile", handlers.GetProfile)
	}

	// ── Customer routes ────────────────────────────────────────────
	customer := r.Group("/api/customer")
	customer.Use(middleware.AuthRequired(), middleware.RoleRequired(models.RoleCustomer))
	{
		customer.GET("/orders", handlers.GetMyOrders)
		customer.PUT("/orders/:id/cancel", handlers.CancelMyOrder)
		customer.POST("/reservations", handlers.CreateReservation)
		customer.GET("/reservations", handlers.GetMyReservations)
		customer.PUT("/reservations/:id/cancel", handlers.CancelMyReservation)
		customer.GET("/loyalty", handlers.GetMyLoyalty)
	}

	// ── Staff routes (waiters, chefs, cashiers, owners) ────────────
	floor := r.Group("/api/staff")
	floor.Use(middleware.AuthRequired(), middleware.RoleRequired(models.RoleStaff, models.RoleOwner))
	{
		// Orders
		floor.POST("/orders", handlers.CreateOrder)
		floor.GET("/orders", handlers.ListOrders)
		floor.GET("/orders/:id", handlers.GetOrderDetail)
		floor.PUT("/orders/:id/status", handlers.UpdateOrderStatus)

		// Reservations
		floor.GET("/reservations", handlers.ListReservations)
		floor.PUT("/reservations/:id/status", handlers.UpdateReservationStatus)

		// Inventory
		floor.POST("/inventory", handlers.AddInventoryItem)
		floor.GET("/inventory", handlers.ListInventory)
		floor.PUT("/inventory/:itemId/adjust", handlers.AdjustStock)
		floor.GET("/inventory/:itemId/movements", handlers.GetStockMovements)

		// Counter loyalty
		floor.GET("/customers/lookup", handlers.LookupCustomer)
		floor.POST("/loyalty/redeem", handlers.RedeemPoints)

		// Reports
		floor.GET("/reports/popularity", handlers.MenuPopularity)
		floor.GET("/reports/revenue", handlers.RevenueTrend)
		floor.GET("/reports/status-summary", handlers.OrderStatusSummary)
		floor.GET("/reports/low-stock", handlers.LowStockReport)
	}

	// ── Owner routes ───────────────────────────────────────────────
	owner := r.Group("/api/owner")
	owner.Use(middleware.AuthRequired(), middleware.RoleRequired(models.RoleOwner))
	{
		// Restaurant management
		owner.POST("/restaurant", handlers.CreateRestaurant)
		owner.GET("/restaurant", handlers.GetMyRestaurant)
		owner.PUT("/restaurant", handlers.UpdateRestaurant)

		// Menu management
		owner.POST("/menu", handlers.AddMenuItem)
		owner.PUT("/menu/:itemId", handlers.UpdateMenuItem)
		owner.DELETE("/menu/:itemId", handlers.DeleteMenuItem)

		// Staff management
		owner.GET("/roles", handlers.ListStaffRoles)
		owner.PUT("/roles/:roleId", handlers.UpdateStaffRole)
		owner.POST("/staff", handlers.AddStaffMember)
		owner.GET("/staff", handlers.ListStaffMembers)
		owner.DELETE("/staff/:memberId", handlers.RemoveStaffMember)

		// Loyalty program
		owner.POST("/loyalty-program", handlers.ConfigureLoyaltyProgram)
	}

	// ── Admin routes ───────────────────────────────────────────────
	admin := r.Group("/api/admin")
	admin.Use(middleware.AuthRequired(), middleware.RoleRequired(models.RoleAdmin))
	{
		admin.GET("/orders", handlers.AdminGetAllOrders)
		admin.PUT("/orders/:id/status", handlers.AdminForceOrderStatus)
		admin.GET("/users", handlers.AdminGetAllUsers)
		admin.GET("/restaurants", handlers.AdminGetAllRestaurants)
	}
}
