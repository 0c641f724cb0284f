package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/accelconnect/restauration-gateway/controllers"
	"github.com/accelconnect/restauration-gateway/middlewares"
	"github.com/accelconnect/restauration-gateway/services"
	"gorm.io/gorm"
)

// SetupRouter wires every controller behind the portal's route tree.
func SetupRouter(db *gorm.DB) *gin.Engine {
	r := gin.Default()

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())
	// 50 requests per second per IP; must be installed before the route
	// groups so gin binds it into every handler chain.
	r.Use(middlewares.NewRateLimiter(50, 1).RateLimit())

	snapshots := services.NewGormSnapshotStore(db)
	registry := services.NewCartRegistry(snapshots)

	backend := services.NewBackendClient("")
	menus := services.NewMenuClient(backend)
	orders := services.NewOrderClient(backend)
	wallets := services.NewWalletClient(backend)
	validator := services.NewCartValidationGateway(menus)

	cartCtrl := controllers.NewCartController(registry)
	orderCtrl := controllers.NewOrderController(registry, orders, validator)
	menuCtrl := controllers.NewMenuController(menus)
	walletCtrl := controllers.NewWalletController(wallets)
	adminCtrl := controllers.NewAdminController(orders, wallets)
	userCtrl := controllers.NewUserController(db, registry)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	auth := r.Group("/auth")
	auth.Use(middlewares.NewStrictRateLimiter())
	{
		auth.POST("/register", userCtrl.Register)
		auth.POST("/login", userCtrl.Login)
	}

	api := r.Group("/api")
	api.Use(middlewares.AuthMiddleware())
	{
		api.GET("/profile", userCtrl.GetProfile)
		api.POST("/logout", userCtrl.Logout)

		api.GET("/cart", cartCtrl.GetCart)
		api.POST("/cart/items", cartCtrl.AddItem)
		api.PATCH("/cart/items", cartCtrl.UpdateItem)
		api.DELETE("/cart/items/:restaurant_id/:meal_id", cartCtrl.RemoveItem)
		api.DELETE("/cart", cartCtrl.ClearCart)

		api.POST("/checkout", orderCtrl.Checkout)
		api.GET("/orders", orderCtrl.GetMyOrders)
		api.GET("/orders/:order_id", orderCtrl.GetOrder)
		api.PUT("/orders/:order_id/cancel", orderCtrl.CancelOrder)
		api.PUT("/orders/:order_id/modify", orderCtrl.ModifyOrder)

		api.GET("/menus", menuCtrl.GetTodayMenus)
		api.GET("/restaurants", menuCtrl.GetRestaurants)
		api.GET("/restaurants/with-menus", menuCtrl.GetRestaurantsWithMenus)

		api.GET("/wallet/balance", walletCtrl.GetBalance)
		api.GET("/wallet/transactions", walletCtrl.GetTransactions)
		api.GET("/budget/current", walletCtrl.GetCurrentBudget)
		api.GET("/budget/history", walletCtrl.GetBudgetHistory)
	}

	admin := api.Group("/admin")
	admin.Use(middlewares.RequireRole("admin"))
	{
		admin.POST("/menus", menuCtrl.CreateOrUpdateMenu)
		admin.DELETE("/menus/:menu_id", menuCtrl.DeleteMenu)
		admin.POST("/restaurants", menuCtrl.CreateRestaurant)
		admin.POST("/restaurants/:restaurant_id/meals/:meal_id", menuCtrl.AddMealToRestaurant)
		admin.GET("/dashboard", adminCtrl.GetDashboard)
		admin.GET("/dashboard/export", adminCtrl.ExportOrdersCSV)
		admin.GET("/wallet/stats", adminCtrl.GetAllUserStats)
		admin.POST("/wallet/deposit", adminCtrl.Deposit)
		admin.GET("/payments/can-validate", adminCtrl.CanValidatePayments)
		admin.GET("/payments/summary", adminCtrl.GetPaymentSummary)
		admin.POST("/payments/validate", adminCtrl.ValidatePayments)
		admin.GET("/payments/last-payment-date", adminCtrl.GetLastPaymentDate)
	}

	ws := r.Group("/ws")
	ws.Use(middlewares.WebSocketAuthMiddleware())
	{
		ws.GET("/feed", controllers.FeedHandler)
	}

	return r
}
