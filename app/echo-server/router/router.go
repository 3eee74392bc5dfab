package router

import (
	"dinesmart/internal/rest"

	"github.com/labstack/echo/v4"
)

func SetupAuthRoutes(api *echo.Group, handler *rest.AuthHandler, authRequired echo.MiddlewareFunc) {
	auth := api.Group("/auth")

	auth.POST("/register", handler.Register)
	auth.POST("/login", handler.Login)
	auth.POST("/request-reset", handler.RequestReset)
	auth.POST("/reset-password", handler.ResetPassword)

	auth.POST("/logout", handler.Logout, authRequired)
}

func SetupCustomerRoutes(api *echo.Group, handler *rest.CustomerHandler, authRequired echo.MiddlewareFunc, customerOnly echo.MiddlewareFunc) {
	customer := api.Group("/customer", authRequired, customerOnly)

	customer.GET("/restaurants", handler.GetRestaurants)
	customer.GET("/restaurants/:id/menu", handler.GetRestaurantMenu)

	customer.POST("/orders", handler.PlaceOrder)
	customer.GET("/orders", handler.GetMyOrders)

	customer.GET("/recommendations", handler.GetRecommendations)
}

func SetupSellerRoutes(api *echo.Group, handler *rest.SellerHandler, authRequired echo.MiddlewareFunc, sellerOnly echo.MiddlewareFunc) {
	seller := api.Group("/seller", authRequired, sellerOnly)

	seller.GET("/restaurant", handler.GetRestaurant)
	seller.PUT("/restaurant", handler.SaveRestaurant)

	seller.GET("/menu", handler.GetMenu)
	seller.POST("/menu", handler.AddMenuItem)
	seller.PUT("/menu/:id", handler.UpdateMenuItem)
	seller.DELETE("/menu/:id", handler.DeleteMenuItem)

	seller.GET("/orders", handler.GetOrders)
	seller.PUT("/orders/:id/status", handler.UpdateOrderStatus)

	seller.GET("/analytics", handler.GetAnalytics)
}

func SetupAdminRoutes(api *echo.Group, handler *rest.AdminHandler, authRequired echo.MiddlewareFunc, adminOnly echo.MiddlewareFunc) {
	admin := api.Group("/admin", authRequired, adminOnly)

	admin.GET("/users", handler.GetUsers)
	admin.PUT("/users/:id/approve", handler.ApproveSeller)
	admin.PUT("/users/:id/reject", handler.RejectSeller)
	admin.PUT("/users/:id/suspend", handler.SuspendUser)
	admin.PUT("/users/:id/reactivate", handler.ReactivateUser)

	admin.GET("/analytics", handler.GetAnalytics)
	admin.GET("/orders", handler.GetOrders)
	admin.GET("/logs", handler.GetLogs)
	admin.GET("/revenue-trend", handler.GetRevenueTrend)

	admin.GET("/export/users", handler.ExportUsers)
	admin.GET("/export/orders", handler.ExportOrders)
	admin.GET("/export/logs", handler.ExportLogs)
}
