package router

import (
	"github.com/labstack/echo/v4"

	"storefront/internal/adapter/api/handler"
	"storefront/internal/adapter/api/middleware"
)

func SetupWishlistRouter(e *echo.Echo, wishlistHandler *handler.WishlistHandler, authMiddleware *middleware.AuthMiddleware) {
	// All wishlist endpoints require authentication
	wishlistGroup := e.Group("/v1/wishlist")
	wishlistGroup.Use(authMiddleware.Authenticate)

	wishlistGroup.GET("", wishlistHandler.GetUserWishlist)
	wishlistGroup.DELETE("", wishlistHandler.ClearWishlist)
	wishlistGroup.GET("/count", wishlistHandler.GetWishlistCount)
	wishlistGroup.POST("/reconcile", wishlistHandler.ReconcileCount)

	wishlistGroup.POST("/items", wishlistHandler.AddToWishlist)
	wishlistGroup.DELETE("/items/:productId", wishlistHandler.RemoveFromWishlist)
	wishlistGroup.GET("/items/:productId/status", wishlistHandler.CheckWishlistStatus)
}
