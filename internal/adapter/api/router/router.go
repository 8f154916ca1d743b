package router

import (
	"github.com/labstack/echo/v4"

	"storefront/internal/adapter/api/handler"
	"storefront/internal/adapter/api/middleware"
)

type Handlers struct {
	Health   *handler.HealthHandler
	Wishlist *handler.WishlistHandler
	Checkout *handler.CheckoutHandler
}

func Setup(e *echo.Echo, h Handlers, authMiddleware *middleware.AuthMiddleware, checkoutLimiter *middleware.RateLimiter) {
	SetupHealthRouter(e, h.Health)
	SetupWishlistRouter(e, h.Wishlist, authMiddleware)
	SetupCheckoutRouter(e, h.Checkout, authMiddleware, checkoutLimiter)
}

func SetupHealthRouter(e *echo.Echo, healthHandler *handler.HealthHandler) {
	e.GET("/health", healthHandler.CheckHealth)
}
