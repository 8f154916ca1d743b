package router

import (
	"github.com/labstack/echo/v4"

	"storefront/internal/adapter/api/handler"
	"storefront/internal/adapter/api/middleware"
)

func SetupCheckoutRouter(e *echo.Echo, checkoutHandler *handler.CheckoutHandler, authMiddleware *middleware.AuthMiddleware, limiter *middleware.RateLimiter) {
	checkoutGroup := e.Group("/v1/checkout")
	checkoutGroup.Use(authMiddleware.Authenticate)

	checkoutGroup.GET("/orders/:orderId/split", checkoutHandler.PreviewSplit)
	// Limiter runs after Authenticate so it can key on the uid.
	checkoutGroup.POST("/orders/:orderId/advance", checkoutHandler.PayAdvance, limiter.Middleware())
	checkoutGroup.POST("/verify", checkoutHandler.VerifyPayment)
}
