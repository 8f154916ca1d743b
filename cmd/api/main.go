package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"storefront/internal/adapter/api"
	"storefront/internal/adapter/api/handler"
	apimiddleware "storefront/internal/adapter/api/middleware"
	"storefront/internal/adapter/api/router"
	"storefront/internal/adapter/repository"
	"storefront/internal/domain/service"
	"storefront/internal/infrastructure/docstore"
	"storefront/internal/infrastructure/firebase"
	"storefront/internal/infrastructure/payment"
	"storefront/internal/usecase"
	"storefront/pkg/config"
	"storefront/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	logger.Configure(cfg.LogLevel, cfg.Environment)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opt, err := firebase.Credentials(cfg.FirebaseServiceAccountJSON, cfg.FirebaseServiceAccountPath)
	if err != nil {
		log.Fatalf("Failed to resolve Firebase credentials: %v", err)
	}

	firebaseApp, err := firebase.NewApp(ctx, cfg.FirebaseProject, opt)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase: %v", err)
	}

	var store docstore.Store
	switch cfg.DocstoreDriver {
	case "memory":
		logger.Warn("Using in-memory document store, data is lost on restart")
		store = docstore.NewMemoryStore()
	default:
		firestoreClient, err := firebaseApp.Firestore(ctx)
		if err != nil {
			log.Fatalf("Failed to open Firestore: %v", err)
		}
		defer firestoreClient.Close()
		store = docstore.NewFirestoreStore(firestoreClient)
	}

	var gateway service.PaymentGateway
	switch cfg.PaymentGateway {
	case "razorpay":
		gateway = payment.NewRazorpayGateway(payment.RazorpayConfig{
			KeyID:     cfg.RazorpayKeyID,
			KeySecret: cfg.RazorpayKeySecret,
			BaseURL:   cfg.RazorpayBaseURL,
			Timeout:   time.Duration(cfg.PaymentTimeoutSeconds) * time.Second,
		})
	default:
		if cfg.IsProduction() {
			log.Fatalf("Sandbox payment gateway is not allowed in production")
		}
		gateway = payment.NewSandboxGateway(cfg.RazorpayKeySecret)
	}
	logger.Info("Payment gateway: %s, currency %s", gateway.Name(), cfg.PaymentCurrency)

	wishlistRepo := repository.NewWishlistRepository(store)
	orderRepo := repository.NewOrderRepository(store)

	wishlistUseCase := usecase.NewWishlistUseCase(wishlistRepo)
	checkoutUseCase := usecase.NewCheckoutUseCase(orderRepo, gateway, cfg.PaymentCurrency)

	authMiddleware := apimiddleware.NewAuthMiddleware(firebaseApp.Auth)
	checkoutLimiter := apimiddleware.NewRateLimiter(int(cfg.CheckoutRatePerMinute), 2)
	checkoutLimiter.StartCleanupRoutine(30*time.Minute, ctx.Done())

	e := echo.New()
	e.HideBanner = true
	e.Logger = logger.Logger()

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	e.Validator = api.NewValidator()

	router.Setup(e, router.Handlers{
		Health:   handler.NewHealthHandler(cfg.DocstoreDriver, gateway.Name()),
		Wishlist: handler.NewWishlistHandler(wishlistUseCase),
		Checkout: handler.NewCheckoutHandler(checkoutUseCase),
	}, authMiddleware, checkoutLimiter)

	go func() {
		logger.Info("Starting server on port %s...", cfg.ServerPort)
		if err := e.Start(":" + cfg.ServerPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server stopped: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed: %v", err)
	}
}

