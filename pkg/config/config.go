package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort      string
	Environment     string
	LogLevel        string
	FirebaseProject string

	FirebaseServiceAccountJSON string
	FirebaseServiceAccountPath string

	// DocstoreDriver selects "firestore" or "memory".
	DocstoreDriver string

	// PaymentGateway selects "razorpay" or "sandbox".
	PaymentGateway        string
	RazorpayKeyID         string
	RazorpayKeySecret     string
	RazorpayBaseURL       string
	PaymentCurrency       string
	PaymentTimeoutSeconds int64

	CheckoutRatePerMinute int64
}

func Load() (*Config, error) {
	godotenv.Load()

	config := &Config{
		ServerPort:      getEnv("SERVER_PORT", "8080"),
		Environment:     getEnv("ENVIRONMENT", "development"),
		LogLevel:        getEnv("LOG_LEVEL", ""),
		FirebaseProject: getEnv("FIREBASE_PROJECT_ID", ""),

		FirebaseServiceAccountJSON: getEnv("FIREBASE_SERVICE_ACCOUNT_JSON", ""),
		FirebaseServiceAccountPath: getEnv("FIREBASE_SERVICE_ACCOUNT_PATH", "./firebase-service-account.json"),

		DocstoreDriver: getEnv("DOCSTORE_DRIVER", "firestore"),

		PaymentGateway:        getEnv("PAYMENT_GATEWAY", "sandbox"),
		RazorpayKeyID:         getEnv("RAZORPAY_KEY_ID", ""),
		RazorpayKeySecret:     getEnv("RAZORPAY_KEY_SECRET", ""),
		RazorpayBaseURL:       getEnv("RAZORPAY_BASE_URL", "https://api.razorpay.com/v1"),
		PaymentCurrency:       getEnv("PAYMENT_CURRENCY", "INR"),
		PaymentTimeoutSeconds: getEnvAsInt64("PAYMENT_TIMEOUT_SECONDS", 30),

		CheckoutRatePerMinute: getEnvAsInt64("CHECKOUT_RATE_PER_MINUTE", 6),
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (c *Config) Validate() error {
	// Firebase Auth verifies tokens with either driver.
	if c.FirebaseProject == "" {
		return fmt.Errorf("FIREBASE_PROJECT_ID is required")
	}

	switch c.DocstoreDriver {
	case "firestore", "memory":
	default:
		return fmt.Errorf("unknown DOCSTORE_DRIVER %q", c.DocstoreDriver)
	}

	switch c.PaymentGateway {
	case "razorpay":
		if c.RazorpayKeyID == "" || c.RazorpayKeySecret == "" {
			return fmt.Errorf("RAZORPAY_KEY_ID and RAZORPAY_KEY_SECRET are required for the razorpay gateway")
		}
	case "sandbox":
	default:
		return fmt.Errorf("unknown PAYMENT_GATEWAY %q", c.PaymentGateway)
	}

	if c.PaymentCurrency == "" {
		return fmt.Errorf("PAYMENT_CURRENCY must not be empty")
	}

	if c.CheckoutRatePerMinute <= 0 {
		return fmt.Errorf("CHECKOUT_RATE_PER_MINUTE must be positive")
	}

	return nil
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value, exists := os.LookupEnv(key); exists {
		intValue, err := strconv.ParseInt(value, 10, 64)
		if err == nil {
			return intValue
		}
	}
	return defaultValue
}
