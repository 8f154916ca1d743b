package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MemoryDriverDefaults(t *testing.T) {
	t.Setenv("FIREBASE_PROJECT_ID", "storefront-test")
	t.Setenv("DOCSTORE_DRIVER", "memory")
	t.Setenv("PAYMENT_GATEWAY", "sandbox")
	t.Setenv("PAYMENT_CURRENCY", "INR")
	t.Setenv("CHECKOUT_RATE_PER_MINUTE", "6")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "memory", cfg.DocstoreDriver)
	assert.Equal(t, "sandbox", cfg.PaymentGateway)
	assert.Equal(t, "INR", cfg.PaymentCurrency)
	assert.Equal(t, int64(6), cfg.CheckoutRatePerMinute)
}

func TestLoad_InvalidIntFallsBackToDefault(t *testing.T) {
	t.Setenv("FIREBASE_PROJECT_ID", "storefront-test")
	t.Setenv("DOCSTORE_DRIVER", "memory")
	t.Setenv("PAYMENT_GATEWAY", "sandbox")
	t.Setenv("PAYMENT_TIMEOUT_SECONDS", "soon")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, int64(30), cfg.PaymentTimeoutSeconds)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			FirebaseProject:       "storefront-test",
			DocstoreDriver:        "memory",
			PaymentGateway:        "sandbox",
			PaymentCurrency:       "INR",
			CheckoutRatePerMinute: 6,
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"valid", func(c *Config) {}, ""},
		{"missing project", func(c *Config) { c.FirebaseProject = "" }, "FIREBASE_PROJECT_ID"},
		{"unknown driver", func(c *Config) { c.DocstoreDriver = "mongo" }, "DOCSTORE_DRIVER"},
		{"razorpay without keys", func(c *Config) { c.PaymentGateway = "razorpay" }, "RAZORPAY_KEY_ID"},
		{"unknown gateway", func(c *Config) { c.PaymentGateway = "paypal" }, "PAYMENT_GATEWAY"},
		{"empty currency", func(c *Config) { c.PaymentCurrency = "" }, "PAYMENT_CURRENCY"},
		{"zero rate", func(c *Config) { c.CheckoutRatePerMinute = 0 }, "CHECKOUT_RATE_PER_MINUTE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
