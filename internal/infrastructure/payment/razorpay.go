package payment

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sony/gobreaker/v2"

	"storefront/internal/domain/service"
	"storefront/pkg/logger"
)

type RazorpayConfig struct {
	KeyID     string
	KeySecret string
	BaseURL   string
	Timeout   time.Duration
}

// RazorpayGateway creates Razorpay orders over the REST API. The buyer's
// client SDK completes the payment against the returned order id.
type RazorpayGateway struct {
	keyID     string
	keySecret string
	baseURL   string
	client    *http.Client
	breaker   *gobreaker.CircuitBreaker[*service.ChargeResponse]
}

func NewRazorpayGateway(cfg RazorpayConfig) *RazorpayGateway {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	settings := gobreaker.Settings{
		Name:        "razorpay",
		MaxRequests: 1,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		// A call the buyer abandoned says nothing about gateway health.
		IsSuccessful: func(err error) bool {
			var abandoned *abandonedError
			return err == nil || errors.As(err, &abandoned)
		},
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("Circuit breaker %s changed from %s to %s", name, from.String(), to.String())
		},
	}

	return &RazorpayGateway{
		keyID:     cfg.KeyID,
		keySecret: cfg.KeySecret,
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		client:    &http.Client{Timeout: timeout},
		breaker:   gobreaker.NewCircuitBreaker[*service.ChargeResponse](settings),
	}
}

type razorpayOrderRequest struct {
	Amount   int64             `json:"amount"`
	Currency string            `json:"currency"`
	Receipt  string            `json:"receipt"`
	Notes    map[string]string `json:"notes,omitempty"`
}

type razorpayOrderResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

type razorpayErrorResponse struct {
	Error struct {
		Code        string `json:"code"`
		Description string `json:"description"`
	} `json:"error"`
}

// abandonedError marks a call cut short by the caller's context.
type abandonedError struct {
	err error
}

func (e *abandonedError) Error() string { return e.err.Error() }
func (e *abandonedError) Unwrap() error { return e.err }

func (g *RazorpayGateway) Name() string {
	return "razorpay"
}

func (g *RazorpayGateway) Charge(ctx context.Context, req service.ChargeRequest) (*service.ChargeResponse, error) {
	logger.Info("Creating Razorpay order: receipt=%s, amount=%d %s", req.Receipt, req.Amount, req.Currency)

	resp, err := g.breaker.Execute(func() (*service.ChargeResponse, error) {
		resp, err := g.createOrder(ctx, req)
		if err != nil && ctx.Err() != nil {
			return nil, &abandonedError{err: err}
		}
		return resp, err
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, fmt.Errorf("%w: %v", service.ErrGatewayUnavailable, err)
	}
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (g *RazorpayGateway) createOrder(ctx context.Context, req service.ChargeRequest) (*service.ChargeResponse, error) {
	jsonData, err := json.Marshal(razorpayOrderRequest{
		Amount:   req.Amount,
		Currency: req.Currency,
		Receipt:  req.Receipt,
		Notes:    req.Notes,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/orders", bytes.NewReader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.SetBasicAuth(g.keyID, g.keySecret)

	resp, err := g.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode >= http.StatusInternalServerError {
		return nil, fmt.Errorf("razorpay API error: status %d: %s", resp.StatusCode, string(body))
	}

	if resp.StatusCode >= http.StatusBadRequest {
		var errResp razorpayErrorResponse
		message := fmt.Sprintf("payment declined with status %d", resp.StatusCode)
		if json.Unmarshal(body, &errResp) == nil && errResp.Error.Description != "" {
			message = errResp.Error.Description
		}
		logger.Warn("Razorpay declined order: receipt=%s, status=%d, reason=%s", req.Receipt, resp.StatusCode, message)
		return &service.ChargeResponse{
			Success:      false,
			Status:       "failed",
			ErrorMessage: message,
		}, nil
	}

	var orderResp razorpayOrderResponse
	if err := json.Unmarshal(body, &orderResp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	if orderResp.ID == "" {
		return nil, fmt.Errorf("razorpay response has no order id")
	}

	logger.Info("Razorpay order created: %s (%s)", orderResp.ID, orderResp.Status)
	return &service.ChargeResponse{
		Success:   true,
		PaymentID: orderResp.ID,
		Status:    orderResp.Status,
	}, nil
}

// VerifySignature checks hex(HMAC-SHA256(orderID + "|" + paymentID, keySecret)).
func (g *RazorpayGateway) VerifySignature(orderID, paymentID, signature string) bool {
	if orderID == "" || paymentID == "" || signature == "" {
		return false
	}
	expected := Sign(g.keySecret, orderID, paymentID)
	return hmac.Equal([]byte(expected), []byte(signature))
}

// Sign produces the signature Razorpay attaches to a completed payment.
func Sign(secret, orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}
