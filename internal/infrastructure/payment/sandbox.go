package payment

import (
	"context"
	"crypto/hmac"

	"github.com/google/uuid"

	"storefront/internal/domain/service"
	"storefront/pkg/logger"
)

// SandboxGateway approves every charge. For development only.
type SandboxGateway struct {
	secret string
}

// NewSandboxGateway signs with secret. An empty secret is replaced by a
// random per-process one.
func NewSandboxGateway(secret string) *SandboxGateway {
	if secret == "" {
		secret = uuid.NewString()
		logger.Warn("Sandbox gateway has no signing secret configured, using a random one")
	}
	return &SandboxGateway{secret: secret}
}

func (g *SandboxGateway) Name() string {
	return "sandbox"
}

func (g *SandboxGateway) Charge(ctx context.Context, req service.ChargeRequest) (*service.ChargeResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	response := &service.ChargeResponse{
		Success:   true,
		PaymentID: "sandbox_pay_" + uuid.NewString(),
		Status:    "created",
	}

	logger.Info("Sandbox charge approved: receipt=%s, amount=%d %s, id=%s", req.Receipt, req.Amount, req.Currency, response.PaymentID)
	return response, nil
}

func (g *SandboxGateway) VerifySignature(orderID, paymentID, signature string) bool {
	if orderID == "" || paymentID == "" || signature == "" {
		return false
	}
	expected := Sign(g.secret, orderID, paymentID)
	return hmac.Equal([]byte(expected), []byte(signature))
}
