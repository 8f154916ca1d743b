package service

import (
	"context"
	"errors"
)

// ErrGatewayUnavailable is returned when the gateway is refusing calls, for
// example while a circuit breaker is open.
var ErrGatewayUnavailable = errors.New("payment gateway unavailable")

// ChargeRequest asks the gateway to charge Amount, expressed in the
// currency's minor unit (paise for INR).
type ChargeRequest struct {
	Amount   int64
	Currency string
	Receipt  string
	Notes    map[string]string
}

// ChargeResponse is the gateway's answer. A declined charge comes back with
// Success false and a nil error; transport and protocol faults are errors.
type ChargeResponse struct {
	Success      bool
	// PaymentID identifies the charge at the gateway. Gateways that settle in
	// the buyer's client return the order id to complete there.
	PaymentID    string
	Status       string
	ErrorMessage string
}

// PaymentGateway is the external payment processor.
type PaymentGateway interface {
	Name() string
	Charge(ctx context.Context, req ChargeRequest) (*ChargeResponse, error)
	// VerifySignature checks the signature the client SDK returns once the
	// buyer completes payment for orderID.
	VerifySignature(orderID, paymentID, signature string) bool
}
