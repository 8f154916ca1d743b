package usecase

import (
	"context"
	stderrors "errors"
	"fmt"
	"math"
	"strings"
	"sync"

	"github.com/google/uuid"

	"storefront/internal/domain/entity"
	"storefront/internal/domain/repository"
	"storefront/internal/domain/service"
	"storefront/pkg/errors"
	"storefront/pkg/logger"
)

const (
	advanceShare = 0.5
	minorPerUnit = 100
)

const (
	msgPaymentFailed      = "Payment failed. Please try again."
	msgPaymentCancelled   = "Payment was cancelled."
	msgGatewayUnavailable = "Payment service is temporarily unavailable. Please try again later."
)

// CheckoutUseCase charges the online advance of a split payment. Nothing it
// does is persisted: a failed or cancelled charge can be retried from scratch.
type CheckoutUseCase struct {
	orderRepo repository.OrderRepository
	gateway   service.PaymentGateway
	currency  string

	mu         sync.Mutex
	processing map[string]struct{}
}

func NewCheckoutUseCase(
	orderRepo repository.OrderRepository,
	gateway service.PaymentGateway,
	currency string,
) *CheckoutUseCase {
	return &CheckoutUseCase{
		orderRepo:  orderRepo,
		gateway:    gateway,
		currency:   currency,
		processing: make(map[string]struct{}),
	}
}

// SplitTotal returns advance = ceil(total/2) and cod = floor(total/2) in
// whole major units. The halves are rounded independently, so their sum can
// differ from total: 99.99 splits into 50 + 49.
func SplitTotal(total float64, currency string) (entity.PaymentSplit, error) {
	if math.IsNaN(total) || math.IsInf(total, 0) || total < 0 {
		return entity.PaymentSplit{}, errors.BadRequest("Order total must be a non-negative amount", nil)
	}

	half := total * advanceShare
	advance := math.Ceil(half)
	cod := math.Floor(half)

	return entity.PaymentSplit{
		Total:        total,
		Advance:      advance,
		COD:          cod,
		AdvanceMinor: int64(math.Round(advance * minorPerUnit)),
		Currency:     currency,
	}, nil
}

// Preview computes the split for an order without charging anything.
func (u *CheckoutUseCase) Preview(ctx context.Context, orderID string) (*entity.PaymentSplit, error) {
	if err := validateIDs(orderID); err != nil {
		return nil, err
	}

	order, err := u.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	split, err := SplitTotal(order.TotalAmount, u.currency)
	if err != nil {
		return nil, err
	}
	return &split, nil
}

// IsProcessing reports whether an advance charge for orderID is in flight.
func (u *CheckoutUseCase) IsProcessing(orderID string) bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	_, busy := u.processing[orderID]
	return busy
}

func (u *CheckoutUseCase) begin(orderID string) bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	if _, busy := u.processing[orderID]; busy {
		return false
	}
	u.processing[orderID] = struct{}{}
	return true
}

func (u *CheckoutUseCase) finish(orderID string) {
	u.mu.Lock()
	delete(u.processing, orderID)
	u.mu.Unlock()
}

// PayAdvance charges the advance half of the order through the gateway.
//
// The returned error covers problems before the gateway is called: bad input,
// unknown order, or a charge for the same order already in flight. Once the
// gateway is called the outcome is always reported through PaymentResult,
// whose Error field is safe to show to the buyer. No retry is attempted.
func (u *CheckoutUseCase) PayAdvance(ctx context.Context, orderID, receipt string) (*entity.PaymentResult, error) {
	split, err := u.Preview(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if split.AdvanceMinor <= 0 {
		return nil, errors.BadRequest("Order has no advance amount to charge", nil)
	}

	if !u.begin(orderID) {
		return nil, errors.Conflict("A payment for this order is already processing")
	}
	defer u.finish(orderID)

	if receipt == "" {
		receipt = newReceipt()
	}

	result := &entity.PaymentResult{
		OrderID: orderID,
		Receipt: receipt,
		Split:   *split,
	}

	logger.Info("Charging advance for order %s: %d %s (cod %.2f), receipt %s",
		orderID, split.AdvanceMinor, split.Currency, split.COD, receipt)

	resp, err := u.gateway.Charge(ctx, service.ChargeRequest{
		Amount:   split.AdvanceMinor,
		Currency: split.Currency,
		Receipt:  receipt,
		Notes: map[string]string{
			"order_id": orderID,
			"cod":      fmt.Sprintf("%.2f", split.COD),
		},
	})

	switch {
	case err != nil && (stderrors.Is(err, context.Canceled) || ctx.Err() != nil):
		logger.LogPaymentError(orderID, "charge_cancelled", err)
		result.Cancelled = true
		result.Error = msgPaymentCancelled
	case err != nil && stderrors.Is(err, service.ErrGatewayUnavailable):
		logger.LogPaymentError(orderID, "gateway_unavailable", err)
		result.Unavailable = true
		result.Error = msgGatewayUnavailable
	case err != nil:
		logger.LogPaymentError(orderID, "charge", err)
		result.Error = msgPaymentFailed
	case !resp.Success:
		logger.LogPaymentError(orderID, "charge_declined", stderrors.New(resp.ErrorMessage))
		result.Error = declineMessage(resp.ErrorMessage)
	default:
		result.Success = true
		result.PaymentID = resp.PaymentID
		logger.Info("Advance charged for order %s via %s: %s", orderID, u.gateway.Name(), resp.PaymentID)
	}

	return result, nil
}

// VerifyPayment checks the signature returned by the gateway's client SDK.
func (u *CheckoutUseCase) VerifyPayment(orderID, paymentID, signature string) bool {
	ok := u.gateway.VerifySignature(orderID, paymentID, signature)
	if !ok {
		logger.Warn("Payment signature verification failed for gateway order %s, payment %s", orderID, paymentID)
	}
	return ok
}

func declineMessage(reason string) string {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return msgPaymentFailed
	}
	return "Payment failed: " + reason
}

// newReceipt fits the gateway's 40 character receipt limit.
func newReceipt() string {
	return "rcpt_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:24]
}
