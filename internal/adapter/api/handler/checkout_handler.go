package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"storefront/internal/domain/entity"
	"storefront/internal/usecase"
	"storefront/pkg/errors"
	"storefront/pkg/logger"
	"storefront/pkg/response"
)

type CheckoutHandler struct {
	checkoutUseCase *usecase.CheckoutUseCase
}

func NewCheckoutHandler(checkoutUseCase *usecase.CheckoutUseCase) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutUseCase: checkoutUseCase,
	}
}

type PayAdvanceRequest struct {
	Receipt string `json:"receipt,omitempty" validate:"omitempty,max=40"`
}

// SplitPreviewResponse is the split plus whether a charge for the order is
// already in flight.
type SplitPreviewResponse struct {
	entity.PaymentSplit
	Processing bool `json:"processing"`
}

type VerifyPaymentRequest struct {
	GatewayOrderID string `json:"gateway_order_id" validate:"required"`
	PaymentID      string `json:"payment_id" validate:"required"`
	Signature      string `json:"signature" validate:"required"`
}

func (h *CheckoutHandler) PreviewSplit(c echo.Context) error {
	orderID := c.Param("orderId")
	if orderID == "" {
		return response.Error(c, errors.BadRequest("Order ID is required", nil))
	}

	split, err := h.checkoutUseCase.Preview(c.Request().Context(), orderID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, SplitPreviewResponse{
		PaymentSplit: *split,
		Processing:   h.checkoutUseCase.IsProcessing(orderID),
	})
}

// PayAdvance answers 200 with the PaymentResult on success, 503 when the
// gateway is unreachable and 402 with the same body when the charge failed or
// was cancelled.
func (h *CheckoutHandler) PayAdvance(c echo.Context) error {
	orderID := c.Param("orderId")
	if orderID == "" {
		return response.Error(c, errors.BadRequest("Order ID is required", nil))
	}

	var req PayAdvanceRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	result, err := h.checkoutUseCase.PayAdvance(c.Request().Context(), orderID, req.Receipt)
	if err != nil {
		if errors.StatusOf(err) >= http.StatusInternalServerError {
			logger.Error("Failed to start advance payment for order %s: %v", orderID, err)
		} else {
			logger.Warn("Advance payment for order %s rejected: %v", orderID, err)
		}
		return response.Error(c, err)
	}

	if result.Unavailable {
		return response.Failure(c, errors.ServiceUnavailable(result.Error, nil), result)
	}
	if !result.Success {
		return response.Failure(c, errors.PaymentRequired(result.Error, nil), result)
	}

	return response.Success(c, result)
}

func (h *CheckoutHandler) VerifyPayment(c echo.Context) error {
	var req VerifyPaymentRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	if !h.checkoutUseCase.VerifyPayment(req.GatewayOrderID, req.PaymentID, req.Signature) {
		return response.Error(c, errors.BadRequest("Payment signature is invalid", nil))
	}

	return response.Success(c, map[string]interface{}{
		"gateway_order_id": req.GatewayOrderID,
		"payment_id":       req.PaymentID,
		"verified":         true,
	})
}
