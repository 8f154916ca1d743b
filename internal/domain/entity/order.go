package entity

// Order is read from the orders collection. This service never writes it.
type Order struct {
	ID          string  `json:"id" firestore:"-"`
	TotalAmount float64 `json:"total_amount" firestore:"totalAmount"`
}

// PaymentSplit divides an order total into the part charged online now and
// the part collected in cash on delivery.
type PaymentSplit struct {
	Total   float64 `json:"total"`
	Advance float64 `json:"advance"`
	COD     float64 `json:"cod"`
	// AdvanceMinor is Advance in the gateway's minor currency unit.
	AdvanceMinor int64  `json:"advance_minor"`
	Currency     string `json:"currency"`
}

// PaymentResult is handed back to the caller and never persisted.
type PaymentResult struct {
	OrderID     string       `json:"order_id"`
	Success     bool         `json:"success"`
	Cancelled   bool         `json:"cancelled,omitempty"`
	// Unavailable marks a charge that never reached the gateway.
	Unavailable bool         `json:"unavailable,omitempty"`
	// PaymentID is whatever the gateway returned for the charge. For
	// Razorpay it is the gateway order id: the buyer completes the payment in
	// the client SDK and the result is confirmed through /v1/checkout/verify.
	PaymentID   string       `json:"payment_id,omitempty"`
	Receipt     string       `json:"receipt,omitempty"`
	Error       string       `json:"error,omitempty"`
	Split       PaymentSplit `json:"split"`
}
