package models

// Order is the ephemeral handle issued by the payment gateway. It is
// returned to the client for checkout and never persisted server-side.
type Order struct {
	ID       string `json:"orderId"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}
