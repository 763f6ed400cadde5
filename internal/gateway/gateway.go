package gateway

import "context"

// OrderRequest is the payload for creating an order on the payment provider's
// side. Amount is in minor currency units.
type OrderRequest struct {
	Amount   int64
	Currency string
	Receipt  string
	Notes    map[string]string
}

// Order is the provider's own order record, distinct from the local one.
type Order struct {
	ID       string
	Amount   int64
	Currency string
	Receipt  string
	Status   string
}

// Client is the payment gateway seen from the checkout flow: two fallible
// remote operations, no retries.
type Client interface {
	CreateOrder(ctx context.Context, req OrderRequest) (*Order, error)
	VerifySignature(gatewayOrderID, gatewayPaymentID, signature string) bool
}
