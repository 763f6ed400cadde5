package gateway

import (
	"context"
	"fmt"
	"math"
	"time"

	razorpay "github.com/razorpay/razorpay-go"
	"github.com/razorpay/razorpay-go/utils"
)

// Razorpay implements Client against the Razorpay REST API. The SDK call has
// no context plumbing of its own, so the bounded HTTP timeout set on the
// client is what keeps a hung gateway from hanging the request.
type Razorpay struct {
	client    *razorpay.Client
	keySecret string
}

func NewRazorpay(keyID, keySecret string, timeout time.Duration) *Razorpay {
	client := razorpay.NewClient(keyID, keySecret)

	// the SDK takes whole seconds as an int16
	secs := int64(timeout.Seconds())
	if secs > math.MaxInt16 {
		secs = math.MaxInt16
	}
	client.SetTimeout(int16(secs))

	return &Razorpay{client: client, keySecret: keySecret}
}

func (r *Razorpay) CreateOrder(ctx context.Context, req OrderRequest) (*Order, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	currency := req.Currency
	if currency == "" {
		currency = "INR"
	}

	data := map[string]interface{}{
		"amount":   req.Amount,
		"currency": currency,
		"receipt":  req.Receipt,
	}
	if len(req.Notes) > 0 {
		notes := make(map[string]interface{}, len(req.Notes))
		for k, v := range req.Notes {
			notes[k] = v
		}
		data["notes"] = notes
	}

	body, err := r.client.Order.Create(data, nil)
	if err != nil {
		return nil, fmt.Errorf("razorpay order create: %w", err)
	}

	return &Order{
		ID:       asString(body["id"]),
		Amount:   asInt64(body["amount"]),
		Currency: asString(body["currency"]),
		Receipt:  asString(body["receipt"]),
		Status:   asString(body["status"]),
	}, nil
}

func (r *Razorpay) VerifySignature(gatewayOrderID, gatewayPaymentID, signature string) bool {
	params := map[string]interface{}{
		"razorpay_order_id":   gatewayOrderID,
		"razorpay_payment_id": gatewayPaymentID,
	}
	return utils.VerifyPaymentSignature(params, signature, r.keySecret)
}

func asString(v interface{}) string {
	s, _ := v.(string)
	return s
}

func asInt64(v interface{}) int64 {
	switch n := v.(type) {
	case float64:
		return int64(n)
	case int64:
		return n
	case int:
		return int64(n)
	}
	return 0
}
