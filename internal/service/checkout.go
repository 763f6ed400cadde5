package service

import (
	"context"
	"fmt"

	"github.com/shopcore/checkout-backend/internal/events"
	"github.com/shopcore/checkout-backend/internal/gateway"
	"github.com/shopcore/checkout-backend/internal/logging"
	"github.com/shopcore/checkout-backend/internal/models"
	"github.com/shopcore/checkout-backend/internal/repo"
	"github.com/shopcore/checkout-backend/internal/store"
	"github.com/shopcore/checkout-backend/internal/transport"
)

type EventPublisher interface {
	Publish(ctx context.Context, topic, key string, event interface{}) error
}

// CheckoutService coordinates cart, order store, payment gateway and billing
// ledger into the create-order and confirm-payment flows.
type CheckoutService struct {
	Carts   *store.CartStore
	Orders  *store.OrderStore
	Billing *repo.BillingRepo
	Gateway gateway.Client

	Producer EventPublisher

	Currency     string
	GatewayKeyID string
}

// CreateOrder runs the synchronous checkout pass: snapshot the cart into a
// PENDING order, create the remote gateway order, link its id, clear the cart.
// There is no compensation: if the gateway call fails the local order stays
// stored as PENDING with no gateway id, and the cart is left untouched. Such
// orders are visible through the unlinked-orders listing.
func (s *CheckoutService) CreateOrder(ctx context.Context, req transport.CreateOrderRequest) (*models.Order, error) {
	l := logging.FromContext(ctx)

	if req.SessionID == "" || req.CustomerEmail == "" {
		return nil, fmt.Errorf("session id and customer email are required: %w", ErrValidation)
	}

	cart := s.Carts.GetOrCreate(req.SessionID)
	if len(cart.Items) == 0 {
		return nil, fmt.Errorf("session %s: %w", req.SessionID, ErrEmptyCart)
	}

	order := s.Orders.Create(cart.Items, models.Customer{
		Name:            req.CustomerName,
		Email:           req.CustomerEmail,
		Phone:           req.CustomerPhone,
		ShippingAddress: req.ShippingAddress,
		City:            req.City,
		Pincode:         req.Pincode,
	})

	gwOrder, err := s.Gateway.CreateOrder(ctx, gateway.OrderRequest{
		Amount:   order.TotalAmount,
		Currency: s.Currency,
		Receipt:  order.OrderID,
		Notes:    customerNotes(req),
	})
	if err != nil {
		l.Error("gateway order creation failed, local order left pending",
			"order_id", order.OrderID, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrGateway, err)
	}

	linked, ok := s.Orders.LinkGatewayOrderID(order.OrderID, gwOrder.ID)
	if ok {
		order = linked
	}

	s.Carts.Clear(req.SessionID)

	s.publish(ctx, events.TopicOrderEvents, order.OrderID, map[string]interface{}{
		"type":           "order_created",
		"orderId":        order.OrderID,
		"gatewayOrderId": order.GatewayOrderID,
		"totalAmount":    order.TotalAmount,
		"customerEmail":  order.Email,
	})

	l.Info("order created", "order_id", order.OrderID, "gateway_order_id", order.GatewayOrderID,
		"total_amount", order.TotalAmount)
	return order, nil
}

// CreateGatewayOrder is the raw pass-through used by the hosted checkout
// widget. It touches no local state.
func (s *CheckoutService) CreateGatewayOrder(ctx context.Context, req transport.GatewayOrderRequest) (*transport.GatewayOrderResponse, error) {
	if req.Amount <= 0 {
		return nil, fmt.Errorf("amount is required and must be greater than 0: %w", ErrValidation)
	}
	if req.Receipt == "" {
		return nil, fmt.Errorf("receipt is required: %w", ErrValidation)
	}

	currency := req.Currency
	if currency == "" {
		currency = s.Currency
	}

	notes := map[string]string{}
	if req.CustomerName != "" {
		notes["customer_name"] = req.CustomerName
	}
	if req.CustomerEmail != "" {
		notes["customer_email"] = req.CustomerEmail
	}
	if req.CustomerPhone != "" {
		notes["customer_phone"] = req.CustomerPhone
	}

	gwOrder, err := s.Gateway.CreateOrder(ctx, gateway.OrderRequest{
		Amount:   req.Amount,
		Currency: currency,
		Receipt:  req.Receipt,
		Notes:    notes,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGateway, err)
	}

	return &transport.GatewayOrderResponse{
		OrderID:  gwOrder.ID,
		Amount:   gwOrder.Amount,
		Currency: gwOrder.Currency,
		Key:      s.GatewayKeyID,
		Receipt:  gwOrder.Receipt,
		Status:   gwOrder.Status,
	}, nil
}

// ConfirmPayment handles the gateway's payment callback. Signature
// verification is the sole trust boundary: a bad signature changes no local
// state. A valid signature for an unknown gateway order still reports success,
// just without a local order reference.
func (s *CheckoutService) ConfirmPayment(ctx context.Context, req transport.VerifyPaymentRequest) (*transport.VerifyPaymentResponse, error) {
	l := logging.FromContext(ctx)

	if req.GatewayOrderID == "" || req.GatewayPaymentID == "" || req.Signature == "" {
		return nil, fmt.Errorf("missing required payment verification fields: %w", ErrValidation)
	}

	if !s.Gateway.VerifySignature(req.GatewayOrderID, req.GatewayPaymentID, req.Signature) {
		l.Warn("payment signature rejected", "gateway_order_id", req.GatewayOrderID)
		s.publish(ctx, events.TopicPaymentEvents, req.GatewayOrderID, map[string]interface{}{
			"type":           "payment_rejected",
			"gatewayOrderId": req.GatewayOrderID,
		})
		return &transport.VerifyPaymentResponse{
			Success: false,
			Message: "Payment verification failed - Invalid signature",
		}, nil
	}

	resp := &transport.VerifyPaymentResponse{
		Success:   true,
		Message:   "Payment verified successfully!",
		PaymentID: req.GatewayPaymentID,
	}

	order, ok := s.Orders.FindByGatewayOrderID(req.GatewayOrderID)
	if !ok {
		l.Warn("payment verified but no local order matches",
			"gateway_order_id", req.GatewayOrderID)
		return resp, nil
	}

	updated, ok := s.Orders.SetStatus(ctx, order.OrderID, models.OrderStatusPaid)
	if ok {
		order = updated
	}

	// a verified payment must land in the ledger; the order stays PAID and a
	// retried confirmation appends the missing row
	if _, err := s.Billing.Record(ctx, order, req.GatewayPaymentID, models.BillingStatusSuccess, "ONLINE"); err != nil {
		l.Error("billing record write failed", "order_id", order.OrderID, "error", err)
		return nil, fmt.Errorf("recording payment for order %s: %w", order.OrderID, err)
	}

	resp.OrderID = order.OrderID

	s.publish(ctx, events.TopicPaymentEvents, order.OrderID, map[string]interface{}{
		"type":             "payment_verified",
		"orderId":          order.OrderID,
		"gatewayOrderId":   req.GatewayOrderID,
		"gatewayPaymentId": req.GatewayPaymentID,
		"amount":           order.TotalAmount,
	})

	l.Info("payment confirmed", "order_id", order.OrderID, "gateway_payment_id", req.GatewayPaymentID)
	return resp, nil
}

func (s *CheckoutService) publish(ctx context.Context, topic, key string, event map[string]interface{}) {
	if s.Producer == nil {
		return
	}
	if err := s.Producer.Publish(ctx, topic, key, event); err != nil {
		logging.FromContext(ctx).Error("event publish failed", "topic", topic, "error", err)
	}
}

func customerNotes(req transport.CreateOrderRequest) map[string]string {
	notes := map[string]string{}
	if req.CustomerName != "" {
		notes["customer_name"] = req.CustomerName
	}
	if req.CustomerEmail != "" {
		notes["customer_email"] = req.CustomerEmail
	}
	if req.CustomerPhone != "" {
		notes["customer_phone"] = req.CustomerPhone
	}
	return notes
}
