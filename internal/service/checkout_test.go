package service

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/shopcore/checkout-backend/internal/catalog"
	"github.com/shopcore/checkout-backend/internal/events"
	"github.com/shopcore/checkout-backend/internal/models"
	"github.com/shopcore/checkout-backend/internal/repo"
	"github.com/shopcore/checkout-backend/internal/store"
	"github.com/shopcore/checkout-backend/internal/transport"
)

type checkoutEnv struct {
	carts     *store.CartStore
	orders    *store.OrderStore
	billing   *repo.BillingRepo
	gateway   *fakeGateway
	publisher *fakePublisher
	cartSvc   *CartService
	svc       *CheckoutService
}

func newCheckoutEnv(t *testing.T) *checkoutEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.BillingRecord{}))

	env := &checkoutEnv{
		carts:     store.NewCartStore(),
		orders:    store.NewOrderStore(),
		billing:   &repo.BillingRepo{DB: db},
		gateway:   &fakeGateway{validSig: "good-signature"},
		publisher: &fakePublisher{},
	}
	env.cartSvc = &CartService{Catalog: catalog.New(), Carts: env.carts}
	env.svc = &CheckoutService{
		Carts:        env.carts,
		Orders:       env.orders,
		Billing:      env.billing,
		Gateway:      env.gateway,
		Producer:     env.publisher,
		Currency:     "INR",
		GatewayKeyID: "rzp_test_key",
	}
	return env
}

func createOrderReq(sessionID string) transport.CreateOrderRequest {
	return transport.CreateOrderRequest{
		SessionID:       sessionID,
		CustomerName:    "Asha Rao",
		CustomerEmail:   "asha@example.com",
		CustomerPhone:   "+911234567890",
		ShippingAddress: "12 MG Road",
		City:            "Bengaluru",
		Pincode:         "560001",
	}
}

func TestCheckout_CreateOrder_Validation(t *testing.T) {
	t.Parallel()

	env := newCheckoutEnv(t)
	ctx := context.Background()

	tests := []struct {
		name string
		req  transport.CreateOrderRequest
	}{
		{name: "missing session", req: transport.CreateOrderRequest{CustomerEmail: "a@example.com"}},
		{name: "missing email", req: transport.CreateOrderRequest{SessionID: "sess-1"}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := env.svc.CreateOrder(ctx, tt.req)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestCheckout_CreateOrder_EmptyCart(t *testing.T) {
	t.Parallel()

	env := newCheckoutEnv(t)

	_, err := env.svc.CreateOrder(context.Background(), createOrderReq("sess-empty"))
	require.ErrorIs(t, err, ErrEmptyCart)
	assert.Empty(t, env.orders.ListByCustomerEmail("asha@example.com"))
}

func TestCheckout_CreateOrder_HappyPath(t *testing.T) {
	t.Parallel()

	env := newCheckoutEnv(t)
	ctx := context.Background()

	_, err := env.cartSvc.AddItem(ctx, "sess-1", 1, 2)
	require.NoError(t, err)
	_, err = env.cartSvc.AddItem(ctx, "sess-1", 3, 1)
	require.NoError(t, err)

	order, err := env.svc.CreateOrder(ctx, createOrderReq("sess-1"))
	require.NoError(t, err)

	assert.Equal(t, int64(1049700), order.TotalAmount)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Equal(t, "order_rzp_test", order.GatewayOrderID)
	require.Len(t, order.Items, 2)

	// the gateway saw the local order id as receipt
	require.Len(t, env.gateway.created, 1)
	assert.Equal(t, order.OrderID, env.gateway.created[0].Receipt)
	assert.Equal(t, order.TotalAmount, env.gateway.created[0].Amount)

	// checkout cleared the originating cart
	cart, err := env.cartSvc.GetCart("sess-1")
	require.NoError(t, err)
	assert.Empty(t, cart.Items)

	// but the order snapshot survived the clear
	stored, ok := env.orders.Get(order.OrderID)
	require.True(t, ok)
	assert.Len(t, stored.Items, 2)
	assert.Equal(t, int64(1049700), stored.TotalAmount)

	assert.Len(t, env.publisher.byTopic(events.TopicOrderEvents), 1)
}

func TestCheckout_CreateOrder_GatewayFailureLeavesPendingOrder(t *testing.T) {
	t.Parallel()

	env := newCheckoutEnv(t)
	env.gateway.failCreate = true
	ctx := context.Background()

	_, err := env.cartSvc.AddItem(ctx, "sess-1", 1, 1)
	require.NoError(t, err)

	_, err = env.svc.CreateOrder(ctx, createOrderReq("sess-1"))
	require.ErrorIs(t, err, ErrGateway)

	// the local order was created before the gateway call and is not rolled back
	orphans := env.orders.ListUnlinked()
	require.Len(t, orphans, 1)
	assert.Equal(t, models.OrderStatusPending, orphans[0].Status)
	assert.Empty(t, orphans[0].GatewayOrderID)

	// the cart is only cleared after a successful gateway call
	cart, err := env.cartSvc.GetCart("sess-1")
	require.NoError(t, err)
	assert.Len(t, cart.Items, 1)
}

func TestCheckout_CreateGatewayOrder(t *testing.T) {
	t.Parallel()

	env := newCheckoutEnv(t)
	ctx := context.Background()

	resp, err := env.svc.CreateGatewayOrder(ctx, transport.GatewayOrderRequest{
		Amount:  50000,
		Receipt: "ORD_abc",
	})
	require.NoError(t, err)
	assert.Equal(t, "order_rzp_test", resp.OrderID)
	assert.Equal(t, int64(50000), resp.Amount)
	assert.Equal(t, "INR", resp.Currency)
	assert.Equal(t, "rzp_test_key", resp.Key)

	_, err = env.svc.CreateGatewayOrder(ctx, transport.GatewayOrderRequest{Amount: 0, Receipt: "r"})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = env.svc.CreateGatewayOrder(ctx, transport.GatewayOrderRequest{Amount: 100})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCheckout_ConfirmPayment_MissingFields(t *testing.T) {
	t.Parallel()

	env := newCheckoutEnv(t)

	_, err := env.svc.ConfirmPayment(context.Background(), transport.VerifyPaymentRequest{
		GatewayOrderID: "order_rzp_test",
	})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCheckout_ConfirmPayment_ValidSignature(t *testing.T) {
	t.Parallel()

	env := newCheckoutEnv(t)
	ctx := context.Background()

	_, err := env.cartSvc.AddItem(ctx, "sess-1", 1, 2)
	require.NoError(t, err)
	_, err = env.cartSvc.AddItem(ctx, "sess-1", 3, 1)
	require.NoError(t, err)
	order, err := env.svc.CreateOrder(ctx, createOrderReq("sess-1"))
	require.NoError(t, err)

	resp, err := env.svc.ConfirmPayment(ctx, transport.VerifyPaymentRequest{
		GatewayOrderID:   order.GatewayOrderID,
		GatewayPaymentID: "pay_123",
		Signature:        "good-signature",
	})
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, order.OrderID, resp.OrderID)
	assert.Equal(t, "pay_123", resp.PaymentID)

	stored, ok := env.orders.Get(order.OrderID)
	require.True(t, ok)
	assert.Equal(t, models.OrderStatusPaid, stored.Status)

	records, err := env.billing.ListByCustomerEmail(ctx, "asha@example.com")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, models.BillingStatusSuccess, records[0].Status)
	assert.Equal(t, "ONLINE", records[0].PaymentMethod)
	assert.Equal(t, int64(1049700), records[0].Amount)
	assert.Equal(t, "INR", records[0].Currency)

	assert.Len(t, env.publisher.byTopic(events.TopicPaymentEvents), 1)
}

func TestCheckout_ConfirmPayment_InvalidSignature(t *testing.T) {
	t.Parallel()

	env := newCheckoutEnv(t)
	ctx := context.Background()

	_, err := env.cartSvc.AddItem(ctx, "sess-1", 1, 1)
	require.NoError(t, err)
	order, err := env.svc.CreateOrder(ctx, createOrderReq("sess-1"))
	require.NoError(t, err)

	resp, err := env.svc.ConfirmPayment(ctx, transport.VerifyPaymentRequest{
		GatewayOrderID:   order.GatewayOrderID,
		GatewayPaymentID: "pay_123",
		Signature:        "bad-signature",
	})
	require.NoError(t, err)
	assert.False(t, resp.Success)
	assert.Empty(t, resp.OrderID)

	// no state change: order stays PENDING, ledger stays empty
	stored, ok := env.orders.Get(order.OrderID)
	require.True(t, ok)
	assert.Equal(t, models.OrderStatusPending, stored.Status)

	records, err := env.billing.ListByCustomerEmail(ctx, "asha@example.com")
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestCheckout_ConfirmPayment_LedgerWriteFailure(t *testing.T) {
	t.Parallel()

	env := newCheckoutEnv(t)
	ctx := context.Background()

	_, err := env.cartSvc.AddItem(ctx, "sess-1", 1, 1)
	require.NoError(t, err)
	order, err := env.svc.CreateOrder(ctx, createOrderReq("sess-1"))
	require.NoError(t, err)

	sqlDB, err := env.billing.DB.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	_, err = env.svc.ConfirmPayment(ctx, transport.VerifyPaymentRequest{
		GatewayOrderID:   order.GatewayOrderID,
		GatewayPaymentID: "pay_123",
		Signature:        "good-signature",
	})
	require.Error(t, err)

	// the status flip is not rolled back; a retried confirmation can still
	// append the ledger row
	stored, ok := env.orders.Get(order.OrderID)
	require.True(t, ok)
	assert.Equal(t, models.OrderStatusPaid, stored.Status)
}

func TestCheckout_ConfirmPayment_UnknownGatewayOrder(t *testing.T) {
	t.Parallel()

	env := newCheckoutEnv(t)

	resp, err := env.svc.ConfirmPayment(context.Background(), transport.VerifyPaymentRequest{
		GatewayOrderID:   "order_rzp_unknown",
		GatewayPaymentID: "pay_123",
		Signature:        "good-signature",
	})
	require.NoError(t, err)

	// verification succeeded but there is no local order to reference
	assert.True(t, resp.Success)
	assert.Empty(t, resp.OrderID)
}

func TestCheckout_EndToEnd(t *testing.T) {
	t.Parallel()

	env := newCheckoutEnv(t)
	ctx := context.Background()

	// product 1 twice (merged into one line) and product 3 once
	_, err := env.cartSvc.AddItem(ctx, "sess-e2e", 1, 1)
	require.NoError(t, err)
	cart, err := env.cartSvc.AddItem(ctx, "sess-e2e", 1, 1)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	cart, err = env.cartSvc.AddItem(ctx, "sess-e2e", 3, 1)
	require.NoError(t, err)
	require.Equal(t, int64(2*399900+249900), cart.TotalAmount())

	order, err := env.svc.CreateOrder(ctx, createOrderReq("sess-e2e"))
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Equal(t, int64(1049700), order.TotalAmount)

	resp, err := env.svc.ConfirmPayment(ctx, transport.VerifyPaymentRequest{
		GatewayOrderID:   order.GatewayOrderID,
		GatewayPaymentID: "pay_e2e",
		Signature:        "good-signature",
	})
	require.NoError(t, err)
	require.True(t, resp.Success)

	stored, ok := env.orders.Get(order.OrderID)
	require.True(t, ok)
	assert.Equal(t, models.OrderStatusPaid, stored.Status)

	record, err := env.billing.GetByOrderID(ctx, order.OrderID)
	require.NoError(t, err)
	assert.Equal(t, int64(1049700), record.Amount)
	assert.Equal(t, "INR", record.Currency)
}
