package transport

import "github.com/shopcore/checkout-backend/internal/models"

type CartItemView struct {
	ProductID   int64  `json:"productId"`
	ProductName string `json:"productName"`
	Price       int64  `json:"price"`
	Quantity    int64  `json:"quantity"`
	ImageURL    string `json:"imageUrl"`
	TotalPrice  int64  `json:"totalPrice"`
}

type CartResponse struct {
	SessionID   string         `json:"sessionId"`
	Items       []CartItemView `json:"items"`
	TotalAmount int64          `json:"totalAmount"`
	TotalItems  int64          `json:"totalItems"`
}

func NewCartResponse(cart models.Cart) CartResponse {
	items := make([]CartItemView, 0, len(cart.Items))
	for _, item := range cart.Items {
		items = append(items, CartItemView{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Price:       item.Price,
			Quantity:    item.Quantity,
			ImageURL:    item.ImageURL,
			TotalPrice:  item.LineTotal(),
		})
	}
	return CartResponse{
		SessionID:   cart.SessionID,
		Items:       items,
		TotalAmount: cart.TotalAmount(),
		TotalItems:  cart.TotalItems(),
	}
}

type AddToCartRequest struct {
	ProductID int64 `json:"productId"`
	Quantity  int64 `json:"quantity"`
}

type CreateOrderRequest struct {
	SessionID       string `json:"sessionId"`
	CustomerName    string `json:"customerName"`
	CustomerEmail   string `json:"customerEmail"`
	CustomerPhone   string `json:"customerPhone"`
	ShippingAddress string `json:"shippingAddress"`
	City            string `json:"city"`
	Pincode         string `json:"pincode"`
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// GatewayOrderRequest mirrors the payload the hosted checkout widget needs to
// open a payment: amount in minor units plus a merchant receipt reference.
type GatewayOrderRequest struct {
	Amount        int64  `json:"amount"`
	Currency      string `json:"currency"`
	Receipt       string `json:"receipt"`
	CustomerName  string `json:"customerName"`
	CustomerEmail string `json:"customerEmail"`
	CustomerPhone string `json:"customerPhone"`
}

type GatewayOrderResponse struct {
	OrderID  string `json:"orderId"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Key      string `json:"key"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}

type VerifyPaymentRequest struct {
	GatewayOrderID   string `json:"razorpay_order_id"`
	GatewayPaymentID string `json:"razorpay_payment_id"`
	Signature        string `json:"razorpay_signature"`
}

type VerifyPaymentResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	PaymentID string `json:"paymentId,omitempty"`
	OrderID   string `json:"orderId,omitempty"`
}
