package models

import (
	"time"
)

type Product struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       int64  `json:"price"`
	Image       string `json:"image"`
	Category    string `json:"category"`
}

// CartItem denormalizes product name, price and image at the time it was
// added, so a later catalog change does not move an existing cart line.
type CartItem struct {
	ProductID   int64  `json:"productId"`
	ProductName string `json:"productName"`
	Price       int64  `json:"price"`
	Quantity    int64  `json:"quantity"`
	ImageURL    string `json:"imageUrl"`
}

func (i CartItem) LineTotal() int64 {
	return i.Price * i.Quantity
}

type Cart struct {
	SessionID string     `json:"sessionId"`
	Items     []CartItem `json:"items"`
}

func (c *Cart) TotalAmount() int64 {
	var total int64
	for _, item := range c.Items {
		total += item.LineTotal()
	}
	return total
}

func (c *Cart) TotalItems() int64 {
	var count int64
	for _, item := range c.Items {
		count += item.Quantity
	}
	return count
}

type Customer struct {
	Name            string `json:"customerName"`
	Email           string `json:"customerEmail"`
	Phone           string `json:"customerPhone"`
	ShippingAddress string `json:"shippingAddress"`
	City            string `json:"city"`
	Pincode         string `json:"pincode"`
}

type Order struct {
	OrderID        string      `json:"orderId"`
	GatewayOrderID string      `json:"razorpayOrderId,omitempty"`
	Items          []CartItem  `json:"items"`
	TotalAmount    int64       `json:"totalAmount"`
	Status         OrderStatus `json:"status"`
	Customer
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type BillingRecord struct {
	TransactionID    string        `gorm:"primaryKey"     json:"transactionId"`
	OrderID          string        `gorm:"index;not null" json:"orderId"`
	GatewayPaymentID string        `json:"razorpayPaymentId"`
	GatewayOrderID   string        `json:"razorpayOrderId"`
	Amount           int64         `gorm:"not null"       json:"amount"`
	Currency         string        `gorm:"not null"       json:"currency"`
	Status           BillingStatus `gorm:"not null"       json:"status"`
	PaymentMethod    string        `json:"paymentMethod"`
	CustomerEmail    string        `gorm:"index"          json:"customerEmail"`
	CustomerName     string        `json:"customerName"`
	Timestamp        time.Time     `gorm:"not null"       json:"timestamp"`
}

func (BillingRecord) TableName() string {
	return "billing_records"
}
