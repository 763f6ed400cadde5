package repo

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shopcore/checkout-backend/internal/models"
)

var ErrRecordNotFound = errors.New("billing record not found")

// BillingRepo is the append-only payment ledger. Records are never updated or
// deleted, and nothing deduplicates them: two confirmations for the same order
// produce two rows.
type BillingRepo struct {
	DB *gorm.DB
}

func (r *BillingRepo) Record(ctx context.Context, order *models.Order, gatewayPaymentID string, status models.BillingStatus, method string) (*models.BillingRecord, error) {
	if method == "" {
		method = "UNKNOWN"
	}

	record := &models.BillingRecord{
		TransactionID:    "TXN_" + uuid.NewString(),
		OrderID:          order.OrderID,
		GatewayPaymentID: gatewayPaymentID,
		GatewayOrderID:   order.GatewayOrderID,
		Amount:           order.TotalAmount,
		Currency:         "INR",
		Status:           status,
		PaymentMethod:    method,
		CustomerEmail:    order.Email,
		CustomerName:     order.Name,
		Timestamp:        time.Now().UTC(),
	}

	if err := r.DB.WithContext(ctx).Create(record).Error; err != nil {
		return nil, err
	}
	return record, nil
}

// ListByCustomerEmail returns the customer's ledger, most recent first.
func (r *BillingRepo) ListByCustomerEmail(ctx context.Context, email string) ([]models.BillingRecord, error) {
	var records []models.BillingRecord
	err := r.DB.WithContext(ctx).
		Where("LOWER(customer_email) = LOWER(?)", email).
		Order("timestamp DESC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

// GetByOrderID returns the first record for the order in insertion order.
func (r *BillingRepo) GetByOrderID(ctx context.Context, orderID string) (*models.BillingRecord, error) {
	var record models.BillingRecord
	err := r.DB.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("timestamp ASC").
		First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrRecordNotFound
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *BillingRepo) ListAll(ctx context.Context) ([]models.BillingRecord, error) {
	var records []models.BillingRecord
	if err := r.DB.WithContext(ctx).Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}
