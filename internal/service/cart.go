package service

import (
	"context"
	"fmt"

	"github.com/shopcore/checkout-backend/internal/catalog"
	"github.com/shopcore/checkout-backend/internal/logging"
	"github.com/shopcore/checkout-backend/internal/models"
	"github.com/shopcore/checkout-backend/internal/store"
)

type CartService struct {
	Catalog *catalog.Catalog
	Carts   *store.CartStore
}

func (s *CartService) GetCart(sessionID string) (models.Cart, error) {
	if sessionID == "" {
		return models.Cart{}, fmt.Errorf("session id required: %w", ErrValidation)
	}
	return s.Carts.GetOrCreate(sessionID), nil
}

// AddItem resolves the product in the catalog and snapshots its name, price
// and image onto the cart line.
func (s *CartService) AddItem(ctx context.Context, sessionID string, productID, quantity int64) (models.Cart, error) {
	if sessionID == "" {
		return models.Cart{}, fmt.Errorf("session id required: %w", ErrValidation)
	}
	if quantity <= 0 {
		return models.Cart{}, fmt.Errorf("quantity must be > 0: %w", ErrValidation)
	}

	product, ok := s.Catalog.Get(productID)
	if !ok {
		return models.Cart{}, fmt.Errorf("product %d: %w", productID, ErrProductNotFound)
	}

	cart := s.Carts.AddItem(sessionID, models.CartItem{
		ProductID:   product.ID,
		ProductName: product.Name,
		Price:       product.Price,
		Quantity:    quantity,
		ImageURL:    product.Image,
	})

	logging.FromContext(ctx).Info("item added to cart",
		"session_id", sessionID, "product_id", productID, "quantity", quantity)
	return cart, nil
}

func (s *CartService) UpdateQuantity(sessionID string, productID, quantity int64) (models.Cart, error) {
	if sessionID == "" {
		return models.Cart{}, fmt.Errorf("session id required: %w", ErrValidation)
	}
	return s.Carts.SetQuantity(sessionID, productID, quantity), nil
}

func (s *CartService) RemoveItem(sessionID string, productID int64) (models.Cart, error) {
	if sessionID == "" {
		return models.Cart{}, fmt.Errorf("session id required: %w", ErrValidation)
	}
	return s.Carts.RemoveItem(sessionID, productID), nil
}

func (s *CartService) Clear(sessionID string) error {
	if sessionID == "" {
		return fmt.Errorf("session id required: %w", ErrValidation)
	}
	s.Carts.Clear(sessionID)
	return nil
}
