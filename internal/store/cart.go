package store

import (
	"sync"

	"github.com/shopcore/checkout-backend/internal/models"
)

// CartStore keeps one cart per session in memory. Carts are created lazily on
// first access and live for the lifetime of the process.
type CartStore struct {
	mu    sync.RWMutex
	carts map[string]*models.Cart
}

func NewCartStore() *CartStore {
	return &CartStore{carts: make(map[string]*models.Cart)}
}

func (s *CartStore) getOrCreateLocked(sessionID string) *models.Cart {
	cart, ok := s.carts[sessionID]
	if !ok {
		cart = &models.Cart{SessionID: sessionID, Items: []models.CartItem{}}
		s.carts[sessionID] = cart
	}
	return cart
}

// GetOrCreate returns a copy of the session's cart, creating an empty one if
// the session has none yet.
func (s *CartStore) GetOrCreate(sessionID string) models.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()

	return snapshot(s.getOrCreateLocked(sessionID))
}

// AddItem appends the item, or sums quantities when the product is already in
// the cart. A cart never holds two lines for the same product.
func (s *CartStore) AddItem(sessionID string, item models.CartItem) models.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart := s.getOrCreateLocked(sessionID)
	for i := range cart.Items {
		if cart.Items[i].ProductID == item.ProductID {
			cart.Items[i].Quantity += item.Quantity
			return snapshot(cart)
		}
	}
	cart.Items = append(cart.Items, item)
	return snapshot(cart)
}

// SetQuantity overwrites the quantity of the matching line. A quantity of zero
// or less removes the line. Unknown products are a silent no-op.
func (s *CartStore) SetQuantity(sessionID string, productID, quantity int64) models.Cart {
	if quantity <= 0 {
		return s.RemoveItem(sessionID, productID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cart := s.getOrCreateLocked(sessionID)
	for i := range cart.Items {
		if cart.Items[i].ProductID == productID {
			cart.Items[i].Quantity = quantity
			break
		}
	}
	return snapshot(cart)
}

// RemoveItem deletes the matching line if present. Idempotent.
func (s *CartStore) RemoveItem(sessionID string, productID int64) models.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart := s.getOrCreateLocked(sessionID)
	items := cart.Items[:0]
	for _, item := range cart.Items {
		if item.ProductID != productID {
			items = append(items, item)
		}
	}
	cart.Items = items
	return snapshot(cart)
}

// Clear empties the item collection. The cart itself persists.
func (s *CartStore) Clear(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart := s.getOrCreateLocked(sessionID)
	cart.Items = []models.CartItem{}
}

func snapshot(cart *models.Cart) models.Cart {
	items := make([]models.CartItem, len(cart.Items))
	copy(items, cart.Items)
	return models.Cart{SessionID: cart.SessionID, Items: items}
}
