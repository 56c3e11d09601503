package models

import (
	"errors"
	"sync"

	"github.com/google/uuid"
)

var ErrDifferentOutlet = errors.New("cart already holds items from another outlet")

// CartItem is a menu-item snapshot plus quantity. Carts are session state:
// they live only in memory and are lost on restart.
type CartItem struct {
	MenuItemID   uuid.UUID `json:"menu_item_id"`
	OutletID     uuid.UUID `json:"outlet_id"`
	OutletName   string    `json:"outlet_name"`
	Name         string    `json:"name"`
	Price        float64   `json:"price"`
	IsVegetarian bool      `json:"is_vegetarian"`
	Quantity     int       `json:"quantity"`
}

// CartStore keeps one cart per user. All items in a cart belong to a single
// outlet; adding from a second outlet fails until the cart is cleared.
type CartStore struct {
	mu    sync.RWMutex
	carts map[uuid.UUID][]CartItem
}

func NewCartStore() *CartStore {
	return &CartStore{
		carts: make(map[uuid.UUID][]CartItem),
	}
}

// Add puts the item in the user's cart with quantity 1, or increments the
// quantity if the item is already present.
func (s *CartStore) Add(userID uuid.UUID, item CartItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart := s.carts[userID]
	if len(cart) > 0 && cart[0].OutletID != item.OutletID {
		return ErrDifferentOutlet
	}

	for i := range cart {
		if cart[i].MenuItemID == item.MenuItemID {
			cart[i].Quantity++
			return nil
		}
	}

	item.Quantity = 1
	s.carts[userID] = append(cart, item)
	return nil
}

// SetQuantity updates an item's quantity; zero or less removes the item.
func (s *CartStore) SetQuantity(userID, menuItemID uuid.UUID, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart := s.carts[userID]
	for i := range cart {
		if cart[i].MenuItemID != menuItemID {
			continue
		}
		if quantity <= 0 {
			s.carts[userID] = append(cart[:i], cart[i+1:]...)
		} else {
			cart[i].Quantity = quantity
		}
		return
	}
}

func (s *CartStore) Remove(userID, menuItemID uuid.UUID) {
	s.SetQuantity(userID, menuItemID, 0)
}

// Items returns a copy of the user's cart.
func (s *CartStore) Items(userID uuid.UUID) []CartItem {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cart := s.carts[userID]
	out := make([]CartItem, len(cart))
	copy(out, cart)
	return out
}

// TotalCount is the sum of all quantities in the user's cart.
func (s *CartStore) TotalCount(userID uuid.UUID) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, item := range s.carts[userID] {
		count += item.Quantity
	}
	return count
}

// TotalPrice is the sum of price times quantity across the user's cart.
func (s *CartStore) TotalPrice(userID uuid.UUID) float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	total := 0.0
	for _, item := range s.carts[userID] {
		total += item.Price * float64(item.Quantity)
	}
	return total
}

func (s *CartStore) Clear(userID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, userID)
}
