package orders

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"mug-life-api/catalog"
	"mug-life-api/models"
)

// CartStore holds the open carts, keyed by cart ID. A cart disappears
// when its order is confirmed.
type CartStore struct {
	mu    sync.Mutex
	carts map[string]*models.Cart
}

func NewCartStore() *CartStore {
	return &CartStore{carts: make(map[string]*models.Cart)}
}

// Create opens an empty cart for a customer.
func (s *CartStore) Create(customer string) *models.Cart {
	cart := &models.Cart{
		ID:        uuid.NewString(),
		Customer:  customer,
		CreatedAt: time.Now(),
	}
	s.mu.Lock()
	s.carts[cart.ID] = cart
	s.mu.Unlock()
	return cart
}

// Get returns a copy of a cart.
func (s *CartStore) Get(id string) (models.Cart, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cart, ok := s.carts[id]
	if !ok {
		return models.Cart{}, false
	}
	return *cart, true
}

// AddLine appends a priced line to a cart. Quantity must be at least 1,
// the item/size must exist on the menu and add-ons may not repeat. The
// unit price is snapshotted here, add-ons included.
func (s *CartStore) AddLine(cartID, item string, size models.Size, quantity int, addOns []string) (models.CartLine, error) {
	if quantity < 1 {
		return models.CartLine{}, fmt.Errorf("quantity must be at least 1, got %d", quantity)
	}
	basePrice, ok := catalog.PriceOf(item, size)
	if !ok {
		return models.CartLine{}, fmt.Errorf("unknown menu item %q (%s)", item, size)
	}
	unitPrice := basePrice
	seen := make(map[string]bool, len(addOns))
	for _, addOn := range addOns {
		price, ok := catalog.AddOnPrice(addOn)
		if !ok {
			return models.CartLine{}, fmt.Errorf("unknown add-on %q", addOn)
		}
		if seen[addOn] {
			return models.CartLine{}, fmt.Errorf("duplicate add-on %q", addOn)
		}
		seen[addOn] = true
		unitPrice += price
	}

	line := models.CartLine{
		Item:      item,
		Size:      size,
		Quantity:  quantity,
		AddOns:    addOns,
		UnitPrice: unitPrice,
		LineTotal: unitPrice * float64(quantity),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	cart, ok := s.carts[cartID]
	if !ok {
		return models.CartLine{}, fmt.Errorf("no such cart %q", cartID)
	}
	cart.Lines = append(cart.Lines, line)
	return line, nil
}

// remove drops a cart after its order commits.
func (s *CartStore) remove(id string) {
	s.mu.Lock()
	delete(s.carts, id)
	s.mu.Unlock()
}
