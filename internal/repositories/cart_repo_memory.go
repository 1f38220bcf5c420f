package repositories

import (
	"sync"

	"shopapi/internal/apperrors"
)

// MemoryCartRepository is the in-memory implementation of CartRepository.
// Carts are never persisted; they live exactly as long as the process.
type MemoryCartRepository struct {
	carts map[int]map[int]int
	mu    sync.RWMutex
}

// NewMemoryCartRepository creates a new instance of MemoryCartRepository.
func NewMemoryCartRepository() *MemoryCartRepository {
	return &MemoryCartRepository{
		carts: make(map[int]map[int]int),
	}
}

// Get returns a copy of the customer's cart lines.
func (r *MemoryCartRepository) Get(customerID int) (map[int]int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	lines := make(map[int]int, len(r.carts[customerID]))
	for productID, quantity := range r.carts[customerID] {
		lines[productID] = quantity
	}
	return lines, nil
}

// SetQuantity sets one cart line, removing it when the quantity drops to
// zero or below.
func (r *MemoryCartRepository) SetQuantity(customerID, productID, quantity int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cart, ok := r.carts[customerID]
	if !ok {
		cart = make(map[int]int)
		r.carts[customerID] = cart
	}
	if quantity <= 0 {
		delete(cart, productID)
		return nil
	}
	cart[productID] = quantity
	return nil
}

// Remove deletes one cart line.
func (r *MemoryCartRepository) Remove(customerID, productID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cart, ok := r.carts[customerID]
	if !ok {
		return apperrors.NotFound("product with ID %d not in cart for customer %d", productID, customerID)
	}
	if _, ok := cart[productID]; !ok {
		return apperrors.NotFound("product with ID %d not in cart for customer %d", productID, customerID)
	}
	delete(cart, productID)
	return nil
}

// Clear empties the customer's cart. Idempotent.
func (r *MemoryCartRepository) Clear(customerID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.carts, customerID)
	return nil
}

// ActiveCount reports how many customers have a non-empty cart.
func (r *MemoryCartRepository) ActiveCount() (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, cart := range r.carts {
		if len(cart) > 0 {
			count++
		}
	}
	return count, nil
}
