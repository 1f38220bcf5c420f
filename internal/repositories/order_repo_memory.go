package repositories

import (
	"sort"
	"sync"
	"time"

	"shopapi/internal/apperrors"
	"shopapi/internal/models"
)

// MemoryOrderRepository is the in-memory implementation of OrderRepository.
type MemoryOrderRepository struct {
	orders map[int]models.Order
	nextID int
	mu     sync.RWMutex
}

// NewMemoryOrderRepository creates a new instance of MemoryOrderRepository.
func NewMemoryOrderRepository() *MemoryOrderRepository {
	return &MemoryOrderRepository{
		orders: make(map[int]models.Order),
		nextID: 1,
	}
}

// GetAll returns all orders ordered by id.
func (r *MemoryOrderRepository) GetAll() ([]models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	orderList := make([]models.Order, 0, len(r.orders))
	for _, o := range r.orders {
		orderList = append(orderList, o)
	}
	sort.Slice(orderList, func(i, j int) bool {
		return orderList[i].ID < orderList[j].ID
	})
	return orderList, nil
}

// GetByID returns a copy of the order with the given id.
func (r *MemoryOrderRepository) GetByID(id int) (*models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.orders[id]
	if !ok {
		return nil, apperrors.NotFound("order with ID %d not found", id)
	}
	return &order, nil
}

// GetByCustomer returns all orders placed by one customer, ordered by id.
func (r *MemoryOrderRepository) GetByCustomer(customerID int) ([]models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	orderList := make([]models.Order, 0)
	for _, o := range r.orders {
		if o.CustomerID == customerID {
			orderList = append(orderList, o)
		}
	}
	sort.Slice(orderList, func(i, j int) bool {
		return orderList[i].ID < orderList[j].ID
	})
	return orderList, nil
}

// Create stores a new order, assigning the next id and the creation
// timestamp.
func (r *MemoryOrderRepository) Create(order *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if order.ID == 0 {
		order.ID = r.nextID
	}
	if order.ID >= r.nextID {
		r.nextID = order.ID + 1
	}
	now := time.Now()
	order.CreatedAt = now
	order.UpdatedAt = now
	r.orders[order.ID] = *order
	return nil
}

// UpdateStatus sets the status of an order and returns the updated record.
func (r *MemoryOrderRepository) UpdateStatus(id int, status models.OrderStatus) (*models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.orders[id]
	if !ok {
		return nil, apperrors.NotFound("order with ID %d not found", id)
	}
	order.Status = status
	order.UpdatedAt = time.Now()
	r.orders[id] = order
	return &order, nil
}
