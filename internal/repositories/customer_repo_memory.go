package repositories

import (
	"sort"
	"sync"

	"shopapi/internal/apperrors"
	"shopapi/internal/models"
)

// MemoryCustomerRepository is the in-memory implementation of
// CustomerRepository.
type MemoryCustomerRepository struct {
	customers map[int]models.Customer
	mu        sync.RWMutex
}

// NewMemoryCustomerRepository creates a new instance of
// MemoryCustomerRepository.
func NewMemoryCustomerRepository() *MemoryCustomerRepository {
	return &MemoryCustomerRepository{
		customers: make(map[int]models.Customer),
	}
}

// GetAll returns all customers ordered by id.
func (r *MemoryCustomerRepository) GetAll() ([]models.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	customerList := make([]models.Customer, 0, len(r.customers))
	for _, c := range r.customers {
		customerList = append(customerList, c)
	}
	sort.Slice(customerList, func(i, j int) bool {
		return customerList[i].ID < customerList[j].ID
	})
	return customerList, nil
}

// GetByID returns a copy of the customer with the given id.
func (r *MemoryCustomerRepository) GetByID(id int) (*models.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	customer, ok := r.customers[id]
	if !ok {
		return nil, apperrors.NotFound("customer with ID %d not found", id)
	}
	return &customer, nil
}

// Create registers a new customer under its client-supplied id.
func (r *MemoryCustomerRepository) Create(customer *models.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.customers[customer.ID]; ok {
		return apperrors.Conflict("customer with ID %d already exists", customer.ID)
	}
	r.customers[customer.ID] = *customer
	return nil
}
