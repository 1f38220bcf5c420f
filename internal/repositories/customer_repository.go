package repositories

import "shopapi/internal/models"

// CustomerRepository defines the interface for customer data access.
// Customers are immutable after registration, so there is no update or
// delete.
type CustomerRepository interface {
	GetAll() ([]models.Customer, error)
	GetByID(id int) (*models.Customer, error)
	Create(customer *models.Customer) error
}
