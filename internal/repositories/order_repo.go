package repositories

import "shopapi/internal/models"

// OrderRepository defines the interface for order data access. Orders are
// immutable snapshots apart from their status.
type OrderRepository interface {
	GetAll() ([]models.Order, error)
	GetByID(id int) (*models.Order, error)
	GetByCustomer(customerID int) ([]models.Order, error)
	Create(order *models.Order) error
	UpdateStatus(id int, status models.OrderStatus) (*models.Order, error)
}
