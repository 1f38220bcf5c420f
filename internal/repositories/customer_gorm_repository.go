package repositories

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"shopapi/internal/apperrors"
	"shopapi/internal/models"
)

// GORMCustomerRepository is a GORM implementation of CustomerRepository.
type GORMCustomerRepository struct {
	db *gorm.DB
}

// NewGORMCustomerRepository creates a new instance of GORMCustomerRepository.
func NewGORMCustomerRepository(db *gorm.DB) *GORMCustomerRepository {
	return &GORMCustomerRepository{
		db: db,
	}
}

// GetAll retrieves all customers ordered by id.
func (r *GORMCustomerRepository) GetAll() ([]models.Customer, error) {
	var customers []models.Customer
	if err := r.db.Order("id").Find(&customers).Error; err != nil {
		return nil, fmt.Errorf("failed to get all customers: %w", err)
	}
	return customers, nil
}

// GetByID retrieves a single customer by its id.
func (r *GORMCustomerRepository) GetByID(id int) (*models.Customer, error) {
	var customer models.Customer
	if err := r.db.First(&customer, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("customer with ID %d not found", id)
		}
		return nil, fmt.Errorf("failed to get customer by ID %d: %w", id, err)
	}
	return &customer, nil
}

// Create registers a new customer under its client-supplied id.
func (r *GORMCustomerRepository) Create(customer *models.Customer) error {
	var existing models.Customer
	err := r.db.First(&existing, "id = ?", customer.ID).Error
	if err == nil {
		return apperrors.Conflict("customer with ID %d already exists", customer.ID)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check customer ID %d: %w", customer.ID, err)
	}
	if err := r.db.Create(customer).Error; err != nil {
		return fmt.Errorf("failed to create customer: %w", err)
	}
	return nil
}
