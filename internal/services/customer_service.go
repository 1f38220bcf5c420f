package services

import (
	"shopapi/internal/models"
	"shopapi/internal/repositories"
)

// CustomerService handles business logic related to customers.
type CustomerService struct {
	repo repositories.CustomerRepository
}

// NewCustomerService creates a new CustomerService.
func NewCustomerService(repo repositories.CustomerRepository) *CustomerService {
	return &CustomerService{
		repo: repo,
	}
}

// RegisterCustomer stores a new customer under its client-supplied id.
func (s *CustomerService) RegisterCustomer(customer *models.Customer) error {
	return s.repo.Create(customer)
}

// ListCustomers retrieves all customers, optionally only premium ones.
func (s *CustomerService) ListCustomers(premiumOnly bool) ([]models.Customer, error) {
	customers, err := s.repo.GetAll()
	if err != nil {
		return nil, err
	}
	if !premiumOnly {
		return customers, nil
	}
	premium := make([]models.Customer, 0, len(customers))
	for _, c := range customers {
		if c.IsPremium {
			premium = append(premium, c)
		}
	}
	return premium, nil
}

// GetCustomerByID retrieves a single customer by its ID.
func (s *CustomerService) GetCustomerByID(id int) (*models.Customer, error) {
	return s.repo.GetByID(id)
}
