package services

import (
	"sort"

	"shopapi/internal/apperrors"
	"shopapi/internal/models"
	"shopapi/internal/repositories"
)

// CartService handles business logic related to shopping carts. Cart totals
// are derived from the live catalog on every read; only order placement
// snapshots prices.
type CartService struct {
	carts     repositories.CartRepository
	products  repositories.ProductRepository
	customers repositories.CustomerRepository
}

// NewCartService creates a new CartService.
func NewCartService(carts repositories.CartRepository, products repositories.ProductRepository, customers repositories.CustomerRepository) *CartService {
	return &CartService{
		carts:     carts,
		products:  products,
		customers: customers,
	}
}

// GetCart returns the computed view of a customer's cart. Lines whose
// product has been deleted from the catalog are skipped.
func (s *CartService) GetCart(customerID int) (*models.CartView, error) {
	if _, err := s.customers.GetByID(customerID); err != nil {
		return nil, err
	}

	lines, err := s.carts.Get(customerID)
	if err != nil {
		return nil, err
	}

	productIDs := make([]int, 0, len(lines))
	for productID := range lines {
		productIDs = append(productIDs, productID)
	}
	sort.Ints(productIDs)

	view := &models.CartView{
		CustomerID: customerID,
		Items:      make([]models.CartLine, 0, len(lines)),
	}
	var subtotal, total float64
	for _, productID := range productIDs {
		quantity := lines[productID]
		product, err := s.products.GetByID(productID)
		if err != nil {
			if apperrors.IsNotFound(err) {
				continue
			}
			return nil, err
		}
		unitPrice := product.EffectivePrice()
		itemTotal := unitPrice * float64(quantity)
		subtotal += product.Price * float64(quantity)
		total += itemTotal
		view.Items = append(view.Items, models.CartLine{
			ProductID:   productID,
			ProductName: product.Name,
			Quantity:    quantity,
			UnitPrice:   unitPrice,
			ItemTotal:   models.Round2(itemTotal),
		})
		view.TotalItems += quantity
	}
	view.Subtotal = models.Round2(subtotal)
	view.TotalAmount = models.Round2(total)
	view.DiscountAmount = models.Round2(subtotal - total)
	return view, nil
}

// AddToCart adds a quantity of a product to the customer's cart, merging
// with an existing line. The combined quantity must not exceed the current
// stock.
func (s *CartService) AddToCart(customerID, productID, quantity int) (*models.CartView, error) {
	if quantity <= 0 {
		return nil, apperrors.Validation("quantity must be positive")
	}
	if _, err := s.customers.GetByID(customerID); err != nil {
		return nil, err
	}
	product, err := s.products.GetByID(productID)
	if err != nil {
		return nil, err
	}

	lines, err := s.carts.Get(customerID)
	if err != nil {
		return nil, err
	}
	requested := lines[productID] + quantity
	if requested > product.StockQuantity {
		return nil, apperrors.BadRequest("insufficient stock for %s (requested: %d, available: %d)",
			product.Name, requested, product.StockQuantity)
	}

	if err := s.carts.SetQuantity(customerID, productID, requested); err != nil {
		return nil, err
	}
	return s.GetCart(customerID)
}

// RemoveFromCart deletes one line from the customer's cart.
func (s *CartService) RemoveFromCart(customerID, productID int) error {
	if _, err := s.customers.GetByID(customerID); err != nil {
		return err
	}
	return s.carts.Remove(customerID, productID)
}

// ClearCart empties the customer's cart. Idempotent.
func (s *CartService) ClearCart(customerID int) error {
	return s.carts.Clear(customerID)
}
