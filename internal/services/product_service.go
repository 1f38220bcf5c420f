package services

import (
	"shopapi/internal/apperrors"
	"shopapi/internal/models"
	"shopapi/internal/repositories"
)

// Listing pagination bounds.
const (
	defaultListLimit = 20
	maxListLimit     = 100
)

// ProductService handles business logic related to the product catalog.
type ProductService struct {
	repo repositories.ProductRepository
}

// NewProductService creates a new ProductService.
func NewProductService(repo repositories.ProductRepository) *ProductService {
	return &ProductService{
		repo: repo,
	}
}

// ListProducts returns one page of the catalog after applying the filters.
func (s *ProductService) ListProducts(filter models.ProductFilter) (*models.ProductPage, error) {
	if filter.Category != "" && !models.ValidCategory(filter.Category) {
		return nil, apperrors.Validation("invalid product category: %s", filter.Category)
	}
	if filter.MinPrice != nil && filter.MaxPrice != nil && *filter.MinPrice > *filter.MaxPrice {
		return nil, apperrors.BadRequest("min_price %.2f exceeds max_price %.2f", *filter.MinPrice, *filter.MaxPrice)
	}
	if filter.Limit > maxListLimit {
		return nil, apperrors.Validation("limit must be at most %d", maxListLimit)
	}
	if filter.Limit <= 0 {
		filter.Limit = defaultListLimit
	}
	if filter.Skip < 0 {
		filter.Skip = 0
	}

	products, err := s.repo.GetAll()
	if err != nil {
		return nil, err
	}

	filtered := make([]models.Product, 0, len(products))
	for _, p := range products {
		if filter.Category != "" && p.Category != filter.Category {
			continue
		}
		if filter.MinPrice != nil && p.Price < *filter.MinPrice {
			continue
		}
		if filter.MaxPrice != nil && p.Price > *filter.MaxPrice {
			continue
		}
		if filter.InStockOnly && p.StockQuantity <= 0 {
			continue
		}
		filtered = append(filtered, withDiscountedPrice(p))
	}

	total := len(filtered)
	start := filter.Skip
	if start > total {
		start = total
	}
	end := start + filter.Limit
	if end > total {
		end = total
	}

	return &models.ProductPage{
		Total:    total,
		Products: filtered[start:end],
	}, nil
}

// GetProductByID retrieves a single product by its ID.
func (s *ProductService) GetProductByID(id int) (*models.Product, error) {
	product, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	view := withDiscountedPrice(*product)
	return &view, nil
}

// GetProductsByCategory returns every product in one category.
func (s *ProductService) GetProductsByCategory(category models.ProductCategory) ([]models.Product, error) {
	if !models.ValidCategory(category) {
		return nil, apperrors.Validation("invalid product category: %s", category)
	}
	products, err := s.repo.GetAll()
	if err != nil {
		return nil, err
	}
	matched := make([]models.Product, 0)
	for _, p := range products {
		if p.Category == category {
			matched = append(matched, withDiscountedPrice(p))
		}
	}
	return matched, nil
}

// CreateProduct validates and stores a new product.
func (s *ProductService) CreateProduct(product *models.Product) error {
	if product.Price < 0 {
		return apperrors.Validation("price must not be negative")
	}
	if !models.ValidCategory(product.Category) {
		return apperrors.Validation("invalid product category: %s", product.Category)
	}
	if product.DiscountPercentage < 0 || product.DiscountPercentage > 100 {
		return apperrors.Validation("discount_percentage must be between 0 and 100")
	}
	return s.repo.Create(product)
}

// UpdateProduct applies a partial update to the mutable product fields.
func (s *ProductService) UpdateProduct(id int, update models.ProductUpdate) (*models.Product, error) {
	product, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if update.Name != nil {
		product.Name = *update.Name
	}
	if update.Description != nil {
		product.Description = *update.Description
	}
	if update.Price != nil {
		if *update.Price < 0 {
			return nil, apperrors.Validation("price must not be negative")
		}
		product.Price = *update.Price
	}
	if update.Category != nil {
		if !models.ValidCategory(*update.Category) {
			return nil, apperrors.Validation("invalid product category: %s", *update.Category)
		}
		product.Category = *update.Category
	}
	if update.StockQuantity != nil {
		if *update.StockQuantity < 0 {
			return nil, apperrors.Validation("stock_quantity must not be negative")
		}
		product.StockQuantity = *update.StockQuantity
	}
	if update.ImageURL != nil {
		product.ImageURL = *update.ImageURL
	}
	if update.DiscountPercentage != nil {
		if *update.DiscountPercentage < 0 || *update.DiscountPercentage > 100 {
			return nil, apperrors.Validation("discount_percentage must be between 0 and 100")
		}
		product.DiscountPercentage = *update.DiscountPercentage
	}

	if err := s.repo.Update(product); err != nil {
		return nil, err
	}
	view := withDiscountedPrice(*product)
	return &view, nil
}

// DeleteProduct removes a product and returns the deleted record. Orders
// keep their price snapshots and carts their lines; there is no cascade.
func (s *ProductService) DeleteProduct(id int) (*models.Product, error) {
	product, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Delete(id); err != nil {
		return nil, err
	}
	return product, nil
}

// withDiscountedPrice fills the derived DiscountedPrice view field when a
// discount applies.
func withDiscountedPrice(p models.Product) models.Product {
	if p.DiscountPercentage > 0 {
		p.DiscountedPrice = p.EffectivePrice()
	}
	return p
}
