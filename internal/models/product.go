package models

import "math"

// ProductCategory is the fixed set of catalog categories.
type ProductCategory string

const (
	CategoryElectronics ProductCategory = "electronics"
	CategoryClothing    ProductCategory = "clothing"
	CategoryBooks       ProductCategory = "books"
	CategoryHome        ProductCategory = "home"
	CategorySports      ProductCategory = "sports"
	CategoryBeauty      ProductCategory = "beauty"
)

// ValidCategory reports whether c is one of the known categories.
func ValidCategory(c ProductCategory) bool {
	switch c {
	case CategoryElectronics, CategoryClothing, CategoryBooks,
		CategoryHome, CategorySports, CategoryBeauty:
		return true
	}
	return false
}

// Product represents a product in the catalog.
type Product struct {
	ID                 int             `json:"id" gorm:"primaryKey"`
	Name               string          `json:"name" validate:"required,min=1,max=200"`
	Description        string          `json:"description,omitempty" validate:"omitempty,max=500"`
	Price              float64         `json:"price" validate:"gte=0"`
	Category           ProductCategory `json:"category" gorm:"type:varchar(20)" validate:"required,oneof=electronics clothing books home sports beauty"`
	StockQuantity      int             `json:"stock_quantity" validate:"gte=0"`
	ImageURL           string          `json:"image_url,omitempty"`
	DiscountPercentage float64         `json:"discount_percentage" validate:"gte=0,lte=100"`

	// DiscountedPrice is filled on reads when a discount applies. It is a
	// derived view field, never stored.
	DiscountedPrice float64 `json:"discounted_price,omitempty" gorm:"-"`
}

// EffectivePrice is the unit price after applying the product's discount.
func (p Product) EffectivePrice() float64 {
	return Round2(p.Price * (1 - p.DiscountPercentage/100))
}

// ProductUpdate carries the mutable product fields for a partial update.
// Nil fields are left unchanged.
type ProductUpdate struct {
	Name               *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Description        *string          `json:"description" validate:"omitempty,max=500"`
	Price              *float64         `json:"price" validate:"omitempty,gte=0"`
	Category           *ProductCategory `json:"category" validate:"omitempty,oneof=electronics clothing books home sports beauty"`
	StockQuantity      *int             `json:"stock_quantity" validate:"omitempty,gte=0"`
	ImageURL           *string          `json:"image_url"`
	DiscountPercentage *float64         `json:"discount_percentage" validate:"omitempty,gte=0,lte=100"`
}

// ProductFilter holds the catalog listing filters. All set filters compose
// with logical AND.
type ProductFilter struct {
	Category    ProductCategory
	MinPrice    *float64
	MaxPrice    *float64
	InStockOnly bool
	Skip        int
	Limit       int
}

// ProductPage is one page of filtered catalog results. Total counts every
// product matching the filters, before pagination.
type ProductPage struct {
	Total    int       `json:"total"`
	Products []Product `json:"products"`
}

// Round2 rounds to two decimal places, the precision used for money values.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
