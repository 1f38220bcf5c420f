package models

// CartItem is the payload for adding a product to a cart.
type CartItem struct {
	ProductID int `json:"product_id" validate:"required,gt=0"`
	Quantity  int `json:"quantity" validate:"required,gt=0"`
}

// CartLine is a cart entry joined with live product pricing. Unit price and
// totals are derived from the current catalog state at read time, not
// snapshotted: a later price or discount change alters what the cart shows.
type CartLine struct {
	ProductID   int     `json:"product_id"`
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	ItemTotal   float64 `json:"item_total"`
}

// CartView is the computed view of a customer's cart.
type CartView struct {
	CustomerID     int        `json:"customer_id"`
	Items          []CartLine `json:"items"`
	TotalItems     int        `json:"total_items"`
	Subtotal       float64    `json:"subtotal"`
	DiscountAmount float64    `json:"discount_amount"`
	TotalAmount    float64    `json:"total_amount"`
}
