package models

import "time"

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// ValidOrderStatus reports whether s is one of the known statuses.
func ValidOrderStatus(s OrderStatus) bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// CanTransition reports whether an order may move from one status to another.
// The forward path is strictly stepwise
// (pending -> processing -> shipped -> delivered); cancellation is allowed
// from every state except the terminal ones.
func CanTransition(from, to OrderStatus) bool {
	if to == OrderStatusCancelled {
		return from != OrderStatusDelivered && from != OrderStatusCancelled
	}
	switch from {
	case OrderStatusPending:
		return to == OrderStatusProcessing
	case OrderStatusProcessing:
		return to == OrderStatusShipped
	case OrderStatusShipped:
		return to == OrderStatusDelivered
	}
	return false
}

// OrderItem is a line frozen into an order at creation time.
// PriceAtPurchase is the effective (discounted) unit price at the moment the
// order was placed and never changes afterwards.
type OrderItem struct {
	ProductID       int     `json:"product_id" validate:"required,gt=0"`
	Quantity        int     `json:"quantity" validate:"required,gt=0"`
	PriceAtPurchase float64 `json:"price_at_purchase"`
}

// Order represents a customer order.
type Order struct {
	ID              int         `json:"id"`
	CustomerID      int         `json:"customer_id"`
	Items           []OrderItem `json:"items"`
	TotalAmount     float64     `json:"total_amount"`
	Status          OrderStatus `json:"status"`
	ShippingAddress string      `json:"shipping_address"`
	PaymentMethod   string      `json:"payment_method"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}

// CreateOrderRequest is the payload for placing an order from an explicit
// item list. Item prices are computed server-side; any client-supplied
// price_at_purchase is ignored.
type CreateOrderRequest struct {
	CustomerID      int         `json:"customer_id" validate:"required,gt=0"`
	Items           []OrderItem `json:"items" validate:"required,min=1,dive"`
	ShippingAddress string      `json:"shipping_address" validate:"required"`
	PaymentMethod   string      `json:"payment_method" validate:"required"`
}

// CheckoutRequest is the payload for placing an order from the cart.
type CheckoutRequest struct {
	ShippingAddress string `json:"shipping_address" validate:"required"`
	PaymentMethod   string `json:"payment_method" validate:"required"`
}
