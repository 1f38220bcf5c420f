package services

import (
	"encoding/json"
	"log"
	"sort"

	"shopapi/internal/apperrors"
	"shopapi/internal/models"
	"shopapi/internal/repositories"
	"shopapi/pkg/events"
)

// OrderService handles the order workflow: converting a validated cart or
// item list into an immutable order while keeping inventory consistent.
//
// The workflow is validate-all-then-mutate-all: every customer, product and
// stock check completes before the order is persisted, stock decremented or
// the cart cleared, so a failure never leaves state partially modified.
// This holds under the single-writer request model the service is built
// for; there is no cross-repository locking.
type OrderService struct {
	orders    repositories.OrderRepository
	products  repositories.ProductRepository
	customers repositories.CustomerRepository
	carts     repositories.CartRepository
	mqClient  *events.Client
}

// NewOrderService creates a new OrderService. mqClient may be nil, which
// disables event publishing.
func NewOrderService(orders repositories.OrderRepository, products repositories.ProductRepository,
	customers repositories.CustomerRepository, carts repositories.CartRepository, mqClient *events.Client) *OrderService {
	return &OrderService{
		orders:    orders,
		products:  products,
		customers: customers,
		carts:     carts,
		mqClient:  mqClient,
	}
}

// GetAllOrders retrieves all orders.
func (s *OrderService) GetAllOrders() ([]models.Order, error) {
	return s.orders.GetAll()
}

// GetOrderByID retrieves a single order by its ID.
func (s *OrderService) GetOrderByID(id int) (*models.Order, error) {
	return s.orders.GetByID(id)
}

// GetOrdersByCustomer retrieves all orders placed by one customer.
func (s *OrderService) GetOrdersByCustomer(customerID int) ([]models.Order, error) {
	return s.orders.GetByCustomer(customerID)
}

// PlaceOrder creates an order from an explicit item list. Item prices are
// snapshotted as the effective (discounted) unit price at this instant;
// later catalog changes do not touch the stored order. The customer's cart
// is left alone on this path.
func (s *OrderService) PlaceOrder(req models.CreateOrderRequest) (*models.Order, error) {
	if len(req.Items) == 0 {
		return nil, apperrors.Validation("an order needs at least one item")
	}
	if _, err := s.customers.GetByID(req.CustomerID); err != nil {
		return nil, err
	}

	// Validation phase. Duplicate lines for the same product are checked
	// against their combined quantity so the later decrement cannot push
	// stock below zero.
	needed := make(map[int]int, len(req.Items))
	for _, item := range req.Items {
		if item.Quantity <= 0 {
			return nil, apperrors.Validation("item quantity must be positive")
		}
		needed[item.ProductID] += item.Quantity
	}
	resolved := make(map[int]*models.Product, len(needed))
	for productID, quantity := range needed {
		product, err := s.products.GetByID(productID)
		if err != nil {
			return nil, err
		}
		if product.StockQuantity < quantity {
			return nil, apperrors.BadRequest("insufficient stock for %s (requested: %d, available: %d)",
				product.Name, quantity, product.StockQuantity)
		}
		resolved[productID] = product
	}

	// Snapshot prices and compute the total.
	items := make([]models.OrderItem, 0, len(req.Items))
	var total float64
	for _, item := range req.Items {
		unitPrice := resolved[item.ProductID].EffectivePrice()
		items = append(items, models.OrderItem{
			ProductID:       item.ProductID,
			Quantity:        item.Quantity,
			PriceAtPurchase: unitPrice,
		})
		total += unitPrice * float64(item.Quantity)
	}

	order := &models.Order{
		CustomerID:      req.CustomerID,
		Items:           items,
		TotalAmount:     models.Round2(total),
		Status:          models.OrderStatusPending,
		ShippingAddress: req.ShippingAddress,
		PaymentMethod:   req.PaymentMethod,
	}
	if err := s.orders.Create(order); err != nil {
		return nil, err
	}

	// Mutation phase: decrement stock. Deterministic order keeps logs and
	// failures reproducible.
	productIDs := make([]int, 0, len(needed))
	for productID := range needed {
		productIDs = append(productIDs, productID)
	}
	sort.Ints(productIDs)
	for _, productID := range productIDs {
		product := resolved[productID]
		product.StockQuantity -= needed[productID]
		if err := s.products.Update(product); err != nil {
			log.Printf("Failed to decrement stock for product %d on order %d: %v", productID, order.ID, err)
		}
	}

	s.publish(events.NewOrderEvent(events.TypeOrderCreated, order.ID, order.CustomerID, string(order.Status), order.TotalAmount))
	return order, nil
}

// PlaceOrderFromCart creates an order from the customer's current cart and
// clears the cart on success. Cart lines whose product has been deleted are
// dropped the same way the cart view drops them.
func (s *OrderService) PlaceOrderFromCart(customerID int, req models.CheckoutRequest) (*models.Order, error) {
	if _, err := s.customers.GetByID(customerID); err != nil {
		return nil, err
	}

	lines, err := s.carts.Get(customerID)
	if err != nil {
		return nil, err
	}
	productIDs := make([]int, 0, len(lines))
	for productID := range lines {
		if _, err := s.products.GetByID(productID); apperrors.IsNotFound(err) {
			continue
		}
		productIDs = append(productIDs, productID)
	}
	if len(productIDs) == 0 {
		return nil, apperrors.BadRequest("cart is empty for customer %d", customerID)
	}
	sort.Ints(productIDs)

	items := make([]models.OrderItem, 0, len(productIDs))
	for _, productID := range productIDs {
		items = append(items, models.OrderItem{ProductID: productID, Quantity: lines[productID]})
	}

	order, err := s.PlaceOrder(models.CreateOrderRequest{
		CustomerID:      customerID,
		Items:           items,
		ShippingAddress: req.ShippingAddress,
		PaymentMethod:   req.PaymentMethod,
	})
	if err != nil {
		return nil, err
	}

	if err := s.carts.Clear(customerID); err != nil {
		log.Printf("Failed to clear cart for customer %d after order %d: %v", customerID, order.ID, err)
	}
	return order, nil
}

// UpdateOrderStatus moves an order along the status table:
// pending -> processing -> shipped -> delivered, with cancellation allowed
// from every non-terminal state. Cancelling does not return stock to
// inventory.
func (s *OrderService) UpdateOrderStatus(id int, status models.OrderStatus) (*models.Order, error) {
	if !models.ValidOrderStatus(status) {
		return nil, apperrors.Validation("invalid order status: %s", status)
	}
	order, err := s.orders.GetByID(id)
	if err != nil {
		return nil, err
	}
	if !models.CanTransition(order.Status, status) {
		return nil, apperrors.BadRequest("invalid status transition from %s to %s", order.Status, status)
	}

	updated, err := s.orders.UpdateStatus(id, status)
	if err != nil {
		return nil, err
	}

	s.publish(events.NewOrderEvent(events.TypeOrderStatusChanged, updated.ID, updated.CustomerID, string(updated.Status), updated.TotalAmount))
	return updated, nil
}

// publish sends an order event when a broker is configured. Publishing
// failures are logged, never surfaced: the order workflow has already
// committed by the time events go out.
func (s *OrderService) publish(event events.OrderEvent) {
	if s.mqClient == nil {
		return
	}
	body, err := json.Marshal(event)
	if err != nil {
		log.Printf("Failed to marshal %s event for order %d: %v", event.Type, event.OrderID, err)
		return
	}
	if err := s.mqClient.Publish(event.Type, body); err != nil {
		log.Printf("Warning: failed to publish %s event for order %d: %v", event.Type, event.OrderID, err)
		return
	}
	log.Printf("Published %s event for order %d", event.Type, event.OrderID)
}
