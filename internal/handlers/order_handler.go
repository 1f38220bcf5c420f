package handlers

import (
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"shopapi/internal/models"
	"shopapi/internal/services"
)

// OrderHandler handles HTTP requests for orders.
type OrderHandler struct {
	service  *services.OrderService
	validate *validator.Validate
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(service *services.OrderService) *OrderHandler {
	return &OrderHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the order routes with the Fiber app. The
// customer and from-cart routes are registered before :id so they are not
// shadowed.
func (h *OrderHandler) RegisterRoutes(router fiber.Router) {
	orderRoutes := router.Group("/orders")
	orderRoutes.Get("/", h.HandleListOrders)
	orderRoutes.Post("/", h.HandleCreateOrder)
	orderRoutes.Post("/from-cart/:customerID", h.HandleCheckoutCart)
	orderRoutes.Get("/customer/:customerID", h.HandleOrdersByCustomer)
	orderRoutes.Get("/:id", h.HandleGetOrderByID)
	orderRoutes.Patch("/:id/status", h.HandleUpdateOrderStatus)
}

// HandleListOrders retrieves all orders.
func (h *OrderHandler) HandleListOrders(c *fiber.Ctx) error {
	orders, err := h.service.GetAllOrders()
	if err != nil {
		log.Printf("Error getting all orders: %v", err)
		return errorJSON(c, err)
	}
	return c.JSON(fiber.Map{
		"total":  len(orders),
		"orders": orders,
	})
}

// HandleGetOrderByID retrieves a single order by its ID.
func (h *OrderHandler) HandleGetOrderByID(c *fiber.Ctx) error {
	id, err := intParam(c, "id")
	if err != nil {
		return errorJSON(c, err)
	}
	order, err := h.service.GetOrderByID(id)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(order)
}

// HandleOrdersByCustomer retrieves all orders placed by one customer.
func (h *OrderHandler) HandleOrdersByCustomer(c *fiber.Ctx) error {
	customerID, err := intParam(c, "customerID")
	if err != nil {
		return errorJSON(c, err)
	}
	orders, err := h.service.GetOrdersByCustomer(customerID)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(fiber.Map{
		"customer_id": customerID,
		"orders":      orders,
	})
}

// HandleCreateOrder places an order from an explicit item list. The
// customer's cart is not touched on this path.
func (h *OrderHandler) HandleCreateOrder(c *fiber.Ctx) error {
	var req models.CreateOrderRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing create order body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return validationJSON(c, err)
	}

	order, err := h.service.PlaceOrder(req)
	if err != nil {
		log.Printf("Error creating order: %v", err)
		return errorJSON(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Order created successfully",
		"order":   order,
	})
}

// HandleCheckoutCart places an order from the customer's cart and clears
// the cart on success.
func (h *OrderHandler) HandleCheckoutCart(c *fiber.Ctx) error {
	customerID, err := intParam(c, "customerID")
	if err != nil {
		return errorJSON(c, err)
	}

	var req models.CheckoutRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing checkout body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return validationJSON(c, err)
	}

	order, err := h.service.PlaceOrderFromCart(customerID, req)
	if err != nil {
		log.Printf("Error checking out cart for customer %d: %v", customerID, err)
		return errorJSON(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Order created successfully",
		"order":   order,
	})
}

// UpdateOrderStatusRequest is the payload for a status transition.
type UpdateOrderStatusRequest struct {
	Status models.OrderStatus `json:"status" validate:"required"`
}

// HandleUpdateOrderStatus moves an order along the status table.
func (h *OrderHandler) HandleUpdateOrderStatus(c *fiber.Ctx) error {
	id, err := intParam(c, "id")
	if err != nil {
		return errorJSON(c, err)
	}

	var req UpdateOrderStatusRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing status update body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return validationJSON(c, err)
	}

	order, err := h.service.UpdateOrderStatus(id, req.Status)
	if err != nil {
		log.Printf("Error updating status of order %d: %v", id, err)
		return errorJSON(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Order status updated",
		"order":   order,
	})
}
