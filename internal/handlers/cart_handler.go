package handlers

import (
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"shopapi/internal/models"
	"shopapi/internal/services"
)

// CartHandler handles HTTP requests for shopping carts.
type CartHandler struct {
	service  *services.CartService
	validate *validator.Validate
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(service *services.CartService) *CartHandler {
	return &CartHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the cart routes with the Fiber app.
func (h *CartHandler) RegisterRoutes(router fiber.Router) {
	cartRoutes := router.Group("/cart")
	cartRoutes.Get("/:customerID", h.HandleGetCart)
	cartRoutes.Post("/:customerID/add", h.HandleAddToCart)
	cartRoutes.Delete("/:customerID/remove/:productID", h.HandleRemoveFromCart)
	cartRoutes.Delete("/:customerID/clear", h.HandleClearCart)
}

// HandleGetCart returns the computed cart view for one customer.
func (h *CartHandler) HandleGetCart(c *fiber.Ctx) error {
	customerID, err := intParam(c, "customerID")
	if err != nil {
		return errorJSON(c, err)
	}
	cart, err := h.service.GetCart(customerID)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(cart)
}

// HandleAddToCart adds a product to the customer's cart.
func (h *CartHandler) HandleAddToCart(c *fiber.Ctx) error {
	customerID, err := intParam(c, "customerID")
	if err != nil {
		return errorJSON(c, err)
	}

	var item models.CartItem
	if err := c.BodyParser(&item); err != nil {
		log.Printf("Error parsing add to cart body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(item); err != nil {
		return validationJSON(c, err)
	}

	cart, err := h.service.AddToCart(customerID, item.ProductID, item.Quantity)
	if err != nil {
		log.Printf("Error adding product %d to cart of customer %d: %v", item.ProductID, customerID, err)
		return errorJSON(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Product added to cart",
		"cart":    cart,
	})
}

// HandleRemoveFromCart removes one line from the customer's cart.
func (h *CartHandler) HandleRemoveFromCart(c *fiber.Ctx) error {
	customerID, err := intParam(c, "customerID")
	if err != nil {
		return errorJSON(c, err)
	}
	productID, err := intParam(c, "productID")
	if err != nil {
		return errorJSON(c, err)
	}
	if err := h.service.RemoveFromCart(customerID, productID); err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Product removed from cart",
	})
}

// HandleClearCart empties the customer's cart.
func (h *CartHandler) HandleClearCart(c *fiber.Ctx) error {
	customerID, err := intParam(c, "customerID")
	if err != nil {
		return errorJSON(c, err)
	}
	if err := h.service.ClearCart(customerID); err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Cart cleared",
	})
}
