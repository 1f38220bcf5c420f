package handlers

import (
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"shopapi/internal/models"
	"shopapi/internal/services"
)

// CustomerHandler handles HTTP requests for customers.
type CustomerHandler struct {
	service  *services.CustomerService
	validate *validator.Validate
}

// NewCustomerHandler creates a new CustomerHandler.
func NewCustomerHandler(service *services.CustomerService) *CustomerHandler {
	return &CustomerHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the customer routes with the Fiber app.
func (h *CustomerHandler) RegisterRoutes(router fiber.Router) {
	customerRoutes := router.Group("/customers")
	customerRoutes.Get("/", h.HandleListCustomers)
	customerRoutes.Post("/", h.HandleRegisterCustomer)
	customerRoutes.Get("/:id", h.HandleGetCustomer)
}

// HandleListCustomers lists all customers, optionally only premium ones.
func (h *CustomerHandler) HandleListCustomers(c *fiber.Ctx) error {
	customers, err := h.service.ListCustomers(c.QueryBool("premium_only"))
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(customers)
}

// HandleGetCustomer retrieves a single customer by its ID.
func (h *CustomerHandler) HandleGetCustomer(c *fiber.Ctx) error {
	id, err := intParam(c, "id")
	if err != nil {
		return errorJSON(c, err)
	}
	customer, err := h.service.GetCustomerByID(id)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(customer)
}

// HandleRegisterCustomer registers a new customer. The id is supplied by
// the client and must be free.
func (h *CustomerHandler) HandleRegisterCustomer(c *fiber.Ctx) error {
	var customer models.Customer
	if err := c.BodyParser(&customer); err != nil {
		log.Printf("Error parsing register customer body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(customer); err != nil {
		return validationJSON(c, err)
	}

	if err := h.service.RegisterCustomer(&customer); err != nil {
		log.Printf("Error registering customer %d: %v", customer.ID, err)
		return errorJSON(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":  "Customer created successfully",
		"customer": customer,
	})
}
