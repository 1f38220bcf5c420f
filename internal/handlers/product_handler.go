package handlers

import (
	"log"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"shopapi/internal/apperrors"
	"shopapi/internal/models"
	"shopapi/internal/services"
)

// ProductHandler handles HTTP requests for the product catalog.
type ProductHandler struct {
	service  *services.ProductService
	validate *validator.Validate
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService) *ProductHandler {
	return &ProductHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the product routes with the Fiber app.
// The category route is registered before the id route so it is not
// shadowed by the :id match.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleListProducts)
	productRoutes.Post("/", h.HandleCreateProduct)
	productRoutes.Get("/category/:category", h.HandleProductsByCategory)
	productRoutes.Get("/:id", h.HandleGetProduct)
	productRoutes.Put("/:id", h.HandleUpdateProduct)
	productRoutes.Delete("/:id", h.HandleDeleteProduct)
}

// HandleListProducts lists the catalog with optional filters: category,
// min_price, max_price, in_stock_only, skip and limit.
func (h *ProductHandler) HandleListProducts(c *fiber.Ctx) error {
	filter := models.ProductFilter{
		Category:    models.ProductCategory(c.Query("category")),
		InStockOnly: c.QueryBool("in_stock_only"),
		Skip:        c.QueryInt("skip"),
		Limit:       c.QueryInt("limit"),
	}
	if raw := c.Query("min_price"); raw != "" {
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return errorJSON(c, apperrors.Validation("invalid min_price: %s", raw))
		}
		filter.MinPrice = &value
	}
	if raw := c.Query("max_price"); raw != "" {
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return errorJSON(c, apperrors.Validation("invalid max_price: %s", raw))
		}
		filter.MaxPrice = &value
	}

	page, err := h.service.ListProducts(filter)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(page)
}

// HandleGetProduct retrieves a single product by its ID.
func (h *ProductHandler) HandleGetProduct(c *fiber.Ctx) error {
	id, err := intParam(c, "id")
	if err != nil {
		return errorJSON(c, err)
	}
	product, err := h.service.GetProductByID(id)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(product)
}

// HandleProductsByCategory lists every product in one category.
func (h *ProductHandler) HandleProductsByCategory(c *fiber.Ctx) error {
	category := models.ProductCategory(c.Params("category"))
	products, err := h.service.GetProductsByCategory(category)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(fiber.Map{
		"category": category,
		"count":    len(products),
		"products": products,
	})
}

// HandleCreateProduct creates a new product.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	var product models.Product
	if err := c.BodyParser(&product); err != nil {
		log.Printf("Error parsing create product body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	product.ID = 0 // ids are assigned by the store

	if err := h.validate.Struct(product); err != nil {
		return validationJSON(c, err)
	}

	if err := h.service.CreateProduct(&product); err != nil {
		log.Printf("Error creating product: %v", err)
		return errorJSON(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Product created successfully",
		"product": product,
	})
}

// HandleUpdateProduct applies a partial update to a product.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	id, err := intParam(c, "id")
	if err != nil {
		return errorJSON(c, err)
	}

	var update models.ProductUpdate
	if err := c.BodyParser(&update); err != nil {
		log.Printf("Error parsing update product body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(update); err != nil {
		return validationJSON(c, err)
	}

	product, err := h.service.UpdateProduct(id, update)
	if err != nil {
		log.Printf("Error updating product %d: %v", id, err)
		return errorJSON(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Product updated successfully",
		"product": product,
	})
}

// HandleDeleteProduct deletes a product.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	id, err := intParam(c, "id")
	if err != nil {
		return errorJSON(c, err)
	}
	product, err := h.service.DeleteProduct(id)
	if err != nil {
		log.Printf("Error deleting product %d: %v", id, err)
		return errorJSON(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Product deleted successfully",
		"product": product,
	})
}
