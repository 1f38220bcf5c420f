package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"shopapi/internal/handlers"
	"shopapi/internal/models"
	"shopapi/internal/repositories"
	"shopapi/internal/services"
)

// setupApp builds the full Fiber app over an in-memory SQLite database for
// products and customers and in-memory repositories for carts and orders.
// Each test gets its own named shared-cache database so state never leaks
// between tests.
func setupApp(t *testing.T) *fiber.App {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err, "failed to open in-memory database")
	require.NoError(t, db.AutoMigrate(&models.Product{}, &models.Customer{}))

	productRepo := repositories.NewGORMProductRepository(db)
	customerRepo := repositories.NewGORMCustomerRepository(db)
	cartRepo := repositories.NewMemoryCartRepository()
	orderRepo := repositories.NewMemoryOrderRepository()

	productService := services.NewProductService(productRepo)
	customerService := services.NewCustomerService(customerRepo)
	cartService := services.NewCartService(cartRepo, productRepo, customerRepo)
	orderService := services.NewOrderService(orderRepo, productRepo, customerRepo, cartRepo, nil)
	analyticsService := services.NewAnalyticsService(orderRepo, productRepo, customerRepo, 10)

	app := fiber.New()
	apiV1 := app.Group("/api/v1")
	handlers.NewProductHandler(productService).RegisterRoutes(apiV1)
	handlers.NewCustomerHandler(customerService).RegisterRoutes(apiV1)
	handlers.NewCartHandler(cartService).RegisterRoutes(apiV1)
	handlers.NewOrderHandler(orderService).RegisterRoutes(apiV1)
	handlers.NewAnalyticsHandler(analyticsService).RegisterRoutes(apiV1)

	seedForTest(t, productRepo, customerRepo)
	return app
}

func seedForTest(t *testing.T, productRepo repositories.ProductRepository, customerRepo repositories.CustomerRepository) {
	t.Helper()
	products := []models.Product{
		{Name: "Headphones", Description: "Noise cancelling", Price: 100, Category: models.CategoryElectronics, StockQuantity: 10, DiscountPercentage: 10},
		{Name: "Running Shoes", Price: 129.99, Category: models.CategorySports, StockQuantity: 5},
		{Name: "Single Lamp", Price: 45.50, Category: models.CategoryHome, StockQuantity: 1},
	}
	for i := range products {
		require.NoError(t, productRepo.Create(&products[i]))
	}
	require.NoError(t, customerRepo.Create(&models.Customer{ID: 1, Name: "John Doe", Email: "john@example.com", IsPremium: true}))
	require.NoError(t, customerRepo.Create(&models.Customer{ID: 2, Name: "Jane Smith", Email: "jane@example.com"}))
}

// doJSON performs one request against the app and decodes the JSON response
// body into a generic map.
func doJSON(t *testing.T, app *fiber.App, method, path string, body interface{}) (int, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	decoded := make(map[string]interface{})
	if len(raw) > 0 {
		require.NoErrorf(t, json.Unmarshal(raw, &decoded), "body: %s", raw)
	}
	return resp.StatusCode, decoded
}

func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

func TestProductEndpoints(t *testing.T) {
	app := setupApp(t)

	// Listing carries the pre-pagination total and derived discount price.
	status, body := doJSON(t, app, http.MethodGet, "/api/v1/products/", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(3), body["total"])
	first := body["products"].([]interface{})[0].(map[string]interface{})
	assert.Equal(t, float64(90), first["discounted_price"])

	// Filters compose.
	status, body = doJSON(t, app, http.MethodGet, "/api/v1/products/?category=electronics&in_stock_only=true", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(1), body["total"])

	// Unknown category in a filter is a schema problem.
	status, _ = doJSON(t, app, http.MethodGet, "/api/v1/products/?category=furniture", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, status)

	// Create, fetch, update, delete.
	status, body = doJSON(t, app, http.MethodPost, "/api/v1/products/", map[string]interface{}{
		"name": "Yoga Mat", "price": 25.0, "category": "sports", "stock_quantity": 40,
	})
	require.Equal(t, http.StatusCreated, status)
	created := body["product"].(map[string]interface{})
	productID := int(created["id"].(float64))
	assert.NotZero(t, productID)

	status, _ = doJSON(t, app, http.MethodPost, "/api/v1/products/", map[string]interface{}{
		"name": "Bad", "price": 10.0, "category": "furniture", "stock_quantity": 1,
	})
	assert.Equal(t, http.StatusUnprocessableEntity, status)

	status, _ = doJSON(t, app, http.MethodPost, "/api/v1/products/", map[string]interface{}{
		"name": "Bad", "price": -3.0, "category": "sports", "stock_quantity": 1,
	})
	assert.Equal(t, http.StatusUnprocessableEntity, status)

	status, body = doJSON(t, app, http.MethodPut, fmt.Sprintf("/api/v1/products/%d", productID), map[string]interface{}{
		"price": 19.99,
	})
	require.Equal(t, http.StatusOK, status)
	updated := body["product"].(map[string]interface{})
	assert.Equal(t, 19.99, updated["price"])
	assert.Equal(t, "Yoga Mat", updated["name"])

	status, _ = doJSON(t, app, http.MethodDelete, fmt.Sprintf("/api/v1/products/%d", productID), nil)
	assert.Equal(t, http.StatusOK, status)
	status, _ = doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/v1/products/%d", productID), nil)
	assert.Equal(t, http.StatusNotFound, status)

	// Category browse endpoint.
	status, body = doJSON(t, app, http.MethodGet, "/api/v1/products/category/electronics", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(1), body["count"])
}

func TestCustomerEndpoints(t *testing.T) {
	app := setupApp(t)

	status, body := doJSON(t, app, http.MethodPost, "/api/v1/customers/", map[string]interface{}{
		"id": 3, "name": "Sam Lee", "email": "sam@example.com",
	})
	assert.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "Customer created successfully", body["message"])

	// Duplicate id conflicts.
	status, _ = doJSON(t, app, http.MethodPost, "/api/v1/customers/", map[string]interface{}{
		"id": 3, "name": "Sam Again", "email": "sam2@example.com",
	})
	assert.Equal(t, http.StatusConflict, status)

	// Malformed email is a schema failure.
	status, _ = doJSON(t, app, http.MethodPost, "/api/v1/customers/", map[string]interface{}{
		"id": 4, "name": "Bad Email", "email": "not-an-email",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, status)

	status, _ = doJSON(t, app, http.MethodGet, "/api/v1/customers/99", nil)
	assert.Equal(t, http.StatusNotFound, status)

	// premium_only filters the listing.
	req := httptest.NewRequest(http.MethodGet, "/api/v1/customers/?premium_only=true", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	var customers []models.Customer
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&customers))
	assert.Len(t, customers, 1)
	assert.Equal(t, "John Doe", customers[0].Name)
}

func TestCartAndOrderFlow(t *testing.T) {
	app := setupApp(t)

	// Two headphones into customer 1's cart.
	status, body := doJSON(t, app, http.MethodPost, "/api/v1/cart/1/add", map[string]interface{}{
		"product_id": 1, "quantity": 2,
	})
	require.Equal(t, http.StatusOK, status)
	cart := body["cart"].(map[string]interface{})
	assert.Equal(t, float64(180), cart["total_amount"])
	assert.Equal(t, float64(200), cart["subtotal"])
	assert.Equal(t, float64(20), cart["discount_amount"])

	// Over-stock add is rejected and leaves the cart unchanged.
	status, _ = doJSON(t, app, http.MethodPost, "/api/v1/cart/1/add", map[string]interface{}{
		"product_id": 3, "quantity": 2,
	})
	assert.Equal(t, http.StatusBadRequest, status)
	status, body = doJSON(t, app, http.MethodGet, "/api/v1/cart/1", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, body["items"].([]interface{}), 1)

	// Checkout from the cart.
	status, body = doJSON(t, app, http.MethodPost, "/api/v1/orders/from-cart/1", map[string]interface{}{
		"shipping_address": "123 Main St", "payment_method": "card",
	})
	require.Equal(t, http.StatusCreated, status)
	order := body["order"].(map[string]interface{})
	assert.Equal(t, float64(180), order["total_amount"])
	assert.Equal(t, "pending", order["status"])
	orderID := int(order["id"].(float64))

	// Stock went down, cart is empty.
	status, body = doJSON(t, app, http.MethodGet, "/api/v1/products/1", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(8), body["stock_quantity"])
	status, body = doJSON(t, app, http.MethodGet, "/api/v1/cart/1", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Empty(t, body["items"])

	// Walk the status table to delivered, then fail to cancel.
	for _, next := range []string{"processing", "shipped", "delivered"} {
		status, _ = doJSON(t, app, http.MethodPatch, fmt.Sprintf("/api/v1/orders/%d/status", orderID), map[string]interface{}{
			"status": next,
		})
		require.Equal(t, http.StatusOK, status)
	}
	status, _ = doJSON(t, app, http.MethodPatch, fmt.Sprintf("/api/v1/orders/%d/status", orderID), map[string]interface{}{
		"status": "cancelled",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	status, body = doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/v1/orders/%d", orderID), nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "delivered", body["status"])

	// Checking out the now-empty cart fails.
	status, _ = doJSON(t, app, http.MethodPost, "/api/v1/orders/from-cart/1", map[string]interface{}{
		"shipping_address": "123 Main St", "payment_method": "card",
	})
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestExplicitOrderAndAnalytics(t *testing.T) {
	app := setupApp(t)

	status, _ := doJSON(t, app, http.MethodPost, "/api/v1/orders/", map[string]interface{}{
		"customer_id":      2,
		"items":            []map[string]interface{}{{"product_id": 2, "quantity": 2}},
		"shipping_address": "456 Oak Ave",
		"payment_method":   "paypal",
	})
	require.Equal(t, http.StatusCreated, status)

	// Unknown customer is a 404 before anything mutates.
	status, _ = doJSON(t, app, http.MethodPost, "/api/v1/orders/", map[string]interface{}{
		"customer_id":      42,
		"items":            []map[string]interface{}{{"product_id": 2, "quantity": 1}},
		"shipping_address": "nowhere",
		"payment_method":   "card",
	})
	assert.Equal(t, http.StatusNotFound, status)

	status, body := doJSON(t, app, http.MethodGet, "/api/v1/orders/customer/2", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, body["orders"].([]interface{}), 1)

	status, body = doJSON(t, app, http.MethodGet, "/api/v1/analytics/dashboard", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(259.98), body["total_revenue"])
	assert.Equal(t, float64(1), body["total_orders"])
	breakdown := body["order_status_breakdown"].(map[string]interface{})
	assert.Equal(t, float64(1), breakdown["pending"])
	// Shoes dropped to 3 and the lamp sits at 1: both below the threshold.
	assert.Equal(t, float64(2), body["low_stock_alert"])
}
