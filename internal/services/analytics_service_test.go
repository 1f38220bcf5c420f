package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopapi/internal/models"
	"shopapi/internal/repositories"
	"shopapi/internal/services"
)

func analyticsFixture(t *testing.T) (*services.AnalyticsService, *services.OrderService, *repositories.MemoryProductRepository) {
	t.Helper()

	products := repositories.NewMemoryProductRepository()
	customers := repositories.NewMemoryCustomerRepository()
	cartRepo := repositories.NewMemoryCartRepository()
	orders := repositories.NewMemoryOrderRepository()

	require.NoError(t, customers.Create(&models.Customer{ID: 1, Name: "John Doe", Email: "john@example.com"}))
	require.NoError(t, products.Create(&models.Product{
		ID: 1, Name: "Headphones", Price: 100, Category: models.CategoryElectronics, StockQuantity: 50,
	}))
	require.NoError(t, products.Create(&models.Product{
		ID: 2, Name: "Shoes", Price: 60, Category: models.CategorySports, StockQuantity: 5,
	}))
	require.NoError(t, products.Create(&models.Product{
		ID: 3, Name: "Sold Out Novel", Price: 15, Category: models.CategoryBooks, StockQuantity: 0,
	}))

	orderService := services.NewOrderService(orders, products, customers, cartRepo, nil)
	analytics := services.NewAnalyticsService(orders, products, customers, 10)
	return analytics, orderService, products
}

func placeOrder(t *testing.T, service *services.OrderService, productID, quantity int) *models.Order {
	t.Helper()
	order, err := service.PlaceOrder(models.CreateOrderRequest{
		CustomerID:      1,
		Items:           []models.OrderItem{{ProductID: productID, Quantity: quantity}},
		ShippingAddress: "123 Main St",
		PaymentMethod:   "card",
	})
	require.NoError(t, err)
	return order
}

func TestAnalyticsService_EmptyStore(t *testing.T) {
	analytics, _, _ := analyticsFixture(t)

	dashboard, err := analytics.Dashboard()
	require.NoError(t, err)
	assert.Equal(t, 3, dashboard.TotalProducts)
	assert.Equal(t, 1, dashboard.TotalCustomers)
	assert.Zero(t, dashboard.TotalOrders)
	assert.Zero(t, dashboard.TotalRevenue)
	assert.Zero(t, dashboard.AverageOrderValue)
	assert.Empty(t, dashboard.TopCategories)
}

func TestAnalyticsService_RevenueExcludesCancelled(t *testing.T) {
	analytics, orderService, _ := analyticsFixture(t)

	placeOrder(t, orderService, 1, 2) // 200.00
	placeOrder(t, orderService, 2, 1) // 60.00
	cancelled := placeOrder(t, orderService, 1, 1)
	_, err := orderService.UpdateOrderStatus(cancelled.ID, models.OrderStatusCancelled)
	require.NoError(t, err)

	dashboard, err := analytics.Dashboard()
	require.NoError(t, err)
	assert.Equal(t, 3, dashboard.TotalOrders)
	assert.Equal(t, 260.0, dashboard.TotalRevenue)
	assert.Equal(t, 130.0, dashboard.AverageOrderValue)
	assert.Equal(t, map[models.OrderStatus]int{
		models.OrderStatusPending:   2,
		models.OrderStatusCancelled: 1,
	}, dashboard.OrderStatusBreakdown)
}

func TestAnalyticsService_TopCategories(t *testing.T) {
	analytics, orderService, _ := analyticsFixture(t)

	placeOrder(t, orderService, 1, 2) // electronics 200.00
	placeOrder(t, orderService, 2, 3) // sports 180.00

	dashboard, err := analytics.Dashboard()
	require.NoError(t, err)
	require.Len(t, dashboard.TopCategories, 2)
	assert.Equal(t, models.CategoryElectronics, dashboard.TopCategories[0].Category)
	assert.Equal(t, 200.0, dashboard.TopCategories[0].Revenue)
	assert.Equal(t, models.CategorySports, dashboard.TopCategories[1].Category)
	assert.Equal(t, 180.0, dashboard.TopCategories[1].Revenue)
}

func TestAnalyticsService_TopCategoriesSkipDeletedProducts(t *testing.T) {
	analytics, orderService, products := analyticsFixture(t)

	placeOrder(t, orderService, 2, 1)
	require.NoError(t, products.Delete(2))

	dashboard, err := analytics.Dashboard()
	require.NoError(t, err)
	// The order still counts for revenue, but has no category to attribute
	// to once its product is gone.
	assert.Equal(t, 60.0, dashboard.TotalRevenue)
	assert.Empty(t, dashboard.TopCategories)
}

func TestAnalyticsService_LowStock(t *testing.T) {
	analytics, _, _ := analyticsFixture(t)

	dashboard, err := analytics.Dashboard()
	require.NoError(t, err)
	// Shoes (5) are below the threshold of 10; the sold-out novel (0) is
	// excluded.
	require.Equal(t, 1, dashboard.LowStockAlert)
	assert.Equal(t, "Shoes", dashboard.LowStockProducts[0].Name)
}
