package services

import (
	"sort"

	"shopapi/internal/models"
	"shopapi/internal/repositories"
)

// AnalyticsService computes read-only aggregations over the current store
// contents. Nothing is cached; every call recomputes from scratch.
type AnalyticsService struct {
	orders            repositories.OrderRepository
	products          repositories.ProductRepository
	customers         repositories.CustomerRepository
	lowStockThreshold int
}

// NewAnalyticsService creates a new AnalyticsService. Products whose stock
// is positive but below lowStockThreshold appear in the low-stock alert.
func NewAnalyticsService(orders repositories.OrderRepository, products repositories.ProductRepository,
	customers repositories.CustomerRepository, lowStockThreshold int) *AnalyticsService {
	return &AnalyticsService{
		orders:            orders,
		products:          products,
		customers:         customers,
		lowStockThreshold: lowStockThreshold,
	}
}

// Dashboard builds the analytics snapshot. Revenue and average order value
// cover non-cancelled orders only; category revenue is attributed through
// each item's product's current category, skipping products that have since
// been deleted.
func (s *AnalyticsService) Dashboard() (*models.Dashboard, error) {
	products, err := s.products.GetAll()
	if err != nil {
		return nil, err
	}
	customers, err := s.customers.GetAll()
	if err != nil {
		return nil, err
	}
	orders, err := s.orders.GetAll()
	if err != nil {
		return nil, err
	}

	productByID := make(map[int]models.Product, len(products))
	for _, p := range products {
		productByID[p.ID] = p
	}

	dashboard := &models.Dashboard{
		TotalProducts:        len(products),
		TotalCustomers:       len(customers),
		TotalOrders:          len(orders),
		OrderStatusBreakdown: make(map[models.OrderStatus]int),
		TopCategories:        make([]models.CategoryRevenue, 0),
		LowStockProducts:     make([]models.Product, 0),
	}

	var revenue float64
	var counted int
	categoryRevenue := make(map[models.ProductCategory]float64)
	for _, order := range orders {
		dashboard.OrderStatusBreakdown[order.Status]++
		if order.Status == models.OrderStatusCancelled {
			continue
		}
		revenue += order.TotalAmount
		counted++
		for _, item := range order.Items {
			product, ok := productByID[item.ProductID]
			if !ok {
				continue
			}
			categoryRevenue[product.Category] += item.PriceAtPurchase * float64(item.Quantity)
		}
	}
	dashboard.TotalRevenue = models.Round2(revenue)
	if counted > 0 {
		dashboard.AverageOrderValue = models.Round2(revenue / float64(counted))
	}

	for category, amount := range categoryRevenue {
		dashboard.TopCategories = append(dashboard.TopCategories, models.CategoryRevenue{
			Category: category,
			Revenue:  models.Round2(amount),
		})
	}
	sort.Slice(dashboard.TopCategories, func(i, j int) bool {
		a, b := dashboard.TopCategories[i], dashboard.TopCategories[j]
		if a.Revenue != b.Revenue {
			return a.Revenue > b.Revenue
		}
		return a.Category < b.Category
	})

	for _, p := range products {
		if p.StockQuantity > 0 && p.StockQuantity < s.lowStockThreshold {
			dashboard.LowStockProducts = append(dashboard.LowStockProducts, p)
		}
	}
	dashboard.LowStockAlert = len(dashboard.LowStockProducts)

	return dashboard, nil
}
