package models

// CategoryRevenue is revenue attributed to one product category.
type CategoryRevenue struct {
	Category ProductCategory `json:"category"`
	Revenue  float64         `json:"revenue"`
}

// Dashboard is the analytics snapshot computed from the current store
// contents on every request. Revenue figures cover non-cancelled orders.
type Dashboard struct {
	TotalProducts        int                 `json:"total_products"`
	TotalCustomers       int                 `json:"total_customers"`
	TotalOrders          int                 `json:"total_orders"`
	TotalRevenue         float64             `json:"total_revenue"`
	AverageOrderValue    float64             `json:"average_order_value"`
	OrderStatusBreakdown map[OrderStatus]int `json:"order_status_breakdown"`
	TopCategories        []CategoryRevenue   `json:"top_categories"`
	LowStockAlert        int                 `json:"low_stock_alert"`
	LowStockProducts     []Product           `json:"low_stock_products"`
}
