package domain

import (
	"time"

	"github.com/tidwall/gjson"
)

// Pagination defaults shared by every list endpoint.
const (
	DefaultPage     = 0
	DefaultPageSize = 10
)

// PageQuery selects one zero-based page of a listing. Search is sent only
// when non-empty.
type PageQuery struct {
	Page   int
	Size   int
	Search string
}

// Normalize clamps the query to the API's defaults.
func (q PageQuery) Normalize() PageQuery {
	if q.Page < 0 {
		q.Page = DefaultPage
	}
	if q.Size <= 0 {
		q.Size = DefaultPageSize
	}
	return q
}

// Page is one page of a resource listing.
type Page[T any] struct {
	Items       []T   `json:"items"`
	CurrentPage int   `json:"currentPage"`
	TotalItems  int64 `json:"totalItems"`
	TotalPages  int   `json:"totalPages"`
}

// Product is a catalogue entry.
type Product struct {
	ID       int64   `json:"id,omitempty"`
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Price    float64 `json:"price"`
	Stock    int     `json:"stock"`
	Sales    int     `json:"sales,omitempty"`
	ImageURL string  `json:"imageUrl,omitempty"`
}

// OrderStatus is the fulfilment state of an order.
type OrderStatus string

const (
	OrderPending    OrderStatus = "PENDING"
	OrderProcessing OrderStatus = "PROCESSING"
	OrderShipped    OrderStatus = "SHIPPED"
	OrderDelivered  OrderStatus = "DELIVERED"
)

// Valid reports whether s is a status the API understands.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPending, OrderProcessing, OrderShipped, OrderDelivered:
		return true
	}
	return false
}

// Order is a customer order.
type Order struct {
	ID        int64       `json:"id"`
	OrderID   string      `json:"orderId"`
	Customer  string      `json:"customer"`
	Total     float64     `json:"total"`
	Status    OrderStatus `json:"status"`
	OrderDate string      `json:"orderDate,omitempty"`
}

// SalesData is one point of the sales series.
type SalesData struct {
	ID       int64   `json:"id"`
	Period   string  `json:"period"`
	Sales    float64 `json:"sales"`
	SaleDate string  `json:"saleDate,omitempty"`
	Category string  `json:"category,omitempty"`
}

// CategorySales is one row of GET /sales/by-category. The API encodes each
// row as a [category, total] tuple.
type CategorySales struct {
	Category string  `json:"category"`
	Total    float64 `json:"total"`
}

// UnmarshalJSON accepts both the tuple form and an object form.
func (c *CategorySales) UnmarshalJSON(data []byte) error {
	row := gjson.ParseBytes(data)
	if row.IsArray() {
		cols := row.Array()
		if len(cols) > 0 {
			c.Category = cols[0].String()
		}
		if len(cols) > 1 {
			c.Total = cols[1].Float()
		}
		return nil
	}
	c.Category = row.Get("category").String()
	c.Total = row.Get("total").Float()
	return nil
}

// RevenueStats is the response of GET /orders/revenue.
type RevenueStats struct {
	TotalRevenue float64 `json:"totalRevenue"`
	Period       string  `json:"period"`
}

// DashboardOverview is the response of GET /dashboard/overview.
type DashboardOverview struct {
	TotalUsers      int64   `json:"totalUsers"`
	ActiveUsers     int64   `json:"activeUsers"`
	TotalProducts   int64   `json:"totalProducts"`
	ProductsInStock int64   `json:"productsInStock"`
	TotalOrders     int64   `json:"totalOrders"`
	PendingOrders   int64   `json:"pendingOrders"`
	TotalRevenue    float64 `json:"totalRevenue"`
	RecentOrders    int64   `json:"recentOrders"`
	RecentRevenue   float64 `json:"recentRevenue"`
}

// Analytics is the response of GET /dashboard/analytics.
type Analytics struct {
	SalesData               []SalesData      `json:"salesData"`
	SalesByCategory         []CategorySales  `json:"salesByCategory"`
	OrderStatusDistribution map[string]int64 `json:"orderStatusDistribution"`
	TopSellingProducts      []Product        `json:"topSellingProducts"`
	LowStockProducts        []Product        `json:"lowStockProducts"`
	ProductsByCategory      map[string]int64 `json:"productsByCategory"`
	UserRoleDistribution    map[string]int64 `json:"userRoleDistribution"`
}

// Session is the snapshot of the console's authentication state.
type Session struct {
	Authenticated bool      `json:"authenticated"`
	User          *User     `json:"user,omitempty"`
	Loading       bool      `json:"loading"`
	Error         string    `json:"error,omitempty"`
	ChangedAt     time.Time `json:"changedAt"`
}
