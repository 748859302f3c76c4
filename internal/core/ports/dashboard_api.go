package ports

import (
	"context"

	"github.com/admindash/console/internal/core/domain"
)

// DashboardAPI is every remote operation the console views call.
type DashboardAPI interface {
	AuthAPI

	GetUsers(ctx context.Context, q domain.PageQuery) (*domain.Page[domain.User], error)
	CreateUser(ctx context.Context, in domain.UserInput) (*domain.User, error)
	UpdateUser(ctx context.Context, id int64, in domain.UserInput) (*domain.User, error)
	DeleteUser(ctx context.Context, id int64) error

	GetProducts(ctx context.Context, q domain.PageQuery) (*domain.Page[domain.Product], error)
	CreateProduct(ctx context.Context, in domain.Product) (*domain.Product, error)
	UpdateProduct(ctx context.Context, id int64, in domain.Product) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id int64) error

	GetOrders(ctx context.Context, q domain.PageQuery) (*domain.Page[domain.Order], error)
	UpdateOrderStatus(ctx context.Context, id int64, status domain.OrderStatus) (*domain.Order, error)
	GetRevenueStats(ctx context.Context) (*domain.RevenueStats, error)

	GetSalesOverview(ctx context.Context) ([]domain.SalesData, error)
	GetSalesByCategory(ctx context.Context) ([]domain.CategorySales, error)

	GetDashboardOverview(ctx context.Context) (*domain.DashboardOverview, error)
	GetDashboardAnalytics(ctx context.Context) (*domain.Analytics, error)
}
