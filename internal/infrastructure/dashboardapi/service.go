// Package dashboardapi exposes one typed method per dashboard REST
// operation. Methods never handle errors themselves: whatever the HTTP client
// returns is passed through.
package dashboardapi

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/admindash/console/internal/core/domain"
	"github.com/admindash/console/internal/infrastructure/httpclient"
)

// Service is the typed API surface used by the console.
type Service struct {
	client   Doer
	Users    *Resource[domain.User, domain.UserInput]
	Products *Resource[domain.Product, domain.Product]
	Orders   *Collection[domain.Order]
}

// New builds the service on top of client.
func New(client Doer) *Service {
	return &Service{
		client:   client,
		Users:    NewResource[domain.User, domain.UserInput](client, "/users", "users"),
		Products: NewResource[domain.Product, domain.Product](client, "/products", "products"),
		Orders:   NewCollection[domain.Order](client, "/orders", "orders"),
	}
}

// ── Auth ─────────────────────────────────────────────────────────────────────

func (s *Service) Login(ctx context.Context, email, password string) (*domain.AuthResponse, error) {
	var out domain.AuthResponse
	body := domain.LoginRequest{Email: email, Password: password}
	if err := s.post(ctx, "/auth/login", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Register creates an account. An empty role registers a customer.
func (s *Service) Register(ctx context.Context, name, email, password string, role domain.Role) (*domain.AuthResponse, error) {
	if role == "" {
		role = domain.RoleCustomer
	}
	var out domain.AuthResponse
	body := domain.RegisterRequest{Name: name, Email: email, Password: password, Role: role}
	if err := s.post(ctx, "/auth/register", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ── Users ────────────────────────────────────────────────────────────────────

func (s *Service) GetUsers(ctx context.Context, q domain.PageQuery) (*domain.Page[domain.User], error) {
	return s.Users.List(ctx, q)
}

func (s *Service) CreateUser(ctx context.Context, in domain.UserInput) (*domain.User, error) {
	return s.Users.Create(ctx, in)
}

func (s *Service) UpdateUser(ctx context.Context, id int64, in domain.UserInput) (*domain.User, error) {
	return s.Users.Update(ctx, id, in)
}

func (s *Service) DeleteUser(ctx context.Context, id int64) error {
	return s.Users.Delete(ctx, id)
}

// ── Products ─────────────────────────────────────────────────────────────────

func (s *Service) GetProducts(ctx context.Context, q domain.PageQuery) (*domain.Page[domain.Product], error) {
	return s.Products.List(ctx, q)
}

func (s *Service) CreateProduct(ctx context.Context, in domain.Product) (*domain.Product, error) {
	return s.Products.Create(ctx, in)
}

func (s *Service) UpdateProduct(ctx context.Context, id int64, in domain.Product) (*domain.Product, error) {
	return s.Products.Update(ctx, id, in)
}

func (s *Service) DeleteProduct(ctx context.Context, id int64) error {
	return s.Products.Delete(ctx, id)
}

// ── Orders ───────────────────────────────────────────────────────────────────

func (s *Service) GetOrders(ctx context.Context, q domain.PageQuery) (*domain.Page[domain.Order], error) {
	return s.Orders.List(ctx, q)
}

// UpdateOrderStatus sends the status as a query parameter with no body.
func (s *Service) UpdateOrderStatus(ctx context.Context, id int64, status domain.OrderStatus) (*domain.Order, error) {
	var out domain.Order
	req := httpclient.Request{
		Method: http.MethodPatch,
		Path:   "/orders/" + strconv.FormatInt(id, 10) + "/status",
		Query:  url.Values{"status": {string(status)}},
	}
	if err := s.client.Do(ctx, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Service) GetRevenueStats(ctx context.Context) (*domain.RevenueStats, error) {
	var out domain.RevenueStats
	if err := s.get(ctx, "/orders/revenue", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ── Sales ────────────────────────────────────────────────────────────────────

func (s *Service) GetSalesOverview(ctx context.Context) ([]domain.SalesData, error) {
	var out []domain.SalesData
	if err := s.get(ctx, "/sales/overview", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Service) GetSalesByCategory(ctx context.Context) ([]domain.CategorySales, error) {
	var out struct {
		SalesByCategory []domain.CategorySales `json:"salesByCategory"`
	}
	if err := s.get(ctx, "/sales/by-category", &out); err != nil {
		return nil, err
	}
	return out.SalesByCategory, nil
}

// ── Dashboard ────────────────────────────────────────────────────────────────

func (s *Service) GetDashboardOverview(ctx context.Context) (*domain.DashboardOverview, error) {
	var out domain.DashboardOverview
	if err := s.get(ctx, "/dashboard/overview", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Service) GetDashboardAnalytics(ctx context.Context) (*domain.Analytics, error) {
	var out domain.Analytics
	if err := s.get(ctx, "/dashboard/analytics", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Service) get(ctx context.Context, path string, out any) error {
	return s.client.Do(ctx, httpclient.Request{Method: http.MethodGet, Path: path}, out)
}

func (s *Service) post(ctx context.Context, path string, body, out any) error {
	return s.client.Do(ctx, httpclient.Request{Method: http.MethodPost, Path: path, Body: body}, out)
}
