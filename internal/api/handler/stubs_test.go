package handler

import (
	"context"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/admindash/console/internal/core/domain"
)

type stubSession struct {
	state       domain.Session
	loginFn     func(ctx context.Context, email, password string) domain.LoginResult
	logoutCalls int
	clearCalls  int
}

func (s *stubSession) State() domain.Session { return s.state }
func (s *stubSession) Authenticated() bool   { return s.state.Authenticated }
func (s *stubSession) Login(ctx context.Context, email, password string) domain.LoginResult {
	return s.loginFn(ctx, email, password)
}
func (s *stubSession) Logout(context.Context) { s.logoutCalls++ }
func (s *stubSession) ClearError() {
	s.clearCalls++
	s.state.Error = ""
}

// stubAPI implements ports.DashboardAPI. Unset functions return zero values.
type stubAPI struct {
	registerFn      func(ctx context.Context, name, email, password string, role domain.Role) (*domain.AuthResponse, error)
	getUsersFn      func(ctx context.Context, q domain.PageQuery) (*domain.Page[domain.User], error)
	createUserFn    func(ctx context.Context, in domain.UserInput) (*domain.User, error)
	updateUserFn    func(ctx context.Context, id int64, in domain.UserInput) (*domain.User, error)
	deleteUserFn    func(ctx context.Context, id int64) error
	getProductsFn   func(ctx context.Context, q domain.PageQuery) (*domain.Page[domain.Product], error)
	createProductFn func(ctx context.Context, in domain.Product) (*domain.Product, error)
	getOrdersFn     func(ctx context.Context, q domain.PageQuery) (*domain.Page[domain.Order], error)
	updateStatusFn  func(ctx context.Context, id int64, status domain.OrderStatus) (*domain.Order, error)
	revenueFn       func(ctx context.Context) (*domain.RevenueStats, error)
	salesFn         func(ctx context.Context) ([]domain.SalesData, error)
	byCategoryFn    func(ctx context.Context) ([]domain.CategorySales, error)
	overviewFn      func(ctx context.Context) (*domain.DashboardOverview, error)
	analyticsFn     func(ctx context.Context) (*domain.Analytics, error)
}

func (s *stubAPI) Login(context.Context, string, string) (*domain.AuthResponse, error) {
	return nil, nil
}

func (s *stubAPI) Register(ctx context.Context, name, email, password string, role domain.Role) (*domain.AuthResponse, error) {
	return s.registerFn(ctx, name, email, password, role)
}

func (s *stubAPI) GetUsers(ctx context.Context, q domain.PageQuery) (*domain.Page[domain.User], error) {
	return s.getUsersFn(ctx, q)
}

func (s *stubAPI) CreateUser(ctx context.Context, in domain.UserInput) (*domain.User, error) {
	return s.createUserFn(ctx, in)
}

func (s *stubAPI) UpdateUser(ctx context.Context, id int64, in domain.UserInput) (*domain.User, error) {
	return s.updateUserFn(ctx, id, in)
}

func (s *stubAPI) DeleteUser(ctx context.Context, id int64) error {
	return s.deleteUserFn(ctx, id)
}

func (s *stubAPI) GetProducts(ctx context.Context, q domain.PageQuery) (*domain.Page[domain.Product], error) {
	return s.getProductsFn(ctx, q)
}

func (s *stubAPI) CreateProduct(ctx context.Context, in domain.Product) (*domain.Product, error) {
	return s.createProductFn(ctx, in)
}

func (s *stubAPI) UpdateProduct(context.Context, int64, domain.Product) (*domain.Product, error) {
	return &domain.Product{}, nil
}

func (s *stubAPI) DeleteProduct(context.Context, int64) error { return nil }

func (s *stubAPI) GetOrders(ctx context.Context, q domain.PageQuery) (*domain.Page[domain.Order], error) {
	return s.getOrdersFn(ctx, q)
}

func (s *stubAPI) UpdateOrderStatus(ctx context.Context, id int64, status domain.OrderStatus) (*domain.Order, error) {
	return s.updateStatusFn(ctx, id, status)
}

func (s *stubAPI) GetRevenueStats(ctx context.Context) (*domain.RevenueStats, error) {
	return s.revenueFn(ctx)
}

func (s *stubAPI) GetSalesOverview(ctx context.Context) ([]domain.SalesData, error) {
	return s.salesFn(ctx)
}

func (s *stubAPI) GetSalesByCategory(ctx context.Context) ([]domain.CategorySales, error) {
	return s.byCategoryFn(ctx)
}

func (s *stubAPI) GetDashboardOverview(ctx context.Context) (*domain.DashboardOverview, error) {
	return s.overviewFn(ctx)
}

func (s *stubAPI) GetDashboardAnalytics(ctx context.Context) (*domain.Analytics, error) {
	return s.analyticsFn(ctx)
}

// newContext builds an echo context with the console validator installed.
func newContext(t *testing.T, method, target string, body io.Reader) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, target, body)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func requireHTTPError(t *testing.T, err error, code int) {
	t.Helper()
	he, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected *echo.HTTPError, got %T: %v", err, err)
	}
	if he.Code != code {
		t.Fatalf("expected %d, got %d (%v)", code, he.Code, he.Message)
	}
}
