package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"golang.org/x/sync/errgroup"

	"github.com/admindash/console/internal/core/domain"
	"github.com/admindash/console/internal/core/ports"
)

// DashboardHandler serves the read-only views: overview, analytics, sales
// and settings.
type DashboardHandler struct {
	api     ports.DashboardAPI
	session ports.Session
}

func NewDashboardHandler(api ports.DashboardAPI, session ports.Session) *DashboardHandler {
	return &DashboardHandler{api: api, session: session}
}

type analyticsView struct {
	Analytics *domain.Analytics    `json:"analytics"`
	Revenue   *domain.RevenueStats `json:"revenue"`
}

type salesView struct {
	Overview   []domain.SalesData     `json:"overview"`
	ByCategory []domain.CategorySales `json:"byCategory"`
}

type settingsView struct {
	User        *domain.User `json:"user"`
	DisplayName string       `json:"displayName"`
}

func (h *DashboardHandler) Overview(c echo.Context) error {
	overview, err := h.api.GetDashboardOverview(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, overview)
}

// Analytics loads analytics and revenue concurrently; the first failure
// wins.
func (h *DashboardHandler) Analytics(c echo.Context) error {
	var view analyticsView
	g, ctx := errgroup.WithContext(c.Request().Context())
	g.Go(func() (err error) {
		view.Analytics, err = h.api.GetDashboardAnalytics(ctx)
		return err
	})
	g.Go(func() (err error) {
		view.Revenue, err = h.api.GetRevenueStats(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, view)
}

func (h *DashboardHandler) Sales(c echo.Context) error {
	var view salesView
	g, ctx := errgroup.WithContext(c.Request().Context())
	g.Go(func() (err error) {
		view.Overview, err = h.api.GetSalesOverview(ctx)
		return err
	})
	g.Go(func() (err error) {
		view.ByCategory, err = h.api.GetSalesByCategory(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, view)
}

func (h *DashboardHandler) Settings(c echo.Context) error {
	st := h.session.State()
	return c.JSON(http.StatusOK, settingsView{User: st.User, DisplayName: st.User.DisplayName()})
}
