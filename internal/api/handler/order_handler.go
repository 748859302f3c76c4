package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/admindash/console/internal/core/domain"
	"github.com/admindash/console/internal/core/ports"
)

type OrderHandler struct {
	api ports.DashboardAPI
}

func NewOrderHandler(api ports.DashboardAPI) *OrderHandler {
	return &OrderHandler{api: api}
}

func (h *OrderHandler) List(c echo.Context) error {
	q, err := pageQuery(c)
	if err != nil {
		return err
	}
	page, err := h.api.GetOrders(c.Request().Context(), q)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, page)
}

// UpdateStatus moves an order to ?status=. Only the four known states are
// forwarded.
func (h *OrderHandler) UpdateStatus(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	status := domain.OrderStatus(c.QueryParam("status"))
	if !status.Valid() {
		return echo.NewHTTPError(http.StatusBadRequest, "status must be one of: PENDING PROCESSING SHIPPED DELIVERED")
	}

	order, err := h.api.UpdateOrderStatus(c.Request().Context(), id, status)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, order)
}
