package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/admindash/console/internal/core/domain"
)

// pageQuery reads ?page, ?size and ?search into a PageQuery. Malformed
// numbers are rejected with 400 before any API call.
func pageQuery(c echo.Context) (domain.PageQuery, error) {
	q := domain.PageQuery{Search: c.QueryParam("search")}

	if raw := c.QueryParam("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return q, echo.NewHTTPError(http.StatusBadRequest, "page must be a non-negative integer")
		}
		q.Page = n
	}
	if raw := c.QueryParam("size"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return q, echo.NewHTTPError(http.StatusBadRequest, "size must be a positive integer")
		}
		q.Size = n
	}
	return q.Normalize(), nil
}

// pathID parses the :id route parameter.
func pathID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return id, nil
}

// bindAndValidate decodes the request body into dst and runs the echo
// validator on it.
func bindAndValidate(c echo.Context, dst any) error {
	if err := c.Bind(dst); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(dst); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}
