package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/admindash/console/internal/core/domain"
	"github.com/admindash/console/internal/core/ports"
)

type ProductHandler struct {
	api ports.DashboardAPI
}

func NewProductHandler(api ports.DashboardAPI) *ProductHandler {
	return &ProductHandler{api: api}
}

type productRequest struct {
	Name     string  `json:"name"     validate:"required,max=200"`
	Category string  `json:"category" validate:"required"`
	Price    float64 `json:"price"    validate:"gte=0"`
	Stock    int     `json:"stock"    validate:"gte=0"`
	ImageURL string  `json:"imageUrl" validate:"omitempty,url"`
}

func (r productRequest) product() domain.Product {
	return domain.Product{Name: r.Name, Category: r.Category, Price: r.Price, Stock: r.Stock, ImageURL: r.ImageURL}
}

func (h *ProductHandler) List(c echo.Context) error {
	q, err := pageQuery(c)
	if err != nil {
		return err
	}
	page, err := h.api.GetProducts(c.Request().Context(), q)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, page)
}

func (h *ProductHandler) Create(c echo.Context) error {
	var req productRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	product, err := h.api.CreateProduct(c.Request().Context(), req.product())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, product)
}

func (h *ProductHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req productRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	product, err := h.api.UpdateProduct(c.Request().Context(), id, req.product())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.api.DeleteProduct(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
