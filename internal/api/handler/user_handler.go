package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/admindash/console/internal/core/domain"
	"github.com/admindash/console/internal/core/ports"
)

type UserHandler struct {
	api ports.DashboardAPI
}

func NewUserHandler(api ports.DashboardAPI) *UserHandler {
	return &UserHandler{api: api}
}

type userRequest struct {
	Name     string            `json:"name"     validate:"required,max=100"`
	Email    string            `json:"email"    validate:"required,email"`
	Password string            `json:"password" validate:"omitempty,min=6"`
	Role     domain.Role       `json:"role"     validate:"omitempty,oneof=CUSTOMER ADMIN MODERATOR"`
	Status   domain.UserStatus `json:"status"   validate:"omitempty,oneof=ACTIVE INACTIVE"`
}

func (r userRequest) input() domain.UserInput {
	return domain.UserInput{Name: r.Name, Email: r.Email, Password: r.Password, Role: r.Role, Status: r.Status}
}

// List returns one page of users, optionally filtered by ?search.
func (h *UserHandler) List(c echo.Context) error {
	q, err := pageQuery(c)
	if err != nil {
		return err
	}
	page, err := h.api.GetUsers(c.Request().Context(), q)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, page)
}

func (h *UserHandler) Create(c echo.Context) error {
	var req userRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	if req.Password == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "password is required")
	}

	user, err := h.api.CreateUser(c.Request().Context(), req.input())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, user)
}

// Update replaces a user. An empty password keeps the current one.
func (h *UserHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req userRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.api.UpdateUser(c.Request().Context(), id, req.input())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

func (h *UserHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.api.DeleteUser(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
