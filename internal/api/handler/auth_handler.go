package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/admindash/console/internal/core/domain"
	"github.com/admindash/console/internal/core/ports"
	"github.com/admindash/console/internal/core/service"
	"github.com/admindash/console/internal/pkg/metrics"
)

// MsgRegistered is shown on the login form after a successful sign-up.
const MsgRegistered = "Registration successful! Please login."

type AuthHandler struct {
	session ports.Session
	api     ports.AuthAPI
}

func NewAuthHandler(session ports.Session, api ports.AuthAPI) *AuthHandler {
	return &AuthHandler{session: session, api: api}
}

type loginRequest struct {
	Email    string `json:"email"    form:"email"    validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required"`
}

type registerRequest struct {
	Name     string      `json:"name"     form:"name"     validate:"required,max=100"`
	Email    string      `json:"email"    form:"email"    validate:"required,email"`
	Password string      `json:"password" form:"password" validate:"required,min=6"`
	Role     domain.Role `json:"role"     form:"role"     validate:"omitempty,oneof=CUSTOMER ADMIN MODERATOR"`
}

type authScreen struct {
	Mode    string `json:"mode"`
	Error   string `json:"error,omitempty"`
	Loading bool   `json:"loading"`
}

// Screen describes the auth screen: login mode by default, register mode
// with ?mode=register. Typing into the form clears the last error, so
// switching modes does too.
func (h *AuthHandler) Screen(c echo.Context) error {
	mode := "login"
	if c.QueryParam("mode") == "register" {
		mode = "register"
		h.session.ClearError()
	}
	st := h.session.State()
	return c.JSON(http.StatusOK, authScreen{Mode: mode, Error: st.Error, Loading: st.Loading})
}

// Login signs the operator in and lands them on the overview.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	res := h.session.Login(c.Request().Context(), req.Email, req.Password)
	if !res.Success {
		metrics.LoginAttemptsTotal.WithLabelValues("failure").Inc()
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": res.Error})
	}

	metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()
	return c.Redirect(http.StatusFound, service.LandingPath)
}

// Register creates an account. The operator still has to log in afterwards.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if _, err := h.api.Register(c.Request().Context(), req.Name, req.Email, req.Password, req.Role); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, map[string]string{"message": MsgRegistered})
}

// Logout ends the session and returns to the auth screen.
func (h *AuthHandler) Logout(c echo.Context) error {
	h.session.Logout(c.Request().Context())
	return c.Redirect(http.StatusFound, service.LoginPath)
}
