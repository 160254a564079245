package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/storefront/core/internal/application/services"
	"github.com/storefront/core/internal/domain/entities"
	"github.com/storefront/core/internal/infrastructure/logger"
	"github.com/storefront/core/internal/ports"
)

// AuthHandler handles registration and login.
type AuthHandler struct {
	service *services.AuthService
	logger  *logger.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(service *services.AuthService, logger *logger.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		logger:  logger,
	}
}

// AuthResponse is the envelope for register and login responses.
type AuthResponse struct {
	Status string           `json:"status"`
	Data   ports.AuthResult `json:"data"`
}

// Register handles POST /auth/local/register
func (h *AuthHandler) Register(c echo.Context) error {
	var req ports.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, validationMessage(err, "Name, email, and password are required"))
	}

	result, err := h.service.Register(c.Request().Context(), req)
	if err != nil {
		if errors.Is(err, entities.ErrEmailTaken) {
			return echo.NewHTTPError(http.StatusConflict, "Email already exists")
		}
		h.logger.Error("Registration failed", "error", err, "email", req.Email)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to register user")
	}

	return c.JSON(http.StatusOK, AuthResponse{Status: "success", Data: *result})
}

// Login handles POST /auth/local/login
func (h *AuthHandler) Login(c echo.Context) error {
	var req ports.LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Email and password are required")
	}

	result, err := h.service.Login(c.Request().Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, entities.ErrInvalidCredentials):
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid email or password")
		case errors.Is(err, entities.ErrAccountInactive):
			return echo.NewHTTPError(http.StatusForbidden, "Account is inactive. Please contact support.")
		}
		h.logger.Error("Login failed", "error", err, "email", req.Email)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to login")
	}

	return c.JSON(http.StatusOK, AuthResponse{Status: "success", Data: *result})
}
