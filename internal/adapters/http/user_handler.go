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

// UserHandler serves the users collection. It differs from the generic
// resource handler in validating creates, hashing passwords, keeping
// email immutable and never returning the password field.
type UserHandler struct {
	service *services.UserService
	logger  *logger.Logger
}

// NewUserHandler creates a new user handler
func NewUserHandler(service *services.UserService, logger *logger.Logger) *UserHandler {
	return &UserHandler{
		service: service,
		logger:  logger,
	}
}

// List handles GET /users
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.service.ListUsers(c.Request().Context())
	if err != nil {
		h.logger.Error("List users failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to read users")
	}

	return c.JSON(http.StatusOK, ListResponse{Data: users})
}

// Get handles GET /users/{id}
func (h *UserHandler) Get(c echo.Context) error {
	user, err := h.service.GetUser(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, entities.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		h.logger.Error("Get user failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to read user")
	}

	return c.JSON(http.StatusOK, DocumentResponse{Status: "success", Data: user})
}

// Create handles POST /users
func (h *UserHandler) Create(c echo.Context) error {
	var req ports.CreateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, validationMessage(err, "Name, email, and password are required"))
	}

	user, err := h.service.CreateUser(c.Request().Context(), req)
	if err != nil {
		if errors.Is(err, entities.ErrEmailTaken) {
			return echo.NewHTTPError(http.StatusConflict, "Email already exists")
		}
		h.logger.Error("Create user failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create user")
	}

	return c.JSON(http.StatusOK, DocumentResponse{Status: "success", Data: user})
}

// Update handles PUT /users/{id}
func (h *UserHandler) Update(c echo.Context) error {
	var patch entities.Record
	if err := c.Bind(&patch); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	user, err := h.service.UpdateUser(c.Request().Context(), c.Param("id"), patch)
	if err != nil {
		if errors.Is(err, entities.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		h.logger.Error("Update user failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to update user")
	}

	return c.JSON(http.StatusOK, DocumentResponse{Status: "success", Data: user})
}

// Delete handles DELETE /users/{id}
func (h *UserHandler) Delete(c echo.Context) error {
	err := h.service.DeleteUser(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, entities.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		h.logger.Error("Delete user failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to delete user")
	}

	return c.JSON(http.StatusOK, StatusResponse{Status: "success"})
}

// ToggleActive handles PUT /users/{id}/toggle-active
func (h *UserHandler) ToggleActive(c echo.Context) error {
	user, err := h.service.ToggleActive(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, entities.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		h.logger.Error("Toggle active failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to toggle user active status")
	}

	return c.JSON(http.StatusOK, DocumentResponse{Status: "success", Data: user})
}
