package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/storefront/core/internal/application/services"
	"github.com/storefront/core/internal/domain/entities"
	"github.com/storefront/core/internal/infrastructure/logger"
)

// Response envelopes shared by every resource endpoint.

type ListResponse struct {
	Data []entities.Record `json:"data"`
}

type DocumentResponse struct {
	Status string          `json:"status"`
	Data   entities.Record `json:"data"`
}

type StatusResponse struct {
	Status string `json:"status"`
}

// ResourceHandler serves the uniform CRUD endpoints for one catalog
// resource. One instance per collection, all sharing the same code.
type ResourceHandler struct {
	name    string
	service *services.CatalogService
	logger  *logger.Logger
}

// NewResourceHandler creates a handler for a named resource.
func NewResourceHandler(name string, service *services.CatalogService, logger *logger.Logger) *ResourceHandler {
	return &ResourceHandler{
		name:    name,
		service: service,
		logger:  logger,
	}
}

// List handles GET /{resource}
func (h *ResourceHandler) List(c echo.Context) error {
	records, err := h.service.List(c.Request().Context())
	if err != nil {
		h.logger.Error("List failed", "collection", h.name, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to read "+h.name)
	}

	return c.JSON(http.StatusOK, ListResponse{Data: records})
}

// Get handles GET /{resource}/{id}
func (h *ResourceHandler) Get(c echo.Context) error {
	rec, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, entities.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, singularLabel(h.name)+" not found")
		}
		h.logger.Error("Get failed", "collection", h.name, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to read "+singular(h.name))
	}

	return c.JSON(http.StatusOK, DocumentResponse{Status: "success", Data: rec})
}

// Create handles POST /{resource}
func (h *ResourceHandler) Create(c echo.Context) error {
	var payload entities.Record
	if err := c.Bind(&payload); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	rec, err := h.service.Create(c.Request().Context(), payload)
	if err != nil {
		h.logger.Error("Create failed", "collection", h.name, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create "+singular(h.name))
	}

	return c.JSON(http.StatusOK, DocumentResponse{Status: "success", Data: rec})
}

// Update handles PUT /{resource}/{id}
func (h *ResourceHandler) Update(c echo.Context) error {
	var patch entities.Record
	if err := c.Bind(&patch); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	rec, err := h.service.Update(c.Request().Context(), c.Param("id"), patch)
	if err != nil {
		if errors.Is(err, entities.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, singularLabel(h.name)+" not found")
		}
		h.logger.Error("Update failed", "collection", h.name, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to update "+singular(h.name))
	}

	return c.JSON(http.StatusOK, DocumentResponse{Status: "success", Data: rec})
}

// Delete handles DELETE /{resource}/{id}
func (h *ResourceHandler) Delete(c echo.Context) error {
	err := h.service.Delete(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, entities.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, singularLabel(h.name)+" not found")
		}
		h.logger.Error("Delete failed", "collection", h.name, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to delete "+singular(h.name))
	}

	return c.JSON(http.StatusOK, StatusResponse{Status: "success"})
}

// DashboardHandler serves the dashboard aggregates.
type DashboardHandler struct {
	stats  *services.StatsService
	logger *logger.Logger
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(stats *services.StatsService, logger *logger.Logger) *DashboardHandler {
	return &DashboardHandler{
		stats:  stats,
		logger: logger,
	}
}

// Stats handles GET /dashboard/stats
func (h *DashboardHandler) Stats(c echo.Context) error {
	stats, err := h.stats.DashboardStats(c.Request().Context())
	if err != nil {
		h.logger.Error("Dashboard stats failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch stats")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"status": "success",
		"data":   stats,
	})
}

// singular maps a collection name to its singular form for messages.
func singular(name string) string {
	if strings.HasSuffix(name, "ies") {
		return strings.TrimSuffix(name, "ies") + "y"
	}
	return strings.TrimSuffix(name, "s")
}

// singularLabel capitalizes the singular form, e.g. "Product not found".
func singularLabel(name string) string {
	s := singular(name)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// validationMessage translates validator failures into the fixed
// messages the admin console expects.
func validationMessage(err error, missingMsg string) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			if fe.Field() == "Password" && fe.Tag() == "min" {
				return "Password must be at least 6 characters"
			}
		}
	}
	return missingMsg
}
