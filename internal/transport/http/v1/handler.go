// Package v1 provides the HTTP handlers for the relay API.
package v1

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/concordlabs/concord/internal/service"
)

// ServiceName is reported by the health endpoint.
const ServiceName = "concord"

// Handler handles HTTP requests.
type Handler struct {
	service *service.Service
}

// NewHandler creates a new handler.
func NewHandler(service *service.Service) *Handler {
	return &Handler{
		service: service,
	}
}

// RegisterRoutes registers routes with the echo server.
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	// Council consult
	e.POST("/v1/consult", h.Consult)

	// Workflow webhook forwarding: tool selected by path, or by the tool
	// field on the shape-dispatching relay route
	e.POST("/v1/tools/:tool", h.ForwardToolByPath)
	e.POST("/v1/relay", h.Relay)

	// Model list passthrough
	e.GET("/v1/models", h.ListModels)

	e.GET("/health", h.Health)
	e.GET("/healthz", h.Health)
}

// Health returns health status. It bypasses all relay logic.
func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"ok":      true,
		"service": ServiceName,
		"time":    time.Now().UTC().Format(time.RFC3339),
	})
}

// ListModels returns the upstream model list.
// GET /v1/models
func (h *Handler) ListModels(c echo.Context) error {
	models, err := h.service.ListModels(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusBadGateway, map[string]interface{}{
			"ok":    false,
			"error": err.Error(),
		})
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"object": "list",
		"data":   models,
	})
}
