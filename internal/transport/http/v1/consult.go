package v1

import (
	"log"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/concordlabs/concord/internal/domain"
	"github.com/concordlabs/concord/internal/metrics"
)

// Consult runs the council against the request message.
// POST /v1/consult
func (h *Handler) Consult(c echo.Context) error {
	var req domain.ConsultRequest
	if err := c.Bind(&req); err != nil {
		metrics.RequestsTotal.WithLabelValues("consult", domain.CodeBadRequest).Inc()
		return c.JSON(http.StatusBadRequest, domain.ErrorEnvelope(domain.CodeBadRequest, "invalid request body"))
	}

	message := strings.TrimSpace(req.Message)
	if message == "" {
		metrics.RequestsTotal.WithLabelValues("consult", domain.CodeEmptyMessage).Inc()
		return c.JSON(http.StatusBadRequest, domain.ErrorEnvelope(domain.CodeEmptyMessage, "message is required"))
	}

	return h.runConsult(c, message)
}

// runConsult executes the council and writes the envelope. Shared by the
// consult route and the shape-dispatching relay route.
func (h *Handler) runConsult(c echo.Context, message string) error {
	result, err := h.service.Consult(c.Request().Context(), message)
	if err != nil {
		log.Printf("ERROR: consult failed: %v", err)
		metrics.RequestsTotal.WithLabelValues("consult", domain.CodeUpstreamError).Inc()
		return c.JSON(http.StatusBadGateway, domain.ErrorEnvelope(domain.CodeUpstreamError, err.Error()))
	}

	metrics.RequestsTotal.WithLabelValues("consult", "ok").Inc()
	return c.JSON(http.StatusOK, domain.Envelope{
		OK:    true,
		Reply: result.Reply,
		Trace: result.Trace,
	})
}
