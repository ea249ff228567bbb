package v1

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/concordlabs/concord/internal/domain"
	"github.com/concordlabs/concord/internal/metrics"
)

// ForwardToolByPath forwards the raw payload to the webhook named by the
// path parameter.
// POST /v1/tools/:tool
func (h *Handler) ForwardToolByPath(c echo.Context) error {
	rawBody, payload, err := readPayload(c)
	if err != nil {
		metrics.RequestsTotal.WithLabelValues("forward", domain.CodeBadRequest).Inc()
		return c.JSON(http.StatusBadRequest, domain.ErrorEnvelope(domain.CodeBadRequest, err.Error()))
	}
	actor, _ := payload["actor"].(string)
	return h.forward(c, c.Param("tool"), actor, rawBody)
}

// Relay dispatches on request shape: a payload carrying a tool field is
// forwarded to that tool's webhook, anything else is a council consult.
// POST /v1/relay
func (h *Handler) Relay(c echo.Context) error {
	rawBody, payload, err := readPayload(c)
	if err != nil {
		metrics.RequestsTotal.WithLabelValues("relay", domain.CodeBadRequest).Inc()
		return c.JSON(http.StatusBadRequest, domain.ErrorEnvelope(domain.CodeBadRequest, err.Error()))
	}

	actor, _ := payload["actor"].(string)
	if tool, _ := payload["tool"].(string); tool != "" {
		return h.forward(c, tool, actor, rawBody)
	}

	message, _ := payload["message"].(string)
	message = strings.TrimSpace(message)
	if message == "" {
		metrics.RequestsTotal.WithLabelValues("relay", domain.CodeEmptyMessage).Inc()
		return c.JSON(http.StatusBadRequest, domain.ErrorEnvelope(domain.CodeEmptyMessage, "message is required"))
	}

	return h.runConsult(c, message)
}

// readPayload reads the raw body and parses it into a JSON object. The raw
// bytes are kept so forwards stay verbatim.
func readPayload(c echo.Context) ([]byte, map[string]interface{}, error) {
	rawBody, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return nil, nil, errors.New("failed to read request body")
	}

	var payload map[string]interface{}
	if err := json.Unmarshal(rawBody, &payload); err != nil {
		return nil, nil, errors.New("request body is not valid JSON")
	}

	return rawBody, payload, nil
}

// forward relays the raw payload and writes the normalized envelope.
func (h *Handler) forward(c echo.Context, tool, actor string, rawBody []byte) error {
	status, envelope := h.service.ForwardTool(c.Request().Context(), tool, actor, rawBody)
	if envelope.OK {
		metrics.RequestsTotal.WithLabelValues("forward", "ok").Inc()
	} else {
		metrics.RequestsTotal.WithLabelValues("forward", envelope.Code).Inc()
	}
	return c.JSON(status, envelope)
}
