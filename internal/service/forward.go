package service

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/concordlabs/concord/internal/adapter/webhook"
	"github.com/concordlabs/concord/internal/config"
	"github.com/concordlabs/concord/internal/domain"
	"github.com/concordlabs/concord/internal/metrics"
	"github.com/concordlabs/concord/internal/policy"
)

// ForwardTool relays rawBody verbatim to the webhook configured for tool
// and normalizes the upstream response into an envelope. The returned int
// is the HTTP status the handler should answer with.
func (s *Service) ForwardTool(ctx context.Context, tool, actor string, rawBody []byte) (int, domain.Envelope) {
	if !s.isKnownTool(tool) {
		metrics.ForwardsTotal.WithLabelValues(tool, "unknown").Inc()
		return http.StatusNotFound, domain.ErrorEnvelope(domain.CodeUnknownTool, fmt.Sprintf("unknown tool %q", tool))
	}

	url, ok := s.config.ToolURLs[tool]
	if !ok || url == "" {
		metrics.ForwardsTotal.WithLabelValues(tool, "unconfigured").Inc()
		return http.StatusBadGateway, domain.ErrorEnvelope(domain.CodeToolNotConfigured, fmt.Sprintf("no destination URL configured for tool %q", tool))
	}

	decision, err := s.policyEngine.Evaluate(ctx, map[string]interface{}{
		"tool":  tool,
		"actor": actor,
	})
	if err != nil {
		log.Printf("ERROR: policy evaluation failed for tool %s: %v", tool, err)
		metrics.ForwardsTotal.WithLabelValues(tool, "policy_error").Inc()
		return http.StatusInternalServerError, domain.ErrorEnvelope(domain.CodeInternalError, "policy evaluation failed")
	}
	if decision == policy.DecisionBlock {
		metrics.ForwardsTotal.WithLabelValues(tool, "blocked").Inc()
		return http.StatusForbidden, domain.ErrorEnvelope(domain.CodePolicyBlocked, fmt.Sprintf("tool %q is blocked by policy", tool))
	}

	result, err := s.webhookClient.Forward(ctx, url, rawBody)
	if err != nil {
		log.Printf("ERROR: forward to %s failed: %v", tool, err)
		metrics.ForwardsTotal.WithLabelValues(tool, "error").Inc()
		return http.StatusBadGateway, domain.ErrorEnvelope(domain.CodeUpstreamError, fmt.Sprintf("webhook call failed: %v", err))
	}

	log.Printf("forwarded to %s: status=%d", tool, result.StatusCode)

	if !result.Success() {
		metrics.ForwardsTotal.WithLabelValues(tool, "upstream_error").Inc()
		env := domain.ErrorEnvelope(domain.CodeUpstreamError, fmt.Sprintf("webhook returned status %d", result.StatusCode))
		// Keep the raw upstream body, JSON or not, for diagnosis.
		env.Detail = string(result.Body)
		return http.StatusBadGateway, env
	}

	metrics.ForwardsTotal.WithLabelValues(tool, "ok").Inc()
	env := domain.Envelope{OK: true}
	if result.JSON != nil {
		env.Reply, _ = webhook.ExtractReply(result.JSON)
	} else {
		env.Reply = string(result.Body)
	}
	return http.StatusOK, env
}

func (s *Service) isKnownTool(tool string) bool {
	for _, known := range config.KnownTools {
		if tool == known {
			return true
		}
	}
	return false
}
