// Package service implements the relay's behavior: council consults and
// webhook forwarding. Handlers stay thin; everything testable lives here.
package service

import (
	"context"

	"github.com/concordlabs/concord/internal/adapter/llm"
	"github.com/concordlabs/concord/internal/adapter/webhook"
	"github.com/concordlabs/concord/internal/config"
	"github.com/concordlabs/concord/internal/policy"
)

// ChatCompleter is the chat-completion capability as the relay sees it:
// text out given (system prompt, user text), or an error.
type ChatCompleter interface {
	Complete(ctx context.Context, model, systemPrompt, userText string) (string, error)
	ListModels(ctx context.Context) ([]llm.Model, error)
}

// Forwarder is the workflow webhook capability.
type Forwarder interface {
	Forward(ctx context.Context, url string, rawBody []byte) (*webhook.Result, error)
}

type Service struct {
	llmClient     ChatCompleter
	webhookClient Forwarder
	policyEngine  *policy.Engine
	config        *config.Config
}

// New creates the service. Both capability clients are interfaces so tests
// can substitute deterministic fakes.
func New(llmClient ChatCompleter, webhookClient Forwarder, policyEngine *policy.Engine, cfg *config.Config) *Service {
	return &Service{
		llmClient:     llmClient,
		webhookClient: webhookClient,
		policyEngine:  policyEngine,
		config:        cfg,
	}
}

var _ ChatCompleter = (*llm.Client)(nil)
var _ Forwarder = (*webhook.Client)(nil)
