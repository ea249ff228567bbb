package service

import (
	"context"

	"github.com/concordlabs/concord/internal/adapter/llm"
)

// ListModels passes the model list through from the chat-completion
// capability.
func (s *Service) ListModels(ctx context.Context) ([]llm.Model, error) {
	return s.llmClient.ListModels(ctx)
}
