// Package policy gates tool forwarding with an OPA rego policy.
package policy

import (
	"context"
	"fmt"
	"os"

	"github.com/open-policy-agent/opa/v1/rego"
)

// Decision values returned by the policy.
const (
	DecisionAllow = "allow"
	DecisionBlock = "block"
)

// Engine evaluates the tool forwarding policy.
type Engine struct {
	query rego.PreparedEvalQuery
}

// NewEngine creates a policy engine from the given rego module content.
func NewEngine(ctx context.Context, policyContent string) (*Engine, error) {
	r := rego.New(
		rego.Query("data.relay_policy.decision"),
		rego.Module("relay_policy.rego", policyContent),
	)

	query, err := r.PrepareForEval(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare rego: %w", err)
	}

	return &Engine{query: query}, nil
}

// NewEngineFromFile creates a policy engine from a rego file, falling back
// to the default policy when path is empty.
func NewEngineFromFile(ctx context.Context, path string) (*Engine, error) {
	if path == "" {
		return NewEngine(ctx, DefaultPolicy)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read policy file: %w", err)
	}
	return NewEngine(ctx, string(content))
}

// Evaluate checks whether a tool forward is allowed.
// Input keys: tool, actor. Returns the decision string.
func (e *Engine) Evaluate(ctx context.Context, input map[string]interface{}) (string, error) {
	results, err := e.query.Eval(ctx, rego.EvalInput(input))
	if err != nil {
		return "", fmt.Errorf("failed to evaluate policy: %w", err)
	}

	if len(results) == 0 || len(results[0].Expressions) == 0 {
		// The policy defines a default, so an empty result set means the
		// module is malformed rather than "no rule matched".
		return DecisionAllow, nil
	}

	if s, ok := results[0].Expressions[0].Value.(string); ok {
		return s, nil
	}

	return DecisionAllow, nil
}

// DefaultPolicy allows every tool. Deployments that need to fence off a
// webhook supply their own module via TOOL_POLICY_FILE.
const DefaultPolicy = `
package relay_policy

default decision := "allow"
`
