// Package domain defines the request and response shapes of the relay.
package domain

// Stable machine-readable error codes returned in the envelope.
const (
	CodeBadRequest        = "bad_request"
	CodeEmptyMessage      = "empty_message"
	CodeUnknownTool       = "unknown_tool"
	CodeToolNotConfigured = "tool_not_configured"
	CodePolicyBlocked     = "policy_blocked"
	CodeUpstreamError     = "upstream_error"
	CodeInternalError     = "internal_error"
)

// Envelope is the normalized response shape returned to clients on every
// non-health route, regardless of what the upstream produced.
type Envelope struct {
	OK     bool          `json:"ok"`
	Reply  string        `json:"reply,omitempty"`
	Error  string        `json:"error,omitempty"`
	Code   string        `json:"code,omitempty"`
	Detail string        `json:"detail,omitempty"`
	Trace  *CouncilTrace `json:"trace,omitempty"`
}

// ErrorEnvelope builds a failure envelope with a stable code.
func ErrorEnvelope(code, message string) Envelope {
	return Envelope{OK: false, Code: code, Error: message}
}
