package domain

import "encoding/json"

// ConsultRequest is the inbound request envelope from the frontend.
// Message is the only required field; everything else is carried through
// for correlation and tool selection.
type ConsultRequest struct {
	Message string          `json:"message"`
	Actor   string          `json:"actor,omitempty"`
	Thread  string          `json:"thread,omitempty"`
	Tool    string          `json:"tool,omitempty"`
	Meta    json.RawMessage `json:"meta,omitempty"`
}
