package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	nethttp "net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/concordlabs/concord/internal/adapter/llm"
	"github.com/concordlabs/concord/internal/adapter/webhook"
	"github.com/concordlabs/concord/internal/config"
	"github.com/concordlabs/concord/internal/domain"
	"github.com/concordlabs/concord/internal/policy"
	"github.com/concordlabs/concord/internal/service"
)

// TestServerConsultEndToEnd wires the real server, LLM client, and webhook
// client against mock upstreams and drives one consult and one forward
// through the router.
func TestServerConsultEndToEnd(t *testing.T) {
	llmServer := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"id":"c1","model":"gpt","choices":[{"index":0,"message":{"role":"assistant","content":"ack"},"finish_reason":"stop"}]}`)
	}))
	defer llmServer.Close()

	hookServer := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"reply":"ingested"}`)
	}))
	defer hookServer.Close()

	cfg := &config.Config{
		LLMModel: "gpt",
		Seats:    config.DefaultSeats,
		ToolURLs: map[string]string{"ingest": hookServer.URL},
	}
	engine, err := policy.NewEngine(context.Background(), policy.DefaultPolicy)
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}
	svc := service.New(
		llm.NewClient(llmServer.URL, "", time.Second),
		webhook.NewClient(time.Second, "X-Relay-Secret", ""),
		engine,
		cfg,
	)
	server := NewServer(svc)

	// Consult
	req := httptest.NewRequest(nethttp.MethodPost, "/v1/consult", bytes.NewBufferString(`{"message":"hello"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)

	if rec.Code != nethttp.StatusOK {
		t.Fatalf("consult: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var env domain.Envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("consult: bad body: %v", err)
	}
	if !env.OK || env.Reply != "ack" {
		t.Fatalf("consult: unexpected envelope: %+v", env)
	}
	if env.Trace == nil || len(env.Trace.Seats) != len(config.DefaultSeats) {
		t.Fatalf("consult: unexpected trace: %+v", env.Trace)
	}

	// Forward
	req = httptest.NewRequest(nethttp.MethodPost, "/v1/tools/ingest", bytes.NewBufferString(`{"message":"doc"}`))
	req.Header.Set("Content-Type", "application/json")
	rec = httptest.NewRecorder()
	server.ServeHTTP(rec, req)

	if rec.Code != nethttp.StatusOK {
		t.Fatalf("forward: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("forward: bad body: %v", err)
	}
	if !env.OK || env.Reply != "ingested" {
		t.Fatalf("forward: unexpected envelope: %+v", env)
	}

	// Health
	req = httptest.NewRequest(nethttp.MethodGet, "/healthz", nil)
	rec = httptest.NewRecorder()
	server.ServeHTTP(rec, req)
	if rec.Code != nethttp.StatusOK {
		t.Fatalf("health: expected 200, got %d", rec.Code)
	}

	// Metrics endpoint is wired
	req = httptest.NewRequest(nethttp.MethodGet, "/metrics", nil)
	rec = httptest.NewRecorder()
	server.ServeHTTP(rec, req)
	if rec.Code != nethttp.StatusOK {
		t.Fatalf("metrics: expected 200, got %d", rec.Code)
	}
}
