package service

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/concordlabs/concord/internal/adapter/webhook"
	"github.com/concordlabs/concord/internal/config"
	"github.com/concordlabs/concord/internal/domain"
	"github.com/concordlabs/concord/internal/policy"
)

func TestForwardUnknownTool(t *testing.T) {
	forwarder := &fakeForwarder{}
	cfg := &config.Config{ToolURLs: map[string]string{}}
	svc := newTestService(t, &fakeCompleter{respond: echoRespond}, forwarder, cfg)

	status, env := svc.ForwardTool(context.Background(), "launch_missiles", "u1", []byte(`{}`))
	if status != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", status)
	}
	if env.OK || env.Code != domain.CodeUnknownTool {
		t.Fatalf("unexpected envelope: %+v", env)
	}
	if forwarder.calls != 0 {
		t.Fatalf("expected no outbound call, got %d", forwarder.calls)
	}
}

func TestForwardUnconfiguredTool(t *testing.T) {
	forwarder := &fakeForwarder{}
	cfg := &config.Config{ToolURLs: map[string]string{}}
	svc := newTestService(t, &fakeCompleter{respond: echoRespond}, forwarder, cfg)

	status, env := svc.ForwardTool(context.Background(), "ingest", "u1", []byte(`{}`))
	if status != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", status)
	}
	if env.OK || env.Code != domain.CodeToolNotConfigured {
		t.Fatalf("unexpected envelope: %+v", env)
	}
	if forwarder.calls != 0 {
		t.Fatalf("expected no outbound call, got %d", forwarder.calls)
	}
}

func TestForwardBlockedByPolicy(t *testing.T) {
	const blockNotify = `
package relay_policy

default decision := "allow"

decision := "block" if {
	input.tool == "notify"
}
`
	engine, err := policy.NewEngine(context.Background(), blockNotify)
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}
	forwarder := &fakeForwarder{}
	cfg := &config.Config{ToolURLs: map[string]string{"notify": "http://workflows/notify"}}
	svc := New(&fakeCompleter{respond: echoRespond}, forwarder, engine, cfg)

	status, env := svc.ForwardTool(context.Background(), "notify", "u1", []byte(`{}`))
	if status != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", status)
	}
	if env.Code != domain.CodePolicyBlocked {
		t.Fatalf("unexpected envelope: %+v", env)
	}
	if forwarder.calls != 0 {
		t.Fatalf("expected no outbound call, got %d", forwarder.calls)
	}
}

func TestForwardUpstreamFailureKeepsRawBody(t *testing.T) {
	forwarder := &fakeForwarder{
		result: &webhook.Result{StatusCode: http.StatusInternalServerError, Body: []byte("oops")},
	}
	cfg := &config.Config{ToolURLs: map[string]string{"ingest": "http://workflows/ingest"}}
	svc := newTestService(t, &fakeCompleter{respond: echoRespond}, forwarder, cfg)

	status, env := svc.ForwardTool(context.Background(), "ingest", "u1", []byte(`{}`))
	if status != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", status)
	}
	if env.OK || env.Code != domain.CodeUpstreamError {
		t.Fatalf("unexpected envelope: %+v", env)
	}
	if env.Detail != "oops" {
		t.Fatalf("expected raw upstream body in detail, got %q", env.Detail)
	}
}

func TestForwardTransportError(t *testing.T) {
	forwarder := &fakeForwarder{err: errors.New("dial tcp: connection refused")}
	cfg := &config.Config{ToolURLs: map[string]string{"ingest": "http://workflows/ingest"}}
	svc := newTestService(t, &fakeCompleter{respond: echoRespond}, forwarder, cfg)

	status, env := svc.ForwardTool(context.Background(), "ingest", "u1", []byte(`{}`))
	if status != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", status)
	}
	if env.Code != domain.CodeUpstreamError {
		t.Fatalf("unexpected envelope: %+v", env)
	}
}

func TestForwardNormalizesReply(t *testing.T) {
	forwarder := &fakeForwarder{
		result: &webhook.Result{
			StatusCode: http.StatusOK,
			Body:       []byte(`{"message":"ingested 3 documents"}`),
			JSON:       map[string]interface{}{"message": "ingested 3 documents"},
		},
	}
	cfg := &config.Config{ToolURLs: map[string]string{"ingest": "http://workflows/ingest"}}
	svc := newTestService(t, &fakeCompleter{respond: echoRespond}, forwarder, cfg)

	status, env := svc.ForwardTool(context.Background(), "ingest", "u1", []byte(`{}`))
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if !env.OK || env.Reply != "ingested 3 documents" {
		t.Fatalf("unexpected envelope: %+v", env)
	}
}

func TestForwardNonJSONSuccessBody(t *testing.T) {
	forwarder := &fakeForwarder{
		result: &webhook.Result{StatusCode: http.StatusOK, Body: []byte("plain ok")},
	}
	cfg := &config.Config{ToolURLs: map[string]string{"search": "http://workflows/search"}}
	svc := newTestService(t, &fakeCompleter{respond: echoRespond}, forwarder, cfg)

	status, env := svc.ForwardTool(context.Background(), "search", "u1", []byte(`{}`))
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if !env.OK || env.Reply != "plain ok" {
		t.Fatalf("unexpected envelope: %+v", env)
	}
}
