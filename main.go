package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/concordlabs/concord/internal/adapter/llm"
	"github.com/concordlabs/concord/internal/adapter/webhook"
	"github.com/concordlabs/concord/internal/config"
	"github.com/concordlabs/concord/internal/policy"
	"github.com/concordlabs/concord/internal/service"
	transport "github.com/concordlabs/concord/internal/transport/http"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting concord relay...")
	log.Printf("HTTP Port: %d", cfg.HTTPPort)
	log.Printf("LLM URL: %s", cfg.LLMBaseURL)
	log.Printf("Seats: %d", len(cfg.Seats))
	log.Printf("Configured tools: %d", len(cfg.ToolURLs))

	// Initialize capability clients
	llmClient := llm.NewClient(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMTimeout)
	webhookClient := webhook.NewClient(cfg.WebhookTimeout, cfg.WebhookSecretHeader, cfg.WebhookSecret)

	// Initialize policy engine
	ctx := context.Background()
	policyEngine, err := policy.NewEngineFromFile(ctx, cfg.ToolPolicyFile)
	if err != nil {
		log.Fatalf("Failed to initialize policy engine: %v", err)
	}

	// Initialize service
	svc := service.New(llmClient, webhookClient, policyEngine, cfg)

	// Create server
	server := transport.NewServer(svc)

	// Start server
	go func() {
		addr := fmt.Sprintf(":%d", cfg.HTTPPort)
		if err := server.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	log.Printf("Relay started on port %d", cfg.HTTPPort)

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down relay...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Failed to shutdown server gracefully: %v", err)
	}

	log.Println("Relay stopped")
}
