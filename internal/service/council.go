package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/concordlabs/concord/internal/config"
	"github.com/concordlabs/concord/internal/domain"
	"github.com/concordlabs/concord/internal/metrics"
)

const debatePrompt = "You are a neutral moderator. You are given several advisory answers to the same question. Summarize where the advisors agree, where they disagree, and what blind spots remain. Do not take a side."

const synthesisPrompt = "You are the chair of an advisory council. You are given the advisors' answers, a debate summary, and the original question. Produce one decisive final recommendation for the asker. Be direct."

// Consult runs the three-phase council: a parallel advisory pass over every
// configured seat, one debate call, one synthesis call. Seat failures are
// recorded as marker answers and carried forward as content; a failure in
// the debate or synthesis phase fails the whole consult.
func (s *Service) Consult(ctx context.Context, message string) (*domain.ConsultResult, error) {
	consultID := "cns_" + uuid.New().String()[:8]
	startTime := time.Now()

	seats := s.config.Seats
	results := s.runAdvisoryPhase(ctx, consultID, seats, message)

	debate, err := s.llmClient.Complete(ctx, s.config.LLMModel, debatePrompt, buildDebateInput(message, results))
	if err != nil {
		return nil, fmt.Errorf("debate phase failed: %w", err)
	}

	reply, err := s.llmClient.Complete(ctx, s.config.LLMModel, synthesisPrompt, buildSynthesisInput(message, results, debate))
	if err != nil {
		return nil, fmt.Errorf("synthesis phase failed: %w", err)
	}

	metrics.ConsultDuration.Observe(float64(time.Since(startTime).Milliseconds()))
	log.Printf("consult %s done: seats=%d latency_ms=%d", consultID, len(seats), time.Since(startTime).Milliseconds())

	return &domain.ConsultResult{
		Reply: reply,
		Trace: &domain.CouncilTrace{
			Seats:  results,
			Debate: debate,
		},
	}, nil
}

// runAdvisoryPhase fans out one completion call per seat and joins on all of
// them. Results land in indexed slots, so trace order is configuration
// order no matter which call finishes first. A failed call resolves to a
// marker answer instead of aborting the batch.
func (s *Service) runAdvisoryPhase(ctx context.Context, consultID string, seats []config.Seat, message string) []domain.AdvisoryResult {
	results := make([]domain.AdvisoryResult, len(seats))

	var wg sync.WaitGroup
	for i, seat := range seats {
		wg.Add(1)
		go func(i int, seat config.Seat) {
			defer wg.Done()
			answer, err := s.llmClient.Complete(ctx, s.config.LLMModel, seat.Prompt, message)
			if err != nil {
				log.Printf("WARN: consult %s seat %s failed: %v", consultID, seat.ID, err)
				metrics.SeatFailures.WithLabelValues(seat.ID).Inc()
				answer = fmt.Sprintf("seat %s unavailable: %v", seat.ID, err)
			}
			results[i] = domain.AdvisoryResult{SeatID: seat.ID, Answer: answer}
		}(i, seat)
	}
	wg.Wait()

	return results
}

// buildDebateInput renders the advisory transcript fed to the debate phase.
func buildDebateInput(message string, results []domain.AdvisoryResult) string {
	var b strings.Builder
	b.WriteString("Question: ")
	b.WriteString(message)
	b.WriteString("\n\nAdvisory answers:\n")
	for _, r := range results {
		fmt.Fprintf(&b, "\n[%s]\n%s\n", r.SeatID, r.Answer)
	}
	return b.String()
}

// buildSynthesisInput renders the full context fed to the synthesis phase.
func buildSynthesisInput(message string, results []domain.AdvisoryResult, debate string) string {
	var b strings.Builder
	b.WriteString(buildDebateInput(message, results))
	b.WriteString("\nDebate summary:\n")
	b.WriteString(debate)
	b.WriteString("\n\nGive the final recommendation.")
	return b.String()
}
