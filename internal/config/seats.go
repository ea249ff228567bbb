package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Seat is one configured council persona. Each seat contributes exactly one
// independent advisory answer per consult.
type Seat struct {
	ID     string `yaml:"id"`
	Prompt string `yaml:"prompt"`
}

type seatsFile struct {
	Seats []Seat `yaml:"seats"`
}

// DefaultSeats is the built-in council roster, used when no seats file is
// configured. Order here is the order seats appear in the trace.
var DefaultSeats = []Seat{
	{
		ID:     "architect",
		Prompt: "You are the architect on an advisory council. Focus on structure, long-term design consequences, and how the pieces fit together. Answer the question from that perspective, concisely.",
	},
	{
		ID:     "operator",
		Prompt: "You are the operator on an advisory council. Focus on practical execution, cost, and what can actually be done with the resources at hand. Answer the question from that perspective, concisely.",
	},
	{
		ID:     "skeptic",
		Prompt: "You are the skeptic on an advisory council. Focus on risks, hidden assumptions, and ways the plan could fail. Answer the question from that perspective, concisely.",
	},
	{
		ID:     "mentor",
		Prompt: "You are the mentor on an advisory council. Focus on the human side: growth, clarity of goals, and what the asker may be missing about themselves. Answer the question from that perspective, concisely.",
	},
}

// LoadSeats returns the council roster. When path is empty the built-in
// default roster is used; otherwise the YAML file at path replaces it.
func LoadSeats(path string) ([]Seat, error) {
	if path == "" {
		return DefaultSeats, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seats file: %w", err)
	}

	var f seatsFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse seats file: %w", err)
	}

	if len(f.Seats) == 0 {
		return nil, fmt.Errorf("seats file %s defines no seats", path)
	}
	for i, seat := range f.Seats {
		if seat.ID == "" || seat.Prompt == "" {
			return nil, fmt.Errorf("seat %d is missing id or prompt", i)
		}
	}

	return f.Seats, nil
}
