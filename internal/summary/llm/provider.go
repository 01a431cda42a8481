package llm

import "context"

// Provider sends one prompt to a hosted model and returns its text answer.
// An empty answer is not an error; callers decide what it means.
type Provider interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
