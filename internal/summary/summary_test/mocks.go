package summary_test

import (
	"context"
	"sync"

	"github.com/akolanti/DocSummaryAPI/internal/domain/summaryModel"
)

// MockLLM implements llm.Provider and records every prompt it receives
type MockLLM struct {
	OnGenerate func(ctx context.Context, prompt string) (string, error)

	mu      sync.Mutex
	Prompts []string
}

func (m *MockLLM) Generate(ctx context.Context, prompt string) (string, error) {
	m.mu.Lock()
	m.Prompts = append(m.Prompts, prompt)
	m.mu.Unlock()
	if m.OnGenerate != nil {
		return m.OnGenerate(ctx, prompt)
	}
	return "mocked llm response", nil
}

func (m *MockLLM) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Prompts)
}

// MockCache implements summaryModel.SummaryCache
type MockCache struct {
	OnGet func(ctx context.Context, key string) (summaryModel.Result, bool)
	OnSet func(ctx context.Context, key string, result summaryModel.Result) error

	Saved map[string]summaryModel.Result
}

func (m *MockCache) Get(ctx context.Context, key string) (summaryModel.Result, bool) {
	if m.OnGet != nil {
		return m.OnGet(ctx, key)
	}
	r, ok := m.Saved[key]
	return r, ok
}

func (m *MockCache) Set(ctx context.Context, key string, result summaryModel.Result) error {
	if m.OnSet != nil {
		return m.OnSet(ctx, key, result)
	}
	if m.Saved == nil {
		m.Saved = map[string]summaryModel.Result{}
	}
	m.Saved[key] = result
	return nil
}
