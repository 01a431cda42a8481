package breaker

import (
	"context"
	"errors"
	"testing"

	"github.com/sony/gobreaker/v2"
)

type mockProvider struct {
	calls      int
	onGenerate func(ctx context.Context, prompt string) (string, error)
}

func (m *mockProvider) Generate(ctx context.Context, prompt string) (string, error) {
	m.calls++
	if m.onGenerate != nil {
		return m.onGenerate(ctx, prompt)
	}
	return "ok", nil
}

func TestProvider_PassesThrough(t *testing.T) {
	next := &mockProvider{onGenerate: func(ctx context.Context, prompt string) (string, error) {
		return "echo: " + prompt, nil
	}}
	p := Wrap("test", next)

	out, err := p.Generate(context.Background(), "hi")
	if err != nil || out != "echo: hi" {
		t.Fatalf("got %q, %v", out, err)
	}
	if p.State() != gobreaker.StateClosed {
		t.Errorf("state got %v", p.State())
	}
}

func TestProvider_NoRetryAndTrips(t *testing.T) {
	upstream := errors.New("503 unavailable")
	next := &mockProvider{onGenerate: func(ctx context.Context, prompt string) (string, error) {
		return "", upstream
	}}
	p := WrapWithThreshold("test", next, 2)

	for i := 0; i < 2; i++ {
		if _, err := p.Generate(context.Background(), "x"); !errors.Is(err, upstream) {
			t.Fatalf("call %d: expected upstream error, got %v", i, err)
		}
	}
	if next.calls != 2 {
		t.Fatalf("each failure must reach the provider exactly once, got %d calls", next.calls)
	}

	_, err := p.Generate(context.Background(), "x")
	if !IsOpen(err) {
		t.Fatalf("expected open breaker error, got %v", err)
	}
	if next.calls != 2 {
		t.Errorf("open breaker must not call the provider, got %d calls", next.calls)
	}
}

func TestProvider_CanceledDoesNotTrip(t *testing.T) {
	next := &mockProvider{onGenerate: func(ctx context.Context, prompt string) (string, error) {
		return "", context.Canceled
	}}
	p := WrapWithThreshold("test", next, 1)

	for i := 0; i < 3; i++ {
		_, _ = p.Generate(context.Background(), "x")
	}
	if p.State() != gobreaker.StateClosed {
		t.Errorf("cancellations should not open the breaker, state %v", p.State())
	}
}
