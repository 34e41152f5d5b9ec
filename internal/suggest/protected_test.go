package suggest_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/globescholar/scholarhub/internal/suggest"
)

func TestProtectedCompleterOpensAfterThreshold(t *testing.T) {
	calls := 0

	inner := &fakeCompleter{
		completeFn: func(ctx context.Context, prompt string) (string, error) {
			calls++
			return "", errors.New("provider down")
		},
	}

	p := suggest.NewProtectedCompleter(inner, suggest.ProtectedCompleterConfig{
		Timeout:          time.Second,
		FailureThreshold: 3,
		Cooldown:         time.Hour,
	})

	for i := 0; i < 3; i++ {
		_, err := p.Complete(context.Background(), "prompt")
		if err == nil {
			t.Fatalf("call %d: expected error", i)
		}
	}

	// circuit is open now: inner must not be reached again
	_, err := p.Complete(context.Background(), "prompt")

	if !errors.Is(err, suggest.ErrCircuitOpen) {
		t.Fatalf("expected ErrCircuitOpen, got %v", err)
	}

	if calls != 3 {
		t.Fatalf("inner should have seen 3 calls, saw %d", calls)
	}
}

func TestProtectedCompleterRecoversAfterCooldown(t *testing.T) {
	failing := true

	inner := &fakeCompleter{
		completeFn: func(ctx context.Context, prompt string) (string, error) {
			if failing {
				return "", errors.New("provider down")
			}
			return "ok", nil
		},
	}

	p := suggest.NewProtectedCompleter(inner, suggest.ProtectedCompleterConfig{
		Timeout:          time.Second,
		FailureThreshold: 1,
		Cooldown:         10 * time.Millisecond,
	})

	_, _ = p.Complete(context.Background(), "prompt")

	if _, err := p.Complete(context.Background(), "prompt"); !errors.Is(err, suggest.ErrCircuitOpen) {
		t.Fatalf("expected open circuit, got %v", err)
	}

	failing = false
	time.Sleep(20 * time.Millisecond)

	out, err := p.Complete(context.Background(), "prompt")

	if err != nil || out != "ok" {
		t.Fatalf("expected half-open trial to succeed, got %q %v", out, err)
	}

	// success closes the circuit again
	out, err = p.Complete(context.Background(), "prompt")

	if err != nil || out != "ok" {
		t.Fatalf("expected closed circuit, got %q %v", out, err)
	}
}

func TestProtectedCompleterPassesThroughSuccess(t *testing.T) {
	inner := &fakeCompleter{
		completeFn: func(ctx context.Context, prompt string) (string, error) {
			return "hello", nil
		},
	}

	p := suggest.NewProtectedCompleter(inner, suggest.ProtectedCompleterConfig{})

	out, err := p.Complete(context.Background(), "prompt")

	if err != nil || out != "hello" {
		t.Fatalf("got %q %v", out, err)
	}
}
