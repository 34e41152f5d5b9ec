package suggest_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/globescholar/scholarhub/internal/domain/scholarship"
	"github.com/globescholar/scholarhub/internal/suggest"
)

type fakeCompleter struct {
	completeFn func(ctx context.Context, prompt string) (string, error)
}

func (f *fakeCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	if f.completeFn != nil {
		return f.completeFn(ctx, prompt)
	}
	return "", nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func isFallback(t *testing.T, got []scholarship.Suggestion) {
	t.Helper()

	want := scholarship.Fallback()

	if len(got) != 1 || got[0] != want[0] {
		t.Fatalf("expected the fixed fallback item, got %+v", got)
	}
}

func TestSuggestWithoutProviderReturnsFallback(t *testing.T) {
	g := suggest.NewGateway(nil, discardLogger(), nil)

	isFallback(t, g.Suggest(context.Background(), "Kenya"))
}

func TestSuggestProviderErrorReturnsFallback(t *testing.T) {
	c := &fakeCompleter{
		completeFn: func(ctx context.Context, prompt string) (string, error) {
			return "", errors.New("connection refused")
		},
	}

	g := suggest.NewGateway(c, discardLogger(), nil)

	isFallback(t, g.Suggest(context.Background(), "Kenya"))
}

func TestSuggestUnparsableResponseReturnsFallback(t *testing.T) {
	c := &fakeCompleter{
		completeFn: func(ctx context.Context, prompt string) (string, error) {
			return "I am sorry, I cannot help with that.", nil
		},
	}

	g := suggest.NewGateway(c, discardLogger(), nil)

	isFallback(t, g.Suggest(context.Background(), "Kenya"))
}

func TestSuggestSuccessPassesCountryAndParses(t *testing.T) {
	var seenPrompt string

	c := &fakeCompleter{
		completeFn: func(ctx context.Context, prompt string) (string, error) {
			seenPrompt = prompt
			return `Here you go: [{"name":"Mastercard Foundation Scholars","provider":"Mastercard Foundation","deadline":"2026-01-15","url":"https://mastercardfdn.org"}]`, nil
		},
	}

	g := suggest.NewGateway(c, discardLogger(), nil)

	got := g.Suggest(context.Background(), "Kenya")

	if len(got) != 1 || got[0].Name != "Mastercard Foundation Scholars" {
		t.Fatalf("unexpected suggestions: %+v", got)
	}

	if !strings.Contains(seenPrompt, "Kenya") {
		t.Fatalf("prompt should mention the country, got %q", seenPrompt)
	}
}
