package suggest

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/globescholar/scholarhub/internal/domain/scholarship"
	"github.com/globescholar/scholarhub/internal/observability"
)

// Gateway asks the text-generation provider for scholarship candidates and
// swallows every failure: callers always get a usable list, worst case the
// fixed demo item. No error crosses this boundary.
type Gateway struct {
	completer Completer // nil when no API key is configured
	log       *slog.Logger
	prom      *observability.Prom
}

func NewGateway(completer Completer, log *slog.Logger, prom *observability.Prom) *Gateway {
	return &Gateway{
		completer: completer,
		log:       log,
		prom:      prom,
	}
}

func (g *Gateway) Suggest(ctx context.Context, country string) []scholarship.Suggestion {
	if g.completer == nil {
		g.observe("fallback", 0)
		return scholarship.Fallback()
	}

	prompt := fmt.Sprintf(
		"List 8 legitimate scholarships for students in %s. "+
			"Return ONLY JSON array of objects with fields: name, provider, deadline, url. "+
			"Deadlines as YYYY-MM-DD or 'unknown'. URLs must be real.",
		country,
	)

	start := time.Now()

	text, err := g.completer.Complete(ctx, prompt)

	if err != nil {
		g.log.Warn("suggestion provider call failed", "country", country, "err", err)
		g.observe("error", time.Since(start))
		return scholarship.Fallback()
	}

	items, err := ParseCandidateList(text)

	if err != nil {
		g.log.Warn("suggestion response unparsable", "country", country, "err", err)
		g.observe("error", time.Since(start))
		return scholarship.Fallback()
	}

	g.observe("ok", time.Since(start))

	return items
}

func (g *Gateway) observe(result string, elapsed time.Duration) {
	if g.prom != nil {
		g.prom.ObserveSuggest(result, elapsed)
	}
}
