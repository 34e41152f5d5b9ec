package suggest

import (
	"context"
	"errors"
	"sync"
	"time"
)

var ErrCircuitOpen = errors.New("circuit breaker open")

type ProtectedCompleterConfig struct {
	Timeout          time.Duration // hard timeout per call
	FailureThreshold int           // consecutive failures to open circuit
	Cooldown         time.Duration // how long to stay open before half-open
	HalfOpenMaxCalls int           // allow N trial calls in half-open
}

// ProtectedCompleter wraps a Completer with a timeout and a circuit
// breaker, so a dead provider fails fast instead of holding every
// /fetch-scholarships request for the full timeout.
type ProtectedCompleter struct {
	inner Completer
	cfg   ProtectedCompleterConfig
	mu    sync.Mutex

	state string // "closed" | "open" | "half_open"

	consecutiveFailures int
	openedAt            time.Time
	halfOpenInFlight    int
}

func NewProtectedCompleter(inner Completer, cfg ProtectedCompleterConfig) *ProtectedCompleter {
	//defaults
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	if cfg.FailureThreshold <= 0 {
		cfg.FailureThreshold = 3
	}
	if cfg.Cooldown <= 0 {
		cfg.Cooldown = 30 * time.Second
	}
	if cfg.HalfOpenMaxCalls <= 0 {
		cfg.HalfOpenMaxCalls = 1
	}

	return &ProtectedCompleter{
		inner: inner,
		cfg:   cfg,
		state: "closed",
	}
}

func (p *ProtectedCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	// fail-fast gate

	if !p.allowRequest() {
		return "", ErrCircuitOpen
	}
	// enforce timeout

	callCtx, cancel := context.WithTimeout(ctx, p.cfg.Timeout)
	defer cancel()

	out, err := p.inner.Complete(callCtx, prompt)

	p.afterRequest(err)

	return out, err
}

func (p *ProtectedCompleter) allowRequest() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	switch p.state {
	case "closed":
		return true
	case "open":
		// cooldown has passed? move to half open

		if time.Since(p.openedAt) >= p.cfg.Cooldown {
			p.state = "half_open"
			p.halfOpenInFlight = 0
			return true
		}
		return false
	case "half_open":
		if p.halfOpenInFlight >= p.cfg.HalfOpenMaxCalls {
			return false
		}
		p.halfOpenInFlight++
		return true

	default:
		// safe fallback
		return true
	}
}

func (p *ProtectedCompleter) afterRequest(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	// half-open call just finished
	if p.state == "half_open" && p.halfOpenInFlight > 0 {
		p.halfOpenInFlight--
	}

	if err == nil {
		// success => close circuit and reset counters
		p.consecutiveFailures = 0
		p.state = "closed"
		return
	}

	// failure
	p.consecutiveFailures++

	// if half-open failed, reopen immediately
	if p.state == "half_open" {
		p.state = "open"
		p.openedAt = time.Now()
		return
	}

	// if failures reached threshold, open circuit
	if p.consecutiveFailures >= p.cfg.FailureThreshold {
		p.state = "open"
		p.openedAt = time.Now()
	}
}
