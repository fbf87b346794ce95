package fallback

import (
	"context"
	"errors"
	"log"
	"time"

	"cafe-assistant-be/pkg/llm"
)

// ErrKind classifies a failed provider attempt at the boundary. Nothing
// downstream inspects provider-specific error text.
type ErrKind string

const (
	ErrKindTimeout  ErrKind = "timeout"
	ErrKindRejected ErrKind = "rejected" // auth, rate limit, malformed response
)

// ErrAllProvidersExhausted is logged (never surfaced to the end user)
// when every provider in the chain has failed.
var ErrAllProvidersExhausted = errors.New("all generation providers exhausted")

// ProviderResult records one attempt against one provider.
type ProviderResult struct {
	ProviderId string
	RawText    string
	Succeeded  bool
	ErrKind    ErrKind
}

// Chain tries an ordered list of text-generation providers, each under
// its own timeout. The chain is agnostic to how many providers exist;
// swapping one in or out never touches this orchestration.
type Chain struct {
	providers      []llm.Provider
	attemptTimeout time.Duration
	logger         *log.Logger
}

func NewChain(providers []llm.Provider, attemptTimeout time.Duration, logger *log.Logger) *Chain {
	return &Chain{
		providers:      providers,
		attemptTimeout: attemptTimeout,
		logger:         logger,
	}
}

// Respond attempts providers in priority order and returns the first
// successful raw text, unmodified; sanitization is the formatter's job.
// A failed provider is never retried; the next one is tried instead. If
// all providers fail, ErrAllProvidersExhausted is returned along with
// the attempt records so the caller can log and fall back to a
// deterministic apology.
func (c *Chain) Respond(ctx context.Context, history []llm.Message) (string, []ProviderResult, error) {
	results := make([]ProviderResult, 0, len(c.providers))

	for _, provider := range c.providers {
		attemptCtx, cancel := context.WithTimeout(ctx, c.attemptTimeout)
		text, err := provider.Chat(attemptCtx, history)
		cancel()

		if err != nil {
			kind := classify(attemptCtx, err)
			results = append(results, ProviderResult{
				ProviderId: provider.Name(),
				Succeeded:  false,
				ErrKind:    kind,
			})
			c.logger.Printf("[FALLBACK] provider %s failed (%s): %v", provider.Name(), kind, err)
			continue
		}

		results = append(results, ProviderResult{
			ProviderId: provider.Name(),
			RawText:    text,
			Succeeded:  true,
		})
		return text, results, nil
	}

	return "", results, ErrAllProvidersExhausted
}

// classify maps an attempt error onto the boundary taxonomy. A context
// deadline means the in-flight call was abandoned; everything else is a
// provider rejection.
func classify(attemptCtx context.Context, err error) ErrKind {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(attemptCtx.Err(), context.DeadlineExceeded) {
		return ErrKindTimeout
	}
	return ErrKindRejected
}
