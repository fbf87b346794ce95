package fallback

import (
	"context"
	"errors"
	"io"
	"log"
	"testing"
	"time"

	"cafe-assistant-be/pkg/llm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubProvider is a deterministic test double for the provider contract.
type stubProvider struct {
	name  string
	text  string
	err   error
	hang  bool
	calls int
}

func (p *stubProvider) Name() string { return p.name }

func (p *stubProvider) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	p.calls++
	if p.hang {
		<-ctx.Done()
		return "", ctx.Err()
	}
	if p.err != nil {
		return "", p.err
	}
	return p.text, nil
}

func (p *stubProvider) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return p.Chat(ctx, []llm.Message{{Role: "user", Content: prompt}}, options...)
}

func quietLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func TestRespondPrimarySucceeds(t *testing.T) {
	primary := &stubProvider{name: "primary", text: "hello"}
	secondary := &stubProvider{name: "secondary", text: "unused"}
	chain := NewChain([]llm.Provider{primary, secondary}, time.Second, quietLogger())

	text, results, err := chain.Respond(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, "hello", text)
	require.Len(t, results, 1)
	assert.True(t, results[0].Succeeded)
	assert.Equal(t, "primary", results[0].ProviderId)
	assert.Zero(t, secondary.calls, "secondary must not be tried when primary succeeds")
}

func TestRespondFallsBackToSecondary(t *testing.T) {
	primary := &stubProvider{name: "primary", err: errors.New("boom")}
	secondary := &stubProvider{name: "secondary", text: "plan b"}
	chain := NewChain([]llm.Provider{primary, secondary}, time.Second, quietLogger())

	text, results, err := chain.Respond(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, "plan b", text)
	require.Len(t, results, 2)
	assert.False(t, results[0].Succeeded)
	assert.Equal(t, ErrKindRejected, results[0].ErrKind)
	assert.True(t, results[1].Succeeded)
	assert.Equal(t, 1, primary.calls, "a failed provider is never retried")
}

func TestRespondTimeoutClassified(t *testing.T) {
	slow := &stubProvider{name: "slow", hang: true}
	fast := &stubProvider{name: "fast", text: "quick"}
	chain := NewChain([]llm.Provider{slow, fast}, 20*time.Millisecond, quietLogger())

	text, results, err := chain.Respond(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, "quick", text)
	require.Len(t, results, 2)
	assert.Equal(t, ErrKindTimeout, results[0].ErrKind)
}

func TestRespondAllExhausted(t *testing.T) {
	a := &stubProvider{name: "a", err: errors.New("down")}
	b := &stubProvider{name: "b", err: errors.New("down too")}
	chain := NewChain([]llm.Provider{a, b}, time.Second, quietLogger())

	_, results, err := chain.Respond(context.Background(), nil)
	assert.ErrorIs(t, err, ErrAllProvidersExhausted)
	assert.Len(t, results, 2)
}

func TestRespondRawTextUntouched(t *testing.T) {
	raw := "**bold** stays raw here"
	p := &stubProvider{name: "p", text: raw}
	chain := NewChain([]llm.Provider{p}, time.Second, quietLogger())

	text, _, err := chain.Respond(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, raw, text, "sanitization is the formatter's job, not the chain's")
}
