package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedProvider fails a fixed number of times before succeeding.
type scriptedProvider struct {
	failures int
	calls    int
	content  string
}

func (p *scriptedProvider) CreateChatCompletion(ctx context.Context, systemMessage, prompt string) (string, error) {
	p.calls++
	if p.calls <= p.failures {
		return "", errors.New("upstream unavailable")
	}
	return p.content, nil
}

func newTestGenerationClient(provider ChatProvider) (*GenerationClient, *[]time.Duration) {
	var backoffs []time.Duration
	c := NewGenerationClient(provider, NewSlidingWindowLimiter(1000))
	c.sleep = func(d time.Duration) { backoffs = append(backoffs, d) }
	return c, &backoffs
}

func TestGenerateCompletionFirstAttempt(t *testing.T) {
	provider := &scriptedProvider{content: `{"recipes": []}`}
	client, backoffs := newTestGenerationClient(provider)

	content, err := client.GenerateCompletion(context.Background(), "sys", "prompt")
	require.NoError(t, err)
	assert.Equal(t, `{"recipes": []}`, content)
	assert.Equal(t, 1, provider.calls)
	assert.Empty(t, *backoffs)
}

func TestGenerateCompletionRetriesWithBackoff(t *testing.T) {
	provider := &scriptedProvider{failures: 2, content: "ok"}
	client, backoffs := newTestGenerationClient(provider)

	content, err := client.GenerateCompletion(context.Background(), "sys", "prompt")
	require.NoError(t, err)
	assert.Equal(t, "ok", content)
	assert.Equal(t, 3, provider.calls)
	assert.Equal(t, []time.Duration{1 * time.Second, 2 * time.Second}, *backoffs)
}

func TestGenerateCompletionExhaustsRetries(t *testing.T) {
	provider := &scriptedProvider{failures: 10}
	client, backoffs := newTestGenerationClient(provider)
	client.maxRetries = 2

	_, err := client.GenerateCompletion(context.Background(), "sys", "prompt")
	require.Error(t, err)

	var genErr *GenerationError
	require.ErrorAs(t, err, &genErr)
	assert.Equal(t, 2, genErr.Attempts)
	assert.Equal(t, 2, provider.calls)
	// Only one backoff: no sleep after the final attempt.
	assert.Equal(t, []time.Duration{1 * time.Second}, *backoffs)
}

func TestGenerateCompletionHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	provider := &scriptedProvider{content: "never"}
	client, _ := newTestGenerationClient(provider)

	_, err := client.GenerateCompletion(ctx, "sys", "prompt")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, provider.calls)
}
