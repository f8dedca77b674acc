package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"
)

// Message represents a message in the chat
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest represents a request to the Groq chat-completions API
type ChatRequest struct {
	Model          string            `json:"model"`
	Messages       []Message         `json:"messages"`
	Temperature    float64           `json:"temperature"`
	MaxTokens      int               `json:"max_tokens"`
	ResponseFormat map[string]string `json:"response_format"`
}

// ChatProvider is the transport boundary to the generation provider.
// One call per attempt; retry policy lives in GenerationClient.
type ChatProvider interface {
	CreateChatCompletion(ctx context.Context, systemMessage, prompt string) (string, error)
}

// GroqClient calls the Groq chat-completions API over HTTP.
type GroqClient struct {
	apiKey string
	apiURL string
	model  string
	client *http.Client
}

// NewGroqClient creates a new GroqClient from the environment.
func NewGroqClient() (*GroqClient, error) {
	apiKey := os.Getenv("GROQ_API_KEY")
	if apiKey == "" {
		apiKeyFile := os.Getenv("GROQ_API_KEY_FILE")
		if apiKeyFile == "" {
			return nil, fmt.Errorf("GROQ_API_KEY or GROQ_API_KEY_FILE must be set")
		}

		apiKeyBytes, err := os.ReadFile(apiKeyFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read API key file: %w", err)
		}

		apiKey = strings.TrimSpace(string(apiKeyBytes))
		if apiKey == "" {
			return nil, fmt.Errorf("API key file is empty")
		}
	}

	apiURL := os.Getenv("GROQ_API_URL")
	if apiURL == "" {
		apiURL = "https://api.groq.com/openai/v1/chat/completions"
	}

	return &GroqClient{
		apiKey: apiKey,
		apiURL: apiURL,
		model:  "llama-3.3-70b-versatile",
		client: &http.Client{Timeout: 60 * time.Second},
	}, nil
}

// CreateChatCompletion performs one provider call and returns the raw
// message content of the first choice.
func (c *GroqClient) CreateChatCompletion(ctx context.Context, systemMessage, prompt string) (string, error) {
	reqBody := ChatRequest{
		Model: c.model,
		Messages: []Message{
			{Role: "system", Content: systemMessage},
			{Role: "user", Content: prompt},
		},
		Temperature:    0.7,
		MaxTokens:      2000,
		ResponseFormat: map[string]string{"type": "json_object"},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(body))
	}

	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	if len(result.Choices) == 0 {
		return "", fmt.Errorf("no choices in API response")
	}

	return result.Choices[0].Message.Content, nil
}

// GenerationClient wraps a ChatProvider with rate limiting and
// retry/backoff. Provider-level failures are retried with exponential
// backoff; content that later fails parsing is not retried here.
type GenerationClient struct {
	provider   ChatProvider
	limiter    *SlidingWindowLimiter
	maxRetries int
	sleep      func(time.Duration)
}

// NewGenerationClient creates a GenerationClient with the default
// retry budget of 3 attempts.
func NewGenerationClient(provider ChatProvider, limiter *SlidingWindowLimiter) *GenerationClient {
	return &GenerationClient{
		provider:   provider,
		limiter:    limiter,
		maxRetries: 3,
		sleep:      time.Sleep,
	}
}

// GenerateCompletion asks the provider for a completion, retrying up to
// maxRetries times with 1s, 2s, 4s, ... backoff between attempts. The
// caller is blocked for the full duration of limiter waits and
// backoffs; cancel the context to bail out between attempts.
func (c *GenerationClient) GenerateCompletion(ctx context.Context, systemMessage, prompt string) (string, error) {
	var lastErr error

	for attempt := 0; attempt < c.maxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return "", &GenerationError{Attempts: attempt, Err: err}
		}

		c.limiter.Wait()

		content, err := c.provider.CreateChatCompletion(ctx, systemMessage, prompt)
		if err == nil {
			log.Printf("[GenerationClient] Completion succeeded on attempt %d", attempt+1)
			return content, nil
		}

		lastErr = err
		log.Printf("[GenerationClient] Attempt %d/%d failed: %v", attempt+1, c.maxRetries, err)

		if attempt < c.maxRetries-1 {
			backoff := time.Duration(1<<uint(attempt)) * time.Second
			log.Printf("[GenerationClient] Retrying in %v", backoff)
			c.sleep(backoff)
		}
	}

	return "", &GenerationError{Attempts: c.maxRetries, Err: lastErr}
}
