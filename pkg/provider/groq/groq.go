// Package groq implements the provider gateway against the Groq API.
//
// Groq exposes an OpenAI-compatible Chat Completions endpoint, so the
// client is built on the go-openai SDK pointed at the Groq base URL.
package groq

import (
	"context"
	"errors"
	"fmt"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/devtayyabsajjad/groqchat/pkg/api"
	"github.com/devtayyabsajjad/groqchat/pkg/provider"
	"github.com/devtayyabsajjad/groqchat/pkg/tokens"
)

// DefaultBaseURL is the Groq OpenAI-compatible API endpoint.
const DefaultBaseURL = "https://api.groq.com/openai/v1"

// systemPrompt is prepended to every completion call.
const systemPrompt = "You are a helpful AI assistant. Provide clear, concise, and helpful responses."

// Config holds settings for the Groq client.
type Config struct {
	// APIKey is the Groq credential. Required.
	APIKey string

	// BaseURL overrides the API endpoint. Defaults to DefaultBaseURL.
	// Tests point this at a local server.
	BaseURL string

	// Timeout bounds each completion call when the caller's context
	// carries no deadline. Defaults to 30s.
	Timeout time.Duration
}

// Client is the Groq-backed CompletionClient.
type Client struct {
	api     *openai.Client
	timeout time.Duration
}

var _ provider.CompletionClient = (*Client)(nil)

// New creates a Groq client. It fails when no API key is configured;
// the process must not start without a credential.
func New(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("groq: API key is required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	clientConfig.BaseURL = cfg.BaseURL

	return &Client{
		api:     openai.NewClientWithConfig(clientConfig),
		timeout: cfg.Timeout,
	}, nil
}

// Name returns the backend identifier.
func (c *Client) Name() string { return "groq" }

// Complete performs a single synchronous completion call. The request
// must already be normalized: model, max_tokens, and temperature set.
func (c *Client) Complete(ctx context.Context, req *api.ChatRequest) (*api.ChatResponse, error) {
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	message := api.SanitizeMessage(req.Message)

	chatReq := openai.ChatCompletionRequest{
		Model: req.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: message},
		},
		MaxTokens:   *req.MaxTokens,
		Temperature: float32(*req.Temperature),
	}

	resp, err := c.api.CreateChatCompletion(ctx, chatReq)
	if err != nil {
		return nil, classifyError(err)
	}

	if len(resp.Choices) == 0 {
		return nil, &provider.UnavailableError{Message: "backend returned no completion choices"}
	}
	reply := resp.Choices[0].Message.Content

	tokensUsed := resp.Usage.TotalTokens
	if tokensUsed == 0 {
		// Usage metadata missing; fall back to an estimate over both
		// sides of the exchange.
		tokensUsed = tokens.Estimate(message) + tokens.Estimate(reply)
	}

	return &api.ChatResponse{
		Reply:      reply,
		ModelUsed:  req.Model,
		TokensUsed: tokensUsed,
	}, nil
}

// Close releases client resources. The SDK holds no connections that
// outlive requests, so this is a no-op kept for the interface.
func (c *Client) Close() error { return nil }

// classifyError maps SDK and network failures onto the provider error
// taxonomy.
func classifyError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return classifyStatus(apiErr.HTTPStatusCode, apiErr.Message)
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return classifyStatus(reqErr.HTTPStatusCode, reqErr.Error())
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return &provider.UnavailableError{Message: "backend call timed out", Err: err}
	}

	return &provider.UnavailableError{Message: "backend connection error", Err: err}
}

// classifyStatus maps an upstream HTTP status onto the error taxonomy.
// Rate limiting counts as transient, so 429 lands in UnavailableError.
func classifyStatus(status int, message string) error {
	switch {
	case status == 401 || status == 403:
		return &provider.AuthError{Message: message}
	case status == 429 || status >= 500:
		return &provider.UnavailableError{Message: message}
	case status >= 400:
		return &provider.RequestError{Message: message}
	default:
		return &provider.UnavailableError{Message: message}
	}
}
