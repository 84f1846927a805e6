package provider

import (
	"context"

	"github.com/devtayyabsajjad/groqchat/pkg/api"
)

// CompletionClient issues completion calls against an LLM backend.
//
// Complete receives a normalized chat request (all fields populated by
// validation) and performs exactly one call: no retry, no backoff. The
// context bounds the call; implementations apply their configured
// timeout when the caller has not set a deadline.
//
// Implementations must be safe for concurrent use by multiple goroutines.
type CompletionClient interface {
	// Name returns the backend identifier (e.g., "groq").
	Name() string

	// Complete performs a single synchronous completion call.
	Complete(ctx context.Context, req *api.ChatRequest) (*api.ChatResponse, error)

	// Close releases client resources.
	Close() error
}
