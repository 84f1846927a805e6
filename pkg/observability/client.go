package observability

import (
	"context"
	"errors"
	"time"

	"github.com/devtayyabsajjad/groqchat/pkg/api"
	"github.com/devtayyabsajjad/groqchat/pkg/provider"
)

// InstrumentClient wraps a CompletionClient so every completion call is
// recorded in the provider metrics: request count by outcome, latency,
// and token usage.
func InstrumentClient(inner provider.CompletionClient) provider.CompletionClient {
	return &instrumentedClient{inner: inner}
}

type instrumentedClient struct {
	inner provider.CompletionClient
}

func (c *instrumentedClient) Name() string { return c.inner.Name() }

func (c *instrumentedClient) Complete(ctx context.Context, req *api.ChatRequest) (*api.ChatResponse, error) {
	start := time.Now()
	resp, err := c.inner.Complete(ctx, req)

	name := c.inner.Name()
	ProviderRequestsTotal.WithLabelValues(name, req.Model, outcomeLabel(err)).Inc()
	ProviderLatency.WithLabelValues(name, req.Model).Observe(time.Since(start).Seconds())
	if resp != nil {
		TokensUsedTotal.WithLabelValues(name, req.Model).Add(float64(resp.TokensUsed))
	}

	return resp, err
}

func (c *instrumentedClient) Close() error { return c.inner.Close() }

// outcomeLabel classifies a completion result for the status label.
func outcomeLabel(err error) string {
	switch {
	case err == nil:
		return "ok"
	case isType[*provider.AuthError](err):
		return "auth_error"
	case isType[*provider.RequestError](err):
		return "request_error"
	case isType[*provider.UnavailableError](err):
		return "unavailable"
	default:
		return "error"
	}
}

func isType[T error](err error) bool {
	var target T
	return errors.As(err, &target)
}
