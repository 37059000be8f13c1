package llm

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// GenerateFunc is the downstream handler a Middleware wraps.
type GenerateFunc func(ctx context.Context, prompt *Prompt) (*LLMResult, error)

// Call carries the metadata of one dispatch through the middleware chain.
// Prompt tracks the prompt as it flows inward: a middleware that passes a
// rewritten prompt to next is what deeper middleware and the adapter see.
type Call struct {
	ID       string
	Provider string
	Model    string
	Prompt   *Prompt
}

// Middleware wraps a generation call. It receives the call metadata and a
// next function invoking the downstream handler.
type Middleware func(ctx context.Context, call *Call, next GenerateFunc) (*LLMResult, error)

// Gateway is the dispatch facade: it resolves a provider key to an adapter
// through the factory and invokes it through registered middleware, giving
// calling code one call shape for every backend.
type Gateway struct {
	factory    *Factory
	middleware []Middleware
}

// GatewayOption configures a Gateway.
type GatewayOption func(*Gateway)

// WithMiddleware registers middleware; the first registered runs first.
func WithMiddleware(mw ...Middleware) GatewayOption {
	return func(g *Gateway) {
		g.middleware = append(g.middleware, mw...)
	}
}

// NewGateway creates a Gateway dispatching through the given factory.
func NewGateway(factory *Factory, opts ...GatewayOption) *Gateway {
	g := &Gateway{factory: factory}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate dispatches one prompt to the named provider. An empty provider
// key falls back to catalog inference from the configured model.
func (g *Gateway) Generate(ctx context.Context, provider string, cfg ModelConfig, prompt *Prompt) (*LLMResult, error) {
	if provider == "" {
		if info := GetModelInfo(cfg.Model); info != nil {
			provider = info.Provider
		}
	}
	if provider == "" {
		return nil, &FactoryError{
			GatewayError: GatewayError{Message: "no provider specified and model not in catalog"},
		}
	}

	adapter, err := g.factory.Instance(provider, cfg)
	if err != nil {
		return nil, err
	}

	call := &Call{
		ID:       uuid.NewString(),
		Provider: adapter.Name(),
		Model:    cfg.Model,
		Prompt:   prompt,
	}

	handler := adapter.Generate
	// Wrap in reverse order so the first registered middleware runs first.
	// Each wrapper records the prompt it was handed on the call, so a prompt
	// rewritten by an outer middleware is what the rest of the chain and the
	// adapter see.
	for i := len(g.middleware) - 1; i >= 0; i-- {
		mw := g.middleware[i]
		next := handler
		handler = func(ctx context.Context, p *Prompt) (*LLMResult, error) {
			call.Prompt = p
			return mw(ctx, call, next)
		}
	}

	return handler(ctx, prompt)
}

// LoggingMiddleware logs every dispatch with its call ID, provider, model,
// duration, and outcome.
func LoggingMiddleware(logger *slog.Logger) Middleware {
	return func(ctx context.Context, call *Call, next GenerateFunc) (*LLMResult, error) {
		start := time.Now()
		result, err := next(ctx, call.Prompt)
		attrs := []any{
			"call_id", call.ID,
			"provider", call.Provider,
			"model", call.Model,
			"duration", time.Since(start),
		}
		if err != nil {
			logger.ErrorContext(ctx, "generate failed", append(attrs, "err", err)...)
			return nil, err
		}
		logger.InfoContext(ctx, "generate",
			append(attrs, "result", string(result.Kind), "tool_calls", len(result.ToolCalls))...)
		return result, nil
	}
}
