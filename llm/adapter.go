package llm

import "context"

// Adapter is the uniform dispatch contract implemented by every provider
// backend. Generate issues exactly one outbound request per call; there are
// no internal retries and no partial recovery.
type Adapter interface {
	// Name returns the provider key (e.g. "openai", "anthropic").
	Name() string

	// Generate lowers the prompt into the vendor wire format, executes the
	// call, and raises the vendor response into an LLMResult.
	Generate(ctx context.Context, prompt *Prompt) (*LLMResult, error)
}

// ModelConfig carries per-call configuration. Pointer fields are optional
// overrides; absent values fall back to the adapter's gateway configuration
// and then to vendor defaults. Immutable after construction.
type ModelConfig struct {
	BaseURL     *string  `json:"base_url,omitempty"`
	APIKey      *string  `json:"api_key,omitempty"`
	Version     *string  `json:"version,omitempty"`
	Model       string   `json:"model"`
	Stream      *bool    `json:"stream,omitempty"`
	Temperature *float64 `json:"temperature,omitempty"`
	MaxTokens   *int     `json:"max_tokens,omitempty"`
	Seed        *int     `json:"seed,omitempty"`
	TopP        *float64 `json:"top_p,omitempty"`
}

func strOr(p *string, def string) string {
	if p != nil && *p != "" {
		return *p
	}
	return def
}

func boolOr(p *bool, def bool) bool {
	if p != nil {
		return *p
	}
	return def
}

func intOr(p *int, def int) int {
	if p != nil {
		return *p
	}
	return def
}

func floatOr(p *float64, def float64) float64 {
	if p != nil {
		return *p
	}
	return def
}
