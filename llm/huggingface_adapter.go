package llm

import (
	"context"

	"github.com/agentsmith/agentsmith/config"
)

// HuggingFaceAdapter is an unimplemented backend. It satisfies the Adapter
// contract by returning a fixed placeholder result without any network I/O.
type HuggingFaceAdapter struct {
	gateway config.GatewayConfig
	cfg     ModelConfig
}

// NewHuggingFaceAdapter creates the stub Hugging Face adapter.
func NewHuggingFaceAdapter(gateway config.GatewayConfig, cfg ModelConfig) *HuggingFaceAdapter {
	return &HuggingFaceAdapter{gateway: gateway, cfg: cfg}
}

func (a *HuggingFaceAdapter) Name() string { return "huggingface" }

// Generate always returns the fixed placeholder result.
func (a *HuggingFaceAdapter) Generate(ctx context.Context, prompt *Prompt) (*LLMResult, error) {
	return textResult("Static!"), nil
}
