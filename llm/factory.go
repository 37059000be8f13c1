package llm

import (
	"sync"

	"github.com/agentsmith/agentsmith/config"
)

// Factory maps provider keys to live adapter instances. Instances are
// constructed lazily on first request and cached for the life of the
// process; there is no eviction. The factory is an injected dependency, not
// a global.
type Factory struct {
	cfg      *config.Config
	mu       sync.Mutex
	registry map[string]Adapter
}

// NewFactory creates a Factory backed by the given configuration.
func NewFactory(cfg *config.Config) *Factory {
	return &Factory{
		cfg:      cfg,
		registry: make(map[string]Adapter),
	}
}

// Instance returns the adapter for a provider key, constructing and caching
// it on first use. Lookup-or-construct is atomic under the factory lock,
// which is never held across I/O.
//
// The cache is keyed on the provider key alone: a later call with a
// different ModelConfig returns the instance built from the first call's
// configuration.
func (f *Factory) Instance(key string, cfg ModelConfig) (Adapter, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if adapter, ok := f.registry[key]; ok {
		return adapter, nil
	}

	switch key {
	case "anthropic", "cerebras", "gemini", "groq", "huggingface", "openai":
	default:
		return nil, &FactoryError{
			GatewayError: GatewayError{Message: "unknown provider"},
			Key:          key,
		}
	}

	gateway, ok := f.cfg.Gateway(key + "_gateway")
	if !ok {
		return nil, &FactoryError{
			GatewayError: GatewayError{Message: "no gateway configured"},
			Key:          key,
		}
	}

	var adapter Adapter
	switch key {
	case "anthropic":
		adapter = NewAnthropicAdapter(gateway, cfg)
	case "cerebras":
		adapter = NewCerebrasAdapter(gateway, cfg)
	case "gemini":
		adapter = NewGeminiAdapter(gateway, cfg)
	case "groq":
		adapter = NewGroqAdapter(gateway, cfg)
	case "huggingface":
		adapter = NewHuggingFaceAdapter(gateway, cfg)
	case "openai":
		adapter = NewOpenAIAdapter(gateway, cfg)
	}

	f.registry[key] = adapter
	return adapter, nil
}
