// Package config loads the gateway registry: per-provider base URL,
// credentials, and default model. Configuration is read once at process start
// and never mutated afterwards.
package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
)

// GatewayConfig holds one provider gateway's connection settings.
type GatewayConfig struct {
	BaseURL string `json:"baseurl"`
	APIKey  string `json:"apiKey"`
	Model   string `json:"model"`
}

// GatewaysConfig is the named registry of gateway configurations.
type GatewaysConfig struct {
	Registry map[string]GatewayConfig `json:"registry"`
}

// Config is the process configuration relevant to the gateway.
type Config struct {
	Gateways GatewaysConfig `json:"gateways"`
}

// root mirrors the config file's outer envelope.
type root struct {
	Config Config `json:"config"`
}

// envOverrides lets API keys come from the environment instead of the file.
type envOverrides struct {
	Anthropic   string `env:"ANTHROPIC_API_KEY"`
	Cerebras    string `env:"CEREBRAS_API_KEY"`
	Gemini      string `env:"GEMINI_API_KEY"`
	Groq        string `env:"GROQ_API_KEY"`
	HuggingFace string `env:"HUGGINGFACE_API_KEY"`
	OpenAI      string `env:"OPENAI_API_KEY"`
}

// Read loads a JSON config file and applies environment overrides.
func Read(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	var r root
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	cfg := r.Config
	if cfg.Gateways.Registry == nil {
		cfg.Gateways.Registry = map[string]GatewayConfig{}
	}
	if err := applyEnv(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Gateway looks up a gateway configuration by registry name
// (e.g. "openai_gateway").
func (c *Config) Gateway(name string) (GatewayConfig, bool) {
	gw, ok := c.Gateways.Registry[name]
	return gw, ok
}

func applyEnv(cfg *Config) error {
	var o envOverrides
	if err := env.Parse(&o); err != nil {
		return fmt.Errorf("parse environment overrides: %w", err)
	}

	overrides := map[string]string{
		"anthropic_gateway":   o.Anthropic,
		"cerebras_gateway":    o.Cerebras,
		"gemini_gateway":      o.Gemini,
		"groq_gateway":        o.Groq,
		"huggingface_gateway": o.HuggingFace,
		"openai_gateway":      o.OpenAI,
	}
	for name, key := range overrides {
		if key == "" {
			continue
		}
		gw, ok := cfg.Gateways.Registry[name]
		if !ok {
			continue
		}
		gw.APIKey = key
		cfg.Gateways.Registry[name] = gw
	}
	return nil
}
