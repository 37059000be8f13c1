package llm

// ModelInfo describes a known model in the catalog.
type ModelInfo struct {
	ID            string   `json:"id"`
	Provider      string   `json:"provider"`
	DisplayName   string   `json:"display_name"`
	ContextWindow int      `json:"context_window"`
	SupportsTools bool     `json:"supports_tools"`
	Aliases       []string `json:"aliases,omitempty"`
}

// Models is the built-in model catalog.
var Models = []ModelInfo{
	{
		ID: "claude-3-5-sonnet-20240620", Provider: "anthropic", DisplayName: "Claude 3.5 Sonnet",
		ContextWindow: 200000, SupportsTools: true,
		Aliases: []string{"claude-3-5-sonnet"},
	},
	{
		ID: "llama3.1-8b", Provider: "cerebras", DisplayName: "Llama 3.1 8B (Cerebras)",
		ContextWindow: 8192,
	},
	{
		ID: "gemini-pro", Provider: "gemini", DisplayName: "Gemini Pro",
		ContextWindow: 32768,
	},
	{
		ID: "llama-3.1-8b-instant", Provider: "groq", DisplayName: "Llama 3.1 8B Instant",
		ContextWindow: 131072, SupportsTools: true,
	},
	{
		ID: "gpt-4o", Provider: "openai", DisplayName: "GPT-4o",
		ContextWindow: 128000, SupportsTools: true,
	},
	{
		ID: "gpt-4o-mini", Provider: "openai", DisplayName: "GPT-4o mini",
		ContextWindow: 128000, SupportsTools: true,
	},
}

// GetModelInfo returns the catalog entry for a model ID or alias, or nil if
// unknown.
func GetModelInfo(modelID string) *ModelInfo {
	for i := range Models {
		if Models[i].ID == modelID {
			return &Models[i]
		}
		for _, alias := range Models[i].Aliases {
			if alias == modelID {
				return &Models[i]
			}
		}
	}
	return nil
}

// ListModels returns all known models, optionally filtered by provider.
func ListModels(provider string) []ModelInfo {
	if provider == "" {
		result := make([]ModelInfo, len(Models))
		copy(result, Models)
		return result
	}
	var result []ModelInfo
	for _, m := range Models {
		if m.Provider == provider {
			result = append(result, m)
		}
	}
	return result
}
