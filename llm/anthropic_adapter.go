package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/agentsmith/agentsmith/config"
)

const anthropicDefaultVersion = "2023-06-01"

// AnthropicAdapter serves the Anthropic Messages API.
type AnthropicAdapter struct {
	gateway config.GatewayConfig
	cfg     ModelConfig
	client  *http.Client
}

// NewAnthropicAdapter creates an adapter for the Anthropic backend.
func NewAnthropicAdapter(gateway config.GatewayConfig, cfg ModelConfig) *AnthropicAdapter {
	return &AnthropicAdapter{
		gateway: gateway,
		cfg:     cfg,
		client:  newHTTPClient(),
	}
}

func (a *AnthropicAdapter) Name() string { return "anthropic" }

// Generate sends one Messages API request and normalizes the response.
func (a *AnthropicAdapter) Generate(ctx context.Context, prompt *Prompt) (*LLMResult, error) {
	baseURL := strOr(a.cfg.BaseURL, a.gateway.BaseURL)
	apiKey := strOr(a.cfg.APIKey, a.gateway.APIKey)
	model := a.cfg.Model
	if model == "" {
		model = a.gateway.Model
	}

	reqBody := anthropicRequestFromPrompt(model, a.cfg, prompt)

	header := http.Header{}
	header.Set("x-api-key", apiKey)
	header.Set("anthropic-version", strOr(a.cfg.Version, anthropicDefaultVersion))

	var resp anthropicResponse
	if err := postJSON(ctx, a.client, "anthropic", baseURL+"/v1/messages", header, reqBody, &resp); err != nil {
		return nil, err
	}
	return resultFromAnthropic(&resp), nil
}

// Wire format: Messages API request.

type anthropicRequest struct {
	Model       string               `json:"model"`
	System      string               `json:"system"`
	Messages    []anthropicMessage   `json:"messages"`
	MaxTokens   int                  `json:"max_tokens"`
	Temperature float64              `json:"temperature"`
	TopP        float64              `json:"top_p"`
	Stream      bool                 `json:"stream"`
	ToolChoice  *anthropicToolChoice `json:"tool_choice,omitempty"`
	Tools       []anthropicTool      `json:"tools,omitempty"`
}

type anthropicMessage struct {
	Role    string             `json:"role"`
	Content []anthropicContent `json:"content"`
}

type anthropicContent struct {
	Type   string           `json:"type"`
	Text   string           `json:"text,omitempty"`
	Source *anthropicSource `json:"source,omitempty"`
}

type anthropicSource struct {
	Type      string `json:"type"`
	MediaType string `json:"media_type,omitempty"`
	URL       string `json:"url,omitempty"`
}

type anthropicTool struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	InputSchema json.RawMessage `json:"input_schema"`
}

type anthropicToolChoice struct {
	Type                   string `json:"type"`
	Name                   string `json:"name,omitempty"`
	DisableParallelToolUse *bool  `json:"disable_parallel_tool_use,omitempty"`
}

const (
	anthropicDefaultTemperature = 1.0
	anthropicDefaultMaxTokens   = 500
	anthropicDefaultTopP        = 1.0
)

// anthropicRequestFromPrompt lowers the vendor-neutral prompt. The system
// text is a separate top-level field; the messages array carries user and
// assistant roles only. System entries inside a message history fold into the
// system field, and tool outputs lower as user text blocks. Assistant
// tool-call requests are not replayed to Anthropic.
func anthropicRequestFromPrompt(model string, cfg ModelConfig, prompt *Prompt) *anthropicRequest {
	req := &anthropicRequest{
		Model:       model,
		System:      prompt.System,
		MaxTokens:   intOr(cfg.MaxTokens, anthropicDefaultMaxTokens),
		Temperature: floatOr(cfg.Temperature, anthropicDefaultTemperature),
		TopP:        floatOr(cfg.TopP, anthropicDefaultTopP),
		Stream:      boolOr(cfg.Stream, false),
	}

	switch prompt.Kind {
	case PromptMessages:
		for _, msg := range prompt.Messages {
			switch msg.Role {
			case RoleSystem:
				if msg.Content != "" {
					req.System = req.System + "\n\n" + msg.Content
				}
			case RoleUser:
				req.Messages = append(req.Messages, anthropicMessage{
					Role:    "user",
					Content: anthropicContentParts(msg.Parts),
				})
			case RoleAssistant:
				req.Messages = append(req.Messages, anthropicMessage{
					Role:    "assistant",
					Content: anthropicContentParts(msg.Parts),
				})
			case RoleTool:
				req.Messages = append(req.Messages, anthropicMessage{
					Role:    "user",
					Content: []anthropicContent{{Type: "text", Text: strings.Join(msg.ToolContent, "\n")}},
				})
			}
		}
	default:
		req.Messages = []anthropicMessage{{
			Role:    "user",
			Content: []anthropicContent{{Type: "text", Text: prompt.User}},
		}}
	}

	applyAnthropicTools(req, prompt)
	return req
}

func anthropicContentParts(parts []ContentPart) []anthropicContent {
	out := make([]anthropicContent, 0, len(parts))
	for _, p := range parts {
		switch p.Kind {
		case ContentImage:
			out = append(out, anthropicContent{
				Type:   "image",
				Source: &anthropicSource{Type: "url", MediaType: p.ContentType, URL: p.URL},
			})
		default:
			out = append(out, anthropicContent{Type: "text", Text: p.Text})
		}
	}
	return out
}

func applyAnthropicTools(req *anthropicRequest, prompt *Prompt) {
	if len(prompt.Tools) == 0 {
		return
	}
	for _, t := range prompt.Tools {
		req.Tools = append(req.Tools, anthropicTool{
			Name:        t.Name,
			Description: t.Description,
			InputSchema: t.InputSchema,
		})
	}

	choice := prompt.effectiveToolChoice()
	if choice == nil {
		return
	}
	tc := &anthropicToolChoice{DisableParallelToolUse: choice.DisableParallelToolUse}
	switch choice.Mode {
	case ToolChoiceRequired:
		tc.Type = "any"
	case ToolChoiceTool:
		tc.Type = "tool"
		tc.Name = choice.Name
	default:
		tc.Type = "auto"
	}
	req.ToolChoice = tc
}

// Wire format: Messages API response.

type anthropicResponse struct {
	Content    []anthropicResponseContent `json:"content"`
	Model      string                     `json:"model"`
	StopReason string                     `json:"stop_reason"`
	Usage      anthropicUsage             `json:"usage"`
}

type anthropicResponseContent struct {
	Type  string          `json:"type"`
	Text  string          `json:"text,omitempty"`
	ID    string          `json:"id,omitempty"`
	Name  string          `json:"name,omitempty"`
	Input json.RawMessage `json:"input,omitempty"`
}

type anthropicUsage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
}

// resultFromAnthropic normalizes a Messages API response. Every stop_reason,
// including "tool_use", currently maps to plain text extraction from the
// first content block.
// TODO: surface "tool_use" content blocks as LLMResult.ToolCalls instead of
// discarding them.
func resultFromAnthropic(resp *anthropicResponse) *LLMResult {
	if len(resp.Content) == 0 {
		return errorResult()
	}
	first := resp.Content[0]
	if first.Text == "" {
		return errorResult()
	}
	return textResult(first.Text)
}
