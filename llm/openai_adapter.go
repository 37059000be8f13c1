package llm

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/agentsmith/agentsmith/config"
)

// OpenAIAdapter serves the OpenAI-compatible chat completions family. OpenAI,
// Groq, and Cerebras share one wire format and differ only in provider name
// and gateway configuration.
type OpenAIAdapter struct {
	name    string
	gateway config.GatewayConfig
	cfg     ModelConfig
	client  *http.Client
}

// NewOpenAIAdapter creates an adapter for the OpenAI backend.
func NewOpenAIAdapter(gateway config.GatewayConfig, cfg ModelConfig) *OpenAIAdapter {
	return newOpenAICompatible("openai", gateway, cfg)
}

// NewGroqAdapter creates an adapter for the Groq backend.
func NewGroqAdapter(gateway config.GatewayConfig, cfg ModelConfig) *OpenAIAdapter {
	return newOpenAICompatible("groq", gateway, cfg)
}

// NewCerebrasAdapter creates an adapter for the Cerebras backend.
func NewCerebrasAdapter(gateway config.GatewayConfig, cfg ModelConfig) *OpenAIAdapter {
	return newOpenAICompatible("cerebras", gateway, cfg)
}

func newOpenAICompatible(name string, gateway config.GatewayConfig, cfg ModelConfig) *OpenAIAdapter {
	return &OpenAIAdapter{
		name:    name,
		gateway: gateway,
		cfg:     cfg,
		client:  newHTTPClient(),
	}
}

func (a *OpenAIAdapter) Name() string { return a.name }

// Generate sends one chat completion request and normalizes the response.
func (a *OpenAIAdapter) Generate(ctx context.Context, prompt *Prompt) (*LLMResult, error) {
	baseURL := strOr(a.cfg.BaseURL, a.gateway.BaseURL)
	apiKey := strOr(a.cfg.APIKey, a.gateway.APIKey)
	model := a.cfg.Model
	if model == "" {
		model = a.gateway.Model
	}

	reqBody := openAIRequestFromPrompt(model, a.cfg, prompt)

	header := http.Header{}
	header.Set("Authorization", "Bearer "+apiKey)

	var resp openAIResponse
	if err := postJSON(ctx, a.client, a.name, baseURL+"/v1/chat/completions", header, reqBody, &resp); err != nil {
		return nil, err
	}
	return resultFromOpenAI(&resp)
}

// Wire format: chat completions request.

type openAIRequest struct {
	Model             string          `json:"model"`
	Stream            bool            `json:"stream"`
	Messages          []openAIMessage `json:"messages"`
	Temperature       float64         `json:"temperature"`
	MaxTokens         int             `json:"max_tokens"`
	Seed              int             `json:"seed"`
	TopP              float64         `json:"top_p"`
	ToolChoice        any             `json:"tool_choice,omitempty"`
	Tools             []openAITool    `json:"tools,omitempty"`
	ParallelToolCalls *bool           `json:"parallel_tool_calls,omitempty"`
}

// openAIMessage covers every role: Content is a plain string for system
// messages, []openAIContentPart for user and assistant messages, and
// []string for tool messages.
type openAIMessage struct {
	Role      string                 `json:"role"`
	Content   any                    `json:"content,omitempty"`
	Name      string                 `json:"name,omitempty"`
	ToolCalls *openAIRequestToolCall `json:"tool_calls,omitempty"`
}

type openAIContentPart struct {
	Type     string          `json:"type"`
	Text     string          `json:"text,omitempty"`
	ImageURL *openAIImageURL `json:"image_url,omitempty"`
}

type openAIImageURL struct {
	URL string `json:"url"`
}

type openAIRequestToolCall struct {
	ID       string          `json:"id"`
	Type     string          `json:"type"`
	Function json.RawMessage `json:"function"`
}

type openAITool struct {
	Type     string             `json:"type"`
	Function openAIToolFunction `json:"function"`
}

type openAIToolFunction struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Parameters  json.RawMessage `json:"parameters"`
}

type openAIToolChoiceFunction struct {
	Type     string               `json:"type"`
	Function openAIToolChoiceName `json:"function"`
}

type openAIToolChoiceName struct {
	Name string `json:"name"`
}

// Vendor defaults applied when the per-call configuration is silent.
const (
	openAIDefaultTemperature = 1.0
	openAIDefaultMaxTokens   = 500
	openAIDefaultSeed        = 0
	openAIDefaultTopP        = 1.0
)

// openAIRequestFromPrompt lowers the vendor-neutral prompt into the chat
// completions shape. A simple prompt becomes exactly two messages, system
// then user; a message history is preceded by one system entry and then
// carried over in conversation order.
func openAIRequestFromPrompt(model string, cfg ModelConfig, prompt *Prompt) *openAIRequest {
	req := &openAIRequest{
		Model:       model,
		Stream:      boolOr(cfg.Stream, false),
		Temperature: floatOr(cfg.Temperature, openAIDefaultTemperature),
		MaxTokens:   intOr(cfg.MaxTokens, openAIDefaultMaxTokens),
		Seed:        intOr(cfg.Seed, openAIDefaultSeed),
		TopP:        floatOr(cfg.TopP, openAIDefaultTopP),
	}

	switch prompt.Kind {
	case PromptMessages:
		req.Messages = append(req.Messages, openAIMessage{Role: "system", Content: prompt.System})
		for _, msg := range prompt.Messages {
			req.Messages = append(req.Messages, openAIMessageFromPrompt(msg))
		}
	default:
		req.Messages = []openAIMessage{
			{Role: "system", Content: prompt.System},
			{Role: "user", Content: []openAIContentPart{{Type: "text", Text: prompt.User}}},
		}
	}

	applyOpenAITools(req, prompt)
	return req
}

func openAIMessageFromPrompt(msg PromptMessage) openAIMessage {
	switch msg.Role {
	case RoleUser:
		return openAIMessage{Role: "user", Content: openAIContentParts(msg.Parts), Name: msg.Name}
	case RoleAssistant:
		out := openAIMessage{Role: "assistant", Name: msg.Name}
		if len(msg.Parts) > 0 {
			out.Content = openAIContentParts(msg.Parts)
		}
		if msg.ToolCalls != nil {
			out.ToolCalls = &openAIRequestToolCall{
				ID:       msg.ToolCalls.ID,
				Type:     msg.ToolCalls.Type,
				Function: msg.ToolCalls.Function,
			}
		}
		return out
	case RoleTool:
		return openAIMessage{Role: "tool", Content: msg.ToolContent, Name: msg.Name}
	default:
		return openAIMessage{Role: "system", Content: msg.Content, Name: msg.Name}
	}
}

func openAIContentParts(parts []ContentPart) []openAIContentPart {
	out := make([]openAIContentPart, 0, len(parts))
	for _, p := range parts {
		switch p.Kind {
		case ContentImage:
			out = append(out, openAIContentPart{Type: "image_url", ImageURL: &openAIImageURL{URL: p.URL}})
		default:
			out = append(out, openAIContentPart{Type: "text", Text: p.Text})
		}
	}
	return out
}

// applyOpenAITools lowers tool declarations and the tool-choice policy. Auto
// leaves tool_choice unset (the vendor default), required becomes the string
// "required", and a named tool becomes a function selector. The neutral
// disable-parallel flag inverts into the vendor's parallel_tool_calls.
func applyOpenAITools(req *openAIRequest, prompt *Prompt) {
	if len(prompt.Tools) == 0 {
		return
	}
	for _, t := range prompt.Tools {
		req.Tools = append(req.Tools, openAITool{
			Type: "function",
			Function: openAIToolFunction{
				Name:        t.Name,
				Description: t.Description,
				Parameters:  t.InputSchema,
			},
		})
	}

	choice := prompt.effectiveToolChoice()
	if choice == nil {
		return
	}
	if choice.DisableParallelToolUse != nil {
		allow := !*choice.DisableParallelToolUse
		req.ParallelToolCalls = &allow
	}
	switch choice.Mode {
	case ToolChoiceRequired:
		req.ToolChoice = "required"
	case ToolChoiceTool:
		req.ToolChoice = openAIToolChoiceFunction{
			Type:     "function",
			Function: openAIToolChoiceName{Name: choice.Name},
		}
	}
}

// Wire format: chat completions response.

type openAIResponse struct {
	ID                string         `json:"id"`
	Choices           []openAIChoice `json:"choices"`
	Created           int64          `json:"created"`
	Model             string         `json:"model"`
	SystemFingerprint string         `json:"system_fingerprint"`
	Object            string         `json:"object"`
	Usage             openAIUsage    `json:"usage"`
}

type openAIChoice struct {
	FinishReason string              `json:"finish_reason"`
	Index        int                 `json:"index"`
	Message      openAIChoiceMessage `json:"message"`
}

type openAIChoiceMessage struct {
	Content   *string               `json:"content"`
	Role      string                `json:"role"`
	ToolCalls []openAIToolCallEntry `json:"tool_calls"`
}

type openAIToolCallEntry struct {
	ID       string                  `json:"id"`
	Type     string                  `json:"type"`
	Function *openAIToolCallFunction `json:"function"`
}

type openAIToolCallFunction struct {
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

type openAIUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// resultFromOpenAI normalizes a chat completions response. Only the first
// choice is considered; a response with no choices, or a first choice with
// neither text nor tool calls, yields the degenerate no-content result.
func resultFromOpenAI(resp *openAIResponse) (*LLMResult, error) {
	if len(resp.Choices) == 0 {
		return errorResult(), nil
	}
	msg := resp.Choices[0].Message

	calls, err := parseToolCalls(msg.ToolCalls)
	if err != nil {
		return nil, err
	}

	var text string
	if msg.Content != nil {
		text = *msg.Content
	}
	if text == "" && len(calls) == 0 {
		return errorResult(), nil
	}

	result := textResult(text)
	result.ToolCalls = calls
	return result, nil
}

// parseToolCalls extracts tool invocations from a vendor tool_calls array.
// Entries missing a function name or an arguments string are dropped;
// arguments that are present but not valid JSON fail the whole call.
func parseToolCalls(entries []openAIToolCallEntry) ([]ToolCall, error) {
	var calls []ToolCall
	for _, e := range entries {
		if e.Function == nil || e.Function.Name == "" || e.Function.Arguments == "" {
			continue
		}
		var input any
		if err := json.Unmarshal([]byte(e.Function.Arguments), &input); err != nil {
			return nil, &ToolArgumentError{
				GatewayError: GatewayError{Message: "malformed tool call arguments", Cause: err},
				ToolName:     e.Function.Name,
			}
		}
		calls = append(calls, ToolCall{ID: e.ID, Type: e.Type, Name: e.Function.Name, Input: input})
	}
	return calls, nil
}
