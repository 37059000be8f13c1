package llm

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentsmith/agentsmith/config"
)

func anthropicTestServer(t *testing.T, body string, capture *map[string]any) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/messages", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("x-api-key"))
		assert.Empty(t, r.Header.Get("Authorization"))
		assert.Equal(t, "2023-06-01", r.Header.Get("anthropic-version"))

		if capture != nil {
			raw, err := io.ReadAll(r.Body)
			require.NoError(t, err)
			require.NoError(t, json.Unmarshal(raw, capture))
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
}

func anthropicMessagesResponse(text string) string {
	raw, _ := json.Marshal(map[string]any{
		"model":       "claude-3-5-sonnet-20240620",
		"stop_reason": "end_turn",
		"content":     []map[string]any{{"type": "text", "text": text}},
		"usage":       map[string]any{"input_tokens": 10, "output_tokens": 5},
	})
	return string(raw)
}

func newTestAnthropicAdapter(serverURL string, cfg ModelConfig) *AnthropicAdapter {
	gw := config.GatewayConfig{BaseURL: serverURL, APIKey: "test-key", Model: "claude-3-5-sonnet-20240620"}
	return NewAnthropicAdapter(gw, cfg)
}

func TestAnthropicGenerateSimple(t *testing.T) {
	var captured map[string]any
	server := anthropicTestServer(t, anthropicMessagesResponse("hello"), &captured)
	defer server.Close()

	adapter := newTestAnthropicAdapter(server.URL, ModelConfig{})
	result, err := adapter.Generate(context.Background(), SimplePrompt("be brief", "say hello"))
	require.NoError(t, err)

	assert.Equal(t, "hello", result.Message)
	assert.Equal(t, ResultText, result.Kind)

	// System text rides the top-level field, not the messages array.
	assert.Equal(t, "be brief", captured["system"])
	messages := captured["messages"].([]any)
	require.Len(t, messages, 1)
	user := messages[0].(map[string]any)
	assert.Equal(t, "user", user["role"])
	content := user["content"].([]any)[0].(map[string]any)
	assert.Equal(t, "text", content["type"])
	assert.Equal(t, "say hello", content["text"])

	assert.Equal(t, 500.0, captured["max_tokens"])
	assert.Equal(t, 1.0, captured["temperature"])
	assert.Equal(t, 1.0, captured["top_p"])
	assert.Equal(t, false, captured["stream"])
}

func TestAnthropicGenerateVersionOverride(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "2024-10-22", r.Header.Get("anthropic-version"))
		_, _ = w.Write([]byte(anthropicMessagesResponse("ok")))
	}))
	defer server.Close()

	version := "2024-10-22"
	adapter := newTestAnthropicAdapter(server.URL, ModelConfig{Version: &version})
	_, err := adapter.Generate(context.Background(), SimplePrompt("s", "u"))
	require.NoError(t, err)
}

func TestAnthropicGenerateMessageHistory(t *testing.T) {
	var captured map[string]any
	server := anthropicTestServer(t, anthropicMessagesResponse("ok"), &captured)
	defer server.Close()

	adapter := newTestAnthropicAdapter(server.URL, ModelConfig{})
	prompt := MessagesPrompt("base rules", []PromptMessage{
		SystemMessage("extra rules"),
		UserTextMessage("question"),
		AssistantMessage(TextPart("answer")),
		ToolMessage("get_weather", "72F", "sunny"),
	})
	_, err := adapter.Generate(context.Background(), prompt)
	require.NoError(t, err)

	// In-history system entries fold into the system field.
	assert.Equal(t, "base rules\n\nextra rules", captured["system"])

	messages := captured["messages"].([]any)
	require.Len(t, messages, 3)
	assert.Equal(t, "user", messages[0].(map[string]any)["role"])
	assert.Equal(t, "assistant", messages[1].(map[string]any)["role"])

	// Tool output lowers as a user text block.
	toolMsg := messages[2].(map[string]any)
	assert.Equal(t, "user", toolMsg["role"])
	toolContent := toolMsg["content"].([]any)[0].(map[string]any)
	assert.Equal(t, "72F\nsunny", toolContent["text"])
}

func TestAnthropicGenerateImagePart(t *testing.T) {
	var captured map[string]any
	server := anthropicTestServer(t, anthropicMessagesResponse("a cat"), &captured)
	defer server.Close()

	adapter := newTestAnthropicAdapter(server.URL, ModelConfig{})
	prompt := MessagesPrompt("s", []PromptMessage{
		UserMessage(TextPart("describe"), ImagePart("image/png", "https://example.com/cat.png")),
	})
	_, err := adapter.Generate(context.Background(), prompt)
	require.NoError(t, err)

	parts := captured["messages"].([]any)[0].(map[string]any)["content"].([]any)
	require.Len(t, parts, 2)
	img := parts[1].(map[string]any)
	assert.Equal(t, "image", img["type"])
	source := img["source"].(map[string]any)
	assert.Equal(t, "url", source["type"])
	assert.Equal(t, "image/png", source["media_type"])
	assert.Equal(t, "https://example.com/cat.png", source["url"])
}

func TestAnthropicGenerateToolsLowered(t *testing.T) {
	var captured map[string]any
	server := anthropicTestServer(t, anthropicMessagesResponse("ok"), &captured)
	defer server.Close()

	tool, err := NewTool("get_weather", "Get the weather",
		json.RawMessage(`{"type":"object","properties":{"city":{"type":"string"}}}`))
	require.NoError(t, err)

	disable := true
	adapter := newTestAnthropicAdapter(server.URL, ModelConfig{})
	prompt := SimplePrompt("s", "u").WithTools([]Tool{tool}, &ToolChoice{
		Mode:                   ToolChoiceRequired,
		DisableParallelToolUse: &disable,
	})
	_, err = adapter.Generate(context.Background(), prompt)
	require.NoError(t, err)

	tools := captured["tools"].([]any)
	require.Len(t, tools, 1)
	entry := tools[0].(map[string]any)
	assert.Equal(t, "get_weather", entry["name"])
	assert.Equal(t, "object", entry["input_schema"].(map[string]any)["type"])

	choice := captured["tool_choice"].(map[string]any)
	assert.Equal(t, "any", choice["type"])
	assert.Equal(t, true, choice["disable_parallel_tool_use"])
}

func TestAnthropicGenerateToolChoiceNamed(t *testing.T) {
	var captured map[string]any
	server := anthropicTestServer(t, anthropicMessagesResponse("ok"), &captured)
	defer server.Close()

	tool, _ := NewTool("get_weather", "d", json.RawMessage(`{}`))
	adapter := newTestAnthropicAdapter(server.URL, ModelConfig{})
	prompt := SimplePrompt("s", "u").WithTools([]Tool{tool}, &ToolChoice{Mode: ToolChoiceTool, Name: "get_weather"})
	_, err := adapter.Generate(context.Background(), prompt)
	require.NoError(t, err)

	choice := captured["tool_choice"].(map[string]any)
	assert.Equal(t, "tool", choice["type"])
	assert.Equal(t, "get_weather", choice["name"])
}

func TestAnthropicGenerateToolUseStopReasonStillText(t *testing.T) {
	// A tool_use stop reason does not change extraction: the first text block
	// is still returned as plain text.
	body := `{
		"stop_reason": "tool_use",
		"content": [
			{"type": "text", "text": "Let me check the weather."},
			{"type": "tool_use", "id": "toolu_1", "name": "get_weather", "input": {"city": "SF"}}
		]
	}`
	server := anthropicTestServer(t, body, nil)
	defer server.Close()

	adapter := newTestAnthropicAdapter(server.URL, ModelConfig{})
	result, err := adapter.Generate(context.Background(), SimplePrompt("s", "u"))
	require.NoError(t, err)

	assert.Equal(t, ResultText, result.Kind)
	assert.Equal(t, "Let me check the weather.", result.Message)
	assert.Empty(t, result.ToolCalls)
}

func TestAnthropicGenerateEmptyContent(t *testing.T) {
	server := anthropicTestServer(t, `{"content": [], "stop_reason": "end_turn"}`, nil)
	defer server.Close()

	adapter := newTestAnthropicAdapter(server.URL, ModelConfig{})
	result, err := adapter.Generate(context.Background(), SimplePrompt("s", "u"))
	require.NoError(t, err)

	assert.Equal(t, ResultError, result.Kind)
	assert.Equal(t, "No response received.", result.Message)
}

func TestAnthropicGenerateEmptyFirstText(t *testing.T) {
	server := anthropicTestServer(t, `{"content": [{"type": "text", "text": ""}]}`, nil)
	defer server.Close()

	adapter := newTestAnthropicAdapter(server.URL, ModelConfig{})
	result, err := adapter.Generate(context.Background(), SimplePrompt("s", "u"))
	require.NoError(t, err)

	assert.Equal(t, ResultError, result.Kind)
}

func TestAnthropicGenerateHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error": {"type": "rate_limit_error", "message": "Rate limited"}}`))
	}))
	defer server.Close()

	adapter := newTestAnthropicAdapter(server.URL, ModelConfig{})
	_, err := adapter.Generate(context.Background(), SimplePrompt("s", "u"))
	require.Error(t, err)

	var genErr *GenerationError
	require.ErrorAs(t, err, &genErr)
	assert.Equal(t, "anthropic", genErr.Provider)
	assert.Equal(t, http.StatusTooManyRequests, genErr.StatusCode)
	assert.Equal(t, "rate_limit_error", genErr.Code)
}
