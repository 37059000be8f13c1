package llm

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/agentsmith/agentsmith/config"
)

// GeminiAdapter serves the Gemini generateContent API. Only simple prompts
// are supported: the system and user texts are concatenated into one text
// part. Message histories and tools are not supported by this backend.
type GeminiAdapter struct {
	gateway config.GatewayConfig
	cfg     ModelConfig
	client  *http.Client
}

// NewGeminiAdapter creates an adapter for the Gemini backend.
func NewGeminiAdapter(gateway config.GatewayConfig, cfg ModelConfig) *GeminiAdapter {
	return &GeminiAdapter{
		gateway: gateway,
		cfg:     cfg,
		client:  newHTTPClient(),
	}
}

func (a *GeminiAdapter) Name() string { return "gemini" }

// Generate sends one generateContent request and normalizes the response.
// A messages prompt is rejected before anything is sent.
func (a *GeminiAdapter) Generate(ctx context.Context, prompt *Prompt) (*LLMResult, error) {
	if prompt.Kind == PromptMessages {
		return nil, newGenerationError("gemini", "message histories are not supported", nil)
	}

	baseURL := strOr(a.cfg.BaseURL, a.gateway.BaseURL)
	apiKey := strOr(a.cfg.APIKey, a.gateway.APIKey)
	model := a.cfg.Model
	if model == "" {
		model = a.gateway.Model
	}

	reqBody := &geminiRequest{
		Contents: []geminiContent{{
			Parts: []geminiPart{{
				Text: fmt.Sprintf("\n%s\n%s\n", prompt.System, prompt.User),
			}},
		}},
	}

	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s",
		baseURL, url.PathEscape(model), url.QueryEscape(apiKey))

	var resp geminiResponse
	if err := postJSON(ctx, a.client, "gemini", endpoint, nil, reqBody, &resp); err != nil {
		return nil, err
	}
	return resultFromGemini(&resp), nil
}

// Wire format: generateContent request and response.

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiResponse struct {
	Candidates    []geminiCandidate `json:"candidates"`
	UsageMetadata geminiUsage       `json:"usageMetadata"`
}

type geminiCandidate struct {
	Content      geminiContent `json:"content"`
	FinishReason string        `json:"finishReason"`
	Index        int           `json:"index"`
}

type geminiUsage struct {
	PromptTokenCount     int64 `json:"promptTokenCount"`
	CandidatesTokenCount int64 `json:"candidatesTokenCount"`
	TotalTokenCount      int64 `json:"totalTokenCount"`
}

// resultFromGemini takes the first candidate's first text part; anything
// short of that yields the degenerate no-content result.
func resultFromGemini(resp *geminiResponse) *LLMResult {
	if len(resp.Candidates) == 0 {
		return errorResult()
	}
	parts := resp.Candidates[0].Content.Parts
	if len(parts) == 0 || parts[0].Text == "" {
		return errorResult()
	}
	return textResult(parts[0].Text)
}
