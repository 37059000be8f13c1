package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"
)

const userAgent = "AgentSmith Framework"

// newHTTPClient creates the shared HTTP client for an adapter. Only the
// connection-establishment timeout is bounded; there is no per-request
// deadline beyond what the caller's context imposes. http.Client is safe for
// concurrent use, so adapters share it without locking.
func newHTTPClient() *http.Client {
	return &http.Client{
		Transport: &http.Transport{
			DialContext: (&net.Dialer{
				Timeout: 60 * time.Second,
			}).DialContext,
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
		},
	}
}

// postJSON issues one POST carrying in as JSON and decodes a 2xx response
// body into out. Every failure mode surfaces as a *GenerationError tagged
// with the provider name.
func postJSON(ctx context.Context, client *http.Client, provider, url string, header http.Header, in, out any) error {
	payload, err := json.Marshal(in)
	if err != nil {
		return newGenerationError(provider, "failed to encode request body", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return newGenerationError(provider, "failed to create request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", userAgent)
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Set(k, v)
		}
	}

	resp, err := client.Do(req)
	if err != nil {
		return newGenerationError(provider, "request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return errorFromResponse(provider, resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return newGenerationError(provider, "failed to decode response body", err)
	}
	return nil
}

// errorFromResponse builds a GenerationError from a non-2xx response,
// extracting the vendor failure code and message where the body matches a
// known vendor error shape.
func errorFromResponse(provider string, resp *http.Response) error {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		ge := newGenerationError(provider, "failed to read error response body", err)
		ge.StatusCode = resp.StatusCode
		return ge
	}

	var message, code string
	var envelope struct {
		Error struct {
			Message string `json:"message"`
			Type    string `json:"type"`
			Code    any    `json:"code"`
			Status  string `json:"status"`
		} `json:"error"`
	}
	if jsonErr := json.Unmarshal(body, &envelope); jsonErr == nil {
		message = envelope.Error.Message
		switch {
		case envelope.Error.Type != "":
			code = envelope.Error.Type
		case envelope.Error.Status != "":
			code = envelope.Error.Status
		case envelope.Error.Code != nil:
			code = fmt.Sprint(envelope.Error.Code)
		}
	}
	if message == "" {
		message = fmt.Sprintf("HTTP %d: %s", resp.StatusCode, string(body))
	}

	ge := newGenerationError(provider, message, nil)
	ge.StatusCode = resp.StatusCode
	ge.Code = code
	return ge
}
