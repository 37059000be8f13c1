package llm

// ResultKind classifies an LLMResult.
type ResultKind string

const (
	// ResultText marks a response carrying usable content.
	ResultText ResultKind = "text"
	// ResultError marks a degenerate response: the call succeeded but the
	// backend returned nothing usable.
	ResultError ResultKind = "error"
)

// noResponseMessage is the sentinel placed in LLMResult.Message when a backend
// response carries no usable content.
const noResponseMessage = "No response received."

// ToolCall is a model-requested tool invocation extracted from a backend
// response. Input holds the decoded JSON value of the vendor's arguments
// string.
type ToolCall struct {
	ID    string `json:"id"`
	Type  string `json:"type"`
	Name  string `json:"name"`
	Input any    `json:"input"`
}

// LLMResult is the vendor-neutral generation response.
type LLMResult struct {
	Message   string     `json:"message"`
	Kind      ResultKind `json:"result"`
	ToolCalls []ToolCall `json:"tool_calls"`
}

// textResult creates a successful LLMResult carrying message text.
func textResult(message string) *LLMResult {
	return &LLMResult{Message: message, Kind: ResultText}
}

// errorResult creates the degenerate no-content result. It is a successful
// return value, distinguishable from a failed call, so callers can tell "no
// content but call succeeded" from "call failed outright".
func errorResult() *LLMResult {
	return &LLMResult{Message: noResponseMessage, Kind: ResultError}
}
