package llm

import (
	"encoding/json"
	"fmt"
)

// PromptKind is the discriminator tag for Prompt.
type PromptKind string

const (
	// PromptSimple is a single system+user pair.
	PromptSimple PromptKind = "simple"
	// PromptMessages is a full conversation history.
	PromptMessages PromptKind = "messages"
)

// MessageRole identifies who produced a message in a conversation.
type MessageRole string

const (
	RoleSystem    MessageRole = "system"
	RoleUser      MessageRole = "user"
	RoleAssistant MessageRole = "assistant"
	RoleTool      MessageRole = "tool"
)

// ContentKind is the discriminator tag for ContentPart.
type ContentKind string

const (
	ContentText  ContentKind = "text"
	ContentImage ContentKind = "image"
)

// ContentPart is one part of a user or assistant message. A part list may mix
// kinds in any order.
type ContentPart struct {
	Kind        ContentKind `json:"kind"`
	Text        string      `json:"text,omitempty"`
	ContentType string      `json:"content_type,omitempty"`
	URL         string      `json:"url,omitempty"`
}

// TextPart creates a text ContentPart.
func TextPart(text string) ContentPart {
	return ContentPart{Kind: ContentText, Text: text}
}

// ImagePart creates an image ContentPart referencing a URL.
func ImagePart(contentType, url string) ContentPart {
	return ContentPart{Kind: ContentImage, ContentType: contentType, URL: url}
}

// ToolCallRequest is a previously issued tool invocation replayed on an
// assistant message. Function holds the vendor function object verbatim.
type ToolCallRequest struct {
	ID       string          `json:"id"`
	Type     string          `json:"type"`
	Function json.RawMessage `json:"function"`
}

// PromptMessage is one turn of a conversation, tagged by Role. Content is
// used for system messages, Parts for user and assistant messages,
// ToolContent and Name for tool messages.
type PromptMessage struct {
	Role        MessageRole      `json:"role"`
	Content     string           `json:"content,omitempty"`
	Parts       []ContentPart    `json:"parts,omitempty"`
	ToolCalls   *ToolCallRequest `json:"tool_calls,omitempty"`
	ToolContent []string         `json:"tool_content,omitempty"`
	Name        string           `json:"name,omitempty"`
}

// SystemMessage creates a system PromptMessage.
func SystemMessage(text string) PromptMessage {
	return PromptMessage{Role: RoleSystem, Content: text}
}

// UserMessage creates a user PromptMessage from content parts.
func UserMessage(parts ...ContentPart) PromptMessage {
	return PromptMessage{Role: RoleUser, Parts: parts}
}

// UserTextMessage creates a user PromptMessage with a single text part.
func UserTextMessage(text string) PromptMessage {
	return UserMessage(TextPart(text))
}

// AssistantMessage creates an assistant PromptMessage from content parts.
func AssistantMessage(parts ...ContentPart) PromptMessage {
	return PromptMessage{Role: RoleAssistant, Parts: parts}
}

// ToolMessage creates a tool-output PromptMessage.
func ToolMessage(name string, content ...string) PromptMessage {
	return PromptMessage{Role: RoleTool, Name: name, ToolContent: content}
}

// Tool defines a callable function offered to the model. Names must be unique
// within one Prompt's tool list; that is the caller's responsibility and
// adapters do not deduplicate.
type Tool struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	InputSchema json.RawMessage `json:"input_schema"`
}

// NewTool creates a Tool. The schema must be syntactically valid JSON; its
// semantics are not checked here, so an invalid-but-well-formed schema passes
// through and is rejected only by the backend.
func NewTool(name, description string, schema json.RawMessage) (Tool, error) {
	if !json.Valid(schema) {
		return Tool{}, &GatewayError{Message: fmt.Sprintf("tool %q: input schema is not valid JSON", name)}
	}
	return Tool{Name: name, Description: description, InputSchema: schema}, nil
}

// ToolChoiceMode selects how the backend may use declared tools.
type ToolChoiceMode string

const (
	// ToolChoiceAuto lets the backend decide whether to call a tool.
	ToolChoiceAuto ToolChoiceMode = "auto"
	// ToolChoiceRequired forces the backend to call some tool.
	ToolChoiceRequired ToolChoiceMode = "required"
	// ToolChoiceTool forces the backend to call the named tool.
	ToolChoiceTool ToolChoiceMode = "tool"
)

// ToolChoice controls whether and how the model uses tools. Name is required
// when Mode is ToolChoiceTool.
type ToolChoice struct {
	Mode                   ToolChoiceMode `json:"mode"`
	Name                   string         `json:"name,omitempty"`
	DisableParallelToolUse *bool          `json:"disable_parallel_tool_use,omitempty"`
}

// Prompt is the vendor-neutral description of a generation request: either a
// single system+user pair or a full message history, plus optional tool
// declarations. Exactly one variant is active, tagged by Kind.
type Prompt struct {
	Kind     PromptKind      `json:"kind"`
	System   string          `json:"system"`
	User     string          `json:"user,omitempty"`
	Messages []PromptMessage `json:"messages,omitempty"`

	Tools      []Tool      `json:"tools,omitempty"`
	ToolChoice *ToolChoice `json:"tool_choice,omitempty"`
}

// SimplePrompt creates a single-turn Prompt. Empty strings are permitted;
// they produce degenerate requests rather than an error, since backend
// tolerance varies.
func SimplePrompt(system, user string) *Prompt {
	return &Prompt{Kind: PromptSimple, System: system, User: user}
}

// MessagesPrompt creates a Prompt carrying a full conversation history.
// Message order is preserved verbatim by every adapter.
func MessagesPrompt(system string, messages []PromptMessage) *Prompt {
	return &Prompt{Kind: PromptMessages, System: system, Messages: messages}
}

// WithTools attaches tool declarations and a tool-choice policy.
func (p *Prompt) WithTools(tools []Tool, choice *ToolChoice) *Prompt {
	p.Tools = tools
	p.ToolChoice = choice
	return p
}

// effectiveToolChoice returns the tool-choice policy, or nil when no tools
// are declared: without tools no adapter sends any tool directive.
func (p *Prompt) effectiveToolChoice() *ToolChoice {
	if len(p.Tools) == 0 {
		return nil
	}
	return p.ToolChoice
}
