package llm

import "fmt"

// GatewayError is the base error type for this package.
type GatewayError struct {
	Message string
	Cause   error
}

func (e *GatewayError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *GatewayError) Unwrap() error {
	return e.Cause
}

// FactoryError reports a provider key the factory cannot serve.
type FactoryError struct {
	GatewayError
	Key string
}

func (e *FactoryError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("provider %q: %s", e.Key, e.GatewayError.Error())
	}
	return e.GatewayError.Error()
}

// GenerationError reports a failed backend call: request-build failure,
// transport failure, non-2xx status, or a response body that does not match
// the vendor schema. Code carries the opaque vendor failure code when the
// vendor supplied one.
type GenerationError struct {
	GatewayError
	Provider   string
	StatusCode int
	Code       string
}

func (e *GenerationError) Error() string {
	msg := fmt.Sprintf("[%s] %s", e.Provider, e.GatewayError.Error())
	if e.StatusCode != 0 {
		msg = fmt.Sprintf("%s (status=%d)", msg, e.StatusCode)
	}
	if e.Code != "" {
		msg = fmt.Sprintf("%s (code=%s)", msg, e.Code)
	}
	return msg
}

// ToolArgumentError reports malformed JSON in a tool call's arguments field.
// A caller depending on structured input cannot safely proceed with malformed
// arguments, so this fails the whole call rather than dropping the entry.
type ToolArgumentError struct {
	GatewayError
	ToolName string
}

func (e *ToolArgumentError) Error() string {
	return fmt.Sprintf("tool %q: %s", e.ToolName, e.GatewayError.Error())
}

// newGenerationError creates a GenerationError for the given provider.
func newGenerationError(provider, message string, cause error) *GenerationError {
	return &GenerationError{
		GatewayError: GatewayError{Message: message, Cause: cause},
		Provider:     provider,
	}
}
