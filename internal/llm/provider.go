package llm

import "context"

// defines the interface for text-completion providers
type Provider interface {
	// Complete returns the full completion for a prompt.
	Complete(ctx context.Context, prompt string) (string, error)

	// CompleteStream invokes fn for each incremental chunk of the
	// completion. A non-nil error from fn stops the stream; providers must
	// not keep producing once the consumer has given up.
	CompleteStream(ctx context.Context, prompt string, fn func(chunk string) error) error

	GetProviderName() string
}

// represents an error from a completion provider
type ProviderError struct {
	Provider string
	Code     string
	Message  string
	Err      error
}

func (e *ProviderError) Error() string {
	if e.Err != nil {
		return e.Provider + " error: " + e.Message + " (" + e.Err.Error() + ")"
	}
	return e.Provider + " error: " + e.Message
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// Common error codes
const (
	ErrCodeAPIKey       = "invalid_api_key"
	ErrCodeRateLimit    = "rate_limit_exceeded"
	ErrCodeServiceDown  = "service_unavailable"
	ErrCodeInvalidInput = "invalid_input"
	ErrCodeTimeout      = "timeout"
)
