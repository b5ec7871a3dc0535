// Package llm invokes the external text-generation service.
//
// The service is untrusted with respect to output shape: callers must
// always pass completions through the breakdown parser before using
// structured content.
package llm

import (
	"context"
	"errors"
)

// OutputContract declares the shape the caller expects back.
type OutputContract int

const (
	// FreeText accepts any textual completion.
	FreeText OutputContract = iota
	// StrictJSON asks the service to emit a single JSON object.
	StrictJSON
)

// Typed failure conditions. The client never retries; retry policy
// belongs to the orchestrator.
var (
	// ErrCredentialMissing means no API key is configured. Failed
	// before any network call.
	ErrCredentialMissing = errors.New("llm: credential missing")

	// ErrServiceUnavailable covers transport failures, non-2xx
	// responses and deadline expiry.
	ErrServiceUnavailable = errors.New("llm: service unavailable")

	// ErrEmptyCompletion means the service answered but returned no
	// usable content.
	ErrEmptyCompletion = errors.New("llm: empty completion")
)

// Client is the text-generation service boundary.
type Client interface {
	// Complete sends a system directive and user content, returning the
	// raw textual completion. No latency bound is assumed; callers
	// needing a deadline set one on ctx.
	Complete(ctx context.Context, systemPrompt, userPrompt string, contract OutputContract) (string, error)
}
