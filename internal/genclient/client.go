// Package genclient adapts external text/image generation providers behind a
// single stateless interface. One invocation performs exactly one provider
// call; retries are owned by the callers that need them.
package genclient

import (
	"context"
	"errors"
	"fmt"

	t "territorylab/internal/types"
)

// GenerationClient is the opaque request/response boundary to the provider.
type GenerationClient interface {
	Name() string
	// GenerateText asks for the full territory document and returns it parsed
	// and validated. Transport failures surface as *ProviderError, malformed
	// responses as *ParseError.
	GenerateText(ctx context.Context, prompt string) (t.RawOutput, error)
	// GenerateImage yields one image at a fixed vertical mobile aspect ratio.
	GenerateImage(ctx context.Context, prompt string) (t.ImageRef, error)
	Close() error
}

// ProviderError wraps a transport or provider failure on a single call.
// The client itself never auto-retries.
type ProviderError struct {
	Provider string
	Op       string
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Provider, e.Op, e.Err)
}
func (e *ProviderError) Unwrap() error { return e.Err }

// ParseError marks a malformed provider response. Terminal: there is no
// production fallback to mock data.
type ParseError struct {
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("parse provider response: %s: %v", e.Reason, e.Err)
	}
	return "parse provider response: " + e.Reason
}
func (e *ParseError) Unwrap() error { return e.Err }

// IsParseError reports whether err is terminal at the parse boundary.
func IsParseError(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}
