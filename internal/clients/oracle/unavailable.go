package oracle

import (
	"context"

	"github.com/KirkDiggler/horror-bot/internal/errors"
)

// UnavailableProvider is used when no model is configured. Every call fails
// with Unavailable so callers fall back to fixed narration.
type UnavailableProvider struct{}

// Name returns the provider name
func (UnavailableProvider) Name() string {
	return "disabled"
}

// Complete always fails
func (UnavailableProvider) Complete(_ context.Context, _ *Request) (string, error) {
	return "", errors.Unavailable("narrative oracle is disabled")
}
