package ai

import (
	"context"
	"fmt"
)

// SearchProvider runs a free-text web search and returns the results as one
// unstructured text blob. An empty string means the search found nothing.
type SearchProvider interface {
	Search(ctx context.Context, query string) (string, error)
}

// LanguageModel sends a fully formatted prompt to a model and returns the raw
// completion text.
type LanguageModel interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// ProviderError is returned when a search or model provider call fails:
// network errors, auth errors, rate limits and empty responses alike.
type ProviderError struct {
	Provider   string
	Op         string
	StatusCode int
	Err        error
}

func (e *ProviderError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s %s failed (status %d): %v", e.Provider, e.Op, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s %s failed: %v", e.Provider, e.Op, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

func providerError(provider, op string, status int, err error) *ProviderError {
	return &ProviderError{Provider: provider, Op: op, StatusCode: status, Err: err}
}
