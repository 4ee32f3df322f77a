package testutil

import (
	"context"
	"fmt"
	"sync"
)

// --- MockSearchProvider ---

// MockSearchProvider is a mock implementation of ai.SearchProvider that
// records every query it receives.
type MockSearchProvider struct {
	SearchFunc func(ctx context.Context, query string) (string, error)

	mu      sync.Mutex
	queries []string
}

func (m *MockSearchProvider) Search(ctx context.Context, query string) (string, error) {
	m.mu.Lock()
	m.queries = append(m.queries, query)
	m.mu.Unlock()

	if m.SearchFunc != nil {
		return m.SearchFunc(ctx, query)
	}
	return "", fmt.Errorf("Search not configured")
}

// Queries returns the queries received so far.
func (m *MockSearchProvider) Queries() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.queries...)
}

// Calls returns the number of Search calls.
func (m *MockSearchProvider) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.queries)
}

// --- MockLanguageModel ---

// MockLanguageModel is a mock implementation of ai.LanguageModel that
// records every prompt it receives.
type MockLanguageModel struct {
	CompleteFunc func(ctx context.Context, prompt string) (string, error)

	mu      sync.Mutex
	prompts []string
}

func (m *MockLanguageModel) Complete(ctx context.Context, prompt string) (string, error) {
	m.mu.Lock()
	m.prompts = append(m.prompts, prompt)
	m.mu.Unlock()

	if m.CompleteFunc != nil {
		return m.CompleteFunc(ctx, prompt)
	}
	return "", fmt.Errorf("Complete not configured")
}

// Prompts returns the prompts received so far.
func (m *MockLanguageModel) Prompts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.prompts...)
}

// Calls returns the number of Complete calls.
func (m *MockLanguageModel) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.prompts)
}

// StaticSearch returns a search mock that always answers text.
func StaticSearch(text string) *MockSearchProvider {
	return &MockSearchProvider{
		SearchFunc: func(ctx context.Context, query string) (string, error) {
			return text, nil
		},
	}
}

// StaticModel returns a model mock that always answers completion.
func StaticModel(completion string) *MockLanguageModel {
	return &MockLanguageModel{
		CompleteFunc: func(ctx context.Context, prompt string) (string, error) {
			return completion, nil
		},
	}
}
