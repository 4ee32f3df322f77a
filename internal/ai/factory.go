package ai

import (
	"context"
	"fmt"

	"github.com/wizerservices/tripz-api/internal/config"
)

// NewLanguageModel builds the model client selected by LLM_PROVIDER.
func NewLanguageModel(ctx context.Context, cfg *config.Config) (LanguageModel, error) {
	key, err := cfg.LLMAPIKey()
	if err != nil {
		return nil, err
	}

	switch cfg.EnvVars.LLMProvider {
	case config.LLMProviderGemini:
		model, err := NewGeminiModel(ctx, key, cfg.EnvVars.LLMModel)
		if err != nil {
			return nil, err
		}
		return model, nil
	case config.LLMProviderAnthropic:
		return NewAnthropicModel(key, cfg.EnvVars.LLMModel), nil
	case config.LLMProviderOpenAI:
		return NewOpenAIModel(key, cfg.EnvVars.LLMModel), nil
	}
	return nil, fmt.Errorf("unknown LLM provider %q", cfg.EnvVars.LLMProvider)
}

// NewSearchProvider builds the search client selected by SEARCH_PROVIDER.
func NewSearchProvider(cfg *config.Config) (SearchProvider, error) {
	key, err := cfg.SearchAPIKey()
	if err != nil {
		return nil, err
	}

	switch cfg.EnvVars.SearchProvider {
	case config.SearchProviderSerper:
		return NewSerperProvider(key, cfg.EnvVars.SearchTimeout), nil
	case config.SearchProviderBrave:
		return NewBraveProvider(key, cfg.EnvVars.SearchTimeout), nil
	case config.SearchProviderPlaces:
		provider, err := NewPlacesProvider(key)
		if err != nil {
			return nil, err
		}
		return provider, nil
	}
	return nil, fmt.Errorf("unknown search provider %q", cfg.EnvVars.SearchProvider)
}
