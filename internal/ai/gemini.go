package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/wizerservices/tripz-api/internal/logger"
	"go.uber.org/zap"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// DefaultGeminiModel is used when LLM_MODEL is not set.
const DefaultGeminiModel = "gemini-2.0-flash"

// GeminiModel implements LanguageModel using Google's Gemini models.
type GeminiModel struct {
	client *genai.Client
	model  *genai.GenerativeModel
	name   string
}

// NewGeminiModel initializes a Gemini client for the named model.
func NewGeminiModel(ctx context.Context, apiKey, modelName string) (*GeminiModel, error) {
	if modelName == "" {
		modelName = DefaultGeminiModel
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := client.GenerativeModel(modelName)
	// Every prompt asks for a JSON object.
	model.ResponseMIMEType = "application/json"

	return &GeminiModel{
		client: client,
		model:  model,
		name:   modelName,
	}, nil
}

// Close releases the underlying client.
func (m *GeminiModel) Close() error {
	return m.client.Close()
}

// Complete sends the prompt as a single user turn and concatenates the text
// parts of the first candidate.
func (m *GeminiModel) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := m.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", providerError("gemini", "generate", geminiStatus(err), err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", providerError("gemini", "generate", 0, errors.New("no response candidates"))
	}

	var text strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			text.WriteString(string(txt))
		}
	}
	if text.Len() == 0 {
		return "", providerError("gemini", "generate", 0, errors.New("empty completion"))
	}

	logger.Get().Debug("gemini completion",
		zap.String("model", m.name),
		zap.Int("prompt_chars", len(prompt)),
		zap.Int("completion_chars", text.Len()),
	)
	return text.String(), nil
}

func geminiStatus(err error) int {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		return apiErr.Code
	}
	return 0
}
