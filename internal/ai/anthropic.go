package ai

import (
	"context"
	"errors"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/wizerservices/tripz-api/internal/logger"
	"go.uber.org/zap"
)

const anthropicSystemPrompt = "Respond with a single JSON object and nothing else."

// AnthropicModel implements LanguageModel using Claude.
type AnthropicModel struct {
	client anthropic.Client
	model  anthropic.Model
}

// NewAnthropicModel creates a Claude-backed model. An empty modelName selects
// Claude 3.5 Sonnet.
func NewAnthropicModel(apiKey, modelName string) *AnthropicModel {
	model := anthropic.ModelClaude3_5Sonnet20241022
	if modelName != "" {
		model = anthropic.Model(modelName)
	}
	return &AnthropicModel{
		client: anthropic.NewClient(option.WithAPIKey(apiKey)),
		model:  model,
	}
}

// Complete sends the prompt as a single user message.
func (m *AnthropicModel) Complete(ctx context.Context, prompt string) (string, error) {
	params := anthropic.MessageNewParams{
		Model:     m.model,
		MaxTokens: 2048,
		System: []anthropic.TextBlockParam{
			{Text: anthropicSystemPrompt},
		},
		Messages: []anthropic.MessageParam{
			{
				Role: anthropic.MessageParamRoleUser,
				Content: []anthropic.ContentBlockParamUnion{
					anthropic.NewTextBlock(prompt),
				},
			},
		},
	}

	resp, err := m.client.Messages.New(ctx, params)
	if err != nil {
		return "", providerError("anthropic", "messages", anthropicStatus(err), err)
	}

	text, err := extractTextContent(resp)
	if err != nil {
		return "", providerError("anthropic", "messages", 0, err)
	}

	logger.Get().Debug("claude completion",
		zap.String("model", string(m.model)),
		zap.Int("prompt_chars", len(prompt)),
		zap.Int("completion_chars", len(text)),
	)
	return text, nil
}

// extractTextContent returns the concatenated text blocks from a Claude response.
func extractTextContent(msg *anthropic.Message) (string, error) {
	var text string
	for _, block := range msg.Content {
		if block.Type == "text" {
			text += block.Text
		}
	}
	if text == "" {
		return "", errors.New("no text content in Claude response")
	}
	return text, nil
}

func anthropicStatus(err error) int {
	var apiErr *anthropic.Error
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}
