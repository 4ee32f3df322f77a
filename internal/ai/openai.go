package ai

import (
	"context"
	"errors"

	openai "github.com/sashabaranov/go-openai"
	"github.com/wizerservices/tripz-api/internal/logger"
	"go.uber.org/zap"
)

// OpenAIModel implements LanguageModel using OpenAI chat completions in JSON
// object mode.
type OpenAIModel struct {
	client *openai.Client
	model  string
}

// NewOpenAIModel creates an OpenAI-backed model. An empty modelName selects
// gpt-4o-mini.
func NewOpenAIModel(apiKey, modelName string) *OpenAIModel {
	if modelName == "" {
		modelName = openai.GPT4oMini
	}
	return &OpenAIModel{
		client: openai.NewClient(apiKey),
		model:  modelName,
	}
}

// Complete sends the prompt as a single user message.
func (m *OpenAIModel) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := m.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: m.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return "", providerError("openai", "chat", openAIStatus(err), err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", providerError("openai", "chat", 0, errors.New("OpenAI API returned an empty message"))
	}

	text := resp.Choices[0].Message.Content
	logger.Get().Debug("openai completion",
		zap.String("model", m.model),
		zap.Int("prompt_chars", len(prompt)),
		zap.Int("completion_chars", len(text)),
	)
	return text, nil
}

func openAIStatus(err error) int {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatusCode
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return reqErr.HTTPStatusCode
	}
	return 0
}
