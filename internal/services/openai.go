package services

import (
	"context"
	"fmt"
	"log/slog"

	openai "github.com/sashabaranov/go-openai"

	"github.com/jwebster45206/campaign-engine/pkg/chat"
)

const DefaultOpenAITemperature = 1.0

// OpenAIService implements LLMService using the OpenAI chat completions API
type OpenAIService struct {
	client    *openai.Client
	modelName string
	logger    *slog.Logger
}

func NewOpenAIService(apiKey string, modelName string, logger *slog.Logger) *OpenAIService {
	return &OpenAIService{
		client:    openai.NewClient(apiKey),
		modelName: modelName,
		logger:    logger,
	}
}

// InitModel verifies the API key and model by listing available models.
func (s *OpenAIService) InitModel(ctx context.Context, modelName string) error {
	models, err := s.client.ListModels(ctx)
	if err != nil {
		return fmt.Errorf("failed to list OpenAI models: %w", err)
	}
	for _, m := range models.Models {
		if m.ID == modelName {
			return nil
		}
	}
	s.logger.Warn("Model not present in model list, proceeding anyway", "model", modelName)
	return nil
}

// Chat generates a chat response using the OpenAI API.
func (s *OpenAIService) Chat(ctx context.Context, messages []chat.ChatMessage) (string, error) {
	oaiMessages := make([]openai.ChatCompletionMessage, 0, len(messages))
	for _, msg := range messages {
		oaiMessages = append(oaiMessages, openai.ChatCompletionMessage{
			Role:    msg.Role,
			Content: msg.Content,
		})
	}

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       s.modelName,
		Messages:    oaiMessages,
		Temperature: DefaultOpenAITemperature,
	})
	if err != nil {
		return "", fmt.Errorf("OpenAI chat completion failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("OpenAI returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}
