package services

import (
	"context"

	"github.com/jwebster45206/campaign-engine/pkg/chat"
)

// LLMService defines the interface for one chat-completion backend.
type LLMService interface {
	// InitModel prepares the model on startup (pulls it, checks the key).
	InitModel(ctx context.Context, modelName string) error

	// Chat sends the conversation and returns the raw text reply.
	Chat(ctx context.Context, messages []chat.ChatMessage) (string, error)
}
