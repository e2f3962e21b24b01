package services

import (
	"context"
	"time"

	"github.com/jwebster45206/campaign-engine/pkg/agent"
	"github.com/jwebster45206/campaign-engine/pkg/chat"
)

// llmAgent adapts an LLMService into the agent.Agent the orchestrator
// drives, bounding every request with a timeout so a hanging backend call
// is consumed by the contract layer's retry budget instead of stalling the
// turn.
type llmAgent struct {
	name    string
	svc     LLMService
	timeout time.Duration
}

// NewAgent wraps an LLMService as a named agent. A timeout of zero disables
// the per-call bound.
func NewAgent(name string, svc LLMService, timeout time.Duration) agent.Agent {
	return &llmAgent{name: name, svc: svc, timeout: timeout}
}

func (a *llmAgent) Name() string {
	return a.name
}

func (a *llmAgent) Generate(ctx context.Context, messages []chat.ChatMessage) (string, error) {
	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}
	return a.svc.Chat(ctx, messages)
}
