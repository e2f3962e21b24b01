// Package agent defines the LLM collaborator abstraction the turn
// orchestrator is built on: a named Agent that turns a message list into
// free text, plus the JSON-contract machinery that makes that text usable.
package agent

import (
	"context"
	"fmt"

	"github.com/jwebster45206/campaign-engine/pkg/chat"
)

// Agent is one LLM-backed collaborator. Implementations are expected to be
// non-deterministic, occasionally malformed, and possibly slow; callers go
// through Caller rather than using the raw reply.
type Agent interface {
	// Name identifies the agent in logs and feedback prompts.
	Name() string

	// Generate sends the messages and returns the raw text reply.
	Generate(ctx context.Context, messages []chat.ChatMessage) (string, error)
}

// Registry holds the two agents a campaign needs. It is constructed once at
// process start and passed down, so there is no process-wide agent state.
type Registry struct {
	Narrator Agent // produces story continuations
	Critic   Agent // produces validation feedback
}

// NewRegistry builds a Registry, rejecting missing agents up front so a
// misconfigured process fails at startup rather than mid-turn.
func NewRegistry(narrator, critic Agent) (*Registry, error) {
	if narrator == nil {
		return nil, fmt.Errorf("narrator agent is required")
	}
	if critic == nil {
		return nil, fmt.Errorf("critic agent is required")
	}
	return &Registry{Narrator: narrator, Critic: critic}, nil
}
