package chat

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

const (
	ChatRoleUser   = "user"      // the player
	ChatRoleAgent  = "assistant" // narrator or critic output
	ChatRoleSystem = "system"    // instructions and prompt context
)

// ChatMessage is a single role-tagged message sent to an LLM agent.
// The shape matches what the provider chat APIs expect.
type ChatMessage struct {
	Role    string `json:"role"` // "user", "assistant", "system"
	Content string `json:"content"`
}

// TurnRequest is one player turn submitted to the campaign-engine api.
type TurnRequest struct {
	GameID    uuid.UUID `json:"game_id"`
	UserInput string    `json:"user_input"`
}

// TurnResponse is the finalized GM narration for one turn, or an
// explanatory error. The player is never shown raw JSON or parser output.
type TurnResponse struct {
	GameID   uuid.UUID `json:"game_id,omitempty"`
	Response string    `json:"response,omitempty"`
	Error    string    `json:"error,omitempty"`
}

func (tr *TurnRequest) Validate() error {
	if strings.TrimSpace(tr.UserInput) == "" {
		return fmt.Errorf("user input cannot be empty")
	}
	if tr.GameID == uuid.Nil {
		return fmt.Errorf("game_id is required")
	}
	return nil
}
