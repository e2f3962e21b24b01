// Package game holds the persisted campaign models: saved games and their
// ordered conversation log.
package game

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// SavedGame is one campaign instance. A game with zero turns is new; a game
// with one or more turns is continuing.
type SavedGame struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	GameName    string    `gorm:"size:100;not null;uniqueIndex:idx_user_game_name" json:"game_name"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_user_game_name;index" json:"user_id"`
	CharacterID uuid.UUID `gorm:"type:uuid;not null" json:"character_id"`
	CreatedAt   time.Time `json:"created_at"`

	Turns []ConversationTurn `gorm:"foreignKey:GameID;constraint:OnDelete:CASCADE" json:"turns,omitempty"`
}

func (g *SavedGame) Validate() error {
	if strings.TrimSpace(g.GameName) == "" {
		return fmt.Errorf("game name cannot be empty")
	}
	if g.UserID == uuid.Nil {
		return fmt.Errorf("user_id is required")
	}
	if g.CharacterID == uuid.Nil {
		return fmt.Errorf("character_id is required")
	}
	return nil
}

// ConversationTurn is one player/GM exchange. Turns are created only after a
// narration is finalized and are immutable afterward; per game the Order
// values form a contiguous sequence starting at 1.
type ConversationTurn struct {
	ID         uint      `gorm:"primaryKey" json:"-"`
	GameID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_game_turn_order;index" json:"game_id"`
	Order      int       `gorm:"column:turn_order;not null;uniqueIndex:idx_game_turn_order" json:"order"`
	UserInput  string    `gorm:"type:text;not null" json:"user_input"`
	GMResponse string    `gorm:"type:text;not null" json:"gm_response"`
	CreatedAt  time.Time `json:"created_at"`
}

// Storyline reconstructs the full ordered text of a campaign from its turns.
// The turns are expected in ascending Order, as returned by storage.
func Storyline(turns []ConversationTurn) string {
	if len(turns) == 0 {
		return ""
	}
	var sb strings.Builder
	for i, t := range turns {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString("User: ")
		sb.WriteString(t.UserInput)
		sb.WriteString("\nGM: ")
		sb.WriteString(t.GMResponse)
	}
	return sb.String()
}
