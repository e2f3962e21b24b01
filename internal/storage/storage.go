package storage

import (
	"context"

	"github.com/google/uuid"

	"github.com/jwebster45206/campaign-engine/pkg/character"
	"github.com/jwebster45206/campaign-engine/pkg/game"
)

// Storage defines persistence for games, turns, characters, and preferences.
// Lookups return (nil, nil) when the record does not exist.
type Storage interface {
	Ping(ctx context.Context) error
	Close() error

	CreateGame(ctx context.Context, g *game.SavedGame) error
	FindGame(ctx context.Context, id uuid.UUID) (*game.SavedGame, error)
	ListGames(ctx context.Context, userID uuid.UUID) ([]game.SavedGame, error)
	DeleteGame(ctx context.Context, id uuid.UUID) error

	// ListTurns returns a game's turns ordered by turn order ascending.
	ListTurns(ctx context.Context, gameID uuid.UUID) ([]game.ConversationTurn, error)
	// AppendTurn assigns the next turn order and persists the turn. It is
	// the single commit point of a turn: nothing else in a turn's
	// processing writes conversation state.
	AppendTurn(ctx context.Context, gameID uuid.UUID, userInput string, gmResponse string) (*game.ConversationTurn, error)

	CreateCharacter(ctx context.Context, sheet *character.Sheet) error
	GetCharacter(ctx context.Context, id uuid.UUID) (*character.Sheet, error)

	GetPreferences(ctx context.Context, userID uuid.UUID) (*game.Preferences, error)
	SavePreferences(ctx context.Context, prefs *game.Preferences) error
}
