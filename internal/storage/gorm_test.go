package storage

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/jwebster45206/campaign-engine/pkg/character"
	"github.com/jwebster45206/campaign-engine/pkg/game"
)

func setupTestStorage(t *testing.T) *GormStorage {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s, err := NewGormStorage("sqlite", ":memory:", logger)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func createTestGame(t *testing.T, s *GormStorage) *game.SavedGame {
	g := &game.SavedGame{
		GameName:    "The Sunken Keep",
		UserID:      uuid.New(),
		CharacterID: uuid.New(),
	}
	require.NoError(t, s.CreateGame(context.Background(), g))
	return g
}

func TestGormStorage_GameLifecycle(t *testing.T) {
	s := setupTestStorage(t)
	ctx := context.Background()

	g := createTestGame(t, s)
	require.NotEqual(t, uuid.Nil, g.ID)

	found, err := s.FindGame(ctx, g.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, g.GameName, found.GameName)
	assert.Equal(t, g.UserID, found.UserID)

	games, err := s.ListGames(ctx, g.UserID)
	require.NoError(t, err)
	assert.Len(t, games, 1)

	require.NoError(t, s.DeleteGame(ctx, g.ID))
	found, err = s.FindGame(ctx, g.ID)
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestGormStorage_FindGame_NotFound(t *testing.T) {
	s := setupTestStorage(t)

	found, err := s.FindGame(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestGormStorage_AppendTurn_Order(t *testing.T) {
	s := setupTestStorage(t)
	ctx := context.Background()
	g := createTestGame(t, s)

	first, err := s.AppendTurn(ctx, g.ID, "I enter the keep.", "The doors groan open.")
	require.NoError(t, err)
	assert.Equal(t, 1, first.Order)

	second, err := s.AppendTurn(ctx, g.ID, "I light a torch.", "Shadows scatter along the walls.")
	require.NoError(t, err)
	assert.Equal(t, 2, second.Order)

	// A different game keeps its own sequence.
	other := createTestGame(t, s)
	otherTurn, err := s.AppendTurn(ctx, other.ID, "I look around.", "A quiet village square.")
	require.NoError(t, err)
	assert.Equal(t, 1, otherTurn.Order)

	turns, err := s.ListTurns(ctx, g.ID)
	require.NoError(t, err)
	require.Len(t, turns, 2)
	assert.Equal(t, 1, turns[0].Order)
	assert.Equal(t, 2, turns[1].Order)
	assert.Equal(t, "I enter the keep.", turns[0].UserInput)
}

func TestGormStorage_DeleteGame_RemovesTurns(t *testing.T) {
	s := setupTestStorage(t)
	ctx := context.Background()
	g := createTestGame(t, s)

	_, err := s.AppendTurn(ctx, g.ID, "Hello", "Well met, traveler.")
	require.NoError(t, err)

	require.NoError(t, s.DeleteGame(ctx, g.ID))

	turns, err := s.ListTurns(ctx, g.ID)
	require.NoError(t, err)
	assert.Empty(t, turns)
}

func TestGormStorage_DuplicateGameName(t *testing.T) {
	s := setupTestStorage(t)
	ctx := context.Background()

	userID := uuid.New()
	g1 := &game.SavedGame{GameName: "Twins", UserID: userID, CharacterID: uuid.New()}
	require.NoError(t, s.CreateGame(ctx, g1))

	g2 := &game.SavedGame{GameName: "Twins", UserID: userID, CharacterID: uuid.New()}
	assert.ErrorIs(t, s.CreateGame(ctx, g2), gorm.ErrDuplicatedKey)

	// Same name under a different user is fine.
	g3 := &game.SavedGame{GameName: "Twins", UserID: uuid.New(), CharacterID: uuid.New()}
	assert.NoError(t, s.CreateGame(ctx, g3))
}

func TestGormStorage_Characters(t *testing.T) {
	s := setupTestStorage(t)
	ctx := context.Background()

	sheet := &character.Sheet{
		UserID: uuid.New(),
		Name:   "Mira",
		Race:   "Elf",
		Class:  "Rogue",
		Level:  3,
		Stats: character.Stats{
			Strength: 10, Dexterity: 16, Constitution: 12,
			Intelligence: 13, Wisdom: 11, Charisma: 14,
		},
		ProficiencyBonus: 2,
		ArmorClass:       14,
		MaxHitPoints:     21,
		CurrentHitPoints: 21,
	}
	require.NoError(t, s.CreateCharacter(ctx, sheet))

	got, err := s.GetCharacter(ctx, sheet.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Mira", got.Name)
	assert.Equal(t, 16, got.Stats.Dexterity)

	missing, err := s.GetCharacter(ctx, uuid.New())
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestGormStorage_Preferences(t *testing.T) {
	s := setupTestStorage(t)
	ctx := context.Background()
	userID := uuid.New()

	missing, err := s.GetPreferences(ctx, userID)
	require.NoError(t, err)
	assert.Nil(t, missing)

	prefs := &game.Preferences{
		UserID:     userID,
		GameStyle:  game.StyleNarrative,
		Tone:       game.ToneSerious,
		Difficulty: game.DifficultyMedium,
		Theme:      game.ThemeFantasy,
	}
	require.NoError(t, s.SavePreferences(ctx, prefs))

	got, err := s.GetPreferences(ctx, userID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, game.ToneSerious, got.Tone)

	// Saving again updates in place.
	prefs.Tone = game.ToneDark
	require.NoError(t, s.SavePreferences(ctx, prefs))

	got, err = s.GetPreferences(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, game.ToneDark, got.Tone)

	all, err := s.GetPreferences(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, got.ID, all.ID)
}
