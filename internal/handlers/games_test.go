package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/jwebster45206/campaign-engine/internal/storage"
	"github.com/jwebster45206/campaign-engine/pkg/character"
	"github.com/jwebster45206/campaign-engine/pkg/game"
)

func testCharacter(userID uuid.UUID) *character.Sheet {
	return &character.Sheet{
		UserID: userID,
		Name:   "Sable",
		Race:   "Human",
		Class:  "Ranger",
		Level:  1,
		Stats: character.Stats{
			Strength: 12, Dexterity: 15, Constitution: 13,
			Intelligence: 10, Wisdom: 14, Charisma: 8,
		},
		ProficiencyBonus: 2,
		ArmorClass:       13,
		MaxHitPoints:     12,
		CurrentHitPoints: 12,
	}
}

func TestGamesHandler_Create_InlineCharacter(t *testing.T) {
	st := storage.NewMockStorage()
	handler := NewGamesHandler(st, testLogger())
	userID := uuid.New()

	body := CreateGameRequest{
		GameName:  "Northreach",
		UserID:    userID,
		Character: testCharacter(userID),
		Preferences: &game.Preferences{
			GameStyle:  game.StyleExploration,
			Tone:       game.ToneSerious,
			Difficulty: game.DifficultyHard,
			Theme:      game.ThemeFantasy,
		},
	}
	var buf bytes.Buffer
	require.NoError(t, json.NewEncoder(&buf).Encode(body))

	req := httptest.NewRequest(http.MethodPost, "/v1/games", &buf)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	var created game.SavedGame
	require.NoError(t, json.NewDecoder(w.Body).Decode(&created))
	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.NotEqual(t, uuid.Nil, created.CharacterID)

	// Character and preferences were persisted alongside the game.
	sheet, err := st.GetCharacter(context.Background(), created.CharacterID)
	require.NoError(t, err)
	require.NotNil(t, sheet)
	prefs, err := st.GetPreferences(context.Background(), userID)
	require.NoError(t, err)
	require.NotNil(t, prefs)
	assert.Equal(t, game.StyleExploration, prefs.GameStyle)
}

func TestGamesHandler_Create_MissingCharacter(t *testing.T) {
	handler := NewGamesHandler(storage.NewMockStorage(), testLogger())

	body := CreateGameRequest{GameName: "Nowhere", UserID: uuid.New(), CharacterID: uuid.New()}
	var buf bytes.Buffer
	require.NoError(t, json.NewEncoder(&buf).Encode(body))

	req := httptest.NewRequest(http.MethodPost, "/v1/games", &buf)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGamesHandler_Create_NoCharacter(t *testing.T) {
	handler := NewGamesHandler(storage.NewMockStorage(), testLogger())

	body := CreateGameRequest{GameName: "Nowhere", UserID: uuid.New()}
	var buf bytes.Buffer
	require.NoError(t, json.NewEncoder(&buf).Encode(body))

	req := httptest.NewRequest(http.MethodPost, "/v1/games", &buf)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGamesHandler_ListAndRead(t *testing.T) {
	st := storage.NewMockStorage()
	handler := NewGamesHandler(st, testLogger())
	ctx := context.Background()
	userID := uuid.New()

	g := &game.SavedGame{GameName: "Ashford", UserID: userID, CharacterID: uuid.New()}
	require.NoError(t, st.CreateGame(ctx, g))
	_, err := st.AppendTurn(ctx, g.ID, "Look around", "A fog-bound harbor town.")
	require.NoError(t, err)

	// List
	req := httptest.NewRequest(http.MethodGet, "/v1/games?user_id="+userID.String(), nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	var games []game.SavedGame
	require.NoError(t, json.NewDecoder(w.Body).Decode(&games))
	require.Len(t, games, 1)

	// Read includes turns
	req = httptest.NewRequest(http.MethodGet, "/v1/games/"+g.ID.String(), nil)
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	var got game.SavedGame
	require.NoError(t, json.NewDecoder(w.Body).Decode(&got))
	require.Len(t, got.Turns, 1)
	assert.Equal(t, 1, got.Turns[0].Order)
}

func TestGamesHandler_List_RequiresUserID(t *testing.T) {
	handler := NewGamesHandler(storage.NewMockStorage(), testLogger())

	req := httptest.NewRequest(http.MethodGet, "/v1/games", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGamesHandler_Read_NotFound(t *testing.T) {
	handler := NewGamesHandler(storage.NewMockStorage(), testLogger())

	req := httptest.NewRequest(http.MethodGet, "/v1/games/"+uuid.NewString(), nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGamesHandler_Read_InvalidID(t *testing.T) {
	handler := NewGamesHandler(storage.NewMockStorage(), testLogger())

	req := httptest.NewRequest(http.MethodGet, "/v1/games/not-a-uuid", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestIsUniqueViolation(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"translated duplicate key", gorm.ErrDuplicatedKey, true},
		{"wrapped duplicate key", fmt.Errorf("create game: %w", gorm.ErrDuplicatedKey), true},
		{"sqlite constraint text", errors.New("UNIQUE constraint failed: saved_games.game_name"), true},
		{"postgres constraint text", errors.New(`duplicate key value violates unique constraint "idx_user_game_name"`), true},
		{"unrelated error", errors.New("connection reset"), false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, isUniqueViolation(tc.err))
		})
	}
}

func TestGamesHandler_Delete(t *testing.T) {
	st := storage.NewMockStorage()
	handler := NewGamesHandler(st, testLogger())
	ctx := context.Background()

	g := &game.SavedGame{GameName: "Ember", UserID: uuid.New(), CharacterID: uuid.New()}
	require.NoError(t, st.CreateGame(ctx, g))

	req := httptest.NewRequest(http.MethodDelete, "/v1/games/"+g.ID.String(), nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)

	found, err := st.FindGame(ctx, g.ID)
	require.NoError(t, err)
	assert.Nil(t, found)

	// Deleting again is a 404.
	req = httptest.NewRequest(http.MethodDelete, "/v1/games/"+g.ID.String(), nil)
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHealthHandler(t *testing.T) {
	st := storage.NewMockStorage()
	handler := NewHealthHandler(st, testLogger())

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp HealthResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, "healthy", resp.Status)
	assert.Equal(t, "campaign-engine", resp.Service)
	assert.Equal(t, "healthy", resp.Components["database"])
}

func TestHealthHandler_Degraded(t *testing.T) {
	st := storage.NewMockStorage()
	st.Err = assert.AnError
	handler := NewHealthHandler(st, testLogger())

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
