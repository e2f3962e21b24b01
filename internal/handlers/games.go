package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jwebster45206/campaign-engine/internal/storage"
	"github.com/jwebster45206/campaign-engine/pkg/character"
	"github.com/jwebster45206/campaign-engine/pkg/game"
)

// ErrorResponse is the JSON error payload for management endpoints.
type ErrorResponse struct {
	Error string `json:"error"`
}

// CreateGameRequest starts a new campaign. The character may be referenced
// by ID or supplied inline; inline preferences replace any saved ones.
type CreateGameRequest struct {
	GameName    string            `json:"game_name"`
	UserID      uuid.UUID         `json:"user_id"`
	CharacterID uuid.UUID         `json:"character_id,omitempty"`
	Character   *character.Sheet  `json:"character,omitempty"`
	Preferences *game.Preferences `json:"preferences,omitempty"`
}

// GamesHandler handles game management requests.
type GamesHandler struct {
	storage storage.Storage
	logger  *slog.Logger
}

// NewGamesHandler creates a new games handler
func NewGamesHandler(st storage.Storage, logger *slog.Logger) *GamesHandler {
	return &GamesHandler{
		storage: st,
		logger:  logger,
	}
}

func (h *GamesHandler) writeError(w http.ResponseWriter, status int, msg string) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(ErrorResponse{Error: msg}); err != nil {
		h.logger.Error("Failed to encode error response", "error", err)
	}
}

func (h *GamesHandler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("Failed to encode response", "error", err)
	}
}

// ServeHTTP handles HTTP requests for game management
// Routes:
// POST /v1/games        - Create a new game
// GET /v1/games         - List games for a user (?user_id=)
// GET /v1/games/{id}    - Read a game with its turns
// DELETE /v1/games/{id} - Delete a game and its turns
func (h *GamesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	path := strings.TrimPrefix(r.URL.Path, "/v1/games")
	var gameID uuid.UUID
	var err error

	if path != "" && path != "/" {
		idStr := strings.Trim(path, "/")
		gameID, err = uuid.Parse(idStr)
		if err != nil {
			h.logger.Warn("Invalid game ID", "id", idStr, "error", err)
			h.writeError(w, http.StatusBadRequest, "Invalid game ID format")
			return
		}
	}

	switch r.Method {
	case http.MethodPost:
		h.handleCreate(w, r)

	case http.MethodGet:
		if gameID == uuid.Nil {
			h.handleList(w, r)
			return
		}
		h.handleRead(w, r, gameID)

	case http.MethodDelete:
		if gameID == uuid.Nil {
			h.writeError(w, http.StatusBadRequest, "Game ID is required for DELETE requests")
			return
		}
		h.handleDelete(w, r, gameID)

	default:
		h.logger.Warn("Method not allowed for games endpoint", "method", r.Method)
		h.writeError(w, http.StatusMethodNotAllowed, "Method not allowed. Supported methods: POST, GET, DELETE")
	}
}

func (h *GamesHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req CreateGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("Invalid create game request body", "error", err)
		h.writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.UserID == uuid.Nil {
		h.writeError(w, http.StatusBadRequest, "user_id is required")
		return
	}

	characterID := req.CharacterID
	if characterID == uuid.Nil {
		if req.Character == nil {
			h.writeError(w, http.StatusBadRequest, "character_id or an inline character is required")
			return
		}
		req.Character.UserID = req.UserID
		if err := req.Character.Validate(); err != nil {
			h.writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		if err := h.storage.CreateCharacter(r.Context(), req.Character); err != nil {
			h.logger.Error("Failed to create character", "error", err)
			h.writeError(w, http.StatusInternalServerError, "Failed to create character")
			return
		}
		characterID = req.Character.ID
	} else {
		sheet, err := h.storage.GetCharacter(r.Context(), characterID)
		if err != nil {
			h.logger.Error("Failed to load character", "error", err)
			h.writeError(w, http.StatusInternalServerError, "Failed to load character")
			return
		}
		if sheet == nil {
			h.writeError(w, http.StatusNotFound, "Character not found")
			return
		}
	}

	if req.Preferences != nil {
		req.Preferences.UserID = req.UserID
		if err := req.Preferences.Validate(); err != nil {
			h.writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		if err := h.storage.SavePreferences(r.Context(), req.Preferences); err != nil {
			h.logger.Error("Failed to save preferences", "error", err)
			h.writeError(w, http.StatusInternalServerError, "Failed to save preferences")
			return
		}
	}

	g := &game.SavedGame{
		GameName:    req.GameName,
		UserID:      req.UserID,
		CharacterID: characterID,
	}
	if err := g.Validate(); err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.storage.CreateGame(r.Context(), g); err != nil {
		if isUniqueViolation(err) {
			h.writeError(w, http.StatusConflict, "A game with this name already exists")
			return
		}
		h.logger.Error("Failed to create game", "error", err)
		h.writeError(w, http.StatusInternalServerError, "Failed to create game")
		return
	}

	h.logger.Info("Game created", "game_id", g.ID, "user_id", g.UserID)
	h.writeJSON(w, http.StatusCreated, g)
}

func (h *GamesHandler) handleList(w http.ResponseWriter, r *http.Request) {
	userIDStr := r.URL.Query().Get("user_id")
	if userIDStr == "" {
		h.writeError(w, http.StatusBadRequest, "user_id query parameter is required")
		return
	}
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid user_id format")
		return
	}

	games, err := h.storage.ListGames(r.Context(), userID)
	if err != nil {
		h.logger.Error("Failed to list games", "error", err)
		h.writeError(w, http.StatusInternalServerError, "Failed to list games")
		return
	}
	if games == nil {
		games = []game.SavedGame{}
	}
	h.writeJSON(w, http.StatusOK, games)
}

func (h *GamesHandler) handleRead(w http.ResponseWriter, r *http.Request, gameID uuid.UUID) {
	g, err := h.storage.FindGame(r.Context(), gameID)
	if err != nil {
		h.logger.Error("Failed to find game", "error", err)
		h.writeError(w, http.StatusInternalServerError, "Failed to load game")
		return
	}
	if g == nil {
		h.writeError(w, http.StatusNotFound, "Game not found")
		return
	}

	turns, err := h.storage.ListTurns(r.Context(), gameID)
	if err != nil {
		h.logger.Error("Failed to load turns", "error", err)
		h.writeError(w, http.StatusInternalServerError, "Failed to load game")
		return
	}
	g.Turns = turns
	h.writeJSON(w, http.StatusOK, g)
}

func (h *GamesHandler) handleDelete(w http.ResponseWriter, r *http.Request, gameID uuid.UUID) {
	g, err := h.storage.FindGame(r.Context(), gameID)
	if err != nil {
		h.logger.Error("Failed to find game", "error", err)
		h.writeError(w, http.StatusInternalServerError, "Failed to delete game")
		return
	}
	if g == nil {
		h.writeError(w, http.StatusNotFound, "Game not found")
		return
	}

	if err := h.storage.DeleteGame(r.Context(), gameID); err != nil {
		h.logger.Error("Failed to delete game", "error", err)
		h.writeError(w, http.StatusInternalServerError, "Failed to delete game")
		return
	}

	h.logger.Info("Game deleted", "game_id", gameID)
	w.WriteHeader(http.StatusNoContent)
}

// isUniqueViolation reports a duplicate-key error on the game name index.
// gorm translates driver errors to ErrDuplicatedKey; the string check covers
// drivers the translation misses.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique") || strings.Contains(msg, "duplicate")
}
