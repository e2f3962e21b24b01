package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/jwebster45206/campaign-engine/internal/orchestrator"
	"github.com/jwebster45206/campaign-engine/internal/services"
	"github.com/jwebster45206/campaign-engine/pkg/chat"
)

// TurnService runs one game turn. Satisfied by orchestrator.TurnProcessor.
type TurnService interface {
	ProcessTurn(ctx context.Context, req *chat.TurnRequest) (*chat.TurnResponse, error)
}

// TurnHandler handles player turn submissions.
type TurnHandler struct {
	turns  TurnService
	logger *slog.Logger
}

// NewTurnHandler creates a new turn handler
func NewTurnHandler(turns TurnService, logger *slog.Logger) *TurnHandler {
	return &TurnHandler{
		turns:  turns,
		logger: logger,
	}
}

func writeTurnError(w http.ResponseWriter, logger *slog.Logger, status int, msg string) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(chat.TurnResponse{Error: msg}); err != nil {
		logger.Error("Error encoding turn error response", "error", err)
	}
}

// ServeHTTP handles HTTP requests for turns
func (h *TurnHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if r.Method != http.MethodPost {
		h.logger.Warn("Method not allowed for turn endpoint",
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr)
		writeTurnError(w, h.logger, http.StatusMethodNotAllowed, "Method not allowed. Only POST is supported.")
		return
	}

	var request chat.TurnRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		h.logger.Warn("Invalid turn request body", "error", err)
		writeTurnError(w, h.logger, http.StatusBadRequest, "Invalid request body. Expected JSON with 'game_id' and 'user_input' fields.")
		return
	}

	if err := request.Validate(); err != nil {
		h.logger.Warn("Invalid turn request", "error", err)
		writeTurnError(w, h.logger, http.StatusBadRequest, err.Error())
		return
	}

	h.logger.Info("Turn submitted",
		"game_id", request.GameID,
		"remote_addr", r.RemoteAddr)

	response, err := h.turns.ProcessTurn(r.Context(), &request)
	if err != nil {
		switch {
		case errors.Is(err, orchestrator.ErrGameNotFound):
			writeTurnError(w, h.logger, http.StatusNotFound, "No game found. Please start a new game.")
		case errors.Is(err, orchestrator.ErrCharacterNotFound):
			writeTurnError(w, h.logger, http.StatusNotFound, "No character found for this game.")
		case errors.Is(err, orchestrator.ErrPreferencesNotSet):
			writeTurnError(w, h.logger, http.StatusNotFound, "Game preferences are not set. Please set preferences first.")
		case errors.Is(err, services.ErrTurnInProgress):
			writeTurnError(w, h.logger, http.StatusConflict, "A turn is already in progress for this game. Please wait.")
		default:
			h.logger.Error("Turn processing failed", "game_id", request.GameID, "error", err)
			writeTurnError(w, h.logger, http.StatusInternalServerError, "Failed to process turn. Please try again.")
		}
		return
	}

	if err := json.NewEncoder(w).Encode(response); err != nil {
		h.logger.Error("Error encoding turn response", "error", err)
	}
}
