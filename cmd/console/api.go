package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"

	"github.com/jwebster45206/campaign-engine/pkg/chat"
	"github.com/jwebster45206/campaign-engine/pkg/game"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

func getGame(client *http.Client, baseURL string, gameID uuid.UUID) (*game.SavedGame, error) {
	resp, err := client.Get(fmt.Sprintf("%s/v1/games/%s", baseURL, gameID))
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close() // Ignore error in defer
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errorResp ErrorResponse
		if err := json.Unmarshal(body, &errorResp); err != nil {
			return nil, fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(body))
		}
		return nil, fmt.Errorf("failed to get game: %s", errorResp.Error)
	}

	var g game.SavedGame
	if err := json.Unmarshal(body, &g); err != nil {
		return nil, fmt.Errorf("failed to parse game response: %w", err)
	}
	return &g, nil
}

func postTurn(client *http.Client, baseURL string, gameID uuid.UUID, userInput string) (*chat.TurnResponse, error) {
	reqBody, err := json.Marshal(chat.TurnRequest{
		GameID:    gameID,
		UserInput: userInput,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	resp, err := client.Post(baseURL+"/v1/turn", "application/json", bytes.NewBuffer(reqBody))
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close() // Ignore error in defer
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var turnResp chat.TurnResponse
	if err := json.Unmarshal(body, &turnResp); err != nil {
		return nil, fmt.Errorf("failed to parse turn response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		if turnResp.Error != "" {
			return nil, fmt.Errorf("%s", turnResp.Error)
		}
		return nil, fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(body))
	}
	return &turnResp, nil
}
