package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
)

type ConsoleConfig struct {
	APIBaseURL string
	GameID     uuid.UUID
	Timeout    time.Duration
}

func main() {
	cfg := &ConsoleConfig{
		APIBaseURL: getEnv("API_BASE_URL", "http://localhost:8080"),
		Timeout:    5 * time.Minute, // a turn makes several LLM round trips
	}

	gameIDStr := os.Getenv("GAME_ID")
	if gameIDStr == "" {
		fmt.Fprintf(os.Stderr, "GAME_ID is required. Create a game first:\n  curl -X POST %s/v1/games -d '{...}'\n", cfg.APIBaseURL)
		os.Exit(1)
	}
	gameID, err := uuid.Parse(gameIDStr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid GAME_ID: %v\n", err)
		os.Exit(1)
	}
	cfg.GameID = gameID

	client := &http.Client{
		Timeout: cfg.Timeout,
	}

	if !testConnection(client, cfg.APIBaseURL) {
		fmt.Fprintf(os.Stderr, "Could not connect to API. Please ensure the API is running.\nTry: docker-compose up -d\n")
		os.Exit(1)
	}

	g, err := getGame(client, cfg.APIBaseURL, cfg.GameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load game: %v\n", err)
		os.Exit(1)
	}

	p := tea.NewProgram(NewConsoleUI(cfg, client, g),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running program: %v\n", err)
		os.Exit(1)
	}
}

func testConnection(client *http.Client, baseURL string) bool {
	resp, err := client.Get(baseURL + "/health")
	if err != nil {
		return false
	}
	defer func() {
		_ = resp.Body.Close() // Ignore error in defer
	}()
	return resp.StatusCode == http.StatusOK
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
