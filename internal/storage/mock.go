package storage

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jwebster45206/campaign-engine/pkg/character"
	"github.com/jwebster45206/campaign-engine/pkg/game"
)

// MockStorage is an in-memory Storage for handler and orchestrator tests.
type MockStorage struct {
	mu         sync.RWMutex
	games      map[uuid.UUID]*game.SavedGame
	turns      map[uuid.UUID][]game.ConversationTurn
	characters map[uuid.UUID]*character.Sheet
	prefs      map[uuid.UUID]*game.Preferences
	nextTurnID uint

	// Err, when set, is returned by every operation.
	Err error
}

var _ Storage = (*MockStorage)(nil)

func NewMockStorage() *MockStorage {
	return &MockStorage{
		games:      make(map[uuid.UUID]*game.SavedGame),
		turns:      make(map[uuid.UUID][]game.ConversationTurn),
		characters: make(map[uuid.UUID]*character.Sheet),
		prefs:      make(map[uuid.UUID]*game.Preferences),
	}
}

func (m *MockStorage) Ping(ctx context.Context) error { return m.Err }
func (m *MockStorage) Close() error                   { return m.Err }

func (m *MockStorage) CreateGame(ctx context.Context, g *game.SavedGame) error {
	if m.Err != nil {
		return m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	if g.CreatedAt.IsZero() {
		g.CreatedAt = time.Now().UTC()
	}
	cp := *g
	m.games[g.ID] = &cp
	return nil
}

func (m *MockStorage) FindGame(ctx context.Context, id uuid.UUID) (*game.SavedGame, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	g, ok := m.games[id]
	if !ok {
		return nil, nil
	}
	cp := *g
	return &cp, nil
}

func (m *MockStorage) ListGames(ctx context.Context, userID uuid.UUID) ([]game.SavedGame, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []game.SavedGame
	for _, g := range m.games {
		if g.UserID == userID {
			out = append(out, *g)
		}
	}
	return out, nil
}

func (m *MockStorage) DeleteGame(ctx context.Context, id uuid.UUID) error {
	if m.Err != nil {
		return m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.games, id)
	delete(m.turns, id)
	return nil
}

func (m *MockStorage) ListTurns(ctx context.Context, gameID uuid.UUID) ([]game.ConversationTurn, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]game.ConversationTurn(nil), m.turns[gameID]...), nil
}

func (m *MockStorage) AppendTurn(ctx context.Context, gameID uuid.UUID, userInput string, gmResponse string) (*game.ConversationTurn, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextTurnID++
	turn := game.ConversationTurn{
		ID:         m.nextTurnID,
		GameID:     gameID,
		Order:      len(m.turns[gameID]) + 1,
		UserInput:  userInput,
		GMResponse: gmResponse,
		CreatedAt:  time.Now().UTC(),
	}
	m.turns[gameID] = append(m.turns[gameID], turn)
	return &turn, nil
}

func (m *MockStorage) CreateCharacter(ctx context.Context, sheet *character.Sheet) error {
	if m.Err != nil {
		return m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if sheet.ID == uuid.Nil {
		sheet.ID = uuid.New()
	}
	cp := *sheet
	m.characters[sheet.ID] = &cp
	return nil
}

func (m *MockStorage) GetCharacter(ctx context.Context, id uuid.UUID) (*character.Sheet, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	sheet, ok := m.characters[id]
	if !ok {
		return nil, nil
	}
	cp := *sheet
	return &cp, nil
}

func (m *MockStorage) GetPreferences(ctx context.Context, userID uuid.UUID) (*game.Preferences, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	prefs, ok := m.prefs[userID]
	if !ok {
		return nil, nil
	}
	cp := *prefs
	return &cp, nil
}

func (m *MockStorage) SavePreferences(ctx context.Context, prefs *game.Preferences) error {
	if m.Err != nil {
		return m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	prefs.UpdatedAt = time.Now().UTC()
	cp := *prefs
	m.prefs[prefs.UserID] = &cp
	return nil
}
