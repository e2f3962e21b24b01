package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/jwebster45206/campaign-engine/pkg/character"
	"github.com/jwebster45206/campaign-engine/pkg/game"
)

// GormStorage persists game state in a relational database. SQLite covers
// local development; Postgres is for deployed environments.
type GormStorage struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewGormStorage(driver, dsn string, logger *slog.Logger) (*GormStorage, error) {
	var dialector gorm.Dialector
	switch driver {
	case "postgres", "postgresql":
		dialector = postgres.Open(dsn)
	case "sqlite", "sqlite3":
		dialector = sqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.AutoMigrate(
		&game.SavedGame{},
		&game.ConversationTurn{},
		&game.Preferences{},
		&character.Sheet{},
	); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	logger.Info("Database connected", "driver", driver)
	return &GormStorage{db: db, logger: logger}, nil
}

func (s *GormStorage) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (s *GormStorage) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (s *GormStorage) CreateGame(ctx context.Context, g *game.SavedGame) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	if g.CreatedAt.IsZero() {
		g.CreatedAt = time.Now().UTC()
	}
	return s.db.WithContext(ctx).Create(g).Error
}

func (s *GormStorage) FindGame(ctx context.Context, id uuid.UUID) (*game.SavedGame, error) {
	var g game.SavedGame
	err := s.db.WithContext(ctx).First(&g, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find game: %w", err)
	}
	return &g, nil
}

func (s *GormStorage) ListGames(ctx context.Context, userID uuid.UUID) ([]game.SavedGame, error) {
	var games []game.SavedGame
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&games).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list games: %w", err)
	}
	return games, nil
}

func (s *GormStorage) DeleteGame(ctx context.Context, id uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// SQLite does not always enforce the cascade, so turns are
		// removed explicitly.
		if err := tx.Where("game_id = ?", id).Delete(&game.ConversationTurn{}).Error; err != nil {
			return err
		}
		return tx.Delete(&game.SavedGame{}, "id = ?", id).Error
	})
}

func (s *GormStorage) ListTurns(ctx context.Context, gameID uuid.UUID) ([]game.ConversationTurn, error) {
	var turns []game.ConversationTurn
	err := s.db.WithContext(ctx).
		Where("game_id = ?", gameID).
		Order("turn_order asc").
		Find(&turns).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list turns: %w", err)
	}
	return turns, nil
}

func (s *GormStorage) AppendTurn(ctx context.Context, gameID uuid.UUID, userInput string, gmResponse string) (*game.ConversationTurn, error) {
	turn := &game.ConversationTurn{
		GameID:     gameID,
		UserInput:  userInput,
		GMResponse: gmResponse,
		CreatedAt:  time.Now().UTC(),
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&game.ConversationTurn{}).
			Where("game_id = ?", gameID).
			Count(&count).Error; err != nil {
			return err
		}
		turn.Order = int(count) + 1
		return tx.Create(turn).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to append turn: %w", err)
	}
	return turn, nil
}

func (s *GormStorage) CreateCharacter(ctx context.Context, sheet *character.Sheet) error {
	if sheet.ID == uuid.Nil {
		sheet.ID = uuid.New()
	}
	return s.db.WithContext(ctx).Create(sheet).Error
}

func (s *GormStorage) GetCharacter(ctx context.Context, id uuid.UUID) (*character.Sheet, error) {
	var sheet character.Sheet
	err := s.db.WithContext(ctx).First(&sheet, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get character: %w", err)
	}
	return &sheet, nil
}

func (s *GormStorage) GetPreferences(ctx context.Context, userID uuid.UUID) (*game.Preferences, error) {
	var prefs game.Preferences
	err := s.db.WithContext(ctx).First(&prefs, "user_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get preferences: %w", err)
	}
	return &prefs, nil
}

func (s *GormStorage) SavePreferences(ctx context.Context, prefs *game.Preferences) error {
	prefs.UpdatedAt = time.Now().UTC()

	existing, err := s.GetPreferences(ctx, prefs.UserID)
	if err != nil {
		return err
	}
	if existing != nil {
		prefs.ID = existing.ID
		return s.db.WithContext(ctx).Save(prefs).Error
	}
	return s.db.WithContext(ctx).Create(prefs).Error
}
