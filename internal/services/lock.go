package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrTurnInProgress is returned when a second turn is submitted for a game
// that is still processing one.
var ErrTurnInProgress = errors.New("a turn is already in progress for this game")

// GameLock serializes turn processing per game. Only one in-flight turn may
// advance a given game at a time; without this, concurrent appends could
// assign the same turn order.
type GameLock interface {
	// Acquire takes the lock for gameID and returns a release func, or
	// ErrTurnInProgress if the lock is held.
	Acquire(ctx context.Context, gameID uuid.UUID) (func(), error)
}

// MemoryGameLock is the in-process implementation, sufficient for a single
// api instance and for tests.
type MemoryGameLock struct {
	mu   sync.Mutex
	held map[uuid.UUID]struct{}
}

func NewMemoryGameLock() *MemoryGameLock {
	return &MemoryGameLock{held: make(map[uuid.UUID]struct{})}
}

func (l *MemoryGameLock) Acquire(ctx context.Context, gameID uuid.UUID) (func(), error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.held[gameID]; ok {
		return nil, ErrTurnInProgress
	}
	l.held[gameID] = struct{}{}

	return func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		delete(l.held, gameID)
	}, nil
}

// RedisGameLock serializes turns across api instances with SETNX. The TTL
// bounds how long a crashed instance can leave a game locked.
type RedisGameLock struct {
	client *redis.Client
	ttl    time.Duration
}

const DefaultLockTTL = 5 * time.Minute

func NewRedisGameLock(client *redis.Client, ttl time.Duration) *RedisGameLock {
	if ttl <= 0 {
		ttl = DefaultLockTTL
	}
	return &RedisGameLock{client: client, ttl: ttl}
}

func lockKey(gameID uuid.UUID) string {
	return fmt.Sprintf("turnlock:%s", gameID.String())
}

func (l *RedisGameLock) Acquire(ctx context.Context, gameID uuid.UUID) (func(), error) {
	key := lockKey(gameID)

	ok, err := l.client.SetNX(ctx, key, "1", l.ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to acquire game lock: %w", err)
	}
	if !ok {
		return nil, ErrTurnInProgress
	}

	return func() {
		// Release outlives the turn's context.
		releaseCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = l.client.Del(releaseCtx, key).Err()
	}, nil
}
