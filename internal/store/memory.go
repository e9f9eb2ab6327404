// internal/store/memory.go
//
// In-memory implementations of the game store interfaces. Used for tests
// and for ephemeral play when durability is not required; state is lost
// on restart. All maps are guarded by RWMutexes.

package store

import (
	"context"
	"sync"

	"github.com/newswordy/go-server/internal/game"
)

// MemorySessions is a map-backed game.SessionStore.
type MemorySessions struct {
	mu       sync.RWMutex
	sessions map[string]*game.Session
}

func NewMemorySessions() *MemorySessions {
	return &MemorySessions{sessions: make(map[string]*game.Session)}
}

func (m *MemorySessions) Save(ctx context.Context, s *game.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = s
	return nil
}

func (m *MemorySessions) Get(ctx context.Context, id string) (*game.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if s, ok := m.sessions[id]; ok {
		return s, nil
	}
	return nil, game.ErrStoreNotFound
}

// MemoryGuesses is an append-only in-memory game.GuessStore.
type MemoryGuesses struct {
	mu     sync.RWMutex
	byGame map[string][]game.Guess
}

func NewMemoryGuesses() *MemoryGuesses {
	return &MemoryGuesses{byGame: make(map[string][]game.Guess)}
}

func (m *MemoryGuesses) Append(ctx context.Context, g *game.Guess) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.byGame[g.GameID] = append(m.byGame[g.GameID], *g)
	return nil
}

func (m *MemoryGuesses) ListByGame(ctx context.Context, gameID string) ([]game.Guess, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]game.Guess, len(m.byGame[gameID]))
	copy(out, m.byGame[gameID])
	return out, nil
}

// MemoryStats is a per-user game.StatsStore. Apply holds the write lock
// for the whole read-fold-write so concurrent completions cannot lose
// updates.
type MemoryStats struct {
	mu    sync.RWMutex
	stats map[string]game.UserStats
}

func NewMemoryStats() *MemoryStats {
	return &MemoryStats{stats: make(map[string]game.UserStats)}
}

func (m *MemoryStats) Get(ctx context.Context, userID string) (game.UserStats, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s := m.stats[userID]
	s.UserID = userID
	return s, nil
}

func (m *MemoryStats) Apply(ctx context.Context, userID string, fold func(game.UserStats) game.UserStats) (game.UserStats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := m.stats[userID]
	s.UserID = userID
	s = fold(s)
	m.stats[userID] = s
	return s, nil
}
