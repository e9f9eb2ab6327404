// internal/game/service.go
//
// Service orchestrates one game's lifecycle against external
// collaborators: the scoreboard provider (one fetch per partition, at
// creation only) and the session/guess/stats stores. Identity is always
// passed in explicitly; nothing here reads ambient request state.
//
// submitGuess is serialized per session with a keyed mutex so the
// read-evaluate-write cycle cannot lose updates; evaluation runs against
// a clone and state is only published after the store writes succeed.

package game

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/newswordy/go-server/internal/scoreboard"
)

// ErrStoreNotFound is what stores return for a missing session; the
// service maps it to ErrSessionNotFound.
var ErrStoreNotFound = errors.New("not found")

// SessionStore persists game sessions. Implementations may be backed by
// memory, SQLite, etc.
type SessionStore interface {
	Save(ctx context.Context, s *Session) error
	Get(ctx context.Context, id string) (*Session, error)
}

// GuessStore appends guess records.
type GuessStore interface {
	Append(ctx context.Context, g *Guess) error
	ListByGame(ctx context.Context, gameID string) ([]Guess, error)
}

// StatsStore applies the stats fold atomically per user.
type StatsStore interface {
	Get(ctx context.Context, userID string) (UserStats, error)
	Apply(ctx context.Context, userID string, fold func(UserStats) UserStats) (UserStats, error)
}

// Service is the core game API consumed by the HTTP layer.
type Service struct {
	provider scoreboard.Provider
	sessions SessionStore
	guesses  GuessStore
	stats    StatsStore

	locks sync.Map // session id → *sync.Mutex
	now   func() time.Time
}

func NewService(p scoreboard.Provider, sessions SessionStore, guesses GuessStore, stats StatsStore) *Service {
	return &Service{
		provider: p,
		sessions: sessions,
		guesses:  guesses,
		stats:    stats,
		now:      time.Now,
	}
}

// Result of one submitted guess. Guess is nil for duplicate/invalid
// outcomes; those never create a record or mutate state.
type Result struct {
	Outcome Outcome  `json:"outcome"`
	Session *Session `json:"session"`
	Guess   *Guess   `json:"guess,omitempty"`
	Message string   `json:"message,omitempty"`
}

// CreateGame validates cfg, fetches + caches the scoreboard (one fetch
// per partition), and persists the new ACTIVE session.
func (svc *Service) CreateGame(ctx context.Context, cfg Config, owner Owner) (*Session, error) {
	sess, err := NewSession(cfg, owner, svc.now())
	if err != nil {
		return nil, err
	}

	board := &scoreboard.Board{}
	ref := sess.CreatedAt
	if sess.Variant.Comparative() {
		if board.GroupA, err = svc.provider.Fetch(ctx, scoreboard.Query{
			Period: sess.Period, Sources: sess.SourcesGroupA, AnchorWord: sess.AnchorWord,
			Size: sess.ScoreboardSize, Group: scoreboard.GroupA, Reference: ref,
		}); err != nil {
			return nil, fmt.Errorf("fetch group A scoreboard: %w", err)
		}
		if board.GroupB, err = svc.provider.Fetch(ctx, scoreboard.Query{
			Period: sess.Period, Sources: sess.SourcesGroupB, AnchorWord: sess.AnchorWord,
			Size: sess.ScoreboardSize, Group: scoreboard.GroupB, Reference: ref,
		}); err != nil {
			return nil, fmt.Errorf("fetch group B scoreboard: %w", err)
		}
	} else {
		if board.Single, err = svc.provider.Fetch(ctx, scoreboard.Query{
			Period: sess.Period, Sources: sess.Sources, AnchorWord: sess.AnchorWord,
			Size: sess.ScoreboardSize, Reference: ref,
		}); err != nil {
			return nil, fmt.Errorf("fetch scoreboard: %w", err)
		}
	}
	sess.Board = board

	if err := svc.sessions.Save(ctx, sess); err != nil {
		return nil, fmt.Errorf("%w: save session: %v", ErrPersistence, err)
	}
	return sess, nil
}

// SubmitGuess evaluates one word for the caller identified by owner.
// Invalid and duplicate words come back as informational outcomes with
// the session untouched; completed/exhausted/missing/foreign sessions are
// errors. On a hit or miss the guess record and updated session are
// persisted before the new state is published: a failed write surfaces
// ErrPersistence and leaves the session unchanged, so retrying the same
// guess is safe.
func (svc *Service) SubmitGuess(ctx context.Context, sessionID string, caller Owner, rawWord string, groupHint scoreboard.Group) (*Result, error) {
	unlock := svc.lock(sessionID)
	defer unlock()

	sess, err := svc.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !sess.Owner.Anonymous && sess.Owner.ID != caller.ID {
		return nil, ErrNotAuthorized
	}

	next := sess.Clone()
	guess, err := next.ApplyGuess(rawWord, groupHint, svc.now())
	switch {
	case errors.Is(err, ErrInvalidWord), errors.Is(err, ErrDuplicateGuess):
		outcome := OutcomeInvalid
		if errors.Is(err, ErrDuplicateGuess) {
			outcome = OutcomeDuplicate
		}
		return &Result{Outcome: outcome, Session: sess, Message: err.Error()}, nil
	case err != nil:
		return nil, err
	}

	if err := svc.guesses.Append(ctx, guess); err != nil {
		return nil, fmt.Errorf("%w: append guess: %v", ErrPersistence, err)
	}
	if err := svc.sessions.Save(ctx, next); err != nil {
		return nil, fmt.Errorf("%w: save session: %v", ErrPersistence, err)
	}

	if next.Completed && !next.Owner.Anonymous {
		if _, err := svc.stats.Apply(ctx, next.Owner.ID, func(s UserStats) UserStats {
			return FoldStats(s, next.Score)
		}); err != nil {
			return nil, fmt.Errorf("%w: fold stats: %v", ErrPersistence, err)
		}
	}

	outcome := OutcomeMiss
	if guess.Hit() {
		outcome = OutcomeHit
	}
	return &Result{Outcome: outcome, Session: next, Guess: guess}, nil
}

// GetState returns the session projection; available indefinitely, even
// after completion.
func (svc *Service) GetState(ctx context.Context, sessionID string) (*Session, error) {
	return svc.load(ctx, sessionID)
}

// Guesses lists a session's guess records in submission order.
func (svc *Service) Guesses(ctx context.Context, sessionID string) ([]Guess, error) {
	if _, err := svc.load(ctx, sessionID); err != nil {
		return nil, err
	}
	return svc.guesses.ListByGame(ctx, sessionID)
}

// GetScoreboard returns the session's board with progressive reveal:
// until the session completes, entries whose words have not been guessed
// keep their rank and frequency but have the word and supporting articles
// redacted.
func (svc *Service) GetScoreboard(ctx context.Context, sessionID string) (*scoreboard.Board, error) {
	sess, err := svc.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if sess.Completed {
		return sess.Board, nil
	}
	return &scoreboard.Board{
		Single: redact(sess.Board.Single, sess.Guessed),
		GroupA: redact(sess.Board.GroupA, sess.Guessed),
		GroupB: redact(sess.Board.GroupB, sess.Guessed),
	}, nil
}

// Stats returns a user's running totals (zero value for unknown users).
func (svc *Service) Stats(ctx context.Context, userID string) (UserStats, error) {
	return svc.stats.Get(ctx, userID)
}

func redact(entries []scoreboard.Entry, guessed *WordSet) []scoreboard.Entry {
	if entries == nil {
		return nil
	}
	out := make([]scoreboard.Entry, len(entries))
	for i, e := range entries {
		if !guessed.Contains(e.Word) {
			e.Word = ""
			e.Articles = nil
		}
		out[i] = e
	}
	return out
}

func (svc *Service) load(ctx context.Context, id string) (*Session, error) {
	sess, err := svc.sessions.Get(ctx, id)
	if errors.Is(err, ErrStoreNotFound) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: load session: %v", ErrPersistence, err)
	}
	return sess, nil
}

// lock serializes guess submissions per session.
func (svc *Service) lock(id string) func() {
	v, _ := svc.locks.LoadOrStore(id, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}
