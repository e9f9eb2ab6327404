// internal/game/session.go
//
// Session construction and the ACTIVE → COMPLETED state machine.
// A session is created ACTIVE with a full guess budget and an empty word
// set; it transitions to COMPLETED exactly once (budget exhausted, or
// every guessable word found) and never reverts.

package game

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/newswordy/go-server/internal/scoreboard"
)

const (
	DefaultClassicGuesses = 3
	DefaultGuesses        = 5
	MaxClassicGuesses     = 10
	DefaultScoreboardSize = 10
	MaxScoreboardSize     = 50
)

// Config carries the game-creation parameters from the API layer.
// Zero MaxGuesses/ScoreboardSize mean "use the default".
type Config struct {
	Variant        Variant
	Period         scoreboard.TimePeriod
	Sources        []scoreboard.Source
	SourcesGroupA  []scoreboard.Source
	SourcesGroupB  []scoreboard.Source
	AnchorWord     string
	MaxGuesses     int
	Unlimited      bool
	ScoreboardSize int
}

// NewSession validates cfg, applies defaults, and returns an ACTIVE
// session (board not yet attached). Rules:
//   - Classic: default 3 guesses, max 10, unlimited not allowed.
//   - Other variants: default 5, unlimited allowed.
//   - Scoreboard size: default 10, max 50.
//   - Associate variants require an anchor word (normalized like a guess).
//   - Comparison variants require both source groups; the rest require a
//     single non-empty source set.
func NewSession(cfg Config, owner Owner, now time.Time) (*Session, error) {
	size := cfg.ScoreboardSize
	if size == 0 {
		size = DefaultScoreboardSize
	}
	if size < 1 || size > MaxScoreboardSize {
		return nil, fmt.Errorf("%w: scoreboard size must be 1-%d", ErrInvalidConfig, MaxScoreboardSize)
	}

	var budget GuessBudget
	switch {
	case cfg.Unlimited && cfg.Variant == Classic:
		return nil, fmt.Errorf("%w: classic games cannot be unlimited", ErrInvalidConfig)
	case cfg.Unlimited:
		budget = UnlimitedGuesses()
	case cfg.MaxGuesses == 0 && cfg.Variant == Classic:
		budget = FiniteGuesses(DefaultClassicGuesses)
	case cfg.MaxGuesses == 0:
		budget = FiniteGuesses(DefaultGuesses)
	case cfg.MaxGuesses < 1:
		return nil, fmt.Errorf("%w: max guesses must be at least 1", ErrInvalidConfig)
	case cfg.Variant == Classic && cfg.MaxGuesses > MaxClassicGuesses:
		return nil, fmt.Errorf("%w: classic games allow at most %d guesses", ErrInvalidConfig, MaxClassicGuesses)
	default:
		budget = FiniteGuesses(cfg.MaxGuesses)
	}

	anchor := ""
	if cfg.Variant.Anchored() {
		var err error
		anchor, err = NormalizeWord(cfg.AnchorWord)
		if err != nil {
			return nil, fmt.Errorf("%w: anchor word: %v", ErrInvalidConfig, err)
		}
	} else if cfg.AnchorWord != "" {
		return nil, fmt.Errorf("%w: anchor word only applies to associate variants", ErrInvalidConfig)
	}

	if cfg.Variant.Comparative() {
		if len(cfg.SourcesGroupA) == 0 || len(cfg.SourcesGroupB) == 0 {
			return nil, fmt.Errorf("%w: comparison games need sources for both groups", ErrInvalidConfig)
		}
	} else if len(cfg.Sources) == 0 {
		return nil, fmt.Errorf("%w: at least one source required", ErrInvalidConfig)
	}

	return &Session{
		ID:             uuid.NewString(),
		Variant:        cfg.Variant,
		Period:         cfg.Period,
		Sources:        cfg.Sources,
		SourcesGroupA:  cfg.SourcesGroupA,
		SourcesGroupB:  cfg.SourcesGroupB,
		AnchorWord:     anchor,
		MaxGuesses:     budget,
		ScoreboardSize: size,
		Guessed:        NewWordSet(),
		Remaining:      budget,
		CreatedAt:      now.UTC(),
		Owner:          owner,
	}, nil
}

// TotalGuessable is the number of distinct words that can still be hit on
// this session's board. With full data this equals scoreboardSize for
// single-list games and 2×scoreboardSize for comparison games; sparse
// boards (or a word ranking in both group lists) shrink it so a session
// can always finish by exhausting the board.
func (s *Session) TotalGuessable() int {
	if s.Board == nil {
		if s.Variant.Comparative() {
			return 2 * s.ScoreboardSize
		}
		return s.ScoreboardSize
	}
	if !s.Variant.Comparative() {
		return len(s.Board.Single)
	}
	distinct := make(map[string]struct{}, len(s.Board.GroupA)+len(s.Board.GroupB))
	for _, e := range s.Board.GroupA {
		distinct[e.Word] = struct{}{}
	}
	for _, e := range s.Board.GroupB {
		distinct[e.Word] = struct{}{}
	}
	return len(distinct)
}

// completeIfDone fires the ACTIVE → COMPLETED transition when either the
// finite budget hit zero or every guessable word has been found. COMPLETED
// is absorbing.
func (s *Session) completeIfDone(now time.Time) {
	if s.Completed {
		return
	}
	total := s.TotalGuessable()
	if s.Remaining.Exhausted() || (total > 0 && s.Guessed.Len() >= total) {
		s.Completed = true
		t := now.UTC()
		s.CompletedAt = &t
	}
}
