// internal/game/evaluate.go
//
// Guess evaluation: normalization, rank-based scoring, and the mutation
// of session state for one submitted word.
//
// Scoring: a hit at 1-based rank R of an N-entry partition is worth
// round(1000 * (1 - (R-1)/N)) points. Rank 1 is always 1000, rank N is
// 1000/N rounded, and every rank on the board scores above zero.

package game

import (
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/newswordy/go-server/internal/scoreboard"
)

const (
	minWordLen = 2
	maxWordLen = 20
)

// NormalizeWord trims and lower-cases a raw guess. Returns ErrInvalidWord
// unless the result is 2–20 ASCII letters.
func NormalizeWord(raw string) (string, error) {
	w := strings.ToLower(strings.TrimSpace(raw))
	if len(w) < minWordLen || len(w) > maxWordLen {
		return "", ErrInvalidWord
	}
	for _, r := range w {
		if r < 'a' || r > 'z' {
			return "", ErrInvalidWord
		}
	}
	return w, nil
}

// WordScore computes the points for a hit at rank (1-based) out of n
// partition entries. n must be positive.
func WordScore(rank, n int) int {
	return int(math.Round(1000 * (1 - float64(rank-1)/float64(n))))
}

// ApplyGuess validates and scores one raw word against the session's
// board, mutating the session. groupHint resolves the comparison-game
// ambiguity of a word ranking in both group lists; it is ignored for
// single-list variants.
//
// Exactly one Guess is produced per hit or miss; duplicate and invalid
// words, exhausted budgets, and completed sessions return an error with
// zero state change. A hit adds the word and its score without touching
// the budget; a miss burns one guess (unless unlimited). The completion
// invariant is re-checked after every mutation.
func (s *Session) ApplyGuess(raw string, groupHint scoreboard.Group, now time.Time) (*Guess, error) {
	word, err := NormalizeWord(raw)
	if err != nil {
		return nil, err
	}
	if s.Completed {
		return nil, ErrGameCompleted
	}
	if s.Remaining.Exhausted() {
		return nil, ErrNoGuessesRemaining
	}
	if s.Guessed.Contains(word) {
		return nil, ErrDuplicateGuess
	}

	g := &Guess{
		ID:        uuid.NewString(),
		GameID:    s.ID,
		UserID:    s.Owner.ID,
		Word:      word,
		CreatedAt: now.UTC(),
	}

	if entry, n, ok := s.Variant.lookup(s.Board, word, groupHint); ok && n > 0 {
		g.Frequency = entry.Frequency
		g.Rank = entry.Rank
		g.Group = entry.Group
		g.Score = WordScore(entry.Rank, n)
		s.Guessed.Add(word)
		s.Score += g.Score
	} else {
		s.Remaining = s.Remaining.decrement()
	}

	s.completeIfDone(now)
	return g, nil
}
