// internal/game/types.go
//
// Core type definitions for a game session:
//   - Variant: the four game modes and their partitioning rules.
//   - GuessBudget: finite-or-unlimited guess allowance (no -1 arithmetic).
//   - WordSet: ordered-insertion set of guessed words.
//   - Session: mutable state of one play-through.
//   - Guess, Outcome, Owner, UserStats.

package game

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/newswordy/go-server/internal/scoreboard"
)

// Variant is one of the four game modes.
type Variant string

const (
	Classic          Variant = "classic"
	Associate        Variant = "associate"
	Compare          Variant = "compare"
	CompareAssociate Variant = "compare_associate"
)

// ParseVariant validates a wire value.
func ParseVariant(s string) (Variant, error) {
	switch v := Variant(s); v {
	case Classic, Associate, Compare, CompareAssociate:
		return v, nil
	}
	return "", fmt.Errorf("unknown variant %q", s)
}

// Comparative reports whether the variant scores two source groups
// independently.
func (v Variant) Comparative() bool {
	return v == Compare || v == CompareAssociate
}

// Anchored reports whether the variant requires an anchor word.
func (v Variant) Anchored() bool {
	return v == Associate || v == CompareAssociate
}

// Outcome of one submitted guess.
type Outcome string

const (
	OutcomeHit       Outcome = "hit"
	OutcomeMiss      Outcome = "miss"
	OutcomeDuplicate Outcome = "duplicate"
	OutcomeInvalid   Outcome = "invalid"
)

// Owner identifies who a session belongs to: either an authenticated user
// id or a stable anonymous id from the guest cookie.
type Owner struct {
	ID        string `json:"id"`
	Anonymous bool   `json:"anonymous"`
}

// GuessBudget is a tagged finite-or-unlimited guess allowance. The
// unlimited case never decrements and never participates in arithmetic;
// the -1 sentinel exists only in the JSON/store representation.
type GuessBudget struct {
	unlimited bool
	n         int
}

func FiniteGuesses(n int) GuessBudget { return GuessBudget{n: n} }
func UnlimitedGuesses() GuessBudget   { return GuessBudget{unlimited: true} }

// Unlimited reports whether the budget never runs out.
func (b GuessBudget) Unlimited() bool { return b.unlimited }

// Count returns the remaining count for a finite budget; undefined
// (always 0) when unlimited.
func (b GuessBudget) Count() int {
	if b.unlimited {
		return 0
	}
	return b.n
}

// Exhausted reports whether a finite budget has hit zero.
func (b GuessBudget) Exhausted() bool { return !b.unlimited && b.n <= 0 }

// decrement burns one guess; no-op when unlimited or already at zero.
func (b GuessBudget) decrement() GuessBudget {
	if b.unlimited || b.n <= 0 {
		return b
	}
	return GuessBudget{n: b.n - 1}
}

// MarshalJSON encodes the budget as an int, with -1 for unlimited.
func (b GuessBudget) MarshalJSON() ([]byte, error) {
	if b.unlimited {
		return []byte("-1"), nil
	}
	return json.Marshal(b.n)
}

func (b *GuessBudget) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	if n < 0 {
		*b = UnlimitedGuesses()
	} else {
		*b = FiniteGuesses(n)
	}
	return nil
}

// WordSet is an ordered-insertion set of normalized words. The core only
// needs membership and count; the insertion order is kept so the set
// serializes deterministically at the store boundary.
type WordSet struct {
	order []string
	index map[string]struct{}
}

func NewWordSet(words ...string) *WordSet {
	s := &WordSet{index: make(map[string]struct{}, len(words))}
	for _, w := range words {
		s.Add(w)
	}
	return s
}

// Add inserts w; returns false if it was already present.
func (s *WordSet) Add(w string) bool {
	if _, ok := s.index[w]; ok {
		return false
	}
	s.index[w] = struct{}{}
	s.order = append(s.order, w)
	return true
}

func (s *WordSet) Contains(w string) bool {
	_, ok := s.index[w]
	return ok
}

func (s *WordSet) Len() int { return len(s.order) }

// Words returns the members in insertion order (copy).
func (s *WordSet) Words() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

func (s *WordSet) clone() *WordSet { return NewWordSet(s.order...) }

// MarshalJSON encodes the set as a plain string array.
func (s *WordSet) MarshalJSON() ([]byte, error) {
	if s == nil || s.order == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(s.order)
}

func (s *WordSet) UnmarshalJSON(data []byte) error {
	var words []string
	if err := json.Unmarshal(data, &words); err != nil {
		return err
	}
	*s = *NewWordSet(words...)
	return nil
}

// Session holds the mutable state of one play-through. The scoreboard is
// fetched once at creation and never re-fetched; Board is shared and must
// be treated as read-only.
type Session struct {
	ID             string                `json:"id"`
	Variant        Variant               `json:"variant"`
	Period         scoreboard.TimePeriod `json:"timePeriod"`
	Sources        []scoreboard.Source   `json:"sources,omitempty"`
	SourcesGroupA  []scoreboard.Source   `json:"sourcesGroupA,omitempty"`
	SourcesGroupB  []scoreboard.Source   `json:"sourcesGroupB,omitempty"`
	AnchorWord     string                `json:"anchorWord,omitempty"`
	MaxGuesses     GuessBudget           `json:"maxGuesses"`
	ScoreboardSize int                   `json:"scoreboardSize"`
	Score          int                   `json:"score"`
	Guessed        *WordSet              `json:"guessedWords"`
	Remaining      GuessBudget           `json:"remainingGuesses"`
	Completed      bool                  `json:"isCompleted"`
	CreatedAt      time.Time             `json:"createdAt"`
	CompletedAt    *time.Time            `json:"completedAt,omitempty"`
	Owner          Owner                 `json:"owner"`

	Board *scoreboard.Board `json:"-"`
}

// Clone returns a deep copy of the mutable session state. The board is
// shared: it is immutable for the session's lifetime.
func (s *Session) Clone() *Session {
	cl := *s
	cl.Guessed = s.Guessed.clone()
	if s.CompletedAt != nil {
		t := *s.CompletedAt
		cl.CompletedAt = &t
	}
	return &cl
}

// Guess is one append-only record of a submitted word. Rank is zero on a
// miss and 1-based on a hit; Group is set for comparison games when the
// word was found in a group's list.
type Guess struct {
	ID        string           `json:"id"`
	GameID    string           `json:"gameId"`
	UserID    string           `json:"userId"`
	Word      string           `json:"word"`
	Frequency int              `json:"frequency"`
	Score     int              `json:"score"`
	Rank      int              `json:"rank,omitempty"`
	Group     scoreboard.Group `json:"group,omitempty"`
	CreatedAt time.Time        `json:"createdAt"`
}

// Hit reports whether the guess landed on the scoreboard.
func (g *Guess) Hit() bool { return g.Rank > 0 }

// UserStats are a user's running totals across completed games.
type UserStats struct {
	UserID       string  `json:"userId"`
	TotalGames   int     `json:"totalGames"`
	TotalScore   int     `json:"totalScore"`
	AverageScore float64 `json:"averageScore"`
	BestScore    int     `json:"bestScore"`
}
