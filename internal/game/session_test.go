package game

import (
	"errors"
	"testing"
	"time"

	"github.com/newswordy/go-server/internal/scoreboard"
)

var (
	testSources = []scoreboard.Source{scoreboard.BBC, scoreboard.CNN}
	testOwner   = Owner{ID: "u1"}
	testNow     = time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
)

func TestNewSessionDefaults(t *testing.T) {
	tests := []struct {
		name       string
		cfg        Config
		wantBudget GuessBudget
		wantSize   int
	}{
		{
			name:       "classic defaults",
			cfg:        Config{Variant: Classic, Period: scoreboard.PastWeek, Sources: testSources},
			wantBudget: FiniteGuesses(3),
			wantSize:   10,
		},
		{
			name: "associate defaults",
			cfg: Config{Variant: Associate, Period: scoreboard.PastWeek,
				Sources: testSources, AnchorWord: "election"},
			wantBudget: FiniteGuesses(5),
			wantSize:   10,
		},
		{
			name: "explicit values",
			cfg: Config{Variant: Classic, Period: scoreboard.PastDay,
				Sources: testSources, MaxGuesses: 7, ScoreboardSize: 25},
			wantBudget: FiniteGuesses(7),
			wantSize:   25,
		},
		{
			name: "unlimited compare",
			cfg: Config{Variant: Compare, Period: scoreboard.LastMonth,
				SourcesGroupA: testSources, SourcesGroupB: []scoreboard.Source{scoreboard.NPR},
				Unlimited: true},
			wantBudget: UnlimitedGuesses(),
			wantSize:   10,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewSession(tt.cfg, testOwner, testNow)
			if err != nil {
				t.Fatalf("NewSession: %v", err)
			}
			if s.Remaining != tt.wantBudget || s.MaxGuesses != tt.wantBudget {
				t.Errorf("budget = %+v, want %+v", s.Remaining, tt.wantBudget)
			}
			if s.ScoreboardSize != tt.wantSize {
				t.Errorf("size = %d, want %d", s.ScoreboardSize, tt.wantSize)
			}
			if s.Completed || s.Score != 0 || s.Guessed.Len() != 0 {
				t.Error("new session not in the initial ACTIVE state")
			}
			if s.ID == "" || s.CreatedAt.IsZero() {
				t.Error("missing id or createdAt")
			}
		})
	}
}

func TestNewSessionValidation(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{
			name: "classic unlimited rejected",
			cfg:  Config{Variant: Classic, Period: scoreboard.PastWeek, Sources: testSources, Unlimited: true},
		},
		{
			name: "classic over guess cap",
			cfg:  Config{Variant: Classic, Period: scoreboard.PastWeek, Sources: testSources, MaxGuesses: 11},
		},
		{
			name: "negative guesses",
			cfg:  Config{Variant: Associate, Period: scoreboard.PastWeek, Sources: testSources, AnchorWord: "election", MaxGuesses: -2},
		},
		{
			name: "scoreboard over cap",
			cfg:  Config{Variant: Classic, Period: scoreboard.PastWeek, Sources: testSources, ScoreboardSize: 51},
		},
		{
			name: "associate without anchor",
			cfg:  Config{Variant: Associate, Period: scoreboard.PastWeek, Sources: testSources},
		},
		{
			name: "anchor with invalid charset",
			cfg:  Config{Variant: Associate, Period: scoreboard.PastWeek, Sources: testSources, AnchorWord: "no-good"},
		},
		{
			name: "anchor on classic",
			cfg:  Config{Variant: Classic, Period: scoreboard.PastWeek, Sources: testSources, AnchorWord: "election"},
		},
		{
			name: "compare missing group B",
			cfg:  Config{Variant: Compare, Period: scoreboard.PastWeek, SourcesGroupA: testSources},
		},
		{
			name: "classic without sources",
			cfg:  Config{Variant: Classic, Period: scoreboard.PastWeek},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewSession(tt.cfg, testOwner, testNow); !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("err = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestNewSessionNormalizesAnchor(t *testing.T) {
	s, err := NewSession(Config{
		Variant: CompareAssociate, Period: scoreboard.PastWeek,
		SourcesGroupA: testSources, SourcesGroupB: []scoreboard.Source{scoreboard.NPR},
		AnchorWord: "  Election ",
	}, testOwner, testNow)
	if err != nil {
		t.Fatal(err)
	}
	if s.AnchorWord != "election" {
		t.Errorf("anchor = %q, want %q", s.AnchorWord, "election")
	}
}

func TestTotalGuessable(t *testing.T) {
	single := classicSession(3, tenWords...)
	if got := single.TotalGuessable(); got != 10 {
		t.Errorf("classic total = %d, want 10", got)
	}

	cmp := compareSession(3,
		[]string{"election", "senate", "climate"},
		[]string{"senate", "strike", "vaccine"})
	// "senate" ranks in both lists but is guessable once.
	if got := cmp.TotalGuessable(); got != 5 {
		t.Errorf("compare total = %d, want 5", got)
	}
}

func TestGuessBudgetJSONRoundTrip(t *testing.T) {
	for _, b := range []GuessBudget{FiniteGuesses(3), FiniteGuesses(0), UnlimitedGuesses()} {
		data, err := b.MarshalJSON()
		if err != nil {
			t.Fatal(err)
		}
		var got GuessBudget
		if err := got.UnmarshalJSON(data); err != nil {
			t.Fatal(err)
		}
		if got != b {
			t.Errorf("round trip %s → %+v, want %+v", data, got, b)
		}
	}
	if data, _ := UnlimitedGuesses().MarshalJSON(); string(data) != "-1" {
		t.Errorf("unlimited encodes as %s, want -1", data)
	}
}

func TestWordSetOrderAndMembership(t *testing.T) {
	s := NewWordSet()
	if !s.Add("election") || !s.Add("senate") {
		t.Fatal("first insert reported duplicate")
	}
	if s.Add("election") {
		t.Fatal("duplicate insert reported new")
	}
	if s.Len() != 2 || !s.Contains("election") || s.Contains("zzz") {
		t.Fatal("membership wrong")
	}
	words := s.Words()
	if len(words) != 2 || words[0] != "election" || words[1] != "senate" {
		t.Fatalf("order = %v, want insertion order", words)
	}
}
