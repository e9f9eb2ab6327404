// internal/scoreboard/scoreboard.go
//
// Scoreboard types and the provider contract.
// A scoreboard is the ranked list of (word, frequency) pairs a game session
// is scored against. Classic/Associate games use a single ranked list;
// comparison games use one list per source group. Boards are fetched once
// at game creation and treated as immutable for the session's lifetime.

package scoreboard

import (
	"context"
	"time"
)

// Group identifies a source group in comparison games.
type Group string

const (
	GroupA Group = "group_a"
	GroupB Group = "group_b"
)

// ArticleRef points at a headline that contributed to a word's frequency.
type ArticleRef struct {
	Title       string    `json:"title"`
	URL         string    `json:"url"`
	Source      Source    `json:"source"`
	PublishedAt time.Time `json:"publishedAt"`
}

// Entry is one row of a scoreboard partition. Rank is 1-based and
// contiguous within its partition; rank 1 is the most frequent word.
// Group is set only on entries belonging to a comparison-game partition.
type Entry struct {
	Word      string       `json:"word"`
	Frequency int          `json:"frequency"`
	Rank      int          `json:"rank"`
	Articles  []ArticleRef `json:"articles,omitempty"`
	Group     Group        `json:"group,omitempty"`
}

// Query describes one partition fetch. AnchorWord restricts the board to
// words co-occurring with it (Associate/CompareAssociate); empty means no
// restriction. Group tags the returned entries; leave empty for
// single-list games.
type Query struct {
	Period     TimePeriod
	Sources    []Source
	AnchorWord string
	Size       int
	Group      Group
	Reference  time.Time // time-period anchor; zero means "now"
}

// Provider fetches one ranked partition per call. Comparison games call it
// once per group.
type Provider interface {
	Fetch(ctx context.Context, q Query) ([]Entry, error)
}

// Board holds the partitions a session is scored against. Exactly one of
// Single or (GroupA, GroupB) is populated, depending on the variant.
type Board struct {
	Single []Entry `json:"single,omitempty"`
	GroupA []Entry `json:"groupA,omitempty"`
	GroupB []Entry `json:"groupB,omitempty"`
}

// Partition returns the entries for a group (comparison boards).
func (b *Board) Partition(g Group) []Entry {
	if g == GroupB {
		return b.GroupB
	}
	return b.GroupA
}

// Find returns the entry for word in the given list, or false.
func Find(entries []Entry, word string) (Entry, bool) {
	for _, e := range entries {
		if e.Word == word {
			return e, true
		}
	}
	return Entry{}, false
}
