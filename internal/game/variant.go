// internal/game/variant.go
//
// Per-variant board lookup. Single-list variants rank against the full
// list; comparison variants rank within the matching group's own list.
// Rank and N always come from the same partition, never from a
// concatenated view of both groups.

package game

import "github.com/newswordy/go-server/internal/scoreboard"

// lookup finds word on the session's board and returns the matching entry
// together with the size N of the partition it was ranked in.
//
// Comparison variants check both group lists. A word present in exactly
// one list is attributed to that list; a word present in both goes to the
// hinted group when a hint is supplied, otherwise Group A. A word in
// neither list is a global miss.
func (v Variant) lookup(b *scoreboard.Board, word string, hint scoreboard.Group) (scoreboard.Entry, int, bool) {
	if b == nil {
		return scoreboard.Entry{}, 0, false
	}
	if !v.Comparative() {
		e, ok := scoreboard.Find(b.Single, word)
		return e, len(b.Single), ok
	}

	ea, inA := scoreboard.Find(b.GroupA, word)
	eb, inB := scoreboard.Find(b.GroupB, word)
	switch {
	case inA && inB:
		if hint == scoreboard.GroupB {
			return eb, len(b.GroupB), true
		}
		return ea, len(b.GroupA), true
	case inA:
		return ea, len(b.GroupA), true
	case inB:
		return eb, len(b.GroupB), true
	}
	return scoreboard.Entry{}, 0, false
}
