package scoreboard

import "fmt"

// Source identifies one scraped news outlet.
type Source string

const (
	ABC              Source = "abc"
	AlJazeera        Source = "al_jazeera"
	Axios            Source = "axios"
	BBC              Source = "bbc"
	CBS              Source = "cbs"
	CNN              Source = "cnn"
	FoxNews          Source = "fox_news"
	Guardian         Source = "guardian"
	LATimes          Source = "los_angeles_times"
	NBCNews          Source = "nbc_news"
	NPR              Source = "npr"
	NYT              Source = "nyt"
	Politico         Source = "politico"
	WSJ              Source = "wall_street_journal"
	WashingtonPost   Source = "washington_post"
	Yahoo            Source = "yahoo"
)

var sources = map[Source]bool{
	ABC: true, AlJazeera: true, Axios: true, BBC: true, CBS: true,
	CNN: true, FoxNews: true, Guardian: true, LATimes: true,
	NBCNews: true, NPR: true, NYT: true, Politico: true, WSJ: true,
	WashingtonPost: true, Yahoo: true,
}

// ParseSources validates a wire-level source list. Empty and unknown
// values are rejected; duplicates are collapsed.
func ParseSources(in []string) ([]Source, error) {
	if len(in) == 0 {
		return nil, fmt.Errorf("at least one source required")
	}
	seen := make(map[Source]bool, len(in))
	out := make([]Source, 0, len(in))
	for _, s := range in {
		src := Source(s)
		if !sources[src] {
			return nil, fmt.Errorf("unknown source %q", s)
		}
		if seen[src] {
			continue
		}
		seen[src] = true
		out = append(out, src)
	}
	return out, nil
}
