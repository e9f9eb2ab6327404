package scoreboard

import (
	"context"
	"database/sql"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = db.Close() })

	ddl := `
    CREATE TABLE articles (
        id TEXT PRIMARY KEY, source TEXT NOT NULL, title TEXT NOT NULL,
        url TEXT NOT NULL, published_at TEXT NOT NULL
    );
    CREATE TABLE article_words (
        article_id TEXT NOT NULL, word TEXT NOT NULL,
        frequency INTEGER NOT NULL DEFAULT 1,
        PRIMARY KEY (article_id, word)
    );`
	if _, err := db.Exec(ddl); err != nil {
		t.Fatal(err)
	}
	return db
}

func seedHeadlines(t *testing.T, db *sql.DB) {
	t.Helper()
	articles := []struct {
		id, source, title, published string
	}{
		{"a1", "bbc", "Election enters final stretch", "2024-01-05T10:00:00Z"},
		{"a2", "cnn", "Climate summit opens amid election noise", "2024-01-06T08:00:00Z"},
		{"a3", "bbc", "Old election coverage", "2023-12-01T10:00:00Z"}, // out of window
		{"a4", "fox_news", "Election special", "2024-01-07T09:00:00Z"},
	}
	for _, a := range articles {
		if _, err := db.Exec(`INSERT INTO articles (id, source, title, url, published_at) VALUES (?,?,?,?,?)`,
			a.id, a.source, a.title, "https://example.com/"+a.id, a.published); err != nil {
			t.Fatal(err)
		}
	}
	words := []struct {
		article, word string
		freq          int
	}{
		{"a1", "election", 5},
		{"a1", "senate", 2},
		{"a2", "election", 3},
		{"a2", "climate", 4},
		{"a2", "border", 2},
		{"a3", "election", 50},
		{"a4", "election", 10},
	}
	for _, w := range words {
		if _, err := db.Exec(`INSERT INTO article_words (article_id, word, frequency) VALUES (?,?,?)`,
			w.article, w.word, w.freq); err != nil {
			t.Fatal(err)
		}
	}
}

var testRef = time.Date(2024, time.January, 10, 12, 0, 0, 0, time.UTC)

func TestSQLProviderFetchRanksAndFilters(t *testing.T) {
	db := openTestDB(t)
	seedHeadlines(t, db)
	p := NewSQLProvider(db)

	entries, err := p.Fetch(context.Background(), Query{
		Period:    PastWeek,
		Sources:   []Source{BBC, CNN},
		Size:      10,
		Reference: testRef,
	})
	if err != nil {
		t.Fatal(err)
	}

	// Window excludes a3; source filter excludes a4. Equal totals break
	// ties alphabetically.
	want := []struct {
		word string
		freq int
		rank int
	}{
		{"election", 8, 1},
		{"climate", 4, 2},
		{"border", 2, 3},
		{"senate", 2, 4},
	}
	if len(entries) != len(want) {
		t.Fatalf("got %d entries, want %d: %+v", len(entries), len(want), entries)
	}
	for i, w := range want {
		e := entries[i]
		if e.Word != w.word || e.Frequency != w.freq || e.Rank != w.rank {
			t.Errorf("entry %d = %q/%d/rank %d, want %q/%d/rank %d",
				i, e.Word, e.Frequency, e.Rank, w.word, w.freq, w.rank)
		}
	}

	// Supporting articles, highest-contribution first.
	if len(entries[0].Articles) != 2 {
		t.Fatalf("election has %d article refs, want 2", len(entries[0].Articles))
	}
	if entries[0].Articles[0].Title != "Election enters final stretch" {
		t.Errorf("first ref = %q", entries[0].Articles[0].Title)
	}
	if entries[0].Articles[0].Source != BBC {
		t.Errorf("first ref source = %q", entries[0].Articles[0].Source)
	}
}

func TestSQLProviderFetchHonorsSize(t *testing.T) {
	db := openTestDB(t)
	seedHeadlines(t, db)
	p := NewSQLProvider(db)

	entries, err := p.Fetch(context.Background(), Query{
		Period: PastWeek, Sources: []Source{BBC, CNN}, Size: 2, Reference: testRef,
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 || entries[0].Word != "election" || entries[1].Word != "climate" {
		t.Fatalf("entries = %+v", entries)
	}

	if _, err := p.Fetch(context.Background(), Query{Period: PastWeek, Size: 0, Reference: testRef}); err == nil {
		t.Error("zero size accepted")
	}
}

func TestSQLProviderAnchorRestrictsToCooccurrence(t *testing.T) {
	db := openTestDB(t)
	seedHeadlines(t, db)
	p := NewSQLProvider(db)

	entries, err := p.Fetch(context.Background(), Query{
		Period:     PastWeek,
		Sources:    []Source{BBC, CNN},
		AnchorWord: "senate",
		Size:       10,
		Reference:  testRef,
		Group:      GroupA,
	})
	if err != nil {
		t.Fatal(err)
	}

	// Only a1 contains "senate"; the anchor itself never appears.
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1: %+v", len(entries), entries)
	}
	e := entries[0]
	if e.Word != "election" || e.Frequency != 5 || e.Rank != 1 || e.Group != GroupA {
		t.Errorf("entry = %+v", e)
	}
}
