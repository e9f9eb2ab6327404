// internal/scoreboard/sqlite.go
//
// SQLite-backed Provider. Aggregates per-article word counts (the
// articles/article_words tables populated by the scraper) into a ranked
// top-N list for a time window and source set. Anchor-word queries
// restrict the aggregation to articles that also contain the anchor.

package scoreboard

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"
)

const articleRefsPerWord = 3

// SQLProvider reads scraped headline data from a database/sql handle.
type SQLProvider struct {
	db *sql.DB
}

func NewSQLProvider(db *sql.DB) *SQLProvider {
	return &SQLProvider{db: db}
}

// Fetch returns the top q.Size words for the query's window, ranked by
// summed frequency. Ties break on the word itself so ranks are stable
// across fetches.
func (p *SQLProvider) Fetch(ctx context.Context, q Query) ([]Entry, error) {
	if q.Size <= 0 {
		return nil, fmt.Errorf("scoreboard size must be positive, got %d", q.Size)
	}
	ref := q.Reference
	if ref.IsZero() {
		ref = time.Now()
	}
	start, end := q.Period.Range(ref)

	args := []any{start.Format(time.RFC3339), end.Format(time.RFC3339)}
	var b strings.Builder
	b.WriteString(`
        SELECT aw.word, SUM(aw.frequency) AS total
        FROM article_words aw
        JOIN articles a ON a.id = aw.article_id
        WHERE a.published_at >= ? AND a.published_at < ?`)
	appendSourceFilter(&b, &args, q.Sources)
	if q.AnchorWord != "" {
		b.WriteString(` AND aw.word != ?
          AND aw.article_id IN (SELECT article_id FROM article_words WHERE word = ?)`)
		args = append(args, q.AnchorWord, q.AnchorWord)
	}
	b.WriteString(`
        GROUP BY aw.word
        ORDER BY total DESC, aw.word ASC
        LIMIT ?`)
	args = append(args, q.Size)

	rows, err := p.db.QueryContext(ctx, b.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("fetch scoreboard: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	rank := 0
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.Word, &e.Frequency); err != nil {
			return nil, fmt.Errorf("scan scoreboard row: %w", err)
		}
		rank++
		e.Rank = rank
		e.Group = q.Group
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("scoreboard rows: %w", err)
	}

	for i := range entries {
		refs, err := p.articleRefs(ctx, entries[i].Word, start, end, q)
		if err != nil {
			return nil, err
		}
		entries[i].Articles = refs
	}
	return entries, nil
}

// articleRefs loads the top supporting headlines for one word.
func (p *SQLProvider) articleRefs(ctx context.Context, word string, start, end time.Time, q Query) ([]ArticleRef, error) {
	args := []any{word, start.Format(time.RFC3339), end.Format(time.RFC3339)}
	var b strings.Builder
	b.WriteString(`
        SELECT a.title, a.url, a.source, a.published_at
        FROM articles a
        JOIN article_words aw ON aw.article_id = a.id
        WHERE aw.word = ? AND a.published_at >= ? AND a.published_at < ?`)
	appendSourceFilter(&b, &args, q.Sources)
	if q.AnchorWord != "" {
		b.WriteString(` AND a.id IN (SELECT article_id FROM article_words WHERE word = ?)`)
		args = append(args, q.AnchorWord)
	}
	b.WriteString(`
        ORDER BY aw.frequency DESC, a.published_at DESC
        LIMIT ?`)
	args = append(args, articleRefsPerWord)

	rows, err := p.db.QueryContext(ctx, b.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("fetch articles for %q: %w", word, err)
	}
	defer rows.Close()

	var refs []ArticleRef
	for rows.Next() {
		var r ArticleRef
		var published string
		if err := rows.Scan(&r.Title, &r.URL, &r.Source, &published); err != nil {
			return nil, fmt.Errorf("scan article row: %w", err)
		}
		if t, err := time.Parse(time.RFC3339, published); err == nil {
			r.PublishedAt = t
		}
		refs = append(refs, r)
	}
	return refs, rows.Err()
}

// appendSourceFilter adds an IN clause for the source set, if any.
func appendSourceFilter(b *strings.Builder, args *[]any, srcs []Source) {
	if len(srcs) == 0 {
		return
	}
	b.WriteString(` AND a.source IN (`)
	for i, s := range srcs {
		if i > 0 {
			b.WriteString(",")
		}
		b.WriteString("?")
		*args = append(*args, string(s))
	}
	b.WriteString(`)`)
}
