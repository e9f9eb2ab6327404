// internal/store/sqlite.go
//
// SQLite-backed stores for sessions, guesses, and user stats.
// Sessions serialize their source lists, guessed-word set, and cached
// board as JSON columns; guess budgets are stored as plain ints with -1
// meaning unlimited (the sentinel lives only at this boundary; core
// types carry the tagged GuessBudget). Stats updates run the read-fold-
// write inside a single transaction.

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/newswordy/go-server/internal/game"
	"github.com/newswordy/go-server/internal/scoreboard"
)

const unlimitedSentinel = -1

func budgetToInt(b game.GuessBudget) int {
	if b.Unlimited() {
		return unlimitedSentinel
	}
	return b.Count()
}

func budgetFromInt(n int) game.GuessBudget {
	if n < 0 {
		return game.UnlimitedGuesses()
	}
	return game.FiniteGuesses(n)
}

// SQLSessions persists game sessions in the games table.
type SQLSessions struct {
	db *sql.DB
}

func NewSQLSessions(db *sql.DB) *SQLSessions { return &SQLSessions{db: db} }

func (s *SQLSessions) Save(ctx context.Context, sess *game.Session) error {
	sources, err := json.Marshal(sess.Sources)
	if err != nil {
		return fmt.Errorf("marshal sources: %w", err)
	}
	groupA, err := json.Marshal(sess.SourcesGroupA)
	if err != nil {
		return fmt.Errorf("marshal group A sources: %w", err)
	}
	groupB, err := json.Marshal(sess.SourcesGroupB)
	if err != nil {
		return fmt.Errorf("marshal group B sources: %w", err)
	}
	guessed, err := json.Marshal(sess.Guessed)
	if err != nil {
		return fmt.Errorf("marshal guessed words: %w", err)
	}
	board, err := json.Marshal(sess.Board)
	if err != nil {
		return fmt.Errorf("marshal board: %w", err)
	}

	var userID, anonID sql.NullString
	if sess.Owner.Anonymous {
		anonID = sql.NullString{String: sess.Owner.ID, Valid: true}
	} else {
		userID = sql.NullString{String: sess.Owner.ID, Valid: true}
	}
	var completedAt sql.NullString
	if sess.CompletedAt != nil {
		completedAt = sql.NullString{String: sess.CompletedAt.UTC().Format(time.RFC3339), Valid: true}
	}

	_, err = s.db.ExecContext(ctx, `
        INSERT INTO games (id, user_id, anonymous_id, variant, time_period,
            sources, sources_group_a, sources_group_b, anchor_word,
            max_guesses, remaining_guesses, scoreboard_size, score,
            guessed_words, board, completed, created_at, completed_at)
        VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)
        ON CONFLICT(id) DO UPDATE SET
            score=excluded.score,
            remaining_guesses=excluded.remaining_guesses,
            guessed_words=excluded.guessed_words,
            completed=excluded.completed,
            completed_at=excluded.completed_at`,
		sess.ID, userID, anonID, string(sess.Variant), string(sess.Period),
		string(sources), string(groupA), string(groupB), sess.AnchorWord,
		budgetToInt(sess.MaxGuesses), budgetToInt(sess.Remaining),
		sess.ScoreboardSize, sess.Score,
		string(guessed), string(board), sess.Completed,
		sess.CreatedAt.UTC().Format(time.RFC3339), completedAt,
	)
	if err != nil {
		return fmt.Errorf("save game %s: %w", sess.ID, err)
	}
	return nil
}

func (s *SQLSessions) Get(ctx context.Context, id string) (*game.Session, error) {
	row := s.db.QueryRowContext(ctx, `
        SELECT id, user_id, anonymous_id, variant, time_period,
            sources, sources_group_a, sources_group_b, anchor_word,
            max_guesses, remaining_guesses, scoreboard_size, score,
            guessed_words, board, completed, created_at, completed_at
        FROM games WHERE id=?`, id)

	var (
		sess                    game.Session
		userID, anonID          sql.NullString
		variant, period         string
		sources, groupA, groupB string
		maxGuesses, remaining   int
		guessed, board          string
		createdAt               string
		completedAt             sql.NullString
	)
	err := row.Scan(&sess.ID, &userID, &anonID, &variant, &period,
		&sources, &groupA, &groupB, &sess.AnchorWord,
		&maxGuesses, &remaining, &sess.ScoreboardSize, &sess.Score,
		&guessed, &board, &sess.Completed, &createdAt, &completedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, game.ErrStoreNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load game %s: %w", id, err)
	}

	sess.Variant = game.Variant(variant)
	sess.Period = scoreboard.TimePeriod(period)
	sess.MaxGuesses = budgetFromInt(maxGuesses)
	sess.Remaining = budgetFromInt(remaining)
	if userID.Valid {
		sess.Owner = game.Owner{ID: userID.String}
	} else {
		sess.Owner = game.Owner{ID: anonID.String, Anonymous: true}
	}
	if err := json.Unmarshal([]byte(sources), &sess.Sources); err != nil {
		return nil, fmt.Errorf("unmarshal sources: %w", err)
	}
	if err := json.Unmarshal([]byte(groupA), &sess.SourcesGroupA); err != nil {
		return nil, fmt.Errorf("unmarshal group A sources: %w", err)
	}
	if err := json.Unmarshal([]byte(groupB), &sess.SourcesGroupB); err != nil {
		return nil, fmt.Errorf("unmarshal group B sources: %w", err)
	}
	sess.Guessed = game.NewWordSet()
	if err := json.Unmarshal([]byte(guessed), sess.Guessed); err != nil {
		return nil, fmt.Errorf("unmarshal guessed words: %w", err)
	}
	sess.Board = &scoreboard.Board{}
	if err := json.Unmarshal([]byte(board), sess.Board); err != nil {
		return nil, fmt.Errorf("unmarshal board: %w", err)
	}
	if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
		sess.CreatedAt = t
	}
	if completedAt.Valid {
		if t, err := time.Parse(time.RFC3339, completedAt.String); err == nil {
			sess.CompletedAt = &t
		}
	}
	return &sess, nil
}

// SQLGuesses appends guess rows; rank is NULL on a miss.
type SQLGuesses struct {
	db *sql.DB
}

func NewSQLGuesses(db *sql.DB) *SQLGuesses { return &SQLGuesses{db: db} }

func (s *SQLGuesses) Append(ctx context.Context, g *game.Guess) error {
	var rank sql.NullInt64
	if g.Rank > 0 {
		rank = sql.NullInt64{Int64: int64(g.Rank), Valid: true}
	}
	_, err := s.db.ExecContext(ctx, `
        INSERT INTO guesses (id, game_id, user_id, word, frequency, score, rank, grp, created_at)
        VALUES (?,?,?,?,?,?,?,?,?)`,
		g.ID, g.GameID, g.UserID, g.Word, g.Frequency, g.Score, rank,
		string(g.Group), g.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("append guess: %w", err)
	}
	return nil
}

func (s *SQLGuesses) ListByGame(ctx context.Context, gameID string) ([]game.Guess, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT id, game_id, user_id, word, frequency, score, rank, grp, created_at
        FROM guesses WHERE game_id=? ORDER BY created_at ASC, rowid ASC`, gameID)
	if err != nil {
		return nil, fmt.Errorf("list guesses: %w", err)
	}
	defer rows.Close()

	var out []game.Guess
	for rows.Next() {
		var (
			g       game.Guess
			rank    sql.NullInt64
			grp     string
			created string
		)
		if err := rows.Scan(&g.ID, &g.GameID, &g.UserID, &g.Word, &g.Frequency,
			&g.Score, &rank, &grp, &created); err != nil {
			return nil, fmt.Errorf("scan guess: %w", err)
		}
		if rank.Valid {
			g.Rank = int(rank.Int64)
		}
		g.Group = scoreboard.Group(grp)
		if t, err := time.Parse(time.RFC3339, created); err == nil {
			g.CreatedAt = t
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

// SQLStats keeps running totals on the users row and applies the fold
// inside one transaction so two games completing at once cannot lose an
// update.
type SQLStats struct {
	db *sql.DB
}

func NewSQLStats(db *sql.DB) *SQLStats { return &SQLStats{db: db} }

func (s *SQLStats) Get(ctx context.Context, userID string) (game.UserStats, error) {
	st := game.UserStats{UserID: userID}
	err := s.db.QueryRowContext(ctx, `
        SELECT total_games, total_score, average_score, best_score
        FROM users WHERE id=?`, userID,
	).Scan(&st.TotalGames, &st.TotalScore, &st.AverageScore, &st.BestScore)
	if errors.Is(err, sql.ErrNoRows) {
		return st, nil
	}
	if err != nil {
		return st, fmt.Errorf("load stats for %s: %w", userID, err)
	}
	return st, nil
}

func (s *SQLStats) Apply(ctx context.Context, userID string, fold func(game.UserStats) game.UserStats) (game.UserStats, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return game.UserStats{}, err
	}
	defer func() { _ = tx.Rollback() }()

	st := game.UserStats{UserID: userID}
	if err := tx.QueryRowContext(ctx, `
        SELECT total_games, total_score, average_score, best_score
        FROM users WHERE id=?`, userID,
	).Scan(&st.TotalGames, &st.TotalScore, &st.AverageScore, &st.BestScore); err != nil {
		return st, fmt.Errorf("load stats for %s: %w", userID, err)
	}

	st = fold(st)
	if _, err := tx.ExecContext(ctx, `
        UPDATE users SET total_games=?, total_score=?, average_score=?, best_score=?
        WHERE id=?`,
		st.TotalGames, st.TotalScore, st.AverageScore, st.BestScore, userID,
	); err != nil {
		return st, fmt.Errorf("update stats for %s: %w", userID, err)
	}
	if err := tx.Commit(); err != nil {
		return st, fmt.Errorf("commit stats for %s: %w", userID, err)
	}
	return st, nil
}
