// Package storage persists scorecards in SQLite for the scorecard API.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"fairway/internal/core"

	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when no scorecard has the requested id.
var ErrNotFound = errors.New("scorecard not found")

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// List returns every scorecard with its holes, ordered by date played
// descending, newest insert first on ties.
func (r *SQLiteRepository) List(ctx context.Context) ([]core.Scorecard, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, course_name, date_played, weather, notes
		FROM scorecards
		ORDER BY date_played DESC, created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list scorecards: %w", err)
	}
	defer rows.Close()

	var cards []core.Scorecard
	for rows.Next() {
		sc, err := scanScorecard(rows)
		if err != nil {
			return nil, err
		}
		cards = append(cards, sc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list scorecards: %w", err)
	}

	for i := range cards {
		holes, err := r.loadHoles(ctx, cards[i].ID)
		if err != nil {
			return nil, err
		}
		cards[i].Holes = holes
	}
	return cards, nil
}

// Get returns one scorecard by id.
func (r *SQLiteRepository) Get(ctx context.Context, id string) (core.Scorecard, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, course_name, date_played, weather, notes
		FROM scorecards WHERE id = ?`, id)

	sc, err := scanScorecard(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Scorecard{}, ErrNotFound
	}
	if err != nil {
		return core.Scorecard{}, err
	}

	sc.Holes, err = r.loadHoles(ctx, id)
	if err != nil {
		return core.Scorecard{}, err
	}
	return sc, nil
}

// Create inserts a scorecard and its holes in one transaction.
func (r *SQLiteRepository) Create(ctx context.Context, sc core.Scorecard) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO scorecards (id, course_name, date_played, weather, notes)
		VALUES (?, ?, ?, ?, ?)`,
		sc.ID, sc.CourseName, sc.DatePlayed.String(),
		nullable(sc.Weather), nullable(sc.Notes))
	if err != nil {
		return fmt.Errorf("insert scorecard: %w", err)
	}

	if err := insertHoles(ctx, tx, sc.ID, sc.Holes); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit scorecard: %w", err)
	}

	slog.InfoContext(ctx, "Scorecard saved to SQLite",
		"id", sc.ID,
		"course", sc.CourseName,
		"date", sc.DatePlayed.String(),
		"holes", len(sc.Holes))
	return nil
}

// Update replaces a scorecard and its holes. Updating clears the exported
// flag so the archive worker picks the round up again.
func (r *SQLiteRepository) Update(ctx context.Context, sc core.Scorecard) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		UPDATE scorecards
		SET course_name = ?, date_played = ?, weather = ?, notes = ?,
		    exported = 0, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`,
		sc.CourseName, sc.DatePlayed.String(),
		nullable(sc.Weather), nullable(sc.Notes), sc.ID)
	if err != nil {
		return fmt.Errorf("update scorecard: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM holes WHERE scorecard_id = ?`, sc.ID); err != nil {
		return fmt.Errorf("clear holes: %w", err)
	}
	if err := insertHoles(ctx, tx, sc.ID, sc.Holes); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit scorecard: %w", err)
	}
	return nil
}

// Delete removes a scorecard; holes go with it via the cascade.
func (r *SQLiteRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM scorecards WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete scorecard: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	slog.InfoContext(ctx, "Scorecard deleted from SQLite", "id", id)
	return nil
}

// Count returns the number of stored scorecards.
func (r *SQLiteRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM scorecards`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count scorecards: %w", err)
	}
	return n, nil
}

// ListUnexported returns up to limit scorecards not yet archived, oldest
// first so the archive stays in play order.
func (r *SQLiteRepository) ListUnexported(ctx context.Context, limit int) ([]core.Scorecard, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, course_name, date_played, weather, notes
		FROM scorecards
		WHERE exported = 0
		ORDER BY date_played ASC, created_at ASC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list unexported scorecards: %w", err)
	}
	defer rows.Close()

	var cards []core.Scorecard
	for rows.Next() {
		sc, err := scanScorecard(rows)
		if err != nil {
			return nil, err
		}
		cards = append(cards, sc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list unexported scorecards: %w", err)
	}

	for i := range cards {
		holes, err := r.loadHoles(ctx, cards[i].ID)
		if err != nil {
			return nil, err
		}
		cards[i].Holes = holes
	}
	return cards, nil
}

// MarkExported flags a scorecard as archived.
func (r *SQLiteRepository) MarkExported(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE scorecards SET exported = 1, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("mark scorecard exported: %w", err)
	}
	slog.InfoContext(ctx, "Scorecard marked as exported", "id", id)
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanScorecard(row rowScanner) (core.Scorecard, error) {
	var (
		sc             core.Scorecard
		date           string
		weather, notes sql.NullString
	)
	if err := row.Scan(&sc.ID, &sc.CourseName, &date, &weather, &notes); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return core.Scorecard{}, err
		}
		return core.Scorecard{}, fmt.Errorf("scan scorecard: %w", err)
	}
	parsed, err := core.ParseDate(date)
	if err != nil {
		return core.Scorecard{}, fmt.Errorf("parse stored date %q: %w", date, err)
	}
	sc.DatePlayed = parsed
	sc.Weather = weather.String
	sc.Notes = notes.String
	return sc, nil
}

func (r *SQLiteRepository) loadHoles(ctx context.Context, scorecardID string) ([]core.Hole, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT number, par, score FROM holes
		WHERE scorecard_id = ? ORDER BY number`, scorecardID)
	if err != nil {
		return nil, fmt.Errorf("load holes: %w", err)
	}
	defer rows.Close()

	var holes []core.Hole
	for rows.Next() {
		var h core.Hole
		if err := rows.Scan(&h.Number, &h.Par, &h.Score); err != nil {
			return nil, fmt.Errorf("scan hole: %w", err)
		}
		holes = append(holes, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load holes: %w", err)
	}
	return holes, nil
}

func insertHoles(ctx context.Context, tx *sql.Tx, scorecardID string, holes []core.Hole) error {
	for _, h := range holes {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO holes (scorecard_id, number, par, score)
			VALUES (?, ?, ?, ?)`,
			scorecardID, h.Number, h.Par, h.Score)
		if err != nil {
			return fmt.Errorf("insert hole %d: %w", h.Number, err)
		}
	}
	return nil
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
