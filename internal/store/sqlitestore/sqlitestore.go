// Package sqlitestore persists items in a local SQLite database using the
// pure-Go modernc.org/sqlite driver.
package sqlitestore

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/idilsaglam/tada/internal/model"
)

// FileName is the database created inside the data directory.
const FileName = "todos.db"

type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open creates or migrates the database under dir.
func Open(ctx context.Context, dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("mkdir: %w", err)
	}
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", filepath.Join(dir, FileName))
	if err != nil {
		return nil, err
	}
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	if err := migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db, now: time.Now}, nil
}

func migrate(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS items (
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT NOT NULL UNIQUE,
			title TEXT NOT NULL,
			completed INTEGER NOT NULL DEFAULT 0,
			created_at_unixms INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_items_completed ON items(completed);`,
	}
	for _, st := range stmts {
		if _, err := db.ExecContext(ctx, st); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

func (s *Store) Create(ctx context.Context, title string) (model.Item, error) {
	title = model.NormalizeTitle(title)
	if title == "" {
		return model.Item{}, fmt.Errorf("create: empty title: %w", model.ErrValidation)
	}
	it := model.Item{ID: uuid.NewString(), Title: title, CreatedAt: s.now().UTC()}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO items (id, title, completed, created_at_unixms) VALUES (?, ?, 0, ?)`,
		it.ID, it.Title, it.CreatedAt.UnixMilli())
	if err != nil {
		return model.Item{}, fmt.Errorf("insert: %w", err)
	}
	return it, nil
}

func (s *Store) Find(ctx context.Context, q model.Query) ([]model.Item, error) {
	query := `SELECT id, title, completed, created_at_unixms FROM items WHERE 1=1`
	var args []any
	if q.ID != "" {
		query += ` AND id = ?`
		args = append(args, q.ID)
	}
	if q.Completed != nil {
		query += ` AND completed = ?`
		args = append(args, boolInt(*q.Completed))
	}
	query += ` ORDER BY seq`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select: %w", err)
	}
	defer rows.Close()

	out := []model.Item{}
	for rows.Next() {
		var (
			it        model.Item
			completed int
			createdMs int64
		)
		if err := rows.Scan(&it.ID, &it.Title, &completed, &createdMs); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		it.Completed = completed != 0
		it.CreatedAt = time.UnixMilli(createdMs).UTC()
		out = append(out, it)
	}
	return out, rows.Err()
}

func (s *Store) Update(ctx context.Context, id string, p model.Patch) error {
	var (
		res sql.Result
		err error
	)
	switch {
	case p.Title != nil && p.Completed != nil:
		res, err = s.db.ExecContext(ctx, `UPDATE items SET title = ?, completed = ? WHERE id = ?`,
			*p.Title, boolInt(*p.Completed), id)
	case p.Title != nil:
		res, err = s.db.ExecContext(ctx, `UPDATE items SET title = ? WHERE id = ?`, *p.Title, id)
	case p.Completed != nil:
		res, err = s.db.ExecContext(ctx, `UPDATE items SET completed = ? WHERE id = ?`, boolInt(*p.Completed), id)
	default:
		// Nothing to change, but the id still has to resolve.
		res, err = s.db.ExecContext(ctx, `UPDATE items SET id = id WHERE id = ?`, id)
	}
	if err != nil {
		return fmt.Errorf("update %s: %w", id, err)
	}
	return expectOne(res, "update", id)
}

func (s *Store) Remove(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM items WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("remove %s: %w", id, err)
	}
	return expectOne(res, "remove", id)
}

func (s *Store) Count(ctx context.Context) (model.Counts, error) {
	var c model.Counts
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(SUM(completed), 0) FROM items`).Scan(&c.Total, &c.Completed)
	if err != nil {
		return model.Counts{}, fmt.Errorf("count: %w", err)
	}
	c.Active = c.Total - c.Completed
	return c, nil
}

func (s *Store) Close() error { return s.db.Close() }

func expectOne(res sql.Result, op, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s %s: %w", op, id, err)
	}
	if n == 0 {
		return fmt.Errorf("%s %s: %w", op, id, model.ErrNotFound)
	}
	return nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
