package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/nikbrunner/vs/internal/model"
	"github.com/nikbrunner/vs/internal/scroller"
)

const currentSchemaVersion = 2

// SQLiteStorage implements Storage using a SQLite database. It also serves
// item ranges straight from the database as a scroller.DataSource.
type SQLiteStorage struct {
	db   *sql.DB
	path string
}

var _ scroller.DataSource[model.Item] = (*SQLiteStorage)(nil)

// NewSQLiteStorage creates a new SQLiteStorage with the given database path.
func NewSQLiteStorage(path string) (*SQLiteStorage, error) {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, err
		}
	}

	s := &SQLiteStorage{db: db, path: path}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}

	return s, nil
}

// Path returns the database file path.
func (s *SQLiteStorage) Path() string {
	return s.path
}

// Close closes the database connection.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

// SchemaVersion returns the version recorded in the database.
func (s *SQLiteStorage) SchemaVersion() (int, error) {
	var version int
	err := s.db.QueryRow("SELECT version FROM schema_version LIMIT 1").Scan(&version)
	return version, err
}

// migrate runs database migrations.
func (s *SQLiteStorage) migrate() error {
	version, err := s.SchemaVersion()
	if err != nil {
		// Table doesn't exist or is empty, start fresh
		version = 0
	}
	if version > currentSchemaVersion {
		return fmt.Errorf("database schema version %d is newer than supported version %d", version, currentSchemaVersion)
	}

	if version < 1 {
		if err := s.migrateV1(); err != nil {
			return err
		}
	}

	if version < 2 {
		if err := s.migrateV2(); err != nil {
			return err
		}
	}

	return nil
}

// migrateV1 creates the initial schema.
func (s *SQLiteStorage) migrateV1() error {
	schema := `
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY
		);

		CREATE TABLE IF NOT EXISTS items (
			id TEXT PRIMARY KEY NOT NULL,
			idx INTEGER NOT NULL UNIQUE,
			text TEXT NOT NULL,
			created_at TEXT NOT NULL
		);

		INSERT OR REPLACE INTO schema_version (version) VALUES (1);
	`
	_, err := s.db.Exec(schema)
	return err
}

// migrateV2 adds the tags column.
func (s *SQLiteStorage) migrateV2() error {
	migration := `
		ALTER TABLE items ADD COLUMN tags TEXT NOT NULL DEFAULT '[]';
		UPDATE schema_version SET version = 2;
	`
	_, err := s.db.Exec(migration)
	return err
}

const selectItems = `SELECT id, idx, text, tags, created_at FROM items`

func scanItems(rows *sql.Rows) ([]model.Item, error) {
	defer rows.Close()

	items := []model.Item{}
	for rows.Next() {
		var it model.Item
		var tagsJSON string
		var createdAtStr string

		if err := rows.Scan(&it.ID, &it.Index, &it.Text, &tagsJSON, &createdAtStr); err != nil {
			return nil, err
		}

		if err := json.Unmarshal([]byte(tagsJSON), &it.Tags); err != nil || it.Tags == nil {
			it.Tags = []string{}
		}
		it.CreatedAt, _ = time.Parse(time.RFC3339, createdAtStr)

		items = append(items, it)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// Load reads the store from the SQLite database.
func (s *SQLiteStorage) Load() (*model.Store, error) {
	rows, err := s.db.Query(selectItems + ` ORDER BY idx`)
	if err != nil {
		return nil, err
	}
	items, err := scanItems(rows)
	if err != nil {
		return nil, err
	}
	return &model.Store{Items: items}, nil
}

// Bounds returns the lowest and highest stored index. ok is false when the
// table is empty.
func (s *SQLiteStorage) Bounds(ctx context.Context) (minIndex, maxIndex int, ok bool, err error) {
	var lo, hi sql.NullInt64
	err = s.db.QueryRowContext(ctx, `SELECT MIN(idx), MAX(idx) FROM items`).Scan(&lo, &hi)
	if err != nil {
		return 0, 0, false, err
	}
	if !lo.Valid || !hi.Valid {
		return 0, 0, false, nil
	}
	return int(lo.Int64), int(hi.Int64), true, nil
}

// Fetch returns up to count items with index >= start, ordered by index.
// Indices outside the stored range are simply absent from the result.
func (s *SQLiteStorage) Fetch(ctx context.Context, start, count int) ([]model.Item, error) {
	if count <= 0 {
		return nil, nil
	}
	rows, err := s.db.QueryContext(ctx,
		selectItems+` WHERE idx BETWEEN ? AND ? ORDER BY idx`,
		start, start+count-1,
	)
	if err != nil {
		return nil, err
	}
	return scanItems(rows)
}

// Save writes the store to the SQLite database.
// Uses a transaction for atomicity - all or nothing.
func (s *SQLiteStorage) Save(store *model.Store) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM items"); err != nil {
		return err
	}

	stmt, err := tx.Prepare(`
		INSERT INTO items (id, idx, text, tags, created_at)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, it := range store.Items {
		tagsJSON, _ := json.Marshal(it.Tags)
		if it.Tags == nil {
			tagsJSON = []byte("[]")
		}
		createdAt := it.CreatedAt.Format(time.RFC3339)

		if _, err := stmt.Exec(it.ID, it.Index, it.Text, string(tagsJSON), createdAt); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// DefaultSQLitePath returns the default SQLite database path: <data dir>/items.db
func DefaultSQLitePath() (string, error) {
	dir, err := DefaultDataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "items.db"), nil
}
