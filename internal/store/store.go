// Package store persists named JSON collections in a local SQLite file.
// Each collection is a single row holding the serialized records; a write
// replaces the whole collection in one statement, so the last writer wins.
package store

import (
	"database/sql"
	_ "embed"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schema string

// Collection names. The prefix matches the namespace the data has always
// been stored under.
const (
	Users    = "avocado_users"
	Projects = "avocado_projects"
	Tasks    = "avocado_tasks"
	Comments = "avocado_comments"
	Session  = "avocado_current_user"
)

// Store wraps the database connection holding the collections.
type Store struct {
	*sql.DB
}

// Open opens (creating if needed) the store at the given path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db}, nil
}

// OpenDefault opens the store at its default location under the user's
// data directory.
func OpenDefault() (*Store, error) {
	path, err := DefaultPath()
	if err != nil {
		return nil, err
	}
	return Open(path)
}

// DefaultPath returns the default database file path, honoring
// XDG_DATA_HOME and falling back to ~/.local/share.
func DefaultPath() (string, error) {
	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dataDir = filepath.Join(home, ".local", "share")
	}

	appDir := filepath.Join(dataDir, "avo")
	if err := os.MkdirAll(appDir, 0755); err != nil {
		return "", err
	}

	return filepath.Join(appDir, "avo.db"), nil
}

// Read returns the raw serialized form of a collection. The second return
// is false when the collection has never been written.
func (s *Store) Read(name string) ([]byte, bool, error) {
	var data []byte
	err := s.QueryRow("SELECT data FROM collections WHERE name = ?", name).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

// Write replaces a collection's contents.
func (s *Store) Write(name string, data []byte) error {
	_, err := s.Exec(`
		INSERT INTO collections (name, data) VALUES (?, ?)
		ON CONFLICT(name) DO UPDATE SET data = excluded.data, updated_at = CURRENT_TIMESTAMP
	`, name, data)
	return err
}

// Delete removes a collection entirely. Used for the session record on
// logout; absent collections delete as a no-op.
func (s *Store) Delete(name string) error {
	_, err := s.Exec("DELETE FROM collections WHERE name = ?", name)
	return err
}
