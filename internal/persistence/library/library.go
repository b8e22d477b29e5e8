// Package library persists named blueprints in a local sqlite database.
package library

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

type Store struct {
	db *sql.DB
}

func Open(path string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("empty db path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := initPragmas(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

func initPragmas(db *sql.DB) error {
	// WAL keeps saves cheap; the library is a secondary store, NORMAL
	// durability is enough.
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("pragma %q: %w", p, err)
		}
	}
	return nil
}

func initSchema(db *sql.DB) error {
	const schema = `
CREATE TABLE IF NOT EXISTS blueprints (
	name       TEXT PRIMARY KEY,
	data       BLOB NOT NULL,
	updated_at TEXT NOT NULL
);`
	_, err := db.Exec(schema)
	return err
}

func (s *Store) Close() error { return s.db.Close() }

// Save upserts a blueprint payload under the given name.
func (s *Store) Save(name string, data []byte) error {
	if name == "" {
		return fmt.Errorf("empty blueprint name")
	}
	_, err := s.db.Exec(
		`INSERT INTO blueprints(name, data, updated_at) VALUES(?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET data=excluded.data, updated_at=excluded.updated_at`,
		name, data, time.Now().UTC().Format(time.RFC3339),
	)
	return err
}

// Load returns the stored payload and whether the name exists.
func (s *Store) Load(name string) ([]byte, bool, error) {
	var data []byte
	err := s.db.QueryRow(`SELECT data FROM blueprints WHERE name = ?`, name).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

// List returns all stored names in sorted order.
func (s *Store) List() ([]string, error) {
	rows, err := s.db.Query(`SELECT name FROM blueprints ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, err
		}
		names = append(names, n)
	}
	return names, rows.Err()
}

// Delete removes a stored blueprint; deleting a missing name is not an error.
func (s *Store) Delete(name string) error {
	_, err := s.db.Exec(`DELETE FROM blueprints WHERE name = ?`, name)
	return err
}
