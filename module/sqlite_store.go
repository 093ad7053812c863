package module

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// SQLiteStore persists module *source text* keyed by resolved path
// across process runs, useful for a REPL session that keeps restarting
// against the same module tree. It deliberately does not cache
// exports — those are live Values tied to a single interpreter's
// environment chain, and persisting them would break the "same
// identity on every require" invariant (§8) the moment a process
// restarts. Loader.Cache/GetCached always stay purely in-memory; only
// Store.AddFile/GetFile go through this type.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLiteStore opens (creating if needed) a SQLite-backed Store at
// dsn, e.g. "file:clou-modules.db?cache=shared".
func OpenSQLiteStore(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open module store: %w", err)
	}
	const schema = `
CREATE TABLE IF NOT EXISTS module_source (
	path TEXT PRIMARY KEY,
	content TEXT NOT NULL
)`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init module store schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error { return s.db.Close() }

func (s *SQLiteStore) AddFile(path, content string) {
	_, err := s.db.Exec(
		`INSERT INTO module_source(path, content) VALUES (?, ?)
		 ON CONFLICT(path) DO UPDATE SET content = excluded.content`,
		path, content,
	)
	if err != nil {
		// Store.AddFile has no error return in the interface (the spec's
		// contract is fire-and-forget registration); a write failure here
		// just means the next GetFile falls through to a cache miss.
		return
	}
}

func (s *SQLiteStore) GetFile(path string) (string, bool) {
	var content string
	err := s.db.QueryRow(`SELECT content FROM module_source WHERE path = ?`, path).Scan(&content)
	if err != nil {
		return "", false
	}
	return content, true
}
