package store

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

const sqliteFileName = "index.sqlite"

// Store is a workspace directory holding the persisted sheet snapshot.
type Store struct {
	Dir string
}

func (s Store) Ensure() error {
	return os.MkdirAll(s.Dir, 0o755)
}

func (s Store) SQLitePath() string {
	return filepath.Join(s.Dir, sqliteFileName)
}

func (s Store) openSQLite(ctx context.Context) (*sql.DB, error) {
	if err := s.Ensure(); err != nil {
		return nil, err
	}
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", s.SQLitePath())
	if err != nil {
		return nil, err
	}
	// WAL enables one writer + many readers; busy_timeout covers a CLI write racing the TUI.
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
	if err := migrateSQLiteState(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func migrateSQLiteState(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS state_meta (
			k TEXT PRIMARY KEY,
			v TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS topics (
			id TEXT PRIMARY KEY,
			ord INTEGER NOT NULL,
			title TEXT NOT NULL,
			description TEXT NOT NULL,
			updated_at_unixms INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS subtopics (
			topic_id TEXT NOT NULL,
			id TEXT NOT NULL,
			ord INTEGER NOT NULL,
			title TEXT NOT NULL,
			description TEXT NOT NULL,
			updated_at_unixms INTEGER NOT NULL,
			PRIMARY KEY (topic_id, id)
		);`,
		`CREATE TABLE IF NOT EXISTS questions (
			topic_id TEXT NOT NULL,
			subtopic_id TEXT NOT NULL,
			id TEXT NOT NULL,
			ord INTEGER NOT NULL,
			title TEXT NOT NULL,
			difficulty TEXT NOT NULL,
			solved INTEGER NOT NULL,
			json TEXT NOT NULL,
			updated_at_unixms INTEGER NOT NULL,
			PRIMARY KEY (topic_id, subtopic_id, id)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_questions_group ON questions(topic_id, subtopic_id, ord);`,
		`CREATE TABLE IF NOT EXISTS saves (
			saved_at_unixms INTEGER NOT NULL,
			topics INTEGER NOT NULL,
			questions INTEGER NOT NULL,
			solved INTEGER NOT NULL
		);`,
	}
	for _, st := range stmts {
		if _, err := db.ExecContext(ctx, st); err != nil {
			return err
		}
	}
	return nil
}
