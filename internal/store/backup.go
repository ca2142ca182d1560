package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Backup writes a consistent copy of the workspace database to dest. VACUUM INTO
// reads through the WAL, so a TUI holding the database open is fine.
func (s Store) Backup(ctx context.Context, dest string) error {
	dest = strings.TrimSpace(dest)
	if dest == "" {
		return errors.New("backup: missing destination")
	}
	if _, err := os.Stat(dest); err == nil {
		return fmt.Errorf("backup: %s already exists", dest)
	}
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return err
	}
	db, err := s.openSQLite(ctx)
	if err != nil {
		return err
	}
	defer db.Close()
	_, err = db.ExecContext(ctx, `VACUUM INTO ?`, dest)
	return err
}

// Restore replaces the workspace database with the backup at src. The backup is
// opened first so a foreign or corrupt file never overwrites a good snapshot.
func (s Store) Restore(ctx context.Context, src string) (SaveInfo, error) {
	src = strings.TrimSpace(src)
	if err := checkBackup(ctx, src); err != nil {
		return SaveInfo{}, fmt.Errorf("restore: %s: %w", src, err)
	}
	if err := s.Ensure(); err != nil {
		return SaveInfo{}, err
	}
	// Drop WAL side files so the copied database is not replayed against stale pages.
	for _, suffix := range []string{"-wal", "-shm"} {
		if err := os.Remove(s.SQLitePath() + suffix); err != nil && !errors.Is(err, os.ErrNotExist) {
			return SaveInfo{}, err
		}
	}
	if err := CopyFile(src, s.SQLitePath()); err != nil {
		return SaveInfo{}, err
	}
	info, _, err := s.LastSave(ctx)
	return info, err
}

func checkBackup(ctx context.Context, path string) error {
	if _, err := os.Stat(path); err != nil {
		return err
	}
	db, err := sql.Open("sqlite", "file:"+path+"?mode=ro")
	if err != nil {
		return err
	}
	defer db.Close()
	var n int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name IN ('topics', 'subtopics', 'questions')`).Scan(&n); err != nil {
		return err
	}
	if n != 3 {
		return errors.New("not a sheet backup")
	}
	return nil
}
