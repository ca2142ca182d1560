package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"sheet-cli/internal/model"
)

func TestBackupAndRestore(t *testing.T) {
	ctx := context.Background()

	s1 := Store{Dir: t.TempDir()}
	tree := model.Tree{
		{ID: "A", Title: "A", Questions: []model.Question{{ID: "q1", Title: "q1", Difficulty: model.DifficultyEasy, Solved: true}}},
		{ID: "B", Title: "B"},
	}
	if err := s1.Save(ctx, tree); err != nil {
		t.Fatalf("save: %v", err)
	}

	dest := filepath.Join(t.TempDir(), "backups", "sheet.sqlite")
	if err := s1.Backup(ctx, dest); err != nil {
		t.Fatalf("backup: %v", err)
	}
	if err := s1.Backup(ctx, dest); err == nil {
		t.Fatalf("expected backup to refuse overwriting %s", dest)
	}

	s2 := Store{Dir: t.TempDir()}
	if err := s2.Save(ctx, model.Tree{{ID: "Z", Title: "other"}}); err != nil {
		t.Fatalf("save other: %v", err)
	}
	info, err := s2.Restore(ctx, dest)
	if err != nil {
		t.Fatalf("restore: %v", err)
	}
	if info.Topics != 2 || info.Solved != 1 {
		t.Fatalf("unexpected restored save info: %#v", info)
	}
	got, err := s2.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != 2 || got[0].ID != "A" || !got[0].Questions[0].Solved {
		t.Fatalf("unexpected restored tree: %#v", got)
	}
}

func TestRestore_RejectsForeignFile(t *testing.T) {
	ctx := context.Background()
	s := Store{Dir: t.TempDir()}
	if err := s.Save(ctx, model.Tree{{ID: "A", Title: "keep"}}); err != nil {
		t.Fatalf("save: %v", err)
	}

	bogus := filepath.Join(t.TempDir(), "notes.txt")
	if err := os.WriteFile(bogus, []byte("hello"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := s.Restore(ctx, bogus); err == nil {
		t.Fatalf("expected restore of a non-backup to fail")
	}
	got, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != 1 || got[0].Title != "keep" {
		t.Fatalf("expected snapshot untouched; got %#v", got)
	}
}

func TestCopyFile_ReplacesDestination(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src")
	dest := filepath.Join(dir, "nested", "dest")
	if err := os.WriteFile(src, []byte("new"), 0o644); err != nil {
		t.Fatalf("write src: %v", err)
	}
	if err := CopyFile(src, dest); err != nil {
		t.Fatalf("copy: %v", err)
	}
	b, err := os.ReadFile(dest)
	if err != nil || string(b) != "new" {
		t.Fatalf("unexpected dest contents %q (%v)", string(b), err)
	}
	entries, _ := os.ReadDir(filepath.Dir(dest))
	if len(entries) != 1 {
		t.Fatalf("expected temp file cleaned up; got %d entries", len(entries))
	}
}
