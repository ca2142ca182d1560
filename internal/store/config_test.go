package store

import (
	"path/filepath"
	"testing"
)

func TestConfig_SaveLoadAndDefaults(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("SHEET_CONFIG_DIR", dir)
	t.Setenv("SHEET_SOURCE_URL", "")
	t.Setenv("SHEET_SAVE_URL", "")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("load missing config: %v", err)
	}
	if cfg.EffectiveSaveMode() != SaveModeLog || cfg.EffectiveSlug() != DefaultSheetSlug || cfg.EffectiveSourceURL() != DefaultSourceURL {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}

	cfg.CurrentWorkspace = "work"
	cfg.SaveMode = "HTTP"
	cfg.SaveURL = "https://example.com/save"
	cfg.TUI = &TUIConfig{Glyphs: "ascii"}
	if err := SaveConfig(cfg); err != nil {
		t.Fatalf("save config: %v", err)
	}
	got, err := LoadConfig()
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got.CurrentWorkspace != "work" || got.EffectiveSaveMode() != SaveModeHTTP || got.Glyphs() != "ascii" {
		t.Fatalf("unexpected reloaded config: %+v", got)
	}

	t.Setenv("SHEET_SAVE_URL", "https://override.example.com")
	if got.EffectiveSaveURL() != "https://override.example.com" {
		t.Fatalf("expected env override for save url; got %q", got.EffectiveSaveURL())
	}

	ws, err := WorkspaceDir("work")
	if err != nil {
		t.Fatalf("workspace dir: %v", err)
	}
	if ws != filepath.Join(dir, "workspaces", "work") {
		t.Fatalf("unexpected workspace dir %q", ws)
	}
	if _, err := WorkspaceDir("../escape"); err == nil {
		t.Fatalf("expected path-like workspace name to be rejected")
	}
}
