package store

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const (
	DefaultWorkspace = "default"
	DefaultSheetSlug = "striver-sde-sheet"
	DefaultSourceURL = "https://node.codolio.com/api/question-tracker/v1/sheet/public/get-sheet-by-slug/"
)

// Save modes understood by the save command and the TUI.
const (
	SaveModeLog    = "log"
	SaveModeHTTP   = "http"
	SaveModeSQLite = "sqlite"
)

type GlobalConfig struct {
	CurrentWorkspace string `json:"currentWorkspace,omitempty"`

	// SourceURL is the base of the sheet endpoint; the slug is appended to it.
	SourceURL string `json:"sourceUrl,omitempty"`
	SheetSlug string `json:"sheetSlug,omitempty"`

	// SaveMode selects where "save" sends the full snapshot (log, http, sqlite).
	SaveMode string `json:"saveMode,omitempty"`
	SaveURL  string `json:"saveUrl,omitempty"`

	TUI *TUIConfig `json:"tui,omitempty"`
}

type TUIConfig struct {
	// Glyphs selects the glyph set ("unicode", "ascii").
	Glyphs string `json:"glyphs,omitempty"`
}

func (c *GlobalConfig) EffectiveSourceURL() string {
	if v := strings.TrimSpace(os.Getenv("SHEET_SOURCE_URL")); v != "" {
		return v
	}
	if c != nil && strings.TrimSpace(c.SourceURL) != "" {
		return strings.TrimSpace(c.SourceURL)
	}
	return DefaultSourceURL
}

func (c *GlobalConfig) EffectiveSlug() string {
	if c != nil && strings.TrimSpace(c.SheetSlug) != "" {
		return strings.TrimSpace(c.SheetSlug)
	}
	return DefaultSheetSlug
}

func (c *GlobalConfig) EffectiveSaveMode() string {
	mode := ""
	if c != nil {
		mode = strings.ToLower(strings.TrimSpace(c.SaveMode))
	}
	switch mode {
	case SaveModeHTTP, SaveModeSQLite:
		return mode
	default:
		return SaveModeLog
	}
}

func (c *GlobalConfig) EffectiveSaveURL() string {
	if v := strings.TrimSpace(os.Getenv("SHEET_SAVE_URL")); v != "" {
		return v
	}
	if c == nil {
		return ""
	}
	return strings.TrimSpace(c.SaveURL)
}

func (c *GlobalConfig) Glyphs() string {
	if c == nil || c.TUI == nil {
		return "unicode"
	}
	if strings.EqualFold(strings.TrimSpace(c.TUI.Glyphs), "ascii") {
		return "ascii"
	}
	return "unicode"
}

func ConfigDir() (string, error) {
	// Test/advanced override (keeps unit tests from touching ~/.sheet).
	if v := strings.TrimSpace(os.Getenv("SHEET_CONFIG_DIR")); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".sheet"), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

func LoadConfig() (*GlobalConfig, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &GlobalConfig{}, nil
		}
		return nil, err
	}
	var cfg GlobalConfig
	if err := json.Unmarshal(b, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func atomicWriteFile(dir, tmpPattern, path string, b []byte, perm os.FileMode) error {
	f, err := os.CreateTemp(dir, tmpPattern)
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer func() { _ = os.Remove(tmp) }()
	if _, err := f.Write(b); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp, perm); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

func SaveConfig(cfg *GlobalConfig) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	b, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return atomicWriteFile(dir, "config.json.*.tmp", path, b, 0o600)
}

func NormalizeWorkspaceName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", errors.New("workspace name is empty")
	}
	if strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return "", errors.New("workspace name must be a plain directory name")
	}
	return name, nil
}

func WorkspaceDir(name string) (string, error) {
	name, err := NormalizeWorkspaceName(name)
	if err != nil {
		return "", err
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "workspaces", name), nil
}

func ListWorkspaces() ([]string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return nil, err
	}
	ents, err := os.ReadDir(filepath.Join(dir, "workspaces"))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []string{}, nil
		}
		return nil, err
	}
	out := []string{}
	for _, e := range ents {
		if e.IsDir() {
			out = append(out, e.Name())
		}
	}
	sort.Strings(out)
	return out, nil
}
