package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"sheet-cli/internal/model"
	"sheet-cli/internal/store"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newDoctorCmd(app *App) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check a sheet for duplicate ids, blank titles, bad difficulties and order drift",
		RunE: func(cmd *cobra.Command, args []string) error {
			var report store.DoctorReport
			target := ""
			if strings.TrimSpace(file) != "" {
				tree, err := readTreeFile(file)
				if err != nil {
					return writeErr(cmd, err)
				}
				report = store.DoctorTree(tree)
				target = file
			} else {
				s, err := resolveWorkspace(app)
				if err != nil {
					return writeErr(cmd, err)
				}
				report = s.Doctor(cmd.Context())
				target = s.Dir
			}

			if err := writeOut(cmd, app, map[string]any{
				"data": map[string]any{"target": target, "issues": report.Issues},
			}); err != nil {
				return err
			}
			if report.HasErrors() {
				return writeErr(cmd, fmt.Errorf("doctor: %d issue(s) found", len(report.Issues)))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "Check a tree written by sheet export (.json, .yaml) instead of the workspace")
	return cmd
}

// readTreeFile decodes an exported tree; the extension picks yaml, anything else is json.
func readTreeFile(path string) (model.Tree, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var t model.Tree
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(b, &t)
	default:
		err = json.Unmarshal(b, &t)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

func newBackupCmd(app *App) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Copy the workspace database to a file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(out) == "" {
				return writeErr(cmd, errors.New("missing --out"))
			}
			s, err := resolveWorkspace(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := s.Backup(cmd.Context(), out); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{
				"data":   map[string]any{"path": out},
				"_hints": []string{"sheet restore --from " + out},
			})
		},
	}

	cmd.Flags().StringVar(&out, "out", "", "Destination file (must not exist)")
	return cmd
}

func newRestoreCmd(app *App) *cobra.Command {
	var from string

	cmd := &cobra.Command{
		Use:   "restore",
		Short: "Replace the workspace database with a backup",
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(from) == "" {
				return writeErr(cmd, errors.New("missing --from"))
			}
			s, err := resolveWorkspace(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			info, err := s.Restore(cmd.Context(), from)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"restored": true, "lastSave": info}})
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "Backup file written by sheet backup")
	return cmd
}
