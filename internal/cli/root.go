package cli

import (
	"fmt"
	"os"
	"strings"

	"sheet-cli/internal/format"
	"sheet-cli/internal/model"
	"sheet-cli/internal/store"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type App struct {
	Dir        string
	Workspace  string
	PrettyJSON bool
	Format     string
	LogLevel   string

	log *logrus.Logger
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "sheet",
		Short:        "Question sheet editor (CLI + TUI)",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive editor
  sheet

  # Import the default sheet into the current workspace
  sheet fetch

  # Scriptable edits
  sheet topics add --title "Graphs"
  sheet questions solve <question-id> --topic <topic-id> --subtopic st-0
  sheet drop --kind question --from subtopic-st-0:1 --to subtopic-st-0:0
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if cmd.HasSubCommands() && len(args) == 0 {
				return runTUI(cmd, app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		lvl, err := logrus.ParseLevel(strings.TrimSpace(app.LogLevel))
		if err != nil {
			return writeErr(cmd, err)
		}
		lg := logrus.New()
		lg.SetOutput(cmd.ErrOrStderr())
		lg.SetLevel(lvl)
		app.log = lg
		return nil
	}

	cmd.PersistentFlags().StringVar(&app.Dir, "dir", envOr("SHEET_DIR", ""), "Path to workspace dir (overrides workspace resolution)")
	cmd.PersistentFlags().StringVar(&app.Workspace, "workspace", envOr("SHEET_WORKSPACE", ""), "Workspace name (default: 'default')")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")
	cmd.PersistentFlags().StringVar(&app.Format, "format", envOr("SHEET_FORMAT", "json"), "Output format (json|yaml)")
	cmd.PersistentFlags().StringVar(&app.LogLevel, "log-level", envOr("SHEET_LOG_LEVEL", "warn"), "Log level written to stderr (debug|info|warn|error)")

	cmd.AddCommand(newWorkspaceCmd(app))
	cmd.AddCommand(newFetchCmd(app))
	cmd.AddCommand(newShowCmd(app))
	cmd.AddCommand(newStatsCmd(app))
	cmd.AddCommand(newExportCmd(app))
	cmd.AddCommand(newSaveCmd(app))
	cmd.AddCommand(newStatusCmd(app))
	cmd.AddCommand(newTopicsCmd(app))
	cmd.AddCommand(newSubTopicsCmd(app))
	cmd.AddCommand(newQuestionsCmd(app))
	cmd.AddCommand(newDropCmd(app))
	cmd.AddCommand(newDoctorCmd(app))
	cmd.AddCommand(newBackupCmd(app))
	cmd.AddCommand(newRestoreCmd(app))

	return cmd
}

func resolveWorkspace(app *App) (store.Store, error) {
	dir := app.Dir
	if dir == "" {
		// Workspace-first:
		// 1) --workspace
		// 2) ~/.sheet/config.json currentWorkspace
		// 3) default workspace ("default")
		name := app.Workspace
		if name == "" {
			if cfg, err := store.LoadConfig(); err == nil && cfg.CurrentWorkspace != "" {
				name = cfg.CurrentWorkspace
			} else {
				name = store.DefaultWorkspace
			}
		}
		d, err := store.WorkspaceDir(name)
		if err != nil {
			return store.Store{}, err
		}
		app.Workspace = name
		dir = d
		app.Dir = dir
	}
	s := store.Store{Dir: dir}
	if err := s.Ensure(); err != nil {
		return s, err
	}
	return s, nil
}

// loadSheet opens the workspace and seeds a TreeStore with its snapshot.
func loadSheet(cmd *cobra.Command, app *App) (*store.TreeStore, store.Store, error) {
	s, err := resolveWorkspace(app)
	if err != nil {
		return nil, s, err
	}
	tree, err := s.Load(cmd.Context())
	if err != nil {
		return nil, s, err
	}
	ts := store.NewTreeStore(store.Options{Logger: app.log})
	ts.LoadData(tree)
	return ts, s, nil
}

func saveSheet(cmd *cobra.Command, s store.Store, tree model.Tree) error {
	return s.Save(cmd.Context(), tree)
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, app.Format, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
