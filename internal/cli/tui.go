package cli

import (
	"io"

	"sheet-cli/internal/source"
	"sheet-cli/internal/store"
	"sheet-cli/internal/tui"

	"github.com/spf13/cobra"
)

func runTUI(cmd *cobra.Command, app *App) error {
	cfg, err := store.LoadConfig()
	if err != nil {
		return writeErr(cmd, err)
	}
	ts, s, err := loadSheet(cmd, app)
	if err != nil {
		return writeErr(cmd, err)
	}
	saved, err := s.HasSnapshot(cmd.Context())
	if err != nil {
		return writeErr(cmd, err)
	}

	// Log lines would tear the alt screen; keep them out while the TUI owns the terminal.
	app.log.SetOutput(io.Discard)
	defer app.log.SetOutput(cmd.ErrOrStderr())

	saver, err := source.NewSaver(cfg.EffectiveSaveMode(), cfg.EffectiveSaveURL(), s, app.log)
	if err != nil {
		return writeErr(cmd, err)
	}
	opts := tui.Options{
		Store:     ts,
		Saver:     saver,
		Workspace: s,
		Log:       app.log,
		Glyphs:    cfg.Glyphs(),
	}
	if !saved {
		// First run in this workspace: fetch the configured sheet.
		opts.Fetcher = source.NewClient(cfg.EffectiveSourceURL(), cfg.EffectiveSlug())
	}
	return tui.Run(opts)
}
