package cli

import (
	"errors"
	"os"
	"strings"

	"sheet-cli/internal/format"
	"sheet-cli/internal/model"
	"sheet-cli/internal/source"
	"sheet-cli/internal/store"

	"github.com/spf13/cobra"
)

func newFetchCmd(app *App) *cobra.Command {
	var slug string
	var url string
	var file string

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Replace the workspace sheet with one fetched from the source",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := store.LoadConfig()
			if err != nil {
				return writeErr(cmd, err)
			}
			var f source.Fetcher
			if strings.TrimSpace(file) != "" {
				f = source.File{Path: file}
			} else {
				if strings.TrimSpace(url) == "" {
					url = cfg.EffectiveSourceURL()
				}
				if strings.TrimSpace(slug) == "" {
					slug = cfg.EffectiveSlug()
				}
				f = source.NewClient(url, slug)
			}

			tree, err := f.Fetch(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			ts, s, err := loadSheet(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			tree = ts.LoadData(tree)
			if err := saveSheet(cmd, s, tree); err != nil {
				return writeErr(cmd, err)
			}
			st := tree.Stats()
			return writeOut(cmd, app, map[string]any{
				"data": map[string]any{
					"topics":    len(tree),
					"questions": st.Total,
				},
				"_hints": []string{"sheet show", "sheet"},
			})
		},
	}

	cmd.Flags().StringVar(&slug, "slug", "", "Sheet slug (default from config)")
	cmd.Flags().StringVar(&url, "url", "", "Endpoint base URL; the slug is appended")
	cmd.Flags().StringVar(&file, "file", "", "Read a saved payload from a local JSON file instead")
	return cmd
}

func newShowCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the whole sheet",
		RunE: func(cmd *cobra.Command, args []string) error {
			ts, _, err := loadSheet(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": ts.Snapshot()})
		},
	}
	return cmd
}

type statsView struct {
	Total   int `json:"total" yaml:"total"`
	Solved  int `json:"solved" yaml:"solved"`
	Percent int `json:"percent" yaml:"percent"`
}

func newStatsView(s model.Stats) statsView {
	return statsView{Total: s.Total, Solved: s.Solved, Percent: s.Percent()}
}

type topicStatsView struct {
	ID        string              `json:"id" yaml:"id"`
	Title     string              `json:"title" yaml:"title"`
	Stats     statsView           `json:"stats" yaml:"stats"`
	SubTopics []subTopicStatsView `json:"subTopics" yaml:"subTopics"`
}

type subTopicStatsView struct {
	ID    string    `json:"id" yaml:"id"`
	Title string    `json:"title" yaml:"title"`
	Stats statsView `json:"stats" yaml:"stats"`
}

func topicStats(ts *store.TreeStore, tp model.Topic) topicStatsView {
	v := topicStatsView{
		ID:        tp.ID,
		Title:     tp.Title,
		Stats:     newStatsView(ts.TopicStats(tp.ID)),
		SubTopics: []subTopicStatsView{},
	}
	for _, st := range tp.SubTopics {
		v.SubTopics = append(v.SubTopics, subTopicStatsView{ID: st.ID, Title: st.Title, Stats: newStatsView(st.Stats())})
	}
	return v
}

func newStatsCmd(app *App) *cobra.Command {
	var topicID string

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show solved/total progress",
		RunE: func(cmd *cobra.Command, args []string) error {
			ts, _, err := loadSheet(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			tree := ts.Snapshot()
			if topicID != "" {
				tp, err := requireTopic(tree, topicID)
				if err != nil {
					return writeErr(cmd, err)
				}
				return writeOut(cmd, app, map[string]any{"data": topicStats(ts, *tp)})
			}
			topics := make([]topicStatsView, 0, len(tree))
			for _, tp := range tree {
				topics = append(topics, topicStats(ts, tp))
			}
			return writeOut(cmd, app, map[string]any{
				"data": map[string]any{
					"overall": newStatsView(ts.Stats()),
					"topics":  topics,
				},
			})
		},
	}

	cmd.Flags().StringVar(&topicID, "topic", "", "Limit to one topic id")
	return cmd
}

func newExportCmd(app *App) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the bare sheet tree (json or yaml via --format)",
		RunE: func(cmd *cobra.Command, args []string) error {
			ts, _, err := loadSheet(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			tree := ts.Snapshot()
			if strings.TrimSpace(out) == "" {
				return writeOut(cmd, app, tree)
			}
			fh, err := os.Create(out)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := format.Write(fh, tree, app.Format, app.PrettyJSON); err != nil {
				_ = fh.Close()
				return writeErr(cmd, err)
			}
			if err := fh.Close(); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"path": out}})
		},
	}

	cmd.Flags().StringVar(&out, "out", "", "Write to this file instead of stdout")
	return cmd
}

func newSaveCmd(app *App) *cobra.Command {
	var mode string
	var url string

	cmd := &cobra.Command{
		Use:   "save",
		Short: "Send the full sheet snapshot to the configured saver",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := store.LoadConfig()
			if err != nil {
				return writeErr(cmd, err)
			}
			if strings.TrimSpace(mode) == "" {
				mode = cfg.EffectiveSaveMode()
			}
			if strings.TrimSpace(url) == "" {
				url = cfg.EffectiveSaveURL()
			}
			ts, s, err := loadSheet(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			saver, err := source.NewSaver(mode, url, s, app.log)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := saver.Save(cmd.Context(), ts.Snapshot()); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{
				"data": map[string]any{"mode": mode, "saved": true},
			})
		},
	}

	cmd.Flags().StringVar(&mode, "mode", "", "Saver: log|http|sqlite (default from config)")
	cmd.Flags().StringVar(&url, "url", "", "Target URL for --mode http")
	return cmd
}

func newStatusCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the workspace and its last save",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := resolveWorkspace(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			info, ok, err := s.LastSave(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			data := map[string]any{
				"workspace": app.Workspace,
				"dir":       s.Dir,
				"saved":     ok,
			}
			if ok {
				data["lastSave"] = info
			}
			out := map[string]any{"data": data}
			if !ok {
				out["_hints"] = []string{"sheet fetch"}
			}
			return writeOut(cmd, app, out)
		},
	}
	return cmd
}

var errNoChange = errors.New("nothing to update (pass at least one field flag)")
