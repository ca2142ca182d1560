package cli

import (
	"sheet-cli/internal/dnd"

	"github.com/spf13/cobra"
)

func newDropCmd(app *App) *cobra.Command {
	var kind, from, to, draggedID string

	cmd := &cobra.Command{
		Use:   "drop",
		Short: "Apply a completed drag gesture (zone:index to zone:index)",
		Long: `Resolve a drag gesture to a single reorder and apply it.

Zones:
  topics                     top-level topics
  topic-<id>-subtopics       a topic's sub-topics
  topic-<id>-questions       a topic's direct questions
  subtopic-<id>              a sub-topic's questions

Only moves within one zone are supported.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := dnd.ParseKind(kind)
			if err != nil {
				return writeErr(cmd, err)
			}
			src, err := dnd.ParseLocation(from)
			if err != nil {
				return writeErr(cmd, err)
			}
			d := dnd.Drop{Kind: k, Source: src, DraggedID: draggedID}
			if to != "" {
				dst, err := dnd.ParseLocation(to)
				if err != nil {
					return writeErr(cmd, err)
				}
				d.Dest = &dst
			}

			ts, s, err := loadSheet(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			tree, op, err := dnd.NewResolver(ts).Drop(d)
			if err != nil {
				return writeErr(cmd, err)
			}
			if op.Kind != dnd.OpNone {
				if err := saveSheet(cmd, s, tree); err != nil {
					return writeErr(cmd, err)
				}
			}
			return writeOut(cmd, app, map[string]any{
				"data": map[string]any{
					"op":      op.Kind.String(),
					"call":    op.String(),
					"applied": op.Kind != dnd.OpNone,
				},
			})
		},
	}

	cmd.Flags().StringVar(&kind, "kind", "", "Dragged kind: topic|subtopic|question")
	cmd.Flags().StringVar(&from, "from", "", "Source location <zone>:<index>")
	cmd.Flags().StringVar(&to, "to", "", "Destination location <zone>:<index> (omit for a drop outside any zone)")
	cmd.Flags().StringVar(&draggedID, "id", "", "Dragged item id; rejects the drop if it is no longer at the source index")
	_ = cmd.MarkFlagRequired("kind")
	_ = cmd.MarkFlagRequired("from")
	return cmd
}
