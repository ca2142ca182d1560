package cli

import (
	"sheet-cli/internal/model"

	"github.com/spf13/cobra"
)

func newSubTopicsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "subtopics",
		Aliases: []string{"subtopic"},
		Short:   "Sub-topic commands (scoped to one topic via --topic)",
	}
	cmd.AddCommand(newSubTopicsListCmd(app))
	cmd.AddCommand(newSubTopicsAddCmd(app))
	cmd.AddCommand(newSubTopicsUpdateCmd(app))
	cmd.AddCommand(newSubTopicsDeleteCmd(app))
	cmd.AddCommand(newSubTopicsMoveCmd(app))
	return cmd
}

func topicFlag(cmd *cobra.Command, topicID *string) {
	cmd.Flags().StringVar(topicID, "topic", "", "Owning topic id")
	_ = cmd.MarkFlagRequired("topic")
}

func newSubTopicsListCmd(app *App) *cobra.Command {
	var topicID string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a topic's sub-topics",
		RunE: func(cmd *cobra.Command, args []string) error {
			ts, _, err := loadSheet(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			tp, err := requireTopic(ts.Snapshot(), topicID)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": tp.SubTopics})
		},
	}
	topicFlag(cmd, &topicID)
	return cmd
}

func newSubTopicsAddCmd(app *App) *cobra.Command {
	var topicID string
	var in model.SubTopicInput

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Append a sub-topic to a topic",
		RunE: func(cmd *cobra.Command, args []string) error {
			ts, s, err := loadSheet(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if _, err := requireTopic(ts.Snapshot(), topicID); err != nil {
				return writeErr(cmd, err)
			}
			tree, err := ts.AddSubTopic(topicID, in)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := saveSheet(cmd, s, tree); err != nil {
				return writeErr(cmd, err)
			}
			tp, _ := tree.FindTopic(topicID)
			return writeOut(cmd, app, map[string]any{"data": tp.SubTopics[len(tp.SubTopics)-1]})
		},
	}

	topicFlag(cmd, &topicID)
	cmd.Flags().StringVar(&in.Title, "title", "", "Sub-topic title")
	cmd.Flags().StringVar(&in.Description, "description", "", "Sub-topic description")
	_ = cmd.MarkFlagRequired("title")
	return cmd
}

func newSubTopicsUpdateCmd(app *App) *cobra.Command {
	var topicID, title, description string

	cmd := &cobra.Command{
		Use:   "update <subtopic-id>",
		Short: "Patch a sub-topic's title or description",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var patch model.SubTopicPatch
			if cmd.Flags().Changed("title") {
				patch.Title = &title
			}
			if cmd.Flags().Changed("description") {
				patch.Description = &description
			}
			if patch == (model.SubTopicPatch{}) {
				return writeErr(cmd, errNoChange)
			}

			ts, s, err := loadSheet(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if _, err := requireSubTopic(ts.Snapshot(), topicID, args[0]); err != nil {
				return writeErr(cmd, err)
			}
			tree, err := ts.UpdateSubTopic(topicID, args[0], patch)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := saveSheet(cmd, s, tree); err != nil {
				return writeErr(cmd, err)
			}
			st, _ := requireSubTopic(tree, topicID, args[0])
			return writeOut(cmd, app, map[string]any{"data": st})
		},
	}

	topicFlag(cmd, &topicID)
	cmd.Flags().StringVar(&title, "title", "", "New title")
	cmd.Flags().StringVar(&description, "description", "", "New description")
	return cmd
}

func newSubTopicsDeleteCmd(app *App) *cobra.Command {
	var topicID string

	cmd := &cobra.Command{
		Use:   "delete <subtopic-id>",
		Short: "Delete a sub-topic and its questions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ts, s, err := loadSheet(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			st, err := requireSubTopic(ts.Snapshot(), topicID, args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			removed := len(st.Questions)
			tree := ts.DeleteSubTopic(topicID, args[0])
			if err := saveSheet(cmd, s, tree); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{
				"data": map[string]any{"id": args[0], "topicId": topicID, "deleted": true, "questionsRemoved": removed},
			})
		},
	}
	topicFlag(cmd, &topicID)
	return cmd
}

func newSubTopicsMoveCmd(app *App) *cobra.Command {
	var topicID string
	var from, to int

	cmd := &cobra.Command{
		Use:   "move",
		Short: "Move the sub-topic at --from to --to within its topic",
		RunE: func(cmd *cobra.Command, args []string) error {
			ts, s, err := loadSheet(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if _, err := requireTopic(ts.Snapshot(), topicID); err != nil {
				return writeErr(cmd, err)
			}
			tree := ts.ReorderSubTopics(topicID, from, to)
			if err := saveSheet(cmd, s, tree); err != nil {
				return writeErr(cmd, err)
			}
			tp, _ := tree.FindTopic(topicID)
			return writeOut(cmd, app, map[string]any{"data": tp.SubTopics})
		},
	}

	topicFlag(cmd, &topicID)
	cmd.Flags().IntVar(&from, "from", 0, "Current index")
	cmd.Flags().IntVar(&to, "to", 0, "Target index")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}
