package cli

import (
	"sheet-cli/internal/model"

	"github.com/spf13/cobra"
)

func newTopicsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "topics",
		Short: "Topic commands",
	}
	cmd.AddCommand(newTopicsListCmd(app))
	cmd.AddCommand(newTopicsAddCmd(app))
	cmd.AddCommand(newTopicsUpdateCmd(app))
	cmd.AddCommand(newTopicsDeleteCmd(app))
	cmd.AddCommand(newTopicsMoveCmd(app))
	return cmd
}

type topicSummary struct {
	ID          string `json:"id" yaml:"id"`
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
	Order       int    `json:"order" yaml:"order"`
	SubTopics   int    `json:"subTopics" yaml:"subTopics"`
	Questions   int    `json:"questions" yaml:"questions"`
	Solved      int    `json:"solved" yaml:"solved"`
}

func summarizeTopic(tp model.Topic) topicSummary {
	st := tp.Stats()
	return topicSummary{
		ID:          tp.ID,
		Title:       tp.Title,
		Description: tp.Description,
		Order:       tp.Order,
		SubTopics:   len(tp.SubTopics),
		Questions:   st.Total,
		Solved:      st.Solved,
	}
}

func newTopicsListCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List topics in order",
		RunE: func(cmd *cobra.Command, args []string) error {
			ts, _, err := loadSheet(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			out := []topicSummary{}
			for _, tp := range ts.Snapshot() {
				out = append(out, summarizeTopic(tp))
			}
			return writeOut(cmd, app, map[string]any{"data": out})
		},
	}
	return cmd
}

func newTopicsAddCmd(app *App) *cobra.Command {
	var in model.TopicInput

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Append a topic",
		RunE: func(cmd *cobra.Command, args []string) error {
			ts, s, err := loadSheet(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			tree, err := ts.AddTopic(in)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := saveSheet(cmd, s, tree); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": tree[len(tree)-1]})
		},
	}

	cmd.Flags().StringVar(&in.Title, "title", "", "Topic title")
	cmd.Flags().StringVar(&in.Description, "description", "", "Topic description")
	_ = cmd.MarkFlagRequired("title")
	return cmd
}

func newTopicsUpdateCmd(app *App) *cobra.Command {
	var title, description string

	cmd := &cobra.Command{
		Use:   "update <topic-id>",
		Short: "Patch a topic's title or description",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var patch model.TopicPatch
			if cmd.Flags().Changed("title") {
				patch.Title = &title
			}
			if cmd.Flags().Changed("description") {
				patch.Description = &description
			}
			if patch == (model.TopicPatch{}) {
				return writeErr(cmd, errNoChange)
			}

			ts, s, err := loadSheet(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if _, err := requireTopic(ts.Snapshot(), args[0]); err != nil {
				return writeErr(cmd, err)
			}
			tree, err := ts.UpdateTopic(args[0], patch)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := saveSheet(cmd, s, tree); err != nil {
				return writeErr(cmd, err)
			}
			tp, _ := tree.FindTopic(args[0])
			return writeOut(cmd, app, map[string]any{"data": tp})
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "New title")
	cmd.Flags().StringVar(&description, "description", "", "New description")
	return cmd
}

func newTopicsDeleteCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <topic-id>",
		Short: "Delete a topic with all its sub-topics and questions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ts, s, err := loadSheet(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			tp, err := requireTopic(ts.Snapshot(), args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			removed := tp.Stats().Total
			tree := ts.DeleteTopic(args[0])
			if err := saveSheet(cmd, s, tree); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{
				"data": map[string]any{"id": args[0], "deleted": true, "questionsRemoved": removed},
			})
		},
	}
	return cmd
}

func newTopicsMoveCmd(app *App) *cobra.Command {
	var from, to int

	cmd := &cobra.Command{
		Use:   "move",
		Short: "Move the topic at --from to --to",
		RunE: func(cmd *cobra.Command, args []string) error {
			ts, s, err := loadSheet(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			tree := ts.ReorderTopics(from, to)
			if err := saveSheet(cmd, s, tree); err != nil {
				return writeErr(cmd, err)
			}
			out := []topicSummary{}
			for _, tp := range tree {
				out = append(out, summarizeTopic(tp))
			}
			return writeOut(cmd, app, map[string]any{"data": out})
		},
	}

	cmd.Flags().IntVar(&from, "from", 0, "Current index")
	cmd.Flags().IntVar(&to, "to", 0, "Target index")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}
