package cli

import (
	"strings"

	"sheet-cli/internal/model"

	"github.com/spf13/cobra"
)

func newQuestionsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "questions",
		Short: "Question commands (a topic's direct list, or a sub-topic's with --subtopic)",
	}
	cmd.AddCommand(newQuestionsListCmd(app))
	cmd.AddCommand(newQuestionsAddCmd(app))
	cmd.AddCommand(newQuestionsUpdateCmd(app))
	cmd.AddCommand(newQuestionsSolveCmd(app))
	cmd.AddCommand(newQuestionsDeleteCmd(app))
	cmd.AddCommand(newQuestionsMoveCmd(app))
	return cmd
}

// groupFlags binds the (topic, sub-topic) pair that scopes every question lookup.
func groupFlags(cmd *cobra.Command, topicID, subTopicID *string) {
	topicFlag(cmd, topicID)
	cmd.Flags().StringVar(subTopicID, "subtopic", "", "Sub-topic id (omit for the topic's direct questions)")
}

// difficultyFlag canonicalizes casing; anything else is passed through for validation to reject.
func difficultyFlag(v string) model.Difficulty {
	if d := model.ParseDifficulty(v); strings.EqualFold(string(d), strings.TrimSpace(v)) {
		return d
	}
	return model.Difficulty(v)
}

func newQuestionsListCmd(app *App) *cobra.Command {
	var topicID, subTopicID string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the questions of one sibling group",
		RunE: func(cmd *cobra.Command, args []string) error {
			ts, _, err := loadSheet(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			qs, err := requireGroup(ts.Snapshot(), topicID, subTopicID)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": qs})
		},
	}
	groupFlags(cmd, &topicID, &subTopicID)
	return cmd
}

func newQuestionsAddCmd(app *App) *cobra.Command {
	var topicID, subTopicID string
	var difficulty, tags string
	var in model.QuestionInput

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Append a question (always starts unsolved)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("difficulty") {
				in.Difficulty = difficultyFlag(difficulty)
			}
			in.Tags = model.ParseTags(tags)

			ts, s, err := loadSheet(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if _, err := requireGroup(ts.Snapshot(), topicID, subTopicID); err != nil {
				return writeErr(cmd, err)
			}
			tree, err := ts.AddQuestion(topicID, subTopicID, in)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := saveSheet(cmd, s, tree); err != nil {
				return writeErr(cmd, err)
			}
			qs, _ := tree.QuestionGroup(topicID, subTopicID)
			return writeOut(cmd, app, map[string]any{"data": qs[len(qs)-1]})
		},
	}

	groupFlags(cmd, &topicID, &subTopicID)
	cmd.Flags().StringVar(&in.Title, "title", "", "Question title")
	cmd.Flags().StringVar(&in.Description, "description", "", "Question description (markdown)")
	cmd.Flags().StringVar(&difficulty, "difficulty", "", "Easy|Medium|Hard (default Medium)")
	cmd.Flags().StringVar(&tags, "tags", "", "Comma-separated tags")
	cmd.Flags().StringVar(&in.VideoLink, "video", "", "Video link URL")
	_ = cmd.MarkFlagRequired("title")
	return cmd
}

func newQuestionsUpdateCmd(app *App) *cobra.Command {
	var topicID, subTopicID string
	var title, description, difficulty, tags, video string
	var solved bool

	cmd := &cobra.Command{
		Use:   "update <question-id>",
		Short: "Patch fields of a question",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var patch model.QuestionPatch
			f := cmd.Flags()
			if f.Changed("title") {
				patch.Title = &title
			}
			if f.Changed("description") {
				patch.Description = &description
			}
			if f.Changed("difficulty") {
				d := difficultyFlag(difficulty)
				patch.Difficulty = &d
			}
			if f.Changed("tags") {
				parsed := model.ParseTags(tags)
				patch.Tags = &parsed
			}
			if f.Changed("video") {
				patch.VideoLink = &video
			}
			if f.Changed("solved") {
				patch.Solved = &solved
			}
			if patch == (model.QuestionPatch{}) {
				return writeErr(cmd, errNoChange)
			}

			ts, s, err := loadSheet(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if _, err := requireQuestion(ts.Snapshot(), topicID, subTopicID, args[0]); err != nil {
				return writeErr(cmd, err)
			}
			tree, err := ts.UpdateQuestion(topicID, subTopicID, args[0], patch)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := saveSheet(cmd, s, tree); err != nil {
				return writeErr(cmd, err)
			}
			q, _ := requireQuestion(tree, topicID, subTopicID, args[0])
			return writeOut(cmd, app, map[string]any{"data": q})
		},
	}

	groupFlags(cmd, &topicID, &subTopicID)
	cmd.Flags().StringVar(&title, "title", "", "New title")
	cmd.Flags().StringVar(&description, "description", "", "New description")
	cmd.Flags().StringVar(&difficulty, "difficulty", "", "Easy|Medium|Hard")
	cmd.Flags().StringVar(&tags, "tags", "", "Comma-separated tags (replaces the list)")
	cmd.Flags().StringVar(&video, "video", "", "Video link URL (empty clears it)")
	cmd.Flags().BoolVar(&solved, "solved", false, "Solved state")
	return cmd
}

func newQuestionsSolveCmd(app *App) *cobra.Command {
	var topicID, subTopicID string

	cmd := &cobra.Command{
		Use:   "solve <question-id>",
		Short: "Toggle a question's solved state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ts, s, err := loadSheet(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if _, err := requireQuestion(ts.Snapshot(), topicID, subTopicID, args[0]); err != nil {
				return writeErr(cmd, err)
			}
			tree := ts.ToggleSolved(topicID, subTopicID, args[0])
			if err := saveSheet(cmd, s, tree); err != nil {
				return writeErr(cmd, err)
			}
			q, _ := requireQuestion(tree, topicID, subTopicID, args[0])
			return writeOut(cmd, app, map[string]any{"data": q})
		},
	}
	groupFlags(cmd, &topicID, &subTopicID)
	return cmd
}

func newQuestionsDeleteCmd(app *App) *cobra.Command {
	var topicID, subTopicID string

	cmd := &cobra.Command{
		Use:   "delete <question-id>",
		Short: "Delete a question",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ts, s, err := loadSheet(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if _, err := requireQuestion(ts.Snapshot(), topicID, subTopicID, args[0]); err != nil {
				return writeErr(cmd, err)
			}
			tree := ts.DeleteQuestion(topicID, subTopicID, args[0])
			if err := saveSheet(cmd, s, tree); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{
				"data": map[string]any{"id": args[0], "topicId": topicID, "subTopicId": subTopicID, "deleted": true},
			})
		},
	}
	groupFlags(cmd, &topicID, &subTopicID)
	return cmd
}

func newQuestionsMoveCmd(app *App) *cobra.Command {
	var topicID, subTopicID string
	var from, to int

	cmd := &cobra.Command{
		Use:   "move",
		Short: "Move the question at --from to --to within its group",
		RunE: func(cmd *cobra.Command, args []string) error {
			ts, s, err := loadSheet(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if _, err := requireGroup(ts.Snapshot(), topicID, subTopicID); err != nil {
				return writeErr(cmd, err)
			}
			tree := ts.ReorderQuestions(topicID, subTopicID, from, to)
			if err := saveSheet(cmd, s, tree); err != nil {
				return writeErr(cmd, err)
			}
			qs, _ := tree.QuestionGroup(topicID, subTopicID)
			return writeOut(cmd, app, map[string]any{"data": qs})
		},
	}

	groupFlags(cmd, &topicID, &subTopicID)
	cmd.Flags().IntVar(&from, "from", 0, "Current index")
	cmd.Flags().IntVar(&to, "to", 0, "Target index")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}
