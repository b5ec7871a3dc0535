package main

import (
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"ideaforge/internal/pipeline"
)

var (
	ideaTitle       string
	ideaDescription string
	ideaUserID      string
	ideaID          string
)

var ideaCmd = &cobra.Command{
	Use:   "idea",
	Short: "Generate and inspect idea plans",
}

var ideaCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Generate a plan for a new idea",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		idea, err := newPipeline(st).GeneratePlan(cmd.Context(), pipeline.PlanRequest{
			Title:       ideaTitle,
			Description: ideaDescription,
			UserID:      ideaUserID,
		})
		if err != nil {
			return err
		}

		fmt.Printf("Created idea %s\n\n", idea.ID)
		fmt.Println(renderMarkdown(idea.Plan))
		return nil
	},
}

var ideaBreakdownCmd = &cobra.Command{
	Use:   "breakdown",
	Short: "Generate the task hierarchy for an existing idea",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		report, err := newPipeline(st).GenerateBreakdown(cmd.Context(), pipeline.BreakdownRequest{
			IdeaID: ideaID,
			UserID: ideaUserID,
		})
		if err != nil {
			return err
		}

		fmt.Printf("Tasks: %d created, %d failed. Subtasks: %d created, %d failed.\n",
			report.TasksCreated(), report.TasksFailed(),
			report.SubtasksCreated(), report.SubtasksFailed())
		for _, t := range report.Tasks {
			if t.Err != "" {
				fmt.Printf("  ✗ %s: %s\n", t.Title, t.Err)
				continue
			}
			fmt.Printf("  ✓ %s\n", t.Title)
		}
		return nil
	},
}

var (
	taskStyle    = lipgloss.NewStyle().Bold(true)
	subtaskStyle = lipgloss.NewStyle().Faint(true)
	phaseStyle   = lipgloss.NewStyle().Italic(true)
)

var ideaShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Render an idea's plan and task tree",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		ctx := cmd.Context()
		idea, err := st.GetIdea(ctx, ideaID)
		if err != nil {
			return err
		}

		fmt.Printf("%s\n%s\n", taskStyle.Render(idea.Title), idea.Description)
		if idea.Plan != "" {
			fmt.Println(renderMarkdown(idea.Plan))
		}

		tasks, err := st.ListTasks(ctx, idea.ID)
		if err != nil {
			return err
		}
		for _, task := range tasks {
			label := task.Title
			if task.Phase != "" {
				label += " " + phaseStyle.Render("["+task.Phase+"]")
			}
			fmt.Printf("%d. %s (%s)\n", task.Position+1, taskStyle.Render(label), task.Status)

			subtasks, err := st.ListSubtasks(ctx, task.ID)
			if err != nil {
				return err
			}
			for _, sub := range subtasks {
				fmt.Printf("   %d.%d %s\n", task.Position+1, sub.Position+1, subtaskStyle.Render(sub.Title))
			}
		}
		return nil
	},
}

var ideaDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Soft-delete an idea",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		if err := st.SoftDeleteIdea(cmd.Context(), ideaID); err != nil {
			return err
		}
		fmt.Printf("Deleted idea %s\n", ideaID)
		return nil
	},
}

// renderMarkdown pretty-prints markdown for the terminal, falling back
// to the raw text when the renderer cannot be built.
func renderMarkdown(md string) string {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		return md
	}
	out, err := renderer.Render(md)
	if err != nil {
		return md
	}
	return out
}

func init() {
	ideaCreateCmd.Flags().StringVar(&ideaTitle, "title", "", "idea title")
	ideaCreateCmd.Flags().StringVar(&ideaDescription, "description", "", "idea description")
	ideaCreateCmd.Flags().StringVar(&ideaUserID, "user", "", "owner user id")

	ideaBreakdownCmd.Flags().StringVar(&ideaID, "id", "", "idea id")
	ideaBreakdownCmd.Flags().StringVar(&ideaUserID, "user", "", "owner user id")

	ideaShowCmd.Flags().StringVar(&ideaID, "id", "", "idea id")
	ideaDeleteCmd.Flags().StringVar(&ideaID, "id", "", "idea id")

	ideaCmd.AddCommand(ideaCreateCmd)
	ideaCmd.AddCommand(ideaBreakdownCmd)
	ideaCmd.AddCommand(ideaShowCmd)
	ideaCmd.AddCommand(ideaDeleteCmd)
}
