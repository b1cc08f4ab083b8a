package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/tempo/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newTaskCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage tasks",
	}

	cmd.AddCommand(
		newTaskAddCmd(app),
		newTaskListCmd(app),
	)

	return cmd
}

func newTaskAddCmd(app *App) *cobra.Command {
	var projectID, code, title string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a new task",
		RunE: func(cmd *cobra.Command, args []string) error {
			task, err := app.Tasks.CreateTask(context.Background(), projectID, code, title)
			if err != nil {
				return err
			}
			fmt.Printf("Created task %s (%s)\n", task.Title, formatter.TruncID(task.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&projectID, "project", "", "Parent project ID")
	cmd.Flags().StringVar(&code, "code", "", "Short reference code, e.g. ATL-7")
	cmd.Flags().StringVar(&title, "title", "", "Task title")
	_ = cmd.MarkFlagRequired("project")
	_ = cmd.MarkFlagRequired("title")

	return cmd
}

func newTaskListCmd(app *App) *cobra.Command {
	var projectID string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			tasks, err := app.Tasks.ListTasks(context.Background(), projectID)
			if err != nil {
				return err
			}
			if len(tasks) == 0 {
				fmt.Println("No tasks found.")
				return nil
			}

			headers := []string{"ID", "CODE", "TITLE", "LOGGED"}
			rows := make([][]string, 0, len(tasks))
			for _, task := range tasks {
				rows = append(rows, []string{
					formatter.TruncID(task.ID),
					formatter.TaskRef(task.Code, ""),
					task.Title,
					formatter.FormatSeconds(task.LoggedSeconds),
				})
			}

			fmt.Print(formatter.RenderBox("Tasks", formatter.RenderTable(headers, rows)))
			return nil
		},
	}

	cmd.Flags().StringVar(&projectID, "project", "", "Filter by project ID")

	return cmd
}
