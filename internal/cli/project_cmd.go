package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/tempo/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newProjectCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Manage projects",
	}

	cmd.AddCommand(
		newProjectAddCmd(app),
		newProjectListCmd(app),
	)

	return cmd
}

func newProjectAddCmd(app *App) *cobra.Command {
	var name, client string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a new project",
		RunE: func(cmd *cobra.Command, args []string) error {
			proj, err := app.Tasks.CreateProject(context.Background(), app.OrgID, name, client)
			if err != nil {
				return err
			}
			fmt.Printf("Created project %s (%s)\n", proj.Name, formatter.TruncID(proj.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Project name")
	cmd.Flags().StringVar(&client, "client", "", "Client the project belongs to")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newProjectListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			projects, err := app.Tasks.ListProjects(context.Background(), app.OrgID)
			if err != nil {
				return err
			}
			if len(projects) == 0 {
				fmt.Println("No projects found.")
				return nil
			}

			headers := []string{"ID", "NAME", "CLIENT"}
			rows := make([][]string, 0, len(projects))
			for _, p := range projects {
				client := p.Client
				if client == "" {
					client = formatter.Dim("--")
				}
				rows = append(rows, []string{
					formatter.TruncID(p.ID),
					formatter.Bold(p.Name),
					client,
				})
			}

			fmt.Print(formatter.RenderBox("Projects", formatter.RenderTable(headers, rows)))
			return nil
		},
	}
}
