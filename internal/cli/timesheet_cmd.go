package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/tempo/internal/cli/formatter"
	"github.com/alexanderramin/tempo/internal/domain"
	"github.com/alexanderramin/tempo/internal/report"
	"github.com/alexanderramin/tempo/internal/service"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

func newTimesheetCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "timesheet",
		Short: "Consolidate entries into weekly timesheets",
	}

	cmd.AddCommand(
		newTimesheetCreateCmd(app),
		newTimesheetListCmd(app),
		newTimesheetShowCmd(app),
		newTimesheetExportCmd(app),
	)

	return cmd
}

func newTimesheetCreateCmd(app *App) *cobra.Command {
	var week string
	var entryIDs []string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a draft timesheet from the week's unassigned entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			weekStart, err := parseWeekFlag(week)
			if err != nil {
				return err
			}

			eligible, err := collectEligible(ctx, app, weekStart)
			if err != nil {
				return err
			}
			if len(eligible) == 0 {
				fmt.Printf("No unassigned entries in the week of %s.\n",
					weekStart.Format("Jan 2, 2006"))
				return nil
			}

			selected := entryIDs
			if len(selected) == 0 {
				if !app.interactive() {
					return fmt.Errorf("no terminal for interactive selection; pass --entries")
				}
				selected, err = curateEntries(eligible)
				if err != nil {
					return err
				}
			}

			ts, err := app.Timesheets.Create(ctx, app.UserID, app.OrgID, weekStart, selected)
			if err != nil {
				if errors.Is(err, domain.ErrEmptySelection) {
					fmt.Println("Nothing selected; no timesheet created.")
					return nil
				}
				return err
			}

			fmt.Printf("Created timesheet %s for %s\n",
				formatter.TruncID(ts.ID), formatter.WeekLabel(ts.WeekStart, ts.WeekEnd))
			fmt.Printf("  %s total, %s billable, %d entries\n",
				formatter.Bold(formatter.FormatHours(ts.TotalHours)),
				formatter.FormatHours(ts.BillableHours), len(selected))
			return nil
		},
	}

	cmd.Flags().StringVar(&week, "week", "", "Any date in the target week (2006-01-02); defaults to the current week")
	cmd.Flags().StringSliceVar(&entryIDs, "entries", nil, "Entry IDs to include (skips the interactive picker)")

	return cmd
}

// collectEligible materializes the lazy eligible-entry sequence.
func collectEligible(ctx context.Context, app *App, weekStart time.Time) ([]service.EligibleEntry, error) {
	var eligible []service.EligibleEntry
	for ee, err := range app.Timesheets.ListEligibleEntries(ctx, app.UserID, weekStart) {
		if err != nil {
			return nil, err
		}
		eligible = append(eligible, ee)
	}
	return eligible, nil
}

// curateEntries opens a multi-select over the eligible entries. Everything
// starts selected; the user deselects what the timesheet should not claim.
func curateEntries(eligible []service.EligibleEntry) ([]string, error) {
	options := make([]huh.Option[string], 0, len(eligible))
	preselected := make([]string, 0, len(eligible))
	for _, ee := range eligible {
		e := ee.Entry
		label := fmt.Sprintf("%s  %s  %s",
			e.StartTime.Local().Format("Mon 15:04"),
			formatter.FormatSeconds(e.DurationSeconds),
			entryLabel(ee))
		options = append(options, huh.NewOption(label, e.ID))
		preselected = append(preselected, e.ID)
	}

	selected := preselected
	form := huh.NewForm(huh.NewGroup(
		huh.NewMultiSelect[string]().
			Title("Select entries for this timesheet").
			Options(options...).
			Value(&selected),
	))
	if err := form.Run(); err != nil {
		return nil, err
	}
	return selected, nil
}

func entryLabel(ee service.EligibleEntry) string {
	switch {
	case ee.TaskCode != "":
		return fmt.Sprintf("%s %s", ee.TaskCode, ee.Entry.Description)
	case ee.TaskTitle != "":
		return fmt.Sprintf("%s %s", ee.TaskTitle, ee.Entry.Description)
	default:
		return ee.Entry.Description
	}
}

func newTimesheetListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List your timesheets",
		RunE: func(cmd *cobra.Command, args []string) error {
			sheets, err := app.Timesheets.ListByUser(context.Background(), app.UserID)
			if err != nil {
				return err
			}
			if len(sheets) == 0 {
				fmt.Println("No timesheets yet.")
				return nil
			}

			headers := []string{"ID", "WEEK", "STATUS", "TOTAL", "BILLABLE"}
			rows := make([][]string, 0, len(sheets))
			for _, ts := range sheets {
				rows = append(rows, []string{
					formatter.TruncID(ts.ID),
					formatter.WeekLabel(ts.WeekStart, ts.WeekEnd),
					formatter.TimesheetPill(ts.Status),
					formatter.FormatHours(ts.TotalHours),
					formatter.FormatHours(ts.BillableHours),
				})
			}

			fmt.Print(formatter.RenderBox("Timesheets", formatter.RenderTable(headers, rows)))
			return nil
		},
	}
}

func newTimesheetShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show a timesheet and its entries",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			ts, err := app.Timesheets.GetByID(ctx, args[0])
			if err != nil {
				return err
			}
			entries, err := app.Timesheets.Entries(ctx, ts.ID)
			if err != nil {
				return err
			}

			fmt.Printf("%s  %s\n", formatter.Bold(formatter.WeekLabel(ts.WeekStart, ts.WeekEnd)),
				formatter.TimesheetPill(ts.Status))
			fmt.Printf("%s total, %s billable\n\n",
				formatter.FormatHours(ts.TotalHours), formatter.FormatHours(ts.BillableHours))

			// Task refs resolved once per distinct task.
			refs := map[string]string{}
			taskRef := func(taskID string) string {
				if taskID == "" {
					return formatter.Dim("--")
				}
				if ref, ok := refs[taskID]; ok {
					return ref
				}
				ref := formatter.TruncID(taskID)
				if task, err := app.Tasks.GetTask(ctx, taskID); err == nil {
					ref = formatter.StyleBlue.Render(task.DisplayRef())
				}
				refs[taskID] = ref
				return ref
			}

			headers := []string{"WHEN", "TASK", "DURATION", "TYPE", "$", "NOTE"}
			rows := make([][]string, 0, len(entries))
			for _, e := range entries {
				rows = append(rows, []string{
					formatter.TimeRange(e.StartTime.Local(), e.EndTime.Local()),
					taskRef(e.TaskID),
					formatter.FormatSeconds(e.DurationSeconds),
					string(e.TimerType),
					formatter.BillableMark(e.Billable),
					formatter.Dim(e.Description),
				})
			}
			fmt.Print(formatter.RenderTable(headers, rows))
			return nil
		},
	}
}

func newTimesheetExportCmd(app *App) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export ID",
		Short: "Export a timesheet as a PDF report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			ts, err := app.Timesheets.GetByID(ctx, args[0])
			if err != nil {
				return err
			}
			entries, err := app.Timesheets.Entries(ctx, ts.ID)
			if err != nil {
				return err
			}

			path := out
			if path == "" {
				path = fmt.Sprintf("timesheet-%s.pdf", ts.WeekStart.Format("2006-01-02"))
			}
			if err := report.WriteTimesheetPDF(path, ts, entries); err != nil {
				return err
			}

			fmt.Printf("Wrote %s\n", path)
			return nil
		},
	}

	cmd.Flags().StringVar(&out, "out", "", "Output path (default timesheet-WEEK.pdf)")

	return cmd
}

// parseWeekFlag resolves the --week flag to the Monday of the target week.
func parseWeekFlag(week string) (time.Time, error) {
	if week == "" {
		return domain.WeekStartOf(time.Now().UTC()), nil
	}
	day, err := time.Parse("2006-01-02", week)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing --week: expected 2006-01-02, got %q", week)
	}
	return domain.WeekStartOf(day), nil
}
