package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/tempo/internal/cli/formatter"
	"github.com/alexanderramin/tempo/internal/domain"
	"github.com/spf13/cobra"
)

func newLogCmd(app *App) *cobra.Command {
	var (
		taskID, projectID, description string
		from, to, duration             string
		billable, confirmed            bool
		recent                         bool
		limit                          int
	)

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Log a time entry manually, or list recent entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			if recent {
				return printRecentEntries(ctx, app, limit)
			}

			start, end, err := parseInterval(from, to, duration)
			if err != nil {
				return err
			}

			cand := domain.Candidate{
				UserID:      app.UserID,
				OrgID:       app.OrgID,
				TaskID:      taskID,
				ProjectID:   projectID,
				StartTime:   start,
				EndTime:     end,
				TimerType:   domain.TypeManual,
				Description: description,
				Billable:    billable,
				Confirmed:   confirmed,
			}

			entry, err := saveCandidate(ctx, app, cand)
			if err != nil {
				if errors.Is(err, errSaveDeclined) {
					fmt.Println("Not saved.")
					return nil
				}
				return err
			}

			fmt.Printf("Logged %s (%s)\n",
				formatter.Bold(formatter.FormatSeconds(entry.DurationSeconds)),
				formatter.TruncID(entry.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&taskID, "task", "", "Task the time is charged against")
	cmd.Flags().StringVar(&projectID, "project", "", "Project, when no task applies")
	cmd.Flags().StringVar(&from, "from", "", "Start time (RFC3339 or 15:04 today)")
	cmd.Flags().StringVar(&to, "to", "", "End time (RFC3339 or 15:04 today)")
	cmd.Flags().StringVar(&duration, "for", "", "Duration from start, e.g. 1h30m (alternative to --to)")
	cmd.Flags().StringVar(&description, "note", "", "What the time was spent on")
	cmd.Flags().BoolVar(&billable, "billable", false, "Mark the entry billable")
	cmd.Flags().BoolVar(&confirmed, "confirm", false, "Accept sessions longer than 12 hours without prompting")
	cmd.Flags().BoolVar(&recent, "recent", false, "List recent entries instead of logging")
	cmd.Flags().IntVar(&limit, "limit", 10, "Number of recent entries to show")

	return cmd
}

// parseInterval turns the --from/--to/--for flags into a concrete interval.
// Bare clock times are interpreted as today in local time.
func parseInterval(from, to, duration string) (time.Time, time.Time, error) {
	if from == "" {
		return time.Time{}, time.Time{}, fmt.Errorf("--from is required")
	}
	start, err := parseTimeFlag(from)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("parsing --from: %w", err)
	}

	switch {
	case to != "" && duration != "":
		return time.Time{}, time.Time{}, fmt.Errorf("--to and --for are mutually exclusive")
	case to != "":
		end, err := parseTimeFlag(to)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("parsing --to: %w", err)
		}
		return start, end, nil
	case duration != "":
		d, err := time.ParseDuration(duration)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("parsing --for: %w", err)
		}
		return start, start.Add(d), nil
	default:
		return time.Time{}, time.Time{}, fmt.Errorf("either --to or --for is required")
	}
}

func parseTimeFlag(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	clock, err := time.Parse("15:04", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("expected RFC3339 or HH:MM, got %q", s)
	}
	now := time.Now()
	local := time.Date(now.Year(), now.Month(), now.Day(),
		clock.Hour(), clock.Minute(), 0, 0, time.Local)
	return local.UTC(), nil
}

func printRecentEntries(ctx context.Context, app *App, limit int) error {
	entries, err := app.Entries.ListRecent(ctx, app.UserID, limit)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("No entries yet.")
		return nil
	}

	headers := []string{"ID", "WHEN", "DURATION", "TYPE", "$", "NOTE"}
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		note := e.Description
		if len(note) > 40 {
			note = note[:37] + "..."
		}
		rows = append(rows, []string{
			formatter.TruncID(e.ID),
			formatter.TimeRange(e.StartTime.Local(), e.EndTime.Local()),
			formatter.FormatSeconds(e.DurationSeconds),
			string(e.TimerType),
			formatter.BillableMark(e.Billable),
			formatter.Dim(note),
		})
	}

	fmt.Print(formatter.RenderBox("Recent entries", formatter.RenderTable(headers, rows)))
	return nil
}
