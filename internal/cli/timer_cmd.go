package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/tempo/internal/cli/formatter"
	"github.com/alexanderramin/tempo/internal/domain"
	"github.com/spf13/cobra"
)

func newTimerCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "timer",
		Short: "Control the work timer",
	}

	cmd.AddCommand(
		newTimerStartCmd(app),
		newTimerPauseCmd(app),
		newTimerResumeCmd(app),
		newTimerStatusCmd(app),
		newTimerWatchCmd(app),
		newTimerStopCmd(app),
		newTimerDiscardCmd(app),
		newTimerTaskCmd(app),
		newTimerDescribeCmd(app),
		newTimerBillableCmd(app),
	)

	return cmd
}

func newTimerStartCmd(app *App) *cobra.Command {
	var kind string
	var focusMinutes int

	cmd := &cobra.Command{
		Use:   "start",
		Short: "Start (or restart) the timer",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !domain.ValidTimerKinds[kind] {
				return fmt.Errorf("unknown timer kind %q (quick or focus)", kind)
			}
			fixed := 0
			if domain.TimerKind(kind) == domain.KindFocus {
				fixed = focusMinutes * 60
			}
			timer, err := app.Timers.Start(context.Background(), app.UserID, domain.TimerKind(kind), fixed)
			if err != nil {
				return err
			}

			fmt.Printf("%s %s timer started\n", formatter.TimerPill(timer.Mode), kind)
			if fixed > 0 {
				fmt.Printf("  target %s\n", formatter.Dim(formatter.FormatSeconds(int64(fixed))))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&kind, "kind", "quick", "Timer kind: quick or focus")
	cmd.Flags().IntVar(&focusMinutes, "minutes", 25, "Focus target in minutes (focus kind only)")

	return cmd
}

func newTimerPauseCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "pause",
		Short: "Pause the running timer",
		RunE: func(cmd *cobra.Command, args []string) error {
			timer, err := app.Timers.Pause(context.Background(), app.UserID)
			if err != nil {
				return err
			}
			fmt.Printf("%s at %s\n", formatter.TimerPill(timer.Mode),
				formatter.FormatSeconds(timer.AccumulatedSeconds))
			return nil
		},
	}
}

func newTimerResumeCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "resume",
		Short: "Resume a paused timer",
		RunE: func(cmd *cobra.Command, args []string) error {
			timer, err := app.Timers.Resume(context.Background(), app.UserID)
			if err != nil {
				return err
			}
			fmt.Printf("%s from %s\n", formatter.TimerPill(timer.Mode),
				formatter.FormatSeconds(timer.AccumulatedSeconds))
			return nil
		},
	}
}

func newTimerStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the current timer state",
		RunE: func(cmd *cobra.Command, args []string) error {
			timer, err := app.Timers.Status(context.Background(), app.UserID)
			if err != nil {
				return err
			}
			fmt.Print(formatter.RenderBox("Timer", renderTimer(timer, time.Now().UTC())))
			return nil
		},
	}
}

func renderTimer(t *domain.Timer, now time.Time) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s  %s\n\n", formatter.TimerPill(t.Mode), formatter.KindBadge(t.Kind)))
	b.WriteString(fmt.Sprintf("  %s  %s\n", formatter.Dim("ELAPSED "),
		formatter.FormatClock(t.ElapsedSeconds(now))))
	if t.FixedDurationSeconds > 0 {
		b.WriteString(fmt.Sprintf("  %s  %s\n", formatter.Dim("TARGET  "),
			formatter.FormatSeconds(int64(t.FixedDurationSeconds))))
	}
	if t.TaskID != "" {
		b.WriteString(fmt.Sprintf("  %s  %s\n", formatter.Dim("TASK    "), formatter.TruncID(t.TaskID)))
	}
	if t.Description != "" {
		b.WriteString(fmt.Sprintf("  %s  %s\n", formatter.Dim("NOTE    "), t.Description))
	}
	b.WriteString(fmt.Sprintf("  %s  %s\n", formatter.Dim("BILLABLE"), formatter.BillableMark(t.Billable)))
	return b.String()
}

func newTimerStopCmd(app *App) *cobra.Command {
	var confirmed bool

	cmd := &cobra.Command{
		Use:   "stop",
		Short: "Stop the timer and save the measured time as an entry",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			cand, err := app.Timers.Stop(ctx, app.UserID)
			if err != nil {
				return err
			}
			cand.Confirmed = confirmed

			entry, err := saveCandidate(ctx, app, cand)
			if err != nil {
				if errors.Is(err, errSaveDeclined) {
					fmt.Println("Not saved. The measured time is kept; use " +
						formatter.Bold("tempo timer discard") + " to drop it.")
					return nil
				}
				return fmt.Errorf("%w\nThe measured time is kept; fix the problem "+
					"(e.g. tempo timer task ID) and run tempo timer stop again, "+
					"or tempo timer discard", err)
			}

			// The candidate is persisted; clear the timer for the next run.
			if err := app.Timers.Discard(ctx, app.UserID); err != nil {
				return err
			}

			fmt.Printf("Saved %s entry (%s)\n",
				formatter.Bold(formatter.FormatSeconds(entry.DurationSeconds)),
				formatter.TruncID(entry.ID))
			return nil
		},
	}

	cmd.Flags().BoolVar(&confirmed, "confirm", false, "Accept sessions longer than 12 hours without prompting")

	return cmd
}

func newTimerDiscardCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "discard",
		Short: "Drop the current measurement and reset the timer",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Timers.Discard(context.Background(), app.UserID); err != nil {
				return err
			}
			fmt.Println("Timer reset.")
			return nil
		},
	}
}

func newTimerTaskCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "task ID",
		Short: "Charge the current measurement against a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			timer, err := app.Timers.SetTask(context.Background(), app.UserID, args[0])
			if err != nil {
				return err
			}
			fmt.Printf("Timer assigned to task %s\n", formatter.TruncID(timer.TaskID))
			return nil
		},
	}
}

func newTimerDescribeCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "describe TEXT",
		Short: "Set the note on the current measurement",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.Join(args, " ")
			if _, err := app.Timers.SetDescription(context.Background(), app.UserID, text); err != nil {
				return err
			}
			fmt.Println("Note set.")
			return nil
		},
	}
}

func newTimerBillableCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "billable on|off",
		Short: "Flag the current measurement as billable or not",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var billable bool
			switch args[0] {
			case "on":
				billable = true
			case "off":
				billable = false
			default:
				return fmt.Errorf("expected on or off, got %q", args[0])
			}
			if _, err := app.Timers.SetBillable(context.Background(), app.UserID, billable); err != nil {
				return err
			}
			fmt.Printf("Billable %s\n", args[0])
			return nil
		},
	}
}
