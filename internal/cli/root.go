package cli

import (
	"github.com/alexanderramin/tempo/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands, plus
// the identity the invocation runs as.
type App struct {
	Timers     service.TimerService
	Entries    service.EntryService
	Timesheets service.TimesheetService
	Tasks      service.CatalogService

	UserID string
	OrgID  string

	// IsInteractive gates the huh prompts and colored output.
	IsInteractive func() bool
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// NewRootCmd creates the top-level "tempo" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "tempo",
		Short: "Work-time tracker and weekly timesheet builder",
	}

	root.AddCommand(
		newTimerCmd(app),
		newLogCmd(app),
		newTimesheetCmd(app),
		newTaskCmd(app),
		newProjectCmd(app),
	)

	return root
}
