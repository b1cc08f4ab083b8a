package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/tempo/internal/cli/formatter"
	"github.com/alexanderramin/tempo/internal/domain"
	"github.com/alexanderramin/tempo/internal/service"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newTimerWatchCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Watch the timer tick in place",
		RunE: func(cmd *cobra.Command, args []string) error {
			timer, err := app.Timers.Status(context.Background(), app.UserID)
			if err != nil {
				return err
			}
			if !timer.Active() {
				fmt.Println("No active timer. Start one with " + formatter.Bold("tempo timer start"))
				return nil
			}

			_, err = tea.NewProgram(newWatchModel(app.Timers, app.UserID, timer)).Run()
			return err
		},
	}
}

type watchTickMsg time.Time

type watchRefreshMsg struct {
	timer *domain.Timer
	err   error
}

// watchModel re-renders the elapsed time every second. The elapsed value is
// recomputed from the persisted state machine, so pausing or stopping the
// timer from another terminal shows up within a tick.
type watchModel struct {
	timers  service.TimerService
	userID  string
	timer   *domain.Timer
	spinner spinner.Model
	err     error
}

func newWatchModel(timers service.TimerService, userID string, timer *domain.Timer) watchModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = formatter.StylePurple
	return watchModel{
		timers:  timers,
		userID:  userID,
		timer:   timer,
		spinner: sp,
	}
}

func (m watchModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, watchTick())
}

func watchTick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return watchTickMsg(t)
	})
}

func (m watchModel) refresh() tea.Cmd {
	return func() tea.Msg {
		timer, err := m.timers.Status(context.Background(), m.userID)
		return watchRefreshMsg{timer: timer, err: err}
	}
}

func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case watchTickMsg:
		return m, tea.Batch(m.refresh(), watchTick())

	case watchRefreshMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, tea.Quit
		}
		m.timer = msg.timer
		if !m.timer.Active() {
			return m, tea.Quit
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "p":
			if m.timer.Mode == domain.TimerRunning {
				_, _ = m.timers.Pause(context.Background(), m.userID)
			} else if m.timer.Mode == domain.TimerPaused {
				_, _ = m.timers.Resume(context.Background(), m.userID)
			}
			return m, m.refresh()
		}
		return m, nil

	default:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
}

func (m watchModel) View() string {
	if m.err != nil {
		return fmt.Sprintf("Error: %v\n", m.err)
	}

	var b strings.Builder
	now := time.Now().UTC()

	indicator := "  "
	if m.timer.Mode == domain.TimerRunning {
		indicator = m.spinner.View()
	}
	b.WriteString(fmt.Sprintf("\n  %s %s  %s\n", indicator,
		formatter.StyleBold.Render(formatter.FormatClock(m.timer.ElapsedSeconds(now))),
		formatter.TimerPill(m.timer.Mode)))

	if m.timer.FixedDurationSeconds > 0 {
		remaining := int64(m.timer.FixedDurationSeconds) - m.timer.ElapsedSeconds(now)
		if remaining > 0 {
			b.WriteString(fmt.Sprintf("     %s %s\n",
				formatter.Dim("target in"), formatter.FormatSeconds(remaining)))
		} else {
			b.WriteString("     " + formatter.StyleGreen.Render("target reached") + "\n")
		}
	}
	if m.timer.Description != "" {
		b.WriteString("     " + formatter.Dim(m.timer.Description) + "\n")
	}

	b.WriteString("\n  " + formatter.Dim("p pause/resume · q quit") + "\n")
	return b.String()
}
