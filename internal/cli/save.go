package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/alexanderramin/tempo/internal/cli/formatter"
	"github.com/alexanderramin/tempo/internal/domain"
	"github.com/charmbracelet/huh"
)

// errSaveDeclined signals that the user answered "no" to the long-session
// confirmation. Callers treat it as a clean abort, not a failure.
var errSaveDeclined = errors.New("save declined")

// saveCandidate runs the candidate through the entry service. When the
// validator asks for confirmation of an unusually long session, an
// interactive run prompts the user once; a non-interactive run points at the
// --confirm flag instead.
func saveCandidate(ctx context.Context, app *App, cand domain.Candidate) (*domain.TimeEntry, error) {
	entry, err := app.Entries.Log(ctx, cand)
	var confirm *domain.ConfirmationRequiredError
	if !errors.As(err, &confirm) {
		return entry, err
	}

	if !app.interactive() {
		return nil, fmt.Errorf("session of %s exceeds 12 hours; rerun with --confirm to accept it",
			formatter.FormatSeconds(int64(confirm.Duration.Seconds())))
	}

	var accepted bool
	form := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title(fmt.Sprintf("This session is %s long. Save it anyway?",
				formatter.FormatSeconds(int64(confirm.Duration.Seconds())))).
			Value(&accepted),
	))
	if err := form.Run(); err != nil {
		return nil, err
	}
	if !accepted {
		return nil, errSaveDeclined
	}

	cand.Confirmed = true
	return app.Entries.Log(ctx, cand)
}
