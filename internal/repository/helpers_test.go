package repository

import (
	"context"
	"database/sql"
	"testing"

	"github.com/alexanderramin/tempo/internal/domain"
	"github.com/alexanderramin/tempo/internal/testutil"
	"github.com/stretchr/testify/require"
)

type repos struct {
	db       *sql.DB
	entries  *SQLiteTimeEntryRepo
	sheets   *SQLiteTimesheetRepo
	tasks    *SQLiteTaskRepo
	projects *SQLiteProjectRepo
	timers   *SQLiteTimerRepo
	profiles *SQLiteProfileRepo
}

func newRepos(t *testing.T) *repos {
	t.Helper()
	database := testutil.NewTestDB(t)
	return &repos{
		db:       database,
		entries:  NewSQLiteTimeEntryRepo(database),
		sheets:   NewSQLiteTimesheetRepo(database),
		tasks:    NewSQLiteTaskRepo(database),
		projects: NewSQLiteProjectRepo(database),
		timers:   NewSQLiteTimerRepo(database),
		profiles: NewSQLiteProfileRepo(database),
	}
}

func (r *repos) seedTask(t *testing.T) *domain.Task {
	t.Helper()
	ctx := context.Background()
	proj := testutil.NewTestProject("Atlas")
	require.NoError(t, r.projects.Create(ctx, proj))
	task := testutil.NewTestTask(proj.ID, "API integration", testutil.WithCode("ATL-7"))
	require.NoError(t, r.tasks.Create(ctx, task))
	return task
}
