package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/alexanderramin/tempo/internal/db"
	"github.com/alexanderramin/tempo/internal/domain"
	"github.com/alexanderramin/tempo/internal/repository"
	"github.com/alexanderramin/tempo/internal/testutil"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	db       *sql.DB
	uow      db.UnitOfWork
	entries  *repository.SQLiteTimeEntryRepo
	sheets   *repository.SQLiteTimesheetRepo
	tasks    *repository.SQLiteTaskRepo
	projects *repository.SQLiteProjectRepo
	timers   *repository.SQLiteTimerRepo
	profiles *repository.SQLiteProfileRepo
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	database := testutil.NewTestDB(t)
	return &testEnv{
		db:       database,
		uow:      testutil.NewTestUoW(database),
		entries:  repository.NewSQLiteTimeEntryRepo(database),
		sheets:   repository.NewSQLiteTimesheetRepo(database),
		tasks:    repository.NewSQLiteTaskRepo(database),
		projects: repository.NewSQLiteProjectRepo(database),
		timers:   repository.NewSQLiteTimerRepo(database),
		profiles: repository.NewSQLiteProfileRepo(database),
	}
}

// seedCatalog creates a project with one task and returns the task.
func (env *testEnv) seedCatalog(t *testing.T) *domain.Task {
	t.Helper()
	ctx := context.Background()
	proj := testutil.NewTestProject("Atlas", testutil.WithClient("Acme"))
	require.NoError(t, env.projects.Create(ctx, proj))
	task := testutil.NewTestTask(proj.ID, "API integration", testutil.WithCode("ATL-7"))
	require.NoError(t, env.tasks.Create(ctx, task))
	return task
}
