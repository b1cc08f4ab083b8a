package service

import (
	"context"
	"testing"

	"github.com/alexanderramin/tempo/internal/domain"
	"github.com/alexanderramin/tempo/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog_CreateProjectAndTask(t *testing.T) {
	env := newTestEnv(t)
	svc := NewCatalogService(env.projects, env.tasks)
	ctx := context.Background()

	proj, err := svc.CreateProject(ctx, "org1", "Atlas", "Acme")
	require.NoError(t, err)
	require.NotEmpty(t, proj.ID)

	task, err := svc.CreateTask(ctx, proj.ID, "ATL-1", "Kickoff")
	require.NoError(t, err)

	tasks, err := svc.ListTasks(ctx, proj.ID)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, task.ID, tasks[0].ID)

	projects, err := svc.ListProjects(ctx, "org1")
	require.NoError(t, err)
	assert.Len(t, projects, 1)
}

func TestCatalog_CreateProjectRequiresName(t *testing.T) {
	env := newTestEnv(t)
	svc := NewCatalogService(env.projects, env.tasks)

	_, err := svc.CreateProject(context.Background(), "org1", "", "Acme")
	var vErr *domain.ValidationError
	assert.ErrorAs(t, err, &vErr)
}

func TestCatalog_CreateTaskRequiresExistingProject(t *testing.T) {
	env := newTestEnv(t)
	svc := NewCatalogService(env.projects, env.tasks)

	_, err := svc.CreateTask(context.Background(), "no-such-project", "X-1", "Orphan")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, err = svc.CreateProject(context.Background(), "org1", "Atlas", "")
	require.NoError(t, err)
}

func TestCatalog_ListTasksWithoutProjectReturnsAll(t *testing.T) {
	env := newTestEnv(t)
	svc := NewCatalogService(env.projects, env.tasks)
	ctx := context.Background()

	atlas, err := svc.CreateProject(ctx, "org1", "Atlas", "")
	require.NoError(t, err)
	borealis, err := svc.CreateProject(ctx, "org1", "Borealis", "")
	require.NoError(t, err)

	_, err = svc.CreateTask(ctx, atlas.ID, "ATL-1", "Kickoff")
	require.NoError(t, err)
	_, err = svc.CreateTask(ctx, borealis.ID, "BOR-1", "Survey")
	require.NoError(t, err)

	all, err := svc.ListTasks(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
