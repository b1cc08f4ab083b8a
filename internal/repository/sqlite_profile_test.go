package repository

import (
	"context"
	"testing"

	"github.com/alexanderramin/tempo/internal/domain"
	"github.com/alexanderramin/tempo/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileRepo_GetMissingIsNotFound(t *testing.T) {
	r := newRepos(t)
	_, err := r.profiles.Get(context.Background(), "u1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestProfileRepo_UpsertReplacesExisting(t *testing.T) {
	r := newRepos(t)
	ctx := context.Background()

	profile := testutil.NewTestProfile(domain.PlanBase)
	require.NoError(t, r.profiles.Upsert(ctx, profile))

	profile.Plan = domain.PlanPro
	profile.DefaultBillable = true
	require.NoError(t, r.profiles.Upsert(ctx, profile))

	got, err := r.profiles.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, domain.PlanPro, got.Plan)
	assert.True(t, got.DefaultBillable)
	assert.Equal(t, "org1", got.OrgID)
}

func TestProjectRepo_ListScopedToOrgAndSorted(t *testing.T) {
	r := newRepos(t)
	ctx := context.Background()

	zephyr := testutil.NewTestProject("Zephyr")
	atlas := testutil.NewTestProject("Atlas", testutil.WithClient("Acme"))
	require.NoError(t, r.projects.Create(ctx, zephyr))
	require.NoError(t, r.projects.Create(ctx, atlas))

	foreign := testutil.NewTestProject("Elsewhere")
	foreign.OrgID = "org2"
	require.NoError(t, r.projects.Create(ctx, foreign))

	got, err := r.projects.List(ctx, "org1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Atlas", got[0].Name)
	assert.Equal(t, "Acme", got[0].Client)
	assert.Equal(t, "Zephyr", got[1].Name)
}
