package services

import (
	"context"
	"testing"
	"time"

	"monitor-hub/backend/app/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPolicy_CreateThenList(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	site, err := f.policies.Create(ctx, "Example.com", models.SeverityHigh, "no gambling")
	require.NoError(t, err)
	assert.NotZero(t, site.ID)

	sites, err := f.policies.List(ctx)
	require.NoError(t, err)
	require.Len(t, sites, 1)
	assert.Equal(t, "Example.com", sites[0].URL)
	assert.Equal(t, models.SeverityHigh, sites[0].Severity)
	assert.Equal(t, "no gambling", sites[0].Reason)
}

func TestPolicy_CreateDefaultsAndValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	site, err := f.policies.Create(ctx, "casino", "", "")
	require.NoError(t, err)
	assert.Equal(t, models.SeverityMedium, site.Severity)
	assert.Empty(t, site.Reason)

	_, err = f.policies.Create(ctx, "  ", models.SeverityLow, "")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = f.policies.Create(ctx, "x.com", "CRITICAL", "")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = f.policies.Create(ctx, "casino", models.SeverityLow, "")
	assert.ErrorIs(t, err, ErrConflict)
}

func TestPolicy_DeleteRemoves(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.policies.Create(ctx, "example.com", models.SeverityLow, "")
	require.NoError(t, err)

	require.NoError(t, f.policies.Delete(ctx, "example.com"))
	sites, err := f.policies.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, sites)

	assert.ErrorIs(t, f.policies.Delete(ctx, "example.com"), ErrNotFound)
}

func TestPolicy_Update(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.policies.Create(ctx, "example.com", models.SeverityLow, "old")
	require.NoError(t, err)

	high := models.SeverityHigh
	site, err := f.policies.Update(ctx, "example.com", &high, nil)
	require.NoError(t, err)
	assert.Equal(t, models.SeverityHigh, site.Severity)
	assert.Equal(t, "old", site.Reason)

	reason := "new"
	site, err = f.policies.Update(ctx, "example.com", nil, &reason)
	require.NoError(t, err)
	assert.Equal(t, "new", site.Reason)

	_, err = f.policies.Update(ctx, "missing.com", &high, nil)
	assert.ErrorIs(t, err, ErrNotFound)

	empty := models.Severity("")
	reason = "kept severity"
	site, err = f.policies.Update(ctx, "example.com", &empty, &reason)
	require.NoError(t, err)
	assert.Equal(t, models.SeverityHigh, site.Severity)
	assert.Equal(t, "kept severity", site.Reason)

	bad := models.Severity("nope")
	_, err = f.policies.Update(ctx, "example.com", &bad, nil)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestPolicy_ListNewestFirst(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.policies.Create(ctx, "first.com", "", "")
	require.NoError(t, err)
	f.clock.Set(t0.Add(time.Minute))
	_, err = f.policies.Create(ctx, "second.com", "", "")
	require.NoError(t, err)

	sites, err := f.policies.List(ctx)
	require.NoError(t, err)
	require.Len(t, sites, 2)
	assert.Equal(t, "second.com", sites[0].URL)
}
