package services

import (
	"context"
	"testing"
	"time"

	"monitor-hub/backend/app/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPresence_TouchTwiceKeepsOneRecord(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.presence.Touch(ctx, DeviceReport{User: "alice", Hostname: "lap-1", Platform: "linux"})
	require.NoError(t, err)

	f.clock.Set(t0.Add(30 * time.Second))
	d, err := f.presence.Touch(ctx, DeviceReport{User: "alice"})
	require.NoError(t, err)

	assert.True(t, d.Online)
	assert.True(t, d.LastSeen.Equal(t0.Add(30*time.Second)))
	assert.Equal(t, "lap-1", d.Hostname, "absent attributes stay unchanged")
	assert.Equal(t, "linux", d.Platform)

	all, err := f.presence.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestPresence_TouchUpdatesReportedAttributes(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	cpus := 8
	free := 1024.5

	_, err := f.presence.Touch(ctx, DeviceReport{User: "alice", Hostname: "lap-1"})
	require.NoError(t, err)
	d, err := f.presence.Touch(ctx, DeviceReport{
		User:     "alice",
		Hostname: "lap-2",
		CPUs:     &cpus,
		FreeMem:  &free,
		Location: &models.Location{City: "Oslo"},
		Meta:     map[string]any{"agentVersion": "1.2.0"},
	})
	require.NoError(t, err)

	assert.Equal(t, "lap-2", d.Hostname)
	require.NotNil(t, d.CPUs)
	assert.Equal(t, 8, *d.CPUs)
	require.NotNil(t, d.FreeMem)
	assert.InDelta(t, 1024.5, *d.FreeMem, 0.001)
	assert.Equal(t, "Oslo", d.City, "city is copied from location")
	require.NotNil(t, d.Location)
	assert.Equal(t, "Oslo", d.Location.City)
	assert.Equal(t, "1.2.0", d.Meta["agentVersion"])

	byCity, err := f.presence.List(ctx, "Oslo")
	require.NoError(t, err)
	assert.Len(t, byCity, 1)
}

func TestPresence_TouchRequiresUser(t *testing.T) {
	f := newFixture(t)

	_, err := f.presence.Touch(context.Background(), DeviceReport{Hostname: "h"})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestPresence_SetStatusUnknownUser(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.presence.SetStatus(ctx, "bob", false)
	assert.ErrorIs(t, err, ErrNotFound)

	all, err := f.presence.List(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, all, "no record is created")
}

func TestPresence_SetStatus(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.presence.Touch(ctx, DeviceReport{User: "bob"})
	require.NoError(t, err)

	f.clock.Set(t0.Add(5 * time.Second))
	d, err := f.presence.SetStatus(ctx, "bob", false)
	require.NoError(t, err)
	assert.False(t, d.Online)
	assert.True(t, d.LastSeen.Equal(t0.Add(5*time.Second)))

	d, err = f.presence.SetStatus(ctx, "bob", true)
	require.NoError(t, err)
	assert.True(t, d.Online)
}

func TestPresence_SetStatusRepeatedAtSameInstant(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.presence.Touch(ctx, DeviceReport{User: "bob"})
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		d, err := f.presence.SetStatus(ctx, "bob", false)
		require.NoError(t, err, "report %d", i)
		assert.False(t, d.Online)
	}
	ok, err := f.presence.TouchExisting(ctx, "bob")
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = f.presence.TouchExisting(ctx, "bob")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestPresence_SweepStaleness(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	threshold := 120 * time.Second
	_, err := f.presence.Touch(ctx, DeviceReport{User: "alice"})
	require.NoError(t, err)

	n, err := f.presence.Sweep(ctx, t0.Add(60*time.Second), threshold)
	require.NoError(t, err)
	assert.EqualValues(t, 0, n)

	n, err = f.presence.Sweep(ctx, t0.Add(121*time.Second), threshold)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	n, err = f.presence.Sweep(ctx, t0.Add(121*time.Second), threshold)
	require.NoError(t, err)
	assert.EqualValues(t, 0, n, "sweep is idempotent")

	all, err := f.presence.List(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.False(t, all[0].Online)
}

func TestPresence_SweepSkipsOfflineAndFresh(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	for _, u := range []string{"stale", "offline"} {
		_, err := f.presence.Touch(ctx, DeviceReport{User: u})
		require.NoError(t, err)
	}
	_, err := f.presence.SetStatus(ctx, "offline", false)
	require.NoError(t, err)
	f.clock.Set(t0.Add(10 * time.Minute))
	_, err = f.presence.Touch(ctx, DeviceReport{User: "fresh"})
	require.NoError(t, err)

	n, err := f.presence.Sweep(ctx, t0.Add(10*time.Minute), 2*time.Minute)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	devices, err := f.presence.List(ctx, "")
	require.NoError(t, err)
	byUser := map[string]models.Device{}
	for _, d := range devices {
		byUser[d.User] = d
	}
	assert.True(t, byUser["fresh"].Online)
	assert.False(t, byUser["stale"].Online)
	assert.False(t, byUser["offline"].Online)
	assert.True(t, byUser["offline"].LastSeen.Equal(t0), "offline devices are not rewritten")
}

func TestPresence_TouchExistingNeverCreates(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	ok, err := f.presence.TouchExisting(ctx, "ghost")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = f.presence.Touch(ctx, DeviceReport{User: "alice"})
	require.NoError(t, err)
	_, err = f.presence.SetStatus(ctx, "alice", false)
	require.NoError(t, err)

	f.clock.Set(t0.Add(time.Minute))
	ok, err = f.presence.TouchExisting(ctx, "alice")
	require.NoError(t, err)
	assert.True(t, ok)

	all, err := f.presence.List(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.True(t, all[0].Online)
	assert.True(t, all[0].LastSeen.Equal(t0.Add(time.Minute)))
}
