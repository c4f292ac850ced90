package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"monitor-hub/backend/app/db"
	"monitor-hub/backend/app/models"
	"monitor-hub/backend/app/repo"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var t0 = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

type clock struct {
	mu sync.Mutex
	t  time.Time
}

func newClock(t time.Time) *clock { return &clock{t: t} }

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *clock) Set(t time.Time) {
	c.mu.Lock()
	c.t = t
	c.mu.Unlock()
}

type recordingNotifier struct {
	mu     sync.Mutex
	alerts []models.AlertLog
	err    error
}

func (n *recordingNotifier) Notify(_ context.Context, a *models.AlertLog) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.alerts = append(n.alerts, *a)
	return n.err
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	gdb, err := db.OpenMemory()
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gdb))
	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return gdb
}

type fixture struct {
	db       *gorm.DB
	clock    *clock
	notifier *recordingNotifier
	presence *PresenceService
	policies *PolicyService
	activity *ActivityService
	alerts   *AlertService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	gdb := newTestDB(t)
	c := newClock(t0)
	n := &recordingNotifier{}
	devices := repo.NewDeviceRepository(gdb)
	sites := repo.NewBlockedSiteRepository(gdb)
	alerts := repo.NewAlertRepository(gdb)

	presence := NewPresenceService(devices, c.Now)
	return &fixture{
		db:       gdb,
		clock:    c,
		notifier: n,
		presence: presence,
		policies: NewPolicyService(sites, c.Now),
		activity: NewActivityService(ActivityDeps{
			Activities: repo.NewActivityRepository(gdb),
			Sites:      sites,
			Alerts:     alerts,
			Presence:   presence,
			Notifier:   n,
			Now:        c.Now,
		}),
		alerts: NewAlertService(alerts),
	}
}
