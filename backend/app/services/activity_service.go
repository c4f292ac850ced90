package services

import (
	"context"
	"strings"
	"time"

	"monitor-hub/backend/app/metrics"
	"monitor-hub/backend/app/models"
	"monitor-hub/backend/app/policy"
	"monitor-hub/backend/app/repo"
	"monitor-hub/backend/global"
)

// RecentWebLimit is how many events the recent web feed returns.
const RecentWebLimit = 20

// ActivityService ingests and queries agent activity. Ingesting a web event
// also runs it through the blocked-site matcher.
type ActivityService struct {
	activities *repo.ActivityRepository
	sites      *repo.BlockedSiteRepository
	alerts     *repo.AlertRepository
	presence   *PresenceService
	notifier   AlertNotifier
	now        func() time.Time
}

type ActivityDeps struct {
	Activities *repo.ActivityRepository
	Sites      *repo.BlockedSiteRepository
	Alerts     *repo.AlertRepository
	Presence   *PresenceService
	Notifier   AlertNotifier
	Now        func() time.Time
}

func NewActivityService(d ActivityDeps) *ActivityService {
	if d.Notifier == nil {
		d.Notifier = NopNotifier{}
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	return &ActivityService{
		activities: d.Activities,
		sites:      d.Sites,
		alerts:     d.Alerts,
		presence:   d.Presence,
		notifier:   d.Notifier,
		now:        d.Now,
	}
}

func (s *ActivityService) RecordApp(ctx context.Context, a *models.AppActivity) error {
	if strings.TrimSpace(a.Title) == "" {
		return invalid("title is required")
	}
	a.TS = s.stamp(a.TS)
	if a.Type == "" {
		a.Type = models.TypeApplication
	}
	if err := s.activities.CreateApp(ctx, a); err != nil {
		return storageErr("store app activity", err)
	}
	metrics.ActivityIngested.WithLabelValues("app").Inc()
	s.touch(ctx, a.User)
	return nil
}

// RecordWeb stores the event and returns the alert it raised, if any.
// Failures after the event is stored are logged and never returned.
func (s *ActivityService) RecordWeb(ctx context.Context, w *models.WebActivity) (*models.AlertLog, error) {
	w.TS = s.stamp(w.TS)
	if w.Category == "" {
		w.Category = models.DefaultWebCategory
	}
	if w.Type == "" {
		w.Type = models.TypeWebsite
	}
	if err := s.activities.CreateWeb(ctx, w); err != nil {
		return nil, storageErr("store web activity", err)
	}
	metrics.ActivityIngested.WithLabelValues("web").Inc()
	s.touch(ctx, w.User)
	return s.checkPolicy(ctx, w), nil
}

func (s *ActivityService) RecordFs(ctx context.Context, f *models.FsActivity) error {
	f.TS = s.stamp(f.TS)
	if f.Type == "" {
		f.Type = models.TypeFS
	}
	if err := s.activities.CreateFs(ctx, f); err != nil {
		return storageErr("store fs activity", err)
	}
	metrics.ActivityIngested.WithLabelValues("fs").Inc()
	s.touch(ctx, f.User)
	return nil
}

func (s *ActivityService) ListApp(ctx context.Context, f repo.ActivityFilter) ([]models.AppActivity, error) {
	out, err := s.activities.ListApp(ctx, f)
	if err != nil {
		return nil, storageErr("list app activity", err)
	}
	return out, nil
}

func (s *ActivityService) ListWeb(ctx context.Context, f repo.ActivityFilter) ([]models.WebActivity, error) {
	out, err := s.activities.ListWeb(ctx, f)
	if err != nil {
		return nil, storageErr("list web activity", err)
	}
	return out, nil
}

func (s *ActivityService) RecentWeb(ctx context.Context) ([]models.WebActivity, error) {
	return s.ListWeb(ctx, repo.ActivityFilter{Limit: RecentWebLimit})
}

func (s *ActivityService) ListFs(ctx context.Context, f repo.ActivityFilter) ([]models.FsActivity, error) {
	out, err := s.activities.ListFs(ctx, f)
	if err != nil {
		return nil, storageErr("list fs activity", err)
	}
	return out, nil
}

func (s *ActivityService) checkPolicy(ctx context.Context, w *models.WebActivity) *models.AlertLog {
	log := global.Logger.With().Uint("activity_id", w.ID).Str("user", w.User).Logger()

	sites, err := s.sites.List(ctx)
	if err != nil {
		metrics.PipelineFailures.WithLabelValues("policy_lookup").Inc()
		log.Error().Err(err).Msg("load blocked sites; skipping policy check")
		return nil
	}
	alert := policy.Evaluate(*w, sites, s.now().UTC())
	if alert == nil {
		return nil
	}
	metrics.AlertsRaised.WithLabelValues(string(alert.Severity)).Inc()
	log.Warn().
		Str("blocked_url", alert.BlockedURL).
		Str("severity", string(alert.Severity)).
		Str("hostname", alert.Hostname).
		Msg("blocked site visited")

	if err := s.alerts.Create(ctx, alert); err != nil {
		metrics.PipelineFailures.WithLabelValues("alert_store").Inc()
		log.Error().Err(err).Msg("store alert")
		return alert
	}
	if err := s.notifier.Notify(ctx, alert); err != nil {
		metrics.PipelineFailures.WithLabelValues("alert_publish").Inc()
		log.Error().Err(err).Msg("publish alert")
	}
	return alert
}

func (s *ActivityService) touch(ctx context.Context, user string) {
	if s.presence == nil || user == "" {
		return
	}
	if _, err := s.presence.TouchExisting(ctx, user); err != nil {
		metrics.PipelineFailures.WithLabelValues("touch").Inc()
		global.Logger.Error().Err(err).Str("user", user).Msg("refresh presence from activity")
	}
}

func (s *ActivityService) stamp(ts time.Time) time.Time {
	if ts.IsZero() {
		return s.now().UTC()
	}
	return ts.UTC()
}
