package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"monitor-hub/backend/app/models"
	"monitor-hub/backend/app/repo"

	"gorm.io/gorm"
)

// PolicyService manages blocked-site policies.
type PolicyService struct {
	sites *repo.BlockedSiteRepository
	now   func() time.Time
}

func NewPolicyService(sites *repo.BlockedSiteRepository, now func() time.Time) *PolicyService {
	if now == nil {
		now = time.Now
	}
	return &PolicyService{sites: sites, now: now}
}

// Create stores a new policy. An empty severity defaults to MEDIUM.
func (s *PolicyService) Create(ctx context.Context, url string, severity models.Severity, reason string) (*models.BlockedSite, error) {
	if strings.TrimSpace(url) == "" {
		return nil, invalid("url is required")
	}
	if severity == "" {
		severity = models.SeverityMedium
	}
	if !severity.Valid() {
		return nil, invalid("severity must be one of LOW, MEDIUM, HIGH")
	}

	existing, err := s.sites.FindByURL(ctx, url)
	if err != nil {
		return nil, storageErr("find blocked site", err)
	}
	if existing != nil {
		return nil, ErrConflict
	}

	site := &models.BlockedSite{
		URL:       url,
		Severity:  severity,
		Reason:    reason,
		CreatedAt: s.now().UTC(),
	}
	if err := s.sites.Create(ctx, site); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrConflict
		}
		return nil, storageErr("create blocked site", err)
	}
	return site, nil
}

// List returns policies newest first. The matcher evaluates them in this
// order.
func (s *PolicyService) List(ctx context.Context) ([]models.BlockedSite, error) {
	sites, err := s.sites.List(ctx)
	if err != nil {
		return nil, storageErr("list blocked sites", err)
	}
	return sites, nil
}

// Update changes the severity and/or reason of the policy for url. Nil
// arguments are left as they are.
func (s *PolicyService) Update(ctx context.Context, url string, severity *models.Severity, reason *string) (*models.BlockedSite, error) {
	updates := map[string]any{}
	if severity != nil && *severity != "" {
		if !severity.Valid() {
			return nil, invalid("severity must be one of LOW, MEDIUM, HIGH")
		}
		updates["severity"] = *severity
	}
	if reason != nil {
		updates["reason"] = *reason
	}

	if len(updates) > 0 {
		if _, err := s.sites.Update(ctx, url, updates); err != nil {
			return nil, storageErr("update blocked site", err)
		}
	}
	site, err := s.sites.FindByURL(ctx, url)
	if err != nil {
		return nil, storageErr("find blocked site", err)
	}
	if site == nil {
		return nil, ErrNotFound
	}
	return site, nil
}

func (s *PolicyService) Delete(ctx context.Context, url string) error {
	n, err := s.sites.Delete(ctx, url)
	if err != nil {
		return storageErr("delete blocked site", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
