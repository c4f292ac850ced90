// Package policy decides whether a reported web visit violates a
// blocked-site policy.
package policy

import (
	"strings"
	"time"

	"monitor-hub/backend/app/models"
)

// Match returns the first site whose lowercased URL pattern is a substring of
// the lowercased title or url, or nil. Sites are taken in the given order and
// empty patterns never match.
func Match(title, url string, sites []models.BlockedSite) *models.BlockedSite {
	title = strings.ToLower(title)
	url = strings.ToLower(url)
	for i := range sites {
		pattern := strings.ToLower(sites[i].URL)
		if pattern == "" {
			continue
		}
		if strings.Contains(title, pattern) || strings.Contains(url, pattern) {
			return &sites[i]
		}
	}
	return nil
}

// Evaluate builds the alert for ev, or returns nil when no site matches.
// Overlapping patterns are attributed to whichever site comes first.
func Evaluate(ev models.WebActivity, sites []models.BlockedSite, at time.Time) *models.AlertLog {
	site := Match(ev.Title, ev.URL, sites)
	if site == nil {
		return nil
	}
	return &models.AlertLog{
		BlockedURL:  site.URL,
		AttemptedAt: at,
		DeviceName:  ev.Hostname,
		UserName:    ev.User,
		Device:      ev.Device,
		Duration:    ev.Duration,
		Title:       ev.Title,
		URL:         ev.URL,
		Hostname:    ev.Hostname,
		Severity:    site.Severity,
		Reason:      site.Reason,
	}
}
