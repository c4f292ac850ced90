package models

import "time"

type Severity string

const (
	SeverityLow    Severity = "LOW"
	SeverityMedium Severity = "MEDIUM"
	SeverityHigh   Severity = "HIGH"
)

func (s Severity) Valid() bool {
	switch s {
	case SeverityLow, SeverityMedium, SeverityHigh:
		return true
	}
	return false
}

// BlockedSite is a website-blocking policy. URL is matched as a
// case-insensitive substring of visited titles and urls.
type BlockedSite struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	URL       string    `gorm:"uniqueIndex;size:191;not null" json:"url"`
	Severity  Severity  `gorm:"size:16;not null;default:MEDIUM" json:"severity"`
	Reason    string    `gorm:"size:1024" json:"reason"`
	CreatedAt time.Time `gorm:"index" json:"createdAt"`
}
