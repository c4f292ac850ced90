package models

import "time"

// AlertLog is a snapshot of a web event and the policy it violated.
type AlertLog struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	BlockedURL  string    `gorm:"size:191;not null;index" json:"blockedUrl"`
	AttemptedAt time.Time `gorm:"index" json:"attemptedAt"`
	DeviceName  string    `gorm:"size:255" json:"deviceName"`
	UserName    string    `gorm:"size:191;index" json:"userName"`
	Device      string    `gorm:"size:255" json:"device"`
	Duration    string    `gorm:"size:64" json:"duration"`
	Title       string    `gorm:"type:text" json:"title"`
	URL         string    `gorm:"type:text" json:"url"`
	Hostname    string    `gorm:"size:255" json:"hostname"`
	Severity    Severity  `gorm:"size:16" json:"severity"`
	Reason      string    `gorm:"size:1024" json:"reason"`
}
