package models

import "time"

type Location struct {
	Lat  *float64 `json:"lat,omitempty"`
	Lng  *float64 `json:"lng,omitempty"`
	City string   `json:"city,omitempty"`
}

// Device is the presence record of one reporting user identity.
// The column is user_name because "user" is reserved on postgres.
type Device struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	User      string         `gorm:"column:user_name;uniqueIndex;size:191;not null" json:"user"`
	Hostname  string         `gorm:"size:255" json:"hostname,omitempty"`
	Platform  string         `gorm:"size:128" json:"platform,omitempty"`
	FreeMem   *float64       `gorm:"column:free_mem" json:"freemem,omitempty"`
	TotalMem  *float64       `gorm:"column:total_mem" json:"totalmem,omitempty"`
	CPUs      *int           `gorm:"column:cpus" json:"cpus,omitempty"`
	Online    bool           `gorm:"index;not null" json:"online"`
	LastSeen  time.Time      `gorm:"index" json:"lastSeen"`
	Location  *Location      `gorm:"serializer:json" json:"location,omitempty"`
	City      string         `gorm:"size:191;index" json:"city,omitempty"`
	Meta      map[string]any `gorm:"serializer:json" json:"meta,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}
