package models

import "time"

const (
	TypeApplication = "application"
	TypeWebsite     = "website"
	TypeFS          = "fs"

	DefaultWebCategory = "Other"
)

type AppActivity struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	TS       time.Time `gorm:"index" json:"ts"`
	User     string    `gorm:"column:user_name;size:191;index" json:"user"`
	Hostname string    `gorm:"size:255;index" json:"hostname"`
	App      string    `gorm:"size:255;index" json:"app"`
	PID      *int      `json:"pid,omitempty"`
	Title    string    `gorm:"type:text" json:"title"`
	URL      string    `gorm:"type:text" json:"url,omitempty"`
	Duration string    `gorm:"size:64" json:"duration,omitempty"`
	Type     string    `gorm:"size:32;default:application" json:"type"`
}

type WebActivity struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	TS       time.Time `gorm:"index" json:"ts"`
	User     string    `gorm:"column:user_name;size:191;index" json:"user"`
	Hostname string    `gorm:"size:255;index" json:"hostname"`
	Device   string    `gorm:"size:255" json:"device,omitempty"`
	URL      string    `gorm:"type:text" json:"url"`
	Title    string    `gorm:"type:text" json:"title"`
	Duration string    `gorm:"size:64" json:"duration,omitempty"`
	Category string    `gorm:"size:64;default:Other" json:"category"`
	Type     string    `gorm:"size:32;default:website" json:"type"`
}

type FsActivity struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	TS       time.Time `gorm:"index" json:"ts"`
	User     string    `gorm:"column:user_name;size:191;index" json:"user"`
	Hostname string    `gorm:"size:255;index" json:"hostname"`
	Event    string    `gorm:"size:32" json:"event"`
	Path     string    `gorm:"type:text" json:"path"`
	Type     string    `gorm:"size:32;default:fs" json:"type"`
}
