package dto

import (
	"bytes"
	"encoding/json"
	"time"

	"monitor-hub/backend/app/models"
)

// Text accepts a JSON string or number. Agents report durations either way.
type Text string

func (t *Text) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		*t = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*t = Text(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*t = Text(n.String())
	return nil
}

type AppActivityRequest struct {
	TS       *time.Time `json:"ts"`
	User     string     `json:"user"`
	Hostname string     `json:"hostname"`
	App      string     `json:"app"`
	PID      *int       `json:"pid"`
	Title    string     `json:"title" validate:"required"`
	URL      string     `json:"url"`
	Duration Text       `json:"duration"`
	Type     string     `json:"type"`
}

func (r AppActivityRequest) Model() *models.AppActivity {
	return &models.AppActivity{
		TS:       ts(r.TS),
		User:     r.User,
		Hostname: r.Hostname,
		App:      r.App,
		PID:      r.PID,
		Title:    r.Title,
		URL:      r.URL,
		Duration: string(r.Duration),
		Type:     r.Type,
	}
}

type WebActivityRequest struct {
	TS       *time.Time `json:"ts"`
	User     string     `json:"user"`
	Hostname string     `json:"hostname"`
	Device   string     `json:"device"`
	URL      string     `json:"url"`
	Title    string     `json:"title"`
	Duration Text       `json:"duration"`
	Category string     `json:"category"`
	Type     string     `json:"type"`
}

func (r WebActivityRequest) Model() *models.WebActivity {
	return &models.WebActivity{
		TS:       ts(r.TS),
		User:     r.User,
		Hostname: r.Hostname,
		Device:   r.Device,
		URL:      r.URL,
		Title:    r.Title,
		Duration: string(r.Duration),
		Category: r.Category,
		Type:     r.Type,
	}
}

type FsActivityRequest struct {
	TS       *time.Time `json:"ts"`
	User     string     `json:"user"`
	Hostname string     `json:"hostname"`
	Event    string     `json:"event"`
	Path     string     `json:"path"`
	Type     string     `json:"type"`
}

func (r FsActivityRequest) Model() *models.FsActivity {
	return &models.FsActivity{
		TS:       ts(r.TS),
		User:     r.User,
		Hostname: r.Hostname,
		Event:    r.Event,
		Path:     r.Path,
		Type:     r.Type,
	}
}

type CreatedResponse struct {
	Success bool `json:"success"`
	ID      uint `json:"id"`
}

func ts(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}
