// Package reporter sends agent telemetry to the monitor backend.
package reporter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

type Client struct {
	baseURL string
	user    string
	http    *http.Client
}

func New(baseURL, user string) *Client {
	return &Client{
		baseURL: baseURL,
		user:    user,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

type Location struct {
	Lat  *float64 `json:"lat,omitempty"`
	Lng  *float64 `json:"lng,omitempty"`
	City string   `json:"city,omitempty"`
}

// Heartbeat is the POST /device body. Extra is merged in as top-level keys.
type Heartbeat struct {
	Hostname string
	Platform string
	CPUs     int
	FreeMem  *float64
	TotalMem *float64
	Location *Location
	Extra    map[string]any
}

type FsEvent struct {
	TS       time.Time `json:"ts"`
	User     string    `json:"user"`
	Hostname string    `json:"hostname"`
	Event    string    `json:"event"`
	Path     string    `json:"path"`
}

// StatusError is returned for non-2xx answers.
type StatusError struct {
	Path   string
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("POST %s: status %d: %s", e.Path, e.Status, e.Body)
}

func (c *Client) SendHeartbeat(ctx context.Context, hb Heartbeat) error {
	body := map[string]any{}
	for k, v := range hb.Extra {
		body[k] = v
	}
	body["user"] = c.user
	body["hostname"] = hb.Hostname
	body["platform"] = hb.Platform
	body["cpus"] = hb.CPUs
	if hb.FreeMem != nil {
		body["freemem"] = *hb.FreeMem
	}
	if hb.TotalMem != nil {
		body["totalmem"] = *hb.TotalMem
	}
	if hb.Location != nil {
		body["location"] = hb.Location
	}
	return c.post(ctx, "/device", body)
}

func (c *Client) SendStatus(ctx context.Context, online bool) error {
	status := "offline"
	if online {
		status = "online"
	}
	return c.post(ctx, "/device/status", map[string]string{"user": c.user, "status": status})
}

func (c *Client) SendFsEvent(ctx context.Context, ev FsEvent) error {
	if ev.User == "" {
		ev.User = c.user
	}
	return c.post(ctx, "/activity/fs", ev)
}

func (c *Client) post(ctx context.Context, path string, payload any) error {
	buf, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(buf))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &StatusError{Path: path, Status: resp.StatusCode, Body: string(bytes.TrimSpace(msg))}
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}
