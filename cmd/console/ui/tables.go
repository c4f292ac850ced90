package ui

import (
	"fmt"
	"time"

	"monitor-hub/backend/app/models"

	"github.com/charmbracelet/bubbles/table"
)

const timeLayout = "2006-01-02 15:04:05"

func newDeviceTable(height int) table.Model {
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "User", Width: 28},
			{Title: "Hostname", Width: 20},
			{Title: "Platform", Width: 10},
			{Title: "City", Width: 14},
			{Title: "Status", Width: 8},
			{Title: "Last seen", Width: 19},
		}),
		table.WithFocused(true),
		table.WithHeight(height),
	)
	t.SetStyles(tableStyles())
	return t
}

func newAlertTable(height int) table.Model {
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "When", Width: 19},
			{Title: "Severity", Width: 8},
			{Title: "User", Width: 22},
			{Title: "Blocked", Width: 20},
			{Title: "URL", Width: 36},
		}),
		table.WithHeight(height),
	)
	t.SetStyles(tableStyles())
	return t
}

func deviceRows(devices []models.Device) []table.Row {
	rows := make([]table.Row, 0, len(devices))
	for _, d := range devices {
		status := "offline"
		if d.Online {
			status = "online"
		}
		rows = append(rows, table.Row{d.User, d.Hostname, d.Platform, d.City, status, formatTime(d.LastSeen)})
	}
	return rows
}

func alertRows(alerts []models.AlertLog) []table.Row {
	rows := make([]table.Row, 0, len(alerts))
	for _, a := range alerts {
		rows = append(rows, table.Row{formatTime(a.AttemptedAt), string(a.Severity), a.UserName, a.BlockedURL, a.URL})
	}
	return rows
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format(timeLayout)
}

func countOnline(devices []models.Device) string {
	n := 0
	for _, d := range devices {
		if d.Online {
			n++
		}
	}
	return fmt.Sprintf("%d/%d online", n, len(devices))
}
