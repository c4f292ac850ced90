package ui

import (
	"context"
	"strings"
	"time"

	"monitor-hub/backend/app/models"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type tab int

const (
	tabDevices tab = iota
	tabAlerts
)

const defaultTableHeight = 15

type devicesMsg struct{ devices []models.Device }

type alertsMsg struct{ alerts []models.AlertLog }

type fetchErrMsg struct{ err error }

type tickMsg time.Time

// RootModel shows the device roster and the alert log, polling both.
type RootModel struct {
	client   *Client
	interval time.Duration

	Tab     tab
	Devices table.Model
	Alerts  table.Model

	devices   []models.Device
	Err       error
	UpdatedAt time.Time
	Quitting  bool
}

func NewRootModel(client *Client, interval time.Duration) RootModel {
	return RootModel{
		client:   client,
		interval: interval,
		Devices:  newDeviceTable(defaultTableHeight),
		Alerts:   newAlertTable(defaultTableHeight),
	}
}

func (m RootModel) Init() tea.Cmd {
	return tea.Batch(m.refresh(), m.tick())
}

func (m RootModel) refresh() tea.Cmd {
	return tea.Batch(m.fetchDevices, m.fetchAlerts)
}

func (m RootModel) tick() tea.Cmd {
	if m.interval <= 0 {
		return nil
	}
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m RootModel) fetchDevices() tea.Msg {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	devs, err := m.client.Devices(ctx)
	if err != nil {
		return fetchErrMsg{err}
	}
	return devicesMsg{devs}
}

func (m RootModel) fetchAlerts() tea.Msg {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	alerts, err := m.client.Alerts(ctx)
	if err != nil {
		return fetchErrMsg{err}
	}
	return alertsMsg{alerts}
}

func (m RootModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		h := msg.Height - 10
		if h < 3 {
			h = 3
		}
		m.Devices.SetHeight(h)
		m.Alerts.SetHeight(h)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.Quitting = true
			return m, tea.Quit
		case "r":
			m.Err = nil
			return m, m.refresh()
		case "tab":
			m.switchTab()
			return m, nil
		}

	case devicesMsg:
		m.devices = msg.devices
		m.Devices.SetRows(deviceRows(msg.devices))
		m.UpdatedAt = time.Now()
		return m, nil

	case alertsMsg:
		m.Alerts.SetRows(alertRows(msg.alerts))
		m.UpdatedAt = time.Now()
		return m, nil

	case fetchErrMsg:
		m.Err = msg.err
		return m, nil

	case tickMsg:
		return m, tea.Batch(m.refresh(), m.tick())
	}

	var cmd tea.Cmd
	if m.Tab == tabDevices {
		m.Devices, cmd = m.Devices.Update(msg)
	} else {
		m.Alerts, cmd = m.Alerts.Update(msg)
	}
	return m, cmd
}

func (m *RootModel) switchTab() {
	if m.Tab == tabDevices {
		m.Tab = tabAlerts
		m.Devices.Blur()
		m.Alerts.Focus()
		return
	}
	m.Tab = tabDevices
	m.Alerts.Blur()
	m.Devices.Focus()
}

func (m RootModel) View() string {
	if m.Quitting {
		return "Bye!\n"
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render("Monitor Hub Console") + "  " + blurredStyle.Render(m.client.BaseURL) + "\n\n")
	b.WriteString(m.tabs() + "\n\n")
	if m.Tab == tabDevices {
		b.WriteString(m.Devices.View())
	} else {
		b.WriteString(m.Alerts.View())
	}
	b.WriteString("\n\n")

	status := countOnline(m.devices)
	if !m.UpdatedAt.IsZero() {
		status += " · updated " + m.UpdatedAt.Format("15:04:05")
	}
	b.WriteString(blurredStyle.Render(status + " · tab switch view, r refresh, q quit"))
	if m.Err != nil {
		b.WriteString("\n" + errorMessageStyle(m.Err.Error()))
	}
	return docStyle.Render(b.String())
}

func (m RootModel) tabs() string {
	names := []string{"Devices", "Alerts"}
	out := make([]string, len(names))
	for i, n := range names {
		if tab(i) == m.Tab {
			out[i] = activeTabStyle.Render(n)
		} else {
			out[i] = inactiveTabStyle.Render(n)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, out...)
}
