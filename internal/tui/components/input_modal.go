package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/fitdeck/internal/domain"
	"github.com/mmcdole/fitdeck/internal/tui/styles"
)

// InputModal collects one reading for a metric
type InputModal struct {
	visible bool
	metric  domain.MetricDef
	stamp   string
	input   textinput.Model
	theme   styles.Theme
	keys    FormKeyMap
}

// NewInputModal creates a new input modal
func NewInputModal(theme styles.Theme) InputModal {
	ti := textinput.New()
	ti.CharLimit = 12
	ti.Width = 16
	ti.Prompt = ""

	m := InputModal{
		input: ti,
		keys:  FormKeys,
	}
	m.SetTheme(theme)
	return m
}

// SetTheme restyles the modal
func (m *InputModal) SetTheme(theme styles.Theme) {
	m.theme = theme
	m.input.TextStyle = lipgloss.NewStyle().Foreground(theme.Text)
	m.input.PlaceholderStyle = theme.Dim
}

// Show opens the modal for a metric. stamp is the time label shown under
// the input ("Today, 10:31 AM").
func (m *InputModal) Show(metric domain.MetricDef, stamp string) tea.Cmd {
	m.visible = true
	m.metric = metric
	m.stamp = stamp
	m.input.Placeholder = metric.Placeholder
	m.input.SetValue("")
	return m.input.Focus()
}

// Hide dismisses the modal
func (m *InputModal) Hide() {
	m.visible = false
	m.input.Blur()
}

// IsVisible returns whether the modal is shown
func (m InputModal) IsVisible() bool {
	return m.visible
}

// Metric returns the metric being entered
func (m InputModal) Metric() domain.MetricDef {
	return m.metric
}

// Value returns the current input value
func (m InputModal) Value() string {
	return m.input.Value()
}

// CanSubmit reports whether the input holds anything besides spaces
func (m InputModal) CanSubmit() bool {
	return strings.TrimSpace(m.input.Value()) != ""
}

// Update handles input events, returns (modal, cmd, submitted)
func (m InputModal) Update(msg tea.Msg) (InputModal, tea.Cmd, bool) {
	if !m.visible {
		return m, nil, false
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, m.keys.Submit):
			return m, nil, m.CanSubmit()
		case key.Matches(keyMsg, m.keys.Cancel):
			m.Hide()
			return m, nil, false
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd, false
}

// View renders the input modal
func (m InputModal) View() string {
	if !m.visible {
		return ""
	}

	const modalWidth = 36

	title := m.theme.ModalTitle.Width(modalWidth).
		Render(m.theme.Swatch(m.metric.Color, string(m.metric.Icon)) + " Add " + m.metric.Name)

	field := m.theme.Card.Width(modalWidth - 2).
		Render(m.input.View() + " " + m.theme.Subtitle.Render(m.metric.Unit))

	hint := m.theme.Dim.Render("enter add · esc cancel")
	if !m.CanSubmit() {
		hint = m.theme.Dim.Render("type a value · esc cancel")
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		title,
		field,
		m.theme.Subtitle.Render(m.stamp),
		"",
		hint,
	)
	return m.theme.Modal.Render(content)
}
