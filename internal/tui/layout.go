package tui

import "strings"

// bodyHeight is the space left between the tab bar and the footer
func (m Model) bodyHeight() int {
	return max(m.Height-ChromeHeight, 1)
}

// contentWidth is the width dashboards and detail screens render at
func (m Model) contentWidth() int {
	return max(min(m.Width, MaxContentWidth), MinContentWidth)
}

// updateLayout resizes every component after a window change
func (m *Model) updateLayout() {
	h := m.bodyHeight()
	m.Today.SetSize(m.Width, h)
	m.Profile.SetSize(m.Width, h)
	m.MetricList.SetSize(min(m.Width, MaxListWidth), h)
	m.LogForm.SetSize(m.Width, h)
	// Card border and padding take four columns
	m.StepsBar.Width = max(m.contentWidth()-4-5, 10)
	m.syncContent()
}

// syncContent re-renders the dashboards into their containers
func (m *Model) syncContent() {
	m.Today.SetContent(m.renderToday())
	m.Profile.SetContent(m.renderProfile())
}

// fitHeight cuts or pads s to exactly h lines
func fitHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) > h {
		lines = lines[:h]
	}
	for len(lines) < h {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}
