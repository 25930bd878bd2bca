package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/fitdeck/internal/domain"
	"github.com/mmcdole/fitdeck/internal/service"
)

// handleKeyMsg handles keyboard input
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Handle state-specific keys
	switch m.State {
	case StateHelp:
		if key.Matches(msg, Keys.Back, Keys.Help, Keys.Quit) {
			m.State = StateBrowsing
		}
		return m, nil

	case StateConfirmLogout:
		switch {
		case key.Matches(msg, Keys.Confirm):
			m.State = StateBrowsing
			return m, LogoutCmd(m.ProfileSvc)
		case key.Matches(msg, Keys.Deny):
			m.State = StateBrowsing
		}
		return m, nil
	}

	// Route to whatever owns the keyboard
	if handled, newModel, cmd := m.routeToInput(msg); handled {
		return newModel, cmd
	}

	// Global keys
	switch {
	case key.Matches(msg, Keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, Keys.Help):
		m.State = StateHelp
		return m, nil

	case key.Matches(msg, Keys.Theme):
		m.setTheme(m.Theme.Toggle())
		return m, nil

	case key.Matches(msg, Keys.Today):
		m.Screen = ScreenToday
		return m, nil

	case key.Matches(msg, Keys.Profile):
		m.Screen = ScreenProfile
		return m, nil

	case key.Matches(msg, Keys.Metrics):
		m.Screen = ScreenMetrics
		return m, nil

	case key.Matches(msg, Keys.NextTab):
		m.Screen = (m.Screen.Tab() + 1) % 3
		return m, nil

	case key.Matches(msg, Keys.PrevTab):
		m.Screen = (m.Screen.Tab() + 2) % 3
		return m, nil
	}

	switch m.Screen {
	case ScreenToday:
		return m.handleTodayKey(msg)
	case ScreenProfile:
		return m.handleProfileKey(msg)
	case ScreenMetrics:
		return m.handleMetricsKey(msg)
	case ScreenDetail:
		switch {
		case key.Matches(msg, Keys.Back):
			m.Screen = ScreenMetrics
		case key.Matches(msg, Keys.Add):
			return m, m.showAddModal(m.Detail.MetricDef)
		}
	case ScreenHistory:
		if key.Matches(msg, Keys.Back) {
			m.Screen = ScreenProfile
		}
	}
	return m, nil
}

// routeToInput gives modals, the log-all form and a focused filter first
// pick of the key
func (m Model) routeToInput(msg tea.KeyMsg) (bool, Model, tea.Cmd) {
	if m.InputModal.IsVisible() {
		var cmd tea.Cmd
		var submitted bool
		m.InputModal, cmd, submitted = m.InputModal.Update(msg)
		if submitted {
			def := m.InputModal.Metric()
			value := m.InputModal.Value()
			m.InputModal.Hide()
			return true, m, AddEntryCmd(m.MetricSvc, def.ID, value, def.Unit)
		}
		return true, m, cmd
	}

	if m.Screen == ScreenLogAll {
		if msg.Type == tea.KeyEsc {
			m.Screen = ScreenMetrics
			return true, m, nil
		}
		cmd, save := m.LogForm.Update(msg)
		if save {
			filled := m.LogForm.Filled()
			inputs := make([]service.LogInput, len(filled))
			for i, f := range filled {
				inputs[i] = service.LogInput{MetricID: f.MetricID, Value: f.Value}
			}
			return true, m, LogAllCmd(m.MetricSvc, inputs)
		}
		return true, m, cmd
	}

	if m.Screen == ScreenMetrics && m.MetricList.IsFilterTyping() {
		_, cmd := m.MetricList.Update(msg)
		return true, m, cmd
	}

	return false, m, nil
}

func (m Model) handleTodayKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, Keys.Dismiss):
		if m.Dashboard.Profile.MissedAlert {
			// Hide right away, the store catches up behind
			m.Dashboard.Profile.MissedAlert = false
			m.syncContent()
			return m, DismissAlertCmd(m.ActivitySvc)
		}
		return m, nil

	case key.Matches(msg, Keys.QuickWorkout):
		return m, AddWorkoutCmd(m.ActivitySvc, quickWorkoutMinutes, quickWorkoutType)
	}
	return m, m.routePull(m.Today, msg)
}

func (m Model) handleProfileKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, Keys.History):
		m.Screen = ScreenHistory
		return m, LoadSessionsCmd(m.ActivitySvc)

	case key.Matches(msg, Keys.Exercises, Keys.Photo):
		return m, m.setStatus("Coming soon", false)

	case key.Matches(msg, Keys.Steps):
		s := m.Dashboard.Summary
		return m, m.setStatus(fmt.Sprintf("%s of %s steps today",
			domain.Thousands(s.Steps), domain.Thousands(s.StepGoal)), false)

	case key.Matches(msg, Keys.DemoWorkout):
		return m, AddWorkoutCmd(m.ActivitySvc, demoWorkoutMinutes, demoWorkoutType)

	case key.Matches(msg, Keys.Logout):
		m.State = StateConfirmLogout
		return m, nil
	}
	return m, m.routePull(m.Profile, msg)
}

func (m Model) handleMetricsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, Keys.Enter):
		if selected, ok := m.MetricList.Selected(); ok {
			m.Detail = selected
			m.History = nil
			m.Screen = ScreenDetail
			return m, LoadHistoryCmd(m.MetricSvc, selected.ID)
		}
		return m, nil

	case key.Matches(msg, Keys.Add):
		if selected, ok := m.MetricList.Selected(); ok {
			return m, m.showAddModal(selected.MetricDef)
		}
		return m, nil

	case key.Matches(msg, Keys.LogAll):
		m.Screen = ScreenLogAll
		return m, m.LogForm.Reset()

	case msg.Type == tea.KeyEsc && !m.MetricList.IsFiltering():
		m.Screen = ScreenToday
		return m, nil
	}

	_, cmd := m.MetricList.Update(msg)
	return m, cmd
}

func (m *Model) showAddModal(def domain.MetricDef) tea.Cmd {
	return m.InputModal.Show(def, domain.EntryStamp(m.now(), m.now()))
}
