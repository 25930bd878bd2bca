package tui

import (
	"github.com/mmcdole/fitdeck/internal/domain"
	"github.com/mmcdole/fitdeck/internal/service"
)

// Message types for the TUI

// ErrMsg represents an error
type ErrMsg struct {
	Err     error
	Context string
}

// Error implements the error interface
func (e ErrMsg) Error() string {
	if e.Context != "" {
		return e.Context + ": " + e.Err.Error()
	}
	return e.Err.Error()
}

// DashboardLoadedMsg carries freshly computed dashboard numbers
type DashboardLoadedMsg struct {
	Dashboard service.Dashboard
}

// MetricsLoadedMsg carries the catalog joined with latest readings
type MetricsLoadedMsg struct {
	Metrics []domain.Metric
}

// HistoryLoadedMsg carries every reading for one metric, newest first
type HistoryLoadedMsg struct {
	MetricID string
	Entries  []domain.MetricEntry
}

// SessionsLoadedMsg carries the workout log, newest first
type SessionsLoadedMsg struct {
	Sessions []domain.WorkoutSession
}

// EntryAddedMsg signals a single reading was stored
type EntryAddedMsg struct {
	Entry domain.MetricEntry
}

// EntriesLoggedMsg signals the log-all form was stored
type EntriesLoggedMsg struct {
	Entries []domain.MetricEntry
}

// WorkoutAddedMsg signals a workout session was stored
type WorkoutAddedMsg struct {
	Session domain.WorkoutSession
}

// AlertDismissedMsg signals the missed-workout banner was cleared
type AlertDismissedMsg struct{}

// LoggedOutMsg signals the profile role was cleared
type LoggedOutMsg struct{}

// ClearStatusMsg clears the status bar message
type ClearStatusMsg struct {
	seq int
}

// StatusMsg sets a temporary status message
type StatusMsg struct {
	Message string
	IsError bool
}
