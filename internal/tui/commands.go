package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/fitdeck/internal/service"
)

// Command factories for async operations

// storeTimeout bounds every store round-trip made from the UI
const storeTimeout = 10 * time.Second

// LoadDashboardCmd recomputes the Today and Profile numbers
func LoadDashboardCmd(svc *service.ActivityService) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()

		dash, err := svc.Load(ctx)
		if err != nil {
			return ErrMsg{Err: err, Context: "loading dashboard"}
		}
		return DashboardLoadedMsg{Dashboard: dash}
	}
}

// LoadMetricsCmd loads the metric list
func LoadMetricsCmd(svc *service.MetricService) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()

		metrics, err := svc.List(ctx)
		if err != nil {
			return ErrMsg{Err: err, Context: "loading metrics"}
		}
		return MetricsLoadedMsg{Metrics: metrics}
	}
}

// LoadHistoryCmd loads all readings of one metric
func LoadHistoryCmd(svc *service.MetricService, metricID string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()

		entries, err := svc.History(ctx, metricID)
		if err != nil {
			return ErrMsg{Err: err, Context: "loading history"}
		}
		return HistoryLoadedMsg{MetricID: metricID, Entries: entries}
	}
}

// LoadSessionsCmd loads the workout log
func LoadSessionsCmd(svc *service.ActivityService) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()

		sessions, err := svc.Sessions(ctx)
		if err != nil {
			return ErrMsg{Err: err, Context: "loading activity"}
		}
		return SessionsLoadedMsg{Sessions: sessions}
	}
}

// AddEntryCmd records one reading
func AddEntryCmd(svc *service.MetricService, metricID, value, unit string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()

		entry, err := svc.Add(ctx, metricID, value, unit)
		if err != nil {
			return ErrMsg{Err: err, Context: "adding reading"}
		}
		return EntryAddedMsg{Entry: entry}
	}
}

// LogAllCmd records every filled input of the log-all form
func LogAllCmd(svc *service.MetricService, inputs []service.LogInput) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()

		entries, err := svc.LogAll(ctx, inputs)
		if err != nil {
			return ErrMsg{Err: err, Context: "logging metrics"}
		}
		return EntriesLoggedMsg{Entries: entries}
	}
}

// AddWorkoutCmd records a completed workout
func AddWorkoutCmd(svc *service.ActivityService, minutes int, kind string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()

		session, err := svc.AddWorkout(ctx, minutes, kind)
		if err != nil {
			return ErrMsg{Err: err, Context: "adding workout"}
		}
		return WorkoutAddedMsg{Session: session}
	}
}

// DismissAlertCmd clears the missed-workout banner
func DismissAlertCmd(svc *service.ActivityService) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()

		if err := svc.DismissMissed(ctx); err != nil {
			return ErrMsg{Err: err, Context: "dismissing alert"}
		}
		return AlertDismissedMsg{}
	}
}

// LogoutCmd clears the signed-in role
func LogoutCmd(svc *service.ProfileService) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()

		if err := svc.Logout(ctx); err != nil {
			return ErrMsg{Err: err, Context: "logging out"}
		}
		return LoggedOutMsg{}
	}
}

// ClearStatusCmd returns a command that clears status after a delay.
// Only the status that scheduled it is cleared.
func ClearStatusCmd(delay time.Duration, seq int) tea.Cmd {
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return ClearStatusMsg{seq: seq}
	})
}
