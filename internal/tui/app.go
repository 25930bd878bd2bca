package tui

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/fitdeck/internal/domain"
	"github.com/mmcdole/fitdeck/internal/refresh"
	"github.com/mmcdole/fitdeck/internal/service"
	"github.com/mmcdole/fitdeck/internal/tui/components"
	"github.com/mmcdole/fitdeck/internal/tui/styles"
)

// ApplicationState represents the current state of the application
type ApplicationState int

const (
	StateBrowsing ApplicationState = iota
	StateHelp
	StateConfirmLogout
)

// Screen identifies what the body of the window shows
type Screen int

const (
	ScreenToday Screen = iota
	ScreenProfile
	ScreenMetrics
	ScreenDetail
	ScreenLogAll
	ScreenHistory
)

// Tab returns the top-level screen a screen belongs to
func (s Screen) Tab() Screen {
	switch s {
	case ScreenDetail, ScreenLogAll:
		return ScreenMetrics
	case ScreenHistory:
		return ScreenProfile
	}
	return s
}

// ParseScreen maps a config name onto a top-level screen
func ParseScreen(name string) Screen {
	switch name {
	case "profile":
		return ScreenProfile
	case "metrics":
		return ScreenMetrics
	default:
		return ScreenToday
	}
}

const (
	// Vertical layout: tab bar plus a single footer line
	TabBarHeight = 1
	ChromeHeight = TabBarHeight + 1

	// Dashboards stay readable on wide terminals
	MaxContentWidth = 64
	MinContentWidth = 24

	// Metric list never grows wider than this
	MaxListWidth = 56

	statusDuration = 3 * time.Second

	quickWorkoutMinutes = 30
	quickWorkoutType    = "Quick Workout"
	demoWorkoutMinutes  = 45
	demoWorkoutType     = "Strength Training"
)

// Options configure the model beyond its services
type Options struct {
	Dark           bool
	DefaultScreen  Screen
	Refresh        refresh.Config
	RowHeight      float64
	RefreshTimeout time.Duration
	RefreshOnStart bool // run a refresh on the Today screen at startup
	Logger         *slog.Logger
	Now            func() time.Time
}

// Model is the main Bubble Tea model for the application
type Model struct {
	// Application state
	State     ApplicationState
	Screen    Screen
	Ready     bool
	LoggedOut bool

	// Services
	MetricSvc   *service.MetricService
	ActivitySvc *service.ActivityService
	ProfileSvc  *service.ProfileService

	// UI Components
	Today      *components.PullToRefresh
	Profile    *components.PullToRefresh
	MetricList *components.MetricList
	LogForm    *components.LogForm
	InputModal components.InputModal
	StepsBar   progress.Model
	Theme      styles.Theme

	// Data
	Dashboard    service.Dashboard
	HasDashboard bool
	Metrics      []domain.Metric
	Detail       domain.Metric
	History      []domain.MetricEntry
	Sessions     []domain.WorkoutSession

	// Dimensions
	Width  int
	Height int

	// UI state
	StatusMsg   string
	StatusIsErr bool
	statusSeq   int

	logger *slog.Logger
	now    func() time.Time
}

// NewModel creates a new application model
func NewModel(
	metricSvc *service.MetricService,
	activitySvc *service.ActivityService,
	profileSvc *service.ProfileService,
	opts Options,
) Model {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	theme := styles.NewTheme(opts.Dark)

	pullOpts := []components.PullOption{
		components.WithController(opts.Refresh),
		components.WithTheme(theme),
		components.WithLogger(logger),
	}
	if opts.RowHeight > 0 {
		pullOpts = append(pullOpts, components.WithRowHeight(opts.RowHeight))
	}
	if opts.RefreshTimeout > 0 {
		pullOpts = append(pullOpts, components.WithTimeout(opts.RefreshTimeout))
	}
	todayOpts := append(append([]components.PullOption{}, pullOpts...), components.WithRefreshing(opts.RefreshOnStart))

	return Model{
		State:       StateBrowsing,
		Screen:      opts.DefaultScreen,
		MetricSvc:   metricSvc,
		ActivitySvc: activitySvc,
		ProfileSvc:  profileSvc,
		Today:       components.NewPullToRefresh(activitySvc.Reload, todayOpts...),
		Profile:     components.NewPullToRefresh(activitySvc.Reload, pullOpts...),
		MetricList:  components.NewMetricList(theme),
		LogForm:     components.NewLogForm(domain.Catalog(), theme),
		InputModal:  components.NewInputModal(theme),
		StepsBar:    newStepsBar(theme),
		Theme:       theme,
		logger:      logger,
		now:         now,
	}
}

func newStepsBar(theme styles.Theme) progress.Model {
	return progress.New(
		progress.WithSolidFill(string(theme.Success)),
		progress.WithoutPercentage(),
	)
}

// Init initializes the application
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		LoadDashboardCmd(m.ActivitySvc),
		LoadMetricsCmd(m.MetricSvc),
		m.Today.Init(),
		m.Profile.Init(),
	)
}

// Update handles all messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Ready = true
		m.updateLayout()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.MouseMsg:
		if p := m.activePull(); p != nil && m.State == StateBrowsing && !m.InputModal.IsVisible() {
			msg.Y -= TabBarHeight
			return m, m.routePull(p, msg)
		}
		return m, nil

	case DashboardLoadedMsg:
		m.Dashboard = msg.Dashboard
		m.HasDashboard = true
		m.syncContent()
		return m, nil

	case MetricsLoadedMsg:
		m.Metrics = msg.Metrics
		m.MetricList.SetMetrics(msg.Metrics)
		for _, metric := range msg.Metrics {
			if metric.ID == m.Detail.ID {
				m.Detail = metric
			}
		}
		return m, nil

	case HistoryLoadedMsg:
		if msg.MetricID == m.Detail.ID {
			m.History = msg.Entries
		}
		return m, nil

	case SessionsLoadedMsg:
		m.Sessions = msg.Sessions
		return m, nil

	case EntryAddedMsg:
		def, _ := domain.LookupMetric(msg.Entry.MetricID)
		status := m.setStatus(fmt.Sprintf("Added %s %s to %s",
			domain.FormatValue(msg.Entry.Value), msg.Entry.Unit, def.Name), false)
		return m, tea.Batch(status, m.reloadMetrics(), LoadDashboardCmd(m.ActivitySvc))

	case EntriesLoggedMsg:
		m.Screen = ScreenMetrics
		status := m.setStatus(fmt.Sprintf("Logged %d %s", len(msg.Entries), plural(len(msg.Entries), "metric")), false)
		return m, tea.Batch(status, m.reloadMetrics(), LoadDashboardCmd(m.ActivitySvc))

	case WorkoutAddedMsg:
		status := m.setStatus(fmt.Sprintf("Added %d min %s", msg.Session.Duration, msg.Session.Type), false)
		cmds := []tea.Cmd{status, LoadDashboardCmd(m.ActivitySvc)}
		if m.Screen == ScreenHistory {
			cmds = append(cmds, LoadSessionsCmd(m.ActivitySvc))
		}
		return m, tea.Batch(cmds...)

	case AlertDismissedMsg:
		return m, LoadDashboardCmd(m.ActivitySvc)

	case LoggedOutMsg:
		m.LoggedOut = true
		m.State = StateBrowsing
		return m, tea.Quit

	case ErrMsg:
		m.logger.Error("operation failed", "context", msg.Context, "error", msg.Err)
		return m, m.setStatus(msg.Error(), true)

	case StatusMsg:
		return m, m.setStatus(msg.Message, msg.IsError)

	case ClearStatusMsg:
		if msg.seq == m.statusSeq {
			m.StatusMsg = ""
			m.StatusIsErr = false
		}
		return m, nil
	}

	return m, m.routeDefault(msg)
}

// routeDefault forwards component-internal messages (animation frames,
// refresh completions, cursor blinks) to whoever may own them.
func (m *Model) routeDefault(msg tea.Msg) tea.Cmd {
	cmds := []tea.Cmd{
		m.routePull(m.Today, msg),
		m.routePull(m.Profile, msg),
	}

	switch {
	case m.InputModal.IsVisible():
		var cmd tea.Cmd
		m.InputModal, cmd, _ = m.InputModal.Update(msg)
		cmds = append(cmds, cmd)
	case m.Screen == ScreenLogAll:
		cmd, _ := m.LogForm.Update(msg)
		cmds = append(cmds, cmd)
	case m.Screen == ScreenMetrics && m.MetricList.IsFilterTyping():
		_, cmd := m.MetricList.Update(msg)
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

// routePull forwards msg to a container and reloads the dashboard once a
// refresh it was running has finished.
func (m *Model) routePull(p *components.PullToRefresh, msg tea.Msg) tea.Cmd {
	wasBusy := p.Busy()
	_, cmd := p.Update(msg)
	if wasBusy && !p.Busy() {
		return tea.Batch(cmd, LoadDashboardCmd(m.ActivitySvc))
	}
	return cmd
}

// activePull returns the container hosting the current screen, if any
func (m *Model) activePull() *components.PullToRefresh {
	switch m.Screen {
	case ScreenToday:
		return m.Today
	case ScreenProfile:
		return m.Profile
	}
	return nil
}

// Refreshing reports whether either dashboard is running a refresh
func (m Model) Refreshing() bool {
	return m.Today.Busy() || m.Profile.Busy()
}

func (m *Model) reloadMetrics() tea.Cmd {
	cmds := []tea.Cmd{LoadMetricsCmd(m.MetricSvc)}
	if m.Screen == ScreenDetail && m.Detail.ID != "" {
		cmds = append(cmds, LoadHistoryCmd(m.MetricSvc, m.Detail.ID))
	}
	return tea.Batch(cmds...)
}

// setStatus shows a footer message and schedules its removal
func (m *Model) setStatus(text string, isErr bool) tea.Cmd {
	m.statusSeq++
	m.StatusMsg = text
	m.StatusIsErr = isErr
	return ClearStatusCmd(statusDuration, m.statusSeq)
}

// setTheme recomputes every style from the new theme
func (m *Model) setTheme(theme styles.Theme) {
	m.Theme = theme
	m.Today.SetTheme(theme)
	m.Profile.SetTheme(theme)
	m.MetricList.SetTheme(theme)
	m.LogForm.SetTheme(theme)
	m.InputModal.SetTheme(theme)
	width := m.StepsBar.Width
	m.StepsBar = newStepsBar(theme)
	m.StepsBar.Width = width
	m.syncContent()
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
