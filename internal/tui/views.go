package tui

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/fitdeck/internal/domain"
	"github.com/mmcdole/fitdeck/internal/tui/styles"
)

// View renders the application
func (m Model) View() string {
	if !m.Ready {
		return "Loading..."
	}

	if m.State == StateHelp {
		return m.renderHelp()
	}

	if m.State == StateConfirmLogout {
		return m.renderLogoutConfirmation()
	}

	body := fitHeight(m.renderBody(), m.bodyHeight())
	view := lipgloss.JoinVertical(lipgloss.Left,
		m.renderTabBar(),
		body,
		m.renderFooter(),
	)

	// Overlay input modal if visible
	if m.InputModal.IsVisible() {
		view = lipgloss.Place(m.Width, m.Height,
			lipgloss.Center, lipgloss.Center,
			m.InputModal.View())
	}

	return view
}

func (m Model) renderBody() string {
	switch m.Screen {
	case ScreenToday:
		return m.Today.View()
	case ScreenProfile:
		return m.Profile.View()
	case ScreenMetrics:
		return m.MetricList.View()
	case ScreenDetail:
		return m.renderDetail()
	case ScreenLogAll:
		return m.LogForm.View()
	case ScreenHistory:
		return m.renderHistory()
	}
	return ""
}

// renderTabBar renders the screen tabs with the app name on the right
func (m Model) renderTabBar() string {
	t := m.Theme
	tabs := []struct {
		screen Screen
		label  string
	}{
		{ScreenToday, "1 Today"},
		{ScreenProfile, "2 Profile"},
		{ScreenMetrics, "3 Metrics"},
	}

	var parts []string
	for _, tab := range tabs {
		if m.Screen.Tab() == tab.screen {
			parts = append(parts, t.TabActive.Render(tab.label))
		} else {
			parts = append(parts, t.TabInactive.Render(tab.label))
		}
	}
	left := strings.Join(parts, " ")
	right := t.Dim.Render("fitdeck")

	gap := m.Width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		return left
	}
	return left + strings.Repeat(" ", gap) + right
}

// renderFooter renders a single-line minimal footer
func (m Model) renderFooter() string {
	t := m.Theme

	// Left side: refresh activity or status message
	var left string
	if m.Refreshing() {
		left = t.Accent.Render("↻") + " " + t.Dim.Render("Refreshing...")
	} else if m.StatusMsg != "" {
		if m.StatusIsErr {
			left = t.ErrorText.Render(m.StatusMsg)
		} else {
			left = t.Dim.Render(m.StatusMsg)
		}
	}

	// Center section: hints for the current screen
	center := m.renderHints(m.screenHints())

	// Right side: "? help" hint
	right := t.Accent.Render("?") + t.Dim.Render(" help")

	// Layout: left + centered hints + right
	leftWidth := lipgloss.Width(left)
	centerWidth := lipgloss.Width(center)
	rightWidth := lipgloss.Width(right)

	totalContent := leftWidth + centerWidth + rightWidth
	if totalContent >= m.Width {
		// Not enough space - just left + right
		gap := m.Width - leftWidth - rightWidth
		if gap < 0 {
			gap = 0
		}
		return left + strings.Repeat(" ", gap) + right
	}

	// Center the hints in available space
	available := m.Width - leftWidth - rightWidth
	leftPad := (available - centerWidth) / 2
	rightPad := available - centerWidth - leftPad

	return left + strings.Repeat(" ", leftPad) + center + strings.Repeat(" ", rightPad) + right
}

func (m Model) screenHints() [][2]string {
	switch m.Screen {
	case ScreenToday:
		hints := [][2]string{{"r", "refresh"}, {"w", "workout"}}
		if m.Dashboard.Profile.MissedAlert {
			hints = append(hints, [2]string{"x", "dismiss"})
		}
		return hints
	case ScreenProfile:
		return [][2]string{{"r", "refresh"}, {"a", "history"}, {"d", "demo workout"}, {"L", "logout"}}
	case ScreenMetrics:
		return [][2]string{{"enter", "open"}, {"a", "add"}, {"L", "log all"}, {"/", "filter"}}
	case ScreenDetail:
		return [][2]string{{"a", "add"}, {"esc", "back"}}
	case ScreenLogAll:
		return [][2]string{{"tab", "next"}, {"ctrl+s", "save"}, {"esc", "cancel"}}
	case ScreenHistory:
		return [][2]string{{"esc", "back"}}
	}
	return nil
}

func (m Model) renderHints(hints [][2]string) string {
	parts := make([]string, len(hints))
	for i, h := range hints {
		parts[i] = m.Theme.Accent.Render(h[0]) + m.Theme.Dim.Render(" "+h[1])
	}
	return strings.Join(parts, "  ")
}

// card renders a bordered card with an outer width of w
func (m Model) card(w int, body string) string {
	return m.Theme.Card.Width(max(w-2, 1)).Render(body)
}

// cardRow lays bodies out as equal-width cards side by side
func (m Model) cardRow(w int, bodies ...string) string {
	n := len(bodies)
	cw := (w - (n - 1)) / n
	cards := make([]string, 0, 2*n-1)
	for i, body := range bodies {
		if i > 0 {
			cards = append(cards, " ")
		}
		cards = append(cards, m.card(cw, body))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}

// statBody is a number over its label, always three lines tall
func (m Model) statBody(value, label, sub string) string {
	if sub == "" {
		sub = " "
	}
	return m.Theme.StatNumber.Render(value) + "\n" +
		m.Theme.StatLabel.Render(label) + "\n" +
		m.Theme.Dim.Render(sub)
}

func (m Model) achievementCard(w, streak int) string {
	t := m.Theme
	return t.Fill(t.Achievement, w).Render(
		lipgloss.NewStyle().Bold(true).Render("★ "+domain.StreakTitle(streak)) + "\n" +
			styles.Wrap(domain.StreakMessage(streak), w-4))
}

// renderToday renders the Today dashboard hosted in the pull container
func (m Model) renderToday() string {
	t := m.Theme
	if !m.HasDashboard {
		return t.Dim.Render("Loading...")
	}

	w := m.contentWidth()
	d := m.Dashboard
	s := d.Summary
	now := m.now()
	bold := lipgloss.NewStyle().Bold(true)

	sections := []string{
		t.Dim.Render(domain.DateHeader(now)) + "\n" +
			t.Title.Render(domain.Greeting(now.Hour())+", "+d.Profile.Name),
		t.Fill(t.RestDay, w).Render(bold.Render("REST DAY") + "\n" + "Hoo-ray it's your rest-day"),
		m.cardRow(w,
			m.statBody(strconv.Itoa(s.StreakDays), "Streak Days", "days"),
			m.statBody(strconv.Itoa(s.WeeklyMinutes), "This Week", "minutes"),
		),
	}

	if s.StreakDays > 0 {
		sections = append(sections, m.achievementCard(w, s.StreakDays))
	}

	if d.Profile.MissedAlert {
		sections = append(sections, t.AlertCard.Width(w-2).Render(
			"⚠ You missed "+bold.Render("1 workout")+" from Saturday\n"+
				t.Dim.Render("x dismiss")))
	}

	sections = append(sections,
		t.Fill(t.QuickWorkout, w).Render(
			bold.Render("▶ Complete Quick Workout")+"\n"+"Boost your streak!  (w)"),
		m.card(w,
			t.Title.Render("Steps tracker")+"\n"+
				t.StatNumber.Render(domain.Thousands(s.Steps))+
				t.Subtitle.Render(" / "+domain.Thousands(s.StepGoal)+" steps")+"\n"+
				m.StepsBar.ViewAs(s.StepProgress/100)+" "+
				t.Subtitle.Render(fmt.Sprintf("%d%%", int(math.Round(s.StepProgress))))),
		m.card(w,
			t.Title.Render("Macros")+"\n"+
				t.Subtitle.Render("Start by setting your daily goal")+"\n"+
				t.Accent.Render("Set daily goal")),
		m.card(w,
			t.Title.Render("Food Journal")+"\n"+
				t.Subtitle.Render("What did you eat today?")+"\n"+
				t.Accent.Render("Add meal")),
		m.card(w,
			t.Title.Render("Today's Progress")+"\n"+
				m.statColumns(w-4,
					[2]string{strconv.Itoa(s.WorkoutsToday), "Workouts"},
					[2]string{"0", "Calories"},
					[2]string{domain.FormatValue(s.WaterToday), "Water (L)"},
				)),
	)

	return strings.Join(sections, "\n")
}

// statColumns centers each value over its label in equal columns
func (m Model) statColumns(w int, stats ...[2]string) string {
	cw := w / len(stats)
	cols := make([]string, len(stats))
	for i, s := range stats {
		cols[i] = lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).Render(
			m.Theme.StatNumber.Render(s[0]) + "\n" + m.Theme.StatLabel.Render(s[1]))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cols...)
}

// menuItem is one row of the profile menu
type menuItem struct {
	key   string
	title string
	color lipgloss.Color
}

// renderProfile renders the Profile dashboard hosted in the pull container
func (m Model) renderProfile() string {
	t := m.Theme
	if !m.HasDashboard {
		return t.Dim.Render("Loading...")
	}

	w := m.contentWidth()
	p := m.Dashboard.Profile
	s := m.Dashboard.Summary

	role := "Signed out"
	if p.SignedIn() {
		role = strings.ToUpper(p.Role[:1]) + p.Role[1:]
	}
	identity := lipgloss.JoinHorizontal(lipgloss.Center,
		t.Avatar.Render(p.Initials),
		"  ",
		t.Title.Render(p.Name)+"\n"+t.Subtitle.Render(role),
	)

	sections := []string{
		t.Title.Render("You"),
		identity,
		m.cardRow(w,
			m.statBody(strconv.Itoa(s.TotalMinutes), "Total Training", "minutes"),
			m.statBody(strconv.Itoa(s.StreakDays), "Current Streak", "days"),
		),
		m.cardRow(w,
			m.statBody(strconv.Itoa(s.WeeklyMinutes), "This Week", "minutes"),
			m.statBody(strconv.Itoa(s.MonthlyMinutes), "This Month", "minutes"),
			m.statBody(strconv.Itoa(s.LongestStreak), "Best Streak", "days"),
		),
	}

	if s.StreakDays > 0 {
		sections = append(sections, m.achievementCard(w, s.StreakDays))
	}

	sections = append(sections, m.card(w,
		t.Dim.Render("WEIGHT (KG)")+"\n"+
			t.StatLabel.Render("Current ")+t.StatNumber.Render(domain.FormatValue(p.CurrentWeight))+
			t.StatLabel.Render("   Goal ")+t.StatNumber.Render(domain.FormatValue(p.GoalWeight))+
			"   "+t.Accent.Render(domain.WeightDelta(p.CurrentWeight, p.GoalWeight))+"\n"+
			t.Subtitle.Render(domain.WeightToGoal(p.CurrentWeight, p.GoalWeight))))

	menu := []menuItem{
		{"a", "Activity history", t.Primary},
		{"e", "Your exercises", t.Success},
		{"p", "Progress photo", t.Warning},
		{"s", "Steps", t.Error},
		{"d", "Add Demo Workout", t.Primary},
		{"L", "Logout", t.Error},
	}
	var rows []string
	for _, item := range menu {
		marker := lipgloss.NewStyle().Foreground(item.color).Render("●")
		title := styles.Pad(item.title, w-12)
		rows = append(rows, " "+marker+" "+t.Title.Render(title)+" "+t.Accent.Render(item.key)+" "+t.Dim.Render("›"))
	}
	sections = append(sections, m.card(w, strings.Join(rows, "\n")))

	return strings.Join(sections, "\n")
}

// renderDetail renders the latest value and history of one metric
func (m Model) renderDetail() string {
	t := m.Theme
	metric := m.Detail
	w := m.contentWidth()

	lines := []string{
		t.Swatch(metric.Color, string(metric.Icon)) + " " + t.Title.Render(metric.Name),
		"",
	}
	if metric.HasData {
		lines = append(lines,
			t.StatNumber.Render(metric.Display())+"  "+t.Dim.Render(domain.UpdatedLabel(metric.UpdatedAt)))
	} else {
		lines = append(lines, t.Dim.Render("No readings yet"))
	}

	lines = append(lines, "", t.Title.Render("History"))
	if len(m.History) == 0 {
		lines = append(lines, t.Dim.Render("Nothing logged yet. Press a to add a reading."))
	}
	now := m.now()
	for _, e := range m.History {
		value := domain.FormatValue(e.Value) + " " + e.Unit
		lines = append(lines, "  "+
			t.Swatch(metric.Color, styles.Pad(value, 14))+
			t.Subtitle.Render(styles.Truncate(domain.EntryStamp(e.RecordedAt, now), w-18)))
	}
	return strings.Join(lines, "\n")
}

// renderHistory lists completed workouts, newest first
func (m Model) renderHistory() string {
	t := m.Theme
	w := m.contentWidth()

	lines := []string{t.Title.Render("Activity history"), ""}
	count := 0
	for _, s := range m.Sessions {
		if !s.Completed {
			continue
		}
		count++
		lines = append(lines, "  "+
			t.Subtitle.Render(styles.Pad(s.Date.Format("Mon Jan 2"), 12))+
			t.Title.Render(styles.Pad(styles.Truncate(s.Type, w-26), w-26))+
			t.Accent.Render(fmt.Sprintf("%4d min", s.Duration)))
	}
	if count == 0 {
		lines = append(lines, t.Dim.Render("No workouts yet. Finish one to start a streak."))
	}
	return strings.Join(lines, "\n")
}

// renderHelp renders the help screen
func (m Model) renderHelp() string {
	help := `
SCREENS                         TODAY
  1 / 2 / 3  Today/Profile/Metrics  r      Refresh (or pull down)
  Tab        Next screen            w      Quick workout
  Esc        Back                   x      Dismiss alert

METRICS                         PROFILE
  j/k        Up/down                a      Activity history
  Enter      Open metric            d      Add demo workout
  a          Add reading            s      Steps
  L          Log all metrics        L      Logout
  /          Filter

OTHER
  t          Toggle theme           q      Quit
  ?          This help

Press ? or esc to return...
`

	return lipgloss.Place(m.Width, m.Height,
		lipgloss.Center, lipgloss.Center,
		m.Theme.Modal.Render(help))
}

// renderLogoutConfirmation renders the logout confirmation modal
func (m Model) renderLogoutConfirmation() string {
	modal := `
            Log Out?

  You will be signed out of fitdeck.
  Your readings stay on this device.

        [Y] Yes      [N] No
`

	return lipgloss.Place(m.Width, m.Height,
		lipgloss.Center, lipgloss.Center,
		m.Theme.Modal.Render(modal))
}
