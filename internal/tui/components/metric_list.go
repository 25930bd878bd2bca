package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/fitdeck/internal/domain"
	"github.com/mmcdole/fitdeck/internal/tui/styles"
	"github.com/sahilm/fuzzy"
)

// Layout constants for the metric list
const (
	// Border adds 1 char on each side (left+right for width, top+bottom for height)
	BorderWidth  = 2
	BorderHeight = 2

	// Scroll indicators ("↑ more" and "↓ more") each take 1 line
	ScrollIndicatorLines = 2

	// Each metric renders as a name line and a detail line
	metricRowLines = 2
)

// MetricList is a scrollable, filterable list of metrics
type MetricList struct {
	metrics []domain.Metric

	// Selection
	cursor     int
	offset     int
	maxVisible int

	// Dimensions
	width  int
	height int

	theme styles.Theme
	keys  MetricListKeyMap

	// Filter state
	filterActive bool
	filterInput  textinput.Model
	filterQuery  string
	filteredIdx  []int // indices into metrics
	matches      map[int][]int
}

// NewMetricList creates an empty metric list
func NewMetricList(theme styles.Theme) *MetricList {
	ti := textinput.New()
	ti.Placeholder = "type to filter..."
	ti.Prompt = "/ "

	l := &MetricList{
		filterInput: ti,
		keys:        MetricListKeys,
	}
	l.SetTheme(theme)
	return l
}

// SetTheme restyles the list
func (l *MetricList) SetTheme(theme styles.Theme) {
	l.theme = theme
	l.filterInput.PromptStyle = theme.FilterPrompt
	l.filterInput.TextStyle = theme.Filter
}

// SetMetrics replaces the items, keeping the selection on the same metric
func (l *MetricList) SetMetrics(metrics []domain.Metric) {
	selected := ""
	if m, ok := l.Selected(); ok {
		selected = m.ID
	}

	l.metrics = metrics
	if l.filterQuery != "" {
		l.applyFilter()
	}

	l.cursor = 0
	for i := 0; i < l.ItemCount(); i++ {
		if l.metrics[l.mapIndex(i)].ID == selected {
			l.cursor = i
			break
		}
	}
	l.ensureVisible()
}

// Update handles navigation and filter keys
func (l *MetricList) Update(msg tea.Msg) (*MetricList, tea.Cmd) {
	keyMsg, isKey := msg.(tea.KeyMsg)

	// Typing into the filter
	if l.filterActive && l.filterInput.Focused() {
		if isKey {
			switch {
			case key.Matches(keyMsg, l.keys.Escape):
				l.clearFilter()
				return l, nil
			case key.Matches(keyMsg, l.keys.Enter):
				l.filterInput.Blur()
				return l, nil
			case keyMsg.String() == "backspace" && l.filterInput.Value() == "":
				l.clearFilter()
				return l, nil
			}
		}

		var cmd tea.Cmd
		l.filterInput, cmd = l.filterInput.Update(msg)
		l.applyFilter()
		return l, cmd
	}

	if !isKey {
		return l, nil
	}

	// Filter active but blurred: navigation over the results
	if l.filterActive {
		switch {
		case key.Matches(keyMsg, l.keys.Escape):
			l.clearFilter()
			return l, nil
		case key.Matches(keyMsg, l.keys.Filter):
			l.filterInput.Focus()
			return l, nil
		}
	} else if key.Matches(keyMsg, l.keys.Filter) {
		l.filterActive = true
		l.recalcMaxVisible()
		return l, l.filterInput.Focus()
	}

	count := l.ItemCount()
	if count == 0 {
		return l, nil
	}

	switch {
	case key.Matches(keyMsg, l.keys.Down):
		if l.cursor < count-1 {
			l.cursor++
			l.ensureVisible()
		}
	case key.Matches(keyMsg, l.keys.Up):
		if l.cursor > 0 {
			l.cursor--
			l.ensureVisible()
		}
	case key.Matches(keyMsg, l.keys.Home):
		l.cursor = 0
		l.offset = 0
	case key.Matches(keyMsg, l.keys.End):
		l.cursor = count - 1
		l.ensureVisible()
	}
	return l, nil
}

// SetSize sets the list's outer size
func (l *MetricList) SetSize(width, height int) {
	l.width = width
	l.height = height
	l.recalcMaxVisible()
	l.ensureVisible()
}

// Selected returns the metric under the cursor
func (l *MetricList) Selected() (domain.Metric, bool) {
	if l.cursor >= l.ItemCount() {
		return domain.Metric{}, false
	}
	return l.metrics[l.mapIndex(l.cursor)], true
}

// ItemCount is the number of visible (filtered) metrics
func (l *MetricList) ItemCount() int {
	if l.filteredIdx != nil {
		return len(l.filteredIdx)
	}
	return len(l.metrics)
}

// IsFilterTyping returns true if the filter input has focus
func (l *MetricList) IsFilterTyping() bool {
	return l.filterActive && l.filterInput.Focused()
}

// IsFiltering returns true if filter mode is active
func (l *MetricList) IsFiltering() bool {
	return l.filterActive
}

// ClearFilter deactivates the filter and shows all metrics
func (l *MetricList) ClearFilter() {
	l.clearFilter()
}

func (l *MetricList) recalcMaxVisible() {
	// Interior height minus title line and scroll indicators
	interior := l.height - BorderHeight - ScrollIndicatorLines - 1
	if l.filterActive {
		interior--
	}
	l.maxVisible = max(1, interior/metricRowLines)
}

func (l *MetricList) ensureVisible() {
	if l.maxVisible <= 0 {
		return
	}
	if l.cursor < l.offset {
		l.offset = l.cursor
	}
	if l.cursor >= l.offset+l.maxVisible {
		l.offset = l.cursor - l.maxVisible + 1
	}
}

func (l *MetricList) clearFilter() {
	l.filterActive = false
	l.filterQuery = ""
	l.filteredIdx = nil
	l.matches = nil
	l.filterInput.SetValue("")
	l.filterInput.Blur()
	l.recalcMaxVisible()
}

func (l *MetricList) applyFilter() {
	query := l.filterInput.Value()
	l.filterQuery = query
	l.matches = nil

	if query == "" {
		l.filteredIdx = nil
		return
	}

	names := make([]string, len(l.metrics))
	for i, m := range l.metrics {
		names[i] = strings.ToLower(m.Name)
	}

	found := fuzzy.Find(strings.ToLower(query), names)
	l.filteredIdx = make([]int, len(found))
	l.matches = make(map[int][]int, len(found))
	for i, match := range found {
		l.filteredIdx[i] = match.Index
		l.matches[match.Index] = match.MatchedIndexes
	}

	l.cursor = 0
	l.offset = 0
}

func (l *MetricList) mapIndex(i int) int {
	if l.filteredIdx != nil && i < len(l.filteredIdx) {
		return l.filteredIdx[i]
	}
	return i
}

// View renders the bordered list
func (l *MetricList) View() string {
	style := l.theme.ActiveCard
	frameW, frameH := style.GetFrameSize()
	return style.
		Width(max(l.width-frameW, 0)).
		Height(max(l.height-frameH, 0)).
		Render(l.renderContent())
}

func (l *MetricList) renderContent() string {
	// Border plus one column of padding on each side
	inner := max(l.width-BorderWidth-2, 12)
	title := l.theme.Title.Render("Metrics")

	count := l.ItemCount()
	if count == 0 {
		empty := l.theme.Dim.Render("No metrics")
		if l.filterQuery != "" {
			empty = l.theme.Dim.Render("No matches")
		}
		content := title + "\n \n" + empty + "\n "
		if l.filterActive {
			content += "\n" + l.filterInput.View()
		}
		return content
	}

	end := min(l.offset+l.maxVisible, count)
	var rows []string
	for i := l.offset; i < end; i++ {
		rows = append(rows, l.renderRow(l.mapIndex(i), i == l.cursor, inner))
	}

	// Always reserve the indicator lines to prevent layout shifts
	header := " "
	if l.offset > 0 {
		header = l.theme.Dim.Render("↑ more")
	}
	footer := " "
	if end < count {
		footer = l.theme.Dim.Render("↓ more")
	}

	content := title + "\n" + header + "\n" + strings.Join(rows, "\n") + "\n" + footer
	if l.filterActive {
		content += "\n" + l.filterInput.View()
	}
	return content
}

func (l *MetricList) renderRow(idx int, selected bool, width int) string {
	m := l.metrics[idx]
	color := lipgloss.Color(m.Color)

	var value, detail string
	if m.HasData {
		value = m.Display()
		detail = domain.UpdatedLabel(m.UpdatedAt)
	} else {
		value = "+"
		detail = "no readings yet"
	}

	// Row margins take one column on each side
	text := width - 2
	name := l.highlight(m.Name, l.matches[idx])
	gap := max(text-lipgloss.Width(string(m.Icon))-1-lipgloss.Width(m.Name)-lipgloss.Width(value), 1)

	top := l.theme.RenderListRow([]styles.RowPart{
		{Text: string(m.Icon), Foreground: &color},
		{Text: " " + name},
		{Text: strings.Repeat(" ", gap)},
		{Text: value, Foreground: &color},
	}, selected, width)
	bottom := l.theme.RenderListRow([]styles.RowPart{
		{Text: "  " + styles.Truncate(detail, text-2)},
	}, selected, width)
	return top + "\n" + bottom
}

// highlight marks fuzzy-matched bytes of name
func (l *MetricList) highlight(name string, matched []int) string {
	if len(matched) == 0 {
		return name
	}
	hits := make(map[int]bool, len(matched))
	for _, i := range matched {
		hits[i] = true
	}
	var b strings.Builder
	for i, r := range name {
		if hits[i] {
			b.WriteString(l.theme.MatchHighlight.Render(string(r)))
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}
