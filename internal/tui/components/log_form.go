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

// LogField is one filled row of the log-all form
type LogField struct {
	MetricID string
	Value    string
}

// LogForm has one input per metric and saves them together
type LogForm struct {
	metrics []domain.MetricDef
	inputs  []textinput.Model
	focus   int
	offset  int
	height  int
	width   int
	theme   styles.Theme
	keys    FormKeyMap
}

// NewLogForm builds a form for the given metrics
func NewLogForm(metrics []domain.MetricDef, theme styles.Theme) *LogForm {
	f := &LogForm{
		metrics: metrics,
		inputs:  make([]textinput.Model, len(metrics)),
		keys:    FormKeys,
	}
	for i, m := range metrics {
		ti := textinput.New()
		ti.Placeholder = m.Placeholder
		ti.CharLimit = 12
		ti.Width = 12
		ti.Prompt = ""
		f.inputs[i] = ti
	}
	f.SetTheme(theme)
	return f
}

// SetTheme restyles the inputs
func (f *LogForm) SetTheme(theme styles.Theme) {
	f.theme = theme
	for i := range f.inputs {
		f.inputs[i].TextStyle = lipgloss.NewStyle().Foreground(theme.Text)
		f.inputs[i].PlaceholderStyle = theme.Dim
	}
}

// Reset clears every input and focuses the first
func (f *LogForm) Reset() tea.Cmd {
	for i := range f.inputs {
		f.inputs[i].SetValue("")
		f.inputs[i].Blur()
	}
	f.focus = 0
	f.offset = 0
	if len(f.inputs) == 0 {
		return nil
	}
	return f.inputs[0].Focus()
}

// SetSize sets the form's outer size
func (f *LogForm) SetSize(width, height int) {
	f.width = width
	f.height = height
	f.ensureVisible()
}

// Focused returns the index of the focused input
func (f *LogForm) Focused() int {
	return f.focus
}

// Filled returns the non-blank rows in form order
func (f *LogForm) Filled() []LogField {
	var out []LogField
	for i, in := range f.inputs {
		if v := strings.TrimSpace(in.Value()); v != "" {
			out = append(out, LogField{MetricID: f.metrics[i].ID, Value: v})
		}
	}
	return out
}

// CanSave reports whether any input has a value
func (f *LogForm) CanSave() bool {
	return len(f.Filled()) > 0
}

// Update moves focus and routes typing, returns (cmd, save requested)
func (f *LogForm) Update(msg tea.Msg) (tea.Cmd, bool) {
	if len(f.inputs) == 0 {
		return nil, false
	}
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, f.keys.Save):
			return nil, f.CanSave()
		case key.Matches(keyMsg, f.keys.Next):
			return f.move(1), false
		case key.Matches(keyMsg, f.keys.Prev):
			return f.move(-1), false
		}
	}

	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd, false
}

func (f *LogForm) move(delta int) tea.Cmd {
	n := len(f.inputs)
	f.inputs[f.focus].Blur()
	f.focus = (f.focus + delta + n) % n
	f.ensureVisible()
	return f.inputs[f.focus].Focus()
}

// visibleRows is how many inputs fit, each taking a single line
func (f *LogForm) visibleRows() int {
	// Title, blank, blank, save line
	return max(1, f.height-4)
}

func (f *LogForm) ensureVisible() {
	rows := f.visibleRows()
	if f.focus < f.offset {
		f.offset = f.focus
	}
	if f.focus >= f.offset+rows {
		f.offset = f.focus - rows + 1
	}
}

// View renders the form
func (f *LogForm) View() string {
	t := f.theme
	lines := []string{t.Title.Render("Log all metrics"), ""}

	nameWidth := 0
	for _, m := range f.metrics {
		nameWidth = max(nameWidth, lipgloss.Width(m.Name))
	}

	end := min(f.offset+f.visibleRows(), len(f.inputs))
	for i := f.offset; i < end; i++ {
		m := f.metrics[i]
		marker := "  "
		label := t.Subtitle
		if i == f.focus {
			marker = t.Accent.Render("▸ ")
			label = t.Title
		}
		lines = append(lines, marker+
			t.Swatch(m.Color, string(m.Icon))+" "+
			label.Render(styles.Pad(m.Name, nameWidth))+"  "+
			f.inputs[i].View()+" "+t.Dim.Render(m.Unit))
	}

	lines = append(lines, "")
	if f.CanSave() {
		lines = append(lines, t.Accent.Render("ctrl+s save"))
	} else {
		lines = append(lines, t.Dim.Render("Fill in at least one metric to save"))
	}
	return strings.Join(lines, "\n")
}
