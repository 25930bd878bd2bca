package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wordwrap"
)

// Palette is the set of colors one scheme renders with
type Palette struct {
	Primary       lipgloss.Color
	Success       lipgloss.Color
	Warning       lipgloss.Color
	Error         lipgloss.Color
	Background    lipgloss.Color
	Surface       lipgloss.Color
	Border        lipgloss.Color
	Text          lipgloss.Color
	TextSecondary lipgloss.Color
	TextMuted     lipgloss.Color

	// Card fills standing in for the gradients of the hero cards
	RestDay      lipgloss.Color
	Achievement  lipgloss.Color
	QuickWorkout lipgloss.Color
}

// Color palettes
var (
	LightPalette = Palette{
		Primary:       lipgloss.Color("#3B82F6"),
		Success:       lipgloss.Color("#10B981"),
		Warning:       lipgloss.Color("#F59E0B"),
		Error:         lipgloss.Color("#EF4444"),
		Background:    lipgloss.Color("#F9FAFB"),
		Surface:       lipgloss.Color("#FFFFFF"),
		Border:        lipgloss.Color("#E5E7EB"),
		Text:          lipgloss.Color("#111827"),
		TextSecondary: lipgloss.Color("#6B7280"),
		TextMuted:     lipgloss.Color("#9CA3AF"),
		RestDay:       lipgloss.Color("#667EEA"),
		Achievement:   lipgloss.Color("#FA709A"),
		QuickWorkout:  lipgloss.Color("#10B981"),
	}

	DarkPalette = Palette{
		Primary:       lipgloss.Color("#3B82F6"),
		Success:       lipgloss.Color("#10B981"),
		Warning:       lipgloss.Color("#F59E0B"),
		Error:         lipgloss.Color("#EF4444"),
		Background:    lipgloss.Color("#111827"),
		Surface:       lipgloss.Color("#1F2937"),
		Border:        lipgloss.Color("#374151"),
		Text:          lipgloss.Color("#F9FAFB"),
		TextSecondary: lipgloss.Color("#9CA3AF"),
		TextMuted:     lipgloss.Color("#6B7280"),
		RestDay:       lipgloss.Color("#1E40AF"),
		Achievement:   lipgloss.Color("#F59E0B"),
		QuickWorkout:  lipgloss.Color("#059669"),
	}
)

// White is the text color on filled cards in both schemes
var White = lipgloss.Color("#FFFFFF")

// Theme holds every style the renderers use. It is a value: build a new one
// with NewTheme when the scheme changes.
type Theme struct {
	Dark bool
	Palette

	// Text
	Title       lipgloss.Style
	Subtitle    lipgloss.Style
	Dim         lipgloss.Style
	Accent      lipgloss.Style
	ErrorText   lipgloss.Style
	SuccessText lipgloss.Style
	WarningText lipgloss.Style
	StatNumber  lipgloss.Style
	StatLabel   lipgloss.Style

	// Panels
	Card        lipgloss.Style
	FilledCard  lipgloss.Style
	AlertCard   lipgloss.Style
	ActiveCard  lipgloss.Style
	Avatar      lipgloss.Style
	Indicator   lipgloss.Style
	StatusBar   lipgloss.Style
	TabActive   lipgloss.Style
	TabInactive lipgloss.Style

	// Lists
	SelectedItem lipgloss.Style
	NormalItem   lipgloss.Style

	// Modals and help
	Modal      lipgloss.Style
	ModalTitle lipgloss.Style
	HelpKey    lipgloss.Style
	HelpDesc   lipgloss.Style

	// Filter
	Filter         lipgloss.Style
	FilterPrompt   lipgloss.Style
	MatchHighlight lipgloss.Style
}

// NewTheme computes the styles for the light or dark palette
func NewTheme(dark bool) Theme {
	p := LightPalette
	if dark {
		p = DarkPalette
	}

	return Theme{
		Dark:    dark,
		Palette: p,

		Title: lipgloss.NewStyle().
			Foreground(p.Text).
			Bold(true),
		Subtitle: lipgloss.NewStyle().
			Foreground(p.TextSecondary),
		Dim: lipgloss.NewStyle().
			Foreground(p.TextMuted),
		Accent: lipgloss.NewStyle().
			Foreground(p.Primary),
		ErrorText: lipgloss.NewStyle().
			Foreground(p.Error),
		SuccessText: lipgloss.NewStyle().
			Foreground(p.Success),
		WarningText: lipgloss.NewStyle().
			Foreground(p.Warning),
		StatNumber: lipgloss.NewStyle().
			Foreground(p.Text).
			Bold(true),
		StatLabel: lipgloss.NewStyle().
			Foreground(p.TextSecondary),

		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Border).
			Padding(0, 1),
		FilledCard: lipgloss.NewStyle().
			Foreground(White).
			Padding(1, 2),
		AlertCard: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Error).
			Foreground(p.Error).
			Padding(0, 1),
		ActiveCard: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Primary).
			Padding(0, 1),
		Avatar: lipgloss.NewStyle().
			Foreground(White).
			Background(p.Primary).
			Bold(true).
			Padding(1, 2),
		Indicator: lipgloss.NewStyle().
			Foreground(p.Primary).
			Bold(true),
		StatusBar: lipgloss.NewStyle().
			Foreground(p.TextSecondary),
		TabActive: lipgloss.NewStyle().
			Foreground(White).
			Background(p.Primary).
			Bold(true).
			Padding(0, 1),
		TabInactive: lipgloss.NewStyle().
			Foreground(p.TextSecondary).
			Padding(0, 1),

		SelectedItem: lipgloss.NewStyle().
			Foreground(p.Text).
			Background(p.Border).
			Padding(0, 1),
		NormalItem: lipgloss.NewStyle().
			Foreground(p.TextSecondary).
			Padding(0, 1),

		Modal: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Primary).
			Padding(1, 2),
		ModalTitle: lipgloss.NewStyle().
			Foreground(p.Text).
			Bold(true).
			MarginBottom(1),
		HelpKey: lipgloss.NewStyle().
			Foreground(p.Primary),
		HelpDesc: lipgloss.NewStyle().
			Foreground(p.TextMuted),

		Filter: lipgloss.NewStyle().
			Foreground(p.Primary),
		FilterPrompt: lipgloss.NewStyle().
			Foreground(p.Primary).
			Bold(true),
		MatchHighlight: lipgloss.NewStyle().
			Foreground(p.Primary).
			Bold(true),
	}
}

// Toggle returns the theme for the opposite scheme
func (t Theme) Toggle() Theme {
	return NewTheme(!t.Dark)
}

// Fill renders a filled card in the given color
func (t Theme) Fill(bg lipgloss.Color, width int) lipgloss.Style {
	return t.FilledCard.Background(bg).Width(width)
}

// Swatch renders text in a metric's own color
func (t Theme) Swatch(hex, text string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(hex)).Bold(true).Render(text)
}

// Helper functions

// Truncate shortens s to the given display width with an ellipsis
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if lipgloss.Width(s) <= width {
		return s
	}
	if width == 1 {
		return truncate.String(s, 1)
	}
	return truncate.StringWithTail(s, uint(width), "…")
}

// Wrap word-wraps s at the given display width
func Wrap(s string, width int) string {
	if width <= 0 {
		return s
	}
	return wordwrap.String(s, width)
}

// Pad right-pads s with spaces to the given display width
func Pad(s string, width int) string {
	w := lipgloss.Width(s)
	if w >= width {
		return Truncate(s, width)
	}
	return s + strings.Repeat(" ", width-w)
}

// RenderListRow renders a list row with a uniform background when selected.
// Each part is styled separately so ANSI resets don't drop the background.
func (t Theme) RenderListRow(parts []RowPart, selected bool, width int) string {
	bg := t.Border

	var b strings.Builder
	visible := 0
	for _, part := range parts {
		style := lipgloss.NewStyle()
		switch {
		case part.Foreground != nil:
			style = style.Foreground(*part.Foreground)
		case selected:
			style = style.Foreground(t.Text)
		default:
			style = style.Foreground(t.TextSecondary)
		}
		if selected {
			style = style.Background(bg)
		}
		b.WriteString(style.Render(part.Text))
		visible += lipgloss.Width(part.Text)
	}

	fill := lipgloss.NewStyle()
	if selected {
		fill = fill.Background(bg)
	}
	// Subtract 2 for the left and right margin
	if pad := width - visible - 2; pad > 0 {
		b.WriteString(fill.Render(strings.Repeat(" ", pad)))
	}
	margin := fill.Render(" ")
	return margin + b.String() + margin
}

// RowPart is a piece of a row with an optional foreground color
type RowPart struct {
	Text       string
	Foreground *lipgloss.Color
}
