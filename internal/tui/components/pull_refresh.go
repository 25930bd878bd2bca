package components

import (
	"context"
	"log/slog"
	"math"
	"strings"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/fitdeck/internal/refresh"
	"github.com/mmcdole/fitdeck/internal/tui/styles"
)

// Gesture and animation timing
const (
	// FrameInterval paces the animation loop
	FrameInterval = time.Second / 60

	// WheelSettle ends a wheel pull once no wheel input arrives for this long
	WheelSettle = 250 * time.Millisecond

	// DefaultRowHeight converts terminal rows into gesture points
	DefaultRowHeight = 20.0

	// DefaultRefreshTimeout bounds one run of the refresh action
	DefaultRefreshTimeout = 30 * time.Second

	// maxFrameStep caps the time one frame may advance after a stall
	maxFrameStep = 250 * time.Millisecond
)

var lastPullID atomic.Int64

func nextPullID() int {
	return int(lastPullID.Add(1))
}

// Internal messages. Each carries the container ID so several containers
// can share one program.
type (
	pullFrameMsg struct {
		id   int
		gen  int
		time time.Time
	}

	pullDoneMsg struct {
		id  int
		gen int
		err error
	}

	wheelSettleMsg struct {
		id  int
		seq int
	}
)

type gesture int

const (
	gestureNone gesture = iota
	gestureDrag
	gestureWheel
)

// PullToRefresh hosts scrollable content and refreshes it when the user pulls
// down past the trigger distance, by mouse drag, by wheel, or on demand.
type PullToRefresh struct {
	id       int
	ctrl     *refresh.Controller
	action   refresh.Action
	viewport viewport.Model
	keys     PullKeyMap
	theme    styles.Theme
	logger   *slog.Logger

	rowHeight float64
	timeout   time.Duration
	frames    []string

	// Animation loop
	looping   bool
	loopGen   int
	lastFrame time.Time

	// Refresh runs; completions from older runs are dropped
	runGen int

	// Gesture tracking
	gesture    gesture
	dragStartY int
	wheelRows  int
	wheelSeq   int

	startRefreshing bool
	width           int
	height          int
}

// PullOption configures a PullToRefresh
type PullOption func(*PullToRefresh)

// WithRefreshing starts a refresh as soon as the container initialises
func WithRefreshing(refreshing bool) PullOption {
	return func(p *PullToRefresh) { p.startRefreshing = refreshing }
}

// WithController tunes the gesture distances and animation timings
func WithController(cfg refresh.Config) PullOption {
	return func(p *PullToRefresh) { p.ctrl = refresh.New(cfg) }
}

// WithRowHeight sets how many points one terminal row of pull is worth
func WithRowHeight(points float64) PullOption {
	return func(p *PullToRefresh) {
		if points > 0 {
			p.rowHeight = points
		}
	}
}

// WithTimeout bounds each run of the refresh action
func WithTimeout(d time.Duration) PullOption {
	return func(p *PullToRefresh) {
		if d > 0 {
			p.timeout = d
		}
	}
}

// WithLogger sets the logger that records swallowed refresh failures
func WithLogger(logger *slog.Logger) PullOption {
	return func(p *PullToRefresh) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithTheme sets the indicator colors
func WithTheme(theme styles.Theme) PullOption {
	return func(p *PullToRefresh) { p.theme = theme }
}

// NewPullToRefresh wraps content that action refreshes
func NewPullToRefresh(action refresh.Action, opts ...PullOption) *PullToRefresh {
	p := &PullToRefresh{
		id:        nextPullID(),
		ctrl:      refresh.New(refresh.Config{}),
		action:    action,
		viewport:  viewport.New(0, 0),
		keys:      PullKeys,
		theme:     styles.NewTheme(false),
		logger:    slog.Default(),
		rowHeight: DefaultRowHeight,
		timeout:   DefaultRefreshTimeout,
		frames:    spinner.MiniDot.Frames,
	}
	// Mouse wheel is handled here so it can turn into a pull at the top
	p.viewport.MouseWheelEnabled = false
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Init starts the initial refresh when requested
func (p *PullToRefresh) Init() tea.Cmd {
	if !p.startRefreshing {
		return nil
	}
	p.startRefreshing = false
	return p.Refresh()
}

// Refresh starts a refresh without a gesture. It returns nil when one is
// already running.
func (p *PullToRefresh) Refresh() tea.Cmd {
	if !p.ctrl.Trigger() {
		return nil
	}
	p.gesture = gestureNone
	return tea.Batch(p.runAction(), p.startLoop())
}

// Update handles gestures, keys and the container's own messages
func (p *PullToRefresh) Update(msg tea.Msg) (*PullToRefresh, tea.Cmd) {
	switch msg := msg.(type) {
	case pullFrameMsg:
		if msg.id != p.id || msg.gen != p.loopGen || !p.looping {
			return p, nil
		}
		return p, p.frame(msg.time)

	case pullDoneMsg:
		if msg.id != p.id || msg.gen != p.runGen {
			return p, nil
		}
		if msg.err != nil {
			p.logger.Debug("refresh failed", "error", msg.err)
		}
		p.ctrl.Complete(msg.err)
		return p, p.startLoop()

	case wheelSettleMsg:
		if msg.id != p.id || msg.seq != p.wheelSeq || p.gesture != gestureWheel {
			return p, nil
		}
		return p, p.release(float64(p.wheelRows) * p.rowHeight)

	case tea.MouseMsg:
		return p, p.handleMouse(msg)

	case tea.KeyMsg:
		return p, p.handleKey(msg)
	}
	return p, nil
}

func (p *PullToRefresh) handleKey(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, p.keys.Refresh) {
		return p.Refresh()
	}
	if p.ctrl.ScrollLocked() {
		return nil
	}

	switch {
	case key.Matches(msg, p.keys.Up):
		p.scrollBy(-1)
	case key.Matches(msg, p.keys.Down):
		p.scrollBy(1)
	case key.Matches(msg, p.keys.PageUp):
		p.scrollBy(-max(1, p.viewport.Height/2))
	case key.Matches(msg, p.keys.PageDown):
		p.scrollBy(max(1, p.viewport.Height/2))
	case key.Matches(msg, p.keys.Top):
		p.viewport.GotoTop()
	case key.Matches(msg, p.keys.Bottom):
		p.viewport.GotoBottom()
	}
	return nil
}

func (p *PullToRefresh) handleMouse(msg tea.MouseMsg) tea.Cmd {
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		return p.wheel(1)
	case tea.MouseButtonWheelDown:
		return p.wheel(-1)
	case tea.MouseButtonLeft:
		switch msg.Action {
		case tea.MouseActionPress:
			if p.gesture != gestureNone || !p.viewport.AtTop() || !p.ctrl.BeginDrag() {
				return nil
			}
			p.gesture = gestureDrag
			p.dragStartY = msg.Y
			return nil
		case tea.MouseActionMotion:
			if p.gesture == gestureDrag {
				p.ctrl.Drag(p.dragDistance(msg.Y))
			}
			return nil
		}
	}

	// Release arrives with no button on most terminals
	if msg.Action == tea.MouseActionRelease && p.gesture == gestureDrag {
		return p.release(p.dragDistance(msg.Y))
	}
	return nil
}

func (p *PullToRefresh) dragDistance(y int) float64 {
	return math.Max(0, float64(y-p.dragStartY)*p.rowHeight)
}

// wheel turns wheel input at the top of the content into a pull
func (p *PullToRefresh) wheel(rows int) tea.Cmd {
	if p.gesture == gestureDrag {
		return nil
	}
	if p.gesture == gestureNone {
		// Wheel up while a cancelled pull springs back picks the pull up again.
		resume := rows > 0 && p.ctrl.Phase() == refresh.Idle && p.ctrl.Offset() > 0
		if !resume {
			if p.ctrl.ScrollLocked() {
				return nil
			}
			if rows < 0 || !p.viewport.AtTop() {
				p.scrollBy(-rows * p.viewport.MouseWheelDelta)
				return nil
			}
		}
		offset := p.ctrl.Offset()
		if !p.ctrl.BeginDrag() {
			return nil
		}
		p.gesture = gestureWheel
		p.wheelRows = int(math.Round(offset / p.rowHeight))
	}

	p.wheelRows = max(0, p.wheelRows+rows)
	p.ctrl.Drag(float64(p.wheelRows) * p.rowHeight)
	p.wheelSeq++
	seq, id := p.wheelSeq, p.id
	return tea.Tick(WheelSettle, func(time.Time) tea.Msg {
		return wheelSettleMsg{id: id, seq: seq}
	})
}

func (p *PullToRefresh) scrollBy(lines int) {
	p.viewport.SetYOffset(p.viewport.YOffset + lines)
}

func (p *PullToRefresh) release(distance float64) tea.Cmd {
	p.gesture = gestureNone
	p.wheelRows = 0
	if p.ctrl.Release(distance) {
		return tea.Batch(p.runAction(), p.startLoop())
	}
	return p.startLoop()
}

// runAction invokes the refresh action off the update loop
func (p *PullToRefresh) runAction() tea.Cmd {
	p.runGen++
	id, gen := p.id, p.runGen
	action, timeout := p.action, p.timeout

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return pullDoneMsg{id: id, gen: gen, err: refresh.Await(ctx, action)}
	}
}

func (p *PullToRefresh) startLoop() tea.Cmd {
	if p.looping || !p.ctrl.Animating() {
		return nil
	}
	p.looping = true
	p.loopGen++
	p.lastFrame = time.Now()
	return p.tick()
}

func (p *PullToRefresh) tick() tea.Cmd {
	id, gen := p.id, p.loopGen
	return tea.Tick(FrameInterval, func(t time.Time) tea.Msg {
		return pullFrameMsg{id: id, gen: gen, time: t}
	})
}

func (p *PullToRefresh) frame(now time.Time) tea.Cmd {
	dt := now.Sub(p.lastFrame)
	p.lastFrame = now
	if dt > maxFrameStep {
		dt = maxFrameStep
	}
	p.ctrl.Advance(dt)

	if !p.ctrl.Animating() {
		p.looping = false
		return nil
	}
	return p.tick()
}

// SetContent replaces the hosted content
func (p *PullToRefresh) SetContent(content string) {
	p.viewport.SetContent(content)
}

// SetSize sets the container's outer size
func (p *PullToRefresh) SetSize(width, height int) {
	p.width = width
	p.height = height
	p.viewport.Width = width
	p.viewport.Height = height
}

// SetTheme updates the indicator colors
func (p *PullToRefresh) SetTheme(theme styles.Theme) {
	p.theme = theme
}

// Controller exposes the gesture state, read-only by convention
func (p *PullToRefresh) Controller() *refresh.Controller {
	return p.ctrl
}

// Busy reports whether the refresh action is running
func (p *PullToRefresh) Busy() bool {
	return p.ctrl.InFlight()
}

// IndicatorRows is the number of rows the indicator currently occupies
func (p *PullToRefresh) IndicatorRows() int {
	return int(math.Round(p.ctrl.Offset() / p.rowHeight))
}

// View renders the indicator above the (shifted) content
func (p *PullToRefresh) View() string {
	rows := min(p.IndicatorRows(), p.height)
	if rows <= 0 {
		return p.viewport.View()
	}

	lines := make([]string, rows)
	for i := range lines {
		lines[i] = strings.Repeat(" ", max(p.width, 0))
	}
	lines[rows-1] = lipgloss.PlaceHorizontal(p.width, lipgloss.Center, p.indicator())

	content := strings.Split(p.viewport.View(), "\n")
	if keep := p.height - rows; keep < len(content) {
		content = content[:max(keep, 0)]
	}
	return strings.Join(append(lines, content...), "\n")
}

func (p *PullToRefresh) indicator() string {
	ctrl := p.ctrl

	glyph := "↓"
	caption := "pull to refresh"
	switch ctrl.Phase() {
	case refresh.Triggered, refresh.Refreshing:
		n := len(p.frames)
		glyph = p.frames[int(ctrl.RotationDegrees()/360*float64(n))%n]
		caption = "refreshing"
	case refresh.Resetting:
		glyph = p.frames[0]
		caption = ""
	default:
		if ctrl.Offset() > ctrl.Threshold() {
			glyph = "↑"
			caption = "release to refresh"
		}
	}

	style := p.theme.Indicator
	if ctrl.Opacity() < 0.5 {
		style = p.theme.Dim
	}
	if ctrl.Scale() >= 1.1 {
		glyph = " " + glyph + " "
	}
	if caption == "" {
		return style.Render(glyph)
	}
	return style.Render(glyph) + " " + p.theme.Subtitle.Render(caption)
}
