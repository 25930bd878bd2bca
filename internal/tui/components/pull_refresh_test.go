package components

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/fitdeck/internal/log"
	"github.com/mmcdole/fitdeck/internal/refresh"
	"github.com/mmcdole/fitdeck/internal/tui/styles"
)

func longContent(lines int) string {
	rows := make([]string, lines)
	for i := range rows {
		rows[i] = "row"
	}
	return strings.Join(rows, "\n")
}

func newTestPull(t *testing.T, action refresh.Action, opts ...PullOption) *PullToRefresh {
	t.Helper()
	p := NewPullToRefresh(action, append([]PullOption{WithTheme(styles.NewTheme(false))}, opts...)...)
	p.SetSize(40, 10)
	p.SetContent(longContent(50))
	return p
}

func counting(calls *atomic.Int32, err error) refresh.Action {
	return func(context.Context) error {
		calls.Add(1)
		return err
	}
}

// collect runs cmd and returns the messages it produces, expanding batches.
// Frame and settle ticks are skipped; tests drive those directly.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	switch msg.(type) {
	case pullFrameMsg, wheelSettleMsg:
		return nil
	}
	return []tea.Msg{msg}
}

func deliver(p *PullToRefresh, msgs []tea.Msg) {
	for _, msg := range msgs {
		p.Update(msg)
	}
}

// animate feeds frames until the loop stops
func animate(t *testing.T, p *PullToRefresh) {
	t.Helper()
	for i := 0; p.looping; i++ {
		if i > 1000 {
			t.Fatalf("animation never settled: phase=%s offset=%v", p.ctrl.Phase(), p.ctrl.Offset())
		}
		p.Update(pullFrameMsg{id: p.id, gen: p.loopGen, time: p.lastFrame.Add(FrameInterval)})
	}
}

func wheelUp() tea.MouseMsg {
	return tea.MouseMsg{Button: tea.MouseButtonWheelUp, Action: tea.MouseActionPress}
}

func keyPress(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func settleWheel(p *PullToRefresh) tea.Cmd {
	_, cmd := p.Update(wheelSettleMsg{id: p.id, seq: p.wheelSeq})
	return cmd
}

func TestWheelPullBelowThresholdCollapses(t *testing.T) {
	var calls atomic.Int32
	p := newTestPull(t, counting(&calls, nil))

	p.Update(wheelUp())
	p.Update(wheelUp())
	if !p.ctrl.Dragging() || p.ctrl.Offset() != 40 {
		t.Fatalf("after two wheel rows: dragging=%v offset=%v", p.ctrl.Dragging(), p.ctrl.Offset())
	}
	if !strings.Contains(p.View(), "pull to refresh") {
		t.Errorf("view missing pull caption:\n%s", p.View())
	}

	deliver(p, collect(settleWheel(p)))
	if p.ctrl.Phase() != refresh.Idle || p.Busy() {
		t.Fatalf("phase = %s after short pull", p.ctrl.Phase())
	}
	animate(t, p)
	if p.ctrl.Offset() != 0 || p.IndicatorRows() != 0 {
		t.Fatalf("offset = %v after collapse", p.ctrl.Offset())
	}
	if calls.Load() != 0 {
		t.Fatalf("action ran %d times for a short pull", calls.Load())
	}
}

func TestWheelResumesCollapsingPull(t *testing.T) {
	var calls atomic.Int32
	p := newTestPull(t, counting(&calls, nil))

	p.Update(wheelUp())
	p.Update(wheelUp())
	deliver(p, collect(settleWheel(p)))
	p.Update(pullFrameMsg{id: p.id, gen: p.loopGen, time: p.lastFrame.Add(FrameInterval)})

	before := p.ctrl.Offset()
	if before <= 0 || p.ctrl.Dragging() {
		t.Fatalf("expected a collapsing pull: offset=%v dragging=%v", before, p.ctrl.Dragging())
	}

	p.Update(wheelUp())
	if !p.ctrl.Dragging() || p.ctrl.Offset() <= before {
		t.Fatalf("wheel did not resume the pull: offset=%v (was %v) dragging=%v",
			p.ctrl.Offset(), before, p.ctrl.Dragging())
	}

	// Three more rows carry it past the threshold
	for range 3 {
		p.Update(wheelUp())
	}
	deliver(p, collect(settleWheel(p)))
	if calls.Load() != 1 {
		t.Fatalf("action ran %d times, want 1", calls.Load())
	}
	animate(t, p)
	if p.ctrl.Phase() != refresh.Idle || p.ctrl.Offset() != 0 {
		t.Fatalf("not reset: phase=%s offset=%v", p.ctrl.Phase(), p.ctrl.Offset())
	}
}

func TestWheelPullPastThresholdRefreshes(t *testing.T) {
	var calls atomic.Int32
	p := newTestPull(t, counting(&calls, nil))

	for range 4 {
		p.Update(wheelUp())
	}
	if !strings.Contains(p.View(), "release to refresh") {
		t.Errorf("view missing release caption:\n%s", p.View())
	}

	msgs := collect(settleWheel(p))
	if p.ctrl.Phase() != refresh.Refreshing || !p.Busy() {
		t.Fatalf("phase = %s, busy = %v", p.ctrl.Phase(), p.Busy())
	}
	if !strings.Contains(p.View(), "refreshing") {
		t.Errorf("view missing refreshing caption:\n%s", p.View())
	}

	deliver(p, msgs)
	if calls.Load() != 1 {
		t.Fatalf("action ran %d times, want 1", calls.Load())
	}
	if p.ctrl.Phase() != refresh.Resetting {
		t.Fatalf("phase after completion = %s, want resetting", p.ctrl.Phase())
	}

	animate(t, p)
	if p.ctrl.Phase() != refresh.Idle || p.ctrl.Offset() != 0 {
		t.Fatalf("not reset: phase=%s offset=%v", p.ctrl.Phase(), p.ctrl.Offset())
	}
}

func TestMouseDragRefreshes(t *testing.T) {
	var calls atomic.Int32
	p := newTestPull(t, counting(&calls, nil))

	p.Update(tea.MouseMsg{Y: 2, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
	p.Update(tea.MouseMsg{Y: 4, Button: tea.MouseButtonLeft, Action: tea.MouseActionMotion})
	if p.ctrl.Offset() != 40 {
		t.Fatalf("offset = %v, want 40", p.ctrl.Offset())
	}
	p.Update(tea.MouseMsg{Y: 6, Button: tea.MouseButtonLeft, Action: tea.MouseActionMotion})
	_, cmd := p.Update(tea.MouseMsg{Y: 6, Button: tea.MouseButtonNone, Action: tea.MouseActionRelease})

	if !p.Busy() {
		t.Fatal("release past threshold did not start a refresh")
	}
	deliver(p, collect(cmd))
	animate(t, p)
	if calls.Load() != 1 || p.ctrl.Phase() != refresh.Idle {
		t.Fatalf("calls=%d phase=%s", calls.Load(), p.ctrl.Phase())
	}
}

func TestRefreshWhileBusyIsIgnored(t *testing.T) {
	var calls atomic.Int32
	p := newTestPull(t, counting(&calls, nil))

	cmd := p.Refresh()
	if cmd == nil {
		t.Fatal("first Refresh returned nil")
	}
	if again := p.Refresh(); again != nil {
		t.Fatal("second Refresh started another run")
	}
	if _, c := p.Update(keyPress("r")); c != nil {
		t.Fatal("r key started another run")
	}
	p.Update(wheelUp())
	if p.ctrl.Dragging() {
		t.Fatal("wheel began a pull during refresh")
	}

	deliver(p, collect(cmd))
	if calls.Load() != 1 {
		t.Fatalf("action ran %d times, want 1", calls.Load())
	}
}

func TestFailedRefreshIsSwallowed(t *testing.T) {
	var buf bytes.Buffer
	var calls atomic.Int32
	p := newTestPull(t, counting(&calls, errors.New("network down")),
		WithLogger(log.NewLogger(&buf, "DEBUG")))

	deliver(p, collect(p.Refresh()))
	if p.ctrl.Phase() != refresh.Resetting {
		t.Fatalf("phase = %s, want resetting", p.ctrl.Phase())
	}
	animate(t, p)
	if p.ctrl.Phase() != refresh.Idle {
		t.Fatalf("phase = %s, want idle", p.ctrl.Phase())
	}
	if !strings.Contains(buf.String(), "refresh failed") || !strings.Contains(buf.String(), "network down") {
		t.Fatalf("failure not logged: %s", buf.String())
	}
}

func TestPanickingRefreshStillResets(t *testing.T) {
	p := newTestPull(t, func(context.Context) error { panic("boom") })

	deliver(p, collect(p.Refresh()))
	animate(t, p)
	if p.ctrl.Phase() != refresh.Idle || p.Busy() {
		t.Fatalf("phase=%s busy=%v", p.ctrl.Phase(), p.Busy())
	}
}

func TestStaleCompletionIsIgnored(t *testing.T) {
	p := newTestPull(t, nil)

	p.Refresh()
	p.Update(pullDoneMsg{id: p.id, gen: p.runGen - 1})
	p.Update(pullDoneMsg{id: p.id + 1000, gen: p.runGen})
	if p.ctrl.Phase() != refresh.Refreshing {
		t.Fatalf("stale completion changed phase to %s", p.ctrl.Phase())
	}
}

func TestScrollLockedWhileRefreshing(t *testing.T) {
	p := newTestPull(t, nil)

	cmd := p.Refresh()
	p.Update(keyPress("j"))
	if p.viewport.YOffset != 0 {
		t.Fatalf("content scrolled during refresh: offset %d", p.viewport.YOffset)
	}

	deliver(p, collect(cmd))
	animate(t, p)
	p.Update(keyPress("j"))
	if p.viewport.YOffset != 1 {
		t.Fatalf("content did not scroll once idle: offset %d", p.viewport.YOffset)
	}

	// Wheel up away from the top scrolls instead of pulling
	p.Update(wheelUp())
	if p.ctrl.Dragging() || p.viewport.YOffset != 0 {
		t.Fatalf("wheel up: dragging=%v offset=%d", p.ctrl.Dragging(), p.viewport.YOffset)
	}
}

func TestInitialRefreshing(t *testing.T) {
	var calls atomic.Int32
	p := newTestPull(t, counting(&calls, nil), WithRefreshing(true))

	cmd := p.Init()
	if !p.Busy() || p.ctrl.Phase() != refresh.Refreshing {
		t.Fatalf("Init did not start refreshing: phase=%s", p.ctrl.Phase())
	}
	deliver(p, collect(cmd))
	animate(t, p)
	if calls.Load() != 1 || p.ctrl.Phase() != refresh.Idle {
		t.Fatalf("calls=%d phase=%s", calls.Load(), p.ctrl.Phase())
	}
	if p.Init() != nil {
		t.Fatal("second Init refreshed again")
	}
}

func TestStaleFrameIsIgnored(t *testing.T) {
	p := newTestPull(t, nil)

	cmd := p.Refresh()
	gen := p.loopGen
	deliver(p, collect(cmd))
	animate(t, p)

	before := p.ctrl.Offset()
	if _, next := p.Update(pullFrameMsg{id: p.id, gen: gen, time: time.Now()}); next != nil {
		t.Fatal("stale frame restarted the loop")
	}
	if p.ctrl.Offset() != before {
		t.Fatal("stale frame advanced the controller")
	}
}

func TestViewKeepsHeight(t *testing.T) {
	p := newTestPull(t, nil)
	for range 3 {
		p.Update(wheelUp())
	}
	if got := strings.Count(p.View(), "\n") + 1; got != 10 {
		t.Fatalf("view has %d lines, want 10", got)
	}
}
