// Package refresh implements the pull-to-refresh controller: a vertical drag
// past a trigger distance starts a caller-supplied refresh action, parks an
// indicator while it runs, and animates everything back once it settles.
package refresh

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"
)

// Phase is the controller's position in a refresh cycle.
type Phase int

const (
	Idle Phase = iota
	Triggered
	Refreshing
	Resetting
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Triggered:
		return "triggered"
	case Refreshing:
		return "refreshing"
	case Resetting:
		return "resetting"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// Defaults mirror the touch version of the gesture (distances in points).
const (
	DefaultTriggerDistance  = 60
	DefaultParkedHeight     = 80
	DefaultParkDuration     = 200 * time.Millisecond
	DefaultResetDuration    = 300 * time.Millisecond
	DefaultCollapseDuration = 200 * time.Millisecond
	DefaultSpinPeriod       = time.Second
)

// ErrActionPanicked wraps a panic recovered from a refresh action.
var ErrActionPanicked = errors.New("refresh action panicked")

// Action is the caller-owned refresh operation.
type Action func(ctx context.Context) error

// Config holds the controller's distances and timings. Zero values take defaults.
type Config struct {
	TriggerDistance  float64
	ParkedHeight     float64
	ParkDuration     time.Duration
	ResetDuration    time.Duration
	CollapseDuration time.Duration
	SpinPeriod       time.Duration
}

func (c Config) withDefaults() Config {
	if c.TriggerDistance <= 0 {
		c.TriggerDistance = DefaultTriggerDistance
	}
	if c.ParkedHeight <= 0 {
		c.ParkedHeight = DefaultParkedHeight
	}
	if c.ParkDuration <= 0 {
		c.ParkDuration = DefaultParkDuration
	}
	if c.ResetDuration <= 0 {
		c.ResetDuration = DefaultResetDuration
	}
	if c.CollapseDuration <= 0 {
		c.CollapseDuration = DefaultCollapseDuration
	}
	if c.SpinPeriod <= 0 {
		c.SpinPeriod = DefaultSpinPeriod
	}
	return c
}

// Controller tracks a single pull-to-refresh surface. It is not safe for
// concurrent use; the host drives it from its event loop.
type Controller struct {
	cfg Config

	phase    Phase
	dragging bool
	inFlight bool

	offset   float64
	scale    float64 // indicator grow factor, 0..1
	rotation float64 // turns, 0..1
	spinning bool

	offsetMotion   motion
	scaleMotion    motion
	rotationMotion motion

	observers []func(from, to Phase)
}

// New creates an idle controller.
func New(cfg Config) *Controller {
	return &Controller{cfg: cfg.withDefaults()}
}

// Config returns the effective configuration.
func (c *Controller) Config() Config { return c.cfg }

// OnPhaseChange registers fn to be called on every phase transition.
func (c *Controller) OnPhaseChange(fn func(from, to Phase)) {
	c.observers = append(c.observers, fn)
}

// BeginDrag starts a gesture. Gestures are refused outside Idle.
func (c *Controller) BeginDrag() bool {
	if c.phase != Idle || c.inFlight {
		return false
	}
	c.dragging = true
	// The pointer takes over from any spring still running.
	c.offsetMotion = nil
	return true
}

// Drag updates the live offset with the displacement since the gesture began.
func (c *Controller) Drag(distance float64) {
	if !c.dragging || c.phase != Idle {
		return
	}
	c.offset = math.Max(0, distance)
}

// CancelDrag abandons a gesture without a drag-end, springing back to rest.
func (c *Controller) CancelDrag() {
	if !c.dragging {
		return
	}
	c.dragging = false
	c.collapse()
}

// Release handles the drag-end event carrying the total displacement. It
// reports whether a refresh was started; the caller must then run the action
// exactly once and report back through Complete.
func (c *Controller) Release(distance float64) bool {
	if c.phase != Idle || c.inFlight {
		return false
	}
	c.dragging = false
	c.offset = math.Max(0, distance)

	if distance > c.cfg.TriggerDistance {
		c.start()
		return true
	}
	c.collapse()
	return false
}

// Trigger starts a refresh without a gesture.
func (c *Controller) Trigger() bool {
	if c.phase != Idle || c.inFlight {
		return false
	}
	c.dragging = false
	c.start()
	return true
}

// Complete reports that the refresh action settled. The outcome is not
// inspected: success and failure both reset the surface.
func (c *Controller) Complete(error) {
	if c.phase != Refreshing {
		return
	}
	c.inFlight = false
	c.spinning = false
	c.setPhase(Resetting)
	c.offsetMotion = newTween(c.offset, 0, c.cfg.ResetDuration)
	c.scaleMotion = newTween(c.scale, 0, c.cfg.ResetDuration)
	c.rotationMotion = newTween(c.rotation, 0, c.cfg.ResetDuration)
}

// Advance steps every running animation by dt and reports whether another
// frame is needed.
func (c *Controller) Advance(dt time.Duration) bool {
	if dt < 0 {
		dt = 0
	}
	if c.spinning {
		c.rotation = math.Mod(c.rotation+float64(dt)/float64(c.cfg.SpinPeriod), 1)
	}
	c.offset, c.offsetMotion = stepMotion(c.offset, c.offsetMotion, dt)
	c.scale, c.scaleMotion = stepMotion(c.scale, c.scaleMotion, dt)
	c.rotation, c.rotationMotion = stepMotion(c.rotation, c.rotationMotion, dt)

	if c.phase == Resetting && c.offsetMotion == nil && c.scaleMotion == nil && c.rotationMotion == nil {
		c.offset, c.scale, c.rotation = 0, 0, 0
		c.setPhase(Idle)
	}
	return c.Animating()
}

// Animating reports whether Advance still has work to do.
func (c *Controller) Animating() bool {
	return c.spinning || c.phase == Resetting ||
		c.offsetMotion != nil || c.scaleMotion != nil || c.rotationMotion != nil
}

// Phase is the current lifecycle phase.
func (c *Controller) Phase() Phase { return c.phase }

// Offset is the current pull distance in points.
func (c *Controller) Offset() float64 { return c.offset }

// Dragging reports whether a gesture is in progress.
func (c *Controller) Dragging() bool { return c.dragging }

// InFlight reports whether the refresh action has not yet completed.
func (c *Controller) InFlight() bool { return c.inFlight }

// Threshold is the distance a release must exceed to refresh.
func (c *Controller) Threshold() float64 { return c.cfg.TriggerDistance }

// ScrollLocked reports whether the content region must ignore scroll input.
// Pull and scroll are exclusive until the offset is back at rest.
func (c *Controller) ScrollLocked() bool {
	return c.dragging || c.phase != Idle || c.offset > 0
}

// PullProgress is the offset as a fraction of the trigger distance.
func (c *Controller) PullProgress() float64 {
	return clamp01(c.offset / c.cfg.TriggerDistance)
}

// Opacity of the indicator: 0 at rest, 0.5 halfway to the trigger, 1 beyond it.
func (c *Controller) Opacity() float64 {
	return c.PullProgress()
}

// Scale of the indicator glyph, 0.8 collapsed to 1.2 parked.
func (c *Controller) Scale() float64 {
	return 0.8 + 0.4*clamp01(c.scale)
}

// RotationDegrees of the indicator; it only turns while refreshing.
func (c *Controller) RotationDegrees() float64 {
	if c.phase != Refreshing {
		return 0
	}
	return c.rotation * 360
}

// Await runs action and always returns, converting a panic into an error.
func Await(ctx context.Context, action Action) (err error) {
	if action == nil {
		return nil
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrActionPanicked, r)
		}
	}()
	return action(ctx)
}

func (c *Controller) start() {
	c.setPhase(Triggered)
	c.offsetMotion = newTween(c.offset, c.cfg.ParkedHeight, c.cfg.ParkDuration)
	c.scaleMotion = newTween(c.scale, 1, c.cfg.ParkDuration)
	c.rotationMotion = nil
	c.rotation = 0
	c.spinning = true
	c.inFlight = true
	c.setPhase(Refreshing)
}

func (c *Controller) collapse() {
	c.offsetMotion = newSpring(c.offset)
	c.scaleMotion = newTween(c.scale, 0, c.cfg.CollapseDuration)
}

func (c *Controller) setPhase(p Phase) {
	if p == c.phase {
		return
	}
	from := c.phase
	c.phase = p
	for _, fn := range c.observers {
		fn(from, p)
	}
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
