package refresh

import (
	"math"
	"time"

	"github.com/charmbracelet/harmonica"
)

// motion drives one animated value toward its target.
type motion interface {
	step(dt time.Duration) (value float64, done bool)
}

func stepMotion(cur float64, m motion, dt time.Duration) (float64, motion) {
	if m == nil {
		return cur, nil
	}
	v, done := m.step(dt)
	if done {
		return v, nil
	}
	return v, m
}

// tween is a timed ease-in-out interpolation.
type tween struct {
	from, to float64
	elapsed  time.Duration
	duration time.Duration
}

func newTween(from, to float64, d time.Duration) *tween {
	return &tween{from: from, to: to, duration: d}
}

func (t *tween) step(dt time.Duration) (float64, bool) {
	t.elapsed += dt
	if t.duration <= 0 || t.elapsed >= t.duration {
		return t.to, true
	}
	p := float64(t.elapsed) / float64(t.duration)
	return t.from + (t.to-t.from)*easeInOut(p), false
}

func easeInOut(p float64) float64 {
	if p < 0.5 {
		return 4 * p * p * p
	}
	return 1 - math.Pow(-2*p+2, 3)/2
}

// Spring tuning for the release of a pull that did not reach the trigger.
const (
	springFPS       = 60
	springFrequency = 10.0
	springDamping   = 1.0 // critical, no overshoot past rest
	springSettle    = 0.5
)

// spring decays an offset back to zero on fixed harmonica frames.
type spring struct {
	s     harmonica.Spring
	pos   float64
	vel   float64
	carry time.Duration
}

func newSpring(from float64) *spring {
	return &spring{
		s:   harmonica.NewSpring(harmonica.FPS(springFPS), springFrequency, springDamping),
		pos: from,
	}
}

func (s *spring) step(dt time.Duration) (float64, bool) {
	frame := time.Second / springFPS
	s.carry += dt
	for s.carry >= frame {
		s.pos, s.vel = s.s.Update(s.pos, s.vel, 0)
		s.carry -= frame
	}
	if math.Abs(s.pos) < springSettle && math.Abs(s.vel) < springSettle {
		return 0, true
	}
	return math.Max(0, s.pos), false
}
