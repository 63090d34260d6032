package anim

import (
	"math"

	"github.com/inamate/inamate/surface-go/internal/geom"
)

// DefaultDamping is the fraction of the remaining distance covered per frame.
const DefaultDamping = 0.342

// Animator moves a transform toward a target by a fixed fraction of the
// remaining distance each frame. There is no velocity term, so every
// component decays monotonically and never overshoots.
type Animator struct {
	Damping float64
	// Settle thresholds for the translation (e, f) and the linear part
	// (a, b, c, d), in screen pixels and scale units respectively.
	TranslateEpsilon float64
	ScaleEpsilon     float64
	// MaxFrames forces a snap to target after this many steps. Zero means
	// no cap.
	MaxFrames int

	target geom.Matrix2D
	active bool
	frames int
}

// NewAnimator returns an idle animator.
func NewAnimator(damping, translateEpsilon float64) *Animator {
	return &Animator{
		Damping:          damping,
		TranslateEpsilon: translateEpsilon,
		ScaleEpsilon:     1e-3,
		MaxFrames:        240,
	}
}

// Start sets a new target and resets the frame count.
func (a *Animator) Start(target geom.Matrix2D) {
	a.target = target
	a.active = true
	a.frames = 0
}

// Stop abandons the current animation, leaving the live transform where it is.
func (a *Animator) Stop() {
	a.active = false
}

func (a *Animator) Active() bool          { return a.active }
func (a *Animator) Target() geom.Matrix2D { return a.target }
func (a *Animator) Frames() int           { return a.frames }

// Step advances cur one frame. It returns the new transform and whether the
// animation settled on this step; a settled result equals the target exactly.
func (a *Animator) Step(cur geom.Matrix2D) (geom.Matrix2D, bool) {
	if !a.active {
		return cur, true
	}
	a.frames++
	var next geom.Matrix2D
	for i := range cur {
		next[i] = cur[i] + (a.target[i]-cur[i])*a.Damping
	}
	if a.settled(next) || (a.MaxFrames > 0 && a.frames >= a.MaxFrames) {
		a.active = false
		return a.target, true
	}
	return next, false
}

func (a *Animator) settled(m geom.Matrix2D) bool {
	for i := range m {
		eps := a.ScaleEpsilon
		if i >= 4 {
			eps = a.TranslateEpsilon
		}
		if math.Abs(a.target[i]-m[i]) >= eps {
			return false
		}
	}
	return true
}

// FramesToSettle returns how many steps an animation from start to target
// takes with this animator's constants, without touching its state.
func (a *Animator) FramesToSettle(start, target geom.Matrix2D) int {
	sim := *a
	sim.Start(target)
	cur := start
	for {
		var done bool
		cur, done = sim.Step(cur)
		if done {
			return sim.frames
		}
	}
}
