package gesture

import (
	"math"

	"github.com/inamate/inamate/surface-go/internal/geom"
)

// minPinchDistance is the smallest pointer spread a pinch frame is computed
// from. Closer contacts are treated as a degenerate frame and skipped.
const minPinchDistance = 1e-6

// Pinch is the baseline of a two-finger zoom: the pointer distance and the
// transform at gesture start, and the world point under the initial
// midpoint. The pivot stays fixed for the whole gesture.
type Pinch struct {
	StartDistance float64
	StartMatrix   geom.Matrix2D
	PivotWorld    geom.Point

	active bool
}

// Active reports whether a baseline has been captured.
func (p *Pinch) Active() bool {
	return p.active
}

// Begin captures the baseline from the two pointers a and b.
func (p *Pinch) Begin(a, b geom.Point, m geom.Matrix2D) bool {
	d := a.Distance(b)
	if !(d > minPinchDistance) || !m.IsFinite() {
		return false
	}
	p.StartDistance = d
	p.StartMatrix = m
	p.PivotWorld = m.Invert().TransformPoint(a.Mid(b))
	p.active = true
	return true
}

// Reset drops the baseline.
func (p *Pinch) Reset() {
	*p = Pinch{}
}

// Transform returns the transform for the current pointer positions: zoom
// scales with the distance ratio and is clamped, and the pivot world point
// is placed under the current midpoint. It reports false for degenerate
// frames.
func (p *Pinch) Transform(a, b geom.Point, minZoom, maxZoom float64) (geom.Matrix2D, bool) {
	if !p.active {
		return geom.Matrix2D{}, false
	}
	d := a.Distance(b)
	if !(d > minPinchDistance) {
		return geom.Matrix2D{}, false
	}
	z := p.StartMatrix.Zoom() * d / p.StartDistance
	z = math.Max(minZoom, math.Min(maxZoom, z))
	mid := a.Mid(b)
	m := geom.ScaleTranslate(z, mid.X-p.PivotWorld.X*z, mid.Y-p.PivotWorld.Y*z)
	if !m.IsFinite() {
		return geom.Matrix2D{}, false
	}
	return m, true
}
