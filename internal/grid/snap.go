package grid

import (
	"math"

	"github.com/inamate/inamate/surface-go/internal/geom"
)

// SnapEdge snaps a single edge position. The nearest grid line is used only
// when it is active and strictly closer than CellSize*threshold.
func (p Pattern) SnapEdge(v float64, axis Axis, threshold float64) (float64, bool) {
	s, i := p.Nearest(v)
	if !p.Active(i, axis) {
		return v, false
	}
	if math.Abs(s-v) < p.CellSize*threshold {
		return s, true
	}
	return v, false
}

// Snap is SnapEdge without the hit flag.
func (p Pattern) Snap(v float64, axis Axis, threshold float64) float64 {
	s, _ := p.SnapEdge(v, axis, threshold)
	return s
}

// snapSpan positions a span [start, start+size] so that either its leading
// or trailing edge sits on a grid line. Each edge is evaluated on its own;
// when both qualify the nearer one wins and ties go to the leading edge.
func (p Pattern) snapSpan(start, size float64, axis Axis, threshold float64) float64 {
	end := start + size
	sa, okA := p.SnapEdge(start, axis, threshold)
	sb, okB := p.SnapEdge(end, axis, threshold)
	switch {
	case okA && okB:
		if math.Abs(sb-end) < math.Abs(sa-start) {
			return sb - size
		}
		return sa
	case okA:
		return sa
	case okB:
		return sb - size
	}
	return start
}

// SnapMove snaps the position of a rect being moved, keeping its size.
func (p Pattern) SnapMove(r geom.Rect, threshold float64) geom.Rect {
	r.X = p.snapSpan(r.X, r.Width, AxisX, threshold)
	r.Y = p.snapSpan(r.Y, r.Height, AxisY, threshold)
	return r
}

// SnapResize snaps the bottom-right corner of a rect being resized and
// derives its new size, never smaller than minSize on either axis.
func (p Pattern) SnapResize(r geom.Rect, corner geom.Point, threshold, minSize float64) geom.Rect {
	x := p.Snap(corner.X, AxisX, threshold)
	y := p.Snap(corner.Y, AxisY, threshold)
	r.Width = math.Max(minSize, x-r.X)
	r.Height = math.Max(minSize, y-r.Y)
	return r
}
