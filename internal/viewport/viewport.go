// Package viewport owns the affine transform that maps world space onto the
// visible frame, and keeps its zoom inside the configured bounds.
package viewport

import (
	"errors"
	"fmt"
	"math"

	"github.com/inamate/inamate/surface-go/internal/geom"
)

var ErrInvalidZoomRange = errors.New("invalid zoom range")

// Viewport is the world→screen transform of one surface. Only uniform scale
// and translation are ever applied.
type Viewport struct {
	m       geom.Matrix2D
	minZoom float64
	maxZoom float64
	size    geom.Point
}

// New creates a viewport at identity. The identity zoom is clamped into
// [minZoom, maxZoom].
func New(minZoom, maxZoom float64) (*Viewport, error) {
	if !(minZoom > 0) || !(maxZoom >= minZoom) || math.IsInf(maxZoom, 0) {
		return nil, fmt.Errorf("%w: min %v max %v", ErrInvalidZoomRange, minZoom, maxZoom)
	}
	v := &Viewport{minZoom: minZoom, maxZoom: maxZoom}
	z := v.Clamp(1)
	v.m = geom.ScaleTranslate(z, 0, 0)
	return v, nil
}

// Matrix returns the current transform.
func (v *Viewport) Matrix() geom.Matrix2D {
	return v.m
}

// SetMatrix replaces the transform. Non-finite matrices are rejected and the
// previous transform is kept.
func (v *Viewport) SetMatrix(m geom.Matrix2D) bool {
	if !m.IsFinite() || m.Zoom() <= 0 {
		return false
	}
	v.m = m
	return true
}

func (v *Viewport) Zoom() float64    { return v.m.Zoom() }
func (v *Viewport) MinZoom() float64 { return v.minZoom }
func (v *Viewport) MaxZoom() float64 { return v.maxZoom }

// Clamp returns z limited to the zoom bounds.
func (v *Viewport) Clamp(z float64) float64 {
	return math.Max(v.minZoom, math.Min(v.maxZoom, z))
}

// Resize records the visible frame size in screen pixels.
func (v *Viewport) Resize(size geom.Point) {
	v.size = size
}

// Size returns the visible frame size in screen pixels.
func (v *Viewport) Size() geom.Point {
	return v.size
}

// FrameCenter returns the center of the visible frame in screen space.
func (v *Viewport) FrameCenter() geom.Point {
	return v.size.Scale(0.5)
}

// FrameRect returns the visible frame in screen space.
func (v *Viewport) FrameRect() geom.Rect {
	return geom.Rect{Width: v.size.X, Height: v.size.Y}
}

// ScreenToWorld inverse-applies the transform: (p - translation) / zoom.
func (v *Viewport) ScreenToWorld(p geom.Point) geom.Point {
	z := v.m.Zoom()
	return geom.Point{X: (p.X - v.m[4]) / z, Y: (p.Y - v.m[5]) / v.m[3]}
}

// WorldToScreen applies the transform.
func (v *Viewport) WorldToScreen(p geom.Point) geom.Point {
	return v.m.TransformPoint(p)
}

// Pan moves the view by a screen-space delta. The delta is divided by the
// zoom before translating so the content follows the pointer 1:1.
func (v *Viewport) Pan(deltaScreen geom.Point) bool {
	return v.PanWorld(deltaScreen.Scale(1 / v.m.Zoom()))
}

// PanWorld moves the view by a delta already expressed in world units.
func (v *Viewport) PanWorld(deltaWorld geom.Point) bool {
	if !deltaWorld.IsFinite() || deltaWorld.AbsSum() == 0 {
		return false
	}
	return v.SetMatrix(v.m.TranslateBy(deltaWorld))
}

// ZoomAt scales the view by factor about a world-space pivot that stays
// fixed on screen. The factor is first reduced so the resulting zoom stays
// inside the bounds. Non-finite or non-positive factors are ignored.
func (v *Viewport) ZoomAt(pivotWorld geom.Point, factor float64) bool {
	if math.IsNaN(factor) || math.IsInf(factor, 0) || factor <= 0 || !pivotWorld.IsFinite() {
		return false
	}
	z := v.m.Zoom()
	f := v.Clamp(z*factor) / z
	if math.IsNaN(f) || math.IsInf(f, 0) || f == 1 {
		return false
	}
	return v.SetMatrix(v.m.ScaleAbout(pivotWorld, f))
}
