// Package anim computes centering targets and steps the live viewport
// transform toward them one frame at a time.
package anim

import (
	"math"

	"github.com/inamate/inamate/surface-go/internal/geom"
)

// Centering paddings, as a fraction of the target's larger side.
const (
	PaddingRect      = 0.12
	PaddingItem      = 0.075
	PaddingOtherItem = 0.35
	PaddingView      = 0.11
	PaddingInitial   = 0.25
)

// FrameTransform returns the transform that shows target centered in a
// frame of the given size. The target is padded by max(width, height) *
// paddingPct, and the resulting zoom is limited to [minZoom, maxZoom].
func FrameTransform(target geom.Rect, frame geom.Point, paddingPct, minZoom, maxZoom float64) geom.Matrix2D {
	padded := target.ScaleLinear(math.Max(target.Width, target.Height) * paddingPct)

	scale := maxZoom
	if padded.Width > 0 {
		scale = math.Min(scale, frame.X/padded.Width)
	}
	if padded.Height > 0 {
		scale = math.Min(scale, frame.Y/padded.Height)
	}
	scale = math.Max(minZoom, scale)

	c := padded.Center()
	return geom.ScaleTranslate(scale, frame.X/2-c.X*scale, frame.Y/2-c.Y*scale)
}
