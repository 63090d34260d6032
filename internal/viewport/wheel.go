package viewport

import (
	"math"

	"github.com/inamate/inamate/surface-go/internal/geom"
)

// DeltaMode is the unit of a wheel delta.
type DeltaMode int

const (
	DeltaPixel DeltaMode = iota
	DeltaLine
	DeltaPage
)

// Wheel curve constants, tuned for a natural deceleration at high zoom.
const (
	wheelPixelMul = 1.12
	wheelLineMul  = 15
	wheelRate     = 0.0005
	wheelZoomExp  = 0.001
	wheelPower    = 2.08
)

// WheelFactor turns a wheel delta into a zoom factor:
//
//	z = (1 - sign(dy) * |dy| * mul * k * zoom^ε)^p
//
// The result may be NaN or Inf for extreme deltas; callers reject those.
func WheelFactor(deltaY float64, mode DeltaMode, zoom float64) float64 {
	mul := wheelPixelMul
	if mode == DeltaLine {
		mul = wheelLineMul
	}
	abs := math.Abs(deltaY) * mul
	sign := 0.0
	switch {
	case deltaY > 0:
		sign = 1
	case deltaY < 0:
		sign = -1
	}
	return math.Pow(1-abs*sign*wheelRate*math.Pow(zoom, wheelZoomExp), wheelPower)
}

// Wheel applies a wheel zoom about a world-space pivot. It is a no-op when
// the zoom already sits at the bound the wheel pushes towards, or when the
// factor is not finite.
func (v *Viewport) Wheel(deltaY float64, mode DeltaMode, pivotWorld geom.Point) bool {
	a := v.m.Zoom()
	z := WheelFactor(deltaY, mode, a)
	if math.IsNaN(z) || math.IsInf(z, 0) {
		return false
	}
	if (a <= v.minZoom && z <= 1) || (a >= v.maxZoom && z >= 1) {
		return false
	}
	return v.ZoomAt(pivotWorld, z)
}
