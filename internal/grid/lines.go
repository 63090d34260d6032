package grid

import "math"

// maxLines bounds the work of one Lines call at extreme zoom-out.
const maxLines = 4096

// LineWidth is the stroke width renderers use for grid lines at zoom.
func LineWidth(zoom float64) float64 {
	return math.Min(1, math.Pow(zoom, 1.25)*0.28)
}

// Lines returns the screen positions of the active grid lines crossing
// [0, extent) along one axis, given the view's zoom and translation on that
// axis. Nothing is returned when the lines would be too thin to draw.
func (p Pattern) Lines(axis Axis, offset, zoom, extent float64) []float64 {
	if LineWidth(zoom) < 0.01 {
		return nil
	}
	step := zoom * p.CellSize
	if !(step > 0) || math.IsInf(step, 0) {
		return nil
	}
	first := int(math.Floor(-offset / step))
	var lines []float64
	for i := first; len(lines) < maxLines; i++ {
		pos := offset + float64(i)*step
		if pos >= extent {
			break
		}
		if pos < 0 || !p.Active(i, axis) {
			continue
		}
		lines = append(lines, pos)
	}
	return lines
}
