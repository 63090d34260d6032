// Package grid decides where rectangle edges snap on a periodic grid whose
// lines can be switched on and off per axis with a bit pattern.
package grid

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

var ErrInvalidPattern = errors.New("invalid grid pattern")

// Axis selects which bit pattern applies.
type Axis int

const (
	AxisX Axis = iota
	AxisY
)

func (a Axis) String() string {
	if a == AxisY {
		return "y"
	}
	return "x"
}

// Pattern is a grid of square cells. The line at integer index i along an
// axis is active iff bits[i mod len(bits)] == '1', using floor-mod so
// negative indices wrap the same way positive ones do.
type Pattern struct {
	CellSize float64
	X        string
	Y        string
}

// NewPattern validates and builds a pattern.
func NewPattern(cellSize float64, xPattern, yPattern string) (Pattern, error) {
	if !(cellSize > 0) || math.IsInf(cellSize, 0) {
		return Pattern{}, fmt.Errorf("%w: cell size %v", ErrInvalidPattern, cellSize)
	}
	for _, bits := range []string{xPattern, yPattern} {
		if bits == "" || strings.Trim(bits, "01") != "" {
			return Pattern{}, fmt.Errorf("%w: bits %q", ErrInvalidPattern, bits)
		}
	}
	return Pattern{CellSize: cellSize, X: xPattern, Y: yPattern}, nil
}

func (p Pattern) bits(axis Axis) string {
	if axis == AxisY {
		return p.Y
	}
	return p.X
}

// ModWrap is floor-mod: the result always lies in [0, n).
func ModWrap(i, n int) int {
	return (i%n + n) % n
}

// Active reports whether the line with the given index participates.
func (p Pattern) Active(index int, axis Axis) bool {
	bits := p.bits(axis)
	if bits == "" {
		return false
	}
	return bits[ModWrap(index, len(bits))] == '1'
}

// Nearest returns the grid line closest to v and its index. Halves round
// towards +Inf so the choice does not depend on the sign of v.
func (p Pattern) Nearest(v float64) (float64, int) {
	i := int(math.Floor(v/p.CellSize + 0.5))
	return float64(i) * p.CellSize, i
}
