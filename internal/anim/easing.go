package anim

import (
	"strconv"
	"time"
)

// Bezier is a CSS-style cubic-bezier timing curve through (0,0), (X1,Y1),
// (X2,Y2) and (1,1).
type Bezier struct {
	X1, Y1, X2, Y2 float64
}

var Linear = Bezier{0, 0, 1, 1}

// Profile is the transition a renderer applies while the surface is in a
// given state.
type Profile struct {
	Duration time.Duration `json:"duration"`
	Easing   Bezier        `json:"easing"`
}

// CSS formats the profile as a CSS transition timing.
func (p Profile) CSS() string {
	return "transform " + ftoa(float64(p.Duration.Milliseconds())) + "ms " + p.Easing.String()
}

func (b Bezier) String() string {
	return "cubic-bezier(" + ftoa(b.X1) + "," + ftoa(b.Y1) + "," + ftoa(b.X2) + "," + ftoa(b.Y2) + ")"
}

func (b Bezier) sample(t float64) (x, y float64) {
	mt := 1 - t
	k1 := 3 * mt * mt * t
	k2 := 3 * mt * t * t
	k3 := t * t * t
	return k1*b.X1 + k2*b.X2 + k3, k1*b.Y1 + k2*b.Y2 + k3
}

// At evaluates the curve's progress at time fraction x in [0, 1]. The curve
// parameter is found by bisection since x(t) is monotonic for x1, x2 in
// [0, 1].
func (b Bezier) At(x float64) float64 {
	if x <= 0 {
		return 0
	}
	if x >= 1 {
		return 1
	}
	lo, hi := 0.0, 1.0
	t := x
	for i := 0; i < 40; i++ {
		sx, _ := b.sample(t)
		if sx < x {
			lo = t
		} else {
			hi = t
		}
		t = (lo + hi) / 2
	}
	_, y := b.sample(t)
	return y
}

func ftoa(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
