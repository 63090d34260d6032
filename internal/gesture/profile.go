package gesture

import (
	"time"

	"github.com/inamate/inamate/surface-go/internal/anim"
)

var idleProfile = anim.Profile{Easing: anim.Linear}

var desktopProfiles = map[State]anim.Profile{
	Idle:           idleProfile,
	Overlay:        {Duration: 150 * time.Millisecond, Easing: anim.Linear},
	Selecting:      idleProfile,
	FullSize:       idleProfile,
	Panning:        {Duration: 150 * time.Millisecond, Easing: anim.Linear},
	MinimapPanning: {Duration: 150 * time.Millisecond, Easing: anim.Linear},
	Pinching:       {Duration: 200 * time.Millisecond, Easing: anim.Bezier{X1: 0, Y1: 0.55, X2: 0.25, Y2: 1}},
	Wheeling:       {Duration: 185 * time.Millisecond, Easing: anim.Bezier{X1: 0.1, Y1: 0.15, X2: 0.75, Y2: 1}},
	CenteringItem:  {Duration: 415 * time.Millisecond, Easing: anim.Bezier{X1: 0, Y1: 0.12, X2: 0.29, Y2: 1}},
	CenteringView:  {Duration: 415 * time.Millisecond, Easing: anim.Bezier{X1: 0, Y1: 0.1, X2: 0.05, Y2: 1}},
}

var mobileProfiles = map[State]anim.Profile{
	Idle:           idleProfile,
	Overlay:        {Duration: 120 * time.Millisecond, Easing: anim.Linear},
	Selecting:      idleProfile,
	FullSize:       idleProfile,
	Panning:        {Duration: 120 * time.Millisecond, Easing: anim.Linear},
	MinimapPanning: {Duration: 120 * time.Millisecond, Easing: anim.Linear},
	Pinching:       {Duration: 200 * time.Millisecond, Easing: anim.Bezier{X1: 0, Y1: 0.15, X2: 0.45, Y2: 1}},
	Wheeling:       {Duration: 500 * time.Millisecond, Easing: anim.Bezier{X1: 0, Y1: 0.55, X2: 0.25, Y2: 1}},
	CenteringItem:  {Duration: 600 * time.Millisecond, Easing: anim.Bezier{X1: 0, Y1: 0.67, X2: 0.045, Y2: 1}},
	CenteringView:  {Duration: 400 * time.Millisecond, Easing: anim.Bezier{X1: 0, Y1: 0.2, X2: 0.001, Y2: 1}},
}

// ProfileFor returns the transition renderers apply in state s. States
// without an entry use the idle profile.
func ProfileFor(s State, mobile bool) anim.Profile {
	table := desktopProfiles
	if mobile {
		table = mobileProfiles
	}
	if p, ok := table[s]; ok {
		return p
	}
	return idleProfile
}
