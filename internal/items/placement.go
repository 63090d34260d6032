package items

import (
	"fmt"
	"strings"

	"github.com/inamate/inamate/surface-go/internal/geom"
)

// Placement is the persisted form of an item: four numeric fields in world
// units. Every field is required; a missing one is a registration error,
// never a silent zero.
type Placement struct {
	ID     string   `json:"id"`
	Left   *float64 `json:"left"`
	Top    *float64 `json:"top"`
	Width  *float64 `json:"width"`
	Height *float64 `json:"height"`
}

// PlacementOf builds the persisted form of a rect.
func PlacementOf(id string, r geom.Rect) Placement {
	return Placement{ID: id, Left: &r.X, Top: &r.Y, Width: &r.Width, Height: &r.Height}
}

// Rect validates the placement and returns it as a rect.
func (p Placement) Rect() (geom.Rect, error) {
	var missing []string
	if p.Left == nil {
		missing = append(missing, "left")
	}
	if p.Top == nil {
		missing = append(missing, "top")
	}
	if p.Width == nil {
		missing = append(missing, "width")
	}
	if p.Height == nil {
		missing = append(missing, "height")
	}
	if len(missing) > 0 {
		return geom.Rect{}, fmt.Errorf("%w: item %q lacks %s", ErrMissingPlacement, p.ID, strings.Join(missing, ", "))
	}
	r := geom.Rect{X: *p.Left, Y: *p.Top, Width: *p.Width, Height: *p.Height}
	if !r.IsFinite() || r.Width < 0 || r.Height < 0 {
		return geom.Rect{}, fmt.Errorf("%w: item %q has rect %+v", ErrInvalidRect, p.ID, r)
	}
	return r, nil
}
