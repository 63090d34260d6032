// Package items tracks the rectangles of the items placed on a surface.
// The registry does not own item contents, only their geometry and
// stacking order.
package items

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/inamate/inamate/surface-go/internal/geom"
)

var (
	ErrMissingPlacement = errors.New("item placement missing")
	ErrInvalidRect      = errors.New("invalid item rect")
	ErrDuplicateItem    = errors.New("item already registered")
	ErrUnknownItem      = errors.New("unknown item")
)

// Item is one placed rectangle. Points, when set, mark a path item (such
// as a connector) that is drawn on the minimap as a polyline and skipped
// by item cycling.
type Item struct {
	ID     string       `json:"id"`
	Rect   geom.Rect    `json:"rect"`
	Points []geom.Point `json:"points,omitempty"`
	Z      int          `json:"z"`
}

// IsPath reports whether the item is a path item.
func (it Item) IsPath() bool {
	return len(it.Points) > 0
}

// Registry holds the items of one surface. The bounding union of all item
// rects is recomputed lazily: changes only mark it dirty, and the new union
// is taken once no change happened for the debounce interval.
type Registry struct {
	items    map[string]*Item
	order    []string
	zCounter int

	debounce  time.Duration
	bounds    geom.Rect
	hasBounds bool
	dirty     bool
	changedAt time.Time
}

// NewRegistry creates an empty registry.
func NewRegistry(debounce time.Duration) *Registry {
	return &Registry{
		items:    make(map[string]*Item),
		debounce: debounce,
	}
}

// Add registers an item.
func (r *Registry) Add(it Item, now time.Time) error {
	if it.ID == "" {
		return fmt.Errorf("%w: empty id", ErrMissingPlacement)
	}
	if _, ok := r.items[it.ID]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateItem, it.ID)
	}
	if !it.Rect.IsFinite() || it.Rect.Width < 0 || it.Rect.Height < 0 {
		return fmt.Errorf("%w: item %q has rect %+v", ErrInvalidRect, it.ID, it.Rect)
	}
	it.Points = append([]geom.Point(nil), it.Points...)
	r.items[it.ID] = &it
	r.order = append(r.order, it.ID)
	r.touch(now)
	return nil
}

// AddPlacement registers an item from its persisted placement.
func (r *Registry) AddPlacement(p Placement, now time.Time) (Item, error) {
	rect, err := p.Rect()
	if err != nil {
		return Item{}, err
	}
	it := Item{ID: p.ID, Rect: rect}
	if err := r.Add(it, now); err != nil {
		return Item{}, err
	}
	return it, nil
}

// Remove unregisters an item. It reports whether the item existed.
func (r *Registry) Remove(id string, now time.Time) bool {
	if _, ok := r.items[id]; !ok {
		return false
	}
	delete(r.items, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	r.touch(now)
	return true
}

// Get returns a copy of an item.
func (r *Registry) Get(id string) (Item, bool) {
	it, ok := r.items[id]
	if !ok {
		return Item{}, false
	}
	return *it, true
}

// Len returns the number of registered items.
func (r *Registry) Len() int {
	return len(r.items)
}

// SetRect replaces an item's rect.
func (r *Registry) SetRect(id string, rect geom.Rect, now time.Time) error {
	it, ok := r.items[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownItem, id)
	}
	if !rect.IsFinite() || rect.Width < 0 || rect.Height < 0 {
		return fmt.Errorf("%w: item %q has rect %+v", ErrInvalidRect, id, rect)
	}
	if it.Rect == rect {
		return nil
	}
	it.Rect = rect
	r.touch(now)
	return nil
}

// SetPoints replaces the path of a path item.
func (r *Registry) SetPoints(id string, points []geom.Point, now time.Time) error {
	it, ok := r.items[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownItem, id)
	}
	it.Points = append([]geom.Point(nil), points...)
	r.touch(now)
	return nil
}

// BringToFront raises the item above every other item on this surface and
// returns its new stacking index.
func (r *Registry) BringToFront(id string) (int, error) {
	it, ok := r.items[id]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownItem, id)
	}
	r.zCounter++
	it.Z = r.zCounter
	return it.Z, nil
}

// All returns copies of the items in registration order.
func (r *Registry) All() []Item {
	out := make([]Item, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, *r.items[id])
	}
	return out
}

// Sorted returns the box items ordered by x ascending, then y ascending.
// Path items are left out.
func (r *Registry) Sorted() []Item {
	var out []Item
	for _, id := range r.order {
		if it := r.items[id]; !it.IsPath() {
			out = append(out, *it)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].Rect, out[j].Rect
		if a.X == b.X {
			return a.Y < b.Y
		}
		return a.X < b.X
	})
	return out
}

// Intersecting returns the ids of items whose rect overlaps the world rect,
// in registration order.
func (r *Registry) Intersecting(world geom.Rect) []string {
	var ids []string
	for _, id := range r.order {
		if r.items[id].Rect.IntersectsRect(world) {
			ids = append(ids, id)
		}
	}
	return ids
}

// Placements returns the persisted form of every item.
func (r *Registry) Placements() []Placement {
	out := make([]Placement, 0, len(r.order))
	for _, id := range r.order {
		it := r.items[id]
		out = append(out, PlacementOf(it.ID, it.Rect))
	}
	return out
}

func (r *Registry) touch(now time.Time) {
	r.dirty = true
	r.changedAt = now
}

// Settle recomputes the bounding union if it is dirty and no change happened
// for the debounce interval. It reports whether the union was recomputed.
func (r *Registry) Settle(now time.Time) bool {
	if !r.dirty || now.Sub(r.changedAt) < r.debounce {
		return false
	}
	r.recompute()
	return true
}

// Bounds returns the settled bounding union of all items. Before the first
// union has ever been taken it is computed immediately.
func (r *Registry) Bounds(now time.Time) (geom.Rect, bool) {
	r.Settle(now)
	if r.dirty && !r.hasBounds {
		r.recompute()
	}
	return r.bounds, r.hasBounds
}

func (r *Registry) recompute() {
	rects := make([]geom.Rect, 0, len(r.order))
	for _, id := range r.order {
		rects = append(rects, r.items[id].Rect)
	}
	r.bounds, r.hasBounds = geom.Combine(rects...)
	r.dirty = false
}
