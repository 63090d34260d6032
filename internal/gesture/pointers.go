package gesture

import "github.com/inamate/inamate/surface-go/internal/geom"

// Pointers is the set of active contact points keyed by pointer id, in the
// order they went down.
type Pointers struct {
	pos   map[int]geom.Point
	order []int
}

// NewPointers returns an empty set.
func NewPointers() *Pointers {
	return &Pointers{pos: make(map[int]geom.Point)}
}

// Down opens a session for id and returns the new count. A repeated down
// for a live id only updates its position.
func (p *Pointers) Down(id int, at geom.Point) int {
	if _, ok := p.pos[id]; !ok {
		p.order = append(p.order, id)
	}
	p.pos[id] = at
	return len(p.order)
}

// Move updates the session of id and returns its previous position.
func (p *Pointers) Move(id int, at geom.Point) (geom.Point, bool) {
	prev, ok := p.pos[id]
	if !ok {
		return geom.Point{}, false
	}
	p.pos[id] = at
	return prev, true
}

// Up closes the session of id and returns the remaining count.
func (p *Pointers) Up(id int) int {
	if _, ok := p.pos[id]; !ok {
		return len(p.order)
	}
	delete(p.pos, id)
	for i, oid := range p.order {
		if oid == id {
			p.order = append(p.order[:i], p.order[i+1:]...)
			break
		}
	}
	return len(p.order)
}

// Get returns the last position of id.
func (p *Pointers) Get(id int) (geom.Point, bool) {
	pt, ok := p.pos[id]
	return pt, ok
}

func (p *Pointers) Has(id int) bool {
	_, ok := p.pos[id]
	return ok
}

func (p *Pointers) Len() int {
	return len(p.order)
}

// Pair returns the positions of the two oldest sessions.
func (p *Pointers) Pair() (a, b geom.Point, ok bool) {
	if len(p.order) < 2 {
		return geom.Point{}, geom.Point{}, false
	}
	return p.pos[p.order[0]], p.pos[p.order[1]], true
}

// Positions returns the live positions in down order.
func (p *Pointers) Positions() []geom.Point {
	out := make([]geom.Point, 0, len(p.order))
	for _, id := range p.order {
		out = append(out, p.pos[id])
	}
	return out
}

// IDs returns the live ids in down order.
func (p *Pointers) IDs() []int {
	return append([]int(nil), p.order...)
}

// Clear drops every session.
func (p *Pointers) Clear() {
	clear(p.pos)
	p.order = p.order[:0]
}
