package layout

import (
	"context"
	"fmt"
	"sync"

	"github.com/inamate/inamate/surface-go/internal/items"
)

// MemoryStore keeps layouts in process. Used when no database is configured.
type MemoryStore struct {
	mu       sync.RWMutex
	surfaces map[string][]items.Placement
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{surfaces: make(map[string][]items.Placement)}
}

func (m *MemoryStore) Load(ctx context.Context, surfaceID string) ([]items.Placement, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ps, ok := m.surfaces[surfaceID]
	if !ok {
		return nil, ErrNotFound
	}
	out := make([]items.Placement, len(ps))
	for i, p := range ps {
		out[i] = clonePlacement(p)
	}
	return out, nil
}

func (m *MemoryStore) Save(ctx context.Context, surfaceID string, placements []items.Placement) error {
	stored := make([]items.Placement, 0, len(placements))
	for _, p := range placements {
		if _, err := p.Rect(); err != nil {
			return fmt.Errorf("save layout: %w", err)
		}
		stored = append(stored, clonePlacement(p))
	}

	m.mu.Lock()
	m.surfaces[surfaceID] = stored
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) SavePlacement(ctx context.Context, surfaceID string, p items.Placement) error {
	if _, err := p.Rect(); err != nil {
		return fmt.Errorf("save placement: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	ps := m.surfaces[surfaceID]
	for i := range ps {
		if ps[i].ID == p.ID {
			ps[i] = clonePlacement(p)
			return nil
		}
	}
	m.surfaces[surfaceID] = append(ps, clonePlacement(p))
	return nil
}

func (m *MemoryStore) Delete(ctx context.Context, surfaceID, itemID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	ps, ok := m.surfaces[surfaceID]
	if !ok {
		return ErrNotFound
	}
	for i := range ps {
		if ps[i].ID == itemID {
			m.surfaces[surfaceID] = append(ps[:i], ps[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func clonePlacement(p items.Placement) items.Placement {
	r, err := p.Rect()
	if err != nil {
		return p
	}
	return items.PlacementOf(p.ID, r)
}
