// Package layout persists item placements per surface.
package layout

import (
	"context"
	"errors"

	"github.com/inamate/inamate/surface-go/internal/items"
)

var ErrNotFound = errors.New("layout not found")

// Store loads and saves the placements of one surface. Save replaces the
// whole layout; SavePlacement upserts a single item.
type Store interface {
	Load(ctx context.Context, surfaceID string) ([]items.Placement, error)
	Save(ctx context.Context, surfaceID string, placements []items.Placement) error
	SavePlacement(ctx context.Context, surfaceID string, p items.Placement) error
	Delete(ctx context.Context, surfaceID, itemID string) error
}
