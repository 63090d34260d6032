package typeid

import (
	"fmt"

	"go.jetify.com/typeid/v2"
)

const (
	PrefixItem    = "item"
	PrefixSurface = "surf"
	PrefixSession = "sess"
)

// PlaygroundSurfaceID names the shared surface open to anonymous users.
const PlaygroundSurfaceID = "surf_playground"

func New(prefix string) string {
	id := typeid.MustGenerate(prefix)
	return id.String()
}

func NewItemID() string    { return New(PrefixItem) }
func NewSurfaceID() string { return New(PrefixSurface) }
func NewSessionID() string { return New(PrefixSession) }

func Validate(id, expectedPrefix string) error {
	parsed, err := typeid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid typeid %q: %w", id, err)
	}
	if parsed.Prefix() != expectedPrefix {
		return fmt.Errorf("expected prefix %q but got %q in id %q", expectedPrefix, parsed.Prefix(), id)
	}
	return nil
}

// ValidateSurface accepts a surface id or the playground id.
func ValidateSurface(id string) error {
	if id == PlaygroundSurfaceID {
		return nil
	}
	return Validate(id, PrefixSurface)
}
