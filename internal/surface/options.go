package surface

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/inamate/inamate/surface-go/internal/anim"
	"github.com/inamate/inamate/surface-go/internal/grid"
	"github.com/inamate/inamate/surface-go/internal/minimap"
)

var ErrInvalidOptions = errors.New("invalid surface options")

// Options are the tunables of one surface.
type Options struct {
	CellSize      float64
	SnapThreshold float64 // fraction of a cell
	MinZoom       float64
	MaxZoom       float64
	XPattern      string
	YPattern      string
	CenterMaxZoom float64 // zoom ceiling when framing a target
	MinItemSize   float64

	Damping       float64
	SettleEpsilon float64

	MoveThrottle   time.Duration
	BoundsDebounce time.Duration
	PinchExpiry    time.Duration
	CycleThrottle  time.Duration

	Minimap minimap.Config
	Mobile  bool
}

// DefaultOptions returns the stock surface configuration.
func DefaultOptions() Options {
	return Options{
		CellSize:       80,
		SnapThreshold:  0.15,
		MinZoom:        0.05,
		MaxZoom:        1.25,
		XPattern:       "1",
		YPattern:       "1",
		CenterMaxZoom:  1,
		MinItemSize:    10,
		Damping:        anim.DefaultDamping,
		SettleEpsilon:  0.5,
		MoveThrottle:   16670 * time.Microsecond,
		BoundsDebounce: 50 * time.Millisecond,
		PinchExpiry:    200 * time.Millisecond,
		CycleThrottle:  50 * time.Millisecond,
		Minimap:        minimap.DefaultConfig(),
	}
}

// Validate checks the options for values the engine cannot work with.
func (o Options) Validate() error {
	if _, err := grid.NewPattern(o.CellSize, o.XPattern, o.YPattern); err != nil {
		return fmt.Errorf("validate options: %w", err)
	}
	switch {
	case !(o.SnapThreshold >= 0):
		return fmt.Errorf("%w: snap threshold %v", ErrInvalidOptions, o.SnapThreshold)
	case !(o.MinZoom > 0) || !(o.MaxZoom >= o.MinZoom):
		return fmt.Errorf("%w: zoom range [%v, %v]", ErrInvalidOptions, o.MinZoom, o.MaxZoom)
	case !(o.CenterMaxZoom > 0):
		return fmt.Errorf("%w: center max zoom %v", ErrInvalidOptions, o.CenterMaxZoom)
	case o.MinItemSize < 0:
		return fmt.Errorf("%w: min item size %v", ErrInvalidOptions, o.MinItemSize)
	case !(o.Damping > 0 && o.Damping < 1):
		return fmt.Errorf("%w: damping %v not in (0, 1)", ErrInvalidOptions, o.Damping)
	case !(o.SettleEpsilon > 0):
		return fmt.Errorf("%w: settle epsilon %v", ErrInvalidOptions, o.SettleEpsilon)
	case o.MoveThrottle < 0 || o.BoundsDebounce < 0 || o.PinchExpiry <= 0 || o.CycleThrottle < 0:
		return fmt.Errorf("%w: negative interval", ErrInvalidOptions)
	case !(o.Minimap.Scale > 0) || !(o.Minimap.Ratio > 0):
		return fmt.Errorf("%w: minimap scale %v ratio %v", ErrInvalidOptions, o.Minimap.Scale, o.Minimap.Ratio)
	}
	return nil
}

// Option configures a Surface at construction.
type Option func(*Surface)

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(s *Surface) {
		if l != nil {
			s.log = l
		}
	}
}

// WithListener registers the receiver of surface notifications.
func WithListener(fn Listener) Option {
	return func(s *Surface) {
		s.listener = fn
	}
}
