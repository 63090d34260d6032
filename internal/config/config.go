package config

import (
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/inamate/inamate/surface-go/internal/minimap"
	"github.com/inamate/inamate/surface-go/internal/surface"
)

type Config struct {
	Port           int           `envconfig:"PORT" default:"8080"`
	DatabaseURL    string        `envconfig:"DATABASE_URL"`
	JWTSecret      string        `envconfig:"JWT_SECRET" default:"dev-secret-change-in-production"`
	AllowedOrigins string        `envconfig:"ALLOWED_ORIGINS" default:"http://localhost:5173,http://localhost:3000"`
	FrameInterval  time.Duration `envconfig:"FRAME_INTERVAL" default:"16ms"`
	Surface        Surface       `envconfig:"SURFACE"`
}

// Surface holds the SURFACE_* tunables.
type Surface struct {
	CellSize       float64       `envconfig:"CELL_SIZE" default:"80"`
	SnapThreshold  float64       `envconfig:"SNAP_THRESHOLD" default:"0.15"`
	MinZoom        float64       `envconfig:"MIN_ZOOM" default:"0.05"`
	MaxZoom        float64       `envconfig:"MAX_ZOOM" default:"1.25"`
	XPattern       string        `envconfig:"X_PATTERN" default:"1"`
	YPattern       string        `envconfig:"Y_PATTERN" default:"1"`
	CenterMaxZoom  float64       `envconfig:"CENTER_MAX_ZOOM" default:"1"`
	MinItemSize    float64       `envconfig:"MIN_ITEM_SIZE" default:"10"`
	Damping        float64       `envconfig:"DAMPING" default:"0.342"`
	SettleEpsilon  float64       `envconfig:"SETTLE_EPSILON" default:"0.5"`
	MoveThrottle   time.Duration `envconfig:"MOVE_THROTTLE" default:"16.67ms"`
	BoundsDebounce time.Duration `envconfig:"BOUNDS_DEBOUNCE" default:"50ms"`
	PinchExpiry    time.Duration `envconfig:"PINCH_EXPIRY" default:"200ms"`
	CycleThrottle  time.Duration `envconfig:"CYCLE_THROTTLE" default:"50ms"`
	MinimapScale   float64       `envconfig:"MINIMAP_SCALE" default:"0.2"`
	MinimapRatio   float64       `envconfig:"MINIMAP_RATIO" default:"1.3333333333333333"`
	MinimapMargin  float64       `envconfig:"MINIMAP_MARGIN" default:"30"`
	PixelRatio     float64       `envconfig:"PIXEL_RATIO" default:"1"`
	Mobile         bool          `envconfig:"MOBILE" default:"false"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Origins splits AllowedOrigins into host patterns for websocket accept.
func (c *Config) Origins() []string {
	var out []string
	for _, o := range strings.Split(c.AllowedOrigins, ",") {
		o = strings.TrimSpace(o)
		o = strings.TrimPrefix(o, "http://")
		o = strings.TrimPrefix(o, "https://")
		if o != "" {
			out = append(out, o)
		}
	}
	return out
}

// CORSOrigins returns AllowedOrigins as full origins for CORS headers.
func (c *Config) CORSOrigins() []string {
	var out []string
	for _, o := range strings.Split(c.AllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

// Options converts the surface settings into engine options.
func (s Surface) Options() surface.Options {
	return surface.Options{
		CellSize:       s.CellSize,
		SnapThreshold:  s.SnapThreshold,
		MinZoom:        s.MinZoom,
		MaxZoom:        s.MaxZoom,
		XPattern:       s.XPattern,
		YPattern:       s.YPattern,
		CenterMaxZoom:  s.CenterMaxZoom,
		MinItemSize:    s.MinItemSize,
		Damping:        s.Damping,
		SettleEpsilon:  s.SettleEpsilon,
		MoveThrottle:   s.MoveThrottle,
		BoundsDebounce: s.BoundsDebounce,
		PinchExpiry:    s.PinchExpiry,
		CycleThrottle:  s.CycleThrottle,
		Minimap: minimap.Config{
			Scale:      s.MinimapScale,
			Ratio:      s.MinimapRatio,
			PixelRatio: s.PixelRatio,
			Margin:     s.MinimapMargin,
		},
		Mobile: s.Mobile,
	}
}
