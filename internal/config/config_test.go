package config

import (
	"testing"
	"time"

	"github.com/inamate/inamate/surface-go/internal/surface"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != 8080 || cfg.DatabaseURL != "" {
		t.Errorf("server defaults = %+v", cfg)
	}
	if err := cfg.Surface.Options().Validate(); err != nil {
		t.Errorf("default options invalid: %v", err)
	}

	got := cfg.Surface.Options()
	want := surface.DefaultOptions()
	if got.CellSize != want.CellSize || got.SnapThreshold != want.SnapThreshold ||
		got.MinZoom != want.MinZoom || got.MaxZoom != want.MaxZoom ||
		got.MoveThrottle != want.MoveThrottle || got.PinchExpiry != want.PinchExpiry {
		t.Errorf("env defaults %+v differ from engine defaults %+v", got, want)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("SURFACE_CELL_SIZE", "40")
	t.Setenv("SURFACE_X_PATTERN", "0110")
	t.Setenv("SURFACE_PINCH_EXPIRY", "350ms")
	t.Setenv("SURFACE_MOBILE", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	opts := cfg.Surface.Options()
	if cfg.Port != 9090 || opts.CellSize != 40 || opts.XPattern != "0110" ||
		opts.PinchExpiry != 350*time.Millisecond || !opts.Mobile {
		t.Errorf("overrides not applied: port %d opts %+v", cfg.Port, opts)
	}
}

func TestOrigins(t *testing.T) {
	cfg := &Config{AllowedOrigins: "http://localhost:5173, https://example.com,"}
	got := cfg.Origins()
	if len(got) != 2 || got[0] != "localhost:5173" || got[1] != "example.com" {
		t.Errorf("Origins = %v", got)
	}
	full := cfg.CORSOrigins()
	if len(full) != 2 || full[0] != "http://localhost:5173" || full[1] != "https://example.com" {
		t.Errorf("CORSOrigins = %v", full)
	}
}
