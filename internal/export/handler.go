package export

import (
	"bytes"
	"errors"
	"image/png"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"github.com/inamate/inamate/surface-go/internal/geom"
	"github.com/inamate/inamate/surface-go/internal/layout"
	"github.com/inamate/inamate/surface-go/internal/surface"
	"github.com/inamate/inamate/surface-go/internal/typeid"
)

const (
	defaultWidth  = 1280
	defaultHeight = 800
	maxSide       = 4096
)

// Handler renders a stored layout, framed the way a fresh surface first
// shows it, as a PNG.
type Handler struct {
	store layout.Store
	opts  surface.Options
}

func NewHandler(store layout.Store, opts surface.Options) *Handler {
	return &Handler{store: store, opts: opts}
}

func (h *Handler) ExportPNG(w http.ResponseWriter, r *http.Request) {
	surfaceID := mux.Vars(r)["surfaceId"]
	if err := typeid.ValidateSurface(surfaceID); err != nil {
		http.Error(w, "invalid surface id", http.StatusBadRequest)
		return
	}

	width := dimension(r.FormValue("width"), defaultWidth)
	height := dimension(r.FormValue("height"), defaultHeight)

	name := r.FormValue("name")
	if name == "" {
		name = "surface"
	}
	// Sanitize filename
	name = strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-' || r == '_' {
			return r
		}
		return '-'
	}, name)

	placements, err := h.store.Load(r.Context(), surfaceID)
	if err != nil && !errors.Is(err, layout.ErrNotFound) {
		slog.Error("load layout for export", "error", err, "surface", surfaceID)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	sf, err := surface.New(h.opts)
	if err != nil {
		slog.Error("create surface for export", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	size := geom.Pt(float64(width), float64(height))
	sf.Resize(size)
	for _, p := range placements {
		if err := sf.AddPlacement(p); err != nil {
			slog.Warn("export skipped placement", "error", err, "item", p.ID)
		}
	}
	frame := sf.Tick(time.Now())

	var buf bytes.Buffer
	if err := png.Encode(&buf, Render(size, frame, sf.Items())); err != nil {
		slog.Error("encode png", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Disposition", `attachment; filename="`+name+`.png"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.Write(buf.Bytes())
}

func dimension(v string, def int) int {
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return def
	}
	return min(n, maxSide)
}
