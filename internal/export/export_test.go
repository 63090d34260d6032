package export

import (
	"bytes"
	"context"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"

	"github.com/inamate/inamate/surface-go/internal/geom"
	"github.com/inamate/inamate/surface-go/internal/items"
	"github.com/inamate/inamate/surface-go/internal/layout"
	"github.com/inamate/inamate/surface-go/internal/surface"
	"github.com/inamate/inamate/surface-go/internal/typeid"
)

var white = color.RGBA{0xff, 0xff, 0xff, 0xff}

func TestRender(t *testing.T) {
	sf, err := surface.New(surface.DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	size := geom.Pt(320, 240)
	sf.Resize(size)
	sf.AddPlacement(items.PlacementOf("a", geom.NewRect(0, 0, 80, 80)))
	sf.AddItem(items.Item{ID: "w", Rect: geom.NewRect(80, 40, 80, 0), Points: []geom.Point{geom.Pt(80, 40), geom.Pt(160, 40)}})
	f := sf.Tick(time.Unix(0, 0))

	img := Render(size, f, sf.Items())
	if b := img.Bounds(); b.Dx() != 320 || b.Dy() != 240 {
		t.Fatalf("bounds = %v", b)
	}

	it, _ := sf.Item("a")
	c := it.Rect.Transform(f.Matrix).Center()
	if got := img.RGBAAt(int(c.X), int(c.Y)); got != white {
		t.Errorf("item center pixel = %v", got)
	}
	if got := img.RGBAAt(0, 239); got != colBackground && got != colGrid {
		t.Errorf("corner pixel = %v", got)
	}
}

func TestRenderDegenerate(t *testing.T) {
	img := Render(geom.Point{}, surface.Frame{}, nil)
	if b := img.Bounds(); b.Dx() != 1 || b.Dy() != 1 {
		t.Errorf("bounds = %v", b)
	}
}

func TestExportPNG(t *testing.T) {
	store := layout.NewMemoryStore()
	id := typeid.NewSurfaceID()
	store.Save(context.Background(), id, []items.Placement{
		items.PlacementOf("a", geom.NewRect(0, 0, 80, 80)),
	})

	r := mux.NewRouter()
	r.HandleFunc("/api/surfaces/{surfaceId}/export.png", NewHandler(store, surface.DefaultOptions()).ExportPNG)

	tests := []struct {
		name   string
		path   string
		status int
		w, h   int
	}{
		{"sized", "/api/surfaces/" + id + "/export.png?width=200&height=100&name=my%20board", http.StatusOK, 200, 100},
		{"defaults", "/api/surfaces/" + id + "/export.png", http.StatusOK, defaultWidth, defaultHeight},
		{"clamped", "/api/surfaces/" + id + "/export.png?width=99999&height=10", http.StatusOK, maxSide, 10},
		{"empty surface", "/api/surfaces/" + typeid.NewSurfaceID() + "/export.png?width=10&height=10", http.StatusOK, 10, 10},
		{"bad id", "/api/surfaces/x/export.png", http.StatusBadRequest, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))
			if rec.Code != tt.status {
				t.Fatalf("status = %d, want %d", rec.Code, tt.status)
			}
			if tt.status != http.StatusOK {
				return
			}
			img, err := png.Decode(bytes.NewReader(rec.Body.Bytes()))
			if err != nil {
				t.Fatal(err)
			}
			if b := img.Bounds(); b.Dx() != tt.w || b.Dy() != tt.h {
				t.Errorf("size = %v, want %dx%d", b, tt.w, tt.h)
			}
		})
	}
}
