package layout

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"

	"github.com/inamate/inamate/surface-go/internal/geom"
	"github.com/inamate/inamate/surface-go/internal/items"
	"github.com/inamate/inamate/surface-go/internal/typeid"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()

	if _, err := m.Load(ctx, "surf_x"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Load on empty store err = %v", err)
	}

	a := items.PlacementOf("a", geom.NewRect(0, 0, 80, 80))
	b := items.PlacementOf("b", geom.NewRect(160, 0, 80, 160))
	if err := m.Save(ctx, "surf_x", []items.Placement{a, b}); err != nil {
		t.Fatal(err)
	}

	moved := items.PlacementOf("a", geom.NewRect(80, 80, 80, 80))
	if err := m.SavePlacement(ctx, "surf_x", moved); err != nil {
		t.Fatal(err)
	}
	c := items.PlacementOf("c", geom.NewRect(0, 240, 10, 10))
	if err := m.SavePlacement(ctx, "surf_x", c); err != nil {
		t.Fatal(err)
	}

	got, err := m.Load(ctx, "surf_x")
	if err != nil {
		t.Fatal(err)
	}
	want := []struct {
		id string
		r  geom.Rect
	}{
		{"a", geom.NewRect(80, 80, 80, 80)},
		{"b", geom.NewRect(160, 0, 80, 160)},
		{"c", geom.NewRect(0, 240, 10, 10)},
	}
	if len(got) != len(want) {
		t.Fatalf("loaded %d placements, want %d", len(got), len(want))
	}
	for i, w := range want {
		r, err := got[i].Rect()
		if err != nil || got[i].ID != w.id || r != w.r {
			t.Errorf("placement %d = %s %+v (%v), want %s %+v", i, got[i].ID, r, err, w.id, w.r)
		}
	}

	if err := m.Delete(ctx, "surf_x", "b"); err != nil {
		t.Fatal(err)
	}
	if err := m.Delete(ctx, "surf_x", "b"); !errors.Is(err, ErrNotFound) {
		t.Errorf("second delete err = %v", err)
	}
}

func TestMemoryStoreRejectsIncomplete(t *testing.T) {
	left := 1.0
	err := NewMemoryStore().Save(context.Background(), "surf_x", []items.Placement{{ID: "a", Left: &left}})
	if !errors.Is(err, items.ErrMissingPlacement) {
		t.Errorf("err = %v, want ErrMissingPlacement", err)
	}
}

func TestMemoryStoreCopies(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()
	p := items.PlacementOf("a", geom.NewRect(0, 0, 10, 10))
	m.Save(ctx, "s", []items.Placement{p})
	*p.Left = 99

	got, _ := m.Load(ctx, "s")
	if *got[0].Left != 0 {
		t.Errorf("store aliased caller memory: left = %v", *got[0].Left)
	}
}

func TestHandler(t *testing.T) {
	store := NewMemoryStore()
	r := mux.NewRouter()
	h := NewHandler(store)
	r.HandleFunc("/api/surfaces/{surfaceId}/layout", h.Get).Methods("GET")
	r.HandleFunc("/api/surfaces/{surfaceId}/layout", h.Put).Methods("PUT")

	id := typeid.NewSurfaceID()
	path := "/api/surfaces/" + id + "/layout"

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		status int
	}{
		{"missing layout", "GET", path, "", http.StatusNotFound},
		{"bad surface id", "GET", "/api/surfaces/nope/layout", "", http.StatusBadRequest},
		{"bad body", "PUT", path, "{", http.StatusBadRequest},
		{"missing field", "PUT", path, `{"items":[{"id":"a","left":0,"top":0,"width":10}]}`, http.StatusBadRequest},
		{"duplicate id", "PUT", path, `{"items":[{"id":"a","left":0,"top":0,"width":10,"height":10},{"id":"a","left":0,"top":0,"width":10,"height":10}]}`, http.StatusBadRequest},
		{"save", "PUT", path, `{"items":[{"id":"a","left":0,"top":0,"width":10,"height":10}]}`, http.StatusNoContent},
		{"load", "GET", path, "", http.StatusOK},
		{"playground", "PUT", "/api/surfaces/" + typeid.PlaygroundSurfaceID + "/layout", `{"items":[]}`, http.StatusNoContent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)
			if rec.Code != tt.status {
				t.Errorf("status = %d, want %d (%s)", rec.Code, tt.status, rec.Body.String())
			}
		})
	}
}
