package layout

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/inamate/inamate/surface-go/internal/items"
	"github.com/inamate/inamate/surface-go/internal/typeid"
)

type Handler struct {
	store Store
}

func NewHandler(store Store) *Handler {
	return &Handler{store: store}
}

type layoutResponse struct {
	SurfaceID string            `json:"surfaceId"`
	Items     []items.Placement `json:"items"`
}

type saveRequest struct {
	Items []items.Placement `json:"items"`
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	surfaceID := mux.Vars(r)["surfaceId"]
	if err := typeid.ValidateSurface(surfaceID); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid surface id"})
		return
	}

	placements, err := h.store.Load(r.Context(), surfaceID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "layout not found"})
			return
		}
		slog.Error("load layout failed", "error", err, "surface", surfaceID)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}

	writeJSON(w, http.StatusOK, layoutResponse{SurfaceID: surfaceID, Items: placements})
}

func (h *Handler) Put(w http.ResponseWriter, r *http.Request) {
	surfaceID := mux.Vars(r)["surfaceId"]
	if err := typeid.ValidateSurface(surfaceID); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid surface id"})
		return
	}

	var req saveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	seen := make(map[string]bool, len(req.Items))
	for _, p := range req.Items {
		if p.ID == "" || seen[p.ID] {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "item ids must be unique and non-empty"})
			return
		}
		seen[p.ID] = true
		if _, err := p.Rect(); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
	}

	if err := h.store.Save(r.Context(), surfaceID, req.Items); err != nil {
		slog.Error("save layout failed", "error", err, "surface", surfaceID)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
