package auth

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type tokenResponse struct {
	Token  string `json:"token"`
	UserID string `json:"userId"`
}

// Anonymous issues a token for a throwaway user, for playground surfaces
// that have no account behind them.
func (h *Handler) Anonymous(w http.ResponseWriter, r *http.Request) {
	userID := "anon-" + uuid.New().String()[:8]
	token, err := h.service.IssueToken(userID)
	if err != nil {
		slog.Error("issue anonymous token failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}
	writeJSON(w, http.StatusCreated, tokenResponse{Token: token, UserID: userID})
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
