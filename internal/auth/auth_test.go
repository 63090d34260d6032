package auth

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestIssueAndValidate(t *testing.T) {
	s := NewService("secret")
	tok, err := s.IssueToken("user-1")
	if err != nil {
		t.Fatal(err)
	}
	got, err := s.ValidateToken(tok)
	if err != nil || got != "user-1" {
		t.Errorf("ValidateToken = %q, %v", got, err)
	}

	other := NewService("other")
	if _, err := other.ValidateToken(tok); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("foreign secret err = %v, want ErrInvalidToken", err)
	}
	if _, err := s.ValidateToken("garbage"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("garbage err = %v", err)
	}
}

func TestMiddleware(t *testing.T) {
	s := NewService("secret")
	tok, _ := s.IssueToken("user-1")

	var seen string
	h := s.AuthMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = UserIDFromContext(r.Context())
	}))

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"missing", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized},
		{"bad token", "Bearer nope", http.StatusUnauthorized},
		{"valid", "Bearer " + tok, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/x", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			if rec.Code != tt.status {
				t.Errorf("status = %d, want %d", rec.Code, tt.status)
			}
		})
	}
	if seen != "user-1" {
		t.Errorf("user in context = %q", seen)
	}
}

func TestAnonymous(t *testing.T) {
	s := NewService("secret")
	rec := httptest.NewRecorder()
	NewHandler(s).Anonymous(rec, httptest.NewRequest(http.MethodPost, "/auth/anonymous", nil))
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp tokenResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if got, err := s.ValidateToken(resp.Token); err != nil || got != resp.UserID {
		t.Errorf("issued token validates to %q, %v; want %q", got, err, resp.UserID)
	}
}
