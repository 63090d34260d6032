package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/inamate/inamate/surface-go/internal/auth"
	"github.com/inamate/inamate/surface-go/internal/config"
	"github.com/inamate/inamate/surface-go/internal/export"
	"github.com/inamate/inamate/surface-go/internal/layout"
	mw "github.com/inamate/inamate/surface-go/internal/middleware"
	"github.com/inamate/inamate/surface-go/internal/session"
	"github.com/inamate/inamate/surface-go/internal/typeid"
)

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})))

	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}
	if err := cfg.Surface.Options().Validate(); err != nil {
		slog.Error("invalid surface options", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var store layout.Store
	if cfg.DatabaseURL == "" {
		slog.Warn("DATABASE_URL not set, layouts are kept in memory")
		store = layout.NewMemoryStore()
	} else {
		pool, err := layout.NewPool(ctx, cfg.DatabaseURL)
		if err != nil {
			slog.Error("connect to database", "error", err)
			os.Exit(1)
		}
		defer pool.Close()

		pg := layout.NewPostgresStore(pool)
		if err := pg.Migrate(ctx); err != nil {
			slog.Error("migrate database", "error", err)
			os.Exit(1)
		}
		store = pg
	}

	authService := auth.NewService(cfg.JWTSecret)
	authHandler := auth.NewHandler(authService)
	layoutHandler := layout.NewHandler(store)
	exportHandler := export.NewHandler(store, cfg.Surface.Options())

	hub := session.NewHub(cfg.FrameInterval)
	go hub.Run()

	r := mux.NewRouter()

	// Global middleware
	r.Use(mw.Recovery)
	r.Use(mw.Logger)
	r.Use(mw.CORS(cfg.CORSOrigins()))

	r.HandleFunc("/auth/anonymous", authHandler.Anonymous).Methods("POST", "OPTIONS")

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// Protected API routes
	api := r.PathPrefix("/api").Subrouter()
	api.Use(authService.AuthMiddleware)

	api.HandleFunc("/surfaces/{surfaceId}/layout", layoutHandler.Get).Methods("GET")
	api.HandleFunc("/surfaces/{surfaceId}/layout", layoutHandler.Put).Methods("PUT")
	api.HandleFunc("/surfaces/{surfaceId}/export.png", exportHandler.ExportPNG).Methods("GET")

	// WebSocket endpoint
	r.HandleFunc("/ws/surface/{surfaceId}", func(w http.ResponseWriter, r *http.Request) {
		handleWebSocket(w, r, hub, store, authService, cfg)
	})

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down server")
		hub.Stop()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		srv.Shutdown(shutdownCtx)
	}()

	slog.Info("server starting", "addr", addr, "frameInterval", cfg.FrameInterval)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
}

func handleWebSocket(w http.ResponseWriter, r *http.Request, hub *session.Hub, store layout.Store, authSvc *auth.Service, cfg *config.Config) {
	surfaceID := mux.Vars(r)["surfaceId"]
	if err := typeid.ValidateSurface(surfaceID); err != nil {
		http.Error(w, "invalid surface id", http.StatusBadRequest)
		return
	}

	// The playground surface is open; every other surface needs a token.
	userID, err := authSvc.TokenFromQuery(r)
	if err != nil {
		if surfaceID != typeid.PlaygroundSurfaceID {
			http.Error(w, "invalid token", http.StatusUnauthorized)
			return
		}
		userID = "anon-" + uuid.New().String()[:8]
	}

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: cfg.Origins(),
	})
	if err != nil {
		slog.Error("websocket accept", "error", err)
		return
	}

	client := session.NewClient(conn, userID)
	sess, err := session.New(surfaceID, userID, cfg.Surface.Options(), store, client)
	if err != nil {
		slog.Error("create session", "error", err)
		conn.Close(websocket.StatusInternalError, "session setup failed")
		return
	}

	ctx := r.Context()
	go client.WritePump(ctx)
	if err := sess.Start(ctx, client.ID); err != nil {
		slog.Error("start session", "error", err, "surface", surfaceID)
		client.Close()
		return
	}

	hub.Register(sess, client.Close)
	client.ReadPump(ctx, sess.HandleMessage)
	hub.Unregister(sess)
}
