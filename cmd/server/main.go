package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/pillboard/pillboard/internal/auth"
	"github.com/pillboard/pillboard/internal/board"
	"github.com/pillboard/pillboard/internal/config"
	"github.com/pillboard/pillboard/internal/engine"
	mw "github.com/pillboard/pillboard/internal/middleware"
)

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})))

	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}

	rules := engine.Rules{
		MinDrawSize:   cfg.MinDrawSize,
		MinSplitSize:  cfg.MinSplitSize,
		CornerRadius:  cfg.CornerRadius,
		NudgeDistance: cfg.NudgeDistance,
	}

	authService := auth.NewService(cfg.JWTSecret)
	hub := board.NewHub(rules)
	boardService := board.NewService(authService, hub)
	boardHandler := board.NewHandler(boardService)

	r := mux.NewRouter()

	// Global middleware
	r.Use(mw.Recovery)
	r.Use(mw.Logger)
	r.Use(mw.CORS(cfg.AllowedOrigins))

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// Board registry (public: boards are the only account-like entity)
	r.HandleFunc("/api/boards", boardHandler.Create).Methods("POST", "OPTIONS")
	r.HandleFunc("/api/boards", boardHandler.List).Methods("GET")
	r.HandleFunc("/api/boards/{boardId}", boardHandler.Get).Methods("GET")
	r.HandleFunc("/api/boards/{boardId}/join", boardHandler.Join).Methods("POST", "OPTIONS")

	// Token-guarded board operations
	api := r.PathPrefix("/api").Subrouter()
	api.Use(authService.Middleware)
	api.HandleFunc("/boards/{boardId}", boardHandler.Delete).Methods("DELETE")
	api.HandleFunc("/boards/{boardId}/shapes", boardHandler.Shapes).Methods("GET")

	// WebSocket endpoint
	r.HandleFunc("/ws/board/{boardId}", func(w http.ResponseWriter, r *http.Request) {
		handleWebSocket(w, r, hub, boardService, cfg.AllowedOrigins)
	})

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second,
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

	slog.Info("server starting", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
}

func handleWebSocket(w http.ResponseWriter, r *http.Request, hub *board.Hub, boards *board.Service, allowedOrigins string) {
	boardID := mux.Vars(r)["boardId"]
	token := r.URL.Query().Get("token")

	displayName, err := boards.AuthorizeConn(boardID, token)
	if err != nil {
		if errors.Is(err, board.ErrNotFound) {
			http.Error(w, "board not found", http.StatusNotFound)
			return
		}
		http.Error(w, "not authorized for this board", http.StatusForbidden)
		return
	}

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: originPatterns(allowedOrigins),
	})
	if err != nil {
		slog.Error("websocket accept", "error", err)
		return
	}

	session := hub.Session(boardID)
	clientID := uuid.New().String()
	client := board.NewClient(session, conn, clientID, displayName)

	session.Join(client)

	ctx := r.Context()
	go client.WritePump(ctx)
	client.ReadPump(ctx)
}

// originPatterns strips schemes from the configured origins; the websocket
// library matches origin host patterns, not full URLs.
func originPatterns(allowedOrigins string) []string {
	var patterns []string
	for _, o := range strings.Split(allowedOrigins, ",") {
		o = strings.TrimSpace(o)
		o = strings.TrimPrefix(o, "http://")
		o = strings.TrimPrefix(o, "https://")
		if o != "" {
			patterns = append(patterns, o)
		}
	}
	return patterns
}
