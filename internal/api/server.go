// Package api provides the read-only HTTP API for watching a run.
// Every endpoint is a GET served from the last published snapshot.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/talgya/pawnshop/internal/engine"
	"github.com/talgya/pawnshop/internal/ledger"
	"github.com/talgya/pawnshop/internal/persistence"
)

// SnapshotSource is anything that publishes game snapshots.
type SnapshotSource interface {
	Snapshot() engine.Snapshot
}

// Server serves the shop state over HTTP.
type Server struct {
	Game SnapshotSource
	DB   *persistence.DB // Optional run archive
	Port int

	srv *http.Server
}

// Handler builds the route table.
func (s *Server) Handler() http.Handler {
	archiveLimiter := NewRateLimiter(60, time.Minute)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/status", s.handleStatus)
	mux.HandleFunc("GET /api/v1/inventory", s.handleInventory)
	mux.HandleFunc("GET /api/v1/trades", s.handleTrades)
	mux.HandleFunc("GET /api/v1/conversations", s.handleConversations)
	mux.HandleFunc("GET /api/v1/ledger", s.handleLedger)
	mux.HandleFunc("GET /api/v1/stats", s.handleStats)
	mux.HandleFunc("GET /api/v1/stats/day/{day}", s.handleDayStats)
	mux.HandleFunc("GET /api/v1/runs", RateLimitMiddleware(archiveLimiter, s.handleRuns))

	return corsMiddleware(mux)
}

// Start begins serving the HTTP API in a goroutine.
func (s *Server) Start() {
	addr := fmt.Sprintf(":%d", s.Port)
	s.srv = &http.Server{Addr: addr, Handler: s.Handler(), ReadHeaderTimeout: 5 * time.Second}
	slog.Info("HTTP API starting", "addr", addr, "archive", s.DB != nil)

	go func() {
		if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("HTTP server error", "error", err)
		}
	}()
}

// Shutdown stops the server started by Start.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.srv == nil {
		return nil
	}
	return s.srv.Shutdown(ctx)
}

// corsMiddleware adds CORS headers for allowed frontend origins.
// Set CORS_ORIGINS to a comma-separated list of extra origins.
// Localhost dev servers are always allowed.
func corsMiddleware(next http.Handler) http.Handler {
	allowedOrigins := map[string]bool{
		"http://localhost:5173": true,
		"http://localhost:3000": true,
	}
	if env := os.Getenv("CORS_ORIGINS"); env != "" {
		for _, origin := range strings.Split(env, ",") {
			origin = strings.TrimSpace(origin)
			if origin != "" {
				allowedOrigins[origin] = true
			}
		}
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if allowedOrigins[origin] {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		}
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	snap := s.Game.Snapshot()

	var active *engine.CustomerSummary
	if snap.ActiveIndex < len(snap.Customers) {
		c := snap.Customers[snap.ActiveIndex]
		active = &c
	}

	status := map[string]any{
		"tick":            snap.Tick,
		"day":             snap.Day,
		"max_days":        snap.MaxDays,
		"money":           snap.Money,
		"starting_money":  snap.StartingMoney,
		"profit":          snap.Money - snap.StartingMoney,
		"inventory_count": len(snap.Inventory),
		"trade_count":     len(snap.Trades),
		"customers_left":  len(snap.Customers) - snap.ActiveIndex,
		"active_customer": active,
		"last_result":     snap.LastResult,
		"ended":           snap.Ended,
		"reason":          snap.Reason,
	}
	writeJSON(w, status)
}

func (s *Server) handleInventory(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.Game.Snapshot().Inventory)
}

func (s *Server) handleTrades(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.Game.Snapshot().Trades)
}

func (s *Server) handleConversations(w http.ResponseWriter, r *http.Request) {
	snap := s.Game.Snapshot()
	convs := snap.Conversations
	if d := r.URL.Query().Get("day"); d != "" {
		day, err := strconv.Atoi(d)
		if err != nil {
			http.Error(w, "invalid day", http.StatusBadRequest)
			return
		}
		convs = convs[:0:0]
		for _, c := range snap.Conversations {
			if c.Day == day {
				convs = append(convs, c)
			}
		}
	}
	writeJSON(w, convs)
}

func (s *Server) handleLedger(w http.ResponseWriter, r *http.Request) {
	limit := 100
	if l := r.URL.Query().Get("limit"); l != "" {
		if n, err := strconv.Atoi(l); err == nil && n > 0 && n <= 1000 {
			limit = n
		}
	}

	entries := s.Game.Snapshot().Ledger
	if d := r.URL.Query().Get("day"); d != "" {
		day, err := strconv.Atoi(d)
		if err != nil {
			http.Error(w, "invalid day", http.StatusBadRequest)
			return
		}
		var filtered []ledger.Entry
		for _, e := range entries {
			if e.Day == day {
				filtered = append(filtered, e)
			}
		}
		entries = filtered
	}

	start := 0
	if len(entries) > limit {
		start = len(entries) - limit
	}
	if entries == nil {
		entries = []ledger.Entry{}
	}
	writeJSON(w, entries[start:])
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	snap := s.Game.Snapshot()
	writeJSON(w, ledger.Final(snap.Ledger, snap.StartingMoney, snap.Money, min(snap.Day, snap.MaxDays)))
}

func (s *Server) handleDayStats(w http.ResponseWriter, r *http.Request) {
	day, err := strconv.Atoi(r.PathValue("day"))
	if err != nil {
		http.Error(w, "invalid day", http.StatusBadRequest)
		return
	}
	snap := s.Game.Snapshot()
	if day < 1 || day > snap.Day {
		http.Error(w, "day not played", http.StatusNotFound)
		return
	}
	writeJSON(w, ledger.Daily(snap.Ledger, day))
}

func (s *Server) handleRuns(w http.ResponseWriter, r *http.Request) {
	if s.DB == nil {
		http.Error(w, "run archive disabled", http.StatusNotFound)
		return
	}
	limit := 20
	if l := r.URL.Query().Get("limit"); l != "" {
		if n, err := strconv.Atoi(l); err == nil && n > 0 && n <= 200 {
			limit = n
		}
	}
	runs, err := s.DB.RecentRuns(r.Context(), limit)
	if err != nil {
		slog.Error("list runs", "error", err)
		http.Error(w, "archive unavailable", http.StatusInternalServerError)
		return
	}
	writeJSON(w, runs)
}

func writeJSON(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.Encode(data)
}
