// Package server exposes the generated snapshots over HTTP so the static
// front end can be hosted separately from the generator.
package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	corslib "github.com/rs/cors"

	"github.com/omarshaarawi/sleeperstats/internal/config"
	"github.com/omarshaarawi/sleeperstats/internal/snapshot"
)

// New wraps the router in an http.Server with conservative timeouts.
func New(cfg config.Server, store *snapshot.Store) *http.Server {
	return &http.Server{
		Addr:         cfg.Addr,
		Handler:      NewRouter(cfg, store),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

func NewRouter(cfg config.Server, store *snapshot.Store) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	c := corslib.New(corslib.Options{
		AllowedOrigins:   cfg.CORSAllowOrigins,
		AllowedMethods:   []string{"GET", "HEAD", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "If-Modified-Since", "Cache-Control"},
		AllowCredentials: false,
	})
	r.Use(c.Handler)

	h := &handler{store: store}
	r.Get("/health", h.health)
	r.Get("/data/{file}", h.data)

	return r
}

type handler struct {
	store *snapshot.Store
}

func (h *handler) health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	err := json.NewEncoder(w).Encode(map[string]string{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		slog.Error("Error writing health response", "error", err)
	}
}

// data serves config.json and data_<season>.json; any other name is a 404.
func (h *handler) data(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "file")
	if !snapshot.IsSnapshotFile(name) {
		http.NotFound(w, r)
		return
	}

	path := h.store.Path(name)
	if _, err := os.Stat(path); err != nil {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Cache-Control", "no-cache")
	http.ServeFile(w, r, path)
}
