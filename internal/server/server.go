// Package server provides the HTTP diagnostics server for the Lumikey tracker.
package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/ayusman/lumikey/internal/capture"
	"github.com/ayusman/lumikey/internal/server/api"
	"github.com/ayusman/lumikey/internal/store"
)

// Config holds the server configuration.
type Config struct {
	StaticDir string
	Store     *store.Store
	Camera    capture.Camera
}

// Server represents the HTTP server for the Lumikey tracker.
type Server struct {
	config Config
	mux    *http.ServeMux
	live   *LiveEventsHandler
	start  time.Time
}

// New creates a new Server with the given configuration.
func New(config Config) *Server {
	s := &Server{
		config: config,
		mux:    http.NewServeMux(),
		live:   NewLiveEventsHandler(),
		start:  time.Now(),
	}
	s.setupRoutes()
	return s
}

// setupRoutes configures all HTTP routes for the server.
func (s *Server) setupRoutes() {
	s.mux.HandleFunc("/api/health", s.handleHealth)

	// Live key event WebSocket; fed by the pipeline via Live().Publish.
	s.mux.Handle("/api/events", s.live)

	if s.config.Store != nil {
		layoutHandler := api.NewLayoutHandler(s.config.Store)
		s.mux.Handle("/api/layouts", layoutHandler)
		s.mux.Handle("/api/layouts/", layoutHandler)

		s.mux.Handle("/api/events/recent", api.NewEventsHandler(s.config.Store))
	}

	// Register camera stream endpoint if Camera is configured
	if s.config.Camera != nil {
		s.mux.Handle("/api/stream", NewStreamHandler(s.config.Camera))
	}

	// Serve static files if StaticDir is configured
	if s.config.StaticDir != "" {
		fs := http.FileServer(http.Dir(s.config.StaticDir))
		s.mux.Handle("/", fs)
	}
}

// Live returns the live event broadcast handler, for wiring as an engine
// listener.
func (s *Server) Live() *LiveEventsHandler {
	return s.live
}

// ServeHTTP implements the http.Handler interface.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// handleHealth handles GET requests to /api/health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	uptime := time.Since(s.start)

	response := map[string]interface{}{
		"status": "ok",
		"uptime": uptime.String(),
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}

// ListenAndServe starts the HTTP server on the given address.
func (s *Server) ListenAndServe(addr string) error {
	return http.ListenAndServe(addr, s)
}
