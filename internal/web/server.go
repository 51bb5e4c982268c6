package web

import (
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"niedziele/internal/config"
	appLog "niedziele/internal/log"
	"niedziele/internal/metrics"
	"niedziele/internal/model"
	"niedziele/internal/registry"
)

// Server serves the landing page and the calendar feed for the active
// registry.
type Server struct {
	cfg *config.Config
	loc *time.Location
	mux *http.ServeMux
	now func() time.Time

	// snapshot is replaced wholesale by Refresh; handlers only read it.
	mu       sync.RWMutex
	snapshot *snapshot
}

// snapshot is the registry being published and the day it was computed.
type snapshot struct {
	registry  *registry.Registry
	updatedAt model.Date
}

// NewServer constructs a Server and loads the initial registry. Invalid
// configured dates fail here rather than at request time.
func NewServer(cfg *config.Config) (*Server, error) {
	return newServer(cfg, time.Now)
}

func newServer(cfg *config.Config, now func() time.Time) (*Server, error) {
	if cfg == nil {
		return nil, errors.New("web: config is nil")
	}
	s := &Server{
		cfg: cfg,
		loc: resolveLocationOrLocal(cfg.Timezone),
		mux: http.NewServeMux(),
		now: now,
	}
	if err := s.Refresh(); err != nil {
		return nil, err
	}
	s.registerRoutes()
	return s, nil
}

// Handler returns the underlying http.Handler for this server.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Refresh recomputes the published registry from the configuration and
// the current date in the configured timezone. On failure the previous
// snapshot stays in place.
func (s *Server) Refresh() error {
	today := model.DateOf(s.now().In(s.loc))

	year := s.cfg.Year
	if year == 0 && len(s.cfg.Dates) == 0 {
		year = today.Year
	}

	reg, err := registry.Resolve(year, s.cfg.Dates)
	if err != nil {
		metrics.IncRefresh(metrics.ResultError)
		appLog.Error("registry refresh failed", err, "year", year)
		return fmt.Errorf("load registry for %d: %w", year, err)
	}

	s.mu.Lock()
	s.snapshot = &snapshot{registry: reg, updatedAt: today}
	s.mu.Unlock()

	metrics.IncRefresh(metrics.ResultSuccess)
	metrics.SetRegistry(reg.Year, string(reg.Source), reg.Len())
	appLog.Info("registry refreshed",
		"year", reg.Year,
		"source", reg.Source,
		"count", reg.Len(),
		"updated_at", today,
	)
	return nil
}

// Registry returns the registry currently being published.
func (s *Server) Registry() *registry.Registry {
	return s.current().registry
}

func (s *Server) current() *snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("/health", instrument("/health", s.handleHealth))
	s.mux.HandleFunc("/metrics", instrument("/metrics", handleMetrics(promhttp.Handler())))
	s.mux.HandleFunc("/calendar", instrument("/calendar", s.handleCalendar))
	s.mux.HandleFunc("/api/dates", instrument("/api/dates", s.handleDates))
	s.mux.HandleFunc("/og.png", instrument("/og.png", s.handlePreview))
	s.mux.HandleFunc("/", instrument("/", s.handleIndex))
}

func resolveLocationOrLocal(name string) *time.Location {
	if name == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		appLog.Error("failed to load timezone; falling back to local", err, "name", name)
		return time.Local
	}
	return loc
}

// statusRecorder remembers the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	code int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.code = code
	r.ResponseWriter.WriteHeader(code)
}

func instrument(route string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, code: http.StatusOK}
		next(rec, r)
		elapsed := time.Since(start)

		metrics.ObserveRequest(route, rec.code, elapsed)
		appLog.Debug("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.code,
			"duration", elapsed,
		)
	}
}
