package web

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"niedziele/internal/ics"
	appLog "niedziele/internal/log"
	"niedziele/internal/metrics"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !allowRead(w, r) {
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

// handleMetrics restricts the Prometheus scrape handler to reads.
func handleMetrics(next http.Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !allowRead(w, r) {
			return
		}
		next.ServeHTTP(w, r)
	}
}

// handleIndex renders the landing page for the active registry.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if !allowRead(w, r) {
		return
	}

	snap := s.current()
	data := newPageData(snap, s.previewAvailable())

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		appLog.Error("render index failed", err, "year", snap.registry.Year)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

// handleCalendar serves the iCalendar document. The document is rebuilt on
// every request; only the registry is shared.
//
// Headers:
//   - Content-Type: text/calendar; charset=utf-8
//   - Cache-Control: public, max-age=<cache_max_age>
//   - Content-Disposition: attachment; filename=niedziele-handlowe-<year>.ics
//     (only when attachment is enabled)
func (s *Server) handleCalendar(w http.ResponseWriter, r *http.Request) {
	if !allowRead(w, r) {
		return
	}

	reg := s.current().registry
	doc := ics.Export(reg.Dates)

	h := w.Header()
	h.Set("Content-Type", ics.ContentType)
	h.Set("Cache-Control", fmt.Sprintf("public, max-age=%d", s.cfg.CacheMaxAge))
	if s.cfg.Attachment {
		h.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", CalendarFilename(reg.Year)))
	}

	metrics.IncExport(s.cfg.Attachment)
	w.WriteHeader(http.StatusOK)
	if _, err := io.WriteString(w, doc); err != nil {
		appLog.Error("write calendar failed", err)
	}
}

// CalendarFilename is the download name of the calendar for year.
func CalendarFilename(year int) string {
	return fmt.Sprintf("niedziele-handlowe-%d.ics", year)
}

// datesResponse is the JSON response shape for /api/dates.
type datesResponse struct {
	Year      int      `json:"year"`
	Source    string   `json:"source"`
	Count     int      `json:"count"`
	Dates     []string `json:"dates"`
	UpdatedAt string   `json:"updated_at"`
}

// handleDates exposes the active registry as JSON.
func (s *Server) handleDates(w http.ResponseWriter, r *http.Request) {
	if !allowRead(w, r) {
		return
	}
	snap := s.current()
	writeJSON(w, http.StatusOK, datesResponse{
		Year:      snap.registry.Year,
		Source:    string(snap.registry.Source),
		Count:     snap.registry.Len(),
		Dates:     snap.registry.Strings(),
		UpdatedAt: snap.updatedAt.String(),
	})
}

// handlePreview serves the last captured landing page screenshot.
func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	if !allowRead(w, r) {
		return
	}
	if !s.previewAvailable() {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Cache-Control", "public, max-age=3600")
	http.ServeFile(w, r, s.cfg.Capture.Output)
}

func (s *Server) previewAvailable() bool {
	if s.cfg.Capture.Output == "" {
		return false
	}
	info, err := os.Stat(s.cfg.Capture.Output)
	return err == nil && info.Mode().IsRegular()
}

// allowRead rejects anything but GET and HEAD with 405.
func allowRead(w http.ResponseWriter, r *http.Request) bool {
	if r.Method == http.MethodGet || r.Method == http.MethodHead {
		return true
	}
	w.Header().Set("Allow", "GET, HEAD")
	http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	return false
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		appLog.Error("failed to write JSON response", err)
	}
}
