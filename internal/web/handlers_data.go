package web

import (
	"bytes"
	"fmt"
	"net/http"
	"path"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/gabrielpastega/delish-express-data-visualization/internal/core"
	"github.com/gabrielpastega/delish-express-data-visualization/internal/export"
	"github.com/gabrielpastega/delish-express-data-visualization/internal/logging"
)

// HealthResponse is the body of GET /healthz.
type HealthResponse struct {
	Status   string `json:"status"`
	Snapshot string `json:"snapshot,omitempty"`
	Records  int    `json:"records"`
}

// TableResponse wraps a single aggregation table.
type TableResponse struct {
	Table core.TableInfo `json:"table"`
	Rows  any            `json:"rows"`
}

// handleHealth reports whether a dataset is being served.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	snap, err := s.store.Current()
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		writeJSON(w, r, HealthResponse{Status: "loading"})
		return
	}
	writeJSON(w, r, HealthResponse{Status: "ok", Snapshot: snap.ID.String(), Records: len(snap.Records)})
}

// handleListTables returns all tables organized by group.
func (s *Server) handleListTables(w http.ResponseWriter, r *http.Request) {
	result := make(map[string][]core.TableInfo)
	for _, group := range core.Groups() {
		for _, def := range core.ByGroup(group) {
			result[group] = append(result[group], def.Info)
		}
	}
	writeJSON(w, r, result)
}

// handleDatasetInfo returns the current snapshot metadata and date range.
func (s *Server) handleDatasetInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, snapshotFrom(r.Context()).Info())
}

// handleView returns one dashboard view as JSON.
func (s *Server) handleView(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r, s.cfg.Filter)
	if err != nil {
		respondError(w, r, err, statusFor(err))
		return
	}

	view, err := snapshotFrom(r.Context()).View(chi.URLParam(r, "view"), filter)
	if err != nil {
		respondError(w, r, err, statusFor(err))
		return
	}

	writeJSON(w, r, view)
}

// handleTable returns a single aggregation table as JSON.
func (s *Server) handleTable(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r, s.cfg.Filter)
	if err != nil {
		respondError(w, r, err, statusFor(err))
		return
	}

	def, rows, err := snapshotFrom(r.Context()).Table(chi.URLParam(r, "table"), filter)
	if err != nil {
		respondError(w, r, err, statusFor(err))
		return
	}

	writeJSON(w, r, TableResponse{Table: def.Info, Rows: rows})
}

// handleExport downloads a table as CSV or XLSX. The file parameter is the
// table key followed by the format extension, e.g. orders-per-day.csv.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	file := chi.URLParam(r, "file")
	ext := path.Ext(file)
	key := strings.TrimSuffix(file, ext)

	format, err := export.ParseFormat(ext)
	if err != nil {
		err = fmt.Errorf("%w: %q", errBadExport, ext)
		respondError(w, r, err, statusFor(err))
		return
	}

	filter, err := parseFilter(r, s.cfg.Filter)
	if err != nil {
		respondError(w, r, err, statusFor(err))
		return
	}

	def, rows, err := snapshotFrom(r.Context()).Table(key, filter)
	if err != nil {
		respondError(w, r, err, statusFor(err))
		return
	}

	// Encode fully before writing headers so failures still get an error response.
	var buf bytes.Buffer
	if err := export.Write(&buf, format, def.Info.Key, rows); err != nil {
		respondError(w, r, err, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, export.FileName(def.Info.Key, format)))
	if _, err := buf.WriteTo(w); err != nil {
		logging.FromContext(r.Context()).Warn("export write failed", "table", def.Info.Key, "error", err)
	}
}

// handleReload reloads the dataset and returns the new snapshot metadata.
// The previous snapshot keeps serving if the reload fails.
func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	snap, err := s.store.Load(r.Context())
	if err != nil {
		respondError(w, r, err, statusFor(err))
		return
	}

	logging.FromContext(r.Context()).Info("dataset reloaded via API", "snapshot_id", snap.ID.String())
	writeJSON(w, r, snap.Info())
}
