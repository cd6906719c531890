package reportserver

import (
	"errors"
	"net/http"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"examctl/internal/report"
	"examctl/internal/result"
	"examctl/internal/validate"
)

// NewHandler builds the HTTP handler for the results index and reports.
func NewHandler(cfg Config) (http.Handler, error) {
	if cfg.ExportDir == "" {
		return nil, errors.New("reportserver: export dir is required")
	}
	h := handler{dir: cfg.ExportDir, log: cfg.Logger}
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", h.serveIndex)
	mux.HandleFunc("GET /results/{id}", h.serveReport)
	mux.HandleFunc("GET /results/{id}/json", h.serveJSON)
	return mux, nil
}

type handler struct {
	dir string
	log zerolog.Logger
}

// serveIndex lists every export in the directory.
func (h handler) serveIndex(w http.ResponseWriter, r *http.Request) {
	exports, err := report.ListExports(h.dir)
	if err != nil {
		h.log.Error().Err(err).Msg("list exports")
		http.Error(w, "could not list results", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := report.IndexPage(exports).Render(r.Context(), w); err != nil {
		h.log.Error().Err(err).Msg("render index")
	}
}

// serveReport renders one export, honouring an optional ?filter= value.
func (h handler) serveReport(w http.ResponseWriter, r *http.Request) {
	path, ok := h.exportPath(w, r)
	if !ok {
		return
	}
	filter, err := result.ParseFilter(r.URL.Query().Get("filter"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	doc, err := report.LoadResults(path)
	if err != nil {
		h.log.Error().Err(err).Str("path", path).Msg("load export")
		http.Error(w, "could not read result", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := report.ResultPage(doc, filter).Render(r.Context(), w); err != nil {
		h.log.Error().Err(err).Msg("render report")
	}
}

// serveJSON returns the export file as written.
func (h handler) serveJSON(w http.ResponseWriter, r *http.Request) {
	path, ok := h.exportPath(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "application/json")
	http.ServeFile(w, r, path)
}

// exportPath maps the {id} path value to an existing export file.
func (h handler) exportPath(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := r.PathValue("id")
	if err := validate.Var("id", id, "required,uuid"); err != nil {
		http.Error(w, "invalid exam id", http.StatusBadRequest)
		return "", false
	}
	path := filepath.Join(h.dir, result.FileName(id))
	if _, err := os.Stat(path); err != nil {
		http.Error(w, "result not found", http.StatusNotFound)
		return "", false
	}
	return path, true
}
