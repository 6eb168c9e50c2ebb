// Package web serves a localhost-only single-user UI; it intentionally has no
// auth/CSRF protection in this mode.
//
// The server is stateless: the review page carries the uploaded file forward
// in a hidden field so the export request can run the pipeline again.
package web

import (
	"bytes"
	"embed"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"

	"billsheet/config"
	"billsheet/importer"
	"billsheet/internal/selection"
	"billsheet/output"
	"billsheet/pipeline"
	"billsheet/timesheet"
)

//go:embed templates/*.html
var templateFS embed.FS

// DefaultMaxUploadBytes caps one uploaded timesheet. The review page sends
// the file back base64 encoded, so forms accept the encoded size.
const DefaultMaxUploadBytes = 24 << 20

type Server struct {
	cfg       config.Config
	mux       *http.ServeMux
	maxUpload int64
}

type personView struct {
	ID       string
	Name     string
	Records  int
	Hours    string
	Billable string
	Default  bool
}

type reviewPageView struct {
	Title        string
	RunID        string
	Filename     string
	Upload       string
	Stats        importer.FilterStats
	SignalColumn string
	Persons      []personView
	Columns      []string
	Rows         [][]string
	PreviewLimit int
	Selected     int
	Total        int
}

type indexPageView struct {
	Title        string
	Error        string
	MaxUploadMiB int64
}

type classifyResponse struct {
	RunID        string                 `json:"run_id"`
	SignalColumn string                 `json:"signal_column"`
	Stats        statsPayload           `json:"stats"`
	Records      []recordPayload        `json:"records"`
	Persons      []output.PersonSummary `json:"persons"`
}

type statsPayload struct {
	RowsRead     int `json:"rows_read"`
	RowsKept     int `json:"rows_kept"`
	InvalidHours int `json:"invalid_hours"`
	ZeroHours    int `json:"zero_hours"`
	Excluded     int `json:"excluded"`
}

type recordPayload struct {
	timesheet.Record
	Date   string `json:"date"`
	Reason string `json:"reason"`
}

func NewServer(cfg config.Config) http.Handler {
	return newServer(cfg, DefaultMaxUploadBytes)
}

func newServer(cfg config.Config, maxUpload int64) *Server {
	server := &Server{cfg: cfg, maxUpload: maxUpload}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", server.handleIndex)
	mux.HandleFunc("POST /review", server.handleReview)
	mux.HandleFunc("POST /export", server.handleExport)
	mux.HandleFunc("POST /api/classify", server.handleAPIClassify)
	mux.HandleFunc("POST /api/export", server.handleAPIExport)
	server.mux = mux

	return server
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	if err := renderTemplate(w, "index.html", indexPageView{Title: "billsheet", MaxUploadMiB: s.maxUpload >> 20}); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (s *Server) handleReview(w http.ResponseWriter, r *http.Request) {
	filename, content, ok := s.readUpload(w, r)
	if !ok {
		return
	}

	result, ok := s.process(w, filename, content)
	if !ok {
		return
	}

	defaults := result.Defaults()
	summaries := result.Summaries(defaults)
	persons := make([]personView, 0, len(summaries))
	for _, summary := range summaries {
		persons = append(persons, personView{
			ID:       summary.ID,
			Name:     summary.Name,
			Records:  summary.RecordCount,
			Hours:    summary.Hours.StringFixed(2),
			Billable: summary.BillableHours.StringFixed(2),
			Default:  summary.Default,
		})
	}

	preview := result.Preview(defaults, -1)
	rows := make([][]string, 0, len(preview))
	for _, row := range preview {
		rows = append(rows, append(row.Record.Values(), row.Reason))
	}

	view := reviewPageView{
		Title:        "Review " + filename,
		RunID:        result.RunID,
		Filename:     filename,
		Upload:       base64.StdEncoding.EncodeToString(content),
		Stats:        result.Filter,
		SignalColumn: result.SignalColumn,
		Persons:      persons,
		Columns:      append(append([]string(nil), timesheet.Columns...), "Reason"),
		Rows:         rows,
		PreviewLimit: s.cfg.Export.PreviewRows,
		Selected:     len(result.Selected(defaults)),
		Total:        len(result.Records),
	}
	if err := renderTemplate(w, "review.html", view); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(s.maxFormBytes()); err != nil {
		http.Error(w, fmt.Sprintf("parse multipart form: %v", err), http.StatusBadRequest)
		return
	}

	filename := strings.TrimSpace(r.PostFormValue("filename"))
	content, err := base64.StdEncoding.DecodeString(r.PostFormValue("upload"))
	if err != nil || filename == "" || len(content) == 0 {
		http.Error(w, "missing uploaded timesheet", http.StatusBadRequest)
		return
	}
	if int64(len(content)) > s.maxUpload {
		http.Error(w, s.tooLargeMessage(), http.StatusRequestEntityTooLarge)
		return
	}

	result, ok := s.process(w, filename, content)
	if !ok {
		return
	}
	s.writeExport(w, result, selection.NewSet(r.PostForm["person"]...))
}

func (s *Server) handleAPIClassify(w http.ResponseWriter, r *http.Request) {
	filename, content, ok := s.readUpload(w, r)
	if !ok {
		return
	}

	result, ok := s.process(w, filename, content)
	if !ok {
		return
	}

	records := make([]recordPayload, 0, len(result.Records))
	for _, record := range result.Records {
		records = append(records, recordPayload{
			Record: record,
			Date:   timesheet.FormatDate(record.Date),
			Reason: string(result.Explain(record)),
		})
	}

	writeJSON(w, http.StatusOK, classifyResponse{
		RunID:        result.RunID,
		SignalColumn: result.SignalColumn,
		Stats: statsPayload{
			RowsRead:     result.Filter.RowsRead,
			RowsKept:     result.Filter.RowsKept,
			InvalidHours: result.Filter.InvalidHours,
			ZeroHours:    result.Filter.ZeroHours,
			Excluded:     result.Filter.Excluded,
		},
		Records: records,
		Persons: result.Summaries(result.Defaults()),
	})
}

// handleAPIExport exports the persons named in the person form values, or
// the default selection when none are given.
func (s *Server) handleAPIExport(w http.ResponseWriter, r *http.Request) {
	filename, content, ok := s.readUpload(w, r)
	if !ok {
		return
	}

	result, ok := s.process(w, filename, content)
	if !ok {
		return
	}

	selected := result.Defaults()
	if ids := r.MultipartForm.Value["person"]; len(ids) > 0 {
		selected = selection.NewSet(ids...)
	}
	s.writeExport(w, result, selected)
}

func (s *Server) process(w http.ResponseWriter, filename string, content []byte) (*pipeline.Result, bool) {
	format, err := importer.InferFormat(filename, "")
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return nil, false
	}

	reader, err := importer.ReaderForFormat(format, s.cfg.Input.Sheet)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return nil, false
	}
	table, err := reader.Read(bytes.NewReader(content))
	if err != nil {
		slog.Warn("upload unreadable", "file", filename, "error", err)
		http.Error(w, fmt.Sprintf("read %s: %v", filename, err), http.StatusUnprocessableEntity)
		return nil, false
	}

	result, err := pipeline.Process(*table, s.cfg)
	if err != nil {
		slog.Warn("upload rejected", "file", filename, "error", err)
		http.Error(w, err.Error(), statusForError(err))
		return nil, false
	}
	return result, true
}

func (s *Server) writeExport(w http.ResponseWriter, result *pipeline.Result, selected selection.Set) {
	writer := &output.ExcelWriter{Sheet: s.cfg.Export.Sheet}
	content, err := pipeline.Export(result, selected, writer)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", writer.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", exportFilename(s.cfg.Export.Filename)))
	w.Header().Set("X-Run-Id", result.RunID)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(content)
}

func statusForError(err error) int {
	if errors.Is(err, importer.ErrMissingColumn) || errors.Is(err, importer.ErrMalformedInput) {
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

// maxFormBytes is the multipart memory budget: a maximal upload after
// base64 growth, plus room for the person values.
func (s *Server) maxFormBytes() int64 {
	return int64(base64.StdEncoding.EncodedLen(int(s.maxUpload))) + 1<<20
}

func (s *Server) tooLargeMessage() string {
	return fmt.Sprintf("uploaded file exceeds the %d byte limit", s.maxUpload)
}

func (s *Server) readUpload(w http.ResponseWriter, r *http.Request) (string, []byte, bool) {
	if err := r.ParseMultipartForm(s.maxFormBytes()); err != nil {
		http.Error(w, fmt.Sprintf("parse multipart form: %v", err), http.StatusBadRequest)
		return "", nil, false
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "missing file upload", http.StatusBadRequest)
		return "", nil, false
	}
	defer file.Close()

	content, err := io.ReadAll(io.LimitReader(file, s.maxUpload+1))
	if err != nil {
		http.Error(w, fmt.Sprintf("read upload: %v", err), http.StatusBadRequest)
		return "", nil, false
	}
	if int64(len(content)) > s.maxUpload {
		http.Error(w, s.tooLargeMessage(), http.StatusRequestEntityTooLarge)
		return "", nil, false
	}
	if len(content) == 0 {
		http.Error(w, "uploaded file is empty", http.StatusBadRequest)
		return "", nil, false
	}
	return filepath.Base(strings.TrimSpace(header.Filename)), content, true
}

func exportFilename(configured string) string {
	base := filepath.Base(strings.TrimSpace(configured))
	if base == "" || base == "." {
		return "filtered_data.xlsx"
	}
	if strings.ToLower(filepath.Ext(base)) != ".xlsx" {
		return strings.TrimSuffix(base, filepath.Ext(base)) + ".xlsx"
	}
	return base
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func renderTemplate(w http.ResponseWriter, pageTemplate string, data any) error {
	tmpl, err := template.New("base.html").ParseFS(templateFS, "templates/base.html", "templates/"+pageTemplate)
	if err != nil {
		return fmt.Errorf("parse template %s: %w", pageTemplate, err)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "base", data); err != nil {
		return fmt.Errorf("render template %s: %w", pageTemplate, err)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, err = buf.WriteTo(w)
	return err
}
