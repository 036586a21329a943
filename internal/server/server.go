// Package server exposes report extraction over HTTP
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/myusername/match-report-scraper/pkg/models"
	"github.com/myusername/match-report-scraper/pkg/parser"
)

// Saver persists successfully extracted records
type Saver interface {
	Save(ctx context.Context, rec models.Record) error
}

// Server handles report uploads
type Server struct {
	extractor *parser.Extractor
	saver     Saver
	logger    *slog.Logger
	maxPages  int
	maxBytes  int64
	router    *chi.Mux
}

// Params holds the dependencies of a Server. Saver may be nil.
type Params struct {
	Extractor *parser.Extractor
	Saver     Saver
	Logger    *slog.Logger
	MaxPages  int
	MaxBytes  int64
}

// New creates a Server and builds its router
func New(p Params) *Server {
	s := &Server{
		extractor: p.Extractor,
		saver:     p.Saver,
		logger:    p.Logger,
		maxPages:  p.MaxPages,
		maxBytes:  p.MaxBytes,
	}
	if s.extractor == nil {
		s.extractor = parser.NewExtractor(parser.WithLogger(p.Logger))
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.maxBytes <= 0 {
		s.maxBytes = 20 << 20
	}
	s.router = s.buildRouter()
	return s
}

func (s *Server) buildRouter() *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(allowCORS)

	r.Get("/health", s.handleHealth)
	r.Post("/upload", s.handleUpload)
	r.Options("/upload", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	return r
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// UploadResponse is the body of a successful upload
type UploadResponse struct {
	Success bool          `json:"success"`
	Message string        `json:"message"`
	Data    models.Record `json:"data"`
	Debug   *DebugPayload `json:"debug,omitempty"`
}

// DebugPayload carries the diagnostics of the extraction that produced the response
type DebugPayload struct {
	Lines       []parser.Line       `json:"lines"`
	Diagnostics []parser.Diagnostic `json:"diagnostics"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxBytes)

	file, header, err := r.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse{Error: "file too large"})
			return
		}
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "no file found"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: fmt.Sprintf("failed to read upload: %v", err)})
		return
	}

	report, err := s.extractor.ParseDocument(parser.DetectSource(data, s.maxPages), data, s.maxPages)
	if err != nil {
		s.logger.Error("extraction failed", "file", header.Filename, "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: fmt.Sprintf("processing failed: %v", err)})
		return
	}

	resp := UploadResponse{
		Success: report.OK,
		Message: "data extracted",
		Data:    report.Record,
	}
	if !report.OK {
		resp.Message = "no game number found"
	}

	if report.OK && s.saver != nil {
		if err := s.saver.Save(r.Context(), report.Record.Clone()); err != nil {
			s.logger.Error("failed to save record", "game_id", report.Record.ID(), "error", err)
			writeJSON(w, http.StatusInternalServerError, errorResponse{Error: fmt.Sprintf("failed to save record: %v", err)})
			return
		}
		resp.Message = "data extracted and saved"
	}

	if debug, _ := strconv.ParseBool(r.URL.Query().Get("debug")); debug {
		resp.Debug = &DebugPayload{Lines: report.Lines, Diagnostics: report.Diagnostics}
	}

	s.logger.Info("report processed",
		"file", header.Filename,
		"game_id", report.Record.ID(),
		"success", report.OK,
		"diagnostics", len(report.Diagnostics))
	writeJSON(w, http.StatusOK, resp)
}

func allowCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
