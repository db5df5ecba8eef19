// Package server exposes the conversion pipeline over HTTP: upload a raw
// export, download the styled workbook or preview the styled table in the
// browser.
package server

import (
	"errors"
	"fmt"
	"html"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"chainfmt/pkg/chain"
	"chainfmt/pkg/chain/parser"
	chainrender "chainfmt/pkg/chain/render"
)

// maxUploadBytes caps the multipart form size for uploaded workbooks.
const maxUploadBytes = 32 << 20

// Server handles the web surface.
type Server struct {
	log        zerolog.Logger
	opts       chain.Options
	renderOpts chain.RenderOptions
}

// New creates a Server.
func New(log zerolog.Logger, opts chain.Options, renderOpts chain.RenderOptions) *Server {
	return &Server{log: log, opts: opts, renderOpts: renderOpts}
}

// Router builds the HTTP routes.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/", s.handleIndex)
	r.Get("/healthz", s.handleHealth)
	r.Post("/convert", s.handleConvert)
	r.Post("/preview", s.handlePreview)
	r.Post("/api/preview", s.handlePreviewJSON)
	return r
}

// ListenAndServe runs the server until the listener fails.
func (s *Server) ListenAndServe(addr string) error {
	s.log.Info().Str("addr", addr).Msg("serving")
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return srv.ListenAndServe()
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("duration", time.Since(start)).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("request")
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]string{"status": "ok"})
}

func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	conversionID := uuid.NewString()

	file, header, err := s.openUpload(w, r, conversionID)
	if err != nil {
		return
	}
	defer file.Close()

	wb, err := chain.ConvertReader(file, s.opts, s.renderOpts)
	if err != nil {
		s.renderError(w, r, statusFor(err), conversionID, err)
		return
	}
	defer wb.Close()

	name := outputName(header.Filename, conversionID)
	s.log.Info().
		Str("conversion_id", conversionID).
		Str("input", header.Filename).
		Str("output", name).
		Msg("converted")

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	if _, err := wb.WriteTo(w); err != nil {
		s.log.Error().Err(err).Str("conversion_id", conversionID).Msg("write workbook")
	}
}

func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	conversionID := uuid.NewString()

	file, header, err := s.openUpload(w, r, conversionID)
	if err != nil {
		return
	}
	defer file.Close()

	report, err := chain.ProcessReader(file, s.opts)
	if err != nil {
		s.renderError(w, r, statusFor(err), conversionID, err)
		return
	}

	plan := chain.Plan(*report, s.renderOpts)
	limit := queryInt(r, "rows", 0)

	s.log.Info().
		Str("conversion_id", conversionID).
		Str("input", header.Filename).
		Int("rows", len(report.Rows)).
		Int("limit", limit).
		Msg("preview")

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprintf(w, previewHeader, html.EscapeString(header.Filename))
	if err := chainrender.WriteHTMLTable(w, *report, plan, limit); err != nil {
		s.log.Error().Err(err).Str("conversion_id", conversionID).Msg("write preview")
	}
	fmt.Fprint(w, previewFooter)
}

func (s *Server) handlePreviewJSON(w http.ResponseWriter, r *http.Request) {
	conversionID := uuid.NewString()

	file, _, err := s.openUpload(w, r, conversionID)
	if err != nil {
		return
	}
	defer file.Close()

	report, err := chain.ProcessReader(file, s.opts)
	if err != nil {
		s.renderError(w, r, statusFor(err), conversionID, err)
		return
	}

	plan := chain.Plan(*report, s.renderOpts)
	render.JSON(w, r, buildPreview(conversionID, *report, plan, queryInt(r, "rows", 0)))
}

func (s *Server) openUpload(w http.ResponseWriter, r *http.Request, conversionID string) (file multipartFile, header uploadHeader, err error) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		err = fmt.Errorf("parse upload: %w", err)
		s.renderError(w, r, http.StatusBadRequest, conversionID, err)
		return nil, uploadHeader{}, err
	}
	f, fh, err := r.FormFile("file")
	if err != nil {
		err = fmt.Errorf("missing \"file\" field: %w", err)
		s.renderError(w, r, http.StatusBadRequest, conversionID, err)
		return nil, uploadHeader{}, err
	}
	return f, uploadHeader{Filename: fh.Filename}, nil
}

func (s *Server) renderError(w http.ResponseWriter, r *http.Request, status int, conversionID string, err error) {
	s.log.Warn().Err(err).Str("conversion_id", conversionID).Msg("conversion failed")
	render.Status(r, status)
	render.JSON(w, r, errorResponse{Error: err.Error(), ConversionID: conversionID})
}

type errorResponse struct {
	Error        string `json:"error"`
	ConversionID string `json:"conversion_id"`
}

// statusFor maps pipeline errors onto HTTP statuses. Structural and
// missing-column diagnostics are the user's problem to fix, not ours.
func statusFor(err error) int {
	var missing *parser.MissingColumnError
	switch {
	case errors.As(err, &missing), errors.Is(err, parser.ErrTooFewRows):
		return http.StatusUnprocessableEntity
	case errors.Is(err, chain.ErrNoSheet):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusBadRequest
	}
}

// outputName derives the download name from the uploaded name, falling back
// to the conversion ID when the upload was anonymous.
func outputName(uploaded, conversionID string) string {
	base := strings.TrimSuffix(filepath.Base(uploaded), filepath.Ext(uploaded))
	if base == "" || base == "." {
		base = "OptionChain_" + conversionID[:8]
	}
	return base + "_processed.xlsx"
}

func queryInt(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		raw = r.FormValue(key)
	}
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return fallback
	}
	return n
}
