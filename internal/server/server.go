package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"github.com/khalidmnor/legal-ai-assistant/internal/assistant"
	"github.com/khalidmnor/legal-ai-assistant/internal/audit"
	"github.com/khalidmnor/legal-ai-assistant/internal/config"
	"github.com/khalidmnor/legal-ai-assistant/internal/extract"
	"github.com/khalidmnor/legal-ai-assistant/internal/middleware"
	"github.com/khalidmnor/legal-ai-assistant/internal/session"
)

// Server hosts the HTTP API in front of the assistant service.
type Server struct {
	cfg      *config.Config
	svc      *assistant.Service
	sessions *session.Store
	usage    *audit.Log
	log      *slog.Logger
}

func New(cfg *config.Config, svc *assistant.Service, sessions *session.Store, usage *audit.Log, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{cfg: cfg, svc: svc, sessions: sessions, usage: usage, log: log}
}

// Router wires the middleware chain and every API route. /health sits
// outside the session loader so probes never allocate sessions.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(s.log))
	r.Use(middleware.Recoverer(s.log))
	r.Use(middleware.CORS)

	r.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.Use(middleware.WithSession(s.sessions, s.cfg.Assistant.Session.CookieSecure))
	api.HandleFunc("/functions", s.handleFunctions).Methods(http.MethodGet)
	api.HandleFunc("/functions/{id}", s.handleFunction).Methods(http.MethodGet)
	api.HandleFunc("/functions/{id}", s.handleRun).Methods(http.MethodPost)
	api.HandleFunc("/functions/{id}/download", s.handleDownload).Methods(http.MethodPost)
	api.HandleFunc("/extract", s.handleExtract).Methods(http.MethodPost)
	api.HandleFunc("/session", s.handleSession).Methods(http.MethodGet)
	api.HandleFunc("/session/credential", s.handlePutCredential).Methods(http.MethodPut)
	api.HandleFunc("/session/credential", s.handleDeleteCredential).Methods(http.MethodDelete)
	api.HandleFunc("/config", s.handleConfig).Methods(http.MethodGet)
	api.HandleFunc("/usage", s.handleUsage).Methods(http.MethodGet)

	return r
}

// credential resolves the API key for a request: the environment or
// config file key wins, then the session's stored key, else none.
func (s *Server) credential(r *http.Request) (string, string) {
	if key := s.cfg.Assistant.Completion.APIKey; key != "" {
		return key, "environment"
	}
	if id := middleware.SessionIDFrom(r.Context()); id != "" {
		if key, ok := s.sessions.Credential(id); ok {
			return key, "session"
		}
	}
	return "", "none"
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

func (s *Server) handleFunctions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.svc.Registry().List())
}

func (s *Server) handleFunction(w http.ResponseWriter, r *http.Request) {
	spec, err := s.svc.Registry().Get(mux.Vars(r)["id"])
	if err != nil {
		runError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, spec)
}

func (s *Server) handleRun(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Fields map[string]any `json:"fields"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid JSON body")
		return
	}

	credential, _ := s.credential(r)
	result, err := s.svc.Run(r.Context(), mux.Vars(r)["id"], req.Fields, credential)
	if err != nil {
		runError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// handleDownload re-derives the deterministic filename and returns the
// client-held result text as an attachment. The server keeps no copy
// of any result, so the content travels with the request.
func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	spec, err := s.svc.Registry().Get(mux.Vars(r)["id"])
	if err != nil {
		runError(w, err)
		return
	}
	if spec.Download == nil {
		writeError(w, http.StatusNotFound, "no_download", fmt.Sprintf("function %q offers no download", spec.ID))
		return
	}

	var req struct {
		Content string         `json:"content"`
		Fields  map[string]any `json:"fields"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid JSON body")
		return
	}
	fields, err := spec.Prepare(req.Fields)
	if err != nil {
		runError(w, err)
		return
	}

	name := spec.Download(fields, time.Now())
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.WriteHeader(http.StatusOK)
	io.Copy(w, strings.NewReader(req.Content))
}

func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	maxBytes := s.cfg.Assistant.Upload.MaxBytes
	if r.ContentLength > maxBytes {
		writeError(w, http.StatusRequestEntityTooLarge, "too_large",
			fmt.Sprintf("upload exceeds the %d byte limit", maxBytes))
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
	if err := r.ParseMultipartForm(maxBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "too_large",
				fmt.Sprintf("upload exceeds the %d byte limit", maxBytes))
			return
		}
		writeError(w, http.StatusBadRequest, "bad_request", "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", `multipart field "file" is required`)
		return
	}
	defer file.Close()

	kind := extract.NormalizeType(filepath.Ext(header.Filename))
	if !extract.Supported(kind) {
		writeError(w, http.StatusUnsupportedMediaType, "unsupported_type",
			"only .pdf and .docx uploads are supported")
		return
	}

	blob, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "could not read upload")
		return
	}

	text, err := extract.Extract(blob, kind)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "extraction_failed", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"text": text, "chars": len(text)})
}

func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	_, source := s.credential(r)
	writeJSON(w, http.StatusOK, map[string]any{
		"configured": source != "none",
		"source":     source,
	})
}

func (s *Server) handlePutCredential(w http.ResponseWriter, r *http.Request) {
	var req struct {
		APIKey string `json:"api_key"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid JSON body")
		return
	}
	if strings.TrimSpace(req.APIKey) == "" {
		writeError(w, http.StatusBadRequest, "validation", "api_key must not be empty")
		return
	}

	id := middleware.SessionIDFrom(r.Context())
	if id == "" || !s.sessions.SetCredential(id, req.APIKey) {
		writeError(w, http.StatusInternalServerError, "internal", "session unavailable")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteCredential(w http.ResponseWriter, r *http.Request) {
	if id := middleware.SessionIDFrom(r.Context()); id != "" {
		s.sessions.ClearCredential(id)
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleConfig(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.cfg.Sanitized())
}

func (s *Server) handleUsage(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "bad_request", "limit must be a positive integer")
			return
		}
		limit = n
	}

	entries, err := s.usage.Recent(limit)
	if err != nil {
		s.log.Error("usage query failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal", "could not read usage log")
		return
	}
	if entries == nil {
		entries = []audit.Entry{}
	}
	writeJSON(w, http.StatusOK, entries)
}
