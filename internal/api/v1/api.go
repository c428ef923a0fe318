// Package v1 implements the native REST API and the HTTP method channel.
package v1

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/vmunix/mediascan/internal/channel"
	"github.com/vmunix/mediascan/internal/mediaindex"
)

// maxCallBytes bounds the size of a method-call body.
const maxCallBytes = 1 << 20

// Config holds API server configuration.
type Config struct {
	ChannelName string
	Version     string
}

// Server is the v1 API server.
type Server struct {
	deps   ServerDeps
	cfg    Config
	logger *slog.Logger
}

// New creates a new v1 API server.
func New(cfg Config, deps ServerDeps, logger *slog.Logger) (*Server, error) {
	if err := deps.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMissingDependency, err)
	}
	if cfg.ChannelName == "" {
		cfg.ChannelName = channel.Name
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		deps:   deps,
		cfg:    cfg,
		logger: logger.With("component", "api"),
	}, nil
}

// RegisterRoutes registers API routes on the given mux.
func (s *Server) RegisterRoutes(mux *http.ServeMux) {
	// Method channel
	mux.HandleFunc("POST /api/v1/channels/{name}", s.callChannel)

	// Local index
	mux.HandleFunc("GET /api/v1/files", s.requireIndex(s.listFiles))
	mux.HandleFunc("GET /api/v1/files/lookup", s.requireIndex(s.lookupFile))

	// Events
	mux.HandleFunc("GET /api/v1/events", s.requireEventLog(s.listEvents))
	mux.HandleFunc("GET /api/v1/events/wait", s.requireEventBus(s.waitEvent))

	// System
	mux.HandleFunc("GET /api/v1/status", s.getStatus)
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func writeError(w http.ResponseWriter, code int, errCode, message string) {
	writeJSON(w, code, errorResponse{Error: message, Code: errCode})
}

func writeJSON(w http.ResponseWriter, code int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(data)
}

// queryInt extracts an optional integer from query string.
func queryInt(r *http.Request, name string, defaultVal int) int {
	val := r.URL.Query().Get(name)
	if val == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return i
}

func (s *Server) callChannel(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	if name != s.cfg.ChannelName {
		writeError(w, http.StatusNotFound, "CHANNEL_NOT_FOUND", fmt.Sprintf("No channel named %q", name))
		return
	}

	var req channel.Request
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxCallBytes))
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_REQUEST", "invalid method call: "+err.Error())
		return
	}
	// One call per body.
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "INVALID_REQUEST", "invalid method call: unexpected data after JSON object")
		return
	}

	resp := s.deps.Handler.Handle(req)

	if resp.IsNotImplemented() {
		attrs := []any{"method", req.Method}
		if hint := channel.Suggest(req.Method); hint != "" {
			attrs = append(attrs, "did_you_mean", hint)
		}
		s.logger.Info("method not implemented", attrs...)
	}

	writeJSON(w, http.StatusOK, resp)
}

func fileToResponse(f *mediaindex.File) fileResponse {
	return fileResponse{
		Path:       f.Path,
		SizeBytes:  f.SizeBytes,
		ModifiedAt: f.ModifiedAt,
		MimeType:   f.MimeType,
		Title:      f.Title,
		Artist:     f.Artist,
		Album:      f.Album,
		Year:       f.Year,
		IndexedAt:  f.IndexedAt,
	}
}

func (s *Server) listFiles(w http.ResponseWriter, r *http.Request) {
	const defaultLimit, maxLimit = 50, 1000
	limit := queryInt(r, "limit", defaultLimit)
	offset := queryInt(r, "offset", 0)
	if offset < 0 {
		writeError(w, http.StatusBadRequest, "INVALID_PAGINATION", "offset must be non-negative")
		return
	}
	if limit <= 0 {
		limit = defaultLimit
	}
	limit = min(limit, maxLimit)

	filter := mediaindex.Filter{
		MimePrefix: r.URL.Query().Get("mime"),
		Limit:      limit,
		Offset:     offset,
	}
	files, total, err := s.deps.Index.List(r.Context(), filter)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "DB_ERROR", err.Error())
		return
	}

	resp := listFilesResponse{
		Items:  make([]fileResponse, len(files)),
		Total:  total,
		Limit:  limit,
		Offset: offset,
	}
	for i, f := range files {
		resp.Items[i] = fileToResponse(f)
	}

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) lookupFile(w http.ResponseWriter, r *http.Request) {
	path := mediaindex.NormalizePath(r.URL.Query().Get("path"))
	if path == "" {
		writeError(w, http.StatusBadRequest, "MISSING_PATH", "path query parameter is required")
		return
	}

	f, err := s.deps.Index.Get(r.Context(), path)
	if err != nil {
		if errors.Is(err, mediaindex.ErrNotFound) {
			writeError(w, http.StatusNotFound, "NOT_FOUND", "File not indexed")
			return
		}
		writeError(w, http.StatusInternalServerError, "DB_ERROR", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, fileToResponse(f))
}

func (s *Server) getStatus(w http.ResponseWriter, r *http.Request) {
	resp := statusResponse{
		Status:   "ok",
		Version:  s.cfg.Version,
		Channel:  s.cfg.ChannelName,
		Backends: []string{},
	}

	if s.deps.Scanner != nil {
		resp.Backends = s.deps.Scanner.Backends()
		resp.Pending = s.deps.Scanner.Pending()
	}

	if s.deps.Index != nil {
		n, err := s.deps.Index.Count(r.Context())
		if err != nil {
			s.logger.Warn("count indexed files", "error", err)
		} else {
			resp.IndexedFiles = &n
		}
	}

	if s.deps.Plex != nil {
		ps := &plexStatus{}
		id, err := s.deps.Plex.GetIdentity(r.Context())
		if err != nil {
			ps.Error = err.Error()
			resp.Status = "degraded"
		} else {
			ps.Connected = true
			ps.Name = id.Name
			ps.Version = id.Version
		}
		resp.Plex = ps
	}

	writeJSON(w, http.StatusOK, resp)
}
