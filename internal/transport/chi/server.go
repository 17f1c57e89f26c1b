// Package chi is the HTTP transport: routing, scope extraction, parameter
// parsing, and domain error translation.
package chi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/fundguard/playersearch/internal/domain"
	domsearch "github.com/fundguard/playersearch/internal/domain/search"
	healthuc "github.com/fundguard/playersearch/internal/usecase/health"
	indexuc "github.com/fundguard/playersearch/internal/usecase/index"
	searchuc "github.com/fundguard/playersearch/internal/usecase/search"
)

// Caller identity headers, filled by the edge proxy after authentication.
const (
	headerFundID = "X-Fund-ID"
	headerRole   = "X-Role"
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server exposes the search and index usecases over HTTP.
type Server struct {
	search        *searchuc.Service
	index         *indexuc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	search *searchuc.Service,
	index *indexuc.Service,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	s := &Server{
		search: search,
		index:  index,
		health: health,
		logger: logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrPlayerNotFound, http.StatusNotFound, "player_not_found"),
		sentinelHandler(domain.ErrForbidden, http.StatusForbidden, "forbidden"),
		sentinelHandler(domain.ErrInvalidArgument, http.StatusBadRequest, "invalid_argument"),
		sentinelHandler(domain.ErrUnavailable, http.StatusServiceUnavailable, "search_unavailable"),
	}
	return s
}

// Register mounts all routes on the given router.
func (s *Server) Register(r chi.Router) {
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	r.Route("/api/v1/search", func(r chi.Router) {
		r.Get("/unified", s.UnifiedSearch)
		r.Post("/init", s.InitIndex)
		r.Post("/recreate", s.RecreateIndex)
		r.Delete("/index", s.DeleteIndex)
		r.Post("/index-players", s.IndexAllPlayers)
		r.Post("/index-player/{playerID}", s.IndexPlayer)
	})
}

// unifiedSearchResponse mirrors the hit page plus a total for the client.
type unifiedSearchResponse struct {
	Players      []domsearch.Result `json:"players"`
	TotalPlayers int                `json:"total_players"`
}

// UnifiedSearch handles GET /api/v1/search/unified.
func (s *Server) UnifiedSearch(w http.ResponseWriter, r *http.Request) {
	scope, ok := s.scopeFromRequest(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	in := searchuc.Input{
		Query:      q.Get("query"),
		Room:       q.Get("room"),
		Discipline: q.Get("discipline"),
	}
	var err error
	if in.From, err = intParam(q.Get("skip"), 0); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_argument", "skip must be an integer")
		return
	}
	if in.Size, err = intParam(q.Get("limit"), 0); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_argument", "limit must be an integer")
		return
	}

	results, err := s.search.Search(r.Context(), scope, in)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, unifiedSearchResponse{
		Players:      results,
		TotalPlayers: len(results),
	})
}

// InitIndex handles POST /api/v1/search/init. Idempotent.
func (s *Server) InitIndex(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.adminScopeFromRequest(w, r); !ok {
		return
	}

	if err := s.index.EnsureIndex(r.Context()); err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, statusResponse{Status: "success", Message: "index ready"})
}

// RecreateIndex handles POST /api/v1/search/recreate: drop and rebuild the
// mapping. Documents must be reindexed afterwards.
func (s *Server) RecreateIndex(w http.ResponseWriter, r *http.Request) {
	scope, ok := s.adminScopeFromRequest(w, r)
	if !ok {
		return
	}

	if err := s.index.RecreateIndex(r.Context(), scope); err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, statusResponse{Status: "success", Message: "index recreated"})
}

// DeleteIndex handles DELETE /api/v1/search/index.
func (s *Server) DeleteIndex(w http.ResponseWriter, r *http.Request) {
	scope, ok := s.adminScopeFromRequest(w, r)
	if !ok {
		return
	}

	if err := s.index.DeleteIndex(r.Context(), scope); err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, statusResponse{Status: "success", Message: "index deleted"})
}

// reindexResponse reports the outcome of a full reindex.
type reindexResponse struct {
	Status string `json:"status"`
	indexuc.Summary
}

// IndexAllPlayers handles POST /api/v1/search/index-players.
func (s *Server) IndexAllPlayers(w http.ResponseWriter, r *http.Request) {
	scope, ok := s.adminScopeFromRequest(w, r)
	if !ok {
		return
	}

	sum, err := s.index.ReindexAll(r.Context(), scope)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, reindexResponse{Status: "success", Summary: sum})
}

// IndexPlayer handles POST /api/v1/search/index-player/{playerID}.
func (s *Server) IndexPlayer(w http.ResponseWriter, r *http.Request) {
	scope, ok := s.scopeFromRequest(w, r)
	if !ok {
		return
	}

	playerID, err := uuid.Parse(chi.URLParam(r, "playerID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_argument", "player id must be a UUID")
		return
	}

	if err := s.index.IndexPlayer(r.Context(), scope, playerID); err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, statusResponse{
		Status:   "success",
		Message:  "player indexed",
		PlayerID: playerID.String(),
	})
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	httpStatus := http.StatusOK
	if report.Status == healthuc.Unhealthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, map[string]any{
		"status": report.Status,
		"checks": report.Checks,
	})
}

// scopeFromRequest derives the caller's tenant scope from identity headers.
func (s *Server) scopeFromRequest(w http.ResponseWriter, r *http.Request) (domain.Scope, bool) {
	if r.Header.Get(headerRole) == "admin" {
		return domain.AdminScope(), true
	}

	raw := r.Header.Get(headerFundID)
	if raw == "" {
		writeError(w, http.StatusUnauthorized, "missing_scope", "caller fund is required")
		return domain.Scope{}, false
	}
	fundID, err := uuid.Parse(raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_argument", "fund id must be a UUID")
		return domain.Scope{}, false
	}
	return domain.NewScope(fundID), true
}

// adminScopeFromRequest rejects non-admin callers before hitting the usecase.
func (s *Server) adminScopeFromRequest(w http.ResponseWriter, r *http.Request) (domain.Scope, bool) {
	scope, ok := s.scopeFromRequest(w, r)
	if !ok {
		return domain.Scope{}, false
	}
	if !scope.Admin() {
		writeError(w, http.StatusForbidden, "forbidden", "admin role required")
		return domain.Scope{}, false
	}
	return scope, true
}

type statusResponse struct {
	Status   string `json:"status"`
	Message  string `json:"message"`
	PlayerID string `json:"player_id,omitempty"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func intParam(raw string, def int) (int, error) {
	if raw == "" {
		return def, nil
	}
	return strconv.Atoi(raw)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Code: code, Message: message})
}

// safeDomainMessage returns a sentinel error message for the client without
// exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrPlayerNotFound,
		domain.ErrForbidden,
		domain.ErrInvalidArgument,
		domain.ErrUnavailable,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code string) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			s.logger.Warn("domain error", zap.Error(err))
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
}
