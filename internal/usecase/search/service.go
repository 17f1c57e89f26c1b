// Package search is the player search usecase: input hygiene, name variant
// resolution, paging policy, the degraded-mode empty page, and the result
// cache sit here; query translation and failure classification live in
// the repository.
package search

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/fundguard/playersearch/internal/cache"
	"github.com/fundguard/playersearch/internal/domain"
	domsearch "github.com/fundguard/playersearch/internal/domain/search"
	"github.com/fundguard/playersearch/internal/domain/names"
	"github.com/fundguard/playersearch/internal/logger"
	"github.com/fundguard/playersearch/internal/metrics"
)

// Queries shorter than this many runes never reach the backend.
const minQueryRunes = 2

// Config holds paging policy.
type Config struct {
	DefaultPageSize int
	MaxPageSize     int
}

// Input is one raw search request as received from the transport.
type Input struct {
	Query      string
	Room       string
	Discipline string
	From       int
	Size       int
}

// Service handles player search requests.
type Service struct {
	repo  Repository
	table *names.Table
	cache ResultCache // nil disables caching
	cfg   Config
}

// New creates a search service. Pass a nil cache to disable result caching.
func New(repo Repository, table *names.Table, resultCache ResultCache, cfg Config) *Service {
	return &Service{repo: repo, table: table, cache: resultCache, cfg: cfg}
}

// Search resolves the query against the name variant table and executes it
// within the caller's scope. Queries shorter than two runes short-circuit
// to an empty result without touching the backend.
func (s *Service) Search(ctx context.Context, scope domain.Scope, in Input) ([]domsearch.Result, error) {
	start := time.Now()

	term := s.table.Normalize(in.Query)
	if utf8.RuneCountInString(term.Original) < minQueryRunes {
		return []domsearch.Result{}, nil
	}

	req := domsearch.Request{
		Term:       term,
		Room:       in.Room,
		Discipline: in.Discipline,
		Scope:      scope,
		From:       in.From,
		Size:       in.Size,
	}
	s.applyPaging(&req)

	key := requestKey(req)
	if cached, ok := s.cacheGet(ctx, key); ok {
		metrics.SearchRequestsTotal.WithLabelValues("ok").Inc()
		metrics.SearchRequestDuration.Observe(time.Since(start).Seconds())
		return cached, nil
	}

	results, err := s.repo.Search(ctx, req)
	if err != nil {
		// A degraded page is served empty but never cached: the condition
		// clears the moment the index appears or the mapping is fixed.
		if errors.Is(err, domain.ErrDegraded) {
			metrics.SearchRequestsTotal.WithLabelValues("degraded").Inc()
			metrics.SearchRequestDuration.Observe(time.Since(start).Seconds())
			return []domsearch.Result{}, nil
		}
		metrics.SearchRequestsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("search: %w", err)
	}

	s.cacheSet(ctx, key, results)

	metrics.SearchRequestsTotal.WithLabelValues("ok").Inc()
	metrics.SearchRequestDuration.Observe(time.Since(start).Seconds())
	return results, nil
}

func (s *Service) applyPaging(req *domsearch.Request) {
	if req.From < 0 {
		req.From = 0
	}
	if req.Size <= 0 {
		req.Size = s.cfg.DefaultPageSize
	}
	if req.Size > s.cfg.MaxPageSize {
		req.Size = s.cfg.MaxPageSize
	}
}

func (s *Service) cacheGet(ctx context.Context, key string) ([]domsearch.Result, bool) {
	if s.cache == nil {
		return nil, false
	}

	data, err := s.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, cache.ErrMiss) {
			logger.FromContext(ctx).Warn("result cache read failed", zap.Error(err))
		}
		metrics.SearchCacheTotal.WithLabelValues("miss").Inc()
		return nil, false
	}

	var results []domsearch.Result
	if err := json.Unmarshal(data, &results); err != nil {
		logger.FromContext(ctx).Warn("discarding unreadable cache entry",
			zap.String("key", key), zap.Error(err))
		metrics.SearchCacheTotal.WithLabelValues("miss").Inc()
		return nil, false
	}

	metrics.SearchCacheTotal.WithLabelValues("hit").Inc()
	return results, true
}

func (s *Service) cacheSet(ctx context.Context, key string, results []domsearch.Result) {
	if s.cache == nil {
		return
	}

	data, err := json.Marshal(results)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, data); err != nil {
		logger.FromContext(ctx).Warn("result cache write failed", zap.Error(err))
	}
}

// requestKey derives a deterministic cache key from everything that can
// change the result page, the caller scope included.
func requestKey(req domsearch.Request) string {
	scope := "admin"
	if !req.Scope.Admin() {
		scope = req.Scope.FundID().String()
	}
	return cache.Key("search",
		req.Term.Term, req.Term.Original,
		req.Room, req.Discipline, scope,
		strconv.Itoa(req.From), strconv.Itoa(req.Size))
}
