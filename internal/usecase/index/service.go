// Package index is the index-administration usecase: lifecycle, single
// player indexing with ownership checks, and the full reindex walk.
package index

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/fundguard/playersearch/internal/domain"
	"github.com/fundguard/playersearch/internal/logger"
	"github.com/fundguard/playersearch/internal/metrics"
)

// Config holds reindex batching policy.
type Config struct {
	BatchSize   int
	Concurrency int
}

// Summary reports the outcome of a full reindex. Failed counts players
// whose document could not be written; they never abort the walk.
type Summary struct {
	Attempted int `json:"attempted"`
	Indexed   int `json:"indexed"`
	Failed    int `json:"failed"`
}

// Service handles index administration.
type Service struct {
	writer  Writer
	players PlayerSource
	cfg     Config
}

// New creates an index service.
func New(writer Writer, players PlayerSource, cfg Config) *Service {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 100
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 4
	}
	return &Service{writer: writer, players: players, cfg: cfg}
}

// EnsureIndex creates the index when absent. Safe to call on every start.
func (s *Service) EnsureIndex(ctx context.Context) error {
	if err := s.writer.EnsureIndex(ctx); err != nil {
		return fmt.Errorf("ensure index: %w", err)
	}
	return nil
}

// RecreateIndex drops and recreates the index with the current mapping.
// Admin only: the index is shared across funds.
func (s *Service) RecreateIndex(ctx context.Context, scope domain.Scope) error {
	if !scope.Admin() {
		return domain.ErrForbidden
	}
	if err := s.writer.DeleteIndex(ctx); err != nil {
		return fmt.Errorf("delete index: %w", err)
	}
	if err := s.writer.EnsureIndex(ctx); err != nil {
		return fmt.Errorf("recreate index: %w", err)
	}
	return nil
}

// DeleteIndex drops the index. Admin only.
func (s *Service) DeleteIndex(ctx context.Context, scope domain.Scope) error {
	if !scope.Admin() {
		return domain.ErrForbidden
	}
	if err := s.writer.DeleteIndex(ctx); err != nil {
		return fmt.Errorf("delete index: %w", err)
	}
	return nil
}

// IndexPlayer loads one player and writes its document. The caller must
// own the player's fund (or be admin); a scope mismatch is reported as
// domain.ErrForbidden.
func (s *Service) IndexPlayer(ctx context.Context, scope domain.Scope, id uuid.UUID) error {
	if s.players == nil {
		return fmt.Errorf("player store not configured: %w", domain.ErrUnavailable)
	}

	player, err := s.players.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("load player: %w", err)
	}

	if !scope.Allows(player.FundID) {
		return domain.ErrForbidden
	}

	if err := s.writer.IndexPlayer(ctx, player); err != nil {
		metrics.IndexedPlayersTotal.WithLabelValues("failed").Inc()
		return fmt.Errorf("index player %s: %w", id, err)
	}
	metrics.IndexedPlayersTotal.WithLabelValues("ok").Inc()
	return nil
}

// ReindexAll walks every player in id order and rewrites its document.
// Admin only. Individual write failures are counted and logged but do not
// abort the walk; cancellation is honored between batches.
func (s *Service) ReindexAll(ctx context.Context, scope domain.Scope) (Summary, error) {
	if !scope.Admin() {
		return Summary{}, domain.ErrForbidden
	}
	if s.players == nil {
		return Summary{}, fmt.Errorf("player store not configured: %w", domain.ErrUnavailable)
	}

	start := time.Now()
	log := logger.FromContext(ctx)

	if err := s.writer.EnsureIndex(ctx); err != nil {
		return Summary{}, fmt.Errorf("ensure index: %w", err)
	}

	var attempted, indexed, failed atomic.Int64
	after := uuid.Nil
	for {
		if err := ctx.Err(); err != nil {
			return s.summary(&attempted, &indexed, &failed), fmt.Errorf("reindex interrupted: %w", err)
		}

		page, err := s.players.ListPage(ctx, after, s.cfg.BatchSize)
		if err != nil {
			return s.summary(&attempted, &indexed, &failed), fmt.Errorf("list players: %w", err)
		}
		if len(page) == 0 {
			break
		}

		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(s.cfg.Concurrency)
		for _, player := range page {
			player := player
			g.Go(func() error {
				attempted.Add(1)
				if err := s.writer.IndexPlayer(gctx, player); err != nil {
					failed.Add(1)
					metrics.IndexedPlayersTotal.WithLabelValues("failed").Inc()
					log.Warn("skipping player after index failure",
						zap.String("player_id", player.ID.String()),
						zap.Error(err))
					return nil
				}
				indexed.Add(1)
				metrics.IndexedPlayersTotal.WithLabelValues("ok").Inc()
				return nil
			})
		}
		_ = g.Wait() // workers never return errors

		after = page[len(page)-1].ID
		if len(page) < s.cfg.BatchSize {
			break
		}
	}

	metrics.ReindexDuration.Observe(time.Since(start).Seconds())
	sum := s.summary(&attempted, &indexed, &failed)
	log.Info("reindex finished",
		zap.Int("attempted", sum.Attempted),
		zap.Int("indexed", sum.Indexed),
		zap.Int("failed", sum.Failed),
		zap.Duration("took", time.Since(start)))
	return sum, nil
}

func (s *Service) summary(attempted, indexed, failed *atomic.Int64) Summary {
	return Summary{
		Attempted: int(attempted.Load()),
		Indexed:   int(indexed.Load()),
		Failed:    int(failed.Load()),
	}
}
