// Package index projects player records into search documents and writes
// them to the indexed store.
package index

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/fundguard/playersearch/internal/domain"
	"github.com/fundguard/playersearch/internal/domain/names"
	"github.com/fundguard/playersearch/internal/es"
)

// store is the consumer interface for index writes (ISP).
type store interface {
	CreateIndex(ctx context.Context, name string, mapping []byte) error
	DeleteIndex(ctx context.Context, name string) error
	IndexExists(ctx context.Context, name string) (bool, error)
	PutDocument(ctx context.Context, index, id string, doc []byte) error
}

// Writer implements usecase/index.Repository: index lifecycle plus
// idempotent per-player upserts.
type Writer struct {
	store  store
	index  string
	table  *names.Table
	logger *zap.Logger
}

// NewWriter creates an index writer. The synonym filter baked into the
// index mapping is derived from table at creation time.
func NewWriter(s store, indexName string, table *names.Table, logger *zap.Logger) *Writer {
	return &Writer{store: s, index: indexName, table: table, logger: logger}
}

// EnsureIndex creates the index if it does not exist. Safe to call
// repeatedly; a concurrent create racing us is treated as success.
func (w *Writer) EnsureIndex(ctx context.Context) error {
	exists, err := w.store.IndexExists(ctx, w.index)
	if err != nil {
		return fmt.Errorf("check index %s: %w", w.index, err)
	}
	if exists {
		return nil
	}

	mapping, err := BuildMapping(w.table)
	if err != nil {
		return err
	}

	if err := w.store.CreateIndex(ctx, w.index, mapping); err != nil {
		if errors.Is(err, es.ErrIndexExists) {
			return nil
		}
		return fmt.Errorf("create index %s: %w", w.index, err)
	}

	w.logger.Info("search index created",
		zap.String("index", w.index),
		zap.Int("synonym_rules", len(w.table.SynonymRules())),
	)
	return nil
}

// DeleteIndex drops the index. Deleting an absent index is a no-op so the
// admin rebuild flow stays idempotent.
func (w *Writer) DeleteIndex(ctx context.Context) error {
	if err := w.store.DeleteIndex(ctx, w.index); err != nil {
		if errors.Is(err, es.ErrIndexNotFound) {
			return nil
		}
		return fmt.Errorf("delete index %s: %w", w.index, err)
	}
	w.logger.Info("search index deleted", zap.String("index", w.index))
	return nil
}

// IndexPlayer projects and writes one player. The document id equals the
// player id, so repeated calls replace the prior document in full. A
// projection failure is logged with the player id and returned; a partial
// document is never written.
func (w *Writer) IndexPlayer(ctx context.Context, player *domain.Player) error {
	doc, err := Project(player)
	if err != nil {
		id := ""
		if player != nil {
			id = player.ID.String()
		}
		w.logger.Error("player projection failed",
			zap.String("player_id", id),
			zap.Error(err),
		)
		return fmt.Errorf("project player %s: %w", id, err)
	}

	body, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal document %s: %w", doc.ID, err)
	}

	if err := w.store.PutDocument(ctx, w.index, doc.ID, body); err != nil {
		return fmt.Errorf("index player %s: %w", doc.ID, err)
	}
	return nil
}
