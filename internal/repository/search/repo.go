// Package search builds, executes, and maps player search queries against
// the indexed store.
package search

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/fundguard/playersearch/internal/domain"
	domsearch "github.com/fundguard/playersearch/internal/domain/search"
	"github.com/fundguard/playersearch/internal/es"
	"github.com/fundguard/playersearch/internal/logger"
)

// store is the consumer interface for search execution (ISP).
type store interface {
	Search(ctx context.Context, q *es.Query) (*es.Result, error)
}

// Repo implements usecase/search.Repository: one attempt per request, no
// retries, degraded-mode handling for recoverable backend errors.
type Repo struct {
	store store
	index string
}

// New creates a search repository over the given index.
func New(s store, index string) *Repo {
	return &Repo{store: s, index: index}
}

// Search executes the built query and maps hits into ranked results.
//
// Degraded mode: a missing index means "no results yet" and a malformed
// query or mapping drift must never hard-fail a user-facing search. Both
// surface as domain.ErrDegraded so the usecase can serve an empty page
// without caching it. Connectivity failures surface as
// domain.ErrUnavailable for the transport to translate; anything else is
// returned as-is.
func (r *Repo) Search(ctx context.Context, p domsearch.Request) ([]domsearch.Result, error) {
	q, err := BuildQuery(r.index, p)
	if err != nil {
		return nil, err
	}

	res, err := r.store.Search(ctx, q)
	if err != nil {
		log := logger.FromContext(ctx)
		switch {
		case errors.Is(err, es.ErrIndexNotFound):
			log.Info("search index absent, degrading to empty result",
				zap.String("index", r.index))
			return nil, fmt.Errorf("%w: %w", domain.ErrDegraded, err)
		case errors.Is(err, es.ErrBadQuery):
			log.Warn("search query rejected by backend",
				zap.String("query", p.Term.Original),
				zap.Error(err))
			return nil, fmt.Errorf("%w: %w", domain.ErrDegraded, err)
		case errors.Is(err, es.ErrUnavailable):
			log.Error("search backend unreachable", zap.Error(err))
			return nil, fmt.Errorf("%w: %w", domain.ErrUnavailable, err)
		default:
			log.Error("search failed",
				zap.String("query", p.Term.Original),
				zap.Error(err))
			return nil, fmt.Errorf("search players: %w", err)
		}
	}

	return mapHits(ctx, res), nil
}

// mapHits converts raw hits into the result DTO. A hit with an unreadable
// source is logged and skipped rather than failing the page.
func mapHits(ctx context.Context, res *es.Result) []domsearch.Result {
	if res == nil {
		return []domsearch.Result{}
	}

	out := make([]domsearch.Result, 0, len(res.Hits))
	for _, hit := range res.Hits {
		var doc domsearch.Document
		if err := json.Unmarshal(hit.Source, &doc); err != nil {
			logger.FromContext(ctx).Warn("skipping unreadable search hit",
				zap.String("doc_id", hit.ID),
				zap.Error(err))
			continue
		}
		out = append(out, domsearch.Result{
			ID:             doc.ID,
			Score:          hit.Score,
			FullName:       doc.FullName,
			FirstName:      doc.FirstName,
			LastName:       doc.LastName,
			MiddleName:     doc.MiddleName,
			FundName:       doc.FundName,
			Nicknames:      doc.Nicknames,
			Display:        doc.Display,
			CasesCount:     doc.CasesCount,
			LatestCaseDate: doc.LatestCaseDate,
		})
	}
	return out
}
