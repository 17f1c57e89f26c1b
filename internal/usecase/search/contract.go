package search

import (
	"context"

	domsearch "github.com/fundguard/playersearch/internal/domain/search"
)

// Repository executes a resolved search request against the indexed store.
type Repository interface {
	Search(ctx context.Context, req domsearch.Request) ([]domsearch.Result, error)
}

// ResultCache stores serialized result pages for a short TTL. Optional:
// the service runs without one.
type ResultCache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}
