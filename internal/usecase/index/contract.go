package index

import (
	"context"

	"github.com/google/uuid"

	"github.com/fundguard/playersearch/internal/domain"
)

// Writer manages the index lifecycle and writes player documents.
type Writer interface {
	EnsureIndex(ctx context.Context) error
	DeleteIndex(ctx context.Context) error
	IndexPlayer(ctx context.Context, player *domain.Player) error
}

// PlayerSource reads player aggregates from the authoritative store.
type PlayerSource interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Player, error)
	ListPage(ctx context.Context, afterID uuid.UUID, limit int) ([]*domain.Player, error)
}
