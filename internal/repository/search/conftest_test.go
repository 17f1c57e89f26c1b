package search

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/fundguard/playersearch/internal/domain"
	"github.com/fundguard/playersearch/internal/domain/names"
	domsearch "github.com/fundguard/playersearch/internal/domain/search"
	"github.com/fundguard/playersearch/internal/es"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	searchFn func(ctx context.Context, q *es.Query) (*es.Result, error)
	queries  []*es.Query
}

func (m *mockStore) Search(ctx context.Context, q *es.Query) (*es.Result, error) {
	m.queries = append(m.queries, q)
	if m.searchFn != nil {
		return m.searchFn(ctx, q)
	}
	return &es.Result{}, nil
}

func newTestRepo(t *testing.T) (*Repo, *mockStore) {
	t.Helper()
	ms := &mockStore{}
	return New(ms, "players"), ms
}

func adminParams(q string) domsearch.Request {
	return domsearch.Request{
		Term:  names.Default().Normalize(q),
		Scope: domain.AdminScope(),
		Size:  10,
	}
}

func testFundID() uuid.UUID {
	return uuid.MustParse("11111111-2222-3333-4444-555555555555")
}
