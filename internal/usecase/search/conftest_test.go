package search

import (
	"context"

	"github.com/fundguard/playersearch/internal/cache"
	"github.com/fundguard/playersearch/internal/domain"
	domsearch "github.com/fundguard/playersearch/internal/domain/search"
	"github.com/fundguard/playersearch/internal/domain/names"
)

// mockRepo implements Repository for tests.
type mockRepo struct {
	searchFn func(ctx context.Context, req domsearch.Request) ([]domsearch.Result, error)
	calls    []domsearch.Request
}

func (m *mockRepo) Search(ctx context.Context, req domsearch.Request) ([]domsearch.Result, error) {
	m.calls = append(m.calls, req)
	if m.searchFn != nil {
		return m.searchFn(ctx, req)
	}
	return []domsearch.Result{}, nil
}

// mockCache implements ResultCache over a plain map.
type mockCache struct {
	data   map[string][]byte
	getErr error
	setErr error
	gets   int
	sets   int
}

func newMockCache() *mockCache {
	return &mockCache{data: map[string][]byte{}}
}

func (m *mockCache) Get(_ context.Context, key string) ([]byte, error) {
	m.gets++
	if m.getErr != nil {
		return nil, m.getErr
	}
	if v, ok := m.data[key]; ok {
		return v, nil
	}
	return nil, cache.ErrMiss
}

func (m *mockCache) Set(_ context.Context, key string, value []byte) error {
	m.sets++
	if m.setErr != nil {
		return m.setErr
	}
	m.data[key] = value
	return nil
}

func newTestService(repo *mockRepo, rc ResultCache) *Service {
	return New(repo, names.Default(), rc, Config{DefaultPageSize: 10, MaxPageSize: 100})
}

func adminInput(q string) (domain.Scope, Input) {
	return domain.AdminScope(), Input{Query: q}
}
