package index

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fundguard/playersearch/internal/domain"
	"github.com/fundguard/playersearch/internal/domain/names"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	createIndexFn func(ctx context.Context, name string, mapping []byte) error
	deleteIndexFn func(ctx context.Context, name string) error
	indexExistsFn func(ctx context.Context, name string) (bool, error)
	putDocumentFn func(ctx context.Context, index, id string, doc []byte) error

	puts map[string][]byte // id -> last written body
}

func (m *mockStore) CreateIndex(ctx context.Context, name string, mapping []byte) error {
	if m.createIndexFn != nil {
		return m.createIndexFn(ctx, name, mapping)
	}
	return nil
}

func (m *mockStore) DeleteIndex(ctx context.Context, name string) error {
	if m.deleteIndexFn != nil {
		return m.deleteIndexFn(ctx, name)
	}
	return nil
}

func (m *mockStore) IndexExists(ctx context.Context, name string) (bool, error) {
	if m.indexExistsFn != nil {
		return m.indexExistsFn(ctx, name)
	}
	return false, nil
}

func (m *mockStore) PutDocument(ctx context.Context, index, id string, doc []byte) error {
	if m.putDocumentFn != nil {
		return m.putDocumentFn(ctx, index, id, doc)
	}
	if m.puts == nil {
		m.puts = make(map[string][]byte)
	}
	m.puts[id] = doc
	return nil
}

func newTestWriter(t *testing.T) (*Writer, *mockStore) {
	t.Helper()
	ms := &mockStore{}
	return NewWriter(ms, "players", names.Default(), zap.NewNop()), ms
}

func testPlayer(t *testing.T) *domain.Player {
	t.Helper()
	created := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
	return &domain.Player{
		ID:       uuid.MustParse("7b8259a4-7e12-4824-b12c-f4a0ae4bf603"),
		FullName: "Иванов Василий Петрович",
		FundID:   uuid.MustParse("11111111-2222-3333-4444-555555555555"),
		FundName: "Alpha Fund",
		Nicknames: []domain.Nickname{
			{Nickname: "vasya_fish", Room: "PokerStars", Discipline: "NLH"},
		},
		Contacts: []domain.Contact{
			{Type: "telegram", Value: "@vasya"},
		},
		Locations: []domain.Location{
			{Country: "Россия", City: "Казань"},
		},
		Cases: []domain.CaseRef{
			{ID: uuid.New(), CreatedAt: created.AddDate(0, -2, 0)},
			{ID: uuid.New(), CreatedAt: created},
		},
	}
}
