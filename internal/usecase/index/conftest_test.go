package index

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/fundguard/playersearch/internal/domain"
)

// mockWriter implements Writer with func fields and call recording.
type mockWriter struct {
	mu sync.Mutex

	ensureFn func(ctx context.Context) error
	deleteFn func(ctx context.Context) error
	indexFn  func(ctx context.Context, p *domain.Player) error

	ensureCalls int
	deleteCalls int
	indexed     []uuid.UUID
}

func (m *mockWriter) EnsureIndex(ctx context.Context) error {
	m.mu.Lock()
	m.ensureCalls++
	m.mu.Unlock()
	if m.ensureFn != nil {
		return m.ensureFn(ctx)
	}
	return nil
}

func (m *mockWriter) DeleteIndex(ctx context.Context) error {
	m.mu.Lock()
	m.deleteCalls++
	m.mu.Unlock()
	if m.deleteFn != nil {
		return m.deleteFn(ctx)
	}
	return nil
}

func (m *mockWriter) IndexPlayer(ctx context.Context, p *domain.Player) error {
	if m.indexFn != nil {
		if err := m.indexFn(ctx, p); err != nil {
			return err
		}
	}
	m.mu.Lock()
	m.indexed = append(m.indexed, p.ID)
	m.mu.Unlock()
	return nil
}

func (m *mockWriter) indexedCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.indexed)
}

// mockPlayers implements PlayerSource over an in-memory id-ordered slice.
type mockPlayers struct {
	players []*domain.Player

	getFn  func(ctx context.Context, id uuid.UUID) (*domain.Player, error)
	listFn func(ctx context.Context, afterID uuid.UUID, limit int) ([]*domain.Player, error)
}

func (m *mockPlayers) GetByID(ctx context.Context, id uuid.UUID) (*domain.Player, error) {
	if m.getFn != nil {
		return m.getFn(ctx, id)
	}
	for _, p := range m.players {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, domain.ErrPlayerNotFound
}

func (m *mockPlayers) ListPage(ctx context.Context, afterID uuid.UUID, limit int) ([]*domain.Player, error) {
	if m.listFn != nil {
		return m.listFn(ctx, afterID, limit)
	}
	var page []*domain.Player
	for _, p := range m.players {
		if idLess(afterID, p.ID) {
			page = append(page, p)
		}
		if len(page) == limit {
			break
		}
	}
	return page, nil
}

func idLess(a, b uuid.UUID) bool {
	for i := range a {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}

var testFundID = uuid.MustParse("11111111-2222-3333-4444-555555555555")

// seedPlayers builds n players with ascending ids, all owned by testFundID.
func seedPlayers(n int) []*domain.Player {
	players := make([]*domain.Player, n)
	for i := range players {
		id := uuid.UUID{}
		id[15] = byte(i + 1)
		players[i] = &domain.Player{
			ID:       id,
			FullName: "Тестовый Игрок",
			FundID:   testFundID,
		}
	}
	return players
}

func newTestService(w *mockWriter, ps *mockPlayers) *Service {
	return New(w, ps, Config{BatchSize: 10, Concurrency: 2})
}
