package chi

import (
	"context"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fundguard/playersearch/internal/domain"
	"github.com/fundguard/playersearch/internal/domain/names"
	domsearch "github.com/fundguard/playersearch/internal/domain/search"
	healthuc "github.com/fundguard/playersearch/internal/usecase/health"
	indexuc "github.com/fundguard/playersearch/internal/usecase/index"
	searchuc "github.com/fundguard/playersearch/internal/usecase/search"
)

var (
	testFundID   = uuid.MustParse("11111111-2222-3333-4444-555555555555")
	testPlayerID = uuid.MustParse("7b8259a4-11ab-4b79-a07c-b7e162d9c7f5")
)

// stubSearchRepo implements searchuc.Repository.
type stubSearchRepo struct {
	results []domsearch.Result
	err     error
	calls   []domsearch.Request
}

func (s *stubSearchRepo) Search(_ context.Context, req domsearch.Request) ([]domsearch.Result, error) {
	s.calls = append(s.calls, req)
	if s.err != nil {
		return nil, s.err
	}
	if s.results == nil {
		return []domsearch.Result{}, nil
	}
	return s.results, nil
}

// stubWriter implements indexuc.Writer.
type stubWriter struct {
	indexErr error
	indexed  []uuid.UUID
}

func (s *stubWriter) EnsureIndex(context.Context) error { return nil }
func (s *stubWriter) DeleteIndex(context.Context) error { return nil }
func (s *stubWriter) IndexPlayer(_ context.Context, p *domain.Player) error {
	if s.indexErr != nil {
		return s.indexErr
	}
	s.indexed = append(s.indexed, p.ID)
	return nil
}

// stubPlayers implements indexuc.PlayerSource with a single player.
type stubPlayers struct {
	player *domain.Player
}

func (s *stubPlayers) GetByID(_ context.Context, id uuid.UUID) (*domain.Player, error) {
	if s.player != nil && s.player.ID == id {
		return s.player, nil
	}
	return nil, domain.ErrPlayerNotFound
}

func (s *stubPlayers) ListPage(_ context.Context, afterID uuid.UUID, _ int) ([]*domain.Player, error) {
	if s.player == nil || afterID != uuid.Nil {
		return nil, nil
	}
	return []*domain.Player{s.player}, nil
}

// stubPinger implements healthuc.Pinger.
type stubPinger struct {
	err error
}

func (s *stubPinger) Ping(context.Context) error { return s.err }

type serverStubs struct {
	searchRepo *stubSearchRepo
	writer     *stubWriter
	players    *stubPlayers
	esPing     *stubPinger
}

func newTestServer() (*chi.Mux, *serverStubs) {
	stubs := &serverStubs{
		searchRepo: &stubSearchRepo{},
		writer:     &stubWriter{},
		players: &stubPlayers{player: &domain.Player{
			ID:       testPlayerID,
			FullName: "Иванов Василий",
			FundID:   testFundID,
		}},
		esPing: &stubPinger{},
	}

	searchSvc := searchuc.New(stubs.searchRepo, names.Default(), nil,
		searchuc.Config{DefaultPageSize: 10, MaxPageSize: 100})
	indexSvc := indexuc.New(stubs.writer, stubs.players, indexuc.Config{BatchSize: 10, Concurrency: 1})
	healthSvc := healthuc.New(stubs.esPing, nil, nil)

	srv := NewServer(searchSvc, indexSvc, healthSvc, zap.NewNop())
	r := chi.NewRouter()
	srv.Register(r)
	return r, stubs
}
