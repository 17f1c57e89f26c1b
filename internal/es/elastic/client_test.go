package elastic

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/fundguard/playersearch/internal/es"
)

// fakeTransport serves canned responses keyed by method+path prefix.
type fakeTransport struct {
	status int
	body   string
	err    error
	seen   []*http.Request
}

func (f *fakeTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	f.seen = append(f.seen, req)
	if f.err != nil {
		return nil, f.err
	}
	header := http.Header{}
	header.Set("X-Elastic-Product", "Elasticsearch")
	header.Set("Content-Type", "application/json")
	return &http.Response{
		StatusCode: f.status,
		Header:     header,
		Body:       io.NopCloser(strings.NewReader(f.body)),
		Request:    req,
	}, nil
}

func newTestStore(t *testing.T, ft *fakeTransport) *Store {
	t.Helper()
	s, err := NewStore(Config{
		Addresses: []string{"http://elastic.test:9200"},
		Transport: ft,
	})
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	return s
}

func TestSearch_ParsesHits(t *testing.T) {
	ft := &fakeTransport{status: http.StatusOK, body: `{
		"hits": {
			"total": {"value": 2},
			"hits": [
				{"_id": "p1", "_score": 7.1, "_source": {"full_name": "Василий Иванов"}},
				{"_id": "p2", "_score": 1.2, "_source": {"full_name": "Иван Петров"}}
			]
		}
	}`}
	s := newTestStore(t, ft)

	res, err := s.Search(context.Background(), &es.Query{Index: "players", Body: []byte(`{}`)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Total != 2 || len(res.Hits) != 2 {
		t.Fatalf("unexpected result: %+v", res)
	}
	if res.Hits[0].ID != "p1" || res.Hits[0].Score != 7.1 {
		t.Errorf("unexpected first hit: %+v", res.Hits[0])
	}
}

func TestSearch_IndexNotFound(t *testing.T) {
	ft := &fakeTransport{status: http.StatusNotFound,
		body: `{"error":{"type":"index_not_found_exception","reason":"no such index [players]"},"status":404}`}
	s := newTestStore(t, ft)

	_, err := s.Search(context.Background(), &es.Query{Index: "players", Body: []byte(`{}`)})
	if !errors.Is(err, es.ErrIndexNotFound) {
		t.Fatalf("expected ErrIndexNotFound, got %v", err)
	}
}

func TestSearch_BadQuery(t *testing.T) {
	ft := &fakeTransport{status: http.StatusBadRequest,
		body: `{"error":{"type":"parsing_exception","reason":"unknown field [fuzz]"},"status":400}`}
	s := newTestStore(t, ft)

	_, err := s.Search(context.Background(), &es.Query{Index: "players", Body: []byte(`{}`)})
	if !errors.Is(err, es.ErrBadQuery) {
		t.Fatalf("expected ErrBadQuery, got %v", err)
	}
}

func TestSearch_ConnectionFailure(t *testing.T) {
	ft := &fakeTransport{err: errors.New("connection refused")}
	s := newTestStore(t, ft)

	_, err := s.Search(context.Background(), &es.Query{Index: "players", Body: []byte(`{}`)})
	if !errors.Is(err, es.ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
	var opErr *es.Error
	if !errors.As(err, &opErr) || opErr.Op != es.OpSearch {
		t.Errorf("expected op-tagged error, got %v", err)
	}
}

func TestIndexExists(t *testing.T) {
	s := newTestStore(t, &fakeTransport{status: http.StatusOK, body: `{}`})
	ok, err := s.IndexExists(context.Background(), "players")
	if err != nil || !ok {
		t.Fatalf("expected exists, got %v %v", ok, err)
	}

	s = newTestStore(t, &fakeTransport{status: http.StatusNotFound, body: `{}`})
	ok, err = s.IndexExists(context.Background(), "players")
	if err != nil || ok {
		t.Fatalf("expected not exists, got %v %v", ok, err)
	}
}

func TestCreateIndex_AlreadyExists(t *testing.T) {
	ft := &fakeTransport{status: http.StatusBadRequest,
		body: `{"error":{"type":"resource_already_exists_exception","reason":"index [players] already exists"},"status":400}`}
	s := newTestStore(t, ft)

	err := s.CreateIndex(context.Background(), "players", []byte(`{}`))
	if !errors.Is(err, es.ErrIndexExists) {
		t.Fatalf("expected ErrIndexExists, got %v", err)
	}
}

func TestPutDocument_UsesDocumentID(t *testing.T) {
	ft := &fakeTransport{status: http.StatusCreated, body: `{"result":"created"}`}
	s := newTestStore(t, ft)

	if err := s.PutDocument(context.Background(), "players", "p1", []byte(`{"id":"p1"}`)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	last := ft.seen[len(ft.seen)-1]
	if !strings.HasSuffix(last.URL.Path, "/players/_doc/p1") {
		t.Errorf("unexpected path %s", last.URL.Path)
	}
}

func TestNewStore_RequiresAddresses(t *testing.T) {
	if _, err := NewStore(Config{}); err == nil {
		t.Fatal("expected error for empty addresses")
	}
}
