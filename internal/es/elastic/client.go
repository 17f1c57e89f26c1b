// Package elastic implements es.Store on Elasticsearch 8.x.
package elastic

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	elasticsearch "github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"github.com/fundguard/playersearch/internal/es"
)

// Compile-time check: Store implements es.Store.
var _ es.Store = (*Store)(nil)

// Config holds connection parameters for the Elasticsearch cluster.
type Config struct {
	Addresses []string
	Username  string
	Password  string

	// Transport overrides the HTTP transport; tests inject a fake here.
	Transport http.RoundTripper
}

// Store implements es.Store via the official Elasticsearch client.
type Store struct {
	client *elasticsearch.Client
}

// NewStore creates an Elasticsearch-backed store.
func NewStore(cfg Config) (*Store, error) {
	if len(cfg.Addresses) == 0 {
		return nil, fmt.Errorf("addresses is required")
	}

	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: cfg.Addresses,
		Username:  cfg.Username,
		Password:  cfg.Password,
		Transport: cfg.Transport,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	return &Store{client: client}, nil
}

// Ping checks cluster connectivity.
func (s *Store) Ping(ctx context.Context) error {
	res, err := s.client.Ping(s.client.Ping.WithContext(ctx))
	if err != nil {
		return &es.Error{Op: es.OpPing, Err: fmt.Errorf("%w: %w", es.ErrUnavailable, err)}
	}
	defer drain(res)

	if res.IsError() {
		return &es.Error{Op: es.OpPing, Err: fmt.Errorf("%w: status %d", es.ErrUnavailable, res.StatusCode)}
	}
	return nil
}

// Close releases idle connections. The official client keeps no other
// per-process state.
func (s *Store) Close() {
	if t, ok := s.client.Transport.(interface{ CloseIdleConnections() }); ok {
		t.CloseIdleConnections()
	}
}

// WaitForReady polls Ping until the cluster responds or timeout expires.
func (s *Store) WaitForReady(ctx context.Context, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ticker := time.NewTicker(250 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("timeout waiting for elasticsearch: %w", ctx.Err())
		case <-ticker.C:
			if err := s.Ping(ctx); err == nil {
				return nil
			}
		}
	}
}

// CreateIndex creates an index with the given settings+mappings body.
func (s *Store) CreateIndex(ctx context.Context, name string, mapping []byte) error {
	res, err := s.client.Indices.Create(name,
		s.client.Indices.Create.WithBody(bytes.NewReader(mapping)),
		s.client.Indices.Create.WithContext(ctx),
	)
	if err != nil {
		return &es.Error{Op: es.OpCreateIndex, Err: fmt.Errorf("%w: %w", es.ErrUnavailable, err)}
	}
	defer drain(res)

	if res.IsError() {
		return &es.Error{Op: es.OpCreateIndex, Err: classify(res)}
	}
	return nil
}

// DeleteIndex removes an index. Deleting an absent index returns
// es.ErrIndexNotFound.
func (s *Store) DeleteIndex(ctx context.Context, name string) error {
	res, err := s.client.Indices.Delete([]string{name},
		s.client.Indices.Delete.WithContext(ctx),
	)
	if err != nil {
		return &es.Error{Op: es.OpDeleteIndex, Err: fmt.Errorf("%w: %w", es.ErrUnavailable, err)}
	}
	defer drain(res)

	if res.IsError() {
		return &es.Error{Op: es.OpDeleteIndex, Err: classify(res)}
	}
	return nil
}

// IndexExists reports whether the index exists.
func (s *Store) IndexExists(ctx context.Context, name string) (bool, error) {
	res, err := s.client.Indices.Exists([]string{name},
		s.client.Indices.Exists.WithContext(ctx),
	)
	if err != nil {
		return false, &es.Error{Op: es.OpIndexExists, Err: fmt.Errorf("%w: %w", es.ErrUnavailable, err)}
	}
	defer drain(res)

	switch res.StatusCode {
	case http.StatusOK:
		return true, nil
	case http.StatusNotFound:
		return false, nil
	default:
		return false, &es.Error{Op: es.OpIndexExists, Err: classify(res)}
	}
}

// PutDocument writes a document under the given id, replacing any prior
// version. Idempotent: same id, same outcome.
func (s *Store) PutDocument(ctx context.Context, index, id string, doc []byte) error {
	res, err := s.client.Index(index, bytes.NewReader(doc),
		s.client.Index.WithDocumentID(id),
		s.client.Index.WithContext(ctx),
	)
	if err != nil {
		return &es.Error{Op: es.OpIndexDoc, Err: fmt.Errorf("%w: %w", es.ErrUnavailable, err)}
	}
	defer drain(res)

	if res.IsError() {
		return &es.Error{Op: es.OpIndexDoc, Err: classify(res)}
	}
	return nil
}

// Search executes a query and parses hits.
func (s *Store) Search(ctx context.Context, q *es.Query) (*es.Result, error) {
	res, err := s.client.Search(
		s.client.Search.WithContext(ctx),
		s.client.Search.WithIndex(q.Index),
		s.client.Search.WithBody(bytes.NewReader(q.Body)),
		s.client.Search.WithTrackTotalHits(true),
	)
	if err != nil {
		return nil, &es.Error{Op: es.OpSearch, Err: fmt.Errorf("%w: %w", es.ErrUnavailable, err)}
	}
	defer drain(res)

	if res.IsError() {
		return nil, &es.Error{Op: es.OpSearch, Err: classify(res)}
	}

	var body searchResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return nil, &es.Error{Op: es.OpSearch, Err: fmt.Errorf("decode response: %w", err)}
	}

	out := &es.Result{
		Total: body.Hits.Total.Value,
		Hits:  make([]es.Hit, 0, len(body.Hits.Hits)),
	}
	for _, h := range body.Hits.Hits {
		out.Hits = append(out.Hits, es.Hit{ID: h.ID, Score: h.Score, Source: h.Source})
	}
	return out, nil
}

// searchResponse mirrors the slice of the ES search response we consume.
type searchResponse struct {
	Hits struct {
		Total struct {
			Value int `json:"value"`
		} `json:"total"`
		Hits []struct {
			ID     string          `json:"_id"`
			Score  float64         `json:"_score"`
			Source json.RawMessage `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

// errorResponse mirrors the ES error envelope.
type errorResponse struct {
	Error struct {
		Type   string `json:"type"`
		Reason string `json:"reason"`
	} `json:"error"`
	Status int `json:"status"`
}

// classify maps an ES error response to a sentinel error. The body is
// consumed; callers must not read it again.
func classify(res *esapi.Response) error {
	var body errorResponse
	_ = json.NewDecoder(res.Body).Decode(&body)

	switch {
	case res.StatusCode == http.StatusNotFound && body.Error.Type == "index_not_found_exception":
		return es.ErrIndexNotFound
	case body.Error.Type == "resource_already_exists_exception":
		return es.ErrIndexExists
	case res.StatusCode == http.StatusBadRequest:
		return fmt.Errorf("%w: %s: %s", es.ErrBadQuery, body.Error.Type, body.Error.Reason)
	case res.StatusCode >= http.StatusInternalServerError:
		return fmt.Errorf("%w: status %d: %s", es.ErrUnavailable, res.StatusCode, body.Error.Reason)
	default:
		return fmt.Errorf("status %d: %s: %s", res.StatusCode, body.Error.Type, body.Error.Reason)
	}
}

// drain reads the remaining body so the connection can be reused.
func drain(res *esapi.Response) {
	if res.Body != nil {
		_, _ = io.Copy(io.Discard, res.Body)
		res.Body.Close()
	}
}
