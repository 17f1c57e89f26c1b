// Package es defines the contract with the external indexed store.
// Consumers depend on the narrow sub-interfaces; the facade exists for
// wiring at the composition root.
package es

import (
	"context"
	"time"
)

// Store is the full indexed-store facade combining all sub-interfaces.
type Store interface {
	Pinger
	IndexManager
	DocumentWriter
	Searcher
	Close()
	WaitForReady(ctx context.Context, timeout time.Duration) error
}

// Pinger checks backend connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// IndexManager provides index lifecycle operations.
type IndexManager interface {
	CreateIndex(ctx context.Context, name string, mapping []byte) error
	DeleteIndex(ctx context.Context, name string) error
	IndexExists(ctx context.Context, name string) (bool, error)
}

// DocumentWriter upserts documents. PutDocument replaces any prior
// document with the same id (last write wins, serialized by the backend).
type DocumentWriter interface {
	PutDocument(ctx context.Context, index, id string, doc []byte) error
}

// Searcher executes a search request against one index.
type Searcher interface {
	Search(ctx context.Context, q *Query) (*Result, error)
}
