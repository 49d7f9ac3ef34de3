package db

import (
	"context"
	"time"
)

// Engine is the search engine facade combining all sub-interfaces.
//
//nolint:interfacebloat // consumers depend on the narrow sub-interfaces
type Engine interface {
	Pinger
	Searcher
	Counter
	IndexManager
	Close()
	WaitForReady(ctx context.Context, timeout time.Duration) error
}

// Pinger checks engine connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Searcher runs query DSL bodies against indices or aliases.
type Searcher interface {
	Search(ctx context.Context, indices []string, body map[string]any) (*SearchResponse, error)
}

// Counter counts the documents of indices or aliases.
type Counter interface {
	Count(ctx context.Context, indices []string) (int, error)
}

// IndexManager provides index lifecycle operations.
type IndexManager interface {
	CreateIndex(ctx context.Context, name string, body []byte) error
	DeleteIndex(ctx context.Context, name string) error
	IndexExists(ctx context.Context, name string) (bool, error)
}
