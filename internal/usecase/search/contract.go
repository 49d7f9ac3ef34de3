package search

import (
	"context"

	"github.com/surfedu/searchclient/internal/db"
)

// Engine runs query DSL bodies against a search cluster.
type Engine interface {
	Search(ctx context.Context, indices []string, body map[string]any) (*db.SearchResponse, error)
	Count(ctx context.Context, indices []string) (int, error)
}
