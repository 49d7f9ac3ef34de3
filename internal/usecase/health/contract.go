package health

import "context"

// Pinger checks engine availability.
type Pinger interface {
	Ping(ctx context.Context) error
}

// AliasChecker checks that an alias resolves to an index.
type AliasChecker interface {
	IndexExists(ctx context.Context, name string) (bool, error)
}
