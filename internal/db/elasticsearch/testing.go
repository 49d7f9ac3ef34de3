package elasticsearch

import "github.com/elastic/go-elasticsearch/v7/esapi"

// NewStoreForTest creates a Store with the provided transport (test-only).
func NewStoreForTest(t esapi.Transport) *Store {
	return &Store{client: t}
}
