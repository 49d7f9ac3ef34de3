package opensearch

import (
	"bytes"
	"context"
	"net/http"

	"github.com/opensearch-project/opensearch-go/v2/opensearchapi"

	"github.com/surfedu/searchclient/internal/db"
)

// CreateIndex creates an index from a settings and mappings body.
// Returns db.ErrIndexExists when the index is already there.
func (s *Store) CreateIndex(ctx context.Context, name string, body []byte) error {
	req := opensearchapi.IndicesCreateRequest{
		Index:  name,
		Body:   bytes.NewReader(body),
		Header: db.Header(ctx),
	}
	resp, err := req.Do(ctx, s.client)
	if err != nil {
		return &db.Error{Op: db.OpCreateIndex, Err: err}
	}
	defer resp.Body.Close()

	if resp.IsError() {
		return &db.Error{Op: db.OpCreateIndex, Err: db.DecodeError(resp.StatusCode, resp.Body)}
	}
	return nil
}

// DeleteIndex removes an index. Returns db.ErrIndexNotFound when it doesn't exist.
func (s *Store) DeleteIndex(ctx context.Context, name string) error {
	req := opensearchapi.IndicesDeleteRequest{
		Index:  []string{name},
		Header: db.Header(ctx),
	}
	resp, err := req.Do(ctx, s.client)
	if err != nil {
		return &db.Error{Op: db.OpDeleteIndex, Err: err}
	}
	defer resp.Body.Close()

	if resp.IsError() {
		return &db.Error{Op: db.OpDeleteIndex, Err: db.DecodeError(resp.StatusCode, resp.Body)}
	}
	return nil
}

// IndexExists reports whether an index or alias exists.
func (s *Store) IndexExists(ctx context.Context, name string) (bool, error) {
	req := opensearchapi.IndicesExistsRequest{
		Index:  []string{name},
		Header: db.Header(ctx),
	}
	resp, err := req.Do(ctx, s.client)
	if err != nil {
		return false, &db.Error{Op: db.OpIndexExists, Err: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return false, nil
	case resp.IsError():
		return false, &db.Error{Op: db.OpIndexExists, Err: db.DecodeError(resp.StatusCode, resp.Body)}
	}
	return true, nil
}
