package opensearch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/opensearch-project/opensearch-go/v2/opensearchapi"

	"github.com/surfedu/searchclient/internal/db"
)

// Search runs a query DSL body against indices.
func (s *Store) Search(ctx context.Context, indices []string, body map[string]any) (*db.SearchResponse, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, &db.Error{Op: db.OpSearch, Err: fmt.Errorf("encode body: %w", err)}
	}

	req := opensearchapi.SearchRequest{
		Index:  indices,
		Body:   bytes.NewReader(payload),
		Header: db.Header(ctx),
	}
	resp, err := req.Do(ctx, s.client)
	if err != nil {
		return nil, &db.Error{Op: db.OpSearch, Err: err}
	}
	defer resp.Body.Close()

	if resp.IsError() {
		return nil, &db.Error{Op: db.OpSearch, Err: db.DecodeError(resp.StatusCode, resp.Body)}
	}

	result, err := db.DecodeSearchResponse(resp.Body)
	if err != nil {
		return nil, &db.Error{Op: db.OpSearch, Err: err}
	}
	return result, nil
}

// Count returns the number of documents in indices.
func (s *Store) Count(ctx context.Context, indices []string) (int, error) {
	req := opensearchapi.CountRequest{
		Index:  indices,
		Header: db.Header(ctx),
	}
	resp, err := req.Do(ctx, s.client)
	if err != nil {
		return 0, &db.Error{Op: db.OpCount, Err: err}
	}
	defer resp.Body.Close()

	if resp.IsError() {
		return 0, &db.Error{Op: db.OpCount, Err: db.DecodeError(resp.StatusCode, resp.Body)}
	}

	n, err := db.DecodeCount(resp.Body)
	if err != nil {
		return 0, &db.Error{Op: db.OpCount, Err: err}
	}
	return n, nil
}
