// Package elasticsearch implements db.Engine on top of go-elasticsearch for
// clusters that still run Elasticsearch 7.
package elasticsearch

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	elasticsearch7 "github.com/elastic/go-elasticsearch/v7"
	"github.com/elastic/go-elasticsearch/v7/esapi"

	"github.com/surfedu/searchclient/internal/db"
)

// Compile-time check: Store implements db.Engine.
var _ db.Engine = (*Store)(nil)

// DefaultTimeout bounds connecting and waiting for response headers.
const DefaultTimeout = 30 * time.Second

// Config holds connection parameters for an Elasticsearch cluster.
type Config struct {
	Addrs       []string
	Username    string
	Password    string
	Timeout     time.Duration
	InsecureTLS bool
}

// Store implements db.Engine via go-elasticsearch.
type Store struct {
	client esapi.Transport
	idle   interface{ CloseIdleConnections() }
}

// NewStore creates an Elasticsearch store.
func NewStore(cfg Config) (*Store, error) {
	if len(cfg.Addrs) == 0 {
		return nil, fmt.Errorf("addrs is required")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	transport := &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           (&net.Dialer{Timeout: timeout}).DialContext,
		ResponseHeaderTimeout: timeout,
		TLSHandshakeTimeout:   timeout,
		MaxIdleConnsPerHost:   16,
		TLSClientConfig: &tls.Config{
			InsecureSkipVerify: cfg.InsecureTLS, //nolint:gosec // opt-in for local clusters with self-signed certificates
		},
	}

	client, err := elasticsearch7.NewClient(elasticsearch7.Config{
		Addresses: cfg.Addrs,
		Username:  cfg.Username,
		Password:  cfg.Password,
		Transport: transport,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	return &Store{client: client, idle: transport}, nil
}

// Ping checks connectivity.
func (s *Store) Ping(ctx context.Context) error {
	resp, err := esapi.PingRequest{Header: db.Header(ctx)}.Do(ctx, s.client)
	if err != nil {
		return &db.Error{Op: db.OpPing, Err: errors.Join(db.ErrUnavailable, err)}
	}
	defer resp.Body.Close()
	if resp.IsError() {
		return &db.Error{Op: db.OpPing, Err: errors.Join(db.ErrUnavailable, db.DecodeError(resp.StatusCode, resp.Body))}
	}
	return nil
}

// Close releases idle connections.
func (s *Store) Close() {
	if s.idle != nil {
		s.idle.CloseIdleConnections()
	}
}

// WaitForReady polls Ping until the cluster responds or timeout expires.
func (s *Store) WaitForReady(ctx context.Context, timeout time.Duration) error {
	return db.WaitForReady(ctx, s, timeout)
}

// Search runs a query DSL body against indices.
func (s *Store) Search(ctx context.Context, indices []string, body map[string]any) (*db.SearchResponse, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, &db.Error{Op: db.OpSearch, Err: fmt.Errorf("encode body: %w", err)}
	}
	req := esapi.SearchRequest{
		Index:          indices,
		Body:           bytes.NewReader(payload),
		TrackTotalHits: true,
		Header:         db.Header(ctx),
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
	resp, err := esapi.CountRequest{Index: indices, Header: db.Header(ctx)}.Do(ctx, s.client)
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

// CreateIndex creates an index from a settings and mappings body.
func (s *Store) CreateIndex(ctx context.Context, name string, body []byte) error {
	req := esapi.IndicesCreateRequest{Index: name, Body: bytes.NewReader(body), Header: db.Header(ctx)}
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

// DeleteIndex removes an index.
func (s *Store) DeleteIndex(ctx context.Context, name string) error {
	resp, err := esapi.IndicesDeleteRequest{Index: []string{name}, Header: db.Header(ctx)}.Do(ctx, s.client)
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
	resp, err := esapi.IndicesExistsRequest{Index: []string{name}, Header: db.Header(ctx)}.Do(ctx, s.client)
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
