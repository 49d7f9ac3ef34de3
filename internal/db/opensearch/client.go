package opensearch

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	opensearch "github.com/opensearch-project/opensearch-go/v2"
	"github.com/opensearch-project/opensearch-go/v2/opensearchapi"

	"github.com/surfedu/searchclient/internal/db"
)

// Compile-time check: Store implements db.Engine.
var _ db.Engine = (*Store)(nil)

// DefaultTimeout bounds connecting and waiting for response headers.
const DefaultTimeout = 30 * time.Second

// Config holds connection parameters for an OpenSearch cluster.
type Config struct {
	Addrs       []string
	Username    string
	Password    string
	Timeout     time.Duration
	InsecureTLS bool
}

// Store implements db.Engine via opensearch-go.
type Store struct {
	client    *opensearch.Client
	transport *http.Transport
}

// NewStore creates an OpenSearch store.
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

	client, err := opensearch.NewClient(opensearch.Config{
		Addresses: cfg.Addrs,
		Username:  cfg.Username,
		Password:  cfg.Password,
		Transport: transport,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	return &Store{client: client, transport: transport}, nil
}

// Ping checks connectivity.
func (s *Store) Ping(ctx context.Context) error {
	resp, err := opensearchapi.PingRequest{Header: db.Header(ctx)}.Do(ctx, s.client)
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
	s.transport.CloseIdleConnections()
}

// WaitForReady polls Ping until the cluster responds or timeout expires.
func (s *Store) WaitForReady(ctx context.Context, timeout time.Duration) error {
	return db.WaitForReady(ctx, s, timeout)
}
