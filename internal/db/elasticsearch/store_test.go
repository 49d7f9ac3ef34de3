package elasticsearch

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/surfedu/searchclient/internal/db"
)

type transportFunc func(*http.Request) (*http.Response, error)

func (f transportFunc) Perform(r *http.Request) (*http.Response, error) { return f(r) }

func reply(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func TestNewStore_RequiresAddrs(t *testing.T) {
	if _, err := NewStore(Config{}); err == nil {
		t.Fatal("expected error for missing addrs")
	}
}

func TestSearch_Success(t *testing.T) {
	s := NewStoreForTest(transportFunc(func(r *http.Request) (*http.Response, error) {
		if r.URL.Path != "/edusources-nl,edusources-en/_search" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if r.Header.Get(db.OpaqueIDHeader) != "req-1" {
			t.Errorf("missing opaque id header")
		}
		if r.URL.Query().Get("track_total_hits") != "true" {
			t.Errorf("track_total_hits = %q", r.URL.Query().Get("track_total_hits"))
		}
		return reply(200, `{"hits": {"total": {"value": 2, "relation": "eq"}, "hits": []}}`), nil
	}))

	ctx := db.ContextWithRequestID(context.Background(), "req-1")
	resp, err := s.Search(ctx, []string{"edusources-nl", "edusources-en"}, map[string]any{"size": 0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Hits.Total.Value != 2 {
		t.Errorf("total = %d", resp.Hits.Total.Value)
	}
}

func TestSearch_TransportError(t *testing.T) {
	boom := errors.New("connection refused")
	s := NewStoreForTest(transportFunc(func(*http.Request) (*http.Response, error) { return nil, boom }))

	_, err := s.Search(context.Background(), []string{"x"}, map[string]any{})
	if !errors.Is(err, boom) {
		t.Fatalf("expected transport error, got %v", err)
	}
	var dbErr *db.Error
	if !errors.As(err, &dbErr) || dbErr.Op != db.OpSearch {
		t.Errorf("expected *db.Error with op %s, got %v", db.OpSearch, err)
	}
}

func TestCount_EngineError(t *testing.T) {
	s := NewStoreForTest(transportFunc(func(*http.Request) (*http.Response, error) {
		return reply(404, `{"error": {"type": "index_not_found_exception", "reason": "no such index"}}`), nil
	}))
	if _, err := s.Count(context.Background(), []string{"missing"}); !errors.Is(err, db.ErrIndexNotFound) {
		t.Fatalf("expected ErrIndexNotFound, got %v", err)
	}
}

func TestCount(t *testing.T) {
	s := NewStoreForTest(transportFunc(func(*http.Request) (*http.Response, error) {
		return reply(200, `{"count": 3}`), nil
	}))
	n, err := s.Count(context.Background(), []string{"edusources-nl"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 3 {
		t.Errorf("count = %d", n)
	}
}

func TestIndexExists(t *testing.T) {
	status := 200
	s := NewStoreForTest(transportFunc(func(r *http.Request) (*http.Response, error) {
		if r.Method != http.MethodHead {
			t.Errorf("method = %s", r.Method)
		}
		return reply(status, ""), nil
	}))
	ok, err := s.IndexExists(context.Background(), "edusources-nl")
	if err != nil || !ok {
		t.Fatalf("IndexExists = %v, %v", ok, err)
	}
	status = 404
	ok, err = s.IndexExists(context.Background(), "edusources-nl")
	if err != nil || ok {
		t.Fatalf("IndexExists = %v, %v", ok, err)
	}
}

func TestCreateAndDeleteIndex(t *testing.T) {
	var methods []string
	s := NewStoreForTest(transportFunc(func(r *http.Request) (*http.Response, error) {
		methods = append(methods, r.Method)
		return reply(200, `{"acknowledged": true}`), nil
	}))
	ctx := context.Background()
	if err := s.CreateIndex(ctx, "edusources-nl", []byte(`{}`)); err != nil {
		t.Fatalf("CreateIndex: %v", err)
	}
	if err := s.DeleteIndex(ctx, "edusources-nl"); err != nil {
		t.Fatalf("DeleteIndex: %v", err)
	}
	if len(methods) != 2 || methods[0] != http.MethodPut || methods[1] != http.MethodDelete {
		t.Errorf("methods = %v", methods)
	}
}

func TestPing_Unavailable(t *testing.T) {
	s := NewStoreForTest(transportFunc(func(*http.Request) (*http.Response, error) {
		return reply(503, ""), nil
	}))
	if err := s.Ping(context.Background()); !errors.Is(err, db.ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
	s.Close()
}
