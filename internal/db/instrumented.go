package db

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/surfedu/searchclient/internal/logger"
	"github.com/surfedu/searchclient/internal/metrics"
)

// Compile-time check: InstrumentedEngine implements Engine.
var _ Engine = (*InstrumentedEngine)(nil)

// InstrumentedEngine wraps an Engine with logging and Prometheus metrics.
type InstrumentedEngine struct {
	inner  Engine
	driver string
	logger *zap.Logger
}

// NewInstrumentedEngine wraps an engine with observability.
func NewInstrumentedEngine(inner Engine, driver string, log *zap.Logger) *InstrumentedEngine {
	if log == nil {
		log = zap.NewNop()
	}
	return &InstrumentedEngine{inner: inner, driver: driver, logger: log}
}

func (e *InstrumentedEngine) observe(ctx context.Context, op string, start time.Time, err error, fields ...zap.Field) {
	duration := time.Since(start)
	metrics.ObserveEngineRequest(op, duration.Seconds(), err)

	fields = append(fields, zap.String("driver", e.driver), zap.Duration("duration", duration))

	// An operation logger already carries op and request_id.
	log, scoped := logger.Scoped(ctx)
	if !scoped {
		log = e.logger
		fields = append(fields, zap.String("op", op))
		if id := RequestIDFromContext(ctx); id != "" {
			fields = append(fields, zap.String("request_id", id))
		}
	} else {
		fields = append(fields, zap.String("engine_op", op))
	}
	if err != nil {
		log.Error("Engine request failed", append(fields, zap.Error(err))...)
		return
	}
	log.Debug("Engine request completed", fields...)
}

// Ping delegates to the inner engine.
func (e *InstrumentedEngine) Ping(ctx context.Context) error {
	start := time.Now()
	err := e.inner.Ping(ctx)
	e.observe(ctx, OpPing, start, err)
	return err
}

// Search delegates to the inner engine.
func (e *InstrumentedEngine) Search(ctx context.Context, indices []string, body map[string]any) (*SearchResponse, error) {
	start := time.Now()
	resp, err := e.inner.Search(ctx, indices, body)
	fields := []zap.Field{zap.Strings("indices", indices)}
	if resp != nil {
		fields = append(fields, zap.Int("hits", len(resp.Hits.Hits)), zap.Int("total", resp.Hits.Total.Value))
	}
	e.observe(ctx, OpSearch, start, err, fields...)
	return resp, err
}

// Count delegates to the inner engine.
func (e *InstrumentedEngine) Count(ctx context.Context, indices []string) (int, error) {
	start := time.Now()
	n, err := e.inner.Count(ctx, indices)
	e.observe(ctx, OpCount, start, err, zap.Strings("indices", indices), zap.Int("count", n))
	return n, err
}

// CreateIndex delegates to the inner engine.
func (e *InstrumentedEngine) CreateIndex(ctx context.Context, name string, body []byte) error {
	start := time.Now()
	err := e.inner.CreateIndex(ctx, name, body)
	e.observe(ctx, OpCreateIndex, start, err, zap.String("index", name))
	return err
}

// DeleteIndex delegates to the inner engine.
func (e *InstrumentedEngine) DeleteIndex(ctx context.Context, name string) error {
	start := time.Now()
	err := e.inner.DeleteIndex(ctx, name)
	e.observe(ctx, OpDeleteIndex, start, err, zap.String("index", name))
	return err
}

// IndexExists delegates to the inner engine.
func (e *InstrumentedEngine) IndexExists(ctx context.Context, name string) (bool, error) {
	start := time.Now()
	ok, err := e.inner.IndexExists(ctx, name)
	e.observe(ctx, OpIndexExists, start, err, zap.String("index", name))
	return ok, err
}

// Close closes the inner engine.
func (e *InstrumentedEngine) Close() { e.inner.Close() }

// WaitForReady delegates to the inner engine.
func (e *InstrumentedEngine) WaitForReady(ctx context.Context, timeout time.Duration) error {
	return e.inner.WaitForReady(ctx, timeout)
}
