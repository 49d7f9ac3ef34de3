package metrics

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveEngineRequest_CountsByStatus(t *testing.T) {
	okBefore := testutil.ToFloat64(EngineRequestsTotal.WithLabelValues("SEARCH", "ok"))
	errBefore := testutil.ToFloat64(EngineRequestsTotal.WithLabelValues("SEARCH", "error"))

	ObserveEngineRequest("SEARCH", 0.01, nil)
	ObserveEngineRequest("SEARCH", 0.02, nil)
	ObserveEngineRequest("SEARCH", 0.03, errors.New("boom"))

	if got := testutil.ToFloat64(EngineRequestsTotal.WithLabelValues("SEARCH", "ok")) - okBefore; got != 2 {
		t.Errorf("ok requests = %f, want 2", got)
	}
	if got := testutil.ToFloat64(EngineRequestsTotal.WithLabelValues("SEARCH", "error")) - errBefore; got != 1 {
		t.Errorf("error requests = %f, want 1", got)
	}
	if testutil.CollectAndCount(EngineRequestDuration) == 0 {
		t.Error("expected engine_request_duration_seconds to have observations")
	}
}

func TestRegisterEngineMetrics_Idempotent(t *testing.T) {
	reg := prometheus.NewRegistry()
	if err := RegisterEngineMetrics(reg); err != nil {
		t.Fatalf("first registration: %v", err)
	}
	if err := RegisterEngineMetrics(reg); err != nil {
		t.Fatalf("second registration: %v", err)
	}
}

func TestRegisterEngineMetrics_Conflict(t *testing.T) {
	reg := prometheus.NewRegistry()
	other := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "searchclient",
		Name:      "engine_requests_total",
		Help:      "Conflicting collector",
	}, []string{"op", "status"})
	reg.MustRegister(other)

	if err := RegisterEngineMetrics(reg); err == nil {
		t.Fatal("expected conflict error")
	}
}
