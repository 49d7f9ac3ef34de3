package health

import (
	"context"
	"errors"
	"testing"
)

// --- Mocks ---

type mockPinger struct {
	err error
}

func (m *mockPinger) Ping(_ context.Context) error { return m.err }

type mockAliasChecker struct {
	existing map[string]bool
	err      error
	calls    int
}

func (m *mockAliasChecker) IndexExists(_ context.Context, name string) (bool, error) {
	m.calls++
	return m.existing[name], m.err
}

// --- Tests ---

func TestCheck_AllHealthy(t *testing.T) {
	aliases := &mockAliasChecker{existing: map[string]bool{"edusources-products": true}}
	r := New(&mockPinger{}, aliases, []string{"edusources-products"}).Check(context.Background())

	if r.Status != Healthy {
		t.Errorf("expected %q, got %q", Healthy, r.Status)
	}
	if r.Checks[EngineCheck] != CheckOK {
		t.Errorf("expected engine %q, got %q", CheckOK, r.Checks[EngineCheck])
	}
	if r.Checks["edusources-products"] != CheckOK {
		t.Errorf("expected alias %q, got %q", CheckOK, r.Checks["edusources-products"])
	}
}

func TestCheck_EngineDown(t *testing.T) {
	aliases := &mockAliasChecker{}
	r := New(&mockPinger{err: errors.New("conn refused")}, aliases, []string{"edusources-products"}).
		Check(context.Background())

	if r.Status != Unhealthy {
		t.Errorf("expected %q, got %q", Unhealthy, r.Status)
	}
	if r.Checks[EngineCheck] != CheckError {
		t.Errorf("expected engine %q, got %q", CheckError, r.Checks[EngineCheck])
	}
	if aliases.calls != 0 {
		t.Errorf("alias checks should be skipped, got %d calls", aliases.calls)
	}
}

func TestCheck_MissingAlias(t *testing.T) {
	aliases := &mockAliasChecker{existing: map[string]bool{"publinova-products": true}}
	r := New(&mockPinger{}, aliases, []string{"publinova-products", "publinova-projects"}).
		Check(context.Background())

	if r.Status != Degraded {
		t.Errorf("expected %q, got %q", Degraded, r.Status)
	}
	if r.Checks["publinova-projects"] != CheckMissing {
		t.Errorf("expected %q, got %q", CheckMissing, r.Checks["publinova-projects"])
	}
	if r.Checks["publinova-products"] != CheckOK {
		t.Errorf("expected %q, got %q", CheckOK, r.Checks["publinova-products"])
	}
}

func TestCheck_AliasError(t *testing.T) {
	aliases := &mockAliasChecker{err: errors.New("timeout")}
	r := New(&mockPinger{}, aliases, []string{"mbodata-products"}).Check(context.Background())

	if r.Status != Degraded {
		t.Errorf("expected %q, got %q", Degraded, r.Status)
	}
	if r.Checks["mbodata-products"] != CheckError {
		t.Error("expected alias error")
	}
}

func TestCheck_NoAliasChecker(t *testing.T) {
	r := New(&mockPinger{}, nil, []string{"edusources-products"}).Check(context.Background())

	if r.Status != Healthy {
		t.Errorf("expected %q, got %q", Healthy, r.Status)
	}
	if len(r.Checks) != 1 {
		t.Errorf("expected only the engine check, got %v", r.Checks)
	}
}
