package health

import (
	"context"
	"slices"
)

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates partial failure.
	Degraded Status = "degraded"
	// Unhealthy indicates the engine is unreachable.
	Unhealthy Status = "error"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
	// CheckMissing indicates an alias that resolves to no index.
	CheckMissing CheckResult = "missing"
)

// EngineCheck is the check name of the engine ping.
const EngineCheck = "engine"

// Report aggregates health check results.
type Report struct {
	Status Status                 `json:"status"`
	Checks map[string]CheckResult `json:"checks"`
}

// Service coordinates health checks.
type Service struct {
	engine  Pinger
	aliases AliasChecker
	names   []string
}

// New creates a Service checking the engine and, when aliases is non-nil, the
// given alias names.
func New(engine Pinger, aliases AliasChecker, names []string) *Service {
	return &Service{engine: engine, aliases: aliases, names: slices.Clone(names)}
}

// Check runs health checks against all components. Alias checks are skipped
// when the engine does not answer.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult)

	if err := s.engine.Ping(ctx); err != nil {
		checks[EngineCheck] = CheckError
		return Report{Status: Unhealthy, Checks: checks}
	}
	checks[EngineCheck] = CheckOK

	status := Healthy
	if s.aliases != nil {
		for _, name := range s.names {
			ok, err := s.aliases.IndexExists(ctx, name)
			switch {
			case err != nil:
				checks[name] = CheckError
			case !ok:
				checks[name] = CheckMissing
			default:
				checks[name] = CheckOK
				continue
			}
			status = Degraded
		}
	}

	return Report{Status: status, Checks: checks}
}
