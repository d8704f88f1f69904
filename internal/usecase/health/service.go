package health

import "context"

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates an optional component is failing.
	Degraded Status = "degraded"
	// Unhealthy indicates the database is unreachable.
	Unhealthy Status = "error"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
)

// Component names reported in Report.Checks.
const (
	Database  = "database"
	Redis     = "redis"
	Storage   = "storage"
	Embedding = "embedding"
)

// Report aggregates health check results.
type Report struct {
	Status Status
	Checks map[string]CheckResult
}

type component struct {
	name string
	p    Pinger
}

// Service coordinates health checks.
type Service struct {
	db       Pinger
	optional []component
}

// New creates a Service around the required database check.
func New(db Pinger) *Service {
	return &Service{db: db}
}

// With adds an optional component. A nil pinger is skipped, so unconfigured
// dependencies stay out of the report.
func (s *Service) With(name string, p Pinger) *Service {
	if p != nil {
		s.optional = append(s.optional, component{name: name, p: p})
	}
	return s
}

// Check runs health checks against all components.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult, len(s.optional)+1)
	status := Healthy

	checks[Database] = result(s.db.Ping(ctx))
	if checks[Database] == CheckError {
		status = Unhealthy
	}

	for _, c := range s.optional {
		checks[c.name] = result(c.p.Ping(ctx))
		if checks[c.name] == CheckError && status == Healthy {
			status = Degraded
		}
	}

	return Report{Status: status, Checks: checks}
}

func result(err error) CheckResult {
	if err != nil {
		return CheckError
	}
	return CheckOK
}
