package health

import (
	"context"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Pinger is satisfied by *pgxpool.Pool and *mongodb.Client.
type Pinger interface {
	Ping(ctx context.Context) error
}

// CheckResult represents the health of a single dependency.
type CheckResult struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// HealthResult is the top-level health response.
type HealthResult struct {
	Status string                 `json:"status"`
	Checks map[string]CheckResult `json:"checks,omitempty"`
}

// Dependency is a named backing service probed on readiness.
type Dependency struct {
	Name   string
	Pinger Pinger
}

// Checker verifies that all dependencies are reachable.
type Checker struct {
	deps   []Dependency
	logger *slog.Logger
	gauge  *prometheus.GaugeVec
}

// NewChecker creates a health checker and registers its Prometheus gauge.
// Dependencies with a nil Pinger are skipped; process-local storage has
// nothing to probe.
func NewChecker(logger *slog.Logger, reg prometheus.Registerer, deps ...Dependency) *Checker {
	gauge := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "account",
		Name:      "health_check_up",
		Help:      "Whether a dependency is reachable. 1 = up, 0 = down.",
	}, []string{"dependency"})
	reg.MustRegister(gauge)

	live := make([]Dependency, 0, len(deps))
	for _, d := range deps {
		if d.Pinger != nil {
			live = append(live, d)
		}
	}

	return &Checker{
		deps:   live,
		logger: logger.With("component", "health"),
		gauge:  gauge,
	}
}

// Liveness returns a simple "up" response if the process is running.
func (c *Checker) Liveness(_ context.Context) HealthResult {
	return HealthResult{Status: "up"}
}

// Readiness pings every dependency and reports per-check status.
func (c *Checker) Readiness(ctx context.Context) HealthResult {
	checkCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	result := HealthResult{
		Status: "up",
		Checks: make(map[string]CheckResult),
	}

	for _, d := range c.deps {
		if err := d.Pinger.Ping(checkCtx); err != nil {
			c.logger.Warn("health check failed", "dependency", d.Name, "error", err)
			result.Status = "down"
			result.Checks[d.Name] = CheckResult{Status: "down", Error: err.Error()}
			c.gauge.WithLabelValues(d.Name).Set(0)
			continue
		}
		result.Checks[d.Name] = CheckResult{Status: "up"}
		c.gauge.WithLabelValues(d.Name).Set(1)
	}

	return result
}
