package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

// HealthStatus represents the overall health status of the server.
type HealthStatus string

const (
	HealthStatusHealthy   HealthStatus = "healthy"
	HealthStatusUnhealthy HealthStatus = "unhealthy"
)

// CheckResult is the result of a single health check.
type CheckResult struct {
	Name     string        `json:"name"`
	Status   HealthStatus  `json:"status"`
	Duration time.Duration `json:"duration"`
	Error    string        `json:"error,omitempty"`
}

// HealthResponse is the complete health check response.
type HealthResponse struct {
	Status    HealthStatus  `json:"status"`
	Timestamp time.Time     `json:"timestamp"`
	Duration  time.Duration `json:"duration"`
	Checks    []CheckResult `json:"checks"`
}

// HealthChecker runs the spectator server's health checks.
type HealthChecker struct {
	checks map[string]func(context.Context) error
	server *Server
}

// NewHealthChecker registers the default checks for srv: that the hub is
// initialized and not shutting down, and that the rate limiter is
// initialized.
func NewHealthChecker(srv *Server) *HealthChecker {
	hc := &HealthChecker{
		checks: make(map[string]func(context.Context) error),
		server: srv,
	}
	hc.RegisterCheck("hub", hc.checkHub)
	hc.RegisterCheck("rate_limiter", hc.checkRateLimiter)
	return hc
}

// RegisterCheck adds a named check.
func (hc *HealthChecker) RegisterCheck(name string, check func(context.Context) error) {
	hc.checks[name] = check
}

// RunHealthChecks executes every registered check.
func (hc *HealthChecker) RunHealthChecks(ctx context.Context) HealthResponse {
	start := time.Now()
	response := HealthResponse{
		Timestamp: start,
		Checks:    make([]CheckResult, 0, len(hc.checks)),
		Status:    HealthStatusHealthy,
	}

	for name, check := range hc.checks {
		checkStart := time.Now()
		result := CheckResult{Name: name, Status: HealthStatusHealthy}

		checkCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		err := check(checkCtx)
		cancel()
		result.Duration = time.Since(checkStart)

		status := "success"
		if err != nil {
			result.Status = HealthStatusUnhealthy
			result.Error = err.Error()
			response.Status = HealthStatusUnhealthy
			status = "failure"
			logrus.WithFields(logrus.Fields{"check": name, "error": err}).Warn("spectator health check failed")
		}
		if hc.server.metrics != nil {
			hc.server.metrics.RecordHealthCheck(name, status)
		}
		response.Checks = append(response.Checks, result)
	}

	response.Duration = time.Since(start)
	return response
}

func (hc *HealthChecker) checkHub(ctx context.Context) error {
	if hc.server == nil || hc.server.hub == nil {
		return fmt.Errorf("spectator hub is not initialized")
	}
	select {
	case <-hc.server.done:
		return fmt.Errorf("server is shutting down")
	default:
		return nil
	}
}

func (hc *HealthChecker) checkRateLimiter(ctx context.Context) error {
	if hc.server == nil || hc.server.limiter == nil {
		return fmt.Errorf("rate limiter is not initialized")
	}
	return nil
}

// HealthHandler serves /healthz.
func (hc *HealthChecker) HealthHandler(w http.ResponseWriter, r *http.Request) {
	response := hc.RunHealthChecks(r.Context())

	status := http.StatusOK
	if response.Status == HealthStatusUnhealthy {
		status = http.StatusServiceUnavailable
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		logrus.WithError(err).Error("failed to encode health response")
	}
}
