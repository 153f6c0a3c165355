package handlers

import (
	"context"
	"net/http"
	"time"
)

// ReadyCheck probes one dependency and reports an error when it is not ready.
type ReadyCheck func(ctx context.Context) error

// BuildInfo identifies the running binary in health responses.
type BuildInfo struct {
	Version     string
	CommitSHA   string
	Environment string
	StartedAt   time.Time
}

// HealthHandlers serves liveness and readiness endpoints.
type HealthHandlers struct {
	build  BuildInfo
	clock  func() time.Time
	checks map[string]ReadyCheck
}

// HealthOption customises the health handlers.
type HealthOption func(*HealthHandlers)

// WithHealthBuildInfo attaches build metadata to health responses.
func WithHealthBuildInfo(info BuildInfo) HealthOption {
	return func(h *HealthHandlers) {
		h.build = info
	}
}

// WithHealthClock overrides the time source, primarily for tests.
func WithHealthClock(clock func() time.Time) HealthOption {
	return func(h *HealthHandlers) {
		if clock != nil {
			h.clock = clock
		}
	}
}

// WithHealthCheck registers a named readiness probe.
func WithHealthCheck(name string, check ReadyCheck) HealthOption {
	return func(h *HealthHandlers) {
		if name != "" && check != nil {
			h.checks[name] = check
		}
	}
}

// NewHealthHandlers constructs health handlers with the provided options.
func NewHealthHandlers(opts ...HealthOption) *HealthHandlers {
	h := &HealthHandlers{
		clock:  time.Now,
		checks: make(map[string]ReadyCheck),
	}
	if h.build.StartedAt.IsZero() {
		h.build.StartedAt = time.Now()
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Healthz reports process liveness.
func (h *HealthHandlers) Healthz(w http.ResponseWriter, r *http.Request) {
	now := h.clock()
	payload := map[string]any{
		"status":    "ok",
		"uptime":    now.Sub(h.build.StartedAt).String(),
		"timestamp": now.UTC().Format(time.RFC3339),
	}
	if h.build.Version != "" {
		payload["version"] = h.build.Version
	}
	if h.build.CommitSHA != "" {
		payload["commit_sha"] = h.build.CommitSHA
	}
	if h.build.Environment != "" {
		payload["environment"] = h.build.Environment
	}
	writeJSON(w, http.StatusOK, payload)
}

// Readyz runs each registered dependency probe and reports 503 when any fails.
func (h *HealthHandlers) Readyz(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	now := h.clock()

	status := "ok"
	httpStatus := http.StatusOK
	checks := make(map[string]any, len(h.checks))
	for name, check := range h.checks {
		started := h.clock()
		err := check(ctx)
		latency := h.clock().Sub(started)
		if err != nil {
			status = "unavailable"
			httpStatus = http.StatusServiceUnavailable
			checks[name] = map[string]any{
				"status":  "unavailable",
				"error":   err.Error(),
				"latency": latency.String(),
			}
			continue
		}
		checks[name] = map[string]any{
			"status":  "ok",
			"latency": latency.String(),
		}
	}

	writeJSON(w, httpStatus, map[string]any{
		"status":    status,
		"checks":    checks,
		"timestamp": now.UTC().Format(time.RFC3339),
	})
}
