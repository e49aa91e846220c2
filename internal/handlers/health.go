package handlers

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/ironarian/ukr-jobs-japan/internal/platform/httpx"
)

// ReadinessCheck reports whether a dependency is ready to serve. Details are
// merged into the /readyz payload.
type ReadinessCheck func(ctx context.Context) (map[string]any, error)

// HealthHandlers serves liveness and readiness probes.
type HealthHandlers struct {
	started time.Time
	clock   func() time.Time
	checks  map[string]ReadinessCheck
}

// HealthOption customises HealthHandlers.
type HealthOption func(*HealthHandlers)

// WithHealthClock overrides the clock used for uptime and timestamps.
func WithHealthClock(clock func() time.Time) HealthOption {
	return func(h *HealthHandlers) {
		if clock != nil {
			h.clock = clock
			h.started = clock()
		}
	}
}

// WithReadinessCheck registers a named readiness check.
func WithReadinessCheck(name string, check ReadinessCheck) HealthOption {
	return func(h *HealthHandlers) {
		if name != "" && check != nil {
			h.checks[name] = check
		}
	}
}

// NewHealthHandlers constructs probe handlers.
func NewHealthHandlers(opts ...HealthOption) *HealthHandlers {
	h := &HealthHandlers{
		clock:  time.Now,
		checks: map[string]ReadinessCheck{},
	}
	h.started = h.clock()
	for _, opt := range opts {
		if opt != nil {
			opt(h)
		}
	}
	return h
}

// Healthz reports process liveness.
func (h *HealthHandlers) Healthz(w http.ResponseWriter, _ *http.Request) {
	now := h.clock()
	httpx.WriteJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"uptime":    now.Sub(h.started).String(),
		"timestamp": now.UTC().Format(time.RFC3339),
	})
}

// Readyz runs every readiness check. Any failure answers 503.
func (h *HealthHandlers) Readyz(w http.ResponseWriter, r *http.Request) {
	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	status := http.StatusOK
	checks := make(map[string]any, len(names))
	for _, name := range names {
		details, err := h.checks[name](r.Context())
		entry := map[string]any{"status": "ok"}
		for k, v := range details {
			entry[k] = v
		}
		if err != nil {
			status = http.StatusServiceUnavailable
			entry["status"] = "error"
			entry["error"] = err.Error()
		}
		checks[name] = entry
	}

	overall := "ok"
	if status != http.StatusOK {
		overall = "error"
	}
	httpx.WriteJSON(w, status, map[string]any{
		"status":    overall,
		"checks":    checks,
		"timestamp": h.clock().UTC().Format(time.RFC3339),
	})
}
