package health

import (
	"context"
	"time"
)

const (
	StatusHealthy   = "healthy"
	StatusUnhealthy = "unhealthy"
	StatusDisabled  = "disabled"
)

// Pinger is anything that can prove it is reachable: the pgx pool, the
// image bucket.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingFunc adapts a function to Pinger.
type PingFunc func(ctx context.Context) error

func (f PingFunc) Ping(ctx context.Context) error { return f(ctx) }

type HealthChecker struct {
	db      Pinger
	cache   Pinger
	storage Pinger
	started time.Time
	timeout time.Duration
}

type HealthStatus struct {
	Status   string          `json:"status"`
	Database ComponentHealth `json:"database"`
}

type DetailedStatus struct {
	Status   string          `json:"status"`
	Uptime   string          `json:"uptime"`
	Database ComponentHealth `json:"database"`
	Cache    ComponentHealth `json:"cache"`
	Storage  ComponentHealth `json:"storage"`
	System   SystemStats     `json:"system"`
}

type ComponentHealth struct {
	Status       string `json:"status"`
	ResponseTime int64  `json:"response_time_ms"`
	Error        string `json:"error,omitempty"`
}

// NewHealthChecker builds a checker. cache and storage may be nil when the
// component is not configured; they then report "disabled".
func NewHealthChecker(db, cache, storage Pinger) *HealthChecker {
	return &HealthChecker{
		db:      db,
		cache:   cache,
		storage: storage,
		started: time.Now(),
		timeout: 2 * time.Second,
	}
}

// CheckBasic reports readiness. Only the database is required.
func (h *HealthChecker) CheckBasic(ctx context.Context) HealthStatus {
	db := h.check(ctx, h.db)
	return HealthStatus{
		Status:   overall(db),
		Database: db,
	}
}

// CheckDetailed adds the optional components and host statistics.
func (h *HealthChecker) CheckDetailed(ctx context.Context) DetailedStatus {
	db := h.check(ctx, h.db)
	cache := h.check(ctx, h.cache)
	storage := h.check(ctx, h.storage)

	status := overall(db)
	if status == StatusHealthy && (cache.Status == StatusUnhealthy || storage.Status == StatusUnhealthy) {
		status = "degraded"
	}

	return DetailedStatus{
		Status:   status,
		Uptime:   formatUptime(int(time.Since(h.started).Seconds())),
		Database: db,
		Cache:    cache,
		Storage:  storage,
		System:   CollectSystemStats(),
	}
}

func (h *HealthChecker) check(ctx context.Context, p Pinger) ComponentHealth {
	if p == nil {
		return ComponentHealth{Status: StatusDisabled}
	}

	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	start := time.Now()
	err := p.Ping(ctx)
	elapsed := time.Since(start).Milliseconds()

	if err != nil {
		return ComponentHealth{Status: StatusUnhealthy, ResponseTime: elapsed, Error: err.Error()}
	}
	return ComponentHealth{Status: StatusHealthy, ResponseTime: elapsed}
}

func overall(db ComponentHealth) string {
	if db.Status != StatusHealthy {
		return StatusUnhealthy
	}
	return StatusHealthy
}
