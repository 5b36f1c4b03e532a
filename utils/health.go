package utils

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// HealthCheck pings one external dependency.
type HealthCheck struct {
	Name string
	Ping func(ctx context.Context) error
}

// HealthStatus represents current status of external services.
type HealthStatus struct {
	Status    string          `json:"status"` // ok | degraded
	Services  map[string]bool `json:"services"`
	CheckedAt time.Time       `json:"checkedAt"`
}

// Healthy reports whether every service answered the last check.
func (h HealthStatus) Healthy() bool {
	return h.Status == "ok"
}

var (
	currentHealth = HealthStatus{Status: "ok", Services: map[string]bool{}}
	mu            sync.RWMutex
)

// GetHealthStatus returns latest stored health snapshot.
func GetHealthStatus() HealthStatus {
	mu.RLock()
	defer mu.RUnlock()
	return currentHealth
}

// CheckHealth runs every check once and stores the result.
func CheckHealth(ctx context.Context, checks []HealthCheck) HealthStatus {
	status := HealthStatus{
		Status:    "ok",
		Services:  make(map[string]bool, len(checks)),
		CheckedAt: time.Now(),
	}
	for _, check := range checks {
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		err := check.Ping(pingCtx)
		cancel()

		status.Services[check.Name] = err == nil
		if err != nil {
			status.Status = "degraded"
			GetLogger().Warn("Health check failed", zap.String("service", check.Name), zap.Error(err))
		}
	}

	mu.Lock()
	currentHealth = status
	mu.Unlock()
	return status
}

// StartHealthMonitor performs periodic health checks until ctx is done.
func StartHealthMonitor(ctx context.Context, interval time.Duration, checks []HealthCheck) {
	CheckHealth(ctx, checks)
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				CheckHealth(ctx, checks)
			}
		}
	}()
}
