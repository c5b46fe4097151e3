package utils

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Pinger is anything the health monitor can probe.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthStatus represents current status of external services.
type HealthStatus struct {
	Healthy   bool            `json:"healthy"`
	Checks    map[string]bool `json:"checks"`
	CheckedAt time.Time       `json:"checkedAt"`
}

var (
	currentHealth HealthStatus
	mu            sync.RWMutex
)

// GetHealthStatus returns latest stored health snapshot.
func GetHealthStatus() HealthStatus {
	mu.RLock()
	defer mu.RUnlock()
	return currentHealth
}

// CheckHealth pings every dependency once and stores the snapshot.
func CheckHealth(ctx context.Context, pingers map[string]Pinger) HealthStatus {
	status := HealthStatus{Healthy: true, Checks: make(map[string]bool, len(pingers)), CheckedAt: time.Now()}
	for name, p := range pingers {
		pctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		err := p.Ping(pctx)
		cancel()
		if err != nil {
			GetLogger().Warn("health check failed", zap.String("dependency", name), zap.Error(err))
		}
		status.Checks[name] = err == nil
		status.Healthy = status.Healthy && err == nil
	}

	mu.Lock()
	currentHealth = status
	mu.Unlock()
	return status
}

// StartHealthMonitor performs periodic health checks until ctx is done.
func StartHealthMonitor(ctx context.Context, interval time.Duration, pingers map[string]Pinger) {
	CheckHealth(ctx, pingers)
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				CheckHealth(ctx, pingers)
			}
		}
	}()
}
