package usecase

import (
	"context"
	"time"
)

// Pinger is anything with a liveness probe (pgx pool, redis client adapter)
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingFunc adapts a function to Pinger
type PingFunc func(ctx context.Context) error

func (f PingFunc) Ping(ctx context.Context) error { return f(ctx) }

type HealthUsecase interface {
	// Check returns per-dependency status and whether all of them are up
	Check(ctx context.Context) (map[string]string, bool)
}

type healthUsecase struct {
	deps map[string]Pinger
}

// NewHealthUsecase probes each named dependency; nil entries are skipped
func NewHealthUsecase(deps map[string]Pinger) HealthUsecase {
	active := make(map[string]Pinger, len(deps))
	for name, p := range deps {
		if p != nil {
			active[name] = p
		}
	}
	return &healthUsecase{deps: active}
}

func (u *healthUsecase) Check(ctx context.Context) (map[string]string, bool) {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	status := map[string]string{"status": "ok"}
	healthy := true
	for name, p := range u.deps {
		if err := p.Ping(ctx); err != nil {
			status[name] = "down"
			healthy = false
			continue
		}
		status[name] = "up"
	}
	if !healthy {
		status["status"] = "degraded"
	}
	return status, healthy
}
