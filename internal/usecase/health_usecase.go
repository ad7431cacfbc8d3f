package usecase

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"
)

// Pinger is anything whose reachability the health check reports
type Pinger func(ctx context.Context) error

type HealthUsecase interface {
	Check(ctx context.Context) (map[string]string, bool)
}

type healthUsecase struct {
	checks map[string]Pinger
}

// NewHealthUsecase reports on every named dependency; nil checks are skipped
func NewHealthUsecase(checks map[string]Pinger) HealthUsecase {
	active := make(map[string]Pinger, len(checks))
	for name, check := range checks {
		if check != nil {
			active[name] = check
		}
	}
	return &healthUsecase{checks: active}
}

// Check pings all dependencies in parallel. healthy is false if any of them failed.
func (u *healthUsecase) Check(ctx context.Context) (map[string]string, bool) {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	names := make([]string, 0, len(u.checks))
	for name := range u.checks {
		names = append(names, name)
	}
	results := make([]string, len(names))

	var g errgroup.Group
	for i, name := range names {
		i := i
		check := u.checks[name]
		g.Go(func() error {
			if err := check(ctx); err != nil {
				results[i] = "unavailable"
				return nil
			}
			results[i] = "ok"
			return nil
		})
	}
	_ = g.Wait()

	report := map[string]string{"status": "ok"}
	healthy := true
	for i, name := range names {
		report[name] = results[i]
		if results[i] != "ok" {
			healthy = false
		}
	}
	if !healthy {
		report["status"] = "degraded"
	}
	return report, healthy
}
