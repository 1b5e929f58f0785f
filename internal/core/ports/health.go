package ports

import "context"

// HealthChecker is implemented by every storage backend so readiness probes
// can report on whichever backends are wired.
type HealthChecker interface {
	Name() string
	Ping(ctx context.Context) error
}
