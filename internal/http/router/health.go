package router

import "context"

// HealthChecker is a dependency the health endpoint pings, such as the
// Postgres pool or Redis.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

type HealthCheckFunc func(ctx context.Context) error

func (f HealthCheckFunc) Ping(ctx context.Context) error { return f(ctx) }
