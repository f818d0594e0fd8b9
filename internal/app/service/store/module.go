package store

import "go.uber.org/fx"

// Module exposes the Redis-backed store via Fx.
var Module = fx.Options(
	fx.Provide(NewRedisStore),
)
