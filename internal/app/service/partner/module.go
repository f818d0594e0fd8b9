package partner

import "go.uber.org/fx"

// Module exposes the partner registry via Fx.
var Module = fx.Options(
	fx.Provide(New),
)
