package verification

import (
	"github.com/fatflowers/bankgate/internal/app/service/partner"
	"github.com/fatflowers/bankgate/internal/app/service/store"
	"github.com/fatflowers/bankgate/pkg/config"

	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Module exposes the verification pipeline via Fx, backed by the partner
// registry and the Redis store.
var Module = fx.Options(
	fx.Provide(newPipeline),
)

func newPipeline(cfg *config.Config, log *zap.SugaredLogger, partners *partner.Registry, st *store.RedisStore) (*Pipeline, error) {
	return NewPipeline(cfg, log, partners, st)
}
