package app

import (
	"time"

	"github.com/fatflowers/bankgate/internal/app/api/server"
	"github.com/fatflowers/bankgate/internal/app/service/events"
	notificationhandler "github.com/fatflowers/bankgate/internal/app/service/notification_handler"
	notificationlog "github.com/fatflowers/bankgate/internal/app/service/notification_log"
	"github.com/fatflowers/bankgate/internal/app/service/partner"
	"github.com/fatflowers/bankgate/internal/app/service/statistics"
	"github.com/fatflowers/bankgate/internal/app/service/store"
	"github.com/fatflowers/bankgate/internal/app/service/verification"
	"github.com/fatflowers/bankgate/internal/platform/db"
	"github.com/fatflowers/bankgate/internal/platform/kv"
	"github.com/fatflowers/bankgate/pkg/config"
	"github.com/fatflowers/bankgate/pkg/logger"

	"go.uber.org/fx"
)

const (
	DefaultStartTimeout = 15 * time.Second
	DefaultStopTimeout  = 10 * time.Second
)

var Module = fx.Options(
	logger.Module,
	config.Module,
	db.Module,
	kv.Module,
	partner.Module,
	store.Module,
	verification.Module,
	notificationlog.Module,
	statistics.Module,
	events.Module,
	notificationhandler.Module,
	server.Module,
)
