package app

import (
	"time"

	"go.uber.org/fx"

	"github.com/fatflowers/mollie-ideal/internal/app/api/server"
	"github.com/fatflowers/mollie-ideal/internal/app/service/annotation"
	"github.com/fatflowers/mollie-ideal/internal/app/service/events"
	notificationlog "github.com/fatflowers/mollie-ideal/internal/app/service/notification_log"
	"github.com/fatflowers/mollie-ideal/internal/app/service/payment"
	"github.com/fatflowers/mollie-ideal/internal/app/service/report"
	"github.com/fatflowers/mollie-ideal/internal/platform/db"
	"github.com/fatflowers/mollie-ideal/internal/platform/mollie"
	"github.com/fatflowers/mollie-ideal/pkg/config"
	"github.com/fatflowers/mollie-ideal/pkg/logger"
)

const (
	DefaultStartTimeout = 15 * time.Second
	DefaultStopTimeout  = 10 * time.Second
)

// Core provides the gateway client, storage and payment services without any
// HTTP surface. The storage driver decides whether postgres is wired in at all.
func Core(cfg *config.Config) fx.Option {
	opts := []fx.Option{
		fx.Supply(cfg),
		logger.Module,
		mollie.Module,
		payment.Module,
	}
	switch cfg.Storage.Driver {
	case config.StorageDriverMemory:
		opts = append(opts, annotation.MemoryModule, notificationlog.LogModule)
	default:
		opts = append(opts, db.Module, annotation.GormModule, notificationlog.Module)
	}
	return fx.Options(opts...)
}

// New assembles the API server.
func New(cfg *config.Config) fx.Option {
	return fx.Options(
		Core(cfg),
		events.Module,
		report.Module,
		server.Module,
	)
}
