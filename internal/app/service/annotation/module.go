package annotation

import "go.uber.org/fx"

// GormModule stores annotations in postgres. Requires *gorm.DB.
var GormModule = fx.Options(
	fx.Provide(
		fx.Annotate(NewGormStore, fx.As(new(Store))),
	),
)

// MemoryModule keeps annotations in memory, e.g. for local development.
var MemoryModule = fx.Options(
	fx.Provide(
		fx.Annotate(NewMemoryStore, fx.As(new(Store))),
	),
)
