package notification_log

import "go.uber.org/fx"

// Module stores notification logs in postgres. Requires *gorm.DB.
var Module = fx.Options(
	fx.Provide(fx.Annotate(New, fx.As(new(Recorder)), fx.As(new(Scanner)))),
)

// LogModule only logs notifications. No Scanner is provided.
var LogModule = fx.Options(
	fx.Provide(fx.Annotate(NewLogRecorder, fx.As(new(Recorder)))),
)
