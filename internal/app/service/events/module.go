package events

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
)

func registerDefaultSubscribers(b *Bus, log *zap.SugaredLogger) {
	b.Subscribe(PaymentProcessedName, LogPaymentProcessed(log))
}

var Module = fx.Options(
	fx.Provide(New),
	fx.Provide(func(b *Bus) Publisher { return b }),
	fx.Invoke(registerDefaultSubscribers),
)
