package payment

import (
	"go.uber.org/fx"

	"github.com/fatflowers/mollie-ideal/internal/platform/mollie"
)

// Module exposes both payment modes via Fx. Which one an object uses is up to
// the routes it is reached through.
var Module = fx.Options(
	fx.Provide(func(c *mollie.Client) Gateway { return c }),
	fx.Provide(NewSinglePaymentService),
	fx.Provide(NewMultiPaymentService),
)
