package report

import (
	"go.uber.org/fx"

	"github.com/fatflowers/mollie-ideal/internal/app/service/payment"
)

var Module = fx.Options(
	fx.Provide(func(s *payment.SinglePaymentService) SinglePayments { return s }),
	fx.Provide(func(s *payment.MultiPaymentService) MultiplePayments { return s }),
	fx.Provide(NewService),
)
