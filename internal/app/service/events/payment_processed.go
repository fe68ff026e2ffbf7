package events

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/fatflowers/mollie-ideal/pkg/logctx"
)

const PaymentProcessedName = "ideal.payment_processed"

// PaymentProcessed is published after a Mollie report led to a status check.
type PaymentProcessed struct {
	ObjectID string
	// Request is the inbound report request.
	Request *http.Request
	// TransactionID is only set for objects in multiple payment mode.
	TransactionID string
	At            time.Time
}

func (PaymentProcessed) Name() string { return PaymentProcessedName }

// LogPaymentProcessed is the default subscriber. It only writes the event to the log.
func LogPaymentProcessed(log *zap.SugaredLogger) Handler {
	return func(ctx context.Context, evt Event) error {
		e, ok := evt.(PaymentProcessed)
		if !ok {
			return nil
		}
		logctx.FromCtx(ctx, log).Infow("payment_processed", "object_id", e.ObjectID, "transaction_id", e.TransactionID, "at", e.At)
		return nil
	}
}
