package report

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/fatflowers/mollie-ideal/internal/app/service/events"
	notificationlog "github.com/fatflowers/mollie-ideal/internal/app/service/notification_log"
	"github.com/fatflowers/mollie-ideal/internal/app/service/payment"
	"github.com/fatflowers/mollie-ideal/internal/models"
	"github.com/fatflowers/mollie-ideal/pkg/logctx"
	"github.com/fatflowers/mollie-ideal/pkg/types"
)

const (
	AcceptMessage = "OK"
	RejectMessage = "Wrong or missing transaction ID"
)

const (
	modeSingle   = "single"
	modeMultiple = "multiple"
)

// Outcome is the state a report ends in.
type Outcome int

const (
	OutcomeAccepted Outcome = iota
	OutcomeRejectedNoID
	OutcomeRejectedUnknown
)

func (o Outcome) String() string {
	switch o {
	case OutcomeAccepted:
		return "accepted"
	case OutcomeRejectedNoID:
		return "rejected_no_id"
	case OutcomeRejectedUnknown:
		return "rejected_unknown"
	}
	return fmt.Sprintf("outcome(%d)", int(o))
}

func (o Outcome) Rejected() bool { return o != OutcomeAccepted }

type SinglePayments interface {
	GetPayment(ctx context.Context, objectID string) (*models.PaymentRecord, error)
	GetPaymentStatus(ctx context.Context, objectID string) (types.PaymentStatus, error)
}

type MultiplePayments interface {
	GetTransaction(ctx context.Context, objectID, transactionID string) (*models.PaymentRecord, error)
	GetPaymentStatus(ctx context.Context, objectID, transactionID string) (types.PaymentStatus, error)
}

// Report is one inbound status report from Mollie.
type Report struct {
	ObjectID      string
	TransactionID string
	TraceID       string
	Form          url.Values
	Request       *http.Request
}

// Service handles status reports. The transaction id in the report is the
// only credential: it has to match a payment stored on the object.
type Service struct {
	single   SinglePayments
	multi    MultiplePayments
	events   events.Publisher
	notifLog notificationlog.Recorder
	Logger   *zap.SugaredLogger
	now      func() time.Time
}

func NewService(single SinglePayments, multi MultiplePayments, pub events.Publisher, rec notificationlog.Recorder, log *zap.SugaredLogger) *Service {
	return &Service{single: single, multi: multi, events: pub, notifLog: rec, Logger: log, now: time.Now}
}

// HandleSingle processes a report for an object with a single payment.
func (s *Service) HandleSingle(ctx context.Context, rep *Report) (Outcome, error) {
	return s.handle(ctx, modeSingle, rep, func() (Outcome, error) {
		rec, err := s.single.GetPayment(ctx, rep.ObjectID)
		if err != nil {
			if payment.IsUnknownTransaction(err) {
				return OutcomeRejectedUnknown, nil
			}
			return 0, err
		}
		if rec.TransactionID != rep.TransactionID {
			return OutcomeRejectedUnknown, nil
		}
		return OutcomeAccepted, nil
	}, func() (types.PaymentStatus, error) {
		return s.single.GetPaymentStatus(ctx, rep.ObjectID)
	}, events.PaymentProcessed{ObjectID: rep.ObjectID, Request: rep.Request})
}

// HandleMultiple processes a report for an object with multiple payments.
func (s *Service) HandleMultiple(ctx context.Context, rep *Report) (Outcome, error) {
	return s.handle(ctx, modeMultiple, rep, func() (Outcome, error) {
		if _, err := s.multi.GetTransaction(ctx, rep.ObjectID, rep.TransactionID); err != nil {
			if payment.IsUnknownTransaction(err) {
				return OutcomeRejectedUnknown, nil
			}
			return 0, err
		}
		return OutcomeAccepted, nil
	}, func() (types.PaymentStatus, error) {
		return s.multi.GetPaymentStatus(ctx, rep.ObjectID, rep.TransactionID)
	}, events.PaymentProcessed{ObjectID: rep.ObjectID, Request: rep.Request, TransactionID: rep.TransactionID})
}

func (s *Service) handle(
	ctx context.Context,
	mode string,
	rep *Report,
	authorize func() (Outcome, error),
	refresh func() (types.PaymentStatus, error),
	evt events.PaymentProcessed,
) (outcome Outcome, resErr error) {
	log := logctx.FromCtx(ctx, s.Logger).With("mode", mode, "object_id", rep.ObjectID, "transaction_id", rep.TransactionID)
	dataBytes, _ := json.Marshal(rep.Form)
	s.saveLog(ctx, mode, rep, dataBytes, nil, models.PaymentNotificationLogStatusReceived)

	var lastStatus types.PaymentStatus
	defer func() {
		resMap := map[string]any{}
		if resErr == nil {
			resMap["outcome"] = outcome.String()
		}
		if lastStatus != "" {
			resMap["last_status"] = lastStatus
		}
		status := models.PaymentNotificationLogStatusHandled
		switch {
		case resErr != nil:
			resMap["error"] = resErr.Error()
			status = models.PaymentNotificationLogStatusHandleFailed
		case outcome.Rejected():
			status = models.PaymentNotificationLogStatusRejected
		}
		resBytes, _ := json.Marshal(resMap)
		s.saveLog(ctx, mode, rep, dataBytes, resBytes, status)
	}()

	if rep.TransactionID == "" {
		log.Warnw("report_rejected", "reason", "missing transaction id")
		return OutcomeRejectedNoID, nil
	}

	outcome, resErr = authorize()
	if resErr != nil {
		log.Errorw("report_lookup_failed", "error", resErr.Error())
		return outcome, fmt.Errorf("failed to look up transaction: %w", resErr)
	}
	if outcome.Rejected() {
		log.Warnw("report_rejected", "reason", "unknown transaction id")
		return outcome, nil
	}

	lastStatus, resErr = refresh()
	if resErr != nil {
		log.Errorw("report_status_check_failed", "error", resErr.Error())
		return outcome, fmt.Errorf("failed to check payment status: %w", resErr)
	}

	evt.At = s.now()
	if errs := s.events.Publish(ctx, evt); len(errs) > 0 {
		log.Warnw("payment_processed_subscribers_failed", "errors", len(errs))
	}
	log.Infow("report_handled", "last_status", lastStatus)
	return OutcomeAccepted, nil
}

func (s *Service) saveLog(ctx context.Context, mode string, rep *Report, data, result []byte, status models.PaymentNotificationLogStatus) {
	entry := &models.PaymentNotificationLog{
		ProviderID:       string(types.PaymentProviderMollie),
		ObjectID:         rep.ObjectID,
		Mode:             mode,
		TraceID:          rep.TraceID,
		TransactionID:    rep.TransactionID,
		NotificationTime: s.now(),
		Data:             datatypes.JSON(data),
		Status:           status,
	}
	if result != nil {
		j := datatypes.JSON(result)
		entry.Result = &j
	}
	s.notifLog.Save(ctx, entry)
}
