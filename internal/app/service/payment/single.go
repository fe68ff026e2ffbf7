package payment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/fatflowers/mollie-ideal/internal/app/service/annotation"
	"github.com/fatflowers/mollie-ideal/internal/models"
	"github.com/fatflowers/mollie-ideal/internal/platform/mollie"
	"github.com/fatflowers/mollie-ideal/pkg/logctx"
	"github.com/fatflowers/mollie-ideal/pkg/types"
)

// SinglePaymentService binds exactly one payment to an object. Requesting a
// new payment replaces the previous record.
type SinglePaymentService struct {
	gateway Gateway
	store   annotation.Store
	log     *zap.SugaredLogger
	now     func() time.Time
}

func NewSinglePaymentService(gateway Gateway, store annotation.Store, log *zap.SugaredLogger) *SinglePaymentService {
	return &SinglePaymentService{gateway: gateway, store: store, log: log, now: time.Now}
}

func (s *SinglePaymentService) ListBanks(ctx context.Context) ([]mollie.Bank, error) {
	return s.gateway.ListBanks(ctx)
}

// GetPaymentURL requests a payment for objectID and returns the URL the payer
// must be sent to. Nothing is stored when the gateway call fails.
func (s *SinglePaymentService) GetPaymentURL(ctx context.Context, objectID string, req *mollie.PaymentRequest) (string, error) {
	if objectID == "" {
		return "", annotation.ErrEmptyObjectID
	}

	transactionID, redirectURL, err := s.gateway.RequestPayment(ctx, req)
	if err != nil {
		return "", fmt.Errorf("failed to request payment: %w", err)
	}

	rec := newRecord(req, transactionID, s.now())
	err = s.store.Update(ctx, objectID, annotation.NamespacePayment, func(a *models.Annotation) error {
		return annotation.Encode(a, rec)
	})
	if err != nil {
		return "", err
	}

	logctx.FromCtx(ctx, s.log).Infow("payment_requested", "object_id", objectID, "transaction_id", transactionID, "amount", req.Amount)
	return redirectURL, nil
}

// GetPayment returns the stored record without contacting the gateway.
func (s *SinglePaymentService) GetPayment(ctx context.Context, objectID string) (*models.PaymentRecord, error) {
	a, err := s.store.Get(ctx, objectID, annotation.NamespacePayment)
	if err != nil {
		return nil, err
	}
	return decodeSingle(a, objectID)
}

// GetPaymentStatus checks the stored payment with the gateway and returns the
// status of this check. The check is merged into the record that is stored at
// write time; it is dropped when a new payment replaced the checked one.
func (s *SinglePaymentService) GetPaymentStatus(ctx context.Context, objectID string) (types.PaymentStatus, error) {
	rec, err := s.GetPayment(ctx, objectID)
	if err != nil {
		return "", err
	}

	st, err := s.gateway.CheckPayment(ctx, rec.PartnerID, rec.TransactionID)
	if err != nil {
		return "", fmt.Errorf("failed to check payment: %w", err)
	}
	check := toCheckResult(st)

	var merged *models.PaymentRecord
	err = s.store.Update(ctx, objectID, annotation.NamespacePayment, func(a *models.Annotation) error {
		cur, err := decodeSingle(a, objectID)
		if err != nil {
			return err
		}
		if cur.TransactionID != rec.TransactionID {
			return errReplaced
		}
		cur.ApplyCheck(check, s.now())
		merged = cur
		return annotation.Encode(a, cur)
	})
	if errors.Is(err, errReplaced) || IsUnknownTransaction(err) {
		logctx.FromCtx(ctx, s.log).Warnw("payment_check_discarded", "object_id", objectID, "transaction_id", rec.TransactionID)
		return check.Status, nil
	}
	if err != nil {
		return "", err
	}

	logctx.FromCtx(ctx, s.log).Infow("payment_checked", "object_id", objectID, "transaction_id", merged.TransactionID,
		"status", merged.Status, "last_status", merged.LastStatus, "paid", merged.Paid)
	return merged.LastStatus, nil
}

// errReplaced aborts an update whose payment is no longer the stored one.
var errReplaced = errors.New("payment replaced")

func decodeSingle(a *models.Annotation, objectID string) (*models.PaymentRecord, error) {
	var rec models.PaymentRecord
	if err := annotation.Decode(a, &rec); err != nil {
		return nil, err
	}
	if rec.TransactionID == "" {
		return nil, fmt.Errorf("%w: no payment requested for %s", ErrUnknownTransaction, objectID)
	}
	return &rec, nil
}

// IsUnknownTransaction reports whether err means the transaction is not ours.
func IsUnknownTransaction(err error) bool {
	return errors.Is(err, ErrUnknownTransaction)
}
