package payment

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/fatflowers/mollie-ideal/internal/app/service/annotation"
	"github.com/fatflowers/mollie-ideal/internal/models"
	"github.com/fatflowers/mollie-ideal/internal/platform/mollie"
	"github.com/fatflowers/mollie-ideal/pkg/logctx"
	"github.com/fatflowers/mollie-ideal/pkg/types"
)

// MultiPaymentService keeps any number of payments per object, keyed by
// transaction id.
type MultiPaymentService struct {
	gateway Gateway
	store   annotation.Store
	log     *zap.SugaredLogger
	now     func() time.Time
}

func NewMultiPaymentService(gateway Gateway, store annotation.Store, log *zap.SugaredLogger) *MultiPaymentService {
	return &MultiPaymentService{gateway: gateway, store: store, log: log, now: time.Now}
}

func (s *MultiPaymentService) ListBanks(ctx context.Context) ([]mollie.Bank, error) {
	return s.gateway.ListBanks(ctx)
}

// GetPaymentURL requests a new payment for objectID. Existing payments of the
// object are left alone, including ones added while the gateway call runs.
func (s *MultiPaymentService) GetPaymentURL(ctx context.Context, objectID string, req *mollie.PaymentRequest) (transactionID string, redirectURL string, err error) {
	if objectID == "" {
		return "", "", annotation.ErrEmptyObjectID
	}

	transactionID, redirectURL, err = s.gateway.RequestPayment(ctx, req)
	if err != nil {
		return "", "", fmt.Errorf("failed to request payment: %w", err)
	}

	rec := newRecord(req, transactionID, s.now())
	var count int
	err = s.update(ctx, objectID, func(payments map[string]*models.PaymentRecord) error {
		payments[transactionID] = rec
		count = len(payments)
		return nil
	})
	if err != nil {
		return "", "", err
	}

	logctx.FromCtx(ctx, s.log).Infow("payment_requested", "object_id", objectID, "transaction_id", transactionID,
		"amount", req.Amount, "payments", count)
	return transactionID, redirectURL, nil
}

// GetTransaction looks up a stored payment without contacting the gateway.
func (s *MultiPaymentService) GetTransaction(ctx context.Context, objectID, transactionID string) (*models.PaymentRecord, error) {
	payments, err := s.load(ctx, objectID)
	if err != nil {
		return nil, err
	}
	return lookup(payments, objectID, transactionID)
}

// ListTransactions returns all payments of objectID, oldest first.
func (s *MultiPaymentService) ListTransactions(ctx context.Context, objectID string) ([]*models.PaymentRecord, error) {
	payments, err := s.load(ctx, objectID)
	if err != nil {
		return nil, err
	}
	out := lo.Values(payments)
	sort.Slice(out, func(i, j int) bool {
		if out[i].LastUpdate.Equal(out[j].LastUpdate) {
			return out[i].TransactionID < out[j].TransactionID
		}
		return out[i].LastUpdate.Before(out[j].LastUpdate)
	})
	return out, nil
}

// GetPaymentStatus checks one payment with the gateway and returns the status
// of this check. Other payments of the object are not touched.
func (s *MultiPaymentService) GetPaymentStatus(ctx context.Context, objectID, transactionID string) (types.PaymentStatus, error) {
	rec, err := s.GetTransaction(ctx, objectID, transactionID)
	if err != nil {
		return "", err
	}

	st, err := s.gateway.CheckPayment(ctx, rec.PartnerID, transactionID)
	if err != nil {
		return "", fmt.Errorf("failed to check payment: %w", err)
	}
	check := toCheckResult(st)

	var merged *models.PaymentRecord
	err = s.update(ctx, objectID, func(payments map[string]*models.PaymentRecord) error {
		cur, err := lookup(payments, objectID, transactionID)
		if err != nil {
			return err
		}
		cur.ApplyCheck(check, s.now())
		merged = cur
		return nil
	})
	if err != nil {
		return "", err
	}

	logctx.FromCtx(ctx, s.log).Infow("payment_checked", "object_id", objectID, "transaction_id", transactionID,
		"status", merged.Status, "last_status", merged.LastStatus, "paid", merged.Paid)
	return merged.LastStatus, nil
}

func (s *MultiPaymentService) load(ctx context.Context, objectID string) (map[string]*models.PaymentRecord, error) {
	a, err := s.store.Get(ctx, objectID, annotation.NamespaceMultiplePayments)
	if err != nil {
		return nil, err
	}
	return decodeMulti(a)
}

// update runs fn on the payments stored at write time.
func (s *MultiPaymentService) update(ctx context.Context, objectID string, fn func(map[string]*models.PaymentRecord) error) error {
	return s.store.Update(ctx, objectID, annotation.NamespaceMultiplePayments, func(a *models.Annotation) error {
		payments, err := decodeMulti(a)
		if err != nil {
			return err
		}
		if err := fn(payments); err != nil {
			return err
		}
		return annotation.Encode(a, payments)
	})
}

func decodeMulti(a *models.Annotation) (map[string]*models.PaymentRecord, error) {
	payments := make(map[string]*models.PaymentRecord)
	if err := annotation.Decode(a, &payments); err != nil {
		return nil, err
	}
	return payments, nil
}

func lookup(payments map[string]*models.PaymentRecord, objectID, transactionID string) (*models.PaymentRecord, error) {
	rec, ok := payments[transactionID]
	if !ok || rec == nil || transactionID == "" {
		return nil, fmt.Errorf("%w: %q on %s", ErrUnknownTransaction, transactionID, objectID)
	}
	return rec, nil
}
