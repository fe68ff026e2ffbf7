package report

import (
	"context"
	"errors"
	"fmt"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/fatflowers/mollie-ideal/internal/app/service/events"
	"github.com/fatflowers/mollie-ideal/internal/app/service/payment"
	"github.com/fatflowers/mollie-ideal/internal/models"
	"github.com/fatflowers/mollie-ideal/pkg/types"
)

type stubSingle struct {
	rec     *models.PaymentRecord
	status  types.PaymentStatus
	err     error
	checked int
}

func (s *stubSingle) GetPayment(_ context.Context, objectID string) (*models.PaymentRecord, error) {
	if s.rec == nil {
		return nil, fmt.Errorf("%w: %s", payment.ErrUnknownTransaction, objectID)
	}
	return s.rec, nil
}

func (s *stubSingle) GetPaymentStatus(_ context.Context, _ string) (types.PaymentStatus, error) {
	s.checked++
	return s.status, s.err
}

type stubMulti struct {
	recs    map[string]*models.PaymentRecord
	status  types.PaymentStatus
	checked []string
}

func (s *stubMulti) GetTransaction(_ context.Context, objectID, transactionID string) (*models.PaymentRecord, error) {
	rec, ok := s.recs[transactionID]
	if !ok {
		return nil, fmt.Errorf("%w: %s on %s", payment.ErrUnknownTransaction, transactionID, objectID)
	}
	return rec, nil
}

func (s *stubMulti) GetPaymentStatus(_ context.Context, _, transactionID string) (types.PaymentStatus, error) {
	s.checked = append(s.checked, transactionID)
	return s.status, nil
}

type countingPublisher struct {
	events []events.Event
	errs   []error
}

func (p *countingPublisher) Publish(_ context.Context, evt events.Event) []error {
	p.events = append(p.events, evt)
	return p.errs
}

type memRecorder struct {
	mu   sync.Mutex
	logs []*models.PaymentNotificationLog
}

func (r *memRecorder) Save(_ context.Context, l *models.PaymentNotificationLog) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.logs = append(r.logs, l)
}

func (r *memRecorder) statuses() []models.PaymentNotificationLogStatus {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.PaymentNotificationLogStatus, 0, len(r.logs))
	for _, l := range r.logs {
		out = append(out, l.Status)
	}
	return out
}

func newTestService(single SinglePayments, multi MultiplePayments) (*Service, *countingPublisher, *memRecorder) {
	pub := &countingPublisher{}
	rec := &memRecorder{}
	return NewService(single, multi, pub, rec, zap.NewNop().Sugar()), pub, rec
}

func newReport(objectID, transactionID string) *Report {
	r := httptest.NewRequest("GET", "/ideal/report/"+objectID+"?transaction_id="+url.QueryEscape(transactionID), nil)
	return &Report{ObjectID: objectID, TransactionID: transactionID, Form: url.Values{"transaction_id": {transactionID}}, Request: r}
}

func TestHandleSingle_MissingTransactionID(t *testing.T) {
	single := &stubSingle{rec: &models.PaymentRecord{TransactionID: "tx-1"}}
	svc, pub, rec := newTestService(single, &stubMulti{})

	outcome, err := svc.HandleSingle(context.Background(), newReport("doc-1", ""))
	require.NoError(t, err)
	require.Equal(t, OutcomeRejectedNoID, outcome)
	require.Zero(t, single.checked)
	require.Empty(t, pub.events)
	require.Equal(t, []models.PaymentNotificationLogStatus{
		models.PaymentNotificationLogStatusReceived,
		models.PaymentNotificationLogStatusRejected,
	}, rec.statuses())
}

func TestHandleSingle_WrongTransactionID(t *testing.T) {
	single := &stubSingle{rec: &models.PaymentRecord{TransactionID: "tx-1"}}
	svc, pub, _ := newTestService(single, &stubMulti{})

	outcome, err := svc.HandleSingle(context.Background(), newReport("doc-1", "tx-forged"))
	require.NoError(t, err)
	require.Equal(t, OutcomeRejectedUnknown, outcome)
	require.Zero(t, single.checked)
	require.Empty(t, pub.events)
}

func TestHandleSingle_NoRecord(t *testing.T) {
	single := &stubSingle{}
	svc, pub, _ := newTestService(single, &stubMulti{})

	outcome, err := svc.HandleSingle(context.Background(), newReport("doc-1", "tx-1"))
	require.NoError(t, err)
	require.Equal(t, OutcomeRejectedUnknown, outcome)
	require.Empty(t, pub.events)
}

func TestHandleSingle_Accepted(t *testing.T) {
	single := &stubSingle{rec: &models.PaymentRecord{TransactionID: "tx-1"}, status: types.PaymentStatusSuccess}
	svc, pub, rec := newTestService(single, &stubMulti{})
	rep := newReport("doc-1", "tx-1")

	outcome, err := svc.HandleSingle(context.Background(), rep)
	require.NoError(t, err)
	require.Equal(t, OutcomeAccepted, outcome)
	require.Equal(t, 1, single.checked)
	require.Len(t, pub.events, 1)

	evt, ok := pub.events[0].(events.PaymentProcessed)
	require.True(t, ok)
	require.Equal(t, "doc-1", evt.ObjectID)
	require.Same(t, rep.Request, evt.Request)
	require.Empty(t, evt.TransactionID)
	require.False(t, evt.At.IsZero())
	require.Equal(t, []models.PaymentNotificationLogStatus{
		models.PaymentNotificationLogStatusReceived,
		models.PaymentNotificationLogStatusHandled,
	}, rec.statuses())
}

func TestHandleSingle_CheckFailure(t *testing.T) {
	single := &stubSingle{rec: &models.PaymentRecord{TransactionID: "tx-1"}, err: errors.New("connection reset")}
	svc, pub, rec := newTestService(single, &stubMulti{})

	_, err := svc.HandleSingle(context.Background(), newReport("doc-1", "tx-1"))
	require.Error(t, err)
	require.Empty(t, pub.events)
	require.Equal(t, models.PaymentNotificationLogStatusHandleFailed, rec.statuses()[1])
}

func TestHandleSingle_SubscriberErrorsDoNotFailReport(t *testing.T) {
	single := &stubSingle{rec: &models.PaymentRecord{TransactionID: "tx-1"}, status: types.PaymentStatusSuccess}
	svc, pub, _ := newTestService(single, &stubMulti{})
	pub.errs = []error{errors.New("subscriber down")}

	outcome, err := svc.HandleSingle(context.Background(), newReport("doc-1", "tx-1"))
	require.NoError(t, err)
	require.Equal(t, OutcomeAccepted, outcome)
}

func TestHandleMultiple_Accepted(t *testing.T) {
	multi := &stubMulti{
		recs:   map[string]*models.PaymentRecord{"tx-a": {TransactionID: "tx-a"}, "tx-b": {TransactionID: "tx-b"}},
		status: types.PaymentStatusCancelled,
	}
	svc, pub, _ := newTestService(&stubSingle{}, multi)
	rep := newReport("doc-1", "tx-b")

	outcome, err := svc.HandleMultiple(context.Background(), rep)
	require.NoError(t, err)
	require.Equal(t, OutcomeAccepted, outcome)
	require.Equal(t, []string{"tx-b"}, multi.checked)
	require.Len(t, pub.events, 1)

	evt := pub.events[0].(events.PaymentProcessed)
	require.Equal(t, "doc-1", evt.ObjectID)
	require.Equal(t, "tx-b", evt.TransactionID)
	require.Same(t, rep.Request, evt.Request)
}

func TestHandleMultiple_Rejected(t *testing.T) {
	multi := &stubMulti{recs: map[string]*models.PaymentRecord{"tx-a": {TransactionID: "tx-a"}}}
	svc, pub, _ := newTestService(&stubSingle{}, multi)

	outcome, err := svc.HandleMultiple(context.Background(), newReport("doc-1", "tx-forged"))
	require.NoError(t, err)
	require.Equal(t, OutcomeRejectedUnknown, outcome)

	outcome, err = svc.HandleMultiple(context.Background(), newReport("doc-1", ""))
	require.NoError(t, err)
	require.Equal(t, OutcomeRejectedNoID, outcome)

	require.Empty(t, multi.checked)
	require.Empty(t, pub.events)
}

func TestOutcome_String(t *testing.T) {
	require.Equal(t, "accepted", OutcomeAccepted.String())
	require.Equal(t, "rejected_no_id", OutcomeRejectedNoID.String())
	require.Equal(t, "rejected_unknown", OutcomeRejectedUnknown.String())
	require.True(t, OutcomeRejectedNoID.Rejected())
	require.False(t, OutcomeAccepted.Rejected())
}
