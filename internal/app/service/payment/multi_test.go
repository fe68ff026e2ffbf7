package payment

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/fatflowers/mollie-ideal/internal/app/service/annotation"
	"github.com/fatflowers/mollie-ideal/internal/platform/mollie"
	"github.com/fatflowers/mollie-ideal/pkg/types"
)

func newMulti(gw Gateway) *MultiPaymentService {
	s := NewMultiPaymentService(gw, annotation.NewMemoryStore(), zap.NewNop().Sugar())
	s.now = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }
	return s
}

func TestMulti_PaymentsAreIsolated(t *testing.T) {
	gw := &mockGateway{}
	gw.On("RequestPayment", mock.Anything, mock.Anything).Return("tx-a", "https://bank.example/a", nil).Once()
	gw.On("RequestPayment", mock.Anything, mock.Anything).Return("tx-b", "https://bank.example/b", nil).Once()
	gw.On("CheckPayment", mock.Anything, "1234567", "tx-a").Return(paidStatus("tx-a"), nil)
	gw.On("CheckPayment", mock.Anything, "1234567", "tx-b").Return(&mollie.PaymentStatus{
		TransactionID: "tx-b", Amount: 1250, Currency: "EUR", Status: types.PaymentStatusCancelled,
	}, nil)
	s := newMulti(gw)
	ctx := context.Background()

	txA, urlA, err := s.GetPaymentURL(ctx, "doc-1", paymentRequest())
	require.NoError(t, err)
	require.Equal(t, "tx-a", txA)
	require.Equal(t, "https://bank.example/a", urlA)
	txB, _, err := s.GetPaymentURL(ctx, "doc-1", paymentRequest())
	require.NoError(t, err)
	require.Equal(t, "tx-b", txB)

	st, err := s.GetPaymentStatus(ctx, "doc-1", "tx-a")
	require.NoError(t, err)
	require.Equal(t, types.PaymentStatusSuccess, st)
	st, err = s.GetPaymentStatus(ctx, "doc-1", "tx-b")
	require.NoError(t, err)
	require.Equal(t, types.PaymentStatusCancelled, st)

	a, err := s.GetTransaction(ctx, "doc-1", "tx-a")
	require.NoError(t, err)
	require.Equal(t, types.PaymentStatusSuccess, a.Status)
	require.True(t, a.Paid)
	require.NotNil(t, a.Consumer)

	b, err := s.GetTransaction(ctx, "doc-1", "tx-b")
	require.NoError(t, err)
	require.Equal(t, types.PaymentStatusCancelled, b.Status)
	require.False(t, b.Paid)
	require.Nil(t, b.Consumer)
}

func TestMulti_RequestDoesNotTouchExistingPayments(t *testing.T) {
	gw := &mockGateway{}
	gw.On("RequestPayment", mock.Anything, mock.Anything).Return("tx-a", "https://bank.example/a", nil).Once()
	gw.On("CheckPayment", mock.Anything, "1234567", "tx-a").Return(paidStatus("tx-a"), nil)
	gw.On("RequestPayment", mock.Anything, mock.Anything).Return("tx-b", "https://bank.example/b", nil).Once()
	s := newMulti(gw)
	ctx := context.Background()

	_, _, err := s.GetPaymentURL(ctx, "doc-1", paymentRequest())
	require.NoError(t, err)
	_, err = s.GetPaymentStatus(ctx, "doc-1", "tx-a")
	require.NoError(t, err)
	before, err := s.GetTransaction(ctx, "doc-1", "tx-a")
	require.NoError(t, err)

	_, _, err = s.GetPaymentURL(ctx, "doc-1", paymentRequest())
	require.NoError(t, err)
	after, err := s.GetTransaction(ctx, "doc-1", "tx-a")
	require.NoError(t, err)
	require.Equal(t, before, after)

	list, err := s.ListTransactions(ctx, "doc-1")
	require.NoError(t, err)
	require.Len(t, list, 2)
}

func TestMulti_CheckedBeforeOnlyUpdatesLastStatus(t *testing.T) {
	gw := &mockGateway{}
	gw.On("RequestPayment", mock.Anything, mock.Anything).Return("tx-a", "https://bank.example/a", nil)
	gw.On("CheckPayment", mock.Anything, "1234567", "tx-a").Return(paidStatus("tx-a"), nil).Once()
	gw.On("CheckPayment", mock.Anything, "1234567", "tx-a").Return(checkedBefore("tx-a"), nil).Once()
	s := newMulti(gw)
	ctx := context.Background()

	_, _, err := s.GetPaymentURL(ctx, "doc-1", paymentRequest())
	require.NoError(t, err)
	_, err = s.GetPaymentStatus(ctx, "doc-1", "tx-a")
	require.NoError(t, err)
	st, err := s.GetPaymentStatus(ctx, "doc-1", "tx-a")
	require.NoError(t, err)
	require.Equal(t, types.PaymentStatusCheckedBefore, st)

	rec, err := s.GetTransaction(ctx, "doc-1", "tx-a")
	require.NoError(t, err)
	require.Equal(t, types.PaymentStatusSuccess, rec.Status)
	require.Equal(t, types.PaymentStatusCheckedBefore, rec.LastStatus)
	require.True(t, rec.Paid)
	gw.AssertExpectations(t)
}

func TestMulti_UnknownTransaction(t *testing.T) {
	gw := &mockGateway{}
	gw.On("RequestPayment", mock.Anything, mock.Anything).Return("tx-a", "https://bank.example/a", nil)
	s := newMulti(gw)
	ctx := context.Background()

	_, _, err := s.GetPaymentURL(ctx, "doc-1", paymentRequest())
	require.NoError(t, err)

	_, err = s.GetTransaction(ctx, "doc-1", "tx-forged")
	require.ErrorIs(t, err, ErrUnknownTransaction)
	_, err = s.GetPaymentStatus(ctx, "doc-1", "tx-forged")
	require.ErrorIs(t, err, ErrUnknownTransaction)
	_, err = s.GetTransaction(ctx, "doc-2", "tx-a")
	require.ErrorIs(t, err, ErrUnknownTransaction)
	gw.AssertNotCalled(t, "CheckPayment", mock.Anything, mock.Anything, mock.Anything)
}

func TestMulti_FailedRequestStoresNothing(t *testing.T) {
	gw := &mockGateway{}
	gw.On("RequestPayment", mock.Anything, mock.Anything).Return("", "", mollie.ErrCurrencyMismatch)
	s := newMulti(gw)
	ctx := context.Background()

	_, _, err := s.GetPaymentURL(ctx, "doc-1", paymentRequest())
	require.ErrorIs(t, err, mollie.ErrValidation)

	list, err := s.ListTransactions(ctx, "doc-1")
	require.NoError(t, err)
	require.Empty(t, list)
}

func TestMulti_ListTransactionsOrdered(t *testing.T) {
	gw := &mockGateway{}
	gw.On("RequestPayment", mock.Anything, mock.Anything).Return("tx-b", "u", nil).Once()
	gw.On("RequestPayment", mock.Anything, mock.Anything).Return("tx-a", "u", nil).Once()
	s := newMulti(gw)
	ctx := context.Background()

	t0 := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return t0 }
	_, _, err := s.GetPaymentURL(ctx, "doc-1", paymentRequest())
	require.NoError(t, err)
	s.now = func() time.Time { return t0.Add(time.Hour) }
	_, _, err = s.GetPaymentURL(ctx, "doc-1", paymentRequest())
	require.NoError(t, err)

	list, err := s.ListTransactions(ctx, "doc-1")
	require.NoError(t, err)
	require.Equal(t, "tx-b", list[0].TransactionID)
	require.Equal(t, "tx-a", list[1].TransactionID)
}

// rendezvousGateway holds every RequestPayment call until n calls are in
// flight, then hands out distinct transaction ids.
type rendezvousGateway struct {
	mockGateway
	arrived sync.WaitGroup
	seq     atomic.Int32
}

func newRendezvousGateway(n int) *rendezvousGateway {
	g := &rendezvousGateway{}
	g.arrived.Add(n)
	return g
}

func (g *rendezvousGateway) RequestPayment(context.Context, *mollie.PaymentRequest) (string, string, error) {
	g.arrived.Done()
	g.arrived.Wait()
	n := g.seq.Add(1)
	return fmt.Sprintf("tx-%d", n), fmt.Sprintf("https://bank.example/%d", n), nil
}

func TestMulti_ConcurrentRequestsKeepEveryPayment(t *testing.T) {
	const parallel = 2
	gw := newRendezvousGateway(parallel)
	s := newMulti(gw)
	ctx := context.Background()

	var wg sync.WaitGroup
	errs := make(chan error, parallel)
	for i := 0; i < parallel; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _, err := s.GetPaymentURL(ctx, "doc-1", paymentRequest())
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	list, err := s.ListTransactions(ctx, "doc-1")
	require.NoError(t, err)
	require.Len(t, list, parallel)
	for _, id := range []string{"tx-1", "tx-2"} {
		_, err := s.GetTransaction(ctx, "doc-1", id)
		require.NoError(t, err)
	}
}

func TestMulti_CheckMergesIntoPaymentsAddedMeanwhile(t *testing.T) {
	gw := &mockGateway{}
	s := newMulti(gw)
	ctx := context.Background()
	gw.On("RequestPayment", mock.Anything, mock.Anything).Return("tx-a", "https://bank.example/a", nil).Once()
	gw.On("RequestPayment", mock.Anything, mock.Anything).Return("tx-b", "https://bank.example/b", nil).Once()
	gw.On("CheckPayment", mock.Anything, "1234567", "tx-a").Return(paidStatus("tx-a"), nil).Run(func(mock.Arguments) {
		_, _, err := s.GetPaymentURL(ctx, "doc-1", paymentRequest())
		require.NoError(t, err)
	})

	_, _, err := s.GetPaymentURL(ctx, "doc-1", paymentRequest())
	require.NoError(t, err)
	st, err := s.GetPaymentStatus(ctx, "doc-1", "tx-a")
	require.NoError(t, err)
	require.Equal(t, types.PaymentStatusSuccess, st)

	list, err := s.ListTransactions(ctx, "doc-1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	a, err := s.GetTransaction(ctx, "doc-1", "tx-a")
	require.NoError(t, err)
	require.True(t, a.Paid)
}

func TestMulti_ReadsNeverWrite(t *testing.T) {
	gw := &mockGateway{}
	store := &countingStore{Store: annotation.NewMemoryStore()}
	s := NewMultiPaymentService(gw, store, zap.NewNop().Sugar())
	ctx := context.Background()

	_, err := s.GetTransaction(ctx, "doc-1", "tx-forged")
	require.ErrorIs(t, err, ErrUnknownTransaction)
	_, err = s.GetPaymentStatus(ctx, "doc-1", "tx-forged")
	require.ErrorIs(t, err, ErrUnknownTransaction)
	list, err := s.ListTransactions(ctx, "doc-1")
	require.NoError(t, err)
	require.Empty(t, list)
	require.Zero(t, store.updates.Load())
}
