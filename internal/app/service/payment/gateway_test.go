package payment

import (
	"context"
	"sync/atomic"

	"github.com/stretchr/testify/mock"

	"github.com/fatflowers/mollie-ideal/internal/app/service/annotation"
	"github.com/fatflowers/mollie-ideal/internal/models"
	"github.com/fatflowers/mollie-ideal/internal/platform/mollie"
	"github.com/fatflowers/mollie-ideal/pkg/types"
)

type mockGateway struct {
	mock.Mock
}

func (m *mockGateway) ListBanks(ctx context.Context) ([]mollie.Bank, error) {
	args := m.Called(ctx)
	banks, _ := args.Get(0).([]mollie.Bank)
	return banks, args.Error(1)
}

func (m *mockGateway) RequestPayment(ctx context.Context, req *mollie.PaymentRequest) (string, string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.String(1), args.Error(2)
}

func (m *mockGateway) CheckPayment(ctx context.Context, partnerID, transactionID string) (*mollie.PaymentStatus, error) {
	args := m.Called(ctx, partnerID, transactionID)
	st, _ := args.Get(0).(*mollie.PaymentStatus)
	return st, args.Error(1)
}

func paidStatus(transactionID string) *mollie.PaymentStatus {
	return &mollie.PaymentStatus{
		TransactionID: transactionID,
		Amount:        1250,
		Currency:      "EUR",
		Paid:          true,
		Status:        types.PaymentStatusSuccess,
		Consumer:      &mollie.Consumer{Name: "Hr J Janssen", Account: "P001234567", City: "AMSTERDAM"},
	}
}

func checkedBefore(transactionID string) *mollie.PaymentStatus {
	return &mollie.PaymentStatus{
		TransactionID: transactionID,
		Amount:        1250,
		Currency:      "EUR",
		Status:        types.PaymentStatusCheckedBefore,
	}
}

func paymentRequest() *mollie.PaymentRequest {
	return &mollie.PaymentRequest{
		PartnerID:  "1234567",
		BankID:     "0721",
		Amount:     1250,
		Message:    "Order 42",
		ReportURL:  "https://shop.example.com/ideal/report/doc-1",
		ReturnURL:  "https://shop.example.com/thanks",
		ProfileKey: "abcdef12",
	}
}

// countingStore counts the writes that reach the wrapped store.
type countingStore struct {
	annotation.Store
	updates atomic.Int32
}

func (c *countingStore) Update(ctx context.Context, objectID, namespace string, fn func(a *models.Annotation) error) error {
	c.updates.Add(1)
	return c.Store.Update(ctx, objectID, namespace, fn)
}
