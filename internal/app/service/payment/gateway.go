package payment

import (
	"context"
	"errors"
	"time"

	"github.com/fatflowers/mollie-ideal/internal/models"
	"github.com/fatflowers/mollie-ideal/internal/platform/mollie"
)

// ErrUnknownTransaction is returned when an object holds no payment with the
// given transaction id. Forged or stale reports end up here.
var ErrUnknownTransaction = errors.New("payment: unknown transaction")

// Gateway is the part of the Mollie client the payment services use.
type Gateway interface {
	ListBanks(ctx context.Context) ([]mollie.Bank, error)
	RequestPayment(ctx context.Context, req *mollie.PaymentRequest) (transactionID string, redirectURL string, err error)
	CheckPayment(ctx context.Context, partnerID, transactionID string) (*mollie.PaymentStatus, error)
}

func toCheckResult(st *mollie.PaymentStatus) models.CheckResult {
	res := models.CheckResult{
		Status:   st.Status,
		Currency: st.Currency,
		Paid:     st.Paid,
	}
	if st.Consumer != nil {
		res.Consumer = &models.Consumer{
			Name:    st.Consumer.Name,
			Account: st.Consumer.Account,
			City:    st.Consumer.City,
		}
	}
	return res
}

func newRecord(req *mollie.PaymentRequest, transactionID string, now time.Time) *models.PaymentRecord {
	return &models.PaymentRecord{
		TransactionID: transactionID,
		PartnerID:     req.PartnerID,
		ProfileKey:    req.ProfileKey,
		Amount:        req.Amount,
		Message:       req.Message,
		LastUpdate:    now,
	}
}
