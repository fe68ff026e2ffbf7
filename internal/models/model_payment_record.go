package models

import (
	"time"

	"github.com/fatflowers/mollie-ideal/pkg/types"
)

// Consumer is the payer as reported by the bank. Only present for paid records.
type Consumer struct {
	Name    string `json:"name"`
	Account string `json:"account"`
	City    string `json:"city"`
}

// PaymentRecord is one iDeal payment attempt.
type PaymentRecord struct {
	// TransactionID is assigned by Mollie when the payment is requested and never changes.
	TransactionID string `json:"transaction_id"`
	// PartnerID is needed again to check the status.
	PartnerID  string `json:"partner_id"`
	ProfileKey string `json:"profile_key,omitempty"`
	// Amount in cents as confirmed by the gateway.
	Amount  int64  `json:"amount"`
	Message string `json:"message,omitempty"`

	// Currency, Status, Paid and Consumer are set from the first authoritative
	// check only.
	Currency string              `json:"currency,omitempty"`
	Status   types.PaymentStatus `json:"status,omitempty"`
	Paid     bool                `json:"paid"`
	Consumer *Consumer           `json:"consumer,omitempty"`

	// LastStatus is the status of the most recent check, possibly CheckedBefore.
	LastStatus types.PaymentStatus `json:"last_status,omitempty"`
	LastUpdate time.Time           `json:"last_update"`
}

// CheckResult is the part of a status check a record keeps.
type CheckResult struct {
	Status   types.PaymentStatus
	Currency string
	Paid     bool
	Consumer *Consumer
}

// ApplyCheck stores the outcome of a status check. A CheckedBefore result
// only touches LastStatus and LastUpdate.
func (r *PaymentRecord) ApplyCheck(res CheckResult, at time.Time) {
	if res.Status.IsAuthoritative() {
		r.Currency = res.Currency
		r.Paid = res.Paid
		r.Consumer = res.Consumer
		r.Status = res.Status
	}
	r.LastStatus = res.Status
	r.LastUpdate = at
}
