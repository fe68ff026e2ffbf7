package types

type PaymentProvider string

const (
	PaymentProviderMollie PaymentProvider = "mollie"
)

// PaymentStatus is the order status reported by Mollie for an iDeal transaction.
type PaymentStatus string

const (
	PaymentStatusOpen      PaymentStatus = "Open"
	PaymentStatusSuccess   PaymentStatus = "Success"
	PaymentStatusCancelled PaymentStatus = "Cancelled"
	PaymentStatusFailure   PaymentStatus = "Failure"
	PaymentStatusExpired   PaymentStatus = "Expired"
	// PaymentStatusCheckedBefore is returned by every check after the first one.
	// It carries no new facts about the payment.
	PaymentStatusCheckedBefore PaymentStatus = "CheckedBefore"
)

// IsAuthoritative reports whether the status carries facts that may be stored.
func (s PaymentStatus) IsAuthoritative() bool {
	return s != "" && s != PaymentStatusCheckedBefore
}

// CurrencyEUR is the only currency iDeal settles in.
const CurrencyEUR = "EUR"
