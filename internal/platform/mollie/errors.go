package mollie

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation marks responses that were accepted by the gateway but are
	// inconsistent with what was asked for.
	ErrValidation        = errors.New("mollie: response validation failed")
	ErrAmountMismatch    = fmt.Errorf("%w: confirmed amount does not match requested amount", ErrValidation)
	ErrCurrencyMismatch  = fmt.Errorf("%w: confirmed currency is not EUR", ErrValidation)
	ErrMalformedResponse = fmt.Errorf("%w: malformed response", ErrValidation)

	// ErrInvalidAmount is returned before anything is sent to the gateway.
	ErrInvalidAmount = errors.New("mollie: amount must be a positive number of cents")

	ErrUnexpectedStatus = errors.New("mollie: unexpected http status")
)

// GatewayError is an error item reported by Mollie inside a well-formed response.
type GatewayError struct {
	Code    string
	Message string
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("mollie: gateway error %s: %s", e.Code, e.Message)
}

// IsGatewayError reports whether err carries an error item from the gateway.
func IsGatewayError(err error) bool {
	var gwErr *GatewayError
	return errors.As(err, &gwErr)
}
