package orders

import (
	"errors"
	"fmt"
)

// ErrUnknownOrder covers lookups and transitions against order numbers
// that are not in the active working set.
var ErrUnknownOrder = errors.New("no such active order")

// ErrEmptyCart rejects confirming a cart with no lines.
var ErrEmptyCart = errors.New("cart has no lines")

// InvalidPaymentError rejects a confirmation whose payment details fail
// structural validation. No state changes when it is returned.
type InvalidPaymentError struct {
	Reason string
}

func (e *InvalidPaymentError) Error() string {
	return fmt.Sprintf("invalid payment: %s", e.Reason)
}
