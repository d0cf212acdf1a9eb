package types

import (
	"fmt"

	"github.com/osmosis-labs/osmosis/osmomath"
)

// InvalidAmountError represents an error when a ledger operation is given a
// nil or negative amount.
type InvalidAmountError struct {
	Amount osmomath.Int
}

// Error implements the error interface.
func (e InvalidAmountError) Error() string {
	return fmt.Sprintf("amount %s is invalid", e.Amount)
}

// InsufficientBalanceError represents an error when an account does not hold
// enough of a token to cover a debit.
type InsufficientBalanceError struct {
	Token     string
	Account   string
	Requested osmomath.Int
	Available osmomath.Int
}

// Error implements the error interface.
func (e InsufficientBalanceError) Error() string {
	return fmt.Sprintf("account %s holds %s of %s, requested %s", e.Account, e.Available, e.Token, e.Requested)
}
