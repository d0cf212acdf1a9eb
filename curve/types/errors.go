package types

import (
	"fmt"

	"github.com/osmosis-labs/osmosis/osmomath"
)

// AlreadyExecutedError represents an error when the curve is asked to execute
// a second sale.
type AlreadyExecutedError struct{}

// Error implements the error interface.
func (e AlreadyExecutedError) Error() string {
	return "curve sale has already been executed"
}

// InvalidSellAmountError represents an error when the sell amount is nil or
// negative.
type InvalidSellAmountError struct {
	Amount osmomath.Int
}

// Error implements the error interface.
func (e InvalidSellAmountError) Error() string {
	return fmt.Sprintf("sell amount %s is invalid", e.Amount)
}
