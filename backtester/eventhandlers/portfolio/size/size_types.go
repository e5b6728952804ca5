package size

import (
	"errors"

	"github.com/shopspring/decimal"
)

var (
	errNegativeStrength = errors.New("signal strength cannot be negative")
	errNoOrderQuantity  = errors.New("order quantity must be greater than zero")
)

// Size turns a signal into an order quantity using a fixed base quantity
type Size struct {
	OrderQuantity decimal.Decimal
}
