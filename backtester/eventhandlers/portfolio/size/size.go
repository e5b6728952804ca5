package size

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/thrasher-corp/eventbacktester/backtester/common"
)

// SizeOrder decides the side and quantity of the order a signal should
// produce given the current signed position. A zero quantity means no order.
// Entries only happen while flat and exits close the whole position
func (s *Size) SizeOrder(direction common.Direction, position, strength decimal.Decimal) (common.Side, decimal.Decimal, error) {
	if !s.OrderQuantity.IsPositive() {
		return "", decimal.Zero, errNoOrderQuantity
	}
	if strength.IsNegative() {
		return "", decimal.Zero, fmt.Errorf("%w, received %v", errNegativeStrength, strength)
	}
	switch direction {
	case common.Long:
		if position.IsZero() {
			return common.Buy, s.OrderQuantity.Mul(strength), nil
		}
	case common.Short:
		if position.IsZero() {
			return common.Sell, s.OrderQuantity.Mul(strength), nil
		}
	case common.Exit:
		if position.IsPositive() {
			return common.Sell, position, nil
		}
		if position.IsNegative() {
			return common.Buy, position.Abs(), nil
		}
	default:
		return "", decimal.Zero, fmt.Errorf("%w '%v'", common.ErrInvalidDirection, direction)
	}
	return "", decimal.Zero, nil
}
