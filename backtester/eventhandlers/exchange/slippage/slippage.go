package slippage

import (
	"github.com/shopspring/decimal"
	"github.com/thrasher-corp/eventbacktester/backtester/common"
)

var basisPoints = decimal.NewFromInt(10000)

// Apply moves a price against the trader by bps basis points, up for buys
// and down for sells. Zero or negative bps leaves the price untouched
func Apply(price decimal.Decimal, side common.Side, bps decimal.Decimal) decimal.Decimal {
	if !bps.IsPositive() {
		return price
	}
	adjustment := price.Mul(bps).Div(basisPoints)
	switch side {
	case common.Buy:
		return price.Add(adjustment)
	case common.Sell:
		return price.Sub(adjustment)
	}
	return price
}

// EnsurePriceWithinRange clamps a price to a bar's low and high. A zero
// bound is ignored
func EnsurePriceWithinRange(price, low, high decimal.Decimal) decimal.Decimal {
	if low.IsPositive() && price.LessThan(low) {
		return low
	}
	if high.IsPositive() && price.GreaterThan(high) {
		return high
	}
	return price
}
