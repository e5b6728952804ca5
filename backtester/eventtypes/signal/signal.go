package signal

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/thrasher-corp/eventbacktester/backtester/common"
	"github.com/thrasher-corp/eventbacktester/backtester/eventtypes/event"
)

// New returns a signal event
func New(symbol string, t time.Time, direction common.Direction, strength decimal.Decimal, strategyName, reason string) Signal {
	return Signal{
		Base:         event.NewBase(t, symbol, reason),
		Direction:    direction,
		Strength:     strength,
		StrategyName: strategyName,
	}
}

// GetKind returns common.Signal
func (s Signal) GetKind() common.EventKind {
	return common.Signal
}

// GetDirection returns the direction
func (s Signal) GetDirection() common.Direction {
	return s.Direction
}

// GetStrength returns the quantity multiplier, defaulting to one
func (s Signal) GetStrength() decimal.Decimal {
	if s.Strength.IsZero() {
		return decimal.NewFromInt(1)
	}
	return s.Strength
}

// GetStrategyName returns the name of the strategy that raised the signal
func (s Signal) GetStrategyName() string {
	return s.StrategyName
}
