package common

import (
	"errors"
	"fmt"
	"strings"

	"github.com/thrasher-corp/eventbacktester/log"
)

// String implements the stringer interface
func (k EventKind) String() string {
	switch k {
	case MarketUpdate:
		return "MARKET_UPDATE"
	case Signal:
		return "SIGNAL"
	case Order:
		return "ORDER"
	case Fill:
		return "FILL"
	default:
		return fmt.Sprintf("UNKNOWN(%d)", uint8(k))
	}
}

// ParseDirection converts a case-insensitive direction string into a Direction
func ParseDirection(s string) (Direction, error) {
	switch d := Direction(strings.ToUpper(strings.TrimSpace(s))); d {
	case Long, Short, Exit:
		return d, nil
	default:
		return "", fmt.Errorf("%w '%v'", ErrInvalidDirection, s)
	}
}

// ParseOrderType converts a config order type into an OrderType, empty means market
func ParseOrderType(s string) (OrderType, error) {
	switch o := OrderType(strings.ToUpper(strings.TrimSpace(s))); o {
	case "", MarketOrder:
		return MarketOrder, nil
	case LimitOrder:
		return LimitOrder, nil
	default:
		return "", fmt.Errorf("%w '%v'", ErrInvalidOrderType, s)
	}
}

// IsValid returns whether the side is BUY or SELL
func (s Side) IsValid() bool {
	return s == Buy || s == Sell
}

// Opposite returns the side which would unwind a position opened on s
func (s Side) Opposite() Side {
	if s == Buy {
		return Sell
	}
	return Buy
}

// RegisterBacktesterSubLoggers sets up all custom Backtester sub-loggers. Calling
// it twice returns log.ErrSubLoggerAlreadyRegistered but leaves SubLoggers usable.
func RegisterBacktesterSubLoggers() error {
	var dupeErr error
	for _, name := range subLoggerNames {
		sl, err := log.NewSubLogger(name)
		if err != nil {
			if !errors.Is(err, log.ErrSubLoggerAlreadyRegistered) {
				return err
			}
			dupeErr = err
			sl, err = log.GetSubLogger(name)
			if err != nil {
				return err
			}
		}
		SubLoggers[name] = sl
	}
	return dupeErr
}
