package base

import (
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
	"github.com/thrasher-corp/eventbacktester/backtester/common"
	"github.com/thrasher-corp/eventbacktester/backtester/data"
	"github.com/thrasher-corp/eventbacktester/backtester/eventhandlers/eventholder"
	"github.com/thrasher-corp/eventbacktester/backtester/eventtypes/kline"
	"github.com/thrasher-corp/eventbacktester/backtester/eventtypes/signal"
	"github.com/thrasher-corp/eventbacktester/log"
)

// Setup binds the strategy to the data it reads and the queue it writes to
func (s *Strategy) Setup(name string, streamer data.Streamer, appender eventholder.Appender) error {
	if streamer == nil || appender == nil {
		return common.ErrNilArguments
	}
	s.name = name
	s.streamer = streamer
	s.appender = appender
	s.positions = make(map[string]common.Direction)
	return nil
}

// Streamer returns the data view set in Setup
func (s *Strategy) Streamer() data.Streamer {
	return s.streamer
}

// IsSetup returns whether Setup has succeeded
func (s *Strategy) IsSetup() bool {
	return s.streamer != nil && s.appender != nil
}

// Position returns the direction the strategy last entered for the symbol,
// empty when flat
func (s *Strategy) Position(symbol string) common.Direction {
	return s.positions[symbol]
}

// Invested returns whether the strategy holds a position in the symbol
func (s *Strategy) Invested(symbol string) bool {
	return s.positions[symbol] != ""
}

// Emit pushes a signal for the bar onto the queue and records the resulting position
func (s *Strategy) Emit(k kline.Kline, direction common.Direction, reason string) error {
	if !s.IsSetup() {
		return ErrNotSetup
	}
	switch direction {
	case common.Long, common.Short:
		s.positions[k.Symbol] = direction
	case common.Exit:
		delete(s.positions, k.Symbol)
	default:
		return fmt.Errorf("%w '%v'", common.ErrInvalidDirection, direction)
	}
	s.appender.AppendEvent(signal.New(k.Symbol, k.Time, direction, decimal.Zero, s.name, reason))
	log.Debugf(common.SubLoggers[common.Strategy], "%v %v %v at %v: %v", s.name, k.Symbol, direction, k.Time, reason)
	return nil
}

// ToFloat converts a custom setting value into a float64. JSON numbers arrive
// as float64, YAML numbers as int
func ToFloat(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case string:
		f, err := strconv.ParseFloat(n, 64)
		if err != nil {
			return 0, fmt.Errorf("%w %v", ErrInvalidCustomSettings, err)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("%w unsupported value type %T", ErrInvalidCustomSettings, v)
	}
}

// ToPositiveInt converts a custom setting value into an int greater than zero
func ToPositiveInt(v any) (int, error) {
	f, err := ToFloat(v)
	if err != nil {
		return 0, err
	}
	if f <= 0 || f != float64(int(f)) {
		return 0, fmt.Errorf("%w %v must be a positive whole number", ErrInvalidCustomSettings, v)
	}
	return int(f), nil
}
