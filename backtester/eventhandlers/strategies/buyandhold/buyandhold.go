package buyandhold

import (
	"github.com/thrasher-corp/eventbacktester/backtester/common"
	"github.com/thrasher-corp/eventbacktester/backtester/data"
	"github.com/thrasher-corp/eventbacktester/backtester/eventhandlers/eventholder"
	"github.com/thrasher-corp/eventbacktester/backtester/eventhandlers/strategies/base"
	"github.com/thrasher-corp/eventbacktester/backtester/eventtypes/kline"
)

const (
	// Name is the strategy name
	Name        = "buyandhold"
	description = `Goes long every symbol on its first bar and never exits. Useful as a benchmark and for checking the event pipeline end to end`
)

// Strategy is an implementation of the Handler interface
type Strategy struct {
	base.Strategy
}

// Name returns the name of the strategy
func (s *Strategy) Name() string {
	return Name
}

// Description provides a nice overview of the strategy
func (s *Strategy) Description() string {
	return description
}

// Setup binds the strategy to its data and queue
func (s *Strategy) Setup(d data.Streamer, q eventholder.Appender) error {
	return s.Strategy.Setup(Name, d, q)
}

// OnMarket raises a LONG signal the first time a symbol is seen
func (s *Strategy) OnMarket(k kline.Kline) error {
	if !s.IsSetup() {
		return base.ErrNotSetup
	}
	if s.Invested(k.Symbol) {
		return nil
	}
	return s.Emit(k, common.Long, "first bar")
}

// SetCustomSettings not required for buy and hold
func (s *Strategy) SetCustomSettings(customSettings map[string]any) error {
	if len(customSettings) > 0 {
		return base.ErrCustomSettingsUnsupported
	}
	return nil
}

// SetDefaults not required for buy and hold
func (s *Strategy) SetDefaults() {}
