package movingaverage

import (
	"fmt"

	"github.com/thrasher-corp/eventbacktester/backtester/common"
	"github.com/thrasher-corp/eventbacktester/backtester/data"
	"github.com/thrasher-corp/eventbacktester/backtester/eventhandlers/eventholder"
	"github.com/thrasher-corp/eventbacktester/backtester/eventhandlers/strategies/base"
	"github.com/thrasher-corp/eventbacktester/backtester/eventtypes/kline"
	"github.com/thrasher-corp/gct-ta/indicators"
)

const (
	// Name is the strategy name
	Name           = "movingaverage"
	shortWindowKey = "short-window"
	longWindowKey  = "long-window"
	description    = `Moving average crossover. Goes long when the short simple moving average is above the long one and exits when it falls back below`
)

// Strategy is an implementation of the Handler interface
type Strategy struct {
	base.Strategy
	shortWindow int
	longWindow  int
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

// OnMarket compares both averages once enough history has been released
func (s *Strategy) OnMarket(k kline.Kline) error {
	if !s.IsSetup() {
		return base.ErrNotSetup
	}
	closes := s.Streamer().StreamClose(k.Symbol)
	if len(closes) < s.longWindow {
		return nil
	}
	shortSMA := indicators.SMA(closes, s.shortWindow)
	longSMA := indicators.SMA(closes, s.longWindow)
	short, long := shortSMA[len(shortSMA)-1], longSMA[len(longSMA)-1]
	reason := fmt.Sprintf("short sma %.4f long sma %.4f", short, long)
	switch {
	case short > long && !s.Invested(k.Symbol):
		return s.Emit(k, common.Long, reason)
	case short < long && s.Position(k.Symbol) == common.Long:
		return s.Emit(k, common.Exit, reason)
	}
	return nil
}

// SetCustomSettings allows a user to modify the window lengths in their config
func (s *Strategy) SetCustomSettings(customSettings map[string]any) error {
	for k, v := range customSettings {
		switch k {
		case shortWindowKey:
			w, err := base.ToPositiveInt(v)
			if err != nil {
				return fmt.Errorf("%v: %w", shortWindowKey, err)
			}
			s.shortWindow = w
		case longWindowKey:
			w, err := base.ToPositiveInt(v)
			if err != nil {
				return fmt.Errorf("%v: %w", longWindowKey, err)
			}
			s.longWindow = w
		default:
			return fmt.Errorf("%w unrecognised custom setting key %v with value %v. Cannot apply", base.ErrInvalidCustomSettings, k, v)
		}
	}
	if s.shortWindow >= s.longWindow {
		return fmt.Errorf("%w %v %v must be less than %v %v",
			base.ErrInvalidCustomSettings,
			shortWindowKey,
			s.shortWindow,
			longWindowKey,
			s.longWindow)
	}
	return nil
}

// SetDefaults sets the custom settings to their default values
func (s *Strategy) SetDefaults() {
	s.shortWindow = 10
	s.longWindow = 30
}
