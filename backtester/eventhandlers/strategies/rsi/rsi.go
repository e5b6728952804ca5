package rsi

import (
	"fmt"
	"math"

	"github.com/thrasher-corp/eventbacktester/backtester/common"
	"github.com/thrasher-corp/eventbacktester/backtester/data"
	"github.com/thrasher-corp/eventbacktester/backtester/eventhandlers/eventholder"
	"github.com/thrasher-corp/eventbacktester/backtester/eventhandlers/strategies/base"
	"github.com/thrasher-corp/eventbacktester/backtester/eventtypes/kline"
	"github.com/thrasher-corp/gct-ta/indicators"
)

const (
	// Name is the strategy name
	Name         = "rsi"
	rsiPeriodKey = "rsi-period"
	rsiLowKey    = "rsi-low"
	rsiHighKey   = "rsi-high"
	description  = `The relative strength index is a technical indicator used in the analysis of financial markets. It is intended to chart the current and historical strength or weakness of a stock or market based on the closing prices of a recent trading period`
)

// Strategy is an implementation of the Handler interface
type Strategy struct {
	base.Strategy
	rsiPeriod int
	rsiLow    float64
	rsiHigh   float64
}

// Name returns the name of the strategy
func (s *Strategy) Name() string {
	return Name
}

// Description provides a nice overview of the strategy
// be it definition of terms or to highlight its purpose
func (s *Strategy) Description() string {
	return description
}

// Setup binds the strategy to its data and queue
func (s *Strategy) Setup(d data.Streamer, q eventholder.Appender) error {
	return s.Strategy.Setup(Name, d, q)
}

// OnMarket goes long when rsi is at or below the low level and exits when it
// is at or above the high level
func (s *Strategy) OnMarket(k kline.Kline) error {
	if !s.IsSetup() {
		return base.ErrNotSetup
	}
	closes := s.Streamer().StreamClose(k.Symbol)
	if len(closes) <= s.rsiPeriod {
		return nil
	}
	rsi := indicators.RSI(closes, s.rsiPeriod)
	latest := rsi[len(rsi)-1]
	if math.IsNaN(latest) || math.IsInf(latest, 0) {
		return nil
	}
	reason := fmt.Sprintf("RSI at %.2f", latest)
	switch {
	case latest <= s.rsiLow && !s.Invested(k.Symbol):
		return s.Emit(k, common.Long, reason)
	case latest >= s.rsiHigh && s.Position(k.Symbol) == common.Long:
		return s.Emit(k, common.Exit, reason)
	}
	return nil
}

// SetCustomSettings allows a user to modify the RSI limits in their config
func (s *Strategy) SetCustomSettings(customSettings map[string]any) error {
	for k, v := range customSettings {
		switch k {
		case rsiHighKey:
			rsiHigh, err := base.ToFloat(v)
			if err != nil || rsiHigh <= 0 || rsiHigh > 100 {
				return fmt.Errorf("%w provided rsi-high value could not be parsed: %v", base.ErrInvalidCustomSettings, v)
			}
			s.rsiHigh = rsiHigh
		case rsiLowKey:
			rsiLow, err := base.ToFloat(v)
			if err != nil || rsiLow <= 0 || rsiLow > 100 {
				return fmt.Errorf("%w provided rsi-low value could not be parsed: %v", base.ErrInvalidCustomSettings, v)
			}
			s.rsiLow = rsiLow
		case rsiPeriodKey:
			rsiPeriod, err := base.ToPositiveInt(v)
			if err != nil {
				return fmt.Errorf("%w provided rsi-period value could not be parsed: %v", base.ErrInvalidCustomSettings, v)
			}
			s.rsiPeriod = rsiPeriod
		default:
			return fmt.Errorf("%w unrecognised custom setting key %v with value %v. Cannot apply", base.ErrInvalidCustomSettings, k, v)
		}
	}
	if s.rsiLow >= s.rsiHigh {
		return fmt.Errorf("%w rsi-low %v must be below rsi-high %v", base.ErrInvalidCustomSettings, s.rsiLow, s.rsiHigh)
	}
	return nil
}

// SetDefaults sets the custom settings to their default values
func (s *Strategy) SetDefaults() {
	s.rsiHigh = 70
	s.rsiLow = 30
	s.rsiPeriod = 14
}
