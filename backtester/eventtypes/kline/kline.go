package kline

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/thrasher-corp/eventbacktester/backtester/common"
	"github.com/thrasher-corp/eventbacktester/backtester/eventtypes/event"
)

// New returns a market update for a single bar
func New(symbol string, t time.Time, open, high, low, closePrice, volume decimal.Decimal) Kline {
	return Kline{
		Base:   event.NewBase(t, symbol, ""),
		Open:   open,
		High:   high,
		Low:    low,
		Close:  closePrice,
		Volume: volume,
	}
}

// GetKind returns common.MarketUpdate
func (k Kline) GetKind() common.EventKind {
	return common.MarketUpdate
}

// GetClosePrice returns the closing price of a kline
func (k Kline) GetClosePrice() decimal.Decimal {
	return k.Close
}

// GetHighPrice returns the high price of a kline
func (k Kline) GetHighPrice() decimal.Decimal {
	return k.High
}

// GetLowPrice returns the low price of a kline
func (k Kline) GetLowPrice() decimal.Decimal {
	return k.Low
}

// GetOpenPrice returns the open price of a kline
func (k Kline) GetOpenPrice() decimal.Decimal {
	return k.Open
}

// GetVolume returns the volume of a kline
func (k Kline) GetVolume() decimal.Decimal {
	return k.Volume
}
