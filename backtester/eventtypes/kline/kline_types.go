package kline

import (
	"github.com/shopspring/decimal"
	"github.com/thrasher-corp/eventbacktester/backtester/eventtypes/event"
)

// Kline is a single OHLCV bar and the MarketUpdate event of the backtester
type Kline struct {
	event.Base
	Open   decimal.Decimal `json:"open"`
	High   decimal.Decimal `json:"high"`
	Low    decimal.Decimal `json:"low"`
	Close  decimal.Decimal `json:"close"`
	Volume decimal.Decimal `json:"volume"`
}
