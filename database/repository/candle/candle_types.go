package candle

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	errInvalidInput = errors.New("symbol, start & end cannot be empty")
	errNoCandleData = errors.New("no candle data provided")
	// ErrNoCandleDataFound returns when no candle data is found
	ErrNoCandleDataFound = errors.New("no candle data found")
)

// Candle is one stored OHLCV bar
type Candle struct {
	Symbol    string
	Timestamp time.Time
	Open      decimal.Decimal
	High      decimal.Decimal
	Low       decimal.Decimal
	Close     decimal.Decimal
	Volume    decimal.Decimal
}
