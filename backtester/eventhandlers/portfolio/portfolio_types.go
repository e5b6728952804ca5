package portfolio

import (
	"errors"

	"github.com/shopspring/decimal"
	"github.com/thrasher-corp/eventbacktester/backtester/common"
	"github.com/thrasher-corp/eventbacktester/backtester/data"
	"github.com/thrasher-corp/eventbacktester/backtester/eventhandlers/eventholder"
	"github.com/thrasher-corp/eventbacktester/backtester/eventhandlers/portfolio/holdings"
	"github.com/thrasher-corp/eventbacktester/backtester/eventhandlers/statistics"
	"github.com/thrasher-corp/eventbacktester/backtester/eventtypes/fill"
	"github.com/thrasher-corp/eventbacktester/backtester/eventtypes/kline"
	"github.com/thrasher-corp/eventbacktester/backtester/eventtypes/signal"
)

var (
	errUnknownSymbol       = errors.New("event for symbol outside the portfolio")
	errSizeManagerUnset    = errors.New("size manager unset")
	errNoPriceForLimit     = errors.New("cannot price limit order without a released bar")
	errNegativeLimitOffset = errors.New("limit offset cannot be negative")
)

var basisPoints = decimal.NewFromInt(10000)

// Handler is what the dispatcher needs from a portfolio
type Handler interface {
	OnMarket(kline.Kline) error
	OnSignal(signal.Signal) error
	OnFill(fill.Fill) error
	FinalReport() (*statistics.Summary, error)
}

// SizeHandler decides how large an order a signal becomes
type SizeHandler interface {
	SizeOrder(direction common.Direction, position, strength decimal.Decimal) (common.Side, decimal.Decimal, error)
}

// Settings holds the portfolio's starting capital, order style and reporting inputs
type Settings struct {
	InitialCapital decimal.Decimal
	OrderType      common.OrderType
	LimitOffsetBPS decimal.Decimal
	RiskFreeRate   decimal.Decimal
	PeriodsPerYear int
}

// Portfolio is a naive cash and position ledger. It sizes every signal with
// its size manager and marks its holdings to each market update
type Portfolio struct {
	settings    Settings
	streamer    data.Streamer
	appender    eventholder.Appender
	sizeManager SizeHandler
	symbols     map[string]struct{}
	cash        decimal.Decimal
	commission  decimal.Decimal
	holdings    map[string]*holdings.Holding
	snapshots   holdings.Manager
}
