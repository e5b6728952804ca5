package exchange

import (
	"errors"

	"github.com/shopspring/decimal"
	"github.com/thrasher-corp/eventbacktester/backtester/data"
	"github.com/thrasher-corp/eventbacktester/backtester/eventhandlers/eventholder"
	"github.com/thrasher-corp/eventbacktester/backtester/eventtypes/order"
)

var (
	errCannotPrice         = errors.New("cannot price order without a released bar")
	errNonPositiveQuantity = errors.New("order quantity must be greater than zero")
	errInvalidLimitPrice   = errors.New("limit price must be greater than zero")
	errNegativeSetting     = errors.New("exchange setting cannot be negative")
	errNoExchangeName      = errors.New("exchange name unset")
)

// ExecutionHandler turns orders into fills
type ExecutionHandler interface {
	OnOrder(order.Order) error
}

// Settings holds the simulated exchange's commission schedule and slippage
type Settings struct {
	ExchangeName          string
	CommissionPerUnit     decimal.Decimal
	BulkQuantity          decimal.Decimal
	BulkCommissionPerUnit decimal.Decimal
	MinimumCommission     decimal.Decimal
	// MaximumCommissionRate caps commission as a fraction of the trade value,
	// zero leaves it uncapped
	MaximumCommissionRate decimal.Decimal
	SlippageBPS           decimal.Decimal
}

// Exchange fills orders against the latest released bar
type Exchange struct {
	settings Settings
	streamer data.Streamer
	appender eventholder.Appender
}
