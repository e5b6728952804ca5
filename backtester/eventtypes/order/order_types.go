package order

import (
	"github.com/shopspring/decimal"
	"github.com/thrasher-corp/eventbacktester/backtester/common"
	"github.com/thrasher-corp/eventbacktester/backtester/eventtypes/event"
)

// Order is a request from the portfolio for the execution handler to trade.
// LimitPrice is only meaningful when Type is common.LimitOrder
type Order struct {
	event.Base
	Side       common.Side      `json:"side"`
	Type       common.OrderType `json:"type"`
	Quantity   decimal.Decimal  `json:"quantity"`
	LimitPrice decimal.Decimal  `json:"limit-price"`
}
