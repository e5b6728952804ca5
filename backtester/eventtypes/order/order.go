package order

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/thrasher-corp/eventbacktester/backtester/common"
	"github.com/thrasher-corp/eventbacktester/backtester/eventtypes/event"
)

// NewMarket returns a market order
func NewMarket(symbol string, t time.Time, side common.Side, quantity decimal.Decimal, reason string) Order {
	return Order{
		Base:     event.NewBase(t, symbol, reason),
		Side:     side,
		Type:     common.MarketOrder,
		Quantity: quantity,
	}
}

// NewLimit returns a limit order
func NewLimit(symbol string, t time.Time, side common.Side, quantity, limit decimal.Decimal, reason string) Order {
	o := NewMarket(symbol, t, side, quantity, reason)
	o.Type = common.LimitOrder
	o.LimitPrice = limit
	return o
}

// GetKind returns common.Order
func (o Order) GetKind() common.EventKind {
	return common.Order
}

// GetSide returns the side of the order
func (o Order) GetSide() common.Side {
	return o.Side
}

// GetType returns whether the order is market or limit
func (o Order) GetType() common.OrderType {
	return o.Type
}

// GetQuantity returns the amount
func (o Order) GetQuantity() decimal.Decimal {
	return o.Quantity
}

// GetLimitPrice returns the limit price
func (o Order) GetLimitPrice() decimal.Decimal {
	return o.LimitPrice
}
