package fill

import (
	"time"

	"github.com/gofrs/uuid"
	"github.com/shopspring/decimal"
	"github.com/thrasher-corp/eventbacktester/backtester/common"
	"github.com/thrasher-corp/eventbacktester/backtester/eventtypes/event"
)

// New returns a fill for the order identified by orderID
func New(symbol string, t time.Time, orderID uuid.UUID, side common.Side, quantity, price, commission decimal.Decimal, exchangeName string) Fill {
	return Fill{
		Base:       event.NewBase(t, symbol, ""),
		OrderID:    orderID,
		Side:       side,
		Quantity:   quantity,
		Price:      price,
		Commission: commission,
		Exchange:   exchangeName,
	}
}

// GetKind returns common.Fill
func (f Fill) GetKind() common.EventKind {
	return common.Fill
}

// GetOrderID returns the id of the order that was filled
func (f Fill) GetOrderID() uuid.UUID {
	return f.OrderID
}

// GetSide returns the side
func (f Fill) GetSide() common.Side {
	return f.Side
}

// GetQuantity returns the filled quantity
func (f Fill) GetQuantity() decimal.Decimal {
	return f.Quantity
}

// GetPrice returns the price per unit
func (f Fill) GetPrice() decimal.Decimal {
	return f.Price
}

// GetCommission returns the commission charged
func (f Fill) GetCommission() decimal.Decimal {
	return f.Commission
}

// GetExchange returns the name of the venue
func (f Fill) GetExchange() string {
	return f.Exchange
}

// GetValue returns price multiplied by quantity, excluding commission
func (f Fill) GetValue() decimal.Decimal {
	return f.Price.Mul(f.Quantity)
}
