package fill

import (
	"github.com/gofrs/uuid"
	"github.com/shopspring/decimal"
	"github.com/thrasher-corp/eventbacktester/backtester/common"
	"github.com/thrasher-corp/eventbacktester/backtester/eventtypes/event"
)

// Fill details an executed order
type Fill struct {
	event.Base
	OrderID    uuid.UUID       `json:"order-id"`
	Side       common.Side     `json:"side"`
	Quantity   decimal.Decimal `json:"quantity"`
	Price      decimal.Decimal `json:"price"`
	Commission decimal.Decimal `json:"commission"`
	Exchange   string          `json:"exchange"`
}
