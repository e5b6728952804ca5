package signal

import (
	"github.com/shopspring/decimal"
	"github.com/thrasher-corp/eventbacktester/backtester/common"
	"github.com/thrasher-corp/eventbacktester/backtester/eventtypes/event"
)

// Signal is raised by a strategy to express intent on a symbol. Strength is a
// quantity hint for the portfolio, zero is treated as one
type Signal struct {
	event.Base
	Direction    common.Direction `json:"direction"`
	Strength     decimal.Decimal  `json:"strength"`
	StrategyName string           `json:"strategy"`
}
