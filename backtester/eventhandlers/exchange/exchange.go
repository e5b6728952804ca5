package exchange

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/thrasher-corp/eventbacktester/backtester/common"
	"github.com/thrasher-corp/eventbacktester/backtester/data"
	"github.com/thrasher-corp/eventbacktester/backtester/eventhandlers/eventholder"
	"github.com/thrasher-corp/eventbacktester/backtester/eventhandlers/exchange/slippage"
	"github.com/thrasher-corp/eventbacktester/backtester/eventtypes/fill"
	"github.com/thrasher-corp/eventbacktester/backtester/eventtypes/order"
	"github.com/thrasher-corp/eventbacktester/log"
)

// Setup creates a simulated exchange
func Setup(s Settings, streamer data.Streamer, appender eventholder.Appender) (*Exchange, error) {
	if streamer == nil || appender == nil {
		return nil, common.ErrNilArguments
	}
	if s.ExchangeName == "" {
		return nil, errNoExchangeName
	}
	for name, v := range map[string]decimal.Decimal{
		"commission per unit":      s.CommissionPerUnit,
		"bulk quantity":            s.BulkQuantity,
		"bulk commission per unit": s.BulkCommissionPerUnit,
		"minimum commission":       s.MinimumCommission,
		"maximum commission rate":  s.MaximumCommissionRate,
		"slippage":                 s.SlippageBPS,
	} {
		if v.IsNegative() {
			return nil, fmt.Errorf("%w: %v %v", errNegativeSetting, name, v)
		}
	}
	return &Exchange{
		settings: s,
		streamer: streamer,
		appender: appender,
	}, nil
}

// OnOrder prices an order against the latest released bar of its symbol and
// pushes a fill. A limit order the bar never traded through produces no fill
func (e *Exchange) OnOrder(o order.Order) error {
	if !o.GetQuantity().IsPositive() {
		return fmt.Errorf("%w, received %v", errNonPositiveQuantity, o.GetQuantity())
	}
	if !o.GetSide().IsValid() {
		return fmt.Errorf("%w '%v'", common.ErrInvalidSide, o.GetSide())
	}
	latest, err := e.streamer.Latest(o.Symbol)
	if err != nil {
		return fmt.Errorf("%w: %w", errCannotPrice, err)
	}

	var price decimal.Decimal
	switch o.GetType() {
	case common.MarketOrder:
		price = slippage.Apply(latest.GetClosePrice(), o.GetSide(), e.settings.SlippageBPS)
		price = slippage.EnsurePriceWithinRange(price, latest.GetLowPrice(), latest.GetHighPrice())
	case common.LimitOrder:
		var filled bool
		price, filled, err = e.limitFillPrice(o, latest.GetClosePrice(), latest.GetLowPrice(), latest.GetHighPrice())
		if err != nil {
			return err
		}
		if !filled {
			log.Infof(common.SubLoggers[common.Exchange], "%v %v limit %v %v @ %v not reached, close %v",
				o.Time, o.Symbol, o.GetSide(), o.GetQuantity(), o.GetLimitPrice(), latest.GetClosePrice())
			return nil
		}
	default:
		return fmt.Errorf("%w '%v'", common.ErrInvalidOrderType, o.GetType())
	}

	commission := e.CalculateCommission(o.GetQuantity(), price)
	f := fill.New(o.Symbol, o.Time, o.ID, o.GetSide(), o.GetQuantity(), price, commission, e.settings.ExchangeName)
	log.Debugf(common.SubLoggers[common.Exchange], "%v %v %v %v @ %v commission %v",
		f.Time, f.Symbol, f.GetSide(), f.GetQuantity(), f.GetPrice(), f.GetCommission())
	e.appender.AppendEvent(f)
	return nil
}

// limitFillPrice decides whether a limit order trades on the bar. A buy at
// or above the close fills at the slipped close kept within the bar's range,
// a buy the low reached fills at its limit. Sells mirror this against the high
func (e *Exchange) limitFillPrice(o order.Order, closePrice, low, high decimal.Decimal) (decimal.Decimal, bool, error) {
	limit := o.GetLimitPrice()
	if !limit.IsPositive() {
		return decimal.Zero, false, fmt.Errorf("%w, received %v", errInvalidLimitPrice, limit)
	}
	switch o.GetSide() {
	case common.Buy:
		if limit.GreaterThanOrEqual(closePrice) {
			slipped := slippage.EnsurePriceWithinRange(slippage.Apply(closePrice, common.Buy, e.settings.SlippageBPS), low, high)
			return decimal.Min(slipped, limit), true, nil
		}
		if low.LessThanOrEqual(limit) {
			return limit, true, nil
		}
	case common.Sell:
		if limit.LessThanOrEqual(closePrice) {
			slipped := slippage.EnsurePriceWithinRange(slippage.Apply(closePrice, common.Sell, e.settings.SlippageBPS), low, high)
			return decimal.Max(slipped, limit), true, nil
		}
		if high.GreaterThanOrEqual(limit) {
			return limit, true, nil
		}
	}
	return decimal.Zero, false, nil
}

// CalculateCommission charges a per unit rate, the bulk rate above the bulk
// quantity, with a minimum charge. The result is capped at the maximum
// commission rate of the trade's value
func (e *Exchange) CalculateCommission(quantity, price decimal.Decimal) decimal.Decimal {
	perUnit := e.settings.CommissionPerUnit
	if e.settings.BulkQuantity.IsPositive() && quantity.GreaterThan(e.settings.BulkQuantity) {
		perUnit = e.settings.BulkCommissionPerUnit
	}
	commission := decimal.Max(e.settings.MinimumCommission, quantity.Mul(perUnit))
	if e.settings.MaximumCommissionRate.IsPositive() {
		commission = decimal.Min(commission, e.settings.MaximumCommissionRate.Mul(quantity).Mul(price))
	}
	return commission
}

// GetSettings returns the exchange's settings
func (e *Exchange) GetSettings() Settings {
	return e.settings
}
