package portfolio

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/thrasher-corp/eventbacktester/backtester/common"
	"github.com/thrasher-corp/eventbacktester/backtester/data"
	"github.com/thrasher-corp/eventbacktester/backtester/eventhandlers/eventholder"
	"github.com/thrasher-corp/eventbacktester/backtester/eventhandlers/portfolio/holdings"
	"github.com/thrasher-corp/eventbacktester/backtester/eventhandlers/statistics"
	"github.com/thrasher-corp/eventbacktester/backtester/eventtypes/fill"
	"github.com/thrasher-corp/eventbacktester/backtester/eventtypes/kline"
	"github.com/thrasher-corp/eventbacktester/backtester/eventtypes/order"
	"github.com/thrasher-corp/eventbacktester/backtester/eventtypes/signal"
	"github.com/thrasher-corp/eventbacktester/log"
)

// Setup creates a portfolio manager instance and sets private fields
func Setup(s Settings, sh SizeHandler, streamer data.Streamer, appender eventholder.Appender) (*Portfolio, error) {
	if streamer == nil || appender == nil {
		return nil, common.ErrNilArguments
	}
	if sh == nil {
		return nil, errSizeManagerUnset
	}
	if !s.InitialCapital.IsPositive() {
		return nil, fmt.Errorf("%w, received %v", holdings.ErrInitialFundsZero, s.InitialCapital)
	}
	if s.OrderType == "" {
		s.OrderType = common.MarketOrder
	}
	if s.OrderType != common.MarketOrder && s.OrderType != common.LimitOrder {
		return nil, fmt.Errorf("%w '%v'", common.ErrInvalidOrderType, s.OrderType)
	}
	if s.LimitOffsetBPS.IsNegative() {
		return nil, errNegativeLimitOffset
	}
	p := &Portfolio{
		settings:    s,
		streamer:    streamer,
		appender:    appender,
		sizeManager: sh,
		symbols:     make(map[string]struct{}),
		holdings:    make(map[string]*holdings.Holding),
	}
	for _, sym := range streamer.Symbols() {
		p.symbols[sym] = struct{}{}
	}
	p.Reset()
	return p, nil
}

// Reset returns the portfolio manager to its starting capital with no positions
func (p *Portfolio) Reset() {
	p.cash = p.settings.InitialCapital
	p.commission = decimal.Zero
	p.holdings = make(map[string]*holdings.Holding)
	p.snapshots = holdings.Manager{}
}

// OnMarket marks the symbol's holding to the bar's close and records the
// portfolio's equity at the bar's time
func (p *Portfolio) OnMarket(k kline.Kline) error {
	if err := p.checkSymbol(k.Symbol); err != nil {
		return err
	}
	if h, ok := p.holdings[k.Symbol]; ok {
		h.UpdateValue(k.Time, k.GetClosePrice())
	}
	return p.snapshots.AddSnapshot(p.snapshot(k.Time))
}

// OnSignal receives the event from the strategy on whether it has signalled
// to go long, short or exit. The size manager decides the order, if any, and
// the order is pushed for the exchange
func (p *Portfolio) OnSignal(s signal.Signal) error {
	if err := p.checkSymbol(s.Symbol); err != nil {
		return err
	}
	position := decimal.Zero
	if h, ok := p.holdings[s.Symbol]; ok {
		position = h.PositionsSize
	}
	side, qty, err := p.sizeManager.SizeOrder(s.GetDirection(), position, s.GetStrength())
	if err != nil {
		return err
	}
	if !qty.IsPositive() {
		log.Debugf(common.SubLoggers[common.Portfolio], "%v %v %v signal ignored with position %v", s.Time, s.Symbol, s.GetDirection(), position)
		return nil
	}
	reason := fmt.Sprintf("%v %v from %v", s.GetDirection(), s.Symbol, s.GetStrategyName())
	if s.Reason != "" {
		reason += ": " + s.Reason
	}
	var o order.Order
	switch p.settings.OrderType {
	case common.LimitOrder:
		limit, err := p.limitPrice(s.Symbol, side)
		if err != nil {
			return err
		}
		o = order.NewLimit(s.Symbol, s.Time, side, qty, limit, reason)
	default:
		o = order.NewMarket(s.Symbol, s.Time, side, qty, reason)
	}
	log.Debugf(common.SubLoggers[common.Portfolio], "%v %v %v %v %v", s.Time, o.Type, o.Side, o.Quantity, s.Symbol)
	p.appender.AppendEvent(o)
	return nil
}

// OnFill applies an execution to cash, positions and commission
func (p *Portfolio) OnFill(f fill.Fill) error {
	if err := p.checkSymbol(f.Symbol); err != nil {
		return err
	}
	h, ok := p.holdings[f.Symbol]
	if !ok {
		created, err := holdings.Create(f)
		if err != nil {
			return err
		}
		h = &created
		p.holdings[f.Symbol] = h
	} else if err := h.Update(f); err != nil {
		return err
	}
	value := f.GetValue()
	switch f.GetSide() {
	case common.Buy:
		p.cash = p.cash.Sub(value.Add(f.GetCommission()))
	case common.Sell:
		p.cash = p.cash.Add(value.Sub(f.GetCommission()))
	}
	p.commission = p.commission.Add(f.GetCommission())
	log.Infof(common.SubLoggers[common.Portfolio], "%v %v %v %v @ %v commission %v, cash %v",
		f.Time, f.Symbol, f.GetSide(), f.GetQuantity(), f.GetPrice(), f.GetCommission(), p.cash)
	return p.snapshots.AddSnapshot(p.snapshot(f.Time))
}

// FinalReport computes the run's statistics from the equity curve. It only
// reads state, so calling it again returns the same summary
func (p *Portfolio) FinalReport() (*statistics.Summary, error) {
	return statistics.Calculate(
		p.snapshots.GetSnapshots(),
		p.settings.InitialCapital,
		p.settings.RiskFreeRate,
		p.settings.PeriodsPerYear)
}

// GetCash returns the uninvested cash
func (p *Portfolio) GetCash() decimal.Decimal {
	return p.cash
}

// GetPosition returns the signed position held in a symbol
func (p *Portfolio) GetPosition(symbol string) decimal.Decimal {
	if h, ok := p.holdings[symbol]; ok {
		return h.PositionsSize
	}
	return decimal.Zero
}

// GetLatestHoldings returns a copy of every holding
func (p *Portfolio) GetLatestHoldings() []holdings.Holding {
	resp := make([]holdings.Holding, 0, len(p.holdings))
	for _, h := range p.holdings {
		resp = append(resp, *h)
	}
	return resp
}

// GetSnapshots returns the equity curve so far
func (p *Portfolio) GetSnapshots() []holdings.Snapshot {
	return p.snapshots.GetSnapshots()
}

func (p *Portfolio) snapshot(t time.Time) holdings.Snapshot {
	marketValue := decimal.Zero
	for _, h := range p.holdings {
		marketValue = marketValue.Add(h.PositionsValue)
	}
	return holdings.Snapshot{
		Time:        t,
		Cash:        p.cash,
		MarketValue: marketValue,
		Commission:  p.commission,
		Total:       p.cash.Add(marketValue),
	}
}

// limitPrice offsets the latest close away from the market, below it for buys
// and above it for sells
func (p *Portfolio) limitPrice(symbol string, side common.Side) (decimal.Decimal, error) {
	latest, err := p.streamer.Latest(symbol)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %w", errNoPriceForLimit, err)
	}
	offset := latest.GetClosePrice().Mul(p.settings.LimitOffsetBPS).Div(basisPoints)
	if side == common.Buy {
		return latest.GetClosePrice().Sub(offset), nil
	}
	return latest.GetClosePrice().Add(offset), nil
}

func (p *Portfolio) checkSymbol(symbol string) error {
	if _, ok := p.symbols[symbol]; !ok {
		return fmt.Errorf("%w '%v'", errUnknownSymbol, symbol)
	}
	return nil
}
