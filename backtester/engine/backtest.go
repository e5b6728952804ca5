package engine

import (
	"fmt"

	"github.com/thrasher-corp/eventbacktester/backtester/common"
	"github.com/thrasher-corp/eventbacktester/backtester/eventtypes/fill"
	"github.com/thrasher-corp/eventbacktester/backtester/eventtypes/kline"
	"github.com/thrasher-corp/eventbacktester/backtester/eventtypes/order"
	"github.com/thrasher-corp/eventbacktester/backtester/eventtypes/signal"
	"github.com/thrasher-corp/eventbacktester/log"
)

// Run executes the backtest until the data source is exhausted and every
// queued event has been handled, then reports. A run can only be started once
func (bt *BackTest) Run() (*Results, error) {
	if bt.started {
		return nil, ErrRunAlreadyStarted
	}
	bt.started = true
	log.Infof(common.SubLoggers[common.Backtester], "running backtest %v with strategy %v", bt.runID, bt.strategy.Name())
	for bt.state != Finished {
		if err := bt.step(); err != nil {
			log.Errorf(common.SubLoggers[common.Backtester], "backtest %v stopped after %v ticks: %v", bt.runID, bt.clock.Ticks(), err)
			return nil, err
		}
	}
	log.Infof(common.SubLoggers[common.Backtester], "backtest %v finished after %v ticks, %v signals, %v orders, %v fills",
		bt.runID, bt.clock.Ticks(), bt.counters.Signals, bt.counters.Orders, bt.counters.Fills)
	return bt.Report()
}

// step performs one transition of the dispatcher
func (bt *BackTest) step() error {
	switch bt.state {
	case Advancing:
		more, err := bt.clock.Advance()
		if err != nil {
			return err
		}
		if !more {
			// anything pushed outside a market cycle is still handled
			if err = bt.drain(); err != nil {
				return err
			}
			bt.state = Finished
			return nil
		}
		bt.state = Draining
	case Draining:
		if err := bt.drain(); err != nil {
			return err
		}
		bt.clock.Wait()
		bt.state = Advancing
	}
	return nil
}

// drain handles events until the queue is empty, including every event the
// handlers push while it drains
func (bt *BackTest) drain() error {
	for ev, ok := bt.queue.NextEvent(); ok; ev, ok = bt.queue.NextEvent() {
		if err := bt.handleEvent(ev); err != nil {
			return err
		}
	}
	return nil
}

func (bt *BackTest) handleEvent(ev common.Event) error {
	if ev == nil {
		return &DispatchError{Handler: dispatcherName, Err: common.ErrNilEvent}
	}
	log.Debugf(common.SubLoggers[common.Backtester], "handling %v event for %v at %v", ev.GetKind(), ev.GetSymbol(), ev.GetTime())
	switch e := ev.(type) {
	case kline.Kline:
		if err := bt.strategy.OnMarket(e); err != nil {
			return dispatchError(ev, strategyName, err)
		}
		if err := bt.portfolio.OnMarket(e); err != nil {
			return dispatchError(ev, portfolioName, err)
		}
	case signal.Signal:
		bt.counters.Signals++
		if err := bt.portfolio.OnSignal(e); err != nil {
			return dispatchError(ev, portfolioName, err)
		}
	case order.Order:
		bt.counters.Orders++
		if err := bt.exchange.OnOrder(e); err != nil {
			return dispatchError(ev, exchangeName, err)
		}
	case fill.Fill:
		bt.counters.Fills++
		if err := bt.portfolio.OnFill(e); err != nil {
			return dispatchError(ev, portfolioName, err)
		}
	default:
		return dispatchError(ev, dispatcherName, fmt.Errorf("%w %T", ErrUnhandledEventType, ev))
	}
	return nil
}

func dispatchError(ev common.Event, handler string, err error) *DispatchError {
	return &DispatchError{
		Kind:    ev.GetKind(),
		Time:    ev.GetTime(),
		Symbol:  ev.GetSymbol(),
		Handler: handler,
		Err:     err,
	}
}

// Report reruns reporting on a finished run. It can be called any number of
// times and returns the same results
func (bt *BackTest) Report() (*Results, error) {
	if bt.state != Finished {
		return nil, ErrRunNotFinished
	}
	summary, err := bt.portfolio.FinalReport()
	if err != nil {
		return nil, fmt.Errorf("%v final report: %w", portfolioName, err)
	}
	return &Results{
		RunID:    bt.runID,
		Nickname: bt.cfg.Nickname,
		Strategy: bt.strategy.Name(),
		Symbols:  append([]string(nil), bt.cfg.Symbols...),
		Ticks:    bt.clock.Ticks(),
		Counters: bt.counters,
		Summary:  summary,
	}, nil
}

// State returns where the dispatcher is in its cycle
func (bt *BackTest) State() State {
	return bt.state
}

// Counters returns the events processed so far
func (bt *BackTest) Counters() RunCounters {
	return bt.counters
}

// RunID returns the run's identifier
func (bt *BackTest) RunID() string {
	return bt.runID.String()
}
