package engine

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofrs/uuid"
	"github.com/thrasher-corp/eventbacktester/backtester/common"
	"github.com/thrasher-corp/eventbacktester/backtester/config"
	"github.com/thrasher-corp/eventbacktester/backtester/data"
	"github.com/thrasher-corp/eventbacktester/backtester/eventhandlers/eventholder"
	"github.com/thrasher-corp/eventbacktester/backtester/eventhandlers/exchange"
	"github.com/thrasher-corp/eventbacktester/backtester/eventhandlers/portfolio"
	"github.com/thrasher-corp/eventbacktester/backtester/eventhandlers/statistics"
	"github.com/thrasher-corp/eventbacktester/backtester/eventhandlers/strategies"
)

var (
	// ErrUnhandledEventType is returned when the queue yields an event the
	// dispatcher has no route for
	ErrUnhandledEventType = errors.New("unhandled event type")
	// ErrRunAlreadyStarted is returned when Run is called a second time
	ErrRunAlreadyStarted = errors.New("run already started")
	// ErrRunNotFinished is returned when results are requested before the run finished
	ErrRunNotFinished = errors.New("run has not finished")

	errNilConfig       = errors.New("unable to setup backtester with nil config")
	errNilFactory      = errors.New("nil factory")
	errNilCollaborator = errors.New("factory returned nil")
)

// State is where the dispatcher is in its cycle
type State uint8

// Dispatcher states
const (
	Advancing State = iota
	Draining
	Finished
)

func (s State) String() string {
	switch s {
	case Advancing:
		return "ADVANCING"
	case Draining:
		return "DRAINING"
	case Finished:
		return "FINISHED"
	}
	return fmt.Sprintf("UNKNOWN(%d)", uint8(s))
}

// Collaborator names used in errors
const (
	dataSourceName = "data source"
	strategyName   = "strategy"
	portfolioName  = "portfolio"
	exchangeName   = "execution handler"
	dispatcherName = "dispatcher"
)

// DataSourceFactory builds the bar source for a run
type DataSourceFactory func(*config.Config) (data.Handler, error)

// StrategyFactory builds the strategy for a run. Signals are pushed onto the
// given appender
type StrategyFactory func(*config.Config, data.Streamer, eventholder.Appender) (strategies.Handler, error)

// PortfolioFactory builds the portfolio for a run. Orders are pushed onto the
// given appender
type PortfolioFactory func(*config.Config, data.Streamer, eventholder.Appender) (portfolio.Handler, error)

// ExecutionFactory builds the execution handler for a run. Fills are pushed
// onto the given appender
type ExecutionFactory func(*config.Config, data.Streamer, eventholder.Appender) (exchange.ExecutionHandler, error)

// RunCounters counts the events the dispatcher processed
type RunCounters struct {
	Signals int64 `json:"signals"`
	Orders  int64 `json:"orders"`
	Fills   int64 `json:"fills"`
}

// DispatchError is returned when handling an event fails. The run stops at
// the first one
type DispatchError struct {
	Kind    common.EventKind
	Time    time.Time
	Symbol  string
	Handler string
	Err     error
}

func (e *DispatchError) Error() string {
	return fmt.Sprintf("%v failed handling %v event for %v at %v: %v", e.Handler, e.Kind, e.Symbol, e.Time, e.Err)
}

// Unwrap returns the collaborator's error
func (e *DispatchError) Unwrap() error {
	return e.Err
}

// Clock releases one bar per tick onto the queue and waits a heartbeat
// between ticks
type Clock struct {
	source    data.Source
	queue     eventholder.Appender
	heartbeat time.Duration
	sleep     func(time.Duration)
	ticks     int64
}

// Results is what a finished run reports
type Results struct {
	RunID    uuid.UUID           `json:"run-id"`
	Nickname string              `json:"nickname,omitempty"`
	Strategy string              `json:"strategy"`
	Symbols  []string            `json:"symbols"`
	Ticks    int64               `json:"ticks"`
	Counters RunCounters         `json:"counters"`
	Summary  *statistics.Summary `json:"summary"`
}

// BackTest is the main holder of all backtesting functionality
type BackTest struct {
	runID     uuid.UUID
	cfg       *config.Config
	queue     *eventholder.Holder
	clock     *Clock
	data      data.Handler
	strategy  strategies.Handler
	portfolio portfolio.Handler
	exchange  exchange.ExecutionHandler
	state     State
	started   bool
	counters  RunCounters
}
