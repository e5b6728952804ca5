package engine

import (
	"fmt"
	"time"

	"github.com/thrasher-corp/eventbacktester/backtester/common"
	"github.com/thrasher-corp/eventbacktester/backtester/data"
	"github.com/thrasher-corp/eventbacktester/backtester/eventhandlers/eventholder"
)

// NewClock creates a clock releasing bars from source onto queue
func NewClock(source data.Source, queue eventholder.Appender, heartbeat time.Duration) (*Clock, error) {
	if source == nil || queue == nil {
		return nil, common.ErrNilArguments
	}
	return &Clock{
		source:    source,
		queue:     queue,
		heartbeat: heartbeat,
		sleep:     time.Sleep,
	}, nil
}

// Advance pushes the next bar as a market update and reports true, or
// reports false once the source is exhausted without pushing anything
func (c *Clock) Advance() (bool, error) {
	if !c.source.HasMore() {
		return false, nil
	}
	k, err := c.source.NextBar()
	if err != nil {
		return false, fmt.Errorf("%v: %w", dataSourceName, err)
	}
	c.queue.AppendEvent(k)
	c.ticks++
	return true, nil
}

// Wait sleeps for the heartbeat. A zero heartbeat never sleeps
func (c *Clock) Wait() {
	if c.heartbeat <= 0 {
		return
	}
	c.sleep(c.heartbeat)
}

// Ticks returns how many bars have been released
func (c *Clock) Ticks() int64 {
	return c.ticks
}
