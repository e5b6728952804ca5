package eventholder

import (
	"github.com/thrasher-corp/eventbacktester/backtester/common"
)

// Holder contains the event queue for backtester processing. It is owned by a
// single run and is not safe for concurrent use
type Holder struct {
	Queue []common.Event
}

// Appender is the push-only view of the queue handed to strategies, the
// portfolio and the execution handler
type Appender interface {
	AppendEvent(common.Event)
}

// EventHolder interface details what is expected of an event holder to perform
type EventHolder interface {
	Appender
	Reset()
	NextEvent() (common.Event, bool)
	Len() int
}
