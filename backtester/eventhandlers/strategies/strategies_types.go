package strategies

import (
	"github.com/thrasher-corp/eventbacktester/backtester/data"
	"github.com/thrasher-corp/eventbacktester/backtester/eventhandlers/eventholder"
	"github.com/thrasher-corp/eventbacktester/backtester/eventtypes/kline"
)

// Handler defines all functions required to run strategies against data events.
// Signals are pushed onto the queue given to Setup, never returned
type Handler interface {
	Name() string
	Description() string
	Setup(data.Streamer, eventholder.Appender) error
	OnMarket(kline.Kline) error
	SetCustomSettings(map[string]any) error
	SetDefaults()
}
