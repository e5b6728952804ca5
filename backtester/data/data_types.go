package data

import (
	"errors"

	"github.com/thrasher-corp/eventbacktester/backtester/eventtypes/kline"
)

var (
	// ErrNoDataForSymbol is returned when no bar has been released for a symbol yet
	ErrNoDataForSymbol = errors.New("no data released for symbol")
	// ErrDataExhausted is returned when NextBar is called after the last bar
	ErrDataExhausted = errors.New("data exhausted")
	// ErrNoSymbols is returned when a stream is built without symbols
	ErrNoSymbols = errors.New("no symbols provided")

	errSymbolMismatch  = errors.New("bar symbol does not match its series")
	errUnknownSymbol   = errors.New("bars provided for unconfigured symbol")
	errDuplicateSymbol = errors.New("symbol configured more than once")
)

// Source is what the clock pulls bars from. Once HasMore reports false it
// never reports true again
type Source interface {
	HasMore() bool
	NextBar() (kline.Kline, error)
}

// Streamer is the look-back view of released bars offered to strategies,
// the portfolio and the execution handler. It never exposes bars the clock
// has not yet released
type Streamer interface {
	Latest(symbol string) (kline.Kline, error)
	History(symbol string) []kline.Kline
	StreamClose(symbol string) []float64
	Symbols() []string
}

// Handler is both a Source and a Streamer
type Handler interface {
	Source
	Streamer
}

// Stream releases the bars of several symbols in chronological order
type Stream struct {
	symbols  []string
	bars     map[string][]kline.Kline
	offsets  map[string]int
	released int
	total    int
}
