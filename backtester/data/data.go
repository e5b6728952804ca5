package data

import (
	"fmt"
	"sort"
	"time"

	"github.com/thrasher-corp/eventbacktester/backtester/eventtypes/kline"
)

// NewStream builds a Stream from per-symbol bars. Each series is sorted by
// time and bars before start are dropped, a zero start keeps everything
func NewStream(symbols []string, bars map[string][]kline.Kline, start time.Time) (*Stream, error) {
	if len(symbols) == 0 {
		return nil, ErrNoSymbols
	}
	s := &Stream{
		symbols: append([]string(nil), symbols...),
		bars:    make(map[string][]kline.Kline, len(symbols)),
		offsets: make(map[string]int, len(symbols)),
	}
	known := make(map[string]struct{}, len(symbols))
	for _, sym := range symbols {
		if _, ok := known[sym]; ok {
			return nil, fmt.Errorf("%w %v", errDuplicateSymbol, sym)
		}
		known[sym] = struct{}{}
	}
	for sym := range bars {
		if _, ok := known[sym]; !ok {
			return nil, fmt.Errorf("%w %v", errUnknownSymbol, sym)
		}
	}
	for _, sym := range symbols {
		series := make([]kline.Kline, 0, len(bars[sym]))
		for i := range bars[sym] {
			k := bars[sym][i]
			if k.Symbol == "" {
				k.Symbol = sym
			}
			if k.Symbol != sym {
				return nil, fmt.Errorf("%w: series %v bar %v", errSymbolMismatch, sym, k.Symbol)
			}
			if !start.IsZero() && k.Time.Before(start) {
				continue
			}
			series = append(series, k)
		}
		sort.SliceStable(series, func(i, j int) bool {
			return series[i].Time.Before(series[j].Time)
		})
		s.bars[sym] = series
		s.total += len(series)
	}
	return s, nil
}

// HasMore returns whether any bar remains to be released
func (s *Stream) HasMore() bool {
	return s.released < s.total
}

// NextBar releases the earliest unreleased bar across all symbols. Bars
// sharing a timestamp are released in symbol order
func (s *Stream) NextBar() (kline.Kline, error) {
	if !s.HasMore() {
		return kline.Kline{}, ErrDataExhausted
	}
	next := ""
	var nextTime time.Time
	for _, sym := range s.symbols {
		off := s.offsets[sym]
		if off >= len(s.bars[sym]) {
			continue
		}
		t := s.bars[sym][off].Time
		if next == "" || t.Before(nextTime) {
			next = sym
			nextTime = t
		}
	}
	k := s.bars[next][s.offsets[next]]
	s.offsets[next]++
	s.released++
	return k, nil
}

// Latest returns the most recently released bar for the symbol
func (s *Stream) Latest(symbol string) (kline.Kline, error) {
	off := s.offsets[symbol]
	if off == 0 {
		return kline.Kline{}, fmt.Errorf("%w %v", ErrNoDataForSymbol, symbol)
	}
	return s.bars[symbol][off-1], nil
}

// History returns every released bar for the symbol, oldest first
func (s *Stream) History(symbol string) []kline.Kline {
	off := s.offsets[symbol]
	return s.bars[symbol][:off:off]
}

// StreamClose returns the released closing prices of the symbol as floats,
// the form indicator libraries expect
func (s *Stream) StreamClose(symbol string) []float64 {
	hist := s.History(symbol)
	resp := make([]float64, len(hist))
	for i := range hist {
		resp[i] = hist[i].Close.InexactFloat64()
	}
	return resp
}

// Symbols returns the configured symbols in order
func (s *Stream) Symbols() []string {
	return append([]string(nil), s.symbols...)
}

// Len returns how many bars the stream holds in total
func (s *Stream) Len() int {
	return s.total
}

// Reset rewinds the stream to before the first bar
func (s *Stream) Reset() {
	for sym := range s.offsets {
		s.offsets[sym] = 0
	}
	s.released = 0
}
