package database

import (
	"context"
	"errors"
	"time"

	"github.com/thrasher-corp/eventbacktester/backtester/common"
	"github.com/thrasher-corp/eventbacktester/backtester/eventtypes/kline"
	gctdatabase "github.com/thrasher-corp/eventbacktester/database"
	"github.com/thrasher-corp/eventbacktester/database/repository/candle"
	"github.com/thrasher-corp/eventbacktester/log"
)

var errNoStartDate = errors.New("start date must be set")

// Load reads the candles of every symbol from start onwards. end defaults to now
func Load(ctx context.Context, inst *gctdatabase.Instance, symbols []string, start, end time.Time) (map[string][]kline.Kline, error) {
	if start.IsZero() {
		return nil, errNoStartDate
	}
	if end.IsZero() {
		end = time.Now()
	}
	resp := make(map[string][]kline.Kline, len(symbols))
	for _, sym := range symbols {
		candles, err := candle.Series(ctx, inst, sym, start, end)
		if err != nil {
			return nil, err
		}
		bars := make([]kline.Kline, len(candles))
		for i := range candles {
			bars[i] = kline.New(sym,
				candles[i].Timestamp,
				candles[i].Open,
				candles[i].High,
				candles[i].Low,
				candles[i].Close,
				candles[i].Volume)
		}
		log.Infof(common.SubLoggers[common.Data], "loaded %d bars for %v from database", len(bars), sym)
		resp[sym] = bars
	}
	return resp, nil
}
