package movingaverage

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thrasher-corp/eventbacktester/backtester/common"
	"github.com/thrasher-corp/eventbacktester/backtester/data"
	"github.com/thrasher-corp/eventbacktester/backtester/eventhandlers/eventholder"
	"github.com/thrasher-corp/eventbacktester/backtester/eventhandlers/strategies/base"
	"github.com/thrasher-corp/eventbacktester/backtester/eventtypes/kline"
	"github.com/thrasher-corp/eventbacktester/backtester/eventtypes/signal"
)

func TestSetCustomSettings(t *testing.T) {
	t.Parallel()
	s := Strategy{}
	s.SetDefaults()
	assert.Equal(t, 10, s.shortWindow)
	assert.Equal(t, 30, s.longWindow)

	require.NoError(t, s.SetCustomSettings(map[string]any{shortWindowKey: float64(2), longWindowKey: 4}))
	assert.Equal(t, 2, s.shortWindow)
	assert.Equal(t, 4, s.longWindow)

	assert.ErrorIs(t, s.SetCustomSettings(map[string]any{shortWindowKey: 5}), base.ErrInvalidCustomSettings)
	assert.ErrorIs(t, s.SetCustomSettings(map[string]any{longWindowKey: "x"}), base.ErrInvalidCustomSettings)
	assert.ErrorIs(t, s.SetCustomSettings(map[string]any{"lol": 1}), base.ErrInvalidCustomSettings)
}

func TestOnMarket(t *testing.T) {
	t.Parallel()
	closes := []int64{10, 10, 10, 10, 12, 14, 16, 8, 6, 4, 2}
	bars := make([]kline.Kline, len(closes))
	start := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := range closes {
		c := decimal.NewFromInt(closes[i])
		bars[i] = kline.New("A", start.AddDate(0, 0, i), c, c, c, c, decimal.Zero)
	}
	d, err := data.NewStream([]string{"A"}, map[string][]kline.Kline{"A": bars}, time.Time{})
	require.NoError(t, err)

	s := Strategy{}
	s.SetDefaults()
	require.NoError(t, s.SetCustomSettings(map[string]any{shortWindowKey: 2, longWindowKey: 4}))
	q := eventholder.New()
	require.NoError(t, s.Setup(d, q))

	var directions []common.Direction
	for d.HasMore() {
		k, err := d.NextBar()
		require.NoError(t, err)
		require.NoError(t, s.OnMarket(k))
		for q.Len() > 0 {
			ev, _ := q.NextEvent()
			directions = append(directions, ev.(signal.Signal).Direction)
		}
	}
	assert.Equal(t, []common.Direction{common.Long, common.Exit}, directions)
}

func TestOnMarketNotSetup(t *testing.T) {
	t.Parallel()
	s := Strategy{}
	assert.ErrorIs(t, s.OnMarket(kline.Kline{}), base.ErrNotSetup)
}
