package rsi

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

func TestName(t *testing.T) {
	t.Parallel()
	s := Strategy{}
	assert.Equal(t, Name, s.Name())
	assert.NotEmpty(t, s.Description())
}

func TestSetCustomSettings(t *testing.T) {
	t.Parallel()
	s := Strategy{}
	s.SetDefaults()
	require.NoError(t, s.SetCustomSettings(map[string]any{
		rsiHighKey:   float64(80),
		rsiLowKey:    20,
		rsiPeriodKey: float64(7),
	}))
	assert.Equal(t, 80.0, s.rsiHigh)
	assert.Equal(t, 20.0, s.rsiLow)
	assert.Equal(t, 7, s.rsiPeriod)

	for _, bad := range []map[string]any{
		{rsiHighKey: "lol"},
		{rsiLowKey: -1},
		{rsiPeriodKey: 0},
		{rsiLowKey: 90},
		{"lol": 1},
	} {
		s.SetDefaults()
		assert.ErrorIs(t, s.SetCustomSettings(bad), base.ErrInvalidCustomSettings, bad)
	}
}

func TestSetDefaults(t *testing.T) {
	t.Parallel()
	s := Strategy{}
	s.SetDefaults()
	assert.Equal(t, 70.0, s.rsiHigh)
	assert.Equal(t, 30.0, s.rsiLow)
	assert.Equal(t, 14, s.rsiPeriod)
}

func TestOnMarket(t *testing.T) {
	t.Parallel()
	s := Strategy{}
	assert.ErrorIs(t, s.OnMarket(kline.Kline{}), base.ErrNotSetup)

	// a steady decline followed by a steady rally
	var closes []int64
	for i := int64(0); i < 10; i++ {
		closes = append(closes, 100-i*5)
	}
	for i := int64(1); i <= 10; i++ {
		closes = append(closes, 55+i*10)
	}
	start := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	bars := make([]kline.Kline, len(closes))
	for i := range closes {
		c := decimal.NewFromInt(closes[i])
		bars[i] = kline.New("A", start.AddDate(0, 0, i), c, c, c, c, decimal.Zero)
	}
	d, err := data.NewStream([]string{"A"}, map[string][]kline.Kline{"A": bars}, time.Time{})
	require.NoError(t, err)

	s.SetDefaults()
	require.NoError(t, s.SetCustomSettings(map[string]any{rsiPeriodKey: 3}))
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
	require.NotEmpty(t, directions)
	assert.Equal(t, common.Long, directions[0], "oversold market should raise a long first")
	assert.Equal(t, common.Exit, directions[len(directions)-1], "rally should exit the position")
	assert.Len(t, directions, 2)
}
