package scripted

import (
	"path/filepath"
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

func stream(t *testing.T, closes ...int64) *data.Stream {
	t.Helper()
	start := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	bars := make([]kline.Kline, len(closes))
	for i := range closes {
		c := decimal.NewFromInt(closes[i])
		bars[i] = kline.New("A", start.AddDate(0, 0, i), c, c, c, c, decimal.Zero)
	}
	d, err := data.NewStream([]string{"A"}, map[string][]kline.Kline{"A": bars}, time.Time{})
	require.NoError(t, err)
	return d
}

func run(t *testing.T, s *Strategy, d *data.Stream) []signal.Signal {
	t.Helper()
	q := eventholder.New()
	require.NoError(t, s.Setup(d, q))
	var resp []signal.Signal
	for d.HasMore() {
		k, err := d.NextBar()
		require.NoError(t, err)
		require.NoError(t, s.OnMarket(k))
		for q.Len() > 0 {
			ev, _ := q.NextEvent()
			resp = append(resp, ev.(signal.Signal))
		}
	}
	return resp
}

func TestSetCustomSettings(t *testing.T) {
	t.Parallel()
	s := Strategy{}
	s.SetDefaults()
	assert.ErrorIs(t, s.SetCustomSettings(nil), base.ErrInvalidCustomSettings)
	assert.ErrorIs(t, s.SetCustomSettings(map[string]any{scriptKey: 1}), base.ErrInvalidCustomSettings)
	assert.ErrorIs(t, s.SetCustomSettings(map[string]any{scriptKey: "a", scriptPathKey: "b"}), base.ErrInvalidCustomSettings)
	assert.ErrorIs(t, s.SetCustomSettings(map[string]any{scriptPathKey: "does/not/exist.tengo"}), base.ErrInvalidCustomSettings)
	assert.ErrorIs(t, s.SetCustomSettings(map[string]any{"lol": "x"}), base.ErrInvalidCustomSettings)
	require.NoError(t, s.SetCustomSettings(map[string]any{scriptKey: `signal = ""`, maxAllocsKey: 500}))
	assert.EqualValues(t, 500, s.maxAllocs)
}

func TestSetupCompileError(t *testing.T) {
	t.Parallel()
	s := Strategy{}
	s.SetDefaults()
	q := eventholder.New()
	assert.ErrorIs(t, s.Setup(stream(t), q), base.ErrInvalidCustomSettings)

	require.NoError(t, s.SetCustomSettings(map[string]any{scriptKey: `signal = `}))
	assert.Error(t, s.Setup(stream(t), q))
}

func TestOnMarketFromFile(t *testing.T) {
	t.Parallel()
	s := Strategy{}
	s.SetDefaults()
	require.NoError(t, s.SetCustomSettings(map[string]any{scriptPathKey: filepath.Join("testdata", "threshold.tengo")}))
	sigs := run(t, &s, stream(t, 15, 9, 8, 12, 25, 30, 5))
	require.Len(t, sigs, 3)
	assert.Equal(t, common.Long, sigs[0].Direction)
	assert.Equal(t, "cheap", sigs[0].Reason)
	assert.Equal(t, common.Exit, sigs[1].Direction)
	assert.Equal(t, "expensive", sigs[1].Reason)
	assert.Equal(t, common.Long, sigs[2].Direction)
	assert.Equal(t, Name, sigs[2].StrategyName)
}

func TestOnMarketUsesHistory(t *testing.T) {
	t.Parallel()
	s := Strategy{}
	s.SetDefaults()
	require.NoError(t, s.SetCustomSettings(map[string]any{scriptKey: `
if len(closes) == 3 && invested == "" {
	signal = "short"
}`}))
	sigs := run(t, &s, stream(t, 1, 2, 3, 4))
	require.Len(t, sigs, 1)
	assert.Equal(t, common.Short, sigs[0].Direction)
	assert.Equal(t, "script", sigs[0].Reason)
}

func TestOnMarketBadDirection(t *testing.T) {
	t.Parallel()
	s := Strategy{}
	s.SetDefaults()
	require.NoError(t, s.SetCustomSettings(map[string]any{scriptKey: `signal = "HODL"`}))
	d := stream(t, 1)
	require.NoError(t, s.Setup(d, eventholder.New()))
	k, err := d.NextBar()
	require.NoError(t, err)
	assert.ErrorIs(t, s.OnMarket(k), common.ErrInvalidDirection)
}
