package base

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thrasher-corp/eventbacktester/backtester/common"
	"github.com/thrasher-corp/eventbacktester/backtester/data"
	"github.com/thrasher-corp/eventbacktester/backtester/eventhandlers/eventholder"
	"github.com/thrasher-corp/eventbacktester/backtester/eventtypes/kline"
	"github.com/thrasher-corp/eventbacktester/backtester/eventtypes/signal"
)

func TestSetup(t *testing.T) {
	t.Parallel()
	var s Strategy
	assert.ErrorIs(t, s.Setup("test", nil, eventholder.New()), common.ErrNilArguments)
	assert.False(t, s.IsSetup())
	assert.ErrorIs(t, s.Emit(kline.Kline{}, common.Long, ""), ErrNotSetup)

	d, err := data.NewStream([]string{"A"}, nil, time.Time{})
	require.NoError(t, err)
	require.NoError(t, s.Setup("test", d, eventholder.New()))
	assert.True(t, s.IsSetup())
	assert.Equal(t, d, s.Streamer())
}

func TestEmit(t *testing.T) {
	t.Parallel()
	var s Strategy
	q := eventholder.New()
	d, err := data.NewStream([]string{"A"}, nil, time.Time{})
	require.NoError(t, err)
	require.NoError(t, s.Setup("test", d, q))

	k := kline.New("A", time.Now(), decimal.Zero, decimal.Zero, decimal.Zero, decimal.NewFromInt(1), decimal.Zero)
	require.NoError(t, s.Emit(k, common.Long, "go long"))
	assert.True(t, s.Invested("A"))
	assert.Equal(t, common.Long, s.Position("A"))

	ev, ok := q.NextEvent()
	require.True(t, ok)
	sig, ok := ev.(signal.Signal)
	require.True(t, ok)
	assert.Equal(t, common.Long, sig.Direction)
	assert.Equal(t, "test", sig.StrategyName)
	assert.Equal(t, "go long", sig.Reason)
	assert.Equal(t, k.Time, sig.Time)

	require.NoError(t, s.Emit(k, common.Exit, ""))
	assert.False(t, s.Invested("A"))

	assert.ErrorIs(t, s.Emit(k, common.Direction("HOLD"), ""), common.ErrInvalidDirection)
	assert.Equal(t, 1, q.Len())
}

func TestToFloat(t *testing.T) {
	t.Parallel()
	for _, v := range []any{float64(2), float32(2), 2, int64(2), "2"} {
		f, err := ToFloat(v)
		require.NoError(t, err, v)
		assert.Equal(t, 2.0, f)
	}
	_, err := ToFloat("two")
	assert.ErrorIs(t, err, ErrInvalidCustomSettings)
	_, err = ToFloat(true)
	assert.ErrorIs(t, err, ErrInvalidCustomSettings)
}

func TestToPositiveInt(t *testing.T) {
	t.Parallel()
	i, err := ToPositiveInt(float64(14))
	require.NoError(t, err)
	assert.Equal(t, 14, i)
	for _, v := range []any{0, -1, 1.5} {
		_, err = ToPositiveInt(v)
		assert.ErrorIs(t, err, ErrInvalidCustomSettings, v)
	}
}
