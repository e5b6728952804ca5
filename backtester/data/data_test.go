package data

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thrasher-corp/eventbacktester/backtester/eventtypes/kline"
)

var day0 = time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)

func bar(symbol string, day int, closePrice int64) kline.Kline {
	c := decimal.NewFromInt(closePrice)
	return kline.New(symbol, day0.AddDate(0, 0, day), c, c, c, c, decimal.NewFromInt(100))
}

func TestNewStream(t *testing.T) {
	t.Parallel()
	_, err := NewStream(nil, nil, time.Time{})
	assert.ErrorIs(t, err, ErrNoSymbols)

	_, err = NewStream([]string{"A"}, map[string][]kline.Kline{"B": {bar("B", 0, 1)}}, time.Time{})
	assert.ErrorIs(t, err, errUnknownSymbol)

	_, err = NewStream([]string{"A"}, map[string][]kline.Kline{"A": {bar("B", 0, 1)}}, time.Time{})
	assert.ErrorIs(t, err, errSymbolMismatch)

	_, err = NewStream([]string{"A", "B", "A"}, map[string][]kline.Kline{"A": {bar("A", 0, 1)}}, time.Time{})
	assert.ErrorIs(t, err, errDuplicateSymbol, "a repeated symbol would release its bars twice")

	s, err := NewStream([]string{"A"}, map[string][]kline.Kline{"A": {{Close: decimal.NewFromInt(1)}}}, time.Time{})
	require.NoError(t, err)
	k, err := s.NextBar()
	require.NoError(t, err)
	assert.Equal(t, "A", k.GetSymbol(), "symbol is filled in from the series")
}

func TestNextBarOrdering(t *testing.T) {
	t.Parallel()
	s, err := NewStream([]string{"B", "A"}, map[string][]kline.Kline{
		"A": {bar("A", 1, 11), bar("A", 0, 10), bar("A", 2, 12)},
		"B": {bar("B", 0, 20), bar("B", 2, 22)},
	}, time.Time{})
	require.NoError(t, err)
	assert.Equal(t, 5, s.Len())

	var got []string
	for s.HasMore() {
		k, err := s.NextBar()
		require.NoError(t, err)
		got = append(got, k.Symbol+k.Close.String())
	}
	// ties resolve in configured symbol order, B before A
	assert.Equal(t, []string{"B20", "A10", "A11", "B22", "A12"}, got)

	_, err = s.NextBar()
	assert.ErrorIs(t, err, ErrDataExhausted)
	assert.False(t, s.HasMore())
}

func TestStartDateFilter(t *testing.T) {
	t.Parallel()
	s, err := NewStream([]string{"A"}, map[string][]kline.Kline{
		"A": {bar("A", 0, 1), bar("A", 1, 2), bar("A", 2, 3)},
	}, day0.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.Equal(t, 2, s.Len())
	k, err := s.NextBar()
	require.NoError(t, err)
	assert.True(t, k.Close.Equal(decimal.NewFromInt(2)))
}

func TestStreamerViewsReleasedBarsOnly(t *testing.T) {
	t.Parallel()
	s, err := NewStream([]string{"A", "B"}, map[string][]kline.Kline{
		"A": {bar("A", 0, 1), bar("A", 1, 2)},
		"B": {bar("B", 5, 9)},
	}, time.Time{})
	require.NoError(t, err)

	_, err = s.Latest("A")
	assert.ErrorIs(t, err, ErrNoDataForSymbol)
	assert.Empty(t, s.History("A"))
	assert.Empty(t, s.StreamClose("A"))

	_, err = s.NextBar()
	require.NoError(t, err)
	latest, err := s.Latest("A")
	require.NoError(t, err)
	assert.True(t, latest.Close.Equal(decimal.NewFromInt(1)))
	assert.Len(t, s.History("A"), 1)
	assert.Equal(t, []float64{1}, s.StreamClose("A"))

	_, err = s.Latest("B")
	assert.ErrorIs(t, err, ErrNoDataForSymbol)
	_, err = s.Latest("C")
	assert.ErrorIs(t, err, ErrNoDataForSymbol)

	_, err = s.NextBar()
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2}, s.StreamClose("A"))
	assert.Equal(t, []string{"A", "B"}, s.Symbols())
}

func TestHistoryCannotLeakFutureBars(t *testing.T) {
	t.Parallel()
	s, err := NewStream([]string{"A"}, map[string][]kline.Kline{
		"A": {bar("A", 0, 1), bar("A", 1, 2)},
	}, time.Time{})
	require.NoError(t, err)
	_, err = s.NextBar()
	require.NoError(t, err)
	h := s.History("A")
	h = append(h, bar("A", 9, 99))
	assert.Len(t, h, 2)
	next, err := s.NextBar()
	require.NoError(t, err)
	assert.True(t, next.Close.Equal(decimal.NewFromInt(2)), "appending to history must not overwrite unreleased bars")
}

func TestReset(t *testing.T) {
	t.Parallel()
	s, err := NewStream([]string{"A"}, map[string][]kline.Kline{"A": {bar("A", 0, 1)}}, time.Time{})
	require.NoError(t, err)
	_, err = s.NextBar()
	require.NoError(t, err)
	assert.False(t, s.HasMore())
	s.Reset()
	assert.True(t, s.HasMore())
	assert.Empty(t, s.History("A"))
}

func TestEmptyStream(t *testing.T) {
	t.Parallel()
	s, err := NewStream([]string{"A"}, nil, time.Time{})
	require.NoError(t, err)
	assert.False(t, s.HasMore())
}
