package csv

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Parallel()
	_, err := Load("", []string{"AAPL"})
	assert.ErrorIs(t, err, errNoDirectory)

	resp, err := Load("testdata", []string{"AAPL", "MSFT"})
	require.NoError(t, err)
	require.Len(t, resp["AAPL"], 3)
	require.Len(t, resp["MSFT"], 2)

	first := resp["AAPL"][0]
	assert.Equal(t, "AAPL", first.GetSymbol())
	assert.Equal(t, time.Date(2020, 1, 2, 0, 0, 0, 0, time.UTC), first.GetTime())
	assert.True(t, first.Close.Equal(decimal.RequireFromString("75.09")))
	assert.True(t, first.Volume.Equal(decimal.NewFromInt(135480400)))

	// columns are matched by header name, not position
	assert.True(t, resp["MSFT"][0].Open.Equal(decimal.RequireFromString("158.32")))

	_, err = Load("testdata", []string{"NOPE"})
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestParseErrors(t *testing.T) {
	t.Parallel()
	_, err := Parse(strings.NewReader("date,open,high,low,volume\n"), "X")
	assert.ErrorIs(t, err, errMissingColumn)

	_, err = Parse(strings.NewReader("when,open,high,low,close,volume\n"), "X")
	assert.ErrorIs(t, err, errMissingColumn)

	_, err = Parse(strings.NewReader("date,open,high,low,close,volume\nyesterday,1,1,1,1,1\n"), "X")
	assert.ErrorIs(t, err, errInvalidTimeData)

	_, err = Parse(strings.NewReader("date,open,high,low,close,volume\n2020-01-01,1,1,1\n"), "X")
	assert.ErrorIs(t, err, errRowLength)

	_, err = Parse(strings.NewReader("date,open,high,low,close,volume\n2020-01-01,1,1,1,abc,1\n"), "X")
	assert.Error(t, err)
}

func TestParseTimeFormats(t *testing.T) {
	t.Parallel()
	for _, in := range []string{"2020-01-02T00:00:00Z", "2020-01-02 00:00:00", "2020-01-02"} {
		tt, err := parseTime(in)
		require.NoError(t, err, in)
		assert.Equal(t, time.Date(2020, 1, 2, 0, 0, 0, 0, time.UTC), tt, in)
	}
}
