package database

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gctdatabase "github.com/thrasher-corp/eventbacktester/database"
	sqlite "github.com/thrasher-corp/eventbacktester/database/drivers/sqlite3"
	"github.com/thrasher-corp/eventbacktester/database/repository/candle"
)

func TestLoad(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	_, err := Load(ctx, nil, []string{"AAPL"}, time.Time{}, time.Time{})
	assert.ErrorIs(t, err, errNoStartDate)

	inst, err := sqlite.Connect(filepath.Join(t.TempDir(), "load.db"))
	require.NoError(t, err)
	defer func() {
		assert.NoError(t, inst.CloseConnection())
	}()
	require.NoError(t, gctdatabase.Migrate(inst, "up", filepath.Join("..", "..", "..", "..", "database", "migrations"), ""))

	start := time.Date(2021, 6, 1, 0, 0, 0, 0, time.UTC)
	one := decimal.NewFromInt(1)
	_, err = candle.Insert(ctx, inst,
		candle.Candle{Symbol: "AAPL", Timestamp: start, Open: one, High: one, Low: one, Close: one, Volume: one},
		candle.Candle{Symbol: "AAPL", Timestamp: start.AddDate(0, 0, 1), Open: one, High: one, Low: one, Close: decimal.NewFromInt(2), Volume: one},
	)
	require.NoError(t, err)

	bars, err := Load(ctx, inst, []string{"AAPL"}, start, time.Time{})
	require.NoError(t, err)
	require.Len(t, bars["AAPL"], 2)
	assert.Equal(t, "AAPL", bars["AAPL"][1].GetSymbol())
	assert.True(t, bars["AAPL"][1].Close.Equal(decimal.NewFromInt(2)))

	_, err = Load(ctx, inst, []string{"MSFT"}, start, time.Time{})
	assert.ErrorIs(t, err, candle.ErrNoCandleDataFound)
}
