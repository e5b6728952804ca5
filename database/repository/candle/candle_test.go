package candle

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thrasher-corp/eventbacktester/database"
	sqlite "github.com/thrasher-corp/eventbacktester/database/drivers/sqlite3"
)

func seedDB(t *testing.T) *database.Instance {
	t.Helper()
	inst, err := sqlite.Connect(filepath.Join(t.TempDir(), "candle.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, inst.CloseConnection())
	})
	require.NoError(t, database.Migrate(inst, "up", filepath.Join("..", "..", "migrations"), ""))
	return inst
}

func testCandle(symbol string, day int, closePrice string) Candle {
	c := decimal.RequireFromString(closePrice)
	return Candle{
		Symbol:    symbol,
		Timestamp: time.Date(2020, 1, 1+day, 0, 0, 0, 0, time.UTC),
		Open:      c,
		High:      c.Add(decimal.NewFromInt(1)),
		Low:       c.Sub(decimal.NewFromInt(1)),
		Close:     c,
		Volume:    decimal.NewFromInt(1000),
	}
}

func TestInsertAndSeries(t *testing.T) {
	t.Parallel()
	inst := seedDB(t)
	ctx := context.Background()

	_, err := Insert(ctx, inst)
	assert.ErrorIs(t, err, errNoCandleData)

	n, err := Insert(ctx, inst,
		testCandle("aapl", 1, "10.5"),
		testCandle("AAPL", 0, "10.25"),
		testCandle("MSFT", 0, "200"))
	require.NoError(t, err)
	assert.EqualValues(t, 3, n)

	start := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)
	got, err := Series(ctx, inst, "aapl", start, end)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "AAPL", got[0].Symbol)
	assert.Equal(t, start, got[0].Timestamp)
	assert.True(t, got[0].Close.Equal(decimal.RequireFromString("10.25")))
	assert.True(t, got[1].High.Equal(decimal.RequireFromString("11.5")))

	// same symbol and timestamp replaces the row
	_, err = Insert(ctx, inst, testCandle("AAPL", 0, "11"))
	require.NoError(t, err)
	got, err = Series(ctx, inst, "AAPL", start, end)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.True(t, got[0].Close.Equal(decimal.NewFromInt(11)))

	_, err = Series(ctx, inst, "TSLA", start, end)
	assert.ErrorIs(t, err, ErrNoCandleDataFound)
}

func TestInvalidInput(t *testing.T) {
	t.Parallel()
	inst := seedDB(t)
	ctx := context.Background()
	_, err := Series(ctx, inst, "", time.Now(), time.Now())
	assert.ErrorIs(t, err, errInvalidInput)
	_, err = Insert(ctx, inst, Candle{Symbol: "AAPL"})
	assert.ErrorIs(t, err, errInvalidInput)

	unconnected, err := database.NewInstance(&database.Config{Driver: database.DBSQLite3})
	require.NoError(t, err)
	_, err = Series(ctx, unconnected, "AAPL", time.Now(), time.Now())
	assert.ErrorIs(t, err, database.ErrDatabaseNotConnected)
}
