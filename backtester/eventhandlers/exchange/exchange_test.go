package exchange

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thrasher-corp/eventbacktester/backtester/common"
	"github.com/thrasher-corp/eventbacktester/backtester/data"
	"github.com/thrasher-corp/eventbacktester/backtester/eventhandlers/eventholder"
	"github.com/thrasher-corp/eventbacktester/backtester/eventtypes/fill"
	"github.com/thrasher-corp/eventbacktester/backtester/eventtypes/kline"
	"github.com/thrasher-corp/eventbacktester/backtester/eventtypes/order"
)

const testExchange = "SIMULATED"

var tt = time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)

func d(f float64) decimal.Decimal {
	return decimal.NewFromFloat(f)
}

func defaultSettings() Settings {
	return Settings{
		ExchangeName:          testExchange,
		CommissionPerUnit:     d(0.013),
		BulkQuantity:          d(500),
		BulkCommissionPerUnit: d(0.008),
		MinimumCommission:     d(1.3),
		MaximumCommissionRate: d(0.005),
	}
}

// setup releases one AAPL bar with open 100, high 105, low 95 and close 100
func setup(t *testing.T, s Settings) (*Exchange, *eventholder.Holder) {
	t.Helper()
	return setupBar(t, s, kline.New("AAPL", tt, d(100), d(105), d(95), d(100), d(1000)))
}

func setupBar(t *testing.T, s Settings, bar kline.Kline) (*Exchange, *eventholder.Holder) {
	t.Helper()
	stream, err := data.NewStream([]string{"AAPL"}, map[string][]kline.Kline{
		"AAPL": {bar},
	}, time.Time{})
	require.NoError(t, err)
	_, err = stream.NextBar()
	require.NoError(t, err)
	q := eventholder.New()
	e, err := Setup(s, stream, q)
	require.NoError(t, err)
	return e, q
}

func popFill(t *testing.T, q *eventholder.Holder) fill.Fill {
	t.Helper()
	ev, ok := q.NextEvent()
	require.True(t, ok, "expected a fill")
	f, ok := ev.(fill.Fill)
	require.True(t, ok)
	return f
}

func TestSetup(t *testing.T) {
	t.Parallel()
	stream, err := data.NewStream([]string{"AAPL"}, nil, time.Time{})
	require.NoError(t, err)
	q := eventholder.New()
	_, err = Setup(defaultSettings(), nil, q)
	assert.ErrorIs(t, err, common.ErrNilArguments)
	_, err = Setup(defaultSettings(), stream, nil)
	assert.ErrorIs(t, err, common.ErrNilArguments)
	_, err = Setup(Settings{}, stream, q)
	assert.ErrorIs(t, err, errNoExchangeName)
	s := defaultSettings()
	s.SlippageBPS = d(-1)
	_, err = Setup(s, stream, q)
	assert.ErrorIs(t, err, errNegativeSetting)

	e, err := Setup(defaultSettings(), stream, q)
	require.NoError(t, err)
	assert.Equal(t, testExchange, e.GetSettings().ExchangeName)
}

func TestCalculateCommission(t *testing.T) {
	t.Parallel()
	e, _ := setup(t, defaultSettings())
	for _, tc := range []struct {
		name     string
		qty      float64
		price    float64
		expected float64
	}{
		{"minimum applies", 10, 100, 1.3},
		{"per unit", 200, 100, 2.6},
		{"bulk rate", 1000, 100, 8},
		{"capped by value", 100, 1, 0.5},
	} {
		got := e.CalculateCommission(d(tc.qty), d(tc.price))
		assert.True(t, got.Equal(d(tc.expected)), "%v: %v", tc.name, got)
	}

	free, _ := setup(t, Settings{ExchangeName: testExchange})
	assert.True(t, free.CalculateCommission(d(100), d(100)).IsZero())
}

func TestOnOrderMarket(t *testing.T) {
	t.Parallel()
	e, q := setup(t, defaultSettings())
	o := order.NewMarket("AAPL", tt, common.Buy, d(200), "test")
	require.NoError(t, e.OnOrder(o))
	f := popFill(t, q)
	assert.Equal(t, o.GetID(), f.GetOrderID())
	assert.Equal(t, tt, f.GetTime())
	assert.Equal(t, common.Buy, f.GetSide())
	assert.True(t, f.GetPrice().Equal(d(100)))
	assert.True(t, f.GetQuantity().Equal(d(200)))
	assert.True(t, f.GetCommission().Equal(d(2.6)))
	assert.Equal(t, testExchange, f.GetExchange())
}

func TestOnOrderSlippage(t *testing.T) {
	t.Parallel()
	s := defaultSettings()
	s.SlippageBPS = d(100)
	e, q := setup(t, s)
	require.NoError(t, e.OnOrder(order.NewMarket("AAPL", tt, common.Buy, d(1), "")))
	assert.True(t, popFill(t, q).GetPrice().Equal(d(101)))
	require.NoError(t, e.OnOrder(order.NewMarket("AAPL", tt, common.Sell, d(1), "")))
	assert.True(t, popFill(t, q).GetPrice().Equal(d(99)))

	s.SlippageBPS = d(1000)
	e, q = setup(t, s)
	require.NoError(t, e.OnOrder(order.NewMarket("AAPL", tt, common.Buy, d(1), "")))
	assert.True(t, popFill(t, q).GetPrice().Equal(d(105)), "slipped price stays within the bar")
}

func TestOnOrderLimit(t *testing.T) {
	t.Parallel()
	e, q := setup(t, defaultSettings())
	for _, tc := range []struct {
		name   string
		side   common.Side
		limit  float64
		filled bool
		price  float64
	}{
		{"buy above close fills at close", common.Buy, 102, true, 100},
		{"buy within range fills at limit", common.Buy, 97, true, 97},
		{"buy below low", common.Buy, 90, false, 0},
		{"sell below close fills at close", common.Sell, 98, true, 100},
		{"sell within range fills at limit", common.Sell, 104, true, 104},
		{"sell above high", common.Sell, 110, false, 0},
	} {
		require.NoError(t, e.OnOrder(order.NewLimit("AAPL", tt, tc.side, d(10), d(tc.limit), "")), tc.name)
		if !tc.filled {
			assert.Zero(t, q.Len(), tc.name)
			continue
		}
		f := popFill(t, q)
		assert.True(t, f.GetPrice().Equal(d(tc.price)), "%v: %v", tc.name, f.GetPrice())
	}

	err := e.OnOrder(order.NewLimit("AAPL", tt, common.Buy, d(10), decimal.Zero, ""))
	assert.ErrorIs(t, err, errInvalidLimitPrice)
}

func TestOnOrderLimitSlippageStaysWithinBar(t *testing.T) {
	t.Parallel()
	s := defaultSettings()
	s.SlippageBPS = d(100)

	// close at the high
	e, q := setupBar(t, s, kline.New("AAPL", tt, d(98), d(100), d(95), d(100), d(1000)))
	require.NoError(t, e.OnOrder(order.NewLimit("AAPL", tt, common.Buy, d(1), d(105), "")))
	assert.True(t, popFill(t, q).GetPrice().Equal(d(100)), "limit buy cannot fill above the high")
	require.NoError(t, e.OnOrder(order.NewMarket("AAPL", tt, common.Buy, d(1), "")))
	assert.True(t, popFill(t, q).GetPrice().Equal(d(100)))

	// close at the low
	e, q = setupBar(t, s, kline.New("AAPL", tt, d(98), d(100), d(95), d(95), d(1000)))
	require.NoError(t, e.OnOrder(order.NewLimit("AAPL", tt, common.Sell, d(1), d(90), "")))
	assert.True(t, popFill(t, q).GetPrice().Equal(d(95)), "limit sell cannot fill below the low")
}

func TestOnOrderErrors(t *testing.T) {
	t.Parallel()
	e, q := setup(t, defaultSettings())
	err := e.OnOrder(order.NewMarket("AAPL", tt, common.Buy, decimal.Zero, ""))
	assert.ErrorIs(t, err, errNonPositiveQuantity)

	err = e.OnOrder(order.NewMarket("AAPL", tt, common.Side("HOLD"), d(1), ""))
	assert.ErrorIs(t, err, common.ErrInvalidSide)

	err = e.OnOrder(order.NewMarket("MSFT", tt, common.Buy, d(1), ""))
	assert.ErrorIs(t, err, errCannotPrice)
	assert.ErrorIs(t, err, data.ErrNoDataForSymbol)

	o := order.NewMarket("AAPL", tt, common.Buy, d(1), "")
	o.Type = "STOP"
	assert.ErrorIs(t, e.OnOrder(o), common.ErrInvalidOrderType)
	assert.Zero(t, q.Len())
}
