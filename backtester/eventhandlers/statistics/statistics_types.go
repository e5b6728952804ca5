package statistics

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"github.com/thrasher-corp/eventbacktester/backtester/eventhandlers/portfolio/holdings"
)

// equityCurveTailLength is how many trailing snapshots a summary keeps
const equityCurveTailLength = 10

var (
	// ErrInitialCapitalZero is returned when statistics are requested without starting capital
	ErrInitialCapitalZero = errors.New("initial capital must be greater than zero")

	errReceivedNoData = errors.New("received no data")
)

// ValueAtTime is an individual iteration of equity at a time
type ValueAtTime struct {
	Time  time.Time       `json:"time"`
	Value decimal.Decimal `json:"value"`
}

// Swing holds a drawdown
type Swing struct {
	Highest          ValueAtTime     `json:"highest"`
	Lowest           ValueAtTime     `json:"lowest"`
	DrawdownPercent  decimal.Decimal `json:"drawdown"`
	IntervalDuration int64           `json:"interval-duration"`
}

// Summary is what a finished run reports about its equity curve
type Summary struct {
	StartDate          time.Time           `json:"start-date"`
	EndDate            time.Time           `json:"end-date"`
	Periods            int                 `json:"periods"`
	InitialCapital     decimal.Decimal     `json:"initial-capital"`
	FinalEquity        decimal.Decimal     `json:"final-equity"`
	TotalReturnPercent decimal.Decimal     `json:"total-return-percent"`
	CAGR               decimal.Decimal     `json:"compound-annual-growth-rate"`
	SharpeRatio        decimal.Decimal     `json:"sharpe-ratio"`
	SortinoRatio       decimal.Decimal     `json:"sortino-ratio"`
	MaxDrawdown        Swing               `json:"max-drawdown"`
	LongestDrawdown    int64               `json:"longest-drawdown-periods"`
	TotalCommission    decimal.Decimal     `json:"total-commission"`
	RiskFreeRate       decimal.Decimal     `json:"risk-free-rate"`
	EquityCurveTail    []holdings.Snapshot `json:"equity-curve-tail"`
}
