package holdings

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	// ErrInitialFundsZero is returned when a portfolio is started without capital
	ErrInitialFundsZero = errors.New("initial funds must be greater than zero")

	errSymbolMismatch     = errors.New("fill symbol does not match holding")
	errSnapshotNotFound   = errors.New("snapshot not found")
	errSnapshotOutOfOrder = errors.New("snapshot is older than the latest snapshot")
)

// Holding tracks a single symbol's position. PositionsSize is signed, a
// negative size is a short position
type Holding struct {
	Symbol         string
	Timestamp      time.Time
	PositionsSize  decimal.Decimal
	PositionsValue decimal.Decimal
	LatestPrice    decimal.Decimal
	BoughtAmount   decimal.Decimal
	BoughtValue    decimal.Decimal
	SoldAmount     decimal.Decimal
	SoldValue      decimal.Decimal
	TotalFees      decimal.Decimal
	// PositionsValueDifference is the mark to market change of the last update
	PositionsValueDifference decimal.Decimal
}

// Snapshot is the portfolio's equity at a point in time
type Snapshot struct {
	Time        time.Time       `json:"time"`
	Cash        decimal.Decimal `json:"cash"`
	MarketValue decimal.Decimal `json:"market-value"`
	Commission  decimal.Decimal `json:"commission"`
	Total       decimal.Decimal `json:"total"`
}

// Manager keeps one snapshot per timestamp, oldest first
type Manager struct {
	Snapshots []Snapshot
}
