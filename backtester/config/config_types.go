package config

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"github.com/thrasher-corp/eventbacktester/database"
	"github.com/thrasher-corp/eventbacktester/log"
)

// Data sources
const (
	CSVSource      = "csv"
	DatabaseSource = "database"
)

// Environment variables applied over a loaded config
const (
	EnvCSVDir     = "BACKTESTER_CSV_DIR"
	EnvHeartbeat  = "BACKTESTER_HEARTBEAT"
	EnvDBHost     = "BACKTESTER_DB_HOST"
	EnvDBUser     = "BACKTESTER_DB_USER"
	EnvDBPassword = "BACKTESTER_DB_PASSWORD"
	EnvDBName     = "BACKTESTER_DB_NAME"
)

// Validation errors
var (
	ErrNoSymbols               = errors.New("no symbols configured")
	ErrDuplicateSymbol         = errors.New("duplicate symbol")
	ErrBadInitialCapital       = errors.New("initial capital must be greater than zero")
	ErrNegativeHeartbeat       = errors.New("heartbeat cannot be negative")
	ErrStartDateUnset          = errors.New("start date unset")
	ErrUnknownDataSource       = errors.New("unknown data source")
	ErrNoCSVDirectory          = errors.New("csv data source requires csv-dir")
	ErrNoDatabaseSettings      = errors.New("database data source requires database settings")
	ErrBadOrderQuantity        = errors.New("order quantity must be greater than zero")
	ErrNegativeLimitOffset     = errors.New("limit offset cannot be negative")
	ErrNegativeExchangeSetting = errors.New("exchange setting cannot be negative")
	ErrBadCommissionRate       = errors.New("maximum commission rate must be between 0 and 1")
	ErrBadPeriodsPerYear       = errors.New("periods per year must be greater than zero")

	errFileNotFound = errors.New("file not found")
	errNilConfig    = errors.New("nil config")
)

// Config defines what is in an individual backtest run
type Config struct {
	Nickname          string            `json:"nickname" yaml:"nickname"`
	Goal              string            `json:"goal" yaml:"goal"`
	Symbols           []string          `json:"symbols" yaml:"symbols"`
	InitialCapital    decimal.Decimal   `json:"initial-capital" yaml:"initial-capital"`
	Heartbeat         time.Duration     `json:"heartbeat" yaml:"heartbeat"`
	StartDate         time.Time         `json:"start-date" yaml:"start-date"`
	EndDate           time.Time         `json:"end-date,omitempty" yaml:"end-date,omitempty"`
	DataSettings      DataSettings      `json:"data-settings" yaml:"data-settings"`
	StrategySettings  StrategySettings  `json:"strategy-settings" yaml:"strategy-settings"`
	PortfolioSettings PortfolioSettings `json:"portfolio-settings" yaml:"portfolio-settings"`
	ExchangeSettings  ExchangeSettings  `json:"exchange-settings" yaml:"exchange-settings"`
	StatisticSettings StatisticSettings `json:"statistic-settings" yaml:"statistic-settings"`
	Logging           *log.Config       `json:"logging,omitempty" yaml:"logging,omitempty"`
}

// DataSettings is where bars are loaded from
type DataSettings struct {
	Source   string           `json:"source" yaml:"source"`
	CSVDir   string           `json:"csv-dir,omitempty" yaml:"csv-dir,omitempty"`
	Database *database.Config `json:"database,omitempty" yaml:"database,omitempty"`
}

// StrategySettings contains what strategy to load and its custom settings
type StrategySettings struct {
	Name           string         `json:"name" yaml:"name"`
	CustomSettings map[string]any `json:"custom-settings,omitempty" yaml:"custom-settings,omitempty"`
}

// PortfolioSettings controls how signals are turned into orders
type PortfolioSettings struct {
	OrderQuantity  decimal.Decimal `json:"order-quantity" yaml:"order-quantity"`
	OrderType      string          `json:"order-type" yaml:"order-type"`
	LimitOffsetBPS decimal.Decimal `json:"limit-offset-bps" yaml:"limit-offset-bps"`
}

// ExchangeSettings controls the simulated exchange's commission and slippage.
// Commission fields are nil when absent from the config, so an explicit zero
// survives SetDefaults
type ExchangeSettings struct {
	ExchangeName          string           `json:"exchange-name" yaml:"exchange-name"`
	CommissionPerUnit     *decimal.Decimal `json:"commission-per-unit,omitempty" yaml:"commission-per-unit,omitempty"`
	BulkQuantity          *decimal.Decimal `json:"bulk-quantity,omitempty" yaml:"bulk-quantity,omitempty"`
	BulkCommissionPerUnit *decimal.Decimal `json:"bulk-commission-per-unit,omitempty" yaml:"bulk-commission-per-unit,omitempty"`
	MinimumCommission     *decimal.Decimal `json:"minimum-commission,omitempty" yaml:"minimum-commission,omitempty"`
	MaximumCommissionRate *decimal.Decimal `json:"maximum-commission-rate,omitempty" yaml:"maximum-commission-rate,omitempty"`
	SlippageBPS           decimal.Decimal  `json:"slippage-bps" yaml:"slippage-bps"`
	DisableCommission     bool             `json:"disable-commission" yaml:"disable-commission"`
}

// StatisticSettings adjusts the reporting ratios
type StatisticSettings struct {
	RiskFreeRate   decimal.Decimal `json:"risk-free-rate" yaml:"risk-free-rate"`
	PeriodsPerYear int             `json:"periods-per-year" yaml:"periods-per-year"`
}
