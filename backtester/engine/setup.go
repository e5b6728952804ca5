package engine

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gofrs/uuid"
	"github.com/thrasher-corp/eventbacktester/backtester/common"
	"github.com/thrasher-corp/eventbacktester/backtester/config"
	"github.com/thrasher-corp/eventbacktester/backtester/data"
	"github.com/thrasher-corp/eventbacktester/backtester/data/kline/csv"
	dbkline "github.com/thrasher-corp/eventbacktester/backtester/data/kline/database"
	"github.com/thrasher-corp/eventbacktester/backtester/eventhandlers/eventholder"
	"github.com/thrasher-corp/eventbacktester/backtester/eventhandlers/exchange"
	"github.com/thrasher-corp/eventbacktester/backtester/eventhandlers/portfolio"
	"github.com/thrasher-corp/eventbacktester/backtester/eventhandlers/portfolio/size"
	"github.com/thrasher-corp/eventbacktester/backtester/eventhandlers/strategies"
	"github.com/thrasher-corp/eventbacktester/backtester/eventtypes/kline"
	"github.com/thrasher-corp/eventbacktester/database/drivers"
	"github.com/thrasher-corp/eventbacktester/log"
)

// NewFromConfig takes a strategy config and configures a backtester with the
// default collaborators
func NewFromConfig(cfg *config.Config) (*BackTest, error) {
	return New(cfg, LoadData, LoadStrategy, SetupPortfolio, SetupExchange)
}

// New validates the config and builds a backtester from the given factories.
// The backtester keeps its own copy of the config
func New(cfg *config.Config, dataFactory DataSourceFactory, strategyFactory StrategyFactory, portfolioFactory PortfolioFactory, executionFactory ExecutionFactory) (*BackTest, error) {
	log.Infoln(common.SubLoggers[common.Setup], "loading config...")
	if cfg == nil {
		return nil, errNilConfig
	}
	if dataFactory == nil || strategyFactory == nil || portfolioFactory == nil || executionFactory == nil {
		return nil, errNilFactory
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	runID, err := uuid.NewV4()
	if err != nil {
		return nil, err
	}
	bt := &BackTest{
		runID: runID,
		cfg:   cfg.Clone(),
		queue: eventholder.New(),
		state: Advancing,
	}

	log.Infof(common.SubLoggers[common.Setup], "loading %v data for %v...", bt.cfg.DataSettings.Source, strings.Join(bt.cfg.Symbols, ", "))
	bt.data, err = dataFactory(bt.cfg)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", dataSourceName, err)
	}
	if bt.data == nil {
		return nil, fmt.Errorf("%v: %w", dataSourceName, errNilCollaborator)
	}
	bt.strategy, err = strategyFactory(bt.cfg, bt.data, bt.queue)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", strategyName, err)
	}
	if bt.strategy == nil {
		return nil, fmt.Errorf("%v: %w", strategyName, errNilCollaborator)
	}
	bt.portfolio, err = portfolioFactory(bt.cfg, bt.data, bt.queue)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", portfolioName, err)
	}
	if bt.portfolio == nil {
		return nil, fmt.Errorf("%v: %w", portfolioName, errNilCollaborator)
	}
	bt.exchange, err = executionFactory(bt.cfg, bt.data, bt.queue)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", exchangeName, err)
	}
	if bt.exchange == nil {
		return nil, fmt.Errorf("%v: %w", exchangeName, errNilCollaborator)
	}
	bt.clock, err = NewClock(bt.data, bt.queue, bt.cfg.Heartbeat)
	if err != nil {
		return nil, err
	}
	log.Infof(common.SubLoggers[common.Setup], "backtest %v ready with strategy %v", bt.runID, bt.strategy.Name())
	return bt, nil
}

// LoadData loads bars from the configured csv directory or database and
// streams them from the start date. Bars after a set end date are dropped
func LoadData(cfg *config.Config) (data.Handler, error) {
	var (
		bars map[string][]kline.Kline
		err  error
	)
	switch strings.ToLower(cfg.DataSettings.Source) {
	case config.CSVSource:
		bars, err = csv.Load(cfg.DataSettings.CSVDir, cfg.Symbols)
	case config.DatabaseSource:
		bars, err = loadDatabaseData(cfg)
	default:
		return nil, fmt.Errorf("%w '%v'", config.ErrUnknownDataSource, cfg.DataSettings.Source)
	}
	if err != nil {
		return nil, err
	}
	if !cfg.EndDate.IsZero() {
		for sym := range bars {
			bars[sym] = dropAfter(bars[sym], cfg.EndDate)
		}
	}
	stream, err := data.NewStream(cfg.Symbols, bars, cfg.StartDate)
	if err != nil {
		return nil, err
	}
	log.Infof(common.SubLoggers[common.Data], "loaded %v bars for %v symbols", stream.Len(), len(cfg.Symbols))
	return stream, nil
}

func loadDatabaseData(cfg *config.Config) (map[string][]kline.Kline, error) {
	inst, err := drivers.Connect(cfg.DataSettings.Database)
	if err != nil {
		return nil, err
	}
	defer func() {
		if closeErr := inst.CloseConnection(); closeErr != nil {
			log.Errorln(common.SubLoggers[common.Database], closeErr)
		}
	}()
	return dbkline.Load(context.Background(), inst, cfg.Symbols, cfg.StartDate, cfg.EndDate)
}

func dropAfter(bars []kline.Kline, end time.Time) []kline.Kline {
	resp := make([]kline.Kline, 0, len(bars))
	for i := range bars {
		if bars[i].Time.After(end) {
			continue
		}
		resp = append(resp, bars[i])
	}
	return resp
}

// LoadStrategy loads the configured strategy from the registry and applies
// its custom settings
func LoadStrategy(cfg *config.Config, streamer data.Streamer, appender eventholder.Appender) (strategies.Handler, error) {
	strat, err := strategies.LoadStrategyByName(cfg.StrategySettings.Name)
	if err != nil {
		return nil, err
	}
	if err = strat.SetCustomSettings(cfg.StrategySettings.CustomSettings); err != nil {
		return nil, err
	}
	if err = strat.Setup(streamer, appender); err != nil {
		return nil, err
	}
	log.Infof(common.SubLoggers[common.Strategy], "loaded strategy %v: %v", strat.Name(), strat.Description())
	return strat, nil
}

// SetupPortfolio creates the simulated portfolio from the config
func SetupPortfolio(cfg *config.Config, streamer data.Streamer, appender eventholder.Appender) (portfolio.Handler, error) {
	orderType, err := common.ParseOrderType(cfg.PortfolioSettings.OrderType)
	if err != nil {
		return nil, err
	}
	return portfolio.Setup(portfolio.Settings{
		InitialCapital: cfg.InitialCapital,
		OrderType:      orderType,
		LimitOffsetBPS: cfg.PortfolioSettings.LimitOffsetBPS,
		RiskFreeRate:   cfg.StatisticSettings.RiskFreeRate,
		PeriodsPerYear: cfg.StatisticSettings.PeriodsPerYear,
	}, &size.Size{
		OrderQuantity: cfg.PortfolioSettings.OrderQuantity,
	}, streamer, appender)
}

// SetupExchange creates the simulated exchange from the config. Disabling
// commission zeroes every commission setting
func SetupExchange(cfg *config.Config, streamer data.Streamer, appender eventholder.Appender) (exchange.ExecutionHandler, error) {
	s := exchange.Settings{
		ExchangeName: cfg.ExchangeSettings.ExchangeName,
		SlippageBPS:  cfg.ExchangeSettings.SlippageBPS,
	}
	if !cfg.ExchangeSettings.DisableCommission {
		s.CommissionPerUnit = config.DecimalOrZero(cfg.ExchangeSettings.CommissionPerUnit)
		s.BulkQuantity = config.DecimalOrZero(cfg.ExchangeSettings.BulkQuantity)
		s.BulkCommissionPerUnit = config.DecimalOrZero(cfg.ExchangeSettings.BulkCommissionPerUnit)
		s.MinimumCommission = config.DecimalOrZero(cfg.ExchangeSettings.MinimumCommission)
		s.MaximumCommissionRate = config.DecimalOrZero(cfg.ExchangeSettings.MaximumCommissionRate)
	}
	return exchange.Setup(s, streamer, appender)
}
