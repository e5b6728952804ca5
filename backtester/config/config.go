package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/thrasher-corp/eventbacktester/backtester/common"
	"github.com/thrasher-corp/eventbacktester/backtester/eventhandlers/strategies"
	"github.com/thrasher-corp/eventbacktester/database"
	"github.com/thrasher-corp/eventbacktester/log"
	"gopkg.in/yaml.v3"
)

// ReadConfigFromFile will take a config from a path. Files ending in .yaml or
// .yml are read as YAML, anything else as JSON. A .env file in the working
// directory is loaded first and the BACKTESTER_* variables override the file
func ReadConfigFromFile(path string) (*Config, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%w %v: %v", errFileNotFound, path, err)
	}
	fileData, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var resp *Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		resp, err = LoadYAMLConfig(fileData)
	default:
		resp, err = LoadConfig(fileData)
	}
	if err != nil {
		return nil, fmt.Errorf("%v: %w", path, err)
	}
	if err = LoadEnv(); err != nil {
		return nil, err
	}
	if err = resp.ApplyEnvOverrides(); err != nil {
		return nil, err
	}
	resp.SetDefaults()
	return resp, nil
}

// LoadConfig unmarshalls JSON byte data into a config struct
func LoadConfig(data []byte) (resp *Config, err error) {
	err = json.Unmarshal(data, &resp)
	if err == nil && resp == nil {
		err = errNilConfig
	}
	return resp, err
}

// LoadYAMLConfig unmarshalls YAML byte data into a config struct
func LoadYAMLConfig(data []byte) (resp *Config, err error) {
	err = yaml.Unmarshal(data, &resp)
	if err == nil && resp == nil {
		err = errNilConfig
	}
	return resp, err
}

// LoadEnv loads the given .env files, or .env in the working directory when
// none are given. A missing file is not an error
func LoadEnv(paths ...string) error {
	err := godotenv.Load(paths...)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// ApplyEnvOverrides replaces config values with any BACKTESTER_* environment variables set
func (c *Config) ApplyEnvOverrides() error {
	if v := os.Getenv(EnvCSVDir); v != "" {
		c.DataSettings.CSVDir = v
	}
	if v := os.Getenv(EnvHeartbeat); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%v: %w", EnvHeartbeat, err)
		}
		c.Heartbeat = d
	}
	dbOverrides := map[string]func(*database.Config, string){
		EnvDBHost:     func(d *database.Config, v string) { d.Host = v },
		EnvDBUser:     func(d *database.Config, v string) { d.Username = v },
		EnvDBPassword: func(d *database.Config, v string) { d.Password = v },
		EnvDBName:     func(d *database.Config, v string) { d.Database = v },
	}
	for key, apply := range dbOverrides {
		v := os.Getenv(key)
		if v == "" {
			continue
		}
		if c.DataSettings.Database == nil {
			c.DataSettings.Database = &database.Config{}
		}
		apply(c.DataSettings.Database, v)
	}
	return nil
}

// SetDefaults fills every unset optional value
func (c *Config) SetDefaults() {
	if c.DataSettings.Source == "" {
		c.DataSettings.Source = CSVSource
	}
	c.DataSettings.Source = strings.ToLower(c.DataSettings.Source)
	if c.PortfolioSettings.OrderQuantity.IsZero() {
		c.PortfolioSettings.OrderQuantity = decimal.NewFromInt(100)
	}
	if c.PortfolioSettings.OrderType == "" {
		c.PortfolioSettings.OrderType = string(common.MarketOrder)
	}
	e := &c.ExchangeSettings
	if e.ExchangeName == "" {
		e.ExchangeName = "SIMULATED"
	}
	if !e.DisableCommission {
		defaultDecimal(&e.CommissionPerUnit, decimal.NewFromFloat(0.013))
		defaultDecimal(&e.BulkQuantity, decimal.NewFromInt(500))
		defaultDecimal(&e.BulkCommissionPerUnit, decimal.NewFromFloat(0.008))
		defaultDecimal(&e.MinimumCommission, decimal.NewFromFloat(1.3))
		defaultDecimal(&e.MaximumCommissionRate, decimal.NewFromFloat(0.005))
	}
	if c.StatisticSettings.PeriodsPerYear == 0 {
		c.StatisticSettings.PeriodsPerYear = 252
	}
}

// Validate checks all config settings
func (c *Config) Validate() error {
	if c == nil {
		return errNilConfig
	}
	if err := c.validateSymbols(); err != nil {
		return err
	}
	if !c.InitialCapital.IsPositive() {
		return fmt.Errorf("%w, received %v", ErrBadInitialCapital, c.InitialCapital)
	}
	if c.Heartbeat < 0 {
		return fmt.Errorf("%w, received %v", ErrNegativeHeartbeat, c.Heartbeat)
	}
	if c.StartDate.IsZero() {
		return ErrStartDateUnset
	}
	if err := c.validateDataSettings(); err != nil {
		return err
	}
	if err := c.validateStrategySettings(); err != nil {
		return err
	}
	if err := c.validatePortfolioSettings(); err != nil {
		return err
	}
	if err := c.validateExchangeSettings(); err != nil {
		return err
	}
	if c.StatisticSettings.PeriodsPerYear <= 0 {
		return ErrBadPeriodsPerYear
	}
	return nil
}

func (c *Config) validateSymbols() error {
	if len(c.Symbols) == 0 {
		return ErrNoSymbols
	}
	seen := make(map[string]struct{}, len(c.Symbols))
	for i := range c.Symbols {
		sym := strings.TrimSpace(c.Symbols[i])
		if sym == "" {
			return fmt.Errorf("%w: empty symbol at index %d", ErrNoSymbols, i)
		}
		if _, ok := seen[sym]; ok {
			return fmt.Errorf("%w %v", ErrDuplicateSymbol, sym)
		}
		seen[sym] = struct{}{}
	}
	return nil
}

func (c *Config) validateDataSettings() error {
	switch strings.ToLower(c.DataSettings.Source) {
	case CSVSource:
		if c.DataSettings.CSVDir == "" {
			return ErrNoCSVDirectory
		}
	case DatabaseSource:
		if c.DataSettings.Database == nil || c.DataSettings.Database.Database == "" {
			return ErrNoDatabaseSettings
		}
		if database.SQLDialect(c.DataSettings.Database.Driver) == database.DBInvalidDriver {
			return fmt.Errorf("%w: %q", database.ErrUnsupportedDriver, c.DataSettings.Database.Driver)
		}
	default:
		return fmt.Errorf("%w '%v'", ErrUnknownDataSource, c.DataSettings.Source)
	}
	return nil
}

func (c *Config) validateStrategySettings() error {
	strat, err := strategies.LoadStrategyByName(c.StrategySettings.Name)
	if err != nil {
		return err
	}
	return strat.SetCustomSettings(c.StrategySettings.CustomSettings)
}

func (c *Config) validatePortfolioSettings() error {
	if !c.PortfolioSettings.OrderQuantity.IsPositive() {
		return fmt.Errorf("%w, received %v", ErrBadOrderQuantity, c.PortfolioSettings.OrderQuantity)
	}
	if _, err := common.ParseOrderType(c.PortfolioSettings.OrderType); err != nil {
		return err
	}
	if c.PortfolioSettings.LimitOffsetBPS.IsNegative() {
		return ErrNegativeLimitOffset
	}
	return nil
}

func (c *Config) validateExchangeSettings() error {
	e := c.ExchangeSettings
	for name, v := range map[string]decimal.Decimal{
		"commission-per-unit":      DecimalOrZero(e.CommissionPerUnit),
		"bulk-quantity":            DecimalOrZero(e.BulkQuantity),
		"bulk-commission-per-unit": DecimalOrZero(e.BulkCommissionPerUnit),
		"minimum-commission":       DecimalOrZero(e.MinimumCommission),
		"slippage-bps":             e.SlippageBPS,
	} {
		if v.IsNegative() {
			return fmt.Errorf("%w: %v %v", ErrNegativeExchangeSetting, name, v)
		}
	}
	rate := DecimalOrZero(e.MaximumCommissionRate)
	if rate.IsNegative() || rate.GreaterThan(decimal.NewFromInt(1)) {
		return fmt.Errorf("%w, received %v", ErrBadCommissionRate, rate)
	}
	return nil
}

// Clone returns a deep copy so a run can never see later edits to the config
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}
	cpy := *c
	cpy.Symbols = append([]string(nil), c.Symbols...)
	if c.StrategySettings.CustomSettings != nil {
		cpy.StrategySettings.CustomSettings = make(map[string]any, len(c.StrategySettings.CustomSettings))
		for k, v := range c.StrategySettings.CustomSettings {
			cpy.StrategySettings.CustomSettings[k] = v
		}
	}
	if c.DataSettings.Database != nil {
		db := *c.DataSettings.Database
		cpy.DataSettings.Database = &db
	}
	e := &cpy.ExchangeSettings
	for _, d := range []**decimal.Decimal{
		&e.CommissionPerUnit,
		&e.BulkQuantity,
		&e.BulkCommissionPerUnit,
		&e.MinimumCommission,
		&e.MaximumCommissionRate,
	} {
		if *d != nil {
			v := **d
			*d = &v
		}
	}
	if c.Logging != nil {
		l := *c.Logging
		l.SubLoggers = append([]log.SubLoggerConfig(nil), c.Logging.SubLoggers...)
		cpy.Logging = &l
	}
	return &cpy
}

// PrintSetting prints relevant settings to the console for easy reading
func (c *Config) PrintSetting() {
	sl := common.SubLoggers[common.Config]
	log.Info(sl, "------------------Backtester Settings------------------------")
	if c.Nickname != "" {
		log.Infof(sl, "Nickname: %v", c.Nickname)
	}
	if c.Goal != "" {
		log.Infof(sl, "Goal: %v", c.Goal)
	}
	log.Infof(sl, "Symbols: %v", strings.Join(c.Symbols, ", "))
	log.Infof(sl, "Initial capital: %v", c.InitialCapital)
	log.Infof(sl, "Heartbeat: %v", c.Heartbeat)
	log.Infof(sl, "Start date: %v", c.StartDate.Format(time.DateOnly))
	log.Info(sl, "------------------Data Settings------------------------------")
	log.Infof(sl, "Source: %v", c.DataSettings.Source)
	switch strings.ToLower(c.DataSettings.Source) {
	case CSVSource:
		log.Infof(sl, "CSV directory: %v", c.DataSettings.CSVDir)
	case DatabaseSource:
		if c.DataSettings.Database != nil {
			log.Infof(sl, "Database: %v %v@%v/%v",
				c.DataSettings.Database.Driver,
				c.DataSettings.Database.Username,
				c.DataSettings.Database.Host,
				c.DataSettings.Database.Database)
		}
	}
	log.Info(sl, "------------------Strategy Settings--------------------------")
	log.Infof(sl, "Strategy: %s", c.StrategySettings.Name)
	if len(c.StrategySettings.CustomSettings) > 0 {
		log.Info(sl, "Custom strategy variables:")
		for k, v := range c.StrategySettings.CustomSettings {
			log.Infof(sl, "%s: %v", k, v)
		}
	} else {
		log.Info(sl, "Custom strategy variables: unset")
	}
	log.Info(sl, "------------------Portfolio Settings-------------------------")
	log.Infof(sl, "Order quantity: %v", c.PortfolioSettings.OrderQuantity)
	log.Infof(sl, "Order type: %v", c.PortfolioSettings.OrderType)
	if !c.PortfolioSettings.LimitOffsetBPS.IsZero() {
		log.Infof(sl, "Limit offset: %v bps", c.PortfolioSettings.LimitOffsetBPS)
	}
	log.Info(sl, "------------------Exchange Settings--------------------------")
	log.Infof(sl, "Exchange: %v", c.ExchangeSettings.ExchangeName)
	if c.ExchangeSettings.DisableCommission {
		log.Info(sl, "Commission: disabled")
	} else {
		log.Infof(sl, "Commission per unit: %v (%v above %v units)",
			DecimalOrZero(c.ExchangeSettings.CommissionPerUnit),
			DecimalOrZero(c.ExchangeSettings.BulkCommissionPerUnit),
			DecimalOrZero(c.ExchangeSettings.BulkQuantity))
		log.Infof(sl, "Minimum commission: %v", DecimalOrZero(c.ExchangeSettings.MinimumCommission))
		log.Infof(sl, "Maximum commission rate: %v", DecimalOrZero(c.ExchangeSettings.MaximumCommissionRate))
	}
	log.Infof(sl, "Slippage: %v bps", c.ExchangeSettings.SlippageBPS)
	log.Info(sl, "------------------Statistic Settings-------------------------")
	log.Infof(sl, "Risk free rate: %v", c.StatisticSettings.RiskFreeRate)
	log.Infof(sl, "Periods per year: %v", c.StatisticSettings.PeriodsPerYear)
}

// DecimalOrZero returns the value d points to, or zero when d is unset
func DecimalOrZero(d *decimal.Decimal) decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}
	return *d
}

// defaultDecimal sets *d to def only when the setting was absent
func defaultDecimal(d **decimal.Decimal, def decimal.Decimal) {
	if *d == nil {
		*d = &def
	}
}
