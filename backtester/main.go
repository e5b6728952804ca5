package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/thrasher-corp/eventbacktester/backtester/common"
	"github.com/thrasher-corp/eventbacktester/backtester/config"
	"github.com/thrasher-corp/eventbacktester/backtester/engine"
	"github.com/thrasher-corp/eventbacktester/backtester/eventhandlers/strategies"
	"github.com/thrasher-corp/eventbacktester/backtester/report"
	"github.com/thrasher-corp/eventbacktester/database"
	"github.com/thrasher-corp/eventbacktester/database/drivers"
	"github.com/thrasher-corp/eventbacktester/log"
	"github.com/thrasher-corp/eventbacktester/signaler"
	"github.com/urfave/cli/v2"
)

const debugLevels = "DEBUG|INFO|WARN|ERROR"

var (
	configPath   string
	verbose      bool
	jsonOutput   bool
	heartbeat    time.Duration
	migrateCmd   string
	migrationDir string
	migrateArgs  string

	errInterrupted = errors.New("backtest interrupted")
	errNoDatabase  = errors.New("config has no database settings")
)

var configPathFlag = &cli.StringFlag{
	Name:        "configpath",
	Aliases:     []string{"c"},
	Usage:       "the config containing the strategy and data settings, json or yaml",
	Required:    true,
	Destination: &configPath,
}

var runCommand = &cli.Command{
	Name:   "run",
	Usage:  "runs a backtest from a config file and prints the results",
	Action: runBacktest,
	Flags: []cli.Flag{
		configPathFlag,
		&cli.BoolFlag{
			Name:        "verbose",
			Usage:       "log every event the backtester handles",
			Destination: &verbose,
		},
		&cli.BoolFlag{
			Name:        "json",
			Usage:       "print results as json instead of tables",
			Destination: &jsonOutput,
		},
		&cli.DurationFlag{
			Name:        "heartbeat",
			Usage:       "overrides the config's pause between bars, eg 50ms",
			Destination: &heartbeat,
		},
	},
}

var strategiesCommand = &cli.Command{
	Name:   "strategies",
	Usage:  "lists the strategies a config can name",
	Action: listStrategies,
}

var validateCommand = &cli.Command{
	Name:   "validate",
	Usage:  "loads and validates a config without running it",
	Action: validateConfig,
	Flags:  []cli.Flag{configPathFlag},
}

var migrateCommand = &cli.Command{
	Name:   "migrate",
	Usage:  "runs goose migrations against the database named in a config",
	Action: migrateDatabase,
	Flags: []cli.Flag{
		configPathFlag,
		&cli.StringFlag{
			Name:        "command",
			Usage:       "status|up|up-by-one|up-to|down|redo|version",
			Value:       "up",
			Destination: &migrateCmd,
		},
		&cli.StringFlag{
			Name:        "migrationdir",
			Usage:       "override migration folder",
			Value:       database.MigrationDir,
			Destination: &migrationDir,
		},
		&cli.StringFlag{
			Name:        "args",
			Usage:       "arguments to pass to goose",
			Destination: &migrateArgs,
		},
	},
}

func main() {
	app := cli.NewApp()
	app.Name = "backtester"
	app.Usage = "event driven backtesting of trading strategies against historical bars"
	app.EnableBashCompletion = true
	app.Commands = []*cli.Command{
		runCommand,
		strategiesCommand,
		validateCommand,
		migrateCommand,
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setupLogging registers the backtester sub loggers and applies the config's
// logging settings, or the defaults
func setupLogging(cfg *config.Config) error {
	if err := common.RegisterBacktesterSubLoggers(); err != nil && !errors.Is(err, log.ErrSubLoggerAlreadyRegistered) {
		return err
	}
	logCfg := log.GenDefaultSettings()
	if cfg != nil && cfg.Logging != nil {
		logCfg = *cfg.Logging
	}
	if verbose {
		logCfg.Level = debugLevels
	}
	return log.SetupGlobalLogger(&logCfg)
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.ReadConfigFromFile(configPath)
	if err != nil {
		return nil, err
	}
	if err = setupLogging(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runBacktest(c *cli.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if c.IsSet("heartbeat") {
		cfg.Heartbeat = heartbeat
	}
	cfg.PrintSetting()
	bt, err := engine.NewFromConfig(cfg)
	if err != nil {
		return err
	}

	type outcome struct {
		results *engine.Results
		err     error
	}
	interrupt, stopNotify := signaler.NotifyInterrupt()
	defer stopNotify()
	done := make(chan outcome, 1)
	go func() {
		res, runErr := bt.Run()
		done <- outcome{res, runErr}
	}()

	var out outcome
	select {
	case out = <-done:
	case sig := <-interrupt:
		log.Warnf(common.SubLoggers[common.Backtester], "received %v, stopping backtest %v", sig, bt.RunID())
		return errInterrupted
	}
	if out.err != nil {
		return out.err
	}

	d, err := report.New(out.results)
	if err != nil {
		return err
	}
	if jsonOutput {
		return d.PrintJSON(os.Stdout)
	}
	out.results.Summary.PrintResults()
	return d.PrintConsole(os.Stdout)
}

func listStrategies(_ *cli.Context) error {
	for _, s := range strategies.GetStrategies() {
		fmt.Printf("%v\n\t%v\n", s.Name(), s.Description())
	}
	return nil
}

func validateConfig(_ *cli.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err = cfg.Validate(); err != nil {
		return err
	}
	cfg.PrintSetting()
	fmt.Printf("%v is valid\n", configPath)
	return nil
}

func migrateDatabase(_ *cli.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.DataSettings.Database == nil {
		return errNoDatabase
	}
	inst, err := drivers.Connect(cfg.DataSettings.Database)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := inst.CloseConnection(); closeErr != nil {
			log.Errorln(common.SubLoggers[common.Database], closeErr)
		}
	}()
	log.Infof(common.SubLoggers[common.Database], "running migration %v against %v", migrateCmd, cfg.DataSettings.Database.Driver)
	return database.Migrate(inst, migrateCmd, migrationDir, migrateArgs)
}
