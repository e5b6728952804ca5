package base

import (
	"errors"

	"github.com/thrasher-corp/eventbacktester/backtester/common"
	"github.com/thrasher-corp/eventbacktester/backtester/data"
	"github.com/thrasher-corp/eventbacktester/backtester/eventhandlers/eventholder"
)

var (
	// ErrStrategyNotFound used when strategy specified in config does not exist
	ErrStrategyNotFound = errors.New("not found. Please ensure the strategy-settings field 'name' is spelled properly in your config")
	// ErrInvalidCustomSettings used when bad custom settings are found in the config
	ErrInvalidCustomSettings = errors.New("invalid custom settings in config")
	// ErrCustomSettingsUnsupported used when custom settings are found in the config when they shouldn't be
	ErrCustomSettingsUnsupported = errors.New("custom settings not supported")
	// ErrNotSetup is returned when a strategy receives data before Setup
	ErrNotSetup = errors.New("strategy has not been setup")
)

// Strategy holds what every strategy needs: a look-back view of the data, a
// way to push signals and a record of which way it is positioned per symbol
type Strategy struct {
	name      string
	streamer  data.Streamer
	appender  eventholder.Appender
	positions map[string]common.Direction
}
