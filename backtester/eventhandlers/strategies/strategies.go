package strategies

import (
	"fmt"
	"strings"

	"github.com/thrasher-corp/eventbacktester/backtester/eventhandlers/strategies/base"
	"github.com/thrasher-corp/eventbacktester/backtester/eventhandlers/strategies/buyandhold"
	"github.com/thrasher-corp/eventbacktester/backtester/eventhandlers/strategies/movingaverage"
	"github.com/thrasher-corp/eventbacktester/backtester/eventhandlers/strategies/rsi"
	"github.com/thrasher-corp/eventbacktester/backtester/eventhandlers/strategies/scripted"
)

// LoadStrategyByName returns a fresh strategy by its name with defaults applied
func LoadStrategyByName(name string) (Handler, error) {
	strats := GetStrategies()
	for i := range strats {
		if !strings.EqualFold(name, strats[i].Name()) {
			continue
		}
		strats[i].SetDefaults()
		return strats[i], nil
	}
	return nil, fmt.Errorf("strategy '%v' %w", name, base.ErrStrategyNotFound)
}

// GetStrategies returns a static list of set strategies
// they must be set in here for the backtester to recognise them
func GetStrategies() []Handler {
	return []Handler{
		new(buyandhold.Strategy),
		new(movingaverage.Strategy),
		new(rsi.Strategy),
		new(scripted.Strategy),
	}
}
