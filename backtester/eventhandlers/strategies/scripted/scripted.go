package scripted

import (
	"errors"
	"fmt"
	"os"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/thrasher-corp/eventbacktester/backtester/common"
	"github.com/thrasher-corp/eventbacktester/backtester/data"
	"github.com/thrasher-corp/eventbacktester/backtester/eventhandlers/eventholder"
	"github.com/thrasher-corp/eventbacktester/backtester/eventhandlers/strategies/base"
	"github.com/thrasher-corp/eventbacktester/backtester/eventtypes/kline"
)

const (
	// Name is the strategy name
	Name          = "scripted"
	scriptKey     = "script"
	scriptPathKey = "script-path"
	maxAllocsKey  = "max-allocs"
	description   = `Runs a tengo script on every bar. The script reads symbol, close, closes and invested and sets signal to LONG, SHORT, EXIT or leaves it empty`

	defaultMaxAllocs = 1 << 20
)

var (
	errNoScript      = errors.New("no script or script-path provided")
	errBothScripts   = errors.New("only one of script and script-path can be set")
	errNotCompiled   = errors.New("script has not been compiled")
	scriptModules    = []string{"math", "text", "times", "fmt"}
	scriptGlobalVars = []string{"symbol", "close", "closes", "invested", "signal", "reason"}
)

// Strategy is an implementation of the Handler interface
type Strategy struct {
	base.Strategy
	source    []byte
	maxAllocs int64
	compiled  *tengo.Compiled
}

// Name returns the name of the strategy
func (s *Strategy) Name() string {
	return Name
}

// Description provides a nice overview of the strategy
func (s *Strategy) Description() string {
	return description
}

// Setup compiles the script and binds the strategy to its data and queue
func (s *Strategy) Setup(d data.Streamer, q eventholder.Appender) error {
	if err := s.Strategy.Setup(Name, d, q); err != nil {
		return err
	}
	return s.compile()
}

func (s *Strategy) compile() error {
	if len(s.source) == 0 {
		return fmt.Errorf("%w %v", base.ErrInvalidCustomSettings, errNoScript)
	}
	script := tengo.NewScript(s.source)
	script.SetImports(stdlib.GetModuleMap(scriptModules...))
	script.SetMaxAllocs(s.maxAllocs)
	for _, name := range scriptGlobalVars {
		if err := script.Add(name, ""); err != nil {
			return err
		}
	}
	compiled, err := script.Compile()
	if err != nil {
		return fmt.Errorf("%v compile: %w", Name, err)
	}
	s.compiled = compiled
	return nil
}

// OnMarket runs the script against the latest bar and emits whatever
// direction it sets
func (s *Strategy) OnMarket(k kline.Kline) error {
	if !s.IsSetup() {
		return base.ErrNotSetup
	}
	if s.compiled == nil {
		return errNotCompiled
	}
	closes := s.Streamer().StreamClose(k.Symbol)
	history := make([]any, len(closes))
	for i := range closes {
		history[i] = closes[i]
	}
	for name, v := range map[string]any{
		"symbol":   k.Symbol,
		"close":    k.Close.InexactFloat64(),
		"closes":   history,
		"invested": string(s.Position(k.Symbol)),
		"signal":   "",
		"reason":   "",
	} {
		if err := s.compiled.Set(name, v); err != nil {
			return err
		}
	}
	if err := s.compiled.Run(); err != nil {
		return fmt.Errorf("%v run for %v at %v: %w", Name, k.Symbol, k.Time, err)
	}
	out := s.compiled.Get("signal").String()
	if out == "" {
		return nil
	}
	direction, err := common.ParseDirection(out)
	if err != nil {
		return err
	}
	reason := s.compiled.Get("reason").String()
	if reason == "" {
		reason = "script"
	}
	return s.Emit(k, direction, reason)
}

// SetCustomSettings reads the script source inline or from a file
func (s *Strategy) SetCustomSettings(customSettings map[string]any) error {
	var inline, path string
	for k, v := range customSettings {
		switch k {
		case scriptKey:
			str, ok := v.(string)
			if !ok {
				return fmt.Errorf("%w %v must be a string", base.ErrInvalidCustomSettings, k)
			}
			inline = str
		case scriptPathKey:
			str, ok := v.(string)
			if !ok {
				return fmt.Errorf("%w %v must be a string", base.ErrInvalidCustomSettings, k)
			}
			path = str
		case maxAllocsKey:
			n, err := base.ToPositiveInt(v)
			if err != nil {
				return err
			}
			s.maxAllocs = int64(n)
		default:
			return fmt.Errorf("%w unrecognised custom setting key %v with value %v. Cannot apply", base.ErrInvalidCustomSettings, k, v)
		}
	}
	switch {
	case inline != "" && path != "":
		return fmt.Errorf("%w %v", base.ErrInvalidCustomSettings, errBothScripts)
	case inline != "":
		s.source = []byte(inline)
	case path != "":
		src, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("%w %v", base.ErrInvalidCustomSettings, err)
		}
		s.source = src
	default:
		return fmt.Errorf("%w %v", base.ErrInvalidCustomSettings, errNoScript)
	}
	return nil
}

// SetDefaults clears the script and resets the allocation limit
func (s *Strategy) SetDefaults() {
	s.source = nil
	s.compiled = nil
	s.maxAllocs = defaultMaxAllocs
}
