package log

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// NewSubLogger registers a new sub logger under the supplied name. Sub loggers
// start with every level enabled and write to stdout until configured.
func NewSubLogger(name string) (*SubLogger, error) {
	if name == "" {
		return nil, errEmptyLoggerName
	}
	name = strings.ToUpper(name)
	mu.Lock()
	defer mu.Unlock()
	if _, ok := subLoggers[name]; ok {
		return nil, fmt.Errorf("%w %s", ErrSubLoggerAlreadyRegistered, name)
	}
	sl := &SubLogger{
		name:   name,
		levels: splitLevel("INFO|WARN|DEBUG|ERROR"),
		output: os.Stdout,
	}
	subLoggers[name] = sl
	return sl, nil
}

// GetSubLogger returns a registered sub logger by name
func GetSubLogger(name string) (*SubLogger, error) {
	mu.RLock()
	defer mu.RUnlock()
	sl, ok := subLoggers[strings.ToUpper(name)]
	if !ok {
		return nil, fmt.Errorf("%w %s", ErrSubLoggerNotFound, name)
	}
	return sl, nil
}

// Name returns the name of the sub logger
func (sl *SubLogger) Name() string {
	if sl == nil {
		return ""
	}
	return sl.name
}

// SetOutput replaces the sub logger's writer
func (sl *SubLogger) SetOutput(w io.Writer) error {
	if sl == nil {
		return ErrSubLoggerNotFound
	}
	if w == nil {
		return errNilWriter
	}
	mu.Lock()
	sl.output = w
	mu.Unlock()
	return nil
}

// SetLevels sets the enabled levels of the sub logger
func (sl *SubLogger) SetLevels(l Levels) {
	if sl == nil {
		return
	}
	mu.Lock()
	sl.levels = l
	mu.Unlock()
}

// GetLevels returns the enabled levels of the sub logger
func (sl *SubLogger) GetLevels() Levels {
	if sl == nil {
		return Levels{}
	}
	mu.RLock()
	defer mu.RUnlock()
	return sl.levels
}

func (l Levels) allows(lvl level) bool {
	switch lvl {
	case debugLevel:
		return l.Debug
	case infoLevel:
		return l.Info
	case warnLevel:
		return l.Warn
	case errorLevel:
		return l.Error
	}
	return false
}
