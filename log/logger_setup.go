package log

import (
	"fmt"
	"io"
	"os"
	"strings"
)

func init() {
	logger = newLogger(GenDefaultSettings())
	var err error
	Global, err = NewSubLogger("LOG")
	if err != nil {
		panic(err)
	}
}

func getWriters(s *SubLoggerConfig) (io.Writer, error) {
	if s == nil {
		return nil, errSubloggerConfigIsNil
	}
	mw, err := MultiWriter()
	if err != nil {
		return nil, err
	}
	outputWriters := strings.Split(s.Output, "|")
	for x := range outputWriters {
		var writer io.Writer
		switch strings.ToLower(strings.TrimSpace(outputWriters[x])) {
		case "stdout", "console":
			writer = os.Stdout
		case "stderr":
			writer = os.Stderr
		default:
			return nil, fmt.Errorf("%w: %s", errUnhandledOutputWriter, outputWriters[x])
		}
		err = mw.Add(writer)
		if err != nil {
			return nil, err
		}
	}
	return mw, nil
}

// GenDefaultSettings return struct with known sane/working logger settings
func GenDefaultSettings() Config {
	t := true
	f := false
	return Config{
		Enabled: &t,
		SubLoggerConfig: SubLoggerConfig{
			Level:  "INFO|WARN|ERROR",
			Output: "console",
		},
		AdvancedSettings: advancedSettings{
			ShowLogSystemName: &f,
			Spacer:            spacer,
			TimeStampFormat:   timestampFormat,
			Headers: headers{
				Info:  "[INFO]",
				Warn:  "[WARN]",
				Debug: "[DEBUG]",
				Error: "[ERROR]",
			},
		},
	}
}

func newLogger(c Config) Logger {
	l := Logger{
		TimestampFormat: c.AdvancedSettings.TimeStampFormat,
		Spacer:          c.AdvancedSettings.Spacer,
		InfoHeader:      c.AdvancedSettings.Headers.Info,
		WarnHeader:      c.AdvancedSettings.Headers.Warn,
		DebugHeader:     c.AdvancedSettings.Headers.Debug,
		ErrorHeader:     c.AdvancedSettings.Headers.Error,
	}
	if c.AdvancedSettings.ShowLogSystemName != nil {
		l.ShowLogSystemName = *c.AdvancedSettings.ShowLogSystemName
	}
	if l.TimestampFormat == "" {
		l.TimestampFormat = timestampFormat
	}
	if l.Spacer == "" {
		l.Spacer = spacer
	}
	return l
}

// SetupGlobalLogger applies the config to the logger and every registered
// sub logger, then applies any per sub logger overrides
func SetupGlobalLogger(c *Config) error {
	if c == nil {
		return errNilConfig
	}
	output, err := getWriters(&c.SubLoggerConfig)
	if err != nil {
		return err
	}
	levels := splitLevel(c.Level)
	mu.Lock()
	enabled = c.Enabled == nil || *c.Enabled
	logger = newLogger(*c)
	for _, sl := range subLoggers {
		sl.levels = levels
		sl.output = output
	}
	mu.Unlock()
	return SetupSubLoggers(c.SubLoggers)
}

// SetupSubLoggers configures individual sub loggers with provided configuration values
func SetupSubLoggers(s []SubLoggerConfig) error {
	for x := range s {
		output, err := getWriters(&s[x])
		if err != nil {
			return err
		}
		err = configureSubLogger(s[x].Name, s[x].Level, output)
		if err != nil {
			return err
		}
	}
	return nil
}

func configureSubLogger(name, levels string, output io.Writer) error {
	mu.Lock()
	defer mu.Unlock()
	sl, found := subLoggers[strings.ToUpper(name)]
	if !found {
		return fmt.Errorf("%w %v", ErrSubLoggerNotFound, name)
	}
	sl.output = output
	sl.levels = splitLevel(levels)
	return nil
}

func splitLevel(level string) (l Levels) {
	enabledLevels := strings.Split(level, "|")
	for x := range enabledLevels {
		switch strings.ToUpper(strings.TrimSpace(enabledLevels[x])) {
		case "DEBUG":
			l.Debug = true
		case "INFO":
			l.Info = true
		case "WARN":
			l.Warn = true
		case "ERROR":
			l.Error = true
		}
	}
	return
}
