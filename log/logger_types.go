package log

import (
	"errors"
	"io"
	"sync"
)

const (
	timestampFormat = " 02/01/2006 15:04:05 "
	spacer          = " | "
)

var (
	// ErrSubLoggerAlreadyRegistered is returned when a sub logger name is reused
	ErrSubLoggerAlreadyRegistered = errors.New("sub logger already registered")
	// ErrSubLoggerNotFound is returned when a config references an unknown sub logger
	ErrSubLoggerNotFound = errors.New("sub logger not found")

	errEmptyLoggerName       = errors.New("cannot have empty logger name")
	errNilConfig             = errors.New("log config is nil")
	errSubloggerConfigIsNil  = errors.New("sublogger config is nil")
	errUnhandledOutputWriter = errors.New("unhandled output writer")
	errWriterAlreadyLoaded   = errors.New("io.Writer already loaded")
	errWriterNotFound        = errors.New("io.Writer not found")
	errNilWriter             = errors.New("io.Writer is nil")

	// Global is the default sub logger for anything that does not register its own
	Global *SubLogger

	logger     = Logger{}
	enabled    = true
	subLoggers = map[string]*SubLogger{}

	// mu guards logger, enabled, subLoggers and every sub logger's fields
	mu sync.RWMutex
)

type level uint8

const (
	debugLevel level = iota
	infoLevel
	warnLevel
	errorLevel
)

// Config holds configuration settings for the logger
type Config struct {
	Enabled          *bool `json:"enabled" yaml:"enabled"`
	SubLoggerConfig  `yaml:",inline"`
	AdvancedSettings advancedSettings  `json:"advancedSettings" yaml:"advanced-settings"`
	SubLoggers       []SubLoggerConfig `json:"subloggers,omitempty" yaml:"subloggers,omitempty"`
}

type advancedSettings struct {
	ShowLogSystemName *bool   `json:"showLogSystemName" yaml:"show-log-system-name"`
	Spacer            string  `json:"spacer" yaml:"spacer"`
	TimeStampFormat   string  `json:"timeStampFormat" yaml:"timestamp-format"`
	Headers           headers `json:"headers" yaml:"headers"`
}

type headers struct {
	Info  string `json:"info" yaml:"info"`
	Warn  string `json:"warn" yaml:"warn"`
	Debug string `json:"debug" yaml:"debug"`
	Error string `json:"error" yaml:"error"`
}

// SubLoggerConfig holds sub logger configuration settings
type SubLoggerConfig struct {
	Name   string `json:"name,omitempty" yaml:"name,omitempty"`
	Level  string `json:"level" yaml:"level"`
	Output string `json:"output" yaml:"output"`
}

// Logger holds the formatting settings shared by every sub logger
type Logger struct {
	ShowLogSystemName                                bool
	TimestampFormat                                  string
	InfoHeader, ErrorHeader, DebugHeader, WarnHeader string
	Spacer                                           string
}

// Levels flags for each sub logger type
type Levels struct {
	Info, Debug, Warn, Error bool
}

// SubLogger defines a named logging system with its own levels and output
type SubLogger struct {
	name   string
	levels Levels
	output io.Writer
}

type multiWriter struct {
	mu      sync.RWMutex
	writers []io.Writer
}
