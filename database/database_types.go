package database

import (
	"database/sql"
	"errors"
	"path/filepath"
	"sync"
)

// Supported driver names and the dialects handed to goose
const (
	DBSQLite        = "sqlite"
	DBSQLite3       = "sqlite3"
	DBPostgreSQL    = "postgres"
	DBInvalidDriver = "invalid driver"
)

var (
	// MigrationDir is the default location of the goose migrations, relative to the repository root
	MigrationDir = filepath.Join("database", "migrations")

	// ErrNoDatabaseProvided is returned when a connection is attempted without a database name
	ErrNoDatabaseProvided = errors.New("no database provided")
	// ErrDatabaseNotConnected is returned when an instance is used before connecting
	ErrDatabaseNotConnected = errors.New("database not connected")
	// ErrUnsupportedDriver is returned for any driver other than sqlite3 or postgres
	ErrUnsupportedDriver = errors.New("unsupported database driver")

	errNilInstance = errors.New("database instance is nil")
	errNilConfig   = errors.New("received nil config")
	errNilSQL      = errors.New("database SQL connection is nil")
)

// Config holds all database configurable options
type Config struct {
	Driver   string `json:"driver" yaml:"driver"`
	Host     string `json:"host" yaml:"host"`
	Port     uint16 `json:"port" yaml:"port"`
	Username string `json:"username" yaml:"username"`
	Password string `json:"password" yaml:"password"`
	Database string `json:"database" yaml:"database"`
	SSLMode  string `json:"ssl-mode" yaml:"ssl-mode"`
	Verbose  bool   `json:"verbose" yaml:"verbose"`
}

// Instance holds the connection and config of a single database
type Instance struct {
	SQL       *sql.DB
	config    *Config
	connected bool
	m         sync.RWMutex
}
