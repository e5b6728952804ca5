package database

import (
	"database/sql"
	"strings"
	"time"
)

// NewInstance returns an unconnected instance for the config
func NewInstance(cfg *Config) (*Instance, error) {
	i := &Instance{}
	if err := i.SetConfig(cfg); err != nil {
		return nil, err
	}
	return i, nil
}

// SetConfig safely sets the database instance's config
func (i *Instance) SetConfig(cfg *Config) error {
	if i == nil {
		return errNilInstance
	}
	if cfg == nil {
		return errNilConfig
	}
	i.m.Lock()
	cpy := *cfg
	i.config = &cpy
	i.m.Unlock()
	return nil
}

// SetSQLiteConnection safely sets the instance's connection to use SQLite
func (i *Instance) SetSQLiteConnection(con *sql.DB) error {
	if i == nil {
		return errNilInstance
	}
	if con == nil {
		return errNilSQL
	}
	i.m.Lock()
	defer i.m.Unlock()
	i.SQL = con
	i.SQL.SetMaxOpenConns(1)
	i.connected = true
	return nil
}

// SetPostgresConnection safely sets the instance's connection to use Postgres
func (i *Instance) SetPostgresConnection(con *sql.DB) error {
	if i == nil {
		return errNilInstance
	}
	if con == nil {
		return errNilSQL
	}
	if err := con.Ping(); err != nil {
		return err
	}
	i.m.Lock()
	defer i.m.Unlock()
	i.SQL = con
	i.SQL.SetMaxOpenConns(2)
	i.SQL.SetMaxIdleConns(1)
	i.SQL.SetConnMaxLifetime(time.Hour)
	i.connected = true
	return nil
}

// CloseConnection safely disconnects the instance
func (i *Instance) CloseConnection() error {
	if i == nil {
		return errNilInstance
	}
	i.m.Lock()
	defer i.m.Unlock()
	if i.SQL == nil {
		return errNilSQL
	}
	i.connected = false
	return i.SQL.Close()
}

// IsConnected safely checks the SQL connection status
func (i *Instance) IsConnected() bool {
	if i == nil {
		return false
	}
	i.m.RLock()
	defer i.m.RUnlock()
	return i.connected
}

// GetConfig safely returns a copy of the config
func (i *Instance) GetConfig() Config {
	if i == nil {
		return Config{}
	}
	i.m.RLock()
	defer i.m.RUnlock()
	if i.config == nil {
		return Config{}
	}
	return *i.config
}

// Ping pings the database
func (i *Instance) Ping() error {
	if i == nil {
		return errNilInstance
	}
	i.m.RLock()
	defer i.m.RUnlock()
	if i.SQL == nil {
		return errNilSQL
	}
	return i.SQL.Ping()
}

// GetSQL returns the connection, nil when not connected
func (i *Instance) GetSQL() *sql.DB {
	if i == nil || !i.IsConnected() {
		return nil
	}
	i.m.RLock()
	defer i.m.RUnlock()
	return i.SQL
}

// GetSQLDialect returns the goose dialect of the configured driver
func (i *Instance) GetSQLDialect() string {
	return SQLDialect(i.GetConfig().Driver)
}

// SQLDialect normalises a configured driver name into a dialect
func SQLDialect(driver string) string {
	switch strings.ToLower(driver) {
	case DBSQLite, DBSQLite3:
		return DBSQLite3
	case DBPostgreSQL, "postgresql", "psql":
		return DBPostgreSQL
	default:
		return DBInvalidDriver
	}
}
