package database

import (
	"github.com/thrasher-corp/goose"
)

// Migrate runs a goose command such as up, down or status against the
// instance. dir is the migrations root holding one <version>_<name> folder
// per migration with a <dialect>.sql file for each supported dialect
func Migrate(i *Instance, command, dir, args string) error {
	db := i.GetSQL()
	if db == nil {
		return ErrDatabaseNotConnected
	}
	dialect := i.GetSQLDialect()
	if dialect == DBInvalidDriver {
		return ErrUnsupportedDriver
	}
	if dir == "" {
		dir = MigrationDir
	}
	return goose.Run(command, db, dialect, dir, args)
}
