package sqlite

import (
	"database/sql"

	// import sqlite3 driver
	_ "github.com/mattn/go-sqlite3"
	"github.com/thrasher-corp/eventbacktester/database"
)

// Connect opens a connection to the sqlite database at path. ":memory:" is
// accepted and lives for as long as the returned instance
func Connect(path string) (*database.Instance, error) {
	if path == "" {
		return nil, database.ErrNoDatabaseProvided
	}
	inst, err := database.NewInstance(&database.Config{Driver: database.DBSQLite3, Database: path})
	if err != nil {
		return nil, err
	}
	dbConn, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	if err = inst.SetSQLiteConnection(dbConn); err != nil {
		return nil, err
	}
	return inst, nil
}
