package postgres

import (
	"database/sql"
	"fmt"

	// import postgres driver
	_ "github.com/lib/pq"
	"github.com/thrasher-corp/eventbacktester/database"
	"github.com/thrasher-corp/eventbacktester/log"
)

// Connect opens a connection pool to a postgres database
func Connect(cfg *database.Config) (*database.Instance, error) {
	if cfg == nil || cfg.Database == "" {
		return nil, database.ErrNoDatabaseProvided
	}
	inst, err := database.NewInstance(cfg)
	if err != nil {
		return nil, err
	}
	dbConn, err := sql.Open("postgres", DSN(cfg))
	if err != nil {
		return nil, err
	}
	if err = inst.SetPostgresConnection(dbConn); err != nil {
		if closeErr := dbConn.Close(); closeErr != nil {
			log.Errorln(log.Global, closeErr)
		}
		return nil, err
	}
	return inst, nil
}

// DSN builds the lib/pq connection string for the config
func DSN(cfg *database.Config) string {
	sslMode := cfg.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	port := cfg.Port
	if port == 0 {
		port = 5432
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host,
		port,
		cfg.Username,
		cfg.Password,
		cfg.Database,
		sslMode)
}
