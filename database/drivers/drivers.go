package drivers

import (
	"fmt"

	"github.com/thrasher-corp/eventbacktester/database"
	"github.com/thrasher-corp/eventbacktester/database/drivers/postgres"
	sqlite "github.com/thrasher-corp/eventbacktester/database/drivers/sqlite3"
)

// Connect opens the database described by cfg using the matching driver
func Connect(cfg *database.Config) (*database.Instance, error) {
	if cfg == nil {
		return nil, database.ErrNoDatabaseProvided
	}
	var (
		inst *database.Instance
		err  error
	)
	switch database.SQLDialect(cfg.Driver) {
	case database.DBPostgreSQL:
		inst, err = postgres.Connect(cfg)
	case database.DBSQLite3:
		inst, err = sqlite.Connect(cfg.Database)
	default:
		return nil, fmt.Errorf("%w: %q", database.ErrUnsupportedDriver, cfg.Driver)
	}
	if err != nil {
		return nil, fmt.Errorf("database failed to connect: %w", err)
	}
	return inst, nil
}
