package candle

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/thrasher-corp/eventbacktester/database"
	"github.com/thrasher-corp/eventbacktester/log"
)

const (
	selectSQLite = `SELECT symbol, timestamp, open, high, low, close, volume FROM candle
WHERE symbol = ? AND timestamp BETWEEN ? AND ? ORDER BY timestamp`
	selectPostgres = `SELECT symbol, timestamp, open, high, low, close, volume FROM candle
WHERE symbol = $1 AND timestamp BETWEEN $2 AND $3 ORDER BY timestamp`
	insertSQLite = `INSERT OR REPLACE INTO candle (symbol, timestamp, open, high, low, close, volume)
VALUES (?, ?, ?, ?, ?, ?, ?)`
	insertPostgres = `INSERT INTO candle (symbol, timestamp, open, high, low, close, volume)
VALUES ($1, $2, $3, $4, $5, $6, $7)
ON CONFLICT (symbol, timestamp) DO UPDATE SET
open = EXCLUDED.open, high = EXCLUDED.high, low = EXCLUDED.low, close = EXCLUDED.close, volume = EXCLUDED.volume`
)

// Series returns the candles of a symbol between start and end inclusive, oldest first
func Series(ctx context.Context, inst *database.Instance, symbol string, start, end time.Time) ([]Candle, error) {
	if symbol == "" || start.IsZero() || end.IsZero() {
		return nil, errInvalidInput
	}
	db := inst.GetSQL()
	if db == nil {
		return nil, database.ErrDatabaseNotConnected
	}
	symbol = strings.ToUpper(symbol)

	var (
		rows *sql.Rows
		err  error
	)
	sqlite := inst.GetSQLDialect() == database.DBSQLite3
	if sqlite {
		rows, err = db.QueryContext(ctx, selectSQLite, symbol, start.UTC().Format(time.RFC3339), end.UTC().Format(time.RFC3339))
	} else {
		rows, err = db.QueryContext(ctx, selectPostgres, symbol, start.UTC(), end.UTC())
	}
	if err != nil {
		return nil, err
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			log.Errorln(log.Global, closeErr)
		}
	}()

	var out []Candle
	for rows.Next() {
		var c Candle
		if sqlite {
			var ts string
			if err = rows.Scan(&c.Symbol, &ts, &c.Open, &c.High, &c.Low, &c.Close, &c.Volume); err != nil {
				return nil, err
			}
			c.Timestamp, err = time.Parse(time.RFC3339, ts)
			if err != nil {
				return nil, err
			}
		} else {
			if err = rows.Scan(&c.Symbol, &c.Timestamp, &c.Open, &c.High, &c.Low, &c.Close, &c.Volume); err != nil {
				return nil, err
			}
			c.Timestamp = c.Timestamp.UTC()
		}
		out = append(out, c)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: %s %v-%v", ErrNoCandleDataFound, symbol, start, end)
	}
	return out, nil
}

// Insert upserts candles in a single transaction and returns how many were written
func Insert(ctx context.Context, inst *database.Instance, in ...Candle) (int64, error) {
	if len(in) == 0 {
		return 0, errNoCandleData
	}
	db := inst.GetSQL()
	if db == nil {
		return 0, database.ErrDatabaseNotConnected
	}
	sqlite := inst.GetSQLDialect() == database.DBSQLite3
	query := insertPostgres
	if sqlite {
		query = insertSQLite
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return 0, rollback(tx, err)
	}
	defer func() {
		if closeErr := stmt.Close(); closeErr != nil {
			log.Errorln(log.Global, closeErr)
		}
	}()

	var count int64
	for i := range in {
		if in[i].Symbol == "" || in[i].Timestamp.IsZero() {
			return 0, rollback(tx, errInvalidInput)
		}
		var ts any = in[i].Timestamp.UTC()
		if sqlite {
			ts = in[i].Timestamp.UTC().Format(time.RFC3339)
		}
		_, err = stmt.ExecContext(ctx,
			strings.ToUpper(in[i].Symbol),
			ts,
			in[i].Open,
			in[i].High,
			in[i].Low,
			in[i].Close,
			in[i].Volume)
		if err != nil {
			return 0, rollback(tx, err)
		}
		count++
	}
	if err = tx.Commit(); err != nil {
		return 0, err
	}
	return count, nil
}

func rollback(tx *sql.Tx, err error) error {
	if errRB := tx.Rollback(); errRB != nil {
		log.Errorf(log.Global, "rollback failed: %v", errRB)
	}
	return err
}
