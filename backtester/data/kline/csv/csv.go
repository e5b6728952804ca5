package csv

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/thrasher-corp/eventbacktester/backtester/common"
	"github.com/thrasher-corp/eventbacktester/backtester/eventtypes/kline"
	"github.com/thrasher-corp/eventbacktester/log"
)

var (
	errNoDirectory     = errors.New("no csv directory provided")
	errMissingColumn   = errors.New("csv header is missing a required column")
	errInvalidTimeData = errors.New("unable to parse time")
	errRowLength       = errors.New("row has fewer fields than the header")
)

var timeFormats = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Load reads <dir>/<SYMBOL>.csv for each symbol and returns its bars keyed by symbol
func Load(dir string, symbols []string) (map[string][]kline.Kline, error) {
	if dir == "" {
		return nil, errNoDirectory
	}
	resp := make(map[string][]kline.Kline, len(symbols))
	for _, sym := range symbols {
		bars, err := LoadFile(filepath.Join(dir, sym+".csv"), sym)
		if err != nil {
			return nil, err
		}
		log.Infof(common.SubLoggers[common.Data], "loaded %d bars for %v from csv", len(bars), sym)
		resp[sym] = bars
	}
	return resp, nil
}

// LoadFile reads a single CSV file of bars for the symbol
func LoadFile(path, symbol string) (bars []kline.Kline, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			log.Errorln(common.SubLoggers[common.Data], closeErr)
		}
	}()
	bars, err = Parse(f, symbol)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", path, err)
	}
	return bars, nil
}

// Parse reads bars from r. The first row is a header, columns are matched by
// name so any order is accepted
func Parse(r io.Reader, symbol string) ([]kline.Kline, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1
	header, err := reader.Read()
	if err != nil {
		return nil, err
	}
	cols, err := columnIndexes(header)
	if err != nil {
		return nil, err
	}
	var resp []kline.Kline
	for line := 2; ; line++ {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		if len(row) < len(header) {
			return nil, fmt.Errorf("line %d: %w", line, errRowLength)
		}
		k, err := parseRow(row, cols, symbol)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		resp = append(resp, k)
	}
	return resp, nil
}

type columns struct {
	time, open, high, low, close, volume int
}

func columnIndexes(header []string) (columns, error) {
	idx := make(map[string]int, len(header))
	for i := range header {
		idx[strings.ToLower(strings.TrimSpace(header[i]))] = i
	}
	var c columns
	var ok bool
	found := false
	for _, name := range []string{"datetime", "date", "timestamp"} {
		if c.time, ok = idx[name]; ok {
			found = true
			break
		}
	}
	if !found {
		return c, fmt.Errorf("%w: datetime", errMissingColumn)
	}
	for name, target := range map[string]*int{
		"open":   &c.open,
		"high":   &c.high,
		"low":    &c.low,
		"close":  &c.close,
		"volume": &c.volume,
	} {
		i, ok := idx[name]
		if !ok {
			return c, fmt.Errorf("%w: %v", errMissingColumn, name)
		}
		*target = i
	}
	return c, nil
}

func parseRow(row []string, c columns, symbol string) (kline.Kline, error) {
	t, err := parseTime(row[c.time])
	if err != nil {
		return kline.Kline{}, err
	}
	var prices [5]decimal.Decimal
	for i, col := range []int{c.open, c.high, c.low, c.close, c.volume} {
		prices[i], err = decimal.NewFromString(strings.TrimSpace(row[col]))
		if err != nil {
			return kline.Kline{}, err
		}
	}
	return kline.New(symbol, t, prices[0], prices[1], prices[2], prices[3], prices[4]), nil
}

func parseTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, f := range timeFormats {
		t, err := time.Parse(f, s)
		if err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w '%v'", errInvalidTimeData, s)
}
