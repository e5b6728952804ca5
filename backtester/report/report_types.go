package report

import (
	"errors"

	"github.com/thrasher-corp/eventbacktester/backtester/engine"
)

const (
	pricePrecision   = 2
	ratioPrecision   = 4
	dateFormat       = "2006-01-02 15:04:05"
	noValue          = "-"
	jsonIndentPrefix = ""
	jsonIndent       = "  "
)

var errNoResults = errors.New("no results to report")

// Data holds the results of a finished run for printing
type Data struct {
	Results *engine.Results
}
