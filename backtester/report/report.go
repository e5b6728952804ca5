package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/shopspring/decimal"
	"github.com/thrasher-corp/eventbacktester/backtester/common"
	"github.com/thrasher-corp/eventbacktester/backtester/engine"
	"github.com/thrasher-corp/eventbacktester/log"
)

// New wraps finished run results for printing
func New(results *engine.Results) (*Data, error) {
	if results == nil || results.Summary == nil {
		return nil, errNoResults
	}
	return &Data{Results: results}, nil
}

// PrintConsole renders the run summary, the event counters and the tail of
// the equity curve as tables
func (d *Data) PrintConsole(w io.Writer) error {
	if d == nil || d.Results == nil || d.Results.Summary == nil {
		return errNoResults
	}
	log.Infof(common.SubLoggers[common.Report], "writing console report for run %v", d.Results.RunID)
	if err := d.printSummary(w); err != nil {
		return err
	}
	if err := d.printCounters(w); err != nil {
		return err
	}
	return d.printEquityCurve(w)
}

func (d *Data) printSummary(w io.Writer) error {
	s := d.Results.Summary
	table := tablewriter.NewWriter(w)
	table.Header("Run", "Value")
	rows := [][]string{
		{"Run ID", d.Results.RunID.String()},
		{"Nickname", orNoValue(d.Results.Nickname)},
		{"Strategy", d.Results.Strategy},
		{"Symbols", fmt.Sprint(d.Results.Symbols)},
		{"Start", formatDate(s.StartDate)},
		{"End", formatDate(s.EndDate)},
		{"Periods", strconv.Itoa(s.Periods)},
		{"Initial capital", s.InitialCapital.StringFixed(pricePrecision)},
		{"Final equity", s.FinalEquity.StringFixed(pricePrecision)},
		{"Total return %", s.TotalReturnPercent.StringFixed(pricePrecision)},
		{"CAGR %", s.CAGR.StringFixed(pricePrecision)},
		{"Sharpe ratio", s.SharpeRatio.StringFixed(ratioPrecision)},
		{"Sortino ratio", s.SortinoRatio.StringFixed(ratioPrecision)},
		{"Max drawdown %", s.MaxDrawdown.DrawdownPercent.StringFixed(pricePrecision)},
		{"Longest drawdown", strconv.FormatInt(s.LongestDrawdown, 10) + " periods"},
		{"Total commission", s.TotalCommission.StringFixed(pricePrecision)},
	}
	for i := range rows {
		if err := table.Append(rows[i]); err != nil {
			return err
		}
	}
	return table.Render()
}

func (d *Data) printCounters(w io.Writer) error {
	table := tablewriter.NewWriter(w)
	table.Header("Ticks", "Signals", "Orders", "Fills")
	c := d.Results.Counters
	if err := table.Append([]string{
		strconv.FormatInt(d.Results.Ticks, 10),
		strconv.FormatInt(c.Signals, 10),
		strconv.FormatInt(c.Orders, 10),
		strconv.FormatInt(c.Fills, 10),
	}); err != nil {
		return err
	}
	return table.Render()
}

func (d *Data) printEquityCurve(w io.Writer) error {
	tail := d.Results.Summary.EquityCurveTail
	if len(tail) == 0 {
		_, err := fmt.Fprintln(w, "no equity curve recorded")
		return err
	}
	table := tablewriter.NewWriter(w)
	table.Header("Time", "Cash", "Market value", "Commission", "Total")
	for i := range tail {
		if err := table.Append([]string{
			tail[i].Time.Format(dateFormat),
			money(tail[i].Cash),
			money(tail[i].MarketValue),
			money(tail[i].Commission),
			money(tail[i].Total),
		}); err != nil {
			return err
		}
	}
	return table.Render()
}

// PrintJSON writes the results as indented JSON
func (d *Data) PrintJSON(w io.Writer) error {
	if d == nil || d.Results == nil {
		return errNoResults
	}
	enc := json.NewEncoder(w)
	enc.SetIndent(jsonIndentPrefix, jsonIndent)
	return enc.Encode(d.Results)
}

func money(v decimal.Decimal) string {
	return v.StringFixed(pricePrecision)
}

func orNoValue(s string) string {
	if s == "" {
		return noValue
	}
	return s
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return noValue
	}
	return t.Format(dateFormat)
}
