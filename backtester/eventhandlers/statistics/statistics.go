package statistics

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
	"github.com/thrasher-corp/eventbacktester/backtester/common"
	"github.com/thrasher-corp/eventbacktester/backtester/eventhandlers/portfolio/holdings"
	gctmath "github.com/thrasher-corp/eventbacktester/common/math"
	"github.com/thrasher-corp/eventbacktester/log"
)

var oneHundred = decimal.NewFromInt(100)

// Calculate builds a Summary from an equity curve. Initial capital is the
// base of the first period's return. riskFreeRate is annual and is spread
// evenly over periodsPerYear. An empty curve reports the initial capital and
// zero ratios
func Calculate(snapshots []holdings.Snapshot, initialCapital, riskFreeRate decimal.Decimal, periodsPerYear int) (*Summary, error) {
	if !initialCapital.IsPositive() {
		return nil, fmt.Errorf("%w, received %v", ErrInitialCapitalZero, initialCapital)
	}
	s := &Summary{
		Periods:         len(snapshots),
		InitialCapital:  initialCapital,
		FinalEquity:     initialCapital,
		RiskFreeRate:    riskFreeRate,
		EquityCurveTail: tail(snapshots, equityCurveTailLength),
	}
	if len(snapshots) == 0 {
		return s, nil
	}
	first, last := snapshots[0], snapshots[len(snapshots)-1]
	s.StartDate = first.Time
	s.EndDate = last.Time
	s.FinalEquity = last.Total
	s.TotalCommission = last.Commission
	s.TotalReturnPercent = last.Total.Sub(initialCapital).Div(initialCapital).Mul(oneHundred)

	curve := make([]ValueAtTime, 0, len(snapshots)+1)
	curve = append(curve, ValueAtTime{Time: first.Time, Value: initialCapital})
	for i := range snapshots {
		curve = append(curve, ValueAtTime{Time: snapshots[i].Time, Value: snapshots[i].Total})
	}
	returns := periodReturns(curve)

	ppy := float64(periodsPerYear)
	rfPerPeriod := 0.0
	if periodsPerYear > 0 {
		rfPerPeriod = riskFreeRate.InexactFloat64() / ppy
	}
	avg := gctmath.ArithmeticAverage(returns)
	s.SharpeRatio = fromFloat(gctmath.Annualise(gctmath.CalculateSharpeRatio(returns, rfPerPeriod, avg), ppy))
	s.SortinoRatio = fromFloat(gctmath.Annualise(gctmath.CalculateSortinoRatio(returns, rfPerPeriod, avg), ppy))
	s.CAGR = fromFloat(gctmath.CalculateCompoundAnnualGrowthRate(
		initialCapital.InexactFloat64(),
		last.Total.InexactFloat64(),
		ppy,
		float64(len(returns))))

	var err error
	s.MaxDrawdown, err = CalculateBiggestValueAtTimeDrawdown(curve)
	if err != nil {
		return nil, err
	}
	s.LongestDrawdown = CalculateLongestDrawdown(curve)
	return s, nil
}

// CalculateBiggestValueAtTimeDrawdown finds the largest peak to trough fall
// of the curve. DrawdownPercent is zero or negative
func CalculateBiggestValueAtTimeDrawdown(values []ValueAtTime) (Swing, error) {
	if len(values) == 0 {
		return Swing{}, fmt.Errorf("%w to calculate drawdowns", errReceivedNoData)
	}
	peak, peakIdx := values[0], 0
	biggest := Swing{Highest: peak, Lowest: peak}
	for i := range values {
		if values[i].Value.GreaterThan(peak.Value) {
			peak, peakIdx = values[i], i
			continue
		}
		if !peak.Value.IsPositive() {
			continue
		}
		dd := values[i].Value.Sub(peak.Value).Div(peak.Value).Mul(oneHundred)
		if dd.LessThan(biggest.DrawdownPercent) {
			biggest = Swing{
				Highest:          peak,
				Lowest:           values[i],
				DrawdownPercent:  dd,
				IntervalDuration: int64(i - peakIdx),
			}
		}
	}
	return biggest, nil
}

// CalculateLongestDrawdown returns the most consecutive periods spent below
// the previous high
func CalculateLongestDrawdown(values []ValueAtTime) int64 {
	if len(values) == 0 {
		return 0
	}
	var longest, current int64
	high := values[0].Value
	for i := 1; i < len(values); i++ {
		if values[i].Value.GreaterThanOrEqual(high) {
			high = values[i].Value
			current = 0
			continue
		}
		current++
		if current > longest {
			longest = current
		}
	}
	return longest
}

// PrintResults logs the summary
func (s *Summary) PrintResults() {
	sl := common.SubLoggers[common.Statistics]
	log.Info(sl, "------------------Results------------------------------------")
	log.Infof(sl, "Periods: %v (%v to %v)", s.Periods, s.StartDate, s.EndDate)
	log.Infof(sl, "Initial capital: %v", s.InitialCapital)
	log.Infof(sl, "Final equity: %v", s.FinalEquity.Round(2))
	log.Infof(sl, "Total return: %v%%", s.TotalReturnPercent.Round(4))
	log.Infof(sl, "Compound annual growth rate: %v%%", s.CAGR.Round(4))
	log.Infof(sl, "Sharpe ratio: %v", s.SharpeRatio.Round(4))
	log.Infof(sl, "Sortino ratio: %v", s.SortinoRatio.Round(4))
	log.Infof(sl, "Max drawdown: %v%% over %v periods", s.MaxDrawdown.DrawdownPercent.Round(4), s.MaxDrawdown.IntervalDuration)
	log.Infof(sl, "Longest drawdown: %v periods", s.LongestDrawdown)
	log.Infof(sl, "Total commission: %v", s.TotalCommission.Round(4))
}

func periodReturns(curve []ValueAtTime) []float64 {
	if len(curve) < 2 {
		return nil
	}
	resp := make([]float64, 0, len(curve)-1)
	for i := 1; i < len(curve); i++ {
		prev := curve[i-1].Value
		if prev.IsZero() {
			resp = append(resp, 0)
			continue
		}
		resp = append(resp, curve[i].Value.Sub(prev).Div(prev).InexactFloat64())
	}
	return resp
}

func tail(snapshots []holdings.Snapshot, n int) []holdings.Snapshot {
	if len(snapshots) > n {
		snapshots = snapshots[len(snapshots)-n:]
	}
	return append([]holdings.Snapshot{}, snapshots...)
}

// fromFloat converts ratios which can be NaN or infinite on degenerate curves
func fromFloat(f float64) decimal.Decimal {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(f)
}
