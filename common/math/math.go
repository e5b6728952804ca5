package math

import (
	"math"
)

// deviationEpsilon is the smallest deviation treated as non-zero. Rounding
// in the mean of identical values leaves a residue below it
const deviationEpsilon = 1e-12

// CalculateCompoundAnnualGrowthRate Calculates CAGR.
// Using days, intervals per year would be 365 and number of intervals would be the number of days
func CalculateCompoundAnnualGrowthRate(openValue, closeValue, intervalsPerYear, numberOfIntervals float64) float64 {
	if openValue <= 0 || closeValue < 0 || numberOfIntervals <= 0 {
		return 0
	}
	k := math.Pow(closeValue/openValue, intervalsPerYear/numberOfIntervals) - 1
	return k * 100
}

// SampleStandardDeviation is the square root of the unbiased variance of vals
func SampleStandardDeviation(vals []float64) float64 {
	if len(vals) <= 1 {
		return 0
	}
	mean := ArithmeticAverage(vals)
	var combined float64
	for i := range vals {
		combined += math.Pow(vals[i]-mean, 2)
	}
	return math.Sqrt(combined / float64(len(vals)-1))
}

// ArithmeticAverage is the basic form of calculating an average.
// Divide the sum of all values by the length of values
func ArithmeticAverage(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sumOfValues float64
	for x := range values {
		sumOfValues += values[x]
	}
	return sumOfValues / float64(len(values))
}

// CalculateSortinoRatio returns sortino ratio of backtest compared to risk-free
func CalculateSortinoRatio(movementPerCandle []float64, riskFreeRate, average float64) float64 {
	if len(movementPerCandle) == 0 {
		return 0
	}
	totalNegativeResultsSquared := 0.0
	for x := range movementPerCandle {
		if movementPerCandle[x]-riskFreeRate < 0 {
			totalNegativeResultsSquared += math.Pow(movementPerCandle[x]-riskFreeRate, 2)
		}
	}
	averageDownsideDeviation := math.Sqrt(totalNegativeResultsSquared / float64(len(movementPerCandle)))
	if averageDownsideDeviation < deviationEpsilon {
		return 0
	}
	return (average - riskFreeRate) / averageDownsideDeviation
}

// CalculateSharpeRatio returns sharpe ratio of backtest compared to risk-free
func CalculateSharpeRatio(movementPerCandle []float64, riskFreeRate, average float64) float64 {
	if len(movementPerCandle) <= 1 {
		return 0
	}
	excessReturns := make([]float64, len(movementPerCandle))
	for i := range movementPerCandle {
		excessReturns[i] = movementPerCandle[i] - riskFreeRate
	}
	standardDeviation := SampleStandardDeviation(excessReturns)
	if standardDeviation < deviationEpsilon {
		return 0
	}
	return (average - riskFreeRate) / standardDeviation
}

// Annualise scales a per period ratio to a yearly one
func Annualise(ratio, periodsPerYear float64) float64 {
	if periodsPerYear <= 0 {
		return ratio
	}
	return ratio * math.Sqrt(periodsPerYear)
}
