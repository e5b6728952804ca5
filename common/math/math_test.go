package math

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateCompoundAnnualGrowthRate(t *testing.T) {
	t.Parallel()
	assert.InDelta(t, 10.0, CalculateCompoundAnnualGrowthRate(100, 121, 1, 2), 1e-9)
	assert.Zero(t, CalculateCompoundAnnualGrowthRate(0, 121, 1, 2))
	assert.Zero(t, CalculateCompoundAnnualGrowthRate(100, 121, 1, 0))
}

func TestSampleStandardDeviation(t *testing.T) {
	t.Parallel()
	values := []float64{2, 4, 4, 4, 5, 5, 7, 9}
	assert.InDelta(t, 2.138089935299395, SampleStandardDeviation(values), 1e-12)
	assert.Zero(t, SampleStandardDeviation([]float64{1}))
}

func TestArithmeticAverage(t *testing.T) {
	t.Parallel()
	assert.Zero(t, ArithmeticAverage(nil))
	assert.Equal(t, 2.5, ArithmeticAverage([]float64{1, 2, 3, 4}))
}

func TestCalculateSharpeRatio(t *testing.T) {
	t.Parallel()
	assert.Zero(t, CalculateSharpeRatio([]float64{0.1}, 0, 0.1))
	assert.Zero(t, CalculateSharpeRatio([]float64{0.1, 0.1, 0.1}, 0, 0.1))
	flat := []float64{0.1, 0.1, 0.1, 0.1, 0.1, 0.1, 0.1}
	assert.Zero(t, CalculateSharpeRatio(flat, 0.02/252, ArithmeticAverage(flat)), "rounding residue is not a deviation")

	returns := []float64{0.01, -0.02, 0.03, 0.02}
	avg := ArithmeticAverage(returns)
	expected := avg / SampleStandardDeviation(returns)
	assert.InDelta(t, expected, CalculateSharpeRatio(returns, 0, avg), 1e-12)
}

func TestCalculateSortinoRatio(t *testing.T) {
	t.Parallel()
	assert.Zero(t, CalculateSortinoRatio(nil, 0, 0))
	assert.Zero(t, CalculateSortinoRatio([]float64{0.1, 0.2}, 0, 0.15))

	returns := []float64{0.02, -0.02}
	downside := math.Sqrt(0.0004 / 2)
	assert.Zero(t, CalculateSortinoRatio(returns, 0, 0))
	assert.InDelta(t, 0.01/downside, CalculateSortinoRatio(returns, 0, 0.01), 1e-12)
	assert.Zero(t, CalculateSortinoRatio([]float64{-1e-15, 0.01}, 0, 0.005), "rounding residue is not a deviation")
}

func TestAnnualise(t *testing.T) {
	t.Parallel()
	assert.Equal(t, 2.0, Annualise(1, 4))
	assert.Equal(t, 1.5, Annualise(1.5, 0))
}
