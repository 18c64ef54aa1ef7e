package finance

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMonthlyPayment(t *testing.T) {
	t.Run("ZeroRateDividesEvenly", func(t *testing.T) {
		// 1,200,000 over 12 months at 0% must be exactly 100,000 with
		// no floating point residue.
		got := MonthlyPayment(1200000, 0, 12)
		assert.Equal(t, 100000.0, got)
	})

	t.Run("AmortizedPayment", func(t *testing.T) {
		// 100,000 at 24% annual (2% monthly) over 12 months.
		got := MonthlyPayment(100000, 24, 12)
		assert.InDelta(t, 9455.96, got, 0.01)
	})

	t.Run("ZeroTermReturnsZero", func(t *testing.T) {
		assert.Equal(t, 0.0, MonthlyPayment(100000, 12, 0))
	})

	t.Run("ZeroPrincipalReturnsZero", func(t *testing.T) {
		assert.Equal(t, 0.0, MonthlyPayment(0, 12, 12))
	})
}

func TestSimpleInterest(t *testing.T) {
	t.Run("FlatRateOverTerm", func(t *testing.T) {
		// 100,000 * 2 * 12 / 1200 = 2,000
		assert.Equal(t, 2000.0, SimpleInterest(100000, 2, 12))
	})

	t.Run("ZeroRate", func(t *testing.T) {
		assert.Equal(t, 0.0, SimpleInterest(100000, 0, 12))
	})
}

func TestSum(t *testing.T) {
	t.Run("NoFloatDrift", func(t *testing.T) {
		amounts := []float64{0.1, 0.2, 0.3}
		assert.Equal(t, 0.6, Sum(amounts))
	})

	t.Run("Empty", func(t *testing.T) {
		assert.Equal(t, 0.0, Sum(nil))
	})
}

func TestRound(t *testing.T) {
	assert.Equal(t, 6.5, Round1(6.49999999))
	assert.Equal(t, 3.1, Round1(3.14))
	assert.Equal(t, 9455.96, Round2(9455.9571))
}

func TestStdDev(t *testing.T) {
	t.Run("UniformValuesHaveZeroDeviation", func(t *testing.T) {
		assert.Equal(t, 0.0, StdDev([]float64{5000, 5000, 5000}))
	})

	t.Run("PopulationDeviation", func(t *testing.T) {
		assert.InDelta(t, 2.0, StdDev([]float64{2, 4, 4, 4, 5, 5, 7, 9}), 1e-9)
	})

	t.Run("Empty", func(t *testing.T) {
		assert.Equal(t, 0.0, StdDev(nil))
	})
}

func TestMean(t *testing.T) {
	assert.Equal(t, 5.0, Mean([]float64{2, 4, 4, 4, 5, 5, 7, 9}))
	assert.Equal(t, 0.0, Mean(nil))
}
