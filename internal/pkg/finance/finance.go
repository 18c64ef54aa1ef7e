package finance

import (
	"math"

	"github.com/shopspring/decimal"
)

// MonthlyPayment returns the level monthly installment for a loan using
// standard amortization: P * [r(1+r)^n] / [(1+r)^n - 1], where r is the
// monthly rate and n the term in months. A zero rate degrades to simple
// division of principal over the term.
func MonthlyPayment(principal, annualRatePercent float64, termMonths int) float64 {
	if termMonths <= 0 || principal <= 0 {
		return 0
	}

	monthlyRate := annualRatePercent / 100 / 12
	if monthlyRate == 0 {
		p := decimal.NewFromFloat(principal)
		n := decimal.NewFromInt(int64(termMonths))
		f, _ := p.Div(n).Round(2).Float64()
		return f
	}

	factor := math.Pow(1+monthlyRate, float64(termMonths))
	payment := principal * (monthlyRate * factor) / (factor - 1)
	return Round2(payment)
}

// SimpleInterest returns the total interest over the life of a loan at a
// flat monthly percentage rate: amount * rate * term / 1200.
func SimpleInterest(amount, annualRatePercent float64, termMonths int) float64 {
	a := decimal.NewFromFloat(amount)
	r := decimal.NewFromFloat(annualRatePercent)
	t := decimal.NewFromInt(int64(termMonths))

	interest := a.Mul(r).Mul(t).Div(decimal.NewFromInt(1200))
	f, _ := interest.Round(2).Float64()
	return f
}

// Sum adds a slice of amounts without accumulating float drift.
func Sum(amounts []float64) float64 {
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(decimal.NewFromFloat(a))
	}
	f, _ := total.Float64()
	return f
}

// Round1 rounds to one decimal place.
func Round1(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(1).Float64()
	return f
}

// Round2 rounds to two decimal places.
func Round2(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}

// StdDev returns the population standard deviation of the values.
func StdDev(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	mean := Mean(values)
	var variance float64
	for _, v := range values {
		d := v - mean
		variance += d * d
	}
	variance /= float64(len(values))
	return math.Sqrt(variance)
}

// Mean returns the arithmetic mean of the values (0 for an empty slice).
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return Sum(values) / float64(len(values))
}
