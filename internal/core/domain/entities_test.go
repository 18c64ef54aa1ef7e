package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveLoanStatus(t *testing.T) {
	t.Run("PartialPaymentStaysActive", func(t *testing.T) {
		assert.Equal(t, LoanStatusActive, ResolveLoanStatus(500000, 1000000))
	})

	t.Run("ExactPaymentCompletes", func(t *testing.T) {
		assert.Equal(t, LoanStatusCompleted, ResolveLoanStatus(1000000, 1000000))
	})

	t.Run("OverpaymentCompletes", func(t *testing.T) {
		assert.Equal(t, LoanStatusCompleted, ResolveLoanStatus(1000001, 1000000))
	})

	t.Run("ZeroPaidStaysActive", func(t *testing.T) {
		assert.Equal(t, LoanStatusActive, ResolveLoanStatus(0, 1000000))
	})
}

func TestLoanStatus_IsOutstanding(t *testing.T) {
	assert.True(t, LoanStatusActive.IsOutstanding())
	assert.True(t, LoanStatusOverdue.IsOutstanding())
	assert.False(t, LoanStatusCompleted.IsOutstanding())
	assert.False(t, LoanStatusDefaulted.IsOutstanding())
}

func TestRiskLevelForScore(t *testing.T) {
	tests := []struct {
		name  string
		score float64
		want  RiskLevel
	}{
		{"ZeroIsLow", 0, RiskLow},
		{"BoundaryThreeIsLow", 3, RiskLow},
		{"JustAboveThreeIsMedium", 3.1, RiskMedium},
		{"BoundarySevenIsMedium", 7, RiskMedium},
		{"JustAboveSevenIsHigh", 7.1, RiskHigh},
		{"TenIsHigh", 10, RiskHigh},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RiskLevelForScore(tt.score))
		})
	}
}
