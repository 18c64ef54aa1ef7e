package domain

// LoanStatus represents the lifecycle state of a loan
type LoanStatus string

const (
	LoanStatusActive    LoanStatus = "active"
	LoanStatusCompleted LoanStatus = "completed"
	LoanStatusOverdue   LoanStatus = "overdue"
	LoanStatusDefaulted LoanStatus = "defaulted"
)

// ResolveLoanStatus derives loan status from the paid total.
// A loan is completed exactly when paid covers the principal; anything
// less reverts to active, also after a payment deletion.
func ResolveLoanStatus(paid, amount float64) LoanStatus {
	if paid >= amount {
		return LoanStatusCompleted
	}
	return LoanStatusActive
}

// IsOutstanding reports whether a status still carries debt
func (s LoanStatus) IsOutstanding() bool {
	return s == LoanStatusActive || s == LoanStatusOverdue
}

// RiskLevel buckets a 0-10 risk score
type RiskLevel string

const (
	RiskLow    RiskLevel = "LOW"
	RiskMedium RiskLevel = "MEDIUM"
	RiskHigh   RiskLevel = "HIGH"
)

// RiskLevelForScore maps a composite risk score to a level.
// Boundary scores (exactly 3 or 7) resolve to the lower-risk bucket.
func RiskLevelForScore(score float64) RiskLevel {
	switch {
	case score <= 3:
		return RiskLow
	case score <= 7:
		return RiskMedium
	default:
		return RiskHigh
	}
}

// DefaultRole is the acting role recorded on audit entries when no
// role has been stored yet
const DefaultRole = "admin"
