package models

import (
	"time"

	"sacco-ledger/internal/core/domain"

	"gorm.io/gorm"
)

// ============================================================
// Ledger collections
// ============================================================

// Member represents members table
type Member struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	Email     string    `gorm:"size:100" json:"email"`
	Phone     string    `gorm:"size:30" json:"phone"`
	IDNo      string    `gorm:"size:20" json:"idNo"`
	JoinDate  time.Time `gorm:"not null" json:"joinDate"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (Member) TableName() string {
	return "members"
}

// Loan represents loans table
type Loan struct {
	ID           string            `gorm:"primaryKey;size:36" json:"id"`
	MemberID     string            `gorm:"size:36;not null;index" json:"memberId"`
	Amount       float64           `gorm:"type:decimal(15,2);not null" json:"amount"`
	InterestRate float64           `gorm:"type:decimal(5,2);not null" json:"interestRate"`
	Term         int               `gorm:"not null" json:"term"`
	LoanDate     time.Time         `gorm:"not null" json:"loanDate"`
	DueDate      time.Time         `gorm:"not null" json:"dueDate"`
	Paid         float64           `gorm:"type:decimal(15,2);not null;default:0" json:"paid"`
	Penalty      float64           `gorm:"type:decimal(15,2);not null;default:0" json:"penalty"`
	Status       domain.LoanStatus `gorm:"size:20;not null;default:'active'" json:"status"`
	CreatedAt    time.Time         `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt    time.Time         `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (Loan) TableName() string {
	return "loans"
}

// Remaining returns the unpaid principal
func (l *Loan) Remaining() float64 {
	return l.Amount - l.Paid
}

// Payment represents payments table. DueDate is the scheduled date the
// installment was expected; it is optional and only feeds the risk
// engine's late/missed classification.
type Payment struct {
	ID          string     `gorm:"primaryKey;size:36" json:"id"`
	LoanID      string     `gorm:"size:36;not null;index" json:"loanId"`
	Amount      float64    `gorm:"type:decimal(15,2);not null" json:"amount"`
	PaymentDate time.Time  `gorm:"not null" json:"paymentDate"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"createdAt"`
}

func (Payment) TableName() string {
	return "payments"
}

// DaysLate returns how many whole days past the scheduled date the
// payment arrived (0 when on time or unscheduled)
func (p *Payment) DaysLate() int {
	if p.DueDate == nil {
		return 0
	}
	days := int(p.PaymentDate.Sub(*p.DueDate).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}

// Saving represents savings table
type Saving struct {
	ID         string    `gorm:"primaryKey;size:36" json:"id"`
	MemberID   string    `gorm:"size:36;not null;index" json:"memberId"`
	Amount     float64   `gorm:"type:decimal(15,2);not null" json:"amount"`
	SavingDate time.Time `gorm:"not null" json:"savingDate"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

func (Saving) TableName() string {
	return "savings"
}

// Withdrawal represents withdrawals table
type Withdrawal struct {
	ID             string    `gorm:"primaryKey;size:36" json:"id"`
	MemberID       string    `gorm:"size:36;not null;index" json:"memberId"`
	Amount         float64   `gorm:"type:decimal(15,2);not null" json:"amount"`
	WithdrawalDate time.Time `gorm:"not null" json:"withdrawalDate"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

func (Withdrawal) TableName() string {
	return "withdrawals"
}

// AuditLog represents audit_log table. Append-only; never mutated or
// deleted through normal operation.
type AuditLog struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Action    string    `gorm:"size:50;not null;index" json:"action"`
	Details   string    `gorm:"type:text" json:"details"`
	Role      string    `gorm:"size:20;not null" json:"role"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"timestamp"`
}

func (AuditLog) TableName() string {
	return "audit_log"
}

// Audit actions
const (
	AuditWithdrawal = "WITHDRAWAL"
	AuditDataImport = "DATA_IMPORT"
	AuditDataReset  = "DATA_RESET"
	AuditRiskScan   = "RISK_SCAN"
	AuditRoleChange = "ROLE_CHANGE"
)

// Setting represents settings table (singleton key/value entries)
type Setting struct {
	Key       string    `gorm:"primaryKey;size:50" json:"key"`
	Value     string    `gorm:"size:255;not null" json:"value"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (Setting) TableName() string {
	return "settings"
}

// Setting keys
const (
	SettingUserRole = "userRole"
)

// ============================================================
// Auto Migration
// ============================================================

// AutoMigrate creates the ledger tables if they do not exist. Existing
// data is never overwritten.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&Member{},
		&Loan{},
		&Payment{},
		&Saving{},
		&Withdrawal{},
		&AuditLog{},
		&Setting{},
	)
}
