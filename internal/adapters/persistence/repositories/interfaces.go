package repositories

import (
	"context"

	"sacco-ledger/internal/adapters/persistence/models"
)

// MemberRepository defines member repository interface
type MemberRepository interface {
	Create(ctx context.Context, member *models.Member) error
	GetByID(ctx context.Context, id string) (*models.Member, error)
	List(ctx context.Context, offset, limit int) ([]*models.Member, int64, error)
	ListAll(ctx context.Context) ([]*models.Member, error)
	Update(ctx context.Context, member *models.Member) error
	Delete(ctx context.Context, id string) error
}

// LoanRepository defines loan repository interface
type LoanRepository interface {
	Create(ctx context.Context, loan *models.Loan) error
	GetByID(ctx context.Context, id string) (*models.Loan, error)
	List(ctx context.Context, offset, limit int) ([]*models.Loan, int64, error)
	ListAll(ctx context.Context) ([]*models.Loan, error)
	ListByMember(ctx context.Context, memberID string) ([]*models.Loan, error)
	Update(ctx context.Context, loan *models.Loan) error
	Delete(ctx context.Context, id string) error
}

// PaymentRepository defines payment repository interface.
//
// CreateAndApply and DeleteAndRevert are compound operations: the payment
// row and the parent loan's paid/status change are committed in a single
// database transaction, so a payment can never exist whose effect on the
// loan was lost (and vice versa).
type PaymentRepository interface {
	CreateAndApply(ctx context.Context, payment *models.Payment) (*models.Loan, error)
	DeleteAndRevert(ctx context.Context, id string) (*models.Payment, *models.Loan, error)
	GetByID(ctx context.Context, id string) (*models.Payment, error)
	ListAll(ctx context.Context) ([]*models.Payment, error)
	ListByLoan(ctx context.Context, loanID string) ([]*models.Payment, error)
}

// SavingRepository defines saving repository interface
type SavingRepository interface {
	Create(ctx context.Context, saving *models.Saving) error
	GetByID(ctx context.Context, id string) (*models.Saving, error)
	ListAll(ctx context.Context) ([]*models.Saving, error)
	ListByMember(ctx context.Context, memberID string) ([]*models.Saving, error)
	TotalByMember(ctx context.Context, memberID string) (float64, error)
	Delete(ctx context.Context, id string) error
}

// WithdrawalRepository defines withdrawal repository interface
type WithdrawalRepository interface {
	Create(ctx context.Context, withdrawal *models.Withdrawal) error
	ListAll(ctx context.Context) ([]*models.Withdrawal, error)
	ListByMember(ctx context.Context, memberID string) ([]*models.Withdrawal, error)
	TotalByMember(ctx context.Context, memberID string) (float64, error)
}

// AuditLogRepository defines audit log repository interface (append-only)
type AuditLogRepository interface {
	Append(ctx context.Context, entry *models.AuditLog) error
	List(ctx context.Context, offset, limit int) ([]*models.AuditLog, int64, error)
	ListAll(ctx context.Context) ([]*models.AuditLog, error)
}

// SettingRepository defines settings repository interface
type SettingRepository interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}

// BackupRepository defines bulk snapshot operations. ReplaceCollections
// overwrites the ledger collections wholesale inside one transaction;
// Reset empties every collection including audit log and settings.
type BackupRepository interface {
	ReplaceCollections(ctx context.Context, snapshot *models.Snapshot) error
	Reset(ctx context.Context) error
}
