package services

import (
	"context"
	"fmt"
	"time"

	"sacco-ledger/internal/adapters/persistence/models"
	"sacco-ledger/internal/adapters/persistence/repositories"
	"sacco-ledger/internal/core/domain"

	"github.com/google/uuid"
)

// BackupService handles whole-ledger export, import and reset
type BackupService struct {
	memberRepo     repositories.MemberRepository
	loanRepo       repositories.LoanRepository
	paymentRepo    repositories.PaymentRepository
	savingRepo     repositories.SavingRepository
	withdrawalRepo repositories.WithdrawalRepository
	auditRepo      repositories.AuditLogRepository
	settingRepo    repositories.SettingRepository
	backupRepo     repositories.BackupRepository
	version        *LedgerVersion
}

// NewBackupService creates a new backup service
func NewBackupService(
	memberRepo repositories.MemberRepository,
	loanRepo repositories.LoanRepository,
	paymentRepo repositories.PaymentRepository,
	savingRepo repositories.SavingRepository,
	withdrawalRepo repositories.WithdrawalRepository,
	auditRepo repositories.AuditLogRepository,
	settingRepo repositories.SettingRepository,
	backupRepo repositories.BackupRepository,
	version *LedgerVersion,
) *BackupService {
	return &BackupService{
		memberRepo:     memberRepo,
		loanRepo:       loanRepo,
		paymentRepo:    paymentRepo,
		savingRepo:     savingRepo,
		withdrawalRepo: withdrawalRepo,
		auditRepo:      auditRepo,
		settingRepo:    settingRepo,
		backupRepo:     backupRepo,
		version:        version,
	}
}

// Export captures every collection into a snapshot
func (s *BackupService) Export(ctx context.Context) (*models.Snapshot, error) {
	members, err := s.memberRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	loans, err := s.loanRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	payments, err := s.paymentRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	savings, err := s.savingRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	withdrawals, err := s.withdrawalRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	auditLog, err := s.auditRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	return &models.Snapshot{
		Members:     members,
		Loans:       loans,
		Payments:    payments,
		Savings:     savings,
		Withdrawals: withdrawals,
		AuditLog:    auditLog,
		ExportedAt:  time.Now(),
	}, nil
}

// Import overwrites the ledger collections from a snapshot and appends
// a DATA_IMPORT audit entry. Collections absent from the snapshot are
// left untouched.
func (s *BackupService) Import(ctx context.Context, snapshot *models.Snapshot) error {
	if snapshot == nil {
		return domain.ErrInvalidInput
	}

	if err := s.backupRepo.ReplaceCollections(ctx, snapshot); err != nil {
		return err
	}

	role, err := s.settingRepo.Get(ctx, models.SettingUserRole)
	if err != nil || role == "" {
		role = domain.DefaultRole
	}

	entry := &models.AuditLog{
		ID:     uuid.NewString(),
		Action: models.AuditDataImport,
		Details: fmt.Sprintf("Imported snapshot: %d members, %d loans, %d payments, %d savings, %d withdrawals",
			len(snapshot.Members), len(snapshot.Loans), len(snapshot.Payments),
			len(snapshot.Savings), len(snapshot.Withdrawals)),
		Role: role,
	}
	if err := s.auditRepo.Append(ctx, entry); err != nil {
		return err
	}

	s.version.Bump()
	return nil
}

// Clear empties every collection, re-seeds the default role and appends
// a DATA_RESET audit entry
func (s *BackupService) Clear(ctx context.Context) error {
	if err := s.backupRepo.Reset(ctx); err != nil {
		return err
	}

	if err := s.settingRepo.Set(ctx, models.SettingUserRole, domain.DefaultRole); err != nil {
		return err
	}

	entry := &models.AuditLog{
		ID:      uuid.NewString(),
		Action:  models.AuditDataReset,
		Details: "All ledger data cleared and defaults re-seeded",
		Role:    domain.DefaultRole,
	}
	if err := s.auditRepo.Append(ctx, entry); err != nil {
		return err
	}

	s.version.Bump()
	return nil
}
