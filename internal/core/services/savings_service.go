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

// SavingsService handles saving and withdrawal business logic
type SavingsService struct {
	savingRepo     repositories.SavingRepository
	withdrawalRepo repositories.WithdrawalRepository
	memberRepo     repositories.MemberRepository
	auditRepo      repositories.AuditLogRepository
	settingRepo    repositories.SettingRepository
	version        *LedgerVersion
}

// NewSavingsService creates a new savings service
func NewSavingsService(
	savingRepo repositories.SavingRepository,
	withdrawalRepo repositories.WithdrawalRepository,
	memberRepo repositories.MemberRepository,
	auditRepo repositories.AuditLogRepository,
	settingRepo repositories.SettingRepository,
	version *LedgerVersion,
) *SavingsService {
	return &SavingsService{
		savingRepo:     savingRepo,
		withdrawalRepo: withdrawalRepo,
		memberRepo:     memberRepo,
		auditRepo:      auditRepo,
		settingRepo:    settingRepo,
		version:        version,
	}
}

// AddSavingInput represents add saving input
type AddSavingInput struct {
	MemberID   string     `json:"memberId" validate:"required"`
	Amount     float64    `json:"amount" validate:"required,gt=0"`
	SavingDate *time.Time `json:"savingDate,omitempty"`
}

// AddSaving records a saving deposit
func (s *SavingsService) AddSaving(ctx context.Context, input *AddSavingInput) (*models.Saving, error) {
	if input.Amount <= 0 {
		return nil, domain.ErrInvalidInput
	}

	if _, err := s.memberRepo.GetByID(ctx, input.MemberID); err != nil {
		return nil, err
	}

	savingDate := time.Now()
	if input.SavingDate != nil {
		savingDate = *input.SavingDate
	}

	saving := &models.Saving{
		ID:         uuid.NewString(),
		MemberID:   input.MemberID,
		Amount:     input.Amount,
		SavingDate: savingDate,
	}

	if err := s.savingRepo.Create(ctx, saving); err != nil {
		return nil, err
	}

	s.version.Bump()
	return saving, nil
}

// AddWithdrawalInput represents add withdrawal input
type AddWithdrawalInput struct {
	MemberID       string     `json:"memberId" validate:"required"`
	Amount         float64    `json:"amount" validate:"required,gt=0"`
	WithdrawalDate *time.Time `json:"withdrawalDate,omitempty"`
}

// AddWithdrawal records a withdrawal and appends an audit entry carrying
// the acting role. The member's balance is allowed to go negative.
func (s *SavingsService) AddWithdrawal(ctx context.Context, input *AddWithdrawalInput) (*models.Withdrawal, error) {
	if input.Amount <= 0 {
		return nil, domain.ErrInvalidInput
	}

	member, err := s.memberRepo.GetByID(ctx, input.MemberID)
	if err != nil {
		return nil, err
	}

	withdrawalDate := time.Now()
	if input.WithdrawalDate != nil {
		withdrawalDate = *input.WithdrawalDate
	}

	withdrawal := &models.Withdrawal{
		ID:             uuid.NewString(),
		MemberID:       input.MemberID,
		Amount:         input.Amount,
		WithdrawalDate: withdrawalDate,
	}

	if err := s.withdrawalRepo.Create(ctx, withdrawal); err != nil {
		return nil, err
	}

	role, err := s.settingRepo.Get(ctx, models.SettingUserRole)
	if err != nil || role == "" {
		role = domain.DefaultRole
	}

	entry := &models.AuditLog{
		ID:      uuid.NewString(),
		Action:  models.AuditWithdrawal,
		Details: fmt.Sprintf("Withdrawal of %.2f for member %s (%s)", input.Amount, member.Name, member.ID),
		Role:    role,
	}
	if err := s.auditRepo.Append(ctx, entry); err != nil {
		return nil, err
	}

	s.version.Bump()
	return withdrawal, nil
}

// ListSavings lists every saving record
func (s *SavingsService) ListSavings(ctx context.Context) ([]*models.Saving, error) {
	return s.savingRepo.ListAll(ctx)
}

// ListSavingsByMember lists a member's savings
func (s *SavingsService) ListSavingsByMember(ctx context.Context, memberID string) ([]*models.Saving, error) {
	return s.savingRepo.ListByMember(ctx, memberID)
}

// ListWithdrawals lists every withdrawal record
func (s *SavingsService) ListWithdrawals(ctx context.Context) ([]*models.Withdrawal, error) {
	return s.withdrawalRepo.ListAll(ctx)
}

// ListWithdrawalsByMember lists a member's withdrawals
func (s *SavingsService) ListWithdrawalsByMember(ctx context.Context, memberID string) ([]*models.Withdrawal, error) {
	return s.withdrawalRepo.ListByMember(ctx, memberID)
}

// MemberBalance returns a member's net savings balance (deposits minus
// withdrawals, may be negative)
func (s *SavingsService) MemberBalance(ctx context.Context, memberID string) (float64, error) {
	deposited, err := s.savingRepo.TotalByMember(ctx, memberID)
	if err != nil {
		return 0, err
	}
	withdrawn, err := s.withdrawalRepo.TotalByMember(ctx, memberID)
	if err != nil {
		return 0, err
	}
	return deposited - withdrawn, nil
}

// DeleteSaving removes a saving record
func (s *SavingsService) DeleteSaving(ctx context.Context, id string) error {
	if err := s.savingRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.version.Bump()
	return nil
}
