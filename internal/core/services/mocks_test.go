package services

import (
	"context"

	"sacco-ledger/internal/adapters/persistence/models"

	"github.com/stretchr/testify/mock"
)

// MockMemberRepo
type MockMemberRepo struct {
	mock.Mock
}

func (m *MockMemberRepo) Create(ctx context.Context, member *models.Member) error {
	args := m.Called(ctx, member)
	return args.Error(0)
}
func (m *MockMemberRepo) GetByID(ctx context.Context, id string) (*models.Member, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Member), args.Error(1)
}
func (m *MockMemberRepo) List(ctx context.Context, offset, limit int) ([]*models.Member, int64, error) {
	args := m.Called(ctx, offset, limit)
	return args.Get(0).([]*models.Member), args.Get(1).(int64), args.Error(2)
}
func (m *MockMemberRepo) ListAll(ctx context.Context) ([]*models.Member, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*models.Member), args.Error(1)
}
func (m *MockMemberRepo) Update(ctx context.Context, member *models.Member) error {
	args := m.Called(ctx, member)
	return args.Error(0)
}
func (m *MockMemberRepo) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockLoanRepo
type MockLoanRepo struct {
	mock.Mock
}

func (m *MockLoanRepo) Create(ctx context.Context, loan *models.Loan) error {
	args := m.Called(ctx, loan)
	return args.Error(0)
}
func (m *MockLoanRepo) GetByID(ctx context.Context, id string) (*models.Loan, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Loan), args.Error(1)
}
func (m *MockLoanRepo) List(ctx context.Context, offset, limit int) ([]*models.Loan, int64, error) {
	args := m.Called(ctx, offset, limit)
	return args.Get(0).([]*models.Loan), args.Get(1).(int64), args.Error(2)
}
func (m *MockLoanRepo) ListAll(ctx context.Context) ([]*models.Loan, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*models.Loan), args.Error(1)
}
func (m *MockLoanRepo) ListByMember(ctx context.Context, memberID string) ([]*models.Loan, error) {
	args := m.Called(ctx, memberID)
	return args.Get(0).([]*models.Loan), args.Error(1)
}
func (m *MockLoanRepo) Update(ctx context.Context, loan *models.Loan) error {
	args := m.Called(ctx, loan)
	return args.Error(0)
}
func (m *MockLoanRepo) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockPaymentRepo
type MockPaymentRepo struct {
	mock.Mock
}

func (m *MockPaymentRepo) CreateAndApply(ctx context.Context, payment *models.Payment) (*models.Loan, error) {
	args := m.Called(ctx, payment)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Loan), args.Error(1)
}
func (m *MockPaymentRepo) DeleteAndRevert(ctx context.Context, id string) (*models.Payment, *models.Loan, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var loan *models.Loan
	if args.Get(1) != nil {
		loan = args.Get(1).(*models.Loan)
	}
	return args.Get(0).(*models.Payment), loan, args.Error(2)
}
func (m *MockPaymentRepo) GetByID(ctx context.Context, id string) (*models.Payment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Payment), args.Error(1)
}
func (m *MockPaymentRepo) ListAll(ctx context.Context) ([]*models.Payment, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*models.Payment), args.Error(1)
}
func (m *MockPaymentRepo) ListByLoan(ctx context.Context, loanID string) ([]*models.Payment, error) {
	args := m.Called(ctx, loanID)
	return args.Get(0).([]*models.Payment), args.Error(1)
}

// MockSavingRepo
type MockSavingRepo struct {
	mock.Mock
}

func (m *MockSavingRepo) Create(ctx context.Context, saving *models.Saving) error {
	args := m.Called(ctx, saving)
	return args.Error(0)
}
func (m *MockSavingRepo) GetByID(ctx context.Context, id string) (*models.Saving, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Saving), args.Error(1)
}
func (m *MockSavingRepo) ListAll(ctx context.Context) ([]*models.Saving, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*models.Saving), args.Error(1)
}
func (m *MockSavingRepo) ListByMember(ctx context.Context, memberID string) ([]*models.Saving, error) {
	args := m.Called(ctx, memberID)
	return args.Get(0).([]*models.Saving), args.Error(1)
}
func (m *MockSavingRepo) TotalByMember(ctx context.Context, memberID string) (float64, error) {
	args := m.Called(ctx, memberID)
	return args.Get(0).(float64), args.Error(1)
}
func (m *MockSavingRepo) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockWithdrawalRepo
type MockWithdrawalRepo struct {
	mock.Mock
}

func (m *MockWithdrawalRepo) Create(ctx context.Context, withdrawal *models.Withdrawal) error {
	args := m.Called(ctx, withdrawal)
	return args.Error(0)
}
func (m *MockWithdrawalRepo) ListAll(ctx context.Context) ([]*models.Withdrawal, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*models.Withdrawal), args.Error(1)
}
func (m *MockWithdrawalRepo) ListByMember(ctx context.Context, memberID string) ([]*models.Withdrawal, error) {
	args := m.Called(ctx, memberID)
	return args.Get(0).([]*models.Withdrawal), args.Error(1)
}
func (m *MockWithdrawalRepo) TotalByMember(ctx context.Context, memberID string) (float64, error) {
	args := m.Called(ctx, memberID)
	return args.Get(0).(float64), args.Error(1)
}

// MockAuditLogRepo
type MockAuditLogRepo struct {
	mock.Mock
}

func (m *MockAuditLogRepo) Append(ctx context.Context, entry *models.AuditLog) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}
func (m *MockAuditLogRepo) List(ctx context.Context, offset, limit int) ([]*models.AuditLog, int64, error) {
	args := m.Called(ctx, offset, limit)
	return args.Get(0).([]*models.AuditLog), args.Get(1).(int64), args.Error(2)
}
func (m *MockAuditLogRepo) ListAll(ctx context.Context) ([]*models.AuditLog, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*models.AuditLog), args.Error(1)
}
// MockSettingRepo
type MockSettingRepo struct {
	mock.Mock
}

func (m *MockSettingRepo) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}
func (m *MockSettingRepo) Set(ctx context.Context, key, value string) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

// MockBackupRepo
type MockBackupRepo struct {
	mock.Mock
}

func (m *MockBackupRepo) ReplaceCollections(ctx context.Context, snapshot *models.Snapshot) error {
	args := m.Called(ctx, snapshot)
	return args.Error(0)
}
func (m *MockBackupRepo) Reset(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
