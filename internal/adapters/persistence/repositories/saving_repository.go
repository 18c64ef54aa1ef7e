package repositories

import (
	"context"
	"errors"

	"sacco-ledger/internal/adapters/persistence/models"
	"sacco-ledger/internal/core/domain"

	"gorm.io/gorm"
)

// savingRepository implements SavingRepository interface
type savingRepository struct {
	db *gorm.DB
}

// NewSavingRepository creates a new saving repository
func NewSavingRepository(db *gorm.DB) SavingRepository {
	return &savingRepository{db: db}
}

// Create creates a new saving record
func (r *savingRepository) Create(ctx context.Context, saving *models.Saving) error {
	return r.db.WithContext(ctx).Create(saving).Error
}

// GetByID gets a saving by ID
func (r *savingRepository) GetByID(ctx context.Context, id string) (*models.Saving, error) {
	var saving models.Saving
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&saving).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrSavingNotFound
		}
		return nil, err
	}
	return &saving, nil
}

// ListAll lists every saving record
func (r *savingRepository) ListAll(ctx context.Context) ([]*models.Saving, error) {
	var savings []*models.Saving
	err := r.db.WithContext(ctx).Order("saving_date ASC").Find(&savings).Error
	return savings, err
}

// ListByMember lists a member's savings, oldest first
func (r *savingRepository) ListByMember(ctx context.Context, memberID string) ([]*models.Saving, error) {
	var savings []*models.Saving
	err := r.db.WithContext(ctx).
		Where("member_id = ?", memberID).
		Order("saving_date ASC").
		Find(&savings).Error
	return savings, err
}

// TotalByMember sums a member's saving amounts
func (r *savingRepository) TotalByMember(ctx context.Context, memberID string) (float64, error) {
	var total float64
	err := r.db.WithContext(ctx).
		Model(&models.Saving{}).
		Where("member_id = ?", memberID).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	return total, err
}

// Delete removes a saving record
func (r *savingRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Saving{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrSavingNotFound
	}
	return nil
}

// withdrawalRepository implements WithdrawalRepository interface
type withdrawalRepository struct {
	db *gorm.DB
}

// NewWithdrawalRepository creates a new withdrawal repository
func NewWithdrawalRepository(db *gorm.DB) WithdrawalRepository {
	return &withdrawalRepository{db: db}
}

// Create creates a new withdrawal record
func (r *withdrawalRepository) Create(ctx context.Context, withdrawal *models.Withdrawal) error {
	return r.db.WithContext(ctx).Create(withdrawal).Error
}

// ListAll lists every withdrawal record
func (r *withdrawalRepository) ListAll(ctx context.Context) ([]*models.Withdrawal, error) {
	var withdrawals []*models.Withdrawal
	err := r.db.WithContext(ctx).Order("withdrawal_date ASC").Find(&withdrawals).Error
	return withdrawals, err
}

// ListByMember lists a member's withdrawals, oldest first
func (r *withdrawalRepository) ListByMember(ctx context.Context, memberID string) ([]*models.Withdrawal, error) {
	var withdrawals []*models.Withdrawal
	err := r.db.WithContext(ctx).
		Where("member_id = ?", memberID).
		Order("withdrawal_date ASC").
		Find(&withdrawals).Error
	return withdrawals, err
}

// TotalByMember sums a member's withdrawal amounts
func (r *withdrawalRepository) TotalByMember(ctx context.Context, memberID string) (float64, error) {
	var total float64
	err := r.db.WithContext(ctx).
		Model(&models.Withdrawal{}).
		Where("member_id = ?", memberID).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	return total, err
}
