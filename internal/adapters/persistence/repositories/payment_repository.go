package repositories

import (
	"context"
	"errors"

	"sacco-ledger/internal/adapters/persistence/models"
	"sacco-ledger/internal/core/domain"

	"gorm.io/gorm"
)

// paymentRepository implements PaymentRepository interface
type paymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository creates a new payment repository
func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

// CreateAndApply records a payment and applies it to the parent loan in a
// single transaction. An unknown loan fails the whole operation, so an
// orphaned payment can never be persisted.
func (r *paymentRepository) CreateAndApply(ctx context.Context, payment *models.Payment) (*models.Loan, error) {
	var loan models.Loan

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", payment.LoanID).First(&loan).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrLoanNotFound
			}
			return err
		}

		if err := tx.Create(payment).Error; err != nil {
			return err
		}

		loan.Paid += payment.Amount
		loan.Status = domain.ResolveLoanStatus(loan.Paid, loan.Amount)
		return tx.Save(&loan).Error
	})
	if err != nil {
		return nil, err
	}
	return &loan, nil
}

// DeleteAndRevert removes a payment and reverts its effect on the parent
// loan in a single transaction. A loan already deleted is tolerated: the
// payment is removed alone.
func (r *paymentRepository) DeleteAndRevert(ctx context.Context, id string) (*models.Payment, *models.Loan, error) {
	var payment models.Payment
	var loan *models.Loan

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&payment).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrPaymentNotFound
			}
			return err
		}

		var parent models.Loan
		err := tx.Where("id = ?", payment.LoanID).First(&parent).Error
		switch {
		case err == nil:
			parent.Paid -= payment.Amount
			if parent.Paid < 0 {
				parent.Paid = 0
			}
			parent.Status = domain.ResolveLoanStatus(parent.Paid, parent.Amount)
			if err := tx.Save(&parent).Error; err != nil {
				return err
			}
			loan = &parent
		case errors.Is(err, gorm.ErrRecordNotFound):
			// dangling payment, nothing to revert
		default:
			return err
		}

		return tx.Where("id = ?", id).Delete(&models.Payment{}).Error
	})
	if err != nil {
		return nil, nil, err
	}
	return &payment, loan, nil
}

// GetByID gets a payment by ID
func (r *paymentRepository) GetByID(ctx context.Context, id string) (*models.Payment, error) {
	var payment models.Payment
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&payment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPaymentNotFound
		}
		return nil, err
	}
	return &payment, nil
}

// ListAll lists every payment
func (r *paymentRepository) ListAll(ctx context.Context) ([]*models.Payment, error) {
	var payments []*models.Payment
	err := r.db.WithContext(ctx).Order("created_at ASC").Find(&payments).Error
	return payments, err
}

// ListByLoan lists payments against a loan, oldest first
func (r *paymentRepository) ListByLoan(ctx context.Context, loanID string) ([]*models.Payment, error) {
	var payments []*models.Payment
	err := r.db.WithContext(ctx).
		Where("loan_id = ?", loanID).
		Order("payment_date ASC").
		Find(&payments).Error
	return payments, err
}
