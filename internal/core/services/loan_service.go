package services

import (
	"context"
	"time"

	"sacco-ledger/internal/adapters/persistence/models"
	"sacco-ledger/internal/adapters/persistence/repositories"
	"sacco-ledger/internal/core/domain"

	"github.com/google/uuid"
)

// LoanService handles loan and payment business logic
type LoanService struct {
	loanRepo    repositories.LoanRepository
	paymentRepo repositories.PaymentRepository
	memberRepo  repositories.MemberRepository
	version     *LedgerVersion
}

// NewLoanService creates a new loan service
func NewLoanService(
	loanRepo repositories.LoanRepository,
	paymentRepo repositories.PaymentRepository,
	memberRepo repositories.MemberRepository,
	version *LedgerVersion,
) *LoanService {
	return &LoanService{
		loanRepo:    loanRepo,
		paymentRepo: paymentRepo,
		memberRepo:  memberRepo,
		version:     version,
	}
}

// CreateLoanInput represents create loan input
type CreateLoanInput struct {
	MemberID     string     `json:"memberId" validate:"required"`
	Amount       float64    `json:"amount" validate:"required,gt=0"`
	InterestRate float64    `json:"interestRate" validate:"gte=0"`
	Term         int        `json:"term" validate:"required,gt=0"`
	LoanDate     *time.Time `json:"loanDate,omitempty"`
	DueDate      *time.Time `json:"dueDate,omitempty"`
}

// Create issues a new loan. The loan starts active with nothing paid;
// the due date defaults to the loan date plus the term in months.
func (s *LoanService) Create(ctx context.Context, input *CreateLoanInput) (*models.Loan, error) {
	if input.Amount <= 0 || input.Term <= 0 || input.InterestRate < 0 {
		return nil, domain.ErrInvalidInput
	}

	if _, err := s.memberRepo.GetByID(ctx, input.MemberID); err != nil {
		return nil, err
	}

	loanDate := time.Now()
	if input.LoanDate != nil {
		loanDate = *input.LoanDate
	}

	dueDate := loanDate.AddDate(0, input.Term, 0)
	if input.DueDate != nil {
		dueDate = *input.DueDate
	}

	loan := &models.Loan{
		ID:           uuid.NewString(),
		MemberID:     input.MemberID,
		Amount:       input.Amount,
		InterestRate: input.InterestRate,
		Term:         input.Term,
		LoanDate:     loanDate,
		DueDate:      dueDate,
		Paid:         0,
		Status:       domain.LoanStatusActive,
	}

	if err := s.loanRepo.Create(ctx, loan); err != nil {
		return nil, err
	}

	s.version.Bump()
	return loan, nil
}

// GetByID gets a loan by ID
func (s *LoanService) GetByID(ctx context.Context, id string) (*models.Loan, error) {
	return s.loanRepo.GetByID(ctx, id)
}

// List lists loans with pagination
func (s *LoanService) List(ctx context.Context, offset, limit int) ([]*models.Loan, int64, error) {
	return s.loanRepo.List(ctx, offset, limit)
}

// ListByMember lists a member's loans
func (s *LoanService) ListByMember(ctx context.Context, memberID string) ([]*models.Loan, error) {
	return s.loanRepo.ListByMember(ctx, memberID)
}

// UpdateLoanInput represents update loan input. Nil fields are left
// unchanged.
type UpdateLoanInput struct {
	Amount       *float64   `json:"amount,omitempty"`
	InterestRate *float64   `json:"interestRate,omitempty"`
	Term         *int       `json:"term,omitempty"`
	DueDate      *time.Time `json:"dueDate,omitempty"`
	Penalty      *float64   `json:"penalty,omitempty"`
}

// Update updates a loan's terms. Changing the principal re-derives the
// status against the paid total, so a loan whose amount drops to what
// has already been paid completes.
func (s *LoanService) Update(ctx context.Context, id string, input *UpdateLoanInput) (*models.Loan, error) {
	loan, err := s.loanRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Amount != nil {
		if *input.Amount <= 0 {
			return nil, domain.ErrInvalidInput
		}
		loan.Amount = *input.Amount
		loan.Status = domain.ResolveLoanStatus(loan.Paid, loan.Amount)
	}
	if input.InterestRate != nil {
		if *input.InterestRate < 0 {
			return nil, domain.ErrInvalidInput
		}
		loan.InterestRate = *input.InterestRate
	}
	if input.Term != nil {
		if *input.Term <= 0 {
			return nil, domain.ErrInvalidInput
		}
		loan.Term = *input.Term
	}
	if input.DueDate != nil {
		loan.DueDate = *input.DueDate
	}
	if input.Penalty != nil {
		if *input.Penalty < 0 {
			return nil, domain.ErrInvalidInput
		}
		loan.Penalty = *input.Penalty
	}

	if err := s.loanRepo.Update(ctx, loan); err != nil {
		return nil, err
	}

	s.version.Bump()
	return loan, nil
}

// Delete removes a loan
func (s *LoanService) Delete(ctx context.Context, id string) error {
	if err := s.loanRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.version.Bump()
	return nil
}

// RecordPaymentInput represents record payment input
type RecordPaymentInput struct {
	LoanID      string     `json:"loanId" validate:"required"`
	Amount      float64    `json:"amount" validate:"required,gt=0"`
	PaymentDate *time.Time `json:"paymentDate,omitempty"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
}

// RecordPayment records a payment against a loan. The payment row and
// the loan's paid total and status move together: if the loan does not
// exist the payment is not stored. A loan becomes completed when its
// paid total reaches the principal, and drops back otherwise.
func (s *LoanService) RecordPayment(ctx context.Context, input *RecordPaymentInput) (*models.Payment, *models.Loan, error) {
	if input.Amount <= 0 {
		return nil, nil, domain.ErrInvalidInput
	}

	paymentDate := time.Now()
	if input.PaymentDate != nil {
		paymentDate = *input.PaymentDate
	}

	payment := &models.Payment{
		ID:          uuid.NewString(),
		LoanID:      input.LoanID,
		Amount:      input.Amount,
		PaymentDate: paymentDate,
		DueDate:     input.DueDate,
	}

	loan, err := s.paymentRepo.CreateAndApply(ctx, payment)
	if err != nil {
		return nil, nil, err
	}

	s.version.Bump()
	return payment, loan, nil
}

// DeletePayment removes a payment and reverts its effect on the loan
func (s *LoanService) DeletePayment(ctx context.Context, id string) (*models.Loan, error) {
	_, loan, err := s.paymentRepo.DeleteAndRevert(ctx, id)
	if err != nil {
		return nil, err
	}

	s.version.Bump()
	return loan, nil
}

// GetPayment gets a payment by ID
func (s *LoanService) GetPayment(ctx context.Context, id string) (*models.Payment, error) {
	return s.paymentRepo.GetByID(ctx, id)
}

// ListPayments lists payments against a loan
func (s *LoanService) ListPayments(ctx context.Context, loanID string) ([]*models.Payment, error) {
	if _, err := s.loanRepo.GetByID(ctx, loanID); err != nil {
		return nil, err
	}
	return s.paymentRepo.ListByLoan(ctx, loanID)
}
