package repositories

import (
	"context"
	"testing"
	"time"

	"sacco-ledger/internal/adapters/persistence/models"
	"sacco-ledger/internal/core/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaymentRepository_CreateAndApply(t *testing.T) {
	ctx := context.Background()

	t.Run("PaymentAndLoanMoveTogether", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewPaymentRepository(db)

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT \\* FROM `loans` WHERE id = \\?").
			WithArgs("l1", 1).
			WillReturnRows(sqlmock.NewRows([]string{"id", "member_id", "amount", "paid", "status"}).
				AddRow("l1", "m1", 1000000.0, 0.0, "active"))
		mock.ExpectExec("INSERT INTO `payments`").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("UPDATE `loans`").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		payment := &models.Payment{ID: "p1", LoanID: "l1", Amount: 500000, PaymentDate: time.Now()}
		loan, err := repo.CreateAndApply(ctx, payment)

		require.NoError(t, err)
		assert.Equal(t, 500000.0, loan.Paid)
		assert.Equal(t, domain.LoanStatusActive, loan.Status)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("FullRepaymentCompletesLoan", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewPaymentRepository(db)

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT \\* FROM `loans` WHERE id = \\?").
			WithArgs("l1", 1).
			WillReturnRows(sqlmock.NewRows([]string{"id", "member_id", "amount", "paid", "status"}).
				AddRow("l1", "m1", 1000000.0, 500000.0, "active"))
		mock.ExpectExec("INSERT INTO `payments`").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("UPDATE `loans`").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		payment := &models.Payment{ID: "p2", LoanID: "l1", Amount: 500000, PaymentDate: time.Now()}
		loan, err := repo.CreateAndApply(ctx, payment)

		require.NoError(t, err)
		assert.Equal(t, 1000000.0, loan.Paid)
		assert.Equal(t, domain.LoanStatusCompleted, loan.Status)
	})

	t.Run("UnknownLoanRollsBack", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewPaymentRepository(db)

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT \\* FROM `loans` WHERE id = \\?").
			WithArgs("missing", 1).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))
		mock.ExpectRollback()

		payment := &models.Payment{ID: "p1", LoanID: "missing", Amount: 500000, PaymentDate: time.Now()}
		_, err := repo.CreateAndApply(ctx, payment)

		assert.ErrorIs(t, err, domain.ErrLoanNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPaymentRepository_DeleteAndRevert(t *testing.T) {
	ctx := context.Background()

	t.Run("RevertsLoanStatus", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewPaymentRepository(db)

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT \\* FROM `payments` WHERE id = \\?").
			WithArgs("p2", 1).
			WillReturnRows(sqlmock.NewRows([]string{"id", "loan_id", "amount", "payment_date"}).
				AddRow("p2", "l1", 500000.0, time.Now()))
		mock.ExpectQuery("SELECT \\* FROM `loans` WHERE id = \\?").
			WithArgs("l1", 1).
			WillReturnRows(sqlmock.NewRows([]string{"id", "member_id", "amount", "paid", "status"}).
				AddRow("l1", "m1", 1000000.0, 1000000.0, "completed"))
		mock.ExpectExec("UPDATE `loans`").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("DELETE FROM `payments` WHERE id = \\?").
			WithArgs("p2").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		payment, loan, err := repo.DeleteAndRevert(ctx, "p2")

		require.NoError(t, err)
		assert.Equal(t, "p2", payment.ID)
		require.NotNil(t, loan)
		assert.Equal(t, 500000.0, loan.Paid)
		assert.Equal(t, domain.LoanStatusActive, loan.Status)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("DanglingPaymentRemovedAlone", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewPaymentRepository(db)

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT \\* FROM `payments` WHERE id = \\?").
			WithArgs("p9", 1).
			WillReturnRows(sqlmock.NewRows([]string{"id", "loan_id", "amount", "payment_date"}).
				AddRow("p9", "gone", 10000.0, time.Now()))
		mock.ExpectQuery("SELECT \\* FROM `loans` WHERE id = \\?").
			WithArgs("gone", 1).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))
		mock.ExpectExec("DELETE FROM `payments` WHERE id = \\?").
			WithArgs("p9").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		payment, loan, err := repo.DeleteAndRevert(ctx, "p9")

		require.NoError(t, err)
		assert.Equal(t, "p9", payment.ID)
		assert.Nil(t, loan)
	})

	t.Run("UnknownPayment", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewPaymentRepository(db)

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT \\* FROM `payments` WHERE id = \\?").
			WithArgs("missing", 1).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))
		mock.ExpectRollback()

		_, _, err := repo.DeleteAndRevert(ctx, "missing")
		assert.ErrorIs(t, err, domain.ErrPaymentNotFound)
	})
}
