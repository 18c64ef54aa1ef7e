package services

import (
	"context"
	"testing"
	"time"

	"sacco-ledger/internal/adapters/persistence/models"
	"sacco-ledger/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type analyticsMocks struct {
	memberRepo     *MockMemberRepo
	loanRepo       *MockLoanRepo
	paymentRepo    *MockPaymentRepo
	savingRepo     *MockSavingRepo
	withdrawalRepo *MockWithdrawalRepo
}

func newAnalyticsService() (*AnalyticsService, *analyticsMocks) {
	m := &analyticsMocks{
		memberRepo:     new(MockMemberRepo),
		loanRepo:       new(MockLoanRepo),
		paymentRepo:    new(MockPaymentRepo),
		savingRepo:     new(MockSavingRepo),
		withdrawalRepo: new(MockWithdrawalRepo),
	}
	service := NewAnalyticsService(m.memberRepo, m.loanRepo, m.paymentRepo, m.savingRepo, m.withdrawalRepo)
	return service, m
}

func TestAnalyticsService_Summary(t *testing.T) {
	ctx := context.Background()
	service, m := newAnalyticsService()

	m.loanRepo.On("ListAll", ctx).Return([]*models.Loan{
		{ID: "l1", Amount: 1000000, InterestRate: 2, Term: 12},
		{ID: "l2", Amount: 500000, InterestRate: 2, Term: 6},
	}, nil)
	m.paymentRepo.On("ListAll", ctx).Return([]*models.Payment{
		{ID: "p1", Amount: 600000},
	}, nil)
	m.savingRepo.On("ListAll", ctx).Return([]*models.Saving{
		{ID: "s1", Amount: 300000},
	}, nil)
	m.withdrawalRepo.On("ListAll", ctx).Return([]*models.Withdrawal{
		{ID: "w1", Amount: 100000},
	}, nil)

	summary, err := service.Summary(ctx)
	require.NoError(t, err)

	assert.Equal(t, 1500000.0, summary.TotalDisbursed)
	assert.Equal(t, 600000.0, summary.TotalRepaid)
	assert.Equal(t, 900000.0, summary.Outstanding)
	assert.Equal(t, 300000.0, summary.TotalSavings)
	assert.Equal(t, 100000.0, summary.TotalWithdrawals)
	assert.Equal(t, 200000.0, summary.SavingsBalance)
	// 1,000,000 * 2 * 12 / 1200 + 500,000 * 2 * 6 / 1200
	assert.Equal(t, 25000.0, summary.TotalInterest)
	assert.Equal(t, 25000.0, summary.TotalRevenue)
	assert.Equal(t, 40.0, summary.RepaymentRate)

	// Reads are pure: a second computation over the same ledger is identical.
	again, err := service.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, summary, again)
}

func TestAnalyticsService_SummaryEmptyLedger(t *testing.T) {
	ctx := context.Background()
	service, m := newAnalyticsService()

	m.loanRepo.On("ListAll", ctx).Return([]*models.Loan{}, nil)
	m.paymentRepo.On("ListAll", ctx).Return([]*models.Payment{}, nil)
	m.savingRepo.On("ListAll", ctx).Return([]*models.Saving{}, nil)
	m.withdrawalRepo.On("ListAll", ctx).Return([]*models.Withdrawal{}, nil)

	summary, err := service.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0.0, summary.TotalDisbursed)
	assert.Equal(t, 0.0, summary.RepaymentRate)
}

func TestAnalyticsService_OverdueLoans(t *testing.T) {
	ctx := context.Background()
	service, m := newAnalyticsService()

	tenDaysAgo := time.Now().AddDate(0, 0, -10)
	nextMonth := time.Now().AddDate(0, 1, 0)
	m.loanRepo.On("ListAll", ctx).Return([]*models.Loan{
		{ID: "l1", MemberID: "m1", Amount: 150000, Paid: 50000, Status: domain.LoanStatusActive, DueDate: tenDaysAgo},
		{ID: "l2", MemberID: "m1", Amount: 200000, Paid: 200000, Status: domain.LoanStatusCompleted, DueDate: tenDaysAgo},
		{ID: "l3", MemberID: "m1", Amount: 100000, Status: domain.LoanStatusActive, DueDate: nextMonth},
	}, nil)
	m.memberRepo.On("GetByID", ctx, "m1").Return(&models.Member{ID: "m1", Name: "Jane"}, nil)

	overdue, err := service.OverdueLoans(ctx)
	require.NoError(t, err)

	require.Len(t, overdue, 1)
	assert.Equal(t, "l1", overdue[0].Loan.ID)
	assert.Equal(t, 10, overdue[0].DaysOverdue)
	assert.Equal(t, 100000.0, overdue[0].TotalDue)
	assert.Equal(t, "Jane", overdue[0].Member.Name)
}

func TestAnalyticsService_OverdueLoansDanglingMember(t *testing.T) {
	ctx := context.Background()
	service, m := newAnalyticsService()

	m.loanRepo.On("ListAll", ctx).Return([]*models.Loan{
		{ID: "l1", MemberID: "ghost", Amount: 100000, Status: domain.LoanStatusActive, DueDate: time.Now().AddDate(0, 0, -5)},
	}, nil)
	m.memberRepo.On("GetByID", ctx, "ghost").Return(nil, domain.ErrMemberNotFound)

	overdue, err := service.OverdueLoans(ctx)
	require.NoError(t, err)
	require.Len(t, overdue, 1)
	assert.Nil(t, overdue[0].Member)
}

func TestAnalyticsService_MemberCreditScore(t *testing.T) {
	ctx := context.Background()

	t.Run("NoLoansIsPerfect", func(t *testing.T) {
		service, m := newAnalyticsService()
		m.loanRepo.On("ListByMember", ctx, "m1").Return([]*models.Loan{}, nil)

		score, err := service.MemberCreditScore(ctx, "m1")
		require.NoError(t, err)
		assert.Equal(t, 100.0, score)
	})

	t.Run("CompletedLoansClampAt100", func(t *testing.T) {
		service, m := newAnalyticsService()
		future := time.Now().AddDate(0, 1, 0)
		m.loanRepo.On("ListByMember", ctx, "m1").Return([]*models.Loan{
			{Amount: 100000, Paid: 100000, Status: domain.LoanStatusCompleted, DueDate: future},
			{Amount: 200000, Paid: 200000, Status: domain.LoanStatusCompleted, DueDate: future},
			{Amount: 300000, Paid: 300000, Status: domain.LoanStatusCompleted, DueDate: future},
		}, nil)

		score, err := service.MemberCreditScore(ctx, "m1")
		require.NoError(t, err)
		assert.Equal(t, 100.0, score)
	})

	t.Run("OverdueUnpaidLoanPenalized", func(t *testing.T) {
		service, m := newAnalyticsService()
		// 20 days overdue costs 10 points; a 0% repayment rate another 20.
		m.loanRepo.On("ListByMember", ctx, "m1").Return([]*models.Loan{
			{Amount: 100000, Paid: 0, Status: domain.LoanStatusActive, DueDate: time.Now().AddDate(0, 0, -20)},
		}, nil)

		score, err := service.MemberCreditScore(ctx, "m1")
		require.NoError(t, err)
		assert.Equal(t, 70.0, score)
	})

	t.Run("OverduePenaltyCapsAt30", func(t *testing.T) {
		service, m := newAnalyticsService()
		m.loanRepo.On("ListByMember", ctx, "m1").Return([]*models.Loan{
			{Amount: 100000, Paid: 60000, Status: domain.LoanStatusActive, DueDate: time.Now().AddDate(0, 0, -200)},
		}, nil)

		score, err := service.MemberCreditScore(ctx, "m1")
		require.NoError(t, err)
		// 100 - 30 (capped) - 10 (repayment rate 60%) = 60
		assert.Equal(t, 60.0, score)
	})
}

func TestAnalyticsService_Performance(t *testing.T) {
	ctx := context.Background()
	service, m := newAnalyticsService()

	m.loanRepo.On("ListAll", ctx).Return([]*models.Loan{
		{ID: "l1", MemberID: "m1", Amount: 300000, Term: 12, Status: domain.LoanStatusActive, DueDate: time.Now().AddDate(0, 0, -5)},
		{ID: "l2", MemberID: "m1", Amount: 150000, Term: 6, Status: domain.LoanStatusActive, DueDate: time.Now().AddDate(0, 1, 0)},
		{ID: "l3", MemberID: "m1", Amount: 150000, Term: 6, Status: domain.LoanStatusCompleted, DueDate: time.Now().AddDate(0, -1, 0)},
	}, nil)
	m.memberRepo.On("GetByID", ctx, "m1").Return(&models.Member{ID: "m1"}, nil)

	perf, err := service.Performance(ctx)
	require.NoError(t, err)

	assert.Equal(t, 3, perf.Total)
	assert.Equal(t, 2, perf.Active)
	assert.Equal(t, 1, perf.Completed)
	assert.Equal(t, 1, perf.Overdue)
	assert.Equal(t, 33.3, perf.DefaultRate)
	assert.Equal(t, 8.0, perf.AvgTerm)
	assert.Equal(t, 200000.0, perf.AvgAmount)
}

func TestAnalyticsService_Collection(t *testing.T) {
	ctx := context.Background()
	service, m := newAnalyticsService()

	now := time.Now()
	threeMonthsAgo := time.Date(now.Year(), now.Month()-3, 1, 0, 0, 0, 0, time.UTC)
	m.loanRepo.On("ListAll", ctx).Return([]*models.Loan{
		{ID: "l1", Amount: 900000, LoanDate: threeMonthsAgo},
	}, nil)
	m.paymentRepo.On("ListAll", ctx).Return([]*models.Payment{
		{ID: "p1", Amount: 300000},
	}, nil)

	collection, err := service.Collection(ctx)
	require.NoError(t, err)

	assert.Equal(t, 900000.0, collection.TotalDue)
	assert.Equal(t, 300000.0, collection.TotalPaid)
	assert.Equal(t, 600000.0, collection.Outstanding)
	assert.Equal(t, 300000.0, collection.MonthlyTarget)
	assert.Equal(t, 100000.0, collection.MonthlyCollected)
	assert.Equal(t, 33.3, collection.CollectionEfficiency)
}

func TestAnalyticsService_CollectionEmptyLedger(t *testing.T) {
	ctx := context.Background()
	service, m := newAnalyticsService()

	m.loanRepo.On("ListAll", ctx).Return([]*models.Loan{}, nil)
	m.paymentRepo.On("ListAll", ctx).Return([]*models.Payment{}, nil)

	collection, err := service.Collection(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0.0, collection.MonthlyTarget)
	assert.Equal(t, 0.0, collection.CollectionEfficiency)
}

func TestAnalyticsService_Delinquency(t *testing.T) {
	ctx := context.Background()
	service, m := newAnalyticsService()

	m.loanRepo.On("ListAll", ctx).Return([]*models.Loan{
		{ID: "l1", MemberID: "m1", Amount: 100000, Status: domain.LoanStatusActive, DueDate: time.Now().AddDate(0, 0, -5)},
		{ID: "l2", MemberID: "m1", Amount: 200000, Status: domain.LoanStatusActive, DueDate: time.Now().AddDate(0, 0, -20)},
		{ID: "l3", MemberID: "m1", Amount: 300000, Status: domain.LoanStatusActive, DueDate: time.Now().AddDate(0, 0, -120)},
	}, nil)
	m.memberRepo.On("GetByID", ctx, "m1").Return(&models.Member{ID: "m1"}, nil)

	analysis, err := service.Delinquency(ctx)
	require.NoError(t, err)

	assert.Equal(t, 3, analysis.Total)
	assert.Equal(t, 1, analysis.ByDays.Days1To7)
	assert.Equal(t, 1, analysis.ByDays.Days8To30)
	assert.Equal(t, 0, analysis.ByDays.Days31To90)
	assert.Equal(t, 1, analysis.ByDays.Days90Plus)
	assert.Equal(t, 600000.0, analysis.TotalAtRisk)
}

func TestAnalyticsService_TopBorrowers(t *testing.T) {
	ctx := context.Background()
	service, m := newAnalyticsService()

	m.loanRepo.On("ListAll", ctx).Return([]*models.Loan{
		{ID: "l1", MemberID: "m1", Amount: 300000, Paid: 100000, Status: domain.LoanStatusActive},
		{ID: "l2", MemberID: "m1", Amount: 200000, Paid: 200000, Status: domain.LoanStatusCompleted},
		{ID: "l3", MemberID: "m2", Amount: 400000, Paid: 0, Status: domain.LoanStatusActive},
		{ID: "l4", MemberID: "m3", Amount: 100000, Paid: 0, Status: domain.LoanStatusActive},
	}, nil)
	m.memberRepo.On("GetByID", ctx, mock.AnythingOfType("string")).Return(&models.Member{}, nil)

	borrowers, err := service.TopBorrowers(ctx, 2)
	require.NoError(t, err)

	require.Len(t, borrowers, 2)
	assert.Equal(t, "m1", borrowers[0].MemberID)
	assert.Equal(t, 500000.0, borrowers[0].TotalBorrowed)
	assert.Equal(t, 300000.0, borrowers[0].TotalRepaid)
	assert.Equal(t, 200000.0, borrowers[0].ActiveLoan)
	assert.Equal(t, 2, borrowers[0].LoanCount)
	assert.Equal(t, "m2", borrowers[1].MemberID)
}

func TestAnalyticsService_TopSavers(t *testing.T) {
	ctx := context.Background()
	service, m := newAnalyticsService()

	m.savingRepo.On("ListAll", ctx).Return([]*models.Saving{
		{ID: "s1", MemberID: "m1", Amount: 100000},
		{ID: "s2", MemberID: "m1", Amount: 50000},
		{ID: "s3", MemberID: "m2", Amount: 400000},
	}, nil)
	m.withdrawalRepo.On("ListAll", ctx).Return([]*models.Withdrawal{
		{ID: "w1", MemberID: "m2", Amount: 150000},
	}, nil)
	m.memberRepo.On("GetByID", ctx, mock.AnythingOfType("string")).Return(&models.Member{}, nil)

	savers, err := service.TopSavers(ctx, 0)
	require.NoError(t, err)

	require.Len(t, savers, 2)
	assert.Equal(t, "m2", savers[0].MemberID)
	assert.Equal(t, 400000.0, savers[0].TotalSaved)
	assert.Equal(t, 250000.0, savers[0].Balance)
	assert.Equal(t, "m1", savers[1].MemberID)
	assert.Equal(t, 2, savers[1].ContributionCount)
	assert.Equal(t, 150000.0, savers[1].Balance)
}

func TestAnalyticsService_Portfolio(t *testing.T) {
	ctx := context.Background()
	service, m := newAnalyticsService()

	future := time.Now().AddDate(0, 1, 0)
	m.memberRepo.On("GetByID", ctx, "m1").Return(&models.Member{ID: "m1", Name: "Jane"}, nil)
	m.loanRepo.On("ListByMember", ctx, "m1").Return([]*models.Loan{
		{ID: "l1", Amount: 300000, Paid: 100000, Status: domain.LoanStatusActive, DueDate: future},
		{ID: "l2", Amount: 200000, Paid: 200000, Status: domain.LoanStatusCompleted, DueDate: future},
	}, nil)
	m.savingRepo.On("ListByMember", ctx, "m1").Return([]*models.Saving{
		{ID: "s1", Amount: 100000},
		{ID: "s2", Amount: 50000},
	}, nil)
	m.withdrawalRepo.On("ListByMember", ctx, "m1").Return([]*models.Withdrawal{
		{ID: "w1", Amount: 30000},
	}, nil)

	portfolio, err := service.Portfolio(ctx, "m1")
	require.NoError(t, err)

	assert.Equal(t, 2, portfolio.Loans.Total)
	assert.Equal(t, 1, portfolio.Loans.Active)
	assert.Equal(t, 1, portfolio.Loans.Completed)
	assert.Equal(t, 500000.0, portfolio.Loans.TotalBorrowed)
	assert.Equal(t, 300000.0, portfolio.Loans.TotalRepaid)
	assert.Equal(t, 200000.0, portfolio.Loans.Outstanding)
	assert.Equal(t, 2, portfolio.Savings.TotalContributions)
	assert.Equal(t, 120000.0, portfolio.Savings.Balance)
	// 100 + 10 (completed), repayment rate 60% costs 10, clamped to 100
	assert.Equal(t, 100.0, portfolio.CreditScore)
}

func TestAnalyticsService_Statement(t *testing.T) {
	ctx := context.Background()
	service, m := newAnalyticsService()

	now := time.Now()
	m.memberRepo.On("GetByID", ctx, "m1").Return(&models.Member{ID: "m1", Name: "Jane"}, nil)
	m.loanRepo.On("ListByMember", ctx, "m1").Return([]*models.Loan{
		{ID: "l1", Amount: 200000, Term: 12, InterestRate: 2, Status: domain.LoanStatusActive, LoanDate: now.AddDate(0, 0, -30)},
	}, nil)
	m.paymentRepo.On("ListByLoan", ctx, "l1").Return([]*models.Payment{
		{ID: "p1", LoanID: "l1", Amount: 50000, PaymentDate: now.AddDate(0, 0, -15)},
	}, nil)
	m.savingRepo.On("ListByMember", ctx, "m1").Return([]*models.Saving{
		{ID: "s1", Amount: 20000, SavingDate: now.AddDate(0, 0, -5)},
	}, nil)
	m.withdrawalRepo.On("ListByMember", ctx, "m1").Return([]*models.Withdrawal{
		{ID: "w1", Amount: 10000, WithdrawalDate: now.AddDate(0, 0, -1)},
	}, nil)

	statement, err := service.Statement(ctx, "m1")
	require.NoError(t, err)

	require.Equal(t, 4, statement.Count)

	// Newest first.
	assert.Equal(t, EntryWithdrawal, statement.Entries[0].Type)
	assert.Equal(t, EntrySaving, statement.Entries[1].Type)
	assert.Equal(t, EntryPayment, statement.Entries[2].Type)
	assert.Equal(t, EntryLoan, statement.Entries[3].Type)

	// Loans and withdrawals flow to the member; payments and deposits flow out.
	assert.Equal(t, DirectionIn, statement.Entries[0].Direction)
	assert.Equal(t, DirectionOut, statement.Entries[1].Direction)
	assert.Equal(t, DirectionOut, statement.Entries[2].Direction)
	assert.Equal(t, DirectionIn, statement.Entries[3].Direction)

	assert.Equal(t, 210000.0, statement.TotalIn)
	assert.Equal(t, 70000.0, statement.TotalOut)
}
