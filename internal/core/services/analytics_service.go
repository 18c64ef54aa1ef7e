package services

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"sacco-ledger/internal/adapters/persistence/models"
	"sacco-ledger/internal/adapters/persistence/repositories"
	"sacco-ledger/internal/core/domain"
	"sacco-ledger/internal/pkg/finance"
)

// AnalyticsService computes aggregate and per-member financial metrics.
// Every operation is a pure read recomputed from the ledger on each call;
// nothing derived is persisted.
type AnalyticsService struct {
	memberRepo     repositories.MemberRepository
	loanRepo       repositories.LoanRepository
	paymentRepo    repositories.PaymentRepository
	savingRepo     repositories.SavingRepository
	withdrawalRepo repositories.WithdrawalRepository
}

// NewAnalyticsService creates a new analytics service
func NewAnalyticsService(
	memberRepo repositories.MemberRepository,
	loanRepo repositories.LoanRepository,
	paymentRepo repositories.PaymentRepository,
	savingRepo repositories.SavingRepository,
	withdrawalRepo repositories.WithdrawalRepository,
) *AnalyticsService {
	return &AnalyticsService{
		memberRepo:     memberRepo,
		loanRepo:       loanRepo,
		paymentRepo:    paymentRepo,
		savingRepo:     savingRepo,
		withdrawalRepo: withdrawalRepo,
	}
}

// ============================================================
// Overdue loans
// ============================================================

// OverdueLoan is a loan past its due date with computed arrears figures
type OverdueLoan struct {
	Loan        *models.Loan   `json:"loan"`
	Member      *models.Member `json:"member,omitempty"`
	DaysOverdue int            `json:"daysOverdue"`
	Penalty     float64        `json:"penalty"`
	TotalDue    float64        `json:"totalDue"`
}

// OverdueLoans returns every active loan whose due date has passed,
// with days overdue and the total still owed (remaining plus penalty).
// Status is judged from due dates at read time, never rewritten.
func (s *AnalyticsService) OverdueLoans(ctx context.Context) ([]*OverdueLoan, error) {
	loans, err := s.loanRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	overdue := make([]*OverdueLoan, 0)
	for _, loan := range loans {
		if loan.Status != domain.LoanStatusActive || !loan.DueDate.Before(now) {
			continue
		}

		member, err := s.memberRepo.GetByID(ctx, loan.MemberID)
		if err != nil {
			member = nil // dangling reference, tolerated
		}

		overdue = append(overdue, &OverdueLoan{
			Loan:        loan,
			Member:      member,
			DaysOverdue: int(now.Sub(loan.DueDate).Hours() / 24),
			Penalty:     loan.Penalty,
			TotalDue:    loan.Amount - loan.Paid + loan.Penalty,
		})
	}

	return overdue, nil
}

// ============================================================
// Financial summary
// ============================================================

// FinancialSummary aggregates the whole ledger
type FinancialSummary struct {
	TotalDisbursed   float64 `json:"totalDisbursed"`
	TotalRepaid      float64 `json:"totalRepaid"`
	Outstanding      float64 `json:"outstanding"`
	TotalSavings     float64 `json:"totalSavings"`
	TotalWithdrawals float64 `json:"totalWithdrawals"`
	SavingsBalance   float64 `json:"savingsBalance"`
	TotalInterest    float64 `json:"totalInterest"`
	TotalPenalties   float64 `json:"totalPenalties"`
	TotalRevenue     float64 `json:"totalRevenue"`
	RepaymentRate    float64 `json:"repaymentRate"`
}

// Summary computes portfolio-wide totals. Expected interest per loan is
// simple interest over the term: amount x rate% x term / 12.
func (s *AnalyticsService) Summary(ctx context.Context) (*FinancialSummary, error) {
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

	var loanAmounts, penalties, interests []float64
	for _, l := range loans {
		loanAmounts = append(loanAmounts, l.Amount)
		penalties = append(penalties, l.Penalty)
		interests = append(interests, finance.SimpleInterest(l.Amount, l.InterestRate, l.Term))
	}
	var paymentAmounts []float64
	for _, p := range payments {
		paymentAmounts = append(paymentAmounts, p.Amount)
	}
	var savingAmounts []float64
	for _, sv := range savings {
		savingAmounts = append(savingAmounts, sv.Amount)
	}
	var withdrawalAmounts []float64
	for _, w := range withdrawals {
		withdrawalAmounts = append(withdrawalAmounts, w.Amount)
	}

	totalDisbursed := finance.Sum(loanAmounts)
	totalRepaid := finance.Sum(paymentAmounts)
	totalSavings := finance.Sum(savingAmounts)
	totalWithdrawals := finance.Sum(withdrawalAmounts)
	totalInterest := finance.Sum(interests)
	totalPenalties := finance.Sum(penalties)

	repaymentRate := 0.0
	if totalDisbursed > 0 {
		repaymentRate = finance.Round1(totalRepaid / totalDisbursed * 100)
	}

	return &FinancialSummary{
		TotalDisbursed:   totalDisbursed,
		TotalRepaid:      totalRepaid,
		Outstanding:      totalDisbursed - totalRepaid,
		TotalSavings:     totalSavings,
		TotalWithdrawals: totalWithdrawals,
		SavingsBalance:   totalSavings - totalWithdrawals,
		TotalInterest:    totalInterest,
		TotalPenalties:   totalPenalties,
		TotalRevenue:     totalInterest + totalPenalties,
		RepaymentRate:    repaymentRate,
	}, nil
}

// ============================================================
// Credit score
// ============================================================

// MemberCreditScore scores a member 0-100 from their loan record. A
// member with no loans scores a perfect 100. Overdue active loans cost
// up to 30 points each (half a point per day overdue); each completed
// loan earns 10 back; a repayment rate below 50% costs 20, below 75%
// costs 10. Clamped to [0, 100].
func (s *AnalyticsService) MemberCreditScore(ctx context.Context, memberID string) (float64, error) {
	loans, err := s.loanRepo.ListByMember(ctx, memberID)
	if err != nil {
		return 0, err
	}
	if len(loans) == 0 {
		return 100, nil
	}

	now := time.Now()
	score := 100.0
	var totalLoaned, totalPaid float64

	for _, loan := range loans {
		if loan.DueDate.Before(now) && loan.Status == domain.LoanStatusActive {
			daysOverdue := math.Floor(now.Sub(loan.DueDate).Hours() / 24)
			score -= math.Min(30, daysOverdue/2)
		}
		if loan.Status == domain.LoanStatusCompleted {
			score += 10
		}
		totalLoaned += loan.Amount
		totalPaid += loan.Paid
	}

	if totalLoaned > 0 {
		repaymentRate := totalPaid / totalLoaned * 100
		if repaymentRate < 50 {
			score -= 20
		} else if repaymentRate < 75 {
			score -= 10
		}
	}

	return math.Max(0, math.Min(100, score)), nil
}

// ============================================================
// Loan performance
// ============================================================

// LoanPerformance summarizes the loan book by status
type LoanPerformance struct {
	Total       int     `json:"total"`
	Active      int     `json:"active"`
	Completed   int     `json:"completed"`
	Overdue     int     `json:"overdue"`
	DefaultRate float64 `json:"defaultRate"`
	AvgTerm     float64 `json:"avgTerm"`
	AvgAmount   float64 `json:"avgAmount"`
}

// Performance computes loan book metrics
func (s *AnalyticsService) Performance(ctx context.Context) (*LoanPerformance, error) {
	loans, err := s.loanRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	overdue, err := s.OverdueLoans(ctx)
	if err != nil {
		return nil, err
	}

	metrics := &LoanPerformance{
		Total:   len(loans),
		Overdue: len(overdue),
	}
	var termSum, amountSum float64
	for _, l := range loans {
		switch l.Status {
		case domain.LoanStatusActive:
			metrics.Active++
		case domain.LoanStatusCompleted:
			metrics.Completed++
		}
		termSum += float64(l.Term)
		amountSum += l.Amount
	}

	if len(loans) > 0 {
		n := float64(len(loans))
		metrics.DefaultRate = finance.Round1(float64(metrics.Overdue) / n * 100)
		metrics.AvgTerm = finance.Round1(termSum / n)
		metrics.AvgAmount = math.Round(amountSum / n)
	}

	return metrics, nil
}

// ============================================================
// Collection efficiency
// ============================================================

// CollectionEfficiency compares collected payments against the lending
// target per active month
type CollectionEfficiency struct {
	TotalDue             float64 `json:"totalDue"`
	TotalPaid            float64 `json:"totalPaid"`
	Outstanding          float64 `json:"outstanding"`
	MonthlyTarget        float64 `json:"monthlyTarget"`
	MonthlyCollected     float64 `json:"monthlyCollected"`
	CollectionEfficiency float64 `json:"collectionEfficiency"`
}

// Collection computes collection efficiency over the months the ledger
// has been active (from the earliest loan date, minimum one month).
func (s *AnalyticsService) Collection(ctx context.Context) (*CollectionEfficiency, error) {
	loans, err := s.loanRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	payments, err := s.paymentRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	var loanAmounts, paymentAmounts []float64
	for _, l := range loans {
		loanAmounts = append(loanAmounts, l.Amount)
	}
	for _, p := range payments {
		paymentAmounts = append(paymentAmounts, p.Amount)
	}

	totalDue := finance.Sum(loanAmounts)
	totalPaid := finance.Sum(paymentAmounts)

	monthsActive := monthsActive(loans)
	monthlyTarget := totalDue / float64(monthsActive)
	monthlyCollected := totalPaid / float64(monthsActive)

	efficiency := 0.0
	if monthlyTarget > 0 {
		efficiency = finance.Round1(monthlyCollected / monthlyTarget * 100)
	}

	return &CollectionEfficiency{
		TotalDue:             totalDue,
		TotalPaid:            totalPaid,
		Outstanding:          totalDue - totalPaid,
		MonthlyTarget:        math.Round(monthlyTarget),
		MonthlyCollected:     math.Round(monthlyCollected),
		CollectionEfficiency: efficiency,
	}, nil
}

// monthsActive returns whole calendar months between the earliest loan
// date and now, minimum 1
func monthsActive(loans []*models.Loan) int {
	if len(loans) == 0 {
		return 1
	}

	oldest := loans[0].LoanDate
	for _, l := range loans[1:] {
		if l.LoanDate.Before(oldest) {
			oldest = l.LoanDate
		}
	}

	now := time.Now()
	months := (now.Year()-oldest.Year())*12 + int(now.Month()) - int(oldest.Month())
	if months < 1 {
		return 1
	}
	return months
}

// ============================================================
// Delinquency
// ============================================================

// DelinquencyBuckets groups overdue loans by days-overdue range
type DelinquencyBuckets struct {
	Days1To7   int `json:"1-7"`
	Days8To30  int `json:"8-30"`
	Days31To90 int `json:"31-90"`
	Days90Plus int `json:"90+"`
}

// DelinquencyAnalysis reports overdue loans bucketed by age of arrears
type DelinquencyAnalysis struct {
	Total       int                `json:"total"`
	ByDays      DelinquencyBuckets `json:"byDays"`
	TotalAtRisk float64            `json:"totalAtRisk"`
}

// Delinquency buckets the overdue loans and totals the amount at risk
func (s *AnalyticsService) Delinquency(ctx context.Context) (*DelinquencyAnalysis, error) {
	overdue, err := s.OverdueLoans(ctx)
	if err != nil {
		return nil, err
	}

	analysis := &DelinquencyAnalysis{Total: len(overdue)}
	var atRisk []float64
	for _, o := range overdue {
		switch {
		case o.DaysOverdue <= 7:
			analysis.ByDays.Days1To7++
		case o.DaysOverdue <= 30:
			analysis.ByDays.Days8To30++
		case o.DaysOverdue <= 90:
			analysis.ByDays.Days31To90++
		default:
			analysis.ByDays.Days90Plus++
		}
		atRisk = append(atRisk, o.TotalDue)
	}
	analysis.TotalAtRisk = finance.Sum(atRisk)

	return analysis, nil
}

// ============================================================
// Top borrowers / savers
// ============================================================

// DefaultTopLimit is the default size of top-borrower/saver listings
const DefaultTopLimit = 10

// TopBorrower aggregates one member's borrowing
type TopBorrower struct {
	Member        *models.Member `json:"member,omitempty"`
	MemberID      string         `json:"memberId"`
	TotalBorrowed float64        `json:"totalBorrowed"`
	TotalRepaid   float64        `json:"totalRepaid"`
	ActiveLoan    float64        `json:"activeLoan"`
	LoanCount     int            `json:"loanCount"`
}

// TopBorrowers returns members ranked by total amount borrowed
func (s *AnalyticsService) TopBorrowers(ctx context.Context, limit int) ([]*TopBorrower, error) {
	if limit <= 0 {
		limit = DefaultTopLimit
	}

	loans, err := s.loanRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	byMember := make(map[string]*TopBorrower)
	for _, loan := range loans {
		b, ok := byMember[loan.MemberID]
		if !ok {
			member, err := s.memberRepo.GetByID(ctx, loan.MemberID)
			if err != nil {
				member = nil
			}
			b = &TopBorrower{Member: member, MemberID: loan.MemberID}
			byMember[loan.MemberID] = b
		}
		b.TotalBorrowed += loan.Amount
		b.TotalRepaid += loan.Paid
		if loan.Status == domain.LoanStatusActive {
			b.ActiveLoan += loan.Amount - loan.Paid
		}
		b.LoanCount++
	}

	borrowers := make([]*TopBorrower, 0, len(byMember))
	for _, b := range byMember {
		borrowers = append(borrowers, b)
	}
	sort.Slice(borrowers, func(i, j int) bool {
		return borrowers[i].TotalBorrowed > borrowers[j].TotalBorrowed
	})

	if len(borrowers) > limit {
		borrowers = borrowers[:limit]
	}
	return borrowers, nil
}

// TopSaver aggregates one member's saving
type TopSaver struct {
	Member            *models.Member `json:"member,omitempty"`
	MemberID          string         `json:"memberId"`
	TotalSaved        float64        `json:"totalSaved"`
	TotalWithdrawn    float64        `json:"totalWithdrawn"`
	ContributionCount int            `json:"contributionCount"`
	Balance           float64        `json:"balance"`
}

// TopSavers returns members ranked by total amount saved
func (s *AnalyticsService) TopSavers(ctx context.Context, limit int) ([]*TopSaver, error) {
	if limit <= 0 {
		limit = DefaultTopLimit
	}

	savings, err := s.savingRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	withdrawals, err := s.withdrawalRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	byMember := make(map[string]*TopSaver)
	for _, saving := range savings {
		sv, ok := byMember[saving.MemberID]
		if !ok {
			member, err := s.memberRepo.GetByID(ctx, saving.MemberID)
			if err != nil {
				member = nil
			}
			sv = &TopSaver{Member: member, MemberID: saving.MemberID}
			byMember[saving.MemberID] = sv
		}
		sv.TotalSaved += saving.Amount
		sv.ContributionCount++
	}
	for _, w := range withdrawals {
		if sv, ok := byMember[w.MemberID]; ok {
			sv.TotalWithdrawn += w.Amount
		}
	}

	savers := make([]*TopSaver, 0, len(byMember))
	for _, sv := range byMember {
		sv.Balance = sv.TotalSaved - sv.TotalWithdrawn
		savers = append(savers, sv)
	}
	sort.Slice(savers, func(i, j int) bool {
		return savers[i].TotalSaved > savers[j].TotalSaved
	})

	if len(savers) > limit {
		savers = savers[:limit]
	}
	return savers, nil
}

// ============================================================
// Member portfolio
// ============================================================

// PortfolioLoanStats summarizes a member's loan position
type PortfolioLoanStats struct {
	Total         int     `json:"total"`
	Active        int     `json:"active"`
	Completed     int     `json:"completed"`
	TotalBorrowed float64 `json:"totalBorrowed"`
	TotalRepaid   float64 `json:"totalRepaid"`
	Outstanding   float64 `json:"outstanding"`
}

// PortfolioSavingsStats summarizes a member's savings position
type PortfolioSavingsStats struct {
	TotalContributions int     `json:"totalContributions"`
	TotalSaved         float64 `json:"totalSaved"`
	TotalWithdrawn     float64 `json:"totalWithdrawn"`
	Balance            float64 `json:"balance"`
}

// MemberPortfolio is a member's full financial position
type MemberPortfolio struct {
	Member      *models.Member        `json:"member"`
	Loans       PortfolioLoanStats    `json:"loans"`
	Savings     PortfolioSavingsStats `json:"savings"`
	CreditScore float64               `json:"creditScore"`
}

// Portfolio assembles a member's loans, savings and credit score
func (s *AnalyticsService) Portfolio(ctx context.Context, memberID string) (*MemberPortfolio, error) {
	member, err := s.memberRepo.GetByID(ctx, memberID)
	if err != nil {
		return nil, err
	}

	loans, err := s.loanRepo.ListByMember(ctx, memberID)
	if err != nil {
		return nil, err
	}
	savings, err := s.savingRepo.ListByMember(ctx, memberID)
	if err != nil {
		return nil, err
	}
	withdrawals, err := s.withdrawalRepo.ListByMember(ctx, memberID)
	if err != nil {
		return nil, err
	}

	portfolio := &MemberPortfolio{Member: member}
	for _, l := range loans {
		portfolio.Loans.Total++
		switch l.Status {
		case domain.LoanStatusActive:
			portfolio.Loans.Active++
		case domain.LoanStatusCompleted:
			portfolio.Loans.Completed++
		}
		portfolio.Loans.TotalBorrowed += l.Amount
		portfolio.Loans.TotalRepaid += l.Paid
	}
	portfolio.Loans.Outstanding = portfolio.Loans.TotalBorrowed - portfolio.Loans.TotalRepaid

	for _, sv := range savings {
		portfolio.Savings.TotalContributions++
		portfolio.Savings.TotalSaved += sv.Amount
	}
	for _, w := range withdrawals {
		portfolio.Savings.TotalWithdrawn += w.Amount
	}
	portfolio.Savings.Balance = portfolio.Savings.TotalSaved - portfolio.Savings.TotalWithdrawn

	score, err := s.MemberCreditScore(ctx, memberID)
	if err != nil {
		return nil, err
	}
	portfolio.CreditScore = score

	return portfolio, nil
}

// ============================================================
// Member statement
// ============================================================

// Statement entry types
const (
	EntryLoan       = "Loan"
	EntryPayment    = "Payment"
	EntrySaving     = "Saving"
	EntryWithdrawal = "Withdrawal"
)

// Statement directions, from the member's point of view
const (
	DirectionIn  = "in"  // money to the member
	DirectionOut = "out" // money from the member
)

// StatementEntry is one line of a member statement
type StatementEntry struct {
	ID        string    `json:"id"`
	Date      time.Time `json:"date"`
	Type      string    `json:"type"`
	Amount    float64   `json:"amount"`
	Direction string    `json:"direction"`
	Status    string    `json:"status"`
	Details   string    `json:"details"`
}

// MemberStatement merges a member's loans, payments, savings and
// withdrawals into one dated listing
type MemberStatement struct {
	Member   *models.Member    `json:"member"`
	Entries  []*StatementEntry `json:"entries"`
	Count    int               `json:"count"`
	TotalIn  float64           `json:"totalIn"`
	TotalOut float64           `json:"totalOut"`
}

// Statement builds a member's transaction statement, newest first.
// Loans and withdrawals count as money in (to the member); payments and
// savings deposits count as money out.
func (s *AnalyticsService) Statement(ctx context.Context, memberID string) (*MemberStatement, error) {
	member, err := s.memberRepo.GetByID(ctx, memberID)
	if err != nil {
		return nil, err
	}

	loans, err := s.loanRepo.ListByMember(ctx, memberID)
	if err != nil {
		return nil, err
	}
	savings, err := s.savingRepo.ListByMember(ctx, memberID)
	if err != nil {
		return nil, err
	}
	withdrawals, err := s.withdrawalRepo.ListByMember(ctx, memberID)
	if err != nil {
		return nil, err
	}

	statement := &MemberStatement{Member: member, Entries: make([]*StatementEntry, 0)}

	for _, l := range loans {
		statement.Entries = append(statement.Entries, &StatementEntry{
			ID:        l.ID,
			Date:      l.LoanDate,
			Type:      EntryLoan,
			Amount:    l.Amount,
			Direction: DirectionIn,
			Status:    string(l.Status),
			Details:   fmt.Sprintf("Loan of %.2f (%d months at %.2f%%)", l.Amount, l.Term, l.InterestRate),
		})

		payments, err := s.paymentRepo.ListByLoan(ctx, l.ID)
		if err != nil {
			return nil, err
		}
		for _, p := range payments {
			statement.Entries = append(statement.Entries, &StatementEntry{
				ID:        p.ID,
				Date:      p.PaymentDate,
				Type:      EntryPayment,
				Amount:    p.Amount,
				Direction: DirectionOut,
				Status:    string(domain.LoanStatusCompleted),
				Details:   fmt.Sprintf("Payment of %.2f towards loan", p.Amount),
			})
		}
	}

	for _, sv := range savings {
		statement.Entries = append(statement.Entries, &StatementEntry{
			ID:        sv.ID,
			Date:      sv.SavingDate,
			Type:      EntrySaving,
			Amount:    sv.Amount,
			Direction: DirectionOut,
			Status:    string(domain.LoanStatusCompleted),
			Details:   fmt.Sprintf("Savings deposit of %.2f", sv.Amount),
		})
	}
	for _, w := range withdrawals {
		statement.Entries = append(statement.Entries, &StatementEntry{
			ID:        w.ID,
			Date:      w.WithdrawalDate,
			Type:      EntryWithdrawal,
			Amount:    w.Amount,
			Direction: DirectionIn,
			Status:    string(domain.LoanStatusCompleted),
			Details:   fmt.Sprintf("Withdrawal of %.2f", w.Amount),
		})
	}

	sort.Slice(statement.Entries, func(i, j int) bool {
		return statement.Entries[i].Date.After(statement.Entries[j].Date)
	})

	statement.Count = len(statement.Entries)
	var in, out []float64
	for _, e := range statement.Entries {
		if e.Direction == DirectionIn {
			in = append(in, e.Amount)
		} else {
			out = append(out, e.Amount)
		}
	}
	statement.TotalIn = finance.Sum(in)
	statement.TotalOut = finance.Sum(out)

	return statement, nil
}
