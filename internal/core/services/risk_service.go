package services

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"
	"time"

	"sacco-ledger/internal/adapters/persistence/models"
	"sacco-ledger/internal/adapters/persistence/repositories"
	"sacco-ledger/internal/core/domain"
	"sacco-ledger/internal/pkg/finance"
)

// Risk sub-score weights (must sum to 1)
const (
	WeightPaymentHistory = 0.40
	WeightSavingsPattern = 0.30
	WeightLoanHistory    = 0.20
	WeightActivityLevel  = 0.10
)

// BaseInterestRate is the base lending rate (%) before risk adjustment
const BaseInterestRate = 2.0

// DefaultProbabilityThreshold is the alert cutoff
const DefaultProbabilityThreshold = 0.5

// AlternativeTermMonths are the term options quoted alongside a
// recommendation
var AlternativeTermMonths = []int{3, 6, 9, 12, 18, 24}

// RiskService scores members 0-10 (0 safest) from weighted sub-scores
// and derives loan recommendations and default alerts. Assessments are
// cached per member and invalidated by ledger version, so a cached
// score can never outlive the data it was computed from.
type RiskService struct {
	memberRepo  repositories.MemberRepository
	loanRepo    repositories.LoanRepository
	paymentRepo repositories.PaymentRepository
	savingRepo  repositories.SavingRepository
	version     *LedgerVersion

	mu    sync.Mutex
	cache map[string]*cachedAssessment
}

type cachedAssessment struct {
	assessment *RiskAssessment
	version    uint64
}

// NewRiskService creates a new risk service
func NewRiskService(
	memberRepo repositories.MemberRepository,
	loanRepo repositories.LoanRepository,
	paymentRepo repositories.PaymentRepository,
	savingRepo repositories.SavingRepository,
	version *LedgerVersion,
) *RiskService {
	return &RiskService{
		memberRepo:  memberRepo,
		loanRepo:    loanRepo,
		paymentRepo: paymentRepo,
		savingRepo:  savingRepo,
		version:     version,
		cache:       make(map[string]*cachedAssessment),
	}
}

// ============================================================
// Risk assessment
// ============================================================

// SubScores are the four independent risk components, each 0-10 with 0
// best
type SubScores struct {
	PaymentHistory float64 `json:"paymentHistory"`
	SavingsPattern float64 `json:"savingsPattern"`
	LoanHistory    float64 `json:"loanHistory"`
	ActivityLevel  float64 `json:"activityLevel"`
}

// RiskFactors names the observations behind a score
type RiskFactors struct {
	Positive []string `json:"positive"`
	Negative []string `json:"negative"`
}

// RiskTerms are the lending adjustments implied by a risk level
type RiskTerms struct {
	Text                   string           `json:"text"`
	LoanAmountMultiplier   float64          `json:"loanAmountMultiplier"`
	InterestRateAdjustment float64          `json:"interestRateAdjustment"`
	RiskLevel              domain.RiskLevel `json:"riskLevel"`
}

// RiskAssessment is a member's full risk picture
type RiskAssessment struct {
	MemberID  string           `json:"memberId"`
	RiskScore float64          `json:"riskScore"`
	RiskLevel domain.RiskLevel `json:"riskLevel"`
	Scores    SubScores        `json:"scores"`
	Factors   RiskFactors      `json:"factors"`
	Terms     RiskTerms        `json:"recommendation"`
	Timestamp time.Time        `json:"timestamp"`
}

// AssessMember computes (or returns the still-valid cached) risk
// assessment for a member. An unknown member is not assessable and
// returns ErrMemberNotFound, distinct from a zero-risk result.
func (s *RiskService) AssessMember(ctx context.Context, memberID string) (*RiskAssessment, error) {
	currentVersion := s.version.Current()

	s.mu.Lock()
	if cached, ok := s.cache[memberID]; ok && cached.version == currentVersion {
		s.mu.Unlock()
		return cached.assessment, nil
	}
	s.mu.Unlock()

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

	paymentScore, err := s.paymentHistoryScore(ctx, loans)
	if err != nil {
		return nil, err
	}

	scores := SubScores{
		PaymentHistory: paymentScore,
		SavingsPattern: savingsScore(savings),
		LoanHistory:    loanHistoryScore(loans),
		ActivityLevel:  activityScore(member, loans),
	}

	riskScore := scores.PaymentHistory*WeightPaymentHistory +
		scores.SavingsPattern*WeightSavingsPattern +
		scores.LoanHistory*WeightLoanHistory +
		scores.ActivityLevel*WeightActivityLevel

	level := domain.RiskLevelForScore(riskScore)
	assessment := &RiskAssessment{
		MemberID:  memberID,
		RiskScore: finance.Round1(riskScore),
		RiskLevel: level,
		Scores:    scores,
		Factors:   identifyFactors(scores),
		Terms:     termsForLevel(level),
		Timestamp: time.Now(),
	}

	s.mu.Lock()
	s.cache[memberID] = &cachedAssessment{assessment: assessment, version: currentVersion}
	s.mu.Unlock()

	return assessment, nil
}

// paymentHistoryScore scores 0-10 from on-time / late (within a week) /
// missed (over a week late) payment ratios. Neutral 5 with no history.
func (s *RiskService) paymentHistoryScore(ctx context.Context, loans []*models.Loan) (float64, error) {
	if len(loans) == 0 {
		return 5, nil
	}

	var onTime, late, missed int
	for _, loan := range loans {
		payments, err := s.paymentRepo.ListByLoan(ctx, loan.ID)
		if err != nil {
			return 0, err
		}
		for _, p := range payments {
			switch daysLate := p.DaysLate(); {
			case daysLate == 0:
				onTime++
			case daysLate <= 7:
				late++
			default:
				missed++
			}
		}
	}

	total := onTime + late + missed
	if total == 0 {
		return 5, nil
	}

	onTimeRate := float64(onTime) / float64(total)
	lateRate := float64(late) / float64(total)
	missedRate := float64(missed) / float64(total)

	score := 10.0
	score -= onTimeRate * 8
	score += lateRate * 2
	score += missedRate * 4

	return clamp10(score), nil
}

// savingsScore scores 0-10 from absolute savings, deposit consistency
// and growth trend. 7 (elevated risk) with no savings at all.
func savingsScore(savings []*models.Saving) float64 {
	if len(savings) == 0 {
		return 7
	}

	amounts := make([]float64, len(savings))
	for i, sv := range savings {
		amounts[i] = sv.Amount
	}
	total := finance.Sum(amounts)

	score := 10.0
	if total < 100000 {
		score -= 1
	}
	if total < 500000 {
		score -= 2
	}
	if total >= 1000000 {
		score -= 3
	}

	score -= savingsConsistency(savings) * 3

	if savingsGrowth(savings) > 0.1 {
		score -= 2
	}

	return clamp10(score)
}

// savingsConsistency returns 0-1, higher meaning steadier deposit
// amounts (inverse coefficient of variation). 0.5 with fewer than two
// deposits.
func savingsConsistency(savings []*models.Saving) float64 {
	if len(savings) < 2 {
		return 0.5
	}

	amounts := make([]float64, len(savings))
	for i, sv := range savings {
		amounts[i] = sv.Amount
	}
	mean := finance.Mean(amounts)
	if mean == 0 {
		mean = 1
	}
	return math.Max(0, 1-finance.StdDev(amounts)/mean)
}

// savingsGrowth returns the relative change between the first and last
// deposit by date
func savingsGrowth(savings []*models.Saving) float64 {
	if len(savings) < 2 {
		return 0
	}

	sorted := make([]*models.Saving, len(savings))
	copy(sorted, savings)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].SavingDate.Before(sorted[j].SavingDate)
	})

	first := sorted[0].Amount
	last := sorted[len(sorted)-1].Amount
	if first == 0 {
		first = 1
	}
	return (last - first) / first
}

// loanHistoryScore scores 0-10 from completion rate and default/overdue
// counts. 7 with no prior loans.
func loanHistoryScore(loans []*models.Loan) float64 {
	if len(loans) == 0 {
		return 7
	}

	var completed, defaulted, overdue int
	for _, l := range loans {
		switch l.Status {
		case domain.LoanStatusCompleted:
			completed++
		case domain.LoanStatusDefaulted:
			defaulted++
		case domain.LoanStatusOverdue:
			overdue++
		}
	}

	completionRate := float64(completed) / float64(len(loans))

	score := 10.0
	score -= completionRate * 4
	score += float64(defaulted) * 2
	score += float64(overdue) * 1.5

	if len(loans) > 5 {
		score -= 1
	}

	return clamp10(score)
}

// activityScore scores 0-10 from account age and loan activity in the
// last 90 days
func activityScore(member *models.Member, loans []*models.Loan) float64 {
	if member == nil {
		return 5
	}

	accountAgeDays := time.Since(member.JoinDate).Hours() / 24
	recentActivity := recentLoanCount(loans, 90)

	score := 10.0
	if accountAgeDays > 365 {
		score -= 2
	}
	if accountAgeDays > 730 {
		score -= 1
	}

	activityPerMonth := float64(recentActivity) / 3
	if activityPerMonth > 2 {
		score -= 2
	}
	if activityPerMonth > 5 {
		score -= 1
	}

	return clamp10(score)
}

// recentLoanCount counts loans issued within the trailing window
func recentLoanCount(loans []*models.Loan, days int) int {
	cutoff := time.Now().AddDate(0, 0, -days)
	count := 0
	for _, l := range loans {
		if l.LoanDate.After(cutoff) {
			count++
		}
	}
	return count
}

func identifyFactors(scores SubScores) RiskFactors {
	factors := RiskFactors{Positive: []string{}, Negative: []string{}}

	if scores.PaymentHistory < 3 {
		factors.Positive = append(factors.Positive, "Strong payment history")
	}
	if scores.PaymentHistory > 7 {
		factors.Negative = append(factors.Negative, "Poor payment history")
	}

	if scores.SavingsPattern < 4 {
		factors.Positive = append(factors.Positive, "Consistent savings")
	}
	if scores.SavingsPattern > 7 {
		factors.Negative = append(factors.Negative, "Low/no savings")
	}

	if scores.LoanHistory < 3 {
		factors.Positive = append(factors.Positive, "Good loan completion")
	}
	if scores.LoanHistory > 7 {
		factors.Negative = append(factors.Negative, "History of defaults")
	}

	if scores.ActivityLevel < 4 {
		factors.Positive = append(factors.Positive, "Long account history")
	}
	if scores.ActivityLevel > 7 {
		factors.Negative = append(factors.Negative, "New/inactive account")
	}

	return factors
}

func termsForLevel(level domain.RiskLevel) RiskTerms {
	switch level {
	case domain.RiskLow:
		return RiskTerms{
			Text:                   "Approve with standard terms",
			LoanAmountMultiplier:   1.0,
			InterestRateAdjustment: 0,
			RiskLevel:              level,
		}
	case domain.RiskMedium:
		return RiskTerms{
			Text:                   "Approve with reduced amount or higher interest rate",
			LoanAmountMultiplier:   0.75,
			InterestRateAdjustment: 1,
			RiskLevel:              level,
		}
	default:
		return RiskTerms{
			Text:                   "Approve with significant restrictions or require co-signer",
			LoanAmountMultiplier:   0.5,
			InterestRateAdjustment: 2,
			RiskLevel:              level,
		}
	}
}

func clamp10(v float64) float64 {
	return math.Max(0, math.Min(10, v))
}

// ============================================================
// Loan recommendation
// ============================================================

// TermOption is an alternative repayment schedule for the recommended
// amount
type TermOption struct {
	Term           int     `json:"term"`
	MonthlyPayment float64 `json:"monthlyPayment"`
	TotalRepayment float64 `json:"totalRepayment"`
}

// LoanRecommendation is the engine's suggested loan terms for a member
type LoanRecommendation struct {
	MemberID          string        `json:"memberId"`
	RecommendedAmount float64       `json:"recommendedAmount"`
	MaxLoanAmount     float64       `json:"maxLoanAmount"`
	RecommendedTerm   int           `json:"recommendedTerm"`
	RecommendedRate   float64       `json:"recommendedRate"`
	MonthlyPayment    float64       `json:"monthlyPayment"`
	Confidence        float64       `json:"confidence"`
	Rationale         []string      `json:"rationale"`
	Alternatives      []*TermOption `json:"alternatives"`
	Timestamp         time.Time     `json:"timestamp"`
}

// RecommendLoan derives a loan recommendation for a member. Lending
// capacity is three times total savings minus outstanding active debt,
// scaled by the risk multiplier. With a requested amount the
// recommendation is capped at capacity; without one it is 70% of
// capacity. requestedAmount <= 0 means no specific amount requested.
func (s *RiskService) RecommendLoan(ctx context.Context, memberID string, requestedAmount float64) (*LoanRecommendation, error) {
	risk, err := s.AssessMember(ctx, memberID)
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

	amounts := make([]float64, len(savings))
	for i, sv := range savings {
		amounts[i] = sv.Amount
	}
	totalSavings := finance.Sum(amounts)
	activeDebt := outstandingDebt(loans)

	maxAmount := totalSavings * 3
	if activeDebt > 0 {
		maxAmount = math.Max(0, maxAmount-activeDebt)
	}
	maxAmount *= risk.Terms.LoanAmountMultiplier

	recommended := maxAmount * 0.7
	if requestedAmount > 0 {
		recommended = math.Min(requestedAmount, maxAmount)
	}

	term := optimalTerm(savings)
	rate := BaseInterestRate + risk.Terms.InterestRateAdjustment
	monthly := finance.MonthlyPayment(recommended, rate, term)

	return &LoanRecommendation{
		MemberID:          memberID,
		RecommendedAmount: math.Round(recommended),
		MaxLoanAmount:     math.Round(maxAmount),
		RecommendedTerm:   term,
		RecommendedRate:   rate,
		MonthlyPayment:    math.Round(monthly),
		Confidence:        confidence(loans, savings),
		Rationale:         rationale(risk, totalSavings),
		Alternatives:      alternativeTerms(recommended, rate),
		Timestamp:         time.Now(),
	}, nil
}

// outstandingDebt sums the unpaid remainder of active and overdue loans
func outstandingDebt(loans []*models.Loan) float64 {
	var debt float64
	for _, l := range loans {
		if l.Status.IsOutstanding() {
			debt += l.Remaining()
		}
	}
	return debt
}

// optimalTerm picks a repayment term band from the member's average
// deposit size: bigger savers get shorter terms. Clamped to [3, 60].
func optimalTerm(savings []*models.Saving) int {
	var avg float64
	if len(savings) > 0 {
		amounts := make([]float64, len(savings))
		for i, sv := range savings {
			amounts[i] = sv.Amount
		}
		avg = finance.Mean(amounts)
	}

	term := 12
	switch {
	case avg > 500000:
		term = 6
	case avg > 100000:
		term = 9
	case avg > 50000:
		term = 12
	default:
		term = 24
	}

	if term < 3 {
		return 3
	}
	if term > 60 {
		return 60
	}
	return term
}

// confidence grows from 0.5 with data richness, capped at 0.99
func confidence(loans []*models.Loan, savings []*models.Saving) float64 {
	c := 0.5
	if len(loans) > 3 {
		c += 0.2
	}
	if len(savings) > 6 {
		c += 0.15
	}
	if recentLoanCount(loans, 30) > 0 {
		c += 0.15
	}
	return math.Min(0.99, c)
}

func rationale(risk *RiskAssessment, totalSavings float64) []string {
	reasons := []string{}

	if totalSavings > 500000 {
		reasons = append(reasons, fmt.Sprintf("Strong savings base of %.0f", totalSavings))
	}
	if risk.RiskLevel == domain.RiskLow {
		reasons = append(reasons, "Excellent repayment history")
	}
	if len(risk.Factors.Positive) > 0 {
		reasons = append(reasons, risk.Factors.Positive[0])
	}
	if len(risk.Factors.Negative) > 0 {
		reasons = append(reasons, "Caution: "+risk.Factors.Negative[0])
	}

	return reasons
}

func alternativeTerms(amount, rate float64) []*TermOption {
	options := make([]*TermOption, 0, len(AlternativeTermMonths))
	for _, term := range AlternativeTermMonths {
		monthly := finance.MonthlyPayment(amount, rate, term)
		options = append(options, &TermOption{
			Term:           term,
			MonthlyPayment: math.Round(monthly),
			TotalRepayment: math.Round(monthly * float64(term)),
		})
	}
	return options
}

// ============================================================
// Default probability
// ============================================================

// DefaultFactors are the normalized inputs to a default prediction
type DefaultFactors struct {
	RiskScore       float64 `json:"riskScore"`
	LoanAmountRatio float64 `json:"loanAmountRatio"`
	PaymentsMissed  int     `json:"paymentsMissed"`
	MaxDaysOverdue  int     `json:"maxDaysOverdue"`
}

// DefaultPrediction estimates how likely a loan is to default
type DefaultPrediction struct {
	LoanID             string           `json:"loanId"`
	MemberID           string           `json:"memberId"`
	DefaultProbability float64          `json:"defaultProbability"`
	RiskLevel          domain.RiskLevel `json:"riskLevel"`
	Factors            DefaultFactors   `json:"factors"`
	Alert              bool             `json:"alert"`
}

// PredictDefault estimates a loan's default probability from the
// member's risk score, the loan-to-savings ratio (capped at 5x; zero
// savings counts as fully stretched), missed payments (capped at 3)
// and the worst payment delay (capped at 90 days).
func (s *RiskService) PredictDefault(ctx context.Context, loanID string) (*DefaultPrediction, error) {
	loan, err := s.loanRepo.GetByID(ctx, loanID)
	if err != nil {
		return nil, err
	}

	risk, err := s.AssessMember(ctx, loan.MemberID)
	if err != nil {
		return nil, err
	}

	totalSavings, err := s.savingRepo.TotalByMember(ctx, loan.MemberID)
	if err != nil {
		return nil, err
	}

	payments, err := s.paymentRepo.ListByLoan(ctx, loanID)
	if err != nil {
		return nil, err
	}

	var missed, maxDaysLate int
	for _, p := range payments {
		daysLate := p.DaysLate()
		if daysLate > 7 {
			missed++
		}
		if daysLate > maxDaysLate {
			maxDaysLate = daysLate
		}
	}

	// A member with no savings has no cushion at all, so the ratio
	// factor saturates.
	ratioFactor := 1.0
	var ratio float64
	if totalSavings > 0 {
		ratio = loan.Amount / totalSavings
		ratioFactor = math.Min(1, ratio/5)
	}

	probability := risk.RiskScore/10*0.3 +
		ratioFactor*0.2 +
		math.Min(1, float64(missed)/3)*0.3 +
		math.Min(1, float64(maxDaysLate)/90)*0.2
	probability = math.Min(1, probability)

	level := domain.RiskLow
	if probability > 0.7 {
		level = domain.RiskHigh
	} else if probability > 0.4 {
		level = domain.RiskMedium
	}

	return &DefaultPrediction{
		LoanID:             loanID,
		MemberID:           loan.MemberID,
		DefaultProbability: probability,
		RiskLevel:          level,
		Factors: DefaultFactors{
			RiskScore:       risk.RiskScore / 10,
			LoanAmountRatio: ratio,
			PaymentsMissed:  missed,
			MaxDaysOverdue:  maxDaysLate,
		},
		Alert: probability > DefaultProbabilityThreshold,
	}, nil
}

// ============================================================
// Alerts
// ============================================================

// Alert flags one loan whose default prediction crossed the threshold
type Alert struct {
	LoanID      string           `json:"loanId"`
	MemberID    string           `json:"memberId"`
	Type        string           `json:"type"`
	Severity    domain.RiskLevel `json:"severity"`
	Probability float64          `json:"probability"`
	Message     string           `json:"message"`
	Action      string           `json:"action"`
	Timestamp   time.Time        `json:"timestamp"`
}

// AlertTypeDefaultRisk marks alerts raised by default prediction
const AlertTypeDefaultRisk = "default-risk"

// GenerateAlerts scans every loan and emits one alert per loan whose
// default probability exceeds the threshold
func (s *RiskService) GenerateAlerts(ctx context.Context) ([]*Alert, error) {
	loans, err := s.loanRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	alerts := make([]*Alert, 0)
	for _, loan := range loans {
		prediction, err := s.PredictDefault(ctx, loan.ID)
		if err != nil {
			// a dangling member reference makes the loan unassessable
			continue
		}
		if !prediction.Alert {
			continue
		}

		alerts = append(alerts, &Alert{
			LoanID:      loan.ID,
			MemberID:    loan.MemberID,
			Type:        AlertTypeDefaultRisk,
			Severity:    prediction.RiskLevel,
			Probability: prediction.DefaultProbability,
			Message:     s.alertMessage(ctx, loan, prediction),
			Action:      alertAction(prediction.DefaultProbability),
			Timestamp:   time.Now(),
		})
	}

	return alerts, nil
}

func (s *RiskService) alertMessage(ctx context.Context, loan *models.Loan, prediction *DefaultPrediction) string {
	name := loan.MemberID
	if member, err := s.memberRepo.GetByID(ctx, loan.MemberID); err == nil {
		name = member.Name
	}
	percent := int(math.Round(prediction.DefaultProbability * 100))
	return fmt.Sprintf("%s's loan %s has %d%% default risk. Recent payment delays detected.", name, loan.ID, percent)
}

func alertAction(probability float64) string {
	switch {
	case probability > 0.8:
		return "Contact member immediately - Propose restructuring"
	case probability > 0.6:
		return "Schedule follow-up call - Discuss payment plan"
	default:
		return "Monitor closely - Flag for next review"
	}
}
