package routes

import (
	"sacco-ledger/internal/adapters/http/handlers"
	"sacco-ledger/internal/adapters/http/middleware"
	"sacco-ledger/internal/adapters/persistence/repositories"
	"sacco-ledger/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"gorm.io/gorm"
)

// Services bundles the constructed service layer so callers (cron
// wiring in main) can reach it after route setup
type Services struct {
	Member    *services.MemberService
	Loan      *services.LoanService
	Savings   *services.SavingsService
	Analytics *services.AnalyticsService
	Risk      *services.RiskService
	Backup    *services.BackupService
	Settings  *services.SettingsService
}

// Setup configures all routes for the application and returns the
// wired service layer
func Setup(app *fiber.App, db *gorm.DB) *Services {
	// Initialize repositories
	memberRepo := repositories.NewMemberRepository(db)
	loanRepo := repositories.NewLoanRepository(db)
	paymentRepo := repositories.NewPaymentRepository(db)
	savingRepo := repositories.NewSavingRepository(db)
	withdrawalRepo := repositories.NewWithdrawalRepository(db)
	auditRepo := repositories.NewAuditLogRepository(db)
	settingRepo := repositories.NewSettingRepository(db)
	backupRepo := repositories.NewBackupRepository(db)

	// Ledger version ties the risk cache to ledger mutations
	version := services.NewLedgerVersion()

	// Initialize services
	memberService := services.NewMemberService(memberRepo, version)
	loanService := services.NewLoanService(loanRepo, paymentRepo, memberRepo, version)
	savingsService := services.NewSavingsService(savingRepo, withdrawalRepo, memberRepo, auditRepo, settingRepo, version)
	analyticsService := services.NewAnalyticsService(memberRepo, loanRepo, paymentRepo, savingRepo, withdrawalRepo)
	riskService := services.NewRiskService(memberRepo, loanRepo, paymentRepo, savingRepo, version)
	backupService := services.NewBackupService(memberRepo, loanRepo, paymentRepo, savingRepo, withdrawalRepo, auditRepo, settingRepo, backupRepo, version)
	settingsService := services.NewSettingsService(settingRepo, auditRepo)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler()
	memberHandler := handlers.NewMemberHandler(memberService, loanService, savingsService, analyticsService)
	loanHandler := handlers.NewLoanHandler(loanService)
	savingsHandler := handlers.NewSavingsHandler(savingsService)
	analyticsHandler := handlers.NewAnalyticsHandler(analyticsService)
	riskHandler := handlers.NewRiskHandler(riskService)
	backupHandler := handlers.NewBackupHandler(backupService)
	settingsHandler := handlers.NewSettingsHandler(settingsService)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// API v1 group
	apiV1 := app.Group("/api/v1")

	// Members
	members := apiV1.Group("/members")
	members.Post("/", memberHandler.Create)
	members.Get("/", memberHandler.List)
	members.Get("/:id", memberHandler.Get)
	members.Put("/:id", memberHandler.Update)
	members.Delete("/:id", memberHandler.Delete)
	members.Get("/:id/loans", memberHandler.Loans)
	members.Get("/:id/savings", memberHandler.Savings)
	members.Get("/:id/withdrawals", memberHandler.Withdrawals)
	members.Get("/:id/portfolio", memberHandler.Portfolio)
	members.Get("/:id/statement", memberHandler.Statement)
	members.Get("/:id/credit-score", memberHandler.CreditScore)

	// Loans & payments
	loans := apiV1.Group("/loans")
	loans.Post("/", loanHandler.Create)
	loans.Get("/", loanHandler.List)
	loans.Get("/:id", loanHandler.Get)
	loans.Put("/:id", loanHandler.Update)
	loans.Delete("/:id", loanHandler.Delete)
	loans.Post("/:id/payments", loanHandler.RecordPayment)
	loans.Get("/:id/payments", loanHandler.ListPayments)
	apiV1.Delete("/payments/:id", loanHandler.DeletePayment)

	// Savings & withdrawals
	savings := apiV1.Group("/savings")
	savings.Post("/", savingsHandler.AddSaving)
	savings.Get("/", savingsHandler.ListSavings)
	savings.Delete("/:id", savingsHandler.DeleteSaving)

	withdrawals := apiV1.Group("/withdrawals")
	withdrawals.Post("/", savingsHandler.AddWithdrawal)
	withdrawals.Get("/", savingsHandler.ListWithdrawals)

	// Analytics
	analytics := apiV1.Group("/analytics")
	analytics.Get("/summary", analyticsHandler.Summary)
	analytics.Get("/overdue", analyticsHandler.Overdue)
	analytics.Get("/performance", analyticsHandler.Performance)
	analytics.Get("/collection", analyticsHandler.Collection)
	analytics.Get("/delinquency", analyticsHandler.Delinquency)
	analytics.Get("/top-borrowers", analyticsHandler.TopBorrowers)
	analytics.Get("/top-savers", analyticsHandler.TopSavers)

	// Risk engine
	risk := apiV1.Group("/risk")
	risk.Get("/members/:id/assessment", riskHandler.Assessment)
	risk.Get("/members/:id/recommendation", riskHandler.Recommendation)
	risk.Get("/loans/:id/default-probability", riskHandler.DefaultProbability)
	risk.Get("/alerts", riskHandler.Alerts)

	// Backup (destructive operations rate-limited harder)
	backup := apiV1.Group("/backup")
	backup.Get("/export", backupHandler.Export)
	backup.Post("/import", middleware.StrictRateLimiter(), backupHandler.Import)
	backup.Post("/clear", middleware.StrictRateLimiter(), backupHandler.Clear)

	// Settings & audit log
	apiV1.Get("/settings/role", settingsHandler.GetRole)
	apiV1.Put("/settings/role", settingsHandler.SetRole)
	apiV1.Get("/audit-log", settingsHandler.AuditLog)

	return &Services{
		Member:    memberService,
		Loan:      loanService,
		Savings:   savingsService,
		Analytics: analyticsService,
		Risk:      riskService,
		Backup:    backupService,
		Settings:  settingsService,
	}
}

// NewCronService builds the cron service against the wired repositories
func NewCronService(db *gorm.DB, svcs *Services) *services.CronService {
	return services.NewCronService(
		svcs.Risk,
		repositories.NewAuditLogRepository(db),
		repositories.NewSettingRepository(db),
	)
}
