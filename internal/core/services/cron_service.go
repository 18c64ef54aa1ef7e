package services

import (
	"context"
	"fmt"
	"log"

	"sacco-ledger/internal/adapters/persistence/models"
	"sacco-ledger/internal/adapters/persistence/repositories"
	"sacco-ledger/internal/core/domain"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
)

// riskSweepSchedule runs the default-risk sweep daily at 06:00
const riskSweepSchedule = "0 6 * * *"

// CronService runs the scheduled background jobs. The daily sweep only
// reads the ledger and records what it found; it never rewrites loan
// status.
type CronService struct {
	riskService *RiskService
	auditRepo   repositories.AuditLogRepository
	settingRepo repositories.SettingRepository
	scheduler   *cron.Cron
}

// NewCronService creates a new cron service
func NewCronService(
	riskService *RiskService,
	auditRepo repositories.AuditLogRepository,
	settingRepo repositories.SettingRepository,
) *CronService {
	return &CronService{
		riskService: riskService,
		auditRepo:   auditRepo,
		settingRepo: settingRepo,
		scheduler:   cron.New(),
	}
}

// Start registers and starts the scheduled jobs
func (s *CronService) Start() error {
	if _, err := s.scheduler.AddFunc(riskSweepSchedule, func() {
		if err := s.RunRiskSweep(context.Background()); err != nil {
			log.Printf("risk sweep failed: %v", err)
		}
	}); err != nil {
		return err
	}

	s.scheduler.Start()
	log.Println("Cron scheduler started (daily risk sweep at 06:00)")
	return nil
}

// Stop stops the scheduler and waits for running jobs
func (s *CronService) Stop() {
	ctx := s.scheduler.Stop()
	<-ctx.Done()
}

// RunRiskSweep generates default-risk alerts across the whole loan book
// and appends a RISK_SCAN audit entry with the result
func (s *CronService) RunRiskSweep(ctx context.Context) error {
	alerts, err := s.riskService.GenerateAlerts(ctx)
	if err != nil {
		return err
	}

	log.Printf("Risk sweep complete: %d alert(s)", len(alerts))

	role, err := s.settingRepo.Get(ctx, models.SettingUserRole)
	if err != nil || role == "" {
		role = domain.DefaultRole
	}

	entry := &models.AuditLog{
		ID:      uuid.NewString(),
		Action:  models.AuditRiskScan,
		Details: fmt.Sprintf("Scheduled risk sweep raised %d alert(s)", len(alerts)),
		Role:    role,
	}
	return s.auditRepo.Append(ctx, entry)
}
