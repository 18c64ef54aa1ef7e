package services

import (
	"context"
	"fmt"
	"strings"

	"sacco-ledger/internal/adapters/persistence/models"
	"sacco-ledger/internal/adapters/persistence/repositories"
	"sacco-ledger/internal/core/domain"

	"github.com/google/uuid"
)

// SettingsService manages the singleton role setting and the audit log
// read surface
type SettingsService struct {
	settingRepo repositories.SettingRepository
	auditRepo   repositories.AuditLogRepository
}

// NewSettingsService creates a new settings service
func NewSettingsService(
	settingRepo repositories.SettingRepository,
	auditRepo repositories.AuditLogRepository,
) *SettingsService {
	return &SettingsService{
		settingRepo: settingRepo,
		auditRepo:   auditRepo,
	}
}

// GetRole returns the stored acting role, falling back to the default
func (s *SettingsService) GetRole(ctx context.Context) (string, error) {
	role, err := s.settingRepo.Get(ctx, models.SettingUserRole)
	if err != nil {
		return "", err
	}
	if role == "" {
		role = domain.DefaultRole
	}
	return role, nil
}

// SetRole stores a new acting role and appends a ROLE_CHANGE audit entry
func (s *SettingsService) SetRole(ctx context.Context, role string) error {
	role = strings.TrimSpace(role)
	if role == "" {
		return domain.ErrInvalidInput
	}

	previous, err := s.GetRole(ctx)
	if err != nil {
		return err
	}

	if err := s.settingRepo.Set(ctx, models.SettingUserRole, role); err != nil {
		return err
	}

	entry := &models.AuditLog{
		ID:      uuid.NewString(),
		Action:  models.AuditRoleChange,
		Details: fmt.Sprintf("Role changed from %s to %s", previous, role),
		Role:    role,
	}
	return s.auditRepo.Append(ctx, entry)
}

// ListAuditLog lists audit entries with pagination, newest first
func (s *SettingsService) ListAuditLog(ctx context.Context, offset, limit int) ([]*models.AuditLog, int64, error) {
	return s.auditRepo.List(ctx, offset, limit)
}
