package handlers

import (
	"errors"

	"sacco-ledger/internal/adapters/persistence/models"
	"sacco-ledger/internal/core/domain"
	"sacco-ledger/internal/core/services"
	"sacco-ledger/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// BackupHandler handles whole-ledger export, import and reset endpoints
type BackupHandler struct {
	backupService *services.BackupService
}

// NewBackupHandler creates a new backup handler
func NewBackupHandler(backupService *services.BackupService) *BackupHandler {
	return &BackupHandler{
		backupService: backupService,
	}
}

// Export exports the whole ledger
// @Summary Export ledger
// @Description Export every collection as one snapshot
// @Tags Backup
// @Accept json
// @Produce json
// @Success 200 {object} response.Response
// @Router /backup/export [get]
func (h *BackupHandler) Export(c *fiber.Ctx) error {
	snapshot, err := h.backupService.Export(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to export data")
	}

	return response.Success(c, "Data exported successfully", snapshot)
}

// Import overwrites the ledger from a snapshot
// @Summary Import ledger
// @Description Overwrite the ledger collections from a snapshot (audited)
// @Tags Backup
// @Accept json
// @Produce json
// @Param body body models.Snapshot true "Snapshot"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /backup/import [post]
func (h *BackupHandler) Import(c *fiber.Ctx) error {
	var snapshot models.Snapshot
	if err := c.BodyParser(&snapshot); err != nil {
		return response.BadRequest(c, "Invalid snapshot body")
	}

	if err := h.backupService.Import(c.Context(), &snapshot); err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return response.BadRequest(c, "Invalid snapshot")
		}
		return response.InternalServerError(c, "Failed to import data")
	}

	return response.Success(c, "Data imported successfully", nil)
}

// Clear empties the whole ledger and re-seeds defaults
// @Summary Clear ledger
// @Description Empty every collection and re-seed defaults (audited)
// @Tags Backup
// @Accept json
// @Produce json
// @Success 200 {object} response.Response
// @Router /backup/clear [post]
func (h *BackupHandler) Clear(c *fiber.Ctx) error {
	if err := h.backupService.Clear(c.Context()); err != nil {
		return response.InternalServerError(c, "Failed to clear data")
	}

	return response.Success(c, "All data cleared successfully", nil)
}
