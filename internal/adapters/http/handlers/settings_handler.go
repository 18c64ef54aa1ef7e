package handlers

import (
	"errors"

	"sacco-ledger/internal/core/domain"
	"sacco-ledger/internal/core/services"
	"sacco-ledger/internal/pkg/pagination"
	"sacco-ledger/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// SettingsHandler handles role setting and audit log endpoints
type SettingsHandler struct {
	settingsService *services.SettingsService
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(settingsService *services.SettingsService) *SettingsHandler {
	return &SettingsHandler{
		settingsService: settingsService,
	}
}

// GetRole returns the acting role
// @Summary Get role
// @Description Get the stored acting role
// @Tags Settings
// @Accept json
// @Produce json
// @Success 200 {object} response.Response
// @Router /settings/role [get]
func (h *SettingsHandler) GetRole(c *fiber.Ctx) error {
	role, err := h.settingsService.GetRole(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to get role")
	}

	return response.Success(c, "Role retrieved successfully", fiber.Map{
		"role": role,
	})
}

// SetRoleRequest represents set role request
type SetRoleRequest struct {
	Role string `json:"role"`
}

// SetRole stores a new acting role
// @Summary Set role
// @Description Store a new acting role (audited)
// @Tags Settings
// @Accept json
// @Produce json
// @Param body body SetRoleRequest true "Role"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /settings/role [put]
func (h *SettingsHandler) SetRole(c *fiber.Ctx) error {
	var req SetRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.settingsService.SetRole(c.Context(), req.Role); err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return response.BadRequest(c, "Role is required")
		}
		return response.InternalServerError(c, "Failed to set role")
	}

	return response.Success(c, "Role updated successfully", fiber.Map{
		"role": req.Role,
	})
}

// AuditLog lists audit entries
// @Summary List audit log
// @Description List audit entries, newest first, with pagination
// @Tags Settings
// @Accept json
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} response.Response
// @Router /audit-log [get]
func (h *SettingsHandler) AuditLog(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	entries, total, err := h.settingsService.ListAuditLog(c.Context(), params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list audit log")
	}

	return response.Success(c, "Audit log retrieved successfully",
		pagination.NewResponse(entries, params, total))
}
