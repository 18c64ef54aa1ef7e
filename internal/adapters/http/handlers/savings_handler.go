package handlers

import (
	"errors"
	"time"

	"sacco-ledger/internal/core/domain"
	"sacco-ledger/internal/core/services"
	"sacco-ledger/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// SavingsHandler handles saving and withdrawal endpoints
type SavingsHandler struct {
	savingsService *services.SavingsService
}

// NewSavingsHandler creates a new savings handler
func NewSavingsHandler(savingsService *services.SavingsService) *SavingsHandler {
	return &SavingsHandler{
		savingsService: savingsService,
	}
}

// AddSavingRequest represents add saving request
type AddSavingRequest struct {
	MemberID   string     `json:"memberId"`
	Amount     float64    `json:"amount"`
	SavingDate *time.Time `json:"savingDate,omitempty"`
}

// AddSaving records a saving deposit
// @Summary Add saving
// @Description Record a saving deposit for a member
// @Tags Savings
// @Accept json
// @Produce json
// @Param body body AddSavingRequest true "Saving data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /savings [post]
func (h *SavingsHandler) AddSaving(c *fiber.Ctx) error {
	var req AddSavingRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.MemberID == "" {
		return response.BadRequest(c, "Member ID is required")
	}
	if req.Amount <= 0 {
		return response.BadRequest(c, "Amount must be greater than 0")
	}

	saving, err := h.savingsService.AddSaving(c.Context(), &services.AddSavingInput{
		MemberID:   req.MemberID,
		Amount:     req.Amount,
		SavingDate: req.SavingDate,
	})
	if err != nil {
		if errors.Is(err, domain.ErrMemberNotFound) {
			return response.NotFound(c, "Member not found")
		}
		return response.InternalServerError(c, "Failed to add saving")
	}

	return response.Created(c, "Saving recorded successfully", fiber.Map{
		"saving": saving,
	})
}

// ListSavings lists every saving record
// @Summary List savings
// @Description List all saving deposits
// @Tags Savings
// @Accept json
// @Produce json
// @Success 200 {object} response.Response
// @Router /savings [get]
func (h *SavingsHandler) ListSavings(c *fiber.Ctx) error {
	savings, err := h.savingsService.ListSavings(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to list savings")
	}

	return response.Success(c, "Savings retrieved successfully", fiber.Map{
		"savings": savings,
	})
}

// DeleteSaving removes a saving record
// @Summary Delete saving
// @Description Delete a saving deposit by ID
// @Tags Savings
// @Accept json
// @Produce json
// @Param id path string true "Saving ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /savings/{id} [delete]
func (h *SavingsHandler) DeleteSaving(c *fiber.Ctx) error {
	if err := h.savingsService.DeleteSaving(c.Context(), c.Params("id")); err != nil {
		if errors.Is(err, domain.ErrSavingNotFound) {
			return response.NotFound(c, "Saving not found")
		}
		return response.InternalServerError(c, "Failed to delete saving")
	}

	return response.Success(c, "Saving deleted successfully", nil)
}

// AddWithdrawalRequest represents add withdrawal request
type AddWithdrawalRequest struct {
	MemberID       string     `json:"memberId"`
	Amount         float64    `json:"amount"`
	WithdrawalDate *time.Time `json:"withdrawalDate,omitempty"`
}

// AddWithdrawal records a withdrawal
// @Summary Add withdrawal
// @Description Record a withdrawal for a member (audited)
// @Tags Savings
// @Accept json
// @Produce json
// @Param body body AddWithdrawalRequest true "Withdrawal data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /withdrawals [post]
func (h *SavingsHandler) AddWithdrawal(c *fiber.Ctx) error {
	var req AddWithdrawalRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.MemberID == "" {
		return response.BadRequest(c, "Member ID is required")
	}
	if req.Amount <= 0 {
		return response.BadRequest(c, "Amount must be greater than 0")
	}

	withdrawal, err := h.savingsService.AddWithdrawal(c.Context(), &services.AddWithdrawalInput{
		MemberID:       req.MemberID,
		Amount:         req.Amount,
		WithdrawalDate: req.WithdrawalDate,
	})
	if err != nil {
		if errors.Is(err, domain.ErrMemberNotFound) {
			return response.NotFound(c, "Member not found")
		}
		return response.InternalServerError(c, "Failed to add withdrawal")
	}

	return response.Created(c, "Withdrawal recorded successfully", fiber.Map{
		"withdrawal": withdrawal,
	})
}

// ListWithdrawals lists every withdrawal record
// @Summary List withdrawals
// @Description List all withdrawals
// @Tags Savings
// @Accept json
// @Produce json
// @Success 200 {object} response.Response
// @Router /withdrawals [get]
func (h *SavingsHandler) ListWithdrawals(c *fiber.Ctx) error {
	withdrawals, err := h.savingsService.ListWithdrawals(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to list withdrawals")
	}

	return response.Success(c, "Withdrawals retrieved successfully", fiber.Map{
		"withdrawals": withdrawals,
	})
}
