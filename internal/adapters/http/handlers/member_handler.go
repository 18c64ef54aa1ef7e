package handlers

import (
	"errors"
	"time"

	"sacco-ledger/internal/core/domain"
	"sacco-ledger/internal/core/services"
	"sacco-ledger/internal/pkg/pagination"
	"sacco-ledger/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// MemberHandler handles member endpoints
type MemberHandler struct {
	memberService    *services.MemberService
	loanService      *services.LoanService
	savingsService   *services.SavingsService
	analyticsService *services.AnalyticsService
}

// NewMemberHandler creates a new member handler
func NewMemberHandler(
	memberService *services.MemberService,
	loanService *services.LoanService,
	savingsService *services.SavingsService,
	analyticsService *services.AnalyticsService,
) *MemberHandler {
	return &MemberHandler{
		memberService:    memberService,
		loanService:      loanService,
		savingsService:   savingsService,
		analyticsService: analyticsService,
	}
}

// CreateMemberRequest represents create member request
type CreateMemberRequest struct {
	Name     string     `json:"name"`
	Email    string     `json:"email,omitempty"`
	Phone    string     `json:"phone,omitempty"`
	IDNo     string     `json:"idNo,omitempty"`
	JoinDate *time.Time `json:"joinDate,omitempty"`
}

// Create creates a new member
// @Summary Create member
// @Description Register a new cooperative member
// @Tags Members
// @Accept json
// @Produce json
// @Param body body CreateMemberRequest true "Member data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /members [post]
func (h *MemberHandler) Create(c *fiber.Ctx) error {
	var req CreateMemberRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.Name == "" {
		return response.BadRequest(c, "Name is required")
	}

	member, err := h.memberService.Create(c.Context(), &services.CreateMemberInput{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		IDNo:     req.IDNo,
		JoinDate: req.JoinDate,
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return response.BadRequest(c, "Name is required")
		}
		return response.InternalServerError(c, "Failed to create member")
	}

	return response.Created(c, "Member created successfully", fiber.Map{
		"member": member,
	})
}

// List lists members
// @Summary List members
// @Description List all members with pagination
// @Tags Members
// @Accept json
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} response.Response
// @Router /members [get]
func (h *MemberHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	members, total, err := h.memberService.List(c.Context(), params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list members")
	}

	return response.Success(c, "Members retrieved successfully",
		pagination.NewResponse(members, params, total))
}

// Get gets a member by ID
// @Summary Get member
// @Description Get a member by ID
// @Tags Members
// @Accept json
// @Produce json
// @Param id path string true "Member ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /members/{id} [get]
func (h *MemberHandler) Get(c *fiber.Ctx) error {
	member, err := h.memberService.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrMemberNotFound) {
			return response.NotFound(c, "Member not found")
		}
		return response.InternalServerError(c, "Failed to get member")
	}

	return response.Success(c, "Member retrieved successfully", fiber.Map{
		"member": member,
	})
}

// UpdateMemberRequest represents update member request
type UpdateMemberRequest struct {
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty"`
	Phone *string `json:"phone,omitempty"`
	IDNo  *string `json:"idNo,omitempty"`
}

// Update updates a member
// @Summary Update member
// @Description Update a member's profile fields
// @Tags Members
// @Accept json
// @Produce json
// @Param id path string true "Member ID"
// @Param body body UpdateMemberRequest true "Fields to update"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /members/{id} [put]
func (h *MemberHandler) Update(c *fiber.Ctx) error {
	var req UpdateMemberRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	member, err := h.memberService.Update(c.Context(), c.Params("id"), &services.UpdateMemberInput{
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
		IDNo:  req.IDNo,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrMemberNotFound):
			return response.NotFound(c, "Member not found")
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, "Name cannot be empty")
		default:
			return response.InternalServerError(c, "Failed to update member")
		}
	}

	return response.Success(c, "Member updated successfully", fiber.Map{
		"member": member,
	})
}

// Delete deletes a member
// @Summary Delete member
// @Description Delete a member by ID
// @Tags Members
// @Accept json
// @Produce json
// @Param id path string true "Member ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /members/{id} [delete]
func (h *MemberHandler) Delete(c *fiber.Ctx) error {
	if err := h.memberService.Delete(c.Context(), c.Params("id")); err != nil {
		if errors.Is(err, domain.ErrMemberNotFound) {
			return response.NotFound(c, "Member not found")
		}
		return response.InternalServerError(c, "Failed to delete member")
	}

	return response.Success(c, "Member deleted successfully", nil)
}

// Loans lists a member's loans
// @Summary List member loans
// @Description List all loans belonging to a member
// @Tags Members
// @Accept json
// @Produce json
// @Param id path string true "Member ID"
// @Success 200 {object} response.Response
// @Router /members/{id}/loans [get]
func (h *MemberHandler) Loans(c *fiber.Ctx) error {
	loans, err := h.loanService.ListByMember(c.Context(), c.Params("id"))
	if err != nil {
		return response.InternalServerError(c, "Failed to list loans")
	}

	return response.Success(c, "Loans retrieved successfully", fiber.Map{
		"loans": loans,
	})
}

// Savings lists a member's savings
// @Summary List member savings
// @Description List a member's saving deposits
// @Tags Members
// @Accept json
// @Produce json
// @Param id path string true "Member ID"
// @Success 200 {object} response.Response
// @Router /members/{id}/savings [get]
func (h *MemberHandler) Savings(c *fiber.Ctx) error {
	savings, err := h.savingsService.ListSavingsByMember(c.Context(), c.Params("id"))
	if err != nil {
		return response.InternalServerError(c, "Failed to list savings")
	}

	balance, err := h.savingsService.MemberBalance(c.Context(), c.Params("id"))
	if err != nil {
		return response.InternalServerError(c, "Failed to compute balance")
	}

	return response.Success(c, "Savings retrieved successfully", fiber.Map{
		"savings": savings,
		"balance": balance,
	})
}

// Withdrawals lists a member's withdrawals
// @Summary List member withdrawals
// @Description List a member's withdrawals
// @Tags Members
// @Accept json
// @Produce json
// @Param id path string true "Member ID"
// @Success 200 {object} response.Response
// @Router /members/{id}/withdrawals [get]
func (h *MemberHandler) Withdrawals(c *fiber.Ctx) error {
	withdrawals, err := h.savingsService.ListWithdrawalsByMember(c.Context(), c.Params("id"))
	if err != nil {
		return response.InternalServerError(c, "Failed to list withdrawals")
	}

	return response.Success(c, "Withdrawals retrieved successfully", fiber.Map{
		"withdrawals": withdrawals,
	})
}

// Portfolio returns a member's full financial position
// @Summary Member portfolio
// @Description Get a member's loans, savings and credit score in one view
// @Tags Members
// @Accept json
// @Produce json
// @Param id path string true "Member ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /members/{id}/portfolio [get]
func (h *MemberHandler) Portfolio(c *fiber.Ctx) error {
	portfolio, err := h.analyticsService.Portfolio(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrMemberNotFound) {
			return response.NotFound(c, "Member not found")
		}
		return response.InternalServerError(c, "Failed to build portfolio")
	}

	return response.Success(c, "Portfolio retrieved successfully", portfolio)
}

// Statement returns a member's merged transaction statement
// @Summary Member statement
// @Description Get a member's merged loan/payment/saving/withdrawal statement
// @Tags Members
// @Accept json
// @Produce json
// @Param id path string true "Member ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /members/{id}/statement [get]
func (h *MemberHandler) Statement(c *fiber.Ctx) error {
	statement, err := h.analyticsService.Statement(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrMemberNotFound) {
			return response.NotFound(c, "Member not found")
		}
		return response.InternalServerError(c, "Failed to build statement")
	}

	return response.Success(c, "Statement retrieved successfully", statement)
}

// CreditScore returns a member's credit score
// @Summary Member credit score
// @Description Get a member's 0-100 credit score
// @Tags Members
// @Accept json
// @Produce json
// @Param id path string true "Member ID"
// @Success 200 {object} response.Response
// @Router /members/{id}/credit-score [get]
func (h *MemberHandler) CreditScore(c *fiber.Ctx) error {
	score, err := h.analyticsService.MemberCreditScore(c.Context(), c.Params("id"))
	if err != nil {
		return response.InternalServerError(c, "Failed to compute credit score")
	}

	return response.Success(c, "Credit score retrieved successfully", fiber.Map{
		"memberId":    c.Params("id"),
		"creditScore": score,
	})
}
