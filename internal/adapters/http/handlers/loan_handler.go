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

// LoanHandler handles loan and payment endpoints
type LoanHandler struct {
	loanService *services.LoanService
}

// NewLoanHandler creates a new loan handler
func NewLoanHandler(loanService *services.LoanService) *LoanHandler {
	return &LoanHandler{
		loanService: loanService,
	}
}

// CreateLoanRequest represents create loan request
type CreateLoanRequest struct {
	MemberID     string     `json:"memberId"`
	Amount       float64    `json:"amount"`
	InterestRate float64    `json:"interestRate"`
	Term         int        `json:"term"`
	LoanDate     *time.Time `json:"loanDate,omitempty"`
	DueDate      *time.Time `json:"dueDate,omitempty"`
}

// Create issues a new loan
// @Summary Create loan
// @Description Issue a new loan to a member
// @Tags Loans
// @Accept json
// @Produce json
// @Param body body CreateLoanRequest true "Loan data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /loans [post]
func (h *LoanHandler) Create(c *fiber.Ctx) error {
	var req CreateLoanRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.MemberID == "" {
		return response.BadRequest(c, "Member ID is required")
	}
	if req.Amount <= 0 {
		return response.BadRequest(c, "Amount must be greater than 0")
	}
	if req.Term <= 0 {
		return response.BadRequest(c, "Term must be greater than 0")
	}

	loan, err := h.loanService.Create(c.Context(), &services.CreateLoanInput{
		MemberID:     req.MemberID,
		Amount:       req.Amount,
		InterestRate: req.InterestRate,
		Term:         req.Term,
		LoanDate:     req.LoanDate,
		DueDate:      req.DueDate,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrMemberNotFound):
			return response.NotFound(c, "Member not found")
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, "Invalid loan data")
		default:
			return response.InternalServerError(c, "Failed to create loan")
		}
	}

	return response.Created(c, "Loan created successfully", fiber.Map{
		"loan": loan,
	})
}

// List lists loans
// @Summary List loans
// @Description List all loans with pagination
// @Tags Loans
// @Accept json
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} response.Response
// @Router /loans [get]
func (h *LoanHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	loans, total, err := h.loanService.List(c.Context(), params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list loans")
	}

	return response.Success(c, "Loans retrieved successfully",
		pagination.NewResponse(loans, params, total))
}

// Get gets a loan by ID
// @Summary Get loan
// @Description Get a loan by ID
// @Tags Loans
// @Accept json
// @Produce json
// @Param id path string true "Loan ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /loans/{id} [get]
func (h *LoanHandler) Get(c *fiber.Ctx) error {
	loan, err := h.loanService.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrLoanNotFound) {
			return response.NotFound(c, "Loan not found")
		}
		return response.InternalServerError(c, "Failed to get loan")
	}

	return response.Success(c, "Loan retrieved successfully", fiber.Map{
		"loan": loan,
	})
}

// UpdateLoanRequest represents update loan request
type UpdateLoanRequest struct {
	Amount       *float64   `json:"amount,omitempty"`
	InterestRate *float64   `json:"interestRate,omitempty"`
	Term         *int       `json:"term,omitempty"`
	DueDate      *time.Time `json:"dueDate,omitempty"`
	Penalty      *float64   `json:"penalty,omitempty"`
}

// Update updates a loan
// @Summary Update loan
// @Description Update a loan's terms or penalty
// @Tags Loans
// @Accept json
// @Produce json
// @Param id path string true "Loan ID"
// @Param body body UpdateLoanRequest true "Fields to update"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /loans/{id} [put]
func (h *LoanHandler) Update(c *fiber.Ctx) error {
	var req UpdateLoanRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	loan, err := h.loanService.Update(c.Context(), c.Params("id"), &services.UpdateLoanInput{
		Amount:       req.Amount,
		InterestRate: req.InterestRate,
		Term:         req.Term,
		DueDate:      req.DueDate,
		Penalty:      req.Penalty,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrLoanNotFound):
			return response.NotFound(c, "Loan not found")
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, "Invalid loan data")
		default:
			return response.InternalServerError(c, "Failed to update loan")
		}
	}

	return response.Success(c, "Loan updated successfully", fiber.Map{
		"loan": loan,
	})
}

// Delete deletes a loan
// @Summary Delete loan
// @Description Delete a loan by ID
// @Tags Loans
// @Accept json
// @Produce json
// @Param id path string true "Loan ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /loans/{id} [delete]
func (h *LoanHandler) Delete(c *fiber.Ctx) error {
	if err := h.loanService.Delete(c.Context(), c.Params("id")); err != nil {
		if errors.Is(err, domain.ErrLoanNotFound) {
			return response.NotFound(c, "Loan not found")
		}
		return response.InternalServerError(c, "Failed to delete loan")
	}

	return response.Success(c, "Loan deleted successfully", nil)
}

// RecordPaymentRequest represents record payment request
type RecordPaymentRequest struct {
	Amount      float64    `json:"amount"`
	PaymentDate *time.Time `json:"paymentDate,omitempty"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
}

// RecordPayment records a payment against a loan
// @Summary Record payment
// @Description Record a payment and apply it to the loan's paid total and status
// @Tags Loans
// @Accept json
// @Produce json
// @Param id path string true "Loan ID"
// @Param body body RecordPaymentRequest true "Payment data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /loans/{id}/payments [post]
func (h *LoanHandler) RecordPayment(c *fiber.Ctx) error {
	var req RecordPaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.Amount <= 0 {
		return response.BadRequest(c, "Amount must be greater than 0")
	}

	payment, loan, err := h.loanService.RecordPayment(c.Context(), &services.RecordPaymentInput{
		LoanID:      c.Params("id"),
		Amount:      req.Amount,
		PaymentDate: req.PaymentDate,
		DueDate:     req.DueDate,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrLoanNotFound):
			return response.NotFound(c, "Loan not found")
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, "Invalid payment data")
		default:
			return response.InternalServerError(c, "Failed to record payment")
		}
	}

	return response.Created(c, "Payment recorded successfully", fiber.Map{
		"payment": payment,
		"loan":    loan,
	})
}

// ListPayments lists payments against a loan
// @Summary List loan payments
// @Description List all payments recorded against a loan
// @Tags Loans
// @Accept json
// @Produce json
// @Param id path string true "Loan ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /loans/{id}/payments [get]
func (h *LoanHandler) ListPayments(c *fiber.Ctx) error {
	payments, err := h.loanService.ListPayments(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrLoanNotFound) {
			return response.NotFound(c, "Loan not found")
		}
		return response.InternalServerError(c, "Failed to list payments")
	}

	return response.Success(c, "Payments retrieved successfully", fiber.Map{
		"payments": payments,
	})
}

// DeletePayment removes a payment and reverts the loan
// @Summary Delete payment
// @Description Delete a payment and revert its effect on the loan
// @Tags Loans
// @Accept json
// @Produce json
// @Param id path string true "Payment ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /payments/{id} [delete]
func (h *LoanHandler) DeletePayment(c *fiber.Ctx) error {
	loan, err := h.loanService.DeletePayment(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrPaymentNotFound) {
			return response.NotFound(c, "Payment not found")
		}
		return response.InternalServerError(c, "Failed to delete payment")
	}

	return response.Success(c, "Payment deleted successfully", fiber.Map{
		"loan": loan,
	})
}
