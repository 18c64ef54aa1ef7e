package handlers

import (
	"errors"
	"strconv"

	"sacco-ledger/internal/core/domain"
	"sacco-ledger/internal/core/services"
	"sacco-ledger/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// RiskHandler handles risk engine endpoints
type RiskHandler struct {
	riskService *services.RiskService
}

// NewRiskHandler creates a new risk handler
func NewRiskHandler(riskService *services.RiskService) *RiskHandler {
	return &RiskHandler{
		riskService: riskService,
	}
}

// Assessment returns a member's risk assessment
// @Summary Member risk assessment
// @Description Get a member's 0-10 risk score with sub-scores and factors
// @Tags Risk
// @Accept json
// @Produce json
// @Param id path string true "Member ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /risk/members/{id}/assessment [get]
func (h *RiskHandler) Assessment(c *fiber.Ctx) error {
	assessment, err := h.riskService.AssessMember(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrMemberNotFound) {
			return response.NotFound(c, "Member not found")
		}
		return response.InternalServerError(c, "Failed to assess member")
	}

	return response.Success(c, "Assessment retrieved successfully", assessment)
}

// Recommendation returns a loan recommendation for a member
// @Summary Loan recommendation
// @Description Get recommended loan amount, term, rate and alternatives for a member
// @Tags Risk
// @Accept json
// @Produce json
// @Param id path string true "Member ID"
// @Param amount query number false "Requested amount"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /risk/members/{id}/recommendation [get]
func (h *RiskHandler) Recommendation(c *fiber.Ctx) error {
	requested, _ := strconv.ParseFloat(c.Query("amount", "0"), 64)

	recommendation, err := h.riskService.RecommendLoan(c.Context(), c.Params("id"), requested)
	if err != nil {
		if errors.Is(err, domain.ErrMemberNotFound) {
			return response.NotFound(c, "Member not found")
		}
		return response.InternalServerError(c, "Failed to build recommendation")
	}

	return response.Success(c, "Recommendation retrieved successfully", recommendation)
}

// DefaultProbability returns a loan's default prediction
// @Summary Loan default probability
// @Description Predict how likely a loan is to default
// @Tags Risk
// @Accept json
// @Produce json
// @Param id path string true "Loan ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /risk/loans/{id}/default-probability [get]
func (h *RiskHandler) DefaultProbability(c *fiber.Ctx) error {
	prediction, err := h.riskService.PredictDefault(c.Context(), c.Params("id"))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrLoanNotFound):
			return response.NotFound(c, "Loan not found")
		case errors.Is(err, domain.ErrMemberNotFound):
			return response.NotFound(c, "Member not found")
		default:
			return response.InternalServerError(c, "Failed to predict default probability")
		}
	}

	return response.Success(c, "Prediction retrieved successfully", prediction)
}

// Alerts scans the loan book for default-risk alerts
// @Summary Default-risk alerts
// @Description Scan all loans and return those above the default-risk threshold
// @Tags Risk
// @Accept json
// @Produce json
// @Success 200 {object} response.Response
// @Router /risk/alerts [get]
func (h *RiskHandler) Alerts(c *fiber.Ctx) error {
	alerts, err := h.riskService.GenerateAlerts(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to generate alerts")
	}

	return response.Success(c, "Alerts generated successfully", fiber.Map{
		"alerts": alerts,
		"count":  len(alerts),
	})
}
