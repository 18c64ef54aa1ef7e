package handlers

import (
	"strconv"

	"sacco-ledger/internal/core/services"
	"sacco-ledger/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AnalyticsHandler handles analytics endpoints
type AnalyticsHandler struct {
	analyticsService *services.AnalyticsService
}

// NewAnalyticsHandler creates a new analytics handler
func NewAnalyticsHandler(analyticsService *services.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{
		analyticsService: analyticsService,
	}
}

// Summary returns the financial summary
// @Summary Financial summary
// @Description Portfolio-wide totals: disbursed, repaid, savings, interest, revenue
// @Tags Analytics
// @Accept json
// @Produce json
// @Success 200 {object} response.Response
// @Router /analytics/summary [get]
func (h *AnalyticsHandler) Summary(c *fiber.Ctx) error {
	summary, err := h.analyticsService.Summary(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to compute summary")
	}

	return response.Success(c, "Summary retrieved successfully", summary)
}

// Overdue returns the overdue loans report
// @Summary Overdue loans
// @Description Active loans past their due date with days overdue and total due
// @Tags Analytics
// @Accept json
// @Produce json
// @Success 200 {object} response.Response
// @Router /analytics/overdue [get]
func (h *AnalyticsHandler) Overdue(c *fiber.Ctx) error {
	overdue, err := h.analyticsService.OverdueLoans(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to compute overdue loans")
	}

	return response.Success(c, "Overdue loans retrieved successfully", fiber.Map{
		"overdue": overdue,
		"count":   len(overdue),
	})
}

// Performance returns loan book performance metrics
// @Summary Loan performance
// @Description Loan counts by status, default rate, average term and amount
// @Tags Analytics
// @Accept json
// @Produce json
// @Success 200 {object} response.Response
// @Router /analytics/performance [get]
func (h *AnalyticsHandler) Performance(c *fiber.Ctx) error {
	metrics, err := h.analyticsService.Performance(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to compute performance")
	}

	return response.Success(c, "Performance retrieved successfully", metrics)
}

// Collection returns the collection efficiency report
// @Summary Collection efficiency
// @Description Collected payments against the lending target per active month
// @Tags Analytics
// @Accept json
// @Produce json
// @Success 200 {object} response.Response
// @Router /analytics/collection [get]
func (h *AnalyticsHandler) Collection(c *fiber.Ctx) error {
	report, err := h.analyticsService.Collection(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to compute collection efficiency")
	}

	return response.Success(c, "Collection efficiency retrieved successfully", report)
}

// Delinquency returns the delinquency analysis
// @Summary Delinquency analysis
// @Description Overdue loans bucketed by days overdue with total at risk
// @Tags Analytics
// @Accept json
// @Produce json
// @Success 200 {object} response.Response
// @Router /analytics/delinquency [get]
func (h *AnalyticsHandler) Delinquency(c *fiber.Ctx) error {
	analysis, err := h.analyticsService.Delinquency(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to compute delinquency analysis")
	}

	return response.Success(c, "Delinquency analysis retrieved successfully", analysis)
}

// TopBorrowers returns members ranked by amount borrowed
// @Summary Top borrowers
// @Description Members ranked by total amount borrowed
// @Tags Analytics
// @Accept json
// @Produce json
// @Param limit query int false "Max entries" default(10)
// @Success 200 {object} response.Response
// @Router /analytics/top-borrowers [get]
func (h *AnalyticsHandler) TopBorrowers(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "10"))

	borrowers, err := h.analyticsService.TopBorrowers(c.Context(), limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to compute top borrowers")
	}

	return response.Success(c, "Top borrowers retrieved successfully", fiber.Map{
		"borrowers": borrowers,
	})
}

// TopSavers returns members ranked by amount saved
// @Summary Top savers
// @Description Members ranked by total amount saved
// @Tags Analytics
// @Accept json
// @Produce json
// @Param limit query int false "Max entries" default(10)
// @Success 200 {object} response.Response
// @Router /analytics/top-savers [get]
func (h *AnalyticsHandler) TopSavers(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "10"))

	savers, err := h.analyticsService.TopSavers(c.Context(), limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to compute top savers")
	}

	return response.Success(c, "Top savers retrieved successfully", fiber.Map{
		"savers": savers,
	})
}
