package handlers

import (
	"log/slog"
	"net/http"
	"time"

	portssvc "github.com/Navenbabu/Corporate-Expense-Tracker/internal/core/ports/services"
	"github.com/Navenbabu/Corporate-Expense-Tracker/internal/dto"
	"github.com/Navenbabu/Corporate-Expense-Tracker/internal/middleware"
	"github.com/gin-gonic/gin"
)

// reportingHandler handles HTTP requests for the aggregation endpoints.
type reportingHandler struct {
	reportingService portssvc.ReportingSvcFacade
}

// newReportingHandler creates a new reportingHandler.
func newReportingHandler(rs portssvc.ReportingSvcFacade) *reportingHandler {
	return &reportingHandler{reportingService: rs}
}

// registerReportingRoutes registers the stats routes under /expenses/stats.
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingSvcFacade) {
	h := newReportingHandler(reportingService)

	stats := rg.Group("/expenses/stats")
	{
		stats.GET("/summary", h.getSummary)
		stats.GET("/monthly", h.getMonthly)
	}
}

// getSummary godoc
// @Summary Expense summary
// @Description Returns total count and amount plus per-status and per-category breakdowns over the requester's visible expenses.
// @Tags reporting
// @Produce json
// @Param category query string false "Filter by category"
// @Param startDate query string false "Creation date lower bound (YYYY-MM-DD)"
// @Param endDate query string false "Creation date upper bound, inclusive (YYYY-MM-DD)"
// @Success 200 {object} dto.SummaryResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /expenses/stats/summary [get]
func (h *reportingHandler) getSummary(c *gin.Context) {
	requester, ok := middleware.GetCurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var params dto.SummaryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	summary, err := h.reportingService.GetSummary(c.Request.Context(), requester, params)
	if err != nil {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Failed to build expense summary", slog.String("error", err.Error()))
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToSummaryResponse(summary))
}

// getMonthly godoc
// @Summary Monthly expense totals
// @Description Returns per-month totals for a calendar year, bucketed by creation time in UTC. Year defaults to the current UTC year.
// @Tags reporting
// @Produce json
// @Param year query int false "Calendar year"
// @Success 200 {object} dto.MonthlyResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /expenses/stats/monthly [get]
func (h *reportingHandler) getMonthly(c *gin.Context) {
	requester, ok := middleware.GetCurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var params dto.MonthlyParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	year := params.Year
	if year == 0 {
		year = time.Now().UTC().Year()
	}

	months, err := h.reportingService.GetMonthlyTotals(c.Request.Context(), requester, year)
	if err != nil {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Failed to build monthly totals", slog.String("error", err.Error()))
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToMonthlyResponse(year, months))
}
