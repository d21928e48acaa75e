package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/Navenbabu/Corporate-Expense-Tracker/internal/core/ports/services"
	"github.com/Navenbabu/Corporate-Expense-Tracker/internal/dto"
	"github.com/Navenbabu/Corporate-Expense-Tracker/internal/middleware"
	"github.com/gin-gonic/gin"
)

// expenseHandler handles HTTP requests related to expenses.
type expenseHandler struct {
	expenseService portssvc.ExpenseSvcFacade
}

// newExpenseHandler creates a new expenseHandler.
func newExpenseHandler(es portssvc.ExpenseSvcFacade) *expenseHandler {
	return &expenseHandler{expenseService: es}
}

// RegisterExpenseRoutes registers routes related to expenses.
func RegisterExpenseRoutes(rg *gin.RouterGroup, expenseService portssvc.ExpenseSvcFacade) {
	h := newExpenseHandler(expenseService)

	expenses := rg.Group("/expenses")
	{
		expenses.POST("", h.createExpense)
		expenses.GET("", h.listExpenses)
		expenses.GET("/:id", h.getExpense)
		expenses.PUT("/:id", h.updateExpense)
		expenses.DELETE("/:id", h.deleteExpense)
		expenses.PUT("/:id/receipt", h.replaceReceipt)
		expenses.DELETE("/:id/receipt", h.removeReceipt)
		expenses.PATCH("/:id/submit", h.submitExpense)
		expenses.PATCH("/:id/review", h.reviewExpense)
		expenses.PATCH("/:id/pay", h.markExpensePaid)
	}
}

// createExpense godoc
// @Summary Create a new expense
// @Description Creates a draft expense owned by the requester. Accepts multipart form data with an optional receipt file.
// @Tags expenses
// @Accept mpfd
// @Produce json
// @Param title formData string true "Expense title"
// @Param description formData string false "Expense description"
// @Param amount formData string true "Amount (decimal string)"
// @Param currencyCode formData string true "ISO currency code (3 letters)"
// @Param category formData string true "Category name"
// @Param receipt formData file false "Receipt file (jpg, jpeg, png, pdf)"
// @Success 201 {object} dto.ExpenseResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /expenses [post]
func (h *expenseHandler) createExpense(c *gin.Context) {
	requester, ok := middleware.GetCurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.CreateExpenseRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	// Receipt is optional; an absent file is not an error
	receipt, err := c.FormFile("receipt")
	if err != nil && err != http.ErrMissingFile {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid receipt upload: " + err.Error()})
		return
	}

	expense, err := h.expenseService.CreateExpense(c.Request.Context(), requester, req, receipt)
	if err != nil {
		middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Failed to create expense", slog.String("error", err.Error()))
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToExpenseResponse(expense))
}

// listExpenses godoc
// @Summary List expenses
// @Description Lists expenses visible to the requester, newest first. Admins see everything, managers their department, employees their own.
// @Tags expenses
// @Produce json
// @Param status query string false "Filter by status" Enums(draft, pending, approved, rejected, paid)
// @Param category query string false "Filter by category"
// @Param startDate query string false "Creation date lower bound (YYYY-MM-DD)"
// @Param endDate query string false "Creation date upper bound, inclusive (YYYY-MM-DD)"
// @Param limit query int false "Page size" default(20)
// @Param offset query int false "Page offset" default(0)
// @Success 200 {object} dto.ListExpensesResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /expenses [get]
func (h *expenseHandler) listExpenses(c *gin.Context) {
	requester, ok := middleware.GetCurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var params dto.ListExpensesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	expenses, err := h.expenseService.ListExpenses(c.Request.Context(), requester, params)
	if err != nil {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Failed to list expenses", slog.String("error", err.Error()))
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToListExpensesResponse(expenses, params.Limit, params.Offset))
}

// getExpense godoc
// @Summary Get an expense by ID
// @Description Retrieves an expense with its review comments. Expenses outside the requester's scope return 404.
// @Tags expenses
// @Produce json
// @Param id path string true "Expense ID"
// @Success 200 {object} dto.ExpenseDetailResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /expenses/{id} [get]
func (h *expenseHandler) getExpense(c *gin.Context) {
	requester, ok := middleware.GetCurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	expense, comments, err := h.expenseService.GetExpense(c.Request.Context(), requester, c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToExpenseDetailResponse(expense, comments))
}

// updateExpense godoc
// @Summary Update a draft expense
// @Description Edits content fields. Owner only; the expense must still be a draft.
// @Tags expenses
// @Accept json
// @Produce json
// @Param id path string true "Expense ID"
// @Param expense body dto.UpdateExpenseRequest true "Fields to update"
// @Success 200 {object} dto.ExpenseResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Expense is no longer editable"
// @Security BearerAuth
// @Router /expenses/{id} [put]
func (h *expenseHandler) updateExpense(c *gin.Context) {
	requester, ok := middleware.GetCurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.UpdateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	expense, err := h.expenseService.UpdateExpense(c.Request.Context(), requester, c.Param("id"), req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToExpenseResponse(expense))
}

// deleteExpense godoc
// @Summary Delete an expense
// @Description Owners may delete their own drafts; admins may delete any expense. The receipt file is removed as well.
// @Tags expenses
// @Param id path string true "Expense ID"
// @Success 204
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Expense is no longer a draft"
// @Security BearerAuth
// @Router /expenses/{id} [delete]
func (h *expenseHandler) deleteExpense(c *gin.Context) {
	requester, ok := middleware.GetCurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.expenseService.DeleteExpense(c.Request.Context(), requester, c.Param("id")); err != nil {
		respondWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// replaceReceipt godoc
// @Summary Replace the receipt on a draft expense
// @Description Uploads a new receipt file for a draft expense, replacing any existing one. Owner only.
// @Tags expenses
// @Accept mpfd
// @Produce json
// @Param id path string true "Expense ID"
// @Param receipt formData file true "Receipt file (jpg, jpeg, png, pdf)"
// @Success 200 {object} dto.ExpenseResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Expense is no longer a draft"
// @Security BearerAuth
// @Router /expenses/{id}/receipt [put]
func (h *expenseHandler) replaceReceipt(c *gin.Context) {
	requester, ok := middleware.GetCurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	receipt, err := c.FormFile("receipt")
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "A receipt file is required: " + err.Error()})
		return
	}

	expense, err := h.expenseService.ReplaceExpenseReceipt(c.Request.Context(), requester, c.Param("id"), receipt)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToExpenseResponse(expense))
}

// removeReceipt godoc
// @Summary Remove the receipt from a draft expense
// @Description Detaches the receipt from a draft expense and deletes the stored file. Owner only.
// @Tags expenses
// @Produce json
// @Param id path string true "Expense ID"
// @Success 200 {object} dto.ExpenseResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Expense is no longer a draft"
// @Security BearerAuth
// @Router /expenses/{id}/receipt [delete]
func (h *expenseHandler) removeReceipt(c *gin.Context) {
	requester, ok := middleware.GetCurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	expense, err := h.expenseService.RemoveExpenseReceipt(c.Request.Context(), requester, c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToExpenseResponse(expense))
}

// submitExpense godoc
// @Summary Submit a draft expense for review
// @Description Moves a draft into the pending state. Owner only.
// @Tags expenses
// @Produce json
// @Param id path string true "Expense ID"
// @Success 200 {object} dto.ExpenseResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Expense is not a draft"
// @Security BearerAuth
// @Router /expenses/{id}/submit [patch]
func (h *expenseHandler) submitExpense(c *gin.Context) {
	requester, ok := middleware.GetCurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	expense, err := h.expenseService.SubmitExpense(c.Request.Context(), requester, c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToExpenseResponse(expense))
}

// reviewExpense godoc
// @Summary Review a pending expense
// @Description Approves or rejects a pending expense. Managers review their department; admins review anything. Concurrent decisions lose with 409.
// @Tags expenses
// @Accept json
// @Produce json
// @Param id path string true "Expense ID"
// @Param review body dto.ReviewExpenseRequest true "Decision"
// @Success 200 {object} dto.ExpenseResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Expense is not pending or was decided concurrently"
// @Security BearerAuth
// @Router /expenses/{id}/review [patch]
func (h *expenseHandler) reviewExpense(c *gin.Context) {
	requester, ok := middleware.GetCurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.ReviewExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	expense, err := h.expenseService.ReviewExpense(c.Request.Context(), requester, c.Param("id"), req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToExpenseResponse(expense))
}

// markExpensePaid godoc
// @Summary Mark an approved expense as paid
// @Description Moves an approved expense into the terminal paid state. Admin only.
// @Tags expenses
// @Produce json
// @Param id path string true "Expense ID"
// @Success 200 {object} dto.ExpenseResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Expense is not approved"
// @Security BearerAuth
// @Router /expenses/{id}/pay [patch]
func (h *expenseHandler) markExpensePaid(c *gin.Context) {
	requester, ok := middleware.GetCurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	expense, err := h.expenseService.MarkExpensePaid(c.Request.Context(), requester, c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToExpenseResponse(expense))
}
