package dto

import (
	"time"

	"github.com/Navenbabu/Corporate-Expense-Tracker/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateExpenseRequest holds the multipart form fields for expense creation.
// Amount arrives as a form string and is parsed into a decimal by the service
// so malformed values surface as validation errors, not silent zeros.
type CreateExpenseRequest struct {
	Title        string `form:"title" binding:"required"`
	Description  string `form:"description"`
	Amount       string `form:"amount" binding:"required"`
	CurrencyCode string `form:"currencyCode" binding:"required,len=3"`
	Category     string `form:"category" binding:"required"`
}

// UpdateExpenseRequest defines the content fields an owner may change while
// the expense is still a draft.
type UpdateExpenseRequest struct {
	Title        *string `json:"title"`
	Description  *string `json:"description"`
	Amount       *string `json:"amount"`
	CurrencyCode *string `json:"currencyCode" binding:"omitempty,len=3"`
	Category     *string `json:"category"`
}

// ReviewExpenseRequest is the payload for the approve/reject decision.
type ReviewExpenseRequest struct {
	Action  string  `json:"action" binding:"required,oneof=approve reject"`
	Comment *string `json:"comment"`
}

// ListExpensesParams defines query parameters for listing expenses.
// EndDate is inclusive at day granularity; the service widens it to the next
// midnight before querying.
type ListExpensesParams struct {
	Status    *string    `form:"status" binding:"omitempty,expensestatus"`
	Category  *string    `form:"category"`
	StartDate *time.Time `form:"startDate" time_format:"2006-01-02"`
	EndDate   *time.Time `form:"endDate" time_format:"2006-01-02"`
	Limit     int        `form:"limit,default=20" binding:"omitempty,min=1,max=100"`
	Offset    int        `form:"offset,default=0" binding:"omitempty,min=0"`
}

// ExpenseResponse is the outward representation of an expense.
type ExpenseResponse struct {
	ExpenseID    string          `json:"expenseID"`
	UserID       string          `json:"userID"`
	Title        string          `json:"title"`
	Description  string          `json:"description,omitempty"`
	Amount       decimal.Decimal `json:"amount"`
	CurrencyCode string          `json:"currencyCode"`
	Category     string          `json:"category"`
	Status       string          `json:"status"`
	ReceiptPath  *string         `json:"receiptPath,omitempty"`
	Department   string          `json:"department"`
	SubmittedAt  *time.Time      `json:"submittedAt,omitempty"`
	ReviewedAt   *time.Time      `json:"reviewedAt,omitempty"`
	ReviewedBy   *string         `json:"reviewedBy,omitempty"`
	CreatedAt    time.Time       `json:"createdAt"`
}

// CommentResponse is the outward representation of a review comment.
type CommentResponse struct {
	CommentID string    `json:"commentID"`
	AuthorID  string    `json:"authorID"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"createdAt"`
}

// ExpenseDetailResponse bundles an expense with its review comments.
type ExpenseDetailResponse struct {
	ExpenseResponse
	Comments []CommentResponse `json:"comments"`
}

// ListExpensesResponse wraps a page of expenses.
type ListExpensesResponse struct {
	Expenses []ExpenseResponse `json:"expenses"`
	Limit    int               `json:"limit"`
	Offset   int               `json:"offset"`
}

// ToExpenseResponse converts a domain.Expense to its response DTO.
func ToExpenseResponse(e *domain.Expense) ExpenseResponse {
	return ExpenseResponse{
		ExpenseID:    e.ExpenseID,
		UserID:       e.UserID,
		Title:        e.Title,
		Description:  e.Description,
		Amount:       e.Amount,
		CurrencyCode: e.CurrencyCode,
		Category:     e.Category,
		Status:       string(e.Status),
		ReceiptPath:  e.ReceiptPath,
		Department:   e.Department,
		SubmittedAt:  e.SubmittedAt,
		ReviewedAt:   e.ReviewedAt,
		ReviewedBy:   e.ReviewedBy,
		CreatedAt:    e.CreatedAt,
	}
}

// ToExpenseDetailResponse converts an expense and its comments.
func ToExpenseDetailResponse(e *domain.Expense, comments []domain.ReviewComment) ExpenseDetailResponse {
	commentResponses := make([]CommentResponse, len(comments))
	for i, c := range comments {
		commentResponses[i] = CommentResponse{
			CommentID: c.CommentID,
			AuthorID:  c.AuthorID,
			Body:      c.Body,
			CreatedAt: c.CreatedAt,
		}
	}
	return ExpenseDetailResponse{
		ExpenseResponse: ToExpenseResponse(e),
		Comments:        commentResponses,
	}
}

// ToListExpensesResponse converts a page of domain expenses.
func ToListExpensesResponse(expenses []domain.Expense, limit, offset int) ListExpensesResponse {
	responses := make([]ExpenseResponse, len(expenses))
	for i := range expenses {
		responses[i] = ToExpenseResponse(&expenses[i])
	}
	return ListExpensesResponse{Expenses: responses, Limit: limit, Offset: offset}
}
