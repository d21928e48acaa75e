package services

import (
	"context"
	"mime/multipart"

	"github.com/Navenbabu/Corporate-Expense-Tracker/internal/core/domain"
	"github.com/Navenbabu/Corporate-Expense-Tracker/internal/dto"
)

// ExpenseReaderSvc defines scope-checked read operations for expenses.
type ExpenseReaderSvc interface {
	// GetExpense retrieves an expense with its comments if the requester's
	// scope allows it.
	GetExpense(ctx context.Context, requester *domain.User, expenseID string) (*domain.Expense, []domain.ReviewComment, error)

	// ListExpenses retrieves a scope-filtered page of expenses.
	ListExpenses(ctx context.Context, requester *domain.User, params dto.ListExpensesParams) ([]domain.Expense, error)
}

// ExpenseWriterSvc defines content mutations on expenses.
type ExpenseWriterSvc interface {
	// CreateExpense creates a draft expense for the requester. The optional
	// receipt is persisted before the row is written; a failed write removes
	// the stored file again.
	CreateExpense(ctx context.Context, requester *domain.User, req dto.CreateExpenseRequest, receipt *multipart.FileHeader) (*domain.Expense, error)

	// UpdateExpense edits content fields; owner only, draft only.
	UpdateExpense(ctx context.Context, requester *domain.User, expenseID string, req dto.UpdateExpenseRequest) (*domain.Expense, error)

	// ReplaceExpenseReceipt stores a new receipt file on a draft and deletes
	// the previous file; owner only, draft only.
	ReplaceExpenseReceipt(ctx context.Context, requester *domain.User, expenseID string, receipt *multipart.FileHeader) (*domain.Expense, error)

	// RemoveExpenseReceipt detaches a draft's receipt and deletes the file;
	// owner only, draft only.
	RemoveExpenseReceipt(ctx context.Context, requester *domain.User, expenseID string) (*domain.Expense, error)

	// DeleteExpense removes an expense and its receipt file. Owners may delete
	// drafts; admins may delete anything.
	DeleteExpense(ctx context.Context, requester *domain.User, expenseID string) error
}

// ExpenseReviewSvc defines the guarded status transitions.
type ExpenseReviewSvc interface {
	// SubmitExpense moves draft -> pending; owner only.
	SubmitExpense(ctx context.Context, requester *domain.User, expenseID string) (*domain.Expense, error)

	// ReviewExpense moves pending -> approved/rejected; manager of the same
	// department or admin.
	ReviewExpense(ctx context.Context, requester *domain.User, expenseID string, req dto.ReviewExpenseRequest) (*domain.Expense, error)

	// MarkExpensePaid moves approved -> paid; admin only.
	MarkExpensePaid(ctx context.Context, requester *domain.User, expenseID string) (*domain.Expense, error)
}

// ExpenseSvcFacade combines all expense-related service interfaces.
type ExpenseSvcFacade interface {
	ExpenseReaderSvc
	ExpenseWriterSvc
	ExpenseReviewSvc
}
