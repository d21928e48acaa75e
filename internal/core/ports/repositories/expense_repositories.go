package repositories

import (
	"context"
	"time"

	"github.com/Navenbabu/Corporate-Expense-Tracker/internal/core/domain"
)

// ExpenseFilter narrows expense queries. Nil fields are ignored.
// EndDate is exclusive so callers can pass midnight boundaries directly.
type ExpenseFilter struct {
	Status    *domain.ExpenseStatus
	Category  *string
	StartDate *time.Time
	EndDate   *time.Time
}

// ExpenseRepository defines persistence operations for expenses and their
// review comments.
type ExpenseRepository interface {
	// SaveExpense inserts a new expense row.
	SaveExpense(ctx context.Context, expense domain.Expense) error

	// FindExpenseByID retrieves a single expense regardless of scope; callers
	// apply scope checks themselves.
	FindExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error)

	// FindExpenses retrieves expenses visible under the scope, newest first.
	FindExpenses(ctx context.Context, scope domain.AccessScope, filter ExpenseFilter, limit, offset int) ([]domain.Expense, error)

	// UpdateExpense persists the expense if the stored row still carries
	// expectedVersion, bumping the version by one. Returns
	// apperrors.ErrConflict when the version check fails and
	// apperrors.ErrNotFound when the row does not exist.
	UpdateExpense(ctx context.Context, expense domain.Expense, expectedVersion int64) error

	// DeleteExpense removes the expense row and its comments.
	DeleteExpense(ctx context.Context, expenseID string) error

	// SaveComment appends a review comment.
	SaveComment(ctx context.Context, comment domain.ReviewComment) error

	// FindCommentsByExpenseID lists comments oldest first.
	FindCommentsByExpenseID(ctx context.Context, expenseID string) ([]domain.ReviewComment, error)
}
