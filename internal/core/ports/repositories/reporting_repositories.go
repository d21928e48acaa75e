package repositories

import (
	"context"

	"github.com/Navenbabu/Corporate-Expense-Tracker/internal/core/domain"
)

// ReportingRepository exposes the grouped read-side queries behind the
// dashboard. All queries apply the access scope; the service layer only
// assembles and rounds.
type ReportingRepository interface {
	// GetStatusTotals returns per-status counts and amounts.
	GetStatusTotals(ctx context.Context, scope domain.AccessScope, filter ExpenseFilter) ([]domain.StatusTotal, error)

	// GetCategoryTotals returns per-category counts and amounts.
	GetCategoryTotals(ctx context.Context, scope domain.AccessScope, filter ExpenseFilter) ([]domain.CategoryTotal, error)

	// GetMonthlyTotals returns per-month totals for a calendar year, bucketed
	// by creation time in UTC.
	GetMonthlyTotals(ctx context.Context, scope domain.AccessScope, year int) ([]domain.MonthlyTotal, error)
}
