package services

import (
	"context"

	"github.com/Navenbabu/Corporate-Expense-Tracker/internal/core/domain"
	"github.com/Navenbabu/Corporate-Expense-Tracker/internal/dto"
)

// ReportingSvcFacade derives summary statistics over the requester's scoped
// expense set. Pure read-side: no caching, recomputation over an unchanged set
// yields identical output.
type ReportingSvcFacade interface {
	// GetSummary returns total count/amount plus per-status and per-category
	// breakdowns, amounts rounded to 2 decimal places.
	GetSummary(ctx context.Context, requester *domain.User, params dto.SummaryParams) (*domain.ExpenseSummary, error)

	// GetMonthlyTotals returns per-month totals for the given calendar year,
	// bucketed by creation time in UTC.
	GetMonthlyTotals(ctx context.Context, requester *domain.User, year int) ([]domain.MonthlyTotal, error)
}
