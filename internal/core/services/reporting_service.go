package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Navenbabu/Corporate-Expense-Tracker/internal/core/domain"
	portsrepo "github.com/Navenbabu/Corporate-Expense-Tracker/internal/core/ports/repositories"
	portssvc "github.com/Navenbabu/Corporate-Expense-Tracker/internal/core/ports/services"
	"github.com/Navenbabu/Corporate-Expense-Tracker/internal/dto"
	"github.com/shopspring/decimal"
)

// reportingService implements the ReportingSvcFacade interface
type reportingService struct {
	BaseService
	reportingRepo portsrepo.ReportingRepository
}

// NewReportingService creates a new reporting service
func NewReportingService(reportingRepo portsrepo.ReportingRepository) portssvc.ReportingSvcFacade {
	return &reportingService{reportingRepo: reportingRepo}
}

// GetSummary assembles the scoped per-status and per-category roll-up.
// Derivation only: the same underlying expense set always yields the same
// summary, and the grand total equals the sum of the status subtotals.
func (s *reportingService) GetSummary(ctx context.Context, requester *domain.User, params dto.SummaryParams) (*domain.ExpenseSummary, error) {
	filter := portsrepo.ExpenseFilter{
		Category:  params.Category,
		StartDate: params.StartDate,
	}
	if params.EndDate != nil {
		end := params.EndDate.AddDate(0, 0, 1)
		filter.EndDate = &end
	}

	scope := domain.ResolveScope(requester)

	statusTotals, err := s.reportingRepo.GetStatusTotals(ctx, scope, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to load status totals",
			slog.String("requester_id", requester.UserID))
		return nil, fmt.Errorf("failed to load status totals: %w", err)
	}

	categoryTotals, err := s.reportingRepo.GetCategoryTotals(ctx, scope, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to load category totals",
			slog.String("requester_id", requester.UserID))
		return nil, fmt.Errorf("failed to load category totals: %w", err)
	}

	summary := &domain.ExpenseSummary{
		TotalAmount: decimal.Zero,
		ByStatus:    make([]domain.StatusTotal, len(statusTotals)),
		ByCategory:  make([]domain.CategoryTotal, len(categoryTotals)),
	}
	for i, st := range statusTotals {
		st.Amount = st.Amount.Round(2)
		summary.ByStatus[i] = st
		summary.TotalCount += st.Count
		summary.TotalAmount = summary.TotalAmount.Add(st.Amount)
	}
	for i, ct := range categoryTotals {
		ct.Amount = ct.Amount.Round(2)
		summary.ByCategory[i] = ct
	}
	summary.TotalAmount = summary.TotalAmount.Round(2)

	return summary, nil
}

// GetMonthlyTotals returns per-month totals for a calendar year, bucketed by
// creation time in UTC. A zero year means the current UTC year.
func (s *reportingService) GetMonthlyTotals(ctx context.Context, requester *domain.User, year int) ([]domain.MonthlyTotal, error) {
	if year == 0 {
		year = time.Now().UTC().Year()
	}

	scope := domain.ResolveScope(requester)
	months, err := s.reportingRepo.GetMonthlyTotals(ctx, scope, year)
	if err != nil {
		s.LogError(ctx, err, "Failed to load monthly totals",
			slog.String("requester_id", requester.UserID),
			slog.Int("year", year))
		return nil, fmt.Errorf("failed to load monthly totals: %w", err)
	}

	for i := range months {
		months[i].TotalAmount = months[i].TotalAmount.Round(2)
		months[i].ApprovedAmount = months[i].ApprovedAmount.Round(2)
		months[i].PendingAmount = months[i].PendingAmount.Round(2)
	}
	if months == nil {
		return []domain.MonthlyTotal{}, nil
	}
	return months, nil
}
