package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/Navenbabu/Corporate-Expense-Tracker/internal/core/domain"
	portsrepo "github.com/Navenbabu/Corporate-Expense-Tracker/internal/core/ports/repositories"
	"github.com/Navenbabu/Corporate-Expense-Tracker/internal/core/services"
	"github.com/Navenbabu/Corporate-Expense-Tracker/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// --- Mock ReportingRepository ---
type MockReportingRepository struct {
	mock.Mock
}

func (m *MockReportingRepository) GetStatusTotals(ctx context.Context, scope domain.AccessScope, filter portsrepo.ExpenseFilter) ([]domain.StatusTotal, error) {
	args := m.Called(ctx, scope, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StatusTotal), args.Error(1)
}

func (m *MockReportingRepository) GetCategoryTotals(ctx context.Context, scope domain.AccessScope, filter portsrepo.ExpenseFilter) ([]domain.CategoryTotal, error) {
	args := m.Called(ctx, scope, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CategoryTotal), args.Error(1)
}

func (m *MockReportingRepository) GetMonthlyTotals(ctx context.Context, scope domain.AccessScope, year int) ([]domain.MonthlyTotal, error) {
	args := m.Called(ctx, scope, year)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MonthlyTotal), args.Error(1)
}

var _ portsrepo.ReportingRepository = (*MockReportingRepository)(nil)

func TestGetSummary_TotalIsSumOfStatusSubtotals(t *testing.T) {
	repo := new(MockReportingRepository)
	svc := services.NewReportingService(repo)
	requester := testManager()

	statusTotals := []domain.StatusTotal{
		{Status: domain.StatusPending, Count: 3, Amount: decimal.NewFromFloat(120.505)},
		{Status: domain.StatusApproved, Count: 2, Amount: decimal.NewFromFloat(75.25)},
		{Status: domain.StatusPaid, Count: 1, Amount: decimal.NewFromFloat(10.00)},
	}
	categoryTotals := []domain.CategoryTotal{
		{Category: "travel", Count: 4, Amount: decimal.NewFromFloat(180.755)},
		{Category: "meals", Count: 2, Amount: decimal.NewFromFloat(25.00)},
	}
	repo.On("GetStatusTotals", mock.Anything, domain.ResolveScope(requester), mock.Anything).Return(statusTotals, nil).Once()
	repo.On("GetCategoryTotals", mock.Anything, domain.ResolveScope(requester), mock.Anything).Return(categoryTotals, nil).Once()

	summary, err := svc.GetSummary(context.Background(), requester, dto.SummaryParams{})

	assert.NoError(t, err)
	assert.Equal(t, int64(6), summary.TotalCount)
	// 120.51 + 75.25 + 10.00, each subtotal rounded to cents first.
	assert.True(t, summary.TotalAmount.Equal(decimal.NewFromFloat(205.76)),
		"got %s", summary.TotalAmount)
	assert.True(t, summary.ByStatus[0].Amount.Equal(decimal.NewFromFloat(120.51)))
	assert.True(t, summary.ByCategory[0].Amount.Equal(decimal.NewFromFloat(180.76)))
	repo.AssertExpectations(t)
}

func TestGetSummary_WidensInclusiveEndDate(t *testing.T) {
	repo := new(MockReportingRepository)
	svc := services.NewReportingService(repo)
	requester := testAdmin()

	endDate := time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC)
	matchFilter := mock.MatchedBy(func(f portsrepo.ExpenseFilter) bool {
		return f.EndDate != nil && f.EndDate.Equal(endDate.AddDate(0, 0, 1))
	})
	repo.On("GetStatusTotals", mock.Anything, mock.Anything, matchFilter).Return([]domain.StatusTotal{}, nil).Once()
	repo.On("GetCategoryTotals", mock.Anything, mock.Anything, matchFilter).Return([]domain.CategoryTotal{}, nil).Once()

	summary, err := svc.GetSummary(context.Background(), requester, dto.SummaryParams{EndDate: &endDate})

	assert.NoError(t, err)
	assert.Equal(t, int64(0), summary.TotalCount)
	assert.True(t, summary.TotalAmount.IsZero())
	repo.AssertExpectations(t)
}

func TestGetSummary_IsDeterministic(t *testing.T) {
	repo := new(MockReportingRepository)
	svc := services.NewReportingService(repo)
	requester := testEmployee()

	statusTotals := []domain.StatusTotal{
		{Status: domain.StatusDraft, Count: 1, Amount: decimal.NewFromFloat(42.50)},
	}
	repo.On("GetStatusTotals", mock.Anything, mock.Anything, mock.Anything).Return(statusTotals, nil).Twice()
	repo.On("GetCategoryTotals", mock.Anything, mock.Anything, mock.Anything).Return([]domain.CategoryTotal{}, nil).Twice()

	first, err := svc.GetSummary(context.Background(), requester, dto.SummaryParams{})
	assert.NoError(t, err)
	second, err := svc.GetSummary(context.Background(), requester, dto.SummaryParams{})
	assert.NoError(t, err)

	assert.Equal(t, first.TotalCount, second.TotalCount)
	assert.True(t, first.TotalAmount.Equal(second.TotalAmount))
	repo.AssertExpectations(t)
}

func TestGetMonthlyTotals_ZeroYearDefaultsToCurrent(t *testing.T) {
	repo := new(MockReportingRepository)
	svc := services.NewReportingService(repo)
	requester := testAdmin()

	currentYear := time.Now().UTC().Year()
	repo.On("GetMonthlyTotals", mock.Anything, mock.Anything, currentYear).Return([]domain.MonthlyTotal{}, nil).Once()

	months, err := svc.GetMonthlyTotals(context.Background(), requester, 0)

	assert.NoError(t, err)
	assert.Empty(t, months)
	repo.AssertExpectations(t)
}

func TestGetMonthlyTotals_RoundsAmounts(t *testing.T) {
	repo := new(MockReportingRepository)
	svc := services.NewReportingService(repo)
	requester := testManager()

	raw := []domain.MonthlyTotal{
		{
			Year:           2026,
			Month:          3,
			Count:          5,
			TotalAmount:    decimal.NewFromFloat(100.005),
			ApprovedAmount: decimal.NewFromFloat(60.004),
			PendingAmount:  decimal.NewFromFloat(40.001),
		},
	}
	repo.On("GetMonthlyTotals", mock.Anything, domain.ResolveScope(requester), 2026).Return(raw, nil).Once()

	months, err := svc.GetMonthlyTotals(context.Background(), requester, 2026)

	assert.NoError(t, err)
	assert.Len(t, months, 1)
	assert.True(t, months[0].TotalAmount.Equal(decimal.NewFromFloat(100.01)), "got %s", months[0].TotalAmount)
	assert.True(t, months[0].ApprovedAmount.Equal(decimal.NewFromFloat(60.00)))
	assert.True(t, months[0].PendingAmount.Equal(decimal.NewFromFloat(40.00)))
}
