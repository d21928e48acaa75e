package dto

import (
	"time"

	"github.com/Navenbabu/Corporate-Expense-Tracker/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SummaryParams defines query parameters for the summary endpoint.
type SummaryParams struct {
	Category  *string    `form:"category"`
	StartDate *time.Time `form:"startDate" time_format:"2006-01-02"`
	EndDate   *time.Time `form:"endDate" time_format:"2006-01-02"`
}

// MonthlyParams defines query parameters for the monthly endpoint.
// Year defaults to the current UTC year when omitted.
type MonthlyParams struct {
	Year int `form:"year" binding:"omitempty,min=2000,max=2200"`
}

// StatusTotalResponse mirrors domain.StatusTotal for the API.
type StatusTotalResponse struct {
	Status string          `json:"status"`
	Count  int64           `json:"count"`
	Amount decimal.Decimal `json:"amount"`
}

// CategoryTotalResponse mirrors domain.CategoryTotal for the API.
type CategoryTotalResponse struct {
	Category string          `json:"category"`
	Count    int64           `json:"count"`
	Amount   decimal.Decimal `json:"amount"`
}

// SummaryResponse is the dashboard roll-up payload.
type SummaryResponse struct {
	TotalCount  int64                   `json:"totalCount"`
	TotalAmount decimal.Decimal         `json:"totalAmount"`
	ByStatus    []StatusTotalResponse   `json:"byStatus"`
	ByCategory  []CategoryTotalResponse `json:"byCategory"`
}

// MonthlyTotalResponse mirrors domain.MonthlyTotal for the API.
type MonthlyTotalResponse struct {
	Year           int             `json:"year"`
	Month          int             `json:"month"`
	Count          int64           `json:"count"`
	TotalAmount    decimal.Decimal `json:"totalAmount"`
	ApprovedAmount decimal.Decimal `json:"approvedAmount"`
	PendingAmount  decimal.Decimal `json:"pendingAmount"`
}

// MonthlyResponse wraps the monthly series.
type MonthlyResponse struct {
	Year   int                    `json:"year"`
	Months []MonthlyTotalResponse `json:"months"`
}

// ToSummaryResponse converts a domain summary.
func ToSummaryResponse(s *domain.ExpenseSummary) SummaryResponse {
	byStatus := make([]StatusTotalResponse, len(s.ByStatus))
	for i, st := range s.ByStatus {
		byStatus[i] = StatusTotalResponse{Status: string(st.Status), Count: st.Count, Amount: st.Amount}
	}
	byCategory := make([]CategoryTotalResponse, len(s.ByCategory))
	for i, ct := range s.ByCategory {
		byCategory[i] = CategoryTotalResponse{Category: ct.Category, Count: ct.Count, Amount: ct.Amount}
	}
	return SummaryResponse{
		TotalCount:  s.TotalCount,
		TotalAmount: s.TotalAmount,
		ByStatus:    byStatus,
		ByCategory:  byCategory,
	}
}

// ToMonthlyResponse converts a domain monthly series.
func ToMonthlyResponse(year int, months []domain.MonthlyTotal) MonthlyResponse {
	responses := make([]MonthlyTotalResponse, len(months))
	for i, m := range months {
		responses[i] = MonthlyTotalResponse{
			Year:           m.Year,
			Month:          m.Month,
			Count:          m.Count,
			TotalAmount:    m.TotalAmount,
			ApprovedAmount: m.ApprovedAmount,
			PendingAmount:  m.PendingAmount,
		}
	}
	return MonthlyResponse{Year: year, Months: responses}
}
