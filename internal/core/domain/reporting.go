package domain

import "github.com/shopspring/decimal"

// StatusTotal is the aggregate for a single expense status.
type StatusTotal struct {
	Status ExpenseStatus   `json:"status"`
	Count  int64           `json:"count"`
	Amount decimal.Decimal `json:"amount"`
}

// CategoryTotal is the aggregate for a single category.
type CategoryTotal struct {
	Category string          `json:"category"`
	Count    int64           `json:"count"`
	Amount   decimal.Decimal `json:"amount"`
}

// ExpenseSummary is the scoped roll-up used by the dashboard.
type ExpenseSummary struct {
	TotalCount  int64           `json:"totalCount"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	ByStatus    []StatusTotal   `json:"byStatus"`
	ByCategory  []CategoryTotal `json:"byCategory"`
}

// MonthlyTotal is the aggregate for one calendar month.
// Months are bucketed by expense creation time in UTC.
type MonthlyTotal struct {
	Year           int             `json:"year"`
	Month          int             `json:"month"` // 1-12
	Count          int64           `json:"count"`
	TotalAmount    decimal.Decimal `json:"totalAmount"`
	ApprovedAmount decimal.Decimal `json:"approvedAmount"`
	PendingAmount  decimal.Decimal `json:"pendingAmount"`
}
