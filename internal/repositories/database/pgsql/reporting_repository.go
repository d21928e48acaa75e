package pgsql

import (
	"context"
	"fmt"
	"strings"

	"github.com/Navenbabu/Corporate-Expense-Tracker/internal/core/domain"
	portsrepo "github.com/Navenbabu/Corporate-Expense-Tracker/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// reportingRepository implements the grouped read-side queries.
// Monthly bucketing uses date_trunc over created_at converted to UTC, matching
// the documented fixed-zone policy.
type reportingRepository struct {
	BaseRepository
}

func newReportingRepository(db *pgxpool.Pool) portsrepo.ReportingRepository {
	return &reportingRepository{BaseRepository: BaseRepository{Pool: db}}
}

var _ portsrepo.ReportingRepository = (*reportingRepository)(nil)

func (r *reportingRepository) GetStatusTotals(ctx context.Context, scope domain.AccessScope, filter portsrepo.ExpenseFilter) ([]domain.StatusTotal, error) {
	conds := []string{"TRUE"}
	args := []any{}
	conds, args = appendScopeConditions(conds, args, scope)
	conds, args = appendFilterConditions(conds, args, filter)

	query := fmt.Sprintf(`
		SELECT status, COUNT(*), COALESCE(SUM(amount), 0)
		FROM expenses
		WHERE %s
		GROUP BY status
		ORDER BY status;
	`, strings.Join(conds, " AND "))

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying status totals: %w", err)
	}
	defer rows.Close()

	totals := []domain.StatusTotal{}
	for rows.Next() {
		var t domain.StatusTotal
		var status string
		if err := rows.Scan(&status, &t.Count, &t.Amount); err != nil {
			return nil, fmt.Errorf("error scanning status total row: %w", err)
		}
		t.Status = domain.ExpenseStatus(status)
		totals = append(totals, t)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating status total rows: %w", rows.Err())
	}

	return totals, nil
}

func (r *reportingRepository) GetCategoryTotals(ctx context.Context, scope domain.AccessScope, filter portsrepo.ExpenseFilter) ([]domain.CategoryTotal, error) {
	conds := []string{"TRUE"}
	args := []any{}
	conds, args = appendScopeConditions(conds, args, scope)
	conds, args = appendFilterConditions(conds, args, filter)

	query := fmt.Sprintf(`
		SELECT category, COUNT(*), COALESCE(SUM(amount), 0)
		FROM expenses
		WHERE %s
		GROUP BY category
		ORDER BY category;
	`, strings.Join(conds, " AND "))

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying category totals: %w", err)
	}
	defer rows.Close()

	totals := []domain.CategoryTotal{}
	for rows.Next() {
		var t domain.CategoryTotal
		if err := rows.Scan(&t.Category, &t.Count, &t.Amount); err != nil {
			return nil, fmt.Errorf("error scanning category total row: %w", err)
		}
		totals = append(totals, t)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating category total rows: %w", rows.Err())
	}

	return totals, nil
}

func (r *reportingRepository) GetMonthlyTotals(ctx context.Context, scope domain.AccessScope, year int) ([]domain.MonthlyTotal, error) {
	conds := []string{"EXTRACT(YEAR FROM created_at AT TIME ZONE 'UTC') = $1"}
	args := []any{year}
	conds, args = appendScopeConditions(conds, args, scope)

	query := fmt.Sprintf(`
		SELECT
			EXTRACT(MONTH FROM created_at AT TIME ZONE 'UTC')::int AS month,
			COUNT(*),
			COALESCE(SUM(amount), 0),
			COALESCE(SUM(CASE WHEN status = 'approved' THEN amount ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN status = 'pending' THEN amount ELSE 0 END), 0)
		FROM expenses
		WHERE %s
		GROUP BY month
		ORDER BY month;
	`, strings.Join(conds, " AND "))

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying monthly totals: %w", err)
	}
	defer rows.Close()

	totals := []domain.MonthlyTotal{}
	for rows.Next() {
		t := domain.MonthlyTotal{Year: year}
		if err := rows.Scan(&t.Month, &t.Count, &t.TotalAmount, &t.ApprovedAmount, &t.PendingAmount); err != nil {
			return nil, fmt.Errorf("error scanning monthly total row: %w", err)
		}
		totals = append(totals, t)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating monthly total rows: %w", rows.Err())
	}

	return totals, nil
}
