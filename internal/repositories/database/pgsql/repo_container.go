package pgsql

import (
	portsrepo "github.com/Navenbabu/Corporate-Expense-Tracker/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires all pgx-backed repositories.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		UserRepo:      newPgxUserRepository(dbPool),
		ExpenseRepo:   newPgxExpenseRepository(dbPool),
		CategoryRepo:  newPgxCategoryRepository(dbPool),
		ReportingRepo: newReportingRepository(dbPool),
	}
}
