package pgsql

import (
	"fmt"

	"github.com/Navenbabu/Corporate-Expense-Tracker/internal/core/domain"
	portsrepo "github.com/Navenbabu/Corporate-Expense-Tracker/internal/core/ports/repositories"
)

// appendScopeConditions translates an access scope into SQL conditions against
// the expenses/users column layout (department, user_id). ScopeAll adds
// nothing. Every scoped query in this package goes through this helper so no
// entry point can forget the filter.
func appendScopeConditions(conds []string, args []any, scope domain.AccessScope) ([]string, []any) {
	switch scope.Kind {
	case domain.ScopeDepartment:
		args = append(args, scope.Department)
		conds = append(conds, fmt.Sprintf("department = $%d", len(args)))
	case domain.ScopeOwn:
		args = append(args, scope.UserID)
		conds = append(conds, fmt.Sprintf("user_id = $%d", len(args)))
	}
	return conds, args
}

// appendFilterConditions translates an ExpenseFilter into SQL conditions.
// Date bounds apply to created_at: start inclusive, end exclusive.
func appendFilterConditions(conds []string, args []any, filter portsrepo.ExpenseFilter) ([]string, []any) {
	if filter.Status != nil {
		args = append(args, string(*filter.Status))
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.Category != nil {
		args = append(args, *filter.Category)
		conds = append(conds, fmt.Sprintf("category = $%d", len(args)))
	}
	if filter.StartDate != nil {
		args = append(args, *filter.StartDate)
		conds = append(conds, fmt.Sprintf("created_at >= $%d", len(args)))
	}
	if filter.EndDate != nil {
		args = append(args, *filter.EndDate)
		conds = append(conds, fmt.Sprintf("created_at < $%d", len(args)))
	}
	return conds, args
}
