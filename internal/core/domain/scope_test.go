package domain_test

import (
	"testing"

	"github.com/Navenbabu/Corporate-Expense-Tracker/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestResolveScopePerRole(t *testing.T) {
	admin := &domain.User{UserID: "admin-1", Role: domain.RoleAdmin, Department: "Finance"}
	manager := &domain.User{UserID: "mgr-1", Role: domain.RoleManager, Department: "Sales"}
	employee := &domain.User{UserID: "emp-1", Role: domain.RoleEmployee, Department: "Sales"}

	assert.Equal(t, domain.ScopeAll, domain.ResolveScope(admin).Kind)

	mgrScope := domain.ResolveScope(manager)
	assert.Equal(t, domain.ScopeDepartment, mgrScope.Kind)
	assert.Equal(t, "Sales", mgrScope.Department)

	empScope := domain.ResolveScope(employee)
	assert.Equal(t, domain.ScopeOwn, empScope.Kind)
	assert.Equal(t, "emp-1", empScope.UserID)
}

func TestResolveScopeIsDeterministic(t *testing.T) {
	user := &domain.User{UserID: "mgr-1", Role: domain.RoleManager, Department: "IT"}
	assert.Equal(t, domain.ResolveScope(user), domain.ResolveScope(user))
}

func TestScopeVisibilityAcrossDepartments(t *testing.T) {
	salesExpense := &domain.Expense{ExpenseID: "e1", UserID: "emp-sales", Department: "Sales"}
	itExpense := &domain.Expense{ExpenseID: "e2", UserID: "emp-it", Department: "IT"}

	salesManager := domain.ResolveScope(&domain.User{UserID: "mgr-sales", Role: domain.RoleManager, Department: "Sales"})
	itEmployee := domain.ResolveScope(&domain.User{UserID: "emp-it", Role: domain.RoleEmployee, Department: "IT"})
	admin := domain.ResolveScope(&domain.User{UserID: "admin-1", Role: domain.RoleAdmin})

	// A Sales manager sees Sales expenses but not IT ones.
	assert.True(t, salesManager.AllowsExpense(salesExpense))
	assert.False(t, salesManager.AllowsExpense(itExpense))

	// An IT employee sees only their own rows, regardless of department.
	assert.True(t, itEmployee.AllowsExpense(itExpense))
	assert.False(t, itEmployee.AllowsExpense(salesExpense))

	// Admins see everything.
	assert.True(t, admin.AllowsExpense(salesExpense))
	assert.True(t, admin.AllowsExpense(itExpense))
}

func TestScopeAllowsUser(t *testing.T) {
	salesEmployee := &domain.User{UserID: "emp-sales", Department: "Sales"}
	itEmployee := &domain.User{UserID: "emp-it", Department: "IT"}

	salesManager := domain.ResolveScope(&domain.User{UserID: "mgr-sales", Role: domain.RoleManager, Department: "Sales"})
	assert.True(t, salesManager.AllowsUser(salesEmployee))
	assert.False(t, salesManager.AllowsUser(itEmployee))

	self := domain.ResolveScope(&domain.User{UserID: "emp-it", Role: domain.RoleEmployee, Department: "IT"})
	assert.True(t, self.AllowsUser(itEmployee))
	assert.False(t, self.AllowsUser(salesEmployee))
}

func TestUserCanReview(t *testing.T) {
	admin := &domain.User{UserID: "a", Role: domain.RoleAdmin, Department: "Finance"}
	salesManager := &domain.User{UserID: "m", Role: domain.RoleManager, Department: "Sales"}
	employee := &domain.User{UserID: "e", Role: domain.RoleEmployee, Department: "Sales"}

	assert.True(t, admin.CanReview("IT"))
	assert.True(t, salesManager.CanReview("Sales"))
	assert.False(t, salesManager.CanReview("IT"))
	assert.False(t, employee.CanReview("Sales"))
}
