package domain

// ScopeKind discriminates the three visibility levels a requesting user can have.
type ScopeKind string

const (
	ScopeAll        ScopeKind = "all"        // admin: no filter
	ScopeDepartment ScopeKind = "department" // manager: records of the same department
	ScopeOwn        ScopeKind = "own"        // employee: records owned by the user
)

// AccessScope is the filter predicate applied to every expense and user query.
// It is a pure value: repositories translate it into WHERE clauses, and
// services use Allows for single-record checks.
type AccessScope struct {
	Kind       ScopeKind
	Department string
	UserID     string
}

// ResolveScope computes the access scope for a requesting user. It is
// deterministic and never mutates state: the same user always yields the same
// scope.
func ResolveScope(user *User) AccessScope {
	switch user.Role {
	case RoleAdmin:
		return AccessScope{Kind: ScopeAll}
	case RoleManager:
		return AccessScope{Kind: ScopeDepartment, Department: user.Department, UserID: user.UserID}
	default:
		return AccessScope{Kind: ScopeOwn, UserID: user.UserID}
	}
}

// AllowsExpense reports whether an expense is visible under the scope.
func (s AccessScope) AllowsExpense(e *Expense) bool {
	switch s.Kind {
	case ScopeAll:
		return true
	case ScopeDepartment:
		return e.Department == s.Department
	default:
		return e.UserID == s.UserID
	}
}

// AllowsUser reports whether another user's record is visible under the scope.
func (s AccessScope) AllowsUser(u *User) bool {
	switch s.Kind {
	case ScopeAll:
		return true
	case ScopeDepartment:
		return u.Department == s.Department
	default:
		return u.UserID == s.UserID
	}
}
