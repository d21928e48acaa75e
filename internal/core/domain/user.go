package domain

import "time"

// UserRole defines the possible roles a user can have in the organization.
type UserRole string

const (
	RoleEmployee UserRole = "employee"
	RoleManager  UserRole = "manager"
	RoleAdmin    UserRole = "admin"
)

// IsValid reports whether r is one of the known roles.
func (r UserRole) IsValid() bool {
	switch r {
	case RoleEmployee, RoleManager, RoleAdmin:
		return true
	}
	return false
}

// User represents a user of the application in the domain.
type User struct {
	UserID       string   `json:"userID"`
	Email        string   `json:"email"`
	Name         string   `json:"name"`
	Role         UserRole `json:"role"`
	Department   string   `json:"department"`
	PasswordHash string   `json:"-"`
	IsActive     bool     `json:"isActive"`
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty"`
}

// IsAdmin reports whether the user has the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// CanReview reports whether the user may review an expense belonging to the
// given department: admins review anything, managers only their own department.
func (u *User) CanReview(expenseDepartment string) bool {
	if u.Role == RoleAdmin {
		return true
	}
	return u.Role == RoleManager && u.Department == expenseDepartment
}

func (u *User) GetUserID() string { return u.UserID }
func (u *User) GetEmail() string  { return u.Email }
func (u *User) GetName() string   { return u.Name }
