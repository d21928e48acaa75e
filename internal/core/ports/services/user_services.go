package services

import (
	"context"

	"github.com/Navenbabu/Corporate-Expense-Tracker/internal/core/domain"
	"github.com/Navenbabu/Corporate-Expense-Tracker/internal/dto"
)

// UserReaderSvc defines read operations for user data.
type UserReaderSvc interface {
	// GetUserByID retrieves a user by ID.
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)

	// GetUser retrieves a user visible to the requester (scope-checked).
	GetUser(ctx context.Context, requester *domain.User, userID string) (*domain.User, error)

	// ListUsers retrieves a paginated, scope-filtered list of users.
	ListUsers(ctx context.Context, requester *domain.User, limit, offset int) ([]domain.User, error)
}

// UserWriterSvc defines write operations for user data.
type UserWriterSvc interface {
	// RegisterUser self-registers a new employee-role user.
	RegisterUser(ctx context.Context, req dto.RegisterRequest) (*domain.User, error)

	// CreateUser creates a user with an explicit role (admin only).
	CreateUser(ctx context.Context, requester *domain.User, req dto.CreateUserRequest) (*domain.User, error)

	// UpdateUser updates a user. Requesters may update their own profile
	// fields; role and department changes require admin.
	UpdateUser(ctx context.Context, requester *domain.User, userID string, req dto.UpdateUserRequest) (*domain.User, error)
}

// UserLifecycleSvc defines operations for managing user lifecycle.
type UserLifecycleSvc interface {
	// DeactivateUser soft-deletes a user (admin only).
	DeactivateUser(ctx context.Context, requester *domain.User, userID string) error
}

// UserAuthSvc defines operations for user authentication.
type UserAuthSvc interface {
	// AuthenticateUser authenticates a user with email and password.
	AuthenticateUser(ctx context.Context, email, password string) (*domain.User, error)

	// FindOrCreateOAuthUser resolves a user from a verified SSO identity,
	// provisioning an employee-role account on first login.
	FindOrCreateOAuthUser(ctx context.Context, email, name string) (*domain.User, error)
}

// UserSvcFacade combines all user-related service interfaces.
type UserSvcFacade interface {
	UserReaderSvc
	UserWriterSvc
	UserLifecycleSvc
	UserAuthSvc
}
