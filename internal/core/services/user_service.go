package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Navenbabu/Corporate-Expense-Tracker/internal/apperrors"
	"github.com/Navenbabu/Corporate-Expense-Tracker/internal/core/domain"
	portsrepo "github.com/Navenbabu/Corporate-Expense-Tracker/internal/core/ports/repositories"
	portssvc "github.com/Navenbabu/Corporate-Expense-Tracker/internal/core/ports/services"
	"github.com/Navenbabu/Corporate-Expense-Tracker/internal/dto"
	"github.com/Navenbabu/Corporate-Expense-Tracker/internal/utils"
	"github.com/google/uuid"
)

// userService implements the UserSvcFacade interface
type userService struct {
	BaseService
	userRepo portsrepo.UserRepository
}

// NewUserService creates a new user service
func NewUserService(userRepo portsrepo.UserRepository) portssvc.UserSvcFacade {
	return &userService{userRepo: userRepo}
}

// GetUserByID retrieves a user by ID without any scope checks. It backs the
// auth middleware, which needs the requester's row before a scope exists.
func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find user by ID",
				slog.String("user_id", userID))
		}
		return nil, err
	}
	return user, nil
}

// GetUser retrieves a user visible to the requester. Rows outside the
// requester's scope surface as not found to obscure their existence.
func (s *userService) GetUser(ctx context.Context, requester *domain.User, userID string) (*domain.User, error) {
	user, err := s.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	scope := domain.ResolveScope(requester)
	if !scope.AllowsUser(user) {
		s.LogDebug(ctx, "User found but outside requester scope",
			slog.String("user_id", userID),
			slog.String("requester_id", requester.UserID))
		return nil, apperrors.ErrNotFound
	}
	return user, nil
}

func (s *userService) ListUsers(ctx context.Context, requester *domain.User, limit, offset int) ([]domain.User, error) {
	scope := domain.ResolveScope(requester)
	users, err := s.userRepo.FindUsers(ctx, scope, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list users",
			slog.String("requester_id", requester.UserID),
			slog.Int("limit", limit),
			slog.Int("offset", offset))
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	if users == nil {
		return []domain.User{}, nil
	}
	return users, nil
}

// RegisterUser self-registers a new user. Registration always yields the
// employee role; elevated roles are only assignable by an admin afterwards.
func (s *userService) RegisterUser(ctx context.Context, req dto.RegisterRequest) (*domain.User, error) {
	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		s.LogError(ctx, err, "Failed to hash password during registration")
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user := domain.User{
		UserID:       uuid.NewString(),
		Email:        strings.ToLower(req.Email),
		Name:         req.Name,
		Role:         domain.RoleEmployee,
		Department:   req.Department,
		PasswordHash: hash,
		IsActive:     true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     "", // self-registration, ID not yet known to anyone
			LastUpdatedAt: now,
			LastUpdatedBy: "",
		},
	}
	user.CreatedBy = user.UserID
	user.LastUpdatedBy = user.UserID

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			s.LogDebug(ctx, "Registration attempted with taken email",
				slog.String("email", user.Email))
			return nil, err
		}
		s.LogError(ctx, err, "Failed to save registered user",
			slog.String("email", user.Email))
		return nil, err
	}

	s.LogInfo(ctx, "User registered successfully",
		slog.String("user_id", user.UserID))
	return &user, nil
}

// CreateUser creates a user with an explicit role. Admin only.
func (s *userService) CreateUser(ctx context.Context, requester *domain.User, req dto.CreateUserRequest) (*domain.User, error) {
	if !requester.IsAdmin() {
		s.LogDebug(ctx, "Non-admin attempted user creation",
			slog.String("requester_id", requester.UserID))
		return nil, apperrors.ErrForbidden
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		s.LogError(ctx, err, "Failed to hash password for new user")
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user := domain.User{
		UserID:       uuid.NewString(),
		Email:        strings.ToLower(req.Email),
		Name:         req.Name,
		Role:         domain.UserRole(req.Role),
		Department:   req.Department,
		PasswordHash: hash,
		IsActive:     true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     requester.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: requester.UserID,
		},
	}

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			s.LogError(ctx, err, "Failed to save user",
				slog.String("email", user.Email))
		}
		return nil, err
	}

	s.LogInfo(ctx, "User created successfully",
		slog.String("user_id", user.UserID),
		slog.String("role", string(user.Role)),
		slog.String("created_by", requester.UserID))
	return &user, nil
}

// UpdateUser updates a user's profile. Users may change their own name and
// password; role and department changes, and edits to other users, require the
// admin role.
func (s *userService) UpdateUser(ctx context.Context, requester *domain.User, userID string, req dto.UpdateUserRequest) (*domain.User, error) {
	if requester.UserID != userID && !requester.IsAdmin() {
		return nil, apperrors.ErrForbidden
	}
	if (req.Role != nil || req.Department != nil) && !requester.IsAdmin() {
		s.LogDebug(ctx, "Non-admin attempted role or department change",
			slog.String("requester_id", requester.UserID))
		return nil, apperrors.ErrForbidden
	}

	user, err := s.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	updated := false
	if req.Name != nil {
		user.Name = *req.Name
		updated = true
	}
	if req.Password != nil {
		hash, err := utils.HashPassword(*req.Password)
		if err != nil {
			s.LogError(ctx, err, "Failed to hash new password",
				slog.String("user_id", userID))
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.PasswordHash = hash
		updated = true
	}
	if req.Role != nil {
		user.Role = domain.UserRole(*req.Role)
		updated = true
	}
	if req.Department != nil {
		user.Department = *req.Department
		updated = true
	}
	if !updated {
		s.LogDebug(ctx, "No fields provided for user update",
			slog.String("user_id", userID))
		return user, nil
	}

	now := time.Now()
	user.LastUpdatedAt = now
	user.LastUpdatedBy = requester.UserID

	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		s.LogError(ctx, err, "Failed to update user",
			slog.String("user_id", userID))
		return nil, err
	}

	s.LogInfo(ctx, "User updated successfully",
		slog.String("user_id", user.UserID),
		slog.String("updated_by", requester.UserID))
	return user, nil
}

// DeactivateUser soft-deletes a user. Admin only.
func (s *userService) DeactivateUser(ctx context.Context, requester *domain.User, userID string) error {
	if !requester.IsAdmin() {
		return apperrors.ErrForbidden
	}

	// Verify the user exists before marking
	if _, err := s.GetUserByID(ctx, userID); err != nil {
		return err
	}

	if err := s.userRepo.MarkUserDeleted(ctx, userID, time.Now(), requester.UserID); err != nil {
		s.LogError(ctx, err, "Failed to deactivate user",
			slog.String("user_id", userID))
		return err
	}

	s.LogInfo(ctx, "User deactivated successfully",
		slog.String("user_id", userID),
		slog.String("deactivated_by", requester.UserID))
	return nil
}

// AuthenticateUser verifies email/password credentials. Failures are uniform:
// unknown email, bad password and inactive account all surface as unauthorized.
func (s *userService) AuthenticateUser(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		s.LogError(ctx, err, "Failed to find user by email for authentication")
		return nil, fmt.Errorf("failed to authenticate user: %w", err)
	}

	if !user.IsActive {
		s.LogDebug(ctx, "Login attempt for inactive user",
			slog.String("user_id", user.UserID))
		return nil, apperrors.ErrUnauthorized
	}

	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		s.LogDebug(ctx, "Password mismatch during authentication",
			slog.String("user_id", user.UserID))
		return nil, apperrors.ErrUnauthorized
	}

	return user, nil
}

// FindOrCreateOAuthUser resolves a user from a verified SSO identity.
// First-time logins provision an employee-role account with no usable
// password; credential login stays unavailable until one is set.
func (s *userService) FindOrCreateOAuthUser(ctx context.Context, email, name string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByEmail(ctx, email)
	if err == nil {
		if !user.IsActive {
			return nil, apperrors.ErrUnauthorized
		}
		return user, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to look up SSO user by email")
		return nil, fmt.Errorf("failed to find SSO user: %w", err)
	}

	now := time.Now()
	newUser := domain.User{
		UserID:     uuid.NewString(),
		Email:      strings.ToLower(email),
		Name:       name,
		Role:       domain.RoleEmployee,
		Department: "",
		IsActive:   true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}
	newUser.CreatedBy = newUser.UserID
	newUser.LastUpdatedBy = newUser.UserID

	if err := s.userRepo.SaveUser(ctx, newUser); err != nil {
		s.LogError(ctx, err, "Failed to provision SSO user",
			slog.String("email", newUser.Email))
		return nil, err
	}

	s.LogInfo(ctx, "SSO user provisioned",
		slog.String("user_id", newUser.UserID))
	return &newUser, nil
}
