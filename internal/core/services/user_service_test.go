package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/Navenbabu/Corporate-Expense-Tracker/internal/apperrors"
	"github.com/Navenbabu/Corporate-Expense-Tracker/internal/core/domain"
	portsrepo "github.com/Navenbabu/Corporate-Expense-Tracker/internal/core/ports/repositories"
	"github.com/Navenbabu/Corporate-Expense-Tracker/internal/core/services"
	"github.com/Navenbabu/Corporate-Expense-Tracker/internal/dto"
	"github.com/Navenbabu/Corporate-Expense-Tracker/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// --- Mock UserRepository ---
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUsers(ctx context.Context, scope domain.AccessScope, limit, offset int) ([]domain.User, error) {
	args := m.Called(ctx, scope, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) MarkUserDeleted(ctx context.Context, userID string, deletedAt time.Time, deletedBy string) error {
	args := m.Called(ctx, userID, deletedAt, deletedBy)
	return args.Error(0)
}

var _ portsrepo.UserRepository = (*MockUserRepository)(nil)

// --- RegisterUser ---

func TestRegisterUser_AlwaysEmployeeRole(t *testing.T) {
	repo := new(MockUserRepository)
	svc := services.NewUserService(repo)

	repo.On("SaveUser", mock.Anything, mock.MatchedBy(func(u domain.User) bool {
		return u.Role == domain.RoleEmployee &&
			u.Email == "jane.doe@example.com" &&
			u.IsActive &&
			u.PasswordHash != "" &&
			u.PasswordHash != "secret-password"
	})).Return(nil).Once()

	user, err := svc.RegisterUser(context.Background(), dto.RegisterRequest{
		Name:       "Jane Doe",
		Email:      "Jane.Doe@Example.com",
		Password:   "secret-password",
		Department: "Sales",
	})

	assert.NoError(t, err)
	assert.Equal(t, domain.RoleEmployee, user.Role)
	assert.True(t, utils.CheckPasswordHash("secret-password", user.PasswordHash))
	repo.AssertExpectations(t)
}

func TestRegisterUser_DuplicateEmail(t *testing.T) {
	repo := new(MockUserRepository)
	svc := services.NewUserService(repo)

	repo.On("SaveUser", mock.Anything, mock.Anything).Return(apperrors.ErrDuplicate).Once()

	_, err := svc.RegisterUser(context.Background(), dto.RegisterRequest{
		Name:       "Jane Doe",
		Email:      "jane.doe@example.com",
		Password:   "secret-password",
		Department: "Sales",
	})

	assert.ErrorIs(t, err, apperrors.ErrDuplicate)
}

// --- CreateUser ---

func TestCreateUser_NonAdminForbidden(t *testing.T) {
	repo := new(MockUserRepository)
	svc := services.NewUserService(repo)

	for _, requester := range []*domain.User{testEmployee(), testManager()} {
		_, err := svc.CreateUser(context.Background(), requester, dto.CreateUserRequest{
			Name:       "New Manager",
			Email:      "new.manager@example.com",
			Password:   "secret-password",
			Role:       "manager",
			Department: "IT",
		})
		assert.ErrorIs(t, err, apperrors.ErrForbidden, "role %s", requester.Role)
	}
	repo.AssertNotCalled(t, "SaveUser")
}

func TestCreateUser_AdminAssignsRole(t *testing.T) {
	repo := new(MockUserRepository)
	svc := services.NewUserService(repo)
	admin := testAdmin()

	repo.On("SaveUser", mock.Anything, mock.MatchedBy(func(u domain.User) bool {
		return u.Role == domain.RoleManager && u.CreatedBy == admin.UserID
	})).Return(nil).Once()

	user, err := svc.CreateUser(context.Background(), admin, dto.CreateUserRequest{
		Name:       "New Manager",
		Email:      "new.manager@example.com",
		Password:   "secret-password",
		Role:       "manager",
		Department: "IT",
	})

	assert.NoError(t, err)
	assert.Equal(t, domain.RoleManager, user.Role)
	repo.AssertExpectations(t)
}

// --- UpdateUser ---

func TestUpdateUser_SelfRoleChangeForbidden(t *testing.T) {
	repo := new(MockUserRepository)
	svc := services.NewUserService(repo)
	employee := testEmployee()

	role := "admin"
	_, err := svc.UpdateUser(context.Background(), employee, employee.UserID, dto.UpdateUserRequest{Role: &role})

	assert.ErrorIs(t, err, apperrors.ErrForbidden)
	repo.AssertNotCalled(t, "UpdateUser")
}

func TestUpdateUser_OtherUserForbidden(t *testing.T) {
	repo := new(MockUserRepository)
	svc := services.NewUserService(repo)

	name := "Renamed"
	_, err := svc.UpdateUser(context.Background(), testManager(), "emp-1", dto.UpdateUserRequest{Name: &name})

	assert.ErrorIs(t, err, apperrors.ErrForbidden)
}

func TestUpdateUser_SelfNameChange(t *testing.T) {
	repo := new(MockUserRepository)
	svc := services.NewUserService(repo)
	employee := testEmployee()

	repo.On("FindUserByID", mock.Anything, employee.UserID).Return(employee, nil).Once()
	repo.On("UpdateUser", mock.Anything, mock.MatchedBy(func(u domain.User) bool {
		return u.Name == "Jane Renamed" && u.LastUpdatedBy == employee.UserID
	})).Return(nil).Once()

	name := "Jane Renamed"
	updated, err := svc.UpdateUser(context.Background(), employee, employee.UserID, dto.UpdateUserRequest{Name: &name})

	assert.NoError(t, err)
	assert.Equal(t, "Jane Renamed", updated.Name)
	repo.AssertExpectations(t)
}

// --- DeactivateUser ---

func TestDeactivateUser_AdminOnly(t *testing.T) {
	repo := new(MockUserRepository)
	svc := services.NewUserService(repo)

	err := svc.DeactivateUser(context.Background(), testManager(), "emp-1")
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
	repo.AssertNotCalled(t, "MarkUserDeleted")
}

func TestDeactivateUser_Success(t *testing.T) {
	repo := new(MockUserRepository)
	svc := services.NewUserService(repo)
	admin := testAdmin()

	repo.On("FindUserByID", mock.Anything, "emp-1").Return(testEmployee(), nil).Once()
	repo.On("MarkUserDeleted", mock.Anything, "emp-1", mock.AnythingOfType("time.Time"), admin.UserID).Return(nil).Once()

	err := svc.DeactivateUser(context.Background(), admin, "emp-1")

	assert.NoError(t, err)
	repo.AssertExpectations(t)
}

// --- GetUser scope ---

func TestGetUser_OutOfScopeNotFound(t *testing.T) {
	repo := new(MockUserRepository)
	svc := services.NewUserService(repo)

	// Sales manager asks for an IT employee's row.
	itEmployee := &domain.User{UserID: "emp-it", Role: domain.RoleEmployee, Department: "IT", IsActive: true}
	repo.On("FindUserByID", mock.Anything, "emp-it").Return(itEmployee, nil).Once()

	_, err := svc.GetUser(context.Background(), testManager(), "emp-it")

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestGetUser_SameDepartmentVisible(t *testing.T) {
	repo := new(MockUserRepository)
	svc := services.NewUserService(repo)
	employee := testEmployee()

	repo.On("FindUserByID", mock.Anything, employee.UserID).Return(employee, nil).Once()

	user, err := svc.GetUser(context.Background(), testManager(), employee.UserID)

	assert.NoError(t, err)
	assert.Equal(t, employee.UserID, user.UserID)
}

// --- AuthenticateUser ---

func TestAuthenticateUser_Success(t *testing.T) {
	repo := new(MockUserRepository)
	svc := services.NewUserService(repo)

	hash, err := utils.HashPassword("secret-password")
	assert.NoError(t, err)
	stored := testEmployee()
	stored.Email = "jane.doe@example.com"
	stored.PasswordHash = hash
	repo.On("FindUserByEmail", mock.Anything, "jane.doe@example.com").Return(stored, nil).Once()

	user, err := svc.AuthenticateUser(context.Background(), "jane.doe@example.com", "secret-password")

	assert.NoError(t, err)
	assert.Equal(t, stored.UserID, user.UserID)
}

func TestAuthenticateUser_UniformUnauthorized(t *testing.T) {
	hash, err := utils.HashPassword("secret-password")
	assert.NoError(t, err)

	inactive := testEmployee()
	inactive.PasswordHash = hash
	inactive.IsActive = false

	wrongPassword := testEmployee()
	wrongPassword.PasswordHash = hash

	tests := []struct {
		name     string
		stored   *domain.User
		findErr  error
		password string
	}{
		{name: "unknown email", findErr: apperrors.ErrNotFound, password: "secret-password"},
		{name: "inactive account", stored: inactive, password: "secret-password"},
		{name: "wrong password", stored: wrongPassword, password: "wrong-password"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockUserRepository)
			svc := services.NewUserService(repo)
			if tt.stored != nil {
				repo.On("FindUserByEmail", mock.Anything, mock.Anything).Return(tt.stored, nil).Once()
			} else {
				repo.On("FindUserByEmail", mock.Anything, mock.Anything).Return(nil, tt.findErr).Once()
			}

			_, err := svc.AuthenticateUser(context.Background(), "jane.doe@example.com", tt.password)
			assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
		})
	}
}

// --- FindOrCreateOAuthUser ---

func TestFindOrCreateOAuthUser_ProvisionsEmployee(t *testing.T) {
	repo := new(MockUserRepository)
	svc := services.NewUserService(repo)

	repo.On("FindUserByEmail", mock.Anything, "sso.user@example.com").Return(nil, apperrors.ErrNotFound).Once()
	repo.On("SaveUser", mock.Anything, mock.MatchedBy(func(u domain.User) bool {
		return u.Role == domain.RoleEmployee &&
			u.Email == "sso.user@example.com" &&
			u.PasswordHash == "" &&
			u.Department == ""
	})).Return(nil).Once()

	user, err := svc.FindOrCreateOAuthUser(context.Background(), "sso.user@example.com", "SSO User")

	assert.NoError(t, err)
	assert.Equal(t, domain.RoleEmployee, user.Role)
	repo.AssertExpectations(t)
}

func TestFindOrCreateOAuthUser_ExistingInactiveUnauthorized(t *testing.T) {
	repo := new(MockUserRepository)
	svc := services.NewUserService(repo)

	inactive := testEmployee()
	inactive.IsActive = false
	repo.On("FindUserByEmail", mock.Anything, mock.Anything).Return(inactive, nil).Once()

	_, err := svc.FindOrCreateOAuthUser(context.Background(), "jane.doe@example.com", "Jane Doe")

	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	repo.AssertNotCalled(t, "SaveUser")
}
