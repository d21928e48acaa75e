package services_test

import (
	"context"
	"mime/multipart"
	"testing"
	"time"

	"github.com/Navenbabu/Corporate-Expense-Tracker/internal/apperrors"
	"github.com/Navenbabu/Corporate-Expense-Tracker/internal/core/domain"
	portsrepo "github.com/Navenbabu/Corporate-Expense-Tracker/internal/core/ports/repositories"
	portssvc "github.com/Navenbabu/Corporate-Expense-Tracker/internal/core/ports/services"
	"github.com/Navenbabu/Corporate-Expense-Tracker/internal/core/services"
	"github.com/Navenbabu/Corporate-Expense-Tracker/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// --- Mock ExpenseRepository ---
type MockExpenseRepository struct {
	mock.Mock
}

func (m *MockExpenseRepository) SaveExpense(ctx context.Context, expense domain.Expense) error {
	args := m.Called(ctx, expense)
	return args.Error(0)
}

func (m *MockExpenseRepository) FindExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error) {
	args := m.Called(ctx, expenseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Expense), args.Error(1)
}

func (m *MockExpenseRepository) FindExpenses(ctx context.Context, scope domain.AccessScope, filter portsrepo.ExpenseFilter, limit, offset int) ([]domain.Expense, error) {
	args := m.Called(ctx, scope, filter, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Expense), args.Error(1)
}

func (m *MockExpenseRepository) UpdateExpense(ctx context.Context, expense domain.Expense, expectedVersion int64) error {
	args := m.Called(ctx, expense, expectedVersion)
	return args.Error(0)
}

func (m *MockExpenseRepository) DeleteExpense(ctx context.Context, expenseID string) error {
	args := m.Called(ctx, expenseID)
	return args.Error(0)
}

func (m *MockExpenseRepository) SaveComment(ctx context.Context, comment domain.ReviewComment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *MockExpenseRepository) FindCommentsByExpenseID(ctx context.Context, expenseID string) ([]domain.ReviewComment, error) {
	args := m.Called(ctx, expenseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ReviewComment), args.Error(1)
}

var _ portsrepo.ExpenseRepository = (*MockExpenseRepository)(nil)

// --- Mock CategoryRepository ---
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) SaveCategory(ctx context.Context, category domain.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) FindCategoryByName(ctx context.Context, name string) (*domain.Category, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

func (m *MockCategoryRepository) FindCategories(ctx context.Context, includeInactive bool) ([]domain.Category, error) {
	args := m.Called(ctx, includeInactive)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Category), args.Error(1)
}

func (m *MockCategoryRepository) UpdateCategory(ctx context.Context, category domain.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) DeactivateCategory(ctx context.Context, name string, updatedAt time.Time, updatedBy string) error {
	args := m.Called(ctx, name, updatedAt, updatedBy)
	return args.Error(0)
}

var _ portsrepo.CategoryRepository = (*MockCategoryRepository)(nil)

// --- Mock ReceiptStore ---
type MockReceiptStore struct {
	mock.Mock
}

func (m *MockReceiptStore) Save(file *multipart.FileHeader) (string, error) {
	args := m.Called(file)
	return args.String(0), args.Error(1)
}

func (m *MockReceiptStore) Remove(path string) error {
	args := m.Called(path)
	return args.Error(0)
}

var _ services.ReceiptStorer = (*MockReceiptStore)(nil)

// --- Fixtures ---

func activeCategory(name string) *domain.Category {
	return &domain.Category{Name: name, DisplayName: name, IsActive: true}
}

func testEmployee() *domain.User {
	return &domain.User{UserID: "emp-1", Role: domain.RoleEmployee, Department: "Sales", IsActive: true}
}

func testManager() *domain.User {
	return &domain.User{UserID: "mgr-1", Role: domain.RoleManager, Department: "Sales", IsActive: true}
}

func testAdmin() *domain.User {
	return &domain.User{UserID: "admin-1", Role: domain.RoleAdmin, IsActive: true}
}

func draftExpense(owner *domain.User) *domain.Expense {
	return &domain.Expense{
		ExpenseID:    uuid.NewString(),
		UserID:       owner.UserID,
		Title:        "Taxi to airport",
		Amount:       decimal.NewFromFloat(42.50),
		CurrencyCode: "USD",
		Category:     "travel",
		Status:       domain.StatusDraft,
		Department:   owner.Department,
		Version:      1,
	}
}

func newTestExpenseService(repo *MockExpenseRepository, catRepo *MockCategoryRepository, store *MockReceiptStore) portssvc.ExpenseSvcFacade {
	return services.NewExpenseService(repo,
		services.WithCategoryRepository(catRepo),
		services.WithReceiptStore(store),
	)
}

// --- CreateExpense ---

func TestCreateExpense_Success(t *testing.T) {
	repo := new(MockExpenseRepository)
	catRepo := new(MockCategoryRepository)
	store := new(MockReceiptStore)
	svc := newTestExpenseService(repo, catRepo, store)
	requester := testEmployee()

	catRepo.On("FindCategoryByName", mock.Anything, "travel").Return(activeCategory("travel"), nil).Once()
	repo.On("SaveExpense", mock.Anything, mock.MatchedBy(func(e domain.Expense) bool {
		return e.Status == domain.StatusDraft &&
			e.UserID == requester.UserID &&
			e.Department == "Sales" &&
			e.Version == 1 &&
			e.Amount.Equal(decimal.NewFromFloat(42.58)) &&
			e.CurrencyCode == "USD"
	})).Return(nil).Once()

	expense, err := svc.CreateExpense(context.Background(), requester, dto.CreateExpenseRequest{
		Title:        "Taxi to airport",
		Amount:       "42.579",
		CurrencyCode: "usd",
		Category:     "travel",
	}, nil)

	assert.NoError(t, err)
	assert.NotNil(t, expense)
	assert.Equal(t, domain.StatusDraft, expense.Status)
	repo.AssertExpectations(t)
	catRepo.AssertExpectations(t)
}

func TestCreateExpense_InvalidAmount(t *testing.T) {
	repo := new(MockExpenseRepository)
	catRepo := new(MockCategoryRepository)
	store := new(MockReceiptStore)
	svc := newTestExpenseService(repo, catRepo, store)

	for _, amount := range []string{"not-a-number", "0", "-5.00"} {
		_, err := svc.CreateExpense(context.Background(), testEmployee(), dto.CreateExpenseRequest{
			Title:        "Lunch",
			Amount:       amount,
			CurrencyCode: "USD",
			Category:     "meals",
		}, nil)
		assert.ErrorIs(t, err, apperrors.ErrValidation, "amount %q", amount)
	}
	repo.AssertNotCalled(t, "SaveExpense")
}

func TestCreateExpense_InactiveCategory(t *testing.T) {
	repo := new(MockExpenseRepository)
	catRepo := new(MockCategoryRepository)
	store := new(MockReceiptStore)
	svc := newTestExpenseService(repo, catRepo, store)

	inactive := activeCategory("travel")
	inactive.IsActive = false
	catRepo.On("FindCategoryByName", mock.Anything, "travel").Return(inactive, nil).Once()

	_, err := svc.CreateExpense(context.Background(), testEmployee(), dto.CreateExpenseRequest{
		Title:        "Taxi",
		Amount:       "10.00",
		CurrencyCode: "USD",
		Category:     "travel",
	}, nil)

	assert.ErrorIs(t, err, apperrors.ErrValidation)
	repo.AssertNotCalled(t, "SaveExpense")
}

func TestCreateExpense_SaveFailureRemovesReceipt(t *testing.T) {
	repo := new(MockExpenseRepository)
	catRepo := new(MockCategoryRepository)
	store := new(MockReceiptStore)
	svc := newTestExpenseService(repo, catRepo, store)

	catRepo.On("FindCategoryByName", mock.Anything, "travel").Return(activeCategory("travel"), nil).Once()
	store.On("Save", mock.Anything).Return("uploads/receipts/abc.pdf", nil).Once()
	repo.On("SaveExpense", mock.Anything, mock.Anything).Return(assert.AnError).Once()
	store.On("Remove", "uploads/receipts/abc.pdf").Return(nil).Once()

	receipt := &multipart.FileHeader{Filename: "receipt.pdf", Size: 100}
	_, err := svc.CreateExpense(context.Background(), testEmployee(), dto.CreateExpenseRequest{
		Title:        "Taxi",
		Amount:       "10.00",
		CurrencyCode: "USD",
		Category:     "travel",
	}, receipt)

	assert.Error(t, err)
	store.AssertExpectations(t)
}

// --- UpdateExpense ---

func TestUpdateExpense_NonDraftConflict(t *testing.T) {
	repo := new(MockExpenseRepository)
	catRepo := new(MockCategoryRepository)
	store := new(MockReceiptStore)
	svc := newTestExpenseService(repo, catRepo, store)
	owner := testEmployee()

	expense := draftExpense(owner)
	expense.Status = domain.StatusPending
	repo.On("FindExpenseByID", mock.Anything, expense.ExpenseID).Return(expense, nil).Once()

	newTitle := "Updated"
	_, err := svc.UpdateExpense(context.Background(), owner, expense.ExpenseID, dto.UpdateExpenseRequest{Title: &newTitle})

	assert.ErrorIs(t, err, apperrors.ErrConflict)
	repo.AssertNotCalled(t, "UpdateExpense")
}

func TestUpdateExpense_NonOwnerForbidden(t *testing.T) {
	repo := new(MockExpenseRepository)
	catRepo := new(MockCategoryRepository)
	store := new(MockReceiptStore)
	svc := newTestExpenseService(repo, catRepo, store)

	owner := testEmployee()
	expense := draftExpense(owner)
	// Manager of the same department can see the expense but not edit it.
	repo.On("FindExpenseByID", mock.Anything, expense.ExpenseID).Return(expense, nil).Once()

	newTitle := "Updated"
	_, err := svc.UpdateExpense(context.Background(), testManager(), expense.ExpenseID, dto.UpdateExpenseRequest{Title: &newTitle})

	assert.ErrorIs(t, err, apperrors.ErrForbidden)
}

func TestUpdateExpense_Success(t *testing.T) {
	repo := new(MockExpenseRepository)
	catRepo := new(MockCategoryRepository)
	store := new(MockReceiptStore)
	svc := newTestExpenseService(repo, catRepo, store)
	owner := testEmployee()

	expense := draftExpense(owner)
	repo.On("FindExpenseByID", mock.Anything, expense.ExpenseID).Return(expense, nil).Once()
	repo.On("UpdateExpense", mock.Anything, mock.MatchedBy(func(e domain.Expense) bool {
		return e.Title == "Train to airport" && e.Amount.Equal(decimal.NewFromFloat(30.00))
	}), int64(1)).Return(nil).Once()

	newTitle := "Train to airport"
	newAmount := "30.00"
	updated, err := svc.UpdateExpense(context.Background(), owner, expense.ExpenseID, dto.UpdateExpenseRequest{
		Title:  &newTitle,
		Amount: &newAmount,
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(2), updated.Version)
	repo.AssertExpectations(t)
}

func TestReplaceExpenseReceipt_StoresNewAndRemovesOld(t *testing.T) {
	repo := new(MockExpenseRepository)
	catRepo := new(MockCategoryRepository)
	store := new(MockReceiptStore)
	svc := newTestExpenseService(repo, catRepo, store)
	owner := testEmployee()

	oldPath := "uploads/receipts/old.pdf"
	expense := draftExpense(owner)
	expense.ReceiptPath = &oldPath

	repo.On("FindExpenseByID", mock.Anything, expense.ExpenseID).Return(expense, nil).Once()
	store.On("Save", mock.Anything).Return("uploads/receipts/new.pdf", nil).Once()
	repo.On("UpdateExpense", mock.Anything, mock.MatchedBy(func(e domain.Expense) bool {
		return e.ReceiptPath != nil && *e.ReceiptPath == "uploads/receipts/new.pdf"
	}), int64(1)).Return(nil).Once()
	store.On("Remove", oldPath).Return(nil).Once()

	receipt := &multipart.FileHeader{Filename: "receipt.pdf", Size: 100}
	updated, err := svc.ReplaceExpenseReceipt(context.Background(), owner, expense.ExpenseID, receipt)

	assert.NoError(t, err)
	assert.Equal(t, "uploads/receipts/new.pdf", *updated.ReceiptPath)
	assert.Equal(t, int64(2), updated.Version)
	repo.AssertExpectations(t)
	store.AssertExpectations(t)
}

func TestReplaceExpenseReceipt_FailedUpdateRemovesNewFile(t *testing.T) {
	repo := new(MockExpenseRepository)
	catRepo := new(MockCategoryRepository)
	store := new(MockReceiptStore)
	svc := newTestExpenseService(repo, catRepo, store)
	owner := testEmployee()

	expense := draftExpense(owner)
	repo.On("FindExpenseByID", mock.Anything, expense.ExpenseID).Return(expense, nil).Once()
	store.On("Save", mock.Anything).Return("uploads/receipts/new.pdf", nil).Once()
	repo.On("UpdateExpense", mock.Anything, mock.Anything, int64(1)).Return(apperrors.ErrConflict).Once()
	store.On("Remove", "uploads/receipts/new.pdf").Return(nil).Once()

	receipt := &multipart.FileHeader{Filename: "receipt.pdf", Size: 100}
	_, err := svc.ReplaceExpenseReceipt(context.Background(), owner, expense.ExpenseID, receipt)

	assert.ErrorIs(t, err, apperrors.ErrConflict)
	store.AssertExpectations(t)
}

func TestReplaceExpenseReceipt_NonDraftConflict(t *testing.T) {
	repo := new(MockExpenseRepository)
	catRepo := new(MockCategoryRepository)
	store := new(MockReceiptStore)
	svc := newTestExpenseService(repo, catRepo, store)
	owner := testEmployee()

	expense := draftExpense(owner)
	expense.Status = domain.StatusPending
	repo.On("FindExpenseByID", mock.Anything, expense.ExpenseID).Return(expense, nil).Once()

	receipt := &multipart.FileHeader{Filename: "receipt.pdf", Size: 100}
	_, err := svc.ReplaceExpenseReceipt(context.Background(), owner, expense.ExpenseID, receipt)

	assert.ErrorIs(t, err, apperrors.ErrConflict)
	store.AssertNotCalled(t, "Save", mock.Anything)
}

func TestReplaceExpenseReceipt_NonOwnerForbidden(t *testing.T) {
	repo := new(MockExpenseRepository)
	catRepo := new(MockCategoryRepository)
	store := new(MockReceiptStore)
	svc := newTestExpenseService(repo, catRepo, store)
	owner := testEmployee()

	expense := draftExpense(owner)
	repo.On("FindExpenseByID", mock.Anything, expense.ExpenseID).Return(expense, nil).Once()

	receipt := &multipart.FileHeader{Filename: "receipt.pdf", Size: 100}
	_, err := svc.ReplaceExpenseReceipt(context.Background(), testManager(), expense.ExpenseID, receipt)

	assert.ErrorIs(t, err, apperrors.ErrForbidden)
	store.AssertNotCalled(t, "Save", mock.Anything)
}

func TestRemoveExpenseReceipt_DetachesAndDeletesFile(t *testing.T) {
	repo := new(MockExpenseRepository)
	catRepo := new(MockCategoryRepository)
	store := new(MockReceiptStore)
	svc := newTestExpenseService(repo, catRepo, store)
	owner := testEmployee()

	oldPath := "uploads/receipts/old.pdf"
	expense := draftExpense(owner)
	expense.ReceiptPath = &oldPath

	repo.On("FindExpenseByID", mock.Anything, expense.ExpenseID).Return(expense, nil).Once()
	repo.On("UpdateExpense", mock.Anything, mock.MatchedBy(func(e domain.Expense) bool {
		return e.ReceiptPath == nil
	}), int64(1)).Return(nil).Once()
	store.On("Remove", oldPath).Return(nil).Once()

	updated, err := svc.RemoveExpenseReceipt(context.Background(), owner, expense.ExpenseID)

	assert.NoError(t, err)
	assert.Nil(t, updated.ReceiptPath)
	repo.AssertExpectations(t)
	store.AssertExpectations(t)
}

func TestRemoveExpenseReceipt_WithoutReceiptIsNoop(t *testing.T) {
	repo := new(MockExpenseRepository)
	catRepo := new(MockCategoryRepository)
	store := new(MockReceiptStore)
	svc := newTestExpenseService(repo, catRepo, store)
	owner := testEmployee()

	expense := draftExpense(owner)
	repo.On("FindExpenseByID", mock.Anything, expense.ExpenseID).Return(expense, nil).Once()

	updated, err := svc.RemoveExpenseReceipt(context.Background(), owner, expense.ExpenseID)

	assert.NoError(t, err)
	assert.Nil(t, updated.ReceiptPath)
	repo.AssertNotCalled(t, "UpdateExpense", mock.Anything, mock.Anything, mock.Anything)
	store.AssertNotCalled(t, "Remove", mock.Anything)
}

// --- SubmitExpense ---

func TestSubmitExpense_Success(t *testing.T) {
	repo := new(MockExpenseRepository)
	catRepo := new(MockCategoryRepository)
	store := new(MockReceiptStore)
	svc := newTestExpenseService(repo, catRepo, store)
	owner := testEmployee()

	expense := draftExpense(owner)
	repo.On("FindExpenseByID", mock.Anything, expense.ExpenseID).Return(expense, nil).Once()
	repo.On("UpdateExpense", mock.Anything, mock.MatchedBy(func(e domain.Expense) bool {
		return e.Status == domain.StatusPending && e.SubmittedAt != nil
	}), int64(1)).Return(nil).Once()

	submitted, err := svc.SubmitExpense(context.Background(), owner, expense.ExpenseID)

	assert.NoError(t, err)
	assert.Equal(t, domain.StatusPending, submitted.Status)
	assert.NotNil(t, submitted.SubmittedAt)
	repo.AssertExpectations(t)
}

func TestSubmitExpense_NonOwnerForbidden(t *testing.T) {
	repo := new(MockExpenseRepository)
	catRepo := new(MockCategoryRepository)
	store := new(MockReceiptStore)
	svc := newTestExpenseService(repo, catRepo, store)

	owner := testEmployee()
	expense := draftExpense(owner)
	repo.On("FindExpenseByID", mock.Anything, expense.ExpenseID).Return(expense, nil).Once()

	_, err := svc.SubmitExpense(context.Background(), testManager(), expense.ExpenseID)

	assert.ErrorIs(t, err, apperrors.ErrForbidden)
}

func TestSubmitExpense_AlreadyPendingConflict(t *testing.T) {
	repo := new(MockExpenseRepository)
	catRepo := new(MockCategoryRepository)
	store := new(MockReceiptStore)
	svc := newTestExpenseService(repo, catRepo, store)
	owner := testEmployee()

	expense := draftExpense(owner)
	expense.Status = domain.StatusPending
	repo.On("FindExpenseByID", mock.Anything, expense.ExpenseID).Return(expense, nil).Once()

	_, err := svc.SubmitExpense(context.Background(), owner, expense.ExpenseID)

	assert.ErrorIs(t, err, apperrors.ErrConflict)
}

// --- ReviewExpense ---

func TestReviewExpense_ApproveByManager(t *testing.T) {
	repo := new(MockExpenseRepository)
	catRepo := new(MockCategoryRepository)
	store := new(MockReceiptStore)
	svc := newTestExpenseService(repo, catRepo, store)
	manager := testManager()

	expense := draftExpense(testEmployee())
	expense.Status = domain.StatusPending
	repo.On("FindExpenseByID", mock.Anything, expense.ExpenseID).Return(expense, nil).Once()
	repo.On("UpdateExpense", mock.Anything, mock.MatchedBy(func(e domain.Expense) bool {
		return e.Status == domain.StatusApproved &&
			e.ReviewedAt != nil &&
			e.ReviewedBy != nil && *e.ReviewedBy == manager.UserID
	}), int64(1)).Return(nil).Once()
	repo.On("SaveComment", mock.Anything, mock.MatchedBy(func(c domain.ReviewComment) bool {
		return c.ExpenseID == expense.ExpenseID && c.AuthorID == manager.UserID && c.Body == "Looks good"
	})).Return(nil).Once()

	comment := "Looks good"
	reviewed, err := svc.ReviewExpense(context.Background(), manager, expense.ExpenseID, dto.ReviewExpenseRequest{
		Action:  "approve",
		Comment: &comment,
	})

	assert.NoError(t, err)
	assert.Equal(t, domain.StatusApproved, reviewed.Status)
	repo.AssertExpectations(t)
}

func TestReviewExpense_RejectByAdmin(t *testing.T) {
	repo := new(MockExpenseRepository)
	catRepo := new(MockCategoryRepository)
	store := new(MockReceiptStore)
	svc := newTestExpenseService(repo, catRepo, store)

	expense := draftExpense(testEmployee())
	expense.Status = domain.StatusPending
	repo.On("FindExpenseByID", mock.Anything, expense.ExpenseID).Return(expense, nil).Once()
	repo.On("UpdateExpense", mock.Anything, mock.MatchedBy(func(e domain.Expense) bool {
		return e.Status == domain.StatusRejected
	}), int64(1)).Return(nil).Once()

	reviewed, err := svc.ReviewExpense(context.Background(), testAdmin(), expense.ExpenseID, dto.ReviewExpenseRequest{Action: "reject"})

	assert.NoError(t, err)
	assert.Equal(t, domain.StatusRejected, reviewed.Status)
}

func TestReviewExpense_OtherDepartmentManagerSeesNotFound(t *testing.T) {
	repo := new(MockExpenseRepository)
	catRepo := new(MockCategoryRepository)
	store := new(MockReceiptStore)
	svc := newTestExpenseService(repo, catRepo, store)

	expense := draftExpense(testEmployee()) // Sales
	expense.Status = domain.StatusPending
	repo.On("FindExpenseByID", mock.Anything, expense.ExpenseID).Return(expense, nil).Once()

	itManager := &domain.User{UserID: "mgr-it", Role: domain.RoleManager, Department: "IT"}
	_, err := svc.ReviewExpense(context.Background(), itManager, expense.ExpenseID, dto.ReviewExpenseRequest{Action: "approve"})

	// Out-of-scope rows are indistinguishable from missing ones.
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestReviewExpense_OwnerCannotSelfReview(t *testing.T) {
	repo := new(MockExpenseRepository)
	catRepo := new(MockCategoryRepository)
	store := new(MockReceiptStore)
	svc := newTestExpenseService(repo, catRepo, store)

	// A manager submitting their own claim must not approve it.
	manager := testManager()
	expense := draftExpense(manager)
	expense.Status = domain.StatusPending
	repo.On("FindExpenseByID", mock.Anything, expense.ExpenseID).Return(expense, nil).Once()

	_, err := svc.ReviewExpense(context.Background(), manager, expense.ExpenseID, dto.ReviewExpenseRequest{Action: "approve"})

	assert.ErrorIs(t, err, apperrors.ErrForbidden)
}

func TestReviewExpense_NotPendingConflict(t *testing.T) {
	repo := new(MockExpenseRepository)
	catRepo := new(MockCategoryRepository)
	store := new(MockReceiptStore)
	svc := newTestExpenseService(repo, catRepo, store)

	expense := draftExpense(testEmployee())
	expense.Status = domain.StatusApproved
	repo.On("FindExpenseByID", mock.Anything, expense.ExpenseID).Return(expense, nil).Once()

	_, err := svc.ReviewExpense(context.Background(), testManager(), expense.ExpenseID, dto.ReviewExpenseRequest{Action: "approve"})

	assert.ErrorIs(t, err, apperrors.ErrConflict)
	repo.AssertNotCalled(t, "UpdateExpense")
}

func TestReviewExpense_LostVersionRace(t *testing.T) {
	repo := new(MockExpenseRepository)
	catRepo := new(MockCategoryRepository)
	store := new(MockReceiptStore)
	svc := newTestExpenseService(repo, catRepo, store)

	expense := draftExpense(testEmployee())
	expense.Status = domain.StatusPending
	repo.On("FindExpenseByID", mock.Anything, expense.ExpenseID).Return(expense, nil).Once()
	// Another reviewer's decision landed first; the version check fails.
	repo.On("UpdateExpense", mock.Anything, mock.Anything, int64(1)).Return(apperrors.ErrConflict).Once()

	_, err := svc.ReviewExpense(context.Background(), testManager(), expense.ExpenseID, dto.ReviewExpenseRequest{Action: "approve"})

	assert.ErrorIs(t, err, apperrors.ErrConflict)
	repo.AssertNotCalled(t, "SaveComment")
}

// --- MarkExpensePaid ---

func TestMarkExpensePaid_AdminOnly(t *testing.T) {
	repo := new(MockExpenseRepository)
	catRepo := new(MockCategoryRepository)
	store := new(MockReceiptStore)
	svc := newTestExpenseService(repo, catRepo, store)

	_, err := svc.MarkExpensePaid(context.Background(), testManager(), uuid.NewString())
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
	repo.AssertNotCalled(t, "FindExpenseByID")
}

func TestMarkExpensePaid_Success(t *testing.T) {
	repo := new(MockExpenseRepository)
	catRepo := new(MockCategoryRepository)
	store := new(MockReceiptStore)
	svc := newTestExpenseService(repo, catRepo, store)

	expense := draftExpense(testEmployee())
	expense.Status = domain.StatusApproved
	repo.On("FindExpenseByID", mock.Anything, expense.ExpenseID).Return(expense, nil).Once()
	repo.On("UpdateExpense", mock.Anything, mock.MatchedBy(func(e domain.Expense) bool {
		return e.Status == domain.StatusPaid
	}), int64(1)).Return(nil).Once()

	paid, err := svc.MarkExpensePaid(context.Background(), testAdmin(), expense.ExpenseID)

	assert.NoError(t, err)
	assert.Equal(t, domain.StatusPaid, paid.Status)
}

func TestMarkExpensePaid_NotApprovedConflict(t *testing.T) {
	repo := new(MockExpenseRepository)
	catRepo := new(MockCategoryRepository)
	store := new(MockReceiptStore)
	svc := newTestExpenseService(repo, catRepo, store)

	expense := draftExpense(testEmployee())
	expense.Status = domain.StatusPending
	repo.On("FindExpenseByID", mock.Anything, expense.ExpenseID).Return(expense, nil).Once()

	_, err := svc.MarkExpensePaid(context.Background(), testAdmin(), expense.ExpenseID)

	assert.ErrorIs(t, err, apperrors.ErrConflict)
}

// --- DeleteExpense ---

func TestDeleteExpense_OwnerDraftRemovesReceipt(t *testing.T) {
	repo := new(MockExpenseRepository)
	catRepo := new(MockCategoryRepository)
	store := new(MockReceiptStore)
	svc := newTestExpenseService(repo, catRepo, store)
	owner := testEmployee()

	expense := draftExpense(owner)
	receiptPath := "uploads/receipts/abc.pdf"
	expense.ReceiptPath = &receiptPath
	repo.On("FindExpenseByID", mock.Anything, expense.ExpenseID).Return(expense, nil).Once()
	repo.On("DeleteExpense", mock.Anything, expense.ExpenseID).Return(nil).Once()
	store.On("Remove", receiptPath).Return(nil).Once()

	err := svc.DeleteExpense(context.Background(), owner, expense.ExpenseID)

	assert.NoError(t, err)
	repo.AssertExpectations(t)
	store.AssertExpectations(t)
}

func TestDeleteExpense_OwnerNonDraftConflict(t *testing.T) {
	repo := new(MockExpenseRepository)
	catRepo := new(MockCategoryRepository)
	store := new(MockReceiptStore)
	svc := newTestExpenseService(repo, catRepo, store)
	owner := testEmployee()

	expense := draftExpense(owner)
	expense.Status = domain.StatusApproved
	repo.On("FindExpenseByID", mock.Anything, expense.ExpenseID).Return(expense, nil).Once()

	err := svc.DeleteExpense(context.Background(), owner, expense.ExpenseID)

	assert.ErrorIs(t, err, apperrors.ErrConflict)
	repo.AssertNotCalled(t, "DeleteExpense")
}

func TestDeleteExpense_ManagerForbidden(t *testing.T) {
	repo := new(MockExpenseRepository)
	catRepo := new(MockCategoryRepository)
	store := new(MockReceiptStore)
	svc := newTestExpenseService(repo, catRepo, store)

	expense := draftExpense(testEmployee())
	repo.On("FindExpenseByID", mock.Anything, expense.ExpenseID).Return(expense, nil).Once()

	err := svc.DeleteExpense(context.Background(), testManager(), expense.ExpenseID)

	assert.ErrorIs(t, err, apperrors.ErrForbidden)
}

func TestDeleteExpense_AdminDeletesAnyStatus(t *testing.T) {
	repo := new(MockExpenseRepository)
	catRepo := new(MockCategoryRepository)
	store := new(MockReceiptStore)
	svc := newTestExpenseService(repo, catRepo, store)

	expense := draftExpense(testEmployee())
	expense.Status = domain.StatusPaid
	repo.On("FindExpenseByID", mock.Anything, expense.ExpenseID).Return(expense, nil).Once()
	repo.On("DeleteExpense", mock.Anything, expense.ExpenseID).Return(nil).Once()

	err := svc.DeleteExpense(context.Background(), testAdmin(), expense.ExpenseID)

	assert.NoError(t, err)
	repo.AssertExpectations(t)
}

// --- ListExpenses ---

func TestListExpenses_WidensInclusiveEndDate(t *testing.T) {
	repo := new(MockExpenseRepository)
	catRepo := new(MockCategoryRepository)
	store := new(MockReceiptStore)
	svc := newTestExpenseService(repo, catRepo, store)
	requester := testEmployee()

	endDate := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	repo.On("FindExpenses", mock.Anything, domain.ResolveScope(requester), mock.MatchedBy(func(f portsrepo.ExpenseFilter) bool {
		return f.EndDate != nil && f.EndDate.Equal(endDate.AddDate(0, 0, 1))
	}), 20, 0).Return([]domain.Expense{}, nil).Once()

	_, err := svc.ListExpenses(context.Background(), requester, dto.ListExpensesParams{
		EndDate: &endDate,
		Limit:   20,
	})

	assert.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestGetExpense_OutOfScopeNotFound(t *testing.T) {
	repo := new(MockExpenseRepository)
	catRepo := new(MockCategoryRepository)
	store := new(MockReceiptStore)
	svc := newTestExpenseService(repo, catRepo, store)

	expense := draftExpense(testEmployee()) // owned by emp-1
	repo.On("FindExpenseByID", mock.Anything, expense.ExpenseID).Return(expense, nil).Once()

	other := &domain.User{UserID: "emp-2", Role: domain.RoleEmployee, Department: "Sales"}
	_, _, err := svc.GetExpense(context.Background(), other, expense.ExpenseID)

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	repo.AssertNotCalled(t, "FindCommentsByExpenseID")
}
