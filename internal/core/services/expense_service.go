package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"mime/multipart"
	"strings"
	"time"

	"github.com/Navenbabu/Corporate-Expense-Tracker/internal/apperrors"
	"github.com/Navenbabu/Corporate-Expense-Tracker/internal/core/domain"
	portsrepo "github.com/Navenbabu/Corporate-Expense-Tracker/internal/core/ports/repositories"
	portssvc "github.com/Navenbabu/Corporate-Expense-Tracker/internal/core/ports/services"
	"github.com/Navenbabu/Corporate-Expense-Tracker/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ReceiptStorer abstracts receipt file persistence for the expense service.
type ReceiptStorer interface {
	Save(file *multipart.FileHeader) (string, error)
	Remove(path string) error
}

// expenseService implements the ExpenseSvcFacade interface
type expenseService struct {
	BaseService
	expenseRepo  portsrepo.ExpenseRepository
	categoryRepo portsrepo.CategoryRepository
	receiptStore ReceiptStorer
}

// ExpenseServiceOption is a functional option for configuring the expense service
type ExpenseServiceOption func(*expenseService)

// WithCategoryRepository adds category repository dependency
func WithCategoryRepository(repo portsrepo.CategoryRepository) ExpenseServiceOption {
	return func(s *expenseService) {
		s.categoryRepo = repo
	}
}

// WithReceiptStore adds receipt storage dependency
func WithReceiptStore(store ReceiptStorer) ExpenseServiceOption {
	return func(s *expenseService) {
		s.receiptStore = store
	}
}

// NewExpenseService creates a new expense service with the provided options
func NewExpenseService(repo portsrepo.ExpenseRepository, options ...ExpenseServiceOption) portssvc.ExpenseSvcFacade {
	svc := &expenseService{
		expenseRepo: repo,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

// Ensure expenseService implements the ExpenseSvcFacade interface
var _ portssvc.ExpenseSvcFacade = (*expenseService)(nil)

// parseAmount converts the request amount string into a positive decimal.
func parseAmount(raw string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("amount %q is not a valid number: %w", raw, apperrors.ErrValidation)
	}
	if !amount.IsPositive() {
		return decimal.Zero, fmt.Errorf("amount must be positive: %w", apperrors.ErrValidation)
	}
	return amount.Round(2), nil
}

// validateCategory checks the category exists and is active.
func (s *expenseService) validateCategory(ctx context.Context, name string) error {
	if s.categoryRepo == nil {
		return nil
	}
	category, err := s.categoryRepo.FindCategoryByName(ctx, name)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("unknown category %q: %w", name, apperrors.ErrValidation)
		}
		return fmt.Errorf("failed to validate category: %w", err)
	}
	if !category.IsActive {
		return fmt.Errorf("category %q is deactivated: %w", name, apperrors.ErrValidation)
	}
	return nil
}

// findVisibleExpense fetches an expense and applies the requester's scope.
// Rows outside the scope surface as not found to obscure their existence.
func (s *expenseService) findVisibleExpense(ctx context.Context, requester *domain.User, expenseID string) (*domain.Expense, error) {
	expense, err := s.expenseRepo.FindExpenseByID(ctx, expenseID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find expense by ID",
				slog.String("expense_id", expenseID))
		}
		return nil, err
	}

	scope := domain.ResolveScope(requester)
	if !scope.AllowsExpense(expense) {
		s.LogDebug(ctx, "Expense found but outside requester scope",
			slog.String("expense_id", expenseID),
			slog.String("requester_id", requester.UserID))
		return nil, apperrors.ErrNotFound
	}
	return expense, nil
}

func (s *expenseService) GetExpense(ctx context.Context, requester *domain.User, expenseID string) (*domain.Expense, []domain.ReviewComment, error) {
	expense, err := s.findVisibleExpense(ctx, requester, expenseID)
	if err != nil {
		return nil, nil, err
	}

	comments, err := s.expenseRepo.FindCommentsByExpenseID(ctx, expenseID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load expense comments",
			slog.String("expense_id", expenseID))
		return nil, nil, fmt.Errorf("failed to load comments: %w", err)
	}
	if comments == nil {
		comments = []domain.ReviewComment{}
	}
	return expense, comments, nil
}

func (s *expenseService) ListExpenses(ctx context.Context, requester *domain.User, params dto.ListExpensesParams) ([]domain.Expense, error) {
	filter := portsrepo.ExpenseFilter{
		Category:  params.Category,
		StartDate: params.StartDate,
	}
	if params.Status != nil {
		status := domain.ExpenseStatus(*params.Status)
		filter.Status = &status
	}
	if params.EndDate != nil {
		// The API treats end date as inclusive at day granularity; widen to
		// the next midnight for the exclusive repository bound.
		end := params.EndDate.AddDate(0, 0, 1)
		filter.EndDate = &end
	}

	scope := domain.ResolveScope(requester)
	expenses, err := s.expenseRepo.FindExpenses(ctx, scope, filter, params.Limit, params.Offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list expenses",
			slog.String("requester_id", requester.UserID))
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	if expenses == nil {
		return []domain.Expense{}, nil
	}
	return expenses, nil
}

// CreateExpense creates a draft expense owned by the requester. The receipt,
// if present, is stored before the row insert; a failed insert removes the
// stored file again so no orphan is left behind.
func (s *expenseService) CreateExpense(ctx context.Context, requester *domain.User, req dto.CreateExpenseRequest, receipt *multipart.FileHeader) (*domain.Expense, error) {
	amount, err := parseAmount(req.Amount)
	if err != nil {
		return nil, err
	}
	if err := s.validateCategory(ctx, req.Category); err != nil {
		return nil, err
	}

	var receiptPath *string
	if receipt != nil {
		if s.receiptStore == nil {
			return nil, fmt.Errorf("receipt uploads are not configured: %w", apperrors.ErrValidation)
		}
		path, err := s.receiptStore.Save(receipt)
		if err != nil {
			s.LogError(ctx, err, "Failed to store receipt",
				slog.String("requester_id", requester.UserID))
			return nil, err
		}
		receiptPath = &path
	}

	now := time.Now()
	expense := domain.Expense{
		ExpenseID:    uuid.NewString(),
		UserID:       requester.UserID,
		Title:        req.Title,
		Description:  req.Description,
		Amount:       amount,
		CurrencyCode: strings.ToUpper(req.CurrencyCode),
		Category:     req.Category,
		Status:       domain.StatusDraft,
		ReceiptPath:  receiptPath,
		Department:   requester.Department,
		Version:      1,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     requester.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: requester.UserID,
		},
	}

	if err := s.expenseRepo.SaveExpense(ctx, expense); err != nil {
		if receiptPath != nil {
			_ = s.receiptStore.Remove(*receiptPath)
		}
		s.LogError(ctx, err, "Failed to save expense",
			slog.String("expense_id", expense.ExpenseID))
		return nil, err
	}

	s.LogInfo(ctx, "Expense created successfully",
		slog.String("expense_id", expense.ExpenseID),
		slog.String("user_id", requester.UserID))
	return &expense, nil
}

// UpdateExpense edits content fields. Owner only, and only while the expense
// is still a draft.
func (s *expenseService) UpdateExpense(ctx context.Context, requester *domain.User, expenseID string, req dto.UpdateExpenseRequest) (*domain.Expense, error) {
	expense, err := s.findEditableExpense(ctx, requester, expenseID)
	if err != nil {
		return nil, err
	}

	updated := false
	if req.Title != nil {
		expense.Title = *req.Title
		updated = true
	}
	if req.Description != nil {
		expense.Description = *req.Description
		updated = true
	}
	if req.Amount != nil {
		amount, err := parseAmount(*req.Amount)
		if err != nil {
			return nil, err
		}
		expense.Amount = amount
		updated = true
	}
	if req.CurrencyCode != nil {
		expense.CurrencyCode = strings.ToUpper(*req.CurrencyCode)
		updated = true
	}
	if req.Category != nil {
		if err := s.validateCategory(ctx, *req.Category); err != nil {
			return nil, err
		}
		expense.Category = *req.Category
		updated = true
	}
	if !updated {
		s.LogDebug(ctx, "No fields provided for expense update",
			slog.String("expense_id", expenseID))
		return expense, nil
	}

	if err := s.persistTransition(ctx, expense, requester.UserID); err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Expense updated successfully",
		slog.String("expense_id", expense.ExpenseID))
	return expense, nil
}

// findEditableExpense loads an expense the requester may edit: visible to
// them, owned by them, and still a draft.
func (s *expenseService) findEditableExpense(ctx context.Context, requester *domain.User, expenseID string) (*domain.Expense, error) {
	expense, err := s.findVisibleExpense(ctx, requester, expenseID)
	if err != nil {
		return nil, err
	}
	if !expense.IsOwnedBy(requester.UserID) {
		return nil, apperrors.ErrForbidden
	}
	if !expense.IsEditable() {
		return nil, fmt.Errorf("expense in status %s is not editable: %w", expense.Status, apperrors.ErrConflict)
	}
	return expense, nil
}

// ReplaceExpenseReceipt stores a new receipt file on a draft expense and
// deletes the previous file. Owner only, draft only. The new file is removed
// again if the row update fails, so a lost version race leaves no orphan.
func (s *expenseService) ReplaceExpenseReceipt(ctx context.Context, requester *domain.User, expenseID string, receipt *multipart.FileHeader) (*domain.Expense, error) {
	if receipt == nil {
		return nil, fmt.Errorf("a receipt file is required: %w", apperrors.ErrValidation)
	}
	if s.receiptStore == nil {
		return nil, fmt.Errorf("receipt uploads are not configured: %w", apperrors.ErrValidation)
	}

	expense, err := s.findEditableExpense(ctx, requester, expenseID)
	if err != nil {
		return nil, err
	}

	newPath, err := s.receiptStore.Save(receipt)
	if err != nil {
		s.LogError(ctx, err, "Failed to store receipt",
			slog.String("expense_id", expenseID))
		return nil, err
	}

	previousPath := expense.ReceiptPath
	expense.ReceiptPath = &newPath
	if err := s.persistTransition(ctx, expense, requester.UserID); err != nil {
		_ = s.receiptStore.Remove(newPath)
		return nil, err
	}

	if previousPath != nil {
		if err := s.receiptStore.Remove(*previousPath); err != nil {
			s.LogError(ctx, err, "Failed to remove replaced receipt file",
				slog.String("path", *previousPath))
		}
	}

	s.LogInfo(ctx, "Expense receipt replaced",
		slog.String("expense_id", expense.ExpenseID))
	return expense, nil
}

// RemoveExpenseReceipt detaches a draft expense's receipt and deletes the
// stored file. Owner only, draft only. Removing an expense without a receipt
// is a no-op.
func (s *expenseService) RemoveExpenseReceipt(ctx context.Context, requester *domain.User, expenseID string) (*domain.Expense, error) {
	expense, err := s.findEditableExpense(ctx, requester, expenseID)
	if err != nil {
		return nil, err
	}
	if expense.ReceiptPath == nil {
		return expense, nil
	}

	previousPath := *expense.ReceiptPath
	expense.ReceiptPath = nil
	if err := s.persistTransition(ctx, expense, requester.UserID); err != nil {
		return nil, err
	}

	if s.receiptStore != nil {
		if err := s.receiptStore.Remove(previousPath); err != nil {
			s.LogError(ctx, err, "Failed to remove receipt file",
				slog.String("path", previousPath))
		}
	}

	s.LogInfo(ctx, "Expense receipt removed",
		slog.String("expense_id", expense.ExpenseID))
	return expense, nil
}

// DeleteExpense removes an expense and its receipt file. Owners may delete
// their own drafts; admins may delete any expense regardless of status.
func (s *expenseService) DeleteExpense(ctx context.Context, requester *domain.User, expenseID string) error {
	expense, err := s.findVisibleExpense(ctx, requester, expenseID)
	if err != nil {
		return err
	}

	if !requester.IsAdmin() {
		if !expense.IsOwnedBy(requester.UserID) {
			return apperrors.ErrForbidden
		}
		if expense.Status != domain.StatusDraft {
			return fmt.Errorf("only draft expenses can be deleted by their owner: %w", apperrors.ErrConflict)
		}
	}

	if err := s.expenseRepo.DeleteExpense(ctx, expenseID); err != nil {
		s.LogError(ctx, err, "Failed to delete expense",
			slog.String("expense_id", expenseID))
		return err
	}

	if expense.ReceiptPath != nil && s.receiptStore != nil {
		if err := s.receiptStore.Remove(*expense.ReceiptPath); err != nil {
			// Row is gone; an orphaned file is not worth failing the request.
			s.LogError(ctx, err, "Failed to remove receipt after expense delete",
				slog.String("expense_id", expenseID))
		}
	}

	s.LogInfo(ctx, "Expense deleted successfully",
		slog.String("expense_id", expenseID),
		slog.String("deleted_by", requester.UserID))
	return nil
}

// SubmitExpense moves a draft into review. Owner only.
func (s *expenseService) SubmitExpense(ctx context.Context, requester *domain.User, expenseID string) (*domain.Expense, error) {
	expense, err := s.findVisibleExpense(ctx, requester, expenseID)
	if err != nil {
		return nil, err
	}
	if !expense.IsOwnedBy(requester.UserID) {
		return nil, apperrors.ErrForbidden
	}
	if !expense.Status.CanTransitionTo(domain.StatusPending) {
		return nil, fmt.Errorf("cannot submit expense in status %s: %w", expense.Status, apperrors.ErrConflict)
	}

	now := time.Now()
	expense.Status = domain.StatusPending
	expense.SubmittedAt = &now

	if err := s.persistTransition(ctx, expense, requester.UserID); err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Expense submitted for review",
		slog.String("expense_id", expense.ExpenseID))
	return expense, nil
}

// ReviewExpense applies an approve/reject decision to a pending expense.
// Managers may only review expenses of their own department; admins review
// anything. A lost version race surfaces as a conflict, so two reviewers
// cannot both land a decision.
func (s *expenseService) ReviewExpense(ctx context.Context, requester *domain.User, expenseID string, req dto.ReviewExpenseRequest) (*domain.Expense, error) {
	expense, err := s.findVisibleExpense(ctx, requester, expenseID)
	if err != nil {
		return nil, err
	}
	if !requester.CanReview(expense.Department) {
		return nil, apperrors.ErrForbidden
	}
	if expense.IsOwnedBy(requester.UserID) {
		// Reviewers never decide on their own claims.
		return nil, apperrors.ErrForbidden
	}

	target := domain.StatusApproved
	if req.Action == "reject" {
		target = domain.StatusRejected
	}
	if !expense.Status.CanTransitionTo(target) {
		return nil, fmt.Errorf("cannot %s expense in status %s: %w", req.Action, expense.Status, apperrors.ErrConflict)
	}

	now := time.Now()
	expense.Status = target
	expense.ReviewedAt = &now
	reviewerID := requester.UserID
	expense.ReviewedBy = &reviewerID

	if err := s.persistTransition(ctx, expense, requester.UserID); err != nil {
		return nil, err
	}

	if req.Comment != nil && *req.Comment != "" {
		comment := domain.ReviewComment{
			CommentID: uuid.NewString(),
			ExpenseID: expense.ExpenseID,
			AuthorID:  requester.UserID,
			Body:      *req.Comment,
			CreatedAt: now,
		}
		if err := s.expenseRepo.SaveComment(ctx, comment); err != nil {
			// The decision already landed; losing the comment is logged only.
			s.LogError(ctx, err, "Failed to save review comment",
				slog.String("expense_id", expense.ExpenseID))
		}
	}

	s.LogInfo(ctx, "Expense reviewed",
		slog.String("expense_id", expense.ExpenseID),
		slog.String("decision", string(target)),
		slog.String("reviewed_by", requester.UserID))
	return expense, nil
}

// MarkExpensePaid moves an approved expense to paid. Admin only.
func (s *expenseService) MarkExpensePaid(ctx context.Context, requester *domain.User, expenseID string) (*domain.Expense, error) {
	if !requester.IsAdmin() {
		return nil, apperrors.ErrForbidden
	}

	expense, err := s.findVisibleExpense(ctx, requester, expenseID)
	if err != nil {
		return nil, err
	}
	if !expense.Status.CanTransitionTo(domain.StatusPaid) {
		return nil, fmt.Errorf("cannot mark expense in status %s as paid: %w", expense.Status, apperrors.ErrConflict)
	}

	expense.Status = domain.StatusPaid

	if err := s.persistTransition(ctx, expense, requester.UserID); err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Expense marked as paid",
		slog.String("expense_id", expense.ExpenseID),
		slog.String("paid_by", requester.UserID))
	return expense, nil
}

// persistTransition writes the expense with an optimistic version check and
// bumps the in-memory version to match the stored row.
func (s *expenseService) persistTransition(ctx context.Context, expense *domain.Expense, updatedBy string) error {
	expectedVersion := expense.Version
	now := time.Now()
	expense.LastUpdatedAt = now
	expense.LastUpdatedBy = updatedBy

	if err := s.expenseRepo.UpdateExpense(ctx, *expense, expectedVersion); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			s.LogDebug(ctx, "Lost expense version race",
				slog.String("expense_id", expense.ExpenseID),
				slog.Int64("expected_version", expectedVersion))
		} else {
			s.LogError(ctx, err, "Failed to update expense",
				slog.String("expense_id", expense.ExpenseID))
		}
		return err
	}

	expense.Version = expectedVersion + 1
	return nil
}
