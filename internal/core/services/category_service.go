package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Navenbabu/Corporate-Expense-Tracker/internal/apperrors"
	"github.com/Navenbabu/Corporate-Expense-Tracker/internal/core/domain"
	portsrepo "github.com/Navenbabu/Corporate-Expense-Tracker/internal/core/ports/repositories"
	portssvc "github.com/Navenbabu/Corporate-Expense-Tracker/internal/core/ports/services"
	"github.com/Navenbabu/Corporate-Expense-Tracker/internal/dto"
)

// categoryService implements the CategorySvcFacade interface
type categoryService struct {
	BaseService
	categoryRepo portsrepo.CategoryRepository
}

// NewCategoryService creates a new category service
func NewCategoryService(categoryRepo portsrepo.CategoryRepository) portssvc.CategorySvcFacade {
	return &categoryService{categoryRepo: categoryRepo}
}

// CreateCategory adds a new category to the registry. Admin only.
func (s *categoryService) CreateCategory(ctx context.Context, requester *domain.User, req dto.CreateCategoryRequest) (*domain.Category, error) {
	if !requester.IsAdmin() {
		return nil, apperrors.ErrForbidden
	}

	now := time.Now()
	category := domain.Category{
		Name:        req.Name,
		DisplayName: req.DisplayName,
		Description: req.Description,
		Icon:        req.Icon,
		IsActive:    true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     requester.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: requester.UserID,
		},
	}

	if err := s.categoryRepo.SaveCategory(ctx, category); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			s.LogError(ctx, err, "Failed to save category",
				slog.String("category", category.Name))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Category created successfully",
		slog.String("category", category.Name),
		slog.String("created_by", requester.UserID))
	return &category, nil
}

func (s *categoryService) GetCategoryByName(ctx context.Context, name string) (*domain.Category, error) {
	category, err := s.categoryRepo.FindCategoryByName(ctx, name)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find category",
				slog.String("category", name))
		}
		return nil, err
	}
	return category, nil
}

func (s *categoryService) ListCategories(ctx context.Context, includeInactive bool) ([]domain.Category, error) {
	categories, err := s.categoryRepo.FindCategories(ctx, includeInactive)
	if err != nil {
		s.LogError(ctx, err, "Failed to list categories")
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	if categories == nil {
		return []domain.Category{}, nil
	}
	return categories, nil
}

// UpdateCategory edits registry metadata. Admin only.
func (s *categoryService) UpdateCategory(ctx context.Context, requester *domain.User, name string, req dto.UpdateCategoryRequest) (*domain.Category, error) {
	if !requester.IsAdmin() {
		return nil, apperrors.ErrForbidden
	}

	category, err := s.GetCategoryByName(ctx, name)
	if err != nil {
		return nil, err
	}

	updated := false
	if req.DisplayName != nil {
		category.DisplayName = *req.DisplayName
		updated = true
	}
	if req.Description != nil {
		category.Description = *req.Description
		updated = true
	}
	if req.Icon != nil {
		category.Icon = *req.Icon
		updated = true
	}
	if req.IsActive != nil {
		category.IsActive = *req.IsActive
		updated = true
	}
	if !updated {
		s.LogDebug(ctx, "No fields provided for category update",
			slog.String("category", name))
		return category, nil
	}

	now := time.Now()
	category.LastUpdatedAt = now
	category.LastUpdatedBy = requester.UserID

	if err := s.categoryRepo.UpdateCategory(ctx, *category); err != nil {
		s.LogError(ctx, err, "Failed to update category",
			slog.String("category", name))
		return nil, err
	}

	s.LogInfo(ctx, "Category updated successfully",
		slog.String("category", name),
		slog.String("updated_by", requester.UserID))
	return category, nil
}

// DeactivateCategory soft-deletes a category. Admin only. Historical expenses
// keep their name reference; only new expenses are barred from using it.
func (s *categoryService) DeactivateCategory(ctx context.Context, requester *domain.User, name string) error {
	if !requester.IsAdmin() {
		return apperrors.ErrForbidden
	}

	if err := s.categoryRepo.DeactivateCategory(ctx, name, time.Now(), requester.UserID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to deactivate category",
				slog.String("category", name))
		}
		return err
	}

	s.LogInfo(ctx, "Category deactivated",
		slog.String("category", name),
		slog.String("deactivated_by", requester.UserID))
	return nil
}
