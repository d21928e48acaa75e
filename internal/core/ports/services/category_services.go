package services

import (
	"context"

	"github.com/Navenbabu/Corporate-Expense-Tracker/internal/core/domain"
	"github.com/Navenbabu/Corporate-Expense-Tracker/internal/dto"
)

// CategorySvcFacade defines operations on the category registry.
// Reads are open to any authenticated user; mutations are admin only.
type CategorySvcFacade interface {
	CreateCategory(ctx context.Context, requester *domain.User, req dto.CreateCategoryRequest) (*domain.Category, error)
	GetCategoryByName(ctx context.Context, name string) (*domain.Category, error)
	ListCategories(ctx context.Context, includeInactive bool) ([]domain.Category, error)
	UpdateCategory(ctx context.Context, requester *domain.User, name string, req dto.UpdateCategoryRequest) (*domain.Category, error)

	// DeactivateCategory soft-deletes; rows are never removed so historical
	// expenses keep a valid reference.
	DeactivateCategory(ctx context.Context, requester *domain.User, name string) error
}
