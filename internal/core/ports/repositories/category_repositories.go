package repositories

import (
	"context"
	"time"

	"github.com/Navenbabu/Corporate-Expense-Tracker/internal/core/domain"
)

// CategoryRepository defines persistence operations for the category registry.
type CategoryRepository interface {
	// SaveCategory inserts a new category. Returns apperrors.ErrDuplicate when
	// the internal name is already taken.
	SaveCategory(ctx context.Context, category domain.Category) error

	// FindCategoryByName retrieves a category by its internal name.
	FindCategoryByName(ctx context.Context, name string) (*domain.Category, error)

	// FindCategories lists categories, optionally including deactivated ones.
	FindCategories(ctx context.Context, includeInactive bool) ([]domain.Category, error)

	// UpdateCategory persists mutable category fields.
	UpdateCategory(ctx context.Context, category domain.Category) error

	// DeactivateCategory flips is_active to false. Historical expenses keep
	// referencing the name, so rows are never removed.
	DeactivateCategory(ctx context.Context, name string, updatedAt time.Time, updatedBy string) error
}
