package dto

import "github.com/Navenbabu/Corporate-Expense-Tracker/internal/core/domain"

// CreateCategoryRequest defines the payload for creating a category.
type CreateCategoryRequest struct {
	Name        string `json:"name" binding:"required,alphanum,lowercase"`
	DisplayName string `json:"displayName" binding:"required"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// UpdateCategoryRequest defines mutable category fields.
type UpdateCategoryRequest struct {
	DisplayName *string `json:"displayName"`
	Description *string `json:"description"`
	Icon        *string `json:"icon"`
	IsActive    *bool   `json:"isActive"`
}

// ListCategoriesParams defines query parameters for listing categories.
type ListCategoriesParams struct {
	IncludeInactive bool `form:"includeInactive,default=false"`
}

// CategoryResponse is the outward representation of a category.
type CategoryResponse struct {
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
	Description string `json:"description,omitempty"`
	Icon        string `json:"icon,omitempty"`
	IsActive    bool   `json:"isActive"`
}

// ListCategoriesResponse wraps the category list.
type ListCategoriesResponse struct {
	Categories []CategoryResponse `json:"categories"`
}

// ToCategoryResponse converts a domain.Category to its response DTO.
func ToCategoryResponse(c *domain.Category) CategoryResponse {
	return CategoryResponse{
		Name:        c.Name,
		DisplayName: c.DisplayName,
		Description: c.Description,
		Icon:        c.Icon,
		IsActive:    c.IsActive,
	}
}

// ToListCategoriesResponse converts a slice of domain categories.
func ToListCategoriesResponse(categories []domain.Category) ListCategoriesResponse {
	responses := make([]CategoryResponse, len(categories))
	for i := range categories {
		responses[i] = ToCategoryResponse(&categories[i])
	}
	return ListCategoriesResponse{Categories: responses}
}
