package domain

// Category is a reference entry in the expense category registry.
// Categories are soft-deactivated rather than deleted so historical expenses
// keep a valid name reference.
type Category struct {
	Name        string `json:"name"` // internal name, unique
	DisplayName string `json:"displayName"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	IsActive    bool   `json:"isActive"`
	AuditFields
}
