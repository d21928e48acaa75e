package models

// Category is the persistence model for the categories table.
type Category struct {
	Name        string `db:"name"`
	DisplayName string `db:"display_name"`
	Description string `db:"description"`
	Icon        string `db:"icon"`
	IsActive    bool   `db:"is_active"`
	AuditFields
}
