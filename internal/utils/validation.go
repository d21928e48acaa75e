package utils

import (
	"fmt"

	"github.com/Navenbabu/Corporate-Expense-Tracker/internal/core/domain"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterCustomValidators registers domain-specific binding rules on gin's
// validator engine. Called once at startup.
func RegisterCustomValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected validator engine type %T", binding.Validator.Engine())
	}
	if err := v.RegisterValidation("userrole", func(fl validator.FieldLevel) bool {
		return domain.UserRole(fl.Field().String()).IsValid()
	}); err != nil {
		return fmt.Errorf("failed to register userrole validation: %w", err)
	}
	if err := v.RegisterValidation("expensestatus", func(fl validator.FieldLevel) bool {
		return domain.ExpenseStatus(fl.Field().String()).IsValid()
	}); err != nil {
		return fmt.Errorf("failed to register expensestatus validation: %w", err)
	}
	return nil
}
