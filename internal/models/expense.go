package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense is the persistence model for the expenses table.
// Department is the denormalized snapshot of the owner's department at
// creation time; Version backs the optimistic concurrency check on reviews.
type Expense struct {
	ExpenseID    string          `db:"expense_id"`
	UserID       string          `db:"user_id"`
	Title        string          `db:"title"`
	Description  string          `db:"description"`
	Amount       decimal.Decimal `db:"amount"`
	CurrencyCode string          `db:"currency_code"`
	Category     string          `db:"category"`
	Status       string          `db:"status"`
	ReceiptPath  *string         `db:"receipt_path"`
	Department   string          `db:"department"`
	SubmittedAt  *time.Time      `db:"submitted_at"`
	ReviewedAt   *time.Time      `db:"reviewed_at"`
	ReviewedBy   *string         `db:"reviewed_by"`
	Version      int64           `db:"version"`
	AuditFields
}

// ReviewComment is the persistence model for the expense_comments table.
type ReviewComment struct {
	CommentID string    `db:"comment_id"`
	ExpenseID string    `db:"expense_id"`
	AuthorID  string    `db:"author_id"`
	Body      string    `db:"body"`
	CreatedAt time.Time `db:"created_at"`
}
