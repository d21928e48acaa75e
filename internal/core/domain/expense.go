package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExpenseStatus defines the lifecycle states of an expense claim.
type ExpenseStatus string

const (
	StatusDraft    ExpenseStatus = "draft"
	StatusPending  ExpenseStatus = "pending"
	StatusApproved ExpenseStatus = "approved"
	StatusRejected ExpenseStatus = "rejected"
	StatusPaid     ExpenseStatus = "paid"
)

// IsValid reports whether s is one of the known statuses.
func (s ExpenseStatus) IsValid() bool {
	switch s {
	case StatusDraft, StatusPending, StatusApproved, StatusRejected, StatusPaid:
		return true
	}
	return false
}

// CanTransitionTo reports whether the status machine permits moving from s to
// target. The machine only moves forward: draft -> pending -> approved/rejected,
// and approved -> paid.
func (s ExpenseStatus) CanTransitionTo(target ExpenseStatus) bool {
	switch s {
	case StatusDraft:
		return target == StatusPending
	case StatusPending:
		return target == StatusApproved || target == StatusRejected
	case StatusApproved:
		return target == StatusPaid
	}
	return false
}

// Expense represents a single expense claim.
// Department is a snapshot of the owner's department taken at creation time and
// intentionally never updated afterwards, so historical scoping survives later
// department transfers.
type Expense struct {
	ExpenseID    string          `json:"expenseID"`
	UserID       string          `json:"userID"`
	Title        string          `json:"title"`
	Description  string          `json:"description"`
	Amount       decimal.Decimal `json:"amount"`
	CurrencyCode string          `json:"currencyCode"`
	Category     string          `json:"category"`
	Status       ExpenseStatus   `json:"status"`
	ReceiptPath  *string         `json:"receiptPath,omitempty"`
	Department   string          `json:"department"`
	SubmittedAt  *time.Time      `json:"submittedAt,omitempty"`
	ReviewedAt   *time.Time      `json:"reviewedAt,omitempty"`
	ReviewedBy   *string         `json:"reviewedBy,omitempty"`
	Version      int64           `json:"version"`
	AuditFields
}

// IsOwnedBy reports whether the expense belongs to the given user.
func (e *Expense) IsOwnedBy(userID string) bool {
	return e.UserID == userID
}

// IsEditable reports whether content fields may still be mutated.
// Only drafts are editable; once submitted the owner loses write access.
func (e *Expense) IsEditable() bool {
	return e.Status == StatusDraft
}

// ReviewComment is an append-only comment attached to an expense during review.
type ReviewComment struct {
	CommentID string    `json:"commentID"`
	ExpenseID string    `json:"expenseID"`
	AuthorID  string    `json:"authorID"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"createdAt"`
}
