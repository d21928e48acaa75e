package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Navenbabu/Corporate-Expense-Tracker/internal/apperrors"
	"github.com/Navenbabu/Corporate-Expense-Tracker/internal/core/domain"
	portsrepo "github.com/Navenbabu/Corporate-Expense-Tracker/internal/core/ports/repositories"
	"github.com/Navenbabu/Corporate-Expense-Tracker/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxExpenseRepository struct {
	BaseRepository
}

func newPgxExpenseRepository(db *pgxpool.Pool) portsrepo.ExpenseRepository {
	return &PgxExpenseRepository{BaseRepository: BaseRepository{Pool: db}}
}

var _ portsrepo.ExpenseRepository = (*PgxExpenseRepository)(nil)

func toModelExpense(d domain.Expense) models.Expense {
	return models.Expense{
		ExpenseID:    d.ExpenseID,
		UserID:       d.UserID,
		Title:        d.Title,
		Description:  d.Description,
		Amount:       d.Amount,
		CurrencyCode: d.CurrencyCode,
		Category:     d.Category,
		Status:       string(d.Status),
		ReceiptPath:  d.ReceiptPath,
		Department:   d.Department,
		SubmittedAt:  d.SubmittedAt,
		ReviewedAt:   d.ReviewedAt,
		ReviewedBy:   d.ReviewedBy,
		Version:      d.Version,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			CreatedBy:     d.CreatedBy,
			LastUpdatedAt: d.LastUpdatedAt,
			LastUpdatedBy: d.LastUpdatedBy,
		},
	}
}

func toDomainExpense(m models.Expense) domain.Expense {
	return domain.Expense{
		ExpenseID:    m.ExpenseID,
		UserID:       m.UserID,
		Title:        m.Title,
		Description:  m.Description,
		Amount:       m.Amount,
		CurrencyCode: m.CurrencyCode,
		Category:     m.Category,
		Status:       domain.ExpenseStatus(m.Status),
		ReceiptPath:  m.ReceiptPath,
		Department:   m.Department,
		SubmittedAt:  m.SubmittedAt,
		ReviewedAt:   m.ReviewedAt,
		ReviewedBy:   m.ReviewedBy,
		Version:      m.Version,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

const expenseColumns = `expense_id, user_id, title, description, amount, currency_code, category, status, receipt_path, department, submitted_at, reviewed_at, reviewed_by, version, created_at, created_by, last_updated_at, last_updated_by`

func scanExpense(row pgx.Row) (*models.Expense, error) {
	var m models.Expense
	err := row.Scan(
		&m.ExpenseID,
		&m.UserID,
		&m.Title,
		&m.Description,
		&m.Amount,
		&m.CurrencyCode,
		&m.Category,
		&m.Status,
		&m.ReceiptPath,
		&m.Department,
		&m.SubmittedAt,
		&m.ReviewedAt,
		&m.ReviewedBy,
		&m.Version,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *PgxExpenseRepository) SaveExpense(ctx context.Context, expense domain.Expense) error {
	m := toModelExpense(expense)
	query := `
        INSERT INTO expenses (expense_id, user_id, title, description, amount, currency_code, category, status, receipt_path, department, submitted_at, reviewed_at, reviewed_by, version, created_at, created_by, last_updated_at, last_updated_by)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18);
    `
	_, err := r.Pool.Exec(ctx, query,
		m.ExpenseID,
		m.UserID,
		m.Title,
		m.Description,
		m.Amount,
		m.CurrencyCode,
		m.Category,
		m.Status,
		m.ReceiptPath,
		m.Department,
		m.SubmittedAt,
		m.ReviewedAt,
		m.ReviewedBy,
		m.Version,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save expense: %w", err)
	}
	return nil
}

func (r *PgxExpenseRepository) FindExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error) {
	query := `SELECT ` + expenseColumns + ` FROM expenses WHERE expense_id = $1;`
	m, err := scanExpense(r.Pool.QueryRow(ctx, query, expenseID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find expense by ID %s: %w", expenseID, err)
	}
	e := toDomainExpense(*m)
	return &e, nil
}

func (r *PgxExpenseRepository) FindExpenses(ctx context.Context, scope domain.AccessScope, filter portsrepo.ExpenseFilter, limit, offset int) ([]domain.Expense, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	conds := []string{"TRUE"}
	args := []any{}
	conds, args = appendScopeConditions(conds, args, scope)
	conds, args = appendFilterConditions(conds, args, filter)

	args = append(args, limit)
	limitPos := len(args)
	args = append(args, offset)
	offsetPos := len(args)

	query := fmt.Sprintf(`SELECT `+expenseColumns+` FROM expenses WHERE %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d;`,
		strings.Join(conds, " AND "), limitPos, offsetPos)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query expenses: %w", err)
	}
	defer rows.Close()

	expenses := []domain.Expense{}
	for rows.Next() {
		m, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan expense row: %w", err)
		}
		expenses = append(expenses, toDomainExpense(*m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating expense rows: %w", rows.Err())
	}

	return expenses, nil
}

// UpdateExpense writes the full mutable column set guarded by the version
// check. The version bump and the guard live in the same statement, so a
// concurrent writer that got there first makes this call affect zero rows.
func (r *PgxExpenseRepository) UpdateExpense(ctx context.Context, expense domain.Expense, expectedVersion int64) error {
	m := toModelExpense(expense)
	query := `
        UPDATE expenses
        SET title = $1, description = $2, amount = $3, currency_code = $4, category = $5,
            status = $6, receipt_path = $7, submitted_at = $8, reviewed_at = $9, reviewed_by = $10,
            version = version + 1, last_updated_at = $11, last_updated_by = $12
        WHERE expense_id = $13 AND version = $14;
    `
	cmdTag, err := r.Pool.Exec(ctx, query,
		m.Title,
		m.Description,
		m.Amount,
		m.CurrencyCode,
		m.Category,
		m.Status,
		m.ReceiptPath,
		m.SubmittedAt,
		m.ReviewedAt,
		m.ReviewedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		m.ExpenseID,
		expectedVersion,
	)
	if err != nil {
		return fmt.Errorf("failed to execute update expense query: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		// Distinguish a missing row from a lost version race.
		var exists bool
		if err := r.Pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM expenses WHERE expense_id = $1)`, m.ExpenseID).Scan(&exists); err != nil {
			return fmt.Errorf("failed to check expense existence: %w", err)
		}
		if !exists {
			return fmt.Errorf("expense %s not found: %w", m.ExpenseID, apperrors.ErrNotFound)
		}
		return fmt.Errorf("expense %s was modified concurrently: %w", m.ExpenseID, apperrors.ErrConflict)
	}
	return nil
}

func (r *PgxExpenseRepository) DeleteExpense(ctx context.Context, expenseID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM expense_comments WHERE expense_id = $1;`, expenseID); err != nil {
		return fmt.Errorf("failed to delete expense comments: %w", err)
	}

	cmdTag, err := tx.Exec(ctx, `DELETE FROM expenses WHERE expense_id = $1;`, expenseID)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("expense %s not found: %w", expenseID, apperrors.ErrNotFound)
	}

	return r.Commit(ctx, tx)
}

func (r *PgxExpenseRepository) SaveComment(ctx context.Context, comment domain.ReviewComment) error {
	query := `
        INSERT INTO expense_comments (comment_id, expense_id, author_id, body, created_at)
        VALUES ($1, $2, $3, $4, $5);
    `
	_, err := r.Pool.Exec(ctx, query,
		comment.CommentID,
		comment.ExpenseID,
		comment.AuthorID,
		comment.Body,
		comment.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save review comment: %w", err)
	}
	return nil
}

func (r *PgxExpenseRepository) FindCommentsByExpenseID(ctx context.Context, expenseID string) ([]domain.ReviewComment, error) {
	query := `
        SELECT comment_id, expense_id, author_id, body, created_at
        FROM expense_comments
        WHERE expense_id = $1
        ORDER BY created_at ASC;
    `
	rows, err := r.Pool.Query(ctx, query, expenseID)
	if err != nil {
		return nil, fmt.Errorf("failed to query review comments: %w", err)
	}
	defer rows.Close()

	comments := []domain.ReviewComment{}
	for rows.Next() {
		var c domain.ReviewComment
		if err := rows.Scan(&c.CommentID, &c.ExpenseID, &c.AuthorID, &c.Body, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan comment row: %w", err)
		}
		comments = append(comments, c)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating comment rows: %w", rows.Err())
	}

	return comments, nil
}
