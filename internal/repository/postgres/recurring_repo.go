package postgres

import (
	"context"
	"fmt"

	"github.com/bolsoapp/bolso-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RecurringExpenseRepository implements domain.RecurringExpenseRepository using PostgreSQL
type RecurringExpenseRepository struct {
	pool *pgxpool.Pool
}

// NewRecurringExpenseRepository creates a new RecurringExpenseRepository
func NewRecurringExpenseRepository(pool *pgxpool.Pool) *RecurringExpenseRepository {
	return &RecurringExpenseRepository{pool: pool}
}

const recurringColumns = `
	id, description, category, amount, kind, frequency, due_day,
	installments, current_installment, start_date, end_date, status,
	auto_debit, created_at, updated_at`

func scanRecurringExpense(row pgx.Row) (*domain.RecurringExpense, error) {
	var e domain.RecurringExpense
	var amount pgtype.Numeric

	err := row.Scan(
		&e.ID, &e.Description, &e.Category, &amount, &e.Kind, &e.Frequency, &e.DueDay,
		&e.Installments, &e.CurrentInstallment, &e.StartDate, &e.EndDate, &e.Status,
		&e.AutoDebit, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	e.Amount = pgNumericToDecimal(amount)
	return &e, nil
}

// Create creates a new recurring expense
func (r *RecurringExpenseRepository) Create(expense *domain.RecurringExpense) (*domain.RecurringExpense, error) {
	ctx := context.Background()
	amount, err := decimalToPgNumeric(expense.Amount)
	if err != nil {
		return nil, fmt.Errorf("invalid amount: %w", err)
	}

	row := r.pool.QueryRow(ctx, `
		INSERT INTO recurring_expenses (
			id, description, category, amount, kind, frequency, due_day,
			installments, current_installment, start_date, end_date, status, auto_debit
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING `+recurringColumns,
		expense.ID, expense.Description, expense.Category, amount, expense.Kind,
		expense.Frequency, expense.DueDay, expense.Installments, expense.CurrentInstallment,
		expense.StartDate, expense.EndDate, expense.Status, expense.AutoDebit,
	)

	return scanRecurringExpense(row)
}

// GetByID retrieves a recurring expense by its ID
func (r *RecurringExpenseRepository) GetByID(id uuid.UUID) (*domain.RecurringExpense, error) {
	ctx := context.Background()

	row := r.pool.QueryRow(ctx, `
		SELECT `+recurringColumns+`
		FROM recurring_expenses
		WHERE id = $1`, id)

	expense, err := scanRecurringExpense(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrRecurringNotFound
		}
		return nil, err
	}
	return expense, nil
}

// List retrieves recurring expenses, optionally restricted to one kind
func (r *RecurringExpenseRepository) List(kind *domain.ExpenseKind) ([]*domain.RecurringExpense, error) {
	ctx := context.Background()

	query := `
		SELECT ` + recurringColumns + `
		FROM recurring_expenses`
	args := []any{}
	if kind != nil {
		query += ` WHERE kind = $1`
		args = append(args, *kind)
	}
	query += ` ORDER BY created_at, id`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*domain.RecurringExpense
	for rows.Next() {
		expense, err := scanRecurringExpense(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, expense)
	}
	return result, rows.Err()
}

// Update replaces a recurring expense wholesale
func (r *RecurringExpenseRepository) Update(expense *domain.RecurringExpense) (*domain.RecurringExpense, error) {
	ctx := context.Background()
	amount, err := decimalToPgNumeric(expense.Amount)
	if err != nil {
		return nil, fmt.Errorf("invalid amount: %w", err)
	}

	row := r.pool.QueryRow(ctx, `
		UPDATE recurring_expenses
		SET description = $2, category = $3, amount = $4, kind = $5,
			frequency = $6, due_day = $7, installments = $8,
			current_installment = $9, start_date = $10, end_date = $11,
			status = $12, auto_debit = $13, updated_at = now()
		WHERE id = $1
		RETURNING `+recurringColumns,
		expense.ID, expense.Description, expense.Category, amount, expense.Kind,
		expense.Frequency, expense.DueDay, expense.Installments, expense.CurrentInstallment,
		expense.StartDate, expense.EndDate, expense.Status, expense.AutoDebit,
	)

	updated, err := scanRecurringExpense(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrRecurringNotFound
		}
		return nil, err
	}
	return updated, nil
}

// Delete removes a recurring expense and its payment history
func (r *RecurringExpenseRepository) Delete(id uuid.UUID) error {
	ctx := context.Background()

	tag, err := r.pool.Exec(ctx, `DELETE FROM recurring_expenses WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrRecurringNotFound
	}
	return nil
}
