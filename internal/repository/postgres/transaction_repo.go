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

// TransactionRepository implements domain.TransactionRepository using PostgreSQL
type TransactionRepository struct {
	pool *pgxpool.Pool
}

// NewTransactionRepository creates a new TransactionRepository
func NewTransactionRepository(pool *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{pool: pool}
}

const transactionColumns = `
	id, description, category, amount, date, type, status,
	plan_kind, plan_total_periods, plan_current_period, plan_due_day,
	plan_auto_debit, plan_value_basis, created_at, updated_at`

func scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	var t domain.Transaction
	var amount pgtype.Numeric
	var planKind, planValueBasis *string
	var planTotalPeriods, planCurrentPeriod, planDueDay *int
	var planAutoDebit *bool

	err := row.Scan(
		&t.ID, &t.Description, &t.Category, &amount, &t.Date, &t.Type, &t.Status,
		&planKind, &planTotalPeriods, &planCurrentPeriod, &planDueDay,
		&planAutoDebit, &planValueBasis, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	t.Amount = pgNumericToDecimal(amount)

	if planKind != nil {
		t.Plan = &domain.PaymentPlan{
			Kind:       domain.PlanKind(*planKind),
			ValueBasis: domain.ValueBasis(*planValueBasis),
		}
		if planTotalPeriods != nil {
			t.Plan.TotalPeriods = *planTotalPeriods
		}
		if planCurrentPeriod != nil {
			t.Plan.CurrentPeriod = *planCurrentPeriod
		}
		if planDueDay != nil {
			t.Plan.DueDay = *planDueDay
		}
		if planAutoDebit != nil {
			t.Plan.AutoDebit = *planAutoDebit
		}
	}

	return &t, nil
}

func planColumns(t *domain.Transaction) (kind, basis *string, totalPeriods, currentPeriod, dueDay *int, autoDebit *bool) {
	if t.Plan == nil {
		return nil, nil, nil, nil, nil, nil
	}
	k := string(t.Plan.Kind)
	b := string(t.Plan.ValueBasis)
	return &k, &b, &t.Plan.TotalPeriods, &t.Plan.CurrentPeriod, &t.Plan.DueDay, &t.Plan.AutoDebit
}

// Create creates a new transaction
func (r *TransactionRepository) Create(transaction *domain.Transaction) (*domain.Transaction, error) {
	ctx := context.Background()
	amount, err := decimalToPgNumeric(transaction.Amount)
	if err != nil {
		return nil, fmt.Errorf("invalid amount: %w", err)
	}

	kind, basis, totalPeriods, currentPeriod, dueDay, autoDebit := planColumns(transaction)

	row := r.pool.QueryRow(ctx, `
		INSERT INTO transactions (
			id, description, category, amount, date, type, status,
			plan_kind, plan_total_periods, plan_current_period, plan_due_day,
			plan_auto_debit, plan_value_basis
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING `+transactionColumns,
		transaction.ID, transaction.Description, transaction.Category, amount,
		transaction.Date, transaction.Type, transaction.Status,
		kind, totalPeriods, currentPeriod, dueDay, autoDebit, basis,
	)

	return scanTransaction(row)
}

// GetByID retrieves a transaction by its ID
func (r *TransactionRepository) GetByID(id uuid.UUID) (*domain.Transaction, error) {
	ctx := context.Background()

	row := r.pool.QueryRow(ctx, `
		SELECT `+transactionColumns+`
		FROM transactions
		WHERE id = $1`, id)

	transaction, err := scanTransaction(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrTransactionNotFound
		}
		return nil, err
	}
	return transaction, nil
}

// List retrieves all transactions in insertion order
func (r *TransactionRepository) List() ([]*domain.Transaction, error) {
	ctx := context.Background()

	rows, err := r.pool.Query(ctx, `
		SELECT `+transactionColumns+`
		FROM transactions
		ORDER BY created_at, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*domain.Transaction
	for rows.Next() {
		transaction, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, transaction)
	}
	return result, rows.Err()
}

// Update replaces a transaction wholesale
func (r *TransactionRepository) Update(transaction *domain.Transaction) (*domain.Transaction, error) {
	ctx := context.Background()
	amount, err := decimalToPgNumeric(transaction.Amount)
	if err != nil {
		return nil, fmt.Errorf("invalid amount: %w", err)
	}

	kind, basis, totalPeriods, currentPeriod, dueDay, autoDebit := planColumns(transaction)

	row := r.pool.QueryRow(ctx, `
		UPDATE transactions
		SET description = $2, category = $3, amount = $4, date = $5,
			type = $6, status = $7,
			plan_kind = $8, plan_total_periods = $9, plan_current_period = $10,
			plan_due_day = $11, plan_auto_debit = $12, plan_value_basis = $13,
			updated_at = now()
		WHERE id = $1
		RETURNING `+transactionColumns,
		transaction.ID, transaction.Description, transaction.Category, amount,
		transaction.Date, transaction.Type, transaction.Status,
		kind, totalPeriods, currentPeriod, dueDay, autoDebit, basis,
	)

	updated, err := scanTransaction(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrTransactionNotFound
		}
		return nil, err
	}
	return updated, nil
}

// Delete removes a transaction
func (r *TransactionRepository) Delete(id uuid.UUID) error {
	ctx := context.Background()

	tag, err := r.pool.Exec(ctx, `DELETE FROM transactions WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTransactionNotFound
	}
	return nil
}
