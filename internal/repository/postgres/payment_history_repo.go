package postgres

import (
	"context"

	"github.com/bolsoapp/bolso-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PaymentHistoryRepository implements domain.PaymentHistoryRepository using PostgreSQL
type PaymentHistoryRepository struct {
	pool *pgxpool.Pool
}

// NewPaymentHistoryRepository creates a new PaymentHistoryRepository
func NewPaymentHistoryRepository(pool *pgxpool.Pool) *PaymentHistoryRepository {
	return &PaymentHistoryRepository{pool: pool}
}

func scanPaymentHistoryEntry(row pgx.Row) (*domain.PaymentHistoryEntry, error) {
	var entry domain.PaymentHistoryEntry
	err := row.Scan(&entry.RecurringExpenseID, &entry.Period, &entry.Paid, &entry.PaidDate)
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// Upsert stores or replaces the entry for one (expense, period) pair
func (r *PaymentHistoryRepository) Upsert(entry *domain.PaymentHistoryEntry) (*domain.PaymentHistoryEntry, error) {
	ctx := context.Background()

	row := r.pool.QueryRow(ctx, `
		INSERT INTO payment_history (recurring_expense_id, period, paid, paid_date)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (recurring_expense_id, period)
		DO UPDATE SET paid = EXCLUDED.paid, paid_date = EXCLUDED.paid_date
		RETURNING recurring_expense_id, period, paid, paid_date`,
		entry.RecurringExpenseID, entry.Period, entry.Paid, entry.PaidDate,
	)

	return scanPaymentHistoryEntry(row)
}

// Get retrieves the entry for one (expense, period) pair
func (r *PaymentHistoryRepository) Get(recurringExpenseID uuid.UUID, period domain.PeriodKey) (*domain.PaymentHistoryEntry, error) {
	ctx := context.Background()

	row := r.pool.QueryRow(ctx, `
		SELECT recurring_expense_id, period, paid, paid_date
		FROM payment_history
		WHERE recurring_expense_id = $1 AND period = $2`,
		recurringExpenseID, period,
	)

	entry, err := scanPaymentHistoryEntry(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return entry, nil
}

// ListByExpense retrieves all entries for one recurring expense
func (r *PaymentHistoryRepository) ListByExpense(recurringExpenseID uuid.UUID) ([]*domain.PaymentHistoryEntry, error) {
	ctx := context.Background()

	rows, err := r.pool.Query(ctx, `
		SELECT recurring_expense_id, period, paid, paid_date
		FROM payment_history
		WHERE recurring_expense_id = $1
		ORDER BY period`, recurringExpenseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectPaymentHistory(rows)
}

// ListByPeriod retrieves all entries for one period
func (r *PaymentHistoryRepository) ListByPeriod(period domain.PeriodKey) ([]*domain.PaymentHistoryEntry, error) {
	ctx := context.Background()

	rows, err := r.pool.Query(ctx, `
		SELECT recurring_expense_id, period, paid, paid_date
		FROM payment_history
		WHERE period = $1
		ORDER BY recurring_expense_id`, period)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectPaymentHistory(rows)
}

func collectPaymentHistory(rows pgx.Rows) ([]*domain.PaymentHistoryEntry, error) {
	var result []*domain.PaymentHistoryEntry
	for rows.Next() {
		entry, err := scanPaymentHistoryEntry(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, entry)
	}
	return result, rows.Err()
}
