package postgres

import (
	"context"
	"fmt"

	"github.com/bolsoapp/bolso-backend/internal/domain"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

// CategoryBudgetRepository implements domain.CategoryBudgetRepository using PostgreSQL
type CategoryBudgetRepository struct {
	pool *pgxpool.Pool
}

// NewCategoryBudgetRepository creates a new CategoryBudgetRepository
func NewCategoryBudgetRepository(pool *pgxpool.Pool) *CategoryBudgetRepository {
	return &CategoryBudgetRepository{pool: pool}
}

// Upsert stores or replaces the monthly ceiling for a category
func (r *CategoryBudgetRepository) Upsert(budget *domain.CategoryBudget) (*domain.CategoryBudget, error) {
	ctx := context.Background()
	amount, err := decimalToPgNumeric(budget.Amount)
	if err != nil {
		return nil, fmt.Errorf("invalid amount: %w", err)
	}

	var stored domain.CategoryBudget
	var storedAmount pgtype.Numeric
	err = r.pool.QueryRow(ctx, `
		INSERT INTO category_budgets (category, amount)
		VALUES ($1, $2)
		ON CONFLICT (category)
		DO UPDATE SET amount = EXCLUDED.amount, updated_at = now()
		RETURNING category, amount`,
		budget.Category, amount,
	).Scan(&stored.Category, &storedAmount)
	if err != nil {
		return nil, err
	}
	stored.Amount = pgNumericToDecimal(storedAmount)
	return &stored, nil
}

// List retrieves all category budgets in creation order
func (r *CategoryBudgetRepository) List() ([]*domain.CategoryBudget, error) {
	ctx := context.Background()

	rows, err := r.pool.Query(ctx, `
		SELECT category, amount
		FROM category_budgets
		ORDER BY created_at, category`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*domain.CategoryBudget
	for rows.Next() {
		var budget domain.CategoryBudget
		var amount pgtype.Numeric
		if err := rows.Scan(&budget.Category, &amount); err != nil {
			return nil, err
		}
		budget.Amount = pgNumericToDecimal(amount)
		result = append(result, &budget)
	}
	return result, rows.Err()
}

// Delete removes a category budget
func (r *CategoryBudgetRepository) Delete(category string) error {
	ctx := context.Background()

	tag, err := r.pool.Exec(ctx, `DELETE FROM category_budgets WHERE category = $1`, category)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
