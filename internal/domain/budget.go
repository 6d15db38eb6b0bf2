package domain

import "github.com/shopspring/decimal"

// BudgetStatus classifies spend against a budget ceiling.
type BudgetStatus string

const (
	BudgetOnTrack  BudgetStatus = "on_track"
	BudgetWarning  BudgetStatus = "warning"
	BudgetExceeded BudgetStatus = "exceeded"
)

// CategoryBudget is a monthly ceiling for one category. Annual views
// replicate it across twelve months; actuals are always recomputed from
// transactions, never stored.
type CategoryBudget struct {
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
}

type CategoryBudgetRepository interface {
	Upsert(budget *CategoryBudget) (*CategoryBudget, error)
	List() ([]*CategoryBudget, error)
	Delete(category string) error
}
