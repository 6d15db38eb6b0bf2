package service

import (
	"strings"
	"time"

	"github.com/bolsoapp/bolso-backend/internal/domain"
	"github.com/bolsoapp/bolso-backend/internal/money"
	"github.com/shopspring/decimal"
)

var (
	warningThreshold  = decimal.NewFromInt(80)
	exceededThreshold = decimal.NewFromInt(100)
)

// BudgetService reconciles paid spend against declared category budgets.
type BudgetService struct {
	budgetRepo  domain.CategoryBudgetRepository
	aggregation *AggregationService
}

// NewBudgetService creates a new BudgetService
func NewBudgetService(budgetRepo domain.CategoryBudgetRepository, aggregation *AggregationService) *BudgetService {
	return &BudgetService{
		budgetRepo:  budgetRepo,
		aggregation: aggregation,
	}
}

// ClassifyBudgetStatus derives the status for one category/period:
// >= 100% of budget is exceeded, >= 80% is a warning, below that on track.
// A zero budget with any spend is exceeded by convention; the percentage is
// never computed in that case so there is no division by zero.
func ClassifyBudgetStatus(spent, budgeted decimal.Decimal) domain.BudgetStatus {
	if !budgeted.IsPositive() {
		if spent.IsPositive() {
			return domain.BudgetExceeded
		}
		return domain.BudgetOnTrack
	}

	percentage := spent.Div(budgeted).Mul(exceededThreshold)
	switch {
	case percentage.GreaterThanOrEqual(exceededThreshold):
		return domain.BudgetExceeded
	case percentage.GreaterThanOrEqual(warningThreshold):
		return domain.BudgetWarning
	default:
		return domain.BudgetOnTrack
	}
}

// CategoryReport builds the monthly planning table: one line per declared
// budget, in declaration order, with spend recomputed from the transaction
// snapshot. Remaining is signed; negative means exceeded.
func (s *BudgetService) CategoryReport(transactions []*domain.Transaction, budgets []*domain.CategoryBudget, year int, month time.Month) []domain.CategoryBudgetLine {
	lines := make([]domain.CategoryBudgetLine, len(budgets))
	for i, b := range budgets {
		spent := s.aggregation.CategorySpend(transactions, b.Category, year, month)
		lines[i] = domain.CategoryBudgetLine{
			Category:  b.Category,
			Budgeted:  money.Round2(b.Amount),
			Spent:     spent,
			Remaining: money.Sub(b.Amount, spent),
			Status:    ClassifyBudgetStatus(spent, b.Amount),
		}
	}
	return lines
}

// AnnualReport reconciles a year: twelve months of the monthly budget sum
// against year-to-date paid expenses, plus the month-by-month breakdown.
func (s *BudgetService) AnnualReport(transactions []*domain.Transaction, budgets []*domain.CategoryBudget, year int) *domain.AnnualReport {
	var monthlyCents int64
	for _, b := range budgets {
		monthlyCents += money.Cents(b.Amount)
	}
	budgeted := money.FromCents(monthlyCents * 12)
	spent := s.aggregation.YearSpend(transactions, year)

	return &domain.AnnualReport{
		Year:      year,
		Budgeted:  budgeted,
		Spent:     spent,
		Remaining: money.Sub(budgeted, spent),
		Months:    s.aggregation.MonthlyBreakdown(transactions, budgets, year),
	}
}

// ListBudgets returns the declared category budgets.
func (s *BudgetService) ListBudgets() ([]*domain.CategoryBudget, error) {
	return s.budgetRepo.List()
}

// UpsertBudget creates or replaces the monthly ceiling for a category.
func (s *BudgetService) UpsertBudget(category string, amount decimal.Decimal) (*domain.CategoryBudget, error) {
	category = strings.TrimSpace(category)
	if category == "" {
		return nil, domain.ErrCategoryRequired
	}
	if amount.IsNegative() {
		return nil, domain.ErrInvalidAmount
	}

	return s.budgetRepo.Upsert(&domain.CategoryBudget{
		Category: category,
		Amount:   money.Round2(amount),
	})
}

// DeleteBudget removes a category's ceiling.
func (s *BudgetService) DeleteBudget(category string) error {
	return s.budgetRepo.Delete(category)
}
