package service

import (
	"sort"
	"time"

	"github.com/bolsoapp/bolso-backend/internal/domain"
	"github.com/bolsoapp/bolso-backend/internal/money"
	"github.com/bolsoapp/bolso-backend/internal/util"
	"github.com/shopspring/decimal"
)

// AggregationService computes totals over transaction snapshots. All methods
// are pure: they never mutate their inputs and hold no state, so concurrent
// callers need no locking.
type AggregationService struct{}

// NewAggregationService creates a new AggregationService
func NewAggregationService() *AggregationService {
	return &AggregationService{}
}

// malformedReason reports why a record cannot be aggregated, or "" if it can.
func malformedReason(t *domain.Transaction) string {
	switch {
	case t.Description == "":
		return "missing description"
	case t.Category == "":
		return "missing category"
	case t.Date.IsZero():
		return "missing date"
	case !t.Type.Valid():
		return "invalid type"
	case !t.Status.Valid():
		return "invalid status"
	case !t.Amount.IsPositive():
		return "amount not positive"
	default:
		return ""
	}
}

// Summarize computes balance and income/expense totals over paid
// transactions only. Malformed records are skipped and reported rather than
// aborting the batch, so a dashboard stays usable with one bad record.
func (s *AggregationService) Summarize(transactions []*domain.Transaction) *domain.TransactionSummary {
	var incomeCents, expenseCents int64
	var skipped []domain.SkippedRecord

	for _, t := range transactions {
		if reason := malformedReason(t); reason != "" {
			skipped = append(skipped, domain.SkippedRecord{ID: t.ID, Reason: reason})
			continue
		}
		if t.Status != domain.StatusPaid {
			continue
		}
		switch t.Type {
		case domain.TransactionTypeIncome:
			incomeCents += money.Cents(t.Amount)
		case domain.TransactionTypeExpense:
			expenseCents += money.Cents(t.Amount)
		}
	}

	return &domain.TransactionSummary{
		Balance:      money.FromCents(incomeCents - expenseCents),
		TotalIncome:  money.FromCents(incomeCents),
		TotalExpense: money.FromCents(expenseCents),
		Skipped:      skipped,
	}
}

// CategorySpend sums paid expenses for one category within one calendar
// month.
func (s *AggregationService) CategorySpend(transactions []*domain.Transaction, category string, year int, month time.Month) decimal.Decimal {
	var cents int64
	for _, t := range transactions {
		if malformedReason(t) != "" {
			continue
		}
		if t.Type != domain.TransactionTypeExpense || t.Status != domain.StatusPaid {
			continue
		}
		if t.Category != category || !util.SameMonth(t.Date, year, month) {
			continue
		}
		cents += money.Cents(t.Amount)
	}
	return money.FromCents(cents)
}

// monthSpend sums all paid expenses within one calendar month.
func (s *AggregationService) monthSpend(transactions []*domain.Transaction, year int, month time.Month) decimal.Decimal {
	var cents int64
	for _, t := range transactions {
		if malformedReason(t) != "" {
			continue
		}
		if t.Type != domain.TransactionTypeExpense || t.Status != domain.StatusPaid {
			continue
		}
		if !util.SameMonth(t.Date, year, month) {
			continue
		}
		cents += money.Cents(t.Amount)
	}
	return money.FromCents(cents)
}

// YearSpend sums all paid expenses within one calendar year.
func (s *AggregationService) YearSpend(transactions []*domain.Transaction, year int) decimal.Decimal {
	var cents int64
	for _, t := range transactions {
		if malformedReason(t) != "" {
			continue
		}
		if t.Type != domain.TransactionTypeExpense || t.Status != domain.StatusPaid {
			continue
		}
		if t.Date.Year() != year {
			continue
		}
		cents += money.Cents(t.Amount)
	}
	return money.FromCents(cents)
}

// MonthlyBreakdown returns exactly twelve entries, January first, regardless
// of input order. Each month carries the full monthly budget (the sum of all
// category budgets) against that month's paid expense total.
func (s *AggregationService) MonthlyBreakdown(transactions []*domain.Transaction, budgets []*domain.CategoryBudget, year int) []domain.MonthBreakdownEntry {
	var budgetCents int64
	for _, b := range budgets {
		budgetCents += money.Cents(b.Amount)
	}
	monthlyBudget := money.FromCents(budgetCents)

	entries := make([]domain.MonthBreakdownEntry, 12)
	for i := 0; i < 12; i++ {
		month := time.Month(i + 1)
		entries[i] = domain.MonthBreakdownEntry{
			Month:    i + 1,
			Label:    month.String(),
			Budgeted: monthlyBudget,
			Spent:    s.monthSpend(transactions, year, month),
		}
	}
	return entries
}

// RecentTransactions returns up to n transactions sorted by date descending.
// Ties keep the original insertion order; the input slice is left untouched.
func (s *AggregationService) RecentTransactions(transactions []*domain.Transaction, n int) []*domain.Transaction {
	if n <= 0 {
		return []*domain.Transaction{}
	}

	sorted := make([]*domain.Transaction, len(transactions))
	copy(sorted, transactions)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.After(sorted[j].Date)
	})

	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}
