package domain

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SkippedRecord reports a malformed record dropped during aggregation.
// A single bad record must not abort the rest of the batch.
type SkippedRecord struct {
	ID     uuid.UUID `json:"id"`
	Reason string    `json:"reason"`
}

// TransactionSummary holds the headline totals. Only paid transactions
// contribute; pending and scheduled ones appear in list views only.
type TransactionSummary struct {
	Balance      decimal.Decimal `json:"balance"`
	TotalIncome  decimal.Decimal `json:"totalIncome"`
	TotalExpense decimal.Decimal `json:"totalExpense"`
	Skipped      []SkippedRecord `json:"skipped,omitempty"`
}

// CategoryBudgetLine is one row of the monthly planning table.
type CategoryBudgetLine struct {
	Category  string          `json:"category"`
	Budgeted  decimal.Decimal `json:"budgeted"`
	Spent     decimal.Decimal `json:"spent"`
	Remaining decimal.Decimal `json:"remaining"`
	Status    BudgetStatus    `json:"status"`
}

// MonthBreakdownEntry is one month of the annual view, January first.
type MonthBreakdownEntry struct {
	Month    int             `json:"month"`
	Label    string          `json:"label"`
	Budgeted decimal.Decimal `json:"budgeted"`
	Spent    decimal.Decimal `json:"spent"`
}

// AnnualReport reconciles the year against twelve months of budget. No
// per-category breakdown at annual granularity.
type AnnualReport struct {
	Year      int                   `json:"year"`
	Budgeted  decimal.Decimal       `json:"budgeted"`
	Spent     decimal.Decimal       `json:"spent"`
	Remaining decimal.Decimal       `json:"remaining"`
	Months    []MonthBreakdownEntry `json:"months"`
}

// DashboardSummary contains the main dashboard metrics.
type DashboardSummary struct {
	Balance            decimal.Decimal  `json:"balance"`
	TotalIncome        decimal.Decimal  `json:"totalIncome"`
	TotalExpense       decimal.Decimal  `json:"totalExpense"`
	RecurringTotals    *RecurringTotals `json:"recurringTotals"`
	RecentTransactions []*Transaction   `json:"recentTransactions"`
}
