package service

import (
	"testing"
	"time"

	"github.com/bolsoapp/bolso-backend/internal/domain"
	"github.com/bolsoapp/bolso-backend/internal/testutil"
	"github.com/shopspring/decimal"
)

func TestDashboardSummary_ComposesAllSections(t *testing.T) {
	transactionRepo := testutil.NewMockTransactionRepository()
	recurringRepo := testutil.NewMockRecurringExpenseRepository()
	dashboardService := NewDashboardService(transactionRepo, recurringRepo, NewAggregationService())

	base := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 7; i++ {
		transactionRepo.AddTransaction(paidTransaction("Expense", 10.00, domain.TransactionTypeExpense, base.AddDate(0, 0, i)))
	}
	transactionRepo.AddTransaction(paidTransaction("Salary", 1000.00, domain.TransactionTypeIncome, base))

	expense := activeExpense()
	recurringRepo.AddExpense(expense)

	summary, err := dashboardService.Summary()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if !summary.Balance.Equal(decimal.NewFromFloat(930.00)) {
		t.Errorf("Expected balance 930.00, got %s", summary.Balance.String())
	}
	if !summary.TotalIncome.Equal(decimal.NewFromFloat(1000.00)) {
		t.Errorf("Expected income 1000.00, got %s", summary.TotalIncome.String())
	}
	if !summary.TotalExpense.Equal(decimal.NewFromFloat(70.00)) {
		t.Errorf("Expected expense 70.00, got %s", summary.TotalExpense.String())
	}
	if summary.RecurringTotals == nil || !summary.RecurringTotals.MonthlyCommitment.Equal(decimal.NewFromFloat(80.00)) {
		t.Errorf("Expected monthly commitment 80.00")
	}
	if len(summary.RecentTransactions) != 5 {
		t.Fatalf("Expected 5 recent transactions, got %d", len(summary.RecentTransactions))
	}
	if summary.RecentTransactions[0].Date.Before(summary.RecentTransactions[4].Date) {
		t.Errorf("Expected recent transactions sorted newest first")
	}
}

func TestDashboardSummary_EmptyState(t *testing.T) {
	transactionRepo := testutil.NewMockTransactionRepository()
	recurringRepo := testutil.NewMockRecurringExpenseRepository()
	dashboardService := NewDashboardService(transactionRepo, recurringRepo, NewAggregationService())

	summary, err := dashboardService.Summary()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if !summary.Balance.Equal(decimal.Zero) {
		t.Errorf("Expected zero balance, got %s", summary.Balance.String())
	}
	if len(summary.RecentTransactions) != 0 {
		t.Errorf("Expected no recent transactions, got %d", len(summary.RecentTransactions))
	}
}
