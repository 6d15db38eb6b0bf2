package service

import (
	"github.com/bolsoapp/bolso-backend/internal/domain"
)

const recentTransactionCount = 5

// DashboardService composes the headline view: paid-only totals, recurring
// commitment totals, and the latest transactions.
type DashboardService struct {
	transactionRepo domain.TransactionRepository
	recurringRepo   domain.RecurringExpenseRepository
	aggregation     *AggregationService
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(
	transactionRepo domain.TransactionRepository,
	recurringRepo domain.RecurringExpenseRepository,
	aggregation *AggregationService,
) *DashboardService {
	return &DashboardService{
		transactionRepo: transactionRepo,
		recurringRepo:   recurringRepo,
		aggregation:     aggregation,
	}
}

// Summary builds the dashboard payload
func (s *DashboardService) Summary() (*domain.DashboardSummary, error) {
	transactions, err := s.transactionRepo.List()
	if err != nil {
		return nil, err
	}
	expenses, err := s.recurringRepo.List(nil)
	if err != nil {
		return nil, err
	}

	summary := s.aggregation.Summarize(transactions)

	return &domain.DashboardSummary{
		Balance:            summary.Balance,
		TotalIncome:        summary.TotalIncome,
		TotalExpense:       summary.TotalExpense,
		RecurringTotals:    Totals(expenses),
		RecentTransactions: s.aggregation.RecentTransactions(transactions, recentTransactionCount),
	}, nil
}
