package service

import (
	"errors"
	"testing"
	"time"

	"github.com/bolsoapp/bolso-backend/internal/domain"
	"github.com/shopspring/decimal"
)

func TestExpandTransactionPlan_NoPlan(t *testing.T) {
	transaction := paidTransaction("Dinner", 85.50, domain.TransactionTypeExpense,
		time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC))

	expansion, err := ExpandTransactionPlan(transaction)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if !expansion.PeriodAmount.Equal(decimal.NewFromFloat(85.50)) {
		t.Errorf("Expected period amount 85.50, got %s", expansion.PeriodAmount.String())
	}
	if !expansion.TotalAmount.Equal(decimal.NewFromFloat(85.50)) {
		t.Errorf("Expected total 85.50, got %s", expansion.TotalAmount.String())
	}
	if expansion.EndDate != nil {
		t.Errorf("Expected no end date, got %v", expansion.EndDate)
	}
}

func TestExpandTransactionPlan_TotalSplitAcrossInstallments(t *testing.T) {
	transaction := paidTransaction("New laptop", 1200.00, domain.TransactionTypeExpense,
		time.Date(2025, time.January, 15, 0, 0, 0, 0, time.UTC))
	transaction.Plan = &domain.PaymentPlan{
		Kind:          domain.PlanInstallment,
		TotalPeriods:  12,
		CurrentPeriod: 1,
		DueDay:        15,
		ValueBasis:    domain.BasisTotal,
	}

	expansion, err := ExpandTransactionPlan(transaction)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if !expansion.PeriodAmount.Equal(decimal.NewFromFloat(100.00)) {
		t.Errorf("Expected period amount 100.00, got %s", expansion.PeriodAmount.String())
	}
	if !expansion.FirstPeriodAmount.Equal(decimal.NewFromFloat(100.00)) {
		t.Errorf("Expected first period 100.00, got %s", expansion.FirstPeriodAmount.String())
	}
	if !expansion.TotalAmount.Equal(decimal.NewFromFloat(1200.00)) {
		t.Errorf("Expected total 1200.00, got %s", expansion.TotalAmount.String())
	}

	expectedEnd := time.Date(2026, time.January, 15, 0, 0, 0, 0, time.UTC)
	if expansion.EndDate == nil || !expansion.EndDate.Equal(expectedEnd) {
		t.Errorf("Expected end date %v, got %v", expectedEnd, expansion.EndDate)
	}
}

func TestExpandTransactionPlan_RemainderGoesToFirstPeriod(t *testing.T) {
	transaction := paidTransaction("Sofa", 100.00, domain.TransactionTypeExpense,
		time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC))
	transaction.Plan = &domain.PaymentPlan{
		Kind:          domain.PlanInstallment,
		TotalPeriods:  3,
		CurrentPeriod: 1,
		DueDay:        1,
		ValueBasis:    domain.BasisTotal,
	}

	expansion, err := ExpandTransactionPlan(transaction)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if !expansion.FirstPeriodAmount.Equal(decimal.NewFromFloat(33.34)) {
		t.Errorf("Expected first period 33.34, got %s", expansion.FirstPeriodAmount.String())
	}
	if !expansion.PeriodAmount.Equal(decimal.NewFromFloat(33.33)) {
		t.Errorf("Expected later periods 33.33, got %s", expansion.PeriodAmount.String())
	}

	reconstructed := expansion.FirstPeriodAmount.Add(expansion.PeriodAmount.Mul(decimal.NewFromInt(2)))
	if !reconstructed.Equal(expansion.TotalAmount) {
		t.Errorf("Expected periods to reconstruct the total, got %s vs %s",
			reconstructed.String(), expansion.TotalAmount.String())
	}
}

func TestExpandTransactionPlan_PerPeriodBasis(t *testing.T) {
	transaction := paidTransaction("Gym", 50.00, domain.TransactionTypeExpense,
		time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC))
	transaction.Plan = &domain.PaymentPlan{
		Kind:          domain.PlanRecurring,
		TotalPeriods:  6,
		CurrentPeriod: 1,
		DueDay:        5,
		ValueBasis:    domain.BasisPerPeriod,
	}

	expansion, err := ExpandTransactionPlan(transaction)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if !expansion.PeriodAmount.Equal(decimal.NewFromFloat(50.00)) {
		t.Errorf("Expected period amount 50.00, got %s", expansion.PeriodAmount.String())
	}
	if !expansion.TotalAmount.Equal(decimal.NewFromFloat(300.00)) {
		t.Errorf("Expected total 300.00, got %s", expansion.TotalAmount.String())
	}
}

func TestExpandTransactionPlan_Idempotent(t *testing.T) {
	transaction := paidTransaction("TV", 999.99, domain.TransactionTypeExpense,
		time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC))
	transaction.Plan = &domain.PaymentPlan{
		Kind:          domain.PlanInstallment,
		TotalPeriods:  7,
		CurrentPeriod: 1,
		DueDay:        10,
		ValueBasis:    domain.BasisTotal,
	}

	first, err := ExpandTransactionPlan(transaction)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	second, err := ExpandTransactionPlan(transaction)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if !first.FirstPeriodAmount.Equal(second.FirstPeriodAmount) ||
		!first.PeriodAmount.Equal(second.PeriodAmount) ||
		!first.TotalAmount.Equal(second.TotalAmount) {
		t.Errorf("Expected repeated expansion to yield identical amounts")
	}
}

func TestExpandTransactionPlan_InvalidPeriodCount(t *testing.T) {
	transaction := paidTransaction("Bad plan", 100.00, domain.TransactionTypeExpense,
		time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC))
	transaction.Plan = &domain.PaymentPlan{
		Kind:          domain.PlanInstallment,
		TotalPeriods:  1,
		CurrentPeriod: 1,
		DueDay:        10,
		ValueBasis:    domain.BasisTotal,
	}

	if _, err := ExpandTransactionPlan(transaction); !errors.Is(err, domain.ErrInvalidPeriodCount) {
		t.Errorf("Expected ErrInvalidPeriodCount, got %v", err)
	}
}

func TestExpandRecurringExpense_FixedBill(t *testing.T) {
	expense := &domain.RecurringExpense{
		Description: "Rent",
		Amount:      decimal.NewFromFloat(1500.00),
		Kind:        domain.ExpenseKindFixed,
		Frequency:   domain.FrequencyMonthly,
	}

	expansion, err := ExpandRecurringExpense(expense, domain.BasisPerPeriod)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if !expansion.PeriodAmount.Equal(decimal.NewFromFloat(1500.00)) {
		t.Errorf("Expected period amount 1500.00, got %s", expansion.PeriodAmount.String())
	}
	if expansion.EndDate != nil {
		t.Errorf("Expected no end date for a fixed bill")
	}
}

func TestExpandRecurringExpense_InstallmentRequiresCount(t *testing.T) {
	expense := &domain.RecurringExpense{
		Description: "Card plan",
		Amount:      decimal.NewFromFloat(600.00),
		Kind:        domain.ExpenseKindInstallment,
		Frequency:   domain.FrequencyMonthly,
		StartDate:   time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC),
	}

	if _, err := ExpandRecurringExpense(expense, domain.BasisTotal); !errors.Is(err, domain.ErrInvalidPeriodCount) {
		t.Errorf("Expected ErrInvalidPeriodCount, got %v", err)
	}
}

func TestMonthlyEquivalent_Normalization(t *testing.T) {
	annual := &domain.RecurringExpense{
		Amount:    decimal.NewFromFloat(600.00),
		Frequency: domain.FrequencyAnnual,
	}
	if monthly := MonthlyEquivalent(annual); !monthly.Equal(decimal.NewFromFloat(50.00)) {
		t.Errorf("Expected annual 600 to normalize to 50.00, got %s", monthly.String())
	}

	semiannual := &domain.RecurringExpense{
		Amount:    decimal.NewFromFloat(300.00),
		Frequency: domain.FrequencySemiannual,
	}
	if monthly := MonthlyEquivalent(semiannual); !monthly.Equal(decimal.NewFromFloat(50.00)) {
		t.Errorf("Expected semiannual 300 to normalize to 50.00, got %s", monthly.String())
	}

	monthlyExpense := &domain.RecurringExpense{
		Amount:    decimal.NewFromFloat(50.00),
		Frequency: domain.FrequencyMonthly,
	}
	if monthly := MonthlyEquivalent(monthlyExpense); !monthly.Equal(decimal.NewFromFloat(50.00)) {
		t.Errorf("Expected monthly amount unchanged, got %s", monthly.String())
	}
}

func TestNextDueDate_ClampsToMonthLength(t *testing.T) {
	expense := &domain.RecurringExpense{DueDay: 31}

	due := NextDueDate(expense, 2025, time.February)
	if due.Day() != 28 {
		t.Errorf("Expected due day clamped to 28, got %d", due.Day())
	}

	due = NextDueDate(expense, 2024, time.February)
	if due.Day() != 29 {
		t.Errorf("Expected due day clamped to 29 in a leap year, got %d", due.Day())
	}

	due = NextDueDate(expense, 2025, time.March)
	if due.Day() != 31 {
		t.Errorf("Expected due day 31, got %d", due.Day())
	}
}
