package service

import (
	"errors"
	"testing"
	"time"

	"github.com/bolsoapp/bolso-backend/internal/domain"
	"github.com/bolsoapp/bolso-backend/internal/testutil"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func activeExpense() *domain.RecurringExpense {
	return &domain.RecurringExpense{
		ID:          uuid.New(),
		Description: "Internet",
		Category:    "Utilities",
		Amount:      decimal.NewFromFloat(80.00),
		Kind:        domain.ExpenseKindFixed,
		Frequency:   domain.FrequencyMonthly,
		DueDay:      10,
		StartDate:   time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC),
		Status:      domain.LifecycleActive,
	}
}

func TestResolvePaymentStatus_AbsenceMeansPending(t *testing.T) {
	id := uuid.New()

	status := ResolvePaymentStatus(nil, id, domain.NewPeriodKey(2025, time.March))

	if status != domain.StatusPending {
		t.Errorf("Expected pending for unrecorded period, got %s", status)
	}
}

func TestResolvePaymentStatus_PaidEntry(t *testing.T) {
	id := uuid.New()
	period := domain.NewPeriodKey(2025, time.March)
	history := []*domain.PaymentHistoryEntry{
		{RecurringExpenseID: id, Period: period, Paid: true},
		{RecurringExpenseID: id, Period: domain.NewPeriodKey(2025, time.April), Paid: false},
	}

	if status := ResolvePaymentStatus(history, id, period); status != domain.StatusPaid {
		t.Errorf("Expected paid, got %s", status)
	}
	if status := ResolvePaymentStatus(history, id, domain.NewPeriodKey(2025, time.April)); status != domain.StatusPending {
		t.Errorf("Expected pending for unpaid entry, got %s", status)
	}
	if status := ResolvePaymentStatus(history, uuid.New(), period); status != domain.StatusPending {
		t.Errorf("Expected pending for another expense, got %s", status)
	}
}

func TestSetPaid_Success(t *testing.T) {
	historyRepo := testutil.NewMockPaymentHistoryRepository()
	recurringRepo := testutil.NewMockRecurringExpenseRepository()
	paymentService := NewPaymentStatusService(historyRepo, recurringRepo)

	expense := activeExpense()
	recurringRepo.AddExpense(expense)

	period := domain.NewPeriodKey(2025, time.March)
	entry, err := paymentService.SetPaid(expense.ID, period, true, nil)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if !entry.Paid {
		t.Errorf("Expected entry marked paid")
	}
	if entry.PaidDate == nil {
		t.Errorf("Expected paid date defaulted when omitted")
	}

	status, err := paymentService.StatusFor(expense.ID, period)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if status != domain.StatusPaid {
		t.Errorf("Expected paid, got %s", status)
	}
}

func TestSetPaid_UpsertNeverDuplicates(t *testing.T) {
	historyRepo := testutil.NewMockPaymentHistoryRepository()
	recurringRepo := testutil.NewMockRecurringExpenseRepository()
	paymentService := NewPaymentStatusService(historyRepo, recurringRepo)

	expense := activeExpense()
	recurringRepo.AddExpense(expense)

	period := domain.NewPeriodKey(2025, time.March)
	if _, err := paymentService.SetPaid(expense.ID, period, true, nil); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if _, err := paymentService.SetPaid(expense.ID, period, true, nil); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	history, err := paymentService.HistoryFor(expense.ID)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(history) != 1 {
		t.Errorf("Expected 1 entry after repeated marking, got %d", len(history))
	}
}

func TestSetPaid_RevertToPending(t *testing.T) {
	historyRepo := testutil.NewMockPaymentHistoryRepository()
	recurringRepo := testutil.NewMockRecurringExpenseRepository()
	paymentService := NewPaymentStatusService(historyRepo, recurringRepo)

	expense := activeExpense()
	recurringRepo.AddExpense(expense)

	period := domain.NewPeriodKey(2025, time.March)
	if _, err := paymentService.SetPaid(expense.ID, period, true, nil); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	entry, err := paymentService.SetPaid(expense.ID, period, false, nil)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if entry.Paid {
		t.Errorf("Expected entry reverted to unpaid")
	}
	if entry.PaidDate != nil {
		t.Errorf("Expected no paid date on an unpaid entry")
	}

	status, err := paymentService.StatusFor(expense.ID, period)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if status != domain.StatusPending {
		t.Errorf("Expected pending, got %s", status)
	}
}

func TestSetPaid_UnknownExpense(t *testing.T) {
	historyRepo := testutil.NewMockPaymentHistoryRepository()
	recurringRepo := testutil.NewMockRecurringExpenseRepository()
	paymentService := NewPaymentStatusService(historyRepo, recurringRepo)

	_, err := paymentService.SetPaid(uuid.New(), domain.NewPeriodKey(2025, time.March), true, nil)
	if !errors.Is(err, domain.ErrRecurringNotFound) {
		t.Errorf("Expected ErrRecurringNotFound, got %v", err)
	}
}

func TestSetPaid_RepositoryErrorNotMaskedAsNotFound(t *testing.T) {
	historyRepo := testutil.NewMockPaymentHistoryRepository()
	recurringRepo := testutil.NewMockRecurringExpenseRepository()
	recurringRepo.GetErr = errors.New("connection refused")
	paymentService := NewPaymentStatusService(historyRepo, recurringRepo)

	_, err := paymentService.SetPaid(uuid.New(), domain.NewPeriodKey(2025, time.March), true, nil)
	if err == nil {
		t.Fatal("Expected error")
	}
	if errors.Is(err, domain.ErrRecurringNotFound) {
		t.Errorf("Expected the repository error to propagate, got ErrRecurringNotFound")
	}
}

func TestSetPaid_InvalidPeriodKey(t *testing.T) {
	historyRepo := testutil.NewMockPaymentHistoryRepository()
	recurringRepo := testutil.NewMockRecurringExpenseRepository()
	paymentService := NewPaymentStatusService(historyRepo, recurringRepo)

	expense := activeExpense()
	recurringRepo.AddExpense(expense)

	for _, key := range []domain.PeriodKey{"2025-13", "2025-0", "March 2025", "2025/03"} {
		if _, err := paymentService.SetPaid(expense.ID, key, true, nil); !errors.Is(err, domain.ErrInvalidPeriodKey) {
			t.Errorf("Expected ErrInvalidPeriodKey for %q, got %v", key, err)
		}
	}
}

func TestStatusFor_UnrecordedPeriodIsPending(t *testing.T) {
	historyRepo := testutil.NewMockPaymentHistoryRepository()
	recurringRepo := testutil.NewMockRecurringExpenseRepository()
	paymentService := NewPaymentStatusService(historyRepo, recurringRepo)

	status, err := paymentService.StatusFor(uuid.New(), domain.NewPeriodKey(2025, time.March))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if status != domain.StatusPending {
		t.Errorf("Expected pending, got %s", status)
	}
}
