package service

import (
	"errors"
	"time"

	"github.com/bolsoapp/bolso-backend/internal/domain"
	"github.com/google/uuid"
)

// ResolvePaymentStatus looks up the unique history entry for one expense and
// period in a ledger snapshot. Absence of an entry means pending, not an
// error: an obligation is unpaid until a payment is recorded.
func ResolvePaymentStatus(history []*domain.PaymentHistoryEntry, recurringExpenseID uuid.UUID, period domain.PeriodKey) domain.SettlementStatus {
	for _, entry := range history {
		if entry.RecurringExpenseID == recurringExpenseID && entry.Period == period {
			if entry.Paid {
				return domain.StatusPaid
			}
			return domain.StatusPending
		}
	}
	return domain.StatusPending
}

// PaymentStatusService records and resolves settlement of recurring
// obligations per billing period.
type PaymentStatusService struct {
	historyRepo   domain.PaymentHistoryRepository
	recurringRepo domain.RecurringExpenseRepository
}

// NewPaymentStatusService creates a new PaymentStatusService
func NewPaymentStatusService(historyRepo domain.PaymentHistoryRepository, recurringRepo domain.RecurringExpenseRepository) *PaymentStatusService {
	return &PaymentStatusService{
		historyRepo:   historyRepo,
		recurringRepo: recurringRepo,
	}
}

// StatusFor resolves the settlement status of one expense for one period
// from the stored ledger.
func (s *PaymentStatusService) StatusFor(recurringExpenseID uuid.UUID, period domain.PeriodKey) (domain.SettlementStatus, error) {
	if err := period.Validate(); err != nil {
		return "", err
	}

	entry, err := s.historyRepo.Get(recurringExpenseID, period)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.StatusPending, nil
		}
		return "", err
	}

	if entry.Paid {
		return domain.StatusPaid, nil
	}
	return domain.StatusPending, nil
}

// SetPaid upserts the single history entry for (expense, period). Marking an
// already-settled period again replaces the entry; duplicates are never
// stored.
func (s *PaymentStatusService) SetPaid(recurringExpenseID uuid.UUID, period domain.PeriodKey, paid bool, paidDate *time.Time) (*domain.PaymentHistoryEntry, error) {
	if err := period.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.recurringRepo.GetByID(recurringExpenseID); err != nil {
		return nil, err
	}

	entry := &domain.PaymentHistoryEntry{
		RecurringExpenseID: recurringExpenseID,
		Period:             period,
		Paid:               paid,
	}
	if paid {
		entry.PaidDate = paidDate
		if entry.PaidDate == nil {
			now := time.Now().UTC()
			entry.PaidDate = &now
		}
	}

	return s.historyRepo.Upsert(entry)
}

// HistoryFor returns all recorded periods for one expense.
func (s *PaymentStatusService) HistoryFor(recurringExpenseID uuid.UUID) ([]*domain.PaymentHistoryEntry, error) {
	return s.historyRepo.ListByExpense(recurringExpenseID)
}
