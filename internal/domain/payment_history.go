package domain

import (
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"
)

// PeriodKey identifies one billing period as a "YYYY-MM" string.
type PeriodKey string

var periodKeyPattern = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

// NewPeriodKey builds a period key from a year and month.
func NewPeriodKey(year int, month time.Month) PeriodKey {
	return PeriodKey(fmt.Sprintf("%04d-%02d", year, int(month)))
}

// PeriodKeyFromDate returns the period key of the calendar month containing d.
func PeriodKeyFromDate(d time.Time) PeriodKey {
	return NewPeriodKey(d.Year(), d.Month())
}

// Validate checks the YYYY-MM shape.
func (k PeriodKey) Validate() error {
	if !periodKeyPattern.MatchString(string(k)) {
		return ErrInvalidPeriodKey
	}
	return nil
}

// Parse returns the year and month encoded in the key.
func (k PeriodKey) Parse() (int, time.Month, error) {
	if err := k.Validate(); err != nil {
		return 0, 0, err
	}
	var year, month int
	fmt.Sscanf(string(k), "%d-%d", &year, &month)
	return year, time.Month(month), nil
}

// PaymentHistoryEntry records whether a recurring expense was settled for one
// period. At most one entry exists per (expense, period) pair; writes are
// upserts, never appends.
type PaymentHistoryEntry struct {
	RecurringExpenseID uuid.UUID  `json:"recurringExpenseId"`
	Period             PeriodKey  `json:"period"`
	Paid               bool       `json:"paid"`
	PaidDate           *time.Time `json:"paidDate,omitempty"`
}

type PaymentHistoryRepository interface {
	Upsert(entry *PaymentHistoryEntry) (*PaymentHistoryEntry, error)
	Get(recurringExpenseID uuid.UUID, period PeriodKey) (*PaymentHistoryEntry, error)
	ListByExpense(recurringExpenseID uuid.UUID) ([]*PaymentHistoryEntry, error)
	ListByPeriod(period PeriodKey) ([]*PaymentHistoryEntry, error)
}
