package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ExpenseKind classifies a recurring obligation: a fixed bill (rent), a card
// installment plan, or a subscription.
type ExpenseKind string

const (
	ExpenseKindFixed        ExpenseKind = "fixed"
	ExpenseKindInstallment  ExpenseKind = "installment_plan"
	ExpenseKindSubscription ExpenseKind = "subscription"
)

func (k ExpenseKind) Valid() bool {
	return k == ExpenseKindFixed || k == ExpenseKindInstallment || k == ExpenseKindSubscription
}

type Frequency string

const (
	FrequencyMonthly    Frequency = "monthly"
	FrequencySemiannual Frequency = "semiannual"
	FrequencyAnnual     Frequency = "annual"
)

func (f Frequency) Valid() bool {
	return f == FrequencyMonthly || f == FrequencySemiannual || f == FrequencyAnnual
}

// PeriodsPerYear returns how many billing cycles the frequency produces in a
// year.
func (f Frequency) PeriodsPerYear() int {
	switch f {
	case FrequencySemiannual:
		return 2
	case FrequencyAnnual:
		return 1
	default:
		return 12
	}
}

type LifecycleStatus string

const (
	LifecycleActive   LifecycleStatus = "active"
	LifecyclePaused   LifecycleStatus = "paused"
	LifecycleFinished LifecycleStatus = "finished"
)

func (s LifecycleStatus) Valid() bool {
	return s == LifecycleActive || s == LifecyclePaused || s == LifecycleFinished
}

// RecurringExpense is a template for an obligation that recurs independently
// of the transaction list, such as rent, a subscription, or a card
// installment plan.
type RecurringExpense struct {
	ID                 uuid.UUID       `json:"id"`
	Description        string          `json:"description"`
	Category           string          `json:"category"`
	Amount             decimal.Decimal `json:"amount"`
	Kind               ExpenseKind     `json:"kind"`
	Frequency          Frequency       `json:"frequency"`
	DueDay             int             `json:"dueDay"`
	Installments       *int            `json:"installments,omitempty"`
	CurrentInstallment *int            `json:"currentInstallment,omitempty"`
	StartDate          time.Time       `json:"startDate"`
	EndDate            *time.Time      `json:"endDate,omitempty"`
	Status             LifecycleStatus `json:"status"`
	AutoDebit          bool            `json:"autoDebit"`
	CreatedAt          time.Time       `json:"createdAt"`
	UpdatedAt          time.Time       `json:"updatedAt"`
}

// RecurringTotals summarizes active recurring expenses for the dashboard: a
// normalized monthly commitment plus per-kind nominal totals.
type RecurringTotals struct {
	MonthlyCommitment decimal.Decimal `json:"monthlyCommitment"`
	Fixed             decimal.Decimal `json:"fixed"`
	Subscriptions     decimal.Decimal `json:"subscriptions"`
	Installments      decimal.Decimal `json:"installments"`
}

type RecurringExpenseRepository interface {
	Create(expense *RecurringExpense) (*RecurringExpense, error)
	GetByID(id uuid.UUID) (*RecurringExpense, error)
	List(kind *ExpenseKind) ([]*RecurringExpense, error)
	Update(expense *RecurringExpense) (*RecurringExpense, error)
	Delete(id uuid.UUID) error
}
