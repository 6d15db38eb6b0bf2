package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "income"
	TransactionTypeExpense TransactionType = "expense"
)

func (t TransactionType) Valid() bool {
	return t == TransactionTypeIncome || t == TransactionTypeExpense
}

type SettlementStatus string

const (
	StatusPaid      SettlementStatus = "paid"
	StatusPending   SettlementStatus = "pending"
	StatusScheduled SettlementStatus = "scheduled"
)

func (s SettlementStatus) Valid() bool {
	return s == StatusPaid || s == StatusPending || s == StatusScheduled
}

type PlanKind string

const (
	PlanSingle      PlanKind = "single"
	PlanInstallment PlanKind = "installment"
	PlanRecurring   PlanKind = "recurring"
)

func (k PlanKind) Valid() bool {
	return k == PlanSingle || k == PlanInstallment || k == PlanRecurring
}

// ValueBasis states whether a plan's amount is the cost of one period or the
// grand total to be split across all periods.
type ValueBasis string

const (
	BasisPerPeriod ValueBasis = "per_period"
	BasisTotal     ValueBasis = "total"
)

func (b ValueBasis) Valid() bool {
	return b == BasisPerPeriod || b == BasisTotal
}

// PaymentPlan describes how a transaction is paid over time. Single
// transactions carry no plan.
type PaymentPlan struct {
	Kind          PlanKind   `json:"kind"`
	TotalPeriods  int        `json:"totalPeriods"`
	CurrentPeriod int        `json:"currentPeriod"`
	DueDay        int        `json:"dueDay"`
	AutoDebit     bool       `json:"autoDebit"`
	ValueBasis    ValueBasis `json:"valueBasis"`
}

// Validate enforces the plan invariants: installment plans span at least two
// periods with the current period inside [1, total]; recurring plans span at
// least one.
func (p *PaymentPlan) Validate() error {
	if !p.Kind.Valid() {
		return ErrInvalidPlanKind
	}
	if !p.ValueBasis.Valid() {
		return ErrInvalidValueBasis
	}
	if p.DueDay < 1 || p.DueDay > 31 {
		return ErrInvalidDueDay
	}
	switch p.Kind {
	case PlanInstallment:
		if p.TotalPeriods < 2 {
			return ErrInvalidPeriodCount
		}
		if p.CurrentPeriod < 1 || p.CurrentPeriod > p.TotalPeriods {
			return ErrInvalidCurrentPeriod
		}
	case PlanRecurring:
		if p.TotalPeriods < 1 {
			return ErrInvalidPeriodCount
		}
	}
	return nil
}

// Transaction is an immutable income or expense record. Edits replace the
// record wholesale under the same ID.
type Transaction struct {
	ID          uuid.UUID        `json:"id"`
	Description string           `json:"description"`
	Category    string           `json:"category"`
	Amount      decimal.Decimal  `json:"amount"`
	Date        time.Time        `json:"date"`
	Type        TransactionType  `json:"type"`
	Status      SettlementStatus `json:"status"`
	Plan        *PaymentPlan     `json:"plan,omitempty"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`
}

// TransactionFilter is the applied filter specification for list views. Nil
// or zero fields impose no constraint; all present predicates are ANDed.
type TransactionFilter struct {
	Description string
	Category    string
	Status      *SettlementStatus
	Type        *TransactionType
	MinAmount   *decimal.Decimal
	MaxAmount   *decimal.Decimal
	StartDate   *time.Time
	EndDate     *time.Time
}

// Empty reports whether the filter imposes no constraints at all.
func (f TransactionFilter) Empty() bool {
	return f.Description == "" && f.Category == "" && f.Status == nil &&
		f.Type == nil && f.MinAmount == nil && f.MaxAmount == nil &&
		f.StartDate == nil && f.EndDate == nil
}

type TransactionRepository interface {
	Create(transaction *Transaction) (*Transaction, error)
	GetByID(id uuid.UUID) (*Transaction, error)
	List() ([]*Transaction, error)
	Update(transaction *Transaction) (*Transaction, error)
	Delete(id uuid.UUID) error
}
