package service

import (
	"time"

	"github.com/bolsoapp/bolso-backend/internal/domain"
	"github.com/bolsoapp/bolso-backend/internal/money"
	"github.com/bolsoapp/bolso-backend/internal/util"
	"github.com/shopspring/decimal"
)

// PlanExpansion is the normalized view of an installment or recurring plan:
// what one period costs, what the whole plan costs, and when it ends.
// FirstPeriodAmount absorbs the minor-unit remainder when a total is split
// across periods, so the periods always reconstruct the total exactly.
type PlanExpansion struct {
	FirstPeriodAmount decimal.Decimal
	PeriodAmount      decimal.Decimal
	TotalAmount       decimal.Decimal
	EndDate           *time.Time
}

// ExpandTransactionPlan derives the effective per-period and total amounts
// for a transaction. Transactions without a plan (or with a single plan) are
// their own single period. The function is pure: the same input always
// yields the same expansion.
func ExpandTransactionPlan(t *domain.Transaction) (*PlanExpansion, error) {
	if t.Plan == nil || t.Plan.Kind == domain.PlanSingle {
		return &PlanExpansion{
			FirstPeriodAmount: money.Round2(t.Amount),
			PeriodAmount:      money.Round2(t.Amount),
			TotalAmount:       money.Round2(t.Amount),
		}, nil
	}

	if err := t.Plan.Validate(); err != nil {
		return nil, err
	}

	expansion, err := expandAmount(t.Amount, t.Plan.ValueBasis, t.Plan.TotalPeriods)
	if err != nil {
		return nil, err
	}

	if t.Plan.Kind == domain.PlanInstallment {
		end := util.AddMonths(t.Date, t.Plan.TotalPeriods)
		expansion.EndDate = &end
	}

	return expansion, nil
}

// ExpandRecurringExpense derives the per-period and total amounts for a
// recurring expense definition. Fixed bills and subscriptions have no fixed
// horizon, so their total equals one period. Installment plans require an
// installment count and derive an end date from the start date.
func ExpandRecurringExpense(e *domain.RecurringExpense, basis domain.ValueBasis) (*PlanExpansion, error) {
	if e.Kind != domain.ExpenseKindInstallment {
		return &PlanExpansion{
			FirstPeriodAmount: money.Round2(e.Amount),
			PeriodAmount:      money.Round2(e.Amount),
			TotalAmount:       money.Round2(e.Amount),
		}, nil
	}

	if e.Installments == nil || *e.Installments <= 0 {
		return nil, domain.ErrInvalidPeriodCount
	}

	expansion, err := expandAmount(e.Amount, basis, *e.Installments)
	if err != nil {
		return nil, err
	}

	end := util.AddMonths(e.StartDate, *e.Installments)
	expansion.EndDate = &end
	return expansion, nil
}

func expandAmount(amount decimal.Decimal, basis domain.ValueBasis, periods int) (*PlanExpansion, error) {
	if periods <= 0 {
		return nil, domain.ErrInvalidPeriodCount
	}

	switch basis {
	case domain.BasisTotal:
		first, rest, err := money.Split(amount, periods)
		if err != nil {
			return nil, err
		}
		return &PlanExpansion{
			FirstPeriodAmount: first,
			PeriodAmount:      rest,
			TotalAmount:       money.Round2(amount),
		}, nil
	case domain.BasisPerPeriod:
		per := money.Round2(amount)
		return &PlanExpansion{
			FirstPeriodAmount: per,
			PeriodAmount:      per,
			TotalAmount:       money.MulInt(per, periods),
		}, nil
	default:
		return nil, domain.ErrInvalidValueBasis
	}
}

// MonthlyEquivalent normalizes a recurring expense's nominal amount to a
// monthly figure: annual amounts spread over 12 months, semiannual over 6.
func MonthlyEquivalent(e *domain.RecurringExpense) decimal.Decimal {
	switch e.Frequency {
	case domain.FrequencyAnnual:
		monthly, _ := money.DivInt(e.Amount, 12)
		return monthly
	case domain.FrequencySemiannual:
		monthly, _ := money.DivInt(e.Amount, 6)
		return monthly
	default:
		return money.Round2(e.Amount)
	}
}

// NextDueDate returns the concrete due date of a recurring expense within a
// given month, clamping the due day to the month's length.
func NextDueDate(e *domain.RecurringExpense, year int, month time.Month) time.Time {
	return util.CalculateActualDueDate(e.DueDay, year, month)
}
