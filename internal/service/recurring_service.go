package service

import (
	"strings"
	"time"

	"github.com/bolsoapp/bolso-backend/internal/domain"
	"github.com/bolsoapp/bolso-backend/internal/money"
	"github.com/bolsoapp/bolso-backend/internal/util"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RecurringService handles recurring expense business logic
type RecurringService struct {
	recurringRepo domain.RecurringExpenseRepository
}

// NewRecurringService creates a new RecurringService
func NewRecurringService(recurringRepo domain.RecurringExpenseRepository) *RecurringService {
	return &RecurringService{recurringRepo: recurringRepo}
}

// RecurringExpenseInput holds the fields for creating or replacing a
// recurring expense definition
type RecurringExpenseInput struct {
	Description  string
	Category     string
	Amount       decimal.Decimal
	Kind         domain.ExpenseKind
	Frequency    domain.Frequency
	DueDay       int
	Installments *int
	StartDate    time.Time
	EndDate      *time.Time
	Status       domain.LifecycleStatus
	AutoDebit    bool
}

func (s *RecurringService) validate(input *RecurringExpenseInput) error {
	input.Description = strings.TrimSpace(input.Description)
	if input.Description == "" {
		return domain.ErrDescriptionRequired
	}
	if len(input.Description) > domain.MaxDescriptionLength {
		return domain.ErrDescriptionTooLong
	}

	input.Category = strings.TrimSpace(input.Category)
	if input.Category == "" {
		return domain.ErrCategoryRequired
	}

	if input.Amount.LessThanOrEqual(decimal.Zero) {
		return domain.ErrInvalidAmount
	}
	if !input.Kind.Valid() {
		return domain.ErrInvalidExpenseKind
	}
	if !input.Frequency.Valid() {
		return domain.ErrInvalidFrequency
	}
	if input.DueDay < 1 || input.DueDay > 31 {
		return domain.ErrInvalidDueDay
	}
	if input.StartDate.IsZero() {
		return domain.ErrMalformedRecord
	}

	if input.Kind == domain.ExpenseKindInstallment {
		if input.Installments == nil || *input.Installments < 2 {
			return domain.ErrInvalidPeriodCount
		}
	}

	if input.Status == "" {
		input.Status = domain.LifecycleActive
	}
	if !input.Status.Valid() {
		return domain.ErrInvalidLifecycleStatus
	}

	// Installment plans derive their end date from the start date; an
	// explicit end date must come strictly after the start.
	if input.Kind == domain.ExpenseKindInstallment {
		end := util.AddMonths(input.StartDate, *input.Installments)
		input.EndDate = &end
	}
	if input.EndDate != nil && !input.EndDate.After(input.StartDate) {
		return domain.ErrInvalidDateRange
	}

	return nil
}

func buildRecurringExpense(id uuid.UUID, input RecurringExpenseInput) *domain.RecurringExpense {
	expense := &domain.RecurringExpense{
		ID:           id,
		Description:  input.Description,
		Category:     input.Category,
		Amount:       input.Amount,
		Kind:         input.Kind,
		Frequency:    input.Frequency,
		DueDay:       input.DueDay,
		Installments: input.Installments,
		StartDate:    input.StartDate,
		EndDate:      input.EndDate,
		Status:       input.Status,
		AutoDebit:    input.AutoDebit,
	}
	if input.Kind == domain.ExpenseKindInstallment {
		first := 1
		expense.CurrentInstallment = &first
	}
	return expense
}

// CreateRecurringExpense validates and stores a new recurring expense
// definition.
func (s *RecurringService) CreateRecurringExpense(input RecurringExpenseInput) (*domain.RecurringExpense, error) {
	if err := s.validate(&input); err != nil {
		return nil, err
	}
	return s.recurringRepo.Create(buildRecurringExpense(uuid.New(), input))
}

// UpdateRecurringExpense replaces a definition wholesale under the same
// identifier.
func (s *RecurringService) UpdateRecurringExpense(id uuid.UUID, input RecurringExpenseInput) (*domain.RecurringExpense, error) {
	if err := s.validate(&input); err != nil {
		return nil, err
	}

	existing, err := s.recurringRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	replacement := buildRecurringExpense(existing.ID, input)
	if input.Kind == domain.ExpenseKindInstallment && existing.CurrentInstallment != nil &&
		input.Installments != nil && *existing.CurrentInstallment <= *input.Installments {
		replacement.CurrentInstallment = existing.CurrentInstallment
	}
	replacement.CreatedAt = existing.CreatedAt

	return s.recurringRepo.Update(replacement)
}

// GetRecurringExpense retrieves a recurring expense by ID
func (s *RecurringService) GetRecurringExpense(id uuid.UUID) (*domain.RecurringExpense, error) {
	return s.recurringRepo.GetByID(id)
}

// ListRecurringExpenses returns definitions, optionally restricted to one
// kind.
func (s *RecurringService) ListRecurringExpenses(kind *domain.ExpenseKind) ([]*domain.RecurringExpense, error) {
	if kind != nil && !kind.Valid() {
		return nil, domain.ErrInvalidExpenseKind
	}
	return s.recurringRepo.List(kind)
}

// DeleteRecurringExpense removes a definition
func (s *RecurringService) DeleteRecurringExpense(id uuid.UUID) error {
	return s.recurringRepo.Delete(id)
}

// Totals summarizes active definitions: the monthly commitment normalizes
// non-monthly frequencies (annual/12, semiannual/6); the per-kind totals sum
// nominal amounts.
func Totals(expenses []*domain.RecurringExpense) *domain.RecurringTotals {
	var monthlyCents, fixedCents, subscriptionCents, installmentCents int64

	for _, e := range expenses {
		if e.Status != domain.LifecycleActive {
			continue
		}

		monthlyCents += money.Cents(MonthlyEquivalent(e))

		switch e.Kind {
		case domain.ExpenseKindFixed:
			fixedCents += money.Cents(e.Amount)
		case domain.ExpenseKindSubscription:
			subscriptionCents += money.Cents(e.Amount)
		case domain.ExpenseKindInstallment:
			installmentCents += money.Cents(e.Amount)
		}
	}

	return &domain.RecurringTotals{
		MonthlyCommitment: money.FromCents(monthlyCents),
		Fixed:             money.FromCents(fixedCents),
		Subscriptions:     money.FromCents(subscriptionCents),
		Installments:      money.FromCents(installmentCents),
	}
}

// ActiveTotals loads all definitions and summarizes the active ones.
func (s *RecurringService) ActiveTotals() (*domain.RecurringTotals, error) {
	expenses, err := s.recurringRepo.List(nil)
	if err != nil {
		return nil, err
	}
	return Totals(expenses), nil
}
