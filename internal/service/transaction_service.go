package service

import (
	"strings"
	"time"

	"github.com/bolsoapp/bolso-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionService handles transaction business logic
type TransactionService struct {
	transactionRepo domain.TransactionRepository
}

// NewTransactionService creates a new TransactionService
func NewTransactionService(transactionRepo domain.TransactionRepository) *TransactionService {
	return &TransactionService{transactionRepo: transactionRepo}
}

// TransactionInput holds the fields for creating or replacing a transaction
type TransactionInput struct {
	Description string
	Category    string
	Amount      decimal.Decimal
	Date        time.Time
	Type        domain.TransactionType
	Status      domain.SettlementStatus
	Plan        *domain.PaymentPlan
}

func (s *TransactionService) validate(input *TransactionInput) error {
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
	if input.Date.IsZero() {
		return domain.ErrMalformedRecord
	}
	if !input.Type.Valid() {
		return domain.ErrInvalidTransactionType
	}

	if input.Status == "" {
		input.Status = domain.StatusPending
	}
	if !input.Status.Valid() {
		return domain.ErrInvalidStatus
	}

	if input.Plan != nil {
		if input.Plan.Kind == domain.PlanInstallment && input.Plan.CurrentPeriod == 0 {
			input.Plan.CurrentPeriod = 1
		}
		if err := input.Plan.Validate(); err != nil {
			return err
		}
	}

	return nil
}

// CreateTransaction validates and stores a new transaction. The identifier
// is assigned here, never by the caller.
func (s *TransactionService) CreateTransaction(input TransactionInput) (*domain.Transaction, error) {
	if err := s.validate(&input); err != nil {
		return nil, err
	}

	transaction := &domain.Transaction{
		ID:          uuid.New(),
		Description: input.Description,
		Category:    input.Category,
		Amount:      input.Amount,
		Date:        input.Date,
		Type:        input.Type,
		Status:      input.Status,
		Plan:        input.Plan,
	}

	return s.transactionRepo.Create(transaction)
}

// UpdateTransaction replaces a transaction wholesale under the same
// identifier; there is no partial mutation.
func (s *TransactionService) UpdateTransaction(id uuid.UUID, input TransactionInput) (*domain.Transaction, error) {
	if err := s.validate(&input); err != nil {
		return nil, err
	}

	existing, err := s.transactionRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	replacement := &domain.Transaction{
		ID:          existing.ID,
		Description: input.Description,
		Category:    input.Category,
		Amount:      input.Amount,
		Date:        input.Date,
		Type:        input.Type,
		Status:      input.Status,
		Plan:        input.Plan,
		CreatedAt:   existing.CreatedAt,
	}

	return s.transactionRepo.Update(replacement)
}

// GetTransaction retrieves a transaction by ID
func (s *TransactionService) GetTransaction(id uuid.UUID) (*domain.Transaction, error) {
	return s.transactionRepo.GetByID(id)
}

// ListTransactions returns the transactions matching the filter, in stored
// order. An invalid filter range is rejected before touching the store.
func (s *TransactionService) ListTransactions(filter domain.TransactionFilter) ([]*domain.Transaction, error) {
	if err := ValidateFilter(filter); err != nil {
		return nil, err
	}

	transactions, err := s.transactionRepo.List()
	if err != nil {
		return nil, err
	}

	return FilterTransactions(transactions, filter), nil
}

// ToggleStatus flips a transaction between paid and pending. Scheduled
// transactions become paid when toggled.
func (s *TransactionService) ToggleStatus(id uuid.UUID) (*domain.Transaction, error) {
	existing, err := s.transactionRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if existing.Status == domain.StatusPaid {
		existing.Status = domain.StatusPending
	} else {
		existing.Status = domain.StatusPaid
	}

	return s.transactionRepo.Update(existing)
}

// DeleteTransaction removes a transaction
func (s *TransactionService) DeleteTransaction(id uuid.UUID) error {
	return s.transactionRepo.Delete(id)
}
