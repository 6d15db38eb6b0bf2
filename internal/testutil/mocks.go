package testutil

import (
	"fmt"
	"sort"
	"time"

	"github.com/bolsoapp/bolso-backend/internal/domain"
	"github.com/google/uuid"
)

// MockTransactionRepository is a mock implementation of domain.TransactionRepository
type MockTransactionRepository struct {
	Transactions map[uuid.UUID]*domain.Transaction
	order        []uuid.UUID
	ListErr      error
}

// NewMockTransactionRepository creates a new MockTransactionRepository
func NewMockTransactionRepository() *MockTransactionRepository {
	return &MockTransactionRepository{
		Transactions: make(map[uuid.UUID]*domain.Transaction),
	}
}

// AddTransaction seeds the mock with a transaction
func (m *MockTransactionRepository) AddTransaction(t *domain.Transaction) {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	if _, ok := m.Transactions[t.ID]; !ok {
		m.order = append(m.order, t.ID)
	}
	m.Transactions[t.ID] = t
}

// Create stores a new transaction
func (m *MockTransactionRepository) Create(t *domain.Transaction) (*domain.Transaction, error) {
	now := time.Now().UTC()
	t.CreatedAt = now
	t.UpdatedAt = now
	m.AddTransaction(t)
	return t, nil
}

// GetByID retrieves a transaction by ID
func (m *MockTransactionRepository) GetByID(id uuid.UUID) (*domain.Transaction, error) {
	if t, ok := m.Transactions[id]; ok {
		return t, nil
	}
	return nil, domain.ErrTransactionNotFound
}

// List returns transactions in insertion order
func (m *MockTransactionRepository) List() ([]*domain.Transaction, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	out := make([]*domain.Transaction, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.Transactions[id])
	}
	return out, nil
}

// Update replaces an existing transaction
func (m *MockTransactionRepository) Update(t *domain.Transaction) (*domain.Transaction, error) {
	if _, ok := m.Transactions[t.ID]; !ok {
		return nil, domain.ErrTransactionNotFound
	}
	t.UpdatedAt = time.Now().UTC()
	m.Transactions[t.ID] = t
	return t, nil
}

// Delete removes a transaction
func (m *MockTransactionRepository) Delete(id uuid.UUID) error {
	if _, ok := m.Transactions[id]; !ok {
		return domain.ErrTransactionNotFound
	}
	delete(m.Transactions, id)
	for i, existing := range m.order {
		if existing == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}

// MockRecurringExpenseRepository is a mock implementation of domain.RecurringExpenseRepository
type MockRecurringExpenseRepository struct {
	Expenses map[uuid.UUID]*domain.RecurringExpense
	order    []uuid.UUID
	ListErr  error
	GetErr   error
}

// NewMockRecurringExpenseRepository creates a new MockRecurringExpenseRepository
func NewMockRecurringExpenseRepository() *MockRecurringExpenseRepository {
	return &MockRecurringExpenseRepository{
		Expenses: make(map[uuid.UUID]*domain.RecurringExpense),
	}
}

// AddExpense seeds the mock with a recurring expense
func (m *MockRecurringExpenseRepository) AddExpense(e *domain.RecurringExpense) {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	if _, ok := m.Expenses[e.ID]; !ok {
		m.order = append(m.order, e.ID)
	}
	m.Expenses[e.ID] = e
}

// Create stores a new recurring expense
func (m *MockRecurringExpenseRepository) Create(e *domain.RecurringExpense) (*domain.RecurringExpense, error) {
	now := time.Now().UTC()
	e.CreatedAt = now
	e.UpdatedAt = now
	m.AddExpense(e)
	return e, nil
}

// GetByID retrieves a recurring expense by ID
func (m *MockRecurringExpenseRepository) GetByID(id uuid.UUID) (*domain.RecurringExpense, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	if e, ok := m.Expenses[id]; ok {
		return e, nil
	}
	return nil, domain.ErrRecurringNotFound
}

// List returns recurring expenses, optionally filtered by kind
func (m *MockRecurringExpenseRepository) List(kind *domain.ExpenseKind) ([]*domain.RecurringExpense, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	out := make([]*domain.RecurringExpense, 0, len(m.order))
	for _, id := range m.order {
		e := m.Expenses[id]
		if kind != nil && e.Kind != *kind {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

// Update replaces an existing recurring expense
func (m *MockRecurringExpenseRepository) Update(e *domain.RecurringExpense) (*domain.RecurringExpense, error) {
	if _, ok := m.Expenses[e.ID]; !ok {
		return nil, domain.ErrRecurringNotFound
	}
	e.UpdatedAt = time.Now().UTC()
	m.Expenses[e.ID] = e
	return e, nil
}

// Delete removes a recurring expense
func (m *MockRecurringExpenseRepository) Delete(id uuid.UUID) error {
	if _, ok := m.Expenses[id]; !ok {
		return domain.ErrRecurringNotFound
	}
	delete(m.Expenses, id)
	for i, existing := range m.order {
		if existing == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}

func historyKey(id uuid.UUID, period domain.PeriodKey) string {
	return fmt.Sprintf("%s/%s", id, period)
}

// MockPaymentHistoryRepository is a mock implementation of domain.PaymentHistoryRepository
type MockPaymentHistoryRepository struct {
	Entries map[string]*domain.PaymentHistoryEntry
}

// NewMockPaymentHistoryRepository creates a new MockPaymentHistoryRepository
func NewMockPaymentHistoryRepository() *MockPaymentHistoryRepository {
	return &MockPaymentHistoryRepository{
		Entries: make(map[string]*domain.PaymentHistoryEntry),
	}
}

// Upsert stores or replaces the entry for one (expense, period) pair
func (m *MockPaymentHistoryRepository) Upsert(entry *domain.PaymentHistoryEntry) (*domain.PaymentHistoryEntry, error) {
	m.Entries[historyKey(entry.RecurringExpenseID, entry.Period)] = entry
	return entry, nil
}

// Get retrieves the entry for one (expense, period) pair
func (m *MockPaymentHistoryRepository) Get(recurringExpenseID uuid.UUID, period domain.PeriodKey) (*domain.PaymentHistoryEntry, error) {
	if entry, ok := m.Entries[historyKey(recurringExpenseID, period)]; ok {
		return entry, nil
	}
	return nil, domain.ErrNotFound
}

// ListByExpense returns all entries for one recurring expense
func (m *MockPaymentHistoryRepository) ListByExpense(recurringExpenseID uuid.UUID) ([]*domain.PaymentHistoryEntry, error) {
	var out []*domain.PaymentHistoryEntry
	for _, entry := range m.Entries {
		if entry.RecurringExpenseID == recurringExpenseID {
			out = append(out, entry)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Period < out[j].Period })
	return out, nil
}

// ListByPeriod returns all entries for one period
func (m *MockPaymentHistoryRepository) ListByPeriod(period domain.PeriodKey) ([]*domain.PaymentHistoryEntry, error) {
	var out []*domain.PaymentHistoryEntry
	for _, entry := range m.Entries {
		if entry.Period == period {
			out = append(out, entry)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].RecurringExpenseID.String() < out[j].RecurringExpenseID.String()
	})
	return out, nil
}

// MockCategoryBudgetRepository is a mock implementation of domain.CategoryBudgetRepository
type MockCategoryBudgetRepository struct {
	Budgets map[string]*domain.CategoryBudget
	order   []string
}

// NewMockCategoryBudgetRepository creates a new MockCategoryBudgetRepository
func NewMockCategoryBudgetRepository() *MockCategoryBudgetRepository {
	return &MockCategoryBudgetRepository{
		Budgets: make(map[string]*domain.CategoryBudget),
	}
}

// AddBudget seeds the mock with a category budget
func (m *MockCategoryBudgetRepository) AddBudget(b *domain.CategoryBudget) {
	if _, ok := m.Budgets[b.Category]; !ok {
		m.order = append(m.order, b.Category)
	}
	m.Budgets[b.Category] = b
}

// Upsert stores or replaces a category budget
func (m *MockCategoryBudgetRepository) Upsert(b *domain.CategoryBudget) (*domain.CategoryBudget, error) {
	m.AddBudget(b)
	return b, nil
}

// List returns budgets in insertion order
func (m *MockCategoryBudgetRepository) List() ([]*domain.CategoryBudget, error) {
	out := make([]*domain.CategoryBudget, 0, len(m.order))
	for _, category := range m.order {
		out = append(out, m.Budgets[category])
	}
	return out, nil
}

// Delete removes a category budget
func (m *MockCategoryBudgetRepository) Delete(category string) error {
	if _, ok := m.Budgets[category]; !ok {
		return domain.ErrNotFound
	}
	delete(m.Budgets, category)
	for i, existing := range m.order {
		if existing == category {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}

// MockNoteRepository is a mock implementation of domain.NoteRepository
type MockNoteRepository struct {
	Monthly map[string]*domain.MonthlyNote
	Annual  map[int]*domain.AnnualNote
}

// NewMockNoteRepository creates a new MockNoteRepository
func NewMockNoteRepository() *MockNoteRepository {
	return &MockNoteRepository{
		Monthly: make(map[string]*domain.MonthlyNote),
		Annual:  make(map[int]*domain.AnnualNote),
	}
}

func monthlyNoteKey(year, month int) string {
	return fmt.Sprintf("%04d-%02d", year, month)
}

// UpsertMonthly stores or replaces a monthly note
func (m *MockNoteRepository) UpsertMonthly(note *domain.MonthlyNote) (*domain.MonthlyNote, error) {
	m.Monthly[monthlyNoteKey(note.Year, note.Month)] = note
	return note, nil
}

// GetMonthly retrieves a monthly note
func (m *MockNoteRepository) GetMonthly(year, month int) (*domain.MonthlyNote, error) {
	if note, ok := m.Monthly[monthlyNoteKey(year, month)]; ok {
		return note, nil
	}
	return nil, domain.ErrNotFound
}

// UpsertAnnual stores or replaces an annual note
func (m *MockNoteRepository) UpsertAnnual(note *domain.AnnualNote) (*domain.AnnualNote, error) {
	m.Annual[note.Year] = note
	return note, nil
}

// GetAnnual retrieves an annual note
func (m *MockNoteRepository) GetAnnual(year int) (*domain.AnnualNote, error) {
	if note, ok := m.Annual[year]; ok {
		return note, nil
	}
	return nil, domain.ErrNotFound
}
