package service

import (
	"strings"

	"github.com/bolsoapp/bolso-backend/internal/domain"
)

// ValidateFilter rejects inverted ranges up front so handlers can report
// them. The engine itself never fails on them; see FilterTransactions.
func ValidateFilter(f domain.TransactionFilter) error {
	if f.MinAmount != nil && f.MaxAmount != nil && f.MaxAmount.LessThan(*f.MinAmount) {
		return domain.ErrInvalidFilterRange
	}
	if f.StartDate != nil && f.EndDate != nil && f.EndDate.Before(*f.StartDate) {
		return domain.ErrInvalidFilterRange
	}
	return nil
}

// FilterTransactions returns the subset of transactions matching every
// predicate the filter carries, preserving the original relative order.
// Absent fields impose no constraint. An inverted range matches nothing
// rather than failing.
func FilterTransactions(transactions []*domain.Transaction, f domain.TransactionFilter) []*domain.Transaction {
	if ValidateFilter(f) != nil {
		return []*domain.Transaction{}
	}

	result := make([]*domain.Transaction, 0, len(transactions))
	for _, t := range transactions {
		if matchesFilter(t, f) {
			result = append(result, t)
		}
	}
	return result
}

func matchesFilter(t *domain.Transaction, f domain.TransactionFilter) bool {
	if f.Description != "" && !containsFold(t.Description, f.Description) {
		return false
	}
	if f.Category != "" && !containsFold(t.Category, f.Category) {
		return false
	}
	if f.Status != nil && t.Status != *f.Status {
		return false
	}
	if f.Type != nil && t.Type != *f.Type {
		return false
	}
	if f.MinAmount != nil && t.Amount.LessThan(*f.MinAmount) {
		return false
	}
	if f.MaxAmount != nil && t.Amount.GreaterThan(*f.MaxAmount) {
		return false
	}
	if f.StartDate != nil && t.Date.Before(*f.StartDate) {
		return false
	}
	if f.EndDate != nil && t.Date.After(*f.EndDate) {
		return false
	}
	return true
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

// FilterSession separates the filter being edited from the filter actually
// applied to the list. Apply commits the draft atomically; Clear resets both
// states in one step, never one without the other.
type FilterSession struct {
	draft   domain.TransactionFilter
	applied domain.TransactionFilter
}

// NewFilterSession creates a session with both states empty.
func NewFilterSession() *FilterSession {
	return &FilterSession{}
}

// SetDraft stages a filter without affecting the applied one.
func (s *FilterSession) SetDraft(f domain.TransactionFilter) {
	s.draft = f
}

// Draft returns the staged filter.
func (s *FilterSession) Draft() domain.TransactionFilter {
	return s.draft
}

// Applied returns the filter currently in effect.
func (s *FilterSession) Applied() domain.TransactionFilter {
	return s.applied
}

// Apply commits the draft as the applied filter. Invalid ranges are rejected
// and leave the applied filter untouched.
func (s *FilterSession) Apply() error {
	if err := ValidateFilter(s.draft); err != nil {
		return err
	}
	s.applied = s.draft
	return nil
}

// Clear resets draft and applied in a single step.
func (s *FilterSession) Clear() {
	s.draft = domain.TransactionFilter{}
	s.applied = domain.TransactionFilter{}
}

// Active reports whether the applied filter constrains anything.
func (s *FilterSession) Active() bool {
	return !s.applied.Empty()
}
