package service

import (
	"errors"
	"testing"
	"time"

	"github.com/bolsoapp/bolso-backend/internal/domain"
	"github.com/shopspring/decimal"
)

func filterFixture() []*domain.Transaction {
	march := time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)
	april := time.Date(2025, time.April, 10, 0, 0, 0, 0, time.UTC)

	groceries := paidTransaction("Weekly groceries", 120.00, domain.TransactionTypeExpense, march)
	groceries.Category = "Food"

	salary := paidTransaction("Monthly salary", 3000.00, domain.TransactionTypeIncome, march)
	salary.Category = "Work"

	cinema := paidTransaction("Cinema tickets", 45.00, domain.TransactionTypeExpense, april)
	cinema.Category = "Leisure"
	cinema.Status = domain.StatusPending

	return []*domain.Transaction{groceries, salary, cinema}
}

func TestFilterTransactions_DescriptionCaseInsensitive(t *testing.T) {
	transactions := filterFixture()

	result := FilterTransactions(transactions, domain.TransactionFilter{Description: "GROCERIES"})

	if len(result) != 1 {
		t.Fatalf("Expected 1 transaction, got %d", len(result))
	}
	if result[0].Description != "Weekly groceries" {
		t.Errorf("Expected 'Weekly groceries', got %s", result[0].Description)
	}
}

func TestFilterTransactions_PredicatesAreANDed(t *testing.T) {
	transactions := filterFixture()
	expense := domain.TransactionTypeExpense

	minAmount := decimal.NewFromFloat(100.00)
	result := FilterTransactions(transactions, domain.TransactionFilter{
		Type:      &expense,
		MinAmount: &minAmount,
	})

	if len(result) != 1 {
		t.Fatalf("Expected 1 transaction, got %d", len(result))
	}
	if result[0].Description != "Weekly groceries" {
		t.Errorf("Expected 'Weekly groceries', got %s", result[0].Description)
	}
}

func TestFilterTransactions_OrderIndependent(t *testing.T) {
	transactions := filterFixture()
	pending := domain.StatusPending
	start := time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC)

	filter := domain.TransactionFilter{Status: &pending, StartDate: &start}

	forward := FilterTransactions(transactions, filter)

	reversed := []*domain.Transaction{transactions[2], transactions[1], transactions[0]}
	backward := FilterTransactions(reversed, filter)

	if len(forward) != 1 || len(backward) != 1 {
		t.Fatalf("Expected 1 transaction either way, got %d and %d", len(forward), len(backward))
	}
	if forward[0].ID != backward[0].ID {
		t.Errorf("Expected the same result regardless of input order")
	}
}

func TestFilterTransactions_PreservesRelativeOrder(t *testing.T) {
	transactions := filterFixture()

	result := FilterTransactions(transactions, domain.TransactionFilter{})

	if len(result) != 3 {
		t.Fatalf("Expected 3 transactions, got %d", len(result))
	}
	for i := range result {
		if result[i].ID != transactions[i].ID {
			t.Errorf("Expected relative order preserved at index %d", i)
		}
	}
}

func TestFilterTransactions_InvertedRangeMatchesNothing(t *testing.T) {
	transactions := filterFixture()

	min := decimal.NewFromFloat(500.00)
	max := decimal.NewFromFloat(100.00)
	result := FilterTransactions(transactions, domain.TransactionFilter{MinAmount: &min, MaxAmount: &max})

	if len(result) != 0 {
		t.Errorf("Expected empty result for inverted range, got %d", len(result))
	}
}

func TestValidateFilter_InvertedRanges(t *testing.T) {
	min := decimal.NewFromFloat(500.00)
	max := decimal.NewFromFloat(100.00)
	if err := ValidateFilter(domain.TransactionFilter{MinAmount: &min, MaxAmount: &max}); !errors.Is(err, domain.ErrInvalidFilterRange) {
		t.Errorf("Expected ErrInvalidFilterRange for amounts, got %v", err)
	}

	start := time.Date(2025, time.May, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC)
	if err := ValidateFilter(domain.TransactionFilter{StartDate: &start, EndDate: &end}); !errors.Is(err, domain.ErrInvalidFilterRange) {
		t.Errorf("Expected ErrInvalidFilterRange for dates, got %v", err)
	}

	if err := ValidateFilter(domain.TransactionFilter{}); err != nil {
		t.Errorf("Expected no error for empty filter, got %v", err)
	}
}

func TestFilterSession_DraftDoesNotAffectApplied(t *testing.T) {
	session := NewFilterSession()

	session.SetDraft(domain.TransactionFilter{Description: "rent"})

	if session.Active() {
		t.Errorf("Expected no active filter before Apply")
	}
	if !session.Applied().Empty() {
		t.Errorf("Expected applied filter to stay empty")
	}
	if session.Draft().Description != "rent" {
		t.Errorf("Expected draft to hold the staged value")
	}
}

func TestFilterSession_ApplyCommitsDraft(t *testing.T) {
	session := NewFilterSession()
	session.SetDraft(domain.TransactionFilter{Category: "Food"})

	if err := session.Apply(); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if !session.Active() {
		t.Errorf("Expected active filter after Apply")
	}
	if session.Applied().Category != "Food" {
		t.Errorf("Expected applied category 'Food', got %q", session.Applied().Category)
	}
}

func TestFilterSession_ApplyRejectsInvalidDraft(t *testing.T) {
	session := NewFilterSession()
	session.SetDraft(domain.TransactionFilter{Category: "Food"})
	if err := session.Apply(); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	min := decimal.NewFromFloat(500.00)
	max := decimal.NewFromFloat(100.00)
	session.SetDraft(domain.TransactionFilter{MinAmount: &min, MaxAmount: &max})

	if err := session.Apply(); !errors.Is(err, domain.ErrInvalidFilterRange) {
		t.Fatalf("Expected ErrInvalidFilterRange, got %v", err)
	}
	if session.Applied().Category != "Food" {
		t.Errorf("Expected applied filter untouched after failed Apply")
	}
}

func TestFilterSession_ClearResetsBothStates(t *testing.T) {
	session := NewFilterSession()
	session.SetDraft(domain.TransactionFilter{Category: "Food"})
	if err := session.Apply(); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	session.SetDraft(domain.TransactionFilter{Description: "rent"})

	session.Clear()

	if !session.Draft().Empty() {
		t.Errorf("Expected draft cleared")
	}
	if !session.Applied().Empty() {
		t.Errorf("Expected applied cleared")
	}
	if session.Active() {
		t.Errorf("Expected no active filter after Clear")
	}
}
