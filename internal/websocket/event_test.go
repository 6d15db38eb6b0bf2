package websocket

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEvent(t *testing.T) {
	payload := map[string]interface{}{
		"description": "Groceries",
		"amount":      "120.50",
	}

	before := time.Now()
	evt := NewEvent(EventTypeCreated, EntityTypeTransaction, payload)
	after := time.Now()

	assert.Equal(t, "transaction.created", evt.Type)
	assert.Equal(t, EntityTypeTransaction, evt.Entity)
	assert.Equal(t, payload, evt.Payload)
	assert.True(t, !evt.Timestamp.Before(before) && !evt.Timestamp.After(after))
}

func TestEvent_ToJSON(t *testing.T) {
	evt := RecurringUpdated(map[string]interface{}{"description": "Rent"})

	data, err := evt.ToJSON()
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, "recurring.updated", decoded["type"])
	assert.Equal(t, "recurring", decoded["entity"])

	payload, ok := decoded["payload"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "Rent", payload["description"])
}

func TestEventConstructors(t *testing.T) {
	tests := []struct {
		name     string
		evt      Event
		expected string
		entity   EntityType
	}{
		{"transaction created", TransactionCreated(nil), "transaction.created", EntityTypeTransaction},
		{"transaction updated", TransactionUpdated(nil), "transaction.updated", EntityTypeTransaction},
		{"transaction deleted", TransactionDeleted(nil), "transaction.deleted", EntityTypeTransaction},
		{"transaction toggled", TransactionToggled(nil), "transaction.toggled", EntityTypeTransaction},
		{"recurring created", RecurringCreated(nil), "recurring.created", EntityTypeRecurring},
		{"recurring updated", RecurringUpdated(nil), "recurring.updated", EntityTypeRecurring},
		{"recurring deleted", RecurringDeleted(nil), "recurring.deleted", EntityTypeRecurring},
		{"payment settled", PaymentSettled(nil), "payment.settled", EntityTypePayment},
		{"budget updated", BudgetUpdated(nil), "budget.updated", EntityTypeBudget},
		{"budget deleted", BudgetDeleted(nil), "budget.deleted", EntityTypeBudget},
		{"note updated", NoteUpdated(nil), "note.updated", EntityTypeNote},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.evt.Type)
			assert.Equal(t, tt.entity, tt.evt.Entity)
		})
	}
}

func TestNoOpPublisher(t *testing.T) {
	var publisher EventPublisher = &NoOpPublisher{}

	// Must not panic
	publisher.Publish(TransactionCreated(map[string]interface{}{"id": "x"}))
}
