package events

import (
	"context"
	"testing"
	"time"

	"spendly/internal/core"
)

func TestNewExpenseEventMessage(t *testing.T) {
	e := core.Expense{
		ID:       "e1",
		Amount:   12.50,
		Category: "food",
		Date:     core.NewDate(2024, 1, 1),
	}
	msg := NewExpenseEventMessage(ActionCreated, e)

	if msg.Action != ActionCreated || msg.ID != "e1" {
		t.Errorf("message = %+v", msg)
	}
	if msg.Date != "2024-01-01" {
		t.Errorf("date = %q", msg.Date)
	}
	if msg.Timestamp.IsZero() || time.Since(msg.Timestamp) > time.Second {
		t.Errorf("timestamp = %v", msg.Timestamp)
	}
}

func TestExpenseEventMessageJSON(t *testing.T) {
	msg := &ExpenseEventMessage{
		Action:    ActionDeleted,
		ID:        "e7",
		Amount:    3.40,
		Category:  "transport",
		Date:      "2024-02-02",
		Timestamp: time.Date(2024, 2, 2, 12, 0, 0, 0, time.UTC),
	}

	raw, err := msg.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON: %v", err)
	}
	parsed, err := ExpenseEventMessageFromJSON(raw)
	if err != nil {
		t.Fatalf("FromJSON: %v", err)
	}

	if parsed.Action != msg.Action || parsed.ID != msg.ID || parsed.Amount != msg.Amount {
		t.Errorf("parsed = %+v", parsed)
	}
	if !parsed.Timestamp.Equal(msg.Timestamp) {
		t.Errorf("timestamp = %v, want %v", parsed.Timestamp, msg.Timestamp)
	}
}

func TestExpenseEventMessageInvalidJSON(t *testing.T) {
	if _, err := ExpenseEventMessageFromJSON([]byte(`{"amount":"not_a_number"}`)); err == nil {
		t.Error("expected error for invalid JSON")
	}
}

func TestNilPublisherIsSafe(t *testing.T) {
	var p *Publisher
	msg := NewExpenseEventMessage(ActionCreated, core.Expense{ID: "e1", Date: core.NewDate(2024, 1, 1)})
	if err := p.PublishExpenseEvent(context.Background(), msg); err != nil {
		t.Errorf("nil publisher returned %v", err)
	}
	if err := p.Close(); err != nil {
		t.Errorf("nil close returned %v", err)
	}
}
