package events

import (
	"encoding/json"
	"time"

	"spendly/internal/core"
)

type Action string

const (
	ActionCreated Action = "created"
	ActionUpdated Action = "updated"
	ActionDeleted Action = "deleted"
)

// ExpenseEventMessage mirrors one acknowledged expense mutation onto the
// event bus so external tooling (exporters, budget alerts) can follow along
// without polling the remote service.
type ExpenseEventMessage struct {
	Action    Action    `json:"action"`
	ID        string    `json:"id"`
	Amount    float64   `json:"amount"`
	Category  string    `json:"category"`
	Date      string    `json:"date"`
	Timestamp time.Time `json:"timestamp"`
}

// NewExpenseEventMessage builds a message for an acknowledged mutation.
func NewExpenseEventMessage(action Action, e core.Expense) *ExpenseEventMessage {
	return &ExpenseEventMessage{
		Action:    action,
		ID:        e.ID,
		Amount:    e.Amount,
		Category:  e.Category,
		Date:      e.Date.String(),
		Timestamp: time.Now(),
	}
}

// ToJSON converts the message to JSON bytes.
func (m *ExpenseEventMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// ExpenseEventMessageFromJSON decodes a message from JSON bytes.
func ExpenseEventMessageFromJSON(data []byte) (*ExpenseEventMessage, error) {
	var msg ExpenseEventMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
