package core

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

type (
	// Date is a calendar date. The wire format is YYYY-MM-DD; RFC3339
	// timestamps are tolerated on decode because some server builds send
	// full timestamps for expense dates.
	Date struct {
		time.Time
	}

	// Expense mirrors one remote expense record. ID is assigned by the
	// server and stable across updates.
	Expense struct {
		ID          string  `json:"_id"`
		Amount      float64 `json:"amount"`
		Category    string  `json:"category"`
		Description string  `json:"description,omitempty"`
		Date        Date    `json:"date"`
	}

	// User is the authenticated user record. The server may attach fields
	// beyond id/name/email and a profile update must not drop them, so the
	// record stays an open map with typed accessors.
	User map[string]any
)

var (
	ErrInvalidAmount  = errors.New("invalid amount")
	ErrInvalidDate    = errors.New("invalid date")
	ErrEmptyCategory  = errors.New("empty category")
	ErrDescriptionLen = errors.New("description too long (max 200 characters)")
)

const dateLayout = "2006-01-02"

// NewDate creates a Date from year, month, day.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses YYYY-MM-DD, falling back to RFC3339.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(dateLayout, s); err == nil {
		return Date{Time: t}, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return Date{Time: t}, nil
	}
	return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
}

func (d Date) String() string {
	return d.Format(dateLayout)
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Format(dateLayout))
}

func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (e Expense) Validate() error {
	if e.Amount < 0 {
		return ErrInvalidAmount
	}
	if strings.TrimSpace(e.Category) == "" {
		return ErrEmptyCategory
	}
	if len(e.Description) > 200 {
		return ErrDescriptionLen
	}
	return e.Date.Validate()
}

// ID returns the user id as a string regardless of the JSON number/string
// representation the server chose.
func (u User) ID() string {
	switch v := u["id"].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case json.Number:
		return v.String()
	default:
		return ""
	}
}

func (u User) Name() string {
	s, _ := u["name"].(string)
	return s
}

func (u User) Email() string {
	s, _ := u["email"].(string)
	return s
}

// Merge returns a copy of u with every field present in updates overwritten.
// Fields absent from updates are retained.
func (u User) Merge(updates User) User {
	merged := make(User, len(u)+len(updates))
	for k, v := range u {
		merged[k] = v
	}
	for k, v := range updates {
		merged[k] = v
	}
	return merged
}
