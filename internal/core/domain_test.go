package core

import (
	"encoding/json"
	"testing"
)

func TestParseDate(t *testing.T) {
	cases := []struct {
		in  string
		out string
		ok  bool
	}{
		{"2024-01-01", "2024-01-01", true},
		{" 2024-12-31 ", "2024-12-31", true},
		{"2024-01-01T15:04:05Z", "2024-01-01", true},
		{"01/02/2024", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, err := ParseDate(tc.in)
		if tc.ok {
			if err != nil || got.String() != tc.out {
				t.Fatalf("%q expected %s, got %s (err=%v)", tc.in, tc.out, got, err)
			}
		} else {
			if err == nil {
				t.Fatalf("%q expected error", tc.in)
			}
		}
	}
}

func TestDateJSONRoundTrip(t *testing.T) {
	var e Expense
	if err := json.Unmarshal([]byte(`{"_id":"e1","amount":12.5,"category":"food","date":"2024-01-01"}`), &e); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if e.Date.String() != "2024-01-01" {
		t.Fatalf("expected 2024-01-01, got %s", e.Date)
	}
	out, err := json.Marshal(e)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if want := `"date":"2024-01-01"`; !contains(string(out), want) {
		t.Fatalf("expected %s in %s", want, out)
	}
}

func TestExpenseValidate(t *testing.T) {
	good := Expense{
		ID:       "e1",
		Amount:   12.50,
		Category: "food",
		Date:     NewDate(2024, 1, 1),
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	bads := []Expense{
		{Amount: -1, Category: "food", Date: NewDate(2024, 1, 1)},
		{Amount: 1, Category: "", Date: NewDate(2024, 1, 1)},
		{Amount: 1, Category: "food"}, // zero date
	}
	for i, e := range bads {
		if err := e.Validate(); err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}

func TestUserAccessors(t *testing.T) {
	var u User
	if err := json.Unmarshal([]byte(`{"id":1,"name":"A","email":"a@b.com","plan":"pro"}`), &u); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if u.ID() != "1" {
		t.Errorf("ID() = %q, want %q", u.ID(), "1")
	}
	if u.Name() != "A" || u.Email() != "a@b.com" {
		t.Errorf("unexpected name/email: %q %q", u.Name(), u.Email())
	}

	stringID := User{"id": "u-42"}
	if stringID.ID() != "u-42" {
		t.Errorf("string id not passed through, got %q", stringID.ID())
	}
}

func TestUserMerge(t *testing.T) {
	u := User{"id": float64(1), "name": "A", "email": "a@b.com", "plan": "pro"}
	merged := u.Merge(User{"name": "B"})

	if merged.Name() != "B" {
		t.Errorf("updated field not overwritten, got %q", merged.Name())
	}
	if merged.Email() != "a@b.com" || merged["plan"] != "pro" {
		t.Errorf("retained fields dropped: %v", merged)
	}
	if u.Name() != "A" {
		t.Errorf("Merge mutated the receiver")
	}
}

func TestResolveCategory(t *testing.T) {
	if got := ResolveCategory("food"); got.Name != "Food & Dining" {
		t.Errorf("ResolveCategory(food) = %+v", got)
	}
	fallback := ResolveCategory("unknown-id")
	if fallback.ID != FallbackCategoryID {
		t.Errorf("expected fallback category, got %+v", fallback)
	}
}

func contains(s, substr string) bool {
	for i := 0; i+len(substr) <= len(s); i++ {
		if s[i:i+len(substr)] == substr {
			return true
		}
	}
	return false
}
