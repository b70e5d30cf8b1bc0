package core

import (
	"reflect"
	"testing"
)

func sampleExpenses() []Expense {
	return []Expense{
		{ID: "e1", Amount: 4.20, Category: "food", Description: "Morning Coffee", Date: NewDate(2024, 1, 3)},
		{ID: "e2", Amount: 2.00, Category: "transport", Description: "Bus", Date: NewDate(2024, 1, 1)},
		{ID: "e3", Amount: 55.00, Category: "bills", Date: NewDate(2024, 1, 2)},
		{ID: "e4", Amount: 9.99, Category: "food", Description: "Lunch", Date: NewDate(2024, 1, 5)},
	}
}

func TestFilterExpensesSearch(t *testing.T) {
	list := []Expense{
		{ID: "a", Description: "Morning Coffee", Category: "food"},
		{ID: "b", Description: "Bus", Category: "transport"},
	}
	got := FilterExpenses(list, FilterCriteria{Search: "coffee"})
	if len(got) != 1 || got[0].ID != "a" {
		t.Fatalf("search coffee: got %+v", got)
	}

	// Category id is searched too.
	got = FilterExpenses(list, FilterCriteria{Search: "trans"})
	if len(got) != 1 || got[0].ID != "b" {
		t.Fatalf("search trans: got %+v", got)
	}

	// No description never matches on the description side and never errors.
	noDesc := []Expense{{ID: "c", Category: "bills"}}
	if got := FilterExpenses(noDesc, FilterCriteria{Search: "coffee"}); len(got) != 0 {
		t.Fatalf("expected no match, got %+v", got)
	}
}

func TestFilterExpensesConjunction(t *testing.T) {
	list := sampleExpenses()
	got := FilterExpenses(list, FilterCriteria{
		Category:  "food",
		StartDate: NewDate(2024, 1, 2),
		EndDate:   NewDate(2024, 1, 4),
	})
	if len(got) != 1 || got[0].ID != "e1" {
		t.Fatalf("conjunction: got %+v", got)
	}
}

func TestFilterExpensesIdempotent(t *testing.T) {
	list := sampleExpenses()
	c := FilterCriteria{Category: "food"}
	once := FilterExpenses(list, c)
	twice := FilterExpenses(once, c)
	if !reflect.DeepEqual(once, twice) {
		t.Fatalf("filter not idempotent: %+v vs %+v", once, twice)
	}
}

func TestSortExpenses(t *testing.T) {
	list := sampleExpenses()

	t.Run("date ascending", func(t *testing.T) {
		got := SortExpenses(list, SortByDate, Ascending)
		if ids(got) != "e2,e3,e1,e4" {
			t.Fatalf("got %s", ids(got))
		}
	})

	t.Run("amount descending", func(t *testing.T) {
		got := SortExpenses(list, SortByAmount, Descending)
		if ids(got) != "e3,e4,e1,e2" {
			t.Fatalf("got %s", ids(got))
		}
	})

	t.Run("category ascending", func(t *testing.T) {
		got := SortExpenses(list, SortByCategory, Ascending)
		if got[0].Category != "bills" || got[len(got)-1].Category != "transport" {
			t.Fatalf("got %s", ids(got))
		}
	})

	t.Run("desc reverses asc", func(t *testing.T) {
		asc := SortExpenses(list, SortByAmount, Ascending)
		desc := SortExpenses(list, SortByAmount, Descending)
		for i := range asc {
			if asc[i].ID != desc[len(desc)-1-i].ID {
				t.Fatalf("desc is not the reverse of asc: %s vs %s", ids(asc), ids(desc))
			}
		}
	})

	t.Run("unknown key preserves order", func(t *testing.T) {
		got := SortExpenses(list, SortKey("bogus"), Ascending)
		if ids(got) != ids(list) {
			t.Fatalf("got %s, want input order %s", ids(got), ids(list))
		}
	})

	t.Run("input not mutated", func(t *testing.T) {
		before := ids(list)
		SortExpenses(list, SortByAmount, Descending)
		if ids(list) != before {
			t.Fatalf("input mutated: %s", ids(list))
		}
	})
}

func TestSumTotals(t *testing.T) {
	list := sampleExpenses()
	got := SumTotals(list)

	if got.Total != 4.20+2.00+55.00+9.99 {
		t.Errorf("total = %v", got.Total)
	}
	if got.ByCategory["food"] != 4.20+9.99 {
		t.Errorf("food sum = %v", got.ByCategory["food"])
	}

	// Order-independent: a permutation gives the same result.
	perm := []Expense{list[3], list[1], list[0], list[2]}
	if !reflect.DeepEqual(SumTotals(perm), got) {
		t.Errorf("totals changed under permutation")
	}

	empty := SumTotals(nil)
	if empty.Total != 0 || len(empty.ByCategory) != 0 {
		t.Errorf("empty totals = %+v", empty)
	}
}

func ids(list []Expense) string {
	out := ""
	for i, e := range list {
		if i > 0 {
			out += ","
		}
		out += e.ID
	}
	return out
}
