package core

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

type (
	// FilterCriteria selects expenses by the conjunction of every field that
	// is set. Search matches case-insensitively against the description or
	// the category id; records without a description never match a search
	// term on the description side.
	FilterCriteria struct {
		Category  string
		StartDate Date
		EndDate   Date
		Search    string
	}

	SortKey   string
	SortOrder string

	// Totals is the local aggregation over a list of expenses: the grand
	// total plus per-category sums keyed by category id.
	Totals struct {
		Total      float64
		ByCategory map[string]float64
	}
)

const (
	SortByDate     SortKey = "date"
	SortByAmount   SortKey = "amount"
	SortByCategory SortKey = "category"

	Ascending  SortOrder = "asc"
	Descending SortOrder = "desc"
)

// FilterExpenses returns the expenses matching every criterion set on c.
// It is pure: the input slice is never mutated and applying the same
// criteria twice yields the same result.
func FilterExpenses(list []Expense, c FilterCriteria) []Expense {
	out := make([]Expense, 0, len(list))
	for _, e := range list {
		if c.Category != "" && e.Category != c.Category {
			continue
		}
		if !c.StartDate.IsZero() && e.Date.Before(c.StartDate.Time) {
			continue
		}
		if !c.EndDate.IsZero() && e.Date.After(c.EndDate.Time) {
			continue
		}
		if c.Search != "" {
			needle := strings.ToLower(c.Search)
			inDescription := e.Description != "" && strings.Contains(strings.ToLower(e.Description), needle)
			inCategory := strings.Contains(strings.ToLower(e.Category), needle)
			if !inDescription && !inCategory {
				continue
			}
		}
		out = append(out, e)
	}
	return out
}

// SortExpenses returns a new slice ordered by key. Date and amount compare
// numerically; category compares with locale-aware collation. An
// unrecognized key preserves the input order.
func SortExpenses(list []Expense, key SortKey, order SortOrder) []Expense {
	out := make([]Expense, len(list))
	copy(out, list)

	var cmp func(a, b Expense) int
	switch key {
	case SortByDate:
		cmp = func(a, b Expense) int { return a.Date.Compare(b.Date.Time) }
	case SortByAmount:
		cmp = func(a, b Expense) int {
			switch {
			case a.Amount < b.Amount:
				return -1
			case a.Amount > b.Amount:
				return 1
			}
			return 0
		}
	case SortByCategory:
		col := collate.New(language.AmericanEnglish)
		cmp = func(a, b Expense) int { return col.CompareString(a.Category, b.Category) }
	default:
		return out
	}

	sort.SliceStable(out, func(i, j int) bool {
		c := cmp(out[i], out[j])
		if order == Descending {
			return c > 0
		}
		return c < 0
	})
	return out
}

// SumTotals aggregates the full list. Order-independent: permuting the
// input does not change the result.
func SumTotals(list []Expense) Totals {
	t := Totals{ByCategory: make(map[string]float64)}
	for _, e := range list {
		t.Total += e.Amount
		t.ByCategory[e.Category] += e.Amount
	}
	return t
}
