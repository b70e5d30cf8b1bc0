package core

// Category is a fixed classification tag carrying display metadata. The
// catalog is defined once at startup and never mutated; it is not persisted
// remotely.
type Category struct {
	ID    string
	Name  string
	Icon  string
	Color string
}

// FallbackCategoryID designates the catch-all entry returned when an expense
// references an unknown category id.
const FallbackCategoryID = "other"

// Categories is the static catalog, in display order.
var Categories = []Category{
	{ID: "food", Name: "Food & Dining", Icon: "🍔", Color: "#f59e0b"},
	{ID: "transport", Name: "Transportation", Icon: "🚗", Color: "#3b82f6"},
	{ID: "shopping", Name: "Shopping", Icon: "🛍️", Color: "#ec4899"},
	{ID: "entertainment", Name: "Entertainment", Icon: "🎬", Color: "#8b5cf6"},
	{ID: "bills", Name: "Bills & Utilities", Icon: "💡", Color: "#ef4444"},
	{ID: "health", Name: "Health & Medical", Icon: "⚕️", Color: "#10b981"},
	{ID: "education", Name: "Education", Icon: "📚", Color: "#6366f1"},
	{ID: FallbackCategoryID, Name: "Other", Icon: "📦", Color: "#6b7280"},
}

// ResolveCategory returns the catalog entry for id, or the fallback entry
// when id is unknown. It never fails; expenses carrying stale category ids
// resolve at lookup time, not at storage time.
func ResolveCategory(id string) Category {
	for _, c := range Categories {
		if c.ID == id {
			return c
		}
	}
	return Categories[len(Categories)-1]
}
