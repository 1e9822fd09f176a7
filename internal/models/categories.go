package models

// Categories maps the fixed category keys to their display labels. The key is
// what gets persisted and filtered on; the label is presentation only.
var Categories = map[string]string{
	"breadsSandwichesPizza": "Breads, Sandwiches & Pizza",
	"eggsBreakfast":         "Eggs & Breakfast",
	"dessertsBakedGoods":    "Desserts & Baked Goods",
	"fishSeafood":           "Fish & Seafood",
	"vegetables":            "Vegetables",
}

// LookupCategoryLabel returns the display label for a category key, or the
// empty string for an unknown key.
func LookupCategoryLabel(key string) string {
	return Categories[key]
}
