// Package categorizer assigns a spending category to a transaction
// description using ordered keyword-containment rules. Rule order is
// significant: the first matching category wins, so merchant-specific
// keywords sit ahead of generic ones.
package categorizer

import "strings"

// Category names form a fixed enumeration; everything unmatched lands
// in Others.
const (
	Dining        = "Dining"
	Shopping      = "Shopping"
	Travel        = "Travel"
	Groceries     = "Groceries"
	Bills         = "Bills"
	Pharmacy      = "Pharmacy"
	Medical       = "Medical"
	Entertainment = "Entertainment"
	Fuel          = "Fuel"
	Others        = "Others"
)

// Rule maps keywords to a category. Keywords are matched as
// case-insensitive substrings of the transaction description.
type Rule struct {
	Category string
	Keywords []string
}

// rules are evaluated top to bottom, first match wins.
var rules = []Rule{
	{Dining, []string{
		"restaurant", "cafe", "food", "zomato", "swiggy", "dominos",
		"mcdonald", "starbucks", "barbeque", "eatery",
	}},
	{Shopping, []string{
		"amazon", "flipkart", "myntra", "ajio", "nykaa", "shop",
		"store", "mall",
	}},
	{Travel, []string{
		"uber", "ola", "airline", "hotel", "booking", "makemytrip",
		"goibibo", "flight", "irctc", "indigo",
	}},
	{Groceries, []string{
		"grofers", "bigbasket", "blinkit", "zepto", "dmart",
		"reliance fresh", "grocery", "supermarket",
	}},
	{Bills, []string{
		"electricity", "water", "gas", "mobile", "recharge",
		"bill payment", "broadband", "dth", "paytm", "phonepe",
	}},
	{Pharmacy, []string{
		"pharmacy", "medplus", "netmeds", "pharmeasy", "1mg", "chemist",
	}},
	{Medical, []string{
		"hospital", "clinic", "diagnostic", "medical", "apollo",
	}},
	{Entertainment, []string{
		"netflix", "spotify", "hotstar", "bookmyshow", "pvr", "inox",
		"prime video", "cinema",
	}},
	{Fuel, []string{
		"petrol", "fuel", "hpcl", "bpcl", "indian oil", "indianoil",
	}},
}

// Categorize returns the category for a transaction description.
// Deterministic, case-insensitive, total: unmatched descriptions
// return Others.
func Categorize(description string) string {
	desc := strings.ToLower(description)
	for _, rule := range rules {
		for _, kw := range rule.Keywords {
			if strings.Contains(desc, kw) {
				return rule.Category
			}
		}
	}
	return Others
}

// colors used by the presentation layer for the category breakdown.
var colors = map[string]string{
	Dining:        "#4F46E5",
	Shopping:      "#7C3AED",
	Travel:        "#EC4899",
	Groceries:     "#F59E0B",
	Bills:         "#10B981",
	Pharmacy:      "#14B8A6",
	Medical:       "#EF4444",
	Entertainment: "#8B5CF6",
	Fuel:          "#F97316",
	Others:        "#6B7280",
}

// Color returns the display color for a category, falling back to the
// Others color for unknown names.
func Color(category string) string {
	if c, ok := colors[category]; ok {
		return c
	}
	return colors[Others]
}
