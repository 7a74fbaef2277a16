package usecase

import "strings"

const defaultCategoryIcon = "📦"

// Known category names checked first, in order. A match in either
// direction counts, so "Chocolates" and "Dark Chocolates" both resolve.
var categoryIconTable = []struct {
	name string
	icon string
}{
	{"chocolate spreads", "🍯"},
	{"chocolates", "🍫"},
	{"coffee", "☕"},
	{"jellies", "🍬"},
	{"puddings", "🍮"},
	{"beverages", "🥤"},
	{"candies", "🍭"},
	{"biscuits", "🍪"},
}

var iconKeywordChecks = []struct {
	keywords []string
	icon     string
}{
	{[]string{"chocolate"}, "🍫"},
	{[]string{"coffee"}, "☕"},
	{[]string{"jelly"}, "🍬"},
	{[]string{"pudding"}, "🍮"},
	{[]string{"malt", "drink", "beverage"}, "🥤"},
	{[]string{"ice", "cream", "candy"}, "🍦"},
	{[]string{"spread"}, "🍯"},
}

// IconForCategory maps a category name to its display glyph.
func IconForCategory(category string) string {
	name := strings.ToLower(strings.TrimSpace(category))
	if name == "" {
		return defaultCategoryIcon
	}

	for _, entry := range categoryIconTable {
		if name == entry.name || strings.Contains(name, entry.name) || strings.Contains(entry.name, name) {
			return entry.icon
		}
	}

	for _, check := range iconKeywordChecks {
		for _, keyword := range check.keywords {
			if strings.Contains(name, keyword) {
				return check.icon
			}
		}
	}
	return defaultCategoryIcon
}
