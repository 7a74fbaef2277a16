package usecase

import "testing"

func TestIconForCategory(t *testing.T) {
	cases := []struct {
		category string
		want     string
	}{
		{"Chocolates", "🍫"},
		{"Dark Chocolates", "🍫"},
		{"Coffee", "☕"},
		{"Malt Drinks", "🥤"},
		{"Ice Cream Treats", "🍦"},
		{"Hazelnut Spreads", "🍯"},
		{"Something Else", defaultCategoryIcon},
		{"", defaultCategoryIcon},
	}
	for _, tc := range cases {
		if got := IconForCategory(tc.category); got != tc.want {
			t.Fatalf("IconForCategory(%q) = %q, want %q", tc.category, got, tc.want)
		}
	}
}
