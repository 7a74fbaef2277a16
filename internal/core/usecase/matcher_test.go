package usecase

import "testing"

func TestMatchCategoryByWord(t *testing.T) {
	categories := []string{"Coffee Products", "Chocolate Spreads", "Candies"}

	got := MatchCategory("Lotus chocolate spread jar", categories)
	if got != "Chocolate Spreads" {
		t.Fatalf("MatchCategory() = %q", got)
	}
}

func TestMatchCategoryRespectsListOrder(t *testing.T) {
	categories := []string{"Chocolate Spreads", "Chocolates"}

	got := MatchCategory("Dark chocolate spread", categories)
	if got != "Chocolate Spreads" {
		t.Fatalf("MatchCategory() = %q", got)
	}
}

func TestMatchCategoryIgnoresShortWords(t *testing.T) {
	// "ice" is too short to count as a match word.
	categories := []string{"Ice Bars", "Puddings"}

	got := MatchCategory("Vanilla ice stick", categories)
	if got != "Ice Bars" {
		t.Fatalf("expected first-category fallback, got %q", got)
	}
}

func TestMatchCategoryFallsBackToFirst(t *testing.T) {
	got := MatchCategory("Unmapped Item", []string{"Coffee", "Candies"})
	if got != "Coffee" {
		t.Fatalf("MatchCategory() = %q", got)
	}
}

func TestMatchCategoryEmptyList(t *testing.T) {
	if got := MatchCategory("Anything", nil); got != unmatchedCategoryLabel {
		t.Fatalf("MatchCategory() = %q", got)
	}
}
