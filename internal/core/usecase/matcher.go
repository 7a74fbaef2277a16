package usecase

import "strings"

const unmatchedCategoryLabel = "Uncategorized"

// MatchCategory assigns one category from the ordered list to a product
// name: the first category with a word longer than three characters that
// occurs in the lowercased product name wins. Without a match the first
// category is used, or a fixed label when the list is empty.
func MatchCategory(productName string, categories []string) string {
	if len(categories) == 0 {
		return unmatchedCategoryLabel
	}

	lowerName := strings.ToLower(productName)
	for _, category := range categories {
		for _, word := range strings.Fields(strings.ToLower(category)) {
			if len(word) > 3 && strings.Contains(lowerName, word) {
				return category
			}
		}
	}
	return categories[0]
}
