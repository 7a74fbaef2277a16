package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/gourmetline/catalog-ingest/internal/core/ports"
)

const classifierSystemPrompt = `You are a product catalog assistant for a food importer.
You group product names into a small set of category names.
Respond with a JSON array of strings and nothing else.`

// CategoryClassifier derives a category-name set for a candidate list.
// The AI strategy is best effort; the keyword fallback always succeeds.
type CategoryClassifier struct {
	completer ports.TextCompleter
	logger    *slog.Logger
}

func NewCategoryClassifier(completer ports.TextCompleter, logger *slog.Logger) *CategoryClassifier {
	return &CategoryClassifier{completer: completer, logger: logger}
}

// Classify returns category names for the candidates and whether the AI
// strategy produced them. An empty candidate list short-circuits without
// any external call.
func (c *CategoryClassifier) Classify(ctx context.Context, candidates []string) ([]string, bool) {
	if len(candidates) == 0 {
		return []string{}, false
	}

	if c.completer != nil {
		if names, ok := c.classifyWithAI(ctx, candidates); ok {
			return names, true
		}
		c.logger.Warn("ai classification degraded, using keyword fallback",
			"candidates", len(candidates))
	}

	return classifyByKeywords(candidates), false
}

func (c *CategoryClassifier) classifyWithAI(ctx context.Context, candidates []string) ([]string, bool) {
	response, err := c.completer.Complete(ctx, classifierSystemPrompt, buildClassifierPrompt(candidates))
	if err != nil {
		c.logger.Warn("ai classification call failed", "error", err)
		return nil, false
	}

	names, ok := recoverStringArray(response)
	if !ok {
		c.logger.Warn("ai classification response unparseable", "response_len", len(response))
		return nil, false
	}
	return names, true
}

func buildClassifierPrompt(candidates []string) string {
	var b strings.Builder
	b.WriteString("Group the following products into 5-10 category names.\n\nProducts:\n")
	for i, name := range candidates {
		fmt.Fprintf(&b, "%d. %s\n", i+1, name)
	}
	b.WriteString("\nReturn only a JSON array of category names, for example:\n")
	b.WriteString(`["Chocolates", "Coffee", "Beverages"]`)
	return b.String()
}

// Keyword table for the deterministic fallback, ordered most-specific
// first so "Chocolate Spreads" claims spread products before "Chocolates"
// can.
var fallbackCategories = []struct {
	name     string
	keywords []string
}{
	{"Chocolate Spreads", []string{"spread", "nutella"}},
	{"Chocolates", []string{"chocolate", "choco", "truffle", "praline", "dalfi"}},
	{"Coffee", []string{"coffee", "espresso", "cappuccino", "davidoff"}},
	{"Jellies", []string{"jelly", "jellies", "gummy", "gummies"}},
	{"Puddings", []string{"pudding", "custard"}},
	{"Beverages", []string{"malt", "drink", "beverage", "juice", "shake"}},
	{"Candies", []string{"candy", "candies", "lollipop", "toffee", "wafer"}},
	{"Biscuits", []string{"biscuit", "cookie", "cracker"}},
}

var groupingStopWords = map[string]struct{}{
	"with": {}, "and": {}, "the": {}, "original": {},
	"gram": {}, "grams": {}, "pack": {}, "packs": {}, "size": {},
}

const (
	catchAllCategory = "General"
	catchAllMinCount = 3
)

// classifyByKeywords is the deterministic fallback: keyword claiming, then
// first-word grouping of unclaimed names, then a catch-all. The result is
// alphabetically sorted and identical across runs for the same input.
func classifyByKeywords(candidates []string) []string {
	claimed := make(map[string]struct{})
	var unclaimed []string

	for _, candidate := range candidates {
		lower := strings.ToLower(candidate)
		category := ""
		for _, entry := range fallbackCategories {
			for _, keyword := range entry.keywords {
				if strings.Contains(lower, keyword) {
					category = entry.name
					break
				}
			}
			if category != "" {
				break
			}
		}
		if category == "" {
			unclaimed = append(unclaimed, candidate)
			continue
		}
		claimed[category] = struct{}{}
	}

	result := make([]string, 0, len(claimed)+2)
	for name := range claimed {
		result = append(result, name)
	}

	groups := groupByLeadingWord(unclaimed)
	grouped := false
	for _, group := range groups {
		if group.count < 2 {
			continue
		}
		result = append(result, titlecase(group.word))
		grouped = true
	}

	if len(unclaimed) > catchAllMinCount && !grouped {
		result = append(result, catchAllCategory)
	}
	if len(result) == 0 {
		result = append(result, catchAllCategory)
	}

	sort.Strings(result)
	return result
}

type wordGroup struct {
	word  string
	count int
}

// groupByLeadingWord buckets names by their first word longer than three
// characters that is not a stop word. Group order follows first encounter
// so the output stays deterministic.
func groupByLeadingWord(names []string) []wordGroup {
	index := make(map[string]int)
	var groups []wordGroup

	for _, name := range names {
		word := leadingGroupWord(name)
		if word == "" {
			continue
		}
		if i, ok := index[word]; ok {
			groups[i].count++
			continue
		}
		index[word] = len(groups)
		groups = append(groups, wordGroup{word: word, count: 1})
	}
	return groups
}

func leadingGroupWord(name string) string {
	for _, word := range strings.Fields(strings.ToLower(name)) {
		if len(word) <= 3 {
			continue
		}
		if _, stop := groupingStopWords[word]; stop {
			continue
		}
		if allDigits.MatchString(word) {
			continue
		}
		return word
	}
	return ""
}

func titlecase(word string) string {
	if word == "" {
		return word
	}
	return strings.ToUpper(word[:1]) + word[1:]
}
