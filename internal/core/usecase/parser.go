package usecase

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	minCandidateLen = 3
	maxCandidateLen = 200
)

// Lines matching any of these never contain a product name. Checked in
// order against the trimmed line, case-insensitively where relevant.
var skipLinePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^sr\.?\s*no`),          // "Sr. No" style table header
	regexp.MustCompile(`(?i)^item\s*list`),         // price list title row
	regexp.MustCompile(`(?i)gourmet\s*line`),       // supplier letterhead
	regexp.MustCompile(`(?i)^page\s+\S+`),          // "Page 3", "Page 3 of 7" footers
	regexp.MustCompile(`\.{4,}`),                   // table-of-contents leader dots
	regexp.MustCompile(`^\d+$`),                    // bare row numbers
}

var leadingOrdinal = regexp.MustCompile(`^\d+\s*[.|)]\s+`)
var leadingNumber = regexp.MustCompile(`^\d+\s+`)
var allDigits = regexp.MustCompile(`^\d+$`)

// ParseLineItems extracts candidate product names from extracted price-list
// text. Duplicates are kept; deduplication is a separate stage.
func ParseLineItems(text string) []string {
	var candidates []string

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || shouldSkipLine(line) {
			continue
		}

		candidate := extractCandidate(line)
		if isValidCandidate(candidate) {
			candidates = append(candidates, candidate)
		}
	}
	return candidates
}

func shouldSkipLine(line string) bool {
	for _, pattern := range skipLinePatterns {
		if pattern.MatchString(line) {
			return true
		}
	}
	return false
}

func extractCandidate(line string) string {
	// Pipe-delimited rows treat the first column as an index column and
	// take precedence over plain ordinal stripping.
	if strings.Contains(line, "|") {
		columns := strings.Split(line, "|")
		if len(columns) > 1 {
			parts := make([]string, 0, len(columns)-1)
			for _, col := range columns[1:] {
				if trimmed := strings.TrimSpace(col); trimmed != "" {
					parts = append(parts, trimmed)
				}
			}
			return strings.Join(parts, " ")
		}
	}

	if stripped := leadingOrdinal.ReplaceAllString(line, ""); stripped != line {
		return strings.TrimSpace(stripped)
	}
	return strings.TrimSpace(leadingNumber.ReplaceAllString(line, ""))
}

func isValidCandidate(candidate string) bool {
	// Bounds are in characters, not bytes: accented names near either
	// limit must be judged by their visible length.
	length := utf8.RuneCountInString(candidate)
	if length < minCandidateLen || length > maxCandidateLen {
		return false
	}
	return !allDigits.MatchString(candidate)
}

// DedupeNames removes case-insensitive duplicates, keeping the first-seen
// original form and the original relative order.
func DedupeNames(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	result := make([]string, 0, len(names))

	for _, name := range names {
		key := strings.ToLower(strings.TrimSpace(name))
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		result = append(result, name)
	}
	return result
}
