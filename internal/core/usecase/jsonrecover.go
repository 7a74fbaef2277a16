package usecase

import (
	"encoding/json"
	"regexp"
	"strings"
)

// AI responses rarely contain clean JSON. Each recovery step below is a
// pure strategy tried in order; the first one to produce a usable value
// wins. Later steps are increasingly lenient.

type arrayStrategy func(text string) ([]string, bool)

var arrayStrategies = []arrayStrategy{
	parseFirstBalancedArray,
	parseWholeAsArray,
	parseAnyBracketedArray,
	parseQuotedFragments,
	parseBracketSpan,
}

// recoverStringArray runs the array strategy ladder over raw model output.
// Recovered entries are trimmed and empty entries dropped.
func recoverStringArray(raw string) ([]string, bool) {
	for _, strategy := range arrayStrategies {
		values, ok := strategy(raw)
		if !ok {
			continue
		}
		cleaned := trimNonEmpty(values)
		if len(cleaned) > 0 {
			return cleaned, true
		}
	}
	return nil, false
}

func parseFirstBalancedArray(text string) ([]string, bool) {
	start := strings.Index(text, "[")
	if start < 0 {
		return nil, false
	}
	end := matchingBracket(text, start, '[', ']')
	if end < 0 {
		return nil, false
	}
	return unmarshalStringArray(text[start : end+1])
}

func parseWholeAsArray(text string) ([]string, bool) {
	return unmarshalStringArray(strings.TrimSpace(text))
}

func parseAnyBracketedArray(text string) ([]string, bool) {
	for i := 0; i < len(text); i++ {
		if text[i] != '[' {
			continue
		}
		end := matchingBracket(text, i, '[', ']')
		if end < 0 {
			continue
		}
		if values, ok := unmarshalStringArray(text[i : end+1]); ok {
			return values, true
		}
	}
	return nil, false
}

var quotedFragment = regexp.MustCompile(`"([^"]{1,99})"`)

func parseQuotedFragments(text string) ([]string, bool) {
	matches := quotedFragment.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return nil, false
	}
	values := make([]string, 0, len(matches))
	for _, match := range matches {
		values = append(values, match[1])
	}
	return values, true
}

func parseBracketSpan(text string) ([]string, bool) {
	start := strings.Index(text, "[")
	if start < 0 {
		return nil, false
	}
	end := matchingBracket(text, start, '[', ']')
	if end < 0 {
		end = strings.LastIndex(text, "]")
	}
	if end <= start {
		return nil, false
	}

	var values []string
	for _, part := range strings.Split(text[start+1:end], ",") {
		values = append(values, strings.Trim(part, "\"'`[] \t\r\n.;:"))
	}
	if len(values) == 0 {
		return nil, false
	}
	return values, true
}

type objectStrategy func(text string) (map[string]any, bool)

var objectStrategies = []objectStrategy{
	parseFirstBraceMatch,
	parseWholeAsObject,
	parseAnyBraceMatch,
	parseBalancedObjectScan,
}

// recoverJSONObject runs the object strategy ladder over raw model output.
func recoverJSONObject(raw string) (map[string]any, bool) {
	for _, strategy := range objectStrategies {
		if obj, ok := strategy(raw); ok {
			return obj, true
		}
	}
	return nil, false
}

var lazyBraceMatch = regexp.MustCompile(`(?s)\{.*?\}`)

func parseFirstBraceMatch(text string) (map[string]any, bool) {
	match := lazyBraceMatch.FindString(text)
	if match == "" {
		return nil, false
	}
	return unmarshalObject(match)
}

func parseWholeAsObject(text string) (map[string]any, bool) {
	return unmarshalObject(strings.TrimSpace(text))
}

func parseAnyBraceMatch(text string) (map[string]any, bool) {
	for _, match := range lazyBraceMatch.FindAllString(text, -1) {
		if obj, ok := unmarshalObject(match); ok {
			return obj, true
		}
	}
	return nil, false
}

// parseBalancedObjectScan recovers the first complete object from noisy or
// prefixed text by tracking brace depth.
func parseBalancedObjectScan(text string) (map[string]any, bool) {
	start := strings.Index(text, "{")
	if start < 0 {
		return nil, false
	}
	end := matchingBracket(text, start, '{', '}')
	if end < 0 {
		return nil, false
	}
	return unmarshalObject(text[start : end+1])
}

func matchingBracket(text string, start int, opener, closer byte) int {
	depth := 0
	inString := false
	for i := start; i < len(text); i++ {
		c := text[i]
		switch {
		case inString:
			if c == '\\' {
				i++
			} else if c == '"' {
				inString = false
			}
		case c == '"':
			inString = true
		case c == opener:
			depth++
		case c == closer:
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

func unmarshalStringArray(fragment string) ([]string, bool) {
	var values []string
	if err := json.Unmarshal([]byte(fragment), &values); err == nil {
		return values, true
	}

	// Tolerate mixed arrays and keep only the string entries.
	var mixed []any
	if err := json.Unmarshal([]byte(fragment), &mixed); err != nil {
		return nil, false
	}
	values = values[:0]
	for _, entry := range mixed {
		if s, ok := entry.(string); ok {
			values = append(values, s)
		}
	}
	return values, true
}

func unmarshalObject(fragment string) (map[string]any, bool) {
	var obj map[string]any
	if err := json.Unmarshal([]byte(fragment), &obj); err != nil {
		return nil, false
	}
	return obj, true
}

func trimNonEmpty(values []string) []string {
	cleaned := make([]string, 0, len(values))
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			cleaned = append(cleaned, trimmed)
		}
	}
	return cleaned
}
