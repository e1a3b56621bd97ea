package match

import (
	"regexp"
	"sort"
	"strings"
)

var whitespacePattern = regexp.MustCompile(`\s+`)

// abbreviationRule expands one whole-word shorthand occurrence by appending
// its expansion after it.
type abbreviationRule struct {
	pattern     *regexp.Regexp
	replacement string
}

// compileAbbreviations builds the expansion rules in deterministic order.
func compileAbbreviations(abbreviations map[string]string) []abbreviationRule {
	keys := make([]string, 0, len(abbreviations))
	for k := range abbreviations {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	rules := make([]abbreviationRule, 0, len(keys))
	for _, abbrev := range keys {
		rules = append(rules, abbreviationRule{
			pattern:     regexp.MustCompile(`\b` + regexp.QuoteMeta(strings.ToLower(abbrev)) + `\b`),
			replacement: strings.ToLower(abbrev) + " " + abbreviations[abbrev],
		})
	}
	return rules
}

// preprocess normalizes a question for retrieval: lowercase, expand
// abbreviations in place (shorthand kept, expansion appended), drop
// punctuation, squeeze whitespace. The original question text is left for
// concept extraction and interception, which match on raw phrasing.
func preprocess(text string, rules []abbreviationRule) string {
	if text == "" {
		return ""
	}

	text = strings.ToLower(text)

	for _, rule := range rules {
		text = rule.pattern.ReplaceAllString(text, rule.replacement)
	}

	text = whitespacePattern.ReplaceAllString(text, " ")

	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r == ' ' || r == '_' {
			b.WriteRune(r)
		} else {
			b.WriteRune(' ')
		}
	}

	return strings.TrimSpace(whitespacePattern.ReplaceAllString(b.String(), " "))
}
