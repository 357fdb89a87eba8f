package nlu

import (
	"regexp"
	"strings"
	"unicode"
)

// dateRewrites maps relative date phrases to MySQL relative-date
// expressions anchored at NOW(). All patterns are applied, not just the
// first match, so an utterance can carry several date phrases.
var dateRewrites = []struct {
	re   *regexp.Regexp
	repl string
}{
	{regexp.MustCompile(`(?i)\b(?:last|past)\s+(\d+)\s+days?\b`), "DATE_SUB(NOW(), INTERVAL $1 DAY)"},
	{regexp.MustCompile(`(?i)\b(?:last|past)\s+(\d+)\s+weeks?\b`), "DATE_SUB(NOW(), INTERVAL $1 WEEK)"},
	{regexp.MustCompile(`(?i)\b(?:last|past)\s+(\d+)\s+months?\b`), "DATE_SUB(NOW(), INTERVAL $1 MONTH)"},
	{regexp.MustCompile(`(?i)\b(?:last|past)\s+(\d+)\s+years?\b`), "DATE_SUB(NOW(), INTERVAL $1 YEAR)"},
	{regexp.MustCompile(`(?i)\bfrom\s+(\d+)\s+days?\s+ago\b`), "DATE_SUB(NOW(), INTERVAL $1 DAY)"},
	{regexp.MustCompile(`(?i)\bfrom\s+(\d+)\s+weeks?\s+ago\b`), "DATE_SUB(NOW(), INTERVAL $1 WEEK)"},
	{regexp.MustCompile(`(?i)\bfrom\s+(\d+)\s+months?\s+ago\b`), "DATE_SUB(NOW(), INTERVAL $1 MONTH)"},
	{regexp.MustCompile(`(?i)\bfrom\s+(\d+)\s+years?\s+ago\b`), "DATE_SUB(NOW(), INTERVAL $1 YEAR)"},
}

// RewriteDates converts relative date phrases like "last 2 months" or
// "from 3 weeks ago" into DATE_SUB expressions. Already rewritten text
// contains no matching phrase, so the rewrite is idempotent.
func RewriteDates(utterance string) string {
	for _, r := range dateRewrites {
		utterance = r.re.ReplaceAllString(utterance, r.repl)
	}
	return utterance
}

var countPattern = regexp.MustCompile(`(?i)\b(?:how many|number of|count of)\b`)

// booleanLeads are the tokens that mark an utterance as a yes/no
// question when they appear first.
var booleanLeads = map[string]bool{
	"is": true, "are": true, "does": true, "can": true,
	"whether": true, "if": true, "has": true, "have": true,
}

// Analysis is the normalizer's verdict on one utterance. Boolean and
// Count are independent flags; Gibberish short-circuits the pipeline.
type Analysis struct {
	Gibberish bool
	Boolean   bool
	Count     bool
}

func Analyze(utterance string) Analysis {
	return Analysis{
		Gibberish: IsGibberish(utterance),
		Boolean:   IsBooleanQuestion(utterance),
		Count:     IsCountQuestion(utterance),
	}
}

// IsGibberish reports whether an utterance is not worth sending to
// generation: fewer than two tokens, or more than 80% of its characters
// neither alphanumeric nor whitespace.
func IsGibberish(utterance string) bool {
	if len(strings.Fields(utterance)) < 2 {
		return true
	}
	total, symbols := 0, 0
	for _, r := range utterance {
		total++
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && !unicode.IsSpace(r) {
			symbols++
		}
	}
	return float64(symbols) > 0.8*float64(total)
}

// IsBooleanQuestion reports whether the first token marks a yes/no
// question.
func IsBooleanQuestion(utterance string) bool {
	fields := strings.Fields(utterance)
	if len(fields) == 0 {
		return false
	}
	return booleanLeads[strings.ToLower(fields[0])]
}

// IsCountQuestion reports whether the utterance asks for a count.
func IsCountQuestion(utterance string) bool {
	return countPattern.MatchString(utterance)
}
