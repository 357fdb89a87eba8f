package sql

import (
	"fmt"
	"regexp"
	"strings"

	libinjection "github.com/corazawaf/libinjection-go"
)

// restrictedKeywords are rejected as whole words anywhere in the query.
// This gate is defense in depth on top of a read-only database account,
// not a substitute for parameterization.
var restrictedKeywords = []string{
	"delete", "update", "insert", "truncate", "drop", "alter", "create",
	"replace", "grant", "revoke", "execute", "call", "union", "into",
	"load", "outfile", "dumpfile", "shutdown", "lock", "set",
}

var (
	keywordPatterns   = compileKeywordPatterns()
	fromPattern       = regexp.MustCompile(`(?i)\bfrom\b`)
	comparisonPattern = regexp.MustCompile(`(?i)\b\w+\s*(=|IN|LIKE|BETWEEN|>=|<=|>|<)\s*[\w'"(]`)
	stringLiteral     = regexp.MustCompile(`'([^']*)'`)
)

func compileKeywordPatterns() map[string]*regexp.Regexp {
	m := make(map[string]*regexp.Regexp, len(restrictedKeywords))
	for _, kw := range restrictedKeywords {
		m[kw] = regexp.MustCompile(`\b` + regexp.QuoteMeta(kw) + `\b`)
	}
	return m
}

// Validate runs the reject-only checks on a repaired query. The returned
// reason is meant for logs and never shown verbatim to end users.
func Validate(query string) (bool, string) {
	trimmed := strings.TrimSpace(query)
	lower := strings.ToLower(trimmed)

	if !strings.HasPrefix(lower, "select") {
		return false, "query does not start with SELECT"
	}

	for _, kw := range restrictedKeywords {
		if keywordPatterns[kw].MatchString(lower) {
			return false, fmt.Sprintf("restricted keyword %q", kw)
		}
	}
	if strings.Contains(trimmed, "--") {
		return false, "comment token --"
	}
	if strings.Contains(trimmed, "/*") || strings.Contains(trimmed, "*/") {
		return false, "comment token /* or */"
	}
	if hasSemicolonOutsideStrings(strings.TrimRight(trimmed, "; ")) {
		return false, "multiple statements"
	}

	if !fromPattern.MatchString(lower) {
		return false, "missing FROM clause"
	}
	if strings.Count(trimmed, "(") != strings.Count(trimmed, ")") {
		return false, "unbalanced parentheses"
	}
	if strings.Contains(lower, "where") && !comparisonPattern.MatchString(trimmed) {
		return false, "WHERE clause without a comparison"
	}

	for _, m := range stringLiteral.FindAllStringSubmatch(trimmed, -1) {
		if isSQLi, fingerprint := libinjection.IsSQLi(m[1]); isSQLi {
			return false, fmt.Sprintf("injection pattern in literal (fingerprint %s)", fingerprint)
		}
	}

	return true, ""
}

// hasSemicolonOutsideStrings scans for a statement separator that is not
// inside a string literal. A trailing terminator is stripped by the
// caller before this runs, so any hit means a second statement.
func hasSemicolonOutsideStrings(query string) bool {
	const (
		stateNormal = iota
		stateSingleQuote
		stateDoubleQuote
	)

	state := stateNormal
	prev := rune(0)

	for _, char := range query {
		switch state {
		case stateNormal:
			switch char {
			case ';':
				return true
			case '\'':
				state = stateSingleQuote
			case '"':
				state = stateDoubleQuote
			}
		case stateSingleQuote:
			if char == '\'' && prev != '\\' {
				state = stateNormal
			}
		case stateDoubleQuote:
			if char == '"' && prev != '\\' {
				state = stateNormal
			}
		}
		prev = char
	}

	return false
}
