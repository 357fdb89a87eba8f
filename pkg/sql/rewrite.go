// Package sql post-processes generated SQL: a best-effort repair pass,
// mandatory tenant-scope enforcement, and a strict reject-only
// validation gate. Nothing the model returns is executed until it has
// passed through all three.
package sql

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/plantops/tripchat-engine/pkg/apperrors"
)

var (
	distinctPlacementPattern = regexp.MustCompile(`(?i)SELECT\s+(\w+),\s*DISTINCT`)
	whereAndPattern          = regexp.MustCompile(`(?i)\bWHERE\s+AND\b`)
	plantLiteralPattern      = regexp.MustCompile(`(?i)plant_?code\s*=\s*'[^']*'`)
	plantConnectorPattern    = regexp.MustCompile(`(?i)\s+(?:AND|OR)\s+plant_?code\s*=\s*'[^']*'`)
	wherePattern             = regexp.MustCompile(`(?i)\bWHERE\s+`)
	trailingLimitPattern     = regexp.MustCompile(`(?i)\bLIMIT\s+\d+\s*$`)
	countRewritePattern      = regexp.MustCompile(`(?i)SELECT DISTINCT (\w+)`)
)

// Repair applies the best-effort formatting fixes that are safe to do
// blindly: whitespace normalization, trailing terminator removal, the
// common "SELECT col, DISTINCT" transposition, and a stray "WHERE AND".
// Repair never rejects; that is the gate's job.
func Repair(query string) string {
	query = collapseWhitespace(query)
	query = strings.TrimRight(query, "; ")
	query = distinctPlacementPattern.ReplaceAllString(query, "SELECT DISTINCT $1,")
	query = whereAndPattern.ReplaceAllString(query, "WHERE")
	return query
}

// collapseWhitespace reduces runs of whitespace to single spaces and
// strips the ends, leaving single-quoted literals untouched.
func collapseWhitespace(query string) string {
	var b strings.Builder
	b.Grow(len(query))

	inLiteral := false
	pendingSpace := false
	for _, char := range query {
		if inLiteral {
			b.WriteRune(char)
			if char == '\'' {
				inLiteral = false
			}
			continue
		}
		if unicode.IsSpace(char) {
			pendingSpace = true
			continue
		}
		if pendingSpace && b.Len() > 0 {
			b.WriteByte(' ')
		}
		pendingSpace = false
		if char == '\'' {
			inLiteral = true
		}
		b.WriteRune(char)
	}
	return b.String()
}

// EnforceTenant makes the authorized plant code the only tenant scope in
// the query. Existing plant-code literals are reduced to a single
// predicate carrying the authorized value no matter how many the model
// produced; a missing predicate is injected at the first WHERE clause,
// or as a new WHERE clause before a trailing LIMIT, or appended.
// Without an authorized plant code this fails closed.
func EnforceTenant(query, plantCode string) (string, error) {
	if plantCode == "" {
		return "", apperrors.ErrMissingTenantScope
	}
	predicate := "plantCode = '" + strings.ReplaceAll(plantCode, "'", "''") + "'"

	if plantLiteralPattern.MatchString(query) {
		// Drop every plant predicate attached with a connector first, so
		// the enforced scope appears exactly once no matter how many the
		// model produced.
		query = plantConnectorPattern.ReplaceAllString(query, "")
		if plantLiteralPattern.MatchString(query) {
			return plantLiteralPattern.ReplaceAllString(query, predicate), nil
		}
		// All literals were connector-attached; inject below instead.
	}

	// No literal plant-code comparison present. Even if the column shows
	// up in some other shape (an IN list, a join condition), the
	// authorized predicate is still injected; conjunction can only
	// narrow the scope further.
	if loc := wherePattern.FindStringIndex(query); loc != nil {
		return query[:loc[1]] + predicate + " AND " + query[loc[1]:], nil
	}
	if loc := trailingLimitPattern.FindStringIndex(query); loc != nil {
		return query[:loc[0]] + "WHERE " + predicate + " " + query[loc[0]:], nil
	}
	return query + " WHERE " + predicate, nil
}

// RewriteCount turns the first "SELECT DISTINCT col" into
// "SELECT COUNT(DISTINCT col)" for count questions. A query that already
// aggregates is left alone so COUNT(DISTINCT COUNT(...)) can never be
// produced.
func RewriteCount(query string) string {
	if strings.Contains(strings.ToUpper(query), "COUNT(") {
		return query
	}
	loc := countRewritePattern.FindStringSubmatchIndex(query)
	if loc == nil {
		return query
	}
	col := query[loc[2]:loc[3]]
	return query[:loc[0]] + "SELECT COUNT(DISTINCT " + col + ")" + query[loc[1]:]
}
