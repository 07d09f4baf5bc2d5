// ABOUTME: Case-insensitive text matching helpers shared by stores and views
// ABOUTME: Folds case with x/text and escapes SQL LIKE metacharacters

package textmatch

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// LikeEscape is the escape character used by LikePattern.
const LikeEscape = `\`

// Fold normalizes s for case-insensitive comparison.
// A Caser is stateful, so a fresh one is built per call.
func Fold(s string) string {
	return cases.Fold().String(norm.NFC.String(s))
}

// Normalize trims the query and folds its case. Blank input yields "".
func Normalize(query string) string {
	return Fold(strings.TrimSpace(query))
}

// Contains reports whether text contains query, ignoring case.
// An empty or blank query matches everything.
func Contains(text, query string) bool {
	q := Normalize(query)
	if q == "" {
		return true
	}
	return strings.Contains(Fold(text), q)
}

var likeReplacer = strings.NewReplacer(
	`\`, `\\`,
	`%`, `\%`,
	`_`, `\_`,
	`[`, `\[`,
)

// EscapeLike escapes LIKE metacharacters so they match literally
// when the pattern is used with ESCAPE '\'.
func EscapeLike(s string) string {
	return likeReplacer.Replace(s)
}

// LikePattern builds a substring pattern for a folded, escaped query.
func LikePattern(query string) string {
	return "%" + EscapeLike(Normalize(query)) + "%"
}
