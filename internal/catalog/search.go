package catalog

import (
	"strings"

	"golang.org/x/text/cases"
)

// likeEscaper escapes the LIKE wildcards; patterns use ESCAPE '\'.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// NormalizeQuery trims the search text. An empty result disables search.
func NormalizeQuery(query string) string {
	return strings.TrimSpace(query)
}

// Matches reports whether a row is selected by query. The exercise name and
// the joined variant name are OR'd, so a renamed variant is findable by its
// own name. An empty query matches everything.
func Matches(exerciseName string, variantName *string, query string) bool {
	query = NormalizeQuery(query)
	if query == "" {
		return true
	}
	needle := Fold(query)
	if strings.Contains(Fold(exerciseName), needle) {
		return true
	}
	return variantName != nil && strings.Contains(Fold(*variantName), needle)
}

// LikePattern turns query into a case-folded, escaped "%query%" pattern for
// SQL stores. Callers compare it against the column passed through Fold.
func LikePattern(query string) string {
	return "%" + likeEscaper.Replace(Fold(NormalizeQuery(query))) + "%"
}

// Fold is the Unicode case folding used by every name comparison.
// A Caser is stateful, so each call gets its own.
func Fold(s string) string {
	return cases.Fold().String(s)
}
