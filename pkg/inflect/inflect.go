// Package inflect provides the name normalisation helpers used to match query
// parameters against JSON:API member names and relationship types.
package inflect

import (
	"strings"

	"github.com/jinzhu/inflection"
	"github.com/stoewer/go-strcase"
	"golang.org/x/text/cases"
)

// Plural returns the plural inflection of a singular relationship name,
// e.g. "author" -> "authors", "person" -> "people".
func Plural(singular string) string {
	if singular == "" {
		return ""
	}
	return inflection.Plural(singular)
}

// Dasherize converts a member name to its dash-separated form
// ("authorId" -> "author-id", "first_name" -> "first-name").
// Dotted paths are converted segment by segment so the separators survive.
func Dasherize(name string) string {
	if name == "" {
		return ""
	}
	segments := strings.Split(name, ".")
	for i, seg := range segments {
		if seg == "" {
			continue
		}
		segments[i] = strcase.KebabCase(seg)
	}
	return strings.Join(segments, ".")
}

// Fold returns the case-folded form of s for case-insensitive comparison.
// A Caser may hold state, so each call builds its own.
func Fold(s string) string {
	return cases.Fold().String(s)
}

// SameType reports whether a resource type matches the plural of a
// relationship name, ignoring case.
func SameType(resourceType, relationship string) bool {
	return strings.EqualFold(resourceType, Plural(relationship))
}
