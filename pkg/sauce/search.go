package sauce

import (
	"strings"

	"github.com/getmockd/mocksauce/pkg/inflect"
	"github.com/getmockd/mocksauce/pkg/jsonapi"
)

// MatchSearch reports whether any of fields, case-folded, contains term.
// With no fields configured every record matches.
func MatchSearch(record *jsonapi.Resource, term string, fields []string) bool {
	if len(fields) == 0 {
		return true
	}

	folded := inflect.Fold(term)
	for _, field := range fields {
		v, ok := record.Attribute(field)
		if !ok {
			continue
		}
		s, ok := ToComparableString(v)
		if !ok || s == "" {
			continue
		}
		if strings.Contains(inflect.Fold(s), folded) {
			return true
		}
	}
	return false
}
