package sauce

import (
	"strings"

	"github.com/getmockd/mocksauce/pkg/inflect"
	"github.com/getmockd/mocksauce/pkg/jsonapi"
)

// Resolve follows a dot-separated chain of to-one relationships from record
// through the included index and returns the last resource reached. A
// trailing literal "id" segment is ignored. Each hop reads the linkage id of
// the named relationship and looks it up under the plural of the name.
// Resolve reports false as soon as a linkage is missing or null, or its
// target is not included.
func Resolve(record *jsonapi.Resource, idx *jsonapi.Index, path string) (*jsonapi.Resource, bool) {
	if record == nil || path == "" {
		return nil, false
	}

	segments := strings.Split(path, ".")
	if n := len(segments); n > 1 && segments[n-1] == "id" {
		segments = segments[:n-1]
	}

	current := record
	for _, segment := range segments {
		if segment == "" {
			return nil, false
		}
		id, ok := current.ToOneID(segment)
		if !ok {
			return nil, false
		}
		next, ok := idx.Find(inflect.Plural(segment), id)
		if !ok {
			return nil, false
		}
		current = next
	}
	return current, true
}

// memberValue reads "id" or an attribute from a resolved resource.
func memberValue(r *jsonapi.Resource, member string) (any, bool) {
	if member == "id" {
		return r.ID, true
	}
	return r.Attribute(member)
}
