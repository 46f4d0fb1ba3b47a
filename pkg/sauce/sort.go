package sauce

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/getmockd/mocksauce/pkg/inflect"
	"github.com/getmockd/mocksauce/pkg/jsonapi"
)

// SortSpec is a parsed sort parameter.
type SortSpec struct {
	Path       string
	Descending bool
}

// ParseSort splits an optional leading "-" from a sort parameter and
// dasherizes the remaining path.
func ParseSort(param string) SortSpec {
	desc := strings.HasPrefix(param, "-")
	return SortSpec{
		Path:       inflect.Dasherize(strings.TrimPrefix(param, "-")),
		Descending: desc,
	}
}

// Sort returns a reordered copy of data. An empty sortParam keeps the input
// order. A single-segment path sorts by attribute, with missing values first.
// A two-segment path "relationship.attribute" (or "relationship.id") sorts by
// the resolved related resource, and pairs where either side cannot be
// resolved compare equal. The sort is stable and ascending; descending order
// reverses the sorted slice.
//
// Longer paths return ErrUnsupportedSortPath together with an unsorted copy.
func Sort(data []*jsonapi.Resource, idx *jsonapi.Index, sortParam string) ([]*jsonapi.Resource, error) {
	out := slices.Clone(data)
	if sortParam == "" || len(out) == 0 {
		return out, nil
	}

	spec := ParseSort(sortParam)
	if spec.Path == "" {
		return out, nil
	}

	segments := strings.Split(spec.Path, ".")
	var compare func(a, b *jsonapi.Resource) int

	switch len(segments) {
	case 1:
		attr := segments[0]
		compare = func(a, b *jsonapi.Resource) int {
			av, aok := a.Attribute(attr)
			bv, bok := b.Attribute(attr)
			aok = aok && av != nil
			bok = bok && bv != nil
			switch {
			case !aok && !bok:
				return 0
			case !aok:
				return -1
			case !bok:
				return 1
			}
			return CompareValues(av, bv)
		}
	case 2:
		relationship, member := segments[0], segments[1]
		compare = func(a, b *jsonapi.Resource) int {
			av, aok := relatedValue(a, idx, relationship, member)
			bv, bok := relatedValue(b, idx, relationship, member)
			if !aok || !bok {
				return 0
			}
			return CompareValues(av, bv)
		}
	default:
		return out, fmt.Errorf("%w: %q", ErrUnsupportedSortPath, sortParam)
	}

	slices.SortStableFunc(out, compare)
	if spec.Descending {
		slices.Reverse(out)
	}
	return out, nil
}

func relatedValue(r *jsonapi.Resource, idx *jsonapi.Index, relationship, member string) (any, bool) {
	related, ok := Resolve(r, idx, relationship)
	if !ok {
		return nil, false
	}
	v, ok := memberValue(related, member)
	return v, ok && v != nil
}

// CompareValues orders two scalar values. When both render as numeric
// literals they compare numerically, otherwise as strings.
func CompareValues(a, b any) int {
	as, _ := ToComparableString(a)
	bs, _ := ToComparableString(b)
	if an, ok := parseNumber(as); ok {
		if bn, ok := parseNumber(bs); ok {
			return cmp.Compare(an, bn)
		}
	}
	return strings.Compare(as, bs)
}
