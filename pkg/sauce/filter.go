package sauce

import (
	"log/slog"
	"slices"
	"strings"

	"github.com/getmockd/mocksauce/pkg/inflect"
	"github.com/getmockd/mocksauce/pkg/jsonapi"
	"github.com/getmockd/mocksauce/pkg/logging"
)

// FilterOptions configures Filter.
type FilterOptions struct {
	// IgnoreList names filter properties that are skipped entirely.
	IgnoreList []string
	// SearchKey is the property that triggers a fuzzy search (default "search").
	SearchKey string
	// SearchFields are the attributes searched by SearchKey.
	SearchFields []string
	// Logger receives diagnostics. Nil means no logging.
	Logger *slog.Logger
}

// Filter returns the resources in data that satisfy every spec, preserving
// their order. Within a spec a resource matches when any value matches. For
// each value the first applicable rule decides:
//
//  1. property is the search key: MatchSearch
//  2. property is an attribute of the resource: exact string match
//  3. property ends in "-id": to-one linkage id equals the value
//  4. property ends in "-ids": any to-many linkage id equals the value
//  5. property contains ".": resolve the relationship path and compare the
//     final attribute (or "id") with LooseEquals
//  6. anything else matches
//
// Rules 3 and 4 never match when the relationship's type is absent from the
// included index.
func Filter(data []*jsonapi.Resource, idx *jsonapi.Index, specs []FilterSpec, opts FilterOptions) []*jsonapi.Resource {
	log := opts.Logger
	if log == nil {
		log = logging.Nop()
	}
	searchKey := opts.SearchKey
	if searchKey == "" {
		searchKey = DefaultSearchKey
	}

	result := slices.Clone(data)
	for _, spec := range specs {
		if isIgnored(spec.Property, opts.IgnoreList) {
			log.Debug("filter ignored", "property", spec.Property)
			continue
		}

		f := newSpecFilter(spec, idx, searchKey, opts.SearchFields, log)
		kept := make([]*jsonapi.Resource, 0, len(result))
		for _, r := range result {
			if f.matches(r) {
				kept = append(kept, r)
			}
		}
		log.Debug("filter applied", "property", spec.Property, "values", spec.Values, "before", len(result), "after", len(kept))
		result = kept
	}
	return result
}

func isIgnored(property string, ignore []string) bool {
	dashed := inflect.Dasherize(property)
	for _, name := range ignore {
		if name == property || inflect.Dasherize(name) == dashed {
			return true
		}
	}
	return false
}

type specFilter struct {
	spec         FilterSpec
	property     string
	idx          *jsonapi.Index
	search       bool
	searchFields []string
	log          *slog.Logger

	// reported suppresses repeated diagnostics for the same spec
	reported map[string]bool
}

func newSpecFilter(spec FilterSpec, idx *jsonapi.Index, searchKey string, fields []string, log *slog.Logger) *specFilter {
	property := inflect.Dasherize(spec.Property)
	return &specFilter{
		spec:         spec,
		property:     property,
		idx:          idx,
		search:       spec.Property == searchKey || property == searchKey,
		searchFields: fields,
		log:          log,
		reported:     make(map[string]bool),
	}
}

func (f *specFilter) matches(r *jsonapi.Resource) bool {
	for _, value := range f.spec.Values {
		if f.matchValue(r, value) {
			return true
		}
	}
	return false
}

func (f *specFilter) matchValue(r *jsonapi.Resource, value string) bool {
	if f.search {
		return MatchSearch(r, value, f.searchFields)
	}

	if attr, ok := r.Attribute(f.property); ok {
		s, ok := ToComparableString(attr)
		return ok && s == value
	}

	switch {
	case strings.HasSuffix(f.property, "-ids"):
		return f.matchToMany(r, strings.TrimSuffix(f.property, "-ids"), value)
	case strings.HasSuffix(f.property, "-id"):
		return f.matchToOne(r, strings.TrimSuffix(f.property, "-id"), value)
	case strings.Contains(f.property, "."):
		return f.matchPath(r, value)
	}

	f.report("unrecognised filter", "matching all records")
	return true
}

func (f *specFilter) matchToOne(r *jsonapi.Resource, relationship, value string) bool {
	if !f.typeIncluded(relationship) {
		return false
	}
	id, ok := r.ToOneID(relationship)
	return ok && IDEquals(id, value)
}

func (f *specFilter) matchToMany(r *jsonapi.Resource, relationship, value string) bool {
	if !f.typeIncluded(relationship) {
		return false
	}
	ids, ok := r.ToManyIDs(inflect.Plural(relationship))
	if !ok {
		ids, ok = r.ToManyIDs(relationship)
	}
	if !ok {
		return false
	}
	for _, id := range ids {
		if IDEquals(id, value) {
			return true
		}
	}
	return false
}

func (f *specFilter) matchPath(r *jsonapi.Resource, value string) bool {
	segments := strings.Split(f.property, ".")
	member := segments[len(segments)-1]
	path := strings.Join(segments[:len(segments)-1], ".")

	related, ok := Resolve(r, f.idx, path)
	if !ok {
		return false
	}
	if member == "id" {
		return IDEquals(related.ID, value)
	}
	v, ok := related.Attribute(member)
	return ok && LooseEquals(v, value)
}

func (f *specFilter) typeIncluded(relationship string) bool {
	typ := inflect.Plural(relationship)
	if f.idx.HasType(typ) {
		return true
	}
	f.report("relationship type not included", "no record can match", "type", typ)
	return false
}

func (f *specFilter) report(reason, outcome string, args ...any) {
	if f.reported[reason] {
		return
	}
	f.reported[reason] = true
	attrs := append([]any{"property", f.spec.Property, "reason", reason, "outcome", outcome}, args...)
	f.log.Debug("filter diagnostic", attrs...)
}
