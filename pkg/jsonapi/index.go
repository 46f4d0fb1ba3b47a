package jsonapi

import (
	"strconv"
	"strings"
)

type indexKey struct {
	typ string
	id  string
}

// Index is a read-only lookup over included resources.
type Index struct {
	byKey map[indexKey]*Resource
	types map[string]struct{}
}

// NewIndex indexes the given resources. The first resource wins when the
// same identity appears twice.
func NewIndex(included []*Resource) *Index {
	idx := &Index{
		byKey: make(map[indexKey]*Resource, len(included)),
		types: make(map[string]struct{}),
	}
	for _, r := range included {
		if r == nil {
			continue
		}
		key := indexKey{typ: strings.ToLower(r.Type), id: CanonicalID(r.ID)}
		if _, exists := idx.byKey[key]; !exists {
			idx.byKey[key] = r
		}
		idx.types[key.typ] = struct{}{}
	}
	return idx
}

// Find returns the included resource with the given type (case-insensitive)
// and id.
func (idx *Index) Find(typ, id string) (*Resource, bool) {
	if idx == nil {
		return nil, false
	}
	r, ok := idx.byKey[indexKey{typ: strings.ToLower(typ), id: CanonicalID(id)}]
	return r, ok
}

// HasType reports whether any included resource has the given type.
func (idx *Index) HasType(typ string) bool {
	if idx == nil {
		return false
	}
	_, ok := idx.types[strings.ToLower(typ)]
	return ok
}

// Len returns the number of indexed resources.
func (idx *Index) Len() int {
	if idx == nil {
		return 0
	}
	return len(idx.byKey)
}

// CanonicalID normalises integer-looking ids ("007" -> "7") so ids compare
// the way integer-coerced ids do. Other ids are returned unchanged.
func CanonicalID(id string) string {
	if n, err := strconv.ParseInt(strings.TrimSpace(id), 10, 64); err == nil {
		return strconv.FormatInt(n, 10)
	}
	return id
}
