package jsonapi

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
)

// Identifier is a resource identifier object ({type, id}).
type Identifier struct {
	Type string `json:"type"`
	ID   string `json:"id"`
}

// UnmarshalJSON accepts string or numeric ids.
func (i *Identifier) UnmarshalJSON(b []byte) error {
	var raw struct {
		Type string          `json:"type"`
		ID   json.RawMessage `json:"id"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	id, err := decodeID(raw.ID)
	if err != nil {
		return err
	}
	i.Type = raw.Type
	i.ID = id
	return nil
}

// Relationship is a relationship object. Exactly one of ToOne/ToMany is
// meaningful, selected by IsMany. HasData records whether the "data" member
// was present at all, so a null to-one linkage survives a round trip.
type Relationship struct {
	ToOne   *Identifier
	ToMany  []Identifier
	IsMany  bool
	HasData bool
	Links   map[string]any
	Meta    map[string]any
}

// One builds a to-one relationship. A nil identifier encodes as null.
func One(id *Identifier) *Relationship {
	return &Relationship{ToOne: id, HasData: true}
}

// Many builds a to-many relationship.
func Many(ids ...Identifier) *Relationship {
	if ids == nil {
		ids = []Identifier{}
	}
	return &Relationship{ToMany: ids, IsMany: true, HasData: true}
}

type relationshipJSON struct {
	Data  json.RawMessage `json:"data,omitempty"`
	Links map[string]any  `json:"links,omitempty"`
	Meta  map[string]any  `json:"meta,omitempty"`
}

// MarshalJSON implements json.Marshaler.
func (r *Relationship) MarshalJSON() ([]byte, error) {
	out := relationshipJSON{Links: r.Links, Meta: r.Meta}
	var err error
	switch {
	case r.IsMany:
		ids := r.ToMany
		if ids == nil {
			ids = []Identifier{}
		}
		out.Data, err = json.Marshal(ids)
	case r.HasData:
		out.Data, err = json.Marshal(r.ToOne)
	}
	if err != nil {
		return nil, err
	}
	return json.Marshal(out)
}

// UnmarshalJSON implements json.Unmarshaler.
func (r *Relationship) UnmarshalJSON(b []byte) error {
	var raw relationshipJSON
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*r = Relationship{Links: raw.Links, Meta: raw.Meta}

	data := bytes.TrimSpace(raw.Data)
	if len(data) == 0 {
		return nil
	}
	r.HasData = true

	switch data[0] {
	case '[':
		r.IsMany = true
		r.ToMany = []Identifier{}
		return json.Unmarshal(data, &r.ToMany)
	case 'n':
		return nil
	default:
		var id Identifier
		if err := json.Unmarshal(data, &id); err != nil {
			return err
		}
		r.ToOne = &id
		return nil
	}
}

// Resource is a JSON:API resource object. Identity is (Type, ID).
type Resource struct {
	Type          string                   `json:"type"`
	ID            string                   `json:"id"`
	Attributes    map[string]any           `json:"attributes,omitempty"`
	Relationships map[string]*Relationship `json:"relationships,omitempty"`
	Links         map[string]any           `json:"links,omitempty"`
	Meta          map[string]any           `json:"meta,omitempty"`
}

// UnmarshalJSON accepts string or numeric ids.
func (r *Resource) UnmarshalJSON(b []byte) error {
	type resourceAlias Resource
	var raw struct {
		resourceAlias
		ID json.RawMessage `json:"id"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	id, err := decodeID(raw.ID)
	if err != nil {
		return err
	}
	*r = Resource(raw.resourceAlias)
	r.ID = id
	return nil
}

// Identifier returns the resource's identifier object.
func (r *Resource) Identifier() Identifier {
	return Identifier{Type: r.Type, ID: r.ID}
}

// Attribute returns the named attribute and whether the key is present.
func (r *Resource) Attribute(name string) (any, bool) {
	if r == nil || r.Attributes == nil {
		return nil, false
	}
	v, ok := r.Attributes[name]
	return v, ok
}

// Relationship returns the named relationship, or nil.
func (r *Resource) Relationship(name string) *Relationship {
	if r == nil || r.Relationships == nil {
		return nil
	}
	return r.Relationships[name]
}

// ToOneID returns the id of a to-one linkage. It reports false when the
// relationship is missing, to-many, or null.
func (r *Resource) ToOneID(name string) (string, bool) {
	rel := r.Relationship(name)
	if rel == nil || rel.IsMany || rel.ToOne == nil {
		return "", false
	}
	return rel.ToOne.ID, true
}

// ToManyIDs returns the ids of a to-many linkage. It reports false when the
// relationship is missing or to-one.
func (r *Resource) ToManyIDs(name string) ([]string, bool) {
	rel := r.Relationship(name)
	if rel == nil || !rel.IsMany {
		return nil, false
	}
	ids := make([]string, len(rel.ToMany))
	for i, id := range rel.ToMany {
		ids[i] = id.ID
	}
	return ids, true
}

// decodeID turns a JSON string or number into an id string.
func decodeID(raw json.RawMessage) (string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", nil
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", err
		}
		return s, nil
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return "", fmt.Errorf("%w: %s", ErrInvalidID, raw)
	}
	if i, err := n.Int64(); err == nil {
		return strconv.FormatInt(i, 10), nil
	}
	return n.String(), nil
}

// ErrInvalidID is returned when a resource id is neither a string nor a number.
var ErrInvalidID = errors.New("resource id must be a string or number")
