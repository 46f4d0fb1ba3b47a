package jsonapi

import (
	"bytes"
	"encoding/json"
)

// Document is a top-level JSON:API document. When collection is true the
// primary data is Collection; otherwise it is Single (nil encodes as null).
type Document struct {
	Single     *Resource
	Collection []*Resource
	Included   []*Resource
	Meta       map[string]any
	Links      map[string]any

	collection bool
}

// NewCollection returns a collection document over the given resources.
func NewCollection(data []*Resource, included []*Resource) *Document {
	if data == nil {
		data = []*Resource{}
	}
	return &Document{Collection: data, Included: included, collection: true}
}

// NewSingle returns a single-resource document.
func NewSingle(data *Resource, included []*Resource) *Document {
	return &Document{Single: data, Included: included}
}

// IsCollection reports whether the primary data is an array.
func (d *Document) IsCollection() bool {
	return d != nil && d.collection
}

// WithCollection returns a shallow copy of d whose primary data is data.
// The receiver is left untouched; included resources and meta are shared.
func (d *Document) WithCollection(data []*Resource) *Document {
	out := *d
	if data == nil {
		data = []*Resource{}
	}
	out.Collection = data
	out.Single = nil
	out.collection = true
	return &out
}

// WithMeta returns a shallow copy of d whose meta is the union of the
// existing meta and extra, extra winning on key conflicts.
func (d *Document) WithMeta(extra map[string]any) *Document {
	out := *d
	meta := make(map[string]any, len(d.Meta)+len(extra))
	for k, v := range d.Meta {
		meta[k] = v
	}
	for k, v := range extra {
		meta[k] = v
	}
	out.Meta = meta
	return &out
}

type documentJSON struct {
	Data     json.RawMessage `json:"data"`
	Included []*Resource     `json:"included,omitempty"`
	Meta     map[string]any  `json:"meta,omitempty"`
	Links    map[string]any  `json:"links,omitempty"`
}

// MarshalJSON implements json.Marshaler.
func (d *Document) MarshalJSON() ([]byte, error) {
	out := documentJSON{Included: d.Included, Meta: d.Meta, Links: d.Links}
	var err error
	if d.collection {
		data := d.Collection
		if data == nil {
			data = []*Resource{}
		}
		out.Data, err = json.Marshal(data)
	} else {
		out.Data, err = json.Marshal(d.Single)
	}
	if err != nil {
		return nil, err
	}
	return json.Marshal(out)
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Document) UnmarshalJSON(b []byte) error {
	var raw documentJSON
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*d = Document{Included: raw.Included, Meta: raw.Meta, Links: raw.Links}

	data := bytes.TrimSpace(raw.Data)
	switch {
	case len(data) == 0, bytes.Equal(data, []byte("null")):
		return nil
	case data[0] == '[':
		d.collection = true
		d.Collection = []*Resource{}
		return json.Unmarshal(data, &d.Collection)
	default:
		d.Single = &Resource{}
		return json.Unmarshal(data, d.Single)
	}
}

// Parse decodes a JSON:API document.
func Parse(b []byte) (*Document, error) {
	doc := &Document{}
	if err := json.Unmarshal(b, doc); err != nil {
		return nil, err
	}
	return doc, nil
}
