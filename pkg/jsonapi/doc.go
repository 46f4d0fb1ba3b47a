// Package jsonapi models the subset of JSON:API documents that mocksauce
// consumes and produces.
//
// A Document carries either a single primary Resource or a collection of
// them, an optional included side-table, and top-level meta. Relationship
// linkages are either to-one (an Identifier or null) or to-many (a list of
// Identifiers).
//
// Resource ids are accepted as JSON strings or numbers and always emitted as
// strings.
//
// # Included lookups
//
// Index builds a lookup over a document's included resources keyed by
// case-folded type and canonical id, so relationship targets resolve in
// constant time:
//
//	idx := jsonapi.NewIndex(doc.Included)
//	author, ok := idx.Find("authors", "2")
package jsonapi
