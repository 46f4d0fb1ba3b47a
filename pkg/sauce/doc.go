// Package sauce post-processes serialized JSON:API collection documents.
//
// A Serializer runs a fixed pipeline over a collection document using the
// request's query parameters:
//
//	filter[<property>]=v1,v2   -> Filter   (specs AND, values OR)
//	sort=[-]path               -> Sort     (one key, stable)
//	hook                       -> optional user transform
//	page[number]=N&page[size]=S -> Paginate (meta: page, size, total, pages)
//
// Single-resource documents pass through untouched. Relationship targets are
// resolved only through the document's included side-table.
//
// The pipeline never fails for a well-formed document. Unrecognised filters
// match everything, unresolvable relationships never match a filter and tie
// in a sort, and out-of-range pages are empty. Those outcomes are reported as
// debug-level diagnostics on the injected logger.
//
// Usage:
//
//	s := sauce.NewSerializer(sauce.Config{
//	    SearchFields: []string{"title"},
//	}, sauce.WithLogger(logger))
//
//	out := s.Serialize(doc, sauce.NewRequest(r.URL.Query()))
package sauce
