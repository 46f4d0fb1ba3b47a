package sauce

import (
	"strconv"
	"strings"

	"github.com/getmockd/mocksauce/pkg/jsonapi"
)

// PageSpec is a requested page. Both fields are positive.
type PageSpec struct {
	Number int
	Size   int
}

// PageMeta is the pagination metadata merged into a document's meta.
type PageMeta struct {
	Page  int `json:"page"`
	Size  int `json:"size"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}

// Map returns the metadata as document meta members.
func (m PageMeta) Map() map[string]any {
	return map[string]any{
		"page":  m.Page,
		"size":  m.Size,
		"total": m.Total,
		"pages": m.Pages,
	}
}

// ParsePage reads the page number and size parameters. It reports false
// unless both are present and parse as positive integers.
func ParsePage(params QueryParams, numberKey, sizeKey string) (PageSpec, bool) {
	number, ok := positiveInt(params[numberKey])
	if !ok {
		return PageSpec{}, false
	}
	size, ok := positiveInt(params[sizeKey])
	if !ok {
		return PageSpec{}, false
	}
	return PageSpec{Number: number, Size: size}, true
}

func positiveInt(s string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}

// Paginate returns page number page of the given size together with its
// metadata. Total counts the whole input. Pages past the end are empty.
func Paginate(data []*jsonapi.Resource, page, size int) ([]*jsonapi.Resource, PageMeta) {
	total := len(data)
	meta := PageMeta{Page: page, Size: size, Total: total}
	if size < 1 {
		return []*jsonapi.Resource{}, meta
	}
	meta.Pages = total / size
	if total%size != 0 {
		meta.Pages++
	}

	// compare page indexes before multiplying so huge values cannot wrap
	if page < 1 || page-1 >= meta.Pages {
		return []*jsonapi.Resource{}, meta
	}
	start := (page - 1) * size
	end := start + min(size, total-start)

	out := make([]*jsonapi.Resource, end-start)
	copy(out, data[start:end])
	return out, meta
}
