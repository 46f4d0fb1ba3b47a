package sauce

import (
	"net/url"
	"slices"
	"strings"
)

// QueryParams is a flat view of request query parameters.
type QueryParams map[string]string

// ParamsFromValues flattens url.Values. Repeated keys are joined with ","
// so that filter[x]=a&filter[x]=b behaves like filter[x]=a,b.
func ParamsFromValues(values url.Values) QueryParams {
	params := make(QueryParams, len(values))
	for key, vals := range values {
		nonEmpty := make([]string, 0, len(vals))
		for _, v := range vals {
			if v != "" {
				nonEmpty = append(nonEmpty, v)
			}
		}
		params[key] = strings.Join(nonEmpty, ",")
	}
	return params
}

// Request is the part of an HTTP request the pipeline reads.
type Request struct {
	QueryParams QueryParams
}

// NewRequest builds a Request from parsed query values.
func NewRequest(values url.Values) *Request {
	return &Request{QueryParams: ParamsFromValues(values)}
}

// FilterSpec is one filter[<property>] parameter. Values form an OR group.
type FilterSpec struct {
	Property string
	Values   []string
}

// ExtractFilters returns a FilterSpec for every "<key>[<property>]" parameter
// with a non-empty value. Other parameters are ignored. Results are ordered
// by property.
func ExtractFilters(params QueryParams, key string) []FilterSpec {
	if key == "" {
		key = DefaultFilterKey
	}
	prefix := key + "["

	var specs []FilterSpec
	for name, value := range params {
		if !strings.HasPrefix(name, prefix) || !strings.HasSuffix(name, "]") {
			continue
		}
		property := name[len(prefix) : len(name)-1]
		if property == "" || value == "" {
			continue
		}
		specs = append(specs, FilterSpec{
			Property: property,
			Values:   strings.Split(value, ","),
		})
	}

	slices.SortFunc(specs, func(a, b FilterSpec) int {
		return strings.Compare(a.Property, b.Property)
	})
	return specs
}
