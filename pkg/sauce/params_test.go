package sauce

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractFilters(t *testing.T) {
	params := QueryParams{
		"filter[authorId]": "2",
		"filter[tagIds]":   "2,3",
		"filter[title]":    "",
		"filter":           "ignored",
		"sort":             "-age",
		"page[number]":     "1",
		"filterx[foo]":     "bar",
	}

	specs := ExtractFilters(params, "")

	assert.Equal(t, []FilterSpec{
		{Property: "authorId", Values: []string{"2"}},
		{Property: "tagIds", Values: []string{"2", "3"}},
	}, specs)
}

func TestExtractFilters_CustomKey(t *testing.T) {
	params := QueryParams{
		"where[status]":  "open,closed",
		"filter[status]": "open",
	}

	specs := ExtractFilters(params, "where")

	assert.Equal(t, []FilterSpec{{Property: "status", Values: []string{"open", "closed"}}}, specs)
}

func TestExtractFilters_Empty(t *testing.T) {
	assert.Empty(t, ExtractFilters(nil, "filter"))
	assert.Empty(t, ExtractFilters(QueryParams{"filter[]": "x"}, "filter"))
}

func TestParamsFromValues(t *testing.T) {
	values := url.Values{
		"filter[tagIds]": {"1", "2"},
		"sort":           {"title"},
		"empty":          {""},
	}

	params := ParamsFromValues(values)

	assert.Equal(t, "1,2", params["filter[tagIds]"])
	assert.Equal(t, "title", params["sort"])
	assert.Equal(t, "", params["empty"])
}

func TestNewRequest(t *testing.T) {
	q, err := url.ParseQuery("filter%5Btitle%5D=foo&page%5Bsize%5D=5")
	assert.NoError(t, err)

	req := NewRequest(q)
	assert.Equal(t, "foo", req.QueryParams["filter[title]"])
	assert.Equal(t, "5", req.QueryParams["page[size]"])
}
