package sauce

import (
	"testing"

	"github.com/getmockd/mocksauce/pkg/jsonapi"
	"github.com/stretchr/testify/assert"
)

func titled(titles ...string) []*jsonapi.Resource {
	out := make([]*jsonapi.Resource, len(titles))
	for i, title := range titles {
		out[i] = resource("posts", i+1, map[string]any{"title": title}, nil)
	}
	return out
}

func TestMatchSearch(t *testing.T) {
	record := resource("posts", 1, map[string]any{"title": "FooBar", "body": nil, "views": 120.0}, nil)

	assert.True(t, MatchSearch(record, "bar", []string{"title"}))
	assert.True(t, MatchSearch(record, "OOB", []string{"title"}))
	assert.False(t, MatchSearch(record, "baz", []string{"title"}))
	assert.False(t, MatchSearch(record, "bar", []string{"body", "missing"}))
	assert.True(t, MatchSearch(record, "bar", []string{"body", "title"}))
	assert.True(t, MatchSearch(record, "12", []string{"views"}))
}

func TestMatchSearch_NoFieldsMatchesEverything(t *testing.T) {
	record := resource("posts", 1, map[string]any{"title": "foo"}, nil)
	assert.True(t, MatchSearch(record, "anything", nil))
}

func TestFilter_Search(t *testing.T) {
	data := titled("foo", "foobar", "foobar", "foo", "bar", "foo", "foo", "foo", "foo", "foo")
	specs := []FilterSpec{{Property: "search", Values: []string{"bar"}}}

	got := Filter(data, jsonapi.NewIndex(nil), specs, FilterOptions{SearchFields: []string{"title"}})

	assert.Equal(t, []string{"2", "3", "5"}, idsOf(got))
}

func TestFilter_SearchWithoutFields(t *testing.T) {
	data := titled("foo", "bar")
	specs := []FilterSpec{{Property: "search", Values: []string{"zzz"}}}

	got := Filter(data, jsonapi.NewIndex(nil), specs, FilterOptions{})

	assert.Equal(t, []string{"1", "2"}, idsOf(got))
}

func TestFilter_CustomSearchKey(t *testing.T) {
	data := titled("foo", "bar")
	specs := []FilterSpec{{Property: "q", Values: []string{"BAR"}}}

	got := Filter(data, jsonapi.NewIndex(nil), specs, FilterOptions{SearchKey: "q", SearchFields: []string{"title"}})

	assert.Equal(t, []string{"2"}, idsOf(got))
}
