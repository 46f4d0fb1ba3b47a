package sauce

import (
	"testing"

	"github.com/getmockd/mocksauce/pkg/jsonapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func aged(ages ...any) []*jsonapi.Resource {
	out := make([]*jsonapi.Resource, len(ages))
	for i, age := range ages {
		out[i] = resource("users", i+1, map[string]any{"age": age}, nil)
	}
	return out
}

func TestSort_Attribute(t *testing.T) {
	data := aged(12.0, 4.0, 82.0, 2.0)

	asc, err := Sort(data, nil, "age")
	require.NoError(t, err)
	assert.Equal(t, []string{"4", "2", "1", "3"}, idsOf(asc))

	desc, err := Sort(data, nil, "-age")
	require.NoError(t, err)
	assert.Equal(t, []string{"3", "1", "2", "4"}, idsOf(desc))

	assert.Equal(t, []string{"1", "2", "3", "4"}, idsOf(data), "input order untouched")
}

func TestSort_NumericStrings(t *testing.T) {
	data := aged("10", "9", "100")

	got, err := Sort(data, nil, "age")
	require.NoError(t, err)
	assert.Equal(t, []string{"2", "1", "3"}, idsOf(got))
}

func TestSort_Lexical(t *testing.T) {
	data := []*jsonapi.Resource{
		resource("users", 1, map[string]any{"name": "b"}, nil),
		resource("users", 2, map[string]any{"name": "a"}, nil),
		resource("users", 3, map[string]any{"name": "10"}, nil),
	}

	got, err := Sort(data, nil, "name")
	require.NoError(t, err)
	assert.Equal(t, []string{"3", "2", "1"}, idsOf(got))
}

func TestSort_StableAndMissingFirst(t *testing.T) {
	data := aged(5.0, nil, 1.0, 5.0, nil)
	data = append(data, resource("users", 6, nil, nil))

	got, err := Sort(data, nil, "age")
	require.NoError(t, err)
	assert.Equal(t, []string{"2", "5", "6", "3", "1", "4"}, idsOf(got))
}

func TestSort_DasherizesPath(t *testing.T) {
	data := []*jsonapi.Resource{
		resource("users", 1, map[string]any{"created-at": "2024-02-01"}, nil),
		resource("users", 2, map[string]any{"created-at": "2024-01-01"}, nil),
	}

	got, err := Sort(data, nil, "createdAt")
	require.NoError(t, err)
	assert.Equal(t, []string{"2", "1"}, idsOf(got))
}

func TestSort_RelationshipAttribute(t *testing.T) {
	posts, included := blogFixture()
	idx := jsonapi.NewIndex(included)

	// authors: 1 Zed (40), 2 Ada (36); post 4 null author, post 5 author not included
	got, err := Sort(posts[:3], idx, "author.name")
	require.NoError(t, err)
	assert.Equal(t, []string{"2", "3", "1"}, idsOf(got))

	got, err = Sort(posts[:3], idx, "-author.age")
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "3", "2"}, idsOf(got))

	got, err = Sort(posts[:3], idx, "author.id")
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2", "3"}, idsOf(got))
}

func TestSort_UnresolvedRelationshipTies(t *testing.T) {
	posts, included := blogFixture()
	idx := jsonapi.NewIndex(included)

	// posts 4 and 5 cannot be resolved, so every comparison involving them is a tie
	data := []*jsonapi.Resource{posts[3], posts[4]}
	got, err := Sort(data, idx, "author.name")
	require.NoError(t, err)
	assert.Equal(t, []string{"4", "5"}, idsOf(got))
}

func TestSort_NoParam(t *testing.T) {
	data := aged(3.0, 1.0, 2.0)

	for _, param := range []string{"", "-"} {
		got, err := Sort(data, nil, param)
		require.NoError(t, err)
		assert.Equal(t, []string{"1", "2", "3"}, idsOf(got))
	}
}

func TestSort_UnsupportedPath(t *testing.T) {
	posts, included := blogFixture()

	got, err := Sort(posts, jsonapi.NewIndex(included), "author.company.name")
	assert.ErrorIs(t, err, ErrUnsupportedSortPath)
	assert.Equal(t, idsOf(posts), idsOf(got))
}

func TestParseSort(t *testing.T) {
	assert.Equal(t, SortSpec{Path: "age"}, ParseSort("age"))
	assert.Equal(t, SortSpec{Path: "author.first-name", Descending: true}, ParseSort("-author.firstName"))
}

func TestCompareValues(t *testing.T) {
	assert.Equal(t, -1, CompareValues(2.0, 10.0))
	assert.Equal(t, -1, CompareValues("2", "10"))
	assert.Equal(t, 1, CompareValues("b", "a"))
	assert.Equal(t, 0, CompareValues(true, "true"))
	assert.Equal(t, -1, CompareValues("10", "a"))
}
