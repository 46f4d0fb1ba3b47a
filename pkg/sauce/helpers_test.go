package sauce

import (
	"strconv"

	"github.com/getmockd/mocksauce/pkg/jsonapi"
)

func resource(typ string, id int, attrs map[string]any, rels map[string]*jsonapi.Relationship) *jsonapi.Resource {
	if attrs == nil {
		attrs = map[string]any{}
	}
	if rels == nil {
		rels = map[string]*jsonapi.Relationship{}
	}
	return &jsonapi.Resource{Type: typ, ID: strconv.Itoa(id), Attributes: attrs, Relationships: rels}
}

func toOne(typ string, id int) *jsonapi.Relationship {
	return jsonapi.One(&jsonapi.Identifier{Type: typ, ID: strconv.Itoa(id)})
}

func toMany(typ string, ids ...int) *jsonapi.Relationship {
	out := make([]jsonapi.Identifier, len(ids))
	for i, id := range ids {
		out[i] = jsonapi.Identifier{Type: typ, ID: strconv.Itoa(id)}
	}
	return jsonapi.Many(out...)
}

func idsOf(rs []*jsonapi.Resource) []string {
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = r.ID
	}
	return out
}

func users(n int) []*jsonapi.Resource {
	out := make([]*jsonapi.Resource, n)
	for i := range out {
		out[i] = resource("users", i+1, nil, nil)
	}
	return out
}

// blogFixture returns posts with authors, tags and an included side-table.
//
//	post 1: author 1, tags 1,2
//	post 2: author 2, tags 3
//	post 3: author 2, no tags
//	post 4: no author,  tags 2,4
//	post 5: author 3 (not included)
func blogFixture() (posts, included []*jsonapi.Resource) {
	posts = []*jsonapi.Resource{
		resource("posts", 1, map[string]any{"title": "Go generics", "published": true, "views": 120.0},
			map[string]*jsonapi.Relationship{"author": toOne("authors", 1), "tags": toMany("tags", 1, 2)}),
		resource("posts", 2, map[string]any{"title": "Channels", "published": false, "views": 45.0},
			map[string]*jsonapi.Relationship{"author": toOne("authors", 2), "tags": toMany("tags", 3)}),
		resource("posts", 3, map[string]any{"title": "Interfaces", "published": true, "views": 300.0},
			map[string]*jsonapi.Relationship{"author": toOne("authors", 2), "tags": toMany("tags")}),
		resource("posts", 4, map[string]any{"title": "Modules", "published": true, "views": 7.0},
			map[string]*jsonapi.Relationship{"author": jsonapi.One(nil), "tags": toMany("tags", 2, 4)}),
		resource("posts", 5, map[string]any{"title": "Testing", "published": false, "views": 45.0},
			map[string]*jsonapi.Relationship{"author": toOne("authors", 3)}),
	}
	included = []*jsonapi.Resource{
		resource("authors", 1, map[string]any{"name": "Zed", "age": 40.0},
			map[string]*jsonapi.Relationship{"company": toOne("companies", 1)}),
		resource("authors", 2, map[string]any{"name": "Ada", "age": 36.0},
			map[string]*jsonapi.Relationship{"company": toOne("companies", 2)}),
		resource("companies", 1, map[string]any{"name": "Initech"}, nil),
		resource("companies", 2, map[string]any{"name": "Globex"}, nil),
		resource("tags", 1, map[string]any{"label": "lang"}, nil),
		resource("tags", 2, map[string]any{"label": "tooling"}, nil),
		resource("tags", 3, map[string]any{"label": "concurrency"}, nil),
		resource("tags", 4, map[string]any{"label": "build"}, nil),
	}
	return posts, included
}
