package config

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		routes []RouteConfig
		fields []string
	}{
		{
			name:   "valid",
			routes: []RouteConfig{{Path: "/api/posts", Fixture: "posts.json"}},
		},
		{
			name:   "no routes",
			fields: []string{"routes"},
		},
		{
			name:   "missing path and source",
			routes: []RouteConfig{{}},
			fields: []string{"routes[0].path", "routes[0]"},
		},
		{
			name:   "relative path",
			routes: []RouteConfig{{Path: "api/posts", Files: "*.json"}},
			fields: []string{"routes[0].path"},
		},
		{
			name:   "wildcard path",
			routes: []RouteConfig{{Path: "/api/{type}", Files: "*.json"}},
			fields: []string{"routes[0].path"},
		},
		{
			name: "duplicate path",
			routes: []RouteConfig{
				{Path: "/api/posts", Fixture: "a.json"},
				{Path: "/api/posts/", Fixture: "b.json"},
			},
			fields: []string{"routes[1].path"},
		},
		{
			name:   "both sources",
			routes: []RouteConfig{{Path: "/api/posts", Fixture: "a.json", Files: "*.json"}},
			fields: []string{"routes[0]"},
		},
		{
			name:   "bad hook",
			routes: []RouteConfig{{Path: "/api/posts", Fixture: "a.json", Hook: "attributes.x =="}},
			fields: []string{"routes[0].hook"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &ProjectConfig{Routes: tt.routes}
			err := cfg.Validate()
			if len(tt.fields) == 0 {
				assert.NoError(t, err)
				return
			}

			var verrs ValidationErrors
			require.True(t, errors.As(err, &verrs), "expected ValidationErrors, got %v", err)
			got := make([]string, len(verrs))
			for i, e := range verrs {
				got[i] = e.Field
			}
			assert.Equal(t, tt.fields, got)
		})
	}
}

func TestValidationErrors_Error(t *testing.T) {
	err := ValidationErrors{
		{Field: "routes[0].path", Message: "path is required"},
		{Message: "general"},
	}
	assert.Equal(t, "routes[0].path: path is required; general", err.Error())
}
