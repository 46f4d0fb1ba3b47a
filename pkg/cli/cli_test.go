package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/getmockd/mocksauce/pkg/config"
	"github.com/getmockd/mocksauce/pkg/jsonapi"
)

const postsFixture = `{
  "data": [
    {"type": "posts", "id": "1", "attributes": {"title": "Hello World", "approved": true},
     "relationships": {"author": {"data": {"type": "authors", "id": "1"}}}},
    {"type": "posts", "id": "2", "attributes": {"title": "Second", "approved": false},
     "relationships": {"author": {"data": {"type": "authors", "id": "2"}}}},
    {"type": "posts", "id": "3", "attributes": {"title": "Third post", "approved": true},
     "relationships": {"author": {"data": {"type": "authors", "id": "2"}}}}
  ],
  "included": [
    {"type": "authors", "id": "1", "attributes": {"name": "Zed"}},
    {"type": "authors", "id": "2", "attributes": {"name": "Ada"}}
  ]
}`

const projectYAML = `
serializer:
  searchByFields: [title]
routes:
  - path: /api/posts
    fixture: posts.json
  - path: /api/approved
    fixture: posts.json
    hook: attributes.approved == true
    serializer:
      sortKey: order
`

func writeProject(t *testing.T) (dir, configPath, fixturePath string) {
	t.Helper()
	dir = t.TempDir()
	fixturePath = filepath.Join(dir, "posts.json")
	configPath = filepath.Join(dir, "mocksauce.yaml")
	require.NoError(t, os.WriteFile(fixturePath, []byte(postsFixture), 0o644))
	require.NoError(t, os.WriteFile(configPath, []byte(projectYAML), 0o644))
	return dir, configPath, fixturePath
}

func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func resultIDs(t *testing.T, out string) []string {
	t.Helper()
	doc, err := jsonapi.Parse([]byte(out))
	require.NoError(t, err)
	ids := make([]string, len(doc.Collection))
	for i, r := range doc.Collection {
		ids[i] = r.ID
	}
	return ids
}

func TestRootCmd_Subcommands(t *testing.T) {
	root := NewRootCmd()

	var names []string
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	assert.Subset(t, names, []string{"serve", "apply", "validate", "version"})
}

func TestApply(t *testing.T) {
	_, configPath, fixturePath := writeProject(t)

	tests := []struct {
		name string
		args []string
		want []string
	}{
		{name: "no query", args: nil, want: []string{"1", "2", "3"}},
		{name: "filter and sort", args: []string{"-q", "filter[approved]=true&sort=-title"}, want: []string{"3", "1"}},
		{name: "leading question mark", args: []string{"-q", "?filter[author.name]=Ada"}, want: []string{"2", "3"}},
		{name: "pagination", args: []string{"-q", "page[number]=2&page[size]=2"}, want: []string{"3"}},
		{name: "hook flag", args: []string{"--hook", "id != '2'"}, want: []string{"1", "3"}},
		{name: "search fields flag", args: []string{"--search-fields", "title", "-q", "filter[search]=post"}, want: []string{"3"}},
		{name: "ignore filters flag", args: []string{"--ignore-filters", "approved", "-q", "filter[approved]=false"}, want: []string{"1", "2", "3"}},
		{name: "project serializer", args: []string{"--config", configPath, "-q", "filter[search]=hello"}, want: []string{"1"}},
		{name: "route settings", args: []string{"--config", configPath, "--route", "/api/approved/", "-q", "order=-title"}, want: []string{"3", "1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"apply", fixturePath}, tt.args...)
			out, _, err := runCLI(t, args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, resultIDs(t, out))
		})
	}
}

func TestApply_JSONPath(t *testing.T) {
	_, _, fixturePath := writeProject(t)

	out, _, err := runCLI(t, "apply", fixturePath, "-q", "sort=author.name", "--jsonpath", "$.data[*].id", "--compact")
	require.NoError(t, err)
	assert.Equal(t, "[\"2\",\"3\",\"1\"]\n", out)
}

func TestApply_PaginationMeta(t *testing.T) {
	_, _, fixturePath := writeProject(t)

	out, _, err := runCLI(t, "apply", fixturePath, "-q", "page[number]=1&page[size]=2", "--jsonpath", "$.meta")
	require.NoError(t, err)

	var meta []map[string]float64
	require.NoError(t, json.Unmarshal([]byte(out), &meta))
	require.Len(t, meta, 1)
	assert.Equal(t, map[string]float64{"page": 1, "size": 2, "total": 3, "pages": 2}, meta[0])
}

func TestApply_Diagnostics(t *testing.T) {
	_, _, fixturePath := writeProject(t)

	_, stderr, err := runCLI(t, "apply", fixturePath, "-q", "filter[unknown]=x", "--log-level", "debug")
	require.NoError(t, err)
	assert.Contains(t, stderr, "filter diagnostic")

	_, stderr, err = runCLI(t, "apply", fixturePath, "-q", "filter[unknown]=x")
	require.NoError(t, err)
	assert.NotContains(t, stderr, "filter diagnostic")
}

func TestApply_Errors(t *testing.T) {
	_, configPath, fixturePath := writeProject(t)

	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{name: "missing argument", args: []string{"apply"}, wantErr: "accepts 1 arg"},
		{name: "missing document", args: []string{"apply", filepath.Join(t.TempDir(), "none.json")}, wantErr: "no fixture files matched"},
		{name: "bad query", args: []string{"apply", fixturePath, "-q", "filter[a]=%zz"}, wantErr: "invalid query"},
		{name: "route without config", args: []string{"apply", fixturePath, "--route", "/api/posts"}, wantErr: "--route requires --config"},
		{name: "unknown route", args: []string{"apply", fixturePath, "--config", configPath, "--route", "/nope"}, wantErr: `route "/nope" not found`},
		{name: "bad hook", args: []string{"apply", fixturePath, "--hook", "attributes.("}, wantErr: "compile"},
		{name: "bad jsonpath", args: []string{"apply", fixturePath, "--jsonpath", "$.data["}, wantErr: "invalid jsonpath"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := runCLI(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		_, configPath, _ := writeProject(t)

		out, _, err := runCLI(t, "validate", "--config", configPath)
		require.NoError(t, err)
		assert.Contains(t, out, configPath+": ok")
		assert.Contains(t, out, "/api/approved")
		assert.Contains(t, out, "attributes.approved == true")
	})

	t.Run("json", func(t *testing.T) {
		_, configPath, _ := writeProject(t)

		out, _, err := runCLI(t, "validate", "--config", configPath, "--json")
		require.NoError(t, err)

		var result ValidateOutput
		require.NoError(t, json.Unmarshal([]byte(out), &result))
		assert.True(t, result.Valid)
		require.Len(t, result.Routes, 2)
		assert.Equal(t, RouteSummary{Path: "/api/posts", Source: "posts.json", Members: 3, Included: 2}, result.Routes[0])
	})

	t.Run("invalid routes", func(t *testing.T) {
		dir := t.TempDir()
		configPath := filepath.Join(dir, "mocksauce.yaml")
		require.NoError(t, os.WriteFile(configPath, []byte("routes:\n  - path: api\n"), 0o644))

		out, _, err := runCLI(t, "validate", "--config", configPath, "--json")
		require.ErrorIs(t, err, errInvalidConfig)

		var result ValidateOutput
		require.NoError(t, json.Unmarshal([]byte(out), &result))
		assert.False(t, result.Valid)
		assert.Len(t, result.Errors, 2)
	})

	t.Run("missing fixtures", func(t *testing.T) {
		dir := t.TempDir()
		configPath := filepath.Join(dir, "mocksauce.yaml")
		require.NoError(t, os.WriteFile(configPath, []byte("routes:\n  - path: /api\n    files: data/*.json\n"), 0o644))

		out, _, err := runCLI(t, "validate", "--config", configPath)
		require.ErrorIs(t, err, errInvalidConfig)
		assert.Contains(t, out, "routes[0]: no fixture files matched")
	})

	t.Run("missing file", func(t *testing.T) {
		_, _, err := runCLI(t, "validate", "--config", filepath.Join(t.TempDir(), "none.yaml"))
		assert.ErrorIs(t, err, config.ErrFileNotFound)
	})
}

func TestVersion(t *testing.T) {
	out, _, err := runCLI(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "mocksauce ")

	out, _, err = runCLI(t, "version", "--json")
	require.NoError(t, err)
	var v VersionOutput
	require.NoError(t, json.Unmarshal([]byte(out), &v))
	assert.NotEmpty(t, v.Go)
	assert.NotEmpty(t, v.OS)
}

func TestServe_InvalidConfig(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "mocksauce.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("routes: []\n"), 0o644))

	_, _, err := runCLI(t, "serve", "--config", configPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least one route is required")
}

func TestNewLogger(t *testing.T) {
	t.Run("console only", func(t *testing.T) {
		var buf bytes.Buffer
		log, closeLog, err := newLogger(config.LoggingConfig{Level: "debug"}, &buf)
		require.NoError(t, err)
		defer closeLog()

		log.Debug("hello", "k", "v")
		assert.Contains(t, buf.String(), "msg=hello")
	})

	t.Run("tee to file", func(t *testing.T) {
		var buf bytes.Buffer
		path := filepath.Join(t.TempDir(), "mocksauce.log")
		log, closeLog, err := newLogger(config.LoggingConfig{Level: "info", File: path}, &buf)
		require.NoError(t, err)

		log.Info("started", "routes", 2)
		log.Debug("hidden")
		closeLog()

		assert.Contains(t, buf.String(), "started")
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), `"msg":"started"`)
		assert.NotContains(t, string(data), "hidden")
	})

	t.Run("bad file", func(t *testing.T) {
		_, _, err := newLogger(config.LoggingConfig{File: filepath.Join(t.TempDir(), "missing", "x.log")}, &bytes.Buffer{})
		assert.Error(t, err)
	})
}
