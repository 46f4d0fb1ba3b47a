// Package fixtures loads JSON:API documents from disk.
//
// A fixture is a JSON or YAML file holding one document. Several files
// matched by a glob merge into one collection: primary data concatenates in
// path order and included resources are de-duplicated by identity.
package fixtures

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"

	"github.com/getmockd/mocksauce/pkg/config"
	"github.com/getmockd/mocksauce/pkg/jsonapi"
)

// ErrNoFixtures is returned when a pattern matches no files.
var ErrNoFixtures = errors.New("no fixture files matched")

// Load loads the file or glob pattern, resolved against baseDir.
func Load(pattern, baseDir string) (*jsonapi.Document, error) {
	resolved := config.ResolvePath(baseDir, pattern)

	matches, err := expandGlob(resolved)
	if err != nil {
		return nil, fmt.Errorf("expanding glob pattern: %w", err)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoFixtures, pattern)
	}
	sort.Strings(matches)

	docs := make([]*jsonapi.Document, 0, len(matches))
	for _, match := range matches {
		doc, err := LoadFile(match)
		if err != nil {
			relPath, relErr := filepath.Rel(baseDir, match)
			if relErr != nil {
				relPath = match
			}
			return nil, fmt.Errorf("loading %s: %w", relPath, err)
		}
		docs = append(docs, doc)
	}

	if len(docs) == 1 {
		return docs[0], nil
	}
	return Merge(docs...), nil
}

// LoadFile reads one JSON or YAML document.
func LoadFile(path string) (*jsonapi.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading fixture: %w", err)
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, fmt.Errorf("fixture is empty: %s", path)
	}

	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".yaml" || ext == ".yml" {
		data, err = yamlToJSON(data)
		if err != nil {
			return nil, err
		}
	}

	doc, err := jsonapi.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing document: %w", err)
	}
	return doc, nil
}

// Merge combines documents into one collection. Primary data keeps the
// argument order; the first occurrence of an included identity wins; meta
// keys from later documents override earlier ones.
func Merge(docs ...*jsonapi.Document) *jsonapi.Document {
	var data, included []*jsonapi.Resource
	meta := map[string]any{}
	seen := make(map[jsonapi.Identifier]bool)

	for _, doc := range docs {
		if doc == nil {
			continue
		}
		if doc.IsCollection() {
			data = append(data, doc.Collection...)
		} else if doc.Single != nil {
			data = append(data, doc.Single)
		}
		for _, r := range doc.Included {
			key := jsonapi.Identifier{Type: strings.ToLower(r.Type), ID: jsonapi.CanonicalID(r.ID)}
			if seen[key] {
				continue
			}
			seen[key] = true
			included = append(included, r)
		}
		for k, v := range doc.Meta {
			meta[k] = v
		}
	}

	out := jsonapi.NewCollection(data, included)
	if len(meta) > 0 {
		out.Meta = meta
	}
	return out
}

// expandGlob uses doublestar for ** patterns and filepath.Glob otherwise.
func expandGlob(pattern string) ([]string, error) {
	if strings.Contains(pattern, "**") {
		return doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
	}
	return filepath.Glob(pattern)
}

func yamlToJSON(data []byte) ([]byte, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing YAML: %w", err)
	}
	out, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("converting YAML: %w", err)
	}
	return out, nil
}
