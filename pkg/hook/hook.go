// Package hook builds pipeline hooks from expr-lang expressions, so a route
// can post-filter a collection without Go code.
//
// An expression is evaluated once per collection member with this
// environment:
//
//	type           resource type
//	id             resource id
//	attributes     map of attribute values
//	relationships  map of linkage ids: a string (to-one), a list (to-many) or nil
//	query          request query parameters
//
// Example:
//
//	attributes.published == true && relationships.author in ["1", "2"]
package hook

import (
	"fmt"
	"log/slog"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/getmockd/mocksauce/pkg/jsonapi"
	"github.com/getmockd/mocksauce/pkg/logging"
	"github.com/getmockd/mocksauce/pkg/sauce"
)

// Program is a compiled boolean expression over a single resource.
type Program struct {
	source  string
	program *vm.Program
}

// Compile compiles a boolean expression. Unknown top-level names are
// rejected at compile time.
func Compile(expression string) (*Program, error) {
	program, err := expr.Compile(expression, expr.Env(env(&jsonapi.Resource{}, nil)), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("compile %q: %w", expression, err)
	}
	return &Program{source: expression, program: program}, nil
}

// String returns the expression source.
func (p *Program) String() string {
	return p.source
}

// Match evaluates the expression for one resource.
func (p *Program) Match(r *jsonapi.Resource, params sauce.QueryParams) (bool, error) {
	out, err := expr.Run(p.program, env(r, params))
	if err != nil {
		return false, fmt.Errorf("eval %q: %w", p.source, err)
	}
	ok, _ := out.(bool)
	return ok, nil
}

// Where compiles expression into a hook that keeps only the collection
// members it accepts. Members whose evaluation fails are dropped and logged.
func Where(expression string, logger *slog.Logger) (sauce.Hook, error) {
	p, err := Compile(expression)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = logging.Nop()
	}

	return func(doc *jsonapi.Document, req *sauce.Request) *jsonapi.Document {
		var params sauce.QueryParams
		if req != nil {
			params = req.QueryParams
		}

		kept := make([]*jsonapi.Resource, 0, len(doc.Collection))
		for _, r := range doc.Collection {
			ok, err := p.Match(r, params)
			if err != nil {
				logger.Debug("hook evaluation failed", "type", r.Type, "id", r.ID, "error", err)
				continue
			}
			if ok {
				kept = append(kept, r)
			}
		}
		return doc.WithCollection(kept)
	}, nil
}

func env(r *jsonapi.Resource, params sauce.QueryParams) map[string]any {
	attributes := r.Attributes
	if attributes == nil {
		attributes = map[string]any{}
	}

	relationships := make(map[string]any, len(r.Relationships))
	for name, rel := range r.Relationships {
		switch {
		case rel == nil:
			relationships[name] = nil
		case rel.IsMany:
			ids, _ := r.ToManyIDs(name)
			relationships[name] = ids
		default:
			if id, ok := r.ToOneID(name); ok {
				relationships[name] = id
			} else {
				relationships[name] = nil
			}
		}
	}

	query := make(map[string]any, len(params))
	for k, v := range params {
		query[k] = v
	}

	return map[string]any{
		"type":          r.Type,
		"id":            r.ID,
		"attributes":    attributes,
		"relationships": relationships,
		"query":         query,
	}
}
