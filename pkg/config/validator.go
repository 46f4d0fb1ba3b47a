package config

import (
	"fmt"
	"strings"

	"github.com/getmockd/mocksauce/pkg/hook"
)

// ValidationError describes one invalid field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

// ValidationErrors collects every problem found in a project file.
type ValidationErrors []*ValidationError

func (e ValidationErrors) Error() string {
	msgs := make([]string, len(e))
	for i, err := range e {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "; ")
}

// Validate checks a project file. It returns nil or a ValidationErrors.
func (c *ProjectConfig) Validate() error {
	var errs ValidationErrors
	add := func(field, format string, args ...any) {
		errs = append(errs, &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)})
	}

	if len(c.Routes) == 0 {
		add("routes", "at least one route is required")
	}

	seen := make(map[string]int, len(c.Routes))
	for i, route := range c.Routes {
		field := fmt.Sprintf("routes[%d]", i)

		switch {
		case route.Path == "":
			add(field+".path", "path is required")
		case !strings.HasPrefix(route.Path, "/"):
			add(field+".path", "path must start with /: %q", route.Path)
		case strings.ContainsAny(route.Path, "{}"):
			add(field+".path", "path must not contain wildcards: %q", route.Path)
		default:
			path := strings.TrimSuffix(route.Path, "/")
			if prev, ok := seen[path]; ok {
				add(field+".path", "duplicate of routes[%d]: %q", prev, route.Path)
			}
			seen[path] = i
		}

		switch {
		case route.Fixture == "" && route.Files == "":
			add(field, "one of fixture or files is required")
		case route.Fixture != "" && route.Files != "":
			add(field, "fixture and files are mutually exclusive")
		}

		if route.Hook != "" {
			if _, err := hook.Compile(route.Hook); err != nil {
				add(field+".hook", "%v", err)
			}
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}
