package cli

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/spf13/cobra"

	"github.com/getmockd/mocksauce/pkg/cli/internal/output"
	"github.com/getmockd/mocksauce/pkg/config"
	"github.com/getmockd/mocksauce/pkg/fixtures"
	"github.com/getmockd/mocksauce/pkg/hook"
	"github.com/getmockd/mocksauce/pkg/logging"
	"github.com/getmockd/mocksauce/pkg/sauce"
)

type applyOptions struct {
	query         string
	configPath    string
	route         string
	searchFields  []string
	ignoreFilters []string
	hook          string
	jsonPath      string
	compact       bool
	logLevel      string
}

func newApplyCmd() *cobra.Command {
	opts := &applyOptions{}

	cmd := &cobra.Command{
		Use:   "apply <document>",
		Short: "Run a JSON:API document through the pipeline and print the result",
		Example: `  # Approved posts by author 2, newest first, first page of 10
  mocksauce apply posts.json -q 'filter[approved]=true&filter[author-id]=2&sort=-created-at&page[number]=1&page[size]=10'

  # Use the serializer settings and hook of a configured route
  mocksauce apply posts.json --config mocksauce.yaml --route /api/posts -q 'filter[search]=hello'

  # Print only the ids of the result
  mocksauce apply 'fixtures/**/*.yaml' -q sort=title --jsonpath '$.data[*].id'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := fixtures.Load(args[0], "")
			if err != nil {
				return err
			}

			values, err := url.ParseQuery(strings.TrimPrefix(opts.query, "?"))
			if err != nil {
				return fmt.Errorf("invalid query: %w", err)
			}

			ser, err := opts.serializer(cmd)
			if err != nil {
				return err
			}
			result := ser.Serialize(doc, sauce.NewRequest(values))

			out := cmd.OutOrStdout()
			if opts.jsonPath == "" {
				return output.JSON(out, result, opts.compact)
			}
			matches, err := output.Select(result, opts.jsonPath)
			if err != nil {
				return err
			}
			return output.JSON(out, matches, opts.compact)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.query, "query", "q", "", "Request query string, e.g. 'filter[title]=a&sort=-title'")
	f.StringVarP(&opts.configPath, "config", "c", "", "Project file supplying serializer settings")
	f.StringVar(&opts.route, "route", "", "Use this route's serializer settings and hook (requires --config)")
	f.StringSliceVar(&opts.searchFields, "search-fields", nil, "Attributes searched by filter[search]")
	f.StringSliceVar(&opts.ignoreFilters, "ignore-filters", nil, "Filter properties to leave alone")
	f.StringVar(&opts.hook, "hook", "", "Expression selecting collection members, e.g. 'attributes.approved'")
	f.StringVar(&opts.jsonPath, "jsonpath", "", "Print only the values matching this JSONPath")
	f.BoolVar(&opts.compact, "compact", false, "Print compact JSON")
	f.StringVar(&opts.logLevel, "log-level", "warn", "Log level for pipeline diagnostics on stderr")
	return cmd
}

// serializer builds the pipeline from the project file, the selected route
// and the flags, in increasing precedence.
func (o *applyOptions) serializer(cmd *cobra.Command) (*sauce.Serializer, error) {
	var cfg sauce.Config
	hookExpr := o.hook

	switch {
	case o.configPath != "":
		project, err := config.LoadFromFile(o.configPath)
		if err != nil {
			return nil, err
		}
		cfg = project.Serializer
		if o.route != "" {
			rc, ok := findRoute(project, o.route)
			if !ok {
				return nil, fmt.Errorf("route %q not found in %s", o.route, o.configPath)
			}
			cfg = project.SerializerConfig(rc)
			if hookExpr == "" {
				hookExpr = rc.Hook
			}
		}
	case o.route != "":
		return nil, errors.New("--route requires --config")
	}

	f := cmd.Flags()
	if f.Changed("search-fields") {
		cfg.SearchFields = o.searchFields
	}
	if f.Changed("ignore-filters") {
		cfg.IgnoreFilters = o.ignoreFilters
	}

	log := logging.New(logging.Config{
		Level:  logging.ParseLevel(o.logLevel),
		Output: cmd.ErrOrStderr(),
	})
	opts := []sauce.Option{sauce.WithLogger(log)}
	if hookExpr != "" {
		h, err := hook.Where(hookExpr, log)
		if err != nil {
			return nil, err
		}
		opts = append(opts, sauce.WithHook(h))
	}
	return sauce.NewSerializer(cfg, opts...), nil
}

func findRoute(project *config.ProjectConfig, path string) (config.RouteConfig, bool) {
	want := strings.TrimSuffix(path, "/")
	for _, rc := range project.Routes {
		if strings.TrimSuffix(rc.Path, "/") == want {
			return rc, true
		}
	}
	return config.RouteConfig{}, false
}
