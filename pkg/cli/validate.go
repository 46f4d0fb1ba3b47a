package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/getmockd/mocksauce/pkg/cli/internal/output"
	"github.com/getmockd/mocksauce/pkg/config"
	"github.com/getmockd/mocksauce/pkg/fixtures"
)

// ValidateOutput is the --json result of validate.
type ValidateOutput struct {
	Config string          `json:"config"`
	Valid  bool            `json:"valid"`
	Routes []RouteSummary  `json:"routes,omitempty"`
	Errors []ValidateIssue `json:"errors,omitempty"`
}

// RouteSummary describes one loaded route.
type RouteSummary struct {
	Path     string `json:"path"`
	Source   string `json:"source"`
	Members  int    `json:"members"`
	Included int    `json:"included"`
	Hook     string `json:"hook,omitempty"`
}

// ValidateIssue is one validation failure.
type ValidateIssue struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

var errInvalidConfig = errors.New("config is invalid")

func newValidateCmd(root *rootOptions) *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a project file and load its fixtures without serving",
		Long: `Validate a project file without starting the server.

This command checks:
  - YAML/JSON syntax
  - Required route fields and duplicate paths
  - Hook expressions compile
  - Every route's fixtures load as JSON:API documents`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := configPath
			if path == "" {
				discovered, err := config.Discover(".")
				if err != nil {
					return err
				}
				path = discovered
			}

			cfg, err := config.LoadFromFile(path)
			if err != nil {
				return err
			}

			result := validateProject(path, cfg)
			out := cmd.OutOrStdout()

			if root.jsonOutput {
				if err := output.JSON(out, result, false); err != nil {
					return err
				}
			} else {
				printValidate(cmd, result)
			}

			if !result.Valid {
				return errInvalidConfig
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Project file (default: discover mocksauce.yaml)")
	return cmd
}

func validateProject(path string, cfg *config.ProjectConfig) ValidateOutput {
	result := ValidateOutput{Config: path}

	if err := cfg.Validate(); err != nil {
		var verrs config.ValidationErrors
		if errors.As(err, &verrs) {
			for _, e := range verrs {
				result.Errors = append(result.Errors, ValidateIssue{Field: e.Field, Message: e.Message})
			}
		} else {
			result.Errors = append(result.Errors, ValidateIssue{Message: err.Error()})
		}
		return result
	}

	for i, rc := range cfg.Routes {
		doc, err := fixtures.Load(rc.Pattern(), cfg.BaseDir)
		if err != nil {
			result.Errors = append(result.Errors, ValidateIssue{
				Field:   fmt.Sprintf("routes[%d]", i),
				Message: err.Error(),
			})
			continue
		}

		members := len(doc.Collection)
		if !doc.IsCollection() && doc.Single != nil {
			members = 1
		}
		result.Routes = append(result.Routes, RouteSummary{
			Path:     rc.Path,
			Source:   rc.Pattern(),
			Members:  members,
			Included: len(doc.Included),
			Hook:     rc.Hook,
		})
	}

	result.Valid = len(result.Errors) == 0
	return result
}

func printValidate(cmd *cobra.Command, result ValidateOutput) {
	out := cmd.OutOrStdout()

	if !result.Valid {
		fmt.Fprintf(out, "%s: invalid\n", result.Config)
		for _, e := range result.Errors {
			if e.Field == "" {
				fmt.Fprintf(out, "  - %s\n", e.Message)
				continue
			}
			fmt.Fprintf(out, "  - %s: %s\n", e.Field, e.Message)
		}
		return
	}

	fmt.Fprintf(out, "%s: ok\n\n", result.Config)
	tw := output.Table(out)
	fmt.Fprintln(tw, "ROUTE\tSOURCE\tMEMBERS\tINCLUDED\tHOOK")
	var empty []string
	for _, r := range result.Routes {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%s\n", r.Path, r.Source, r.Members, r.Included, r.Hook)
		if r.Members == 0 {
			empty = append(empty, r.Path)
		}
	}
	_ = tw.Flush()

	for _, path := range empty {
		output.Warn(cmd.ErrOrStderr(), "route %s has no members", path)
	}
}
