package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Version is injected during build
	Version = "dev"
	// Commit is injected during build
	Commit = "none"
	// BuildDate is injected during build
	BuildDate = "unknown"
)

// rootOptions holds the persistent flags shared by every subcommand.
type rootOptions struct {
	jsonOutput bool
}

// NewRootCmd builds the mocksauce command tree.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "mocksauce",
		Short: "mocksauce serves JSON:API fixtures with filtering, sorting and pagination",
		Long: `mocksauce serves JSON:API fixture documents over HTTP and post-processes
collection responses from the request query: filter[...] narrows the data,
sort orders it and page[number]/page[size] slice it.

Routes and serializer settings come from a project file. By default mocksauce
looks for mocksauce.yaml in the working directory; MOCKSAUCE_CONFIG overrides it.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().BoolVar(&opts.jsonOutput, "json", false, "Output command results in JSON format")

	root.AddCommand(
		newServeCmd(),
		newApplyCmd(),
		newValidateCmd(opts),
		newVersionCmd(opts),
	)
	return root
}

// Execute runs the root command. This is called by main.main().
func Execute() {
	if err := NewRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
