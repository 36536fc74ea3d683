package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/kubelab/cmd/kubelab/handlers"
)

// Validate returns the command that checks a request without compiling it.
func Validate() *cobra.Command {
	var (
		flags inputFlags
		opts  handlers.ValidateOptions
	)

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check a request and report every problem",
		Long: `Check a request against the structural, semantic and policy rules.

Every finding is reported at once. Warnings (even master counts, very large
clusters) do not fail validation unless --strict is set.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Validate(cmd.Context(), global, flags.input(cmd), opts)
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&opts.Strict, "strict", false, "Treat warnings as errors")
	cmd.Flags().BoolVar(&opts.JSON, "json", false, "Output in JSON format")

	return cmd
}
