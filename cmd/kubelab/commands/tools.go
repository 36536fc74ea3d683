package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/kubelab/cmd/kubelab/handlers"
)

// Tools returns the command listing installable tools.
func Tools() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "tools",
		Short: "List tools with installer scripts",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return handlers.Tools(jsonOutput)
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")

	return cmd
}
