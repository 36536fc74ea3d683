// Package commands defines the CLI command structure and flag bindings.
//
// This package contains cobra command definitions that handle argument parsing,
// flag binding, and validation. Command execution is delegated to handler
// functions in the handlers package.
package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/kubelab/cmd/kubelab/handlers"
)

// global is bound to the persistent flags of the root command.
var global handlers.Global

// Root returns the root command for the kubelab CLI.
func Root() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "kubelab",
		Short:         "Compile lab cluster requests into VM topologies",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&global.SettingsPath, "settings", "", "Path to settings file (default: ./kubelab.yaml or ~/.config/kubelab/kubelab.yaml)")
	cmd.PersistentFlags().BoolVarP(&global.Verbose, "verbose", "v", false, "Enable debug logging")

	cmd.AddCommand(Init())
	cmd.AddCommand(Validate())
	cmd.AddCommand(Compile())
	cmd.AddCommand(Tools())
	cmd.AddCommand(Version())
	cmd.AddCommand(Completion())

	return cmd
}
