package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/kubelab/cmd/kubelab/handlers"
	"github.com/imamik/kubelab/internal/config"
)

// Init returns the command for interactively creating a request file.
//
// Flags:
//
//	--output, -o: Path to output file (default "kubelab-request.yaml")
func Init() *cobra.Command {
	var outputPath string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Interactively create a request file",
		Long: `Interactively create a request file.

This command asks for:

  - Engine (kind, minikube, kubeadm or none)
  - Module and lab type, which form the cluster name
  - Master and worker counts and CNI (kubeadm only)
  - Size profile and an optional first IP
  - Management tools (engine none only)`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Init(cmd.Context(), outputPath)
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", config.DefaultRequestFilename, "Output file path")

	return cmd
}
