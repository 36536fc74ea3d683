package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/imamik/kubelab/cmd/kubelab/handlers"
)

// Compile returns the command that turns a request into a plan.
//
// Flags:
//
//	--out, -o: Directory receiving descriptors and env files
//	--format: Output on stdout when --out is not given
//	--strict: Treat validation warnings as errors
//	--metrics: Print compile metrics to stderr
func Compile() *cobra.Command {
	var (
		flags inputFlags
		opts  handlers.CompileOptions
	)

	cmd := &cobra.Command{
		Use:   "compile",
		Short: "Compile a request into VMs and environment files",
		Long: `Compile a request into a resolved topology.

The request is validated, addresses are allocated, VMs are named and the
environment of every VM is derived. With --out the provisioning descriptor
and env files are written per cluster:

  <out>/<cluster>/<cluster>.yaml
  <out>/<cluster>/<cluster>.env
  <out>/<cluster>/vms/<vm>.env

Examples:
  # Compile the request file in the current directory
  kubelab compile -o out/

  # Compile a single cluster described by flags
  kubelab compile --engine kubeadm --module m2 --type ha --masters 3 --workers 2`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Compile(cmd.Context(), global, flags.input(cmd), opts)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&opts.OutDir, "out", "o", "", "Output directory")
	cmd.Flags().StringVar(&opts.Format, "format", handlers.FormatYAML, fmt.Sprintf("Stdout format: %s", strings.Join(handlers.Formats, ", ")))
	cmd.Flags().BoolVar(&opts.Strict, "strict", false, "Treat validation warnings as errors")
	cmd.Flags().BoolVar(&opts.Metrics, "metrics", false, "Print compile metrics to stderr")

	return cmd
}
