package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/kubelab/cmd/kubelab/handlers"
)

// inputFlags binds the flags that describe the clusters to compile.
type inputFlags struct {
	in      handlers.Input
	masters int
	workers int
}

func (f *inputFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVarP(&f.in.RequestPath, "file", "f", "", "Request file (default: kubelab-request.yaml)")
	fl.StringVarP(&f.in.Options.Engine, "engine", "e", "", "Engine for a single cluster given by flags: kind, minikube, kubeadm, none")
	fl.StringVar(&f.in.Options.Module, "module", "", "Module identifier, e.g. m1")
	fl.StringVar(&f.in.Options.Type, "type", "", "Lab type identifier, e.g. pt")
	fl.StringVar(&f.in.Options.Name, "name", "", "Cluster name (default: <module>-<type>)")
	fl.StringVar(&f.in.Options.FirstIP, "ip", "", "First IPv4 address")
	fl.IntVar(&f.masters, "masters", 0, "Master count (kubeadm)")
	fl.IntVar(&f.workers, "workers", 0, "Worker count (kubeadm)")
	fl.StringVar(&f.in.Options.CNI, "cni", "", "CNI plugin (kubeadm): calico, flannel, cilium")
	fl.StringVar(&f.in.Options.Size, "size", "", "Size profile: small, medium, large")
	fl.StringSliceVar(&f.in.Options.Tools, "tool", nil, "Management tool to install (engine none, repeatable)")

	cmd.MarkFlagsMutuallyExclusive("file", "engine")
}

// input returns the handler input. Counts are only passed on when set so
// that engine defaults apply otherwise.
func (f *inputFlags) input(cmd *cobra.Command) handlers.Input {
	in := f.in
	if cmd.Flags().Changed("masters") {
		m := f.masters
		in.Options.Masters = &m
	}
	if cmd.Flags().Changed("workers") {
		w := f.workers
		in.Options.Workers = &w
	}
	return in
}
